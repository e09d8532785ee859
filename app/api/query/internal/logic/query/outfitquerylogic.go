// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"FashionDeck/app/api/query/internal/mq"
	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/api/query/internal/types"
	"FashionDeck/app/common/consts/biz"
	"FashionDeck/app/common/consts/errno"
	"FashionDeck/app/common/snowflake"
	commontypes "FashionDeck/app/common/types"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
	"github.com/zeromicro/x/errors"
)

type OutfitQueryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewOutfitQueryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *OutfitQueryLogic {
	return &OutfitQueryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// OutfitQuery runs the full pipeline: parse the prompt, fan out to
// marketplaces, assemble and rank outfits. Results are cached per prompt
// so repeated queries skip everything but the response mapping.
func (l *OutfitQueryLogic) OutfitQuery(req *types.QueryReq, clientIp string) (resp *types.QueryResp, err error) {
	start := time.Now()
	prompt := strings.TrimSpace(req.Prompt)
	if len(prompt) < biz.PromptMinLen || len(prompt) > biz.PromptMaxLen {
		return nil, errors.New(errno.InvalidParam, "prompt must be between 10 and 200 characters")
	}

	queryId := snowflake.QueryId()
	cacheKey := biz.PromptCachePrefix + hashPrompt(prompt)

	if cached, err := l.svcCtx.Redis.GetCtx(l.ctx, cacheKey); err != nil {
		l.Errorf("prompt cache read failed: %v", err)
	} else if cached != "" {
		var outfits []commontypes.Outfit
		if err := json.Unmarshal([]byte(cached), &outfits); err != nil {
			l.Errorf("prompt cache entry corrupt, refetching: %v", err)
		} else {
			l.Infof("query %s served from cache", queryId)
			resp := l.buildResp(queryId, outfits, aestheticOf(outfits, prompt), start, true)
			l.audit(queryId, prompt, nil, start, len(outfits), nil, clientIp)
			return resp, nil
		}
	}

	parsed := l.svcCtx.Model.ParsePrompt(l.ctx, prompt)
	l.Infof("query %s parsed: aesthetic=%q budget=%v size=%q categories=%v",
		queryId, parsed.Aesthetic, parsed.Budget, parsed.Size, parsed.Categories)

	products, err := l.svcCtx.Marketplace.SearchAll(l.ctx, parsed)
	if err != nil {
		l.audit(queryId, prompt, parsed, start, 0, err, clientIp)
		return nil, err
	}

	outfits := l.svcCtx.Outfits.AssembleOutfits(l.ctx, products, parsed)
	if len(outfits) == 0 {
		err := errors.New(errno.NoResults, "no outfits found matching your criteria")
		l.audit(queryId, prompt, parsed, start, 0, err, clientIp)
		return nil, err
	}

	if data, err := json.Marshal(outfits); err == nil {
		if err := l.svcCtx.Redis.SetexCtx(l.ctx, cacheKey, string(data), l.svcCtx.Config.CacheTTL.PromptSeconds); err != nil {
			l.Errorf("prompt cache write failed: %v", err)
		}
	}

	l.audit(queryId, prompt, parsed, start, len(outfits), nil, clientIp)
	return l.buildResp(queryId, outfits, parsed.Aesthetic, start, false), nil
}

func (l *OutfitQueryLogic) buildResp(queryId string, outfits []commontypes.Outfit, aesthetic string, start time.Time, cached bool) *types.QueryResp {
	return &types.QueryResp{
		QueryId:        queryId,
		Outfits:        toApiOutfits(outfits),
		Count:          len(outfits),
		Aesthetic:      aesthetic,
		ProcessingTime: time.Since(start).Milliseconds(),
		Cached:         cached,
		Warnings:       l.warnings(),
	}
}

// warnings surfaces degraded dependencies alongside an otherwise good
// response.
func (l *OutfitQueryLogic) warnings() []string {
	var warnings []string
	for _, s := range l.svcCtx.Marketplace.Stats() {
		if !s.Available {
			warnings = append(warnings, fmt.Sprintf("marketplace %s is not configured, results may be limited", s.Name))
		}
	}
	return warnings
}

// audit publishes a query log event, never blocking the response path.
func (l *OutfitQueryLogic) audit(queryId, prompt string, parsed *commontypes.ParsedPrompt, start time.Time, numResults int, queryErr error, clientIp string) {
	if l.svcCtx.KafkaWriter == nil {
		return
	}

	evt := mq.QueryLogEvent{
		QueryId:        queryId,
		Prompt:         prompt,
		ResponseTimeMs: time.Since(start).Milliseconds(),
		NumResults:     numResults,
		Success:        queryErr == nil,
		UserIp:         clientIp,
	}
	if parsed != nil {
		if b, err := json.Marshal(parsed); err == nil {
			evt.ParsedJson = string(b)
		}
	}
	if queryErr != nil {
		evt.ErrorMessage = queryErr.Error()
	}

	threading.GoSafe(func() {
		payload, err := json.Marshal(evt)
		if err != nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := l.svcCtx.KafkaWriter.WriteMessages(ctx, kafka.Message{
			Key:   []byte(queryId),
			Value: payload,
		}); err != nil {
			logx.Errorf("query log publish failed for %s: %v", queryId, err)
		}
	})
}

func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func aestheticOf(outfits []commontypes.Outfit, fallback string) string {
	if len(outfits) > 0 && outfits[0].Aesthetic != "" {
		return outfits[0].Aesthetic
	}
	return fallback
}
