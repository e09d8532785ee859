package model

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"FashionDeck/app/api/query/internal/breaker"
	"FashionDeck/app/common/consts/errno"
	"FashionDeck/app/common/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpc"
	"github.com/zeromicro/x/errors"
)

// Conf configures the ML service client.
type Conf struct {
	Url             string `json:",default=http://localhost:8000"`
	TimeoutMs       int64  `json:",default=5000"`
	HealthTimeoutMs int64  `json:",default=2000"`
	Breaker         breaker.FileConf
}

// Client talks to the remote scoring service (prompt parsing, outfit
// coherence scoring, embeddings). Every call is bounded by a timeout and
// guarded by one circuit breaker; parse and score degrade locally rather
// than surfacing model failures to the caller.
type Client struct {
	conf Conf
	brk  *breaker.Breaker
}

// NewClient builds a client for the configured ML service.
func NewClient(conf Conf) *Client {
	if conf.TimeoutMs <= 0 {
		conf.TimeoutMs = 5000
	}
	if conf.HealthTimeoutMs <= 0 {
		conf.HealthTimeoutMs = 2000
	}
	return &Client{conf: conf, brk: conf.Breaker.New()}
}

type parsePromptReq struct {
	Prompt string `json:"prompt"`
}

type parsePromptResp struct {
	Parsed         types.ParsedPrompt `json:"parsed"`
	ProcessingTime int64              `json:"processingTime"`
}

// ParsePrompt extracts structured intent from free text. It never fails:
// on any remote error the local heuristic parse is returned instead.
func (c *Client) ParsePrompt(ctx context.Context, prompt string) *types.ParsedPrompt {
	log := logx.WithContext(ctx)
	start := time.Now()

	if !c.brk.CanExecute() {
		log.Infof("model service circuit open, using fallback prompt parse")
		return FallbackParse(prompt)
	}

	var resp parsePromptResp
	if err := c.post(ctx, "/parse-prompt", parsePromptReq{Prompt: prompt}, &resp, c.timeout()); err != nil {
		c.brk.RecordFailure()
		log.Errorf("parse prompt failed after %s: %v", time.Since(start), err)
		return FallbackParse(prompt)
	}
	c.brk.RecordSuccess()

	parsed := resp.Parsed
	if parsed.Aesthetic == "" {
		parsed.Aesthetic = prompt
	}
	if len(parsed.Categories) == 0 {
		parsed.Categories = []string{types.CategoryTop, types.CategoryBottom}
	}
	log.Infof("prompt parsed in %s", time.Since(start))
	return &parsed
}

type scoreOutfitReq struct {
	Aesthetic string            `json:"aesthetic"`
	Items     []types.ScoreItem `json:"items"`
}

type scoreOutfitResp struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// ScoreOutfit asks the model how well the items match the aesthetic,
// in [0, 1]. On failure it returns the neutral 0.5 along with the error,
// so callers that want a richer local heuristic can detect the miss.
func (c *Client) ScoreOutfit(ctx context.Context, aesthetic string, items []types.ScoreItem) (float64, error) {
	log := logx.WithContext(ctx)
	start := time.Now()

	if !c.brk.CanExecute() {
		return 0.5, errors.New(errno.ModelServiceError, "model service circuit open")
	}

	var resp scoreOutfitResp
	if err := c.post(ctx, "/score-outfit", scoreOutfitReq{Aesthetic: aesthetic, Items: items}, &resp, c.timeout()); err != nil {
		c.brk.RecordFailure()
		log.Errorf("score outfit failed after %s: %v", time.Since(start), err)
		return 0.5, errors.New(errno.ModelServiceError, fmt.Sprintf("score outfit: %v", err))
	}
	c.brk.RecordSuccess()

	return resp.Score, nil
}

type embeddingReq struct {
	Text     string `json:"text"`
	ImageUrl string `json:"imageUrl,omitempty"`
}

type embeddingResp struct {
	Embedding []float64 `json:"embedding"`
}

// GenerateEmbedding returns the service's vector for a text (and optional
// image). There is no fallback; failures propagate to the caller.
func (c *Client) GenerateEmbedding(ctx context.Context, text, imageUrl string) ([]float64, error) {
	if !c.brk.CanExecute() {
		return nil, errors.New(errno.ModelServiceError, "model service circuit open")
	}

	var resp embeddingResp
	if err := c.post(ctx, "/generate-embedding", embeddingReq{Text: text, ImageUrl: imageUrl}, &resp, c.timeout()); err != nil {
		c.brk.RecordFailure()
		return nil, errors.New(errno.ModelServiceError, fmt.Sprintf("generate embedding: %v", err))
	}
	c.brk.RecordSuccess()

	return resp.Embedding, nil
}

// HealthCheck probes the service with a short timeout. Never errors.
func (c *Client) HealthCheck(ctx context.Context) bool {
	callCtx, cancel := context.WithTimeout(ctx, time.Duration(c.conf.HealthTimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := httpc.Do(callCtx, http.MethodGet, c.conf.Url+"/health", nil)
	if err != nil {
		logx.WithContext(ctx).Errorf("model service health check failed: %v", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// BreakerState exposes the guard state for diagnostics.
func (c *Client) BreakerState() breaker.State {
	return c.brk.State()
}

func (c *Client) timeout() time.Duration {
	return time.Duration(c.conf.TimeoutMs) * time.Millisecond
}

func (c *Client) post(ctx context.Context, path string, req, resp any, timeout time.Duration) error {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpResp, err := httpc.Do(callCtx, http.MethodPost, c.conf.Url+path, req)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", httpResp.StatusCode)
	}
	return httpc.ParseJsonBody(httpResp, resp)
}
