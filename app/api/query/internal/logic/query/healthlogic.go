// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package query

import (
	"context"
	"time"

	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/api/query/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type HealthLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHealthLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HealthLogic {
	return &HealthLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HealthLogic) Health() (resp *types.HealthResp, err error) {
	modelUp := l.svcCtx.Model.HealthCheck(l.ctx)

	stats := l.svcCtx.Marketplace.Stats()
	marketplaces := make([]types.MarketplaceStatus, 0, len(stats))
	anyMarketplace := false
	for _, s := range stats {
		marketplaces = append(marketplaces, types.MarketplaceStatus{Name: s.Name, Available: s.Available})
		if s.Available {
			anyMarketplace = true
		}
	}

	status := "ok"
	if !modelUp || !anyMarketplace {
		status = "degraded"
	}
	return &types.HealthResp{
		Status:       status,
		ModelService: modelUp,
		Marketplaces: marketplaces,
		Breakers: map[string]string{
			"model": string(l.svcCtx.Model.BreakerState()),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
