// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package query

import (
	"context"

	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/api/query/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type MarketplaceStatusLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketplaceStatusLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketplaceStatusLogic {
	return &MarketplaceStatusLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *MarketplaceStatusLogic) MarketplaceStatus() (resp *types.MarketplacesResp, err error) {
	stats := l.svcCtx.Marketplace.Stats()

	statuses := make([]types.MarketplaceStatus, 0, len(stats))
	for _, s := range stats {
		statuses = append(statuses, types.MarketplaceStatus{
			Name:      s.Name,
			Available: s.Available,
		})
	}
	return &types.MarketplacesResp{Marketplaces: statuses}, nil
}
