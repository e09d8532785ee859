// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package handler

import (
	"net/http"

	query "FashionDeck/app/api/query/internal/handler/query"
	"FashionDeck/app/api/query/internal/svc"

	"github.com/zeromicro/go-zero/rest"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{serverCtx.RateLimit},
			[]rest.Route{
				{
					Method:  http.MethodPost,
					Path:    "/query",
					Handler: query.OutfitQueryHandler(serverCtx),
				},
			}...,
		),
		rest.WithPrefix("/api"),
	)

	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/health",
				Handler: query.HealthHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/marketplaces",
				Handler: query.MarketplaceStatusHandler(serverCtx),
			},
		},
		rest.WithPrefix("/api"),
	)
}
