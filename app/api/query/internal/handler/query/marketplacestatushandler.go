// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package query

import (
	"net/http"

	"FashionDeck/app/api/query/internal/logic/query"
	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/common/response"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func MarketplaceStatusHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l := query.NewMarketplaceStatusLogic(r.Context(), svcCtx)
		resp, err := l.MarketplaceStatus()
		if err != nil {
			response.ErrorCtx(r.Context(), w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
