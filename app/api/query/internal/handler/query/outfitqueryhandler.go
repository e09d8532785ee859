// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package query

import (
	"net/http"

	"FashionDeck/app/api/query/internal/logic/query"
	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/api/query/internal/types"
	"FashionDeck/app/common/response"
	"FashionDeck/app/common/util"

	"github.com/zeromicro/go-zero/rest/httpx"
)

func OutfitQueryHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.QueryReq
		if err := httpx.Parse(r, &req); err != nil {
			response.ErrorCtx(r.Context(), w, r, err)
			return
		}

		l := query.NewOutfitQueryLogic(r.Context(), svcCtx)
		resp, err := l.OutfitQuery(&req, util.ClientIP(r))
		if err != nil {
			response.ErrorCtx(r.Context(), w, r, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
