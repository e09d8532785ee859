// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package middleware

import (
	"net/http"
	"strconv"

	"FashionDeck/app/api/query/internal/config"
	"FashionDeck/app/common/consts/biz"
	"FashionDeck/app/common/response"
	"FashionDeck/app/common/util"

	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

type RateLimitMiddleware struct {
	limiter *limit.PeriodLimit
	conf    config.RateLimitConf
}

func NewRateLimitMiddleware(rds *redis.Redis, conf config.RateLimitConf) *RateLimitMiddleware {
	if conf.WindowSeconds <= 0 {
		conf.WindowSeconds = 60
	}
	if conf.MaxRequests <= 0 {
		conf.MaxRequests = 10
	}
	return &RateLimitMiddleware{
		limiter: limit.NewPeriodLimit(conf.WindowSeconds, conf.MaxRequests, rds, biz.RateLimitPrefix),
		conf:    conf,
	}
}

func (m *RateLimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := util.ClientIP(r)
		if ip == "" {
			next(w, r)
			return
		}

		code, err := m.limiter.TakeCtx(r.Context(), ip)
		if err != nil {
			// limiter backend down, let the request through
			logx.WithContext(r.Context()).Errorf("rate limit check failed for %s: %v", ip, err)
			next(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(m.conf.MaxRequests))
		if code == limit.OverQuota {
			w.Header().Set("Retry-After", strconv.Itoa(m.conf.WindowSeconds))
			response.TooManyRequests(r.Context(), w, r, m.conf.WindowSeconds)
			return
		}

		next(w, r)
	}
}
