package query

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"FashionDeck/app/api/query/internal/breaker"
	"FashionDeck/app/api/query/internal/config"
	"FashionDeck/app/api/query/internal/marketplace"
	"FashionDeck/app/api/query/internal/model"
	"FashionDeck/app/api/query/internal/outfit"
	"FashionDeck/app/api/query/internal/svc"
	"FashionDeck/app/api/query/internal/types"
	"FashionDeck/app/common/consts/errno"
	commontypes "FashionDeck/app/common/types"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/x/errors"
)

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memCache) GetCtx(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memCache) SetexCtx(_ context.Context, key, value string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

type stubAdapter struct {
	products map[string][]commontypes.ProductResult
}

func (s *stubAdapter) Name() string      { return "stub" }
func (s *stubAdapter) IsAvailable() bool { return true }

func (s *stubAdapter) Search(_ context.Context, _ *commontypes.ParsedPrompt, category string) ([]commontypes.ProductResult, error) {
	return s.products[category], nil
}

func (s *stubAdapter) GetDetails(context.Context, string) (*commontypes.ProductDetail, error) {
	return nil, errors.New(1, "not implemented")
}

func (s *stubAdapter) AffiliateLink(productUrl, _ string) string { return productUrl }

func stubProduct(id, title, category string, price float64, sizes ...string) commontypes.ProductResult {
	return commontypes.ProductResult{
		Id:           id,
		Title:        title,
		Price:        price,
		ProductUrl:   "https://shop.example/" + id,
		AffiliateUrl: "https://shop.example/" + id + "?affid=test",
		Sizes:        sizes,
		Category:     category,
		Marketplace:  "stub",
	}
}

// newDegradedContext wires the pipeline with an unreachable model service
// (every call fails, driving the heuristic paths) and an unreachable redis
// (prompt cache reads and writes fail and are swallowed). The marketplace
// layer runs against an in-memory cache and a stub adapter.
func newDegradedContext(t *testing.T, products map[string][]commontypes.ProductResult) *svc.ServiceContext {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	ml := model.NewClient(model.Conf{
		Url:       srv.URL,
		TimeoutMs: 2000,
		Breaker:   breaker.FileConf{FailureThreshold: 1000, ResetTimeoutMs: 30000, MonitoringWindowMs: 60000},
	})

	adapter := &stubAdapter{products: products}
	agg := marketplace.NewAggregator([]marketplace.Adapter{adapter}, &memCache{data: make(map[string]string)}, 60)

	return &svc.ServiceContext{
		Config: config.Config{
			CacheTTL:  config.CacheTTLConf{PromptSeconds: 3600, MarketplaceSeconds: 1800},
			RateLimit: config.RateLimitConf{WindowSeconds: 60, MaxRequests: 10},
		},
		Redis:       redis.New("127.0.0.1:1"),
		Marketplace: agg,
		Model:       ml,
		Outfits:     outfit.NewAssembler(outfit.Conf{}, ml),
	}
}

func TestOutfitQueryDegradedPipeline(t *testing.T) {
	sc := newDegradedContext(t, map[string][]commontypes.ProductResult{
		commontypes.CategoryTop: {
			stubProduct("t1", "Boxy Oxford Shirt", commontypes.CategoryTop, 700, "M", "L"),
			stubProduct("t2", "Relaxed Knit Polo", commontypes.CategoryTop, 650, "M"),
			stubProduct("t3", "Minimal Crew Tee", commontypes.CategoryTop, 450),
		},
		commontypes.CategoryBottom: {
			stubProduct("b1", "Tapered Grey Slacks", commontypes.CategoryBottom, 850, "M"),
			stubProduct("b2", "Pleated Wide Pants", commontypes.CategoryBottom, 950, "M", "XL"),
			stubProduct("b3", "Straight Dark Jeans", commontypes.CategoryBottom, 1450, "S"),
		},
	})

	l := NewOutfitQueryLogic(context.Background(), sc)
	resp, err := l.OutfitQuery(&types.QueryReq{Prompt: "korean minimal fit size m under 1500"}, "203.0.113.7")
	if err != nil {
		t.Fatalf("OutfitQuery: %v", err)
	}

	if resp.Count == 0 || resp.Count > 6 {
		t.Fatalf("Count = %d, want 1..6", resp.Count)
	}
	if resp.Aesthetic != "korean minimal fit size m under 1500" {
		t.Fatalf("fallback aesthetic = %q, want the prompt verbatim", resp.Aesthetic)
	}
	for _, o := range resp.Outfits {
		// budget 1500 with the 10% tolerance
		if o.TotalPrice > 1650 {
			t.Fatalf("outfit total %v exceeds tolerated budget", o.TotalPrice)
		}
		if o.Score < 0.5 || o.Score > 1 {
			t.Fatalf("heuristic score %v out of range", o.Score)
		}
		for _, item := range o.Items {
			// b3 carries only size S, t1/t2/b1/b2 carry M, t3 is unconstrained
			if item.Title == "Straight Dark Jeans" {
				t.Fatalf("size-filtered product made it into an outfit")
			}
		}
	}
}

func TestOutfitQueryNoResults(t *testing.T) {
	sc := newDegradedContext(t, map[string][]commontypes.ProductResult{})

	l := NewOutfitQueryLogic(context.Background(), sc)
	_, err := l.OutfitQuery(&types.QueryReq{Prompt: "brutalist techwear under 3000"}, "")
	if err == nil {
		t.Fatalf("OutfitQuery with no products should fail")
	}
	cm, ok := err.(*errors.CodeMsg)
	if !ok {
		t.Fatalf("error is %T, want *errors.CodeMsg", err)
	}
	if cm.Code != errno.NoResults {
		t.Fatalf("code = %d, want %d", cm.Code, errno.NoResults)
	}
}

func TestOutfitQueryPromptValidation(t *testing.T) {
	sc := newDegradedContext(t, map[string][]commontypes.ProductResult{})
	l := NewOutfitQueryLogic(context.Background(), sc)

	for _, prompt := range []string{"", "   short   ", strings.Repeat("long ", 50)} {
		_, err := l.OutfitQuery(&types.QueryReq{Prompt: prompt}, "")
		cm, ok := err.(*errors.CodeMsg)
		if !ok || cm.Code != errno.InvalidParam {
			t.Fatalf("prompt %q: err = %v, want InvalidParam", prompt, err)
		}
	}
}
