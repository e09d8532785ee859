package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"FashionDeck/app/common/consts/biz"
	"FashionDeck/app/common/consts/errno"
	"FashionDeck/app/common/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
	"github.com/zeromicro/x/errors"
)

// Cache is the key-value contract the aggregator needs; *redis.Redis
// satisfies it directly.
type Cache interface {
	GetCtx(ctx context.Context, key string) (string, error)
	SetexCtx(ctx context.Context, key, value string, seconds int) error
}

// Aggregator fans search out across every configured adapter and category,
// then filters, deduplicates and sorts the combined pool.
type Aggregator struct {
	adapters   []Adapter
	cache      Cache
	ttlSeconds int
}

// NewAggregator wires adapters in the order fan-out results should be
// concatenated.
func NewAggregator(adapters []Adapter, cache Cache, ttlSeconds int) *Aggregator {
	if ttlSeconds <= 0 {
		ttlSeconds = int(biz.MarketplaceCacheTTL / time.Second)
	}
	return &Aggregator{adapters: adapters, cache: cache, ttlSeconds: ttlSeconds}
}

type searchCall struct {
	adapter  Adapter
	category string
}

// SearchAll runs one search per (category, adapter) pair concurrently and
// returns the merged candidate pool. Individual adapter failures degrade
// to fewer results; only cache-layer errors fail the call.
func (a *Aggregator) SearchAll(ctx context.Context, prompt *types.ParsedPrompt) ([]types.ProductResult, error) {
	start := time.Now()
	log := logx.WithContext(ctx)

	key := biz.MarketplaceCachePrefix + CacheKey(prompt)
	cached, err := a.cache.GetCtx(ctx, key)
	if err != nil {
		return nil, errors.New(errno.CacheError, fmt.Sprintf("marketplace cache get: %v", err))
	}
	if cached != "" {
		var products []types.ProductResult
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			log.Infof("marketplace cache hit for %q", prompt.Aesthetic)
			return products, nil
		}
		log.Errorf("marketplace cache entry for %q is corrupt, refetching", prompt.Aesthetic)
	}

	// One call per category × adapter; slot writes keep concatenation in
	// call order regardless of completion order, which the order-sensitive
	// dedup below depends on.
	var calls []searchCall
	for _, category := range prompt.Categories {
		for _, adapter := range a.adapters {
			calls = append(calls, searchCall{adapter: adapter, category: category})
		}
	}

	results := make([][]types.ProductResult, len(calls))
	if len(calls) > 0 {
		mr.ForEach(func(source chan<- int) {
			for i := range calls {
				source <- i
			}
		}, func(i int) {
			call := calls[i]
			products, err := call.adapter.Search(ctx, prompt, call.category)
			if err != nil {
				log.Errorf("%s %s search failed: %v", call.adapter.Name(), call.category, err)
				return
			}
			results[i] = products
		}, mr.WithWorkers(len(calls)))
	}

	var pool []types.ProductResult
	for i, products := range results {
		if len(products) > 0 {
			log.Infof("%s: %d %s products", calls[i].adapter.Name(), len(products), calls[i].category)
		}
		pool = append(pool, products...)
	}

	filtered := Filter(pool, prompt)
	deduped := Dedup(filtered)
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Price < deduped[j].Price
	})

	log.Infof("marketplace search done in %s: %d total, %d after dedup",
		time.Since(start), len(pool), len(deduped))

	payload, err := json.Marshal(deduped)
	if err != nil {
		return nil, errors.New(errno.InternalError, fmt.Sprintf("marketplace cache encode: %v", err))
	}
	if err := a.cache.SetexCtx(ctx, key, string(payload), a.ttlSeconds); err != nil {
		return nil, errors.New(errno.CacheError, fmt.Sprintf("marketplace cache set: %v", err))
	}

	return deduped, nil
}

// Filter drops products over budget and products whose size set excludes
// the requested size. An empty size set means unconstrained.
func Filter(products []types.ProductResult, prompt *types.ParsedPrompt) []types.ProductResult {
	out := make([]types.ProductResult, 0, len(products))
	for _, p := range products {
		if prompt.Budget > 0 && p.Price > prompt.Budget {
			continue
		}
		if prompt.Size != "" && len(p.Sizes) > 0 && !containsSize(p.Sizes, prompt.Size) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	return false
}

// CacheKey derives the deterministic cache key for one parsed prompt.
// Categories are joined in arrival order, so two prompts that parse to
// the same set in a different order key separately.
func CacheKey(prompt *types.ParsedPrompt) string {
	budget := "any"
	if prompt.Budget > 0 {
		budget = strconv.FormatFloat(prompt.Budget, 'f', -1, 64)
	}
	size := prompt.Size
	if size == "" {
		size = "any"
	}
	return fmt.Sprintf("%s_%s_%s_%s",
		prompt.Aesthetic, strings.Join(prompt.Categories, ","), budget, size)
}

// Stats reports per-adapter availability for diagnostics.
func (a *Aggregator) Stats() []AdapterStatus {
	stats := make([]AdapterStatus, 0, len(a.adapters))
	for _, adapter := range a.adapters {
		stats = append(stats, AdapterStatus{Name: adapter.Name(), Available: adapter.IsAvailable()})
	}
	return stats
}
