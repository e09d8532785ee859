package biz

import "time"

const (
	// Redis key spaces. The rate limiter and both caches share one store.
	PromptCachePrefix      = "prompt:"
	MarketplaceCachePrefix = "marketplace:all:"
	RateLimitPrefix        = "rate_limit:"

	PromptCacheTTL      = time.Hour
	MarketplaceCacheTTL = 30 * time.Minute

	// Prompt length bounds after trimming.
	PromptMinLen = 10
	PromptMaxLen = 200
)

// Suggestions returned with a no-results response.
var NoResultsSuggestions = []string{
	"Try a different aesthetic or style",
	"Increase your budget",
	"Remove size restrictions",
}
