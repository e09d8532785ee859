package marketplace

import (
	"context"

	"FashionDeck/app/common/types"
)

// Adapter is the per-marketplace capability set. Implementations are
// stateless apart from their circuit breaker; credentials decide
// availability without any network call.
type Adapter interface {
	// Name is the marketplace identifier, e.g. "amazon".
	Name() string
	// IsAvailable reports whether credentials are configured.
	IsAvailable() bool
	// Search returns candidate products for one category. An unconfigured
	// adapter returns an empty list, not an error; callers treat that as
	// degradation.
	Search(ctx context.Context, prompt *types.ParsedPrompt, category string) ([]types.ProductResult, error)
	// GetDetails fetches a single product. Fails when the adapter is
	// unconfigured or the item is unknown.
	GetDetails(ctx context.Context, productId string) (*types.ProductDetail, error)
	// AffiliateLink appends the adapter's tracking parameter to a product
	// URL. Deterministic and side-effect free; without an affiliate
	// credential the URL is returned unchanged.
	AffiliateLink(productUrl, productId string) string
}

// AdapterStatus is the availability view exposed for diagnostics.
type AdapterStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// searchResponse is the wire shape both marketplace gateways reply with.
type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Id     string   `json:"id"`
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Image  string   `json:"image"`
	Url    string   `json:"url"`
	Sizes  []string `json:"sizes"`
	Rating float64  `json:"rating,omitempty"`
}
