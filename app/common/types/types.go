package types

// Product categories an outfit can draw from.
const (
	CategoryTop         = "top"
	CategoryBottom      = "bottom"
	CategoryShoes       = "shoes"
	CategoryAccessories = "accessories"
)

// Supported marketplace sources.
const (
	MarketplaceAmazon   = "amazon"
	MarketplaceFlipkart = "flipkart"
)

// Gender preference extracted from the prompt.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderUnisex = "unisex"
)

// Sizes in matching priority order. XXL also matches "2xl".
var Sizes = []string{"XS", "S", "M", "L", "XL", "XXL"}

// ParsedPrompt is the normalized user intent. Built once per query,
// read-only afterwards.
type ParsedPrompt struct {
	Aesthetic  string   `json:"aesthetic"`
	Budget     float64  `json:"budget,omitempty"`
	Size       string   `json:"size,omitempty"`
	Gender     string   `json:"gender,omitempty"`
	Occasion   string   `json:"occasion,omitempty"`
	Categories []string `json:"categories"`
}

// ProductResult is one candidate item from a marketplace search.
// Ids are source-local; identity across sources is (Marketplace, Id).
// Prices are INR, no conversion.
type ProductResult struct {
	Id           string   `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	ProductUrl   string   `json:"productUrl"`
	AffiliateUrl string   `json:"affiliateUrl"`
	Sizes        []string `json:"sizes"`
	Category     string   `json:"category"`
	Marketplace  string   `json:"marketplace"`
}

// ProductDetail carries the extra fields of a single-product lookup.
type ProductDetail struct {
	ProductResult
	Description string   `json:"description,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int64    `json:"reviewCount,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// ProductItem is the outfit-embedded projection of a ProductResult.
type ProductItem struct {
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	Url          string   `json:"url"`
	AffiliateUrl string   `json:"affiliateUrl"`
	Marketplace  string   `json:"marketplace"`
	Sizes        []string `json:"sizes,omitempty"`
}

// Outfit is a candidate or final recommendation. TotalPrice is derived from
// Items and recomputed whenever they change. Score is 0 until the scoring
// phase assigns one; Scored records whether that happened.
type Outfit struct {
	Aesthetic  string        `json:"aesthetic"`
	TotalPrice float64       `json:"totalPrice"`
	Items      []ProductItem `json:"items"`
	Score      float64       `json:"score,omitempty"`
	Scored     bool          `json:"-"`
}

// ScoreItem is the per-item summary sent to the scoring service.
type ScoreItem struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// ToItem converts a marketplace result into its outfit projection.
func (p ProductResult) ToItem() ProductItem {
	return ProductItem{
		Category:     p.Category,
		Title:        p.Title,
		Price:        p.Price,
		Image:        p.Image,
		Url:          p.ProductUrl,
		AffiliateUrl: p.AffiliateUrl,
		Marketplace:  p.Marketplace,
		Sizes:        p.Sizes,
	}
}
