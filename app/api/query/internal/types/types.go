// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package types

type QueryReq struct {
	Prompt string `json:"prompt"`
}

type OutfitItem struct {
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	Url          string   `json:"url"`
	AffiliateUrl string   `json:"affiliateUrl"`
	Sizes        []string `json:"sizes"`
	Category     string   `json:"category"`
	Marketplace  string   `json:"marketplace"`
}

type Outfit struct {
	Aesthetic  string       `json:"aesthetic"`
	TotalPrice float64      `json:"totalPrice"`
	Items      []OutfitItem `json:"items"`
	Score      float64      `json:"score"`
}

type QueryResp struct {
	QueryId        string   `json:"queryId"`
	Outfits        []Outfit `json:"outfits"`
	Count          int      `json:"count"`
	Aesthetic      string   `json:"aesthetic"`
	ProcessingTime int64    `json:"processingTime"`
	Cached         bool     `json:"cached"`
	Warnings       []string `json:"warnings,omitempty"`
}

type MarketplaceStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

type MarketplacesResp struct {
	Marketplaces []MarketplaceStatus `json:"marketplaces"`
}

type HealthResp struct {
	Status       string              `json:"status"`
	ModelService bool                `json:"modelService"`
	Marketplaces []MarketplaceStatus `json:"marketplaces"`
	Breakers     map[string]string   `json:"breakers"`
	Timestamp    string              `json:"timestamp"`
}
