package marketplace

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FashionDeck/app/api/query/internal/breaker"
	"FashionDeck/app/common/consts/errno"
	"FashionDeck/app/common/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/rest/httpc"
	"github.com/zeromicro/x/errors"
)

// FlipkartConf holds Affiliate API credentials and gateway endpoints.
type FlipkartConf struct {
	AffiliateId    string `json:",optional"`
	AffiliateToken string `json:",optional"`
	SearchUrl      string `json:",optional"`
	DetailUrl      string `json:",optional"`
	TimeoutMs      int64  `json:",default=10000"`
	Breaker        breaker.FileConf
}

type flipkartAdapter struct {
	conf FlipkartConf
	brk  *breaker.Breaker
}

// NewFlipkart builds the Flipkart adapter.
func NewFlipkart(conf FlipkartConf) Adapter {
	return &flipkartAdapter{conf: conf, brk: conf.Breaker.New()}
}

func (f *flipkartAdapter) Name() string { return types.MarketplaceFlipkart }

func (f *flipkartAdapter) IsAvailable() bool {
	return f.conf.AffiliateId != "" && f.conf.AffiliateToken != ""
}

// The affiliate API authenticates with header credentials and takes the
// query through the URL.
type flipkartSearchReq struct {
	AffiliateId    string  `header:"Fk-Affiliate-Id"`
	AffiliateToken string  `header:"Fk-Affiliate-Token"`
	Query          string  `form:"query"`
	Category       string  `form:"category"`
	MaxPrice       float64 `form:"maxPrice,optional"`
	Size           string  `form:"size,optional"`
	Gender         string  `form:"gender,optional"`
}

func (f *flipkartAdapter) Search(ctx context.Context, prompt *types.ParsedPrompt, category string) ([]types.ProductResult, error) {
	if !f.IsAvailable() {
		logx.WithContext(ctx).Infof("flipkart adapter not configured, skipping %s search", category)
		return nil, nil
	}
	if !f.brk.CanExecute() {
		return nil, errors.New(errno.MarketplaceError, "flipkart: circuit open")
	}

	req := flipkartSearchReq{
		AffiliateId:    f.conf.AffiliateId,
		AffiliateToken: f.conf.AffiliateToken,
		Query:          searchKeywords(prompt),
		Category:       category,
	}
	if prompt.Budget > 0 {
		req.MaxPrice = prompt.Budget
	}
	req.Size = prompt.Size
	req.Gender = prompt.Gender

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(f.conf.TimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := httpc.Do(callCtx, http.MethodGet, f.conf.SearchUrl, req)
	if err != nil {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart search failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart search failed: status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := httpc.ParseJsonBody(resp, &body); err != nil {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart search decode failed: %v", err))
	}
	f.brk.RecordSuccess()

	results := make([]types.ProductResult, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, types.ProductResult{
			Id:           item.Id,
			Title:        item.Title,
			Price:        item.Price,
			Image:        item.Image,
			ProductUrl:   item.Url,
			AffiliateUrl: f.AffiliateLink(item.Url, item.Id),
			Sizes:        item.Sizes,
			Category:     category,
			Marketplace:  types.MarketplaceFlipkart,
		})
	}
	return results, nil
}

func (f *flipkartAdapter) GetDetails(ctx context.Context, productId string) (*types.ProductDetail, error) {
	if !f.IsAvailable() {
		return nil, errors.New(errno.MarketplaceError, "flipkart adapter not configured")
	}
	if f.conf.DetailUrl == "" {
		return nil, errors.New(errno.MarketplaceError, "flipkart detail endpoint not configured")
	}
	if !f.brk.CanExecute() {
		return nil, errors.New(errno.MarketplaceError, "flipkart: circuit open")
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(f.conf.TimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := httpc.Do(callCtx, http.MethodGet, f.conf.DetailUrl+"/"+url.PathEscape(productId), nil)
	if err != nil {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart detail failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart product %s not found: status %d", productId, resp.StatusCode))
	}

	var detail types.ProductDetail
	if err := httpc.ParseJsonBody(resp, &detail); err != nil {
		f.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("flipkart detail decode failed: %v", err))
	}
	f.brk.RecordSuccess()

	detail.Marketplace = types.MarketplaceFlipkart
	detail.AffiliateUrl = f.AffiliateLink(detail.ProductUrl, detail.Id)
	return &detail, nil
}

func (f *flipkartAdapter) AffiliateLink(productUrl, _ string) string {
	if f.conf.AffiliateId == "" {
		return productUrl
	}
	u, err := url.Parse(productUrl)
	if err != nil {
		return productUrl
	}
	q := u.Query()
	q.Set("affid", f.conf.AffiliateId)
	u.RawQuery = q.Encode()
	return u.String()
}
