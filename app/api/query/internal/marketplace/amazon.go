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

// AmazonConf holds PA-API credentials and gateway endpoints.
type AmazonConf struct {
	AffiliateTag string `json:",optional"`
	AccessKey    string `json:",optional"`
	SecretKey    string `json:",optional"`
	Region       string `json:",default=in"`
	SearchUrl    string `json:",optional"`
	DetailUrl    string `json:",optional"`
	TimeoutMs    int64  `json:",default=10000"`
	Breaker      breaker.FileConf
}

type amazonAdapter struct {
	conf AmazonConf
	brk  *breaker.Breaker
}

// NewAmazon builds the Amazon India adapter.
func NewAmazon(conf AmazonConf) Adapter {
	return &amazonAdapter{conf: conf, brk: conf.Breaker.New()}
}

func (a *amazonAdapter) Name() string { return types.MarketplaceAmazon }

func (a *amazonAdapter) IsAvailable() bool {
	return a.conf.AffiliateTag != "" && a.conf.AccessKey != "" && a.conf.SecretKey != ""
}

type amazonSearchReq struct {
	AccessKey string   `header:"X-Amz-Access-Key"`
	Signature string   `header:"X-Amz-Signature"`
	Keywords  string   `json:"keywords"`
	Category  string   `json:"category"`
	MaxPrice  float64  `json:"maxPrice,omitempty"`
	Sizes     []string `json:"sizes,omitempty"`
	Gender    string   `json:"gender,omitempty"`
	Region    string   `json:"region"`
}

func (a *amazonAdapter) Search(ctx context.Context, prompt *types.ParsedPrompt, category string) ([]types.ProductResult, error) {
	if !a.IsAvailable() {
		logx.WithContext(ctx).Infof("amazon adapter not configured, skipping %s search", category)
		return nil, nil
	}
	if !a.brk.CanExecute() {
		return nil, errors.New(errno.MarketplaceError, "amazon: circuit open")
	}

	req := amazonSearchReq{
		AccessKey: a.conf.AccessKey,
		Signature: sign(a.conf.SecretKey, prompt.Aesthetic, category),
		Keywords:  searchKeywords(prompt),
		Category:  category,
		Region:    a.conf.Region,
	}
	if prompt.Budget > 0 {
		req.MaxPrice = prompt.Budget
	}
	if prompt.Size != "" {
		req.Sizes = []string{prompt.Size}
	}
	if prompt.Gender != "" {
		req.Gender = prompt.Gender
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(a.conf.TimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := httpc.Do(callCtx, http.MethodPost, a.conf.SearchUrl, req)
	if err != nil {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon search failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon search failed: status %d", resp.StatusCode))
	}

	var body searchResponse
	if err := httpc.ParseJsonBody(resp, &body); err != nil {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon search decode failed: %v", err))
	}
	a.brk.RecordSuccess()

	results := make([]types.ProductResult, 0, len(body.Items))
	for _, item := range body.Items {
		results = append(results, types.ProductResult{
			Id:           item.Id,
			Title:        item.Title,
			Price:        item.Price,
			Image:        item.Image,
			ProductUrl:   item.Url,
			AffiliateUrl: a.AffiliateLink(item.Url, item.Id),
			Sizes:        item.Sizes,
			Category:     category,
			Marketplace:  types.MarketplaceAmazon,
		})
	}
	return results, nil
}

func (a *amazonAdapter) GetDetails(ctx context.Context, productId string) (*types.ProductDetail, error) {
	if !a.IsAvailable() {
		return nil, errors.New(errno.MarketplaceError, "amazon adapter not configured")
	}
	if a.conf.DetailUrl == "" {
		return nil, errors.New(errno.MarketplaceError, "amazon detail endpoint not configured")
	}
	if !a.brk.CanExecute() {
		return nil, errors.New(errno.MarketplaceError, "amazon: circuit open")
	}

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(a.conf.TimeoutMs)*time.Millisecond)
	defer cancel()

	resp, err := httpc.Do(callCtx, http.MethodGet, a.conf.DetailUrl+"/"+url.PathEscape(productId), nil)
	if err != nil {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon detail failed: %v", err))
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon product %s not found: status %d", productId, resp.StatusCode))
	}

	var detail types.ProductDetail
	if err := httpc.ParseJsonBody(resp, &detail); err != nil {
		a.brk.RecordFailure()
		return nil, errors.New(errno.MarketplaceError, fmt.Sprintf("amazon detail decode failed: %v", err))
	}
	a.brk.RecordSuccess()

	detail.Marketplace = types.MarketplaceAmazon
	detail.AffiliateUrl = a.AffiliateLink(detail.ProductUrl, detail.Id)
	return &detail, nil
}

func (a *amazonAdapter) AffiliateLink(productUrl, _ string) string {
	if a.conf.AffiliateTag == "" {
		return productUrl
	}
	u, err := url.Parse(productUrl)
	if err != nil {
		return productUrl
	}
	q := u.Query()
	q.Set("tag", a.conf.AffiliateTag)
	u.RawQuery = q.Encode()
	return u.String()
}
