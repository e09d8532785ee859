package response

import (
	"context"
	"net/http"
	"time"

	"FashionDeck/app/common/consts/biz"
	"FashionDeck/app/common/consts/errno"

	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

// ErrorBody is the error envelope returned to callers.
type ErrorBody struct {
	StatusCode  int      `json:"statusCode"`
	Message     string   `json:"message"`
	Error       string   `json:"error"`
	Timestamp   string   `json:"timestamp"`
	Path        string   `json:"path"`
	Suggestions []string `json:"suggestions,omitempty"`
	RetryAfter  int      `json:"retryAfter,omitempty"`
}

// ErrorCtx maps a coded error onto the HTTP error envelope. Errors without a
// code (e.g. request parsing) are treated as validation failures.
func ErrorCtx(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	code := errno.InvalidParam
	if cm, ok := err.(*errors.CodeMsg); ok {
		code = cm.Code
	}

	body := ErrorBody{
		Message:   err.Error(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}
	if cm, ok := err.(*errors.CodeMsg); ok {
		body.Message = cm.Msg
	}

	switch code {
	case errno.InvalidParam:
		body.StatusCode = http.StatusBadRequest
		body.Error = "Validation Error"
	case errno.NoResults:
		body.StatusCode = http.StatusNotFound
		body.Error = "No Results Found"
		body.Suggestions = biz.NoResultsSuggestions
	case errno.TooManyRequests:
		body.StatusCode = http.StatusTooManyRequests
		body.Error = "Too Many Requests"
	case errno.GatewayTimeout:
		body.StatusCode = http.StatusGatewayTimeout
		body.Error = "Gateway Timeout"
		body.Message = "Request timed out. Please try again."
	default:
		body.StatusCode = http.StatusInternalServerError
		body.Error = "Internal Server Error"
		body.Message = "An error occurred while processing your query. Please try again."
	}

	httpx.WriteJsonCtx(ctx, w, body.StatusCode, body)
}

// TooManyRequests writes the rate-limit rejection envelope.
func TooManyRequests(ctx context.Context, w http.ResponseWriter, r *http.Request, retryAfter int) {
	body := ErrorBody{
		StatusCode: http.StatusTooManyRequests,
		Message:    "Too many requests. Please try again later.",
		Error:      "Too Many Requests",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		RetryAfter: retryAfter,
	}
	httpx.WriteJsonCtx(ctx, w, body.StatusCode, body)
}
