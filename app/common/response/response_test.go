package response

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"FashionDeck/app/common/consts/errno"

	"github.com/zeromicro/x/errors"
)

func writeErr(t *testing.T, err error) (int, ErrorBody) {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	ErrorCtx(context.Background(), w, r, err)

	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return w.Code, body
}

func TestErrorCtxValidation(t *testing.T) {
	t.Parallel()

	code, body := writeErr(t, errors.New(errno.InvalidParam, "prompt must be between 10 and 200 characters"))
	if code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", code)
	}
	if body.Error != "Validation Error" || body.Message != "prompt must be between 10 and 200 characters" {
		t.Fatalf("body = %+v", body)
	}
	if body.Path != "/api/query" {
		t.Fatalf("path = %q", body.Path)
	}
}

func TestErrorCtxNoResults(t *testing.T) {
	t.Parallel()

	code, body := writeErr(t, errors.New(errno.NoResults, "no outfits found matching your criteria"))
	if code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", code)
	}
	if body.Error != "No Results Found" {
		t.Fatalf("error = %q", body.Error)
	}
	if len(body.Suggestions) != 3 {
		t.Fatalf("suggestions = %v, want 3 entries", body.Suggestions)
	}
}

func TestErrorCtxGatewayTimeout(t *testing.T) {
	t.Parallel()

	code, body := writeErr(t, errors.New(errno.GatewayTimeout, "marketplace fan-out exceeded deadline"))
	if code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", code)
	}
	if body.Message != "Request timed out. Please try again." {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestErrorCtxInternalHidesDetail(t *testing.T) {
	t.Parallel()

	code, body := writeErr(t, errors.New(errno.MarketplaceError, "amazon search failed: connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", code)
	}
	if body.Message == "amazon search failed: connection refused" {
		t.Fatalf("internal detail leaked to the client")
	}
}

func TestErrorCtxUncodedError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	ErrorCtx(context.Background(), w, r, context.DeadlineExceeded)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("uncoded error status = %d, want 400", w.Code)
	}
}

func TestTooManyRequests(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/query", nil)
	TooManyRequests(context.Background(), w, r, 60)

	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.RetryAfter != 60 {
		t.Fatalf("retryAfter = %d, want 60", body.RetryAfter)
	}
}
