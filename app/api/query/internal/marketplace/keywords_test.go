package marketplace

import (
	"testing"

	"FashionDeck/app/common/types"
)

func TestSearchKeywords(t *testing.T) {
	t.Parallel()

	prompt := &types.ParsedPrompt{Aesthetic: "korean minimal", Occasion: "office"}
	if got := searchKeywords(prompt); got != "korean minimal office" {
		t.Fatalf("searchKeywords = %q", got)
	}

	prompt = &types.ParsedPrompt{Aesthetic: "streetwear"}
	if got := searchKeywords(prompt); got != "streetwear" {
		t.Fatalf("searchKeywords without occasion = %q", got)
	}
}

func TestSignDeterministic(t *testing.T) {
	t.Parallel()

	a := sign("secret", "minimal", "top")
	b := sign("secret", "minimal", "top")
	if a != b {
		t.Fatalf("sign not deterministic: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("sign length = %d, want 64 hex chars", len(a))
	}
	if a == sign("other", "minimal", "top") {
		t.Fatalf("sign ignores the secret")
	}
}
