package marketplace

import (
	"regexp"
	"strings"

	"FashionDeck/app/common/types"
)

// Near-duplicate detection across marketplaces: titles are normalized and
// compared pairwise with Jaccard similarity over word sets. Above this
// threshold two listings are considered the same product.
const dedupThreshold = 0.8

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]`)

// NormalizeTitle lowercases, strips everything outside [a-z0-9 ] and
// collapses whitespace.
func NormalizeTitle(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// Jaccard returns |A∩B| / |A∪B| over the whitespace-split tokens of two
// normalized titles.
func Jaccard(a, b string) float64 {
	setA := wordSet(a)
	setB := wordSet(b)

	inter := 0
	for w := range setA {
		if _, ok := setB[w]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Split(s, " ") {
		set[w] = struct{}{}
	}
	return set
}

type dedupEntry struct {
	title   string
	product types.ProductResult
}

// Dedup collapses near-identical listings, keeping the cheaper one. The
// scan is order-sensitive and O(n²): each candidate is compared against
// every kept representative in insertion order, and a replaced
// representative keeps its original title key. The aggregator relies on
// this exact behavior, so any optimization must preserve it.
func Dedup(products []types.ProductResult) []types.ProductResult {
	var kept []dedupEntry

	for _, product := range products {
		normalized := NormalizeTitle(product.Title)

		duplicate := false
		for i := range kept {
			if Jaccard(normalized, kept[i].title) > dedupThreshold {
				duplicate = true
				if product.Price < kept[i].product.Price {
					kept[i].product = product
				}
				break
			}
		}

		if !duplicate {
			kept = append(kept, dedupEntry{title: normalized, product: product})
		}
	}

	out := make([]types.ProductResult, 0, len(kept))
	for _, entry := range kept {
		out = append(out, entry.product)
	}
	return out
}
