package outfit

import (
	"context"
	"net/url"
	"sort"
	"time"

	"FashionDeck/app/common/types"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/mr"
)

// Budget tolerance applied to whole outfits: a fixed design constant, not
// a per-request knob.
const budgetTolerance = 1.10

// Scorer is the coherence-scoring dependency. A non-nil error means the
// remote model did not produce the score and the assembler should fall
// back to its own heuristic.
type Scorer interface {
	ScoreOutfit(ctx context.Context, aesthetic string, items []types.ScoreItem) (float64, error)
}

// Conf bounds the combination fan-out and the result count.
type Conf struct {
	MaxTops        int `json:",default=10"`
	MaxBottoms     int `json:",default=10"`
	MaxShoes       int `json:",default=5"`
	MaxAccessories int `json:",default=3"`
	TopK           int `json:",default=6"`
}

// Assembler turns a flat candidate pool into ranked outfit combinations.
type Assembler struct {
	conf   Conf
	scorer Scorer
}

// NewAssembler builds an assembler around the given scorer.
func NewAssembler(conf Conf, scorer Scorer) *Assembler {
	if conf.MaxTops <= 0 {
		conf.MaxTops = 10
	}
	if conf.MaxBottoms <= 0 {
		conf.MaxBottoms = 10
	}
	if conf.MaxShoes <= 0 {
		conf.MaxShoes = 5
	}
	if conf.MaxAccessories <= 0 {
		conf.MaxAccessories = 3
	}
	if conf.TopK <= 0 {
		conf.TopK = 6
	}
	return &Assembler{conf: conf, scorer: scorer}
}

// AssembleOutfits generates, filters, scores and ranks outfits from the
// already-fetched product pool, returning at most TopK of them ordered by
// descending score. An empty result is not an error here; the caller
// decides what zero outfits means.
func (a *Assembler) AssembleOutfits(ctx context.Context, products []types.ProductResult, prompt *types.ParsedPrompt) []types.Outfit {
	start := time.Now()
	log := logx.WithContext(ctx)
	log.Infof("assembling outfits from %d products", len(products))

	grouped := groupByCategory(products)
	candidates := a.generateCombinations(grouped, prompt)
	log.Infof("generated %d outfit combinations", len(candidates))

	within := filterByBudget(candidates, prompt)
	scored := a.scoreOutfits(ctx, within, prompt)

	sort.SliceStable(scored, func(i, j int) bool {
		return scoreOf(scored[i]) > scoreOf(scored[j])
	})
	if len(scored) > a.conf.TopK {
		scored = scored[:a.conf.TopK]
	}

	log.Infof("assembled %d outfits in %s", len(scored), time.Since(start))
	return scored
}

func groupByCategory(products []types.ProductResult) map[string][]types.ProductResult {
	grouped := make(map[string][]types.ProductResult)
	for _, p := range products {
		grouped[p.Category] = append(grouped[p.Category], p)
	}
	return grouped
}

// generateCombinations pairs every capped top with every capped bottom,
// expanding each pair with shoes or accessories when those categories were
// requested. Accessory variants are emitted alongside, never stacked on
// top of shoe variants. Invalid candidates are dropped silently.
func (a *Assembler) generateCombinations(grouped map[string][]types.ProductResult, prompt *types.ParsedPrompt) []types.Outfit {
	tops := capped(grouped[types.CategoryTop], a.conf.MaxTops)
	bottoms := capped(grouped[types.CategoryBottom], a.conf.MaxBottoms)
	shoes := capped(grouped[types.CategoryShoes], a.conf.MaxShoes)
	accessories := capped(grouped[types.CategoryAccessories], a.conf.MaxAccessories)

	wantShoes := hasCategory(prompt.Categories, types.CategoryShoes)
	wantAccessories := hasCategory(prompt.Categories, types.CategoryAccessories)

	var outfits []types.Outfit
	for _, top := range tops {
		for _, bottom := range bottoms {
			base := []types.ProductItem{top.ToItem(), bottom.ToItem()}

			if wantShoes && len(shoes) > 0 {
				for _, shoe := range shoes {
					appendValid(&outfits, newOutfit(prompt.Aesthetic, base, shoe.ToItem()))
				}
			} else {
				appendValid(&outfits, newOutfit(prompt.Aesthetic, base))
			}

			if wantAccessories && len(accessories) > 0 {
				for _, accessory := range accessories {
					appendValid(&outfits, newOutfit(prompt.Aesthetic, base, accessory.ToItem()))
				}
			}
		}
	}
	return outfits
}

func newOutfit(aesthetic string, base []types.ProductItem, extras ...types.ProductItem) types.Outfit {
	items := make([]types.ProductItem, 0, len(base)+len(extras))
	items = append(items, base...)
	items = append(items, extras...)

	var total float64
	for _, item := range items {
		total += item.Price
	}
	return types.Outfit{Aesthetic: aesthetic, Items: items, TotalPrice: total}
}

func appendValid(outfits *[]types.Outfit, outfit types.Outfit) {
	if validate(outfit) {
		*outfits = append(*outfits, outfit)
	}
}

// validate enforces the outfit invariant: at least one top and one bottom,
// and every affiliate link an absolute URL.
func validate(outfit types.Outfit) bool {
	hasTop, hasBottom := false, false
	for _, item := range outfit.Items {
		switch item.Category {
		case types.CategoryTop:
			hasTop = true
		case types.CategoryBottom:
			hasBottom = true
		}
	}
	if !hasTop || !hasBottom {
		return false
	}

	for _, item := range outfit.Items {
		if !validUrl(item.AffiliateUrl) {
			return false
		}
	}
	return true
}

func validUrl(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func filterByBudget(outfits []types.Outfit, prompt *types.ParsedPrompt) []types.Outfit {
	if prompt.Budget <= 0 {
		return outfits
	}
	maxTotal := prompt.Budget * budgetTolerance

	kept := make([]types.Outfit, 0, len(outfits))
	for _, o := range outfits {
		if o.TotalPrice <= maxTotal {
			kept = append(kept, o)
		}
	}
	return kept
}

// scoreOutfits requests a coherence score per outfit concurrently and
// blends it with the local balance score. A failed model call substitutes
// the pure heuristic score for that outfit.
func (a *Assembler) scoreOutfits(ctx context.Context, outfits []types.Outfit, prompt *types.ParsedPrompt) []types.Outfit {
	if len(outfits) == 0 {
		return outfits
	}

	scored := make([]types.Outfit, len(outfits))
	mr.ForEach(func(source chan<- int) {
		for i := range outfits {
			source <- i
		}
	}, func(i int) {
		outfit := outfits[i]

		summaries := make([]types.ScoreItem, 0, len(outfit.Items))
		for _, item := range outfit.Items {
			summaries = append(summaries, types.ScoreItem{
				Title:    item.Title,
				Category: item.Category,
				Price:    item.Price,
			})
		}

		modelScore, err := a.scorer.ScoreOutfit(ctx, prompt.Aesthetic, summaries)
		if err != nil {
			logx.WithContext(ctx).Infof("model score unavailable, using heuristic: %v", err)
			outfit.Score = heuristicScore(outfit, prompt)
		} else {
			outfit.Score = modelScore*0.6 + balanceScore(outfit)*0.4
		}
		outfit.Scored = true
		scored[i] = outfit
	}, mr.WithWorkers(len(outfits)))

	return scored
}

func scoreOf(o types.Outfit) float64 {
	if !o.Scored {
		return 0
	}
	return o.Score
}

func capped(products []types.ProductResult, max int) []types.ProductResult {
	if len(products) > max {
		return products[:max]
	}
	return products
}

func hasCategory(categories []string, category string) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
