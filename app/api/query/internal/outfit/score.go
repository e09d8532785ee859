package outfit

import (
	"math"

	"FashionDeck/app/common/types"
)

// balanceScore rates an outfit on composition alone: half for item
// variety (four items is "complete"), half for keeping item prices near
// each other.
func balanceScore(outfit types.Outfit) float64 {
	variety := math.Min(float64(len(outfit.Items))/4, 1)
	spread := 1 - math.Min(priceStdDev(outfit.Items)/1000, 1)
	return variety*0.5 + spread*0.5
}

// heuristicScore is the scoring path when the model is unreachable. It
// starts at a neutral 0.5 and rewards completeness, staying under budget
// and a tight price spread, capped at 1.
func heuristicScore(outfit types.Outfit, prompt *types.ParsedPrompt) float64 {
	score := 0.5
	if len(outfit.Items) >= 3 {
		score += 0.2
	}
	if prompt.Budget > 0 && outfit.TotalPrice <= prompt.Budget {
		score += 0.2
	}
	if priceStdDev(outfit.Items) < 500 {
		score += 0.1
	}
	return math.Min(score, 1)
}

// priceStdDev is the population standard deviation of item prices.
func priceStdDev(items []types.ProductItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, item := range items {
		sum += item.Price
	}
	mean := sum / float64(len(items))

	var variance float64
	for _, item := range items {
		d := item.Price - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(items)))
}
