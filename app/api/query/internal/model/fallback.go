package model

import (
	"regexp"
	"strconv"
	"strings"

	"FashionDeck/app/common/types"
)

var firstNumber = regexp.MustCompile(`\d+`)

// FallbackParse is the terminal safety net for prompt understanding when
// the model service is unreachable: a deterministic keyword scan that can
// never fail. The aesthetic is the whole prompt verbatim; categories
// default to top+bottom.
func FallbackParse(prompt string) *types.ParsedPrompt {
	lower := strings.ToLower(prompt)

	parsed := &types.ParsedPrompt{
		Aesthetic:  prompt,
		Categories: []string{types.CategoryTop, types.CategoryBottom},
	}

	if match := firstNumber.FindString(lower); match != "" {
		if budget, err := strconv.ParseFloat(match, 64); err == nil && budget > 0 {
			parsed.Budget = budget
		}
	}

	// Size tokens checked in priority order; generic words only match as
	// padded whole words so "xl" doesn't fire inside "xxl".
	switch {
	case strings.Contains(lower, " xs ") || strings.Contains(lower, "extra small"):
		parsed.Size = "XS"
	case strings.Contains(lower, " s ") || strings.Contains(lower, "small"):
		parsed.Size = "S"
	case strings.Contains(lower, " m ") || strings.Contains(lower, "medium"):
		parsed.Size = "M"
	case strings.Contains(lower, " l ") || strings.Contains(lower, "large"):
		parsed.Size = "L"
	case strings.Contains(lower, " xl ") || strings.Contains(lower, "extra large"):
		parsed.Size = "XL"
	case strings.Contains(lower, "xxl") || strings.Contains(lower, "2xl"):
		parsed.Size = "XXL"
	}

	switch {
	case strings.Contains(lower, "men") || strings.Contains(lower, "male"):
		parsed.Gender = types.GenderMale
	case strings.Contains(lower, "women") || strings.Contains(lower, "female"):
		parsed.Gender = types.GenderFemale
	default:
		parsed.Gender = types.GenderUnisex
	}

	return parsed
}
