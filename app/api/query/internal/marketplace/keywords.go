package marketplace

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"FashionDeck/app/common/types"
)

// searchKeywords builds the query string sent to a marketplace: the
// aesthetic, plus the occasion when one was extracted.
func searchKeywords(prompt *types.ParsedPrompt) string {
	parts := []string{strings.TrimSpace(prompt.Aesthetic)}
	if occ := strings.TrimSpace(prompt.Occasion); occ != "" {
		parts = append(parts, occ)
	}
	return strings.Join(parts, " ")
}

// sign produces the request signature the PA-API gateway expects.
func sign(secret string, parts ...string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
