package catalog

import (
	"strings"
	"unicode"
)

// Normalize lowercases text and strips punctuation. Apostrophes are
// dropped ("shouldn't" -> "shouldnt"); other punctuation becomes a space
// ("security-audit" -> "security audit"). Both queries and indexed
// keywords pass through the same normalization so token comparisons are
// exact.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// dropped
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokenize normalizes text and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
