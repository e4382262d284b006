package ticket

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// stripMarks removes combining diacritical marks after NFD decomposition,
// so "Petición" and "Peticion" normalize to the same key.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader maps a raw CSV header to its canonical lookup key:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Strip diacritical marks
// 4. Collapse internal whitespace to single spaces
//
// The function is total and idempotent; it never fails.
func NormalizeHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	s = whitespaceRegex.ReplaceAllString(s, " ")

	return s
}

// affirmativeTokens are the spellings accepted as "yes" in the answered
// column. Both the accented and unaccented Spanish forms are listed; no
// diacritic folding is applied to cell values.
var affirmativeTokens = map[string]bool{
	"si":   true,
	"sí":   true,
	"yes":  true,
	"true": true,
	"1":    true,
}

// IsAffirmative reports whether a free-text cell value counts as "yes".
// Matching is exact after trim + lowercase, never substring. Empty or
// unrecognized values are negative.
func IsAffirmative(s string) bool {
	return affirmativeTokens[strings.ToLower(strings.TrimSpace(s))]
}
