// Package slug builds URL slugs from product names. Names are mostly
// Ukrainian, so the slugger keeps unicode letters rather than forcing
// ASCII transliteration.
package slug

import (
	"fmt"
	"strings"
	"unicode"
)

const fallback = "product"

// Make lowercases the text, strips punctuation and collapses separator runs
// into single hyphens. Empty results fall back to "product".
func Make(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(lowered))
	lastHyphen := false
	for _, r := range lowered {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}

	out := strings.Trim(b.String(), "-")
	if out == "" {
		return fallback
	}
	return out
}

// WithSuffix appends a numeric counter used to resolve slug collisions.
func WithSuffix(base string, counter int) string {
	return fmt.Sprintf("%s-%d", base, counter)
}
