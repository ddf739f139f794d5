// Package qcache provides question normalization for the shared answer
// cache. Two phrasings that differ only in case, punctuation, or spacing
// should land on the same cache row.
package qcache

import (
	"strings"
	"unicode"
)

// Normalize canonicalizes a question for cache keying:
// "What are the THA's powers?" becomes "what are the thas powers".
// Apostrophes are removed outright so possessives collapse onto the bare
// word; other punctuation becomes a word boundary.
func Normalize(question string) string {
	lowered := strings.ToLower(question)

	var b strings.Builder
	b.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		switch {
		case r == '\'' || r == '‘' || r == '’':
			// drop
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}

	return strings.TrimSpace(b.String())
}
