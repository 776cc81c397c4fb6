// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match picks the best DBLP search hit for a title query.
// Titles are compared by their normalized form only; the normalized text is
// an equality key and is never shown to the user.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Normalize folds a title to its comparison key: NFKD decomposition,
// lowercase, every rune outside [a-z0-9] and whitespace dropped, whitespace
// runs collapsed to a single space, and the ends trimmed.
func Normalize(title string) string {
	folded := strings.ToLower(norm.NFKD.String(title))

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
