package utils

import (
	"strings"
	"unicode"
)

// TitleCase splits CamelCase words and capitalizes each word,
// e.g. "hullComponent" becomes "Hull Component".
func TitleCase(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name) + 4)

	prevLetter := false
	for i, r := range runes {
		if i > 0 && unicode.IsLower(runes[i-1]) && unicode.IsUpper(r) {
			b.WriteRune(' ')
			prevLetter = false
		}
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
