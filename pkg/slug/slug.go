// Package slug provides URL-safe identifier helpers.
// Slugs are used for publication filenames and field name normalization.
package slug

import (
	"strings"
	"unicode"
)

// asciiFold maps common accented characters to their ASCII equivalents.
// Characters without a mapping that are outside ASCII are dropped.
var asciiFold = map[rune]string{
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "ae",
	'ç': "c", 'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ñ': "n", 'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "u",
	'ý': "y", 'ÿ': "y", 'ß': "ss",
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A", 'Æ': "AE",
	'Ç': "C", 'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ñ': "N", 'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "U", 'Ý': "Y",
}

// ASCII transliterates a string to its closest ASCII representation.
// Unmappable non-ASCII runes are dropped.
func ASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 128 {
			b.WriteRune(r)
			continue
		}
		if repl, ok := asciiFold[r]; ok {
			b.WriteString(repl)
		}
	}
	return b.String()
}

// Kebab converts a string to kebab-case.
// Whitespace runs become single hyphens and upper/lower boundaries
// are split, so both "My Field" and "myField" become "my-field".
func Kebab(s string) string {
	s = ASCII(s)

	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	prevHyphen := true // Suppress leading hyphen
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '_' || r == '-':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower && !prevHyphen {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevHyphen = false
			prevLower = false
		default:
			b.WriteRune(r)
			prevHyphen = false
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Make converts an arbitrary string to a URL slug: lowercase ASCII
// alphanumerics separated by single hyphens. Everything else collapses
// into the separators. Make is idempotent.
func Make(s string) string {
	s = strings.ToLower(ASCII(s))

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		} else {
			pending = true
		}
	}
	return b.String()
}
