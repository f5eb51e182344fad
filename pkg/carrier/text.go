package carrier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var unaccenter = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Unaccent strips diacritics from s. Legacy carrier field encodings do not
// accept accented characters.
func Unaccent(s string) string {
	out, _, err := transform.String(unaccenter, s)
	if err != nil {
		return s
	}
	return out
}

// Unspaces removes all embedded whitespace from s, as required for phone
// numbers and e-mail addresses in carrier payloads.
func Unspaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
