package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUnicode folds text to NFKC and drops format, private-use and
// control runes other than tab, carriage return and line feed. Full-width
// letters and zero-width joiners can no longer split a phrase apart.
func NormalizeUnicode(s string) string {
	if s == "" {
		return s
	}
	s = norm.NFKC.String(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if unicode.In(r, unicode.Cf, unicode.Co, unicode.Cc) {
			return -1
		}
		return r
	}, s)
}
