package textnorm

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	blockTagRegex  = regexp.MustCompile(`(?i)</?(?:p|div|br|hr|h[1-6])\b[^>]*>`)
	listCloseRegex = regexp.MustCompile(`(?i)</li\s*>`)
	listOpenRegex  = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	anyTagRegex    = regexp.MustCompile(`<[^>]*>`)
	entityRegex    = regexp.MustCompile(`&(#[xX][0-9a-fA-F]{1,6}|#[0-9]{1,7}|[a-zA-Z]{2,8});`)
)

var namedEntities = map[string]string{
	"nbsp":   " ",
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"bull":   "•",
	"middot": "·",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"euro":   "€",
	"pound":  "£",
}

// HTMLToText converts markup into plain text. Block elements become line
// breaks, list items become bullets, remaining tags are dropped and entities
// are decoded in a single pass.
func HTMLToText(s string) string {
	if s == "" {
		return s
	}
	s = blockTagRegex.ReplaceAllString(s, "\n")
	s = listCloseRegex.ReplaceAllString(s, "\n")
	s = listOpenRegex.ReplaceAllString(s, "\n• ")
	s = anyTagRegex.ReplaceAllString(s, "")
	return DecodeEntities(s)
}

// DecodeEntities decodes the fixed named entity table plus decimal and
// hexadecimal numeric references. Unknown entities are left untouched.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return entityRegex.ReplaceAllStringFunc(s, func(m string) string {
		body := m[1 : len(m)-1]
		if body[0] != '#' {
			if v, ok := namedEntities[strings.ToLower(body)]; ok {
				return v
			}
			return m
		}

		var (
			n   uint64
			err error
		)
		if body[1] == 'x' || body[1] == 'X' {
			n, err = strconv.ParseUint(body[2:], 16, 32)
		} else {
			n, err = strconv.ParseUint(body[1:], 10, 32)
		}
		if err != nil || n == 0 || n > 0x10FFFF || (n >= 0xD800 && n <= 0xDFFF) {
			return m
		}
		return string(rune(n))
	})
}
