package patterns

import (
	"regexp"
	"strings"
)

var dangerousTags = map[string]struct{}{
	"script": {}, "iframe": {}, "object": {}, "embed": {}, "applet": {},
	"link": {}, "meta": {}, "svg": {}, "foreignobject": {}, "math": {},
	"template": {}, "slot": {}, "form": {}, "input": {}, "select": {},
	"button": {}, "textarea": {}, "noscript": {}, "style": {},
	// raw-text and document-level elements rendered verbatim by browsers
	"xmp": {}, "plaintext": {}, "noembed": {}, "noframes": {},
	"frame": {}, "frameset": {}, "base": {},
}

var voidTags = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {},
	"img": {}, "input": {}, "keygen": {}, "link": {}, "meta": {},
	"param": {}, "source": {}, "track": {}, "wbr": {},
}

// URLAttributes lists the attribute names whose values are treated as URLs.
var URLAttributes = []string{
	"href", "src", "xlink:href",
	"action", "formaction", "poster", "background",
}

// IsDangerousTag reports whether the element must be removed with its content.
func IsDangerousTag(name string) bool {
	_, ok := dangerousTags[strings.ToLower(name)]
	return ok
}

// IsVoidTag reports whether the element never has content.
func IsVoidTag(name string) bool {
	_, ok := voidTags[strings.ToLower(name)]
	return ok
}

// IsDangerousVoidTag reports whether the tag is both dangerous and void,
// e.g. <meta>, <link>, <input>, <embed>.
func IsDangerousVoidTag(name string) bool {
	return IsDangerousTag(name) && IsVoidTag(name)
}

// IsURLAttribute reports whether the attribute carries a URL.
func IsURLAttribute(name string) bool {
	name = strings.ToLower(name)
	for _, a := range URLAttributes {
		if a == name {
			return true
		}
	}
	return false
}

// IsEventHandler reports whether the attribute is an on* handler.
func IsEventHandler(name string) bool {
	return len(name) >= 2 && strings.EqualFold(name[:2], "on")
}

var (
	schemeRegex    = regexp.MustCompile(`^([a-z][a-z0-9+.-]*):`)
	dataImageRegex = regexp.MustCompile(`^data:image/(?:png|jpeg|jpg|gif|webp);base64,`)

	cssCommentRegex    = regexp.MustCompile(`/\*.*?\*/`)
	cssExpressionRegex = regexp.MustCompile(`expression\s*\(`)
	cssJSURLRegex      = regexp.MustCompile(`url\s*\(\s*['"]?\s*(?:javascript|vbscript)\s*:`)
)

// normalizeURL removes every whitespace and control character and lowercases
// the value, so "Java\tScript:" compares equal to "javascript:".
func normalizeURL(raw string) string {
	return strings.Map(func(r rune) rune {
		if r <= ' ' || r == 0x7f {
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(raw)))
}

// IsSafeURL reports whether a URL attribute value may be kept: http(s),
// mailto, scheme-less relative references and base64 raster images only.
func IsSafeURL(raw string) bool {
	v := normalizeURL(raw)
	if v == "" {
		return true
	}

	switch {
	case strings.HasPrefix(v, "javascript:"),
		strings.HasPrefix(v, "vbscript:"),
		strings.HasPrefix(v, "data:text/html"):
		return false
	case strings.HasPrefix(v, "data:"):
		return dataImageRegex.MatchString(v)
	}

	m := schemeRegex.FindStringSubmatch(v)
	if m == nil {
		return true
	}
	switch m[1] {
	case "http", "https", "mailto":
		return true
	default:
		return false
	}
}

// SanitizeStyle cleans an inline style value. It returns false when the
// attribute must be dropped: scriptable CSS was found or nothing is left
// after removing background declarations.
func SanitizeStyle(raw string) (string, bool) {
	v := strings.ToLower(raw)
	probe := cssCommentRegex.ReplaceAllString(v, "")
	probe = strings.ReplaceAll(probe, `\`, "")
	if cssExpressionRegex.MatchString(probe) || cssJSURLRegex.MatchString(probe) {
		return "", false
	}

	decls := strings.Split(v, ";")
	kept := make([]string, 0, len(decls))
	for _, d := range decls {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		prop, _, _ := strings.Cut(d, ":")
		if strings.HasPrefix(strings.TrimSpace(prop), "background") {
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) == 0 {
		return "", false
	}
	return strings.Join(kept, "; "), true
}
