package patterns

import (
	"regexp"
	"strings"
)

// Kind names a category of personally identifiable information.
type Kind string

const (
	KindEmail Kind = "email"
	KindPhone Kind = "phone"
	KindSSN   Kind = "ssn"
	KindCard  Kind = "card"
	KindIBAN  Kind = "iban"
)

// Placeholder returns the marker that replaces a match of this kind.
func (k Kind) Placeholder() string {
	switch k {
	case KindEmail:
		return "[EMAIL]"
	case KindPhone:
		return "[PHONE]"
	case KindSSN:
		return "[SSN]"
	case KindCard:
		return "[CARD]"
	case KindIBAN:
		return "[IBAN]"
	default:
		return "[REDACTED]"
	}
}

// boundary decides whether the bytes around a match allow it to count.
type boundary func(s string, start, end int) bool

// PIIPattern is a single compiled PII shape.
type PIIPattern struct {
	Kind  Kind
	re    *regexp.Regexp
	guard boundary
}

// ReplaceAll substitutes every accepted match with the kind's placeholder.
func (p PIIPattern) ReplaceAll(s string) string {
	if p.guard == nil {
		return p.re.ReplaceAllLiteralString(s, p.Kind.Placeholder())
	}

	locs := p.matches(s, -1)
	if len(locs) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, loc := range locs {
		b.WriteString(s[last:loc[0]])
		b.WriteString(p.Kind.Placeholder())
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// MatchString reports whether s contains at least one accepted match.
func (p PIIPattern) MatchString(s string) bool {
	if p.guard == nil {
		return p.re.MatchString(s)
	}
	return len(p.matches(s, 1)) > 0
}

// matches returns up to n accepted matches (all when n < 0). A match the
// guard rejects may have swallowed separators and digits of a valid match
// behind it, so the scan resumes at the end of the digit run the rejected
// match started in rather than at its end.
func (p PIIPattern) matches(s string, n int) [][2]int {
	var out [][2]int
	for pos := 0; pos < len(s) && n != 0; {
		loc := p.re.FindStringIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if end > start && p.guard(s, start, end) {
			out = append(out, [2]int{start, end})
			n--
			pos = end
			continue
		}
		// every guard rejects a start preceded by a digit
		pos = start + 1
		for pos < len(s) && isDigit(s[pos-1]) && isDigit(s[pos]) {
			pos++
		}
	}
	return out
}

// String returns the source expression.
func (p PIIPattern) String() string {
	return p.re.String()
}

var (
	emailRegex = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(?:\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}`)

	// (555) 123-4567, 555.123.4567, +1 555 123 4567, 5551234567
	phone10Regex = regexp.MustCompile(`(?:\+?1[ .-]?)?(?:\(\d{3}\)|\d{3})[ .-]?\d{3}[ .-]?\d{4}`)

	// 555-1234, 555.1234
	phone7Regex = regexp.MustCompile(`\d{3}[.-]\d{4}`)

	ssnRegex = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)

	ibanRegex = regexp.MustCompile(`\b[A-Z]{2}\d{2}(?: ?[A-Z0-9]{4}){2,7}(?: ?[A-Z0-9]{1,4})?\b`)

	// 13 to 19 digits, single space or dash between any two of them.
	cardRegex = regexp.MustCompile(`\d(?:[ -]?\d){12,18}`)
)

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlnum(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// digitGuard rejects matches that sit inside a longer digit run.
func digitGuard(s string, start, end int) bool {
	if start > 0 && isDigit(s[start-1]) {
		return false
	}
	if end < len(s) && isDigit(s[end]) {
		return false
	}
	return true
}

// alnumGuard rejects matches glued to letters or digits on either side.
func alnumGuard(s string, start, end int) bool {
	if start > 0 && isAlnum(s[start-1]) {
		return false
	}
	if end < len(s) && isAlnum(s[end]) {
		return false
	}
	return true
}

// ssnGuard additionally refuses a trailing "-digit" so that longer
// dash-separated numbers are left to the card shape.
func ssnGuard(s string, start, end int) bool {
	if !digitGuard(s, start, end) {
		return false
	}
	if start > 1 && s[start-1] == '-' && isDigit(s[start-2]) {
		return false
	}
	if end+1 < len(s) && s[end] == '-' && isDigit(s[end+1]) {
		return false
	}
	return true
}

var piiPatterns = []PIIPattern{
	{Kind: KindEmail, re: emailRegex},
	{Kind: KindPhone, re: phone10Regex, guard: digitGuard},
	{Kind: KindPhone, re: phone7Regex, guard: ssnGuard},
	{Kind: KindSSN, re: ssnRegex, guard: ssnGuard},
	{Kind: KindIBAN, re: ibanRegex},
	{Kind: KindCard, re: cardRegex, guard: alnumGuard},
}

// PII returns the ordered PII pattern set. The returned slice is a copy;
// the compiled expressions inside are shared and safe for concurrent use.
func PII() []PIIPattern {
	out := make([]PIIPattern, len(piiPatterns))
	copy(out, piiPatterns)
	return out
}

// PIIKinds returns every kind in application order without duplicates.
func PIIKinds() []Kind {
	kinds := make([]Kind, 0, len(piiPatterns))
	seen := make(map[Kind]struct{}, len(piiPatterns))
	for _, p := range piiPatterns {
		if _, ok := seen[p.Kind]; ok {
			continue
		}
		seen[p.Kind] = struct{}{}
		kinds = append(kinds, p.Kind)
	}
	return kinds
}
