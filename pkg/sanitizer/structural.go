package sanitizer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/dmitrymomot/privacykit/pkg/injection"
	"github.com/dmitrymomot/privacykit/pkg/patterns"
	"github.com/dmitrymomot/privacykit/pkg/pii"
)

// DefaultMaxInputBytes caps the input accepted by Sanitize and SanitizeContent.
const DefaultMaxInputBytes = 1 << 20

// Options controls a single Sanitize call.
type Options struct {
	// StripHTML returns plain text instead of restricted markup.
	StripHTML bool
	// StripAllStyles removes style attributes instead of cleansing them.
	StripAllStyles bool
	// MaxLen hard-cuts the output to this many runes; zero disables the cap.
	MaxLen int
}

// DefaultOptions returns plain-text output with every style attribute removed.
func DefaultOptions() Options {
	return Options{StripHTML: true, StripAllStyles: true}
}

// Sanitizer removes dangerous markup and then redacts PII and injection
// phrases from the serialized result. A Sanitizer is immutable and safe for
// concurrent use.
type Sanitizer struct {
	parser        Parser
	redactor      *pii.Redactor
	neutralizer   *injection.Neutralizer
	maxDepth      int
	maxInputBytes int
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithParser replaces the default x/net/html parser. Nil is ignored.
func WithParser(p Parser) Option {
	return func(s *Sanitizer) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithRedactor replaces the PII redactor run on the serialized output.
// Nil is ignored.
func WithRedactor(r *pii.Redactor) Option {
	return func(s *Sanitizer) {
		if r != nil {
			s.redactor = r
		}
	}
}

// WithNeutralizer replaces the injection neutralizer run after PII
// redaction. Nil is ignored.
func WithNeutralizer(n *injection.Neutralizer) Option {
	return func(s *Sanitizer) {
		if n != nil {
			s.neutralizer = n
		}
	}
}

// WithMaxDepth bounds the element nesting that survives sanitization.
func WithMaxDepth(depth int) Option {
	return func(s *Sanitizer) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithMaxInputBytes cuts oversized input before any parsing or matching.
func WithMaxInputBytes(n int) Option {
	return func(s *Sanitizer) {
		if n > 0 {
			s.maxInputBytes = n
		}
	}
}

// New creates a Sanitizer with the given options applied over the defaults.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		parser:        HTMLParser{},
		redactor:      defaultRedactor,
		neutralizer:   injection.Default,
		maxDepth:      DefaultMaxDepth,
		maxInputBytes: DefaultMaxInputBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSanitizer = New()

// Sanitize cleans input with the default Sanitizer.
func Sanitize(input string, opts Options) string {
	return defaultSanitizer.Sanitize(input, opts)
}

// Sanitize treats input as untrusted markup. It never fails: when the markup
// cannot be parsed every tag is stripped bluntly instead.
func (s *Sanitizer) Sanitize(input string, opts Options) string {
	input = limitBytes(input, s.maxInputBytes)
	input = dropUnclosedScript(input)

	root, ok := s.parse(input)
	if !ok {
		return s.fallback(input, opts)
	}

	s.clean(root, opts)

	var out string
	if opts.StripHTML {
		out = textContent(root)
	} else {
		out, ok = renderChildren(root)
		if !ok {
			return s.fallback(input, opts)
		}
	}
	return s.finish(strings.TrimSpace(out), opts)
}

func (s *Sanitizer) parse(input string) (root *html.Node, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			root, ok = nil, false
		}
	}()
	return s.parser.TryParse(input)
}

func (s *Sanitizer) fallback(input string, opts Options) string {
	out := stripTagsBluntly(input)
	out = defangText(out)
	return s.finish(strings.TrimSpace(out), opts)
}

// finish redacts PII before rewriting phrases so that phrase patterns never
// match across a redaction boundary.
func (s *Sanitizer) finish(out string, opts Options) string {
	out = s.redactor.Redact(out)
	out = s.neutralizer.Neutralize(out)
	return capRunes(out, opts.MaxLen)
}

// clean walks the tree, marking dangerous nodes and scrubbing attributes on
// the rest. Marked nodes are detached only after the walk finishes.
func (s *Sanitizer) clean(root *html.Node, opts Options) {
	var marked []*html.Node

	var walk func(n *html.Node, depth int)
	walk = func(n *html.Node, depth int) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.ElementNode:
				if depth >= s.maxDepth || !validTagName(c.Data) || patterns.IsDangerousTag(c.Data) {
					marked = append(marked, c)
					continue
				}
				c.Attr = cleanAttributes(c.Attr, opts)
				walk(c, depth+1)
			case html.TextNode:
				c.Data = defangText(c.Data)
			default:
				// comments, doctypes and raw nodes never reach the output
				marked = append(marked, c)
			}
		}
	}
	walk(root, 0)
	detach(marked)

	// a lenient parser may keep self-closing variants that the paired walk
	// did not see as elements of the same kind
	marked = marked[:0]
	var sweep func(n *html.Node)
	sweep = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if patterns.IsDangerousVoidTag(c.Data) {
				marked = append(marked, c)
				continue
			}
			sweep(c)
		}
	}
	sweep(root)
	detach(marked)
}

// validTagName rejects element names produced from malformed tags such as
// "<scr<script>".
func validTagName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-'):
		default:
			return false
		}
	}
	return true
}

func detach(nodes []*html.Node) {
	for _, n := range nodes {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func cleanAttributes(attrs []html.Attribute, opts Options) []html.Attribute {
	if len(attrs) == 0 {
		return attrs
	}

	kept := attrs[:0]
	for _, a := range attrs {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}

		// e.g. data-onload="..." or title="javascript:..."
		if attrVectorRegex.MatchString(name) || attrVectorRegex.MatchString(a.Val) {
			continue
		}

		switch {
		case patterns.IsEventHandler(a.Key):
			continue
		case patterns.IsURLAttribute(name):
			if !patterns.IsSafeURL(a.Val) {
				continue
			}
		case strings.EqualFold(a.Key, "style"):
			if opts.StripAllStyles {
				continue
			}
			v, ok := patterns.SanitizeStyle(a.Val)
			if !ok {
				continue
			}
			a.Val = v
		}
		kept = append(kept, a)
	}
	return kept
}

func textContent(root *html.Node) string {
	var b strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				b.WriteString(c.Data)
			case html.ElementNode:
				collect(c)
			}
		}
	}
	collect(root)
	return b.String()
}

func renderChildren(root *html.Node) (string, bool) {
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", false
		}
	}
	return b.String(), true
}

// defangText removes markup and script vectors that appear in decoded text,
// e.g. "&lt;script&gt;" turning into a literal tag.
func defangText(s string) string {
	if s == "" {
		return s
	}
	s = tagResidueRegex.ReplaceAllString(s, "")
	s = scriptURIRegex.ReplaceAllString(s, "")
	return cssExpressionRgx.ReplaceAllString(s, "(")
}

// dropUnclosedScript cuts the input at a <script opening that has no
// closing tag after it. A parser would otherwise swallow or re-home the
// remainder in ways that differ between implementations.
func dropUnclosedScript(s string) string {
	const open, closing = "<script", "</script"

	from := 0
	if i := lastIndexFold(s, closing); i >= 0 {
		from = i + len(closing)
	}
	if i := indexFold(s[from:], open); i >= 0 {
		return s[:from+i]
	}
	return s
}

func limitBytes(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if r != utf8.RuneError || size > 1 {
			break
		}
		s = s[:len(s)-1]
	}
	return s
}

func capRunes(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func lastIndexFold(s, substr string) int {
	n := len(substr)
	for i := len(s) - n; i >= 0; i-- {
		if equalFoldASCII(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}
