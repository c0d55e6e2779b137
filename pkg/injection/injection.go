// Package injection neutralizes prompt-injection phrases in untrusted text
// before it is embedded into a prompt for a generative model.
//
// Detection is phrase matching, not semantic analysis. Every match of every
// pattern is replaced by the fixed marker "[user instruction redacted]".
// Novel phrasing will not be caught, and legitimate text that happens to
// contain one of the phrases will be rewritten.
package injection

import (
	"errors"

	"github.com/dmitrymomot/privacykit/pkg/patterns"
)

// Marker replaces every detected phrase.
const Marker = patterns.InjectionMarker

// ErrInvalidPattern is returned when a custom pattern does not compile.
var ErrInvalidPattern = errors.New("invalid injection pattern")

// Result describes a neutralization pass.
type Result struct {
	// Clean is the text with every match replaced by Marker.
	Clean string
	// Detected is true iff Clean differs from the input.
	Detected bool
	// Patterns lists the descriptions of the patterns that matched,
	// in pattern order, each at most once.
	Patterns []string
}

// Neutralizer holds an ordered, immutable pattern list.
type Neutralizer struct {
	patterns []patterns.InjectionPattern
}

// Default uses the built-in pattern set.
var Default = &Neutralizer{patterns: patterns.Injection()}

// New builds a neutralizer from the built-in set followed by extra
// case-insensitive expressions. Each extra expression is described by its
// own source.
func New(extra ...string) (*Neutralizer, error) {
	ps := patterns.Injection()
	for _, expr := range extra {
		p, err := patterns.NewInjectionPattern(expr, expr)
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		ps = append(ps, p)
	}
	return &Neutralizer{patterns: ps}, nil
}

// Detect neutralizes text and reports what was found.
func (n *Neutralizer) Detect(text string) Result {
	res := Result{Clean: text}
	if text == "" {
		return res
	}

	for _, p := range n.patterns {
		if !p.Regexp.MatchString(res.Clean) {
			continue
		}
		res.Clean = p.Regexp.ReplaceAllLiteralString(res.Clean, Marker)
		res.Patterns = append(res.Patterns, p.Description)
	}
	res.Detected = res.Clean != text
	return res
}

// Neutralize returns text with every injection phrase replaced.
func (n *Neutralizer) Neutralize(text string) string {
	return n.Detect(text).Clean
}

// Detect runs the built-in patterns over text.
func Detect(text string) Result {
	return Default.Detect(text)
}

// Neutralize runs the built-in patterns over text and returns the clean copy.
func Neutralize(text string) string {
	return Default.Neutralize(text)
}
