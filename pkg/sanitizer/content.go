package sanitizer

import (
	"unicode/utf8"

	"github.com/dmitrymomot/privacykit/pkg/injection"
	"github.com/dmitrymomot/privacykit/pkg/pii"
	"github.com/dmitrymomot/privacykit/pkg/textnorm"
)

// DefaultMaxChars is the default content length limit in runes.
const DefaultMaxChars = 100000

var defaultRedactor = pii.NewRedactor()

// Report describes which steps of SanitizeContent changed the content.
// It is meant for audit logging and never contains the content itself.
type Report struct {
	HTMLStripped      bool     `json:"html_stripped"`
	UnicodeNormalized bool     `json:"unicode_normalized"`
	PIIRedacted       bool     `json:"pii_redacted"`
	InjectionDetected bool     `json:"injection_detected"`
	InjectionPatterns []string `json:"injection_patterns,omitempty"`
	Truncated         bool     `json:"truncated"`
}

// ContentResult is the output of SanitizeContent.
type ContentResult struct {
	Content string `json:"content"`
	Report  Report `json:"metadata"`
}

type contentConfig struct {
	stripHTML        bool
	normalizeUnicode bool
	redactPII        bool
	checkInjection   bool
	maxChars         int
	maxInputBytes    int
	redactor         *pii.Redactor
	neutralizer      *injection.Neutralizer
}

// ContentOption toggles a SanitizeContent step. Every step is on by default.
type ContentOption func(*contentConfig)

// WithStripHTML toggles removal of script and style blocks and of every
// remaining tag, followed by a whitespace collapse.
func WithStripHTML(enabled bool) ContentOption {
	return func(c *contentConfig) { c.stripHTML = enabled }
}

// WithRedactPII toggles replacement of PII with typed placeholders.
func WithRedactPII(enabled bool) ContentOption {
	return func(c *contentConfig) { c.redactPII = enabled }
}

// WithCheckInjection toggles prompt-injection neutralization. Matched
// pattern descriptions are reported in Report.InjectionPatterns.
func WithCheckInjection(enabled bool) ContentOption {
	return func(c *contentConfig) { c.checkInjection = enabled }
}

// WithNormalizeUnicode toggles NFKC folding and invisible rune removal that
// runs before PII and injection matching.
func WithNormalizeUnicode(enabled bool) ContentOption {
	return func(c *contentConfig) { c.normalizeUnicode = enabled }
}

// WithMaxChars sets the final length limit. Zero keeps DefaultMaxChars,
// a negative value disables the check.
func WithMaxChars(n int) ContentOption {
	return func(c *contentConfig) {
		if n != 0 {
			c.maxChars = n
		}
	}
}

// WithContentMaxInputBytes cuts oversized input before any matching.
func WithContentMaxInputBytes(n int) ContentOption {
	return func(c *contentConfig) {
		if n > 0 {
			c.maxInputBytes = n
		}
	}
}

// WithContentRedactor replaces the PII redactor. Nil is ignored.
func WithContentRedactor(r *pii.Redactor) ContentOption {
	return func(c *contentConfig) {
		if r != nil {
			c.redactor = r
		}
	}
}

// WithContentNeutralizer replaces the injection neutralizer. Nil is ignored.
func WithContentNeutralizer(n *injection.Neutralizer) ContentOption {
	return func(c *contentConfig) {
		if n != nil {
			c.neutralizer = n
		}
	}
}

// SanitizeContent is the fast plain-text path: blunt tag stripping, Unicode
// folding, PII redaction, injection neutralization and a final length check.
// Use Sanitize instead when restricted markup must be preserved.
func SanitizeContent(content string, opts ...ContentOption) ContentResult {
	cfg := contentConfig{
		stripHTML:        true,
		normalizeUnicode: true,
		redactPII:        true,
		checkInjection:   true,
		maxChars:         DefaultMaxChars,
		maxInputBytes:    DefaultMaxInputBytes,
		redactor:         defaultRedactor,
		neutralizer:      injection.Default,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var report Report
	s := limitBytes(content, cfg.maxInputBytes)

	if cfg.stripHTML {
		stripped := textnorm.CollapseWhitespace(stripTagsBluntly(s))
		report.HTMLStripped = stripped != s
		s = stripped
	}

	if cfg.normalizeUnicode {
		folded := textnorm.NormalizeUnicode(s)
		report.UnicodeNormalized = folded != s
		s = folded
	}

	if cfg.redactPII {
		redacted := cfg.redactor.Redact(s)
		report.PIIRedacted = redacted != s
		s = redacted
	}

	if cfg.checkInjection {
		res := cfg.neutralizer.Detect(s)
		report.InjectionDetected = res.Detected
		report.InjectionPatterns = res.Patterns
		s = res.Clean
	}

	if cfg.maxChars > 0 {
		if check := ValidateContentLength(s, cfg.maxChars); !check.Valid {
			s = check.Truncated
			report.Truncated = true
		}
	}

	return ContentResult{Content: s, Report: report}
}

// LengthCheck is the outcome of ValidateContentLength.
type LengthCheck struct {
	Valid     bool `json:"valid"`
	Length    int  `json:"length"`
	MaxLength int  `json:"max_length"`
	// Truncated is set only when Valid is false.
	Truncated string `json:"truncated,omitempty"`
}

// ValidateContentLength checks content against maxChars runes (DefaultMaxChars
// when not positive). An invalid result carries a copy cut to maxChars with
// HardTruncationSuffix appended; the caller decides whether to use it.
func ValidateContentLength(content string, maxChars int) LengthCheck {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	n := utf8.RuneCountInString(content)
	check := LengthCheck{Valid: n <= maxChars, Length: n, MaxLength: maxChars}
	if !check.Valid {
		check.Truncated = capRunes(content, maxChars) + textnorm.HardTruncationSuffix
	}
	return check
}
