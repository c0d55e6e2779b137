// Package sanitizer cleans untrusted content before it is displayed back to a
// user or embedded into a prompt for a generative model.
//
// Two entry points are provided:
//
//   - Sanitize is the structural sanitizer. It parses input with a lenient
//     HTML5 parser (golang.org/x/net/html), removes dangerous elements as a
//     unit (script, iframe, svg, form controls, noscript, style, …), strips
//     event handler attributes, rejects scriptable URL schemes and CSS
//     expressions, and serializes the remaining tree either as plain text or
//     as restricted markup. The serialized string then has PII redacted and
//     prompt-injection phrases neutralized, and is finally cut to MaxLen.
//
//   - SanitizeContent is the fast plain-text path. It strips script and style
//     blocks and then every tag with regular expressions, folds Unicode,
//     redacts PII, neutralizes injection phrases and enforces a length limit.
//     It returns a Report telling which steps actually changed the content.
//
// ValidateContentLength is a side-effect free length guard.
//
// # Usage
//
//	clean := sanitizer.Sanitize(bio, sanitizer.DefaultOptions())
//
//	res := sanitizer.SanitizeContent(upload)
//	if res.Report.InjectionDetected {
//	    log.Warn("injection attempt", "patterns", res.Report.InjectionPatterns)
//	}
//
// # Error handling
//
// None of the helpers returns an error. When markup cannot be parsed every tag
// is stripped bluntly and redaction still runs, so raw untrusted markup is
// never returned.
//
// # Concurrency
//
// The package keeps no mutable state. A Sanitizer built with New is immutable
// and may be shared between goroutines.
package sanitizer
