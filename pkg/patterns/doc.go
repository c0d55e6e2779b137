// Package patterns holds the static pattern tables shared by the privacy
// core: PII shapes, prompt-injection phrases, and the element, attribute and
// URL-scheme tables consulted by the structural HTML sanitizer.
//
// Every table is built once at package initialisation and never mutated
// afterwards, so the values can be shared freely between goroutines.
// Regular expressions use Go's RE2 engine which guarantees linear-time
// matching; the loose digit-run shapes (phones, cards) additionally check
// their neighbours explicitly instead of relying on look-around.
//
// # Usage
//
//	for _, p := range patterns.PII() {
//	    text = p.ReplaceAll(text)
//	}
//
//	if patterns.IsDangerousTag("svg") {
//	    // drop the element with all of its content
//	}
package patterns
