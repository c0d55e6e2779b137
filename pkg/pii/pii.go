// Package pii redacts personally identifiable information from free text.
//
// Redaction is deterministic pattern matching over the shapes declared in
// package patterns (e-mail addresses, phone numbers, US social security
// numbers, IBANs and card-like digit runs). Each match is replaced by a
// typed placeholder such as "[EMAIL]". It is not a classifier: unusual PII
// formats can slip through, and long numeric identifiers may be redacted as
// cards on purpose.
//
// All functions are pure and safe for concurrent use.
package pii

import (
	"github.com/dmitrymomot/privacykit/pkg/patterns"
)

// Kind aliases patterns.Kind so callers rarely need both imports.
type Kind = patterns.Kind

const (
	Email = patterns.KindEmail
	Phone = patterns.KindPhone
	SSN   = patterns.KindSSN
	Card  = patterns.KindCard
	IBAN  = patterns.KindIBAN
)

// Redactor applies an ordered subset of the PII patterns.
type Redactor struct {
	patterns []patterns.PIIPattern
}

var defaultRedactor = NewRedactor()

// NewRedactor builds a redactor for the given kinds. With no kinds it uses
// every known kind. Pattern order always follows the library order.
func NewRedactor(kinds ...Kind) *Redactor {
	all := patterns.PII()
	if len(kinds) == 0 {
		return &Redactor{patterns: all}
	}

	want := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		want[k] = struct{}{}
	}

	selected := make([]patterns.PIIPattern, 0, len(all))
	for _, p := range all {
		if _, ok := want[p.Kind]; ok {
			selected = append(selected, p)
		}
	}
	return &Redactor{patterns: selected}
}

// Redact replaces every match with its typed placeholder.
func (r *Redactor) Redact(text string) string {
	if text == "" {
		return text
	}
	for _, p := range r.patterns {
		text = p.ReplaceAll(text)
	}
	return text
}

// Detect returns the kinds found in text, in pattern order, without duplicates.
func (r *Redactor) Detect(text string) []Kind {
	if text == "" {
		return nil
	}
	var found []Kind
	for _, p := range r.patterns {
		if !p.MatchString(text) {
			continue
		}
		dup := false
		for _, k := range found {
			if k == p.Kind {
				dup = true
				break
			}
		}
		if !dup {
			found = append(found, p.Kind)
		}
	}
	return found
}

// Contains reports whether text holds any PII match.
func (r *Redactor) Contains(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range r.patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Redact replaces PII in text using every known pattern.
func Redact(text string) string {
	return defaultRedactor.Redact(text)
}

// Detect lists the PII kinds present in text.
func Detect(text string) []Kind {
	return defaultRedactor.Detect(text)
}

// Contains reports whether text holds any PII.
func Contains(text string) bool {
	return defaultRedactor.Contains(text)
}
