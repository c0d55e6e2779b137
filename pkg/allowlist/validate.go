package allowlist

import (
	"strconv"

	"github.com/dmitrymomot/privacykit/pkg/pii"
)

// Reason explains why a payload was rejected.
type Reason string

const (
	ReasonEmptyPayload Reason = "empty_payload"
	ReasonPIIDetected  Reason = "pii_detected_in_allowlisted_data"
)

// Finding is a leaf of a filtered payload that matched a PII pattern. It
// never carries the matched value.
type Finding struct {
	Path  string     `json:"path"`
	Kinds []pii.Kind `json:"kinds"`
}

// Result is the outcome of Validate. Payload is set only when Safe is true;
// callers must branch on Safe and abort the outbound call otherwise.
type Result struct {
	Safe     bool      `json:"safe"`
	Payload  Value     `json:"payload,omitzero"`
	Reason   Reason    `json:"reason,omitempty"`
	Findings []Finding `json:"findings,omitempty"`
}

// Validate filters payload and fails closed when the result is empty or
// any retained leaf contains PII. A rejected payload is discarded, not
// redacted.
func (s *Schema) Validate(payload Value) Result {
	filtered := s.Filter(payload)
	if filtered.Len() == 0 {
		return Result{Reason: ReasonEmptyPayload}
	}
	if findings := ScanPII(filtered); len(findings) > 0 {
		return Result{Reason: ReasonPIIDetected, Findings: findings}
	}
	return Result{Safe: true, Payload: filtered}
}

// WalkFunc is called for every node of a Value with its path. Object members
// extend the path with ".key", array items with "[i]". Returning false skips
// the children of the node.
type WalkFunc func(path string, v Value) bool

// Walk visits v and its descendants in document order.
func Walk(v Value, fn WalkFunc) {
	walk("", v, fn)
}

func walk(path string, v Value, fn WalkFunc) {
	if !fn(path, v) {
		return
	}
	switch v.kind {
	case KindArray:
		for i, item := range v.items {
			walk(path+"["+strconv.Itoa(i)+"]", item, fn)
		}
	case KindObject:
		for _, f := range v.fields {
			p := f.Key
			if path != "" {
				p = path + "." + f.Key
			}
			walk(p, f.Value, fn)
		}
	}
}

// ScanPII reports every string or number leaf matching a PII pattern.
// Numbers are scanned in their shortest decimal form.
func ScanPII(v Value) []Finding {
	var findings []Finding
	Walk(v, func(path string, node Value) bool {
		var text string
		switch node.kind {
		case KindString:
			text = node.s
		case KindNumber:
			text = strconv.FormatFloat(node.n, 'f', -1, 64)
		default:
			return true
		}
		if kinds := pii.Detect(text); len(kinds) > 0 {
			findings = append(findings, Finding{Path: path, Kinds: kinds})
		}
		return true
	})
	return findings
}
