// Package logmask hides sensitive-looking fields in data headed for
// diagnostic logs.
//
// A key is sensitive when its lower-cased name contains one of the configured
// substrings (email, phone, address, name, ssn and card by default). The value
// of a sensitive key is replaced by "[REDACTED]" whatever its type; every
// other object or array is walked recursively. Shape is preserved.
//
// This is a best-effort diagnostic aid. It is not a security boundary and
// must never replace allowlist.Validate for data that leaves the process.
package logmask

import (
	"encoding"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/privacykit/pkg/allowlist"
)

// Redacted replaces the value of every sensitive key.
const Redacted = "[REDACTED]"

// DefaultKeys are the substrings that mark a key as sensitive.
var DefaultKeys = []string{"email", "phone", "address", "name", "ssn", "card"}

// Masker is immutable and safe for concurrent use.
type Masker struct {
	keys []string
}

// New creates a Masker matching the given key substrings, or DefaultKeys
// when none are given.
func New(keys ...string) *Masker {
	if len(keys) == 0 {
		keys = DefaultKeys
	}
	m := &Masker{keys: make([]string, 0, len(keys))}
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			m.keys = append(m.keys, k)
		}
	}
	return m
}

var defaultMasker = New()

// IsSensitiveKey reports whether values under key are masked.
func (m *Masker) IsSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, k := range m.keys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}

// Value masks an allowlist.Value.
func (m *Masker) Value(v allowlist.Value) allowlist.Value {
	switch v.Kind() {
	case allowlist.KindObject:
		fields := v.Fields()
		for i, f := range fields {
			if m.IsSensitiveKey(f.Key) {
				fields[i].Value = allowlist.String(Redacted)
				continue
			}
			fields[i].Value = m.Value(f.Value)
		}
		return allowlist.Object(fields...)
	case allowlist.KindArray:
		items := v.Items()
		for i, item := range items {
			items[i] = m.Value(item)
		}
		return allowlist.Array(items...)
	default:
		return v
	}
}

// Any masks plain Go data. Maps with string keys and slices keep their
// type; structs are converted to map[string]any through their json tags.
// A json.RawMessage is parsed and returned as a masked allowlist.Value.
// Errors and values that format themselves are returned unchanged, as is
// anything else.
func (m *Masker) Any(x any) any {
	switch t := x.(type) {
	case nil:
		return nil
	case allowlist.Value:
		return m.Value(t)
	case json.RawMessage:
		return m.rawJSON(t)
	case error, fmt.Stringer, json.Marshaler, encoding.TextMarshaler:
		return x
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, v := range t {
			if m.IsSensitiveKey(k) {
				out[k] = Redacted
				continue
			}
			out[k] = m.Any(v)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, v := range t {
			out[i] = m.Any(v)
		}
		return out
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return x
		}
		return m.maskMap(rv)
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return x
		}
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = m.Any(rv.Index(i).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return x
		}
		if rv.Elem().Kind() != reflect.Struct {
			return m.Any(rv.Elem().Interface())
		}
		return m.maskStruct(x)
	case reflect.Struct:
		return m.maskStruct(x)
	default:
		return x
	}
}

func (m *Masker) maskMap(rv reflect.Value) any {
	elem := rv.Type().Elem()
	out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
	redacted := reflect.ValueOf(Redacted)
	sameType := true

	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key()
		var v reflect.Value
		if m.IsSensitiveKey(k.String()) {
			v = redacted
		} else {
			v = reflect.ValueOf(m.Any(iter.Value().Interface()))
		}
		if !v.IsValid() {
			v = reflect.Zero(elem)
		}
		if !v.Type().AssignableTo(elem) {
			sameType = false
			break
		}
		out.SetMapIndex(k, v)
	}
	if sameType {
		return out.Interface()
	}

	// the masked values no longer fit the element type, e.g. map[string]int
	generic := make(map[string]any, rv.Len())
	iter = rv.MapRange()
	for iter.Next() {
		k := iter.Key().String()
		if m.IsSensitiveKey(k) {
			generic[k] = Redacted
			continue
		}
		generic[k] = m.Any(iter.Value().Interface())
	}
	return generic
}

// rawJSON masks an encoded document. Input that does not parse is hidden
// whole since its keys cannot be checked.
func (m *Masker) rawJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return raw
	}
	v, err := allowlist.ParseJSON(raw)
	if err != nil {
		return Redacted
	}
	return m.Value(v)
}

func (m *Masker) maskStruct(x any) any {
	v, err := allowlist.FromAny(x)
	if err != nil {
		return Redacted
	}
	return m.Value(v).Any()
}

// MaskForLogging masks x with DefaultKeys.
func MaskForLogging(x any) any {
	return defaultMasker.Any(x)
}

// MaskValue masks an allowlist.Value with DefaultKeys.
func MaskValue(v allowlist.Value) allowlist.Value {
	return defaultMasker.Value(v)
}

// IsSensitiveKey reports whether key matches DefaultKeys.
func IsSensitiveKey(key string) bool {
	return defaultMasker.IsSensitiveKey(key)
}
