package allowlist

import (
	"fmt"
	"regexp"
	"strings"
)

// ArrayWildcard is the path segment suffix that matches any array index.
const ArrayWildcard = "[]"

var pathRegex = regexp.MustCompile(`^[A-Za-z0-9_$-]+(?:\[\])*(?:\.[A-Za-z0-9_$-]+(?:\[\])*)*$`)

// Category names an allowlist.
type Category string

const (
	Campaign  Category = "campaign"
	Analytics Category = "analytics"
)

// Schema is the static allowlist of one category: an ordered, deduplicated
// set of dotted field paths. A Schema is immutable.
type Schema struct {
	category Category
	paths    []string
	exact    map[string]struct{}
	arrays   map[string]struct{}
}

// NewSchema validates and deduplicates paths, keeping their first order.
func NewSchema(category Category, paths ...string) (*Schema, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: empty category name", ErrInvalidDefinition)
	}

	s := &Schema{
		category: category,
		exact:    make(map[string]struct{}, len(paths)),
		arrays:   make(map[string]struct{}),
	}
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if !pathRegex.MatchString(p) {
			return nil, fmt.Errorf("%w: %q in category %q", ErrInvalidPath, p, category)
		}
		if _, dup := s.exact[p]; dup {
			continue
		}
		s.exact[p] = struct{}{}
		s.paths = append(s.paths, p)

		// every prefix ending in [] marks an array some entry descends into
		for i := strings.Index(p, ArrayWildcard); i >= 0; {
			s.arrays[p[:i+len(ArrayWildcard)]] = struct{}{}
			next := strings.Index(p[i+len(ArrayWildcard):], ArrayWildcard)
			if next < 0 {
				break
			}
			i += len(ArrayWildcard) + next
		}
	}
	return s, nil
}

func (s *Schema) Category() Category { return s.category }

// Paths returns a copy of the allowed paths.
func (s *Schema) Paths() []string {
	return append([]string(nil), s.paths...)
}

// Allows reports whether path is an exact allowlist entry.
func (s *Schema) Allows(path string) bool {
	_, ok := s.exact[path]
	return ok
}

func (s *Schema) descendsInto(arrayPath string) bool {
	_, ok := s.arrays[arrayPath]
	return ok
}

// Filter keeps only allowed paths of payload. The result is always an
// object; a non-object payload yields an empty one. An exactly allowed value
// is copied whole. Containers left empty are omitted.
func (s *Schema) Filter(payload Value) Value {
	if payload.kind != KindObject {
		return Object()
	}
	return Value{kind: KindObject, fields: s.filterFields(payload.fields, "")}
}

func (s *Schema) filterFields(fields []Field, prefix string) []Field {
	var out []Field
	for _, f := range fields {
		path := f.Key
		if prefix != "" {
			path = prefix + "." + f.Key
		}
		if kept, ok := s.filterValue(f.Value, path); ok {
			out = append(out, Field{Key: f.Key, Value: kept})
		}
	}
	return out
}

func (s *Schema) filterValue(v Value, path string) (Value, bool) {
	if s.Allows(path) {
		return v, true
	}

	switch v.kind {
	case KindArray:
		base := path + ArrayWildcard
		if !s.descendsInto(base) {
			return Value{}, false
		}
		var items []Value
		for _, item := range v.items {
			switch item.kind {
			case KindObject:
				if sub := s.filterFields(item.fields, base); len(sub) > 0 {
					items = append(items, Value{kind: KindObject, fields: sub})
				}
			case KindArray:
				if kept, ok := s.filterValue(item, base); ok {
					items = append(items, kept)
				}
			default:
				if s.Allows(base) {
					items = append(items, item)
				}
			}
		}
		if len(items) == 0 {
			return Value{}, false
		}
		return Value{kind: KindArray, items: items}, true

	case KindObject:
		sub := s.filterFields(v.fields, path)
		if len(sub) == 0 {
			return Value{}, false
		}
		return Value{kind: KindObject, fields: sub}, true

	default:
		return Value{}, false
	}
}
