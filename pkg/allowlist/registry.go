package allowlist

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var builtinDefinitions []byte

// Registry maps category names to schemas. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	order   []Category
	schemas map[Category]*Schema
}

// NewRegistry creates a registry holding the given schemas.
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[Category]*Schema, len(schemas))}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a schema. A category can be registered only once.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: nil schema", ErrInvalidDefinition)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[s.category]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCategory, s.category)
	}
	r.schemas[s.category] = s
	r.order = append(r.order, s.category)
	return nil
}

// Lookup returns the schema of a category.
func (r *Registry) Lookup(c Category) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	return s, nil
}

// Categories lists registered categories in registration order.
func (r *Registry) Categories() []Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Category(nil), r.order...)
}

// Filter applies the schema of category c to payload.
func (r *Registry) Filter(payload Value, c Category) (Value, error) {
	s, err := r.Lookup(c)
	if err != nil {
		return Value{}, err
	}
	return s.Filter(payload), nil
}

// Validate filters payload for category c and scans the result for PII.
// An unknown category is an error, never a payload.
func (r *Registry) Validate(payload Value, c Category) (Result, error) {
	s, err := r.Lookup(c)
	if err != nil {
		return Result{}, err
	}
	return s.Validate(payload), nil
}

type definitionFile struct {
	Categories []struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Paths       []string `yaml:"paths"`
	} `yaml:"categories"`
}

// ParseDefinitions reads category schemas from a YAML document:
//
//	categories:
//	  - name: campaign
//	    paths:
//	      - profile.name
//	      - snippets[].title
func ParseDefinitions(data []byte) ([]*Schema, error) {
	var def definitionFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if len(def.Categories) == 0 {
		return nil, fmt.Errorf("%w: no categories", ErrInvalidDefinition)
	}

	out := make([]*Schema, 0, len(def.Categories))
	for _, c := range def.Categories {
		if len(c.Paths) == 0 {
			return nil, fmt.Errorf("%w: category %q has no paths", ErrInvalidDefinition, c.Name)
		}
		s, err := NewSchema(Category(c.Name), c.Paths...)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// LoadFile reads category schemas from a YAML file.
func LoadFile(path string) ([]*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	return ParseDefinitions(data)
}

var builtinSchemas = sync.OnceValue(func() []*Schema {
	schemas, err := ParseDefinitions(builtinDefinitions)
	if err != nil {
		panic(fmt.Sprintf("allowlist: built-in categories: %v", err))
	}
	return schemas
})

// Default returns a new registry holding the built-in categories. Callers may
// register more categories on it without affecting other callers.
func Default() *Registry {
	r, _ := NewRegistry(builtinSchemas()...)
	return r
}

var defaultRegistry = Default()

// Filter applies a built-in category to payload.
func Filter(payload Value, c Category) (Value, error) {
	return defaultRegistry.Filter(payload, c)
}

// Validate filters payload for a built-in category and fails closed on PII.
func Validate(payload Value, c Category) (Result, error) {
	return defaultRegistry.Validate(payload, c)
}
