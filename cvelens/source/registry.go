package source

import (
	"fmt"
	"sort"
)

// Factory constructs a configured Source.
type Factory func() (Source, error)

// Registry maps source type identifiers to their factories. It is built once
// at process start and passed explicitly to consumers (no global mutable
// registration).
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory for the given source type; registering the same
// type twice is a programming error.
func (r *Registry) Register(sourceType string, factory Factory) error {
	if _, exists := r.factories[sourceType]; exists {
		return fmt.Errorf("source type %q already registered", sourceType)
	}
	r.factories[sourceType] = factory
	return nil
}

// Get constructs the source registered for the given type.
func (r *Registry) Get(sourceType string) (Source, error) {
	factory, exists := r.factories[sourceType]
	if !exists {
		return nil, fmt.Errorf("unknown source type %q (available=%v)", sourceType, r.Types())
	}
	return factory()
}

// Types lists all registered source type identifiers.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
