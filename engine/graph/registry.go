package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cwbudde/algo-engine/engine/node"
)

// Factory builds one node from its chain settings.
type Factory func(p Params) (node.Node, error)

// Registry maps node type names to their factories.
type Registry struct {
	factories map[string]Factory
}

var errDuplicateType = errors.New("duplicate node type")

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory for the given node type.
func (r *Registry) Register(nodeType string, factory Factory) error {
	if nodeType == "" {
		return errors.New("graph registry: empty node type")
	}

	if factory == nil {
		return errors.New("graph registry: nil factory")
	}

	if _, exists := r.factories[nodeType]; exists {
		return fmt.Errorf("graph registry: %w: %s", errDuplicateType, nodeType)
	}

	r.factories[nodeType] = factory

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(nodeType string, factory Factory) {
	if err := r.Register(nodeType, factory); err != nil {
		panic(err.Error())
	}
}

// Lookup returns the factory for the given node type, or nil.
func (r *Registry) Lookup(nodeType string) Factory {
	return r.factories[nodeType]
}

// Types returns the registered type names in sorted order.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}

	sort.Strings(types)

	return types
}
