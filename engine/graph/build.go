package graph

import "fmt"

// Build instantiates every non-bypassed node of spec from reg, in order.
// The returned graph still has to be initialised.
func Build(spec Spec, reg *Registry) (*Graph, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	g := New()

	for _, ns := range spec.Nodes {
		if ns.Bypassed {
			continue
		}

		factory := reg.Lookup(ns.Type)
		if factory == nil {
			return nil, fmt.Errorf("%w: %s (node %s)", ErrUnknownNodeType, ns.Type, ns.ID)
		}

		n, err := factory(ns.params())
		if err != nil {
			return nil, fmt.Errorf("graph: build node %s: %w", ns.ID, err)
		}

		if err := g.Append(n); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// BuildJSON parses raw and builds the described chain.
func BuildJSON(raw []byte, reg *Registry) (*Graph, error) {
	spec, err := ParseSpec(raw)
	if err != nil {
		return nil, err
	}

	return Build(spec, reg)
}
