package main

import (
	"fmt"

	"github.com/xraph/tether"
	"github.com/xraph/tether/internal/manifest"
)

// node is what a manifest component constructs: its name and the nodes it
// was built from.
type node struct {
	Name   string
	Inputs []any
}

// component constructs a manifest dependency. Its arity comes from the
// manifest, so it implements tether.Constructor directly.
type component struct {
	name string
}

func (c *component) Construct(args []any) (any, error) {
	return &node{Name: c.name, Inputs: args}, nil
}

func requirementToken(req manifest.Requirement) any {
	if req.Qualifier == "" {
		return req.Token
	}
	return tether.Mapped(req.Token, req.Qualifier)
}

// register adds every dependency of m to c.
func register(c *tether.Container, m *manifest.Manifest) error {
	for _, dep := range m.Dependencies {
		ctor := &component{name: dep.Key().String()}

		if len(dep.Requires) > 0 {
			tokens := make([]any, len(dep.Requires))
			for i, req := range dep.Requires {
				tokens[i] = requirementToken(req)
			}
			if err := c.Declarations().Inject(ctor, tokens...); err != nil {
				return fmt.Errorf("%s: %w", dep.Key(), err)
			}
		}

		reg := tether.Registration{
			Lifecycle:   dep.Lifecycle,
			Token:       dep.Token,
			Constructor: ctor,
		}
		if dep.Qualifier != "" {
			reg.Qualifier = dep.Qualifier
		}

		if err := c.Add(reg); err != nil {
			return fmt.Errorf("%s: %w", dep.Key(), err)
		}
	}

	return nil
}
