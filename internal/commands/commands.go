// Package commands holds the orchestrators that register and resolve
// dependencies over the token store, the dependency graph and the lifecycle
// dispatcher.
package commands

import (
	"github.com/xraph/tether/internal/di"
)

// TokenStore maps token tuples to dependency identifiers.
type TokenStore interface {
	RetrieveOrCreateID(tokens ...any) string
}

// Graph stores registry entries.
type Graph interface {
	Add(entry *di.Entry)
	Get(id string) (*di.Entry, error)
	SafeConstructionOrder() ([]string, error)
}

// Dispatcher produces an instance for an entry according to its lifecycle.
type Dispatcher interface {
	Resolve(entry *di.Entry, args []any) (any, error)
}

// Declarations reports the ordered dependency tokens of a constructor.
// An entry of type di.MappedDependency (or a pointer to one) stands for a
// qualified token.
type Declarations interface {
	DeclaredDependencies(ctor di.Constructor) []any
}

// resolveEntry resolves the dependencies of entry depth-first, in declaration
// order, then dispatches entry itself.
func resolveEntry(graph Graph, dispatcher Dispatcher, entry *di.Entry) (any, error) {
	ids := entry.DependencyIDs()
	args := make([]any, len(ids))

	for i, id := range ids {
		dep, err := graph.Get(id)
		if err != nil {
			return nil, err
		}

		args[i], err = resolveEntry(graph, dispatcher, dep)
		if err != nil {
			return nil, err
		}
	}

	return dispatcher.Resolve(entry, args)
}
