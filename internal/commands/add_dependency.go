package commands

import (
	"github.com/xraph/tether/internal/di"
)

// AddDependencyInput describes a registration.
type AddDependencyInput struct {
	Token       any
	Qualifier   any
	Lifecycle   string
	Constructor di.Constructor
	Factory     di.Factory
	Instance    any
	HasInstance bool
}

// AddDependencyOutput carries the identifier assigned to the registration.
type AddDependencyOutput struct {
	DependencyID string
}

// AddDependencyHandler turns a registration into a registry entry.
type AddDependencyHandler struct {
	tokens       TokenStore
	graph        Graph
	declarations Declarations
}

// NewAddDependencyHandler creates the handler. declarations may be nil, in
// which case constructors declare no dependencies.
func NewAddDependencyHandler(tokens TokenStore, graph Graph, declarations Declarations) *AddDependencyHandler {
	return &AddDependencyHandler{
		tokens:       tokens,
		graph:        graph,
		declarations: declarations,
	}
}

// Handle stores the entry and returns its identifier. Registering the same
// token pair again replaces the earlier entry.
func (h *AddDependencyHandler) Handle(input AddDependencyInput) AddDependencyOutput {
	id := h.tokens.RetrieveOrCreateID(input.Token, input.Qualifier)

	var declared []any
	if input.Constructor != nil && h.declarations != nil {
		declared = h.declarations.DeclaredDependencies(input.Constructor)
	}

	dependencyIDs := make([]string, len(declared))
	for i, tok := range declared {
		dependencyIDs[i] = h.dependencyID(tok)
	}

	opts := []di.DescriptorOption{di.WithConstructor(input.Constructor, dependencyIDs)}
	if input.Factory != nil {
		opts = append(opts, di.WithFactory(input.Factory))
	}
	if input.HasInstance {
		opts = append(opts, di.WithInstance(input.Instance))
	}

	h.graph.Add(di.NewEntry(id, input.Lifecycle, di.NewDescriptor(opts...)))

	return AddDependencyOutput{DependencyID: id}
}

func (h *AddDependencyHandler) dependencyID(tok any) string {
	switch m := tok.(type) {
	case di.MappedDependency:
		return h.tokens.RetrieveOrCreateID(m.Token, m.Qualifier)
	case *di.MappedDependency:
		if m != nil {
			return h.tokens.RetrieveOrCreateID(m.Token, m.Qualifier)
		}
	}
	return h.tokens.RetrieveOrCreateID(tok)
}
