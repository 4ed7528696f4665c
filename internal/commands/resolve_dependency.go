package commands

// ResolveDependencyInput names the dependency to resolve.
type ResolveDependencyInput struct {
	Token     any
	Qualifier any
}

// ResolveDependencyOutput carries the resolved instance.
type ResolveDependencyOutput struct {
	Instance any
}

// ResolveDependencyHandler resolves a dependency and, recursively, everything
// it requires.
type ResolveDependencyHandler struct {
	tokens     TokenStore
	graph      Graph
	dispatcher Dispatcher
}

// NewResolveDependencyHandler creates the handler.
func NewResolveDependencyHandler(tokens TokenStore, graph Graph, dispatcher Dispatcher) *ResolveDependencyHandler {
	return &ResolveDependencyHandler{
		tokens:     tokens,
		graph:      graph,
		dispatcher: dispatcher,
	}
}

// Handle resolves input. Nothing is cached here; reuse comes from the
// lifecycle strategies.
func (h *ResolveDependencyHandler) Handle(input ResolveDependencyInput) (ResolveDependencyOutput, error) {
	id := h.tokens.RetrieveOrCreateID(input.Token, input.Qualifier)

	entry, err := h.graph.Get(id)
	if err != nil {
		return ResolveDependencyOutput{}, err
	}

	instance, err := resolveEntry(h.graph, h.dispatcher, entry)
	if err != nil {
		return ResolveDependencyOutput{}, err
	}

	return ResolveDependencyOutput{Instance: instance}, nil
}
