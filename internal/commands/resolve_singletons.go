package commands

import (
	"context"

	"github.com/xraph/tether/internal/di"
)

// ResolveSingletonsOutput lists the singleton identifiers resolved, in
// construction order.
type ResolveSingletonsOutput struct {
	Resolved []string
}

// ResolveSingletonsHandler eagerly constructs every singleton in a safe order.
type ResolveSingletonsHandler struct {
	graph      Graph
	dispatcher Dispatcher
}

// NewResolveSingletonsHandler creates the handler.
func NewResolveSingletonsHandler(graph Graph, dispatcher Dispatcher) *ResolveSingletonsHandler {
	return &ResolveSingletonsHandler{
		graph:      graph,
		dispatcher: dispatcher,
	}
}

// Handle walks the safe construction order and resolves entries whose
// lifecycle is exactly di.Singleton. Other entries are only constructed when
// a singleton requires them. The context is checked between entries.
func (h *ResolveSingletonsHandler) Handle(ctx context.Context) (ResolveSingletonsOutput, error) {
	order, err := h.graph.SafeConstructionOrder()
	if err != nil {
		return ResolveSingletonsOutput{}, err
	}

	var out ResolveSingletonsOutput
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		entry, err := h.graph.Get(id)
		if err != nil {
			return out, err
		}

		if entry.Lifecycle != di.Singleton {
			continue
		}

		if _, err := resolveEntry(h.graph, h.dispatcher, entry); err != nil {
			return out, err
		}

		out.Resolved = append(out.Resolved, id)
	}

	return out, nil
}
