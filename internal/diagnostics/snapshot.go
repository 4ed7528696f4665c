// Package diagnostics renders container state and structural errors in terms
// of the tokens callers registered.
package diagnostics

import (
	"strings"

	json "github.com/json-iterator/go"

	"github.com/xraph/tether/internal/di"
)

// GraphView is the read side of the dependency graph.
type GraphView interface {
	Entries() []*di.Entry
	SafeConstructionOrder() ([]string, error)
}

// EntrySnapshot describes one registry entry.
type EntrySnapshot struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Lifecycle    string   `json:"lifecycle"`
	Mode         string   `json:"mode"`
	Dependencies []string `json:"dependencies"`
	Materialized bool     `json:"materialized"`
}

// Snapshot is a point in time view of a container.
type Snapshot struct {
	Built      bool            `json:"built"`
	Entries    []EntrySnapshot `json:"entries"`
	Order      []string        `json:"order,omitempty"`
	OrderError string          `json:"order_error,omitempty"`
}

// NewSnapshot captures graph. Identifiers are rendered through handler; the
// construction order is replaced by the described error when it cannot be
// computed.
func NewSnapshot(graph GraphView, handler *ExceptionHandler, built bool) Snapshot {
	entries := graph.Entries()
	snap := Snapshot{
		Built:   built,
		Entries: make([]EntrySnapshot, 0, len(entries)),
	}

	for _, entry := range entries {
		deps := entry.DependencyIDs()
		depNames := make([]string, len(deps))
		for i, id := range deps {
			depNames[i] = handler.name(id)
		}

		snap.Entries = append(snap.Entries, EntrySnapshot{
			ID:           entry.ID,
			Name:         handler.name(entry.ID),
			Lifecycle:    entry.Lifecycle,
			Mode:         entry.Descriptor.Mode(),
			Dependencies: depNames,
			Materialized: entry.Descriptor.Materialized(),
		})
	}

	order, err := graph.SafeConstructionOrder()
	if err != nil {
		snap.OrderError = handler.Handle(err).Error()
		return snap
	}

	snap.Order = make([]string, len(order))
	for i, id := range order {
		snap.Order[i] = handler.name(id)
	}

	return snap
}

// JSON encodes the snapshot with indentation.
func (s Snapshot) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Entry returns the snapshot of the entry with the given name.
func (s Snapshot) Entry(name string) (EntrySnapshot, bool) {
	for _, e := range s.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return EntrySnapshot{}, false
}

// name is the unparenthesized form of Describe.
func (h *ExceptionHandler) name(id string) string {
	names, err := h.TokenNames(id)
	if err != nil {
		return id
	}
	return strings.Join(names, " - ")
}
