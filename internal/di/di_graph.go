package di

import (
	"sync"

	"github.com/xraph/tether/internal/errors"
)

// DependencyGraph stores registry entries and orders them for construction.
// Each entry points to the identifiers of the dependencies it requires.
type DependencyGraph struct {
	entries map[string]*Entry
	order   []string // Preserve registration order
	mu      sync.RWMutex
}

// NewDependencyGraph creates a new dependency graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		entries: make(map[string]*Entry),
		order:   make([]string, 0),
	}
}

// Add stores an entry. A later entry for the same identifier replaces the
// earlier one and keeps its registration position.
func (g *DependencyGraph) Add(entry *Entry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.entries[entry.ID]; !exists {
		g.order = append(g.order, entry.ID)
	}
	g.entries[entry.ID] = entry
}

// Get returns the entry for id or a missing dependency error.
func (g *DependencyGraph) Get(id string) (*Entry, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entry, ok := g.entries[id]
	if !ok {
		return nil, errors.ErrMissingDependency(id)
	}
	return entry, nil
}

// Has reports whether id is registered.
func (g *DependencyGraph) Has(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.entries[id]
	return ok
}

// Len returns the number of stored entries.
func (g *DependencyGraph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}

// Entries returns the stored entries in registration order.
func (g *DependencyGraph) Entries() []*Entry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	result := make([]*Entry, 0, len(g.order))
	for _, id := range g.order {
		result = append(result, g.entries[id])
	}
	return result
}

// degrees is an insertion ordered in-degree table.
type degrees struct {
	keys   []string
	values map[string]int
}

func (d *degrees) add(id string, delta int) int {
	if _, ok := d.values[id]; !ok {
		d.keys = append(d.keys, id)
	}
	d.values[id] += delta
	return d.values[id]
}

// SafeConstructionOrder returns identifiers ordered so that every dependency
// comes before the entries requiring it. Entries nobody requires and entries
// without dependencies carry no constraint between them.
func (g *DependencyGraph) SafeConstructionOrder() ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	edges, inDegree := g.buildEdges()
	sorted := topologicalSort(edges, inDegree)

	if cyclic := unresolved(edges, inDegree); len(cyclic) > 0 {
		return nil, errors.ErrCyclicDependencies(cyclic...)
	}

	// Kahn runs from roots towards leaves; construction needs leaves first.
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}

	return sorted, nil
}

// buildEdges must be called with the read lock held. The in-degree of an
// identifier counts the entries requiring it.
func (g *DependencyGraph) buildEdges() (map[string][]string, *degrees) {
	edges := make(map[string][]string)
	inDegree := &degrees{values: make(map[string]int)}

	for _, id := range g.order {
		inDegree.add(id, 0)
		for _, dep := range g.entries[id].DependencyIDs() {
			inDegree.add(dep, 1)
			edges[id] = append(edges[id], dep)
		}
	}

	return edges, inDegree
}

func topologicalSort(edges map[string][]string, inDegree *degrees) []string {
	queue := make([]string, 0, len(inDegree.keys))
	for _, id := range inDegree.keys {
		if inDegree.values[id] == 0 {
			queue = append(queue, id)
		}
	}

	sorted := make([]string, 0, len(inDegree.keys))
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sorted = append(sorted, current)

		for _, dep := range edges[current] {
			if inDegree.add(dep, -1) == 0 {
				queue = append(queue, dep)
			}
		}
	}

	return sorted
}

// unresolved lists identifiers left with requirers and with dependencies of
// their own. Sinks inside the remainder are not reported.
func unresolved(edges map[string][]string, inDegree *degrees) []string {
	var ids []string
	for _, id := range inDegree.keys {
		if inDegree.values[id] > 0 && len(edges[id]) > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
