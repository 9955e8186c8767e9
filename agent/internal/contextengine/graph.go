package contextengine

import (
	"sync"

	"github.com/Vamsirusheel01/sentinel-ai/pkg/wire"
)

// Graph keeps the per-context ordered event list, the arrival-order spine
// the clean pipeline relies on.
type Graph struct {
	mu    sync.Mutex
	edges map[string][]wire.Raw
}

func NewGraph() *Graph {
	return &Graph{edges: make(map[string][]wire.Raw)}
}

// LinkEvent appends the event to the context's ordered list.
func (g *Graph) LinkEvent(contextID string, ev wire.Raw) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges[contextID] = append(g.edges[contextID], ev)
}

// Events returns a copy of the context's events in arrival order.
func (g *Graph) Events(contextID string) []wire.Raw {
	g.mu.Lock()
	defer g.mu.Unlock()
	events := g.edges[contextID]
	out := make([]wire.Raw, len(events))
	copy(out, events)
	return out
}

// Forget drops the context's edge list after it has been drained.
func (g *Graph) Forget(contextID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.edges, contextID)
}
