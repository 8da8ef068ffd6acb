package memory

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// AddEdge validates e against the live relations and inserts it. A zero ID
// is replaced by a fresh one, written back to e only once the edge is
// stored. On rejection the store and e are unchanged and the
// *types.ConstraintViolation is returned as is.
func (g *Hypergraph) AddEdge(e *types.Edge) error {
	if e == nil || e.Type == "" {
		return types.ErrInvalidData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c := e.Clone()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := g.validatorLocked().ValidateEdge(c); err != nil {
		return g.reject(types.KindEdge, err)
	}
	g.edges.put(c.ID, c)
	g.admitted(types.KindEdge, "add", c.Type, c.ID)
	e.ID = c.ID
	g.resizedLocked(types.KindEdge)
	return nil
}

// UpdateEdge validates e as a replacement for the edge stored under id and
// stores it. The prior value does not count against the replacement.
// Returns ErrNotFound if no edge exists with that ID.
func (g *Hypergraph) UpdateEdge(id uuid.UUID, e *types.Edge) error {
	if e == nil || e.Type == "" {
		return types.ErrInvalidData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.edges.has(id) {
		return notFound(types.KindEdge, id)
	}
	c := e.Clone()
	c.ID = id
	if err := g.validatorLocked().ValidateEdge(c); err != nil {
		return g.reject(types.KindEdge, err)
	}
	g.edges.put(id, c)
	g.admitted(types.KindEdge, "update", c.Type, id)
	return nil
}

// DeleteEdge removes the edge with the given ID. Removing a relation cannot
// break an enforced rule, so deletes are not validated.
// Returns ErrNotFound if no edge exists with that ID.
func (g *Hypergraph) DeleteEdge(id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.edges.remove(id) {
		return notFound(types.KindEdge, id)
	}
	g.resizedLocked(types.KindEdge)
	return nil
}

// GetEdge returns a copy of the edge with the given ID.
func (g *Hypergraph) GetEdge(id uuid.UUID) (*types.Edge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e, ok := g.edges.get(id)
	if !ok {
		return nil, false
	}
	return e.Clone(), true
}

// ListEdges returns copies of all edges in insertion order.
func (g *Hypergraph) ListEdges() []*types.Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := g.edges.list()
	for i, e := range out {
		out[i] = e.Clone()
	}
	return out
}
