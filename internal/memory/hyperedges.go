package memory

import (
	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// AddHyperedge validates h against the live hyperedges and inserts it. A
// zero ID is replaced by a fresh one, written back to h only once the
// hyperedge is stored.
func (g *Hypergraph) AddHyperedge(h *types.Hyperedge) error {
	if h == nil || h.Type == "" {
		return types.ErrInvalidData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	c := h.Clone()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if err := g.validatorLocked().ValidateHyperedge(c); err != nil {
		return g.reject(types.KindHyperedge, err)
	}
	g.hyperedges.put(c.ID, c)
	g.admitted(types.KindHyperedge, "add", c.Type, c.ID)
	h.ID = c.ID
	g.resizedLocked(types.KindHyperedge)
	return nil
}

// UpdateHyperedge validates h as a replacement for the hyperedge stored
// under id and stores it.
// Returns ErrNotFound if no hyperedge exists with that ID.
func (g *Hypergraph) UpdateHyperedge(id uuid.UUID, h *types.Hyperedge) error {
	if h == nil || h.Type == "" {
		return types.ErrInvalidData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hyperedges.has(id) {
		return notFound(types.KindHyperedge, id)
	}
	c := h.Clone()
	c.ID = id
	if err := g.validatorLocked().ValidateHyperedge(c); err != nil {
		return g.reject(types.KindHyperedge, err)
	}
	g.hyperedges.put(id, c)
	g.admitted(types.KindHyperedge, "update", c.Type, id)
	return nil
}

// DeleteHyperedge removes the hyperedge with the given ID.
// Returns ErrNotFound if no hyperedge exists with that ID.
func (g *Hypergraph) DeleteHyperedge(id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.hyperedges.remove(id) {
		return notFound(types.KindHyperedge, id)
	}
	g.resizedLocked(types.KindHyperedge)
	return nil
}

// GetHyperedge returns a copy of the hyperedge with the given ID.
func (g *Hypergraph) GetHyperedge(id uuid.UUID) (*types.Hyperedge, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	h, ok := g.hyperedges.get(id)
	if !ok {
		return nil, false
	}
	return h.Clone(), true
}

// ListHyperedges returns copies of all hyperedges in insertion order.
func (g *Hypergraph) ListHyperedges() []*types.Hyperedge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := g.hyperedges.list()
	for i, h := range out {
		out[i] = h.Clone()
	}
	return out
}
