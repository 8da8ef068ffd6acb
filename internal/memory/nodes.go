package memory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// AddNode inserts or overwrites a node by identity. A node with a zero ID is
// given a fresh one, written back to n.
// Returns ErrInvalidData for a nil node or an empty type.
func (g *Hypergraph) AddNode(n *types.Node) error {
	if n == nil || n.Type == "" {
		return types.ErrInvalidData
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes.put(n.ID, n.Clone())
	g.logger.Debug("node stored", "op", "add", "type", n.Type, "id", n.ID)
	g.resizedLocked(types.KindNode)
	return nil
}

// UpdateNode replaces the node stored under id. The stored value takes id
// regardless of n.ID.
// Returns ErrNotFound if no node exists with that ID.
func (g *Hypergraph) UpdateNode(id uuid.UUID, n *types.Node) error {
	if n == nil || n.Type == "" {
		return types.ErrInvalidData
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.nodes.has(id) {
		return notFound(types.KindNode, id)
	}
	c := n.Clone()
	c.ID = id
	g.nodes.put(id, c)
	g.logger.Debug("node stored", "op", "update", "type", n.Type, "id", id)
	return nil
}

// DeleteNode removes the node with the given ID and applies the orphan
// policy to relations that still reference it.
// Returns ErrNotFound if no node exists with that ID, or ErrNodeReferenced
// under the reject policy.
func (g *Hypergraph) DeleteNode(id uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.nodes.has(id) {
		return notFound(types.KindNode, id)
	}

	switch g.settings.EffectiveOrphanPolicy() {
	case types.OrphanReject:
		edges, hyperedges := g.referencesLocked(id)
		if len(edges)+len(hyperedges) > 0 {
			return fmt.Errorf("node %s: %d edges and %d hyperedges: %w",
				id, len(edges), len(hyperedges), types.ErrNodeReferenced)
		}
	case types.OrphanCascade:
		edges, hyperedges := g.referencesLocked(id)
		for _, eid := range edges {
			g.edges.remove(eid)
		}
		for _, hid := range hyperedges {
			g.hyperedges.remove(hid)
		}
		if len(edges)+len(hyperedges) > 0 {
			g.logger.Info("cascade delete", "node", id, "edges", len(edges), "hyperedges", len(hyperedges))
			g.resizedLocked(types.KindEdge)
			g.resizedLocked(types.KindHyperedge)
		}
	}

	g.nodes.remove(id)
	g.resizedLocked(types.KindNode)
	return nil
}

// GetNode returns a copy of the node with the given ID.
func (g *Hypergraph) GetNode(id uuid.UUID) (*types.Node, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, ok := g.nodes.get(id)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// ListNodes returns copies of all nodes in insertion order.
func (g *Hypergraph) ListNodes() []*types.Node {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := g.nodes.list()
	for i, n := range out {
		out[i] = n.Clone()
	}
	return out
}
