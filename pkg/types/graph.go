package types

import "github.com/google/uuid"

// Graph is the store query surface: the only API the rest of a program uses
// to read or change relation state. Every Add and Update of an Edge or
// Hyperedge is validated against the configured constraints before it is
// applied; a rejection leaves the graph unchanged.
type Graph interface {
	// AddNode inserts or overwrites a node by identity. Nodes carry no
	// constraints and are never rejected for content.
	AddNode(n *Node) error

	// UpdateNode replaces the node with the given ID.
	// Returns ErrNotFound if no node exists with that ID.
	UpdateNode(id uuid.UUID, n *Node) error

	// DeleteNode removes the node with the given ID, applying the orphan
	// policy to relations that reference it.
	// Returns ErrNotFound if no node exists with that ID.
	DeleteNode(id uuid.UUID) error

	GetNode(id uuid.UUID) (*Node, bool)
	ListNodes() []*Node

	// AddEdge validates e and inserts it. Returns a *ConstraintViolation when
	// e breaks its type's configuration.
	AddEdge(e *Edge) error

	// UpdateEdge validates e, ignoring the prior value stored under id, and
	// replaces it. Returns ErrNotFound if no edge exists with that ID.
	UpdateEdge(id uuid.UUID, e *Edge) error

	DeleteEdge(id uuid.UUID) error
	GetEdge(id uuid.UUID) (*Edge, bool)
	ListEdges() []*Edge

	AddHyperedge(h *Hyperedge) error
	UpdateHyperedge(id uuid.UUID, h *Hyperedge) error
	DeleteHyperedge(id uuid.UUID) error
	GetHyperedge(id uuid.UUID) (*Hyperedge, bool)
	ListHyperedges() []*Hyperedge

	// Orphans reports every relation endpoint that does not name a live node.
	Orphans() []Orphan
}

// Orphan is a relation endpoint that references a node identity absent from
// the store.
type Orphan struct {
	Kind         Kind
	RelationID   uuid.UUID
	RelationType string
	MissingID    uuid.UUID
}
