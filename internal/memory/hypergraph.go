// Package memory implements the in-memory relation store. Every insertion
// or update of an edge or hyperedge passes through the constraint validator
// while the store holds its write lock, so validation and insertion happen
// as one step.
package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/internal/validator"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

var _ types.Graph = (*Hypergraph)(nil)

// Observer receives store events. Implementations must not call back into
// the store: they run while the store lock is held.
type Observer interface {
	// Admitted is called after a relation of kind passes validation and is
	// stored. op is "add" or "update".
	Admitted(kind types.Kind, op string)

	// Rejected is called when validation refuses a relation.
	Rejected(kind types.Kind, rule types.Rule)

	// Resized is called with the new entity count of kind after every
	// change.
	Resized(kind types.Kind, n int)
}

// Hypergraph owns all live nodes, edges and hyperedges, keyed by identity.
// It is safe for concurrent use.
type Hypergraph struct {
	mu         sync.RWMutex
	settings   types.Settings
	nodes      *collection[*types.Node]
	edges      *collection[*types.Edge]
	hyperedges *collection[*types.Hyperedge]

	logger   *slog.Logger
	observer Observer
}

// Option configures a Hypergraph.
type Option func(*Hypergraph)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Hypergraph) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithObserver registers an observer for admits, rejections and size
// changes.
func WithObserver(o Observer) Option {
	return func(g *Hypergraph) {
		g.observer = o
	}
}

// NewHypergraph creates an empty store.
// Returns ErrOrphanPolicyUnknown if settings name an unknown orphan policy.
func NewHypergraph(settings types.Settings, opts ...Option) (*Hypergraph, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	g := &Hypergraph{
		settings:   settings,
		nodes:      newCollection[*types.Node](),
		edges:      newCollection[*types.Edge](),
		hyperedges: newCollection[*types.Hyperedge](),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Settings returns the settings the store was created with.
func (g *Hypergraph) Settings() types.Settings {
	return g.settings
}

// validatorLocked returns a validator over the live collections.
// The caller must hold g.mu.
func (g *Hypergraph) validatorLocked() *validator.Validator {
	return validator.New(g.edges.values(), g.hyperedges.values())
}

// reject records a validation failure and returns err unchanged.
func (g *Hypergraph) reject(kind types.Kind, err error) error {
	var cv *types.ConstraintViolation
	if errors.As(err, &cv) {
		g.logger.Info("relation rejected",
			"kind", kind,
			"type", cv.RelationType,
			"id", cv.CandidateID,
			"rule", cv.Rule,
			"conflict", cv.ConflictID,
		)
		if g.observer != nil {
			g.observer.Rejected(kind, cv.Rule)
		}
	}
	return err
}

func (g *Hypergraph) admitted(kind types.Kind, op, typeName string, id uuid.UUID) {
	g.logger.Debug("relation stored", "kind", kind, "op", op, "type", typeName, "id", id)
	if g.observer != nil {
		g.observer.Admitted(kind, op)
	}
}

// resizedLocked reports the current size of kind to the observer.
// The caller must hold g.mu.
func (g *Hypergraph) resizedLocked(kind types.Kind) {
	if g.observer == nil {
		return
	}
	var n int
	switch kind {
	case types.KindNode:
		n = g.nodes.len()
	case types.KindEdge:
		n = g.edges.len()
	case types.KindHyperedge:
		n = g.hyperedges.len()
	}
	g.observer.Resized(kind, n)
}

// Stats holds entity counts per kind.
type Stats struct {
	Nodes      int `json:"nodes"`
	Edges      int `json:"edges"`
	Hyperedges int `json:"hyperedges"`
}

// Stats returns the current entity counts.
func (g *Hypergraph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Stats{
		Nodes:      g.nodes.len(),
		Edges:      g.edges.len(),
		Hyperedges: g.hyperedges.len(),
	}
}

// Orphans reports every edge and hyperedge endpoint that does not name a
// live node, in relation insertion order.
func (g *Hypergraph) Orphans() []types.Orphan {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []types.Orphan
	for e := range g.edges.values() {
		for _, id := range []uuid.UUID{e.Source, e.Target} {
			if !g.nodes.has(id) {
				out = append(out, types.Orphan{Kind: types.KindEdge, RelationID: e.ID, RelationType: e.Type, MissingID: id})
			}
			if e.IsSelfLoop() {
				break
			}
		}
	}
	for h := range g.hyperedges.values() {
		seen := make(map[uuid.UUID]bool)
		for _, id := range h.Endpoints() {
			if seen[id] || g.nodes.has(id) {
				continue
			}
			seen[id] = true
			out = append(out, types.Orphan{Kind: types.KindHyperedge, RelationID: h.ID, RelationType: h.Type, MissingID: id})
		}
	}
	return out
}

// referencesLocked returns the IDs of edges and hyperedges that reference
// the node. The caller must hold g.mu.
func (g *Hypergraph) referencesLocked(node uuid.UUID) (edges, hyperedges []uuid.UUID) {
	for e := range g.edges.values() {
		if e.Source == node || e.Target == node {
			edges = append(edges, e.ID)
		}
	}
	for h := range g.hyperedges.values() {
		for _, id := range h.Endpoints() {
			if id == node {
				hyperedges = append(hyperedges, h.ID)
				break
			}
		}
	}
	return edges, hyperedges
}

func notFound(kind types.Kind, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", kind, id, types.ErrNotFound)
}
