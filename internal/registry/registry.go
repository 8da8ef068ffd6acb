// Package registry maps type names to the declarations needed to build and
// decode typed entities. Node, edge and hyperedge types live in separate
// namespaces. A Registry is an explicit value: programs populate one at
// startup, seal it, and hand it to whatever loads records.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// decodeFunc turns an untyped record into a typed entity of one declared
// type.
type decodeFunc func(rec types.Record) (any, error)

// Registry holds type declarations and the decode table built from them.
// Registration is guarded by a mutex; after Seal the registry is read-only.
type Registry struct {
	mu     sync.RWMutex
	sealed bool

	nodes      map[string]types.NodeType
	edges      map[string]types.EdgeType
	hyperedges map[string]types.HyperedgeType

	// decoders holds one decode function per declared type, per kind.
	decoders map[types.Kind]map[string]decodeFunc
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		nodes:      make(map[string]types.NodeType),
		edges:      make(map[string]types.EdgeType),
		hyperedges: make(map[string]types.HyperedgeType),
		decoders: map[types.Kind]map[string]decodeFunc{
			types.KindNode:      {},
			types.KindEdge:      {},
			types.KindHyperedge: {},
		},
	}
}

// Seal freezes the registry. Later Register calls return ErrRegistrySealed.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// RegisterNode declares a node type. A later registration under the same
// name replaces the earlier one.
func (r *Registry) RegisterNode(t types.NodeType) error {
	if err := validateDeclaration(t.Name, t.Attributes); err != nil {
		return err
	}
	t.Attributes = slices.Clone(t.Attributes)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return types.ErrRegistrySealed
	}
	r.nodes[t.Name] = t
	r.decoders[types.KindNode][t.Name] = func(rec types.Record) (any, error) {
		return decodeNode(t, rec)
	}
	return nil
}

// RegisterEdge declares an edge type. The config must pass
// EdgeConfig.Validate, so contradictory flags are caught here rather than
// silently admitted. A later registration under the same name replaces the
// earlier one.
func (r *Registry) RegisterEdge(t types.EdgeType) error {
	if err := validateDeclaration(t.Name, t.Attributes); err != nil {
		return err
	}
	if err := t.Config.Validate(); err != nil {
		return fmt.Errorf("edge type %q: %w", t.Name, err)
	}
	t.Attributes = slices.Clone(t.Attributes)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return types.ErrRegistrySealed
	}
	r.edges[t.Name] = t
	r.decoders[types.KindEdge][t.Name] = func(rec types.Record) (any, error) {
		return decodeEdge(t, rec)
	}
	return nil
}

// RegisterHyperedge declares a hyperedge type. A later registration under
// the same name replaces the earlier one.
func (r *Registry) RegisterHyperedge(t types.HyperedgeType) error {
	if err := validateDeclaration(t.Name, t.Attributes); err != nil {
		return err
	}
	if err := t.Config.Validate(); err != nil {
		return fmt.Errorf("hyperedge type %q: %w", t.Name, err)
	}
	t.Attributes = slices.Clone(t.Attributes)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return types.ErrRegistrySealed
	}
	r.hyperedges[t.Name] = t
	r.decoders[types.KindHyperedge][t.Name] = func(rec types.Record) (any, error) {
		return decodeHyperedge(t, rec)
	}
	return nil
}

func validateDeclaration(name string, attrs []types.AttributeSpec) error {
	if name == "" {
		return fmt.Errorf("%w: empty type name", types.ErrInvalidName)
	}
	seen := make(map[string]bool, len(attrs))
	for _, a := range attrs {
		if err := a.Validate(); err != nil {
			return &types.SchemaMismatchError{Type: name, Field: a.Name, Reason: err.Error()}
		}
		if seen[a.Name] {
			return &types.SchemaMismatchError{Type: name, Field: a.Name, Reason: "declared twice"}
		}
		seen[a.Name] = true
	}
	return nil
}

// NodeType returns the declaration of the named node type.
func (r *Registry) NodeType(name string) (types.NodeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.nodes[name]
	return t, ok
}

// EdgeType returns the declaration of the named edge type.
func (r *Registry) EdgeType(name string) (types.EdgeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.edges[name]
	return t, ok
}

// HyperedgeType returns the declaration of the named hyperedge type.
func (r *Registry) HyperedgeType(name string) (types.HyperedgeType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.hyperedges[name]
	return t, ok
}

// NodeTypes returns every node declaration sorted by name.
func (r *Registry) NodeTypes() []types.NodeType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.nodes, func(t types.NodeType) string { return t.Name })
}

// EdgeTypes returns every edge declaration sorted by name.
func (r *Registry) EdgeTypes() []types.EdgeType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.edges, func(t types.EdgeType) string { return t.Name })
}

// HyperedgeTypes returns every hyperedge declaration sorted by name.
func (r *Registry) HyperedgeTypes() []types.HyperedgeType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedValues(r.hyperedges, func(t types.HyperedgeType) string { return t.Name })
}

func sortedValues[T any](m map[string]T, name func(T) string) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(name(a), name(b)) })
	return out
}

// NewNode builds a node of a declared type with a fresh ID. Attributes are
// checked against the declaration.
func (r *Registry) NewNode(typeName string, attrs map[string]any) (*types.Node, error) {
	t, ok := r.NodeType(typeName)
	if !ok {
		return nil, &types.UnknownTypeError{Kind: types.KindNode, Name: typeName}
	}
	checked, err := decodeAttributes(t.Name, t.Attributes, attrs)
	if err != nil {
		return nil, err
	}
	return &types.Node{ID: uuid.New(), Type: t.Name, Config: t.Config, Attributes: checked}, nil
}

// NewEdge builds an edge of a declared type with a fresh ID and the type's
// config.
func (r *Registry) NewEdge(typeName string, source, target uuid.UUID, attrs map[string]any) (*types.Edge, error) {
	t, ok := r.EdgeType(typeName)
	if !ok {
		return nil, &types.UnknownTypeError{Kind: types.KindEdge, Name: typeName}
	}
	checked, err := decodeAttributes(t.Name, t.Attributes, attrs)
	if err != nil {
		return nil, err
	}
	return &types.Edge{
		ID:         uuid.New(),
		Type:       t.Name,
		Source:     source,
		Target:     target,
		Config:     t.Config,
		Attributes: checked,
	}, nil
}

// NewHyperedge builds a hyperedge of a declared type with a fresh ID and the
// type's config.
func (r *Registry) NewHyperedge(typeName string, sources, targets []uuid.UUID, attrs map[string]any) (*types.Hyperedge, error) {
	t, ok := r.HyperedgeType(typeName)
	if !ok {
		return nil, &types.UnknownTypeError{Kind: types.KindHyperedge, Name: typeName}
	}
	checked, err := decodeAttributes(t.Name, t.Attributes, attrs)
	if err != nil {
		return nil, err
	}
	return &types.Hyperedge{
		ID:         uuid.New(),
		Type:       t.Name,
		Sources:    slices.Clone(sources),
		Targets:    slices.Clone(targets),
		Config:     t.Config,
		Attributes: checked,
	}, nil
}
