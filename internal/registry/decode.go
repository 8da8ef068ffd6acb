package registry

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// Load decodes rec into an entity of the given kind. The record's type field
// selects the registered declaration; the result is a *types.Node,
// *types.Edge or *types.Hyperedge.
//
// Errors: ErrUnknownKind for an unknown kind, *types.UnknownTypeError when
// the type is not registered for kind, *types.SchemaMismatchError when the
// record does not satisfy the declaration.
func (r *Registry) Load(kind types.Kind, rec types.Record) (any, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownKind, kind)
	}
	name := rec.TypeName()

	r.mu.RLock()
	decode, ok := r.decoders[kind][name]
	r.mu.RUnlock()
	if !ok {
		return nil, &types.UnknownTypeError{Kind: kind, Name: name}
	}
	if k, present := rec[types.FieldKind]; present && k != string(kind) {
		return nil, &types.SchemaMismatchError{Type: name, Field: types.FieldKind, Reason: fmt.Sprintf("record is %v, loading as %s", k, kind)}
	}
	return decode(rec)
}

// LoadRecord decodes a record that carries its own kind field, as codec
// streams do.
func (r *Registry) LoadRecord(rec types.Record) (any, error) {
	kind, err := types.ParseKind(string(rec.Kind()))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, rec.Kind())
	}
	return r.Load(kind, rec)
}

// LoadNode decodes a node record.
func (r *Registry) LoadNode(rec types.Record) (*types.Node, error) {
	v, err := r.Load(types.KindNode, rec)
	if err != nil {
		return nil, err
	}
	return v.(*types.Node), nil
}

// LoadEdge decodes an edge record.
func (r *Registry) LoadEdge(rec types.Record) (*types.Edge, error) {
	v, err := r.Load(types.KindEdge, rec)
	if err != nil {
		return nil, err
	}
	return v.(*types.Edge), nil
}

// LoadHyperedge decodes a hyperedge record.
func (r *Registry) LoadHyperedge(rec types.Record) (*types.Hyperedge, error) {
	v, err := r.Load(types.KindHyperedge, rec)
	if err != nil {
		return nil, err
	}
	return v.(*types.Hyperedge), nil
}

func decodeNode(t types.NodeType, rec types.Record) (any, error) {
	id, err := decodeID(t.Name, rec)
	if err != nil {
		return nil, err
	}
	if err := checkConfig(t.Name, rec, nil); err != nil {
		return nil, err
	}
	attrs, err := decodeAttributes(t.Name, t.Attributes, rec)
	if err != nil {
		return nil, err
	}
	return &types.Node{ID: id, Type: t.Name, Config: t.Config, Attributes: attrs}, nil
}

func decodeEdge(t types.EdgeType, rec types.Record) (any, error) {
	id, err := decodeID(t.Name, rec)
	if err != nil {
		return nil, err
	}
	source, err := decodeRef(t.Name, types.FieldSource, rec)
	if err != nil {
		return nil, err
	}
	target, err := decodeRef(t.Name, types.FieldTarget, rec)
	if err != nil {
		return nil, err
	}
	if err := checkConfig(t.Name, rec, t.Config.Flags()); err != nil {
		return nil, err
	}
	attrs, err := decodeAttributes(t.Name, t.Attributes, rec)
	if err != nil {
		return nil, err
	}
	return &types.Edge{
		ID:         id,
		Type:       t.Name,
		Source:     source,
		Target:     target,
		Config:     t.Config,
		Attributes: attrs,
	}, nil
}

func decodeHyperedge(t types.HyperedgeType, rec types.Record) (any, error) {
	id, err := decodeID(t.Name, rec)
	if err != nil {
		return nil, err
	}
	sources, err := decodeRefs(t.Name, types.FieldSources, rec)
	if err != nil {
		return nil, err
	}
	targets, err := decodeRefs(t.Name, types.FieldTargets, rec)
	if err != nil {
		return nil, err
	}
	if err := checkConfig(t.Name, rec, t.Config.Flags()); err != nil {
		return nil, err
	}
	attrs, err := decodeAttributes(t.Name, t.Attributes, rec)
	if err != nil {
		return nil, err
	}
	return &types.Hyperedge{
		ID:         id,
		Type:       t.Name,
		Sources:    sources,
		Targets:    targets,
		Config:     t.Config,
		Attributes: attrs,
	}, nil
}

// decodeID returns the record's id, or a fresh one when the record has none.
func decodeID(typeName string, rec types.Record) (uuid.UUID, error) {
	v, ok := rec[types.FieldID]
	if !ok || v == nil || v == "" {
		return uuid.New(), nil
	}
	return parseID(typeName, types.FieldID, v)
}

func decodeRef(typeName, field string, rec types.Record) (uuid.UUID, error) {
	v, ok := rec[field]
	if !ok {
		return uuid.Nil, &types.SchemaMismatchError{Type: typeName, Field: field, Reason: "missing"}
	}
	return parseID(typeName, field, v)
}

func decodeRefs(typeName, field string, rec types.Record) ([]uuid.UUID, error) {
	v, ok := rec[field]
	if !ok {
		return nil, &types.SchemaMismatchError{Type: typeName, Field: field, Reason: "missing"}
	}
	var items []any
	switch x := v.(type) {
	case []any:
		items = x
	case []string:
		items = make([]any, len(x))
		for i, s := range x {
			items[i] = s
		}
	case []uuid.UUID:
		items = make([]any, len(x))
		for i, id := range x {
			items[i] = id
		}
	default:
		return nil, &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("want a list of ids, got %T", v)}
	}
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		id, err := parseID(typeName, fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

func parseID(typeName, field string, v any) (uuid.UUID, error) {
	switch x := v.(type) {
	case uuid.UUID:
		return x, nil
	case string:
		id, err := uuid.Parse(x)
		if err != nil {
			return uuid.Nil, &types.SchemaMismatchError{Type: typeName, Field: field, Reason: err.Error()}
		}
		return id, nil
	}
	return uuid.Nil, &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("want an id string, got %T", v)}
}

// checkConfig verifies that a record's config mapping, when present, names
// only known flags and agrees with the registered config. want is the
// registered config in Flags form; nil means the kind has no flags.
func checkConfig(typeName string, rec types.Record, want map[string]any) error {
	v, ok := rec[types.FieldConfig]
	if !ok || v == nil {
		return nil
	}
	got, ok := asMap(v)
	if !ok {
		return &types.SchemaMismatchError{Type: typeName, Field: types.FieldConfig, Reason: fmt.Sprintf("want a mapping, got %T", v)}
	}
	for _, key := range sortedKeys(got) {
		field := types.FieldConfig + "." + key
		if want == nil {
			return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: "unknown flag"}
		}
		if key == "inverse" {
			s, ok := got[key].(string)
			if !ok {
				return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("want text, got %T", got[key])}
			}
			if registered, _ := want[key].(string); s != registered {
				return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("record has %q, type declares %q", s, registered)}
			}
			continue
		}
		registered, known := want[key]
		if !known {
			return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: "unknown flag"}
		}
		b, ok := got[key].(bool)
		if !ok {
			return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("want boolean, got %T", got[key])}
		}
		if b != registered {
			return &types.SchemaMismatchError{Type: typeName, Field: field, Reason: fmt.Sprintf("record has %t, type declares %t", b, registered)}
		}
	}
	return nil
}

// decodeAttributes type-checks the declared attributes found in src and
// returns them normalized. Undeclared keys are ignored.
func decodeAttributes(typeName string, specs []types.AttributeSpec, src map[string]any) (map[string]any, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(specs))
	for _, spec := range specs {
		v, ok := src[spec.Name]
		if !ok || v == nil {
			if spec.Required {
				return nil, &types.SchemaMismatchError{Type: typeName, Field: spec.Name, Reason: "required attribute missing"}
			}
			continue
		}
		norm, err := spec.Normalize(v)
		if err != nil {
			return nil, &types.SchemaMismatchError{Type: typeName, Field: spec.Name, Reason: err.Error()}
		}
		out[spec.Name] = norm
	}
	return out, nil
}

// asMap accepts the mapping shapes the supported decoders produce.
func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case types.Record:
		return x, true
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[s] = e
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
