package types

import "github.com/google/uuid"

// Edge is a directed binary relation instance between two node identities.
// Config is the configuration of the edge's type.
type Edge struct {
	ID         uuid.UUID
	Type       string
	Source     uuid.UUID
	Target     uuid.UUID
	Config     EdgeConfig
	Attributes map[string]any
}

// IsSelfLoop reports whether the edge relates a node to itself.
func (e *Edge) IsSelfLoop() bool {
	return e.Source == e.Target
}

// Reverses reports whether o runs in the opposite direction of e between the
// same two endpoints.
func (e *Edge) Reverses(o *Edge) bool {
	return o.Source == e.Target && o.Target == e.Source
}

// Clone returns a copy of the edge that shares no maps with e.
func (e *Edge) Clone() *Edge {
	c := *e
	c.Attributes = cloneAttributes(e.Attributes)
	return &c
}

// Record returns the untyped attribute record for the edge.
func (e *Edge) Record() Record {
	rec := newRecord(KindEdge, e.ID, e.Type, e.Attributes)
	rec[FieldSource] = e.Source.String()
	rec[FieldTarget] = e.Target.String()
	rec[FieldConfig] = e.Config.Flags()
	return rec
}

// Flags returns the config as the record mapping used under the "config" key.
func (c EdgeConfig) Flags() map[string]any {
	m := map[string]any{
		"symmetric":          c.Symmetric,
		"antisymmetric":      c.Antisymmetric,
		"asymmetric":         c.Asymmetric,
		"reflexive":          c.Reflexive,
		"irreflexive":        c.Irreflexive,
		"transitive":         c.Transitive,
		"functional":         c.Functional,
		"inverse_functional": c.InverseFunctional,
		"allows_duplicates":  c.AllowsDuplicates,
	}
	if c.Inverse != "" {
		m["inverse"] = c.Inverse
	}
	return m
}
