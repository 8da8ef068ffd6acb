package types

import (
	"slices"

	"github.com/google/uuid"
)

// Hyperedge is a directed n-ary relation instance from an ordered list of
// source node identities to an ordered list of target node identities.
type Hyperedge struct {
	ID         uuid.UUID
	Type       string
	Sources    []uuid.UUID
	Targets    []uuid.UUID
	Config     HyperedgeConfig
	Attributes map[string]any
}

// Endpoints returns the sources followed by the targets.
func (h *Hyperedge) Endpoints() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(h.Sources)+len(h.Targets))
	out = append(out, h.Sources...)
	return append(out, h.Targets...)
}

// Clone returns a copy of the hyperedge that shares no slices or maps with h.
func (h *Hyperedge) Clone() *Hyperedge {
	c := *h
	c.Sources = slices.Clone(h.Sources)
	c.Targets = slices.Clone(h.Targets)
	c.Attributes = cloneAttributes(h.Attributes)
	return &c
}

// Record returns the untyped attribute record for the hyperedge.
func (h *Hyperedge) Record() Record {
	rec := newRecord(KindHyperedge, h.ID, h.Type, h.Attributes)
	rec[FieldSources] = idStrings(h.Sources)
	rec[FieldTargets] = idStrings(h.Targets)
	rec[FieldConfig] = h.Config.Flags()
	return rec
}

// Flags returns the config as the record mapping used under the "config" key.
func (c HyperedgeConfig) Flags() map[string]any {
	m := map[string]any{
		"unordered":          c.Unordered,
		"allows_duplicates":  c.AllowsDuplicates,
		"cyclic":             c.Cyclic,
		"reflexive":          c.Reflexive,
		"functional":         c.Functional,
		"inverse_functional": c.InverseFunctional,
		"transitive":         c.Transitive,
	}
	if c.Inverse != "" {
		m["inverse"] = c.Inverse
	}
	return m
}

func idStrings(ids []uuid.UUID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
