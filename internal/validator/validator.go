// Package validator decides whether a candidate edge or hyperedge may enter
// a relation store, by evaluating its type's configuration against the
// relations already present.
package validator

import (
	"fmt"
	"iter"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

// Validator evaluates candidates against live relation collections. It keeps
// no copy of store state: each call reads the sequences it was built with,
// so a Validator reflects the store at the moment of validation.
type Validator struct {
	edges      iter.Seq[*types.Edge]
	hyperedges iter.Seq[*types.Hyperedge]
}

// New returns a Validator reading the given collections. Either sequence may
// be nil, meaning no relations of that kind exist.
func New(edges iter.Seq[*types.Edge], hyperedges iter.Seq[*types.Hyperedge]) *Validator {
	return &Validator{edges: edges, hyperedges: hyperedges}
}

// ValidateEdge returns nil when the candidate may be inserted, or a
// *types.ConstraintViolation for the first broken rule. Existing edges are
// scanned once in order; for each, the rules are checked in the order
// asymmetric, antisymmetric, functional, inverse-functional, unique. Only
// edges of the candidate's type count, and an existing edge with the
// candidate's own ID is its prior value and is skipped.
func (v *Validator) ValidateEdge(c *types.Edge) error {
	cfg := c.Config

	// Irreflexivity depends on the candidate alone.
	if cfg.Irreflexive && c.IsSelfLoop() {
		return edgeViolation(c, types.RuleIrreflexive, uuid.Nil,
			fmt.Sprintf("source and target are both %s", c.Source))
	}

	if v.edges == nil {
		return nil
	}
	for e := range v.edges {
		if e.Type != c.Type || e.ID == c.ID {
			continue
		}
		if cfg.Asymmetric && c.Reverses(e) {
			return edgeViolation(c, types.RuleAsymmetric, e.ID,
				fmt.Sprintf("reverse edge %s → %s exists", e.Source, e.Target))
		}
		if cfg.Antisymmetric && !c.IsSelfLoop() && c.Reverses(e) {
			return edgeViolation(c, types.RuleAntisymmetric, e.ID,
				fmt.Sprintf("reverse edge %s → %s exists", e.Source, e.Target))
		}
		if cfg.Functional && e.Source == c.Source {
			return edgeViolation(c, types.RuleFunctional, e.ID,
				fmt.Sprintf("source %s already has an outgoing edge to %s", c.Source, e.Target))
		}
		if cfg.InverseFunctional && e.Target == c.Target {
			return edgeViolation(c, types.RuleInverseFunctional, e.ID,
				fmt.Sprintf("target %s already has an incoming edge from %s", c.Target, e.Source))
		}
		if !cfg.AllowsDuplicates && e.Source == c.Source && e.Target == c.Target {
			return edgeViolation(c, types.RuleUnique, e.ID,
				fmt.Sprintf("edge %s → %s already exists", c.Source, c.Target))
		}
	}
	return nil
}

// ValidateHyperedge returns nil when the candidate may be inserted, or a
// *types.ConstraintViolation for the first broken rule. Rules run in the
// order cyclic, reflexive, unique, functional, inverse-functional. Unordered
// types compare source and target lists as sets; the reflexive rule always
// compares exact sequences.
func (v *Validator) ValidateHyperedge(c *types.Hyperedge) error {
	cfg := c.Config

	if !cfg.Cyclic {
		if overlap := intersect(c.Sources, c.Targets); len(overlap) > 0 {
			return hyperedgeViolation(c, types.RuleCyclic, uuid.Nil,
				fmt.Sprintf("nodes %v appear in both sources and targets", overlap))
		}
	}

	if !cfg.Reflexive && sequenceEqual(c.Sources, c.Targets) {
		return hyperedgeViolation(c, types.RuleReflexive, uuid.Nil, "sources equal targets")
	}

	equal := sequenceEqual
	if cfg.Unordered {
		equal = setEqual
	}

	if !cfg.AllowsDuplicates {
		if h := v.findHyperedge(c, func(h *types.Hyperedge) bool {
			return equal(h.Sources, c.Sources) && equal(h.Targets, c.Targets)
		}); h != nil {
			return hyperedgeViolation(c, types.RuleUnique, h.ID, "same sources and targets already related")
		}
	}

	if cfg.Functional {
		if h := v.findHyperedge(c, func(h *types.Hyperedge) bool {
			return equal(h.Sources, c.Sources) && !equal(h.Targets, c.Targets)
		}); h != nil {
			return hyperedgeViolation(c, types.RuleFunctional, h.ID,
				fmt.Sprintf("sources already map to targets %v", h.Targets))
		}
	}

	if cfg.InverseFunctional {
		if h := v.findHyperedge(c, func(h *types.Hyperedge) bool {
			return equal(h.Targets, c.Targets) && !equal(h.Sources, c.Sources)
		}); h != nil {
			return hyperedgeViolation(c, types.RuleInverseFunctional, h.ID,
				fmt.Sprintf("targets already mapped from sources %v", h.Sources))
		}
	}

	return nil
}

// findHyperedge returns the first existing hyperedge of the candidate's type,
// other than the candidate itself, that satisfies match.
func (v *Validator) findHyperedge(c *types.Hyperedge, match func(*types.Hyperedge) bool) *types.Hyperedge {
	if v.hyperedges == nil {
		return nil
	}
	for h := range v.hyperedges {
		if h.Type != c.Type || h.ID == c.ID {
			continue
		}
		if match(h) {
			return h
		}
	}
	return nil
}

func edgeViolation(c *types.Edge, rule types.Rule, conflict uuid.UUID, detail string) error {
	return &types.ConstraintViolation{
		Rule:         rule,
		Kind:         types.KindEdge,
		RelationType: c.Type,
		CandidateID:  c.ID,
		ConflictID:   conflict,
		Detail:       detail,
	}
}

func hyperedgeViolation(c *types.Hyperedge, rule types.Rule, conflict uuid.UUID, detail string) error {
	return &types.ConstraintViolation{
		Rule:         rule,
		Kind:         types.KindHyperedge,
		RelationType: c.Type,
		CandidateID:  c.ID,
		ConflictID:   conflict,
		Detail:       detail,
	}
}
