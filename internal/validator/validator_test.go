package validator

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hgraph/pkg/types"
)

var (
	nodeA = uuid.MustParse("00000000-0000-4000-8000-00000000000a")
	nodeB = uuid.MustParse("00000000-0000-4000-8000-00000000000b")
	nodeC = uuid.MustParse("00000000-0000-4000-8000-00000000000c")
	nodeD = uuid.MustParse("00000000-0000-4000-8000-00000000000d")
)

func edge(typ string, cfg types.EdgeConfig, src, tgt uuid.UUID) *types.Edge {
	return &types.Edge{ID: uuid.New(), Type: typ, Source: src, Target: tgt, Config: cfg}
}

func hyperedge(typ string, cfg types.HyperedgeConfig, srcs, tgts []uuid.UUID) *types.Hyperedge {
	return &types.Hyperedge{ID: uuid.New(), Type: typ, Sources: srcs, Targets: tgts, Config: cfg}
}

func edgeValidator(existing ...*types.Edge) *Validator {
	return New(slices.Values(existing), nil)
}

func hyperedgeValidator(existing ...*types.Hyperedge) *Validator {
	return New(nil, slices.Values(existing))
}

// requireViolation asserts err is a ConstraintViolation for rule and returns it.
func requireViolation(t *testing.T, err error, rule types.Rule) *types.ConstraintViolation {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrConstraintViolation)
	var cv *types.ConstraintViolation
	require.True(t, errors.As(err, &cv), "expected *types.ConstraintViolation, got %T", err)
	assert.Equal(t, rule, cv.Rule)
	return cv
}

func TestValidateEdgeIrreflexive(t *testing.T) {
	irreflexive := types.EdgeConfig{Irreflexive: true}

	t.Run("self loop rejected on empty store", func(t *testing.T) {
		c := edge("ParentOf", irreflexive, nodeA, nodeA)
		cv := requireViolation(t, edgeValidator().ValidateEdge(c), types.RuleIrreflexive)
		assert.Equal(t, uuid.Nil, cv.ConflictID)
		assert.Equal(t, c.ID, cv.CandidateID)
		assert.Equal(t, types.KindEdge, cv.Kind)
	})

	t.Run("self loop rejected with unrelated edges present", func(t *testing.T) {
		v := edgeValidator(edge("Knows", types.EdgeConfig{}, nodeB, nodeC))
		requireViolation(t, v.ValidateEdge(edge("ParentOf", irreflexive, nodeA, nodeA)), types.RuleIrreflexive)
	})

	t.Run("self loop admitted without the flag", func(t *testing.T) {
		assert.NoError(t, edgeValidator().ValidateEdge(edge("Trusts", types.EdgeConfig{}, nodeA, nodeA)))
	})

	t.Run("distinct endpoints admitted", func(t *testing.T) {
		assert.NoError(t, edgeValidator().ValidateEdge(edge("ParentOf", irreflexive, nodeA, nodeB)))
	})
}

func TestValidateEdgeAsymmetric(t *testing.T) {
	asym := types.EdgeConfig{Asymmetric: true}
	existing := edge("BossOf", asym, nodeA, nodeB)
	v := edgeValidator(existing)

	cv := requireViolation(t, v.ValidateEdge(edge("BossOf", asym, nodeB, nodeA)), types.RuleAsymmetric)
	assert.Equal(t, existing.ID, cv.ConflictID)
	assert.Equal(t, "BossOf", cv.RelationType)

	assert.NoError(t, v.ValidateEdge(edge("MentorOf", asym, nodeB, nodeA)), "reverse of a different type is allowed")
	assert.NoError(t, v.ValidateEdge(edge("BossOf", asym, nodeA, nodeC)))

	loop := edge("BossOf", asym, nodeC, nodeC)
	requireViolation(t, edgeValidator(loop).ValidateEdge(edge("BossOf", asym, nodeC, nodeC)), types.RuleAsymmetric)
}

func TestValidateEdgeAntisymmetric(t *testing.T) {
	anti := types.EdgeConfig{Antisymmetric: true}

	v := edgeValidator(edge("AncestorOf", anti, nodeA, nodeB))
	requireViolation(t, v.ValidateEdge(edge("AncestorOf", anti, nodeB, nodeA)), types.RuleAntisymmetric)

	loopAllowed := types.EdgeConfig{Antisymmetric: true, AllowsDuplicates: true}
	v = edgeValidator(edge("AncestorOf", loopAllowed, nodeA, nodeA))
	assert.NoError(t, v.ValidateEdge(edge("AncestorOf", loopAllowed, nodeA, nodeA)),
		"a self loop never violates antisymmetry")
}

func TestValidateEdgeFunctional(t *testing.T) {
	fn := types.EdgeConfig{Functional: true}
	existing := edge("BiologicalMotherOf", fn, nodeA, nodeB)
	v := edgeValidator(existing)

	cv := requireViolation(t, v.ValidateEdge(edge("BiologicalMotherOf", fn, nodeA, nodeC)), types.RuleFunctional)
	assert.Equal(t, existing.ID, cv.ConflictID)
	assert.NoError(t, v.ValidateEdge(edge("BiologicalMotherOf", fn, nodeD, nodeB)))
}

func TestValidateEdgeInverseFunctional(t *testing.T) {
	ifn := types.EdgeConfig{InverseFunctional: true}
	v := edgeValidator(edge("SSNOf", ifn, nodeA, nodeB))

	requireViolation(t, v.ValidateEdge(edge("SSNOf", ifn, nodeC, nodeB)), types.RuleInverseFunctional)
	assert.NoError(t, v.ValidateEdge(edge("SSNOf", ifn, nodeA, nodeC)))
}

func TestValidateEdgeUnique(t *testing.T) {
	t.Run("duplicate rejected by default", func(t *testing.T) {
		cfg := types.EdgeConfig{}
		v := edgeValidator(edge("Knows", cfg, nodeA, nodeB))
		requireViolation(t, v.ValidateEdge(edge("Knows", cfg, nodeA, nodeB)), types.RuleUnique)
	})

	t.Run("duplicate admitted when allowed", func(t *testing.T) {
		cfg := types.EdgeConfig{AllowsDuplicates: true}
		v := edgeValidator(edge("Visited", cfg, nodeA, nodeB))
		assert.NoError(t, v.ValidateEdge(edge("Visited", cfg, nodeA, nodeB)))
	})

	t.Run("same endpoints of another type admitted", func(t *testing.T) {
		v := edgeValidator(edge("Knows", types.EdgeConfig{}, nodeA, nodeB))
		assert.NoError(t, v.ValidateEdge(edge("Likes", types.EdgeConfig{}, nodeA, nodeB)))
	})

	t.Run("own prior value is skipped", func(t *testing.T) {
		prior := edge("Knows", types.EdgeConfig{Functional: true}, nodeA, nodeB)
		updated := prior.Clone()
		updated.Target = nodeC
		assert.NoError(t, edgeValidator(prior).ValidateEdge(updated))
	})
}

func TestValidateEdgeRuleOrder(t *testing.T) {
	// The reverse edge trips asymmetric before the functional check sees the
	// shared source of the second edge.
	cfg := types.EdgeConfig{Asymmetric: true, Functional: true}
	reverse := edge("Controls", cfg, nodeB, nodeA)
	sameSource := edge("Controls", cfg, nodeB, nodeC)

	requireViolation(t, edgeValidator(reverse, sameSource).ValidateEdge(edge("Controls", cfg, nodeA, nodeB)),
		types.RuleAsymmetric)

	// Scan order is insertion order: the first existing edge decides.
	other := edge("Controls", cfg, nodeA, nodeD)
	requireViolation(t, edgeValidator(other, reverse).ValidateEdge(edge("Controls", cfg, nodeA, nodeB)),
		types.RuleFunctional)
}

func TestValidateEdgePermissionsOnly(t *testing.T) {
	cfg := types.EdgeConfig{Symmetric: true, Reflexive: true, Transitive: true, Inverse: "SiblingOf"}
	v := edgeValidator(edge("SiblingOf", cfg, nodeA, nodeB))

	assert.NoError(t, v.ValidateEdge(edge("SiblingOf", cfg, nodeB, nodeA)))
	assert.NoError(t, v.ValidateEdge(edge("SiblingOf", cfg, nodeC, nodeC)))
	assert.NoError(t, v.ValidateEdge(edge("SiblingOf", cfg, nodeB, nodeC)))
}

func TestValidateHyperedgeCyclic(t *testing.T) {
	a := []uuid.UUID{nodeA}

	requireViolation(t, hyperedgeValidator().ValidateHyperedge(
		hyperedge("Transfers", types.HyperedgeConfig{}, a, a)), types.RuleCyclic)

	assert.NoError(t, hyperedgeValidator().ValidateHyperedge(
		hyperedge("Loop", types.HyperedgeConfig{Cyclic: true, Reflexive: true}, a, a)))

	assert.NoError(t, hyperedgeValidator().ValidateHyperedge(
		hyperedge("Loop", types.HyperedgeConfig{Cyclic: true}, []uuid.UUID{nodeA, nodeB}, a)),
		"partial overlap is allowed for cyclic types")

	requireViolation(t, hyperedgeValidator().ValidateHyperedge(
		hyperedge("Transfers", types.HyperedgeConfig{}, []uuid.UUID{nodeA, nodeB}, []uuid.UUID{nodeC, nodeB})),
		types.RuleCyclic)
}

func TestValidateHyperedgeReflexive(t *testing.T) {
	cyclic := types.HyperedgeConfig{Cyclic: true}
	ab := []uuid.UUID{nodeA, nodeB}
	ba := []uuid.UUID{nodeB, nodeA}

	requireViolation(t, hyperedgeValidator().ValidateHyperedge(hyperedge("Coordinates", cyclic, ab, ab)),
		types.RuleReflexive)

	unordered := types.HyperedgeConfig{Cyclic: true, Unordered: true}
	assert.NoError(t, hyperedgeValidator().ValidateHyperedge(hyperedge("Coordinates", unordered, ab, ba)),
		"reflexive compares exact sequences even for unordered types")

	requireViolation(t, hyperedgeValidator().ValidateHyperedge(hyperedge("Empty", types.HyperedgeConfig{}, nil, nil)),
		types.RuleReflexive)
}

func TestValidateHyperedgeUnique(t *testing.T) {
	ab := []uuid.UUID{nodeA, nodeB}
	ba := []uuid.UUID{nodeB, nodeA}
	c := []uuid.UUID{nodeC}

	t.Run("unordered duplicate", func(t *testing.T) {
		cfg := types.HyperedgeConfig{Unordered: true}
		existing := hyperedge("CoAuthored", cfg, ab, c)
		cv := requireViolation(t, hyperedgeValidator(existing).ValidateHyperedge(hyperedge("CoAuthored", cfg, ba, c)),
			types.RuleUnique)
		assert.Equal(t, existing.ID, cv.ConflictID)
		assert.Equal(t, types.KindHyperedge, cv.Kind)
	})

	t.Run("ordered lists in another order are distinct", func(t *testing.T) {
		cfg := types.HyperedgeConfig{}
		v := hyperedgeValidator(hyperedge("PassedFromTo", cfg, ab, c))
		assert.NoError(t, v.ValidateHyperedge(hyperedge("PassedFromTo", cfg, ba, c)))
		requireViolation(t, v.ValidateHyperedge(hyperedge("PassedFromTo", cfg, ab, c)), types.RuleUnique)
	})

	t.Run("duplicates allowed", func(t *testing.T) {
		cfg := types.HyperedgeConfig{AllowsDuplicates: true}
		v := hyperedgeValidator(hyperedge("JoinedTeam", cfg, ab, c))
		assert.NoError(t, v.ValidateHyperedge(hyperedge("JoinedTeam", cfg, ab, c)))
	})

	t.Run("another type with the same lists", func(t *testing.T) {
		v := hyperedgeValidator(hyperedge("CoAuthored", types.HyperedgeConfig{}, ab, c))
		assert.NoError(t, v.ValidateHyperedge(hyperedge("Reviewed", types.HyperedgeConfig{}, ab, c)))
	})
}

func TestValidateHyperedgeFunctional(t *testing.T) {
	ab := []uuid.UUID{nodeA, nodeB}
	ba := []uuid.UUID{nodeB, nodeA}
	cfg := types.HyperedgeConfig{Unordered: true, Functional: true}
	v := hyperedgeValidator(hyperedge("Delegates", cfg, ab, []uuid.UUID{nodeC}))

	requireViolation(t, v.ValidateHyperedge(hyperedge("Delegates", cfg, ba, []uuid.UUID{nodeD})), types.RuleFunctional)
	assert.NoError(t, v.ValidateHyperedge(hyperedge("Delegates", cfg, []uuid.UUID{nodeA}, []uuid.UUID{nodeD})))

	ordered := types.HyperedgeConfig{Functional: true}
	v = hyperedgeValidator(hyperedge("Delegates", ordered, ab, []uuid.UUID{nodeC}))
	assert.NoError(t, v.ValidateHyperedge(hyperedge("Delegates", ordered, ba, []uuid.UUID{nodeD})),
		"ordered source lists in another order are different sources")
}

func TestValidateHyperedgeInverseFunctional(t *testing.T) {
	cfg := types.HyperedgeConfig{InverseFunctional: true, AllowsDuplicates: true}
	targets := []uuid.UUID{nodeC, nodeD}
	v := hyperedgeValidator(hyperedge("AuthoredBy", cfg, []uuid.UUID{nodeA}, targets))

	requireViolation(t, v.ValidateHyperedge(hyperedge("AuthoredBy", cfg, []uuid.UUID{nodeB}, targets)),
		types.RuleInverseFunctional)
	assert.NoError(t, v.ValidateHyperedge(hyperedge("AuthoredBy", cfg, []uuid.UUID{nodeA}, targets)),
		"the same source set may repeat when duplicates are allowed")
}

func TestValidateHyperedgeRuleOrder(t *testing.T) {
	// A duplicate of a functional type reports unique, not functional.
	cfg := types.HyperedgeConfig{Functional: true}
	src, tgt := []uuid.UUID{nodeA}, []uuid.UUID{nodeB}
	v := hyperedgeValidator(hyperedge("Owns", cfg, src, tgt))
	requireViolation(t, v.ValidateHyperedge(hyperedge("Owns", cfg, src, tgt)), types.RuleUnique)

	// Cyclic is checked before anything that scans the store.
	requireViolation(t, v.ValidateHyperedge(hyperedge("Owns", cfg, src, src)), types.RuleCyclic)
}

func TestConstraintViolationMessage(t *testing.T) {
	cfg := types.EdgeConfig{Functional: true}
	existing := edge("MotherOf", cfg, nodeA, nodeB)
	c := edge("MotherOf", cfg, nodeA, nodeC)

	err := edgeValidator(existing).ValidateEdge(c)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "functional")
	assert.Contains(t, msg, "MotherOf")
	assert.Contains(t, msg, c.ID.String())
	assert.Contains(t, msg, existing.ID.String())
}
