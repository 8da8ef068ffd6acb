package hgraph_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hgraph/pkg/hgraph"
	"github.com/mesh-intelligence/hgraph/pkg/types"
)

const schema = `
nodes:
  - name: Person
    attributes:
      - {name: name, type: text, required: true}
  - name: Project
edges:
  - name: ParentOf
    config: {antisymmetric: true, irreflexive: true}
hyperedges:
  - name: WorksOn
    config: {unordered: true, functional: true}
`

func setup(t *testing.T) (*hgraph.Registry, *hgraph.Graph) {
	t.Helper()
	reg := hgraph.NewRegistry()
	require.NoError(t, reg.Declare(strings.NewReader(schema)))
	reg.Seal()

	g, err := hgraph.NewGraph(types.Settings{})
	require.NoError(t, err)
	return reg, g
}

func person(t *testing.T, reg *hgraph.Registry, g *hgraph.Graph, name string) uuid.UUID {
	t.Helper()
	n, err := reg.NewNode("Person", map[string]any{"name": name})
	require.NoError(t, err)
	require.NoError(t, g.AddNode(n))
	return n.ID
}

func TestAntisymmetricEdgeRejectsReverse(t *testing.T) {
	reg, g := setup(t)
	james := person(t, reg, g, "James")
	thomas := person(t, reg, g, "Thomas")

	forward, err := reg.NewEdge("ParentOf", james, thomas, nil)
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(forward))

	reverse, err := reg.NewEdge("ParentOf", thomas, james, nil)
	require.NoError(t, err)
	err = g.AddEdge(reverse)
	require.ErrorIs(t, err, types.ErrConstraintViolation)

	var cv *types.ConstraintViolation
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, types.RuleAntisymmetric, cv.Rule)
	assert.Equal(t, forward.ID, cv.ConflictID)
	assert.Len(t, g.ListEdges(), 1)
}

func TestUnorderedFunctionalHyperedgeRejectsNewTargets(t *testing.T) {
	reg, g := setup(t)
	alice := person(t, reg, g, "Alice")
	bob := person(t, reg, g, "Bob")

	projectX, err := reg.NewNode("Project", nil)
	require.NoError(t, err)
	projectY, err := reg.NewNode("Project", nil)
	require.NoError(t, err)
	require.NoError(t, g.AddNode(projectX))
	require.NoError(t, g.AddNode(projectY))

	first, err := reg.NewHyperedge("WorksOn", []uuid.UUID{alice, bob}, []uuid.UUID{projectX.ID}, nil)
	require.NoError(t, err)
	require.NoError(t, g.AddHyperedge(first))

	second, err := reg.NewHyperedge("WorksOn", []uuid.UUID{bob, alice}, []uuid.UUID{projectY.ID}, nil)
	require.NoError(t, err)
	err = g.AddHyperedge(second)
	require.ErrorIs(t, err, types.ErrConstraintViolation)

	var cv *types.ConstraintViolation
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, types.RuleFunctional, cv.Rule)
	assert.Equal(t, first.ID, cv.ConflictID)
	assert.Equal(t, hgraph.Stats{Nodes: 4, Hyperedges: 1}, g.Stats())
}

func TestLoadUnregisteredType(t *testing.T) {
	reg, _ := setup(t)

	_, err := reg.Load(types.KindNode, types.Record{"type": "Ghost", "name": "Casper"})
	require.ErrorIs(t, err, types.ErrUnknownType)

	var ut *types.UnknownTypeError
	require.True(t, errors.As(err, &ut))
	assert.Equal(t, "Ghost", ut.Name)
}

func TestLoadedEntitiesFlowIntoGraph(t *testing.T) {
	reg, g := setup(t)
	a, b := uuid.New(), uuid.New()

	for _, rec := range []types.Record{
		{"kind": "node", "id": a.String(), "type": "Person", "name": "A"},
		{"kind": "node", "id": b.String(), "type": "Person", "name": "B"},
	} {
		v, err := reg.LoadRecord(rec)
		require.NoError(t, err)
		require.NoError(t, g.AddNode(v.(*types.Node)))
	}

	e, err := reg.LoadEdge(types.Record{"type": "ParentOf", "source": a.String(), "target": b.String()})
	require.NoError(t, err)
	require.NoError(t, g.AddEdge(e))

	self, err := reg.LoadEdge(types.Record{"type": "ParentOf", "source": a.String(), "target": a.String()})
	require.NoError(t, err)
	err = g.AddEdge(self)
	var cv *types.ConstraintViolation
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, types.RuleIrreflexive, cv.Rule)

	assert.Empty(t, g.Orphans())
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, hgraph.Version)
	assert.Equal(t, "github.com/mesh-intelligence/hgraph", hgraph.ModulePath)
}
