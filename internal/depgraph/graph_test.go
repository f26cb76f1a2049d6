package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
)

func x() term.Term { return term.Variable{Name: "X"} }

func TestBuild_EdgeFromBodyToHead(t *testing.T) {
	rule := &stmt.NormalRule{
		Head: literal.NewPred("q", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("p", x())),
	}
	g := Build([]stmt.Statement{rule})
	require.Len(t, g.Edges, 1)
	assert.Equal(t, Predicate{Name: "p", Arity: 1}, g.Edges[0].From)
	assert.Equal(t, Predicate{Name: "q", Arity: 1}, g.Edges[0].To)
	assert.False(t, g.Edges[0].Neg)
}

func TestBuild_NegativeEdgeFromNaf(t *testing.T) {
	rule := &stmt.NormalRule{
		Head: literal.NewPred("q", x()),
		Body: literal.NewLiteralCollection(&literal.Pred{Name: "p", Naf: true, Terms: []term.Term{x()}}),
	}
	g := Build([]stmt.Statement{rule})
	require.Len(t, g.Edges, 1)
	assert.True(t, g.Edges[0].Neg)
}

func TestPartitionEDBIDB_FactOnlyIsEDB(t *testing.T) {
	fact := stmt.NewFact(literal.NewPred("edge", term.Number{Value: 1}, term.Number{Value: 2}))
	rule := &stmt.NormalRule{
		Head: literal.NewPred("reach", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("edge", x(), x())),
	}
	edb, idb := PartitionEDBIDB([]stmt.Statement{fact, rule})
	assert.True(t, edb[Predicate{Name: "edge", Arity: 2}])
	assert.True(t, idb[Predicate{Name: "reach", Arity: 1}])
}

func TestTarjanSCC_DirectRecursionIsOneComponent(t *testing.T) {
	// reach(X) :- edge(X,Y). reach(Y) :- reach(X), edge(X,Y).
	edgeFact := stmt.NewFact(literal.NewPred("edge", term.Number{Value: 1}, term.Number{Value: 2}))
	base := &stmt.NormalRule{
		Head: literal.NewPred("reach", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("edge", x(), term.Variable{Name: "Y"})),
	}
	rec := &stmt.NormalRule{
		Head: literal.NewPred("reach", term.Variable{Name: "Y"}),
		Body: literal.NewLiteralCollection(
			literal.NewPred("reach", x()),
			literal.NewPred("edge", x(), term.Variable{Name: "Y"}),
		),
	}
	g := Build([]stmt.Statement{edgeFact, base, rec})
	sccs := TarjanSCC(g)

	var reachComponent []Predicate
	for _, c := range sccs {
		for _, p := range c {
			if p.Name == "reach" {
				reachComponent = c
			}
		}
	}
	require.Len(t, reachComponent, 1)
	assert.Equal(t, "reach", reachComponent[0].Name)
}

func TestBuildComponentGraph_TopoSortRespectsDependency(t *testing.T) {
	edgeFact := stmt.NewFact(literal.NewPred("edge", term.Number{Value: 1}, term.Number{Value: 2}))
	reach := &stmt.NormalRule{
		Head: literal.NewPred("reach", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("edge", x(), term.Variable{Name: "Y"})),
	}
	cg := BuildComponentGraph([]stmt.Statement{edgeFact, reach})
	order := cg.TopoSort()
	require.True(t, len(order) >= 2)

	rank := map[Predicate]int{}
	for i, c := range order {
		for _, p := range c.Predicates {
			rank[p] = i
		}
	}
	assert.Less(t, rank[Predicate{Name: "edge", Arity: 2}], rank[Predicate{Name: "reach", Arity: 1}])
}
