package ground_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/ground"
	"aspgrounder/internal/parser"
)

// groundSrc parses and grounds src in one step, failing the test on either
// a parse error or a fatal grounding error.
func groundSrc(t *testing.T, src string) string {
	t.Helper()
	p, err := parser.ParseSource("<test>", src)
	require.NoError(t, err)
	result := ground.Ground(p, ground.Options{})
	require.Empty(t, result.Errors)
	return result.Program.String()
}

func TestGround_GraphReachability(t *testing.T) {
	out := groundSrc(t, `
edge(1,2).
edge(2,3).
reach(X,Y) :- edge(X,Y).
reach(X,Z) :- reach(X,Y), edge(Y,Z).
`)
	assert.Contains(t, out, "reach(1,2).")
	assert.Contains(t, out, "reach(2,3).")
	assert.Contains(t, out, "reach(1,3).")
}

func TestGround_NegationAsFailure(t *testing.T) {
	out := groundSrc(t, `
p(1).
p(2).
q(1).
r(X) :- p(X), not q(X).
`)
	assert.Contains(t, out, "r(2).")
	assert.NotContains(t, out, "r(1).")
}

func TestGround_ChoiceRuleOverDomain(t *testing.T) {
	out := groundSrc(t, `
node(1).
node(2).
col(r).
col(g).
1 {color(X,C) : col(C)} 1 :- node(X).
`)
	assert.Contains(t, out, "color(1,r)")
	assert.Contains(t, out, "color(2,r)")
}

func TestGround_ConstraintSurvivesGrounding(t *testing.T) {
	out := groundSrc(t, `
edge(1,2).
col(r).
col(g).
node(1).
node(2).
1 {color(X,C) : col(C)} 1 :- node(X).
:- edge(X,Y), color(X,C), color(Y,C).
`)
	assert.Contains(t, out, ":-")
}

func TestGround_CountAggregate(t *testing.T) {
	out := groundSrc(t, `
p(1).
p(2).
p(3).
ok :- 2 <= #count{X : p(X)}.
`)
	assert.Contains(t, out, "ok :- 2 <= #count{1;2;3}.")
}

func TestGround_NegativeCycleKeepsNafLiteralUndecided(t *testing.T) {
	out := groundSrc(t, `
p(X) :- not q(X), u(X).
q(X) :- not p(X), v(X).
u(1).
u(2).
v(2).
v(3).
`)
	assert.Contains(t, out, "p(1).")
	assert.Contains(t, out, "q(2) :- not p(2).")
}

func TestGround_AllFactConstraintEmptiesAndWarns(t *testing.T) {
	p, err := parser.ParseSource("<test>", "p(0).\np(1).\n:- p(0), p(1).")
	require.NoError(t, err)
	result := ground.Ground(p, ground.Options{})
	require.Empty(t, result.Errors)
	assert.Contains(t, result.Program.String(), ":- .")
	require.NotEmpty(t, result.Warnings)
}

func TestGround_UnsafeVariableIsFatal(t *testing.T) {
	p, err := parser.ParseSource("<test>", "p(X) :- not q(X).\nq(1).")
	require.NoError(t, err)
	result := ground.Ground(p, ground.Options{})
	assert.NotEmpty(t, result.Errors)
}

func TestGround_QueryIsPreserved(t *testing.T) {
	p, err := parser.ParseSource("<test>", "p(1).\n? p(1).")
	require.NoError(t, err)
	result := ground.Ground(p, ground.Options{})
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Program.Query)
	assert.Equal(t, "p", result.Program.Query.Name)
}
