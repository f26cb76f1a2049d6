package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
)

func TestParseSource_SimpleFact(t *testing.T) {
	p, err := ParseSource("<test>", "p(1,2).")
	require.NoError(t, err)
	require.Len(t, p.Statements, 1)
	r, ok := p.Statements[0].(*stmt.NormalRule)
	require.True(t, ok)
	assert.True(t, r.IsFact())
	assert.Equal(t, "p", r.Head.Name)
	assert.Equal(t, 2, r.Head.Arity())
}

func TestParseSource_NormalRuleWithBodyAndNaf(t *testing.T) {
	p, err := ParseSource("<test>", "q(X) :- p(X), not r(X).")
	require.NoError(t, err)
	require.Len(t, p.Statements, 1)
	r, ok := p.Statements[0].(*stmt.NormalRule)
	require.True(t, ok)
	assert.Equal(t, 2, r.Body.Len())
}

func TestParseSource_DisjunctiveHead(t *testing.T) {
	p, err := ParseSource("<test>", "a(X) | b(X) :- p(X).")
	require.NoError(t, err)
	r, ok := p.Statements[0].(*stmt.DisjunctiveRule)
	require.True(t, ok)
	assert.Len(t, r.Heads, 2)
}

func TestParseSource_Constraint(t *testing.T) {
	p, err := ParseSource("<test>", ":- p(X), q(X).")
	require.NoError(t, err)
	_, ok := p.Statements[0].(*stmt.Constraint)
	assert.True(t, ok)
}

func TestParseSource_ChoiceRule(t *testing.T) {
	p, err := ParseSource("<test>", "1 {color(X,C) : col(C)} 1 :- node(X).")
	require.NoError(t, err)
	r, ok := p.Statements[0].(*stmt.ChoiceRule)
	require.True(t, ok)
	require.NotNil(t, r.Choice.LeftGuard)
	require.NotNil(t, r.Choice.RightGuard)
	assert.Len(t, r.Choice.Elements, 1)
}

func TestParseSource_AggregateWithGuards(t *testing.T) {
	p, err := ParseSource("<test>", "ok :- 2 <= #count{X : p(X)} <= 5.")
	require.NoError(t, err)
	r, ok := p.Statements[0].(*stmt.NormalRule)
	require.True(t, ok)
	require.Equal(t, 1, r.Body.Len())
	agg, ok := r.Body.At(0).(interface{ IsNaf() bool })
	require.True(t, ok)
	_ = agg
}

func TestParseSource_WeakConstraint(t *testing.T) {
	p, err := ParseSource("<test>", ":~ p(X). [1@2,X]")
	require.NoError(t, err)
	_, ok := p.Statements[0].(*stmt.WeakConstraint)
	assert.True(t, ok)
}

func TestParseSource_Optimize(t *testing.T) {
	p, err := ParseSource("<test>", "#minimize{1@0,X : p(X)}.")
	require.NoError(t, err)
	o, ok := p.Statements[0].(*stmt.OptimizeStatement)
	require.True(t, ok)
	assert.False(t, o.Maximize)
}

func TestParseSource_NPPRule(t *testing.T) {
	p, err := ParseSource("<test>", "#npp(digit(X), [0,1,2]) :- pixel(X).")
	require.NoError(t, err)
	n, ok := p.Statements[0].(*stmt.NPPRule)
	require.True(t, ok)
	assert.Equal(t, "digit", n.Name)
	assert.Len(t, n.Outcomes, 3)
}

func TestParseSource_Query(t *testing.T) {
	p, err := ParseSource("<test>", "? p(1).")
	require.NoError(t, err)
	require.NotNil(t, p.Query)
	assert.Equal(t, "p", p.Query.Name)
}

func TestParseSource_ArithmeticSimplified(t *testing.T) {
	p, err := ParseSource("<test>", "p(1+2).")
	require.NoError(t, err)
	r := p.Statements[0].(*stmt.NormalRule)
	require.Len(t, r.Head.Terms, 1)
	assert.Equal(t, term.Number{Value: 3}, r.Head.Terms[0])
}

func TestParseSource_NonGroundArithmeticBecomesArithVariable(t *testing.T) {
	p, err := ParseSource("<test>", "p(X+1) :- q(X).")
	require.NoError(t, err)
	r := p.Statements[0].(*stmt.NormalRule)
	_, ok := r.Head.Terms[0].(*term.ArithVariable)
	assert.True(t, ok)
}

func TestParseSource_RangeFactExpandsToMultipleFacts(t *testing.T) {
	p, err := ParseSource("<test>", "node(1..3).")
	require.NoError(t, err)
	require.Len(t, p.Statements, 3)
	for i, s := range p.Statements {
		r := s.(*stmt.NormalRule)
		assert.Equal(t, term.Number{Value: int64(i + 1)}, r.Head.Terms[0])
	}
}

func TestParseSource_ReservedVariableLetterRejected(t *testing.T) {
	_, err := ParseSource("<test>", "p(τX) :- q(τX).")
	assert.Error(t, err)
}

func TestParseSource_ReservedConstantLetterRejected(t *testing.T) {
	_, err := ParseSource("<test>", "p(α1).")
	assert.Error(t, err)
}

func TestParseSource_SyntaxError(t *testing.T) {
	_, err := ParseSource("<test>", "p(X :- q(X).")
	assert.Error(t, err)
}
