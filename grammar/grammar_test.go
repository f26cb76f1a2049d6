package grammar

import (
	"testing"

	"github.com/alecthomas/participle/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParser = participle.MustBuild[Program](
	participle.Lexer(Lexer),
	participle.Elide("Whitespace", "LineComment", "BlockComment"),
	participle.UseLookahead(4),
	participle.Unquote("String"),
)

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := testParser.ParseString("<test>", src)
	require.NoError(t, err)
	return p
}

func TestGrammar_FactAndRangeFact(t *testing.T) {
	p := mustParse(t, "node(1..6).")
	require.Len(t, p.Statements, 1)
	rule := p.Statements[0].Rule
	require.NotNil(t, rule)
	require.NotNil(t, rule.Head.Disj)
	atom := rule.Head.Disj.Atoms[0]
	require.Len(t, atom.Terms, 1)
	assert.NotNil(t, atom.Terms[0].Upper)
}

func TestGrammar_DisjunctiveAndChoiceAndConstraint(t *testing.T) {
	p := mustParse(t, `edge(1,2).
col(r).
col(g).
col(b).
1 {color(X,C) : col(C)} 1 :- node(X).
:- edge(X,Y), color(X,C), color(Y,C).
a(X) | b(X) :- p(X).`)
	require.True(t, len(p.Statements) >= 4)
}

func TestGrammar_AggregateGuards(t *testing.T) {
	p := mustParse(t, "ok :- 2 <= #count{X : p(X)} <= 5.")
	rule := p.Statements[0].Rule
	require.NotNil(t, rule.Body)
	lit := rule.Body.Literals[0]
	require.NotNil(t, lit.Aggregate)
	assert.NotNil(t, lit.Aggregate.LeftGuard)
	assert.NotNil(t, lit.Aggregate.RightGuard)
	assert.Equal(t, "#count", lit.Aggregate.Func)
}

func TestGrammar_WeakConstraintAndOptimize(t *testing.T) {
	p := mustParse(t, ":~ p(X). [1@2,X]\n#minimize{1@0,X : p(X)}.")
	require.Len(t, p.Statements, 2)
	assert.NotNil(t, p.Statements[0].Weak)
	assert.NotNil(t, p.Statements[1].Optimize)
}

func TestGrammar_NPPAndQuery(t *testing.T) {
	p := mustParse(t, "#npp(digit(X), [0,1,2]) :- pixel(X).\n? digit(1,0).")
	require.Len(t, p.Statements, 2)
	require.NotNil(t, p.Statements[0].NPP)
	require.NotNil(t, p.Statements[1].Query)
}

func TestGrammar_ArithmeticAndUnaryMinus(t *testing.T) {
	p := mustParse(t, "p(X+1*2, -Y) :- q(X,Y).")
	rule := p.Statements[0].Rule
	terms := rule.Head.Disj.Atoms[0].Terms
	require.Len(t, terms, 2)
	assert.NotNil(t, terms[0].Add)
	assert.True(t, terms[1].Add.Left.Left.Neg)
}
