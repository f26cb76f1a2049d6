package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/program"
	"aspgrounder/internal/rewrite"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
)

func x() term.Term { return term.Variable{Name: "X"} }

func TestRewriter_AggregateProducesPlaceholderAndAuxRules(t *testing.T) {
	rightGuard := literal.NewGuard(literal.Le, term.Number{Value: 5}, false)
	agg := &literal.Aggregate{
		Func:       literal.Count,
		Elements:   []literal.Element{{Terms: []term.Term{x()}, Condition: literal.NewLiteralCollection(literal.NewPred("p", x()))}},
		RightGuard: &rightGuard,
	}
	rule := &stmt.NormalRule{
		Head: literal.NewPred("ok"),
		Body: literal.NewLiteralCollection(agg),
	}

	rw := rewrite.New(program.NewCounter())
	res := rw.Statement(rule)

	require.NotNil(t, res.Rewritten)
	require.Len(t, res.Aux, 2)
	assert.Len(t, rw.Aggregates, 1)

	rewritten := res.Rewritten.(*stmt.NormalRule)
	require.Equal(t, 1, rewritten.Body.Len())
	_, isBase := rewritten.Body.At(0).(*literal.AggrBase)
	assert.True(t, isBase)

	_, isBaseRule := res.Aux[0].(*stmt.AggrBaseRule)
	assert.True(t, isBaseRule)
	_, isElemRule := res.Aux[1].(*stmt.AggrElemRule)
	assert.True(t, isElemRule)
}

func TestRewriter_ChoiceRuleIsFullyConsumed(t *testing.T) {
	lowerGuard := literal.NewGuard(literal.Le, term.Number{Value: 1}, true)
	upperGuard := literal.NewGuard(literal.Le, term.Number{Value: 1}, false)
	choice := &literal.ChoiceExpr{
		LeftGuard:  &lowerGuard,
		RightGuard: &upperGuard,
		Elements: []literal.ChoiceElement{
			{Atom: literal.NewPred("color", x(), term.Variable{Name: "C"}),
				Condition: literal.NewLiteralCollection(literal.NewPred("col", term.Variable{Name: "C"}))},
		},
	}
	cr := &stmt.ChoiceRule{
		Choice: choice,
		Body:   literal.NewLiteralCollection(literal.NewPred("node", x())),
	}

	rw := rewrite.New(program.NewCounter())
	res := rw.Statement(cr)

	assert.Nil(t, res.Rewritten)
	require.Len(t, res.Aux, 2)
	assert.Len(t, rw.Choices, 1)

	_, isBaseRule := res.Aux[0].(*stmt.ChoiceBaseRule)
	assert.True(t, isBaseRule)
	_, isElemRule := res.Aux[1].(*stmt.ChoiceElemRule)
	assert.True(t, isElemRule)
}
