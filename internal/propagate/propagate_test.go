package propagate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/propagate"
	"aspgrounder/internal/rewrite"
	"aspgrounder/internal/term"
)

func TestEvaluateAggregate_CountCertainWhenUpperBoundWithinGuard(t *testing.T) {
	guard := literal.NewGuard(literal.Le, term.Number{Value: 2}, false)
	meta := &rewrite.AggrMeta{Func: literal.Count, RightGuard: &guard}
	elems := []propagate.ElementStatus{
		{Values: []term.Term{term.Number{Value: 1}}, Certain: true},
		{Values: []term.Term{term.Number{Value: 2}}, Certain: true},
	}
	status := propagate.EvaluateAggregate(meta, elems, false)
	assert.Equal(t, propagate.Certain, status)
}

func TestEvaluateAggregate_CountFalseWhenGuardExceeded(t *testing.T) {
	guard := literal.NewGuard(literal.Le, term.Number{Value: 1}, false)
	meta := &rewrite.AggrMeta{Func: literal.Count, RightGuard: &guard}
	elems := []propagate.ElementStatus{
		{Values: []term.Term{term.Number{Value: 1}}, Certain: true},
		{Values: []term.Term{term.Number{Value: 2}}, Certain: true},
	}
	status := propagate.EvaluateAggregate(meta, elems, false)
	assert.Equal(t, propagate.False, status)
}

func TestEvaluateAggregate_CountPossibleWithUndecidedElement(t *testing.T) {
	guard := literal.NewGuard(literal.Le, term.Number{Value: 1}, false)
	meta := &rewrite.AggrMeta{Func: literal.Count, RightGuard: &guard}
	elems := []propagate.ElementStatus{
		{Values: []term.Term{term.Number{Value: 1}}, Certain: true},
		{Values: []term.Term{term.Number{Value: 2}}, Certain: false},
	}
	status := propagate.EvaluateAggregate(meta, elems, false)
	assert.Equal(t, propagate.Possible, status)
}

func TestEvaluateAggregate_SumWaitsForStabilisation(t *testing.T) {
	guard := literal.NewGuard(literal.Le, term.Number{Value: 10}, false)
	meta := &rewrite.AggrMeta{Func: literal.Sum, RightGuard: &guard}
	elems := []propagate.ElementStatus{
		{Values: []term.Term{term.Number{Value: 3}}, Certain: true},
	}
	assert.Equal(t, propagate.Possible, propagate.EvaluateAggregate(meta, elems, false))
	assert.Equal(t, propagate.Certain, propagate.EvaluateAggregate(meta, elems, true))
}

func TestAssembleAggregate_KeepsOnlyCertainDistinctTuples(t *testing.T) {
	meta := &rewrite.AggrMeta{Func: literal.Count}
	elems := []propagate.ElementStatus{
		{Values: []term.Term{term.Number{Value: 1}}, Certain: true},
		{Values: []term.Term{term.Number{Value: 1}}, Certain: true},
		{Values: []term.Term{term.Number{Value: 2}}, Certain: false},
	}
	agg := propagate.AssembleAggregate(meta, nil, elems)
	require.Len(t, agg.Elements, 1)
	assert.Equal(t, "1", agg.Elements[0].Terms[0].String())
}

func TestAssembleChoice_DedupesAtomsBySring(t *testing.T) {
	meta := &rewrite.ChoiceMeta{}
	atoms := []*literal.Pred{
		literal.NewPred("color", term.Number{Value: 1}, term.SymConst{Name: "r"}),
		literal.NewPred("color", term.Number{Value: 1}, term.SymConst{Name: "r"}),
		literal.NewPred("color", term.Number{Value: 1}, term.SymConst{Name: "g"}),
	}
	choice := propagate.AssembleChoice(meta, nil, atoms)
	assert.Len(t, choice.Elements, 2)
}
