package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/term"
)

func x() term.Term { return term.Variable{Name: "X"} }
func y() term.Term { return term.Variable{Name: "Y"} }

func TestSafe_GroundFactTrivially(t *testing.T) {
	// head(const).
	body := literal.NewLiteralCollection()
	assert.True(t, Safe(body, nil))
}

func TestSafe_PositiveBodyBindsHeadVar(t *testing.T) {
	// head(X) :- body(X).
	body := literal.NewLiteralCollection(literal.NewPred("body", x()))
	assert.True(t, Safe(body, []term.Term{x()}))
}

func TestSafe_OnlyNafOccurrenceIsUnsafe(t *testing.T) {
	// head(X) :- not body(X).
	body := literal.NewLiteralCollection(&literal.Pred{Name: "body", Naf: true, Terms: []term.Term{x()}})
	assert.False(t, Safe(body, []term.Term{x()}))
}

func TestSafe_PositiveElsewhereRescuesNaf(t *testing.T) {
	// head(X) :- body1(X), not body2(X).
	body := literal.NewLiteralCollection(
		literal.NewPred("body1", x()),
		&literal.Pred{Name: "body2", Naf: true, Terms: []term.Term{x()}},
	)
	assert.True(t, Safe(body, []term.Term{x()}))
}

func TestSafe_InequalityContributesNoSafety(t *testing.T) {
	// head(X) :- body(Y), X < Y  -- X is never bound by a predicate.
	body := literal.NewLiteralCollection(
		literal.NewPred("body", y()),
		&literal.Comp{Op: literal.Lt, Left: x(), Right: y()},
	)
	assert.False(t, Safe(body, []term.Term{x()}))
}

func TestSafe_EqualityBindsBareVariable(t *testing.T) {
	// head(X) :- body(Y), X = Y.
	body := literal.NewLiteralCollection(
		literal.NewPred("body", y()),
		&literal.Comp{Op: literal.Eq, Left: x(), Right: y()},
	)
	assert.True(t, Safe(body, []term.Term{x()}))
}

func TestSafe_EqualityOfTwoUnboundVarsStaysUnsafe(t *testing.T) {
	// head(X) :- X = Y.  (Y itself never becomes safe, so neither does X)
	body := literal.NewLiteralCollection(
		&literal.Comp{Op: literal.Eq, Left: x(), Right: y()},
	)
	assert.False(t, Safe(body, []term.Term{x()}))
}

func TestSafe_ArithmeticVariableSafeIffSourceSafe(t *testing.T) {
	av := &term.ArithVariable{ID: 0, Source: &term.Arith{Op: term.Add, Left: x(), Right: term.Number{Value: 1}}}
	body := literal.NewLiteralCollection(literal.NewPred("body", x()))
	// required is the arithmetic variable's *source* vars, per spec §4.2.
	assert.True(t, Safe(body, term.Vars(av)))
}

func TestClosure_PromotesRuleOnceDepsSafe(t *testing.T) {
	tr := NewTriplet()
	tr.Rules = []Rule{
		{Var: x(), Deps: []term.Term{y()}},
	}
	tr.Safe[y().String()] = y()
	safe := Closure(tr)
	_, ok := safe[x().String()]
	assert.True(t, ok)
}
