package stmt_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

func x() term.Term { return term.Variable{Name: "X"} }

func TestNormalRule_IsFactAndString(t *testing.T) {
	fact := stmt.NewFact(literal.NewPred("p", term.Number{Value: 1}))
	assert.True(t, fact.IsFact())
	assert.Equal(t, "p(1).", fact.String())

	rule := &stmt.NormalRule{
		Head: literal.NewPred("q", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("p", x())),
	}
	assert.False(t, rule.IsFact())
	assert.Equal(t, "q(X) :- p(X).", rule.String())
}

func TestConstraint_String(t *testing.T) {
	c := &stmt.Constraint{Body: literal.NewLiteralCollection(literal.NewPred("p", x()))}
	assert.Equal(t, ":- p(X).", c.String())
}

func TestDisjunctiveRule_HeadAtoms(t *testing.T) {
	r := &stmt.DisjunctiveRule{
		Heads: []*literal.Pred{literal.NewPred("a", x()), literal.NewPred("b", x())},
		Body:  literal.NewLiteralCollection(literal.NewPred("p", x())),
	}
	heads := stmt.HeadAtoms(r)
	assert.Len(t, heads, 2)
	assert.Equal(t, "a(X) | b(X) :- p(X).", r.String())
}

func TestNPPRule_ExpandsToDisjunctionOfOutcomes(t *testing.T) {
	r := &stmt.NPPRule{
		Name:     "digit",
		Terms:    []term.Term{x()},
		Outcomes: []term.Term{term.Number{Value: 0}, term.Number{Value: 1}},
		Body:     literal.NewLiteralCollection(literal.NewPred("pixel", x())),
	}
	atoms := r.Expand()
	assert.Len(t, atoms, 2)
	assert.Equal(t, "digit(X,0)", atoms[0].String())
	assert.Equal(t, "digit(X,1)", atoms[1].String())
}

func TestWithBody_ReplacesBodyPreservingHead(t *testing.T) {
	r := stmt.NewFact(literal.NewPred("p", term.Number{Value: 1}))
	newBody := literal.NewLiteralCollection(literal.NewPred("q", term.Number{Value: 2}))
	out := stmt.WithBody(r, newBody).(*stmt.NormalRule)
	assert.Equal(t, "p", out.Head.Name)
	assert.Equal(t, 1, out.Body.Len())
}

func TestRequiredSafeVars_ChoiceRuleIncludesGuardVars(t *testing.T) {
	guard := literal.NewGuard(literal.Le, x(), true)
	choice := &literal.ChoiceExpr{
		LeftGuard: &guard,
		Elements:  []literal.ChoiceElement{{Atom: literal.NewPred("c", term.Variable{Name: "Y"})}},
	}
	r := &stmt.ChoiceRule{Choice: choice, Body: literal.NewLiteralCollection(literal.NewPred("dom", x()))}
	vars := stmt.RequiredSafeVars(r)
	var names []string
	for _, v := range vars {
		names = append(names, v.String())
	}
	assert.Contains(t, names, "X")
}

func TestSubstitutePred_StructurallyMatchesExpectedGroundAtom(t *testing.T) {
	s := subst.New()
	s.Bind(x(), term.Number{Value: 1})
	s.Bind(term.Variable{Name: "Y"}, term.Number{Value: 2})

	got := literal.SubstitutePred(s, literal.NewPred("edge", x(), term.Variable{Name: "Y"}))
	want := literal.NewPred("edge", term.Number{Value: 1}, term.Number{Value: 2})

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SubstitutePred result mismatch (-want +got):\n%s", diff)
	}
}

func TestVars_DedupesAcrossHeadAndBody(t *testing.T) {
	r := &stmt.NormalRule{
		Head: literal.NewPred("q", x()),
		Body: literal.NewLiteralCollection(literal.NewPred("p", x(), term.Variable{Name: "Y"})),
	}
	vars := stmt.Vars(r)
	assert.Len(t, vars, 2)
}
