package subst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aspgrounder/internal/term"
)

func TestGet_IdentityDefault(t *testing.T) {
	s := New()
	x := term.Variable{Name: "X"}
	assert.Equal(t, term.Term(x), s.Get(x))
}

func TestApply_SubstitutesRecursively(t *testing.T) {
	s := New()
	x := term.Variable{Name: "X"}
	s.Bind(x, term.Number{Value: 5})

	f := term.NewFunctional("p", x, term.Variable{Name: "Y"})
	out := Apply(s, f)

	assert.True(t, term.Equal(out, term.NewFunctional("p", term.Number{Value: 5}, term.Variable{Name: "Y"})))
}

func TestCompose_IsFunctorial(t *testing.T) {
	x := term.Variable{Name: "X"}
	y := term.Variable{Name: "Y"}

	tSub := New()
	tSub.Bind(x, y)

	sSub := New()
	sSub.Bind(y, term.Number{Value: 7})

	e := term.NewFunctional("p", x)

	composed := Compose(tSub, sSub)
	lhs := Apply(composed, e)
	rhs := Apply(sSub, Apply(tSub, e))

	assert.True(t, term.Equal(lhs, rhs))
}

func TestDisjointUnion_ConflictFails(t *testing.T) {
	x := term.Variable{Name: "X"}
	a := New()
	a.Bind(x, term.Number{Value: 1})
	b := New()
	b.Bind(x, term.Number{Value: 2})

	_, err := DisjointUnion(a, b)
	require.Error(t, err)
	var ae *AssignmentError
	assert.ErrorAs(t, err, &ae)
}

func TestDisjointUnion_AgreeingBindingsMerge(t *testing.T) {
	x := term.Variable{Name: "X"}
	y := term.Variable{Name: "Y"}
	a := New()
	a.Bind(x, term.Number{Value: 1})
	b := New()
	b.Bind(x, term.Number{Value: 1})
	b.Bind(y, term.Number{Value: 2})

	merged, err := DisjointUnion(a, b)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.Len())
}

func TestMatch_GroundPatternRequiresEquality(t *testing.T) {
	s, ok := Match(term.Number{Value: 3}, term.Number{Value: 3})
	require.True(t, ok)
	assert.Equal(t, 0, s.Len())

	_, ok = Match(term.Number{Value: 3}, term.Number{Value: 4})
	assert.False(t, ok)
}

func TestMatch_VariablePatternBinds(t *testing.T) {
	s, ok := Match(term.Variable{Name: "X"}, term.Number{Value: 9})
	require.True(t, ok)
	assert.True(t, term.Equal(s.Get(term.Variable{Name: "X"}), term.Number{Value: 9}))
}

func TestMatch_FunctionalArityMismatchFails(t *testing.T) {
	p := term.NewFunctional("p", term.Variable{Name: "X"})
	g := term.NewFunctional("p", term.Number{Value: 1}, term.Number{Value: 2})
	_, ok := Match(p, g)
	assert.False(t, ok)
}

func TestMatch_FunctionalTypeMismatchFails(t *testing.T) {
	p := term.NewFunctional("p", term.Variable{Name: "X"})
	_, ok := Match(p, term.Number{Value: 1})
	assert.False(t, ok)
}

func TestMatch_RepeatedVariableRequiresConsistentBinding(t *testing.T) {
	p := term.NewFunctional("p", term.Variable{Name: "X"}, term.Variable{Name: "X"})
	ok1 := term.NewFunctional("p", term.Number{Value: 1}, term.Number{Value: 1})
	bad := term.NewFunctional("p", term.Number{Value: 1}, term.Number{Value: 2})

	_, matched := Match(p, ok1)
	assert.True(t, matched)

	_, matched = Match(p, bad)
	assert.False(t, matched)
}

func TestMatch_ApplyResultEqualsTarget(t *testing.T) {
	p := term.NewFunctional("edge", term.Variable{Name: "X"}, term.SymConst{Name: "b"})
	g := term.NewFunctional("edge", term.SymConst{Name: "a"}, term.SymConst{Name: "b"})

	s, ok := Match(p, g)
	require.True(t, ok)
	assert.True(t, term.Equal(Apply(s, p), g))
}
