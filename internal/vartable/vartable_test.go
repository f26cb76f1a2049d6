package vartable

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aspgrounder/internal/term"
)

func TestVariable_InternsByName(t *testing.T) {
	vt := New()
	x1 := vt.Variable("X")
	x2 := vt.Variable("X")
	y := vt.Variable("Y")

	assert.Equal(t, x1, x2)
	assert.NotEqual(t, x1, y)
	assert.Equal(t, []term.Variable{{Name: "X"}, {Name: "Y"}}, vt.Variables())
}

func TestFreshAnon_Distinct(t *testing.T) {
	vt := New()
	a1 := vt.FreshAnon()
	a2 := vt.FreshAnon()
	assert.NotEqual(t, a1, a2)
}

func TestFreshArith_RegistersAndCarriesSource(t *testing.T) {
	vt := New()
	src := &term.Arith{Op: term.Add, Left: term.Variable{Name: "X"}, Right: term.Number{Value: 1}}
	av := vt.FreshArith(src)

	assert.Same(t, src, av.Source)
	assert.Len(t, vt.ArithVariables(), 1)

	av2 := vt.FreshArith(src)
	assert.NotEqual(t, av.ID, av2.ID)
}

func TestHas(t *testing.T) {
	vt := New()
	assert.False(t, vt.Has("X"))
	vt.Variable("X")
	assert.True(t, vt.Has("X"))
}
