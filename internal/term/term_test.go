package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecedes_TotalOrderAcrossClasses(t *testing.T) {
	ordered := []Term{
		Infimum{},
		Number{Value: -5},
		Number{Value: 3},
		String{Value: "a"},
		String{Value: "b"},
		SymConst{Name: "foo"},
		NewFunctional("bar", Number{Value: 1}),
		Supremum{},
	}

	for i := range ordered {
		for j := range ordered {
			le, err := Precedes(ordered[i], ordered[j])
			require.NoError(t, err)
			if i <= j {
				assert.Truef(t, le, "%v should precede-or-equal %v", ordered[i], ordered[j])
			} else {
				assert.Falsef(t, le, "%v should not precede %v", ordered[i], ordered[j])
			}
		}
	}
}

func TestPrecedes_ReflexiveAndExclusive(t *testing.T) {
	a, b := Number{Value: 1}, Number{Value: 2}

	refl, err := Precedes(a, a)
	require.NoError(t, err)
	assert.True(t, refl)

	ab, err := Precedes(a, b)
	require.NoError(t, err)
	ba, err := Precedes(b, a)
	require.NoError(t, err)
	assert.True(t, ab)
	assert.False(t, ba)
}

func TestPrecedes_NonGroundFails(t *testing.T) {
	_, err := Precedes(Variable{Name: "X"}, Number{Value: 1})
	require.Error(t, err)
	var nge *NonGroundOrderError
	assert.ErrorAs(t, err, &nge)
}

func TestSimplify_Idempotent(t *testing.T) {
	cases := []Term{
		&Arith{Op: Add, Left: Number{Value: 2}, Right: Number{Value: 3}},
		&Arith{Op: Add, Left: Variable{Name: "X"}, Right: Number{Value: 0}},
		&Arith{Op: Mul, Left: Variable{Name: "X"}, Right: Number{Value: 1}},
		&Arith{Op: Mul, Left: Variable{Name: "X"}, Right: Number{Value: -1}},
		&Minus{Operand: &Minus{Operand: Variable{Name: "X"}}},
		&Arith{Op: Mul, Left: Number{Value: 0}, Right: Number{Value: 99}},
	}
	for _, c := range cases {
		once, err := Simplify(c)
		require.NoError(t, err)
		twice, err := Simplify(once)
		require.NoError(t, err)
		assert.True(t, Equal(once, twice), "simplify not idempotent for %v: %v vs %v", c, once, twice)
	}
}

func TestSimplify_DivisionByZero(t *testing.T) {
	_, err := Simplify(&Arith{Op: Div, Left: Number{Value: 1}, Right: Number{Value: 0}})
	require.Error(t, err)
}

func TestSimplify_DoubleNegation(t *testing.T) {
	out, err := Simplify(&Minus{Operand: &Minus{Operand: Variable{Name: "X"}}})
	require.NoError(t, err)
	assert.True(t, Equal(out, Variable{Name: "X"}))
}

func TestVars_CollectsFreeVariablesInOrder(t *testing.T) {
	f := NewFunctional("p", Variable{Name: "X"}, Variable{Name: "Y"}, Variable{Name: "X"})
	vars := Vars(f)
	require.Len(t, vars, 2)
	assert.Equal(t, Variable{Name: "X"}, vars[0])
	assert.Equal(t, Variable{Name: "Y"}, vars[1])
}

func TestVars_ThroughArithVariableSource(t *testing.T) {
	av := &ArithVariable{ID: 0, Source: &Arith{Op: Add, Left: Variable{Name: "X"}, Right: Number{Value: 1}}}
	vars := Vars(av)
	require.Len(t, vars, 1)
	assert.Equal(t, Variable{Name: "X"}, vars[0])
}

type fakeAlloc struct{ n int }

func (f *fakeAlloc) FreshArith(src Term) *ArithVariable {
	v := &ArithVariable{ID: f.n, Source: src}
	f.n++
	return v
}

func TestReplaceArith_ReplacesNonGroundSubterms(t *testing.T) {
	f := NewFunctional("p", &Arith{Op: Add, Left: Variable{Name: "X"}, Right: Number{Value: 1}}, Number{Value: 2})
	alloc := &fakeAlloc{}
	out := ReplaceArith(f, alloc).(*Functional)
	require.Len(t, out.Args, 2)
	_, isArithVar := out.Args[0].(*ArithVariable)
	assert.True(t, isArithVar)
	assert.Equal(t, Number{Value: 2}, out.Args[1])
}

func TestReplaceArith_LeavesGroundArithmetic(t *testing.T) {
	f := NewFunctional("p", &Arith{Op: Add, Left: Number{Value: 1}, Right: Number{Value: 2}})
	alloc := &fakeAlloc{}
	out := ReplaceArith(f, alloc).(*Functional)
	_, isArith := out.Args[0].(*Arith)
	assert.True(t, isArith)
}
