package term

import (
	"aspgrounder/internal/errors"
	"aspgrounder/internal/source"
)

// Simplify performs the algebraic simplification of spec §3: constant
// folding, x+0 → x, x·0 → 0 (only when x is ground), x·1 → x, x·-1 →
// Minus(x), double negation elimination, and division-by-zero failure.
// Simplify is idempotent (spec §8 property 2): re-simplifying its own
// output is always a no-op.
func Simplify(t Term) (Term, error) {
	switch x := t.(type) {
	case *Minus:
		inner, err := Simplify(x.Operand)
		if err != nil {
			return nil, err
		}
		if m, ok := inner.(*Minus); ok {
			// double negation elimination
			return m.Operand, nil
		}
		if n, ok := inner.(Number); ok {
			return Number{Value: -n.Value}, nil
		}
		return &Minus{Operand: inner}, nil
	case *Arith:
		left, err := Simplify(x.Left)
		if err != nil {
			return nil, err
		}
		right, err := Simplify(x.Right)
		if err != nil {
			return nil, err
		}
		return simplifyArith(x.Op, left, right)
	case *Functional:
		args := make([]Term, len(x.Args))
		for i, a := range x.Args {
			s, err := Simplify(a)
			if err != nil {
				return nil, err
			}
			args[i] = s
		}
		return &Functional{Name: x.Name, Args: args}, nil
	default:
		return t, nil
	}
}

func simplifyArith(op ArithOp, left, right Term) (Term, error) {
	ln, lok := left.(Number)
	rn, rok := right.(Number)

	if lok && rok {
		switch op {
		case Add:
			return Number{Value: ln.Value + rn.Value}, nil
		case Sub:
			return Number{Value: ln.Value - rn.Value}, nil
		case Mul:
			return Number{Value: ln.Value * rn.Value}, nil
		case Div:
			if rn.Value == 0 {
				return nil, errors.DivisionByZero(source.Position{})
			}
			return Number{Value: ln.Value / rn.Value}, nil
		}
	}

	switch op {
	case Add:
		if rok && rn.Value == 0 {
			return left, nil
		}
		if lok && ln.Value == 0 {
			return right, nil
		}
	case Mul:
		if left.Ground() && rok && rn.Value == 0 {
			return Number{Value: 0}, nil
		}
		if right.Ground() && lok && ln.Value == 0 {
			return Number{Value: 0}, nil
		}
		if rok && rn.Value == 1 {
			return left, nil
		}
		if lok && ln.Value == 1 {
			return right, nil
		}
		if rok && rn.Value == -1 {
			return Simplify(&Minus{Operand: left})
		}
		if lok && ln.Value == -1 {
			return Simplify(&Minus{Operand: right})
		}
	case Sub:
		if rok && rn.Value == 0 {
			return left, nil
		}
	case Div:
		if rok && rn.Value == 1 {
			return left, nil
		}
	}

	return &Arith{Op: op, Left: left, Right: right}, nil
}

// Allocator mints fresh ArithVariable ids on behalf of the owning
// statement's variable table (spec §3 "every ArithVariable carries the
// original arithmetic expression"; §9 "thread a counter object through the
// rewriter and variable table"). Implemented by vartable.Table.
type Allocator interface {
	FreshArith(source Term) *ArithVariable
}

// ReplaceArith walks t and replaces every maximal non-ground arithmetic
// sub-term (an Arith or Minus node that is not itself ground) with a fresh
// ArithVariable minted by alloc, registered for later re-substitution
// (spec §3, §9).
func ReplaceArith(t Term, alloc Allocator) Term {
	switch x := t.(type) {
	case *Arith:
		if x.Ground() {
			return x
		}
		return alloc.FreshArith(x)
	case *Minus:
		if x.Ground() {
			return x
		}
		return alloc.FreshArith(x)
	case *Functional:
		args := make([]Term, len(x.Args))
		changed := false
		for i, a := range x.Args {
			r := ReplaceArith(a, alloc)
			args[i] = r
			if r != a {
				changed = true
			}
		}
		if !changed {
			return x
		}
		return &Functional{Name: x.Name, Args: args}
	default:
		return t
	}
}
