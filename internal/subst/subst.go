// Package subst implements substitutions over the term language and
// one-sided pattern matching (spec §4.1).
package subst

import (
	"fmt"

	"aspgrounder/internal/term"
)

// Substitution is a partial map Variable → Term (extended to AnonVariable
// and ArithVariable, which are bound the same way). Getting a missing
// variable yields the variable itself (identity default).
type Substitution struct {
	bindings map[string]term.Term
}

// New returns the empty substitution.
func New() *Substitution {
	return &Substitution{bindings: make(map[string]term.Term)}
}

// key returns the map key for a variable-like term, and whether t is one.
func key(t term.Term) (string, bool) {
	switch x := t.(type) {
	case term.Variable:
		return "v:" + x.Name, true
	case term.AnonVariable:
		return fmt.Sprintf("a:%d", x.ID), true
	case *term.ArithVariable:
		return fmt.Sprintf("t:%d", x.ID), true
	default:
		return "", false
	}
}

// Get returns the term bound to v, or v itself if unbound or not a
// variable-like term.
func (s *Substitution) Get(v term.Term) term.Term {
	if k, ok := key(v); ok {
		if t, bound := s.bindings[k]; bound {
			return t
		}
	}
	return v
}

// Bind records v ↦ t, overwriting any previous binding for v. Panics if v
// is not a variable-like term — callers are expected to check first.
func (s *Substitution) Bind(v term.Term, t term.Term) {
	k, ok := key(v)
	if !ok {
		panic(fmt.Sprintf("subst: cannot bind non-variable term %v", v))
	}
	s.bindings[k] = t
}

// Len reports the number of bindings.
func (s *Substitution) Len() int { return len(s.bindings) }

// Apply walks t recursively, substituting each occurrence of a bound
// variable-like term with its image (spec §4.1). An unbound ArithVariable
// is replaced by the simplified value of its source expression once that
// expression becomes ground under s.
func Apply(s *Substitution, t term.Term) term.Term {
	switch x := t.(type) {
	case term.Variable:
		return s.Get(x)
	case term.AnonVariable:
		return s.Get(x)
	case *term.ArithVariable:
		if img := s.Get(x); img != t {
			return img
		}
		v, err := term.Simplify(Apply(s, x.Source))
		if err != nil || !v.Ground() {
			return x
		}
		return v
	case *term.Functional:
		args := make([]term.Term, len(x.Args))
		changed := false
		for i, a := range x.Args {
			args[i] = Apply(s, a)
			if !term.Equal(args[i], a) {
				changed = true
			}
		}
		if !changed {
			return x
		}
		return &term.Functional{Name: x.Name, Args: args}
	case *term.Arith:
		return &term.Arith{Op: x.Op, Left: Apply(s, x.Left), Right: Apply(s, x.Right)}
	case *term.Minus:
		return &term.Minus{Operand: Apply(s, x.Operand)}
	default:
		return t
	}
}

// Compose returns the substitution equivalent to applying `first` then
// `second`: apply(Compose(first, second), e) == apply(second, apply(first,
// e)) for every e (spec §8 property 3).
func Compose(first, second *Substitution) *Substitution {
	out := New()
	for k, t := range first.bindings {
		out.bindings[k] = Apply(second, t)
	}
	for k, t := range second.bindings {
		if _, exists := out.bindings[k]; !exists {
			out.bindings[k] = t
		}
	}
	return out
}

// AssignmentError reports that disjoint union found a variable bound to two
// unequal terms (spec §7: caught internally, normally never surfaced).
type AssignmentError struct {
	Var  term.Term
	A, B term.Term
}

func (e *AssignmentError) Error() string {
	return fmt.Sprintf("conflicting assignment for %v: %v vs %v", e.Var, e.A, e.B)
}

// DisjointUnion merges two substitutions, failing with *AssignmentError if
// they bind the same variable to unequal terms.
func DisjointUnion(a, b *Substitution) (*Substitution, error) {
	out := New()
	for k, t := range a.bindings {
		out.bindings[k] = t
	}
	for k, t := range b.bindings {
		if existing, exists := out.bindings[k]; exists {
			if !term.Equal(existing, t) {
				return nil, &AssignmentError{A: existing, B: t}
			}
			continue
		}
		out.bindings[k] = t
	}
	return out, nil
}
