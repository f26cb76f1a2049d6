package literal

import (
	"fmt"

	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Guard is a single-sided comparison attached to an aggregate or choice
// expression: `Op Bound`, read as "the aggregate/choice value Op Bound"
// (spec §3, §9). Equality under side-flipping is handled by normalising at
// construction — NewGuard always folds a left-hand-side guard to its
// right-hand-side equivalent — so two Guard values compare equal with plain
// field equality rather than a special-cased comparison (spec §9 Design
// Notes: "Prefer to normalise at construction ... rather than at
// comparison").
type Guard struct {
	Op    RelOp
	Bound term.Term
}

// NewGuard constructs a Guard from a parsed comparison. leftSide is true
// when the guard appeared to the left of the aggregate/choice in concrete
// syntax (e.g. the `3 <=` in `3 <= #count{...}`); the operator is flipped so
// the stored form is always as-if-right-hand-side (e.g. `3 <= X` becomes the
// same Guard as `X >= 3`).
func NewGuard(op RelOp, bound term.Term, leftSide bool) Guard {
	if leftSide {
		op = op.Flip()
	}
	return Guard{Op: op, Bound: bound}
}

func (g Guard) String() string {
	return fmt.Sprintf("%s %s", g.Op, g.Bound)
}

// Ground reports whether the guard's bound term is ground.
func (g Guard) Ground() bool { return g.Bound.Ground() }

// Vars returns the free variables of the guard's bound term.
func (g Guard) Vars() []term.Term { return term.Vars(g.Bound) }

// GuardsEqual reports whether two guards are equivalent, including across
// the side-flipping the NewGuard constructor already normalised away.
func GuardsEqual(a, b Guard) bool {
	return a.Op == b.Op && term.Equal(a.Bound, b.Bound)
}

// SubstituteGuard applies s to the guard's bound term.
func SubstituteGuard(s *subst.Substitution, g Guard) Guard {
	return Guard{Op: g.Op, Bound: subst.Apply(s, g.Bound)}
}

// ReplaceArith replaces maximal non-ground arithmetic sub-terms of the
// bound with fresh ArithVariables (spec §3).
func ReplaceArith(g Guard, alloc term.Allocator) Guard {
	return Guard{Op: g.Op, Bound: term.ReplaceArith(g.Bound, alloc)}
}

// Eval evaluates the guard against a ground aggregate/choice value.
func (g Guard) Eval(value term.Term) (bool, error) {
	return g.Op.Eval(value, g.Bound)
}
