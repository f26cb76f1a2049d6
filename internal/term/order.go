package term

import (
	"fmt"
	"strings"
)

// class assigns each ground term kind its rank in the total order:
// Infimum < Number < String < SymConst < Functional < Supremum (spec §3).
func class(t Term) int {
	switch t.(type) {
	case Infimum:
		return 0
	case Number:
		return 1
	case String:
		return 2
	case SymConst:
		return 3
	case *Functional:
		return 4
	case Supremum:
		return 5
	default:
		return -1
	}
}

// NonGroundOrderError is raised when Precedes is asked to compare a
// non-ground term; the total order is only defined on ground terms
// (spec §3, §8 property 1).
type NonGroundOrderError struct {
	Term Term
}

func (e *NonGroundOrderError) Error() string {
	return fmt.Sprintf("precedes: term %s is not ground", e.Term)
}

// Precedes implements the total order on ground terms used by `<`, `<=`,
// and the min/max aggregates. It reports `a <= b` in the total order, i.e.
// true iff a's position is not strictly after b's, so Precedes(a, a) holds
// for every ground a (spec §8 property 1); for a == b see Equal.
func Precedes(a, b Term) (bool, error) {
	if !a.Ground() {
		return false, &NonGroundOrderError{Term: a}
	}
	if !b.Ground() {
		return false, &NonGroundOrderError{Term: b}
	}
	ca, cb := class(a), class(b)
	if ca != cb {
		return ca < cb, nil
	}
	switch x := a.(type) {
	case Infimum:
		return true, nil
	case Supremum:
		return true, nil
	case Number:
		y := b.(Number)
		return x.Value <= y.Value, nil
	case String:
		y := b.(String)
		return strings.Compare(x.Value, y.Value) <= 0, nil
	case SymConst:
		y := b.(SymConst)
		return strings.Compare(x.Name, y.Name) <= 0, nil
	case *Functional:
		y := b.(*Functional)
		return precedesFunctional(x, y), nil
	default:
		return false, &NonGroundOrderError{Term: a}
	}
}

// precedesFunctional compares two ground Functional terms lexicographically
// on (name, arity, arguments) (spec §3).
func precedesFunctional(x, y *Functional) bool {
	if x.Name != y.Name {
		return strings.Compare(x.Name, y.Name) <= 0
	}
	if len(x.Args) != len(y.Args) {
		return len(x.Args) <= len(y.Args)
	}
	for i := range x.Args {
		if Equal(x.Args[i], y.Args[i]) {
			continue
		}
		le, err := Precedes(x.Args[i], y.Args[i])
		if err != nil {
			return false
		}
		return le
	}
	return true
}

// Max returns the extremum (under Precedes) of a and b that compares
// greater-or-equal; used by the Max aggregate function.
func Max(a, b Term) (Term, error) {
	le, err := Precedes(a, b)
	if err != nil {
		return nil, err
	}
	if le {
		return b, nil
	}
	return a, nil
}

// Min returns the extremum (under Precedes) of a and b that compares
// less-or-equal; used by the Min aggregate function.
func Min(a, b Term) (Term, error) {
	le, err := Precedes(a, b)
	if err != nil {
		return nil, err
	}
	if le {
		return a, nil
	}
	return b, nil
}
