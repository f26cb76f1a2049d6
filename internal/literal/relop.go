// Package literal implements the literal layer of the grounder: predicate
// literals, comparisons, aggregates, choice expressions, and the
// placeholder literals produced by aggregate/choice rewriting (spec §3,
// §4.4).
package literal

import "aspgrounder/internal/term"

// RelOp enumerates the relational comparison operators of the dialect
// (spec §6: "=, !=, <, >, <=, >=").
type RelOp int

const (
	Eq RelOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

func (op RelOp) String() string {
	switch op {
	case Eq:
		return "="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// Flip returns the operator that holds when the two operands are swapped
// (`X op Y` iff `Y Flip(op) X`); used to normalise guards to a canonical
// side (spec §3: "Two guards are considered equal under side-flipping with
// operator inversion").
func (op RelOp) Flip() RelOp {
	switch op {
	case Lt:
		return Gt
	case Gt:
		return Lt
	case Le:
		return Ge
	case Ge:
		return Le
	default:
		return op
	}
}

// Complement returns the logical negation of the operator (`X op Y` iff
// not `X Complement(op) Y`).
func (op RelOp) Complement() RelOp {
	switch op {
	case Eq:
		return Ne
	case Ne:
		return Eq
	case Lt:
		return Ge
	case Gt:
		return Le
	case Le:
		return Gt
	default:
		return Lt
	}
}

// Eval evaluates the comparison of two ground terms under the total order
// (spec §3, §6).
func (op RelOp) Eval(l, r term.Term) (bool, error) {
	le, err := term.Precedes(l, r)
	if err != nil {
		return false, err
	}
	ge, err := term.Precedes(r, l)
	if err != nil {
		return false, err
	}
	switch op {
	case Eq:
		return le && ge, nil
	case Ne:
		return !(le && ge), nil
	case Lt:
		return le && !ge, nil
	case Gt:
		return ge && !le, nil
	case Le:
		return le, nil
	case Ge:
		return ge, nil
	default:
		return false, nil
	}
}
