// Package term implements the algebraic term language of the grounder: the
// leaves and arithmetic/functional compounds that make up literals and
// statement arguments.
package term

import (
	"fmt"
	"strings"

	"aspgrounder/internal/source"
)

// Position re-exports the shared source position type for callers that only
// import the term package.
type Position = source.Position

// Term is the sum type of the grounder's term language (spec §3).
//
//	Term ::= Infimum | Supremum | Number | String | SymConst | Variable |
//	         AnonVariable | ArithVariable | Functional | Arith | Minus
type Term interface {
	fmt.Stringer
	isTerm()
	// Ground reports whether this term contains no Variable, AnonVariable,
	// or unresolved ArithVariable.
	Ground() bool
}

func (Infimum) isTerm()       {}
func (Supremum) isTerm()      {}
func (Number) isTerm()        {}
func (String) isTerm()        {}
func (SymConst) isTerm()      {}
func (Variable) isTerm()      {}
func (AnonVariable) isTerm()  {}
func (*ArithVariable) isTerm() {}
func (*Functional) isTerm()   {}
func (*Arith) isTerm()        {}
func (*Minus) isTerm()        {}

// Infimum is the least element of the total order, used as the Max aggregate
// neutral element and as a lower sentinel.
type Infimum struct{}

func (Infimum) String() string { return "#inf" }
func (Infimum) Ground() bool   { return true }

// Supremum is the greatest element of the total order, used as the Min
// aggregate neutral element and as an upper sentinel.
type Supremum struct{}

func (Supremum) String() string { return "#sup" }
func (Supremum) Ground() bool   { return true }

// Number is a ground integer term.
type Number struct {
	Value int64
}

func (n Number) String() string { return fmt.Sprintf("%d", n.Value) }
func (Number) Ground() bool     { return true }

// String is a ground string (quoted) term.
type String struct {
	Value string
}

func (s String) String() string { return fmt.Sprintf("%q", s.Value) }
func (String) Ground() bool     { return true }

// SymConst is a ground symbolic constant. Its name must begin with a
// lowercase letter or one of the reserved system letters (α, ε, η) per the
// fresh-name protocol (spec §6); user-facing construction should reject the
// latter.
type SymConst struct {
	Name string
}

func (s SymConst) String() string { return s.Name }
func (SymConst) Ground() bool     { return true }

// Variable is a user-facing (non-ground) variable. Its name begins uppercase
// or with τ.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }
func (Variable) Ground() bool     { return false }

// AnonVariable is an anonymous variable ("_"), distinguished only by an id
// minted by the owning statement's variable table.
type AnonVariable struct {
	ID int
}

func (a AnonVariable) String() string { return fmt.Sprintf("_%d", a.ID) }
func (AnonVariable) Ground() bool     { return false }

// ArithVariable stands in for a maximal non-ground arithmetic sub-term
// replaced by replace_arith (spec §3, §9). It carries the original
// expression so a later substitution can recover and re-evaluate it once its
// components are bound.
type ArithVariable struct {
	ID     int
	Source Term
}

func (a *ArithVariable) String() string { return fmt.Sprintf("τ%d", a.ID) }
func (a *ArithVariable) Ground() bool   { return false }

// Functional is a compound term: a name applied to zero or more argument
// terms. Arity-zero functionals are indistinguishable from SymConst in
// concrete syntax but are kept distinct here because user code may build
// either directly.
type Functional struct {
	Name string
	Args []Term
}

func NewFunctional(name string, args ...Term) *Functional {
	return &Functional{Name: name, Args: args}
}

func (f *Functional) Ground() bool {
	for _, a := range f.Args {
		if !a.Ground() {
			return false
		}
	}
	return true
}

func (f *Functional) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ","))
}

// ArithOp enumerates the arithmetic operators of the dialect (spec §6: "+ -
// * /").
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
)

func (op ArithOp) String() string {
	switch op {
	case Add:
		return "+"
	case Sub:
		return "-"
	case Mul:
		return "*"
	case Div:
		return "/"
	default:
		return "?"
	}
}

// Arith is a binary arithmetic expression prior to simplification/evaluation.
type Arith struct {
	Op          ArithOp
	Left, Right Term
}

func (a *Arith) Ground() bool { return a.Left.Ground() && a.Right.Ground() }

func (a *Arith) String() string {
	return fmt.Sprintf("(%s%s%s)", a.Left, a.Op, a.Right)
}

// Minus is unary arithmetic negation.
type Minus struct {
	Operand Term
}

func (m *Minus) Ground() bool   { return m.Operand.Ground() }
func (m *Minus) String() string { return fmt.Sprintf("-%s", m.Operand) }

// Equal reports structural equality of two terms. Unlike precedence, this is
// defined on non-ground terms too (two distinct Variable terms are unequal,
// matching Go's natural struct/pointer equality semantics extended over the
// recursive shape).
func Equal(a, b Term) bool {
	switch x := a.(type) {
	case Infimum:
		_, ok := b.(Infimum)
		return ok
	case Supremum:
		_, ok := b.(Supremum)
		return ok
	case Number:
		y, ok := b.(Number)
		return ok && x.Value == y.Value
	case String:
		y, ok := b.(String)
		return ok && x.Value == y.Value
	case SymConst:
		y, ok := b.(SymConst)
		return ok && x.Name == y.Name
	case Variable:
		y, ok := b.(Variable)
		return ok && x.Name == y.Name
	case AnonVariable:
		y, ok := b.(AnonVariable)
		return ok && x.ID == y.ID
	case *ArithVariable:
		y, ok := b.(*ArithVariable)
		return ok && x.ID == y.ID
	case *Functional:
		y, ok := b.(*Functional)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	case *Arith:
		y, ok := b.(*Arith)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Minus:
		y, ok := b.(*Minus)
		return ok && Equal(x.Operand, y.Operand)
	default:
		return false
	}
}

// Vars collects, in first-occurrence order, every Variable and AnonVariable
// free in t. ArithVariable contributes the variables of its source
// expression, not itself, since that is what the grounder treats as the
// "real" dependency (spec §4.2: "Arithmetic variables are safe iff their
// source expression's variables are safe").
func Vars(t Term) []Term {
	var out []Term
	seen := map[string]bool{}
	var walk func(Term)
	walk = func(t Term) {
		switch x := t.(type) {
		case Variable:
			if !seen["v:"+x.Name] {
				seen["v:"+x.Name] = true
				out = append(out, x)
			}
		case AnonVariable:
			key := fmt.Sprintf("a:%d", x.ID)
			if !seen[key] {
				seen[key] = true
				out = append(out, x)
			}
		case *ArithVariable:
			walk(x.Source)
		case *Functional:
			for _, a := range x.Args {
				walk(a)
			}
		case *Arith:
			walk(x.Left)
			walk(x.Right)
		case *Minus:
			walk(x.Operand)
		}
	}
	walk(t)
	return out
}
