package literal

import (
	"fmt"
	"strings"

	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Literal is the sum type of the literal layer (spec §3):
//
//	Literal ::= Pred | Comp | Aggregate | ChoiceExpr | Placeholder
type Literal interface {
	fmt.Stringer
	isLiteral()
	// Ground reports whether the literal contains no free variable.
	Ground() bool
	// Vars returns the literal's free variables in first-occurrence order.
	Vars() []term.Term
	// IsNaf reports whether the literal is negated-as-failure.
	IsNaf() bool
}

func (*Pred) isLiteral()        {}
func (*Comp) isLiteral()        {}
func (*Aggregate) isLiteral()   {}
func (*ChoiceExpr) isLiteral()  {}
func (*AggrBase) isLiteral()    {}
func (*AggrElem) isLiteral()    {}
func (*ChoiceBase) isLiteral()  {}
func (*ChoiceElem) isLiteral()  {}
func (TrueConst) isLiteral()    {}
func (FalseConst) isLiteral()   {}

// Pred is a (possibly classically-negated, possibly NAF) predicate literal
// (spec §3).
type Pred struct {
	Name  string
	Neg   bool // classical negation ("-p(X)")
	Naf   bool // negation-as-failure ("not p(X)")
	Terms []term.Term
}

// NewPred constructs an unnegated, non-NAF predicate literal.
func NewPred(name string, terms ...term.Term) *Pred {
	return &Pred{Name: name, Terms: terms}
}

func (p *Pred) Arity() int { return len(p.Terms) }

func (p *Pred) IsNaf() bool { return p.Naf }

func (p *Pred) Ground() bool {
	for _, t := range p.Terms {
		if !t.Ground() {
			return false
		}
	}
	return true
}

func (p *Pred) Vars() []term.Term {
	var out []term.Term
	for _, t := range p.Terms {
		out = append(out, term.Vars(t)...)
	}
	return dedupVars(out)
}

func (p *Pred) String() string {
	var b strings.Builder
	if p.Naf {
		b.WriteString("not ")
	}
	if p.Neg {
		b.WriteString("-")
	}
	b.WriteString(p.Name)
	if len(p.Terms) > 0 {
		b.WriteString("(")
		for i, t := range p.Terms {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(t.String())
		}
		b.WriteString(")")
	}
	return b.String()
}

// SubstitutePred applies s to every argument term of p, returning a new Pred
// (Neg/Naf carried over unchanged).
func SubstitutePred(s *subst.Substitution, p *Pred) *Pred {
	args := make([]term.Term, len(p.Terms))
	for i, t := range p.Terms {
		args[i] = subst.Apply(s, t)
	}
	return &Pred{Name: p.Name, Neg: p.Neg, Naf: p.Naf, Terms: args}
}

// Comp is a comparison built-in literal (spec §3, §6: "=, !=, <, >, <=,
// >="). Only an equality comparison contributes safety, as a deferred rule
// (see internal/safety); other comparisons contribute none (spec §4.2).
type Comp struct {
	Op          RelOp
	Left, Right term.Term
}

func (c *Comp) IsNaf() bool { return false }

func (c *Comp) Ground() bool { return c.Left.Ground() && c.Right.Ground() }

func (c *Comp) Vars() []term.Term {
	return dedupVars(append(term.Vars(c.Left), term.Vars(c.Right)...))
}

func (c *Comp) String() string {
	return fmt.Sprintf("%s%s%s", c.Left, c.Op, c.Right)
}

// Eval evaluates a ground comparison.
func (c *Comp) Eval() (bool, error) {
	return c.Op.Eval(c.Left, c.Right)
}

// dedupVars preserves first-occurrence order while dropping duplicates,
// keyed by each variable's String() form (distinct variable kinds never
// collide: Variable, AnonVariable and ArithVariable render disjoint
// prefixes).
func dedupVars(vs []term.Term) []term.Term {
	seen := map[string]bool{}
	var out []term.Term
	for _, v := range vs {
		k := v.String()
		if !seen[k] {
			seen[k] = true
			out = append(out, v)
		}
	}
	return out
}
