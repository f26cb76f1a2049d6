// Package stmt implements the statement layer of the data model (spec §3):
// the sum type of rule shapes a program is built from, from plain facts
// through disjunctive/choice rules to the auxiliary placeholder rules
// emitted by aggregate/choice rewriting (spec §4.4).
package stmt

import (
	"fmt"
	"strings"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/term"
)

// Statement is the sum type of spec §3:
//
//	Statement ::= NormalRule | DisjunctiveRule | ChoiceRule | Constraint |
//	              WeakConstraint | OptimizeStatement | NPPRule |
//	              AggrBaseRule | AggrElemRule | ChoiceBaseRule | ChoiceElemRule
type Statement interface {
	fmt.Stringer
	isStatement()
	// Ground reports whether every term in the statement (head and body) is
	// ground.
	Ground() bool
}

func (*NormalRule) isStatement()        {}
func (*DisjunctiveRule) isStatement()   {}
func (*ChoiceRule) isStatement()        {}
func (*Constraint) isStatement()        {}
func (*WeakConstraint) isStatement()    {}
func (*OptimizeStatement) isStatement() {}
func (*NPPRule) isStatement()           {}
func (*AggrBaseRule) isStatement()      {}
func (*AggrElemRule) isStatement()      {}
func (*ChoiceBaseRule) isStatement()    {}
func (*ChoiceElemRule) isStatement()    {}

func groundHeadsAndBody(heads []*literal.Pred, body literal.LiteralCollection) bool {
	for _, h := range heads {
		if !h.Ground() {
			return false
		}
	}
	return body.Ground()
}

func stringHeadsAndBody(heads []string, sep string, body literal.LiteralCollection) string {
	var b strings.Builder
	b.WriteString(strings.Join(heads, sep))
	if body.Len() > 0 {
		b.WriteString(" :- ")
		b.WriteString(body.String())
	}
	b.WriteString(".")
	return b.String()
}

// NormalRule is a single-atom rule (spec §3); a Body of length zero makes
// it a fact.
type NormalRule struct {
	Head *literal.Pred
	Body literal.LiteralCollection
}

// NewFact constructs a NormalRule with an empty body.
func NewFact(head *literal.Pred) *NormalRule {
	return &NormalRule{Head: head, Body: literal.NewLiteralCollection()}
}

func (r *NormalRule) Ground() bool { return groundHeadsAndBody([]*literal.Pred{r.Head}, r.Body) }

func (r *NormalRule) String() string {
	return stringHeadsAndBody([]string{r.Head.String()}, " | ", r.Body)
}

// IsFact reports whether the rule has no body literals.
func (r *NormalRule) IsFact() bool { return r.Body.Len() == 0 }

// DisjunctiveRule is a rule with two or more atoms disjoined in the head
// (spec §3, §6: "disjunctive heads H1 | H2 | …").
type DisjunctiveRule struct {
	Heads []*literal.Pred
	Body  literal.LiteralCollection
}

func (r *DisjunctiveRule) Ground() bool { return groundHeadsAndBody(r.Heads, r.Body) }

func (r *DisjunctiveRule) String() string {
	parts := make([]string, len(r.Heads))
	for i, h := range r.Heads {
		parts[i] = h.String()
	}
	return stringHeadsAndBody(parts, " | ", r.Body)
}

// ChoiceRule is `l {e1;…;ek} u :- B.` (spec §3, §6).
type ChoiceRule struct {
	Choice *literal.ChoiceExpr
	Body   literal.LiteralCollection
}

func (r *ChoiceRule) Ground() bool { return r.Choice.Ground() && r.Body.Ground() }

func (r *ChoiceRule) String() string {
	return stringHeadsAndBody([]string{r.Choice.String()}, " | ", r.Body)
}

// Constraint is a headless rule: `:- B.` (spec §3).
type Constraint struct {
	Body literal.LiteralCollection
}

func (r *Constraint) Ground() bool { return r.Body.Ground() }

func (r *Constraint) String() string {
	return fmt.Sprintf(":- %s.", r.Body.String())
}

// WeakConstraint is `:~ B. [w@l, tuple]` (spec §6, §9 Open Questions: the
// data model is implemented but no optimization objective is computed).
type WeakConstraint struct {
	Body   literal.LiteralCollection
	Weight term.Term
	Level  term.Term
	Tuple  []term.Term
}

func (r *WeakConstraint) Ground() bool {
	if !r.Body.Ground() || !r.Weight.Ground() || !r.Level.Ground() {
		return false
	}
	for _, t := range r.Tuple {
		if !t.Ground() {
			return false
		}
	}
	return true
}

func (r *WeakConstraint) String() string {
	parts := make([]string, len(r.Tuple))
	for i, t := range r.Tuple {
		parts[i] = t.String()
	}
	return fmt.Sprintf(":~ %s. [%s@%s,%s]", r.Body.String(), r.Weight, r.Level, strings.Join(parts, ","))
}

// OptimizeStatement is a `#minimize{...}`/`#maximize{...}` directive (spec
// §9 Open Questions: data model only, no objective search).
type OptimizeStatement struct {
	Body     literal.LiteralCollection
	Maximize bool
	Weight   term.Term
	Level    term.Term
	Tuple    []term.Term
}

func (r *OptimizeStatement) Ground() bool {
	if !r.Body.Ground() || !r.Weight.Ground() || !r.Level.Ground() {
		return false
	}
	for _, t := range r.Tuple {
		if !t.Ground() {
			return false
		}
	}
	return true
}

func (r *OptimizeStatement) String() string {
	dir := "#minimize"
	if r.Maximize {
		dir = "#maximize"
	}
	parts := make([]string, len(r.Tuple))
	for i, t := range r.Tuple {
		parts[i] = t.String()
	}
	return fmt.Sprintf("%s{%s@%s,%s : %s}.", dir, r.Weight, r.Level, strings.Join(parts, ","), r.Body.String())
}

// NPPRule is `#npp(name(terms), [outcomes]).` (spec §4.7, §6): during
// grounding it behaves as a disjunctive rule over `name(terms...,
// outcome_j)` atoms.
type NPPRule struct {
	Name     string
	Terms    []term.Term
	Outcomes []term.Term
	Body     literal.LiteralCollection
}

func (r *NPPRule) Ground() bool {
	for _, t := range r.Terms {
		if !t.Ground() {
			return false
		}
	}
	for _, o := range r.Outcomes {
		if !o.Ground() {
			return false
		}
	}
	return r.Body.Ground()
}

// Expand returns the disjunction of `name(terms..., outcome_j)` atoms this
// NPP rule stands for (spec §4.7: "no other special semantics apply to the
// grounder" beyond this expansion).
func (r *NPPRule) Expand() []*literal.Pred {
	out := make([]*literal.Pred, len(r.Outcomes))
	for i, o := range r.Outcomes {
		args := append(append([]term.Term{}, r.Terms...), o)
		out[i] = literal.NewPred(r.Name, args...)
	}
	return out
}

func (r *NPPRule) String() string {
	parts := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		parts[i] = t.String()
	}
	outs := make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outs[i] = o.String()
	}
	s := fmt.Sprintf("#npp(%s(%s), [%s])", r.Name, strings.Join(parts, ","), strings.Join(outs, ","))
	if r.Body.Len() > 0 {
		s += " :- " + r.Body.String()
	}
	return s + "."
}

// AggrBaseRule is the base-rule emitted by aggregate rewriting (spec §4.4):
// `εref(globals) :- guard_comparison, rest_of_body.`
type AggrBaseRule struct {
	Ref  int
	Head *literal.AggrBase
	Body literal.LiteralCollection
}

func (r *AggrBaseRule) Ground() bool { return groundHeadsAndBody(nil, r.Body) && r.Head.Ground() }
func (r *AggrBaseRule) String() string {
	return stringHeadsAndBody([]string{r.Head.String()}, " | ", r.Body)
}

// AggrElemRule is the element-rule emitted by aggregate rewriting (spec
// §4.4): `ηref_i(locals_i,globals) :- e_i.conditions, rest_of_body.`
type AggrElemRule struct {
	Ref    int
	ElemID int
	Head   *literal.AggrElem
	Body   literal.LiteralCollection
}

func (r *AggrElemRule) Ground() bool { return r.Head.Ground() && r.Body.Ground() }
func (r *AggrElemRule) String() string {
	return stringHeadsAndBody([]string{r.Head.String()}, " | ", r.Body)
}

// ChoiceBaseRule is the base-rule emitted by choice rewriting, analogous to
// AggrBaseRule.
type ChoiceBaseRule struct {
	Ref  int
	Head *literal.ChoiceBase
	Body literal.LiteralCollection
}

func (r *ChoiceBaseRule) Ground() bool { return r.Head.Ground() && r.Body.Ground() }
func (r *ChoiceBaseRule) String() string {
	return stringHeadsAndBody([]string{r.Head.String()}, " | ", r.Body)
}

// ChoiceElemRule is the element-rule emitted by choice rewriting, analogous
// to AggrElemRule.
type ChoiceElemRule struct {
	Ref    int
	ElemID int
	Head   *literal.ChoiceElem
	Body   literal.LiteralCollection
}

func (r *ChoiceElemRule) Ground() bool { return r.Head.Ground() && r.Body.Ground() }
func (r *ChoiceElemRule) String() string {
	return stringHeadsAndBody([]string{r.Head.String()}, " | ", r.Body)
}

// Body returns the statement's body literal collection. Every statement
// variant carries one (even Constraint, whose head is simply empty).
func Body(s Statement) literal.LiteralCollection {
	switch r := s.(type) {
	case *NormalRule:
		return r.Body
	case *DisjunctiveRule:
		return r.Body
	case *ChoiceRule:
		return r.Body
	case *Constraint:
		return r.Body
	case *WeakConstraint:
		return r.Body
	case *OptimizeStatement:
		return r.Body
	case *NPPRule:
		return r.Body
	case *AggrBaseRule:
		return r.Body
	case *AggrElemRule:
		return r.Body
	case *ChoiceBaseRule:
		return r.Body
	case *ChoiceElemRule:
		return r.Body
	default:
		return literal.NewLiteralCollection()
	}
}

// WithBody returns a copy of s with its body replaced, used by the grounder
// and rewriter to drop/trim body literals without touching the head.
func WithBody(s Statement, body literal.LiteralCollection) Statement {
	switch r := s.(type) {
	case *NormalRule:
		return &NormalRule{Head: r.Head, Body: body}
	case *DisjunctiveRule:
		return &DisjunctiveRule{Heads: r.Heads, Body: body}
	case *ChoiceRule:
		return &ChoiceRule{Choice: r.Choice, Body: body}
	case *Constraint:
		return &Constraint{Body: body}
	case *WeakConstraint:
		return &WeakConstraint{Body: body, Weight: r.Weight, Level: r.Level, Tuple: r.Tuple}
	case *OptimizeStatement:
		return &OptimizeStatement{Body: body, Maximize: r.Maximize, Weight: r.Weight, Level: r.Level, Tuple: r.Tuple}
	case *NPPRule:
		return &NPPRule{Name: r.Name, Terms: r.Terms, Outcomes: r.Outcomes, Body: body}
	case *AggrBaseRule:
		return &AggrBaseRule{Ref: r.Ref, Head: r.Head, Body: body}
	case *AggrElemRule:
		return &AggrElemRule{Ref: r.Ref, ElemID: r.ElemID, Head: r.Head, Body: body}
	case *ChoiceBaseRule:
		return &ChoiceBaseRule{Ref: r.Ref, Head: r.Head, Body: body}
	case *ChoiceElemRule:
		return &ChoiceElemRule{Ref: r.Ref, ElemID: r.ElemID, Head: r.Head, Body: body}
	default:
		return s
	}
}

// HeadAtoms returns the predicate atoms derivable from this statement's
// head, across every variant that has one (spec §4.3 uses this to build
// dependency-graph edges; NPP rules expand to their disjunction first).
func HeadAtoms(s Statement) []*literal.Pred {
	switch r := s.(type) {
	case *NormalRule:
		return []*literal.Pred{r.Head}
	case *DisjunctiveRule:
		return r.Heads
	case *ChoiceRule:
		out := make([]*literal.Pred, len(r.Choice.Elements))
		for i, e := range r.Choice.Elements {
			out[i] = e.Atom
		}
		return out
	case *NPPRule:
		return r.Expand()
	case *AggrBaseRule:
		return nil // placeholder head, not a predicate atom
	case *AggrElemRule:
		return nil
	case *ChoiceBaseRule:
		return nil
	case *ChoiceElemRule:
		return nil
	default:
		return nil
	}
}

// HeadLiteral returns the single non-predicate placeholder head literal of
// the auxiliary rule variants emitted by rewriting, or nil for every other
// variant.
func HeadLiteral(s Statement) literal.Literal {
	switch r := s.(type) {
	case *AggrBaseRule:
		return r.Head
	case *AggrElemRule:
		return r.Head
	case *ChoiceBaseRule:
		return r.Head
	case *ChoiceElemRule:
		return r.Head
	default:
		return nil
	}
}

// Vars returns every free variable occurring anywhere in the statement
// (head and body), in first-occurrence order, head first.
func Vars(s Statement) []term.Term {
	var out []term.Term
	seen := map[string]bool{}
	add := func(vs []term.Term) {
		for _, v := range vs {
			if !seen[v.String()] {
				seen[v.String()] = true
				out = append(out, v)
			}
		}
	}
	for _, h := range HeadAtoms(s) {
		add(h.Vars())
	}
	if hl := HeadLiteral(s); hl != nil {
		add(hl.Vars())
	}
	if cr, ok := s.(*ChoiceRule); ok {
		add(cr.Choice.Vars())
	}
	for _, t := range extraTerms(s) {
		add(term.Vars(t))
	}
	add(Body(s).Vars())
	return out
}

func extraTerms(s Statement) []term.Term {
	switch r := s.(type) {
	case *WeakConstraint:
		return append([]term.Term{r.Weight, r.Level}, r.Tuple...)
	case *OptimizeStatement:
		return append([]term.Term{r.Weight, r.Level}, r.Tuple...)
	default:
		return nil
	}
}

// RequiredSafeVars returns the variables a statement's safety check must
// prove safe: every variable of the head atoms or placeholder head literal
// (an arithmetic variable there contributes its source variables), of a
// choice head's guards and elements, and of a weak constraint's or optimize
// statement's weight, level and tuple terms. Arithmetic variables that occur
// only in the body are not included.
func RequiredSafeVars(s Statement) []term.Term {
	var out []term.Term
	seen := map[string]bool{}
	add := func(vs []term.Term) {
		for _, v := range vs {
			if !seen[v.String()] {
				seen[v.String()] = true
				out = append(out, v)
			}
		}
	}
	for _, h := range HeadAtoms(s) {
		for _, t := range h.Terms {
			add(term.Vars(t))
		}
	}
	if hl := HeadLiteral(s); hl != nil {
		add(hl.Vars())
	}
	if cr, ok := s.(*ChoiceRule); ok {
		add(cr.Choice.Vars())
	}
	for _, t := range extraTerms(s) {
		add(term.Vars(t))
	}
	return out
}
