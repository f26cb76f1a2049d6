package literal

import (
	"fmt"
	"strings"

	"aspgrounder/internal/term"
)

// Aggregate is a set-aggregate literal (spec §3, §6:
// "#count|#sum|#min|#max{ terms : literals ; … }" with optional left/right
// guards).
type Aggregate struct {
	Func       AggregateFunction
	Elements   []Element
	LeftGuard  *Guard
	RightGuard *Guard
	Naf        bool
}

func (a *Aggregate) IsNaf() bool { return a.Naf }

func (a *Aggregate) Ground() bool {
	if a.LeftGuard != nil && !a.LeftGuard.Ground() {
		return false
	}
	if a.RightGuard != nil && !a.RightGuard.Ground() {
		return false
	}
	for _, e := range a.Elements {
		if !e.Ground() {
			return false
		}
	}
	return true
}

func (a *Aggregate) Vars() []term.Term {
	var out []term.Term
	if a.LeftGuard != nil {
		out = append(out, a.LeftGuard.Vars()...)
	}
	for _, e := range a.Elements {
		out = append(out, e.Vars()...)
	}
	if a.RightGuard != nil {
		out = append(out, a.RightGuard.Vars()...)
	}
	return dedupVars(out)
}

// GlobalVars returns the aggregate's guard variables. Rewriting adds the
// element variables shared with the rest of the rule (rewrite's
// ruleGlobalVars) and threads the result through placeholder and
// base/element rule heads (spec §4.4).
func (a *Aggregate) GlobalVars() []term.Term {
	var out []term.Term
	if a.LeftGuard != nil {
		out = append(out, a.LeftGuard.Vars()...)
	}
	if a.RightGuard != nil {
		out = append(out, a.RightGuard.Vars()...)
	}
	return dedupVars(out)
}

func (a *Aggregate) String() string {
	var b strings.Builder
	if a.Naf {
		b.WriteString("not ")
	}
	if a.LeftGuard != nil {
		b.WriteString(a.LeftGuard.Bound.String())
		b.WriteString(" ")
		b.WriteString(a.LeftGuard.Op.Flip().String())
		b.WriteString(" ")
	}
	b.WriteString(a.Func.String())
	b.WriteString("{")
	for i, e := range a.Elements {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(e.String())
	}
	b.WriteString("}")
	if a.RightGuard != nil {
		b.WriteString(" ")
		b.WriteString(a.RightGuard.String())
	}
	return b.String()
}

// ChoiceExpr is a choice construct's core aggregate-like expression, the
// `{e1;...;ek}` in `l {e1;...;ek} u :- B.` (spec §3, §6). Its elements carry
// the atom to derive rather than a value tuple.
type ChoiceExpr struct {
	Elements   []ChoiceElement
	LeftGuard  *Guard
	RightGuard *Guard
}

// ChoiceElement is a single choice element: an atom guarded by a condition
// (spec §4.4: "existence of each element").
type ChoiceElement struct {
	Atom      *Pred
	Condition LiteralCollection
}

func (e ChoiceElement) String() string {
	s := e.Atom.String()
	if len(e.Condition.literals) > 0 {
		s += " : " + e.Condition.String()
	}
	return s
}

func (e ChoiceElement) Ground() bool { return e.Atom.Ground() && e.Condition.Ground() }

func (e ChoiceElement) Vars() []term.Term {
	return dedupVars(append(e.Atom.Vars(), e.Condition.Vars()...))
}

// GlobalVars returns the choice construct's guard variables, analogous to
// Aggregate.GlobalVars (spec §4.4).
func (c *ChoiceExpr) GlobalVars() []term.Term {
	var out []term.Term
	if c.LeftGuard != nil {
		out = append(out, c.LeftGuard.Vars()...)
	}
	if c.RightGuard != nil {
		out = append(out, c.RightGuard.Vars()...)
	}
	return dedupVars(out)
}

func (c *ChoiceExpr) IsNaf() bool { return false }

func (c *ChoiceExpr) Ground() bool {
	if c.LeftGuard != nil && !c.LeftGuard.Ground() {
		return false
	}
	if c.RightGuard != nil && !c.RightGuard.Ground() {
		return false
	}
	for _, e := range c.Elements {
		if !e.Ground() {
			return false
		}
	}
	return true
}

func (c *ChoiceExpr) Vars() []term.Term {
	var out []term.Term
	if c.LeftGuard != nil {
		out = append(out, c.LeftGuard.Vars()...)
	}
	for _, e := range c.Elements {
		out = append(out, e.Vars()...)
	}
	if c.RightGuard != nil {
		out = append(out, c.RightGuard.Vars()...)
	}
	return dedupVars(out)
}

func (c *ChoiceExpr) String() string {
	var b strings.Builder
	if c.LeftGuard != nil {
		fmt.Fprintf(&b, "%s %s ", c.LeftGuard.Bound, c.LeftGuard.Op.Flip())
	}
	b.WriteString("{")
	for i, e := range c.Elements {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(e.String())
	}
	b.WriteString("}")
	if c.RightGuard != nil {
		fmt.Fprintf(&b, " %s", c.RightGuard)
	}
	return b.String()
}
