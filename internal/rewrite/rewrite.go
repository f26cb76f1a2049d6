// Package rewrite implements the aggregate/choice decomposition pass of
// spec §4.4: every aggregate literal in a rule body, and every choice
// construct in a rule head, is replaced by a fresh placeholder atom plus
// auxiliary base-rule and element-rules that let the ordinary grounder
// machinery (which cannot select an aggregate/choice literal directly,
// spec §4.5 step 1) derive its satisfiability.
package rewrite

import (
	"aspgrounder/internal/literal"
	"aspgrounder/internal/program"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
)

// Result is the outcome of rewriting one statement: the statement itself
// with aggregates/choice replaced by placeholders (nil if the statement was
// entirely consumed by rewriting, as choice rules are), plus every
// auxiliary base/element rule emitted along the way.
type Result struct {
	Rewritten stmt.Statement
	Aux       []stmt.Statement
}

// AggrMeta records everything the propagator (internal/propagate) needs to
// re-assemble an aggregate literal from the ground AggrBase/AggrElem atoms
// sharing its Ref (spec §4.4, §4.6). GlobalVars is the original (possibly
// non-ground) variable list, positionally aligned with any ground Globals
// tuple the grounder later matches for this ref.
type AggrMeta struct {
	Ref        int
	Func       literal.AggregateFunction
	LeftGuard  *literal.Guard
	RightGuard *literal.Guard
	GlobalVars []term.Term
	NumElements int
}

// ChoiceMeta is AggrMeta's analogue for choice constructs; ElemAtoms maps
// each element id to its (non-ground) head atom template.
type ChoiceMeta struct {
	Ref        int
	LeftGuard  *literal.Guard
	RightGuard *literal.Guard
	GlobalVars []term.Term
	ElemAtoms  map[int]*literal.Pred
}

// Rewriter threads the fresh-ref counter (spec §4.4: "Fresh ref identifiers
// are issued by a global counter") through a whole-program rewrite pass,
// accumulating the metadata the propagator needs per ref.
type Rewriter struct {
	refs *program.Counter

	Aggregates map[int]*AggrMeta
	Choices    map[int]*ChoiceMeta
}

// New constructs a Rewriter using refs as its fresh-id source.
func New(refs *program.Counter) *Rewriter {
	return &Rewriter{refs: refs, Aggregates: map[int]*AggrMeta{}, Choices: map[int]*ChoiceMeta{}}
}

// Program rewrites every statement of statements, returning the flattened
// replacement list (spec §4.4: "Before grounding, every rule ... is
// transformed").
func (rw *Rewriter) Program(statements []stmt.Statement) []stmt.Statement {
	var out []stmt.Statement
	for _, s := range statements {
		res := rw.Statement(s)
		if res.Rewritten != nil {
			out = append(out, res.Rewritten)
		}
		out = append(out, res.Aux...)
	}
	return out
}

// Statement rewrites a single statement.
func (rw *Rewriter) Statement(s stmt.Statement) Result {
	if cr, ok := s.(*stmt.ChoiceRule); ok {
		return rw.choiceRule(cr)
	}
	body := stmt.Body(s)
	aggr, idx := firstAggregate(body)
	if aggr == nil {
		return Result{Rewritten: s}
	}
	ref := rw.refs.Next()
	rest := body.Without(func(l literal.Literal) bool { return l == literal.Literal(aggr) })
	globals := ruleGlobalVars(aggr, s, body, idx)

	placeholder := &literal.AggrBase{Ref: ref, Globals: globals, Naf: aggr.Naf}
	newBody := rest.Append(placeholder)
	rewritten := stmt.WithBody(s, newBody)

	rw.Aggregates[ref] = &AggrMeta{
		Ref: ref, Func: aggr.Func, LeftGuard: aggr.LeftGuard, RightGuard: aggr.RightGuard,
		GlobalVars: globals, NumElements: len(aggr.Elements),
	}

	var aux []stmt.Statement
	aux = append(aux, baseRule(aggr, ref, globals, rest))
	for i, e := range aggr.Elements {
		aux = append(aux, elemRule(aggr, ref, i, globals, e, rest))
	}

	// A rewritten statement may still contain further aggregates (spec
	// §4.4 decomposes "every aggregate literal"); recurse until none
	// remain.
	next := rw.Statement(rewritten)
	aux = append(aux, next.Aux...)
	return Result{Rewritten: next.Rewritten, Aux: aux}
}

// firstAggregate returns the first Aggregate literal in body (selection
// order does not matter — rewriting processes every aggregate eventually
// via recursion) and its index.
func firstAggregate(body literal.LiteralCollection) (*literal.Aggregate, int) {
	for i, l := range body.Slice() {
		if a, ok := l.(*literal.Aggregate); ok {
			return a, i
		}
	}
	return nil, -1
}

// ruleGlobalVars computes the aggregate's global variables: those of its
// own Vars() that also occur elsewhere in the statement (head, other body
// literals, or guard bounds) — spec §4.4: "globals are the rule's global
// variables appearing in A". Guard variables are always global since the
// propagator must receive their bindings regardless of recurrence
// elsewhere.
func ruleGlobalVars(aggr *literal.Aggregate, s stmt.Statement, body literal.LiteralCollection, skipIdx int) []term.Term {
	outside := map[string]bool{}
	for _, h := range stmt.HeadAtoms(s) {
		for _, v := range h.Vars() {
			outside[v.String()] = true
		}
	}
	for i, l := range body.Slice() {
		if i == skipIdx {
			continue
		}
		for _, v := range l.Vars() {
			outside[v.String()] = true
		}
	}
	var out []term.Term
	seen := map[string]bool{}
	add := func(v term.Term) {
		if !seen[v.String()] {
			seen[v.String()] = true
			out = append(out, v)
		}
	}
	for _, v := range aggr.GlobalVars() {
		add(v)
	}
	for _, v := range aggr.Vars() {
		if outside[v.String()] {
			add(v)
		}
	}
	return out
}

// localVars returns the element's variables that are not among globals.
func localVars(elemVars, globals []term.Term) []term.Term {
	global := map[string]bool{}
	for _, g := range globals {
		global[g.String()] = true
	}
	var out []term.Term
	for _, v := range elemVars {
		if !global[v.String()] {
			out = append(out, v)
		}
	}
	return out
}

// baseRule emits the AggrBaseRule: `εref(globals) :- guard_comparison,
// rest.` where guard_comparison asserts the aggregate's neutral base value
// satisfies every guard (spec §4.4).
func baseRule(a *literal.Aggregate, ref int, globals []term.Term, rest literal.LiteralCollection) *stmt.AggrBaseRule {
	body := rest
	base := a.Func.Base()
	if a.LeftGuard != nil {
		body = body.Append(&literal.Comp{Op: a.LeftGuard.Op.Flip(), Left: base, Right: a.LeftGuard.Bound})
	}
	if a.RightGuard != nil {
		body = body.Append(&literal.Comp{Op: a.RightGuard.Op, Left: base, Right: a.RightGuard.Bound})
	}
	return &stmt.AggrBaseRule{Ref: ref, Head: &literal.AggrBase{Ref: ref, Globals: globals}, Body: body}
}

// elemRule emits the element-rule for a single aggregate element e_i:
// `ηref_i(locals_i,globals) :- e_i.conditions, rest.` (spec §4.4).
func elemRule(a *literal.Aggregate, ref, elemID int, globals []term.Term, e literal.Element, rest literal.LiteralCollection) *stmt.AggrElemRule {
	locals := localVars(e.Vars(), globals)
	body := rest
	for _, l := range e.Condition.Slice() {
		body = body.Append(l)
	}
	head := &literal.AggrElem{Ref: ref, ElemID: elemID, Locals: locals, Globals: globals, Values: e.Terms}
	return &stmt.AggrElemRule{Ref: ref, ElemID: elemID, Head: head, Body: body}
}

// choiceRule decomposes `l {e1;…;ek} u :- B.` into a ChoiceBaseRule and one
// ChoiceElemRule per element; the original rule is entirely consumed (spec
// §4.4: "The same pattern applies to choice constructs with placeholders χ
// instead of α").
func (rw *Rewriter) choiceRule(cr *stmt.ChoiceRule) Result {
	ref := rw.refs.Next()
	globals := choiceGlobalVars(cr)
	var aux []stmt.Statement

	base := cr.Body
	ch := cr.Choice
	neutralCount := term.Number{Value: 0}
	if ch.LeftGuard != nil {
		base = base.Append(&literal.Comp{Op: ch.LeftGuard.Op.Flip(), Left: neutralCount, Right: ch.LeftGuard.Bound})
	}
	if ch.RightGuard != nil {
		base = base.Append(&literal.Comp{Op: ch.RightGuard.Op, Left: neutralCount, Right: ch.RightGuard.Bound})
	}
	aux = append(aux, &stmt.ChoiceBaseRule{Ref: ref, Head: &literal.ChoiceBase{Ref: ref, Globals: globals}, Body: base})

	meta := &ChoiceMeta{Ref: ref, LeftGuard: ch.LeftGuard, RightGuard: ch.RightGuard, GlobalVars: globals, ElemAtoms: map[int]*literal.Pred{}}
	for i, e := range ch.Elements {
		locals := localVars(e.Vars(), globals)
		body := cr.Body
		for _, l := range e.Condition.Slice() {
			body = body.Append(l)
		}
		head := &literal.ChoiceElem{Ref: ref, ElemID: i, Locals: locals, Globals: globals, Atom: e.Atom}
		aux = append(aux, &stmt.ChoiceElemRule{Ref: ref, ElemID: i, Head: head, Body: body})
		meta.ElemAtoms[i] = e.Atom
	}
	rw.Choices[ref] = meta
	return Result{Rewritten: nil, Aux: aux}
}

func choiceGlobalVars(cr *stmt.ChoiceRule) []term.Term {
	seen := map[string]bool{}
	var out []term.Term
	add := func(v term.Term) {
		if !seen[v.String()] {
			seen[v.String()] = true
			out = append(out, v)
		}
	}
	for _, v := range cr.Choice.GlobalVars() {
		add(v)
	}
	bodyVars := map[string]bool{}
	for _, v := range cr.Body.Vars() {
		bodyVars[v.String()] = true
	}
	for _, v := range cr.Choice.Vars() {
		if bodyVars[v.String()] {
			add(v)
		}
	}
	return out
}
