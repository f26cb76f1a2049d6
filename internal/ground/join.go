package ground

import (
	"aspgrounder/internal/errors"
	"aspgrounder/internal/literal"
	"aspgrounder/internal/propagate"
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// binding is one surviving partial instantiation of a rule body as the
// join proceeds literal by literal: the accumulated substitution, whether
// every literal used to reach it was certain, and the finalized ground
// body literals produced so far (comparisons, positive literals matched
// against a certain atom, and NAF literals over an atom that is not even
// possible are dropped as trivially true per spec §4.5 step 4; a NAF
// literal over a merely possible atom is retained, undecided; aggregate
// placeholders are replaced by their assembled Aggregate literal inline).
type binding struct {
	subst   *subst.Substitution
	certain bool
	body    []literal.Literal
}

// orderBody reorders body so that every literal is selected only once the
// variables it needs are already bound: positive (non-NAF) predicate
// literals and aggregate placeholders are always selectable first (they
// are the rule's binders); comparisons and NAF literals become selectable
// once their variables are all bound by an earlier selection (spec §4.5
// step 1: "prefer the first positive predicate literal; failing that, the
// first ground NAF literal or ground comparison").
func orderBody(body literal.LiteralCollection) ([]literal.Literal, bool) {
	remaining := append([]literal.Literal{}, body.Slice()...)
	bound := map[string]bool{}
	var ordered []literal.Literal
	for len(remaining) > 0 {
		idx := -1
		for i, l := range remaining {
			if literalReady(l, bound) {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, false
		}
		l := remaining[idx]
		ordered = append(ordered, l)
		remaining = append(append([]literal.Literal{}, remaining[:idx]...), remaining[idx+1:]...)
		if isBinder(l) {
			for _, v := range l.Vars() {
				bound[v.String()] = true
			}
		}
	}
	return ordered, true
}

// isBinder reports whether a literal introduces bindings for its own
// variables rather than requiring them bound already.
func isBinder(l literal.Literal) bool {
	switch x := l.(type) {
	case *literal.Pred:
		return !x.Naf
	case *literal.AggrBase:
		return !x.Naf
	default:
		return false
	}
}

func literalReady(l literal.Literal, bound map[string]bool) bool {
	if isBinder(l) {
		return true
	}
	for _, v := range l.Vars() {
		if !bound[v.String()] {
			return false
		}
	}
	return true
}

// join runs the ordered body literals through extend, starting from the
// empty binding, producing every surviving instantiation (spec §4.5 steps
// 2-3).
func (g *Grounder) join(ordered []literal.Literal) []binding {
	cur := []binding{{subst: subst.New(), certain: true}}
	for _, l := range ordered {
		var next []binding
		for _, b := range cur {
			next = append(next, g.extend(l, b)...)
		}
		cur = next
		if len(cur) == 0 {
			break
		}
	}
	return cur
}

// extend matches or evaluates one body literal against binding b,
// returning every way it can be satisfied (spec §4.5 step 2-3).
func (g *Grounder) extend(l literal.Literal, b binding) []binding {
	switch x := l.(type) {
	case *literal.Pred:
		if x.Naf {
			return g.extendNaf(x, b)
		}
		return g.extendPositive(x, b)
	case *literal.Comp:
		return g.extendComp(x, b)
	case *literal.AggrBase:
		return g.extendAggrBase(x, b)
	case literal.FalseConst:
		// A stray FalseConst reaching the join (Aggregate/ChoiceExpr never
		// do once rewriting has run) is trivially false, so the whole
		// binding fails rather than surviving (spec §4.5 step 4).
		return nil
	default:
		// TrueConst/Aggregate/ChoiceExpr never occur in a body once
		// rewriting has run; treat defensively as always-true so a
		// malformed input degrades gracefully rather than panicking.
		return []binding{b}
	}
}

// extendPositive matches a positive predicate literal against every
// candidate atom sharing its (name, arity) (spec §4.5 step 2(a)). A
// candidate that is already `certain` makes the literal trivially true, so
// it is dropped from the ground body entirely (spec §4.5 step 4) rather
// than retained — otherwise an all-fact constraint body could never empty
// by simplification and its InconsistencyWarning would be unreachable
// (spec §7, E7). A merely `possible` candidate keeps the matched atom in
// the ground body, still undecided.
func (g *Grounder) extendPositive(pattern *literal.Pred, b binding) []binding {
	patterned := literal.SubstitutePred(b.subst, pattern)
	var out []binding
	for _, rec := range g.store.Candidates(pattern.Name, len(pattern.Terms)) {
		cand := rec.Lit.(*literal.Pred)
		if cand.Neg != patterned.Neg {
			continue
		}
		s2, ok := literal.Match(patterned, cand)
		if !ok {
			continue
		}
		merged, err := subst.DisjointUnion(b.subst, s2)
		if err != nil {
			continue
		}
		body := b.body
		if !rec.Certain {
			body = append(append([]literal.Literal{}, b.body...), cand)
		}
		out = append(out, binding{
			subst:   merged,
			certain: b.certain && rec.Certain,
			body:    body,
		})
	}
	return out
}

// extendNaf implements the `not p(...)` check (spec §4.5 step 2(b)): a
// `certain` atom refutes the whole binding; an atom that is merely
// `possible` (derived, but not yet certain — e.g. an IDB atom in a
// not-yet-stratified negative cycle) keeps `not p(...)` in the ground body
// undecided rather than dropping it, since dropping it here would wrongly
// make the binding (and the head it derives) certain before the atom's own
// status is settled; only an atom that is not even possible is trivially
// true and gets dropped (spec §4.5 step 4's "drop trivially-true
// literals").
func (g *Grounder) extendNaf(pattern *literal.Pred, b binding) []binding {
	ground := literal.SubstitutePred(b.subst, pattern)
	if !ground.Ground() {
		return nil
	}
	key := &literal.Pred{Name: ground.Name, Neg: ground.Neg, Terms: ground.Terms}
	if g.store.CertainPred(key) {
		return nil
	}
	if g.store.PossiblePred(key) {
		return []binding{{
			subst:   b.subst,
			certain: false,
			body:    append(append([]literal.Literal{}, b.body...), ground),
		}}
	}
	return []binding{b}
}

// extendComp evaluates a ground comparison, dropping it from the body on
// success (trivially true) and failing the binding on failure (spec §4.5
// step 4).
func (g *Grounder) extendComp(c *literal.Comp, b binding) []binding {
	ground := &literal.Comp{Op: c.Op, Left: subst.Apply(b.subst, c.Left), Right: subst.Apply(b.subst, c.Right)}
	if !ground.Ground() {
		return nil
	}
	ok, err := ground.Eval()
	if err != nil || !ok {
		return nil
	}
	return []binding{b}
}

// extendAggrBase resolves an aggregate placeholder occurrence against the
// accumulated base/element evidence for its ref (spec §4.5's closing note:
// "aggregate/choice placeholders ... are grounded by the same machinery;
// the propagator then consults the results"). A positive occurrence
// survives once the propagator judges the guard Certain, and is replaced
// in the ground body by the reassembled Aggregate literal (spec §4.6 step
// 3); a `not` occurrence survives once the guard is judged False, dropped
// from the body as trivially true. A Possible verdict defers the binding
// to a later grounding pass as more elements accumulate.
func (g *Grounder) extendAggrBase(x *literal.AggrBase, b binding) []binding {
	meta := g.aggrMeta[x.Ref]
	if meta == nil {
		return nil
	}
	pattern := &literal.AggrBase{Ref: x.Ref, Globals: substituteTerms(b.subst, x.Globals)}
	var out []binding
	for _, rec := range g.store.AggrBases(x.Ref) {
		cand := rec.Lit.(*literal.AggrBase)
		s2, ok := literal.Match(pattern, cand)
		if !ok {
			continue
		}
		merged, err := subst.DisjointUnion(b.subst, s2)
		if err != nil {
			continue
		}
		groundGlobals := substituteTerms(merged, meta.GlobalVars)
		elems := g.elementsFor(x.Ref, groundGlobals)
		status := propagate.EvaluateAggregate(meta, elems, g.stabilised)
		if x.Naf {
			if status != propagate.False {
				continue
			}
			out = append(out, binding{subst: merged, certain: b.certain && rec.Certain, body: b.body})
			continue
		}
		if status != propagate.Certain {
			continue
		}
		assembled := propagate.AssembleAggregate(meta, groundGlobals, elems)
		out = append(out, binding{
			subst:   merged,
			certain: b.certain && rec.Certain,
			body:    append(append([]literal.Literal{}, b.body...), assembled),
		})
	}
	return out
}

// elementsFor gathers every element derived so far for ref whose own
// ground globals match groundGlobals.
func (g *Grounder) elementsFor(ref int, groundGlobals []term.Term) []propagate.ElementStatus {
	key := tupleKey(groundGlobals)
	var out []propagate.ElementStatus
	for _, rec := range g.store.AggrElems(ref) {
		e := rec.Lit.(*literal.AggrElem)
		if tupleKey(e.Globals) != key {
			continue
		}
		out = append(out, propagate.ElementStatus{Values: e.Values, Certain: rec.Certain})
	}
	return out
}

func substituteTerms(s *subst.Substitution, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = subst.Apply(s, t)
	}
	return out
}

// noSelectableLiteral reports the grounder's internal diagnostic for a
// rule whose body has no selectable literal (spec §4.5 step 1, §4.8
// SelectingLiteral→Unsafe).
func noSelectableLiteral(ruleText string) errors.CompilerError {
	return errors.NoSelectableLiteral(ruleText)
}
