// Package propagate implements the aggregate/choice propagator of spec
// §4.6: it consumes the ground AggrBase/AggrElem/ChoiceBase/ChoiceElem
// atoms the grounder has derived for one placeholder ref and decides, per
// ground tuple of globals, whether the original aggregate/choice
// construct's guard is definitely satisfied, definitely refuted, or still
// pending further element evidence — and reassembles the real
// Aggregate/ChoiceExpr literal the placeholder stood in for.
package propagate

import (
	"aspgrounder/internal/literal"
	"aspgrounder/internal/rewrite"
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Status is the three-valued outcome of evaluating one placeholder
// instance against its accumulated element evidence (spec §4.6: "certain,
// possible, or refuted").
type Status int

const (
	False Status = iota
	Possible
	Certain
)

// ElementStatus is a single ground element sharing one (Ref, Globals)
// instance, as grounded by an AggrElemRule/ChoiceElemRule. Certain records
// whether the element's rule body was itself certain (as opposed to merely
// possible — still depending on an unresolved NAF literal elsewhere in the
// program).
type ElementStatus struct {
	Values  []term.Term
	Certain bool
}

// EvaluateAggregate decides the status of one aggregate placeholder
// instance from the elements derived so far (spec §4.6).
//
// Count alone gets true monotonic bound reasoning: accumulating another
// certain element can only raise the achievable count, and another
// possible-but-undecided element can only raise its ceiling, so a count
// guard can be proven certain or refuted before every element is decided.
// This already subsumes the AggrBaseRule's zero-element witness — an empty
// elems slice yields bounds [0,0], the same comparison the base rule
// performs at the neutral value — so the base rule's only remaining job is
// to enumerate which (Ref, Globals) tuples are live candidates at all; its
// own certain/possible flag is not otherwise consulted here.
//
// Sum/Min/Max admit no such direction-independent bound: an unresolved
// element could contribute any value, including one that reverses a
// running total. For these, EvaluateAggregate defers to Possible until stabilised
// reports the element set is fully decided (no element remains possible-
// but-not-certain), at which point the guard is evaluated once against the
// settled value (see DESIGN.md's Open Question decisions).
func EvaluateAggregate(meta *rewrite.AggrMeta, elems []ElementStatus, stabilised bool) Status {
	if meta.Func == literal.Count {
		lower, upper := countBounds(elems)
		return combineGuards(meta.LeftGuard, meta.RightGuard, lower, upper)
	}
	if !stabilised {
		return Possible
	}
	value, err := meta.Func.Eval(certainTuples(elems))
	if err != nil {
		return False
	}
	return combineGuards(meta.LeftGuard, meta.RightGuard, value, value)
}

// countBounds computes the minimum and maximum element count achievable
// from elems: lower counts only distinct certain value tuples, upper also
// counts distinct merely-possible tuples (spec §4.6).
func countBounds(elems []ElementStatus) (term.Term, term.Term) {
	certainSeen := map[string]bool{}
	possibleSeen := map[string]bool{}
	for _, e := range elems {
		k := tupleKey(e.Values)
		possibleSeen[k] = true
		if e.Certain {
			certainSeen[k] = true
		}
	}
	return term.Number{Value: int64(len(certainSeen))}, term.Number{Value: int64(len(possibleSeen))}
}

// certainTuples returns the distinct, certain-only element value tuples,
// used by the stabilised Sum/Min/Max evaluation path.
func certainTuples(elems []ElementStatus) [][]term.Term {
	seen := map[string]bool{}
	var out [][]term.Term
	for _, e := range elems {
		if !e.Certain {
			continue
		}
		k := tupleKey(e.Values)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e.Values)
	}
	return out
}

func tupleKey(ts []term.Term) string {
	s := ""
	for _, t := range ts {
		s += t.String() + ","
	}
	return s
}

// combineGuards folds the left and right guard's individual Status
// (worst-cases to False, otherwise to the weaker of Possible/Certain).
func combineGuards(left, right *literal.Guard, lower, upper term.Term) Status {
	a := guardStatus(left, lower, upper)
	b := guardStatus(right, lower, upper)
	if a == False || b == False {
		return False
	}
	if a == Possible || b == Possible {
		return Possible
	}
	return Certain
}

// guardStatus decides a single guard's status given the value range
// [lower, upper] the aggregate is known to fall within. nil guards always
// hold. Guard.Eval is monotonic in the comparison operator's direction, so
// evaluating at both endpoints is enough to prove or refute it regardless
// of where in the range the true value eventually settles.
func guardStatus(g *literal.Guard, lower, upper term.Term) Status {
	if g == nil {
		return Certain
	}
	okLower, errLower := g.Eval(lower)
	okUpper, errUpper := g.Eval(upper)
	if errLower != nil || errUpper != nil {
		return Possible
	}
	switch g.Op {
	case literal.Le, literal.Lt:
		if okUpper {
			return Certain
		}
		if !okLower {
			return False
		}
		return Possible
	case literal.Ge, literal.Gt:
		if okLower {
			return Certain
		}
		if !okUpper {
			return False
		}
		return Possible
	case literal.Eq:
		if term.Equal(lower, upper) {
			if okLower {
				return Certain
			}
			return False
		}
		if boundInRange(g.Bound, lower, upper) {
			return Possible
		}
		return False
	case literal.Ne:
		if term.Equal(lower, upper) {
			if okLower {
				return Certain
			}
			return False
		}
		if boundInRange(g.Bound, lower, upper) {
			return Possible
		}
		return Certain
	default:
		return Possible
	}
}

// boundInRange reports whether bound lies within [lower, upper] under the
// total order, used only for the Eq/Ne guard cases above.
func boundInRange(bound, lower, upper term.Term) bool {
	le, err1 := term.Precedes(lower, bound)
	ge, err2 := term.Precedes(bound, upper)
	if err1 != nil || err2 != nil {
		return true
	}
	return le && ge
}

// AssembleAggregate reconstructs the original Aggregate literal a
// placeholder stood in for, once globals are ground and elems has settled,
// for inclusion in the final ground program (spec §4.4, §4.6). Only
// distinct certain element tuples are kept; each becomes a condition-free
// element carrying its value tuple.
func AssembleAggregate(meta *rewrite.AggrMeta, groundGlobals []term.Term, elems []ElementStatus) *literal.Aggregate {
	s := bindGlobals(meta.GlobalVars, groundGlobals)
	out := &literal.Aggregate{Func: meta.Func}
	if meta.LeftGuard != nil {
		g := literal.SubstituteGuard(s, *meta.LeftGuard)
		out.LeftGuard = &g
	}
	if meta.RightGuard != nil {
		g := literal.SubstituteGuard(s, *meta.RightGuard)
		out.RightGuard = &g
	}
	for _, tuple := range certainTuples(elems) {
		out.Elements = append(out.Elements, literal.Element{Terms: tuple, Condition: literal.NewLiteralCollection()})
	}
	return out
}

// AssembleChoice reconstructs the original ChoiceExpr a ChoiceBase/
// ChoiceElem pair stood in for, building one element per atom whose
// ChoiceElem instance was derived (spec §4.4): the choice itself remains a
// don't-care decision left to the solving stage, so every derived element
// is kept regardless of certain/possible status.
func AssembleChoice(meta *rewrite.ChoiceMeta, groundGlobals []term.Term, atoms []*literal.Pred) *literal.ChoiceExpr {
	s := bindGlobals(meta.GlobalVars, groundGlobals)
	out := &literal.ChoiceExpr{}
	if meta.LeftGuard != nil {
		g := literal.SubstituteGuard(s, *meta.LeftGuard)
		out.LeftGuard = &g
	}
	if meta.RightGuard != nil {
		g := literal.SubstituteGuard(s, *meta.RightGuard)
		out.RightGuard = &g
	}
	seen := map[string]bool{}
	for _, a := range atoms {
		k := a.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out.Elements = append(out.Elements, literal.ChoiceElement{Atom: a, Condition: literal.NewLiteralCollection()})
	}
	return out
}

// bindGlobals builds the substitution mapping each of vars positionally to
// its ground counterpart in grounds.
func bindGlobals(vars, grounds []term.Term) *subst.Substitution {
	s := subst.New()
	for i, v := range vars {
		if i >= len(grounds) {
			break
		}
		if bv, ok := v.(term.Variable); ok {
			s.Bind(bv, grounds[i])
		} else if av, ok := v.(term.AnonVariable); ok {
			s.Bind(av, grounds[i])
		}
	}
	return s
}
