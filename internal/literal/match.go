package literal

import (
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Match attempts one-sided pattern matching of a literal against a ground
// (or more-instantiated) target literal, returning the most general
// substitution such that substituting pattern's terms yields target (spec
// §4.1). Only atom-shaped literals — Pred and the placeholder kinds emitted
// by rewriting — are matched this way; comparisons and aggregate/choice
// literals are evaluated, not matched, by the grounder (spec §4.5).
func Match(pattern, target Literal) (*subst.Substitution, bool) {
	switch p := pattern.(type) {
	case *Pred:
		t, ok := target.(*Pred)
		if !ok || p.Name != t.Name || p.Neg != t.Neg || p.Naf != t.Naf || len(p.Terms) != len(t.Terms) {
			return nil, false
		}
		return matchTermsPositional(p.Terms, t.Terms)
	case *AggrBase:
		t, ok := target.(*AggrBase)
		if !ok || p.Ref != t.Ref || len(p.Globals) != len(t.Globals) {
			return nil, false
		}
		return matchTermsPositional(p.Globals, t.Globals)
	case *AggrElem:
		t, ok := target.(*AggrElem)
		if !ok || p.Ref != t.Ref || p.ElemID != t.ElemID {
			return nil, false
		}
		all := append(append(append([]term.Term{}, p.Locals...), p.Globals...), p.Values...)
		otherAll := append(append(append([]term.Term{}, t.Locals...), t.Globals...), t.Values...)
		return matchTermsPositional(all, otherAll)
	case *ChoiceBase:
		t, ok := target.(*ChoiceBase)
		if !ok || p.Ref != t.Ref || len(p.Globals) != len(t.Globals) {
			return nil, false
		}
		return matchTermsPositional(p.Globals, t.Globals)
	case *ChoiceElem:
		t, ok := target.(*ChoiceElem)
		if !ok || p.Ref != t.Ref || p.ElemID != t.ElemID {
			return nil, false
		}
		all := append(append([]term.Term{}, p.Locals...), p.Globals...)
		otherAll := append(append([]term.Term{}, t.Locals...), t.Globals...)
		s1, ok := matchTermsPositional(all, otherAll)
		if !ok {
			return nil, false
		}
		s2, ok := Match(p.Atom, t.Atom)
		if !ok {
			return nil, false
		}
		merged, err := subst.DisjointUnion(s1, s2)
		if err != nil {
			return nil, false
		}
		return merged, true
	case TrueConst:
		_, ok := target.(TrueConst)
		if !ok {
			return nil, false
		}
		return subst.New(), true
	case FalseConst:
		_, ok := target.(FalseConst)
		if !ok {
			return nil, false
		}
		return subst.New(), true
	default:
		return nil, false
	}
}

// MatchCollection matches a against b per spec §4.1: equal length required;
// for each literal in a, some unused literal in b must match it such that
// the substitution disjointly unifies with the running one. Order is
// irrelevant — LiteralCollection is semantically unordered.
func MatchCollection(a, b LiteralCollection) (*subst.Substitution, bool) {
	if a.Len() != b.Len() {
		return nil, false
	}
	used := make([]bool, b.Len())
	return matchCollectionFrom(a.literals, b.literals, used, subst.New())
}

// matchTermsPositional matches each pattern term against the corresponding
// target term, merging the per-position substitutions disjointly.
func matchTermsPositional(pattern, target []term.Term) (*subst.Substitution, bool) {
	result := subst.New()
	for i := range pattern {
		s, ok := subst.Match(pattern[i], target[i])
		if !ok {
			return nil, false
		}
		merged, err := subst.DisjointUnion(result, s)
		if err != nil {
			return nil, false
		}
		result = merged
	}
	return result, true
}

func matchCollectionFrom(remaining []Literal, pool []Literal, used []bool, running *subst.Substitution) (*subst.Substitution, bool) {
	if len(remaining) == 0 {
		return running, true
	}
	head := remaining[0]
	for i, cand := range pool {
		if used[i] {
			continue
		}
		s, ok := Match(head, cand)
		if !ok {
			continue
		}
		merged, err := subst.DisjointUnion(running, s)
		if err != nil {
			continue
		}
		used[i] = true
		if result, ok := matchCollectionFrom(remaining[1:], pool, used, merged); ok {
			return result, true
		}
		used[i] = false
	}
	return nil, false
}
