package literal

import (
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Substitute applies s to every term of l, returning a new literal of the
// same kind. Used by the grounder's instantiation loop to specialise a
// rule body literal-by-literal as the running substitution grows (spec
// §4.5 step 3).
func Substitute(s *subst.Substitution, l Literal) Literal {
	switch x := l.(type) {
	case *Pred:
		return SubstitutePred(s, x)
	case *Comp:
		return &Comp{Op: x.Op, Left: subst.Apply(s, x.Left), Right: subst.Apply(s, x.Right)}
	case *Aggregate:
		elems := make([]Element, len(x.Elements))
		for i, e := range x.Elements {
			elems[i] = substituteElement(s, e)
		}
		out := &Aggregate{Func: x.Func, Elements: elems, Naf: x.Naf}
		if x.LeftGuard != nil {
			g := SubstituteGuard(s, *x.LeftGuard)
			out.LeftGuard = &g
		}
		if x.RightGuard != nil {
			g := SubstituteGuard(s, *x.RightGuard)
			out.RightGuard = &g
		}
		return out
	case *ChoiceExpr:
		elems := make([]ChoiceElement, len(x.Elements))
		for i, e := range x.Elements {
			elems[i] = ChoiceElement{Atom: SubstitutePred(s, e.Atom), Condition: substituteCollection(s, e.Condition)}
		}
		out := &ChoiceExpr{Elements: elems}
		if x.LeftGuard != nil {
			g := SubstituteGuard(s, *x.LeftGuard)
			out.LeftGuard = &g
		}
		if x.RightGuard != nil {
			g := SubstituteGuard(s, *x.RightGuard)
			out.RightGuard = &g
		}
		return out
	case *AggrBase:
		return &AggrBase{Ref: x.Ref, Globals: substituteTerms(s, x.Globals), Naf: x.Naf}
	case *AggrElem:
		return &AggrElem{
			Ref: x.Ref, ElemID: x.ElemID,
			Locals: substituteTerms(s, x.Locals), Globals: substituteTerms(s, x.Globals), Values: substituteTerms(s, x.Values),
		}
	case *ChoiceBase:
		return &ChoiceBase{Ref: x.Ref, Globals: substituteTerms(s, x.Globals)}
	case *ChoiceElem:
		return &ChoiceElem{
			Ref: x.Ref, ElemID: x.ElemID,
			Locals: substituteTerms(s, x.Locals), Globals: substituteTerms(s, x.Globals), Atom: SubstitutePred(s, x.Atom),
		}
	case TrueConst, FalseConst:
		return x
	default:
		return l
	}
}

func substituteTerms(s *subst.Substitution, ts []term.Term) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = subst.Apply(s, t)
	}
	return out
}

func substituteElement(s *subst.Substitution, e Element) Element {
	return Element{Terms: substituteTerms(s, e.Terms), Condition: substituteCollection(s, e.Condition)}
}

func substituteCollection(s *subst.Substitution, c LiteralCollection) LiteralCollection {
	out := make([]Literal, c.Len())
	for i, l := range c.Slice() {
		out[i] = Substitute(s, l)
	}
	return NewLiteralCollection(out...)
}
