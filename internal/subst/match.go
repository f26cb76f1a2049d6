package subst

import "aspgrounder/internal/term"

// Match attempts to find the most general substitution s such that
// apply(s, pattern) = target (spec §4.1, §8 property 4). It fails — returns
// (nil, false) — on type mismatch, arity mismatch, or assignment conflict.
//
// Matching an arithmetic term against a ground value is only meaningful once
// the arithmetic has been replaced by an ArithVariable (spec §4.1); a raw,
// still-ground Arith/Minus pattern is matched by value equality instead
// (it carries no variables to bind).
func Match(pattern, target term.Term) (*Substitution, bool) {
	switch p := pattern.(type) {
	case term.Variable:
		s := New()
		s.Bind(p, target)
		return s, true
	case term.AnonVariable:
		s := New()
		s.Bind(p, target)
		return s, true
	case *term.ArithVariable:
		s := New()
		s.Bind(p, target)
		return s, true
	case term.Infimum:
		_, ok := target.(term.Infimum)
		return New(), ok
	case term.Supremum:
		_, ok := target.(term.Supremum)
		return New(), ok
	case term.Number:
		y, ok := target.(term.Number)
		if !ok || p.Value != y.Value {
			return nil, false
		}
		return New(), true
	case term.String:
		y, ok := target.(term.String)
		if !ok || p.Value != y.Value {
			return nil, false
		}
		return New(), true
	case term.SymConst:
		y, ok := target.(term.SymConst)
		if !ok || p.Name != y.Name {
			return nil, false
		}
		return New(), true
	case *term.Functional:
		y, ok := target.(*term.Functional)
		if !ok || p.Name != y.Name || len(p.Args) != len(y.Args) {
			return nil, false
		}
		result := New()
		for i := range p.Args {
			sub, ok := Match(p.Args[i], y.Args[i])
			if !ok {
				return nil, false
			}
			merged, err := DisjointUnion(result, sub)
			if err != nil {
				return nil, false
			}
			result = merged
		}
		return result, true
	case *term.Arith, *term.Minus:
		simplified, err := term.Simplify(p)
		if err != nil || !simplified.Ground() {
			return nil, false
		}
		if !term.Equal(simplified, target) {
			return nil, false
		}
		return New(), true
	default:
		return nil, false
	}
}
