// Package safety implements the safety characterization of spec §4.2: a
// per-expression triplet of safe variables, unsafe variables, and deferred
// safety rules, and the closure algorithm that resolves the triplet into a
// final safe set.
package safety

import (
	"aspgrounder/internal/literal"
	"aspgrounder/internal/term"
)

// Rule is a deferred safety binding `X ⟸ S`: "X becomes safe once every
// variable in S is safe" (spec §4.2). Grounded on
// original_source/src/tests/program/test_safety_characterization.py's
// `SafetyRule(var, deps)` shape.
type Rule struct {
	Var  term.Term
	Deps []term.Term
}

// Triplet describes which variables an expression binds. Safe and Unsafe
// are keyed by each variable's String() form (Variable/AnonVariable never
// collide with each other — see term.Vars).
type Triplet struct {
	Safe   map[string]term.Term
	Unsafe map[string]term.Term
	Rules  []Rule
}

// NewTriplet returns the empty triplet.
func NewTriplet() *Triplet {
	return &Triplet{Safe: map[string]term.Term{}, Unsafe: map[string]term.Term{}}
}

func (t *Triplet) markSafe(v term.Term)   { t.Safe[v.String()] = v }
func (t *Triplet) markUnsafe(v term.Term) { t.Unsafe[v.String()] = v }

// Merge folds other into t, unioning safe/unsafe sets and concatenating
// rules. A variable that is safe in either triplet is safe in the result
// (once bound, always bound); a variable unsafe in one and not mentioned at
// all by the other stays unsafe until closure promotes it via a rule.
func (t *Triplet) Merge(other *Triplet) {
	for k, v := range other.Safe {
		t.Safe[k] = v
	}
	for k, v := range other.Unsafe {
		if _, safe := t.Safe[k]; !safe {
			t.Unsafe[k] = v
		}
	}
	t.Rules = append(t.Rules, other.Rules...)
}

// LiteralTriplet computes the safety contribution of a single literal (spec
// §4.2 "Specific contributions").
func LiteralTriplet(l literal.Literal) *Triplet {
	t := NewTriplet()
	switch x := l.(type) {
	case *literal.Pred:
		if x.Naf {
			for _, v := range x.Vars() {
				t.markUnsafe(v)
			}
		} else {
			for _, v := range x.Vars() {
				t.markSafe(v)
			}
		}
	case *literal.Comp:
		if x.Op == literal.Eq {
			addEqualityRules(t, x.Left, x.Right)
		}
		// inequalities and other comparisons contribute no safety.
	case *literal.Aggregate:
		aggregateGuardTriplet(t, x.LeftGuard, x.RightGuard)
	case *literal.ChoiceExpr:
		aggregateGuardTriplet(t, x.LeftGuard, x.RightGuard)
	case *literal.AggrBase, *literal.AggrElem, *literal.ChoiceBase, *literal.ChoiceElem:
		// placeholders emitted by rewriting are safe by construction: the
		// rewriter only ever builds them from already-safe rule bodies.
		for _, v := range l.Vars() {
			t.markSafe(v)
		}
	case literal.TrueConst, literal.FalseConst:
		// no variables.
	}
	return t
}

// addEqualityRules implements "Equal(X, term) contributes the rule
// X ⟸ vars(term)" for whichever side is a bare variable not occurring in
// the other side's term (spec §4.2).
func addEqualityRules(t *Triplet, left, right term.Term) {
	if isBareVar(left) && !containsVar(right, left) {
		t.Rules = append(t.Rules, Rule{Var: left, Deps: term.Vars(right)})
	}
	if isBareVar(right) && !containsVar(left, right) {
		t.Rules = append(t.Rules, Rule{Var: right, Deps: term.Vars(left)})
	}
}

func isBareVar(t term.Term) bool {
	switch t.(type) {
	case term.Variable, term.AnonVariable:
		return true
	default:
		return false
	}
}

func containsVar(host, v term.Term) bool {
	for _, hv := range term.Vars(host) {
		if term.Equal(hv, v) {
			return true
		}
	}
	return false
}

// aggregateGuardTriplet implements "aggregate literals contribute only
// their guard variables with appropriate rules" (spec §4.2): an equality
// guard's bare-variable bound becomes safe unconditionally (the aggregate
// evaluates to one ground value per set of global bindings, once its
// elements are grounded by rewriting); any other guard operator leaves its
// variables unsafe unless bound elsewhere in the body. This resolves the
// spec's unspecified detail of what "appropriate rules" means for
// non-equality guards.
func aggregateGuardTriplet(t *Triplet, left, right *literal.Guard) {
	for _, g := range []*literal.Guard{left, right} {
		if g == nil {
			continue
		}
		if g.Op == literal.Eq && isBareVar(g.Bound) {
			t.Rules = append(t.Rules, Rule{Var: g.Bound, Deps: nil})
			continue
		}
		for _, v := range g.Vars() {
			t.markUnsafe(v)
		}
	}
}

// Closure iterates the rule set, repeatedly promoting any rule whose
// dependencies are already satisfied, until a fixpoint is reached (spec
// §4.2: "repeatedly promote any rule whose dependencies are satisfied; a
// variable ending up in unsafe remains unsafe"). It returns the final safe
// set.
func Closure(t *Triplet) map[string]term.Term {
	safe := map[string]term.Term{}
	for k, v := range t.Safe {
		safe[k] = v
	}
	pending := append([]Rule{}, t.Rules...)
	for {
		progressed := false
		var next []Rule
		for _, r := range pending {
			if _, ok := safe[r.Var.String()]; ok {
				continue
			}
			if depsSatisfied(r.Deps, safe) {
				safe[r.Var.String()] = r.Var
				progressed = true
				continue
			}
			next = append(next, r)
		}
		pending = next
		if !progressed {
			break
		}
	}
	return safe
}

func depsSatisfied(deps []term.Term, safe map[string]term.Term) bool {
	for _, d := range deps {
		if _, ok := safe[d.String()]; !ok {
			return false
		}
	}
	return true
}

// BodyTriplet folds the safety contributions of every literal in body into
// a single triplet (order-independent, as LiteralCollection itself is).
func BodyTriplet(body literal.LiteralCollection) *Triplet {
	t := NewTriplet()
	for _, l := range body.Slice() {
		t.Merge(LiteralTriplet(l))
	}
	return t
}

// Safe reports whether every variable in required becomes safe once body's
// combined triplet is closed (spec §4.2: "A statement is safe iff closure
// ... leaves the set of head-or-arithmetic variables empty of unsafe
// members"). required is typically the statement's head variables plus the
// source variables of its arithmetic variables.
func Safe(body literal.LiteralCollection, required []term.Term) bool {
	safe := Closure(BodyTriplet(body))
	for _, v := range required {
		if _, ok := safe[v.String()]; !ok {
			return false
		}
	}
	return true
}
