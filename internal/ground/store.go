package ground

import (
	"fmt"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/term"
)

// record is one ground atom the instantiation loop has derived, flagged
// certain (its deriving rule's body was itself fully certain) or merely
// possible (spec §4.5 step 2's `certain`/`possible` atom sets).
type record struct {
	Lit     literal.Literal
	Certain bool
}

// Store is the grounder's accumulating, monotonically-growing pool of
// derived atoms (spec §3 "Lifetimes": "the grounder owns the growing set
// of ground atoms ... all other structures are derived views"). It indexes
// ordinary predicate atoms by (name, arity) for body-literal matching, and
// placeholder atoms by their rewriting `ref` for the propagator.
type Store struct {
	byPred     map[string][]*record
	aggrBase   map[int][]*record
	aggrElem   map[int][]*record
	choiceBase map[int][]*record
	choiceElem map[int][]*record
	seen       map[string]*record
}

// NewStore returns an empty atom pool.
func NewStore() *Store {
	return &Store{
		byPred:     map[string][]*record{},
		aggrBase:   map[int][]*record{},
		aggrElem:   map[int][]*record{},
		choiceBase: map[int][]*record{},
		choiceElem: map[int][]*record{},
		seen:       map[string]*record{},
	}
}

func predKey(name string, arity int) string { return fmt.Sprintf("%s/%d", name, arity) }

// Add records l as derived with the given certainty. certain is sticky: an
// atom already certain never regresses to merely possible. Reports whether
// this call changed the store's contents — a brand-new atom, or a possible
// atom just promoted to certain — the signal the instantiation loop uses
// to detect its fixpoint (spec §4.5 step 6: "repeat until new_atoms ⊆
// atoms").
func (s *Store) Add(l literal.Literal, certain bool) bool {
	k := l.String()
	if existing, ok := s.seen[k]; ok {
		if certain && !existing.Certain {
			existing.Certain = true
			return true
		}
		return false
	}
	rec := &record{Lit: l, Certain: certain}
	s.seen[k] = rec
	switch x := l.(type) {
	case *literal.Pred:
		key := predKey(x.Name, len(x.Terms))
		s.byPred[key] = append(s.byPred[key], rec)
	case *literal.AggrBase:
		s.aggrBase[x.Ref] = append(s.aggrBase[x.Ref], rec)
	case *literal.AggrElem:
		s.aggrElem[x.Ref] = append(s.aggrElem[x.Ref], rec)
	case *literal.ChoiceBase:
		s.choiceBase[x.Ref] = append(s.choiceBase[x.Ref], rec)
	case *literal.ChoiceElem:
		s.choiceElem[x.Ref] = append(s.choiceElem[x.Ref], rec)
	}
	return true
}

// Candidates returns every ground Pred atom sharing a (name, arity) —
// the `possible` pool a positive body literal is matched against (spec
// §4.5 step 2(a)).
func (s *Store) Candidates(name string, arity int) []*record {
	return s.byPred[predKey(name, arity)]
}

// CertainPred reports whether the exact ground atom p (by name, classical
// negation, and argument terms) is in the `certain` set — the check a NAF
// body literal fails against (spec §4.5 step 2(b)).
func (s *Store) CertainPred(p *literal.Pred) bool {
	rec, ok := s.seen[predSeenKey(p)]
	return ok && rec.Certain
}

// PossiblePred reports whether the exact ground atom p has been derived at
// all, certain or not — the `possible` set a NAF body literal consults to
// tell "definitely true" from "still undecided" apart (spec §4.5 step 2(b),
// §7 stratification: a NAF literal over a merely possible atom must stay in
// the ground body rather than being dropped as trivially true).
func (s *Store) PossiblePred(p *literal.Pred) bool {
	_, ok := s.seen[predSeenKey(p)]
	return ok
}

func predSeenKey(p *literal.Pred) string {
	return (&literal.Pred{Name: p.Name, Neg: p.Neg, Terms: p.Terms}).String()
}

func (s *Store) AggrBases(ref int) []*record   { return s.aggrBase[ref] }
func (s *Store) AggrElems(ref int) []*record   { return s.aggrElem[ref] }
func (s *Store) ChoiceBases(ref int) []*record { return s.choiceBase[ref] }
func (s *Store) ChoiceElems(ref int) []*record { return s.choiceElem[ref] }

// tupleKey canonicalises a ground term tuple for use as a map/grouping key
// (globals bindings, element value tuples).
func tupleKey(ts []term.Term) string {
	out := ""
	for _, t := range ts {
		out += t.String() + "\x00"
	}
	return out
}
