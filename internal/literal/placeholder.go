package literal

import (
	"fmt"
	"strings"

	"aspgrounder/internal/term"
)

// AggrBase is the placeholder atom standing in for an aggregate's base
// (zero-element) case during grounding: "εref(globals)" (spec §3, §4.4). It
// is matched and ground like an ordinary predicate but reassembled by the
// propagator rather than surviving into the final program.
// Naf records whether the *occurrence* of this placeholder in a container
// rule's body was produced from a NAF-negated aggregate (`not #count{...}
// ...`); it plays no role when AggrBase is used as an AggrBaseRule head.
type AggrBase struct {
	Ref     int
	Globals []term.Term
	Naf     bool
}

func (p *AggrBase) IsNaf() bool   { return p.Naf }
func (p *AggrBase) Ground() bool  { return allGround(p.Globals) }
func (p *AggrBase) Vars() []term.Term { return dedupVars(varsOf(p.Globals)) }
func (p *AggrBase) String() string {
	prefix := ""
	if p.Naf {
		prefix = "not "
	}
	return fmt.Sprintf("%sε%d(%s)", prefix, p.Ref, joinTerms(p.Globals))
}

// AggrElem is the placeholder atom standing in for a single aggregate
// element's existence: "ηref,elemID(locals;globals;values)" (spec §3,
// §4.4).
type AggrElem struct {
	Ref     int
	ElemID  int
	Locals  []term.Term
	Globals []term.Term
	Values  []term.Term
}

func (p *AggrElem) IsNaf() bool  { return false }
func (p *AggrElem) Ground() bool { return allGround(p.Locals) && allGround(p.Globals) && allGround(p.Values) }
func (p *AggrElem) Vars() []term.Term {
	return dedupVars(append(append(varsOf(p.Locals), varsOf(p.Globals)...), varsOf(p.Values)...))
}
func (p *AggrElem) String() string {
	return fmt.Sprintf("η%d,%d(%s;%s;%s)", p.Ref, p.ElemID, joinTerms(p.Locals), joinTerms(p.Globals), joinTerms(p.Values))
}

// ChoiceBase is the placeholder atom for a choice construct's base case,
// analogous to AggrBase.
type ChoiceBase struct {
	Ref     int
	Globals []term.Term
}

func (p *ChoiceBase) IsNaf() bool   { return false }
func (p *ChoiceBase) Ground() bool  { return allGround(p.Globals) }
func (p *ChoiceBase) Vars() []term.Term { return dedupVars(varsOf(p.Globals)) }
func (p *ChoiceBase) String() string {
	return fmt.Sprintf("εχ%d(%s)", p.Ref, joinTerms(p.Globals))
}

// ChoiceElem is the placeholder atom for a single choice element's
// existence, analogous to AggrElem.
type ChoiceElem struct {
	Ref     int
	ElemID  int
	Locals  []term.Term
	Globals []term.Term
	Atom    *Pred
}

func (p *ChoiceElem) IsNaf() bool  { return false }
func (p *ChoiceElem) Ground() bool { return allGround(p.Locals) && allGround(p.Globals) && p.Atom.Ground() }
func (p *ChoiceElem) Vars() []term.Term {
	return dedupVars(append(append(varsOf(p.Locals), varsOf(p.Globals)...), p.Atom.Vars()...))
}
func (p *ChoiceElem) String() string {
	return fmt.Sprintf("ηχ%d,%d(%s;%s;%s)", p.Ref, p.ElemID, joinTerms(p.Locals), joinTerms(p.Globals), p.Atom)
}

// TrueConst is the always-true 0-ary literal, used by the rewriter and
// grounder to replace trivially-true body literals (spec §4.5).
type TrueConst struct{}

func (TrueConst) IsNaf() bool      { return false }
func (TrueConst) Ground() bool     { return true }
func (TrueConst) Vars() []term.Term { return nil }
func (TrueConst) String() string   { return "#true" }

// FalseConst is the always-false 0-ary literal, used to mark a rule as
// unsatisfiable so it is dropped during simplification (spec §4.4, §4.5).
type FalseConst struct{}

func (FalseConst) IsNaf() bool      { return false }
func (FalseConst) Ground() bool     { return true }
func (FalseConst) Vars() []term.Term { return nil }
func (FalseConst) String() string   { return "#false" }

func allGround(ts []term.Term) bool {
	for _, t := range ts {
		if !t.Ground() {
			return false
		}
	}
	return true
}

func varsOf(ts []term.Term) []term.Term {
	var out []term.Term
	for _, t := range ts {
		out = append(out, term.Vars(t)...)
	}
	return out
}

func joinTerms(ts []term.Term) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, ",")
}
