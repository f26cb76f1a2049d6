// Package ground implements the grounder's top-level orchestration (spec
// §4.5): it runs the safety check, the aggregate/choice rewriting pass,
// then a component-ordered instantiation loop that fills a Store with
// every ground atom the program entails, finally producing a ground
// Program with placeholders replaced by assembled aggregate/choice
// literals (spec §4.6) or dropped as trivially true/false.
package ground

import (
	"sort"

	"aspgrounder/internal/depgraph"
	"aspgrounder/internal/errors"
	"aspgrounder/internal/literal"
	"aspgrounder/internal/program"
	"aspgrounder/internal/propagate"
	"aspgrounder/internal/rewrite"
	"aspgrounder/internal/safety"
	"aspgrounder/internal/source"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/subst"
	"aspgrounder/internal/term"
)

// Options controls grounding behaviour. Debug is process-wide, read-only
// state for the duration of one run (spec §5).
type Options struct {
	Debug bool
}

// Result is the outcome of one grounding run: either a ground Program plus
// any non-fatal diagnostics, or one or more fatal errors (spec §7).
type Result struct {
	Program  *program.Program
	Warnings []errors.CompilerError
	Errors   []errors.CompilerError
}

// Grounder holds the mutable state of one grounding run: the atom store,
// the rewriting metadata needed by the propagator, and the running
// certain/possible fixpoint bookkeeping. A Grounder is used for exactly
// one Ground call (spec §5: "Shared resources: the global counter ...
// must be process-wide monotone" — here scoped per run via program.Counter
// rather than literally global).
type Grounder struct {
	opts Options

	store      *Store
	aggrMeta   map[int]*rewrite.AggrMeta
	choiceMeta map[int]*rewrite.ChoiceMeta

	// stabilised is set once the main instantiation passes have reached a
	// global fixpoint, unlocking the Sum/Min/Max propagator evaluation
	// that needs a fully-decided element set (see internal/propagate).
	stabilised bool

	// choiceBaseInstances records, per ref, the distinct ground (globals,
	// finalized rest-of-body) pairs a ChoiceBaseRule derived — the raw
	// material the final choice-assembly pass reconstructs ChoiceRules
	// from, since the original ChoiceRule is entirely consumed by
	// rewriting and is never itself instantiated (spec §4.4).
	choiceBaseInstances map[int][]choiceInstance

	final   []stmt.Statement
	seenOut map[string]bool

	warnings []errors.CompilerError
}

type choiceInstance struct {
	Globals []term.Term
	Body    []literal.Literal
}

func newGrounder(opts Options) *Grounder {
	return &Grounder{
		opts:                opts,
		store:               NewStore(),
		choiceBaseInstances: map[int][]choiceInstance{},
		seenOut:             map[string]bool{},
	}
}

// Ground runs the full pipeline over p (spec §4: safety → rewriting →
// instantiation → propagation/assembly).
func Ground(p *program.Program, opts Options) Result {
	if errs := checkSafety(p.Statements); len(errs) > 0 {
		return Result{Errors: errs}
	}

	g := newGrounder(opts)

	rw := rewrite.New(program.NewCounter())
	var containers []stmt.Statement
	var aux []stmt.Statement
	for _, s := range p.Statements {
		res := rw.Statement(s)
		if res.Rewritten != nil {
			containers = append(containers, res.Rewritten)
		}
		aux = append(aux, res.Aux...)
	}
	g.aggrMeta = rw.Aggregates
	g.choiceMeta = rw.Choices

	all := append(append([]stmt.Statement{}, containers...), aux...)
	cg := depgraph.BuildComponentGraph(all)
	order := cg.TopoSort()
	ranks := make(map[int]int, len(order))
	for i, c := range order {
		ranks[c.ID] = i
	}

	buckets, headless := bucketStatements(all, cg, ranks, order)

	for _, c := range order {
		g.groundToFixpoint(buckets[c.ID])
	}
	g.groundToFixpoint(headless)

	// A second pass, now that every component has reached a global
	// fixpoint, resolves any Sum/Min/Max-guarded aggregate whose element
	// set needed to fully stabilise before its value could be known (see
	// internal/propagate.EvaluateAggregate).
	g.stabilised = true
	for _, c := range order {
		g.groundToFixpoint(buckets[c.ID])
	}
	g.groundToFixpoint(headless)

	g.assembleChoices()

	return Result{
		Program:  &program.Program{Statements: g.final, Query: p.Query},
		Warnings: g.warnings,
	}
}

// checkSafety runs the safety closure over every top-level statement,
// collecting every offending one (spec §7: "report all offending
// statements, not just the first").
func checkSafety(statements []stmt.Statement) []errors.CompilerError {
	var errs []errors.CompilerError
	for _, s := range statements {
		safe := safety.Closure(safety.BodyTriplet(stmt.Body(s)))
		var unsafe []string
		for _, v := range stmt.RequiredSafeVars(s) {
			if _, ok := safe[v.String()]; !ok {
				unsafe = append(unsafe, v.String())
			}
		}
		if len(unsafe) > 0 {
			e := errors.UnsafeVariables(unsafe, source.Position{})
			e.Notes = append(e.Notes, "in statement: "+s.String())
			errs = append(errs, e)
		}
	}
	return errs
}

// bucketStatements assigns every rewritten statement to the component of
// the dependency graph it should be instantiated alongside: statements with
// head atoms go to their head's own component (spec §4.3); the placeholder
// base/element rules emitted by rewriting go to the highest-ranked
// component among their body's ordinary predicates, since that is the
// latest point at which every atom they could depend on is available.
// Everything else (constraints, weak constraints, optimize statements, and
// placeholder rules whose body names no ordinary predicate) is returned in
// the headless list, which is grounded after all components.
func bucketStatements(all []stmt.Statement, cg *depgraph.ComponentGraph, ranks map[int]int, order []*depgraph.Component) (map[int][]stmt.Statement, []stmt.Statement) {
	buckets := map[int][]stmt.Statement{}
	var headless []stmt.Statement
	for _, s := range all {
		heads := stmt.HeadAtoms(s)
		if len(heads) > 0 {
			comp := cg.ComponentOf(headPredicate(heads[0]))
			if comp != nil {
				buckets[comp.ID] = append(buckets[comp.ID], s)
				continue
			}
		}
		if hl := stmt.HeadLiteral(s); hl != nil {
			if comp := componentOfBody(s, cg, ranks); comp != nil {
				buckets[comp.ID] = append(buckets[comp.ID], s)
				continue
			}
		}
		headless = append(headless, s)
	}
	return buckets, headless
}

func headPredicate(p *literal.Pred) depgraph.Predicate {
	return depgraph.Predicate{Name: p.Name, Arity: p.Arity()}
}

func componentOfBody(s stmt.Statement, cg *depgraph.ComponentGraph, ranks map[int]int) *depgraph.Component {
	var best *depgraph.Component
	bestRank := -1
	for _, p := range depgraph.BodyPredicates(stmt.Body(s)) {
		comp := cg.ComponentOf(p)
		if comp == nil {
			continue
		}
		if r := ranks[comp.ID]; r > bestRank {
			bestRank = r
			best = comp
		}
	}
	return best
}

// groundToFixpoint repeatedly instantiates every statement in stmts
// against the current store until no new atom is derived (spec §4.5 step
// 6). Recursive and exit rules are not distinguished here — every
// statement is simply re-tried each round, which is correct (if less
// efficient than true semi-naive delta evaluation) since Store.Add already
// dedupes and reports only genuine growth.
func (g *Grounder) groundToFixpoint(stmts []stmt.Statement) {
	for {
		grew := false
		for _, s := range stmts {
			if g.instantiate(s) {
				grew = true
			}
		}
		if !grew {
			return
		}
	}
}

// instantiate grounds every binding of one statement's body, reporting
// whether any new atom entered the store.
func (g *Grounder) instantiate(s stmt.Statement) bool {
	body := stmt.Body(s)
	ordered, ok := orderBody(body)
	if !ok {
		g.warnings = append(g.warnings, noSelectableLiteral(s.String()))
		return false
	}
	grew := false
	for _, b := range g.join(ordered) {
		if g.emit(s, b) {
			grew = true
		}
	}
	return grew
}

// emit instantiates the whole statement under binding b: substitutes every
// remaining term, registers derived atoms in the store, and — for
// statement kinds that survive into the final ground program — records the
// ground statement (spec §4.5 step 4-5).
func (g *Grounder) emit(s stmt.Statement, b binding) bool {
	finalBody := literal.NewLiteralCollection(b.body...)
	grew := false

	switch r := s.(type) {
	case *stmt.NormalRule:
		head := literal.SubstitutePred(b.subst, r.Head)
		if g.store.Add(head, b.certain) {
			grew = true
		}
		g.output(&stmt.NormalRule{Head: head, Body: finalBody})

	case *stmt.DisjunctiveRule:
		heads := make([]*literal.Pred, len(r.Heads))
		for i, h := range r.Heads {
			heads[i] = literal.SubstitutePred(b.subst, h)
			if g.store.Add(heads[i], false) {
				grew = true
			}
		}
		g.output(&stmt.DisjunctiveRule{Heads: heads, Body: finalBody})

	case *stmt.NPPRule:
		ground := &stmt.NPPRule{
			Name:     r.Name,
			Terms:    substituteTerms(b.subst, r.Terms),
			Outcomes: substituteTerms(b.subst, r.Outcomes),
			Body:     finalBody,
		}
		for _, h := range ground.Expand() {
			if g.store.Add(h, false) {
				grew = true
			}
		}
		g.output(ground)

	case *stmt.Constraint:
		g.output(&stmt.Constraint{Body: finalBody})
		if finalBody.Len() == 0 {
			g.warnings = append(g.warnings, errors.EmptyConstraintBody(source.Position{}))
		}

	case *stmt.WeakConstraint:
		g.output(&stmt.WeakConstraint{
			Body: finalBody, Weight: subst.Apply(b.subst, r.Weight), Level: subst.Apply(b.subst, r.Level),
			Tuple: substituteTerms(b.subst, r.Tuple),
		})

	case *stmt.OptimizeStatement:
		g.output(&stmt.OptimizeStatement{
			Body: finalBody, Maximize: r.Maximize,
			Weight: subst.Apply(b.subst, r.Weight), Level: subst.Apply(b.subst, r.Level),
			Tuple: substituteTerms(b.subst, r.Tuple),
		})

	case *stmt.AggrBaseRule:
		head := &literal.AggrBase{Ref: r.Ref, Globals: substituteTerms(b.subst, r.Head.Globals)}
		if g.store.Add(head, b.certain) {
			grew = true
		}

	case *stmt.AggrElemRule:
		head := &literal.AggrElem{
			Ref: r.Ref, ElemID: r.ElemID,
			Locals: substituteTerms(b.subst, r.Head.Locals), Globals: substituteTerms(b.subst, r.Head.Globals),
			Values: substituteTerms(b.subst, r.Head.Values),
		}
		if g.store.Add(head, b.certain) {
			grew = true
		}

	case *stmt.ChoiceBaseRule:
		globals := substituteTerms(b.subst, r.Head.Globals)
		head := &literal.ChoiceBase{Ref: r.Ref, Globals: globals}
		if g.store.Add(head, b.certain) {
			grew = true
			g.choiceBaseInstances[r.Ref] = append(g.choiceBaseInstances[r.Ref], choiceInstance{Globals: globals, Body: b.body})
		}

	case *stmt.ChoiceElemRule:
		head := &literal.ChoiceElem{
			Ref: r.Ref, ElemID: r.ElemID,
			Locals: substituteTerms(b.subst, r.Head.Locals), Globals: substituteTerms(b.subst, r.Head.Globals),
			Atom: literal.SubstitutePred(b.subst, r.Head.Atom),
		}
		if g.store.Add(head, b.certain) {
			grew = true
		}
		// The chosen atom itself is a solver-time don't-care decision, so
		// it is only ever a candidate (possible), never certain; later
		// rules referencing it (e.g. an integrity constraint over the
		// choice's own atoms) must still be instantiated against it.
		if g.store.Add(head.Atom, false) {
			grew = true
		}
	}
	return grew
}

// output appends s to the final ground program, deduped by its rendered
// text — repeated fixpoint rounds may re-derive the same ground instance.
func (g *Grounder) output(s stmt.Statement) {
	k := s.String()
	if g.seenOut[k] {
		return
	}
	g.seenOut[k] = true
	g.final = append(g.final, s)
}

// assembleChoices reconstructs one ChoiceRule per live (ref, globals)
// binding a ChoiceBaseRule derived, from the ChoiceElem atoms sharing that
// binding (spec §4.4, §4.6 step 3).
func (g *Grounder) assembleChoices() {
	refs := make([]int, 0, len(g.choiceMeta))
	for ref := range g.choiceMeta {
		refs = append(refs, ref)
	}
	sort.Ints(refs)
	for _, ref := range refs {
		meta := g.choiceMeta[ref]
		for _, inst := range g.choiceBaseInstances[ref] {
			atoms := g.choiceAtomsFor(ref, inst.Globals)
			choice := propagate.AssembleChoice(meta, inst.Globals, atoms)
			g.output(&stmt.ChoiceRule{Choice: choice, Body: literal.NewLiteralCollection(inst.Body...)})
		}
	}
}

func (g *Grounder) choiceAtomsFor(ref int, groundGlobals []term.Term) []*literal.Pred {
	key := tupleKey(groundGlobals)
	var out []*literal.Pred
	for _, rec := range g.store.ChoiceElems(ref) {
		e := rec.Lit.(*literal.ChoiceElem)
		if tupleKey(e.Globals) != key {
			continue
		}
		out = append(out, e.Atom)
	}
	return out
}
