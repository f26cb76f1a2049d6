// Package depgraph implements the dependency and component graph of spec
// §4.3: predicate-level dependency edges derived from rule bodies/heads,
// Tarjan SCC decomposition into components, and the topological order that
// drives per-component grounding.
package depgraph

import (
	"fmt"
	"sort"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/stmt"
)

// Predicate is a dependency-graph node: a predicate symbol with its arity
// (spec §4.3: "Nodes are predicate symbols with arity (name, k)").
type Predicate struct {
	Name  string
	Arity int
}

func (p Predicate) String() string { return fmt.Sprintf("%s/%d", p.Name, p.Arity) }

func predOf(a *literal.Pred) Predicate { return Predicate{Name: a.Name, Arity: a.Arity()} }

// Edge is a single predicate-to-predicate dependency edge: body predicate
// p to head predicate q, positive or negative, tagged with the rule(s) that
// contribute it (spec §4.3: "tag the rule as contributing to that edge").
type Edge struct {
	From, To Predicate
	Neg      bool
	Rule     stmt.Statement
}

// Graph is the full predicate dependency graph of a program.
type Graph struct {
	Predicates []Predicate
	Edges      []Edge

	predSet map[Predicate]bool
}

// bodyOccurrence is a single predicate literal found (possibly nested) in a
// rule body, with its effective polarity.
type bodyOccurrence struct {
	Pred *literal.Pred
	Neg  bool
}

// bodyPredicates collects every predicate literal occurring in body,
// including those nested inside aggregate/choice element conditions (spec
// §4.3 operates on the pre-rewrite body, so aggregates/choices have not yet
// been decomposed into placeholders).
func bodyPredicates(body literal.LiteralCollection) []bodyOccurrence {
	var out []bodyOccurrence
	for _, l := range body.Slice() {
		out = append(out, literalPredicates(l)...)
	}
	return out
}

// BodyPredicates returns the distinct predicates occurring in body
// (including nested inside aggregate/choice element conditions), for
// callers outside this package that need to place a headless statement
// (one with no head predicate of its own) relative to the component graph
// — e.g. the grounder bucketing a rewritten AggrElemRule by the highest-
// ranked component among its body's ordinary predicates.
func BodyPredicates(body literal.LiteralCollection) []Predicate {
	seen := map[Predicate]bool{}
	var out []Predicate
	for _, occ := range bodyPredicates(body) {
		p := predOf(occ.Pred)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

func literalPredicates(l literal.Literal) []bodyOccurrence {
	switch x := l.(type) {
	case *literal.Pred:
		return []bodyOccurrence{{Pred: x, Neg: x.Naf}}
	case *literal.Aggregate:
		var out []bodyOccurrence
		for _, e := range x.Elements {
			out = append(out, bodyPredicates(e.Condition)...)
		}
		return out
	case *literal.ChoiceExpr:
		var out []bodyOccurrence
		for _, e := range x.Elements {
			out = append(out, bodyPredicates(e.Condition)...)
		}
		return out
	default:
		return nil
	}
}

// Build constructs the dependency graph of a statement set (spec §4.3:
// "For every rule, for every IDB predicate q in the head, for every
// predicate p in a body literal: add edge p → q").
func Build(statements []stmt.Statement) *Graph {
	g := &Graph{predSet: map[Predicate]bool{}}
	addPred := func(p Predicate) {
		if !g.predSet[p] {
			g.predSet[p] = true
			g.Predicates = append(g.Predicates, p)
		}
	}
	for _, s := range statements {
		heads := stmt.HeadAtoms(s)
		for _, h := range heads {
			addPred(predOf(h))
		}
		occs := bodyPredicates(stmt.Body(s))
		for _, occ := range occs {
			addPred(predOf(occ.Pred))
		}
		for _, h := range heads {
			hp := predOf(h)
			for _, occ := range occs {
				g.Edges = append(g.Edges, Edge{From: predOf(occ.Pred), To: hp, Neg: occ.Neg, Rule: s})
			}
		}
	}
	sort.Slice(g.Predicates, func(i, j int) bool {
		if g.Predicates[i].Name != g.Predicates[j].Name {
			return g.Predicates[i].Name < g.Predicates[j].Name
		}
		return g.Predicates[i].Arity < g.Predicates[j].Arity
	})
	return g
}

// isFactHead reports whether heads are occurring as a fact-like head: a
// NormalRule with no body, or any head-bearing statement whose body is
// empty (a disjunctive/choice fact) — spec §9's `edb_idb` convention,
// ported from `original_source/src/aspy/grounder/edb_idb.py`.
func isFactHead(s stmt.Statement) bool {
	if nr, ok := s.(*stmt.NormalRule); ok {
		return nr.IsFact()
	}
	return stmt.Body(s).Len() == 0
}

// PartitionEDBIDB partitions a program's predicates into EDB (appearing
// only as fact heads) and IDB (every other predicate, including those
// occurring only in bodies) — spec §4.3, ported from
// `original_source/src/aspy/grounder/edb_idb.py`.
func PartitionEDBIDB(statements []stmt.Statement) (edb, idb map[Predicate]bool) {
	allPreds := map[Predicate]bool{}
	factOnly := map[Predicate]bool{}
	sawHead := map[Predicate]bool{}
	for _, s := range statements {
		heads := stmt.HeadAtoms(s)
		fact := isFactHead(s)
		for _, h := range heads {
			p := predOf(h)
			allPreds[p] = true
			if !sawHead[p] {
				sawHead[p] = true
				factOnly[p] = fact
			} else if !fact {
				factOnly[p] = false
			}
		}
		for _, occ := range bodyPredicates(stmt.Body(s)) {
			allPreds[predOf(occ.Pred)] = true
		}
	}
	edb, idb = map[Predicate]bool{}, map[Predicate]bool{}
	for p := range allPreds {
		if sawHead[p] && factOnly[p] {
			edb[p] = true
		} else {
			idb[p] = true
		}
	}
	return edb, idb
}
