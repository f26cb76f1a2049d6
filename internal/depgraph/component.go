package depgraph

import (
	"aspgrounder/internal/stmt"
)

// Component bundles one SCC of the predicate dependency graph together
// with the rules that produce atoms for it (spec §4.3).
type Component struct {
	ID         int
	Predicates []Predicate

	// RecursiveRules have their head in this component and every body
	// predicate also in this component; they are re-evaluated to a
	// fixpoint during grounding.
	RecursiveRules []stmt.Statement
	// ExitRules have their head in this component but at least one body
	// predicate in an earlier component; they are instantiated once.
	ExitRules []stmt.Statement

	// IntraEdges are edges whose endpoints are both in this component.
	IntraEdges []Edge
	// Incoming are edges from a predicate outside this component to one
	// inside it.
	Incoming []Edge

	// Stratified is true iff no IntraEdge is negative (spec §4.3, §4.6
	// glossary: "Stratified component").
	Stratified bool
}

// ComponentGraph is the SCC-condensed dependency graph: components as
// nodes, edges between distinct components of either polarity.
type ComponentGraph struct {
	Components []*Component
	// Edges are inter-component edges (From.ID != To.ID).
	Edges []ComponentEdge

	byPredicate map[Predicate]*Component
}

// ComponentOf returns the component predicate p was assigned to, or nil if
// p never appeared in any statement the graph was built from.
func (cg *ComponentGraph) ComponentOf(p Predicate) *Component {
	return cg.byPredicate[p]
}

// ComponentEdge is an edge of the component graph between two distinct
// components, carrying the polarity of the predicate edge it was built from.
type ComponentEdge struct {
	From, To *Component
	Neg      bool
}

// BuildComponentGraph computes the SCC decomposition of statements' predicate
// dependency graph and classifies every statement's rules as recursive or
// exit relative to the component their head belongs to (spec §4.3; ported
// from `original_source/src/aspy/grounder/component_graph.py`'s
// predicate-keyed positive/negative edge bookkeeping).
func BuildComponentGraph(statements []stmt.Statement) *ComponentGraph {
	g := Build(statements)
	sccs := TarjanSCC(g)

	compOf := map[Predicate]*Component{}
	cg := &ComponentGraph{byPredicate: compOf}
	for i, scc := range sccs {
		c := &Component{ID: i, Predicates: scc, Stratified: true}
		cg.Components = append(cg.Components, c)
		for _, p := range scc {
			compOf[p] = c
		}
	}

	for _, e := range g.Edges {
		from, to := compOf[e.From], compOf[e.To]
		if from == to {
			to.IntraEdges = append(to.IntraEdges, e)
			if e.Neg {
				to.Stratified = false
			}
		} else {
			to.Incoming = append(to.Incoming, e)
			cg.Edges = append(cg.Edges, ComponentEdge{From: from, To: to, Neg: e.Neg})
		}
	}

	for _, s := range statements {
		heads := stmt.HeadAtoms(s)
		if len(heads) == 0 {
			// statements without predicate head atoms (constraints, weak
			// constraints, optimize statements, and auxiliary base/element
			// rules with a placeholder head) belong to no component here;
			// the grounder places them itself (see bucketStatements in
			// internal/ground).
			continue
		}
		headComp := compOf[predOf(heads[0])]
		if headComp == nil {
			continue
		}
		occs := bodyPredicates(stmt.Body(s))
		recursive := true
		for _, occ := range occs {
			if compOf[predOf(occ.Pred)] != headComp {
				recursive = false
				break
			}
		}
		if recursive {
			headComp.RecursiveRules = append(headComp.RecursiveRules, s)
		} else {
			headComp.ExitRules = append(headComp.ExitRules, s)
		}
	}
	return cg
}

// TopoSort returns the components in an order consistent with the
// component DAG's edges (spec §4.3: "A topological sort on this DAG yields
// the instantiation order"). Because inter-SCC edges are acyclic by
// construction, this never fails. Statements without predicate head atoms
// (constraints and placeholder base/element rules) are not ordered here;
// the grounder places them itself.
func (cg *ComponentGraph) TopoSort() []*Component {
	indeg := map[int]int{}
	for _, c := range cg.Components {
		indeg[c.ID] = 0
	}
	for _, e := range cg.Edges {
		indeg[e.To.ID]++
	}
	var queue []*Component
	for _, c := range cg.Components {
		if indeg[c.ID] == 0 {
			queue = append(queue, c)
		}
	}
	byID := map[int]*Component{}
	for _, c := range cg.Components {
		byID[c.ID] = c
	}
	adj := map[int][]*Component{}
	for _, e := range cg.Edges {
		adj[e.From.ID] = append(adj[e.From.ID], e.To)
	}

	var order []*Component
	seen := map[int]bool{}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		order = append(order, c)
		for _, next := range adj[c.ID] {
			indeg[next.ID]--
			if indeg[next.ID] == 0 {
				queue = append(queue, next)
			}
		}
	}
	// Fallback: any component Tarjan numbered but not reached above (can
	// only happen if the DAG invariant was violated) is appended in SCC
	// order so no rule is silently dropped.
	if len(order) != len(cg.Components) {
		for _, c := range cg.Components {
			if !seen[c.ID] {
				order = append(order, c)
			}
		}
	}
	return order
}
