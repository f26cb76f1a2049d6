package literal

import (
	"fmt"

	"aspgrounder/internal/term"
)

// AggregateFunction enumerates the aggregate functions of the dialect (spec
// §3: "AggregateFunction ∈ {Count, Sum, Min, Max}"). Each carries a neutral
// base value used when the aggregate's element set is empty.
type AggregateFunction int

const (
	Count AggregateFunction = iota
	Sum
	Min
	Max
)

func (f AggregateFunction) String() string {
	switch f {
	case Count:
		return "#count"
	case Sum:
		return "#sum"
	case Min:
		return "#min"
	case Max:
		return "#max"
	default:
		return "?"
	}
}

// Base returns the neutral value of the aggregate function: the value it
// evaluates to over the empty multiset (spec §3: "Count:0, Sum:0,
// Min:Supremum, Max:Infimum").
func (f AggregateFunction) Base() term.Term {
	switch f {
	case Count, Sum:
		return term.Number{Value: 0}
	case Min:
		return term.Supremum{}
	case Max:
		return term.Infimum{}
	default:
		return term.Number{Value: 0}
	}
}

// Eval evaluates the aggregate function over a finite multiset of ground
// element tuples, each tuple's first term standing for the value
// contributed by that element (the element's own term list for Count, the
// first term for Sum/Min/Max, per common ASP aggregate semantics).
func (f AggregateFunction) Eval(elements [][]term.Term) (term.Term, error) {
	switch f {
	case Count:
		return term.Number{Value: int64(len(elements))}, nil
	case Sum:
		var total int64
		for _, e := range elements {
			if len(e) == 0 {
				continue
			}
			n, ok := e[0].(term.Number)
			if !ok {
				return nil, fmt.Errorf("#sum: element value %v is not a number", e[0])
			}
			total += n.Value
		}
		return term.Number{Value: total}, nil
	case Min:
		acc := f.Base()
		for _, e := range elements {
			if len(e) == 0 {
				continue
			}
			m, err := term.Min(acc, e[0])
			if err != nil {
				return nil, err
			}
			acc = m
		}
		return acc, nil
	case Max:
		acc := f.Base()
		for _, e := range elements {
			if len(e) == 0 {
				continue
			}
			m, err := term.Max(acc, e[0])
			if err != nil {
				return nil, err
			}
			acc = m
		}
		return acc, nil
	default:
		return nil, fmt.Errorf("unknown aggregate function %v", f)
	}
}

// Element is a single aggregate element: `terms : literals` (spec §6:
// "#count|#sum|#min|#max{ terms : literals ; … }"). Terms is the value
// tuple contributed by the element when its condition holds; Condition is
// the literal collection that must hold for the element to be counted.
type Element struct {
	Terms     []term.Term
	Condition LiteralCollection
}

func (e Element) String() string {
	s := ""
	for i, t := range e.Terms {
		if i > 0 {
			s += ","
		}
		s += t.String()
	}
	if len(e.Condition.literals) > 0 {
		s += " : " + e.Condition.String()
	}
	return s
}

// Ground reports whether every term and condition literal of the element is
// ground.
func (e Element) Ground() bool {
	for _, t := range e.Terms {
		if !t.Ground() {
			return false
		}
	}
	return e.Condition.Ground()
}

// Vars returns the free variables of the element (its terms and its
// condition's literals), local variables first in the order they occur in
// Terms, followed by any additional variables that occur only in Condition.
func (e Element) Vars() []term.Term {
	var out []term.Term
	seen := map[string]bool{}
	add := func(vs []term.Term) {
		for _, v := range vs {
			if !seen[v.String()] {
				seen[v.String()] = true
				out = append(out, v)
			}
		}
	}
	for _, t := range e.Terms {
		add(term.Vars(t))
	}
	add(e.Condition.Vars())
	return out
}
