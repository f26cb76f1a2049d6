package literal

import (
	"sort"
	"strings"

	"aspgrounder/internal/term"
)

// LiteralCollection is an order-preserving, duplicate-free sequence of
// literals that compares and hashes as an unordered multiset (spec §3:
// "duplicates are dropped on construction; equality is by unordered
// multiset ... Ordering is retained because it stabilises selection during
// grounding").
type LiteralCollection struct {
	literals []Literal
}

// NewLiteralCollection builds a collection from ls, dropping duplicates
// (by String() identity — every Literal variant renders a canonical,
// argument-complete form) while keeping first-occurrence order.
func NewLiteralCollection(ls ...Literal) LiteralCollection {
	seen := map[string]bool{}
	var out []Literal
	for _, l := range ls {
		k := l.String()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, l)
	}
	return LiteralCollection{literals: out}
}

// Len reports the number of distinct literals.
func (c LiteralCollection) Len() int { return len(c.literals) }

// At returns the i-th literal in insertion order.
func (c LiteralCollection) At(i int) Literal { return c.literals[i] }

// Slice returns the underlying literals in insertion order. Callers must
// not mutate the returned slice.
func (c LiteralCollection) Slice() []Literal { return c.literals }

func (c LiteralCollection) String() string {
	parts := make([]string, len(c.literals))
	for i, l := range c.literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, ",")
}

// Ground reports whether every member literal is ground.
func (c LiteralCollection) Ground() bool {
	for _, l := range c.literals {
		if !l.Ground() {
			return false
		}
	}
	return true
}

// Vars returns the free variables across every member literal, in
// first-occurrence order.
func (c LiteralCollection) Vars() []term.Term {
	var out []term.Term
	for _, l := range c.literals {
		out = append(out, l.Vars()...)
	}
	return dedupVars(out)
}

// Append returns a new collection with l added (subject to the same
// deduplication as NewLiteralCollection).
func (c LiteralCollection) Append(l Literal) LiteralCollection {
	return NewLiteralCollection(append(append([]Literal{}, c.literals...), l)...)
}

// Without returns a new collection with every literal for which drop
// returns true removed, preserving relative order.
func (c LiteralCollection) Without(drop func(Literal) bool) LiteralCollection {
	var out []Literal
	for _, l := range c.literals {
		if !drop(l) {
			out = append(out, l)
		}
	}
	return LiteralCollection{literals: out}
}

// multiset returns a canonical unordered representation of c, used by Equal
// and Hash (spec §3: "hashing uses the frozen set of members").
func (c LiteralCollection) multiset() map[string]int {
	m := map[string]int{}
	for _, l := range c.literals {
		m[l.String()]++
	}
	return m
}

// Equal reports unordered multiset equality (spec §8 property 5: "LC(a,b)
// == LC(b,a)").
func Equal(a, b LiteralCollection) bool {
	ma, mb := a.multiset(), b.multiset()
	if len(ma) != len(mb) {
		return false
	}
	for k, n := range ma {
		if mb[k] != n {
			return false
		}
	}
	return true
}

// Hash returns a string digest consistent with Equal: two collections with
// the same Hash are unordered-equal, and vice versa.
func (c LiteralCollection) Hash() string {
	m := c.multiset()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(0)
	}
	return b.String()
}
