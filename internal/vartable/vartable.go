// Package vartable implements the per-statement variable registry of spec
// §3/§9: user variables, anonymous variables, and arithmetic variables,
// plus the fresh-name generators the rewriter and parser rely on.
package vartable

import (
	"fmt"

	"aspgrounder/internal/term"
)

// Table owns the variables of a single statement being built. It is not
// shared across statements — each statement constructs its own Table as it
// is parsed or rewritten (spec §9: "global counters ... must be thread[ed]
// through the rewriter and variable table", here per-statement rather than
// process-global).
type Table struct {
	userVars     map[string]term.Variable
	order        []string
	anonCounter  int
	arithCounter int
	arithVars    []*term.ArithVariable
}

// New creates an empty variable table.
func New() *Table {
	return &Table{userVars: make(map[string]term.Variable)}
}

// Variable interns a user variable by name, returning the same term.Variable
// value for repeated calls with the same name within this table.
func (t *Table) Variable(name string) term.Variable {
	if v, ok := t.userVars[name]; ok {
		return v
	}
	v := term.Variable{Name: name}
	t.userVars[name] = v
	t.order = append(t.order, name)
	return v
}

// FreshAnon mints a new anonymous variable ("_"), distinct from every other
// anonymous variable minted by this table.
func (t *Table) FreshAnon() term.AnonVariable {
	v := term.AnonVariable{ID: t.anonCounter}
	t.anonCounter++
	return v
}

// FreshArith mints a new ArithVariable standing in for src, implementing
// term.Allocator for use by term.ReplaceArith.
func (t *Table) FreshArith(src term.Term) *term.ArithVariable {
	v := &term.ArithVariable{ID: t.arithCounter, Source: src}
	t.arithCounter++
	t.arithVars = append(t.arithVars, v)
	return v
}

// Variables returns every user variable registered in this table, in
// first-registration order.
func (t *Table) Variables() []term.Variable {
	out := make([]term.Variable, len(t.order))
	for i, name := range t.order {
		out[i] = t.userVars[name]
	}
	return out
}

// ArithVariables returns every arithmetic variable minted by this table, in
// minting order.
func (t *Table) ArithVariables() []*term.ArithVariable {
	return t.arithVars
}

// Has reports whether a user variable of the given name has been registered.
func (t *Table) Has(name string) bool {
	_, ok := t.userVars[name]
	return ok
}

// String renders the table for debugging.
func (t *Table) String() string {
	return fmt.Sprintf("vartable{users=%d anon=%d arith=%d}", len(t.userVars), t.anonCounter, t.arithCounter)
}
