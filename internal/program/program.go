// Package program implements the top-level Program value (spec §3: "A
// Program is a tuple of statements plus an optional query") and the
// fresh-id allocator threaded through rewriting and the variable table
// (spec §9: "per-grounding-run, not process-global").
package program

import (
	"strings"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/stmt"
)

// Program is a non-ground or ground ASP program: a sequence of statements
// plus an optional query atom (spec §3, §6).
type Program struct {
	Statements []stmt.Statement
	Query      *literal.Pred
}

// New constructs a Program from a statement list with no query.
func New(statements ...stmt.Statement) *Program {
	return &Program{Statements: statements}
}

func (p *Program) String() string {
	var b strings.Builder
	for _, s := range p.Statements {
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	if p.Query != nil {
		b.WriteString("? " + p.Query.String() + ".\n")
	}
	return b.String()
}

// Ground reports whether every statement in the program is ground (spec §8
// property 9: "If P is already variable-free, ground(P) = P up to
// reordering").
func (p *Program) Ground() bool {
	for _, s := range p.Statements {
		if !s.Ground() {
			return false
		}
	}
	return true
}

// Counter is a process-free, per-grounding-run monotone source of fresh
// integer ids, used for placeholder refs and element ids (spec §4.4, §5,
// §9: "must be process-wide monotone" within one run, "thread[ed] ... not
// process-global" across runs).
type Counter struct {
	next int
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter { return &Counter{} }

// Next returns the next fresh id, starting from zero and incrementing on
// every call.
func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}
