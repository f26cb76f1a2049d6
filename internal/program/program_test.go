package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aspgrounder/internal/literal"
	"aspgrounder/internal/program"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
)

func TestProgram_StringRendersStatementsAndQuery(t *testing.T) {
	p := &program.Program{
		Statements: []stmt.Statement{
			stmt.NewFact(literal.NewPred("p", term.Number{Value: 1})),
		},
		Query: literal.NewPred("p", term.Number{Value: 1}),
	}
	out := p.String()
	assert.Contains(t, out, "p(1).")
	assert.Contains(t, out, "? p(1).")
}

func TestProgram_GroundReportsFalseWithFreeVariable(t *testing.T) {
	p := program.New(&stmt.NormalRule{
		Head: literal.NewPred("q", term.Variable{Name: "X"}),
		Body: literal.NewLiteralCollection(literal.NewPred("p", term.Variable{Name: "X"})),
	})
	assert.False(t, p.Ground())
}

func TestProgram_GroundReportsTrueWhenFullyGround(t *testing.T) {
	p := program.New(stmt.NewFact(literal.NewPred("p", term.Number{Value: 1})))
	assert.True(t, p.Ground())
}

func TestCounter_MonotoneFromZero(t *testing.T) {
	c := program.NewCounter()
	assert.Equal(t, 0, c.Next())
	assert.Equal(t, 1, c.Next())
	assert.Equal(t, 2, c.Next())
}
