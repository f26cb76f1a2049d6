package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"aspgrounder/internal/source"
)

func TestFormatError_IncludesCodeAndMessage(t *testing.T) {
	r := NewReporter("prog.lp", "p(X) :- q(X).\n")
	err := UnsafeVariables([]string{"X"}, source.Position{Filename: "prog.lp", Line: 1, Column: 1})

	out := r.FormatError(err)

	assert.Contains(t, out, ErrorUnsafeVariables)
	assert.Contains(t, out, "unsafe variable")
	assert.Contains(t, out, "prog.lp:1:1")
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(WarnEmptyConstraintBody))
	assert.True(t, IsWarning(WarnContradictoryHead))
	assert.False(t, IsWarning(ErrorUnsafeVariables))
	assert.False(t, IsWarning(ErrorDivisionByZero))
}

func TestCompilerError_Error(t *testing.T) {
	err := DivisionByZero(source.Position{Filename: "a.lp", Line: 2, Column: 3})
	assert.Equal(t, "error[G2001]: division by zero", err.Error())
}
