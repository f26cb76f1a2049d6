package errors

import (
	"fmt"

	"aspgrounder/internal/source"
)

// Builder provides a fluent interface for constructing CompilerErrors with
// suggestions, following the teacher's SemanticErrorBuilder shape.
type Builder struct {
	err CompilerError
}

func newBuilder(level ErrorLevel, code, message string, pos source.Position) *Builder {
	return &Builder{err: CompilerError{
		Level:    level,
		Code:     code,
		Message:  message,
		Position: pos,
		Length:   1,
	}}
}

func (b *Builder) WithLength(length int) *Builder {
	b.err.Length = length
	return b
}

func (b *Builder) WithSuggestion(message string) *Builder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

func (b *Builder) WithNote(note string) *Builder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *Builder) WithHelp(help string) *Builder {
	b.err.HelpText = help
	return b
}

func (b *Builder) Build() CompilerError {
	return b.err
}

// Parse errors

// BadVariableName reports a Variable whose name does not start uppercase or τ.
func BadVariableName(name string, pos source.Position) CompilerError {
	return newBuilder(Error, ErrorBadVariableName, fmt.Sprintf("invalid variable name %q", name), pos).
		WithLength(len(name)).
		WithHelp("variable names must begin with an uppercase letter or τ").
		Build()
}

// BadConstantName reports a SymConst/Functional whose name does not start
// lowercase or with a reserved system letter.
func BadConstantName(name string, pos source.Position) CompilerError {
	return newBuilder(Error, ErrorBadConstantName, fmt.Sprintf("invalid constant name %q", name), pos).
		WithLength(len(name)).
		WithHelp("constant and functor names must begin with a lowercase letter or α, ε, η").
		Build()
}

// ReservedName reports a user identifier that reuses a system letter
// (spec §6's fresh-name protocol: α, ε, η, τ).
func ReservedName(name string, pos source.Position) CompilerError {
	return newBuilder(Error, ErrorReservedName, fmt.Sprintf("identifier %q reuses a reserved system letter", name), pos).
		WithLength(len(name)).
		WithNote("α, ε, η, and τ are reserved for system-generated symbols").
		Build()
}

// MalformedProgram reports a parsed AST shape that violates a data-model
// invariant of spec §3 (e.g. a numeric-range term used outside a fact
// head, where it cannot be expanded without a bound ground value).
func MalformedProgram(msg string, pos source.Position) CompilerError {
	return newBuilder(Error, ErrorMalformedProgram, msg, pos).Build()
}

// Safety errors

// UnsafeVariables reports the variables that remain unsafe in a statement
// after closure (spec §4.2, §7 — report all offending statements, not just
// the first).
func UnsafeVariables(names []string, pos source.Position) CompilerError {
	b := newBuilder(Error, ErrorUnsafeVariables, fmt.Sprintf("unsafe variable(s): %v", names), pos)
	return b.WithHelp("every variable must occur in a positive body literal, or be bound by a safety rule (e.g. X = term)").Build()
}

// Arithmetic errors

// DivisionByZero reports a division-by-zero during arithmetic simplification
// or evaluation.
func DivisionByZero(pos source.Position) CompilerError {
	return newBuilder(Error, ErrorDivisionByZero, "division by zero", pos).Build()
}

// NonGroundArithmetic reports arithmetic evaluated where groundness is
// required but a term remained non-ground.
func NonGroundArithmetic(expr string, pos source.Position) CompilerError {
	return newBuilder(Error, ErrorNonGroundArith, fmt.Sprintf("arithmetic expression %q is not ground", expr), pos).Build()
}

// Internal errors

// PrecedesNonGround reports an invariant violation: precedes() called on a
// non-ground term.
func PrecedesNonGround(term string) CompilerError {
	return newBuilder(Error, ErrorPrecedesNonGround, fmt.Sprintf("precedes() called on non-ground term %q", term), source.Position{}).Build()
}

// NoSelectableLiteral reports that the instantiation loop could not select a
// literal from a rule body (spec §4.5 step 1, §4.8 SelectingLiteral→Unsafe).
func NoSelectableLiteral(rule string) CompilerError {
	return newBuilder(Error, ErrorNoSelectableLiteral, fmt.Sprintf("no selectable literal in rule: %s", rule), source.Position{}).Build()
}

// Inconsistency warnings

// EmptyConstraintBody reports a ground constraint whose body became empty
// after simplification — the program is definitely UNSAT (spec §7, E7).
func EmptyConstraintBody(pos source.Position) CompilerError {
	return newBuilder(Warning, WarnEmptyConstraintBody, "constraint body is empty after simplification: program is unsatisfiable", pos).Build()
}

// ContradictoryHead reports a disjunctive head reduced to a contradiction.
func ContradictoryHead(pos source.Position) CompilerError {
	return newBuilder(Warning, WarnContradictoryHead, "disjunctive head reduced to a contradiction", pos).Build()
}
