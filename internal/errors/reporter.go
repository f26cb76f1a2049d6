package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"aspgrounder/internal/source"
)

// ErrorLevel represents the severity of a diagnostic.
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError is a structured diagnostic with suggestions and context,
// corresponding to one of the six classes of spec §7 (ParseError,
// SafetyError, ArithmeticError, AssignmentError, InconsistencyWarning,
// InternalError).
type CompilerError struct {
	Level       ErrorLevel
	Code        string // Error code like G1001
	Message     string // Primary error message
	Position    source.Position
	Length      int // Length of the problematic region
	Suggestions []Suggestion
	Notes       []string
	HelpText    string
}

func (e CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Suggestion represents a suggested fix.
type Suggestion struct {
	Message     string
	Replacement string
	Position    source.Position
	Length      int
}

// Reporter renders CompilerErrors with Rust-style caret diagnostics against
// the originating source text.
type Reporter struct {
	filename string
	source   string
	lines    []string
}

// NewReporter creates a new error reporter for a file.
func NewReporter(filename, src string) *Reporter {
	return &Reporter{
		filename: filename,
		source:   src,
		lines:    strings.Split(src, "\n"),
	}
}

// FormatError formats a compiler error with Rust-like styling and suggestions.
func (r *Reporter) FormatError(err CompilerError) string {
	var result strings.Builder

	levelColor := r.getLevelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n",
			levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n",
			levelColor(string(err.Level)), err.Message))
	}

	lineNumberWidth := r.getLineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", lineNumberWidth)

	result.WriteString(fmt.Sprintf("%s %s %s\n",
		indent, dim("-->"), err.Position))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line > 1 && err.Position.Line-1 < len(r.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line-1)),
			dim("│"),
			r.lines[err.Position.Line-2]))
	}

	if err.Position.Line <= len(r.lines) && err.Position.Line > 0 {
		lineContent := r.lines[err.Position.Line-1]
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line)),
			dim("│"),
			lineContent))

		marker := r.createMarker(err.Position.Column, err.Length, err.Level)
		result.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	if err.Position.Line < len(r.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", lineNumberWidth, err.Position.Line+1)),
			dim("│"),
			r.lines[err.Position.Line]))
	}

	if len(err.Suggestions) > 0 {
		result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
		for i, suggestion := range err.Suggestions {
			suggestionColor := color.New(color.FgCyan).SprintFunc()
			if i == 0 {
				result.WriteString(fmt.Sprintf("%s %s %s: %s\n",
					indent, suggestionColor("help"), suggestionColor("try"), suggestion.Message))
			} else {
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("    "), suggestion.Message))
			}
			if suggestion.Replacement != "" {
				result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))
				replacement := strings.ReplaceAll(suggestion.Replacement, "\n", fmt.Sprintf("\n%s %s ", indent, dim("│")))
				result.WriteString(fmt.Sprintf("%s %s %s\n",
					indent, suggestionColor("│"), suggestionColor(replacement)))
			}
		}
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}

	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText))
	}

	result.WriteString("\n")
	return result.String()
}

func (r *Reporter) getLevelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Error:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func (r *Reporter) createMarker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", max(0, column-1))

	var markerColor func(...interface{}) string
	switch level {
	case Warning:
		markerColor = color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		markerColor = color.New(color.FgRed, color.Bold).SprintFunc()
	}

	marker := strings.Repeat("^", length)
	return spaces + markerColor(marker)
}

func (r *Reporter) getLineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
