// Package parser bridges the concrete syntax of package grammar to the
// grounder's domain model (spec §3, §6): building the participle parser,
// then converting the resulting concrete-syntax tree into a
// program.Program, minting per-statement variable tables and rejecting
// user occurrences of the reserved fresh-name letters along the way (spec
// §6, §9).
package parser

import (
	"fmt"
	"os"

	"github.com/alecthomas/participle/v2"

	"aspgrounder/grammar"
	"aspgrounder/internal/program"
)

var astParser = buildParser()

func buildParser() *participle.Parser[grammar.Program] {
	p, err := participle.Build[grammar.Program](
		participle.Lexer(grammar.Lexer),
		participle.Elide("Whitespace", "LineComment", "BlockComment"),
		participle.UseLookahead(4),
		participle.Unquote("String"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// ParseFile reads and parses the program at path.
func ParseFile(path string) (*program.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseSource(path, string(src))
}

// ParseSource parses src (attributed to sourceName for diagnostics) into a
// Program.
func ParseSource(sourceName string, src string) (*program.Program, error) {
	ast, err := astParser.ParseString(sourceName, src)
	if err != nil {
		return nil, err
	}
	return convertProgram(sourceName, ast)
}
