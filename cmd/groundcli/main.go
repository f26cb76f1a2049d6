package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"aspgrounder/internal/errors"
	"aspgrounder/internal/ground"
	"aspgrounder/internal/parser"
	"aspgrounder/internal/replground"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: groundcli <file.lp> | groundcli -repl")
		os.Exit(1)
	}

	if os.Args[1] == "-repl" {
		replground.Start(os.Stdin, os.Stdout)
		return
	}

	path := os.Args[1]
	src, err := os.ReadFile(path)
	if err != nil {
		color.Red("Failed to read file: %s", err)
		os.Exit(1)
	}

	p, err := parser.ParseSource(path, string(src))
	if err != nil {
		reportParseError(string(src), err)
		os.Exit(1)
	}

	result := ground.Ground(p, ground.Options{})
	if len(result.Errors) > 0 {
		reportCompilerErrors(path, string(src), result.Errors)
		os.Exit(1)
	}

	reportCompilerErrors(path, string(src), result.Warnings)

	fmt.Print(result.Program.String())
	color.Green("✅ grounded %s: %d statement(s)", path, len(result.Program.Statements))
}

// reportParseError prints a friendly caret-style parse error message,
// following the teacher's own CLI's diagnostic style.
func reportParseError(src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("Unexpected error: %s", err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("Syntax error at unknown location: %s", err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", pos.Column-1) + "^"

	color.Red("❌ Syntax error in %s at line %d, column %d:", pos.Filename, pos.Line, pos.Column)
	fmt.Println(line)
	color.HiRed(caret)
	fmt.Printf("→ %s\n", pe.Message())
}

func reportCompilerErrors(filename, src string, errs []errors.CompilerError) {
	if len(errs) == 0 {
		return
	}
	reporter := errors.NewReporter(filename, src)
	for _, e := range errs {
		fmt.Print(reporter.FormatError(e))
	}
}
