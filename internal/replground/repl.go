// Package replground implements an interactive read-eval-print loop over
// the grounder: each line is parsed as a statement, accumulated into a
// running program, and the whole program is re-grounded and printed,
// mirroring the teacher's own line-at-a-time repl (spec is otherwise
// silent on interactive use; this is an ambient-stack convenience, not a
// spec module).
package replground

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"aspgrounder/internal/ground"
	"aspgrounder/internal/parser"
	"aspgrounder/internal/program"
	"aspgrounder/internal/stmt"
)

const prompt = "?- "

// Start runs the loop, reading lines from in and writing prompts, echoed
// ground programs, and diagnostics to out.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var statements []stmt.Statement

	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		p, err := parser.ParseSource("<repl>", line)
		if err != nil {
			color.New(color.FgRed).Fprintf(out, "syntax error: %s\n", err)
			continue
		}

		trial := append(append([]stmt.Statement{}, statements...), p.Statements...)
		result := ground.Ground(&program.Program{Statements: trial}, ground.Options{})
		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				color.New(color.FgRed).Fprintln(out, e.Error())
			}
			continue
		}

		statements = trial
		for _, w := range result.Warnings {
			color.New(color.FgYellow).Fprintln(out, w.Error())
		}
		fmt.Fprint(out, result.Program.String())
	}
}
