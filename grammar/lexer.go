// Package grammar implements the concrete syntax of the ASP dialect (spec
// §6): a participle stateful lexer plus a declarative PEG grammar, the same
// structure the teacher used for its own (Kanso) concrete syntax.
package grammar

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes the ASP dialect's concrete syntax. Rule order matters:
// longer/more specific punctuation (":-", ":~", "..") must be tried before
// the single-character fallbacks they would otherwise shadow.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"BlockComment", `%\*([^*]|\*[^%])*\*%`, nil},
		{"LineComment", `%[^\n]*`, nil},

		{"String", `"(\\.|[^"\\])*"`, nil},
		{"Number", `[0-9]+`, nil},
		{"Hash", `#[a-zA-Z]+`, nil},

		// Identifiers: lowercase-leading constants/functors/keywords and
		// the reserved system letters (spec §6 fresh-name protocol); the
		// lexer accepts them and internal/parser rejects user occurrences.
		{"Ident", `[a-zαεη][a-zA-Z0-9_αεη]*`, nil},
		// Variables: uppercase-leading, or the reserved τ letter.
		{"Variable", `[A-Zτ][a-zA-Z0-9_]*`, nil},
		{"Anon", `_`, nil},

		{"Range", `\.\.`, nil},
		{"Arrow", `:-`, nil},
		{"WeakArrow", `:~`, nil},

		{"Le", `<=`, nil},
		{"Ge", `>=`, nil},
		{"Ne", `!=`, nil},
		{"Eq", `=`, nil},
		{"Lt", `<`, nil},
		{"Gt", `>`, nil},

		{"Punct", `[(){}\[\].,;:|@?]`, nil},
		{"Arith", `[+\-*/]`, nil},

		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
