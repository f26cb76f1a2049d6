package grammar

import "github.com/alecthomas/participle/v2/lexer"

// Program is the top-level concrete-syntax node: a sequence of statements
// (spec §6: facts, rules, constraints, weak constraints, directives, NPP
// rules) and optional queries.
type Program struct {
	Statements []*Statement `@@*`
}

// Statement dispatches to one of the dialect's statement shapes. Order
// matters: alternatives that commit on an unambiguous leading token
// (`?`, `#minimize`/`#maximize`, `#npp`, `:~`) are
// tried before the general Rule shape, which also accepts a bare `:-`
// (constraint) through its own optional head.
type Statement struct {
	Query    *Query    `  @@`
	Optimize *Optimize `| @@`
	NPP      *NPPStmt  `| @@`
	Weak     *WeakRule `| @@`
	Rule     *Rule     `| @@`
}

// Query is `? atom.`, the concrete syntax for Program.Query (spec §3, §6).
type Query struct {
	Atom *Atom `"?" @@ "."`
}

// Rule covers facts, normal rules, disjunctive rules, choice rules, and
// constraints — every statement whose body is an ordinary literal list
// (spec §3, §6).
type Rule struct {
	Head *Head  `@@?`
	Body *Body  `[ ":-" @@ ]`
	Dot  string `"."`
}

// Head is either a disjunction of atoms or a choice expression (spec §6:
// "disjunctive heads H1 | H2 | …", "choice (l {e1;…;ek} u :- B.)").
type Head struct {
	Choice *ChoiceHead `  @@`
	Disj   *DisjHead   `| @@`
}

// DisjHead is one or more atoms disjoined with "|"; a single atom with no
// "|" is a plain (possibly-fact) rule head.
type DisjHead struct {
	Atoms []*Atom `@@ { "|" @@ }`
}

// ChoiceHead is `l {e1;…;ek} u`, bounds restricted to numbers or variables
// to keep the grammar LL(1)-distinguishable from a disjunctive atom head
// (spec §6).
type ChoiceHead struct {
	Lower    *ChoiceBound     `@@?`
	Elements []*ChoiceElement `"{" [ @@ { ";" @@ } ] "}"`
	Upper    *ChoiceBound     `@@?`
}

// ChoiceBound is a numeric or variable choice-count bound.
type ChoiceBound struct {
	Pos    lexer.Position
	Number *int64 `  @Number`
	Var    string `| @Variable`
}

// ChoiceElement is `atom [: cond]` inside a choice's braces (spec §4.4).
type ChoiceElement struct {
	Atom      *Atom      `@@`
	Condition []*Literal `[ ":" @@ { "," @@ } ]`
}

// Body is an ordered, comma-separated literal list (spec §3).
type Body struct {
	Literals []*Literal `@@ { "," @@ }`
}

// WeakRule is `:~ B. [w@l, tuple]` (spec §6).
type WeakRule struct {
	Body   *Body   `":~" @@ "."`
	Weight *Term   `"[" @@ "@"`
	Level  *Term   `@@`
	Tuple  []*Term `{ "," @@ } "]"`
}

// Optimize is `#minimize{w@l,tuple : B}.` / `#maximize{...}.` (spec §9 Open
// Questions: data model only).
type Optimize struct {
	Directive string  `@("#minimize" | "#maximize")`
	Weight    *Term   `"{" @@ "@"`
	Level     *Term   `@@`
	Tuple     []*Term `{ "," @@ }`
	Body      *Body   `[ ":" @@ ] "}" "."`
}

// NPPStmt is `#npp(name(terms), [outcomes]).` (spec §4.7, §6).
type NPPStmt struct {
	Pos      lexer.Position
	Name     string  `"#npp" "(" @Ident`
	Terms    []*Term `"(" [ @@ { "," @@ } ] ")" ","`
	Outcomes []*Term `"[" [ @@ { "," @@ } ] "]" ")"`
	Body     *Body   `[ ":-" @@ ] "."`
}

// Atom is a (possibly classically-negated) predicate application without
// NAF, used in heads, choice elements, and queries.
type Atom struct {
	Pos   lexer.Position
	Neg   bool    `[ @"-" ]`
	Name  string  `@Ident`
	Terms []*Term `[ "(" @@ { "," @@ } ")" ]`
}

// Literal dispatches to the body-literal shapes of spec §3: aggregates,
// comparisons, and predicate literals (including NAF/classical negation).
// Aggregate is tried before Comp/Pred since it begins with an unambiguous
// optional guard + "#count"/"#sum"/"#min"/"#max" token; Comp is tried
// before Pred so that a leading term followed by a relop is not first
// consumed as a (malformed) predicate name.
type Literal struct {
	Aggregate *AggregateLit `  @@`
	Comp      *CompLit      `| @@`
	Pred      *PredLit      `| @@`
}

// PredLit is `[not] [-] name[(terms)]` (spec §3, §6).
type PredLit struct {
	Pos   lexer.Position
	Naf   bool    `[ @"not" ]`
	Neg   bool    `[ @"-" ]`
	Name  string  `@Ident`
	Terms []*Term `[ "(" @@ { "," @@ } ")" ]`
}

// CompLit is `term relop term` (spec §3, §6).
type CompLit struct {
	Left  *Term  `@@`
	Op    string `@("!=" | "<=" | ">=" | "=" | "<" | ">")`
	Right *Term  `@@`
}

// AggregateLit is `[not] [guard] #func{elements} [guard]` (spec §3, §6).
type AggregateLit struct {
	Naf        bool            `[ @"not" ]`
	LeftGuard  *GuardLeft      `@@?`
	Func       string          `@("#count" | "#sum" | "#min" | "#max")`
	Elements   []*AggrElement  `"{" [ @@ { ";" @@ } ] "}"`
	RightGuard *GuardRight     `@@?`
}

// GuardLeft is `term relop` appearing to the left of an aggregate/choice
// (the relop is stored as written; internal/parser flips it per spec §9's
// guard-normalisation convention).
type GuardLeft struct {
	Bound *Term  `@@`
	Op    string `@("!=" | "<=" | ">=" | "=" | "<" | ">")`
}

// GuardRight is `relop term` appearing to the right of an aggregate/choice.
type GuardRight struct {
	Op    string `@("!=" | "<=" | ">=" | "=" | "<" | ">")`
	Bound *Term  `@@`
}

// AggrElement is `terms [: literals]` (spec §6).
type AggrElement struct {
	Terms     []*Term    `@@ { "," @@ }`
	Condition []*Literal `[ ":" @@ { "," @@ } ]`
}

// Term is the top of the arithmetic-expression grammar (spec §3, §6:
// "arithmetic (+ - * /, unary minus)"), left-associative over AddExpr, with
// an optional ".." upper bound turning it into a numeric-range term (spec
// E4: "node(1..6)." expands to node(1), ..., node(6)).
type Term struct {
	Add   *AddExpr `@@`
	Upper *AddExpr `[ ".." @@ ]`
}

// AddExpr handles "+"/"-" at the lowest precedence.
type AddExpr struct {
	Left  *MulExpr   `@@`
	Rest  []*AddOp   `{ @@ }`
}

type AddOp struct {
	Op    string   `@("+" | "-")`
	Right *MulExpr `@@`
}

// MulExpr handles "*"/"/" above AddExpr.
type MulExpr struct {
	Left *UnaryExpr `@@`
	Rest []*MulOp   `{ @@ }`
}

type MulOp struct {
	Op    string     `@("*" | "/")`
	Right *UnaryExpr `@@`
}

// UnaryExpr handles unary minus (spec §3: "Minus(Term)").
type UnaryExpr struct {
	Neg   bool    `[ @"-" ]`
	Value *Atomic `@@`
}

// Atomic is a leaf term: a literal, variable, anonymous variable, the
// sentinels #inf/#sup, a parenthesised sub-expression, or a functor
// application (spec §3).
type Atomic struct {
	Pos    lexer.Position
	Number *int64   `  @Number`
	Str    *string  `| @String`
	Inf    bool     `| @"#inf"`
	Sup    bool     `| @"#sup"`
	Anon   bool     `| @Anon`
	Var    string   `| @Variable`
	Func   *Functor `| @@`
	Paren  *Term    `| "(" @@ ")"`
}

// Functor is `name[(args)]` — a SymConst when Args is empty, a Functional
// application otherwise (spec §3: "Arity-zero functionals are
// indistinguishable from SymConst in concrete syntax").
type Functor struct {
	Pos  lexer.Position
	Name string  `@Ident`
	Args []*Term `[ "(" @@ { "," @@ } ")" ]`
}
