package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"aspgrounder/grammar"
	"aspgrounder/internal/errors"
	"aspgrounder/internal/literal"
	"aspgrounder/internal/program"
	"aspgrounder/internal/source"
	"aspgrounder/internal/stmt"
	"aspgrounder/internal/term"
	"aspgrounder/internal/vartable"
)

// pos converts a participle lexer position into the grounder's
// file/line/column diagnostic position (spec §7's CompilerError carries
// one of these for every reported error).
func pos(filename string, p lexer.Position) source.Position {
	return source.Position{Filename: filename, Line: p.Line, Column: p.Column}
}

// convertProgram walks the concrete-syntax tree produced by the participle
// parser into the grounder's domain model, building one fresh
// vartable.Table per statement (spec §9: "per-statement, not
// process-global").
func convertProgram(filename string, ast *grammar.Program) (*program.Program, error) {
	var statements []stmt.Statement
	var query *literal.Pred
	for _, s := range ast.Statements {
		switch {
		case s.Query != nil:
			vt := vartable.New()
			q, err := convertAtom(filename, s.Query.Atom, vt)
			if err != nil {
				return nil, err
			}
			query = q
		case s.Optimize != nil:
			st, err := convertOptimize(filename, s.Optimize)
			if err != nil {
				return nil, err
			}
			statements = append(statements, st)
		case s.NPP != nil:
			st, err := convertNPP(filename, s.NPP)
			if err != nil {
				return nil, err
			}
			statements = append(statements, st)
		case s.Weak != nil:
			st, err := convertWeak(filename, s.Weak)
			if err != nil {
				return nil, err
			}
			statements = append(statements, st)
		case s.Rule != nil:
			sts, err := convertRule(filename, s.Rule)
			if err != nil {
				return nil, err
			}
			statements = append(statements, sts...)
		default:
			return nil, errors.MalformedProgram("statement has no recognized alternative", source.Position{Filename: filename})
		}
	}
	return &program.Program{Statements: statements, Query: query}, nil
}

// checkConstName rejects a SymConst/Functional/predicate identifier that
// reuses one of the system's reserved fresh-name letters (α, ε, η) per
// spec §6's fresh-name protocol; those names are reserved for symbols the
// rewriter and propagator mint internally.
func checkConstName(filename, name string, p lexer.Position) error {
	if name == "" {
		return nil
	}
	switch []rune(name)[0] {
	case 'α', 'ε', 'η':
		return errors.ReservedName(name, pos(filename, p))
	}
	return nil
}

// checkVarName rejects a user Variable that reuses τ, reserved for
// system-minted ArithVariables (spec §3, §6, §9).
func checkVarName(filename, name string, p lexer.Position) error {
	if name == "" {
		return nil
	}
	if []rune(name)[0] == 'τ' {
		return errors.ReservedName(name, pos(filename, p))
	}
	return nil
}

// convertRule converts a grammar.Rule into one or more statements: ordinarily
// exactly one, but a bodyless single-atom fact head containing numeric-range
// term arguments (spec E4: "node(1..6).") expands into one fact per value
// in the cartesian product of its ranges (spec §9 Open Question decision:
// range sugar is a fact-head-only convenience, not a Term variant — see
// DESIGN.md).
func convertRule(filename string, r *grammar.Rule) ([]stmt.Statement, error) {
	body := r.Body

	if r.Head == nil {
		vt := vartable.New()
		b, err := convertBody(filename, body, vt)
		if err != nil {
			return nil, err
		}
		return []stmt.Statement{&stmt.Constraint{Body: b}}, nil
	}

	if r.Head.Choice != nil {
		vt := vartable.New()
		choice, err := convertChoiceHead(filename, r.Head.Choice, vt)
		if err != nil {
			return nil, err
		}
		b, err := convertBody(filename, body, vt)
		if err != nil {
			return nil, err
		}
		return []stmt.Statement{&stmt.ChoiceRule{Choice: choice, Body: b}}, nil
	}

	disj := r.Head.Disj
	if body == nil && len(disj.Atoms) == 1 {
		if facts, ok, err := expandRangeFacts(filename, disj.Atoms[0]); err != nil {
			return nil, err
		} else if ok {
			return facts, nil
		}
	}

	vt := vartable.New()
	heads := make([]*literal.Pred, len(disj.Atoms))
	for i, a := range disj.Atoms {
		h, err := convertAtom(filename, a, vt)
		if err != nil {
			return nil, err
		}
		heads[i] = h
	}
	b, err := convertBody(filename, body, vt)
	if err != nil {
		return nil, err
	}
	if len(heads) == 1 {
		return []stmt.Statement{&stmt.NormalRule{Head: heads[0], Body: b}}, nil
	}
	return []stmt.Statement{&stmt.DisjunctiveRule{Heads: heads, Body: b}}, nil
}

func convertBody(filename string, b *grammar.Body, vt *vartable.Table) (literal.LiteralCollection, error) {
	if b == nil {
		return literal.NewLiteralCollection(), nil
	}
	lits := make([]literal.Literal, len(b.Literals))
	for i, l := range b.Literals {
		lit, err := convertLiteral(filename, l, vt)
		if err != nil {
			return literal.LiteralCollection{}, err
		}
		lits[i] = lit
	}
	return literal.NewLiteralCollection(lits...), nil
}

func convertLiteral(filename string, l *grammar.Literal, vt *vartable.Table) (literal.Literal, error) {
	switch {
	case l.Aggregate != nil:
		return convertAggregate(filename, l.Aggregate, vt)
	case l.Comp != nil:
		return convertComp(filename, l.Comp, vt)
	case l.Pred != nil:
		return convertPredLit(filename, l.Pred, vt)
	default:
		return nil, errors.MalformedProgram("literal has no recognized alternative", source.Position{Filename: filename})
	}
}

func convertPredLit(filename string, p *grammar.PredLit, vt *vartable.Table) (*literal.Pred, error) {
	if err := checkConstName(filename, p.Name, p.Pos); err != nil {
		return nil, err
	}
	terms, err := convertTerms(filename, p.Terms, vt)
	if err != nil {
		return nil, err
	}
	return &literal.Pred{Name: p.Name, Neg: p.Neg, Naf: p.Naf, Terms: terms}, nil
}

func convertAtom(filename string, a *grammar.Atom, vt *vartable.Table) (*literal.Pred, error) {
	if err := checkConstName(filename, a.Name, a.Pos); err != nil {
		return nil, err
	}
	terms, err := convertTerms(filename, a.Terms, vt)
	if err != nil {
		return nil, err
	}
	return &literal.Pred{Name: a.Name, Neg: a.Neg, Terms: terms}, nil
}

func convertComp(filename string, c *grammar.CompLit, vt *vartable.Table) (*literal.Comp, error) {
	left, err := convertTerm(filename, c.Left, vt)
	if err != nil {
		return nil, err
	}
	right, err := convertTerm(filename, c.Right, vt)
	if err != nil {
		return nil, err
	}
	op, err := convertRelOp(c.Op)
	if err != nil {
		return nil, err
	}
	return &literal.Comp{Op: op, Left: left, Right: right}, nil
}

func convertRelOp(op string) (literal.RelOp, error) {
	switch op {
	case "=":
		return literal.Eq, nil
	case "!=":
		return literal.Ne, nil
	case "<":
		return literal.Lt, nil
	case ">":
		return literal.Gt, nil
	case "<=":
		return literal.Le, nil
	case ">=":
		return literal.Ge, nil
	default:
		return 0, errors.MalformedProgram("unknown relational operator "+op, source.Position{})
	}
}

func convertAggregate(filename string, a *grammar.AggregateLit, vt *vartable.Table) (*literal.Aggregate, error) {
	fn, err := convertAggrFunc(a.Func)
	if err != nil {
		return nil, err
	}
	elems := make([]literal.Element, len(a.Elements))
	for i, e := range a.Elements {
		terms, err := convertTerms(filename, e.Terms, vt)
		if err != nil {
			return nil, err
		}
		cond, err := convertLiterals(filename, e.Condition, vt)
		if err != nil {
			return nil, err
		}
		elems[i] = literal.Element{Terms: terms, Condition: literal.NewLiteralCollection(cond...)}
	}
	var left, right *literal.Guard
	if a.LeftGuard != nil {
		bound, err := convertTerm(filename, a.LeftGuard.Bound, vt)
		if err != nil {
			return nil, err
		}
		op, err := convertRelOp(a.LeftGuard.Op)
		if err != nil {
			return nil, err
		}
		g := literal.NewGuard(op, bound, true)
		left = &g
	}
	if a.RightGuard != nil {
		bound, err := convertTerm(filename, a.RightGuard.Bound, vt)
		if err != nil {
			return nil, err
		}
		op, err := convertRelOp(a.RightGuard.Op)
		if err != nil {
			return nil, err
		}
		g := literal.NewGuard(op, bound, false)
		right = &g
	}
	return &literal.Aggregate{Func: fn, Elements: elems, LeftGuard: left, RightGuard: right, Naf: a.Naf}, nil
}

func convertAggrFunc(s string) (literal.AggregateFunction, error) {
	switch s {
	case "#count":
		return literal.Count, nil
	case "#sum":
		return literal.Sum, nil
	case "#min":
		return literal.Min, nil
	case "#max":
		return literal.Max, nil
	default:
		return 0, errors.MalformedProgram("unknown aggregate function "+s, source.Position{})
	}
}

func convertLiterals(filename string, ls []*grammar.Literal, vt *vartable.Table) ([]literal.Literal, error) {
	out := make([]literal.Literal, len(ls))
	for i, l := range ls {
		lit, err := convertLiteral(filename, l, vt)
		if err != nil {
			return nil, err
		}
		out[i] = lit
	}
	return out, nil
}

func convertChoiceHead(filename string, c *grammar.ChoiceHead, vt *vartable.Table) (*literal.ChoiceExpr, error) {
	elems := make([]literal.ChoiceElement, len(c.Elements))
	for i, e := range c.Elements {
		atom, err := convertAtom(filename, e.Atom, vt)
		if err != nil {
			return nil, err
		}
		cond, err := convertLiterals(filename, e.Condition, vt)
		if err != nil {
			return nil, err
		}
		elems[i] = literal.ChoiceElement{Atom: atom, Condition: literal.NewLiteralCollection(cond...)}
	}
	var left, right *literal.Guard
	if c.Lower != nil {
		bound, err := convertChoiceBound(filename, c.Lower, vt)
		if err != nil {
			return nil, err
		}
		g := literal.NewGuard(literal.Le, bound, true)
		left = &g
	}
	if c.Upper != nil {
		bound, err := convertChoiceBound(filename, c.Upper, vt)
		if err != nil {
			return nil, err
		}
		g := literal.NewGuard(literal.Le, bound, false)
		right = &g
	}
	return &literal.ChoiceExpr{Elements: elems, LeftGuard: left, RightGuard: right}, nil
}

func convertChoiceBound(filename string, b *grammar.ChoiceBound, vt *vartable.Table) (term.Term, error) {
	if b.Number != nil {
		return term.Number{Value: *b.Number}, nil
	}
	if err := checkVarName(filename, b.Var, b.Pos); err != nil {
		return nil, err
	}
	return vt.Variable(b.Var), nil
}

func convertWeak(filename string, w *grammar.WeakRule) (*stmt.WeakConstraint, error) {
	vt := vartable.New()
	b, err := convertBody(filename, w.Body, vt)
	if err != nil {
		return nil, err
	}
	weight, err := convertTerm(filename, w.Weight, vt)
	if err != nil {
		return nil, err
	}
	level, err := convertTerm(filename, w.Level, vt)
	if err != nil {
		return nil, err
	}
	tuple, err := convertTerms(filename, w.Tuple, vt)
	if err != nil {
		return nil, err
	}
	return &stmt.WeakConstraint{Body: b, Weight: weight, Level: level, Tuple: tuple}, nil
}

func convertOptimize(filename string, o *grammar.Optimize) (*stmt.OptimizeStatement, error) {
	vt := vartable.New()
	weight, err := convertTerm(filename, o.Weight, vt)
	if err != nil {
		return nil, err
	}
	level, err := convertTerm(filename, o.Level, vt)
	if err != nil {
		return nil, err
	}
	tuple, err := convertTerms(filename, o.Tuple, vt)
	if err != nil {
		return nil, err
	}
	b, err := convertBody(filename, o.Body, vt)
	if err != nil {
		return nil, err
	}
	return &stmt.OptimizeStatement{
		Body:     b,
		Maximize: o.Directive == "#maximize",
		Weight:   weight,
		Level:    level,
		Tuple:    tuple,
	}, nil
}

func convertNPP(filename string, n *grammar.NPPStmt) (*stmt.NPPRule, error) {
	if err := checkConstName(filename, n.Name, n.Pos); err != nil {
		return nil, err
	}
	vt := vartable.New()
	terms, err := convertTerms(filename, n.Terms, vt)
	if err != nil {
		return nil, err
	}
	outcomes, err := convertTerms(filename, n.Outcomes, vt)
	if err != nil {
		return nil, err
	}
	b, err := convertBody(filename, n.Body, vt)
	if err != nil {
		return nil, err
	}
	return &stmt.NPPRule{Name: n.Name, Terms: terms, Outcomes: outcomes, Body: b}, nil
}

func convertTerms(filename string, ts []*grammar.Term, vt *vartable.Table) ([]term.Term, error) {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		v, err := convertTerm(filename, t, vt)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// convertTerm converts a concrete-syntax Term into the algebraic term
// language (spec §3), simplifying arithmetic and replacing any maximal
// non-ground arithmetic sub-term with a fresh ArithVariable minted by vt
// (spec §3, §9). A ".." range suffix is rejected here: it is only legal as
// a fact-head argument, handled earlier by expandRangeFacts.
func convertTerm(filename string, t *grammar.Term, vt *vartable.Table) (term.Term, error) {
	if t.Upper != nil {
		return nil, errors.MalformedProgram(
			"numeric-range terms (\"L..U\") are only supported as fact-head arguments",
			source.Position{Filename: filename})
	}
	raw, err := convertAddExpr(filename, t.Add, vt)
	if err != nil {
		return nil, err
	}
	simplified, err := term.Simplify(raw)
	if err != nil {
		return nil, err
	}
	return term.ReplaceArith(simplified, vt), nil
}

func convertAddExpr(filename string, a *grammar.AddExpr, vt *vartable.Table) (term.Term, error) {
	left, err := convertMulExpr(filename, a.Left, vt)
	if err != nil {
		return nil, err
	}
	for _, op := range a.Rest {
		right, err := convertMulExpr(filename, op.Right, vt)
		if err != nil {
			return nil, err
		}
		var arithOp term.ArithOp
		if op.Op == "+" {
			arithOp = term.Add
		} else {
			arithOp = term.Sub
		}
		left = &term.Arith{Op: arithOp, Left: left, Right: right}
	}
	return left, nil
}

// convertUnaryExpr handles unary minus over an Atomic leaf.
func convertUnaryExpr(filename string, u *grammar.UnaryExpr, vt *vartable.Table) (term.Term, error) {
	val, err := convertAtomic(filename, u.Value, vt)
	if err != nil {
		return nil, err
	}
	if u.Neg {
		return &term.Minus{Operand: val}, nil
	}
	return val, nil
}

func convertMulExpr(filename string, m *grammar.MulExpr, vt *vartable.Table) (term.Term, error) {
	left, err := convertUnaryExpr(filename, m.Left, vt)
	if err != nil {
		return nil, err
	}
	for _, op := range m.Rest {
		right, err := convertUnaryExpr(filename, op.Right, vt)
		if err != nil {
			return nil, err
		}
		var arithOp term.ArithOp
		if op.Op == "*" {
			arithOp = term.Mul
		} else {
			arithOp = term.Div
		}
		left = &term.Arith{Op: arithOp, Left: left, Right: right}
	}
	return left, nil
}

func convertAtomic(filename string, a *grammar.Atomic, vt *vartable.Table) (term.Term, error) {
	switch {
	case a.Number != nil:
		return term.Number{Value: *a.Number}, nil
	case a.Str != nil:
		return term.String{Value: *a.Str}, nil
	case a.Inf:
		return term.Infimum{}, nil
	case a.Sup:
		return term.Supremum{}, nil
	case a.Anon:
		return vt.FreshAnon(), nil
	case a.Var != "":
		if err := checkVarName(filename, a.Var, a.Pos); err != nil {
			return nil, err
		}
		return vt.Variable(a.Var), nil
	case a.Func != nil:
		if err := checkConstName(filename, a.Func.Name, a.Func.Pos); err != nil {
			return nil, err
		}
		args, err := convertTerms(filename, a.Func.Args, vt)
		if err != nil {
			return nil, err
		}
		if len(args) == 0 {
			return term.SymConst{Name: a.Func.Name}, nil
		}
		return &term.Functional{Name: a.Func.Name, Args: args}, nil
	case a.Paren != nil:
		return convertTerm(filename, a.Paren, vt)
	default:
		return nil, errors.MalformedProgram("empty atomic term", pos(filename, a.Pos))
	}
}

// expandRangeFacts expands a bodyless single-atom fact head whose
// arguments include one or more ".." numeric-range terms into one fact per
// combination of concrete values (spec E4: "node(1..6)." stands for
// node(1)....node(6).). ok is false when atom has no range argument, in
// which case the caller should fall through to the ordinary conversion
// path.
func expandRangeFacts(filename string, atom *grammar.Atom) (facts []stmt.Statement, ok bool, err error) {
	hasRange := false
	for _, t := range atom.Terms {
		if t.Upper != nil {
			hasRange = true
			break
		}
	}
	if !hasRange {
		return nil, false, nil
	}
	if err := checkConstName(filename, atom.Name, atom.Pos); err != nil {
		return nil, false, err
	}

	combos := [][]term.Term{{}}
	for _, t := range atom.Terms {
		var column []term.Term
		if t.Upper != nil {
			low, err := evalRangeBound(filename, t.Add)
			if err != nil {
				return nil, false, err
			}
			high, err := evalRangeBound(filename, t.Upper)
			if err != nil {
				return nil, false, err
			}
			for v := low; v <= high; v++ {
				column = append(column, term.Number{Value: v})
			}
		} else {
			vt := vartable.New()
			v, err := convertTerm(filename, t, vt)
			if err != nil {
				return nil, false, err
			}
			if !v.Ground() {
				return nil, false, errors.MalformedProgram(
					"fact-head argument alongside a numeric-range term must be ground", source.Position{Filename: filename})
			}
			column = []term.Term{v}
		}
		var next [][]term.Term
		for _, combo := range combos {
			for _, v := range column {
				nc := make([]term.Term, len(combo)+1)
				copy(nc, combo)
				nc[len(combo)] = v
				next = append(next, nc)
			}
		}
		combos = next
	}

	facts = make([]stmt.Statement, len(combos))
	for i, combo := range combos {
		facts[i] = stmt.NewFact(&literal.Pred{Name: atom.Name, Neg: atom.Neg, Terms: combo})
	}
	return facts, true, nil
}

// evalRangeBound evaluates a range endpoint, which must simplify to a
// ground Number (spec E4's example bounds are plain integer literals).
func evalRangeBound(filename string, a *grammar.AddExpr) (int64, error) {
	vt := vartable.New()
	raw, err := convertAddExpr(filename, a, vt)
	if err != nil {
		return 0, err
	}
	simplified, err := term.Simplify(raw)
	if err != nil {
		return 0, err
	}
	n, ok := simplified.(term.Number)
	if !ok {
		return 0, errors.MalformedProgram("range bound must be a ground integer", source.Position{Filename: filename})
	}
	return n.Value, nil
}
