package ebnf

import (
	"strconv"

	"github.com/brunokim/polygrammar/ir"
)

// repeatBounds is the value boundedRepeat hands back to repeatExpr: the
// two "{m,n}" strings parsed to integers (spec §6 EBNF repetition).
type repeatBounds struct {
	Min, Max int
}

// builder's Visit_<rule> methods assemble ir.Expr/ir.Rule/ir.Grammar
// values directly as the engine parses, rather than through an
// intermediate datum tree (see the package doc comment for why EBNF
// doesn't need the Lisp surface's two-stage design).
type builder struct{}

func (builder) Visit_program(rules ...any) any {
	rs := make([]ir.Rule, len(rules))
	for i, r := range rules {
		rs[i] = r.(ir.Rule)
	}
	return &ir.Grammar{Rules: rs}
}

func (builder) Visit_ruleDecl(name string, expr any) any {
	return ir.Rule{Name: name, Expr: expr.(ir.Expr)}
}

func (builder) Visit_altExpr(exprs ...any) any { return ir.NewAlt(toExprs(exprs)...) }
func (builder) Visit_catExpr(exprs ...any) any { return ir.NewCat(toExprs(exprs)...) }

func (builder) Visit_diffExpr(exprs ...any) any {
	list := toExprs(exprs)
	result := list[0]
	for _, sub := range list[1:] {
		result = ir.NewDiff(result, sub)
	}
	return result
}

func (builder) Visit_repeatExpr(args ...any) any {
	base := args[0].(ir.Expr)
	if len(args) == 1 {
		return base
	}
	switch op := args[1].(type) {
	case string:
		switch op {
		case "?":
			return ir.Optional(base)
		case "*":
			return ir.ZeroOrMore(base)
		case "+":
			return ir.OneOrMore(base)
		}
		panic("ebnf: unknown repetition operator " + op)
	case repeatBounds:
		e, err := ir.NewRepeat(base, op.Min, op.Max)
		if err != nil {
			panic(err)
		}
		return e
	default:
		panic("ebnf: unexpected repeatOp value")
	}
}

func (builder) Visit_repeatOp(v any) any { return v }

// boundOrUnbounded is minPart/maxPart's result: an explicit integer if the
// optional NUMBER was present, or nil if the "{,}"/"{m,}"/"{,n}" form left
// that side blank; Visit_boundedRepeat reads a blank min as 0 and a blank
// max as unbounded (spec §6 is silent on a standalone "{m,n}"
// without independently-optional sides; the original grammar's min_max
// rule requires the comma but allows either NUMBER to be absent).
type boundOrUnbounded struct {
	n *int
}

func (builder) Visit_minPart(args ...any) any { return parseBoundPart(args) }
func (builder) Visit_maxPart(args ...any) any { return parseBoundPart(args) }

func parseBoundPart(args []any) any {
	if len(args) == 0 {
		return boundOrUnbounded{}
	}
	n, err := strconv.Atoi(args[0].(string))
	if err != nil {
		panic(err)
	}
	return boundOrUnbounded{n: &n}
}

func (builder) Visit_boundedRepeat(minPart, maxPart any) any {
	min := 0
	if n := minPart.(boundOrUnbounded).n; n != nil {
		min = *n
	}
	max := ir.Unbounded
	if n := maxPart.(boundOrUnbounded).n; n != nil {
		max = *n
	}
	return repeatBounds{Min: min, Max: max}
}

func (builder) Visit_primary(v any) any { return v }

func (builder) Visit_group(v any) any { return v }

func (builder) Visit_symbolRef(name string) any {
	e, err := ir.NewSymbol(name)
	if err != nil {
		panic(err)
	}
	return e
}

func (builder) Visit_stringLiteral(s string) any {
	e, err := ir.NewString(s)
	if err != nil {
		panic(err)
	}
	return e
}

// Visit_doubledDquote and Visit_doubledSquote decode the two quote-doubling
// escapes a STRING literal can use to include its own delimiter literally,
// independent of the backslash table (spec §6 doesn't fix a string syntax;
// both quote styles carry the original grammar's doubled-quote escape).
func (builder) Visit_doubledDquote(s string) any { return "\"" }
func (builder) Visit_doubledSquote(s string) any { return "'" }

func (builder) Visit_backslashEscape(code string) any {
	switch code {
	case "n":
		return "\n"
	case "t":
		return "\t"
	case "r":
		return "\r"
	case "f":
		return "\f"
	case "v":
		return "\v"
	case "a":
		return "\a"
	case "b":
		return "\b"
	default:
		return code
	}
}

func (builder) Visit_charClass(groups ...any) any {
	exprs := toExprs(groups)
	e, err := ir.NewCharset(exprs...)
	if err != nil {
		panic(err)
	}
	return e
}

func (builder) Visit_charClassItem(v any) any { return v }

func (builder) Visit_charClassRange(a, b any) any {
	ac := a.(ir.Expr).(ir.Char)
	bc := b.(ir.Expr).(ir.Char)
	e, err := ir.NewCharRange(ac.Ch, bc.Ch)
	if err != nil {
		panic(err)
	}
	return e
}

func (builder) Visit_classChar(ch string) any {
	r := []rune(ch)
	return ir.NewChar(r[0])
}

func (builder) Visit_classCharEscape(ch string) any { return ch }

func toExprs(vs []any) []ir.Expr {
	out := make([]ir.Expr, len(vs))
	for i, v := range vs {
		out[i] = v.(ir.Expr)
	}
	return out
}
