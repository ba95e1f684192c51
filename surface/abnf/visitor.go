package abnf

import (
	"strconv"

	"github.com/brunokim/polygrammar/ir"
)

type repeatBounds struct{ Min, Max int }

// numRange and numSeq are the two compound shapes a "%x.." numeric
// literal's digit group can take beyond a single value (spec §6 ABNF
// numeric literal ranges and dotted concatenation).
type numRange struct{ Lo, Hi string }
type numSeq []string

type builder struct{}

func (builder) Visit_program(rules ...any) any {
	rs := make([]ir.Rule, len(rules))
	for i, r := range rules {
		rs[i] = r.(ir.Rule)
	}
	return &ir.Grammar{Rules: rs}
}

func (builder) Visit_ruleLine(name string, defOpVal string, body any) any {
	return ir.Rule{Name: name, Expr: body.(ir.Expr), IsAdditionalAlt: defOpVal == "=/"}
}

func (builder) Visit_defOp(v string) any { return v }

func (builder) Visit_altElem(exprs ...any) any { return ir.NewAlt(toExprs(exprs)...) }
func (builder) Visit_catElem(exprs ...any) any { return ir.NewCat(toExprs(exprs)...) }

func (builder) Visit_repElem(args ...any) any {
	if len(args) == 1 {
		return args[0]
	}
	rb := args[0].(repeatBounds)
	e, err := ir.NewRepeat(args[1].(ir.Expr), rb.Min, rb.Max)
	if err != nil {
		panic(err)
	}
	return e
}

func (builder) Visit_repeatCount(args ...any) any {
	switch len(args) {
	case 1:
		if args[0].(string) == "*" {
			return repeatBounds{Min: 0, Max: ir.Unbounded}
		}
		n := atoi(args[0].(string))
		return repeatBounds{Min: n, Max: n}
	case 2:
		if args[0].(string) == "*" {
			return repeatBounds{Min: 0, Max: atoi(args[1].(string))}
		}
		return repeatBounds{Min: atoi(args[0].(string)), Max: ir.Unbounded}
	case 3:
		return repeatBounds{Min: atoi(args[0].(string)), Max: atoi(args[2].(string))}
	default:
		panic("abnf: malformed repeat count")
	}
}

func (builder) Visit_star(s string) any { return s }

func (builder) Visit_element(v any) any { return v }

func (builder) Visit_group(v any) any { return v }

func (builder) Visit_optionalGroup(v any) any { return ir.Optional(v.(ir.Expr)) }

func (builder) Visit_symbolRef(name string) any {
	e, err := ir.NewSymbol(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Visit_charVal applies RFC 5234's default (case-insensitive unless %s
// requests otherwise) to the quoted literal's metadata.
func (builder) Visit_charVal(args ...any) any {
	var prefix, text string
	if len(args) == 1 {
		text = args[0].(string)
	} else {
		prefix, text = args[0].(string), args[1].(string)
	}
	s, err := ir.NewString(text)
	if err != nil {
		panic(err)
	}
	if prefix == "%s" {
		return s.WithMeta(s.Meta().With(ir.KeyCaseSensitive, true))
	}
	return s.WithMeta(s.Meta().With(ir.KeyCaseInsensitive, true))
}

func (builder) Visit_numVal(base string, digits any) any {
	switch d := digits.(type) {
	case numRange:
		lo := parseDigit(base, d.Lo)
		hi := parseDigit(base, d.Hi)
		e, err := ir.NewCharRange(lo, hi)
		if err != nil {
			panic(err)
		}
		return e
	case numSeq:
		exprs := make([]ir.Expr, len(d))
		for i, s := range d {
			exprs[i] = ir.NewChar(parseDigit(base, s))
		}
		return ir.NewCat(exprs...)
	case string:
		return ir.NewChar(parseDigit(base, d))
	default:
		panic("abnf: unexpected numDigits value")
	}
}

// Visit_numDigits disambiguates its three grammar branches (range, dotted
// sequence, single value) by inspecting which literal separator, if any,
// shows up among its collected args — the separator is kept visible in
// the grammar (not ignore-tagged) specifically so this dispatch can tell
// a 2-part range ("41-5A") from a 2-part dotted sequence ("0D.0A").
func (builder) Visit_numDigits(args ...any) any {
	if len(args) == 1 {
		return args[0].(string)
	}
	if args[1].(string) == "-" {
		return numRange{Lo: args[0].(string), Hi: args[2].(string)}
	}
	var seq numSeq
	for i := 0; i < len(args); i += 2 {
		seq = append(seq, args[i].(string))
	}
	return seq
}

// Visit_proseVal has no structural IR meaning (prose is free text meant
// for a human reader, per RFC 5234 §3.6); it is represented as a
// universally-matching Regexp carrying the original text for diagnostics.
func (builder) Visit_proseVal(text string) any {
	return ir.NewRegexp(".*").WithMeta(ir.Metadata{"prose": text})
}

func parseDigit(base, digits string) rune {
	radix := map[string]int{"b": 2, "d": 10, "x": 16}[base]
	n, err := strconv.ParseInt(digits, radix, 32)
	if err != nil {
		panic(err)
	}
	return rune(n)
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return n
}

func toExprs(vs []any) []ir.Expr {
	out := make([]ir.Expr, len(vs))
	for i, v := range vs {
		out[i] = v.(ir.Expr)
	}
	return out
}
