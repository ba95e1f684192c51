package lisp

import (
	"fmt"
	"strconv"

	"github.com/brunokim/polygrammar/ir"
)

// operatorAliases maps the shorthand operators spec §6 allows in place of
// their full kind name.
var operatorAliases = map[string]string{
	"|": "alt",
	"*": "zero_or_more",
	"+": "one_or_more",
	"?": "optional",
	"-": "diff",
}

func resolveKind(kind string) string {
	if full, ok := operatorAliases[kind]; ok {
		return full
	}
	return kind
}

// interpretGrammar turns the single top-level "(grammar name rule...)" form
// produced by the reader into an *ir.Grammar.
func interpretGrammar(d any) (*ir.Grammar, error) {
	form, rest, err := expectForm(d, "grammar")
	if err != nil {
		return nil, err
	}
	_ = form
	if len(rest) < 1 {
		return nil, fmt.Errorf("lisp: grammar form requires a name")
	}
	name, ok := rest[0].(Sym)
	if !ok {
		return nil, fmt.Errorf("lisp: grammar name must be a symbol, got %#v", rest[0])
	}

	var rules []ir.Rule
	for _, item := range rest[1:] {
		r, err := interpretRule(item)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("lisp: grammar %q has no rules", name)
	}
	return &ir.Grammar{Name: string(name), Rules: rules}, nil
}

func interpretRule(d any) (ir.Rule, error) {
	_, rest, kind, err := formKind(d)
	if err != nil {
		return ir.Rule{}, err
	}
	switch kind {
	case "rule":
		if len(rest) != 2 {
			return ir.Rule{}, fmt.Errorf("lisp: (rule name expr) takes exactly 2 arguments, got %d", len(rest))
		}
		name, ok := rest[0].(Sym)
		if !ok {
			return ir.Rule{}, fmt.Errorf("lisp: rule name must be a symbol, got %#v", rest[0])
		}
		expr, err := interpretExpr(rest[1])
		if err != nil {
			return ir.Rule{}, err
		}
		return ir.Rule{Name: string(name), Expr: expr}, nil

	case "overload":
		r, err := interpretRule(wrapForm("rule", rest))
		if err != nil {
			return ir.Rule{}, err
		}
		r.IsAdditionalAlt = true
		return r, nil

	case "import":
		if len(rest) != 2 && len(rest) != 4 {
			return ir.Rule{}, fmt.Errorf("lisp: (import grammar symbol [as alias]) malformed")
		}
		grammar, ok := rest[0].(Sym)
		if !ok {
			return ir.Rule{}, fmt.Errorf("lisp: import grammar name must be a symbol")
		}
		symbol, ok := rest[1].(Sym)
		if !ok {
			return ir.Rule{}, fmt.Errorf("lisp: import symbol name must be a symbol")
		}
		var alias string
		if len(rest) == 4 {
			as, ok := rest[2].(Sym)
			if !ok || as != "as" {
				return ir.Rule{}, fmt.Errorf("lisp: import expects '(import grammar symbol as alias)'")
			}
			a, ok := rest[3].(Sym)
			if !ok {
				return ir.Rule{}, fmt.Errorf("lisp: import alias must be a symbol")
			}
			alias = string(a)
		}
		return ir.Rule{Directive: &ir.Directive{
			Kind:    ir.ImportDirective,
			Grammar: string(grammar),
			Symbol:  string(symbol),
			Alias:   alias,
		}}, nil

	case "ignore":
		if len(rest) != 1 {
			return ir.Rule{}, fmt.Errorf("lisp: (ignore symbol) takes exactly 1 argument")
		}
		symbol, ok := rest[0].(Sym)
		if !ok {
			return ir.Rule{}, fmt.Errorf("lisp: ignore argument must be a symbol")
		}
		return ir.Rule{Directive: &ir.Directive{Kind: ir.IgnoreDirective, Symbol: string(symbol)}}, nil

	default:
		return ir.Rule{}, fmt.Errorf("lisp: unknown rule-level form %q", kind)
	}
}

func wrapForm(kind string, rest List) any {
	out := make(List, 0, len(rest)+1)
	out = append(out, Sym(kind))
	out = append(out, rest...)
	return out
}

// interpretExpr converts one expression-position datum into an ir.Expr,
// recursing through "(kind args…)" forms per spec §6's kind table and
// re-wrapping any Tagged annotation into the resulting node's metadata.
func interpretExpr(d any) (ir.Expr, error) {
	if t, ok := d.(Tagged); ok {
		inner, err := interpretExpr(t.Value)
		if err != nil {
			return nil, err
		}
		return inner.WithMeta(inner.Meta().Merge(t.Tags)), nil
	}
	if s, ok := d.(Str); ok {
		return mustExpr(ir.NewString(string(s)))
	}

	_, rest, kind, err := formKind(d)
	if err != nil {
		return nil, err
	}

	switch kind {
	case "symbol":
		name, err := expectSym(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return mustExpr(ir.NewSymbol(name))

	case "string":
		s, err := expectStr(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return mustExpr(ir.NewString(s))

	case "char":
		r, err := expectRune(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.NewChar(r), nil

	case "char_range":
		group, err := interpretCharsetGroup(d)
		if err != nil {
			return nil, err
		}
		return group, nil

	case "charset":
		var groups []ir.Expr
		for _, item := range rest {
			g, err := interpretCharsetGroup(item)
			if err != nil {
				return nil, err
			}
			groups = append(groups, g)
		}
		return mustExpr(ir.NewCharset(groups...))

	case "alt":
		exprs, err := interpretExprList(rest)
		if err != nil {
			return nil, err
		}
		return ir.NewAlt(exprs...), nil

	case "cat":
		exprs, err := interpretExprList(rest)
		if err != nil {
			return nil, err
		}
		return ir.NewCat(exprs...), nil

	case "repeat":
		if len(rest) != 3 {
			return nil, fmt.Errorf("lisp: (repeat expr min max) takes exactly 3 arguments")
		}
		e, err := interpretExpr(rest[0])
		if err != nil {
			return nil, err
		}
		min, err := interpretInt(rest[1])
		if err != nil {
			return nil, err
		}
		max, err := interpretBound(rest[2])
		if err != nil {
			return nil, err
		}
		return mustExpr(ir.NewRepeat(e, min, max))

	case "optional":
		e, err := interpretExprAt(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.Optional(e), nil

	case "zero_or_more":
		e, err := interpretExprAt(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.ZeroOrMore(e), nil

	case "one_or_more":
		e, err := interpretExprAt(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.OneOrMore(e), nil

	case "diff":
		if len(rest) != 2 {
			return nil, fmt.Errorf("lisp: (diff base subtract) takes exactly 2 arguments")
		}
		base, err := interpretExpr(rest[0])
		if err != nil {
			return nil, err
		}
		subtract, err := interpretExpr(rest[1])
		if err != nil {
			return nil, err
		}
		return ir.NewDiff(base, subtract), nil

	case "end_of_file":
		return ir.NewEndOfFile(), nil

	case "regexp":
		p, err := expectStr(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.NewRegexp(p), nil

	case "empty":
		return ir.NewEmpty(), nil

	default:
		return nil, fmt.Errorf("lisp: unknown expression kind %q", kind)
	}
}

func interpretExprList(items List) ([]ir.Expr, error) {
	out := make([]ir.Expr, 0, len(items))
	for _, item := range items {
		e, err := interpretExpr(item)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func interpretExprAt(items List, i int, kind string) (ir.Expr, error) {
	if i >= len(items) {
		return nil, fmt.Errorf("lisp: %q form is missing argument %d", kind, i)
	}
	return interpretExpr(items[i])
}

// interpretCharsetGroup converts one "(char c)" / "(char_range a b)" datum
// into a Char or CharRange expression, the only two shapes NewCharset
// accepts as groups.
func interpretCharsetGroup(d any) (ir.Expr, error) {
	_, rest, kind, err := formKind(d)
	if err != nil {
		return nil, err
	}
	switch kind {
	case "char":
		r, err := expectRune(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		return ir.NewChar(r), nil
	case "char_range":
		if len(rest) != 2 {
			return nil, fmt.Errorf("lisp: (char_range a b) takes exactly 2 arguments")
		}
		a, err := expectRune(rest, 0, kind)
		if err != nil {
			return nil, err
		}
		b, err := expectRune(rest, 1, kind)
		if err != nil {
			return nil, err
		}
		return mustExpr(ir.NewCharRange(a, b))
	default:
		return nil, fmt.Errorf("lisp: expected a char or char_range form inside charset, got %q", kind)
	}
}

func interpretInt(d any) (int, error) {
	s, ok := d.(Sym)
	if !ok {
		return 0, fmt.Errorf("lisp: expected an integer symbol, got %#v", d)
	}
	n, err := strconv.Atoi(string(s))
	if err != nil {
		return 0, fmt.Errorf("lisp: invalid integer %q: %w", s, err)
	}
	return n, nil
}

func interpretBound(d any) (int, error) {
	if s, ok := d.(Sym); ok && s == "unbounded" {
		return ir.Unbounded, nil
	}
	return interpretInt(d)
}

func mustExpr(e ir.Expr, err error) (ir.Expr, error) { return e, err }

// ---- form helpers: every rule/expression form is a List whose first
// element is the operator symbol ----

func asList(d any) (List, bool) {
	l, ok := d.(List)
	return l, ok
}

// formKind splits a form datum into (the form's own list, its arguments,
// its resolved kind name).
func formKind(d any) (List, List, string, error) {
	l, ok := asList(d)
	if !ok {
		return nil, nil, "", fmt.Errorf("lisp: expected a form, got %#v", d)
	}
	if len(l) == 0 {
		return nil, nil, "", fmt.Errorf("lisp: empty form")
	}
	op, ok := l[0].(Sym)
	if !ok {
		return nil, nil, "", fmt.Errorf("lisp: form operator must be a symbol, got %#v", l[0])
	}
	return l, l[1:], resolveKind(string(op)), nil
}

// expectForm is formKind specialized for callers that already know (and
// want to assert) the expected kind.
func expectForm(d any, wantKind string) (List, List, error) {
	l, rest, kind, err := formKind(d)
	if err != nil {
		return nil, nil, err
	}
	if kind != wantKind {
		return nil, nil, fmt.Errorf("lisp: expected a %q form, got %q", wantKind, kind)
	}
	return l, rest, nil
}

func expectSym(items List, i int, kind string) (string, error) {
	if i >= len(items) {
		return "", fmt.Errorf("lisp: %q form is missing argument %d", kind, i)
	}
	s, ok := items[i].(Sym)
	if !ok {
		return "", fmt.Errorf("lisp: %q form argument %d must be a symbol, got %#v", kind, i, items[i])
	}
	return string(s), nil
}

func expectStr(items List, i int, kind string) (string, error) {
	if i >= len(items) {
		return "", fmt.Errorf("lisp: %q form is missing argument %d", kind, i)
	}
	s, ok := items[i].(Str)
	if !ok {
		return "", fmt.Errorf("lisp: %q form argument %d must be a string, got %#v", kind, i, items[i])
	}
	return string(s), nil
}

func expectRune(items List, i int, kind string) (rune, error) {
	s, err := expectStr(items, i, kind)
	if err != nil {
		return 0, err
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("lisp: %q form argument %d must be a single character, got %q", kind, i, s)
	}
	return r[0], nil
}
