// Package lisp loads the Lisp s-expression surface syntax described in
// spec §6 into core IR grammars, by parsing the source text with the
// engine itself (spec §2: "the core is self-hosting") against a
// bootstrapped reader grammar, then interpreting the resulting datum
// tree's "(kind args…)" forms into ir.Expr/ir.Rule/ir.Grammar values.
package lisp

import "fmt"

// Sym is a bare Lisp identifier, used both as a form's operator (e.g.
// "grammar", "alt", "|") and as a rule/symbol name argument.
type Sym string

// Str is a double-quoted Lisp string literal, already escape-decoded.
type Str string

// List is a parenthesized sequence of data.
type List []any

// Tagged wraps a datum with the metadata accumulated from the "#name" /
// "#(name value)" annotations that preceded it.
type Tagged struct {
	Tags  map[string]any
	Value any
}

func (t Tagged) String() string { return fmt.Sprintf("#%v %v", t.Tags, t.Value) }

// reader's visitor methods build the raw datum tree; the kind-dispatch
// interpretation into IR values lives in interpret.go.
type reader struct{}

func (reader) Visit_program(datums ...any) any { return []any(datums) }

func (reader) Visit_datum(v any) any { return v }

func (reader) Visit_list(items ...any) any { return List(items) }

func (reader) Visit_symbolAtom(s string) any { return Sym(s) }

func (reader) Visit_stringAtom(s string) any { return Str(s) }

func (reader) Visit_annotated(tags any, value any) any {
	m := map[string]any{}
	for _, kv := range tags.([]any) {
		pair := kv.(tagKV)
		m[pair.Key] = pair.Value
	}
	return Tagged{Tags: m, Value: value}
}

func (reader) Visit_tags(kvs ...any) any { return []any(kvs) }

type tagKV struct {
	Key   string
	Value any
}

func (reader) Visit_tagName(name string) any { return tagKV{Key: name, Value: true} }

func (reader) Visit_tagPair(name string, value any) any { return tagKV{Key: name, Value: value} }

// Visit_doubledQuote decodes the alternate "\"\"" escape spec §6 requires
// alongside the backslash table: a literal double quote written by
// doubling it, independent of any "\"" backslash escape.
func (reader) Visit_doubledQuote(s string) any { return "\"" }

func (reader) Visit_hexDigit(ch string) any { return ch }

func (reader) Visit_simpleEscape(code string) any {
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
	case "\\":
		return "\\"
	case "\"":
		return "\""
	default:
		return code
	}
}

func (reader) Visit_hex2Escape(a, b string) any { return hexRune(a + b) }
func (reader) Visit_hex4Escape(a, b, c, d string) any {
	return hexRune(a + b + c + d)
}
func (reader) Visit_hex8Escape(a, b, c, d, e, f, g, h string) any {
	return hexRune(a + b + c + d + e + f + g + h)
}

func hexRune(digits string) string {
	var r rune
	for _, c := range digits {
		r = r*16 + hexValue(c)
	}
	return string(r)
}

func hexValue(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
