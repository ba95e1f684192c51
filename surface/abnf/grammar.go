// Package abnf loads RFC 5234 ABNF syntax into core IR grammars: "="/"=/"
// rule definitions, "/" alternation, whitespace concatenation, "*"
// repetition counts, "%b"/"%d"/"%x" numeric literals, "<...>" prose
// placeholders, case-sensitive "%s" / case-insensitive "%i" quoted
// strings, and ";" comments (spec §6 ABNF surface).
//
// Unlike strict RFC 5234, this reader does not track line-based rule
// continuation (a line starting with whitespace extends the previous
// rule): since the underlying engine is a context-free backtracking
// parser rather than a layout-sensitive lexer, whitespace (including
// newlines) is treated uniformly as insignificant between tokens, and a
// new "name =" pair is recognized by ordinary backtracking once the
// previous rule's alternation can't absorb it. This accepts any
// layout RFC 5234 accepts (and somewhat more permissive layouts besides),
// at the cost of asking the engine to backtrack at every rule boundary —
// an explicit, intentional trade of layout-fidelity for keeping the
// surface expressible as a plain context-free grammar. This surface also
// runs in the "relaxed" line-terminator mode spec §6 calls out: a bare LF
// or end-of-input closes a rule line, not only CRLF.
package abnf

import "github.com/brunokim/polygrammar/ir"

func readerGrammar() *ir.Grammar {
	return &ir.Grammar{
		Name: "abnf-reader",
		Rules: []ir.Rule{
			rule("program", cat(sym("_skip"), oneOrMore(cat(sym("ruleLine"), sym("_skip"))), ir.NewEndOfFile())),

			rule("ruleLine", cat(sym("RULENAME"), sym("_skip"), sym("defOp"), sym("_skip"), sym("altElem"))),
			rule("defOp", alt(str("=/"), str("="))),

			rule("altElem", cat(sym("catElem"), zeroOrMore(cat(sym("_skip"), sym("_slash"), sym("_skip"), sym("catElem"))))),
			rule("catElem", cat(sym("repElem"), zeroOrMore(cat(sym("_skip"), sym("repElem"))))),

			rule("repElem", cat(optional(sym("repeatCount")), sym("element"))),
			rule("repeatCount", alt(
				cat(sym("INT"), sym("star"), sym("INT")),
				cat(sym("INT"), sym("star")),
				cat(sym("star"), sym("INT")),
				sym("star"),
				sym("INT"),
			)),
			rule("star", str("*")),
			rule("INT", oneOrMore(charset(charRange('0', '9')))),

			rule("element", alt(sym("symbolRef"), sym("group"), sym("optionalGroup"), sym("charVal"), sym("numVal"), sym("proseVal"))),
			rule("group", cat(sym("_lparen"), sym("_skip"), sym("altElem"), sym("_skip"), sym("_rparen"))),
			rule("optionalGroup", cat(sym("_lbracket"), sym("_skip"), sym("altElem"), sym("_skip"), sym("_rbracket"))),
			rule("symbolRef", sym("RULENAME")),

			rule("charVal", alt(
				cat(str("%s"), sym("QSTRING")),
				cat(str("%i"), sym("QSTRING")),
				sym("QSTRING"),
			)),
			rule("QSTRING", cat(sym("_dquote"), zeroOrMore(ir.NewDiff(anyCharset(), charset(char('"')))), sym("_dquote"))),

			rule("numVal", cat(sym("_percent"), alt(str("b"), str("d"), str("x")), sym("numDigits"))),
			rule("numDigits", alt(
				cat(sym("DIGITS"), str("-"), sym("DIGITS")),
				cat(sym("DIGITS"), oneOrMore(cat(str("."), sym("DIGITS")))),
				sym("DIGITS"),
			)),
			rule("DIGITS", oneOrMore(hexDigitCharset())),

			rule("proseVal", sym("PROSEVAL")),
			rule("PROSEVAL", cat(sym("_lt"), zeroOrMore(ir.NewDiff(anyCharset(), charset(char('>')))), sym("_gt"))),

			rule("RULENAME", cat(identStart(), zeroOrMore(identChar()))),

			rule("_lparen", str("(")),
			rule("_rparen", str(")")),
			rule("_lbracket", str("[")),
			rule("_rbracket", str("]")),
			rule("_dquote", str("\"")),
			rule("_percent", str("%")),
			rule("_lt", str("<")),
			rule("_gt", str(">")),
			rule("_slash", str("/")),

			rule("WSP", charset(char(' '), char('\t'))),
			rule("CRLF", alt(str("\r\n"), str("\n"))),
			rule("_comment", cat(str(";"), zeroOrMore(ir.NewDiff(anyCharset(), charset(char('\n'), char('\r')))))),
			rule("_skip", zeroOrMore(alt(sym("WSP"), sym("CRLF"), sym("_comment")))),
		},
	}
}

func identStart() ir.Expr { return charset(charRange('a', 'z'), charRange('A', 'Z')) }
func identChar() ir.Expr {
	return charset(charRange('a', 'z'), charRange('A', 'Z'), charRange('0', '9'), char('-'))
}

func hexDigitCharset() ir.Expr {
	return charset(charRange('0', '9'), charRange('a', 'f'), charRange('A', 'F'))
}

func anyCharset() ir.Expr { return charset(charRange(0, 0x10FFFF)) }

// ---- tiny constructor shims ----

func rule(name string, expr ir.Expr) ir.Rule { return ir.Rule{Name: name, Expr: expr} }

func sym(name string) ir.Expr {
	e, err := ir.NewSymbol(name)
	if err != nil {
		panic(err)
	}
	return e
}

func str(s string) ir.Expr {
	e, err := ir.NewString(s)
	if err != nil {
		panic(err)
	}
	return e
}

func char(r rune) ir.Expr { return ir.NewChar(r) }

func charRange(start, end rune) ir.Expr {
	e, err := ir.NewCharRange(start, end)
	if err != nil {
		panic(err)
	}
	return e
}

func charset(groups ...ir.Expr) ir.Expr {
	e, err := ir.NewCharset(groups...)
	if err != nil {
		panic(err)
	}
	return e
}

func alt(exprs ...ir.Expr) ir.Expr { return ir.NewAlt(exprs...) }
func cat(exprs ...ir.Expr) ir.Expr { return ir.NewCat(exprs...) }

func optional(e ir.Expr) ir.Expr   { return ir.Optional(e) }
func zeroOrMore(e ir.Expr) ir.Expr { return ir.ZeroOrMore(e) }
func oneOrMore(e ir.Expr) ir.Expr  { return ir.OneOrMore(e) }
