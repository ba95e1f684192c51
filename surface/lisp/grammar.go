package lisp

import "github.com/brunokim/polygrammar/ir"

// readerGrammar is grammar itself: a grammar describing the Lisp reader,
// bootstrapped directly as ir.Expr values rather than parsed from text,
// since something has to read the very first grammar (spec §2, §6).
func readerGrammar() *ir.Grammar {
	return &ir.Grammar{
		Name: "lisp-reader",
		Rules: []ir.Rule{
			rule("program", cat(sym("_skip"), oneOrMore(cat(sym("datum"), sym("_skip"))), ir.NewEndOfFile())),

			rule("datum", alt(sym("annotated"), sym("list"), sym("symbolAtom"), sym("stringAtom"))),

			rule("annotated", cat(sym("tags"), sym("datum"))),
			rule("tags", oneOrMore(cat(sym("_hash"), alt(sym("tagPair"), sym("tagName")), sym("_skip")))),
			rule("tagName", sym("SYMBOL")),
			rule("tagPair", cat(sym("_lparen"), sym("_skip"), sym("SYMBOL"), sym("_skip"), sym("datum"), sym("_skip"), sym("_rparen"))),

			rule("list", cat(sym("_lparen"), sym("_skip"), zeroOrMore(cat(sym("datum"), sym("_skip"))), sym("_rparen"))),

			rule("symbolAtom", sym("SYMBOL")),
			rule("stringAtom", sym("STRING")),

			rule("SYMBOL", oneOrMore(symbolChar())),

			rule("STRING", cat(sym("_quote"), zeroOrMore(alt(sym("EscapeChar"), sym("doubledQuote"), stringChar())), sym("_quote"))),
			rule("doubledQuote", str("\"\"")),
			rule("EscapeChar", alt(sym("simpleEscape"), sym("hex2Escape"), sym("hex4Escape"), sym("hex8Escape"))),
			rule("simpleEscape", cat(sym("_backslash"), simpleEscapeCharset())),
			rule("hex2Escape", cat(sym("_backslash"), sym("_hx"), sym("hexDigit"), sym("hexDigit"))),
			rule("hex4Escape", cat(sym("_backslash"), sym("_hu"), sym("hexDigit"), sym("hexDigit"), sym("hexDigit"), sym("hexDigit"))),
			rule("hex8Escape", cat(sym("_backslash"), sym("_hU"),
				sym("hexDigit"), sym("hexDigit"), sym("hexDigit"), sym("hexDigit"),
				sym("hexDigit"), sym("hexDigit"), sym("hexDigit"), sym("hexDigit"))),
			rule("hexDigit", hexDigitCharset()),

			rule("_quote", str("\"")),
			rule("_lparen", str("(")),
			rule("_rparen", str(")")),
			rule("_hash", str("#")),
			rule("_backslash", str("\\")),
			rule("_hx", str("x")),
			rule("_hu", str("u")),
			rule("_hU", str("U")),

			rule("_ws", charset(char(' '), char('\t'), char('\n'), char('\r'))),
			rule("_comment", cat(str(";"), zeroOrMore(ir.NewDiff(anyCharset(), charset(char('\n')))))),
			rule("_skip", zeroOrMore(alt(sym("_ws"), sym("_comment")))),
		},
	}
}

// symbolChar is the character class for a bare Lisp identifier: any
// printable ASCII character except the ones that delimit syntax.
func symbolChar() ir.Expr {
	excluded := charset(char('('), char(')'), char('"'), char('#'), char(';'))
	return ir.NewDiff(charset(charRange('!', '~')), excluded)
}

func stringChar() ir.Expr {
	return ir.NewDiff(anyCharset(), charset(char('"'), char('\\')))
}

func simpleEscapeCharset() ir.Expr {
	return charset(
		char('n'), char('t'), char('r'), char('f'), char('v'), char('a'), char('b'),
		char('\\'), char('"'),
	)
}

func hexDigitCharset() ir.Expr {
	return charset3(charRange('0', '9'), charRange('a', 'f'), charRange('A', 'F'))
}

func anyCharset() ir.Expr { return charset(charRange(0, 0x10FFFF)) }

// ---- tiny constructor shims, panicking on the construction errors that
// can only happen if this bootstrap grammar itself is malformed ----

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

// charset3 exists only so hexDigitCharset reads as three ranges rather
// than a single flattened call; identical to charset otherwise.
func charset3(a, b, c ir.Expr) ir.Expr { return charset(a, b, c) }

func alt(exprs ...ir.Expr) ir.Expr { return ir.NewAlt(exprs...) }

func cat(exprs ...ir.Expr) ir.Expr { return ir.NewCat(exprs...) }

func zeroOrMore(e ir.Expr) ir.Expr { return ir.ZeroOrMore(e) }

func oneOrMore(e ir.Expr) ir.Expr { return ir.OneOrMore(e) }
