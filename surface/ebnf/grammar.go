// Package ebnf loads the C-style EBNF surface syntax described in spec §6
// into core IR grammars: semicolon-terminated rules, "|" alternation,
// whitespace concatenation, "?"/"*"/"+"/"{,}"/"{m,}"/"{,n}"/"{m,n}"
// repetition, "-" difference, "[a-z0-9]" character classes, "#" line
// comments and "/* */" block comments. String literals may use either
// double or single quotes, each escaping its own delimiter by doubling it,
// plus a fixed backslash-escape table shared with the Lisp surface.
//
// Unlike the Lisp surface, EBNF syntax is already expression-shaped, so a
// single bootstrapped grammar's visitor builds ir.Expr/ir.Rule/ir.Grammar
// values directly as it parses; there is no separate read-then-interpret
// stage.
package ebnf

import "github.com/brunokim/polygrammar/ir"

func readerGrammar() *ir.Grammar {
	return &ir.Grammar{
		Name: "ebnf-reader",
		Rules: []ir.Rule{
			rule("program", cat(sym("_skip"), oneOrMore(cat(sym("ruleDecl"), sym("_skip"))), ir.NewEndOfFile())),

			rule("ruleDecl", cat(sym("IDENT"), sym("_skip"), sym("_eq"), sym("_skip"), sym("altExpr"), sym("_skip"), sym("_semi"))),

			rule("altExpr", cat(sym("catExpr"), zeroOrMore(cat(sym("_skip"), sym("_pipe"), sym("_skip"), sym("catExpr"))))),
			rule("catExpr", cat(sym("diffExpr"), zeroOrMore(cat(sym("_skip"), sym("diffExpr"))))),
			rule("diffExpr", cat(sym("repeatExpr"), zeroOrMore(cat(sym("_skip"), sym("_minus"), sym("_skip"), sym("repeatExpr"))))),

			rule("repeatExpr", cat(sym("primary"), optional(cat(sym("_skip"), sym("repeatOp"))))),
			rule("repeatOp", alt(str("?"), str("*"), str("+"), sym("boundedRepeat"))),
			rule("boundedRepeat", cat(sym("_lbrace"), sym("_skip"), sym("minPart"), sym("_skip"),
				sym("_comma"), sym("_skip"), sym("maxPart"), sym("_skip"), sym("_rbrace"))),
			rule("minPart", optional(sym("INT"))),
			rule("maxPart", optional(sym("INT"))),

			rule("primary", alt(sym("symbolRef"), sym("stringLiteral"), sym("charClass"), sym("group"))),
			rule("stringLiteral", sym("STRING")),
			rule("group", cat(sym("_lparen"), sym("_skip"), sym("altExpr"), sym("_skip"), sym("_rparen"))),
			rule("symbolRef", sym("IDENT")),

			rule("IDENT", cat(identStart(), zeroOrMore(identChar()))),
			rule("INT", oneOrMore(charset(charRange('0', '9')))),

			// STRING accepts double- or single-quoted literals; either quote
			// escapes itself by doubling, and a backslash may precede any
			// character of escapableCharset (spec §6 leaves string syntax
			// unspecified; both quote forms are carried over from the
			// original grammar).
			rule("STRING", alt(sym("dquoteString"), sym("squoteString"))),
			rule("dquoteString", cat(sym("_dquote"),
				zeroOrMore(alt(sym("doubledDquote"), sym("backslashEscape"), dquoteChar())), sym("_dquote"))),
			rule("squoteString", cat(sym("_squote"),
				zeroOrMore(alt(sym("doubledSquote"), sym("backslashEscape"), squoteChar())), sym("_squote"))),
			rule("doubledDquote", str("\"\"")),
			rule("doubledSquote", str("''")),
			rule("backslashEscape", cat(sym("_backslash"), escapableCharset())),

			rule("charClass", cat(sym("_lbracket"), oneOrMore(sym("charClassItem")), sym("_rbracket"))),
			rule("charClassItem", alt(sym("charClassRange"), sym("classChar"))),
			rule("charClassRange", cat(sym("classChar"), sym("_dash"), sym("classChar"))),
			rule("classChar", alt(sym("classCharEscape"), plainClassChar())),
			rule("classCharEscape", cat(sym("_backslash"), anyCharset())),

			rule("_eq", str("=")),
			rule("_semi", str(";")),
			rule("_pipe", str("|")),
			rule("_minus", str("-")),
			rule("_comma", str(",")),
			rule("_lbrace", str("{")),
			rule("_rbrace", str("}")),
			rule("_lparen", str("(")),
			rule("_rparen", str(")")),
			rule("_lbracket", str("[")),
			rule("_rbracket", str("]")),
			rule("_dash", str("-")),
			rule("_dquote", str("\"")),
			rule("_squote", str("'")),
			rule("_backslash", str("\\")),

			rule("_ws", charset(char(' '), char('\t'), char('\n'), char('\r'))),
			rule("_lineComment", cat(str("#"), zeroOrMore(ir.NewDiff(anyCharset(), charset(char('\n')))))),
			rule("_blockComment", cat(str("/*"), zeroOrMore(alt(
				ir.NewDiff(anyCharset(), charset(char('*'))),
				cat(str("*"), ir.NewDiff(anyCharset(), charset(char('/')))),
			)), str("*/"))),
			rule("_comment", alt(sym("_lineComment"), sym("_blockComment"))),
			rule("_skip", zeroOrMore(alt(sym("_ws"), sym("_comment")))),
		},
	}
}

func identStart() ir.Expr {
	return charset(charRange('a', 'z'), charRange('A', 'Z'), char('_'))
}

func identChar() ir.Expr {
	return charset(charRange('a', 'z'), charRange('A', 'Z'), charRange('0', '9'), char('_'))
}

func dquoteChar() ir.Expr {
	return ir.NewDiff(anyCharset(), charset(char('"'), char('\\')))
}

func squoteChar() ir.Expr {
	return ir.NewDiff(anyCharset(), charset(char('\''), char('\\')))
}

func plainClassChar() ir.Expr {
	return ir.NewDiff(anyCharset(), charset(char(']'), char('\\'), char('-')))
}

// escapableCharset is the set of characters a backslash may precede in a
// STRING literal; unlike the original grammar's "any character" escape,
// this stays a fixed table (matching the Lisp surface's escape set plus
// both quote characters) rather than accepting then silently re-emitting
// an unrecognized code with its backslash intact.
func escapableCharset() ir.Expr {
	return charset(
		char('n'), char('t'), char('r'), char('f'), char('v'), char('a'), char('b'),
		char('\\'), char('"'), char('\''),
	)
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
