package ebnf

import (
	"testing"

	"github.com/brunokim/polygrammar/ir"
)

func TestParseSimpleRule(t *testing.T) {
	g, err := Parse(`greeting = "hello" "world";`)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Rules) != 1 || g.Rules[0].Name != "greeting" {
		t.Fatalf("expected a single rule 'greeting', got %+v", g.Rules)
	}
	s1, _ := ir.NewString("hello")
	s2, _ := ir.NewString("world")
	want := ir.NewCat(s1, s2)
	if !g.Rules[0].Expr.Equal(want) {
		t.Fatalf("expected %v, got %v", want, g.Rules[0].Expr)
	}
}

func TestParseAlternationAndRepetition(t *testing.T) {
	g, err := Parse(`
		digits = digit+;
		digit = [0-9];
		maybeSign = ("+" | "-")?;
	`)
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]ir.Expr{}
	for _, r := range g.Rules {
		byName[r.Name] = r.Expr
	}

	digits, ok := byName["digits"].(ir.Repeat)
	if !ok || digits.Min != 1 || digits.Max != ir.Unbounded {
		t.Fatalf("expected digits to be one-or-more, got %#v", byName["digits"])
	}

	digit, ok := byName["digit"].(ir.Charset)
	if !ok || len(digit.Groups) != 1 {
		t.Fatalf("expected digit to be a single-range charset, got %#v", byName["digit"])
	}

	sign, ok := byName["maybeSign"].(ir.Repeat)
	if !ok || sign.Min != 0 || sign.Max != 1 {
		t.Fatalf("expected maybeSign to be optional, got %#v", byName["maybeSign"])
	}
	if _, ok := sign.Expr.(ir.Alt); !ok {
		t.Fatalf("expected maybeSign's body to be an alternation, got %T", sign.Expr)
	}
}

func TestParseBoundedRepetitionAndDiff(t *testing.T) {
	g, err := Parse(`
		word = letter{2,5};
		letter = [a-z] - [q];
	`)
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]ir.Expr{}
	for _, r := range g.Rules {
		byName[r.Name] = r.Expr
	}

	word, ok := byName["word"].(ir.Repeat)
	if !ok || word.Min != 2 || word.Max != 5 {
		t.Fatalf("expected bounds 2..5, got %#v", byName["word"])
	}

	letter, ok := byName["letter"].(ir.Diff)
	if !ok {
		t.Fatalf("expected a Diff, got %T", byName["letter"])
	}
	if !ir.IsCharsetDiffShape(letter) {
		t.Fatalf("expected a CharsetDiff-shaped Diff, got %v", letter)
	}
}

func TestParseComments(t *testing.T) {
	g, err := Parse(`
		# a line comment
		s = "x"; /* a
		   block comment spanning lines */
	`)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Rules) != 1 || g.Rules[0].Name != "s" {
		t.Fatalf("expected a single rule 's', got %+v", g.Rules)
	}
}

func TestParseSymbolReference(t *testing.T) {
	g, err := Parse(`
		s = a b;
		a = "A";
		b = "B";
	`)
	if err != nil {
		t.Fatal(err)
	}
	cat, ok := g.Rules[0].Expr.(ir.Cat)
	if !ok || len(cat.Exprs) != 2 {
		t.Fatalf("expected a 2-element Cat, got %#v", g.Rules[0].Expr)
	}
	if _, ok := cat.Exprs[0].(ir.Symbol); !ok {
		t.Fatalf("expected a Symbol reference, got %T", cat.Exprs[0])
	}
}

func TestParseRejectsMissingSemicolon(t *testing.T) {
	if _, err := Parse(`s = "x"`); err == nil {
		t.Fatal("expected an error for a rule missing its terminating semicolon")
	}
}

func TestParseCharClassEscape(t *testing.T) {
	g, err := Parse(`dashOrBracket = [\-\]];`)
	if err != nil {
		t.Fatal(err)
	}
	cs, ok := g.Rules[0].Expr.(ir.Charset)
	if !ok || len(cs.Groups) != 2 {
		t.Fatalf("expected a 2-element charset, got %#v", g.Rules[0].Expr)
	}
}

// TestParseSingleQuotedString exercises the alternate quote style the
// original grammar allows alongside double quotes (spec §6 doesn't fix a
// string syntax, so both forms are carried over as an OK-to-supplement
// detail, see SPEC_FULL.md §12).
func TestParseSingleQuotedString(t *testing.T) {
	g, err := Parse(`s = 'hello';`)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := ir.NewString("hello")
	if !g.Rules[0].Expr.Equal(want) {
		t.Fatalf("expected %v, got %v", want, g.Rules[0].Expr)
	}
}

func TestParseStringQuoteEscapes(t *testing.T) {
	cases := []struct {
		name, src, want string
	}{
		{"doubled-dquote", `s = "say ""hi""";`, `say "hi"`},
		{"doubled-squote", `s = 'it''s here';`, `it's here`},
		{"backslash-dquote", `s = "a\"b";`, `a"b`},
		{"backslash-in-squote", `s = 'a\'b';`, `a'b`},
		{"named-escape", `s = "a\nb";`, "a\nb"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := Parse(c.src)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := ir.NewString(c.want)
			if !g.Rules[0].Expr.Equal(want) {
				t.Fatalf("expected %q, got %v", c.want, g.Rules[0].Expr)
			}
		})
	}
}

// TestParseFullyOptionalRepeatBounds exercises the "{,}"/"{m,}"/"{,n}"
// forms: spec §6 only documents "{m,n}", but the original grammar requires
// the comma while leaving either side independently optional.
func TestParseFullyOptionalRepeatBounds(t *testing.T) {
	cases := []struct {
		name, src        string
		wantMin, wantMax int
	}{
		{"both-blank", `s = a{,};`, 0, ir.Unbounded},
		{"min-only", `s = a{2,};`, 2, ir.Unbounded},
		{"max-only", `s = a{,5};`, 0, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, err := Parse(c.src + "\na = \"x\";")
			if err != nil {
				t.Fatal(err)
			}
			rep, ok := g.Rules[0].Expr.(ir.Repeat)
			if !ok || rep.Min != c.wantMin || rep.Max != c.wantMax {
				t.Fatalf("expected Repeat(%d,%d), got %#v", c.wantMin, c.wantMax, g.Rules[0].Expr)
			}
		})
	}
}
