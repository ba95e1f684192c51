package lisp

import (
	"strings"
	"testing"

	"github.com/brunokim/polygrammar/ir"
)

func TestParseSimpleGrammar(t *testing.T) {
	src := `(grammar greeting
	  (rule s (cat "hello" "world")))`

	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "greeting" {
		t.Fatalf("expected grammar name %q, got %q", "greeting", g.Name)
	}
	if len(g.Rules) != 1 || g.Rules[0].Name != "s" {
		t.Fatalf("expected a single rule 's', got %+v", g.Rules)
	}
	want := ir.NewCat(strExpr(t, "hello"), strExpr(t, "world"))
	if !g.Rules[0].Expr.Equal(want) {
		t.Fatalf("expected rule body %v, got %v", want, g.Rules[0].Expr)
	}
}

func TestParseOperatorAliases(t *testing.T) {
	src := `(grammar g
	  (rule digits (+ (charset (char_range "0" "9"))))
	  (rule maybe (? (symbol digits)))
	  (rule letters (- (char_range "a" "z") (char "q"))))`

	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}

	byName := map[string]ir.Expr{}
	for _, r := range g.Rules {
		byName[r.Name] = r.Expr
	}

	digits := byName["digits"]
	if _, ok := digits.(ir.Repeat); !ok {
		t.Fatalf("expected + to produce a Repeat, got %T", digits)
	}
	if r := digits.(ir.Repeat); r.Min != 1 || r.Max != ir.Unbounded {
		t.Fatalf("expected one-or-more bounds, got min=%d max=%d", r.Min, r.Max)
	}

	maybe := byName["maybe"].(ir.Repeat)
	if maybe.Min != 0 || maybe.Max != 1 {
		t.Fatalf("expected optional bounds, got min=%d max=%d", maybe.Min, maybe.Max)
	}

	letters, ok := byName["letters"].(ir.Diff)
	if !ok {
		t.Fatalf("expected - to produce a Diff, got %T", byName["letters"])
	}
	if _, ok := letters.Base.(ir.CharRange); !ok {
		t.Fatalf("expected letters.Base to be a CharRange, got %T", letters.Base)
	}
}

func TestParseCharsetDiffRoundTrip(t *testing.T) {
	// A diff of two charset forms reads back as a CharsetDiff-shaped Diff,
	// the shape the optimizer's interval subtraction folds (the optimizer
	// itself is not run here).
	src := `(grammar g
	  (rule notVowel (diff (charset (char_range "a" "z")) (charset (char "a") (char "e") (char "i") (char "o") (char "u")))))`

	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.IsCharsetDiffShape(g.Rules[0].Expr.(ir.Diff)) {
		t.Fatalf("expected a CharsetDiff-shaped Diff, got %v", g.Rules[0].Expr)
	}
}

func TestParseRepeatWithExplicitBounds(t *testing.T) {
	src := `(grammar g (rule r (repeat (string "x") 2 5)))`
	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	r := g.Rules[0].Expr.(ir.Repeat)
	if r.Min != 2 || r.Max != 5 {
		t.Fatalf("expected bounds 2..5, got %d..%d", r.Min, r.Max)
	}
}

func TestParseAnnotationAttachesMetadata(t *testing.T) {
	src := `(grammar g (rule r #(token true) (string "x")))`
	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Rules[0].Expr.Meta().Token() {
		t.Fatalf("expected annotation to tag the rule body as a token, got %v", g.Rules[0].Expr.Meta())
	}
}

func TestParseStringEscapes(t *testing.T) {
	src := `(grammar g (rule r (string "a\nb\x41B\U00000043")))`
	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	s := g.Rules[0].Expr.(ir.String_)
	want := "a\nbABC"
	if s.Value != want {
		t.Fatalf("expected decoded string %q, got %q", want, s.Value)
	}
}

func TestParseImportAndIgnoreDirectives(t *testing.T) {
	src := `(grammar g
	  (import base ws)
	  (ignore comment)
	  (rule s (string "x")))`
	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Rules) != 3 {
		t.Fatalf("expected 3 rule entries (2 directives + 1 rule), got %d", len(g.Rules))
	}
	imp := g.Rules[0].Directive
	if imp == nil || imp.Kind != ir.ImportDirective || imp.Grammar != "base" || imp.Symbol != "ws" {
		t.Fatalf("expected import directive for base.ws, got %+v", imp)
	}
	ign := g.Rules[1].Directive
	if ign == nil || ign.Kind != ir.IgnoreDirective || ign.Symbol != "comment" {
		t.Fatalf("expected ignore directive for comment, got %+v", ign)
	}
}

func TestParseRejectsMalformedTopLevel(t *testing.T) {
	if _, err := Parse(`(not-a-grammar foo)`); err == nil {
		t.Fatal("expected an error for a non-grammar top-level form")
	}
	if _, err := Parse(`(grammar g (rule s (string "x"))) (grammar h (rule s (string "y")))`); err == nil {
		t.Fatal("expected an error for more than one top-level form")
	}
}

func TestParseLineComment(t *testing.T) {
	src := "(grammar g ; trailing remark\n  (rule s (string \"x\")))"
	g, err := Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	if g.Name != "g" {
		t.Fatalf("expected grammar name %q, got %q", "g", g.Name)
	}
}

func strExpr(t *testing.T, s string) ir.Expr {
	t.Helper()
	e, err := ir.NewString(s)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestParseErrorReportsLocation(t *testing.T) {
	_, err := Parse(`(grammar g (rule s )))`)
	if err == nil {
		t.Fatal("expected a parse error for malformed input")
	}
	if !strings.Contains(err.Error(), "parse error at") {
		t.Fatalf("expected a located parse error, got %v", err)
	}
}
