package rulemap

import (
	"strings"
	"testing"

	"github.com/brunokim/polygrammar/ir"
)

func strExpr(t *testing.T, s string) ir.Expr {
	t.Helper()
	e, err := ir.NewString(s)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func symExpr(t *testing.T, name string) ir.Expr {
	t.Helper()
	e, err := ir.NewSymbol(name)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestBuildSimpleGrammar(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
	}}
	rt, err := Build(g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if rt.Entry != "s" {
		t.Fatalf("expected entry 's', got %q", rt.Entry)
	}
	if _, ok := rt.Rules["s"]; !ok {
		t.Fatal("expected rule 's' in rule-map")
	}
}

func TestBuildMissingSymbolFails(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: symExpr(t, "undefined")},
	}}
	if _, err := Build(g, nil, Options{}); err == nil {
		t.Fatal("expected error for undefined symbol")
	}
}

func TestBuildDuplicateRuleDefaultErrors(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Name: "s", Expr: strExpr(t, "B")},
	}}
	if _, err := Build(g, nil, Options{}); err == nil {
		t.Fatal("expected error for duplicate rule")
	}
}

func TestBuildDuplicateRuleAdditionalAlt(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Name: "s", Expr: strExpr(t, "B"), IsAdditionalAlt: true},
	}}
	rt, err := Build(g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	alt, ok := rt.Rules["s"].(ir.Alt)
	if !ok || len(alt.Exprs) != 2 {
		t.Fatalf("expected 2-way Alt, got %#v", rt.Rules["s"])
	}
}

func TestBuildDuplicateRuleOverridesPolicy(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Name: "s", Expr: strExpr(t, "B")},
	}}
	rt, err := Build(g, nil, Options{OnDuplicateRule: OnDuplicateOverrides})
	if err != nil {
		t.Fatal(err)
	}
	if !rt.Rules["s"].Equal(strExpr(t, "B")) {
		t.Fatalf("expected second definition to win, got %v", rt.Rules["s"])
	}
}

func TestBuildDuplicateRuleWarnPolicyKeepsFirst(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Name: "s", Expr: strExpr(t, "B")},
	}}
	rt, err := Build(g, nil, Options{OnDuplicateRule: OnDuplicateWarn})
	if err != nil {
		t.Fatal(err)
	}
	if !rt.Rules["s"].Equal(strExpr(t, "A")) {
		t.Fatal("warn policy should keep first definition")
	}
	if len(rt.Warnings) != 1 {
		t.Fatalf("expected a warning, got %v", rt.Warnings)
	}
}

func TestNamingConventionsTagIgnoreAndToken(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "INT", Expr: strExpr(t, "1")},
		{Name: "_sep", Expr: strExpr(t, " ")},
		{Name: "s", Expr: ir.NewCat(symExpr(t, "INT"), symExpr(t, "_sep"))},
	}}
	rt, err := Build(g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !rt.Rules["INT"].Meta().Token() {
		t.Fatal("uppercase rule name should be tagged token")
	}
	if !rt.Rules["_sep"].Meta().Ignore() {
		t.Fatal("underscore-prefixed rule name should be tagged ignore")
	}
}

func TestIgnoreDirectiveBuildsSyntheticRule(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Directive: &ir.Directive{Kind: ir.IgnoreDirective, Symbol: "s"}},
	}}
	rt, err := Build(g, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rt.Rules["_ignored_tokens"]; !ok {
		t.Fatal("expected synthetic _ignored_tokens rule")
	}
	if !rt.Rules["_ignored_tokens"].Meta().Ignore() {
		t.Fatal("_ignored_tokens should itself be ignore-tagged by naming convention")
	}
}

func TestImportDirectiveRequiresCatalog(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: strExpr(t, "A")},
		{Directive: &ir.Directive{Kind: ir.ImportDirective, Grammar: "other", Symbol: "s"}},
	}}
	if _, err := Build(g, nil, Options{}); err == nil {
		t.Fatal("expected error: no catalog configured")
	}
}

func TestImportDirectiveBorrowsFromCatalog(t *testing.T) {
	other, err := Build(&ir.Grammar{Rules: []ir.Rule{{Name: "NUM", Expr: strExpr(t, "1")}}}, nil, Options{})
	if err != nil {
		t.Fatal(err)
	}
	g := &ir.Grammar{Rules: []ir.Rule{
		{Name: "s", Expr: symExpr(t, "n")},
		{Directive: &ir.Directive{Kind: ir.ImportDirective, Grammar: "other", Symbol: "NUM", Alias: "n"}},
	}}
	rt, err := Build(g, nil, Options{Catalog: map[string]*Runtime{"other": other}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := rt.Rules["n"]; !ok {
		t.Fatal("expected aliased local rule 'n'")
	}
}

type testVisitor struct{}

func (testVisitor) Visit_s(args ...any) any {
	return strings.Join(toStrings(args), "")
}

func toStrings(args []any) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = a.(string)
	}
	return out
}

func TestVisitorBinding(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{{Name: "s", Expr: strExpr(t, "A")}}}
	rt, err := Build(g, testVisitor{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	fn := rt.Method("s")
	if fn == nil {
		t.Fatal("expected bound visitor method for rule 's'")
	}
	if got := fn("x", "y"); got != "xy" {
		t.Fatalf("got %v, want xy", got)
	}
}

type unusedVisitor struct{}

func (unusedVisitor) Visit_nope(args ...any) any { return nil }

func TestUnusedVisitorMethodDefaultErrors(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{{Name: "s", Expr: strExpr(t, "A")}}}
	if _, err := Build(g, unusedVisitor{}, Options{}); err == nil {
		t.Fatal("expected error for unused visitor method")
	}
}

func TestUnusedVisitorMethodIgnorePolicy(t *testing.T) {
	g := &ir.Grammar{Rules: []ir.Rule{{Name: "s", Expr: strExpr(t, "A")}}}
	if _, err := Build(g, unusedVisitor{}, Options{OnUnusedVisitorMethods: OnUnusedIgnore}); err != nil {
		t.Fatal(err)
	}
}
