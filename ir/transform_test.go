package ir

import "testing"

func TestSymbolsCollectsReachableNames(t *testing.T) {
	digit, _ := NewSymbol("digit")
	sep, _ := NewSymbol("_sep")
	body := NewCat(digit, OneOrMore(sep))

	syms := Symbols(body)
	if !syms["digit"] || !syms["_sep"] {
		t.Fatalf("expected digit and _sep in %v", syms)
	}
	if len(syms) != 2 {
		t.Fatalf("expected exactly 2 symbols, got %v", syms)
	}
}

func TestRewriteReplacesLeaves(t *testing.T) {
	a, _ := NewString("a")
	b, _ := NewString("b")
	body := NewCat(a, b)

	out := Rewrite(body, func(e Expr) Expr {
		if s, ok := e.(String_); ok && s.Value == "a" {
			r, _ := NewString("z")
			return r
		}
		return e
	})

	cat := out.(Cat)
	if cat.Exprs[0].(String_).Value != "z" {
		t.Fatalf("expected rewritten leaf, got %v", out)
	}
	if cat.Exprs[1].(String_).Value != "b" {
		t.Fatalf("expected untouched leaf, got %v", out)
	}
}

func TestRewritePreservesContainerMetadata(t *testing.T) {
	a, _ := NewString("a")
	b, _ := NewString("b")
	body := NewCat(a, b).WithMeta(Metadata{KeyToken: true})

	out := Rewrite(body, func(e Expr) Expr { return e })
	if !out.Meta().Token() {
		t.Fatalf("expected container metadata preserved through Rewrite, got %v", out.Meta())
	}
}

func TestInheritMetaUnionsWithPrecedence(t *testing.T) {
	a, _ := NewString("a")
	a = a.WithMeta(Metadata{KeyIgnore: true, "user": 1})
	b, _ := NewString("b")
	b = b.WithMeta(Metadata{KeyToken: true, "user": 2})

	out := InheritMeta(a, b)
	if !out.Meta().Ignore() || !out.Meta().Token() {
		t.Fatalf("expected union of both sides' flags, got %v", out.Meta())
	}
	if out.Meta()["user"] != 2 {
		t.Fatalf("replacement's own keys should win on collision, got %v", out.Meta()["user"])
	}
}

func TestWalkVisitsEveryNode(t *testing.T) {
	a, _ := NewString("a")
	b, _ := NewString("b")
	body := NewAlt(a, OneOrMore(b))

	var count int
	WalkFunc(body, func(Expr) { count++ })
	// Alt, Repeat, b, a == 4 nodes (order not asserted here).
	if count != 4 {
		t.Fatalf("expected 4 visited nodes, got %d", count)
	}
}
