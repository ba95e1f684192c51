package ir

import "testing"

func TestNewStringRejectsEmpty(t *testing.T) {
	if _, err := NewString(""); err == nil {
		t.Fatal("expected error for empty String")
	}
}

func TestNewCharRangeRejectsBackwardsRange(t *testing.T) {
	cases := []struct{ start, end rune }{
		{'z', 'a'},
		{'a', 'a'},
	}
	for _, c := range cases {
		if _, err := NewCharRange(c.start, c.end); err == nil {
			t.Errorf("NewCharRange(%q, %q): expected error", c.start, c.end)
		}
	}
}

func TestNewRepeatRejectsMinGreaterThanMax(t *testing.T) {
	a, _ := NewString("a")
	if _, err := NewRepeat(a, 5, 2); err == nil {
		t.Fatal("expected error for min > max")
	}
	if _, err := NewRepeat(a, 0, Unbounded); err != nil {
		t.Fatalf("unbounded repeat should be valid: %v", err)
	}
}

func TestAltFlattensNestedAlt(t *testing.T) {
	a, _ := NewString("a")
	b, _ := NewString("b")
	c, _ := NewString("c")
	inner := NewAlt(a, b)
	outer := NewAlt(inner, c)

	alt, ok := outer.(Alt)
	if !ok {
		t.Fatalf("expected Alt, got %T", outer)
	}
	if len(alt.Exprs) != 3 {
		t.Fatalf("expected 3 flattened children, got %d: %v", len(alt.Exprs), alt.Exprs)
	}
}

func TestAltCollapsesSingleton(t *testing.T) {
	a, _ := NewString("a")
	got := NewAlt(a)
	if _, ok := got.(Alt); ok {
		t.Fatalf("singleton Alt should collapse to its child, got %#v", got)
	}
	if !got.Equal(a) {
		t.Fatalf("collapsed singleton should equal its child")
	}
}

func TestCatFlattensAndCollapses(t *testing.T) {
	a, _ := NewString("a")
	b, _ := NewString("b")
	c, _ := NewString("c")
	inner := NewCat(a, b)
	outer := NewCat(inner, c)
	cat, ok := outer.(Cat)
	if !ok || len(cat.Exprs) != 3 {
		t.Fatalf("expected flattened 3-child Cat, got %#v", outer)
	}

	single := NewCat(a)
	if _, ok := single.(Cat); ok {
		t.Fatalf("singleton Cat should collapse")
	}
}

func TestEqualityIgnoresMetadata(t *testing.T) {
	a, _ := NewString("a")
	tagged := a.WithMeta(Metadata{KeyToken: true})
	if !a.Equal(tagged) {
		t.Fatal("Equal must ignore metadata")
	}
	if !tagged.Equal(a) {
		t.Fatal("Equal must ignore metadata (symmetric)")
	}
}

func TestCharsetContains(t *testing.T) {
	lo, _ := NewCharRange('a', 'z')
	digit, _ := NewCharRange('0', '9')
	underscore := NewChar('_')
	cs, err := NewCharset(lo, digit, underscore)
	if err != nil {
		t.Fatal(err)
	}
	set := cs.(Charset)
	for _, r := range []rune{'a', 'm', 'z', '0', '9', '_'} {
		if !set.Contains(r) {
			t.Errorf("expected charset to contain %q", r)
		}
	}
	for _, r := range []rune{'A', '-', ' '} {
		if set.Contains(r) {
			t.Errorf("expected charset to not contain %q", r)
		}
	}
}

func TestIsCharsetDiffShape(t *testing.T) {
	a, _ := NewCharRange('a', 'z')
	b := NewChar('m')
	csA, _ := NewCharset(a)
	csB, _ := NewCharset(b)
	d := NewDiff(csA, csB).(Diff)
	if !IsCharsetDiffShape(d) {
		t.Fatal("Charset - Charset should be a CharsetDiff shape")
	}

	sym, _ := NewSymbol("digit")
	d2 := NewDiff(sym, csB).(Diff)
	if !IsCharsetDiffShape(d2) {
		t.Fatal("Symbol - Charset should be a CharsetDiff shape")
	}

	nested := NewDiff(d2, csA).(Diff)
	if !IsCharsetDiffShape(nested) {
		t.Fatal("recursively nested CharsetDiff base should still qualify")
	}

	alt := NewAlt(csA, csB)
	d3 := NewDiff(alt, csB).(Diff)
	if IsCharsetDiffShape(d3) {
		t.Fatal("Alt base should not qualify as CharsetDiff shape")
	}
}

func TestMetadataFlags(t *testing.T) {
	var m Metadata
	if m.Token() || m.Ignore() || m.CaseInsensitive() {
		t.Fatal("nil metadata should report false for every flag")
	}
	m = m.With(KeyToken, true)
	if !m.Token() {
		t.Fatal("expected token flag set")
	}
	merged := m.Merge(Metadata{KeyIgnore: true})
	if !merged.Token() || !merged.Ignore() {
		t.Fatal("merge should union both sides")
	}
	if m.Ignore() {
		t.Fatal("Merge must not mutate the receiver")
	}
}
