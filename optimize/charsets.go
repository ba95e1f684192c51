package optimize

import (
	"sort"
	"unicode"

	"github.com/brunokim/polygrammar/ir"
)

// promoteStringsToCharsets turns every single-character String_ node into
// a Charset. A case-insensitive single character whose upper and lower
// forms coincide yields a one-element charset, not two identical chars
// (spec §8 boundary behavior).
func promoteStringsToCharsets(e ir.Expr) ir.Expr {
	return ir.Rewrite(e, func(n ir.Expr) ir.Expr {
		s, ok := n.(ir.String_)
		if !ok {
			return n
		}
		runes := []rune(s.Value)
		if len(runes) != 1 {
			return n
		}
		ch := runes[0]
		var groups []ir.Expr
		if caseInsensitive(s.M) {
			lo, up := unicode.ToLower(ch), unicode.ToUpper(ch)
			groups = append(groups, ir.NewChar(lo))
			if up != lo {
				groups = append(groups, ir.NewChar(up))
			}
		} else {
			groups = append(groups, ir.NewChar(ch))
		}
		cs, _ := ir.NewCharset(groups...)
		return ir.InheritMeta(n, cs)
	})
}

// caseInsensitive resolves the "i"/"s" metadata pair per spec §4.3: the
// engine default is case-sensitive; "i" requests case-insensitivity, and
// an explicit "s" on the same node overrides a case-insensitive default
// set elsewhere (e.g. by a surface loader that tags every literal "i").
func caseInsensitive(m ir.Metadata) bool {
	return m.CaseInsensitive() && !m.CaseSensitive()
}

// coalesceAndFoldCharsets merges adjacent same-tag Charset children of
// every Alt, and folds a CharsetDiff-shaped Diff into a single Charset via
// interval subtraction. Unlike promoteStringsToCharsets and the other
// single-rule passes, this one needs rm in hand: folding a Diff whose base
// is a Symbol (spec §3's CharsetDiff base ∈ {Charset, Symbol, CharsetDiff})
// means looking up what that symbol's rule resolves to.
func coalesceAndFoldCharsets(rm ir.RuleMap) ir.RuleMap {
	out := make(ir.RuleMap, len(rm))
	for name, expr := range rm {
		out[name] = ir.Rewrite(expr, func(n ir.Expr) ir.Expr {
			switch t := n.(type) {
			case ir.Alt:
				return coalesceAlt(t)
			case ir.Diff:
				return foldCharsetDiff(t, rm)
			default:
				return n
			}
		})
	}
	return out
}

// coalesceAlt merges runs of adjacent Charset children that share the same
// token/ignore tag state (spec §4.2: "Tag mismatch blocks the merge to
// preserve result-shape semantics").
func coalesceAlt(alt ir.Alt) ir.Expr {
	var merged []ir.Expr
	for _, child := range alt.Exprs {
		cs, ok := child.(ir.Charset)
		if ok && len(merged) > 0 {
			if last, ok2 := merged[len(merged)-1].(ir.Charset); ok2 && sameResultShape(last.M, cs.M) {
				groups := append(append([]ir.Expr{}, last.Groups...), cs.Groups...)
				combined, _ := ir.NewCharset(groups...)
				merged[len(merged)-1] = combined.WithMeta(last.M)
				continue
			}
		}
		merged = append(merged, child)
	}
	result := ir.NewAlt(merged...)
	return ir.InheritMeta(alt, result)
}

func sameResultShape(a, b ir.Metadata) bool {
	return a.Token() == b.Token() && a.Ignore() == b.Ignore()
}

// foldCharsetDiff collapses a CharsetDiff-shaped Diff into a single Charset
// using interval subtraction on sorted ranges (spec §4.2), resolving a
// Symbol or nested-Diff base/subtrahend against rm first (ir.IsCharsetDiffShape
// recognizes the same three base shapes: Charset, Symbol, CharsetDiff).
// A Diff that doesn't resolve on both sides to concrete character data is
// left as-is: the narrowing only applies once both sides are literal.
func foldCharsetDiff(d ir.Diff, rm ir.RuleMap) ir.Expr {
	base, ok1 := resolveCharset(d.Base, rm, map[string]bool{})
	sub, ok2 := resolveCharset(d.Subtract, rm, map[string]bool{})
	if !ok1 || !ok2 {
		return d
	}
	residual := subtractIntervals(toIntervals(base), toIntervals(sub))
	if len(residual) == 0 {
		return ir.InheritMeta(d, ir.NewEmpty())
	}
	cs, _ := ir.NewCharset(residual...)
	return ir.InheritMeta(d, cs)
}

// resolveCharset looks through Symbol indirection and nested CharsetDiff
// shapes to find the concrete Charset a base or subtrahend denotes. seen
// guards against a self-referential rule chain; an empty residual from a
// nested diff can't be represented as a Charset (NewCharset requires at
// least one group), so that case is reported unresolved rather than folded.
func resolveCharset(e ir.Expr, rm ir.RuleMap, seen map[string]bool) (ir.Charset, bool) {
	switch t := e.(type) {
	case ir.Charset:
		return t, true
	case ir.Symbol:
		if seen[t.Name] {
			return ir.Charset{}, false
		}
		seen[t.Name] = true
		body, ok := rm[t.Name]
		if !ok {
			return ir.Charset{}, false
		}
		return resolveCharset(body, rm, seen)
	case ir.Diff:
		base, ok1 := resolveCharset(t.Base, rm, seen)
		sub, ok2 := resolveCharset(t.Subtract, rm, seen)
		if !ok1 || !ok2 {
			return ir.Charset{}, false
		}
		residual := subtractIntervals(toIntervals(base), toIntervals(sub))
		if len(residual) == 0 {
			return ir.Charset{}, false
		}
		cs, _ := ir.NewCharset(residual...)
		return cs.(ir.Charset), true
	default:
		return ir.Charset{}, false
	}
}

// interval is an inclusive codepoint range [lo, hi].
type interval struct{ lo, hi rune }

func toIntervals(cs ir.Charset) []interval {
	out := make([]interval, 0, len(cs.Groups))
	for _, g := range cs.Groups {
		switch t := g.(type) {
		case ir.Char:
			out = append(out, interval{t.Ch, t.Ch})
		case ir.CharRange:
			out = append(out, interval{t.Start, t.End})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].lo < out[j].lo })
	return out
}

// mergeIntervals sorts and merges overlapping/adjacent intervals.
func mergeIntervals(ivs []interval) []interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := append([]interval{}, ivs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].lo < sorted[j].lo })
	out := []interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.lo <= last.hi+1 {
			if iv.hi > last.hi {
				last.hi = iv.hi
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// subtractOne removes every interval in subs (assumed merged, sorted) from
// base, returning the residual pieces in ascending order.
func subtractOne(base interval, subs []interval) []interval {
	cur := []interval{base}
	for _, s := range subs {
		var next []interval
		for _, c := range cur {
			if s.hi < c.lo || s.lo > c.hi {
				next = append(next, c)
				continue
			}
			if s.lo > c.lo {
				next = append(next, interval{c.lo, s.lo - 1})
			}
			if s.hi < c.hi {
				next = append(next, interval{s.hi + 1, c.hi})
			}
		}
		cur = next
	}
	return cur
}

// subtractIntervals computes, for every base range, the residual left
// after subtracting the union of overlapping diff ranges, and renders each
// surviving interval as a Char (width 1) or CharRange.
func subtractIntervals(bases, subs []interval) []ir.Expr {
	mergedSubs := mergeIntervals(subs)
	var residual []interval
	for _, b := range bases {
		residual = append(residual, subtractOne(b, mergedSubs)...)
	}
	groups := make([]ir.Expr, 0, len(residual))
	for _, iv := range residual {
		if iv.lo == iv.hi {
			groups = append(groups, ir.NewChar(iv.lo))
			continue
		}
		cr, _ := ir.NewCharRange(iv.lo, iv.hi)
		groups = append(groups, cr)
	}
	return groups
}
