package optimize

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/brunokim/polygrammar/ir"
)

// convertToRegexp is the last stage of the pipeline: every maximal subtree
// that is tagged token or ignore, contains no Symbol or Diff, and has no
// ignore-tagged node strictly beneath its root, is replaced by a single
// Regexp node (spec §4.2, "root-order, last"). The walk is top-down so a
// qualifying ancestor consumes its whole subtree without descending into
// it.
func convertToRegexp(e ir.Expr) ir.Expr {
	if qualifiesForRegexp(e) {
		return ir.InheritMeta(e, ir.NewRegexp(toPattern(e)))
	}
	children := ir.Children(e)
	if len(children) == 0 {
		return e
	}
	rewritten := make([]ir.Expr, len(children))
	for i, c := range children {
		rewritten[i] = convertToRegexp(c)
	}
	return ir.WithChildren(e, rewritten)
}

func qualifiesForRegexp(e ir.Expr) bool {
	if !(e.Meta().Token() || e.Meta().Ignore()) {
		return false
	}
	return isPurelyRegular(e, true)
}

// isPurelyRegular reports whether e contains no Symbol, no Diff, and (below
// the root) no ignore-tagged node.
func isPurelyRegular(e ir.Expr, isRoot bool) bool {
	switch e.(type) {
	case ir.Symbol, ir.Diff:
		return false
	}
	if !isRoot && e.Meta().Ignore() {
		return false
	}
	for _, c := range ir.Children(e) {
		if !isPurelyRegular(c, false) {
			return false
		}
	}
	return true
}

// toPattern renders e, which must contain no Symbol and no Diff, as a Go
// regexp pattern, using precedence-aware parenthesization (priorities high
// to low: Alt > Diff > Cat > Repeat; Diff never appears here).
func toPattern(e ir.Expr) string {
	switch t := e.(type) {
	case ir.String_:
		q := regexp.QuoteMeta(t.Value)
		if caseInsensitive(t.M) {
			return "(?i:" + q + ")"
		}
		return q
	case ir.Char:
		return regexp.QuoteMeta(string(t.Ch))
	case ir.CharRange:
		return "[" + escapeClass(t.Start) + "-" + escapeClass(t.End) + "]"
	case ir.Charset:
		return "[" + charsetBody(t) + "]"
	case ir.Alt:
		parts := make([]string, len(t.Exprs))
		for i, c := range t.Exprs {
			parts[i] = toPattern(c)
		}
		return "(?:" + strings.Join(parts, "|") + ")"
	case ir.Cat:
		var b strings.Builder
		for _, c := range t.Exprs {
			b.WriteString(maybeGroup(c))
		}
		return b.String()
	case ir.Repeat:
		return maybeGroup(t.Expr) + repeatSuffix(t)
	case ir.Empty:
		return ""
	case ir.EndOfFile:
		return "$"
	case ir.Regexp:
		return t.Pattern
	default:
		panic(fmt.Sprintf("optimize: cannot render %T as a regexp pattern", e))
	}
}

// maybeGroup wraps e in a non-capturing group if its own precedence is
// lower than the concatenation/repetition context it is rendered in.
func maybeGroup(e ir.Expr) string {
	switch e.(type) {
	case ir.Alt, ir.Cat:
		return "(?:" + toPattern(e) + ")"
	default:
		return toPattern(e)
	}
}

func repeatSuffix(t ir.Repeat) string {
	switch {
	case t.Min == 0 && t.Max == 1:
		return "?"
	case t.Min == 0 && t.Max == ir.Unbounded:
		return "*"
	case t.Min == 1 && t.Max == ir.Unbounded:
		return "+"
	case t.Max == ir.Unbounded:
		return fmt.Sprintf("{%d,}", t.Min)
	default:
		return fmt.Sprintf("{%d,%d}", t.Min, t.Max)
	}
}

func charsetBody(cs ir.Charset) string {
	var b strings.Builder
	for _, g := range cs.Groups {
		switch t := g.(type) {
		case ir.Char:
			b.WriteString(escapeClass(t.Ch))
		case ir.CharRange:
			b.WriteString(escapeClass(t.Start))
			b.WriteByte('-')
			b.WriteString(escapeClass(t.End))
		}
	}
	return b.String()
}

// escapeClass escapes the characters that are special inside a "[...]"
// regexp character class (spec §4.2).
func escapeClass(r rune) string {
	switch r {
	case '-', ']', '^', '\\':
		return "\\" + string(r)
	default:
		return string(r)
	}
}
