package optimize

import "github.com/brunokim/polygrammar/ir"

// eliminateEmpty collapses the Empty-neutral-element cases from spec
// §4.2: a Repeat of Empty is Empty; Diff(Empty, _) is Empty and
// Diff(_, Empty) is just the base; an Alt drops Empty children and becomes
// Optional(remainder); a Cat simply drops Empty children.
func eliminateEmpty(e ir.Expr) ir.Expr {
	return ir.Rewrite(e, func(n ir.Expr) ir.Expr {
		switch t := n.(type) {
		case ir.Repeat:
			if _, ok := t.Expr.(ir.Empty); ok {
				return ir.InheritMeta(t, ir.NewEmpty())
			}
			return t
		case ir.Diff:
			if _, ok := t.Base.(ir.Empty); ok {
				return ir.InheritMeta(t, ir.NewEmpty())
			}
			if _, ok := t.Subtract.(ir.Empty); ok {
				return ir.InheritMeta(t, t.Base)
			}
			return t
		case ir.Alt:
			return dropEmptyFromAlt(t)
		case ir.Cat:
			return dropEmptyFromCat(t)
		default:
			return n
		}
	})
}

func dropEmptyFromAlt(alt ir.Alt) ir.Expr {
	var remainder []ir.Expr
	sawEmpty := false
	for _, c := range alt.Exprs {
		if _, ok := c.(ir.Empty); ok {
			sawEmpty = true
			continue
		}
		remainder = append(remainder, c)
	}
	if !sawEmpty {
		return alt
	}
	if len(remainder) == 0 {
		return ir.InheritMeta(alt, ir.NewEmpty())
	}
	return ir.InheritMeta(alt, ir.Optional(ir.NewAlt(remainder...)))
}

func dropEmptyFromCat(cat ir.Cat) ir.Expr {
	var remainder []ir.Expr
	sawEmpty := false
	for _, c := range cat.Exprs {
		if _, ok := c.(ir.Empty); ok {
			sawEmpty = true
			continue
		}
		remainder = append(remainder, c)
	}
	if !sawEmpty {
		return cat
	}
	if len(remainder) == 0 {
		return ir.InheritMeta(cat, ir.NewEmpty())
	}
	return ir.InheritMeta(cat, ir.NewCat(remainder...))
}
