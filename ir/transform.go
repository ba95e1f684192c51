package ir

// Visitor mirrors the teacher's ast.Visitor: Visit is called for x before
// its children are visited, and its return value is the Visitor used for
// those children (returning nil skips them).
type Visitor interface {
	Visit(x Expr) (w Visitor)
}

// Walk iterates the expression tree rooted at x, calling v.Visit for every
// node before recursing into its children.
func Walk(v Visitor, x Expr) {
	w := v.Visit(x)
	if w == nil {
		return
	}
	for _, child := range Children(x) {
		Walk(w, child)
	}
}

// visitFunc adapts a plain func into a Visitor that always continues
// with itself, the common case for read-only walks.
type visitFunc func(x Expr)

func (f visitFunc) Visit(x Expr) Visitor {
	f(x)
	return f
}

// WalkFunc walks x calling fn on every node, pre-order.
func WalkFunc(x Expr, fn func(x Expr)) {
	Walk(visitFunc(fn), x)
}

// Children returns x's direct Expr children, in the order the parser
// engine would process them. Leaves (String_, Symbol, Char, CharRange,
// Regexp, Empty, EndOfFile) return nil. Charset's groups are themselves
// Expr (Char/CharRange) and so are included as children, matching the
// data model's Charset-as-container-of-Expr shape.
func Children(x Expr) []Expr {
	switch t := x.(type) {
	case Alt:
		return t.Exprs
	case Cat:
		return t.Exprs
	case Repeat:
		return []Expr{t.Expr}
	case Diff:
		return []Expr{t.Base, t.Subtract}
	case Charset:
		return t.Groups
	default:
		return nil
	}
}

// WithChildren returns a copy of x with its direct children replaced by
// children (which must have the same length and order as Children(x)
// returned), preserving x's own metadata. Leaves return x unchanged
// (children is ignored).
func WithChildren(x Expr, children []Expr) Expr {
	switch t := x.(type) {
	case Alt:
		t.Exprs = children
		return t
	case Cat:
		t.Exprs = children
		return t
	case Repeat:
		t.Expr = children[0]
		return t
	case Diff:
		t.Base = children[0]
		t.Subtract = children[1]
		return t
	case Charset:
		t.Groups = children
		return t
	default:
		return x
	}
}

// Rewrite performs a generic post-order rewrite: every child of x is
// rewritten first (recursively), the node is rebuilt over the rewritten
// children via WithChildren (preserving x's own metadata), and finally fn
// is applied to the rebuilt node. Leaves are passed to fn directly.
//
// Rewrite itself does not re-merge metadata beyond what WithChildren
// already preserves; callers whose fn changes a node's shape (e.g. the
// optimizer collapsing a Diff into a Charset) should use InheritMeta to
// carry the pre-image's metadata onto the replacement, per spec §4.2's
// "metadata-preserving" requirement.
func Rewrite(x Expr, fn func(Expr) Expr) Expr {
	children := Children(x)
	if len(children) == 0 {
		return fn(x)
	}
	rewritten := make([]Expr, len(children))
	for i, c := range children {
		rewritten[i] = Rewrite(c, fn)
	}
	return fn(WithChildren(x, rewritten))
}

// InheritMeta returns replacement with original's metadata unioned onto it
// (original's keys losing to any replacement already sets on itself). This
// is the "metadata-preserving wrapper" transforms use when a rewrite
// changes a node's shape entirely rather than just its children.
func InheritMeta(original, replacement Expr) Expr {
	merged := original.Meta().Merge(replacement.Meta())
	return replacement.WithMeta(merged)
}

// Symbols returns the set of rule names referenced anywhere under x, via
// Symbol nodes (including inside a Diff's Subtract, a Charset's groups
// cannot reference symbols directly).
func Symbols(x Expr) map[string]bool {
	out := map[string]bool{}
	WalkFunc(x, func(e Expr) {
		if s, ok := e.(Symbol); ok {
			out[s.Name] = true
		}
	})
	return out
}

// ContainsAny reports whether any node under x (inclusive) matches pred.
func ContainsAny(x Expr, pred func(Expr) bool) bool {
	found := false
	WalkFunc(x, func(e Expr) {
		if pred(e) {
			found = true
		}
	})
	return found
}
