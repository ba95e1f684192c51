// Package optimize rewrites a rule-map produced by rulemap.Build into an
// equivalent but faster one: inlining non-visitor-bound rules, promoting
// single-character strings to charsets, coalescing adjacent charsets,
// folding charset subtraction via interval arithmetic, eliminating Empty
// noise, and finally collapsing purely-regular token/ignore subtrees into
// a single Regexp node.
//
// Every stage preserves the language the rule-map accepts (spec §8
// "Optimizer preserves language"): each rewrite only replaces a subtree
// with another that matches the same set of prefixes of any input, it
// never changes which strings are accepted.
package optimize

import "github.com/brunokim/polygrammar/ir"

// Optimize runs the full pipeline over rm and returns a new rule-map; rm
// itself is left untouched. methods is consulted by the inlining stage to
// decide which rules must keep their Symbol indirection (a visitor-bound,
// non-token/ignore rule is never inlined, since collapsing it would change
// how many result values its caller receives).
func Optimize(rm ir.RuleMap, methods ir.MethodMap) ir.RuleMap {
	rm = inline(rm, methods)
	rm = mapRules(rm, promoteStringsToCharsets)
	rm = coalesceAndFoldCharsets(rm)
	rm = mapRules(rm, eliminateEmpty)
	rm = mapRules(rm, convertToRegexp)
	return rm
}

// mapRules applies a single-rule ir.Expr -> ir.Expr transform to every
// entry of rm, returning a new rule-map.
func mapRules(rm ir.RuleMap, fn func(ir.Expr) ir.Expr) ir.RuleMap {
	out := make(ir.RuleMap, len(rm))
	for name, expr := range rm {
		out[name] = fn(expr)
	}
	return out
}
