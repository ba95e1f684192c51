package optimize

import "github.com/brunokim/polygrammar/ir"

// inline replaces every Symbol(n) whose target is inlinable with n's own
// (recursively inlined) body, merging n's metadata onto the substituted
// subtree. A name currently being expanded (direct or indirect
// self-reference) is left as a Symbol rather than expanded further (spec
// §4.2 "Self-references are never expanded").
func inline(rm ir.RuleMap, methods ir.MethodMap) ir.RuleMap {
	cache := map[string]ir.Expr{}
	onStack := map[string]bool{}

	var resolve func(name string) ir.Expr
	resolve = func(name string) ir.Expr {
		if e, ok := cache[name]; ok {
			return e
		}
		if onStack[name] {
			sym, _ := ir.NewSymbol(name)
			return sym
		}
		onStack[name] = true
		expanded := expandSymbols(rm[name], rm, methods, resolve)
		onStack[name] = false
		cache[name] = expanded
		return expanded
	}

	out := make(ir.RuleMap, len(rm))
	for name := range rm {
		out[name] = resolve(name)
	}
	return out
}

// isInlinable reports whether references to rule name may be replaced by
// its body: either it has no visitor method, or its body is tagged token
// or ignore (so the arity it contributes to its caller is fixed at 0 or 1
// regardless of inlining, per spec §4.2).
func isInlinable(name string, rm ir.RuleMap, methods ir.MethodMap) bool {
	if _, hasMethod := methods[name]; !hasMethod {
		return true
	}
	body, ok := rm[name]
	if !ok {
		return false
	}
	return body.Meta().Token() || body.Meta().Ignore()
}

// expandSymbols rewrites every inlinable Symbol reference inside e with its
// resolved body, via the generic post-order ir.Rewrite.
func expandSymbols(e ir.Expr, rm ir.RuleMap, methods ir.MethodMap, resolve func(string) ir.Expr) ir.Expr {
	return ir.Rewrite(e, func(n ir.Expr) ir.Expr {
		sym, ok := n.(ir.Symbol)
		if !ok {
			return n
		}
		if !isInlinable(sym.Name, rm, methods) {
			return n
		}
		return ir.InheritMeta(sym, resolve(sym.Name))
	})
}
