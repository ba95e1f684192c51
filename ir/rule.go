package ir

// Rule is a named expression, optionally a directive rather than an actual
// production (see Directive below). Duplicate-name merging semantics at
// build time are controlled by IsAdditionalAlt / IsAdditionalCat.
type Rule struct {
	Name string
	Expr Expr

	// IsAdditionalAlt means: if Name already has an entry when this Rule is
	// processed, merge as Alt(prev, Expr) instead of reporting a duplicate.
	// Surface grammars set this for ABNF's "=/" operator.
	IsAdditionalAlt bool

	// IsAdditionalCat means: if Name already has an entry, merge as
	// Cat(prev, Expr) instead of reporting a duplicate.
	IsAdditionalCat bool

	// Directive, if non-nil, makes this Rule a build-time directive
	// (import/ignore) instead of a production; Expr is unused in that case.
	Directive *Directive
}

// DirectiveKind enumerates the directive forms a Rule stream may carry.
type DirectiveKind int

const (
	// ImportDirective borrows another grammar's optimized rule as a local
	// rule: "import G S [as A]".
	ImportDirective DirectiveKind = iota
	// IgnoreDirective appends a rule to the synthetic "_ignored_tokens"
	// rule: "ignore S".
	IgnoreDirective
)

// Directive is the expanded form of an `import`/`ignore` statement
// appearing in a rule stream (spec §4.1).
type Directive struct {
	Kind DirectiveKind

	// Grammar names the imported-from grammar in a catalog (ImportDirective
	// only).
	Grammar string

	// Symbol is the rule name being imported or ignored.
	Symbol string

	// Alias is the local name the imported rule is bound to; if empty,
	// Symbol is reused (ImportDirective only).
	Alias string
}

// Grammar is a non-empty ordered sequence of Rule; the entry rule is the
// first non-directive rule.
type Grammar struct {
	Name  string
	Rules []Rule
}

// Entry returns the grammar's entry rule: the first Rule that is not a
// directive. Panics if the grammar has no non-directive rule, which a
// well-formed Grammar never does (invariant 5).
func (g *Grammar) Entry() Rule {
	for _, r := range g.Rules {
		if r.Directive == nil {
			return r
		}
	}
	panic("ir: grammar " + g.Name + " has no entry rule")
}

// RuleMap is the executable dictionary from rule name to expression,
// produced by the rule-map builder and rewritten in place by the
// optimizer.
type RuleMap map[string]Expr

// Clone returns a shallow copy of rm (the Expr values themselves are
// immutable, so a shallow copy is a deep-enough copy for rewrite passes
// that want to avoid mutating the caller's map).
func (rm RuleMap) Clone() RuleMap {
	out := make(RuleMap, len(rm))
	for k, v := range rm {
		out[k] = v
	}
	return out
}

// VisitorFunc is a user-supplied visitor callable. Its arity is driven by
// however many result values the corresponding rule's body accumulated;
// Go's variadic ...any mirrors that dynamic arity directly (spec §9
// "Visitor polymorphism").
type VisitorFunc func(args ...any) any

// MethodMap is the executable dictionary from rule name to bound visitor
// callable.
type MethodMap map[string]VisitorFunc
