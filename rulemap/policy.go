// Package rulemap builds a Runtime (an ir.RuleMap plus an ir.MethodMap) out
// of an ir.Grammar: it expands import/ignore directives, applies the
// leading-underscore/leading-uppercase naming conventions, merges or
// rejects duplicate rule names per the configured policy, binds visitor
// methods by reflection, and checks that every referenced Symbol resolves.
package rulemap

// DuplicatePolicy controls what happens when a rule name is inserted twice
// into the rule-map (spec §4.1).
type DuplicatePolicy int

const (
	// OnDuplicateError fails the build (the default).
	OnDuplicateError DuplicatePolicy = iota
	// OnDuplicateWarn logs a warning (via the Warnings collected on the
	// build result) and keeps the first occurrence.
	OnDuplicateWarn
	// OnDuplicateIgnore silently keeps the first occurrence.
	OnDuplicateIgnore
	// OnDuplicateOverrides replaces the previous occurrence with the new
	// one.
	OnDuplicateOverrides
	// OnDuplicateOverloads treats the new occurrence as an additional
	// alternative, same as IsAdditionalAlt.
	OnDuplicateOverloads
)

// UnusedVisitorPolicy controls what happens when a visitor method does not
// correspond to any rule name (spec §4.1).
type UnusedVisitorPolicy int

const (
	// OnUnusedError fails the build (the default).
	OnUnusedError UnusedVisitorPolicy = iota
	// OnUnusedWarn logs a warning and continues.
	OnUnusedWarn
	// OnUnusedIgnore silently continues.
	OnUnusedIgnore
)

// Options configures Build. The zero value is the spec's default: both
// policies set to "error", no catalog (so any import directive fails).
type Options struct {
	OnDuplicateRule        DuplicatePolicy
	OnUnusedVisitorMethods UnusedVisitorPolicy

	// Catalog resolves grammar names used by `import` directives to an
	// already-built Runtime whose optimized rules may be borrowed. A nil
	// Catalog makes every `import` directive an error (spec §9 open
	// question, resolved: the catalog is optional).
	Catalog map[string]*Runtime
}
