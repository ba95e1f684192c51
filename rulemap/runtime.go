package rulemap

import "github.com/brunokim/polygrammar/ir"

// Runtime is the executable form of a grammar: an immutable rule-map plus
// whatever visitor methods were bound to it. Once returned from Build, it
// is treated as immutable (spec §3 invariant 6) and safe for concurrent
// reads from multiple parse jobs (spec §5).
type Runtime struct {
	Rules   ir.RuleMap
	Methods ir.MethodMap
	Entry   string

	// Warnings collects messages produced under a "warn" policy, in the
	// order they were generated, so callers (notably the CLI) can surface
	// them without failing the build.
	Warnings []string
}

// Method returns the visitor callable bound to name, or nil if none was
// bound.
func (rt *Runtime) Method(name string) ir.VisitorFunc {
	return rt.Methods[name]
}
