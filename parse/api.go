// Package parse implements the nondeterministic recursive-descent parser
// engine: given an optimized rule-map and an input string, it enumerates
// every successful parse, shaping results according to each rule's
// token/ignore metadata and any bound visitor methods (spec §4.3, §6).
package parse

import "github.com/brunokim/polygrammar/rulemap"

// config collects Parse/FirstParse's optional start-symbol and
// start-offset parameters (spec §6 "start?, offset?").
type config struct {
	start  string
	offset int
}

// Option configures a Parse or FirstParse call.
type Option func(*config)

// WithStart overrides the entry rule (default: the runtime's own entry).
func WithStart(name string) Option {
	return func(c *config) { c.start = name }
}

// WithOffset starts parsing at offset instead of 0.
func WithOffset(offset int) Option {
	return func(c *config) { c.offset = offset }
}

func resolveConfig(rt *rulemap.Runtime, opts []Option) config {
	c := config{start: rt.Entry, offset: 0}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Parse returns a lazy sequence of solutions for text against rt, as a
// push-style generator: call the returned function with a callback that
// returns true to keep receiving solutions, false to stop early. An empty
// sequence (the callback is never invoked) means no parse exists; Parse
// itself never errors (spec §7 "bulk enumeration simply returns no
// items").
func Parse(rt *rulemap.Runtime, text string, opts ...Option) func(yield func(Solution) bool) {
	cfg := resolveConfig(rt, opts)
	return func(yield func(Solution) bool) {
		newJob(rt, text).run(cfg.start, cfg.offset, yield)
	}
}

// FirstParse returns the first solution Parse would yield, or a
// *ParseError diagnosing the furthest point the engine reached if no
// solution exists (spec §6, §7).
func FirstParse(rt *rulemap.Runtime, text string, opts ...Option) (Solution, error) {
	cfg := resolveConfig(rt, opts)
	j := newJob(rt, text)

	var found Solution
	ok := false
	j.run(cfg.start, cfg.offset, func(sol Solution) bool {
		found, ok = sol, true
		return false
	})
	if ok {
		return found, nil
	}

	j.debug = true
	j.debugOffset = j.furthest
	j.failures = nil
	j.contextStack = nil
	j.run(cfg.start, cfg.offset, func(Solution) bool { return false })

	line, col, lineText := locate(text, j.debugOffset)
	return Solution{}, &ParseError{
		Text:     text,
		Offset:   j.debugOffset,
		Line:     line,
		Column:   col,
		LineText: lineText,
		Failures: j.failures,
	}
}
