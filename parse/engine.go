package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/brunokim/polygrammar/ir"
)

// state is the nondeterministic engine's per-branch cursor: an input
// offset and the result sequence accumulated so far in the currently
// active rule/token scope (spec §4.3 "State").
type state struct {
	offset  int
	results *resultNode
}

// yieldFunc receives one solution state; returning false asks every
// enclosing match call to stop producing further solutions (the same
// push-style generator contract Go 1.23's range-over-func later
// standardized as iter.Seq — the engine only depends on the function
// shape, not the language feature, so it works unchanged under any Go
// version the module targets).
type yieldFunc func(state) bool

// match dispatches on e's concrete type and calls yield once per solution
// reached from st, in the order spec §4.3 and §8 require (alternative
// order, then repetition order, then sub-branch order). It returns false
// iff yield ever returned false, so callers can propagate an early stop.
//
// A node's own "ignore" tag folds into the propagated scope here, not just
// a rule's top-level tag read at a Symbol boundary: the optimizer already
// treats an inner ignore-tagged node as suppressing contribution to its
// enclosing token/regexp (see optimize/regexp.go's isPurelyRegular), so
// the engine honors the same per-node generality rather than only
// per-rule.
//
// A node's own "token" tag (outside an ignore scope) is honored the same
// way: the node is matched into a fresh result sequence and each solution
// contributes one joined string to the caller's results, so a token rule
// inlined into its caller by the optimizer still yields a single value.
func (j *job) match(e ir.Expr, ignore bool, st state, yield yieldFunc) bool {
	ignore = ignore || e.Meta().Ignore()
	if m := e.Meta(); m.Token() && !ignore {
		plain := e.WithMeta(m.With(ir.KeyToken, false))
		return j.match(plain, ignore, state{offset: st.offset}, func(child state) bool {
			joined := joinToken(collectResults(child.results))
			return yield(state{offset: child.offset, results: cons(st.results, joined)})
		})
	}
	switch t := e.(type) {
	case ir.String_:
		return j.matchString(t, ignore, st, yield)
	case ir.Symbol:
		return j.matchSymbol(t, ignore, st, yield)
	case ir.Charset:
		return j.matchCharset(t, ignore, st, yield)
	case ir.Alt:
		return j.matchAlt(t, ignore, st, yield)
	case ir.Cat:
		return j.matchSeq(t.Exprs, ignore, st, yield)
	case ir.Repeat:
		return j.repeatFrom(t.Expr, t.Min, t.Max, ignore, st, yield)
	case ir.Diff:
		return j.matchDiff(t, ignore, st, yield)
	case ir.Regexp:
		return j.matchRegexp(t, ignore, st, yield)
	case ir.Empty:
		return yield(st)
	case ir.EndOfFile:
		return j.matchEndOfFile(st, yield)
	default:
		panic(fmt.Sprintf("parse: unknown expression variant %T in dispatch", e))
	}
}

func (j *job) matchString(t ir.String_, ignore bool, st state, yield yieldFunc) bool {
	v := t.Value
	j.noteAttempt(st.offset)
	end := st.offset + len(v)
	ok := end <= len(j.text) && matchesLiteral(j.text[st.offset:end], v, t.Meta())
	if !ok {
		j.noteFailure(FailString, st.offset, v)
		return true
	}
	next := state{offset: end, results: st.results}
	if !ignore {
		next.results = cons(st.results, v)
	}
	j.noteAttempt(end)
	return yield(next)
}

func matchesLiteral(candidate, want string, m ir.Metadata) bool {
	if m.CaseInsensitive() && !m.CaseSensitive() {
		return strings.EqualFold(candidate, want)
	}
	return candidate == want
}

func (j *job) matchCharset(t ir.Charset, ignore bool, st state, yield yieldFunc) bool {
	j.noteAttempt(st.offset)
	if st.offset >= len(j.text) {
		j.noteFailure(FailCharset, st.offset, t.String())
		return true
	}
	ch, size := utf8.DecodeRuneInString(j.text[st.offset:])
	if !t.Contains(ch) {
		j.noteFailure(FailCharset, st.offset, t.String())
		return true
	}
	next := state{offset: st.offset + size, results: st.results}
	if !ignore {
		next.results = cons(st.results, string(ch))
	}
	j.noteAttempt(next.offset)
	return yield(next)
}

// matchSymbol resolves t.Name in the rule-map and, unless the rule (or the
// enclosing scope) is ignore-tagged, collapses the recursive call's own
// fresh result sequence into a single value appended to the caller's
// results (spec §4.3 "Symbol(n)").
func (j *job) matchSymbol(t ir.Symbol, ignore bool, st state, yield yieldFunc) bool {
	body, ok := j.rt.Rules[t.Name]
	if !ok {
		panic(fmt.Sprintf("parse: undefined symbol %q (should have been caught at build)", t.Name))
	}
	ruleIgnore := ignore || body.Meta().Ignore()

	j.pushContext(t.Name, st.offset)
	cont := j.match(body, ruleIgnore, state{offset: st.offset}, func(child state) bool {
		if ruleIgnore {
			return yield(state{offset: child.offset, results: st.results})
		}
		value := j.collapseRule(t.Name, body, child.results)
		return yield(state{offset: child.offset, results: cons(st.results, value)})
	})
	j.popContext()
	return cont
}

// collapseRule implements spec §4.3 dispatch rule (a)/(b)/(c): join to a
// token string (optionally visited), call a bound visitor with the
// accumulated args, or fall back to a generic (name, *args) Tuple.
func (j *job) collapseRule(name string, body ir.Expr, results *resultNode) any {
	args := collectResults(results)
	method := j.rt.Method(name)
	if body.Meta().Token() {
		joined := joinToken(args)
		if method != nil {
			return method(joined)
		}
		return joined
	}
	if method != nil {
		return method(args...)
	}
	return Tuple{Name: name, Args: args}
}

func (j *job) matchAlt(t ir.Alt, ignore bool, st state, yield yieldFunc) bool {
	for _, child := range t.Exprs {
		if !j.match(child, ignore, st, yield) {
			return false
		}
	}
	return true
}

func (j *job) matchSeq(exprs []ir.Expr, ignore bool, st state, yield yieldFunc) bool {
	if len(exprs) == 0 {
		return yield(st)
	}
	head, tail := exprs[0], exprs[1:]
	return j.match(head, ignore, st, func(next state) bool {
		return j.matchSeq(tail, ignore, next, yield)
	})
}

// repeatFrom enumerates Repeat(expr, minLeft, maxLeft) greedily: it first
// exhausts every solution reachable by consuming one more repetition, then
// (if the minimum is already satisfied) yields the zero-further-repeats
// continuation at the current state (spec §4.3 "Repeat").
func (j *job) repeatFrom(expr ir.Expr, minLeft, maxLeft int, ignore bool, st state, yield yieldFunc) bool {
	if maxLeft != 0 {
		nextMax := maxLeft
		if nextMax != ir.Unbounded {
			nextMax--
		}
		cont := j.match(expr, ignore, st, func(next state) bool {
			nextMin := minLeft - 1
			if nextMin < 0 {
				nextMin = 0
			}
			return j.repeatFrom(expr, nextMin, nextMax, ignore, next, yield)
		})
		if !cont {
			return false
		}
	}
	if minLeft <= 0 {
		return yield(st)
	}
	return true
}

// matchDiff matches t.Base, then discards a base solution if t.Subtract
// also matches at the same original offset st.offset (spec §9 open
// question, resolved: diff is evaluated at the original offset, not
// wherever base's own match left off).
func (j *job) matchDiff(t ir.Diff, ignore bool, st state, yield yieldFunc) bool {
	return j.match(t.Base, ignore, st, func(next state) bool {
		if j.hasSolution(t.Subtract, ignore, st) {
			return true
		}
		return yield(next)
	})
}

func (j *job) hasSolution(e ir.Expr, ignore bool, st state) bool {
	found := false
	j.match(e, ignore, st, func(state) bool {
		found = true
		return false
	})
	return found
}

func (j *job) matchRegexp(t ir.Regexp, ignore bool, st state, yield yieldFunc) bool {
	j.noteAttempt(st.offset)
	re := j.compiledRegexp(t.Pattern)
	loc := re.FindStringIndex(j.text[st.offset:])
	if loc == nil || loc[0] != 0 {
		j.noteFailure(FailRegexp, st.offset, t.Pattern)
		return true
	}
	matched := j.text[st.offset : st.offset+loc[1]]
	next := state{offset: st.offset + loc[1], results: st.results}
	if !ignore {
		next.results = cons(st.results, matched)
	}
	j.noteAttempt(next.offset)
	return yield(next)
}

func (j *job) matchEndOfFile(st state, yield yieldFunc) bool {
	j.noteAttempt(st.offset)
	if st.offset != len(j.text) {
		j.noteFailure(FailEndOfFile, st.offset, "")
		return true
	}
	return yield(st)
}

// run matches the named rule at offset as if it were referenced by a
// Symbol, collapsing its own result sequence into a single Solution value
// per call (spec §4.3; scenario 1 in §8 shows a top-level parse producing
// the entry rule's own collapsed tuple, not its raw result list).
func (j *job) run(start string, offset int, yield func(Solution) bool) bool {
	body, ok := j.rt.Rules[start]
	if !ok {
		panic(fmt.Sprintf("parse: unknown start rule %q", start))
	}
	ignore := body.Meta().Ignore()

	j.pushContext(start, offset)
	cont := j.match(body, ignore, state{offset: offset}, func(child state) bool {
		value := j.collapseRule(start, body, child.results)
		return yield(Solution{Value: value, Offset: child.offset})
	})
	j.popContext()
	return cont
}
