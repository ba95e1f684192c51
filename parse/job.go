package parse

import (
	"fmt"
	"regexp"

	"github.com/brunokim/polygrammar/rulemap"
)

// contextFrame is one entry of a job's symbolic context path, used only for
// diagnostic rendering (spec §4.3 "name@offset > name@offset > …").
type contextFrame struct {
	name   string
	offset int
}

// job owns the mutable state of a single parse: the furthest offset
// reached, the debug-mode failure log, and the symbolic context stack. A
// job is single-use and not safe to share across goroutines (spec §5); a
// new job is created per Parse/FirstParse call.
type job struct {
	rt   *rulemap.Runtime
	text string

	furthest int

	debug       bool
	debugOffset int
	failures    []Failure

	contextStack []contextFrame
	regexCache   map[string]*regexp.Regexp
}

func newJob(rt *rulemap.Runtime, text string) *job {
	return &job{rt: rt, text: text, regexCache: map[string]*regexp.Regexp{}}
}

func (j *job) pushContext(name string, offset int) {
	j.contextStack = append(j.contextStack, contextFrame{name, offset})
}

func (j *job) popContext() {
	j.contextStack = j.contextStack[:len(j.contextStack)-1]
}

func (j *job) contextPath() []string {
	out := make([]string, len(j.contextStack))
	for i, f := range j.contextStack {
		out[i] = fmt.Sprintf("%s@%d", f.name, f.offset)
	}
	return out
}

// noteAttempt records that the engine reached offset, for furthest-offset
// diagnostic tracking (spec §4.3 "Diagnostics").
func (j *job) noteAttempt(offset int) {
	if offset > j.furthest {
		j.furthest = offset
	}
}

// noteFailure records a leaf-match failure. Outside debug mode this only
// updates the furthest offset; in debug mode, failures exactly at
// debugOffset are collected for the ParseError's candidate list.
func (j *job) noteFailure(kind FailureKind, offset int, detail string) {
	j.noteAttempt(offset)
	if !j.debug || offset != j.debugOffset {
		return
	}
	j.failures = append(j.failures, Failure{
		Kind:   kind,
		Offset: offset,
		Detail: detail,
		Path:   j.contextPath(),
	})
}

// compiledRegexp lazily compiles and caches pattern. Patterns only
// originate from the optimizer's own rendering (optimize/regexp.go), so a
// compile failure here is an implementation bug, not a user error.
func (j *job) compiledRegexp(pattern string) *regexp.Regexp {
	if re, ok := j.regexCache[pattern]; ok {
		return re
	}
	re := regexp.MustCompile(pattern)
	j.regexCache[pattern] = re
	return re
}
