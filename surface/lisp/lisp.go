package lisp

import (
	"fmt"

	"github.com/brunokim/polygrammar/ir"
	"github.com/brunokim/polygrammar/optimize"
	"github.com/brunokim/polygrammar/parse"
	"github.com/brunokim/polygrammar/rulemap"
)

// readerRuntime is built once: the reader grammar never changes, only the
// text fed through it does.
var readerRuntime = mustBuildReader()

func mustBuildReader() *rulemap.Runtime {
	rt, err := rulemap.Build(readerGrammar(), reader{}, rulemap.Options{})
	if err != nil {
		panic(fmt.Sprintf("lisp: bootstrap reader grammar failed to build: %v", err))
	}
	rt.Rules = optimize.Optimize(rt.Rules, rt.Methods)
	return rt
}

// Parse reads text as a single Lisp "(grammar name rule...)" form and
// interprets it into an *ir.Grammar (spec §6).
func Parse(text string) (*ir.Grammar, error) {
	sol, err := parse.FirstParse(readerRuntime, text)
	if err != nil {
		return nil, err
	}
	datums, ok := sol.Value.([]any)
	if !ok || len(datums) != 1 {
		return nil, fmt.Errorf("lisp: expected a single top-level grammar form, got %d forms", len(datums))
	}
	return interpretGrammar(datums[0])
}
