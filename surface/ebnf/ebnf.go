package ebnf

import (
	"fmt"

	"github.com/brunokim/polygrammar/ir"
	"github.com/brunokim/polygrammar/optimize"
	"github.com/brunokim/polygrammar/parse"
	"github.com/brunokim/polygrammar/rulemap"
)

var readerRuntime = mustBuildReader()

func mustBuildReader() *rulemap.Runtime {
	rt, err := rulemap.Build(readerGrammar(), builder{}, rulemap.Options{})
	if err != nil {
		panic(fmt.Sprintf("ebnf: bootstrap reader grammar failed to build: %v", err))
	}
	rt.Rules = optimize.Optimize(rt.Rules, rt.Methods)
	return rt
}

// Parse reads text as a sequence of "name = expr ;" rule declarations and
// returns the resulting *ir.Grammar (spec §6).
func Parse(text string) (*ir.Grammar, error) {
	sol, err := parse.FirstParse(readerRuntime, text)
	if err != nil {
		return nil, err
	}
	g, ok := sol.Value.(*ir.Grammar)
	if !ok {
		return nil, fmt.Errorf("ebnf: internal error: expected *ir.Grammar, got %T", sol.Value)
	}
	return g, nil
}
