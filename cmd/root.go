// Package cmd implements the polygrammar CLI: a single cobra command that
// reads a grammar written in one of the toolkit's surface syntaxes and
// prints the resulting IR (spec §6 "CLI surface").
package cmd

import (
	"github.com/spf13/cobra"
)

// RootCommand is the toolkit's CLI entry point; main.go calls Execute on
// it directly.
var RootCommand = &cobra.Command{
	Use:   "polygrammar",
	Short: "Polyglot grammar toolkit",
	Long:  "Read a context-free grammar written in Lisp, EBNF, or ABNF surface syntax and compile it to the toolkit's IR.",
}

func init() {
	RootCommand.AddCommand(parseCommand)
}
