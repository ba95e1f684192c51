package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/brunokim/polygrammar/internal/enumflag"
	"github.com/brunokim/polygrammar/internal/pglog"
	"github.com/brunokim/polygrammar/ir"
	"github.com/brunokim/polygrammar/surface/abnf"
	"github.com/brunokim/polygrammar/surface/ebnf"
	"github.com/brunokim/polygrammar/surface/lisp"
)

const (
	langLisp = "lisp"
	langEBNF = "ebnf"
	langABNF = "abnf"
)

type parseParams struct {
	language *enumflag.EnumFlag
	verbose  bool
}

var configuredParseParams = parseParams{
	language: enumflag.New(langLisp, []string{langLisp, langEBNF, langABNF}),
}

var parseCommand = &cobra.Command{
	Use:   "parse <text>",
	Short: "Parse a grammar in a surface syntax and print its IR",
	Long:  `Parse reads a single positional argument as a grammar written in the syntax named by --grammar-language and prints the resulting IR rules.`,
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		log := pglog.New()
		if configuredParseParams.verbose {
			log.SetLevel(pglog.Debug)
		}
		os.Exit(runParse(args, &configuredParseParams, os.Stdout, os.Stderr, log))
	},
}

func init() {
	parseCommand.Flags().VarP(configuredParseParams.language, "grammar-language", "g", "surface syntax to read: lisp, ebnf, or abnf")
	parseCommand.Flags().BoolVarP(&configuredParseParams.verbose, "verbose", "v", false, "log debug information while parsing")
}

func runParse(args []string, params *parseParams, stdout, stderr io.Writer, log pglog.Logger) int {
	text := args[0]
	language := params.language.Value

	log.Debug("parsing %d bytes of %s source", len(text), language)

	var grammar *ir.Grammar
	var err error
	switch language {
	case langLisp:
		grammar, err = lisp.Parse(text)
	case langEBNF:
		grammar, err = ebnf.Parse(text)
	case langABNF:
		grammar, err = abnf.Parse(text)
	default:
		fmt.Fprintf(stderr, "polygrammar: unknown grammar language %q\n", language)
		return 1
	}
	if err != nil {
		log.Error("parse failed: %v", err)
		fmt.Fprintf(stderr, "polygrammar: %v\n", err)
		return 1
	}

	printGrammar(stdout, grammar)
	return 0
}

func printGrammar(w io.Writer, g *ir.Grammar) {
	name := g.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(w, "grammar %s\n", name)
	for _, r := range g.Rules {
		if d := r.Directive; d != nil {
			printDirective(w, d)
			continue
		}
		op := "="
		if r.IsAdditionalAlt {
			op = "=/"
		} else if r.IsAdditionalCat {
			op = ".="
		}
		fmt.Fprintf(w, "  %s %s %s\n", r.Name, op, r.Expr)
	}
}

func printDirective(w io.Writer, d *ir.Directive) {
	switch d.Kind {
	case ir.ImportDirective:
		if d.Alias != "" {
			fmt.Fprintf(w, "  import %s %s as %s\n", d.Grammar, d.Symbol, d.Alias)
		} else {
			fmt.Fprintf(w, "  import %s %s\n", d.Grammar, d.Symbol)
		}
	case ir.IgnoreDirective:
		fmt.Fprintf(w, "  ignore %s\n", d.Symbol)
	}
}
