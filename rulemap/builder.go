package rulemap

import (
	"fmt"
	"unicode"

	"github.com/brunokim/polygrammar/internal/set"
	"github.com/brunokim/polygrammar/ir"
)

// ignoredTokensRule is the synthetic rule name that `ignore S` directives
// accumulate into (spec §4.1).
const ignoredTokensRule = "_ignored_tokens"

// Build flattens grammar into a Runtime: directives are expanded, duplicate
// rule names are merged or rejected per opts.OnDuplicateRule, naming
// conventions tag ignore/token metadata, visitor is bound by reflection,
// and every Symbol is checked to resolve.
func Build(grammar *ir.Grammar, visitor any, opts Options) (*Runtime, error) {
	rt := &Runtime{Rules: ir.RuleMap{}, Entry: grammar.Entry().Name}

	var errs ir.Errors
	var ignored []string

	for _, r := range grammar.Rules {
		if r.Directive != nil {
			if err := applyDirective(rt.Rules, r.Directive, &ignored, opts); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := insert(rt.Rules, r.Name, r.Expr, r.IsAdditionalAlt, r.IsAdditionalCat, opts, &rt.Warnings); err != nil {
			errs = append(errs, err)
		}
	}

	if len(ignored) > 0 {
		symExprs := make([]ir.Expr, len(ignored))
		for i, name := range ignored {
			sym, _ := ir.NewSymbol(name)
			symExprs[i] = sym
		}
		combined := ir.NewAlt(symExprs...)
		if err := insert(rt.Rules, ignoredTokensRule, combined, false, false, opts, &rt.Warnings); err != nil {
			errs = append(errs, err)
		}
	}

	applyNamingConventions(rt.Rules)

	if err := bindVisitor(rt, visitor, opts); err != nil {
		errs = append(errs, err)
	}

	if err := checkMissingSymbols(rt.Rules); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return rt, nil
}

// insert applies the duplicate-rule merge/report policy for a single
// (name, expr) pair being added to rm.
func insert(rm ir.RuleMap, name string, expr ir.Expr, isAdditionalAlt, isAdditionalCat bool, opts Options, warnings *[]string) error {
	prev, exists := rm[name]
	if !exists {
		rm[name] = expr
		return nil
	}

	switch {
	case isAdditionalAlt:
		rm[name] = ir.NewAlt(prev, expr)
	case isAdditionalCat:
		rm[name] = ir.NewCat(prev, expr)
	case opts.OnDuplicateRule == OnDuplicateOverrides:
		rm[name] = expr
	case opts.OnDuplicateRule == OnDuplicateOverloads:
		rm[name] = ir.NewAlt(prev, expr)
	case opts.OnDuplicateRule == OnDuplicateWarn:
		*warnings = append(*warnings, fmt.Sprintf("rule %q redefined, keeping first definition", name))
	case opts.OnDuplicateRule == OnDuplicateIgnore:
		// keep prev silently
	default:
		return fmt.Errorf("duplicate rule %q", name)
	}
	return nil
}

// applyDirective expands a single import/ignore directive.
func applyDirective(rm ir.RuleMap, d *ir.Directive, ignored *[]string, opts Options) error {
	switch d.Kind {
	case ir.IgnoreDirective:
		*ignored = append(*ignored, d.Symbol)
		return nil
	case ir.ImportDirective:
		if opts.Catalog == nil {
			return fmt.Errorf("import %s %s: no grammar catalog configured", d.Grammar, d.Symbol)
		}
		src, ok := opts.Catalog[d.Grammar]
		if !ok {
			return fmt.Errorf("import %s %s: grammar %q not found in catalog", d.Grammar, d.Symbol, d.Grammar)
		}
		expr, ok := src.Rules[d.Symbol]
		if !ok {
			return fmt.Errorf("import %s %s: rule %q not found in grammar %q", d.Grammar, d.Symbol, d.Symbol, d.Grammar)
		}
		local := d.Alias
		if local == "" {
			local = d.Symbol
		}
		rm[local] = expr
		return nil
	default:
		return fmt.Errorf("unknown directive kind %v", d.Kind)
	}
}

// applyNamingConventions tags every rule's right-hand side with ignore
// (leading underscore) or token (leading uppercase) per spec §4.1.
func applyNamingConventions(rm ir.RuleMap) {
	for name, expr := range rm {
		switch {
		case len(name) > 0 && name[0] == '_':
			rm[name] = expr.WithMeta(expr.Meta().With(ir.KeyIgnore, true))
		case len(name) > 0 && unicode.IsUpper(rune(name[0])):
			rm[name] = expr.WithMeta(expr.Meta().With(ir.KeyToken, true))
		}
	}
}

// checkMissingSymbols verifies invariant 1: every Symbol referenced by any
// rule's expression names an entry of rm.
func checkMissingSymbols(rm ir.RuleMap) error {
	missing := set.Set[string]{}
	for _, expr := range rm {
		for name := range ir.Symbols(expr) {
			if _, ok := rm[name]; !ok {
				missing.Add(name)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("undefined symbol(s): %v", missing.Slice())
}
