// Package ir defines the polyglot grammar toolkit's intermediate
// representation: the algebraic expression tree every surface syntax
// compiles into, the Rule/Grammar containers that name expressions, and the
// Metadata side-channel that token/ignore/case tags and user annotations
// ride on.
//
// Expr follows the teacher's ast.Value shape: a small interface implemented
// by one Go type per variant, discriminated by type switch everywhere (see
// Equal below, and the Walk/Rewrite helpers in transform.go) rather than by
// a tag field. Every concrete type is a plain value (no pointers required
// for identity), so two structurally identical expressions compare Equal
// regardless of where they were built, and Metadata never participates in
// that comparison.
package ir

import (
	"fmt"
	"strings"
)

// Expr is the common interface for every grammar expression node.
type Expr interface {
	// Equal reports whether other has the same structure as this node.
	// Metadata is not compared.
	Equal(other Expr) bool

	// String returns a debug representation, not a round-trippable surface
	// syntax (surface rendering is out of this package's scope).
	String() string

	// Meta returns this node's metadata. Never nil in practice, but callers
	// should treat a nil map as "no tags" via its own nil-safe methods.
	Meta() Metadata

	// WithMeta returns a copy of this node with its metadata replaced by m.
	WithMeta(m Metadata) Expr
}

// ---- String ----

// String_ is a literal-match expression. (Named with a trailing underscore
// because String is also the method name on Expr and the builtin type.)
type String_ struct {
	Value string
	M     Metadata
}

// NewString returns a String_ expression, or an error if value is empty.
func NewString(value string) (Expr, error) {
	if value == "" {
		return nil, newConstructionError(EmptyExprErr, "String value must be non-empty")
	}
	return String_{Value: value}, nil
}

func (e String_) Meta() Metadata { return e.M }
func (e String_) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e String_) Equal(other Expr) bool {
	o, ok := other.(String_)
	return ok && o.Value == e.Value
}
func (e String_) String() string { return fmt.Sprintf("%q", e.Value) }

// ---- Symbol ----

// Symbol references another rule by name.
type Symbol struct {
	Name string
	M    Metadata
}

// NewSymbol returns a Symbol expression, or an error if name is empty.
func NewSymbol(name string) (Expr, error) {
	if name == "" {
		return nil, newConstructionError(EmptyExprErr, "Symbol name must be non-empty")
	}
	return Symbol{Name: name}, nil
}

func (e Symbol) Meta() Metadata { return e.M }
func (e Symbol) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Symbol) Equal(other Expr) bool {
	o, ok := other.(Symbol)
	return ok && o.Name == e.Name
}
func (e Symbol) String() string { return e.Name }

// ---- Char / CharRange / Charset ----

// Char matches exactly one codepoint. Only meaningful inside a Charset.
type Char struct {
	Ch rune
	M  Metadata
}

// NewChar returns a Char expression.
func NewChar(ch rune) Expr { return Char{Ch: ch} }

func (e Char) Meta() Metadata { return e.M }
func (e Char) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Char) Equal(other Expr) bool {
	o, ok := other.(Char)
	return ok && o.Ch == e.Ch
}
func (e Char) String() string { return fmt.Sprintf("%q", e.Ch) }

// CharRange is an inclusive codepoint interval, Start < End.
type CharRange struct {
	Start, End rune
	M          Metadata
}

// NewCharRange returns a CharRange, or an error if start >= end.
func NewCharRange(start, end rune) (Expr, error) {
	if start >= end {
		return nil, newConstructionError(InvalidCharRangeErr,
			"CharRange start %q must be less than end %q (use Char for a single codepoint)", start, end)
	}
	return CharRange{Start: start, End: end}, nil
}

func (e CharRange) Meta() Metadata { return e.M }
func (e CharRange) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e CharRange) Equal(other Expr) bool {
	o, ok := other.(CharRange)
	return ok && o.Start == e.Start && o.End == e.End
}
func (e CharRange) String() string { return fmt.Sprintf("%q-%q", e.Start, e.End) }

// Width returns the number of codepoints covered: 1 for Char, End-Start+1
// for CharRange.
func Width(group Expr) int {
	switch g := group.(type) {
	case Char:
		return 1
	case CharRange:
		return int(g.End-g.Start) + 1
	default:
		panic(fmt.Sprintf("ir: %T is not a charset group", group))
	}
}

// Charset is a set of single characters, expressed as a union of Char and
// CharRange groups.
type Charset struct {
	Groups []Expr
	M      Metadata
}

// NewCharset returns a Charset over groups (each a Char or CharRange), or an
// error if groups is empty or contains another kind of expression.
func NewCharset(groups ...Expr) (Expr, error) {
	if len(groups) == 0 {
		return nil, newConstructionError(EmptyExprErr, "Charset must have at least one group")
	}
	for _, g := range groups {
		switch g.(type) {
		case Char, CharRange:
		default:
			return nil, newConstructionError(EmptyExprErr, "Charset group must be Char or CharRange, got %T", g)
		}
	}
	return Charset{Groups: groups}, nil
}

func (e Charset) Meta() Metadata { return e.M }
func (e Charset) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Charset) Equal(other Expr) bool {
	o, ok := other.(Charset)
	if !ok || len(o.Groups) != len(e.Groups) {
		return false
	}
	for i, g := range e.Groups {
		if !g.Equal(o.Groups[i]) {
			return false
		}
	}
	return true
}
func (e Charset) String() string {
	parts := make([]string, len(e.Groups))
	for i, g := range e.Groups {
		parts[i] = g.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Contains reports whether ch falls within any group of the charset.
func (e Charset) Contains(ch rune) bool {
	for _, g := range e.Groups {
		switch g := g.(type) {
		case Char:
			if g.Ch == ch {
				return true
			}
		case CharRange:
			if ch >= g.Start && ch <= g.End {
				return true
			}
		}
	}
	return false
}

// ---- Alt / Cat ----

// Alt is an ordered alternation; by invariant it has at least two children
// and never directly nests another Alt (use NewAlt to enforce this).
type Alt struct {
	Exprs []Expr
	M     Metadata
}

// NewAlt builds an alternation, flattening nested Alt children and
// collapsing a singleton result to its sole child (invariant 3).
func NewAlt(exprs ...Expr) Expr {
	flat := flattenVariadic[Alt](exprs, func(a Alt) []Expr { return a.Exprs })
	if len(flat) == 1 {
		return flat[0]
	}
	return Alt{Exprs: flat}
}

func (e Alt) Meta() Metadata { return e.M }
func (e Alt) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Alt) Equal(other Expr) bool {
	o, ok := other.(Alt)
	return ok && equalExprSlice(e.Exprs, o.Exprs)
}
func (e Alt) String() string { return "(" + joinExpr(e.Exprs, " | ") + ")" }

// Cat is an ordered concatenation; by invariant it has at least two
// children and never directly nests another Cat (use NewCat to enforce
// this).
type Cat struct {
	Exprs []Expr
	M     Metadata
}

// NewCat builds a concatenation, flattening nested Cat children and
// collapsing a singleton result to its sole child (invariant 3).
func NewCat(exprs ...Expr) Expr {
	flat := flattenVariadic[Cat](exprs, func(c Cat) []Expr { return c.Exprs })
	if len(flat) == 1 {
		return flat[0]
	}
	return Cat{Exprs: flat}
}

func (e Cat) Meta() Metadata { return e.M }
func (e Cat) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Cat) Equal(other Expr) bool {
	o, ok := other.(Cat)
	return ok && equalExprSlice(e.Exprs, o.Exprs)
}
func (e Cat) String() string { return "(" + joinExpr(e.Exprs, " ") + ")" }

// flattenVariadic flattens any top-level child of type T (unwrapping via
// children) into the result slice, one level, as NewAlt/NewCat require.
func flattenVariadic[T Expr](exprs []Expr, children func(T) []Expr) []Expr {
	var out []Expr
	for _, e := range exprs {
		if t, ok := e.(T); ok {
			out = append(out, children(t)...)
		} else {
			out = append(out, e)
		}
	}
	return out
}

func equalExprSlice(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func joinExpr(exprs []Expr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// ---- Repeat ----

// Unbounded is the Repeat.Max sentinel meaning "no upper bound".
const Unbounded = -1

// Repeat matches Expr a bounded number of times, Min <= count <= Max
// (or unboundedly many if Max == Unbounded).
type Repeat struct {
	Expr     Expr
	Min, Max int
	M        Metadata
}

// NewRepeat returns a Repeat, or an error if Min < 0 or (Max bounded and
// Min > Max).
func NewRepeat(expr Expr, min, max int) (Expr, error) {
	if min < 0 {
		return nil, newConstructionError(InvalidRepeatErr, "Repeat min %d must be >= 0", min)
	}
	if max != Unbounded && min > max {
		return nil, newConstructionError(InvalidRepeatErr, "Repeat min %d must be <= max %d", min, max)
	}
	return Repeat{Expr: expr, Min: min, Max: max}, nil
}

// Optional returns Repeat(expr, 0, 1).
func Optional(expr Expr) Expr { r, _ := NewRepeat(expr, 0, 1); return r }

// ZeroOrMore returns Repeat(expr, 0, Unbounded).
func ZeroOrMore(expr Expr) Expr { r, _ := NewRepeat(expr, 0, Unbounded); return r }

// OneOrMore returns Repeat(expr, 1, Unbounded).
func OneOrMore(expr Expr) Expr { r, _ := NewRepeat(expr, 1, Unbounded); return r }

func (e Repeat) Meta() Metadata { return e.M }
func (e Repeat) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Repeat) Equal(other Expr) bool {
	o, ok := other.(Repeat)
	return ok && e.Min == o.Min && e.Max == o.Max && e.Expr.Equal(o.Expr)
}
func (e Repeat) String() string {
	switch {
	case e.Min == 0 && e.Max == 1:
		return e.Expr.String() + "?"
	case e.Min == 0 && e.Max == Unbounded:
		return e.Expr.String() + "*"
	case e.Min == 1 && e.Max == Unbounded:
		return e.Expr.String() + "+"
	case e.Max == Unbounded:
		return fmt.Sprintf("%s{%d,}", e.Expr, e.Min)
	default:
		return fmt.Sprintf("%s{%d,%d}", e.Expr, e.Min, e.Max)
	}
}

// ---- Diff ----

// Diff accepts what Base accepts at the current offset that Subtract does
// not accept at the same original offset (spec §9 open question,
// resolved).
type Diff struct {
	Base, Subtract Expr
	M              Metadata
}

// NewDiff returns a Diff expression.
func NewDiff(base, subtract Expr) Expr {
	return Diff{Base: base, Subtract: subtract}
}

func (e Diff) Meta() Metadata { return e.M }
func (e Diff) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Diff) Equal(other Expr) bool {
	o, ok := other.(Diff)
	return ok && e.Base.Equal(o.Base) && e.Subtract.Equal(o.Subtract)
}
func (e Diff) String() string { return fmt.Sprintf("(%s - %s)", e.Base, e.Subtract) }

// IsCharsetDiffShape reports whether d is a CharsetDiff in the narrowed
// sense used by the optimizer's interval-arithmetic folding: Base is a
// Charset, Symbol, or (recursively) another CharsetDiff-shaped Diff, and
// Subtract is a Charset or Symbol.
func IsCharsetDiffShape(d Diff) bool {
	switch d.Base.(type) {
	case Charset, Symbol:
	case Diff:
		if !IsCharsetDiffShape(d.Base.(Diff)) {
			return false
		}
	default:
		return false
	}
	switch d.Subtract.(type) {
	case Charset, Symbol:
		return true
	default:
		return false
	}
}

// ---- Regexp ----

// Regexp is produced by the optimizer for token/ignored regular
// subexpressions. It is opaque to tree transforms: it has no children.
type Regexp struct {
	Pattern string
	M       Metadata
}

// NewRegexp returns a Regexp expression.
func NewRegexp(pattern string) Expr { return Regexp{Pattern: pattern} }

func (e Regexp) Meta() Metadata { return e.M }
func (e Regexp) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Regexp) Equal(other Expr) bool {
	o, ok := other.(Regexp)
	return ok && o.Pattern == e.Pattern
}
func (e Regexp) String() string { return "/" + e.Pattern + "/" }

// ---- Empty / EndOfFile ----

// Empty matches the empty string. It is introduced by the optimizer as a
// neutral element; surface grammars do not normally spell it out.
type Empty struct {
	M Metadata
}

// NewEmpty returns an Empty expression.
func NewEmpty() Expr { return Empty{} }

func (e Empty) Meta() Metadata { return e.M }
func (e Empty) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e Empty) Equal(other Expr) bool {
	_, ok := other.(Empty)
	return ok
}
func (e Empty) String() string { return "ε" }

// EndOfFile matches only when the current offset equals the input length.
type EndOfFile struct {
	M Metadata
}

// NewEndOfFile returns an EndOfFile expression.
func NewEndOfFile() Expr { return EndOfFile{} }

func (e EndOfFile) Meta() Metadata { return e.M }
func (e EndOfFile) WithMeta(m Metadata) Expr {
	e.M = m
	return e
}
func (e EndOfFile) Equal(other Expr) bool {
	_, ok := other.(EndOfFile)
	return ok
}
func (e EndOfFile) String() string { return "$" }
