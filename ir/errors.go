package ir

import (
	"fmt"
	"strings"
)

// ErrCode classifies grammar construction errors (see spec §7.1).
type ErrCode int

const (
	// InvalidCharRangeErr indicates a CharRange with start >= end.
	InvalidCharRangeErr ErrCode = iota
	// InvalidRepeatErr indicates a Repeat with min > max.
	InvalidRepeatErr
	// InvalidDiffErr indicates a Diff whose base/diff types don't match the
	// narrowed CharsetDiff shape when one was required.
	InvalidDiffErr
	// EmptyExprErr indicates a Charset built with no groups or with a group
	// that is not a Char/CharRange, or a String/Symbol built with empty text.
	EmptyExprErr
)

// ConstructionError is returned by IR constructors when the data does not
// satisfy the invariants in spec §3.
type ConstructionError struct {
	Code    ErrCode
	Message string
}

func (e *ConstructionError) Error() string {
	return e.Message
}

func newConstructionError(code ErrCode, format string, args ...any) *ConstructionError {
	return &ConstructionError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Errors aggregates multiple construction or build errors, in the style of
// the teacher's ast.Errors: a slice type whose Error() renders every element.
type Errors []error

func (es Errors) Error() string {
	switch len(es) {
	case 0:
		return "no error(s)"
	case 1:
		return es[0].Error()
	}
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return fmt.Sprintf("%d errors occurred:\n%s", len(es), strings.Join(lines, "\n"))
}
