package parse

import (
	"fmt"
	"strings"
)

// Solution is one successful (value, end-offset) pair the engine yields for
// a parse at a given starting state (spec §4.3, §6).
type Solution struct {
	// Value is the collapsed result of the entry rule: a Tuple for a rule
	// with no visitor method, a visitor's return value if one was bound,
	// or a concatenated string if the rule is tagged token.
	Value any
	// Offset is the input offset immediately after the match.
	Offset int
}

// Tuple is the generic result shape for a rule with no bound visitor
// method: (name, *args), per spec §4.3 dispatch rule (c).
type Tuple struct {
	Name string
	Args []any
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = fmt.Sprint(a)
	}
	return "(" + t.Name + " " + strings.Join(parts, " ") + ")"
}

// resultNode is a persistent cons cell used to accumulate a rule's result
// sequence without aliasing a shared backing array across alternation
// branches (spec §5: jobs use a backtracking stack, not shared mutable
// state).
type resultNode struct {
	val  any
	prev *resultNode
}

func cons(prev *resultNode, val any) *resultNode {
	return &resultNode{val: val, prev: prev}
}

// collectResults flattens a resultNode chain into a slice in the order the
// values were appended.
func collectResults(n *resultNode) []any {
	var reversed []any
	for c := n; c != nil; c = c.prev {
		reversed = append(reversed, c.val)
	}
	out := make([]any, len(reversed))
	for i, v := range reversed {
		out[len(out)-1-i] = v
	}
	return out
}

// joinToken concatenates a token rule's accumulated character-level
// results into a single string (spec §4.3 dispatch rule (a)). A generic
// Tuple from a non-token rule matched inside the token contributes its own
// arguments, joined the same way, not its "(name ...)" rendering.
func joinToken(args []any) string {
	var b strings.Builder
	for _, a := range args {
		switch v := a.(type) {
		case string:
			b.WriteString(v)
		case Tuple:
			b.WriteString(joinToken(v.Args))
		default:
			fmt.Fprint(&b, a)
		}
	}
	return b.String()
}
