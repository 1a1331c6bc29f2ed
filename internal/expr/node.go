// Package expr implements spec.md §4.8's algebraic expression engine: the
// tree form of a parsed '...' expression, and the rewrite-based
// Expand/Collect/Simplify/Factor transforms the evaluator's command layer
// calls into.
//
// Grounded on the teacher's internal/mono and internal/sema rewrite passes:
// both walk a typed tree (MIR, respectively a semantic AST), match a
// sub-tree shape, and substitute a rewritten replacement, capping the total
// number of rewrites performed in one pass. This package reuses that same
// shape - match, substitute, cap - for algebra instead of type
// specialization.
package expr

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
)

// Node is one node of a decoded expression tree. Leaves (Tag.IsCommand()
// false) carry Payload - a number's raw heap payload, or a symbol's name
// bytes; interior nodes carry a command Tag plus Args, its operands in
// left-to-right evaluation order.
type Node struct {
	Tag     object.Tag
	Payload []byte
	Args    []Node
}

// Budget bounds how many rewrite steps a single Expand/Collect/Simplify/
// FactorOut call may perform (spec.md §4.8 "rewrite_all ... capped by
// maxrewrites"), the same process-wide Settings.MaxRewrites field the
// evaluator reads.
type Budget struct {
	MaxRewrites int
}

// spend reports whether b has more rewrites available, decrementing as a
// side effect - a plain mutable counter, matching the teacher's rewrite
// passes' own "budget.Spend()" bookkeeping in internal/mono.
func (b *Budget) spend() bool {
	if b.MaxRewrites <= 0 {
		return false
	}
	b.MaxRewrites--
	return true
}

// arity reports how many operands a command tag consumes when it appears
// inside a postfix expression tree: the binary arithmetic operators take
// two, every other command (unary arithmetic, trig/transcendental, and any
// bare function-call atom the parser emits) takes exactly one.
func arity(tag object.Tag) int {
	switch tag {
	case object.Add, object.Sub, object.Mul, object.Div, object.Pow, object.Mod, object.IDiv:
		return 2
	default:
		return 1
	}
}

// Decode rebuilds a tree from the postfix run of child objects the reader
// stores for an Expression object (spec.md §4.8 "In memory it is postfix").
func Decode(children []heap.Object) (Node, error) {
	var stack []Node
	for _, c := range children {
		if !c.Tag.IsCommand() {
			stack = append(stack, Node{Tag: c.Tag, Payload: c.Payload})
			continue
		}
		n := arity(c.Tag)
		if len(stack) < n {
			return Node{}, rterr.New(rterr.InvalidObject, "malformed expression: operator starved of operands")
		}
		args := append([]Node{}, stack[len(stack)-n:]...)
		stack = stack[:len(stack)-n]
		stack = append(stack, Node{Tag: c.Tag, Args: args})
	}
	if len(stack) != 1 {
		return Node{}, rterr.New(rterr.InvalidObject, "malformed expression: leftover operands")
	}
	return stack[0], nil
}

// Encode flattens a tree back to the postfix child-object run Expression's
// heap payload stores.
func Encode(n Node) []heap.Object {
	if len(n.Args) == 0 {
		return []heap.Object{{Tag: n.Tag, Payload: n.Payload}}
	}
	var out []heap.Object
	for _, a := range n.Args {
		out = append(out, Encode(a)...)
	}
	out = append(out, heap.Object{Tag: n.Tag})
	return out
}

// isLeaf reports whether n is a number or a symbol (no sub-expressions).
func (n Node) isLeaf() bool { return len(n.Args) == 0 }

// isSymbol reports whether n is a bare variable reference.
func (n Node) isSymbol() bool { return n.Tag == object.Symbol }

// isNumber reports whether n is a numeric literal leaf.
func (n Node) isNumber() bool { return n.isLeaf() && !n.isSymbol() }

// equalShape reports whether a and b are structurally identical - same tag,
// same payload bytes, recursively equal args - used by Collect to decide
// whether two terms share the same symbolic base.
func equalShape(a, b Node) bool {
	if a.Tag != b.Tag || len(a.Args) != len(b.Args) {
		return false
	}
	if a.isLeaf() {
		return string(a.Payload) == string(b.Payload)
	}
	for i := range a.Args {
		if !equalShape(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

func leafInt(v int64) Node {
	tag, payload := object.EncodeInt(bignum.IntFromInt64(v))
	return Node{Tag: tag, Payload: payload}
}

func binary(tag object.Tag, a, b Node) Node { return Node{Tag: tag, Args: []Node{a, b}} }
