package runtime

import "rplcalc/internal/heap"

// Context bundles the operand stack, the current directory, and the
// active locals frames - the full evaluation context spec.md §4.6 says
// "the current directory is part of the evaluation context".
type Context struct {
	Stack  Stack
	Root   *Directory
	Dir    *Directory
	Locals Locals
}

// NewContext builds a fresh evaluation context rooted at a new HOME
// directory with an empty stack and no active locals frames.
func NewContext() *Context {
	root := NewRoot()
	return &Context{Root: root, Dir: root}
}

// Roots implements heap.RootSource: every Ref reachable from the operand
// stack or an active locals frame, stack first then frames innermost-last,
// matching the order SetRoots expects its replacements back in.
func (c *Context) Roots() []heap.Ref {
	roots := append([]heap.Ref{}, c.Stack.All()...)
	for _, f := range c.Locals.frames {
		roots = append(roots, f.slots...)
	}
	return roots
}

// SetRoots writes Collect's replacements back into the stack and locals
// frames they came from, same order Roots handed out.
func (c *Context) SetRoots(refs []heap.Ref) {
	n := c.Stack.Depth()
	c.Stack.Restore(refs[:n])
	refs = refs[n:]
	for _, f := range c.Locals.frames {
		copy(f.slots, refs[:len(f.slots)])
		refs = refs[len(f.slots):]
	}
}
