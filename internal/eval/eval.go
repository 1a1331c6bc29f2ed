// Package eval implements spec.md §4.7's evaluator: the
// evaluate(object) dispatch rules, the four numeric representations'
// arithmetic (§4.5), stack/directory manipulation (§4.6), and the
// control-structure composites the reader (internal/reader) folds
// If/Then/Else/End-style keyword runs into.
//
// Grounded on the teacher's internal/vm.VM.Run: a flat dispatch loop over
// decoded instructions with a Go switch on opcode, one routine per opcode,
// arguments taken from (and results pushed back onto) a single stack.
package eval

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/embed"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
	"rplcalc/internal/tracelog"
)

// maxRecursionDepth bounds nested Eval/program-in-program calls (spec.md
// §4.7 "A counter tracks evaluator depth; exceeding it fails with
// recursion"). Grounded on the teacher's internal/vm call-depth guard
// (vm.go's frame-stack ceiling), a plain constant rather than a tunable
// since spec.md never lists it among the Settings fields.
const maxRecursionDepth = 2000

// Evaluator holds everything one evaluate(object) call tree needs: the
// heap objects live in, the stack/directory/locals context, the active
// settings, and the embedder callbacks (spec.md §6).
type Evaluator struct {
	h      *heap.Heap
	ctx    *runtime.Context
	set    settings.Settings
	host   embed.Host
	tracer *tracelog.Tracer

	depth int

	// lastArgs/lastStack back LastArg/Undo (spec.md §4.7 "Before a command
	// executes, its argument frame may be snapshotted").
	lastArgs  []heap.Ref
	lastStack []heap.Ref
}

// New builds an Evaluator over an existing heap and context.
func New(h *heap.Heap, ctx *runtime.Context, set settings.Settings, host embed.Host) *Evaluator {
	bignum.SetMaxResultBits(set.MaxBignum)
	return &Evaluator{h: h, ctx: ctx, set: set, host: host}
}

// Settings returns the evaluator's current tunables (the renderer and
// expression engine read the same struct by value).
func (e *Evaluator) Settings() settings.Settings { return e.set }

// SetSettings replaces the evaluator's tunables, taking effect on the very
// next command (spec.md §6 "Changes take effect immediately"), including
// internal/bignum's maxbignum multiplication-result ceiling.
func (e *Evaluator) SetSettings(set settings.Settings) {
	e.set = set
	bignum.SetMaxResultBits(set.MaxBignum)
}

// Context exposes the stack/directory/locals state, for the renderer and
// the REPL loop (cmd/rpl) to read without duplicating it.
func (e *Evaluator) Context() *runtime.Context { return e.ctx }

// SetTracer attaches an NDJSON step tracer (cmd/rpl's --trace flag); a nil
// tracer disables tracing, which is also this field's zero value.
func (e *Evaluator) SetTracer(t *tracelog.Tracer) { e.tracer = t }

// Eval evaluates one object reference per spec.md §4.7's evaluate(object)
// rules, the evaluator's single public entry point.
func (e *Evaluator) Eval(ref heap.Ref) error {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > maxRecursionDepth {
		return rterr.New(rterr.Recursion, "evaluator recursion limit exceeded")
	}
	if e.host != nil && e.host.InterruptPending() {
		return rterr.New(rterr.Interrupted, "interrupted")
	}
	tag, payload, err := e.h.Get(ref)
	if err != nil {
		return err
	}
	// Get's payload aliases the arena, which AllocGlobal (Sto) shifts in
	// place; programs and control structures keep walking their children
	// across such calls, so they run from a private copy.
	if tag.IsComposite() || tag.IsControl() {
		payload = append([]byte(nil), payload...)
	}
	e.tracer.Enter(e.depth, object.MustName(tag), e.ctx.Stack.Depth())
	return e.evalObject(tag, payload, ref)
}

func (e *Evaluator) evalObject(tag object.Tag, payload []byte, ref heap.Ref) error {
	switch {
	case tag == object.Symbol:
		return e.evalSymbol(string(payload), ref)
	case tag.IsCommand():
		return e.evalCommand(tag)
	case tag == object.Program || tag == object.Block:
		return e.evalProgram(payload)
	case tag.IsControl():
		return e.evalControl(tag, payload)
	case tag == object.Local:
		return e.evalLocalRef(payload)
	default:
		// Immediate object: numbers, text, lists, arrays, expressions,
		// complex values - pushed onto the stack unchanged.
		e.ctx.Stack.Push(ref)
		return nil
	}
}

// evalSymbol implements "if bound in scope, evaluate the bound object;
// otherwise push the symbol (deferred evaluation)". A symbol bound by an
// active ForNext/ForStep loop variable shadows a same-named directory
// variable, matching ordinary lexical-scope-over-global precedence.
func (e *Evaluator) evalSymbol(name string, ref heap.Ref) error {
	if bound, ok := e.ctx.Locals.ResolveName(name); ok {
		return e.Eval(bound)
	}
	if bound, err := e.ctx.Dir.Rcl(name); err == nil {
		return e.Eval(bound)
	}
	e.ctx.Stack.Push(ref)
	return nil
}

// evalLocalRef resolves an object.Local's (depth, slot) payload against
// the active locals frames.
func (e *Evaluator) evalLocalRef(payload []byte) error {
	depth, slot, err := object.DecodeLocal(payload)
	if err != nil {
		return err
	}
	ref, err := e.ctx.Locals.Resolve(depth, slot)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(ref)
	return nil
}

// evalProgram iterates a Program/Block's children, evaluating each in
// turn and polling the interrupt flag between them (spec.md §4.7
// "Between each child evaluation, an interrupt flag is polled").
func (e *Evaluator) evalProgram(payload []byte) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	for _, c := range children {
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		ref, allocErr := e.h.AllocTemp(c.Tag, c.Payload)
		if allocErr != nil {
			return allocErr
		}
		if err := e.Eval(ref); err != nil {
			return err
		}
	}
	return nil
}

// snapshotArgs records the stack state and the arity-worth of arguments a
// command is about to consume, for LastArg/Undo (spec.md §4.7). n is the
// command's arity. The dispatch cases of the arithmetic, comparison, logic
// and transcendental commands call it before they run; other commands
// (stack, directory, ...) do not, and leave the previous snapshot in place.
func (e *Evaluator) snapshotArgs(n int) {
	e.lastStack = e.ctx.Stack.Snapshot()
	if n <= 0 {
		e.lastArgs = nil
		return
	}
	all := e.ctx.Stack.All()
	if len(all) < n {
		e.lastArgs = nil
		return
	}
	e.lastArgs = append([]heap.Ref{}, all[len(all)-n:]...)
}
