package eval

import (
	"math"

	"rplcalc/internal/bignum"
	"rplcalc/internal/expr"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
)

// evalCommand dispatches a named-command tag to its routine (spec.md §4.7
// "evaluate(object): ... if the object is a command, invoke its routine").
// Grounded on the teacher's vm_dispatch.go switch over MIR opcodes: one big
// switch keyed by the stable tag, each case a short call into the routine
// that owns that command's stack discipline.
func (e *Evaluator) evalCommand(tag object.Tag) error {
	entry, ok := object.EntryFor(tag)
	if !ok {
		return rterr.New(rterr.InvalidObject, "unknown command tag")
	}
	err := e.dispatch(tag)
	e.tracer.Command(e.depth, entry.Name, e.ctx.Stack.Depth(), err)
	if err != nil {
		if re, isRterr := err.(*rterr.Error); isRterr && re.Command == "" {
			return re.WithCommand(entry.Name)
		}
		return err
	}
	return nil
}

func (e *Evaluator) dispatch(tag object.Tag) error {
	switch tag {
	// Arithmetic (spec.md §4.5).
	case object.Add:
		e.snapshotArgs(2)
		return e.binaryNum(opAdd)
	case object.Sub:
		e.snapshotArgs(2)
		return e.binaryNum(opSub)
	case object.Mul:
		e.snapshotArgs(2)
		return e.binaryNum(opMul)
	case object.Div:
		e.snapshotArgs(2)
		return e.binaryNum(opDiv)
	case object.Neg:
		e.snapshotArgs(1)
		return e.unaryNum(opNeg)
	case object.Inv:
		e.snapshotArgs(1)
		return e.unaryNum(opInv)
	case object.Pow:
		e.snapshotArgs(2)
		return e.binaryNum(opPow)
	case object.Sqrt:
		e.snapshotArgs(1)
		return e.unaryNum(opSqrt)
	case object.Cbrt:
		e.snapshotArgs(1)
		return e.unaryNum(opCbrt)
	case object.Fact:
		e.snapshotArgs(1)
		return e.unaryNum(opFact)
	case object.Mod:
		e.snapshotArgs(2)
		return e.binaryNum(opMod)
	case object.IDiv:
		e.snapshotArgs(2)
		return e.binaryNum(opIDiv)

	// Comparisons and logic (spec.md §4.7's implicit boolean convention).
	case object.Eq:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c == 0 })
	case object.Neq:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c != 0 })
	case object.Lt:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c < 0 })
	case object.Le:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c <= 0 })
	case object.Gt:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c > 0 })
	case object.Ge:
		e.snapshotArgs(2)
		return e.evalCompare(func(c int) bool { return c >= 0 })
	case object.And:
		e.snapshotArgs(2)
		return e.evalLogic2(bignum.BasedAnd, func(a, b bool) bool { return a && b })
	case object.Or:
		e.snapshotArgs(2)
		return e.evalLogic2(bignum.BasedOr, func(a, b bool) bool { return a || b })
	case object.Xor:
		e.snapshotArgs(2)
		return e.evalLogic2(bignum.BasedXor, func(a, b bool) bool { return a != b })
	case object.Not:
		e.snapshotArgs(1)
		return e.evalNot()

	// Trigonometric and transcendental (spec.md §4.5, angle-mode aware).
	case object.Sin:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigForward(mathSin))
	case object.Cos:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigForward(mathCos))
	case object.Tan:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigForward(mathTan))
	case object.ASin:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigInverse(mathASin))
	case object.ACos:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigInverse(mathACos))
	case object.ATan:
		e.snapshotArgs(1)
		return e.unaryNum(e.trigInverse(mathATan))
	case object.Exp:
		e.snapshotArgs(1)
		return e.unaryNum(transcendental(mathExp))
	case object.Ln:
		e.snapshotArgs(1)
		return e.unaryNum(transcendental(mathLn))
	case object.Log:
		e.snapshotArgs(1)
		return e.unaryNum(transcendental(mathLog10))
	case object.Exp10:
		e.snapshotArgs(1)
		return e.unaryNum(transcendental(mathExp10))

	// Stack manipulation (spec.md §4.6).
	case object.Dup:
		return e.evalDup()
	case object.Dup2:
		return e.evalDup2()
	case object.DupN:
		return e.evalDupN()
	case object.Drop:
		return e.evalDrop()
	case object.Drop2:
		return e.evalDrop2()
	case object.DropN:
		return e.evalDropN()
	case object.Swap:
		return e.evalSwap()
	case object.Over:
		return e.evalOver()
	case object.Rot:
		return e.evalRot()
	case object.Roll:
		return e.evalRoll()
	case object.RollD:
		return e.evalRollD()
	case object.Pick:
		return e.evalPick()
	case object.Depth:
		return e.evalDepth()
	case object.Clear:
		return e.evalClear()
	case object.LastArg:
		return e.evalLastArg()
	case object.Undo:
		return e.evalUndo()

	// Directory operations (spec.md §4.6).
	case object.Sto:
		return e.evalSto()
	case object.Rcl:
		return e.evalRcl()
	case object.Purge:
		return e.evalPurge()
	case object.CrDir:
		return e.evalCrDir()
	case object.UpDir:
		return e.evalUpDir()
	case object.Home:
		return e.evalHome()
	case object.Vars:
		return e.evalVars()

	// Meta commands (spec.md §4.7).
	case object.Eval:
		return e.evalEval()
	case object.Type:
		return e.evalType()

	// Expression engine (spec.md §4.8, internal/expr).
	case object.Expand:
		return e.evalExprUnary(expr.Expand)
	case object.Collect:
		return e.evalExprUnary(expr.Collect)
	case object.Simplify:
		return e.evalExprUnary(expr.Simplify)
	case object.Factor:
		return e.evalExprUnary(expr.FactorOut)
	case object.ToNum:
		return e.evalToNum()

	// Embedder-facing timing (spec.md §6).
	case object.Wait:
		return e.evalWait()
	case object.Interrupt:
		return e.evalInterrupt()

	// Bare control keywords (If/Then/Else/.../IfErr): reachable through
	// ordinary name lookup (table.go's comment on commandEntries), but
	// only meaningful inside a composite the reader already folded.
	// Reaching one directly means the run they belonged to never closed.
	case object.If, object.Then, object.Else, object.End,
		object.Do, object.Until, object.While, object.Repeat,
		object.Start, object.Next, object.Step, object.For, object.IfErr:
		return rterr.New(rterr.Syntax, "unterminated control structure")

	default:
		return rterr.New(rterr.Unimplemented, "command not implemented")
	}
}

func mathSin(v float64) float64   { return math.Sin(v) }
func mathCos(v float64) float64   { return math.Cos(v) }
func mathTan(v float64) float64   { return math.Tan(v) }
func mathASin(v float64) float64  { return math.Asin(v) }
func mathACos(v float64) float64  { return math.Acos(v) }
func mathATan(v float64) float64  { return math.Atan(v) }
func mathExp(v float64) float64   { return math.Exp(v) }
func mathLn(v float64) float64    { return math.Log(v) }
func mathLog10(v float64) float64 { return math.Log10(v) }
func mathExp10(v float64) float64 { return math.Pow(10, v) }

// evalEval implements the Eval command: pop an object and evaluate it, the
// calculator's explicit "force evaluation" operator (spec.md §4.7 "Eval
// evaluates the popped object"), as opposed to the implicit evaluation that
// happens when a program runs across a symbol/program object in place.
func (e *Evaluator) evalEval() error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	return e.Eval(ref)
}

// evalType pushes a small integer naming the popped object's tag category,
// mirroring the HP48 TYPE command (spec.md §4.7 "Type returns a small
// integer classifying the popped object").
func (e *Evaluator) evalType() error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	tag, _, err := e.h.Get(ref)
	if err != nil {
		return err
	}
	return e.pushNum(num{kind: numInt, i: bignum.IntFromInt64(int64(typeClass(tag)))})
}

// typeClass buckets a tag into TYPE's small classification space, grouping
// every numeric representation together as HP48's TYPE does for reals.
func typeClass(tag object.Tag) int {
	switch {
	case isNumericTag(tag):
		return 0
	case tag.IsComplex():
		return 1
	case tag == object.Symbol:
		return 2
	case tag == object.Text:
		return 3
	case tag == object.List:
		return 5
	case tag == object.Array:
		return 6
	case tag == object.Program, tag == object.Block:
		return 8
	case tag == object.Expression:
		return 9
	case tag == object.Directory:
		return 10
	case tag.IsControl():
		return 8
	case tag.IsCommand():
		return 18
	default:
		return -1
	}
}

// evalExprUnary pops an Expression object, runs an internal/expr transform
// over its decoded tree, and pushes the re-encoded result (spec.md §4.8
// "Expand/Collect/Simplify/Factor operate on the popped expression").
func (e *Evaluator) evalExprUnary(fn func(expr.Node, expr.Budget) (expr.Node, error)) error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	tag, payload, err := e.h.Get(ref)
	if err != nil {
		return err
	}
	if tag != object.Expression {
		return rterr.New(rterr.TypeError, "expected an algebraic expression")
	}
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	tree, err := expr.Decode(children)
	if err != nil {
		return err
	}
	result, err := fn(tree, expr.Budget{MaxRewrites: e.set.MaxRewrites})
	if err != nil {
		return err
	}
	outRef, err := e.h.AllocTemp(object.Expression, heap.EncodeChildren(expr.Encode(result)...))
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(outRef)
	return nil
}

// evalToNum pops an expression or exact-number object and pushes its
// Decimal64 approximation (spec.md §4.8 "ToNum forces a numeric
// evaluation of an expression, collapsing fractions to decimals too").
func (e *Evaluator) evalToNum() error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	tag, payload, err := e.h.Get(ref)
	if err != nil {
		return err
	}
	if tag == object.Expression {
		children, err := heap.Children(payload)
		if err != nil {
			return err
		}
		tree, err := expr.Decode(children)
		if err != nil {
			return err
		}
		v, err := expr.EvalConstant(tree)
		if err != nil {
			return err
		}
		return e.pushNum(num{kind: numFloat, flt: v})
	}
	n, err := decodeNumFrom(tag, payload)
	if err != nil {
		return err
	}
	f, err := n.toFloat()
	if err != nil {
		return err
	}
	return e.pushNum(num{kind: numFloat, flt: f})
}

// evalWait implements Wait: pop a millisecond count and block via the
// embedder's Sleep callback (spec.md §6 "Wait(ms) ... delegates to the
// embedder's sleep callback").
func (e *Evaluator) evalWait() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	if e.host != nil {
		e.host.Sleep(n)
	}
	return nil
}

// evalInterrupt implements Interrupt: fails immediately with interrupted,
// the program-level way to abort a running sub-program deliberately
// (spec.md §6 "a program may also raise it on itself via Interrupt").
func (e *Evaluator) evalInterrupt() error {
	return rterr.New(rterr.Interrupted, "interrupted")
}
