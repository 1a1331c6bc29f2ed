package eval

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
	"rplcalc/internal/runtime"
)

// evalControl runs one of the ten control-structure composites the reader
// folds If/Then/.../End-style keyword runs into (spec.md §4.7 "Control
// structures are encoded as objects containing their sub-programs").
func (e *Evaluator) evalControl(tag object.Tag, payload []byte) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	switch tag {
	case object.IfThenCtl:
		return e.runIfThen(children[0], children[1], nil)
	case object.IfThenElseCtl:
		return e.runIfThen(children[0], children[1], &children[2])
	case object.DoUntilCtl:
		return e.runDoUntil(children[0], children[1])
	case object.WhileRepeatCtl:
		return e.runWhileRepeat(children[0], children[1])
	case object.StartNextCtl:
		return e.runStart(children[0], false)
	case object.StartStepCtl:
		return e.runStart(children[0], true)
	case object.ForNextCtl:
		return e.runFor(children[0], children[1], false)
	case object.ForStepCtl:
		return e.runFor(children[0], children[1], true)
	case object.IfErrThenCtl:
		return e.runIfErrThen(children[0], children[1], nil)
	case object.IfErrThenElseCtl:
		return e.runIfErrThen(children[0], children[1], &children[2])
	default:
		return rterr.New(rterr.InvalidObject, "not a control structure")
	}
}

func (e *Evaluator) runProgramObj(p heap.Object) error {
	return e.evalProgram(p.Payload)
}

func (e *Evaluator) popTruthy() (bool, error) {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return false, err
	}
	n, err := decodeNum(e.h, ref)
	if err != nil {
		return false, err
	}
	return isTruthy(n)
}

func (e *Evaluator) runIfThen(cond, then heap.Object, els *heap.Object) error {
	if err := e.runProgramObj(cond); err != nil {
		return err
	}
	pass, err := e.popTruthy()
	if err != nil {
		return err
	}
	if pass {
		return e.runProgramObj(then)
	}
	if els != nil {
		return e.runProgramObj(*els)
	}
	return nil
}

// runDoUntil executes body at least once, repeating while the condition
// program evaluates falsy (spec.md §4.7 "execute at least once").
func (e *Evaluator) runDoUntil(body, cond heap.Object) error {
	for {
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
		if err := e.runProgramObj(cond); err != nil {
			return err
		}
		done, err := e.popTruthy()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// runWhileRepeat may execute the body zero times (spec.md §4.7).
func (e *Evaluator) runWhileRepeat(cond, body heap.Object) error {
	for {
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(cond); err != nil {
			return err
		}
		keepGoing, err := e.popTruthy()
		if err != nil {
			return err
		}
		if !keepGoing {
			return nil
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
	}
}

// runStart implements StartNext/StartStep: the loop bounds were pushed
// onto the stack by the time this object is reached (e.g. "1 10 START
// ... NEXT"), popped here as (start, stop). StartNext advances by 1 each
// pass and only ever counts up, so start>stop runs the body zero times.
// StartStep pops an increment the body leaves on the stack after each
// pass (spec.md §4.7 "Step pops an increment (may be negative)"); since
// the increment's sign isn't known until the body has run once, StartStep
// always runs the body at least once and then continues in whichever
// direction that increment points, so "10 1 START ... -1 STEP" counts
// down instead of exiting immediately.
func (e *Evaluator) runStart(body heap.Object, withStep bool) error {
	args, err := e.ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	start, err := decodeNum(e.h, args[0])
	if err != nil {
		return err
	}
	stop, err := decodeNum(e.h, args[1])
	if err != nil {
		return err
	}
	if !withStep {
		return e.runCountedFixed(start, stop, body)
	}
	return e.runCountedStep(start, stop, body)
}

// runCountedFixed backs StartNext/ForNext: a fixed +1 increment, so the
// bound check can run before the body and an empty (start>stop) range
// executes zero times.
func (e *Evaluator) runCountedFixed(start, stop num, body heap.Object) error {
	one := num{kind: numInt, i: bignum.IntFromInt64(1)}
	current := start
	for {
		cmp, err := cmpNum(current, stop)
		if err != nil {
			return err
		}
		if cmp > 0 {
			return nil
		}
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
		wCurrent, wStep, err := promote(current, one)
		if err != nil {
			return err
		}
		current, err = opAdd(wCurrent, wStep)
		if err != nil {
			return err
		}
	}
}

// runCountedStep backs StartStep/ForStep: the body always runs once, then
// the just-popped step's sign decides whether the range is counting up or
// down and the post-step bound check follows that direction.
func (e *Evaluator) runCountedStep(start, stop num, body heap.Object) error {
	current := start
	for {
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
		ref, err := e.ctx.Stack.Pop()
		if err != nil {
			return err
		}
		step, err := decodeNum(e.h, ref)
		if err != nil {
			return err
		}
		wCurrent, wStep, err := promote(current, step)
		if err != nil {
			return err
		}
		next, err := opAdd(wCurrent, wStep)
		if err != nil {
			return err
		}
		current = next
		neg, err := isNegativeStep(wStep)
		if err != nil {
			return err
		}
		cmp, err := cmpNum(current, stop)
		if err != nil {
			return err
		}
		if neg {
			if cmp < 0 {
				return nil
			}
		} else if cmp > 0 {
			return nil
		}
	}
}

// isNegativeStep reports a Step increment's sign, used to pick the
// counting direction for StartStep/ForStep (spec.md §4.7). Based numbers
// have no sign (spec.md §4.5 "Bitwise ... ignore the sign"), so a Step on
// a based increment always counts up.
func isNegativeStep(n num) (bool, error) {
	switch n.kind {
	case numInt:
		return n.i.Neg && !n.i.IsZero(), nil
	case numFraction:
		return n.frac.Num.Neg && !n.frac.Num.IsZero(), nil
	case numFloat:
		return n.flt.Neg && !n.flt.IsZero(), nil
	case numBased:
		return false, nil
	default:
		return false, rterr.New(rterr.TypeError, "Step: not a number")
	}
}

// runFor implements ForNext/ForStep: as runStart, but with a named loop
// variable bound into a fresh locals frame for the body's duration
// (spec.md §4.7 "a named loop variable bound in a locals frame").
func (e *Evaluator) runFor(varObj, body heap.Object, withStep bool) error {
	if varObj.Tag != object.Symbol {
		return rterr.New(rterr.TypeError, "For requires a loop variable name")
	}
	name := string(varObj.Payload)
	args, err := e.ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	start, err := decodeNum(e.h, args[0])
	if err != nil {
		return err
	}
	stop, err := decodeNum(e.h, args[1])
	if err != nil {
		return err
	}

	frame := e.ctx.Locals.PushNamed([]string{name})
	defer e.ctx.Locals.Pop()

	if !withStep {
		return e.runForFixed(frame, start, stop, body)
	}
	return e.runForStep(frame, start, stop, body)
}

func (e *Evaluator) bindLoopVar(frame *runtime.LocalFrame, current num) error {
	tag, payload, err := encodeNum(current)
	if err != nil {
		return err
	}
	ref, err := e.h.AllocTemp(tag, payload)
	if err != nil {
		return err
	}
	frame.Set(0, ref)
	return nil
}

// runForFixed backs ForNext: see runCountedFixed.
func (e *Evaluator) runForFixed(frame *runtime.LocalFrame, start, stop num, body heap.Object) error {
	one := num{kind: numInt, i: bignum.IntFromInt64(1)}
	current := start
	for {
		cmp, err := cmpNum(current, stop)
		if err != nil {
			return err
		}
		if cmp > 0 {
			return nil
		}
		if err := e.bindLoopVar(frame, current); err != nil {
			return err
		}
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
		wCurrent, wStep, err := promote(current, one)
		if err != nil {
			return err
		}
		current, err = opAdd(wCurrent, wStep)
		if err != nil {
			return err
		}
	}
}

// runForStep backs ForStep: see runCountedStep.
func (e *Evaluator) runForStep(frame *runtime.LocalFrame, start, stop num, body heap.Object) error {
	current := start
	for {
		if err := e.bindLoopVar(frame, current); err != nil {
			return err
		}
		if e.host != nil && e.host.InterruptPending() {
			return rterr.New(rterr.Interrupted, "interrupted")
		}
		if err := e.runProgramObj(body); err != nil {
			return err
		}
		sref, err := e.ctx.Stack.Pop()
		if err != nil {
			return err
		}
		step, err := decodeNum(e.h, sref)
		if err != nil {
			return err
		}
		wCurrent, wStep, err := promote(current, step)
		if err != nil {
			return err
		}
		next, err := opAdd(wCurrent, wStep)
		if err != nil {
			return err
		}
		current = next
		neg, err := isNegativeStep(wStep)
		if err != nil {
			return err
		}
		cmp, err := cmpNum(current, stop)
		if err != nil {
			return err
		}
		if neg {
			if cmp < 0 {
				return nil
			}
		} else if cmp > 0 {
			return nil
		}
	}
}

// runIfErrThen evaluates body; if it raises an error, the stack is
// restored to its pre-body state and the Then handler runs instead
// (spec.md §7 "IfErrThen / IfErrThenElse catch errors in a sub-program
// and branch on them"). If body succeeds, the optional Else handler runs.
func (e *Evaluator) runIfErrThen(body, then heap.Object, els *heap.Object) error {
	snapshot := e.ctx.Stack.Snapshot()
	if err := e.runProgramObj(body); err != nil {
		e.ctx.Stack.Restore(snapshot)
		return e.runProgramObj(then)
	}
	if els != nil {
		return e.runProgramObj(*els)
	}
	return nil
}
