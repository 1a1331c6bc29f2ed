package eval

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/rterr"
)

// popCount pops the top of the stack and decodes it as a small
// non-negative integer, for the commands whose first argument is a stack
// index/count (DupN, DropN, Roll, RollD, Pick).
func (e *Evaluator) popCount() (int, error) {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return 0, err
	}
	n, err := decodeNum(e.h, ref)
	if err != nil {
		return 0, err
	}
	if n.kind != numInt || n.i.Neg {
		return 0, rterr.New(rterr.TypeError, "expected a non-negative integer count")
	}
	v, ok := n.i.Int64()
	if !ok || v > 1_000_000 {
		return 0, rterr.New(rterr.NumberTooBig, "count too large")
	}
	return int(v), nil
}

func (e *Evaluator) evalDup() error {
	r, err := e.ctx.Stack.Peek(0)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(r)
	return nil
}

func (e *Evaluator) evalDup2() error {
	a, err := e.ctx.Stack.Peek(1)
	if err != nil {
		return err
	}
	b, err := e.ctx.Stack.Peek(0)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(a)
	e.ctx.Stack.Push(b)
	return nil
}

func (e *Evaluator) evalDupN() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	items := make([]heap.Ref, n)
	for i := 0; i < n; i++ {
		r, err := e.ctx.Stack.Peek(n - 1 - i)
		if err != nil {
			return err
		}
		items[i] = r
	}
	for _, r := range items {
		e.ctx.Stack.Push(r)
	}
	return nil
}

func (e *Evaluator) evalDrop() error {
	return e.ctx.Stack.Drop(1)
}

func (e *Evaluator) evalDrop2() error {
	return e.ctx.Stack.Drop(2)
}

func (e *Evaluator) evalDropN() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	return e.ctx.Stack.Drop(n)
}

func (e *Evaluator) evalSwap() error {
	args, err := e.ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(args[1])
	e.ctx.Stack.Push(args[0])
	return nil
}

func (e *Evaluator) evalOver() error {
	r, err := e.ctx.Stack.Peek(1)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(r)
	return nil
}

func (e *Evaluator) evalRot() error {
	args, err := e.ctx.Stack.PopN(3)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(args[1])
	e.ctx.Stack.Push(args[2])
	e.ctx.Stack.Push(args[0])
	return nil
}

func (e *Evaluator) evalRoll() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	if n < 1 {
		return rterr.New(rterr.ValueError, "Roll requires a count of at least 1")
	}
	items, err := e.ctx.Stack.PopN(n)
	if err != nil {
		return err
	}
	for _, r := range items[1:] {
		e.ctx.Stack.Push(r)
	}
	e.ctx.Stack.Push(items[0])
	return nil
}

func (e *Evaluator) evalRollD() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	if n < 1 {
		return rterr.New(rterr.ValueError, "RollD requires a count of at least 1")
	}
	items, err := e.ctx.Stack.PopN(n)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(items[n-1])
	for _, r := range items[:n-1] {
		e.ctx.Stack.Push(r)
	}
	return nil
}

func (e *Evaluator) evalPick() error {
	n, err := e.popCount()
	if err != nil {
		return err
	}
	if n < 1 {
		return rterr.New(rterr.ValueError, "Pick requires a level of at least 1")
	}
	r, err := e.ctx.Stack.Peek(n - 1)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(r)
	return nil
}

func (e *Evaluator) evalDepth() error {
	return e.pushNum(num{kind: numInt, i: bignum.IntFromInt64(int64(e.ctx.Stack.Depth()))})
}

func (e *Evaluator) evalClear() error {
	e.ctx.Stack.Clear()
	return nil
}

func (e *Evaluator) evalLastArg() error {
	if e.lastArgs == nil {
		return rterr.New(rterr.UndefinedName, "no last arguments recorded")
	}
	for _, r := range e.lastArgs {
		e.ctx.Stack.Push(r)
	}
	return nil
}

func (e *Evaluator) evalUndo() error {
	if e.lastStack == nil {
		return rterr.New(rterr.UndefinedName, "nothing to undo")
	}
	e.ctx.Stack.Restore(e.lastStack)
	return nil
}
