package eval

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/rterr"
)

func boolNum(b bool) num {
	v := int64(0)
	if b {
		v = 1
	}
	return num{kind: numInt, i: bignum.IntFromInt64(v)}
}

func (e *Evaluator) evalCompare(pass func(cmp int) bool) error {
	args, err := e.ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	a, err := decodeNum(e.h, args[0])
	if err != nil {
		return err
	}
	b, err := decodeNum(e.h, args[1])
	if err != nil {
		return err
	}
	cmp, err := cmpNum(a, b)
	if err != nil {
		return err
	}
	return e.pushNum(boolNum(pass(cmp)))
}

// isTruthy matches spec.md §4.7's implicit convention for conditional
// commands: any nonzero number is true, zero is false (the `And`/`Or`
// boolean form when operands aren't based numbers of matching width).
func isTruthy(n num) (bool, error) {
	switch n.kind {
	case numInt:
		return !n.i.IsZero(), nil
	case numFraction:
		return !n.frac.Num.IsZero(), nil
	case numFloat:
		return !n.flt.IsZero(), nil
	case numBased:
		return !n.based.Mag.IsZero(), nil
	default:
		return false, rterr.New(rterr.TypeError, "expected a number")
	}
}

func (e *Evaluator) evalLogic2(onBased func(a, b bignum.Based) bignum.Based, onBool func(a, b bool) bool) error {
	args, err := e.ctx.Stack.PopN(2)
	if err != nil {
		return err
	}
	a, err := decodeNum(e.h, args[0])
	if err != nil {
		return err
	}
	b, err := decodeNum(e.h, args[1])
	if err != nil {
		return err
	}
	if a.kind == numBased && b.kind == numBased {
		if a.based.Bits != b.based.Bits {
			return rterr.New(rterr.TypeError, "based numbers have different word sizes")
		}
		return e.pushNum(num{kind: numBased, based: onBased(a.based, b.based)})
	}
	ta, err := isTruthy(a)
	if err != nil {
		return err
	}
	tb, err := isTruthy(b)
	if err != nil {
		return err
	}
	return e.pushNum(boolNum(onBool(ta, tb)))
}

func (e *Evaluator) evalNot() error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	n, err := decodeNum(e.h, ref)
	if err != nil {
		return err
	}
	if n.kind == numBased {
		b, err := bignum.BasedNot(n.based)
		if err != nil {
			return err
		}
		return e.pushNum(num{kind: numBased, based: b})
	}
	t, err := isTruthy(n)
	if err != nil {
		return err
	}
	return e.pushNum(boolNum(!t))
}
