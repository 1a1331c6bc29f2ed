package eval

import (
	"math"

	"rplcalc/internal/bignum"
	"rplcalc/internal/rterr"
)

// binaryNum pops two numeric operands (bottom = first pushed) and pushes
// the result of applying one of the four arithmetic kinds' operation,
// promoting to a common representation first (spec.md §4.5, §4.7 "value
// failure is value or a domain-specific kind").
func (e *Evaluator) binaryNum(op func(a, b num) (num, error)) error {
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
	a, b, err = promote(a, b)
	if err != nil {
		return err
	}
	result, err := op(a, b)
	if err != nil {
		return err
	}
	return e.pushNum(result)
}

func (e *Evaluator) unaryNum(op func(a num) (num, error)) error {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	a, err := decodeNum(e.h, ref)
	if err != nil {
		return err
	}
	result, err := op(a)
	if err != nil {
		return err
	}
	return e.pushNum(result)
}

func (e *Evaluator) pushNum(n num) error {
	tag, payload, err := encodeNum(n)
	if err != nil {
		return err
	}
	ref, err := e.h.AllocTemp(tag, payload)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(ref)
	return nil
}

func opAdd(a, b num) (num, error) {
	switch a.kind {
	case numInt:
		i, err := bignum.IntAdd(a.i, b.i)
		return num{kind: numInt, i: i}, err
	case numFraction:
		f, err := bignum.FractionAdd(a.frac, b.frac)
		return num{kind: numFraction, frac: f}, err
	case numFloat:
		f, err := bignum.FloatAdd(a.flt, b.flt)
		return num{kind: numFloat, flt: f}, err
	case numBased:
		bb, err := bignum.BasedAdd(a.based, b.based)
		return num{kind: numBased, based: bb}, err
	}
	return num{}, rterr.New(rterr.TypeError, "Add: not a number")
}

func opSub(a, b num) (num, error) {
	switch a.kind {
	case numInt:
		i, err := bignum.IntSub(a.i, b.i)
		return num{kind: numInt, i: i}, err
	case numFraction:
		f, err := bignum.FractionSub(a.frac, b.frac)
		return num{kind: numFraction, frac: f}, err
	case numFloat:
		f, err := bignum.FloatSub(a.flt, b.flt)
		return num{kind: numFloat, flt: f}, err
	case numBased:
		bb, err := bignum.BasedSub(a.based, b.based)
		return num{kind: numBased, based: bb}, err
	}
	return num{}, rterr.New(rterr.TypeError, "Sub: not a number")
}

func opMul(a, b num) (num, error) {
	switch a.kind {
	case numInt:
		i, err := bignum.IntMul(a.i, b.i)
		return num{kind: numInt, i: i}, err
	case numFraction:
		f, err := bignum.FractionMul(a.frac, b.frac)
		return num{kind: numFraction, frac: f}, err
	case numFloat:
		f, err := bignum.FloatMul(a.flt, b.flt)
		return num{kind: numFloat, flt: f}, err
	case numBased:
		bb, err := bignum.BasedMul(a.based, b.based)
		return num{kind: numBased, based: bb}, err
	}
	return num{}, rterr.New(rterr.TypeError, "Mul: not a number")
}

func opDiv(a, b num) (num, error) {
	switch a.kind {
	case numInt:
		if b.i.IsZero() {
			return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		f, err := bignum.NewFraction(a.i, b.i.Abs())
		if err != nil {
			return num{}, err
		}
		if b.i.Neg {
			f.Num = f.Num.Negated()
		}
		return num{kind: numFraction, frac: f}, nil
	case numFraction:
		if b.frac.Num.IsZero() {
			return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		f, err := bignum.FractionDiv(a.frac, b.frac)
		return num{kind: numFraction, frac: f}, err
	case numFloat:
		if b.flt.IsZero() {
			return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		f, err := bignum.FloatDiv(a.flt, b.flt)
		return num{kind: numFloat, flt: f}, err
	case numBased:
		if b.based.Mag.IsZero() {
			return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		q, _, err := bignum.UintDivMod(a.based.Mag, b.based.Mag)
		if err != nil {
			return num{}, err
		}
		return num{kind: numBased, based: bignum.NewBased(a.based.Bits, q)}, nil
	}
	return num{}, rterr.New(rterr.TypeError, "Div: not a number")
}

func opNeg(a num) (num, error) {
	switch a.kind {
	case numInt:
		return num{kind: numInt, i: a.i.Negated()}, nil
	case numFraction:
		f := a.frac
		f.Num = f.Num.Negated()
		return num{kind: numFraction, frac: f}, nil
	case numFloat:
		return num{kind: numFloat, flt: bignum.FloatNeg(a.flt)}, nil
	case numBased:
		return opSub(num{kind: numBased, based: bignum.NewBased(a.based.Bits, bignum.UintZero())}, a)
	}
	return num{}, rterr.New(rterr.TypeError, "Neg: not a number")
}

func opInv(a num) (num, error) {
	one := num{kind: numInt, i: bignum.IntFromInt64(1)}
	a, one, err := promote(a, one)
	if err != nil {
		return num{}, err
	}
	return opDiv(one, a)
}

func opMod(a, b num) (num, error) {
	if a.kind != numInt || b.kind != numInt {
		return num{}, rterr.New(rterr.TypeError, "Mod requires integers")
	}
	if b.i.IsZero() {
		return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
	}
	_, r, err := bignum.IntDivMod(a.i, b.i)
	return num{kind: numInt, i: r}, err
}

func opIDiv(a, b num) (num, error) {
	if a.kind != numInt || b.kind != numInt {
		return num{}, rterr.New(rterr.TypeError, "IDiv requires integers")
	}
	if b.i.IsZero() {
		return num{}, rterr.New(rterr.ZeroDivide, "division by zero")
	}
	q, _, err := bignum.IntDivMod(a.i, b.i)
	return num{kind: numInt, i: q}, err
}

func opPow(a, b num) (num, error) {
	if a.kind == numInt && b.kind == numInt && !b.i.Neg {
		i, err := bignum.IntPow(a.i, b.i.Abs())
		return num{kind: numInt, i: i}, err
	}
	if a.kind == numFraction && b.kind == numInt && !b.i.Neg {
		f, err := bignum.FractionPow(a.frac, b.i.Abs())
		return num{kind: numFraction, frac: f}, err
	}
	fa, err := a.toFloat()
	if err != nil {
		return num{}, err
	}
	fb, err := b.toFloat()
	if err != nil {
		return num{}, err
	}
	v := math.Pow(fa.Float64(), fb.Float64())
	flt, err := bignum.FloatFromFloat64(v)
	return num{kind: numFloat, flt: flt}, err
}

func transcendental(fn func(float64) float64) func(a num) (num, error) {
	return func(a num) (num, error) {
		f, err := a.toFloat()
		if err != nil {
			return num{}, err
		}
		flt, err := bignum.FloatFromFloat64(fn(f.Float64()))
		return num{kind: numFloat, flt: flt}, err
	}
}

func opSqrt(a num) (num, error) {
	f, err := a.toFloat()
	if err != nil {
		return num{}, err
	}
	if f.Neg {
		return num{}, rterr.New(rterr.Domain, "Sqrt of a negative number")
	}
	flt, err := bignum.FloatFromFloat64(math.Sqrt(f.Float64()))
	return num{kind: numFloat, flt: flt}, err
}

func opCbrt(a num) (num, error) {
	f, err := a.toFloat()
	if err != nil {
		return num{}, err
	}
	flt, err := bignum.FloatFromFloat64(math.Cbrt(f.Float64()))
	return num{kind: numFloat, flt: flt}, err
}

func opFact(a num) (num, error) {
	if a.kind != numInt || a.i.Neg {
		return num{}, rterr.New(rterr.Domain, "Fact requires a non-negative integer")
	}
	n, ok := a.i.Int64()
	if !ok || n > 100000 {
		return num{}, rterr.New(rterr.NumberTooBig, "Fact argument too large")
	}
	result := bignum.IntFromInt64(1)
	for k := int64(2); k <= n; k++ {
		var err error
		result, err = bignum.IntMul(result, bignum.IntFromInt64(k))
		if err != nil {
			return num{}, err
		}
	}
	return num{kind: numInt, i: result}, nil
}

