package expr

import (
	"math"

	"rplcalc/internal/bignum"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
)

// EvalConstant numerically evaluates a fully-numeric tree (no free symbols)
// to a decimal approximation, backing the ToNum command (spec.md §4.8
// "ToNum forces a numeric evaluation of an expression").
func EvalConstant(n Node) (bignum.BigFloat, error) {
	v, err := evalFloat(n)
	if err != nil {
		return bignum.BigFloat{}, err
	}
	return bignum.FloatFromFloat64(v)
}

func evalFloat(n Node) (float64, error) {
	if n.isLeaf() {
		if n.isSymbol() {
			return 0, rterr.New(rterr.UndefinedName, "ToNum requires a fully numeric expression")
		}
		return leafToFloat64(n)
	}
	args := make([]float64, len(n.Args))
	for i, a := range n.Args {
		v, err := evalFloat(a)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	switch n.Tag {
	case object.Add:
		return args[0] + args[1], nil
	case object.Sub:
		return args[0] - args[1], nil
	case object.Mul:
		return args[0] * args[1], nil
	case object.Div:
		if args[1] == 0 {
			return 0, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		return args[0] / args[1], nil
	case object.Pow:
		return math.Pow(args[0], args[1]), nil
	case object.Neg:
		return -args[0], nil
	case object.Inv:
		if args[0] == 0 {
			return 0, rterr.New(rterr.ZeroDivide, "division by zero")
		}
		return 1 / args[0], nil
	case object.Sqrt:
		return math.Sqrt(args[0]), nil
	case object.Cbrt:
		return math.Cbrt(args[0]), nil
	case object.Sin:
		return math.Sin(args[0]), nil
	case object.Cos:
		return math.Cos(args[0]), nil
	case object.Tan:
		return math.Tan(args[0]), nil
	case object.ASin:
		return math.Asin(args[0]), nil
	case object.ACos:
		return math.Acos(args[0]), nil
	case object.ATan:
		return math.Atan(args[0]), nil
	case object.Exp:
		return math.Exp(args[0]), nil
	case object.Ln:
		return math.Log(args[0]), nil
	case object.Log:
		return math.Log10(args[0]), nil
	case object.Exp10:
		return math.Pow(10, args[0]), nil
	default:
		return 0, rterr.New(rterr.Unimplemented, "ToNum: operator not supported in expressions")
	}
}

func leafToFloat64(n Node) (float64, error) {
	f, ok := leafToFraction(n)
	if ok {
		num, err := bignum.FloatFromInt(f.Num)
		if err != nil {
			return 0, err
		}
		den, err := bignum.FloatFromUint(f.Den)
		if err != nil {
			return 0, err
		}
		q, err := bignum.FloatDiv(num, den)
		if err != nil {
			return 0, err
		}
		return q.Float64(), nil
	}
	if n.Tag == object.Decimal32 || n.Tag == object.Decimal64 || n.Tag == object.Decimal128 {
		flt, err := object.DecodeFloat(n.Payload)
		if err != nil {
			return 0, err
		}
		return flt.Float64(), nil
	}
	return 0, rterr.New(rterr.TypeError, "expected a number")
}
