package eval

import (
	"math"

	"rplcalc/internal/bignum"
	"rplcalc/internal/settings"
)

// angleToRadians converts a value expressed in the evaluator's configured
// AngleMode (spec.md §6 "Settings") into radians for math.Sin/Cos/Tan.
func angleToRadians(mode settings.AngleMode, v float64) float64 {
	switch mode {
	case settings.AngleDegrees:
		return v * math.Pi / 180
	case settings.AngleGrads:
		return v * math.Pi / 200
	case settings.AnglePiRadians:
		return v * math.Pi
	default:
		return v
	}
}

func radiansToAngle(mode settings.AngleMode, v float64) float64 {
	switch mode {
	case settings.AngleDegrees:
		return v * 180 / math.Pi
	case settings.AngleGrads:
		return v * 200 / math.Pi
	case settings.AnglePiRadians:
		return v / math.Pi
	default:
		return v
	}
}

// trigForward builds a unary op for Sin/Cos/Tan: the stack argument is in
// the configured angle unit, the float64 math call always runs in radians.
func (e *Evaluator) trigForward(fn func(float64) float64) func(num) (num, error) {
	return func(a num) (num, error) {
		f, err := a.toFloat()
		if err != nil {
			return num{}, err
		}
		rad := angleToRadians(e.set.AngleMode, f.Float64())
		flt, err := bignum.FloatFromFloat64(fn(rad))
		return num{kind: numFloat, flt: flt}, err
	}
}

// trigInverse builds a unary op for ASin/ACos/ATan: the float64 math call
// returns radians, converted back to the configured angle unit before encoding.
func (e *Evaluator) trigInverse(fn func(float64) float64) func(num) (num, error) {
	return func(a num) (num, error) {
		f, err := a.toFloat()
		if err != nil {
			return num{}, err
		}
		rad := fn(f.Float64())
		flt, err := bignum.FloatFromFloat64(radiansToAngle(e.set.AngleMode, rad))
		return num{kind: numFloat, flt: flt}, err
	}
}
