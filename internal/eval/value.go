package eval

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
)

// numKind distinguishes the four numeric representations a heap object
// can decode to (spec.md §4.5); arithmetic commands promote mixed-kind
// operands to the widest kind involved before computing.
type numKind int

const (
	numInt numKind = iota
	numFraction
	numFloat
	numBased
)

// num is a decoded numeric value in whichever of the four representations
// it was stored as - the evaluator's working form, not a heap encoding.
type num struct {
	kind  numKind
	i     bignum.BigInt
	frac  bignum.Fraction
	flt   bignum.BigFloat
	based bignum.Based
}

func decodeNum(h *heap.Heap, ref heap.Ref) (num, error) {
	tag, payload, err := h.Get(ref)
	if err != nil {
		return num{}, err
	}
	return decodeNumFrom(tag, payload)
}

func decodeNumFrom(tag object.Tag, payload []byte) (num, error) {
	switch {
	case tag.IsFraction():
		f, err := object.DecodeFraction(tag, payload)
		if err != nil {
			return num{}, err
		}
		return num{kind: numFraction, frac: f}, nil
	case tag == object.BasedInt || tag == object.BasedBignum:
		b, err := object.DecodeBased(payload)
		if err != nil {
			return num{}, err
		}
		return num{kind: numBased, based: b}, nil
	case tag == object.Decimal32 || tag == object.Decimal64 || tag == object.Decimal128:
		f, err := object.DecodeFloat(payload)
		if err != nil {
			return num{}, err
		}
		return num{kind: numFloat, flt: f}, nil
	case tag.IsInteger():
		i, err := object.DecodeInt(tag, payload)
		if err != nil {
			return num{}, err
		}
		return num{kind: numInt, i: i}, nil
	default:
		return num{}, rterr.New(rterr.TypeError, "expected a number")
	}
}

func encodeNum(n num) (object.Tag, []byte, error) {
	switch n.kind {
	case numInt:
		tag, payload := object.EncodeInt(n.i)
		return tag, payload, nil
	case numFraction:
		reduced, err := n.frac.Reduce()
		if err != nil {
			return 0, nil, err
		}
		if reduced.IsInteger() {
			tag, payload := object.EncodeInt(reduced.Num)
			return tag, payload, nil
		}
		tag, payload := object.EncodeFraction(reduced)
		return tag, payload, nil
	case numFloat:
		payload, err := object.EncodeFloat(n.flt)
		if err != nil {
			return 0, nil, err
		}
		return object.Decimal64, payload, nil
	case numBased:
		tag, payload := object.EncodeBased(n.based)
		return tag, payload, nil
	default:
		return 0, nil, rterr.New(rterr.TypeError, "not a number")
	}
}

func (n num) toFraction() bignum.Fraction {
	switch n.kind {
	case numFraction:
		return n.frac
	default:
		return bignum.FractionFromInt(n.i)
	}
}

func (n num) toFloat() (bignum.BigFloat, error) {
	switch n.kind {
	case numFloat:
		return n.flt, nil
	case numFraction:
		numF, err := bignum.FloatFromInt(n.frac.Num)
		if err != nil {
			return bignum.BigFloat{}, err
		}
		denF, err := bignum.FloatFromUint(n.frac.Den)
		if err != nil {
			return bignum.BigFloat{}, err
		}
		return bignum.FloatDiv(numF, denF)
	default:
		return bignum.FloatFromInt(n.i)
	}
}

// rank orders numInt < numFraction < numFloat for promotion; numBased is
// never mixed with the others (checked separately by the caller).
func (k numKind) rank() int {
	switch k {
	case numInt:
		return 0
	case numFraction:
		return 1
	default:
		return 2
	}
}

// promote brings a and b to a common kind, the wider of the two, unless
// either is Based - based numbers only combine with other based numbers
// of the same word size (spec.md §4.5 "Fixed-word-size (based) variants"
// is a distinct domain from the signed/rational/decimal numbers).
func promote(a, b num) (num, num, error) {
	if a.kind == numBased || b.kind == numBased {
		if a.kind != numBased || b.kind != numBased {
			return num{}, num{}, rterr.New(rterr.TypeError, "cannot mix based and unbased numbers")
		}
		if a.based.Bits != b.based.Bits {
			return num{}, num{}, rterr.New(rterr.TypeError, "based numbers have different word sizes")
		}
		return a, b, nil
	}
	switch {
	case a.kind.rank() == b.kind.rank():
		return a, b, nil
	case a.kind.rank() > b.kind.rank():
		bb, err := widen(b, a.kind)
		return a, bb, err
	default:
		aa, err := widen(a, b.kind)
		return aa, b, err
	}
}

func widen(n num, to numKind) (num, error) {
	switch to {
	case numFraction:
		return num{kind: numFraction, frac: n.toFraction()}, nil
	case numFloat:
		f, err := n.toFloat()
		return num{kind: numFloat, flt: f}, err
	default:
		return n, nil
	}
}

func cmpNum(a, b num) (int, error) {
	a, b, err := promote(a, b)
	if err != nil {
		return 0, err
	}
	switch a.kind {
	case numInt:
		return a.i.Cmp(b.i), nil
	case numFraction:
		return bignum.FractionCmp(a.frac, b.frac), nil
	case numFloat:
		return a.flt.Cmp(b.flt), nil
	case numBased:
		return a.based.Mag.Cmp(b.based.Mag), nil
	default:
		return 0, rterr.New(rterr.TypeError, "not comparable")
	}
}

// isNumericTag reports whether a tag decodes to a num (as opposed to
// text, symbols, composites, etc.).
func isNumericTag(t object.Tag) bool {
	return t.IsReal() && t != object.Rectangular && t != object.Polar
}
