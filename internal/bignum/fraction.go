package bignum

// Fraction is a reduced rational number: Num/Den with Den strictly positive.
// The source format (§3 "Fraction/big_fraction") stores numerator and
// denominator as separate signed/magnitude integers; Den carries no sign here
// because the sign always lives on Num, matching the encoded tag's own
// signed/unsigned variant split.
type Fraction struct {
	Num BigInt
	Den BigUint
}

// FractionFromInt lifts a whole integer to a fraction with denominator 1.
func FractionFromInt(i BigInt) Fraction {
	return Fraction{Num: i, Den: UintFromUint32(1)}
}

// NewFraction constructs a fraction from a numerator and a strictly positive
// denominator, reducing it by their gcd immediately.
func NewFraction(num BigInt, den BigUint) (Fraction, error) {
	if den.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	return Fraction{Num: num, Den: den}.Reduce()
}

// IsInteger reports whether the fraction has collapsed to a denominator of one.
func (f Fraction) IsInteger() bool {
	return f.Den.Cmp(UintFromUint32(1)) == 0
}

// Reduce divides numerator and denominator by their gcd and normalizes the
// representation so a zero numerator always carries denominator 1 (§4.5
// "Fractions... a denominator of one collapses back to an integer").
func (f Fraction) Reduce() (Fraction, error) {
	if f.Den.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	if f.Num.IsZero() {
		return Fraction{Num: BigInt{}, Den: UintFromUint32(1)}, nil
	}
	g, err := Gcd(f.Num.Abs(), f.Den)
	if err != nil {
		return Fraction{}, err
	}
	if g.Cmp(UintFromUint32(1)) == 0 {
		return f, nil
	}
	numMag, _, err := UintDivMod(f.Num.Abs(), g)
	if err != nil {
		return Fraction{}, err
	}
	den, _, err := UintDivMod(f.Den, g)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: BigInt{Neg: f.Num.Neg, Limbs: numMag.Limbs}, Den: den}, nil
}

// FractionAdd computes a+b, reduced.
func FractionAdd(a, b Fraction) (Fraction, error) {
	an, err := IntMul(a.Num, BigInt{Limbs: b.Den.Limbs})
	if err != nil {
		return Fraction{}, err
	}
	bn, err := IntMul(b.Num, BigInt{Limbs: a.Den.Limbs})
	if err != nil {
		return Fraction{}, err
	}
	num, err := IntAdd(an, bn)
	if err != nil {
		return Fraction{}, err
	}
	den, err := UintMul(a.Den, b.Den)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: num, Den: den}.Reduce()
}

// FractionSub computes a-b, reduced.
func FractionSub(a, b Fraction) (Fraction, error) {
	return FractionAdd(a, Fraction{Num: b.Num.Negated(), Den: b.Den})
}

// FractionMul computes a*b, reduced.
func FractionMul(a, b Fraction) (Fraction, error) {
	num, err := IntMul(a.Num, b.Num)
	if err != nil {
		return Fraction{}, err
	}
	den, err := UintMul(a.Den, b.Den)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: num, Den: den}.Reduce()
}

// FractionDiv computes a/b, reduced.
func FractionDiv(a, b Fraction) (Fraction, error) {
	if b.Num.IsZero() {
		return Fraction{}, ErrDivByZero
	}
	recip := Fraction{Num: BigInt{Neg: b.Num.Neg, Limbs: b.Den.Limbs}, Den: b.Num.Abs()}
	return FractionMul(a, recip)
}

// FractionCmp orders two fractions by cross-multiplication.
func FractionCmp(a, b Fraction) int {
	left, err := IntMul(a.Num, BigInt{Limbs: b.Den.Limbs})
	if err != nil {
		return 0
	}
	right, err := IntMul(b.Num, BigInt{Limbs: a.Den.Limbs})
	if err != nil {
		return 0
	}
	return left.Cmp(right)
}

// FractionPow raises a fraction to a non-negative integer power.
// A negative exponent is handled by the caller by inverting the base first
// (§4.5 "negative exponent produces a reciprocal").
func FractionPow(f Fraction, exp BigUint) (Fraction, error) {
	num, err := IntPow(f.Num, exp)
	if err != nil {
		return Fraction{}, err
	}
	den, err := UintPow(f.Den, exp)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: num, Den: den}.Reduce()
}
