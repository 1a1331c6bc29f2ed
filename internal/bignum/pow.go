package bignum

// UintPow raises u to the exp power using square-and-multiply.
func UintPow(u BigUint, exp BigUint) (BigUint, error) {
	if exp.IsZero() {
		return UintFromUint32(1), nil
	}
	if u.IsZero() {
		return BigUint{}, nil
	}

	result := UintFromUint32(1)
	base := u
	e := exp
	for !e.IsZero() {
		if e.IsOdd() {
			r, err := UintMul(result, base)
			if err != nil {
				return BigUint{}, err
			}
			result = r
		}
		shifted, err := UintShr(e, 1)
		if err != nil {
			return BigUint{}, err
		}
		e = shifted
		if e.IsZero() {
			break
		}
		b, err := UintMul(base, base)
		if err != nil {
			return BigUint{}, err
		}
		base = b
	}
	return result, nil
}

// IntPow raises i to a non-negative integer power exp.
// A negative exponent is rejected; callers should form a Fraction reciprocal instead (§4.5 Power).
func IntPow(i BigInt, exp BigUint) (BigInt, error) {
	mag, err := UintPow(i.Abs(), exp)
	if err != nil {
		return BigInt{}, err
	}
	neg := i.Neg && exp.IsOdd()
	if mag.IsZero() {
		neg = false
	}
	return BigInt{Neg: neg, Limbs: mag.Limbs}, nil
}

// Gcd returns the greatest common divisor of a and b via the Euclidean algorithm.
func Gcd(a, b BigUint) (BigUint, error) {
	for !b.IsZero() {
		_, r, err := UintDivMod(a, b)
		if err != nil {
			return BigUint{}, err
		}
		a, b = b, r
	}
	return a, nil
}
