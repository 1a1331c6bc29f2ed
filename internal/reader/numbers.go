package reader

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
)

// tryBased attempts `#digits[suffix]` (spec.md §4.3 "Based numbers"). The
// suffix b/o/d/h selects radix 2/8/10/16; with no suffix the active
// p.set.Base applies. While the active base is 16, a trailing b or d is
// read as a hex digit rather than a suffix.
func (p *Reader) tryBased() (heap.Object, bool, *Error) {
	m := p.c.mark()
	if !p.c.eat('#') {
		return heap.Object{}, false, nil
	}
	digitsStart := p.c.mark()
	for isBasedDigitCandidate(p.c.peek()) {
		p.c.bump()
	}
	digits := string(p.c.sliceFrom(digitsStart))
	if digits == "" {
		return heap.Object{}, true, newError(ErrSyntax, int(m), "`#` with no digits")
	}

	base := p.set.Base
	switch p.c.peek() {
	case 'b', 'B':
		base = 2
		p.c.bump()
	case 'o', 'O':
		base = 8
		p.c.bump()
	case 'd', 'D':
		base = 10
		p.c.bump()
	case 'h', 'H':
		base = 16
		p.c.bump()
	default:
		if base != 16 && len(digits) > 1 {
			switch digits[len(digits)-1] {
			case 'b', 'B':
				base = 2
				digits = digits[:len(digits)-1]
			case 'd', 'D':
				base = 10
				digits = digits[:len(digits)-1]
			}
		}
	}
	if base != 2 && base != 8 && base != 10 && base != 16 {
		return heap.Object{}, true, newError(ErrInvalidBase, int(m), "based-number radix must be 2, 8, 10, or 16")
	}

	mag, err := parseDigitsInBase(digits, base)
	if err != nil {
		return heap.Object{}, true, newError(ErrBasedDigit, int(m), err.Error())
	}
	based := bignum.NewBased(p.set.WordSize, mag)
	tag, payload := object.EncodeBased(based)
	return heap.Object{Tag: tag, Payload: payload}, true, nil
}

func isBasedDigitCandidate(b byte) bool {
	switch {
	case isDigit(b):
		return true
	case b >= 'a' && b <= 'f', b >= 'A' && b <= 'F':
		return true
	default:
		return false
	}
}

func parseDigitsInBase(digits string, base int) (bignum.BigUint, error) {
	u := bignum.UintZero()
	for i := 0; i < len(digits); i++ {
		d, ok := digitValueInBase(digits[i], base)
		if !ok {
			return bignum.BigUint{}, newError(ErrBasedDigit, i, "digit not valid in base "+itoa(base))
		}
		var err error
		u, err = bignum.UintMulSmall(u, uint32(base))
		if err != nil {
			return bignum.BigUint{}, err
		}
		u, err = bignum.UintAddSmall(u, d)
		if err != nil {
			return bignum.BigUint{}, err
		}
	}
	return u, nil
}

func digitValueInBase(b byte, base int) (uint32, bool) {
	var v uint32
	switch {
	case b >= '0' && b <= '9':
		v = uint32(b - '0')
	case b >= 'a' && b <= 'f':
		v = uint32(b-'a') + 10
	case b >= 'A' && b <= 'F':
		v = uint32(b-'A') + 10
	default:
		return 0, false
	}
	if int(v) >= base {
		return 0, false
	}
	return v, true
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// tryNumber attempts a signed integer, decimal, or fraction literal
// (spec.md §4.3 "Numbers"). Overflow of the small-integer encoding
// promotes to a bignum tag automatically (handled by object.EncodeInt).
func (p *Reader) tryNumber() (heap.Object, bool, *Error) {
	m := p.c.mark()
	neg := false
	if p.c.peek() == '+' || p.c.peek() == '-' {
		neg = p.c.peek() == '-'
		// A bare sign with no following digit is not a number; let the
		// symbol/command trial handle it (e.g. `-` the Sub command).
		if !isDigit(p.c.peekAt(1)) {
			return heap.Object{}, false, nil
		}
		p.c.bump()
	} else if !isDigit(p.c.peek()) {
		return heap.Object{}, false, nil
	}

	intStart := p.c.mark()
	for isDigit(p.c.peek()) {
		p.c.bump()
	}
	mantissaDigits := string(p.c.sliceFrom(intStart))

	// Fraction: integer '/' integer.
	if p.c.peek() == '/' && isDigit(p.c.peekAt(1)) {
		p.c.bump()
		denStart := p.c.mark()
		for isDigit(p.c.peek()) {
			p.c.bump()
		}
		denDigits := string(p.c.sliceFrom(denStart))
		numMag, err := parseDigitsInBase(mantissaDigits, 10)
		if err != nil {
			return heap.Object{}, true, newError(ErrMantissa, int(m), err.Error())
		}
		den, err := parseDigitsInBase(denDigits, 10)
		if err != nil {
			return heap.Object{}, true, newError(ErrMantissa, int(m), err.Error())
		}
		num := bignum.BigInt{Neg: neg && !numMag.IsZero(), Limbs: numMag.Limbs}
		frac, ferr := bignum.NewFraction(num, den)
		if ferr != nil {
			return heap.Object{}, true, newError(ErrMantissa, int(m), ferr.Error())
		}
		frac, ferr = frac.Reduce()
		if ferr != nil {
			return heap.Object{}, true, newError(ErrMantissa, int(m), ferr.Error())
		}
		if frac.IsInteger() {
			tag, payload := object.EncodeInt(frac.Num)
			return heap.Object{Tag: tag, Payload: payload}, true, nil
		}
		tag, payload := object.EncodeFraction(frac)
		return heap.Object{Tag: tag, Payload: payload}, true, nil
	}

	isDecimal := false
	fracDigits := ""
	if p.c.peek() == byte(p.set.DecimalMark) && isDigit(p.c.peekAt(1)) {
		isDecimal = true
		p.c.bump()
		fracStart := p.c.mark()
		for isDigit(p.c.peek()) {
			p.c.bump()
		}
		fracDigits = string(p.c.sliceFrom(fracStart))
	}

	expSign := false
	expDigits := ""
	hasExp := false
	if p.c.peek() == p.set.ExponentMark || p.c.peek() == p.set.ExponentMark+32 {
		save := p.c.mark()
		p.c.bump()
		if p.c.peek() == '+' || p.c.peek() == '-' {
			expSign = p.c.peek() == '-'
			p.c.bump()
		}
		if !isDigit(p.c.peek()) {
			p.c.reset(save) // not actually an exponent (e.g. bare trailing letter)
		} else {
			isDecimal = true
			hasExp = true
			expStart := p.c.mark()
			for isDigit(p.c.peek()) {
				p.c.bump()
			}
			expDigits = string(p.c.sliceFrom(expStart))
		}
	}

	if !isDecimal {
		mag, err := parseDigitsInBase(mantissaDigits, 10)
		if err != nil {
			return heap.Object{}, true, newError(ErrMantissa, int(m), err.Error())
		}
		i := bignum.BigInt{Neg: neg && !mag.IsZero(), Limbs: mag.Limbs}
		tag, payload := object.EncodeInt(i)
		return heap.Object{Tag: tag, Payload: payload}, true, nil
	}

	f, ferr := buildDecimal(neg, mantissaDigits, fracDigits, expSign, expDigits, hasExp)
	if ferr != nil {
		kind := ErrMantissa
		if hasExp {
			kind = ErrExponent
		}
		return heap.Object{}, true, newError(kind, int(m), ferr.Error())
	}
	payload, err := object.EncodeFloat(f)
	if err != nil {
		return heap.Object{}, true, newError(ErrExponentRange, int(m), err.Error())
	}
	return heap.Object{Tag: object.Decimal64, Payload: payload}, true, nil
}

func buildDecimal(neg bool, intDigits, fracDigits string, expNeg bool, expDigits string, hasExp bool) (bignum.BigFloat, error) {
	digits := intDigits + fracDigits
	mag, err := parseDigitsInBase(digits, 10)
	if err != nil {
		return bignum.BigFloat{}, err
	}
	exp := -len(fracDigits)
	if hasExp {
		e, eerr := parseDigitsInBase(expDigits, 10)
		if eerr != nil {
			return bignum.BigFloat{}, eerr
		}
		ev, _ := e.Uint64()
		if expNeg {
			exp -= int(ev)
		} else {
			exp += int(ev)
		}
	}
	i := bignum.BigInt{Neg: neg && !mag.IsZero(), Limbs: mag.Limbs}
	f, ferr := bignum.FloatFromInt(i)
	if ferr != nil {
		return bignum.BigFloat{}, ferr
	}
	return scaleDecimal(f, exp)
}

func scaleDecimal(f bignum.BigFloat, exp int) (bignum.BigFloat, error) {
	if exp == 0 {
		return f, nil
	}
	p10, err := bignum.UintPow10(abs(exp))
	if err != nil {
		return bignum.BigFloat{}, err
	}
	scale, err := bignum.FloatFromUint(p10)
	if err != nil {
		return bignum.BigFloat{}, err
	}
	if exp > 0 {
		return bignum.FloatMul(f, scale)
	}
	return bignum.FloatDiv(f, scale)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
