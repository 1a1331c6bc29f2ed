package bignum

// Based is a fixed word-size integer (§4.5 "Fixed-word-size (based) variants").
// Every operation truncates its result modulo 2^Bits; bitwise operators act
// on the stored bytes directly and ignore sign, matching the spec's
// "#FF #F0 and" example under wordsize=16.
type Based struct {
	Bits uint32
	Mag  BigUint
}

// NewBased truncates mag to Bits bits.
func NewBased(bits uint32, mag BigUint) Based {
	return Based{Bits: bits, Mag: truncateTo(mag, bits)}
}

func truncateTo(u BigUint, bitsCount uint32) BigUint {
	if bitsCount == 0 {
		return BigUint{}
	}
	mask, err := UintShl(UintFromUint32(1), int(bitsCount))
	if err != nil {
		return u
	}
	mask, err = UintSub(mask, UintFromUint32(1))
	if err != nil {
		return u
	}
	return UintAnd(u, mask)
}

// BasedAdd adds two based numbers of the same word size, truncating the result.
func BasedAdd(a, b Based) (Based, error) {
	sum, err := UintAdd(a.Mag, b.Mag)
	if err != nil {
		return Based{}, err
	}
	return NewBased(a.Bits, sum), nil
}

// BasedSub subtracts b from a modulo 2^Bits (two's-complement wraparound).
func BasedSub(a, b Based) (Based, error) {
	if a.Mag.Cmp(b.Mag) >= 0 {
		diff, err := UintSub(a.Mag, b.Mag)
		if err != nil {
			return Based{}, err
		}
		return NewBased(a.Bits, diff), nil
	}
	modulus, err := UintShl(UintFromUint32(1), int(a.Bits))
	if err != nil {
		return Based{}, err
	}
	wrapped, err := UintSub(modulus, b.Mag)
	if err != nil {
		return Based{}, err
	}
	sum, err := UintAdd(a.Mag, wrapped)
	if err != nil {
		return Based{}, err
	}
	return NewBased(a.Bits, sum), nil
}

// BasedMul multiplies two based numbers, truncating the result modulo 2^Bits.
//
// Open question resolution (spec.md §9): when the true product's magnitude
// would not have exceeded wbytes but the *truncated* width computation did,
// this implementation always truncates silently as a modular operation
// rather than reporting an error - i.e. based arithmetic is defined as
// arithmetic in Z/2^Bits.
func BasedMul(a, b Based) (Based, error) {
	prod, err := UintMul(a.Mag, b.Mag)
	if err != nil {
		return Based{}, err
	}
	return NewBased(a.Bits, prod), nil
}

// BasedAnd/Or/Xor/Not operate on the raw magnitude bytes and ignore sign.
func BasedAnd(a, b Based) Based { return NewBased(a.Bits, UintAnd(a.Mag, b.Mag)) }
func BasedOr(a, b Based) Based  { return NewBased(a.Bits, UintOr(a.Mag, b.Mag)) }
func BasedXor(a, b Based) Based { return NewBased(a.Bits, UintXor(a.Mag, b.Mag)) }

// BasedNot complements every one of the Bits stored bits.
func BasedNot(a Based) (Based, error) {
	modulus, err := UintShl(UintFromUint32(1), int(a.Bits))
	if err != nil {
		return Based{}, err
	}
	allOnes, err := UintSub(modulus, UintFromUint32(1))
	if err != nil {
		return Based{}, err
	}
	return Based{Bits: a.Bits, Mag: UintXor(a.Mag, allOnes)}, nil
}
