package object

import (
	"encoding/binary"
	"errors"

	"rplcalc/internal/bignum"
)

// ErrBadPayload is returned when a numeric payload is shorter or
// differently shaped than its tag promises - corrupt heap bytes, or a
// caller decoding with the wrong tag.
var ErrBadPayload = errors.New("object: malformed numeric payload")

// This file is the shared encode/decode contract for every numeric object
// kind's heap payload (spec.md §3). It lives here, next to the Tag
// definitions that choose which encoding applies, rather than in
// internal/heap (which must stay ignorant of any particular kind's payload
// shape) or internal/bignum (which must stay ignorant of the tag space).

// smallLimbThreshold is the limb count at or below which an integer's
// magnitude is stored under the small-integer tags (PosInt/NegInt/
// BasedInt) rather than the bignum tags; spec.md §4.5 "an operation on two
// small integers whose result overflows produces a bignum" - the choice of
// threshold is a storage/dispatch heuristic only, both tag families answer
// IsInteger() identically.
const smallLimbThreshold = 2 // 2 * 32 bits = 64-bit small integers

// EncodeInt chooses PosInt/NegInt or BigPosInt/BigNegInt for i and returns
// its tag and payload (magnitude bytes, little-endian).
func EncodeInt(i bignum.BigInt) (Tag, []byte) {
	mag := i.Abs()
	payload := mag.LimbBytes()
	small := len(mag.Limbs) <= smallLimbThreshold
	if i.Neg {
		if small {
			return NegInt, payload
		}
		return BigNegInt, payload
	}
	if small {
		return PosInt, payload
	}
	return BigPosInt, payload
}

// DecodeInt reverses EncodeInt given the tag that was stored alongside payload.
func DecodeInt(tag Tag, payload []byte) (bignum.BigInt, error) {
	mag := bignum.UintFromLimbBytes(payload)
	neg := tag == NegInt || tag == BigNegInt
	return bignum.BigInt{Neg: neg && len(mag.Limbs) > 0, Limbs: mag.Limbs}, nil
}

// EncodeFraction returns f's tag (chosen from the small/big pair based on
// the same threshold as EncodeInt, applied to both numerator and
// denominator) and payload: LEB128(len(numerator bytes)) followed by the
// numerator's magnitude bytes then the denominator's magnitude bytes
// (spec.md §3 "numerator followed by denominator, each encoded as above").
func EncodeFraction(f bignum.Fraction) (Tag, []byte) {
	numBytes := f.Num.Abs().LimbBytes()
	denBytes := f.Den.LimbBytes()
	small := len(f.Num.Abs().Limbs) <= smallLimbThreshold && len(f.Den.Limbs) <= smallLimbThreshold

	var lenBuf [10]byte
	n := binary.PutUvarint(lenBuf[:], uint64(len(numBytes)))
	payload := make([]byte, n+len(numBytes)+len(denBytes))
	copy(payload, lenBuf[:n])
	copy(payload[n:], numBytes)
	copy(payload[n+len(numBytes):], denBytes)

	if f.Num.Neg {
		if small {
			return NegFraction, payload
		}
		return NegBigFraction, payload
	}
	if small {
		return PosFraction, payload
	}
	return PosBigFraction, payload
}

// DecodeFraction reverses EncodeFraction.
func DecodeFraction(tag Tag, payload []byte) (bignum.Fraction, error) {
	nlen, n := binary.Uvarint(payload)
	if n <= 0 || n+int(nlen) > len(payload) {
		return bignum.Fraction{}, ErrBadPayload
	}
	numBytes := payload[n : n+int(nlen)]
	denBytes := payload[n+int(nlen):]
	numMag := bignum.UintFromLimbBytes(numBytes)
	num := bignum.BigInt{Neg: (tag == NegFraction || tag == NegBigFraction) && len(numMag.Limbs) > 0, Limbs: numMag.Limbs}
	den := bignum.UintFromLimbBytes(denBytes)
	return bignum.NewFraction(num, den)
}

// EncodeFloat packs a BigFloat into a Decimal64 payload: one byte sign
// flag, LEB128 biased exponent, LEB128 mantissa byte-length, mantissa bytes
// (spec.md §3 "Decimal32/64/128" - this runtime implements the 64-bit
// width fully and stores Decimal32/128 as the same shape at different
// declared widths, documented in DESIGN.md as a simplification since
// spec.md §1 scopes exact IEEE-754 interchange formats out).
func EncodeFloat(f bignum.BigFloat) ([]byte, error) {
	mantBytes := f.Mant.LimbBytes()
	var buf [10]byte
	n := binary.PutVarint(buf[:], int64(f.Exp))
	var lenBuf [10]byte
	ln := binary.PutUvarint(lenBuf[:], uint64(len(mantBytes)))
	out := make([]byte, 1+n+ln+len(mantBytes))
	if f.Neg {
		out[0] = 1
	}
	copy(out[1:], buf[:n])
	copy(out[1+n:], lenBuf[:ln])
	copy(out[1+n+ln:], mantBytes)
	return out, nil
}

// DecodeFloat reverses EncodeFloat.
func DecodeFloat(payload []byte) (bignum.BigFloat, error) {
	if len(payload) < 1 {
		return bignum.BigFloat{}, ErrBadPayload
	}
	neg := payload[0] == 1
	rest := payload[1:]
	exp, n := binary.Varint(rest)
	if n <= 0 {
		return bignum.BigFloat{}, ErrBadPayload
	}
	rest = rest[n:]
	mlen, n2 := binary.Uvarint(rest)
	if n2 <= 0 {
		return bignum.BigFloat{}, ErrBadPayload
	}
	rest = rest[n2:]
	if uint64(len(rest)) < mlen {
		return bignum.BigFloat{}, ErrBadPayload
	}
	mant := bignum.UintFromLimbBytes(rest[:mlen])
	return bignum.BigFloat{Neg: neg, Mant: mant, Exp: int32(exp)}, nil
}

// EncodeBased returns BasedInt/BasedBignum (by the same size threshold) and
// a payload of LEB128(bits) followed by the magnitude bytes.
func EncodeBased(b bignum.Based) (Tag, []byte) {
	var bitsBuf [10]byte
	n := binary.PutUvarint(bitsBuf[:], uint64(b.Bits))
	magBytes := b.Mag.LimbBytes()
	payload := make([]byte, n+len(magBytes))
	copy(payload, bitsBuf[:n])
	copy(payload[n:], magBytes)
	if len(b.Mag.Limbs) <= smallLimbThreshold {
		return BasedInt, payload
	}
	return BasedBignum, payload
}

// DecodeBased reverses EncodeBased.
func DecodeBased(payload []byte) (bignum.Based, error) {
	bits, n := binary.Uvarint(payload)
	if n <= 0 {
		return bignum.Based{}, ErrBadPayload
	}
	mag := bignum.UintFromLimbBytes(payload[n:])
	return bignum.NewBased(uint32(bits), mag), nil
}

// EncodeLocal packs a Local object's (depth, slot) pair (spec.md §3
// "Local") as two LEB128 varints.
func EncodeLocal(depth, slot int) []byte {
	var buf [20]byte
	n := binary.PutUvarint(buf[:], uint64(depth))
	n += binary.PutUvarint(buf[n:], uint64(slot))
	return append([]byte{}, buf[:n]...)
}

// DecodeLocal reverses EncodeLocal.
func DecodeLocal(payload []byte) (depth, slot int, err error) {
	d, n := binary.Uvarint(payload)
	if n <= 0 {
		return 0, 0, ErrBadPayload
	}
	s, n2 := binary.Uvarint(payload[n:])
	if n2 <= 0 {
		return 0, 0, ErrBadPayload
	}
	return int(d), int(s), nil
}
