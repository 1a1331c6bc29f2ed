package bignum

import "encoding/binary"

// LimbBytes packs u's limbs into little-endian bytes, for use as a heap
// object payload (spec.md §3 "little-endian magnitude bytes"). The empty
// BigUint{} encodes as a zero-length slice.
func (u BigUint) LimbBytes() []byte {
	out := make([]byte, 4*len(u.Limbs))
	for i, limb := range u.Limbs {
		binary.LittleEndian.PutUint32(out[4*i:], limb)
	}
	return out
}

// UintFromLimbBytes reverses LimbBytes. b's length need not be a multiple of
// 4; a short trailing run is zero-extended.
func UintFromLimbBytes(b []byte) BigUint {
	n := (len(b) + 3) / 4
	if n == 0 {
		return BigUint{}
	}
	limbs := make([]uint32, n)
	for i := 0; i < n; i++ {
		var chunk [4]byte
		copy(chunk[:], b[4*i:min(4*i+4, len(b))])
		limbs[i] = binary.LittleEndian.Uint32(chunk[:])
	}
	return BigUint{Limbs: trimLimbs(limbs)}
}
