package heap

import (
	"encoding/binary"

	"rplcalc/internal/object"
)

// EncodeChildren concatenates the tag+payload encoding of each child into a
// single byte slice, ready to hand to AllocTemp/AllocGlobal as the parent
// composite object's payload (spec.md §3 "List/array/program/block/locals/
// expression/directory... a length-prefixed run of child objects").
func EncodeChildren(children ...Object) []byte {
	total := 0
	for _, c := range children {
		total += headerSize(c.Tag, len(c.Payload)) + len(c.Payload)
	}
	buf := make([]byte, total)
	off := 0
	for _, c := range children {
		n := putHeader(buf[off:], c.Tag, len(c.Payload))
		off += n
		copy(buf[off:], c.Payload)
		off += len(c.Payload)
	}
	return buf
}

// Object is a decoded, arena-independent tag+payload pair - what you get
// back from walking a composite's children, or what you build up before
// calling EncodeChildren/AllocTemp.
type Object struct {
	Tag     object.Tag
	Payload []byte
}

// WalkChildren decodes each child object packed into a composite's payload
// in order, stopping at the first error fn returns.
func WalkChildren(payload []byte, fn func(Object) error) error {
	off := 0
	for off < len(payload) {
		t, n1 := binary.Uvarint(payload[off:])
		if n1 <= 0 {
			return ErrBadEncoding
		}
		plen, n2 := binary.Uvarint(payload[off+n1:])
		if n2 <= 0 {
			return ErrBadEncoding
		}
		start := off + n1 + n2
		end := start + int(plen)
		if end > len(payload) {
			return ErrBadEncoding
		}
		if err := fn(Object{Tag: object.Tag(t), Payload: payload[start:end]}); err != nil {
			return err
		}
		off = end
	}
	return nil
}

// Children decodes every child object packed into a composite's payload
// and returns them as a slice, for callers that need random access rather
// than a streaming walk.
func Children(payload []byte) ([]Object, error) {
	var out []Object
	err := WalkChildren(payload, func(o Object) error {
		out = append(out, o)
		return nil
	})
	return out, err
}
