// Package heap implements the tagged-object arena described in spec.md §4.1:
// a byte-addressed region split into fixed-order zones, a mark-compact
// collector over the Temporaries zone, and relocating vs. pinned references
// for code that must survive a collection.
//
// Grounded on the teacher's internal/vm/heap.go handle-indirection idiom
// (allocate through a single owner, never hand out raw pointers) - the
// storage scheme itself is new, since the teacher's map-of-objects heap has
// no notion of contiguous bytes or compaction, but the "everything goes
// through *Heap" discipline and the panic-free error-return style carry
// over directly.
package heap

import "fmt"

// Ref is a relocating reference to an object living in the Globals or
// Temporaries zone: an offset into Heap.arena that the collector rewrites
// in place whenever the object it names is compacted (spec.md §4.1 "the
// operand stack, directory entries, and locals frames hold object
// references, not object values"). The zero Ref is the null object.
type Ref struct {
	off uint32
}

// Null is the reference held by an empty stack slot or unset local.
var Null = Ref{}

// IsNull reports whether r names no object.
func (r Ref) IsNull() bool { return r.off == 0 }

// Offset exposes the raw arena offset a Ref names, for internal/persist's
// serialization of stack/directory refs alongside the arena bytes.
func (r Ref) Offset() uint32 { return r.off }

// RefAt reconstructs a Ref from a raw arena offset previously obtained via
// Offset, after a Snapshot/Restore round trip through internal/persist.
func RefAt(off uint32) Ref { return Ref{off: off} }

func (r Ref) String() string {
	if r.IsNull() {
		return "<null>"
	}
	return fmt.Sprintf("@%d", r.off)
}

// Pin is a non-relocating handle: once taken, the object it names is
// excluded from compaction until the Pin is released, so native Go code can
// hold a direct byte slice across calls that might otherwise move it
// (spec.md §4.1 "owning, pinned references... used by the parser and
// renderer while they build an object incrementally"). Pins nest in
// release order, mirroring the teacher's Cursor.Mark/Reset stack discipline
// in internal/lexer/cursor.go.
type Pin struct {
	h   *Heap
	off uint32
}

// Release unpins the object. Releasing out of LIFO order is a programmer
// error and panics, matching Cursor.Reset's behavior on a stale mark.
func (p Pin) Release() {
	p.h.unpin(p.off)
}
