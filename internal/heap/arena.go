package heap

import (
	"encoding/binary"

	"rplcalc/internal/object"
)

// Heap owns the object arena and the zones built on top of it (spec.md
// §4.1). Globals and Temporaries share one growing []byte, kept tightly
// packed in that order; Editor and Scratchpad are separate small buffers
// (documented departure, see DESIGN.md "heap zone layout") since spec.md
// §9 itself sanctions choosing typed/indexed storage over one literal
// byte arena for any zone whose invariant survives the substitution. The
// operand stack, directory, and locals frames (internal/runtime) hold Refs
// into this arena; they never see raw offsets directly.
type Heap struct {
	arena      []byte
	globalsEnd uint32 // Globals occupies [headerPad, globalsEnd)
	tempEnd    uint32 // Temporaries occupies [globalsEnd, tempEnd)
	maxBytes   uint32

	pins  []uint32   // LIFO; Collect refuses to run while non-empty
	roots RootSource // registered by internal/runtime; nil means "never collect"

	scratch    []byte
	scratchTop int
	scratchSP  []int // LIFO mark stack for Scratchpad.Push/Pop

	editor []byte
}

// headerPad reserves offset 0 so the zero Ref always means "null".
const headerPad = 4

// NewHeap creates an empty heap with the given ceiling on Globals+Temporaries
// bytes (spec.md §4.1 "heap exhaustion" edge case triggers ErrOutOfMemory
// once this is reached, not when the Go process itself runs out of memory).
func NewHeap(maxBytes uint32) *Heap {
	h := &Heap{
		arena:    make([]byte, headerPad, 4096),
		maxBytes: maxBytes,
		scratch:  make([]byte, 0, 1024),
	}
	h.globalsEnd = headerPad
	h.tempEnd = headerPad
	return h
}

func putHeader(dst []byte, tag object.Tag, payloadLen int) int {
	n := binary.PutUvarint(dst, uint64(tag))
	n += binary.PutUvarint(dst[n:], uint64(payloadLen))
	return n
}

func headerSize(tag object.Tag, payloadLen int) int {
	var buf [10]byte
	n := binary.PutUvarint(buf[:], uint64(tag))
	n += binary.PutUvarint(buf[n:], uint64(payloadLen))
	return n
}

// decodeHeader reads the tag and payload length starting at off, returning
// the tag, the payload's byte range, and the object's total size in bytes.
func (h *Heap) decodeHeader(off uint32) (tag object.Tag, payloadOff, payloadLen, total uint32, err error) {
	if off == 0 || off >= uint32(len(h.arena)) {
		return 0, 0, 0, 0, ErrInvalidRef
	}
	buf := h.arena[off:]
	t, n1 := binary.Uvarint(buf)
	if n1 <= 0 {
		return 0, 0, 0, 0, ErrBadEncoding
	}
	plen, n2 := binary.Uvarint(buf[n1:])
	if n2 <= 0 {
		return 0, 0, 0, 0, ErrBadEncoding
	}
	start := off + uint32(n1+n2)
	end := start + uint32(plen)
	if int(end) > len(h.arena) {
		return 0, 0, 0, 0, ErrBadEncoding
	}
	return object.Tag(t), start, uint32(plen), uint32(n1+n2) + uint32(plen), nil
}

func (h *Heap) ensureCapacity(extra int) {
	need := len(h.arena) + extra
	if need <= cap(h.arena) {
		return
	}
	grown := make([]byte, len(h.arena), need*2)
	copy(grown, h.arena)
	h.arena = grown
}

// fits reports whether total more bytes stay within the configured ceiling.
func (h *Heap) fits(total int) bool {
	return h.maxBytes == 0 || uint32(len(h.arena)+total) <= h.maxBytes
}

// AllocTemp writes a new object into the Temporaries zone and returns a Ref
// to it (spec.md §4.1 "allocation always happens in Temporaries; promotion
// to Globals is an explicit Sto into the home directory"). An allocation
// that doesn't fit triggers one collection and retries once before
// reporting ErrOutOfMemory (spec.md §4.1 "failure triggers garbage
// collection ... out_of_memory when the heap cannot hold the request after
// GC").
func (h *Heap) AllocTemp(tag object.Tag, payload []byte) (Ref, error) {
	total := headerSize(tag, len(payload)) + len(payload)
	if !h.fits(total) {
		if !h.tryCollect() || !h.fits(total) {
			return Null, ErrOutOfMemory
		}
	}
	h.ensureCapacity(total)
	off := uint32(len(h.arena))
	h.arena = h.arena[:off+uint32(total)]
	n := putHeader(h.arena[off:], tag, len(payload))
	copy(h.arena[off+uint32(n):], payload)
	h.tempEnd = uint32(len(h.arena))
	return Ref{off: off}, nil
}

// AllocGlobal writes directly into the Globals zone, shifting Temporaries up
// to keep the fixed zone order intact (spec.md §4.1 "zones are kept tightly
// packed; a lower zone's growth slides every zone above it"). Globals are
// never touched by Collect, but a collection still shrinks Temporaries and
// can free enough of the shared arena for the insert to fit, so overflow
// gets the same collect-then-retry-once treatment as AllocTemp.
func (h *Heap) AllocGlobal(tag object.Tag, payload []byte) (Ref, error) {
	total := headerSize(tag, len(payload)) + len(payload)
	if !h.fits(total) {
		if !h.tryCollect() || !h.fits(total) {
			return Null, ErrOutOfMemory
		}
	}
	h.ensureCapacity(total)
	insertAt := h.globalsEnd
	h.arena = h.arena[:len(h.arena)+total]
	copy(h.arena[insertAt+uint32(total):], h.arena[insertAt:h.tempEnd])
	n := putHeader(h.arena[insertAt:], tag, len(payload))
	copy(h.arena[insertAt+uint32(n):], payload)
	h.globalsEnd += uint32(total)
	h.tempEnd += uint32(total)
	h.shiftRoots(insertAt, uint32(total))
	return Ref{off: insertAt}, nil
}

// shiftRoots bumps every registered root whose offset fell at or above
// where AllocGlobal just inserted bytes, keeping stack and locals-frame
// Refs valid after Temporaries slides up to make room for the new global.
func (h *Heap) shiftRoots(insertAt, total uint32) {
	if h.roots == nil {
		return
	}
	refs := h.roots.Roots()
	changed := false
	for i, r := range refs {
		if !r.IsNull() && r.off >= insertAt {
			refs[i] = Ref{off: r.off + total}
			changed = true
		}
	}
	if changed {
		h.roots.SetRoots(refs)
	}
}

// Get decodes the object named by ref. The returned payload slice aliases
// the arena and is only valid until the next Collect or AllocGlobal call.
// Pinning ref keeps Collect from running, but AllocGlobal still shifts
// Temporaries in place, so callers that keep the payload across an
// AllocGlobal copy it first.
func (h *Heap) Get(ref Ref) (object.Tag, []byte, error) {
	tag, payloadOff, payloadLen, _, err := h.decodeHeader(ref.off)
	if err != nil {
		return 0, nil, err
	}
	return tag, h.arena[payloadOff : payloadOff+payloadLen], nil
}

// Pin excludes ref's object from compaction until the returned Pin is
// released (spec.md §4.1 "owning, pinned references"). Collect returns
// ErrPinned while any pin is outstanding rather than risk invalidating a
// slice obtained from Get.
func (h *Heap) Pin(ref Ref) (Pin, error) {
	if ref.IsNull() {
		return Pin{}, ErrInvalidRef
	}
	if _, _, _, _, err := h.decodeHeader(ref.off); err != nil {
		return Pin{}, err
	}
	h.pins = append(h.pins, ref.off)
	return Pin{h: h, off: ref.off}, nil
}

func (h *Heap) unpin(off uint32) {
	n := len(h.pins)
	if n == 0 || h.pins[n-1] != off {
		panic(ErrUnpinOutOfOrder)
	}
	h.pins = h.pins[:n-1]
}

// Stats reports the bytes currently used by Globals+Temporaries and the
// configured ceiling.
func (h *Heap) Stats() (used, capacity uint32) {
	return h.tempEnd - headerPad, h.maxBytes
}

// Snapshot copies out the Globals+Temporaries arena bytes and the zone
// boundary markers needed to reconstruct an equivalent heap
// (internal/persist's save operation). It does not touch the Editor or
// Scratchpad buffers. internal/persist's Build does not run a Collect
// first, so the copied Temporaries hold whatever the caller has not yet
// collected.
func (h *Heap) Snapshot() (arena []byte, globalsEnd, tempEnd uint32) {
	return append([]byte(nil), h.arena...), h.globalsEnd, h.tempEnd
}

// RestoreHeap rebuilds a heap from a prior Snapshot, preserving every
// Ref's offset so stack/directory/locals refs captured before persistence
// remain valid afterward (internal/persist's load operation).
func RestoreHeap(arena []byte, globalsEnd, tempEnd, maxBytes uint32) *Heap {
	return &Heap{
		arena:      arena,
		globalsEnd: globalsEnd,
		tempEnd:    tempEnd,
		maxBytes:   maxBytes,
		scratch:    make([]byte, 0, 1024),
	}
}
