package heap

// RootSource supplies Collect's live root set on demand and receives the
// post-compaction replacements for those same roots, letting AllocTemp and
// AllocGlobal trigger a collection internally without internal/heap
// importing internal/runtime (spec.md §4.1 "failure triggers garbage
// collection which compacts live objects toward the low end"). Directory
// entries are not part of this: once a value is Sto'd it lives in Globals,
// which Collect never moves, so only the operand stack and locals frames -
// the Temporaries-zone roots - need to round-trip through Roots/SetRoots.
type RootSource interface {
	// Roots returns every live heap.Ref outside Globals, in a stable order.
	Roots() []Ref
	// SetRoots writes back Collect's replacements, same order as Roots.
	SetRoots([]Ref)
}

// SetRootSource registers the provider AllocTemp/AllocGlobal consult when
// an allocation doesn't fit and a collection might reclaim enough room to
// retry. A heap with no registered source (e.g. one used standalone in
// tests) simply fails allocation immediately, matching the old behavior.
func (h *Heap) SetRootSource(rs RootSource) { h.roots = rs }

// tryCollect runs one collection cycle using the registered root source
// and reports whether it ran. It does not itself retry the allocation;
// callers check fit again afterward.
func (h *Heap) tryCollect() bool {
	if h.roots == nil {
		return false
	}
	roots := h.roots.Roots()
	remapped, err := h.Collect(roots)
	if err != nil {
		return false
	}
	h.roots.SetRoots(remapped)
	return true
}

// Collect mark-compacts the Temporaries zone against roots - the operand
// stack and locals frames supplied by internal/runtime (spec.md §4.1
// "Live roots are the globals zone... the operand stack, any open locals
// frames, the editor buffer, and pinned references"). Globals are always
// live and never move, so they never need to appear in roots. Editor and
// Scratchpad are separate buffers and are not touched here.
//
// Roots sharing the same offset (e.g. Dup pushed the same Ref twice) are
// copied once; the returned slice preserves root order and aliasing.
func (h *Heap) Collect(roots []Ref) ([]Ref, error) {
	if len(h.pins) > 0 {
		return nil, ErrPinned
	}

	moved := make(map[uint32]uint32, len(roots))
	newLen := h.globalsEnd
	out := make([]Ref, len(roots))

	// First pass: compute each live object's size without moving anything,
	// so we can size the rebuild buffer up front.
	for _, r := range roots {
		if r.IsNull() {
			continue
		}
		if _, ok := moved[r.off]; ok {
			continue
		}
		_, _, _, total, err := h.decodeHeader(r.off)
		if err != nil {
			return nil, err
		}
		moved[r.off] = 0 // placeholder, real offset assigned below
		newLen += total
	}

	rebuilt := make([]byte, newLen)
	copy(rebuilt, h.arena[:h.globalsEnd])
	cursor := h.globalsEnd

	assigned := make(map[uint32]uint32, len(moved))
	for _, r := range roots {
		if r.IsNull() || assigned[r.off] != 0 {
			continue
		}
		_, _, _, total, err := h.decodeHeader(r.off)
		if err != nil {
			return nil, err
		}
		copy(rebuilt[cursor:cursor+total], h.arena[r.off:r.off+total])
		assigned[r.off] = cursor
		cursor += total
	}

	for i, r := range roots {
		if r.IsNull() {
			out[i] = Null
			continue
		}
		out[i] = Ref{off: assigned[r.off]}
	}

	h.arena = rebuilt
	h.tempEnd = cursor
	return out, nil
}
