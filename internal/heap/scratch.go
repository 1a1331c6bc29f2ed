package heap

// Scratchpad is a LIFO byte allocator for short-lived working buffers that
// never need to survive past the call that requested them (spec.md §4.1
// "Scratchpad zone: short-lived working space for in-progress operations,
// freed at the end of the call that allocated it"). It never participates
// in Collect.

// ScratchAlloc reserves n bytes and returns a mark to pass to ScratchFree.
func (h *Heap) ScratchAlloc(n int) (mark int, buf []byte) {
	mark = h.scratchTop
	need := h.scratchTop + n
	if need > cap(h.scratch) {
		grown := make([]byte, need, need*2)
		copy(grown, h.scratch[:h.scratchTop])
		h.scratch = grown
	}
	h.scratch = h.scratch[:need]
	h.scratchTop = need
	h.scratchSP = append(h.scratchSP, mark)
	return mark, h.scratch[mark:need]
}

// ScratchFree releases everything allocated since mark. Freeing out of LIFO
// order is a programmer error signalled with ErrScratchUnderflow.
func (h *Heap) ScratchFree(mark int) error {
	n := len(h.scratchSP)
	if n == 0 || h.scratchSP[n-1] != mark {
		return ErrScratchUnderflow
	}
	h.scratchSP = h.scratchSP[:n-1]
	h.scratchTop = mark
	h.scratch = h.scratch[:mark]
	return nil
}
