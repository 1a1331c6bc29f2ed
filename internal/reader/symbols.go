package reader

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
)

// maxOperatorGlyphBytes bounds the maximal-munch scan for punctuation-style
// command spellings; the longest ASCII alias in the opcode table is
// "->num" (5 bytes), so 6 gives headroom without scanning unboundedly.
const maxOperatorGlyphBytes = 6

// trySymbolOrCommand attempts a maximal run of name-valid characters, or
// failing that a maximal-munch match against the opcode table's punctuation
// spellings (spec.md §4.3 "Symbols/commands" - "a maximal run of
// name-valid characters is looked up in the opcode table. If it matches a
// command spelling, the corresponding command object is emitted;
// otherwise a symbol object is emitted").
func (p *Reader) trySymbolOrCommand() (heap.Object, bool, *Error) {
	if p.c.eof() {
		return heap.Object{}, false, nil
	}

	first := collectSegments(p.c.src[p.c.off:], maxOperatorGlyphBytes)
	if len(first) == 0 {
		return heap.Object{}, false, nil
	}

	if segmentIsName(first[0]) {
		start := p.c.mark()
		p.c.off += len(first[0])
		// Merge consecutive name-valid segments: uax29 may split a run
		// like "abc_123" into separate word/ExtendNumLet segments.
		for {
			next := collectSegments(p.c.src[p.c.off:], maxOperatorGlyphBytes)
			if len(next) == 0 || !segmentIsName(next[0]) {
				break
			}
			p.c.off += len(next[0])
		}
		spelling := string(p.c.sliceFrom(start))
		if e, ok := object.Lookup(spelling); ok {
			return heap.Object{Tag: e.Tag}, true, nil
		}
		return heap.Object{Tag: object.Symbol, Payload: []byte(spelling)}, true, nil
	}

	// Punctuation/operator glyph: maximal munch over the concatenation of
	// the leading word-boundary segments, longest first, so a
	// multi-codepoint glyph is never split mid-cluster and a multi-segment
	// ASCII spelling like "->" still matches as two one-byte segments.
	for n := len(first); n >= 1; n-- {
		length := 0
		for i := 0; i < n; i++ {
			length += len(first[i])
		}
		candidate := string(p.c.src[p.c.off : p.c.off+length])
		if e, ok := object.Lookup(candidate); ok {
			p.c.off += length
			return heap.Object{Tag: e.Tag}, true, nil
		}
	}
	return heap.Object{}, false, nil
}
