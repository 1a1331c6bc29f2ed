package reader

import "github.com/clipperhouse/uax29/words"

// collectSegments returns the leading Unicode word-boundary segments of
// src, stopping once the accumulated byte length would exceed maxBytes.
// Used by trySymbolOrCommand's maximal-munch scan so a multi-codepoint
// command glyph (×, ÷, ≤, «, ») is never split mid-cluster, the same
// guarantee the teacher's indirect uax29 dependency gives bubbles/
// bubbletea's line-editing widgets over user input (spec.md §4.3
// "Symbols/commands").
func collectSegments(src []byte, maxBytes int) [][]byte {
	seg := words.NewSegmenter(src)
	var out [][]byte
	total := 0
	for seg.Next() {
		b := seg.Bytes()
		if total+len(b) > maxBytes {
			break
		}
		out = append(out, b)
		total += len(b)
	}
	return out
}

// segmentIsName reports whether a word-boundary segment is itself a
// name-valid run (letters/digits/underscore, or a multi-byte Unicode
// letter cluster) rather than a punctuation/operator glyph.
func segmentIsName(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if !isNameByte(c) {
			return false
		}
	}
	return true
}
