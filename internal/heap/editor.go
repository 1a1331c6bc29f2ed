package heap

// Editor holds the raw UTF-8 bytes of the line currently being composed
// (spec.md §4.1 "Editor zone: the text of the object currently being typed
// or edited, distinct from any parsed result"). It is a dedicated buffer
// rather than a slice of the main arena - see DESIGN.md "heap zone layout" -
// since nothing in this runtime keeps a parsed object alive *through* an
// edit; Parse always consumes the editor text and produces a fresh
// Temporaries object, so the two never need to share address space.

// SetEditor replaces the editor buffer's contents.
func (h *Heap) SetEditor(text string) {
	h.editor = append(h.editor[:0], text...)
}

// Editor returns the current editor buffer as a string.
func (h *Heap) Editor() string {
	return string(h.editor)
}

// ClearEditor empties the editor buffer.
func (h *Heap) ClearEditor() {
	h.editor = h.editor[:0]
}
