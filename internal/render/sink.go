// Package render implements spec.md §4.4's renderer: turning a heap object
// into its canonical text form, the inverse of internal/reader's parse.
//
// Grounded on the teacher's internal/ui rendering helpers (progress.go,
// table.go) for the sink abstraction and digit/column width handling, with
// the three concrete sink kinds spec.md §4.4 calls out as the renderer's
// only output surfaces.
package render

import (
	"bytes"
	"io"
	"os"

	"rplcalc/internal/heap"
)

// Sink is anything text can be rendered into (spec.md §4.4 "renders into
// one of three sink kinds"). It is deliberately narrower than io.Writer.
type Sink interface {
	WriteString(s string) error
}

// BufferSink renders into a fixed, growable in-memory buffer - the sink
// used for Eval/Type's stack-string conversions and for building up render
// output before it is pushed back onto the heap as a Text object.
type BufferSink struct {
	buf bytes.Buffer
}

func NewBufferSink() *BufferSink { return &BufferSink{} }

func (s *BufferSink) WriteString(str string) error {
	_, err := s.buf.WriteString(str)
	return err
}

func (s *BufferSink) String() string { return s.buf.String() }
func (s *BufferSink) Bytes() []byte  { return s.buf.Bytes() }

// ScratchSink (spec.md §4.4's second sink kind) accumulates rendered text
// in a Go-side buffer; Finish hands the bytes to the given allocation
// callback to become a heap Text object. It does not write into the heap's
// scratch zone, takes no pin, and has no Close.
type ScratchSink struct {
	h   *heap.Heap
	buf bytes.Buffer
}

// NewScratchSink begins an empty buffer for h. The caller finishes with
// Finish, which allocates the accumulated bytes as a Text object.
func NewScratchSink(h *heap.Heap) *ScratchSink {
	return &ScratchSink{h: h}
}

func (s *ScratchSink) WriteString(str string) error {
	_, err := s.buf.WriteString(str)
	return err
}

// Finish allocates the accumulated text as a heap Text object.
func (s *ScratchSink) Finish(tag func([]byte) (heap.Ref, error)) (heap.Ref, error) {
	return tag(s.buf.Bytes())
}

// FileSink renders straight to an io.Writer (a terminal, a log file, a
// pipe to the embedder) - spec.md §4.4's third sink kind, grounded on the
// teacher's own wrapping of *os.File/io.Writer throughout cmd/surge for
// diagnostic output.
type FileSink struct {
	w io.Writer
}

func NewFileSink(w io.Writer) *FileSink { return &FileSink{w: w} }

// NewStdoutSink is the common case: render straight to the terminal.
func NewStdoutSink() *FileSink { return &FileSink{w: os.Stdout} }

func (s *FileSink) WriteString(str string) error {
	_, err := io.WriteString(s.w, str)
	return err
}
