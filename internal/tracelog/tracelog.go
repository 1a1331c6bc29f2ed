// Package tracelog implements the evaluator's optional step trace: one
// NDJSON line per object evaluated, for cmd/rpl's --trace flag and for
// debugging recursive program evaluation.
//
// Grounded on the teacher's internal/vm/logfmt.go/trace.go: a typed
// LogValue wrapper around encoding/json plus a Tracer that is a no-op
// when its writer is nil, rather than pulling in a third-party structured
// logging library the teacher itself never reaches for (see SPEC_FULL.md's
// AMBIENT STACK "Structured logging" entry and DESIGN.md).
package tracelog

import (
	"encoding/json"
	"fmt"
	"io"
)

// Tracer writes one NDJSON object per evaluator step. A nil *Tracer, or
// one built with a nil writer, is always a silent no-op - every call site
// in internal/eval calls through it unconditionally rather than guarding
// with "if tracing enabled" at each call site.
type Tracer struct {
	w     io.Writer
	depth int
}

// New builds a Tracer writing NDJSON lines to w. Passing a nil w yields a
// Tracer whose methods are no-ops, the same shape as the teacher's own
// *Tracer with w == nil.
func New(w io.Writer) *Tracer {
	return &Tracer{w: w}
}

type stepLine struct {
	Kind    string `json:"kind"`
	Depth   int    `json:"depth"`
	Command string `json:"command,omitempty"`
	Tag     string `json:"tag,omitempty"`
	Depth2  int    `json:"stack_depth"`
	Err     string `json:"err,omitempty"`
}

// Enter records descending into one Eval call (spec.md §4.7's evaluator
// recursion), depth being the evaluator's post-increment call depth.
func (t *Tracer) Enter(depth int, tagName string, stackDepth int) {
	if t == nil || t.w == nil {
		return
	}
	t.writeLine(stepLine{Kind: "enter", Depth: depth, Tag: tagName, Depth2: stackDepth})
}

// Command records one dispatched command, after it ran (Err set on
// failure), for a trace that reads top-to-bottom as a command log rather
// than a nested call tree.
func (t *Tracer) Command(depth int, name string, stackDepth int, err error) {
	if t == nil || t.w == nil {
		return
	}
	line := stepLine{Kind: "command", Depth: depth, Command: name, Depth2: stackDepth}
	if err != nil {
		line.Err = err.Error()
	}
	t.writeLine(line)
}

func (t *Tracer) writeLine(v stepLine) {
	b, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(t.w, `{"kind":"trace_error","err":%q}`+"\n", err.Error())
		return
	}
	t.w.Write(b)
	t.w.Write([]byte("\n"))
}
