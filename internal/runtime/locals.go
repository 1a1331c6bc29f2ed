package runtime

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/rterr"
)

// LocalFrame is one activation record of named slots created when a
// program with a locals block is entered, deallocated on exit (spec.md
// §4.6 "Locals"). Grounded on the teacher's internal/vm.Frame.Locals -
// a plain []LocalSlot sized at frame-creation time - simplified here
// since the calculator's locals carry no static type or move/drop state,
// only a heap reference per slot.
type LocalFrame struct {
	slots []heap.Ref
	names []string // parallel to slots; empty when the frame was entered anonymously
}

// NewLocalFrame allocates a frame of n unbound, anonymous slots.
func NewLocalFrame(n int) *LocalFrame {
	return &LocalFrame{slots: make([]heap.Ref, n)}
}

// NewNamedLocalFrame allocates a frame with one named slot per entry in
// names, for ForNext/ForStep's loop variable (spec.md §4.7 "a named loop
// variable bound in a locals frame") and user-defined locals blocks that
// bind variables by name rather than by a pre-resolved (depth, slot) pair.
func NewNamedLocalFrame(names []string) *LocalFrame {
	return &LocalFrame{slots: make([]heap.Ref, len(names)), names: append([]string{}, names...)}
}

// Locals is the stack of active locals frames, innermost (most recently
// entered) last.
type Locals struct {
	frames []*LocalFrame
}

// Push enters a new frame of n slots, returning it so the caller can
// bind the loop variable (ForNext/ForStep) before evaluation continues.
func (l *Locals) Push(n int) *LocalFrame {
	f := NewLocalFrame(n)
	l.frames = append(l.frames, f)
	return f
}

// PushNamed enters a new frame whose slots are addressable by name.
func (l *Locals) PushNamed(names []string) *LocalFrame {
	f := NewNamedLocalFrame(names)
	l.frames = append(l.frames, f)
	return f
}

// ResolveName looks up name across the active locals frames, innermost
// first, for symbol references inside a ForNext/ForStep body (the reader
// has no compile pass that rewrites those symbols into (depth, slot)
// Local objects, so evaluation resolves them by name instead).
func (l *Locals) ResolveName(name string) (heap.Ref, bool) {
	for i := len(l.frames) - 1; i >= 0; i-- {
		f := l.frames[i]
		for j, n := range f.names {
			if n == name {
				return f.slots[j], true
			}
		}
	}
	return heap.Null, false
}

// BindName updates the slot named name in the innermost frame that has
// one, if any.
func (l *Locals) BindName(name string, ref heap.Ref) bool {
	for i := len(l.frames) - 1; i >= 0; i-- {
		f := l.frames[i]
		for j, n := range f.names {
			if n == name {
				f.slots[j] = ref
				return true
			}
		}
	}
	return false
}

// Pop deallocates the innermost frame on exit from its owning program.
func (l *Locals) Pop() {
	if len(l.frames) == 0 {
		return
	}
	l.frames = l.frames[:len(l.frames)-1]
}

// Depth reports how many locals frames are currently active.
func (l *Locals) Depth() int { return len(l.frames) }

// Resolve looks up a `local` object's (depth, slot) pair: depth counts
// frames inward from the innermost (0 = innermost active frame), matching
// spec.md §4.6 "resolution walks the active locals frames (innermost
// first)".
func (l *Locals) Resolve(depth, slot int) (heap.Ref, error) {
	idx := len(l.frames) - 1 - depth
	if idx < 0 || idx >= len(l.frames) {
		return heap.Null, rterr.New(rterr.InvalidLocal, "no such locals frame")
	}
	f := l.frames[idx]
	if slot < 0 || slot >= len(f.slots) {
		return heap.Null, rterr.New(rterr.InvalidLocal, "local slot index out of range")
	}
	return f.slots[slot], nil
}

// Bind stores ref into slot of the frame at depth (0 = innermost).
func (l *Locals) Bind(depth, slot int, ref heap.Ref) error {
	idx := len(l.frames) - 1 - depth
	if idx < 0 || idx >= len(l.frames) {
		return rterr.New(rterr.InvalidLocal, "no such locals frame")
	}
	f := l.frames[idx]
	if slot < 0 || slot >= len(f.slots) {
		return rterr.New(rterr.InvalidLocal, "local slot index out of range")
	}
	f.slots[slot] = ref
	return nil
}

// Set assigns one slot of the frame, ignoring an out-of-range index - used
// by ForNext/ForStep to bind the loop variable into slot 0 of the frame
// they just pushed.
func (f *LocalFrame) Set(slot int, ref heap.Ref) {
	if slot >= 0 && slot < len(f.slots) {
		f.slots[slot] = ref
	}
}
