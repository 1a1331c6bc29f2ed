package runtime

import (
	"testing"

	"rplcalc/internal/heap"
	"rplcalc/internal/rterr"
)

// testHeap backs every ref() call in a single test with one growing
// arena, so successive allocations land at distinct offsets and compare
// unequal - a fresh heap per call would hand back the same offset every
// time since each starts empty.
var testHeap = heap.NewHeap(0)

func ref(n uint32) heap.Ref {
	obj, err := testHeap.AllocTemp(0, make([]byte, n+1))
	if err != nil {
		panic(err)
	}
	return obj
}

func TestStackPushPop(t *testing.T) {
	var s Stack
	a, b := ref(1), ref(2)
	s.Push(a)
	s.Push(b)
	if s.Depth() != 2 {
		t.Fatalf("depth = %d, want 2", s.Depth())
	}
	got, err := s.Pop()
	if err != nil || got != b {
		t.Fatalf("Pop = %v, %v; want %v, nil", got, err, b)
	}
	got, err = s.Pop()
	if err != nil || got != a {
		t.Fatalf("Pop = %v, %v; want %v, nil", got, err, a)
	}
	if _, err := s.Pop(); err == nil {
		t.Fatalf("Pop on empty stack should error")
	}
}

func TestStackPopNOrderAndArity(t *testing.T) {
	var s Stack
	a, b, c := ref(1), ref(2), ref(3)
	s.Push(a)
	s.Push(b)
	s.Push(c)
	got, err := s.PopN(2)
	if err != nil {
		t.Fatalf("PopN: %v", err)
	}
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Fatalf("PopN = %v, want [b c]", got)
	}
	if _, err := s.PopN(5); err == nil {
		t.Fatalf("PopN(5) on a 1-deep stack should error")
	}
}

func TestStackSnapshotRestore(t *testing.T) {
	var s Stack
	s.Push(ref(1))
	s.Push(ref(2))
	snap := s.Snapshot()
	s.Push(ref(3))
	s.Restore(snap)
	if s.Depth() != 2 {
		t.Fatalf("depth after restore = %d, want 2", s.Depth())
	}
}

func TestDirectoryStoRclWalksParents(t *testing.T) {
	root := NewRoot()
	sub, err := root.Crdir("SUB")
	if err != nil {
		t.Fatalf("Crdir: %v", err)
	}
	r := ref(7)
	if err := root.Sto("x", r); err != nil {
		t.Fatalf("Sto: %v", err)
	}
	got, err := sub.Rcl("x")
	if err != nil || got != r {
		t.Fatalf("Rcl from child = %v, %v; want %v, nil", got, err, r)
	}
}

func TestDirectoryWriteDoesNotWalkParents(t *testing.T) {
	root := NewRoot()
	sub, _ := root.Crdir("SUB")
	if err := sub.Purge("x"); err == nil {
		t.Fatalf("Purge of a name only defined in the parent should fail")
	}
}

func TestDirectoryNameExistsOnCollidingCrdir(t *testing.T) {
	root := NewRoot()
	root.Sto("x", ref(1))
	if _, err := root.Crdir("x"); err == nil {
		t.Fatalf("Crdir colliding with a variable name should fail")
	}
}

func TestDirectoryUpDirAtRootFails(t *testing.T) {
	root := NewRoot()
	if _, err := root.UpDir(); err == nil {
		t.Fatalf("UpDir at root should fail with no_directory")
	}
}

func TestDirectoryPurgeThenRclFails(t *testing.T) {
	root := NewRoot()
	root.Sto("x", ref(1))
	if err := root.Purge("x"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, err := root.Rcl("x"); err == nil {
		t.Fatalf("Rcl after Purge should fail")
	}
}

func TestLocalsInnermostFirstResolution(t *testing.T) {
	var l Locals
	outer := l.Push(1)
	outer.Set(0, ref(1))
	inner := l.Push(1)
	inner.Set(0, ref(2))

	got, err := l.Resolve(0, 0)
	if err != nil || got != inner.slots[0] {
		t.Fatalf("Resolve(0,0) = %v, %v; want innermost slot", got, err)
	}
	got, err = l.Resolve(1, 0)
	if err != nil || got != outer.slots[0] {
		t.Fatalf("Resolve(1,0) = %v, %v; want outer slot", got, err)
	}

	l.Pop()
	if _, err := l.Resolve(1, 0); err == nil {
		t.Fatalf("Resolve past the remaining frame depth should fail")
	}
}

func TestLocalsInvalidSlotIndex(t *testing.T) {
	var l Locals
	l.Push(2)
	if _, err := l.Resolve(0, 5); err == nil {
		t.Fatalf("out-of-range slot should fail with invalid_local")
	} else if e, ok := err.(*rterr.Error); !ok || e.Code != rterr.InvalidLocal {
		t.Fatalf("err = %v, want invalid_local", err)
	}
}
