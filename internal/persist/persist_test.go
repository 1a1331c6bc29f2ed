package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
)

func buildLiveState(t *testing.T) (*heap.Heap, *runtime.Context, settings.Settings) {
	h := heap.NewHeap(0)
	ctx := runtime.NewContext()
	set := settings.Default()
	set.Base = 16

	a, err := h.AllocTemp(object.PosInt, []byte{7})
	if err != nil {
		t.Fatalf("AllocTemp: %v", err)
	}
	b, err := h.AllocTemp(object.PosInt, []byte{9})
	if err != nil {
		t.Fatalf("AllocTemp: %v", err)
	}
	ctx.Stack.Restore([]heap.Ref{a, b})

	if err := ctx.Root.Sto("x", a); err != nil {
		t.Fatalf("Sto: %v", err)
	}
	sub, err := ctx.Root.Crdir("scratch")
	if err != nil {
		t.Fatalf("Crdir: %v", err)
	}
	if err := sub.Sto("y", b); err != nil {
		t.Fatalf("Sto in subdirectory: %v", err)
	}

	return h, ctx, set
}

func TestBuildRestoreRoundTrip(t *testing.T) {
	h, ctx, set := buildLiveState(t)
	p := Build(h, ctx, set)

	h2, ctx2, set2, err := Restore(p, 1<<20)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if set2 != set {
		t.Fatalf("settings mismatch: got %+v want %+v", set2, set)
	}

	stack := ctx2.Stack.All()
	if len(stack) != 2 {
		t.Fatalf("stack len = %d, want 2", len(stack))
	}
	tag, payload, err := h2.Get(stack[0])
	if err != nil || tag != object.PosInt || payload[0] != 7 {
		t.Fatalf("stack[0] = tag=%v payload=%v err=%v", tag, payload, err)
	}

	xRef, err := ctx2.Root.Rcl("x")
	if err != nil {
		t.Fatalf("Rcl(x): %v", err)
	}
	if _, payload, err := h2.Get(xRef); err != nil || payload[0] != 7 {
		t.Fatalf("x = %v, %v", payload, err)
	}

	subDir, err := ctx2.Root.Chdir("scratch")
	if err != nil {
		t.Fatalf("Chdir(scratch): %v", err)
	}
	yRef, err := subDir.Rcl("y")
	if err != nil {
		t.Fatalf("Rcl(y): %v", err)
	}
	if _, payload, err := h2.Get(yRef); err != nil || payload[0] != 9 {
		t.Fatalf("y = %v, %v", payload, err)
	}
}

func TestRestoreRejectsUnknownSchema(t *testing.T) {
	p := Payload{Schema: schemaVersion + 1}
	if _, _, _, err := Restore(p, 1<<20); err == nil {
		t.Fatalf("Restore with mismatched schema should fail")
	}
}

func TestSaveLoadRoundTripsThroughDisk(t *testing.T) {
	h, ctx, set := buildLiveState(t)
	p := Build(h, ctx, set)

	path := filepath.Join(t.TempDir(), "nested", "session.rplstate")
	if err := Save(path, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Schema != p.Schema || got.Settings != p.Settings || len(got.Stack) != len(p.Stack) {
		t.Fatalf("got %+v, want %+v", got, p)
	}
}

func TestLoadMissingFileReturnsNotExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.rplstate"))
	if err == nil {
		t.Fatalf("Load of a missing file should fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load of a missing file = %v, want os.ErrNotExist", err)
	}
}
