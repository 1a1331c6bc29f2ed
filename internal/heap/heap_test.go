package heap

import (
	"testing"

	"rplcalc/internal/object"
)

func mustAlloc(t *testing.T, h *Heap, tag object.Tag, payload []byte) Ref {
	r, err := h.AllocTemp(tag, payload)
	if err != nil {
		t.Fatalf("AllocTemp: %v", err)
	}
	return r
}

func TestAllocAndGetRoundTrip(t *testing.T) {
	h := NewHeap(0)
	r := mustAlloc(t, h, object.PosInt, []byte{42})
	tag, payload, err := h.Get(r)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tag != object.PosInt || len(payload) != 1 || payload[0] != 42 {
		t.Fatalf("got tag=%v payload=%v", tag, payload)
	}
}

func TestNullRefIsInvalid(t *testing.T) {
	h := NewHeap(0)
	if !Null.IsNull() {
		t.Fatalf("Null.IsNull() should be true")
	}
	if _, _, err := h.Get(Null); err != ErrInvalidRef {
		t.Fatalf("Get(Null) err = %v, want ErrInvalidRef", err)
	}
}

func TestCollectReclaimsUnreachableObjects(t *testing.T) {
	h := NewHeap(0)
	garbage := mustAlloc(t, h, object.PosInt, []byte{1})
	live := mustAlloc(t, h, object.PosInt, []byte{2})
	_ = garbage

	usedBefore, _ := h.Stats()

	newRoots, err := h.Collect([]Ref{live})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	usedAfter, _ := h.Stats()
	if usedAfter >= usedBefore {
		t.Fatalf("expected Collect to shrink usage: before=%d after=%d", usedBefore, usedAfter)
	}

	tag, payload, err := h.Get(newRoots[0])
	if err != nil {
		t.Fatalf("Get after Collect: %v", err)
	}
	if tag != object.PosInt || payload[0] != 2 {
		t.Fatalf("live object corrupted by Collect: tag=%v payload=%v", tag, payload)
	}
}

func TestCollectPreservesAliasedRoots(t *testing.T) {
	h := NewHeap(0)
	r := mustAlloc(t, h, object.PosInt, []byte{9})
	newRoots, err := h.Collect([]Ref{r, r})
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if newRoots[0] != newRoots[1] {
		t.Fatalf("aliased roots diverged: %v vs %v", newRoots[0], newRoots[1])
	}
}

func TestCollectRefusesWhilePinned(t *testing.T) {
	h := NewHeap(0)
	r := mustAlloc(t, h, object.PosInt, []byte{1})
	pin, err := h.Pin(r)
	if err != nil {
		t.Fatalf("Pin: %v", err)
	}
	if _, err := h.Collect([]Ref{r}); err != ErrPinned {
		t.Fatalf("Collect while pinned = %v, want ErrPinned", err)
	}
	pin.Release()
	if _, err := h.Collect([]Ref{r}); err != nil {
		t.Fatalf("Collect after release: %v", err)
	}
}

func TestAllocGlobalSurvivesCollectAndKeepsTemporariesAfterIt(t *testing.T) {
	h := NewHeap(0)
	g, err := h.AllocGlobal(object.Symbol, []byte("x"))
	if err != nil {
		t.Fatalf("AllocGlobal: %v", err)
	}
	temp := mustAlloc(t, h, object.PosInt, []byte{7})

	if _, err := h.Collect([]Ref{temp}); err != nil {
		t.Fatalf("Collect: %v", err)
	}

	tag, payload, err := h.Get(g)
	if err != nil || tag != object.Symbol || string(payload) != "x" {
		t.Fatalf("global corrupted by Collect: tag=%v payload=%q err=%v", tag, payload, err)
	}
}

func TestOutOfMemoryWhenOverCeiling(t *testing.T) {
	h := NewHeap(8)
	if _, err := h.AllocTemp(object.Text, make([]byte, 64)); err != ErrOutOfMemory {
		t.Fatalf("AllocTemp over ceiling = %v, want ErrOutOfMemory", err)
	}
}

func TestScratchpadIsLIFO(t *testing.T) {
	h := NewHeap(0)
	m1, buf1 := h.ScratchAlloc(4)
	copy(buf1, []byte("abcd"))
	m2, buf2 := h.ScratchAlloc(2)
	copy(buf2, []byte("xy"))

	if err := h.ScratchFree(m1); err == nil {
		t.Fatalf("expected out-of-order free to fail")
	}
	if err := h.ScratchFree(m2); err != nil {
		t.Fatalf("ScratchFree(m2): %v", err)
	}
	if err := h.ScratchFree(m1); err != nil {
		t.Fatalf("ScratchFree(m1): %v", err)
	}
}

func TestEditorRoundTrip(t *testing.T) {
	h := NewHeap(0)
	h.SetEditor("1 2 +")
	if got := h.Editor(); got != "1 2 +" {
		t.Fatalf("Editor() = %q", got)
	}
	h.ClearEditor()
	if got := h.Editor(); got != "" {
		t.Fatalf("Editor() after clear = %q", got)
	}
}

func TestEncodeAndWalkChildren(t *testing.T) {
	kids := EncodeChildren(
		Object{Tag: object.PosInt, Payload: []byte{1}},
		Object{Tag: object.Symbol, Payload: []byte("y")},
	)
	got, err := Children(kids)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(got) != 2 || got[0].Tag != object.PosInt || got[1].Tag != object.Symbol {
		t.Fatalf("got %+v", got)
	}
	if string(got[1].Payload) != "y" {
		t.Fatalf("payload = %q", got[1].Payload)
	}
}
