package replhist

import "testing"

func TestAddThenPrevRecallsNewestFirst(t *testing.T) {
	h := New(0)
	h.Add("1 2 +")
	h.Add("3 dup *")

	got, ok := h.Prev("")
	if !ok || got != "3 dup *" {
		t.Fatalf("Prev() = %q, %v, want %q, true", got, ok, "3 dup *")
	}
	got, ok = h.Prev("")
	if !ok || got != "1 2 +" {
		t.Fatalf("second Prev() = %q, %v, want %q, true", got, ok, "1 2 +")
	}
	if _, ok := h.Prev(""); ok {
		t.Fatalf("Prev() past the oldest entry should report false")
	}
}

func TestNextReturnsToDraft(t *testing.T) {
	h := New(0)
	h.Add("1 2 +")

	if _, ok := h.Prev("3 dup"); !ok {
		t.Fatalf("Prev() should recall the only entry")
	}
	got, ok := h.Next()
	if !ok || got != "3 dup" {
		t.Fatalf("Next() = %q, %v, want draft %q, true", got, ok, "3 dup")
	}
	if _, ok := h.Next(); ok {
		t.Fatalf("Next() past the draft should report false")
	}
}

func TestAddEvictsOldestPastCap(t *testing.T) {
	h := New(2)
	h.Add("a")
	h.Add("b")
	h.Add("c")

	if got := h.Lines(); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("Lines() = %v, want [b c]", got)
	}
}

func TestAddIgnoresBlankAndConsecutiveDuplicate(t *testing.T) {
	h := New(0)
	h.Add("x")
	h.Add("")
	h.Add("x")

	if h.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", h.Len())
	}
}

func TestAddResetsCursorToNewest(t *testing.T) {
	h := New(0)
	h.Add("a")
	h.Prev("")
	h.Add("b")

	if _, ok := h.Next(); ok {
		t.Fatalf("Next() right after Add should report false, cursor should sit past the newest entry")
	}
}
