package render

import (
	"testing"

	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/reader"
	"rplcalc/internal/settings"
)

func renderSrc(t *testing.T, src string, set settings.Settings) string {
	t.Helper()
	h := heap.NewHeap(0)
	ref, consumed, err := reader.Parse(h, src, set)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if consumed != len(src) {
		t.Fatalf("Parse(%q) consumed %d bytes, want %d", src, consumed, len(src))
	}
	out, err := ToString(h, ref, set)
	if err != nil {
		t.Fatalf("ToString(%q): %v", src, err)
	}
	return out
}

func TestRenderRoundTripsLiterals(t *testing.T) {
	set := settings.Default()
	cases := []struct{ src, want string }{
		{"123", "123"},
		{"-42", "-42"},
		{"myvar", "myvar"},
		{`"hello"`, `"hello"`},
		{"« 1 2 + »", "« 1 2 + »"},
		{"{ 1 2 3 }", "{ 1 2 3 }"},
		{"[ 1 2 3 ]", "[ 1 2 3 ]"},
	}
	for _, c := range cases {
		if got := renderSrc(t, c.src, set); got != c.want {
			t.Errorf("render(%q) = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestRenderCommandSpellingRespectsCapitalization(t *testing.T) {
	h := heap.NewHeap(0)
	dupEntry, ok := object.ByName("Dup")
	if !ok {
		t.Fatalf("object.ByName(Dup) not found")
	}
	ref, err := h.AllocTemp(dupEntry.Tag, nil)
	if err != nil {
		t.Fatalf("AllocTemp: %v", err)
	}

	set := settings.Default()
	set.Capitalization = settings.CapUpper
	if got, err := ToString(h, ref, set); err != nil || got != "DUP" {
		t.Fatalf("upper = %q, %v, want DUP", got, err)
	}

	set.Capitalization = settings.CapLower
	if got, err := ToString(h, ref, set); err != nil || got != "dup" {
		t.Fatalf("lower = %q, %v, want dup", got, err)
	}
}

func TestStackListingNumbersLevelsTopFirst(t *testing.T) {
	h := heap.NewHeap(0)
	a, _ := h.AllocTemp(object.PosInt, []byte{1})
	b, _ := h.AllocTemp(object.PosInt, []byte{2})
	c, _ := h.AllocTemp(object.PosInt, []byte{3})

	lines, err := StackListing(h, []heap.Ref{a, b, c}, settings.Default())
	if err != nil {
		t.Fatalf("StackListing: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[2] != "1: 3" {
		t.Fatalf("top line = %q, want %q", lines[2], "1: 3")
	}
	if lines[0] != "3: 1" {
		t.Fatalf("bottom line = %q, want %q", lines[0], "3: 1")
	}
}

func TestStackListingOnEmptyStack(t *testing.T) {
	h := heap.NewHeap(0)
	lines, err := StackListing(h, nil, settings.Default())
	if err != nil {
		t.Fatalf("StackListing: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(lines))
	}
}

func TestRenderExpressionRoundTripsInfixNotation(t *testing.T) {
	got := renderSrc(t, "'1+2'", settings.Default())
	if got == "" {
		t.Fatalf("rendering an Expression produced empty text")
	}
}
