package reader

import (
	"testing"

	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/settings"
)

func parseOne(t *testing.T, src string) (object.Tag, []byte, *heap.Heap) {
	h := heap.NewHeap(0)
	ref, consumed, err := Parse(h, src, settings.Default())
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if consumed != len(src) {
		t.Fatalf("Parse(%q) consumed %d bytes, want %d", src, consumed, len(src))
	}
	tag, payload, gerr := h.Get(ref)
	if gerr != nil {
		t.Fatalf("Get: %v", gerr)
	}
	return tag, payload, h
}

func TestParsePositiveInteger(t *testing.T) {
	tag, payload, _ := parseOne(t, "123")
	i, err := object.DecodeInt(tag, payload)
	if err != nil {
		t.Fatalf("DecodeInt: %v", err)
	}
	if i.Cmp(bignum.IntFromInt64(123)) != 0 {
		t.Fatalf("got %s, want 123", bignum.FormatInt(i))
	}
}

func TestParseNegativeInteger(t *testing.T) {
	tag, payload, _ := parseOne(t, "-42")
	i, err := object.DecodeInt(tag, payload)
	if err != nil {
		t.Fatalf("DecodeInt: %v", err)
	}
	if i.Cmp(bignum.IntFromInt64(-42)) != 0 {
		t.Fatalf("got %s, want -42", bignum.FormatInt(i))
	}
}

func TestParseFraction(t *testing.T) {
	tag, payload, _ := parseOne(t, "3/4")
	f, err := object.DecodeFraction(tag, payload)
	if err != nil {
		t.Fatalf("DecodeFraction: %v", err)
	}
	if bignum.FormatInt(f.Num) != "3" {
		t.Fatalf("numerator = %s, want 3", bignum.FormatInt(f.Num))
	}
}

func TestParseBasedNumberSeedTest6(t *testing.T) {
	// spec.md §8 seed test 6 wants "#FF #F0 and" -> #F0 under wordsize=16;
	// this only exercises the parse half (the `and` evaluation belongs to
	// internal/eval).
	set := settings.Default()
	set.WordSize = 16
	set.Base = 16 // #FF with no suffix parses in the active base
	h := heap.NewHeap(0)
	ref, consumed, err := Parse(h, "#FF", set)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if consumed != 3 {
		t.Fatalf("consumed = %d, want 3", consumed)
	}
	tag, payload, gerr := h.Get(ref)
	if gerr != nil {
		t.Fatalf("Get: %v", gerr)
	}
	b, derr := object.DecodeBased(payload)
	if derr != nil {
		t.Fatalf("DecodeBased: %v", derr)
	}
	if !tag.IsInteger() {
		t.Fatalf("based number should be an integer kind")
	}
	v, _ := b.Mag.Uint64()
	if v != 0xFF {
		t.Fatalf("magnitude = %d, want 255", v)
	}
}

func TestParseStopsAtUnterminatedProgram(t *testing.T) {
	h := heap.NewHeap(0)
	_, _, err := Parse(h, "« 1 2 +", settings.Default())
	if err == nil || err.(*Error).Kind != ErrUnterminated {
		t.Fatalf("Parse unterminated program = %v, want ErrUnterminated", err)
	}
}

func TestParseProgramOfThreeChildren(t *testing.T) {
	tag, payload, _ := parseOne(t, "« 1 2 + »")
	if tag != object.Program {
		t.Fatalf("tag = %v, want Program", tag)
	}
	kids, err := heap.Children(payload)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 3 {
		t.Fatalf("got %d children, want 3", len(kids))
	}
}

func TestParseSymbolNotACommand(t *testing.T) {
	tag, payload, _ := parseOne(t, "myvar")
	if tag != object.Symbol || string(payload) != "myvar" {
		t.Fatalf("tag=%v payload=%q", tag, payload)
	}
}

func TestParseCommandSpellingCaseInsensitive(t *testing.T) {
	tag, _, _ := parseOne(t, "DUP")
	e, _ := object.ByName("Dup")
	if tag != e.Tag {
		t.Fatalf("DUP resolved to tag %v, want Dup's tag %v", tag, e.Tag)
	}
}

func TestParseExpressionProducesPostfixChildren(t *testing.T) {
	// '1 + 2' -> postfix: 1 2 Add
	tag, payload, _ := parseOne(t, "'1+2'")
	if tag != object.Expression {
		t.Fatalf("tag = %v, want Expression", tag)
	}
	kids, err := heap.Children(payload)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 3 {
		t.Fatalf("got %d postfix children, want 3 (1, 2, Add)", len(kids))
	}
	addEntry, _ := object.ByName("Add")
	if kids[2].Tag != addEntry.Tag {
		t.Fatalf("last postfix child = %v, want Add", kids[2].Tag)
	}
}

func TestParseExpressionRespectsPowerRightAssociativity(t *testing.T) {
	// '2^3^2' should be 2^(3^2) = 2^9, i.e. postfix "2 3 2 Pow Pow".
	tag, payload, _ := parseOne(t, "'2^3^2'")
	if tag != object.Expression {
		t.Fatalf("tag = %v", tag)
	}
	kids, err := heap.Children(payload)
	if err != nil {
		t.Fatalf("Children: %v", err)
	}
	if len(kids) != 5 {
		t.Fatalf("got %d children, want 5", len(kids))
	}
	powEntry, _ := object.ByName("Pow")
	if kids[3].Tag != powEntry.Tag || kids[4].Tag != powEntry.Tag {
		t.Fatalf("expected two trailing Pow ops, got %+v", kids[3:])
	}
}

func TestParseTextLiteral(t *testing.T) {
	tag, payload, _ := parseOne(t, `"hello"`)
	if tag != object.Text || string(payload) != "hello" {
		t.Fatalf("tag=%v payload=%q", tag, payload)
	}
}
