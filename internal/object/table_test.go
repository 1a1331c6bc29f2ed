package object

import "testing"

func TestLookupCaseFoldsButPreservesCanonicalSpelling(t *testing.T) {
	e, ok := Lookup("DUP")
	if !ok {
		t.Fatalf("expected DUP to resolve to Dup command")
	}
	if e.Name != "Dup" {
		t.Errorf("Name = %s, want Dup", e.Name)
	}
	if e.Short != "dup" || e.Long != "Duplicate" {
		t.Errorf("canonical spellings not preserved: %+v", e)
	}
}

func TestLookupResolvesAsciiAliasToCanonicalUnicodeSpelling(t *testing.T) {
	e, ok := Lookup("*")
	if !ok {
		t.Fatalf("expected * alias to resolve")
	}
	if e.Name != "Mul" || e.Short != "×" {
		t.Errorf("alias resolved to wrong entry: %+v", e)
	}
}

func TestLookupUnknownSpellingIsNotACommand(t *testing.T) {
	if _, ok := Lookup("banana"); ok {
		t.Fatalf("banana should not resolve to a command")
	}
}

func TestEveryEntryHasAUniqueTag(t *testing.T) {
	seen := make(map[Tag]bool)
	for _, e := range Table {
		if seen[e.Tag] {
			t.Fatalf("duplicate tag %d for %s", e.Tag, e.Name)
		}
		seen[e.Tag] = true
	}
}

func TestByNameAndEntryForAgree(t *testing.T) {
	e, ok := ByName("Sto")
	if !ok {
		t.Fatalf("Sto missing")
	}
	e2, ok := EntryFor(e.Tag)
	if !ok || e2.Name != "Sto" {
		t.Fatalf("EntryFor(Sto.Tag) = %+v, ok=%v", e2, ok)
	}
}
