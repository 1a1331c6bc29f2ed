// Package reader implements the recursive-descent reader that turns UTF-8
// source text directly into heap objects (spec.md §4.3). It is named
// "reader" rather than "parser" to avoid colliding with the teacher's own
// internal/parser package (a large surge-language statement/expression/
// generics parser with no domain overlap here, see DESIGN.md); it is
// otherwise grounded on that package's trial-based recursive-descent style
// and on internal/lexer's byte-cursor idiom (cursor.go), adapted to report
// positions as plain byte offsets into the parsed string rather than
// through a compiler FileSet, since this runtime parses one line/program
// at a time with no multi-file build graph.
package reader

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/settings"
)

// Reader holds the mutable state of one parse() call.
type Reader struct {
	c   *cursor
	h   *heap.Heap
	set settings.Settings
}

// Parse implements spec.md §4.3's parse(source_utf8, length) interface: it
// reads exactly one top-level object starting at the first non-whitespace
// byte, allocates it into h's Temporaries zone, and reports how many bytes
// of src were consumed.
func Parse(h *heap.Heap, src string, set settings.Settings) (heap.Ref, int, error) {
	p := &Reader{c: newCursor([]byte(src)), h: h, set: set}
	p.c.skipSpace()
	obj, err := p.parseOne()
	if err != nil {
		return heap.Null, 0, err
	}
	ref, allocErr := h.AllocTemp(obj.Tag, obj.Payload)
	if allocErr != nil {
		return heap.Null, 0, allocErr
	}
	return ref, p.c.off, nil
}

// parseOne tries each object kind in the fixed order spec.md §4.3
// requires: based numbers before general numbers (both share the digit
// prefix space with symbols, which come last), delimited kinds before the
// symbol/command fallback that would otherwise swallow their opening
// delimiter as a name character.
func (p *Reader) parseOne() (heap.Object, *Error) {
	if p.c.eof() {
		return heap.Object{}, newError(ErrSyntax, p.c.off, "empty input")
	}

	type trial func() (heap.Object, bool, *Error)
	trials := []trial{
		p.tryBased,
		p.tryNumber,
		p.tryProgram,
		p.tryList,
		p.tryArray,
		p.tryText,
		p.tryComment,
		p.tryExpression,
		p.trySymbolOrCommand,
	}
	for _, t := range trials {
		obj, handled, err := t()
		if !handled {
			continue
		}
		return obj, err
	}
	return heap.Object{}, newError(ErrSyntax, p.c.off, "unexpected character")
}

// ParseAll reads every top-level object in src in sequence (spec.md §4.6
// "a program is a sequence of objects"), used to parse a whole line of
// REPL input at once. A bare top-level
// line of If/Then/.../End keywords, typed without enclosing «», is folded
// into the same control-structure composite a «...»-wrapped program would
// produce, since the REPL treats one input line as an implicit program body.
func ParseAll(h *heap.Heap, src string, set settings.Settings) ([]heap.Object, *Error) {
	p := &Reader{c: newCursor([]byte(src)), h: h, set: set}
	var out []heap.Object
	for {
		p.c.skipSpace()
		if p.c.eof() {
			return foldControlStructures(out)
		}
		obj, err := p.parseOne()
		if err != nil {
			return out, err
		}
		out = append(out, obj)
	}
}
