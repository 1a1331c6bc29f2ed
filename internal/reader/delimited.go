package reader

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
)

// tryProgram attempts «...» (spec.md §4.3 "Delimited kinds").
func (p *Reader) tryProgram() (heap.Object, bool, *Error) {
	return p.tryDelimitedRun("«", "»", object.Program, ErrUnterminated)
}

// tryList attempts {...}.
func (p *Reader) tryList() (heap.Object, bool, *Error) {
	return p.tryDelimitedRun("{", "}", object.List, ErrUnterminated)
}

// tryArray attempts [...].
func (p *Reader) tryArray() (heap.Object, bool, *Error) {
	return p.tryDelimitedRun("[", "]", object.Array, ErrUnterminated)
}

// tryDelimitedRun handles the three kinds whose body is a run of ordinary
// objects separated by whitespace: program, list, array.
func (p *Reader) tryDelimitedRun(open, close string, tag object.Tag, unterminated ErrorKind) (heap.Object, bool, *Error) {
	m := p.c.mark()
	if !p.c.eatString(open) {
		return heap.Object{}, false, nil
	}
	var children []heap.Object
	for {
		p.c.skipSpace()
		if p.c.eatString(close) {
			if tag == object.Program {
				folded, ferr := foldControlStructures(children)
				if ferr != nil {
					return heap.Object{}, true, ferr
				}
				children = folded
			}
			return heap.Object{Tag: tag, Payload: heap.EncodeChildren(children...)}, true, nil
		}
		if p.c.eof() {
			return heap.Object{}, true, newError(unterminated, int(m), "missing closing "+close)
		}
		obj, err := p.parseOne()
		if err != nil {
			return heap.Object{}, true, err
		}
		children = append(children, obj)
	}
}

// tryText attempts "...".
func (p *Reader) tryText() (heap.Object, bool, *Error) {
	m := p.c.mark()
	if !p.c.eat('"') {
		return heap.Object{}, false, nil
	}
	start := p.c.mark()
	for {
		if p.c.eof() {
			return heap.Object{}, true, newError(ErrUnterminated, int(m), "missing closing \"")
		}
		if p.c.peek() == '"' {
			text := p.c.sliceFrom(start)
			p.c.bump()
			return heap.Object{Tag: object.Text, Payload: append([]byte{}, text...)}, true, nil
		}
		p.c.bump()
	}
}

// tryComment attempts "@ ... newline".
func (p *Reader) tryComment() (heap.Object, bool, *Error) {
	if !p.c.eat('@') {
		return heap.Object{}, false, nil
	}
	start := p.c.mark()
	for !p.c.eof() && p.c.peek() != '\n' {
		p.c.bump()
	}
	return heap.Object{Tag: object.Comment, Payload: append([]byte{}, p.c.sliceFrom(start)...)}, true, nil
}

func (c *cursor) eatString(s string) bool {
	m := c.mark()
	for i := 0; i < len(s); i++ {
		if !c.eat(s[i]) {
			c.reset(m)
			return false
		}
	}
	return true
}
