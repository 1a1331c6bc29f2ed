package reader

// cursor is a byte-offset scanner over the source text being parsed,
// grounded on the teacher's internal/lexer/cursor.go Peek/Bump/Mark/Reset
// idiom - adapted to scan a plain []byte instead of a source.File, since
// parse() here takes raw UTF-8 text directly rather than a compiler source
// file with its own FileSet (spec.md §4.3 "parse(source_utf8, length)").
type cursor struct {
	src []byte
	off int
}

func newCursor(src []byte) *cursor { return &cursor{src: src} }

func (c *cursor) eof() bool { return c.off >= len(c.src) }

func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.src[c.off]
}

func (c *cursor) peekAt(n int) byte {
	if c.off+n >= len(c.src) {
		return 0
	}
	return c.src[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

type mark int

func (c *cursor) mark() mark { return mark(c.off) }

func (c *cursor) reset(m mark) { c.off = int(m) }

func (c *cursor) sliceFrom(m mark) []byte { return c.src[int(m):c.off] }

func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

func (c *cursor) skipSpace() {
	for !c.eof() {
		switch c.src[c.off] {
		case ' ', '\t', '\r', '\n':
			c.off++
		default:
			return
		}
	}
}

func isNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_':
		return true
	case b >= 0x80:
		// non-ASCII continuation byte of a multi-byte rune (π, ×, ÷, …):
		// treated as name-valid so Unicode command spellings and symbol
		// names scan as one run (spec.md §6 "Text surface").
		return true
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
