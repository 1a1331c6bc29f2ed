package reader

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
)

// tryExpression attempts '...' (spec.md §4.3 "algebraic expressions...
// (or parenthesized within an expression)"). The body is infix notation;
// it is parsed here by precedence climbing and stored as a postfix
// (RPN) run of child objects (spec.md §4.8 "In memory it is postfix").
func (p *Reader) tryExpression() (heap.Object, bool, *Error) {
	m := p.c.mark()
	if !p.c.eat('\'') {
		return heap.Object{}, false, nil
	}
	var out []heap.Object
	if err := p.parseExprSum(&out); err != nil {
		return heap.Object{}, true, err
	}
	p.c.skipSpace()
	if !p.c.eat('\'') {
		return heap.Object{}, true, newError(ErrUnterminated, int(m), "missing closing '")
	}
	return heap.Object{Tag: object.Expression, Payload: heap.EncodeChildren(out...)}, true, nil
}

func commandObj(name string) heap.Object {
	e, ok := object.ByName(name)
	if !ok {
		panic("reader: unknown builtin operator " + name)
	}
	return heap.Object{Tag: e.Tag}
}

// parseExprSum handles + and - (lowest precedence, left-associative).
func (p *Reader) parseExprSum(out *[]heap.Object) *Error {
	if err := p.parseExprProduct(out); err != nil {
		return err
	}
	for {
		p.c.skipSpace()
		switch p.c.peek() {
		case '+':
			p.c.bump()
			if err := p.parseExprProduct(out); err != nil {
				return err
			}
			*out = append(*out, commandObj("Add"))
		case '-':
			if p.c.peekAt(1) == '>' {
				return nil // don't swallow a `->` token meant for something else
			}
			p.c.bump()
			if err := p.parseExprProduct(out); err != nil {
				return err
			}
			*out = append(*out, commandObj("Sub"))
		default:
			return nil
		}
	}
}

// parseExprProduct handles * / × ÷ (left-associative, higher than +/-).
func (p *Reader) parseExprProduct(out *[]heap.Object) *Error {
	if err := p.parseExprPower(out); err != nil {
		return err
	}
	for {
		p.c.skipSpace()
		if p.c.eat('*') || p.c.eatString("×") {
			if err := p.parseExprPower(out); err != nil {
				return err
			}
			*out = append(*out, commandObj("Mul"))
			continue
		}
		if p.c.eat('/') || p.c.eatString("÷") {
			if err := p.parseExprPower(out); err != nil {
				return err
			}
			*out = append(*out, commandObj("Div"))
			continue
		}
		return nil
	}
}

// parseExprPower handles ^ (right-associative, higher than * /).
func (p *Reader) parseExprPower(out *[]heap.Object) *Error {
	if err := p.parseExprUnary(out); err != nil {
		return err
	}
	p.c.skipSpace()
	if p.c.eat('^') {
		if err := p.parseExprPower(out); err != nil {
			return err
		}
		*out = append(*out, commandObj("Pow"))
	}
	return nil
}

// parseExprUnary handles unary minus.
func (p *Reader) parseExprUnary(out *[]heap.Object) *Error {
	p.c.skipSpace()
	if p.c.peek() == '-' && !isDigit(p.c.peekAt(1)) {
		p.c.bump()
		if err := p.parseExprPostfix(out); err != nil {
			return err
		}
		*out = append(*out, commandObj("Neg"))
		return nil
	}
	return p.parseExprPostfix(out)
}

// parseExprPostfix handles trailing ! (factorial).
func (p *Reader) parseExprPostfix(out *[]heap.Object) *Error {
	if err := p.parseExprAtom(out); err != nil {
		return err
	}
	for {
		p.c.skipSpace()
		if p.c.eat('!') {
			*out = append(*out, commandObj("Fact"))
			continue
		}
		return nil
	}
}

// parseExprAtom handles numbers, parenthesized sub-expressions, bare
// symbols, and single-argument function calls (`sin(x)`).
func (p *Reader) parseExprAtom(out *[]heap.Object) *Error {
	p.c.skipSpace()
	m := p.c.mark()

	if p.c.eat('(') {
		if err := p.parseExprSum(out); err != nil {
			return err
		}
		p.c.skipSpace()
		if !p.c.eat(')') {
			return newError(ErrUnterminated, int(m), "missing closing )")
		}
		return nil
	}

	if isDigit(p.c.peek()) || (p.c.peek() == '-' && isDigit(p.c.peekAt(1))) {
		obj, _, err := p.tryNumber()
		if err != nil {
			return err
		}
		*out = append(*out, obj)
		return nil
	}

	if isNameByte(p.c.peek()) && !isDigit(p.c.peek()) {
		nameStart := p.c.mark()
		for isNameByte(p.c.peek()) {
			p.c.bump()
		}
		name := string(p.c.sliceFrom(nameStart))
		if p.c.peek() == '(' {
			p.c.bump()
			if err := p.parseExprSum(out); err != nil {
				return err
			}
			p.c.skipSpace()
			if !p.c.eat(')') {
				return newError(ErrUnterminated, int(nameStart), "missing closing )")
			}
			e, ok := object.Lookup(name)
			if !ok {
				return newError(ErrSyntax, int(nameStart), "unknown function "+name)
			}
			*out = append(*out, heap.Object{Tag: e.Tag})
			return nil
		}
		if e, ok := object.Lookup(name); ok && e.Tag.IsCommand() {
			*out = append(*out, heap.Object{Tag: e.Tag})
			return nil
		}
		*out = append(*out, heap.Object{Tag: object.Symbol, Payload: []byte(name)})
		return nil
	}

	return newError(ErrSyntax, int(m), "expected a number, symbol, or (sub-expression)")
}
