package render

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"rplcalc/internal/bignum"
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
	"rplcalc/internal/settings"
)

// Render writes ref's canonical text form to sink, dispatching on the
// object's tag (spec.md §4.4 "the renderer ... produces canonical text for
// every object kind the parser accepts"). h supplies the bytes behind ref;
// composite kinds recurse into their children.
func Render(h *heap.Heap, ref heap.Ref, set settings.Settings, sink Sink) error {
	tag, payload, err := h.Get(ref)
	if err != nil {
		return err
	}
	return renderObject(h, tag, payload, set, sink)
}

// ToString is the common case: render straight to a Go string.
func ToString(h *heap.Heap, ref heap.Ref, set settings.Settings) (string, error) {
	buf := NewBufferSink()
	if err := Render(h, ref, set, buf); err != nil {
		return "", err
	}
	return norm.NFC.String(buf.String()), nil
}

func renderObject(h *heap.Heap, tag object.Tag, payload []byte, set settings.Settings, sink Sink) error {
	switch {
	case tag == object.Symbol:
		return sink.WriteString(string(payload))
	case tag == object.Text:
		return sink.WriteString("\"" + string(payload) + "\"")
	case tag == object.Comment:
		return sink.WriteString("@ " + string(payload))
	case tag.IsCommand():
		return sink.WriteString(commandSpelling(tag, set.Capitalization))
	case isNumberTag(tag):
		s, err := renderNumber(tag, payload, set)
		if err != nil {
			return err
		}
		return sink.WriteString(s)
	case tag == object.Rectangular:
		return renderPair(h, payload, set, sink, "(", ",", ")")
	case tag == object.Polar:
		return renderPair(h, payload, set, sink, "(", "∠", ")")
	case tag == object.List:
		return renderDelimited(h, payload, set, sink, "{ ", " }")
	case tag == object.Array:
		return renderDelimited(h, payload, set, sink, "[ ", " ]")
	case tag == object.Program, tag == object.Block:
		return renderDelimited(h, payload, set, sink, "« ", " »")
	case tag == object.Expression:
		return renderExpression(h, payload, set, sink)
	case tag == object.Directory:
		return sink.WriteString(string(payload))
	case tag.IsControl():
		return renderControl(h, tag, payload, set, sink)
	default:
		return rterr.New(rterr.Unimplemented, "renderer: unsupported object kind")
	}
}

func isNumberTag(t object.Tag) bool {
	return t.IsReal()
}

func renderPair(h *heap.Heap, payload []byte, set settings.Settings, sink Sink, open, sep, close string) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	if len(children) != 2 {
		return rterr.New(rterr.InvalidObject, "malformed complex number")
	}
	if err := sink.WriteString(open); err != nil {
		return err
	}
	if err := renderObject(h, children[0].Tag, children[0].Payload, set, sink); err != nil {
		return err
	}
	if err := sink.WriteString(sep); err != nil {
		return err
	}
	if err := renderObject(h, children[1].Tag, children[1].Payload, set, sink); err != nil {
		return err
	}
	return sink.WriteString(close)
}

func renderDelimited(h *heap.Heap, payload []byte, set settings.Settings, sink Sink, open, close string) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	if err := sink.WriteString(open); err != nil {
		return err
	}
	for i, c := range children {
		if i > 0 {
			if err := sink.WriteString(" "); err != nil {
				return err
			}
		}
		if err := renderObject(h, c.Tag, c.Payload, set, sink); err != nil {
			return err
		}
	}
	return sink.WriteString(close)
}

// renderExpression renders a postfix child run back to infix text (spec.md
// §4.8's expression objects are stored postfix but always displayed infix).
func renderExpression(h *heap.Heap, payload []byte, set settings.Settings, sink Sink) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	var stack []string
	for _, c := range children {
		if !c.Tag.IsCommand() {
			buf := NewBufferSink()
			if err := renderObject(h, c.Tag, c.Payload, set, buf); err != nil {
				return err
			}
			stack = append(stack, buf.String())
			continue
		}
		entry, _ := object.EntryFor(c.Tag)
		n := 1
		if c.Tag == object.Add || c.Tag == object.Sub || c.Tag == object.Mul ||
			c.Tag == object.Div || c.Tag == object.Pow || c.Tag == object.Mod || c.Tag == object.IDiv {
			n = 2
		}
		if len(stack) < n {
			return rterr.New(rterr.InvalidObject, "malformed expression")
		}
		args := stack[len(stack)-n:]
		stack = stack[:len(stack)-n]
		var s string
		switch n {
		case 2:
			s = "(" + args[0] + " " + entry.Short + " " + args[1] + ")"
		default:
			if c.Tag == object.Fact {
				s = args[0] + "!"
			} else if c.Tag == object.Neg {
				s = "-" + args[0]
			} else {
				s = entry.Short + "(" + args[0] + ")"
			}
		}
		stack = append(stack, s)
	}
	if len(stack) != 1 {
		return rterr.New(rterr.InvalidObject, "malformed expression")
	}
	return sink.WriteString("'" + stack[0] + "'")
}

func renderControl(h *heap.Heap, tag object.Tag, payload []byte, set settings.Settings, sink Sink) error {
	children, err := heap.Children(payload)
	if err != nil {
		return err
	}
	labels := controlLabels(tag)
	if labels == nil || len(children) != len(labels) {
		return rterr.New(rterr.InvalidObject, "malformed control structure")
	}
	for i, c := range children {
		if i > 0 {
			if err := sink.WriteString(" " + labels[i] + " "); err != nil {
				return err
			}
		} else if err := sink.WriteString(labels[0] + " "); err != nil {
			return err
		}
		if err := renderObject(h, c.Tag, c.Payload, set, sink); err != nil {
			return err
		}
	}
	return sink.WriteString(" " + labels[len(labels)])
}

// controlLabels returns n+1 keyword spellings bracketing a control
// structure's n sub-program children (spec.md §4.7's ten composites).
func controlLabels(tag object.Tag) []string {
	switch tag {
	case object.IfThenCtl:
		return []string{"IF", "THEN", "END"}
	case object.IfThenElseCtl:
		return []string{"IF", "THEN", "ELSE", "END"}
	case object.DoUntilCtl:
		return []string{"DO", "UNTIL", "END"}
	case object.WhileRepeatCtl:
		return []string{"WHILE", "REPEAT", "END"}
	case object.StartNextCtl:
		return []string{"START", "NEXT"}
	case object.StartStepCtl:
		return []string{"START", "STEP"}
	case object.ForNextCtl:
		return []string{"FOR", "NEXT"}
	case object.ForStepCtl:
		return []string{"FOR", "STEP"}
	case object.IfErrThenCtl:
		return []string{"IFERR", "THEN", "END"}
	case object.IfErrThenElseCtl:
		return []string{"IFERR", "THEN", "ELSE", "END"}
	default:
		return nil
	}
}

// commandSpelling picks a command's rendered spelling according to the
// capitalization setting (spec.md §4.4 "command capitalization").
func commandSpelling(tag object.Tag, cap settings.Capitalization) string {
	entry, ok := object.EntryFor(tag)
	if !ok {
		return "?"
	}
	switch cap {
	case settings.CapUpper:
		return strings.ToUpper(entry.Short)
	case settings.CapCapitalized:
		for i := range entry.Short {
			if i > 0 {
				return strings.ToUpper(entry.Short[:i]) + entry.Short[i:]
			}
		}
		return strings.ToUpper(entry.Short)
	case settings.CapLongForm:
		return entry.Long
	default:
		return strings.ToLower(entry.Short)
	}
}

func renderNumber(tag object.Tag, payload []byte, set settings.Settings) (string, error) {
	switch {
	case tag.IsFraction():
		f, err := object.DecodeFraction(tag, payload)
		if err != nil {
			return "", err
		}
		return renderFraction(f, set), nil
	case tag == object.Decimal32 || tag == object.Decimal64 || tag == object.Decimal128:
		f, err := object.DecodeFloat(payload)
		if err != nil {
			return "", err
		}
		return renderFloat(f, set)
	case tag == object.BasedInt || tag == object.BasedBignum:
		b, err := object.DecodeBased(payload)
		if err != nil {
			return "", err
		}
		return renderBased(b, set), nil
	default:
		i, err := object.DecodeInt(tag, payload)
		if err != nil {
			return "", err
		}
		return renderInt(i, set), nil
	}
}

func renderInt(i bignum.BigInt, set settings.Settings) string {
	s := bignum.FormatInt(bignum.BigInt{Neg: false, Limbs: i.Limbs})
	s = groupDigits(s, set.GroupMantissa, set.GroupWidth, set.GroupSeparator)
	if i.Neg && !i.IsZero() {
		return "-" + s
	}
	return s
}

func renderFraction(f bignum.Fraction, set settings.Settings) string {
	num := renderInt(f.Num, set)
	den := bignum.FormatUint(f.Den)
	den = groupDigits(den, set.GroupFraction, set.GroupWidth, set.GroupSeparator)
	return num + "/" + den
}

func renderFloat(f bignum.BigFloat, set settings.Settings) (string, error) {
	s, err := bignum.FormatFloat(f)
	if err != nil {
		return "", err
	}
	if set.DecimalMark != '.' {
		s = strings.Replace(s, ".", string(set.DecimalMark), 1)
	}
	if set.ExponentMark != 'E' {
		s = strings.Replace(s, "E", string(set.ExponentMark), 1)
	}
	if set.GroupMantissa {
		s = groupMantissaInFloatString(s, set)
	}
	return s, nil
}

// groupMantissaInFloatString applies digit grouping to the integer portion
// of a formatted float's mantissa, leaving any exponent suffix untouched.
func groupMantissaInFloatString(s string, set settings.Settings) string {
	markIdx := strings.IndexByte(s, byte(set.ExponentMark))
	suffix := ""
	body := s
	if markIdx >= 0 {
		body, suffix = s[:markIdx], s[markIdx:]
	}
	neg := strings.HasPrefix(body, "-")
	if neg {
		body = body[1:]
	}
	dot := strings.IndexRune(body, set.DecimalMark)
	intPart := body
	fracPart := ""
	if dot >= 0 {
		intPart, fracPart = body[:dot], body[dot+1:]
	}
	intPart = groupDigits(intPart, true, set.GroupWidth, set.GroupSeparator)
	out := intPart
	if dot >= 0 {
		out += string(set.DecimalMark) + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out + suffix
}

func renderBased(b bignum.Based, set settings.Settings) string {
	base := uint32(set.Base)
	if base != 2 && base != 8 && base != 10 && base != 16 {
		base = 16
	}
	digits := digitsInBase(b.Mag, base)
	digits = groupDigits(digits, set.GroupBased, set.GroupWidth, set.GroupSeparator)
	return "#" + digits
}

const digitAlphabet = "0123456789ABCDEF"

func digitsInBase(u bignum.BigUint, base uint32) string {
	if u.IsZero() {
		return "0"
	}
	var rev []byte
	cur := u
	for !cur.IsZero() {
		q, r, err := bignum.UintDivModSmall(cur, base)
		if err != nil {
			return "<error>"
		}
		rev = append(rev, digitAlphabet[r])
		cur = q
	}
	out := make([]byte, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return string(out)
}

// groupDigits inserts sep every width digits, counting from the rightmost
// (least significant) digit - spec.md §4.4 "Digit reversal: grouping is
// applied by reversing the digit run, inserting separators every N
// characters, then reversing back".
func groupDigits(digits string, enabled bool, width int, sep rune) string {
	if !enabled || width <= 0 || len(digits) <= width {
		return digits
	}
	runes := []rune(digits)
	reversed := make([]rune, len(runes))
	for i, r := range runes {
		reversed[len(runes)-1-i] = r
	}
	var out []rune
	for i, r := range reversed {
		if i > 0 && i%width == 0 {
			out = append(out, sep)
		}
		out = append(out, r)
	}
	final := make([]rune, len(out))
	for i, r := range out {
		final[len(out)-1-i] = r
	}
	return string(final)
}
