package reader

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
)

// foldControlStructures rewrites a flat run of parsed objects, replacing
// each balanced If/Then/Else/End (etc.) keyword run with the single
// composite control-structure object spec.md §4.7 describes ("Control
// structures are encoded as objects containing their sub-programs").
// Nesting is handled with an explicit stack rather than recursion since
// the keywords that close an inner construct (End, Next, Step, ...) are
// indistinguishable by spelling from those closing an outer one - only
// position on the stack tells them apart.
func foldControlStructures(children []heap.Object) ([]heap.Object, *Error) {
	type frame struct {
		opener   string
		segments [][]heap.Object
	}
	var stack []*frame
	var out []heap.Object

	appendCurrent := func(o heap.Object) {
		if len(stack) == 0 {
			out = append(out, o)
			return
		}
		top := stack[len(stack)-1]
		last := len(top.segments) - 1
		top.segments[last] = append(top.segments[last], o)
	}

	for _, c := range children {
		if name, ok := controlKeyword(c); ok {
			switch name {
			case "If", "Do", "While", "Start", "For", "IfErr":
				stack = append(stack, &frame{opener: name, segments: [][]heap.Object{{}}})
				continue
			case "Then", "Else", "Until", "Repeat":
				if len(stack) == 0 {
					return nil, newError(ErrSyntax, 0, name+" without a matching opener")
				}
				top := stack[len(stack)-1]
				top.segments = append(top.segments, []heap.Object{})
				continue
			case "End", "Next", "Step":
				if len(stack) == 0 {
					return nil, newError(ErrSyntax, 0, name+" without a matching opener")
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				ctl, err := buildControlObject(top.opener, top.segments, name)
				if err != nil {
					return nil, err
				}
				appendCurrent(ctl)
				continue
			}
		}
		appendCurrent(c)
	}
	if len(stack) != 0 {
		return nil, newError(ErrUnterminated, 0, "unterminated "+stack[len(stack)-1].opener)
	}
	return out, nil
}

// controlKeyword reports the canonical Name of c if it is a bare command
// object naming one of the control-structure keywords.
func controlKeyword(o heap.Object) (string, bool) {
	if !o.Tag.IsCommand() {
		return "", false
	}
	e, ok := object.EntryFor(o.Tag)
	if !ok {
		return "", false
	}
	switch e.Name {
	case "If", "Then", "Else", "End", "Do", "Until", "While", "Repeat", "Start", "Next", "Step", "For", "IfErr":
		return e.Name, true
	default:
		return "", false
	}
}

func programOf(objs []heap.Object) heap.Object {
	return heap.Object{Tag: object.Program, Payload: heap.EncodeChildren(objs...)}
}

func buildControlObject(opener string, segments [][]heap.Object, closer string) (heap.Object, *Error) {
	switch opener {
	case "If":
		if closer != "End" {
			return heap.Object{}, newError(ErrSyntax, 0, "If must be closed by End")
		}
		switch len(segments) {
		case 2:
			return heap.Object{Tag: object.IfThenCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]))}, nil
		case 3:
			return heap.Object{Tag: object.IfThenElseCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]), programOf(segments[2]))}, nil
		default:
			return heap.Object{}, newError(ErrSyntax, 0, "If expects a Then and at most one Else")
		}
	case "Do":
		if closer != "End" || len(segments) != 2 {
			return heap.Object{}, newError(ErrSyntax, 0, "Do expects exactly one Until, closed by End")
		}
		return heap.Object{Tag: object.DoUntilCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]))}, nil
	case "While":
		if closer != "End" || len(segments) != 2 {
			return heap.Object{}, newError(ErrSyntax, 0, "While expects exactly one Repeat, closed by End")
		}
		return heap.Object{Tag: object.WhileRepeatCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]))}, nil
	case "Start":
		if len(segments) != 1 {
			return heap.Object{}, newError(ErrSyntax, 0, "Start takes no Then/Else/Until/Repeat")
		}
		tag := object.StartNextCtl
		if closer == "Step" {
			tag = object.StartStepCtl
		}
		return heap.Object{Tag: tag, Payload: heap.EncodeChildren(programOf(segments[0]))}, nil
	case "For":
		if len(segments) != 1 || len(segments[0]) == 0 {
			return heap.Object{}, newError(ErrSyntax, 0, "For requires a loop variable name")
		}
		varObj := segments[0][0]
		if varObj.Tag != object.Symbol {
			return heap.Object{}, newError(ErrSyntax, 0, "For's loop variable must be a symbol")
		}
		body := segments[0][1:]
		tag := object.ForNextCtl
		if closer == "Step" {
			tag = object.ForStepCtl
		}
		return heap.Object{Tag: tag, Payload: heap.EncodeChildren(varObj, programOf(body))}, nil
	case "IfErr":
		if closer != "End" {
			return heap.Object{}, newError(ErrSyntax, 0, "IfErr must be closed by End")
		}
		switch len(segments) {
		case 2:
			return heap.Object{Tag: object.IfErrThenCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]))}, nil
		case 3:
			return heap.Object{Tag: object.IfErrThenElseCtl, Payload: heap.EncodeChildren(programOf(segments[0]), programOf(segments[1]), programOf(segments[2]))}, nil
		default:
			return heap.Object{}, newError(ErrSyntax, 0, "IfErr expects a Then and at most one Else")
		}
	default:
		return heap.Object{}, newError(ErrSyntax, 0, "unknown control opener "+opener)
	}
}
