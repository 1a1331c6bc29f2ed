package eval

import (
	"rplcalc/internal/heap"
	"rplcalc/internal/object"
	"rplcalc/internal/rterr"
)

// popName pops the top of the stack and requires it to be a Symbol or
// Text object, returning its string form (spec.md §4.6 "Sto, Rcl, Purge
// operate on the current directory").
func (e *Evaluator) popName() (string, error) {
	ref, err := e.ctx.Stack.Pop()
	if err != nil {
		return "", err
	}
	tag, payload, err := e.h.Get(ref)
	if err != nil {
		return "", err
	}
	if tag != object.Symbol && tag != object.Text {
		return "", rterr.New(rterr.TypeError, "expected a name")
	}
	return string(payload), nil
}

// evalSto implements spec.md §4.1's "allocation always happens in
// Temporaries; promotion to Globals is an explicit Sto into the home
// directory": the popped value is re-allocated into Globals before it is
// handed to Dir.Sto, so a stored variable survives a Temporaries collection
// regardless of whether the value it names was ever pinned or referenced
// from the stack again.
func (e *Evaluator) evalSto() error {
	name, err := e.popName()
	if err != nil {
		return err
	}
	val, err := e.ctx.Stack.Pop()
	if err != nil {
		return err
	}
	tag, payload, err := e.h.Get(val)
	if err != nil {
		return err
	}
	// AllocGlobal shifts Temporaries, where val's bytes may live.
	payload = append([]byte(nil), payload...)
	global, err := e.h.AllocGlobal(tag, payload)
	if err != nil {
		return err
	}
	return e.ctx.Dir.Sto(name, global)
}

func (e *Evaluator) evalRcl() error {
	name, err := e.popName()
	if err != nil {
		return err
	}
	ref, err := e.ctx.Dir.Rcl(name)
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(ref)
	return nil
}

func (e *Evaluator) evalPurge() error {
	name, err := e.popName()
	if err != nil {
		return err
	}
	return e.ctx.Dir.Purge(name)
}

func (e *Evaluator) evalCrDir() error {
	name, err := e.popName()
	if err != nil {
		return err
	}
	_, err = e.ctx.Dir.Crdir(name)
	return err
}

func (e *Evaluator) evalUpDir() error {
	parent, err := e.ctx.Dir.UpDir()
	if err != nil {
		return err
	}
	e.ctx.Dir = parent
	return nil
}

func (e *Evaluator) evalHome() error {
	e.ctx.Dir = e.ctx.Root
	return nil
}

func (e *Evaluator) evalVars() error {
	names := e.ctx.Dir.VarNames()
	children := make([]heap.Object, 0, len(names))
	for _, name := range names {
		children = append(children, heap.Object{Tag: object.Symbol, Payload: []byte(name)})
	}
	ref, err := e.h.AllocTemp(object.List, heap.EncodeChildren(children...))
	if err != nil {
		return err
	}
	e.ctx.Stack.Push(ref)
	return nil
}
