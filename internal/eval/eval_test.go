package eval

import (
	"testing"

	"rplcalc/internal/embed"
	"rplcalc/internal/heap"
	"rplcalc/internal/reader"
	"rplcalc/internal/render"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
)

// newTestEvaluator builds a fresh heap/context/evaluator with factory
// settings and a non-interrupting host, the same wiring cmd/rpl's
// newSession performs.
func newTestEvaluator() (*heap.Heap, *Evaluator) {
	h := heap.NewHeap(0)
	ctx := runtime.NewContext()
	set := settings.Default()
	host := embed.NewSystemHost(func() bool { return false })
	return h, New(h, ctx, set, host)
}

// run parses src, evaluates every resulting object in turn against ev, and
// renders the final stack top - the same three-step shape cmd/rpl.session's
// runLine performs, inlined here so eval's own tests don't depend on cmd/rpl.
func run(t *testing.T, h *heap.Heap, ev *Evaluator, src string) string {
	t.Helper()
	objs, perr := reader.ParseAll(h, src, ev.Settings())
	if perr != nil {
		t.Fatalf("ParseAll(%q): %v", src, perr)
	}
	for _, obj := range objs {
		ref, err := h.AllocTemp(obj.Tag, obj.Payload)
		if err != nil {
			t.Fatalf("AllocTemp: %v", err)
		}
		if err := ev.Eval(ref); err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
	}
	top, err := ev.Context().Stack.Peek(0)
	if err != nil {
		t.Fatalf("Peek after %q: %v", src, err)
	}
	out, err := render.ToString(h, top, ev.Settings())
	if err != nil {
		t.Fatalf("ToString after %q: %v", src, err)
	}
	return out
}

func runErr(t *testing.T, h *heap.Heap, ev *Evaluator, src string) error {
	t.Helper()
	objs, perr := reader.ParseAll(h, src, ev.Settings())
	if perr != nil {
		return perr
	}
	for _, obj := range objs {
		ref, err := h.AllocTemp(obj.Tag, obj.Payload)
		if err != nil {
			return err
		}
		if err := ev.Eval(ref); err != nil {
			return err
		}
	}
	return nil
}

func TestArithmeticOnIntegers(t *testing.T) {
	cases := []struct{ src, want string }{
		{"1 2 +", "3"},
		{"10 4 -", "6"},
		{"6 7 *", "42"},
		{"20 4 /", "5"},
		{"2 10 ^", "1024"},
		{"-3 neg", "3"},
		{"7 3 mod", "1"},
	}
	for _, c := range cases {
		h, ev := newTestEvaluator()
		if got := run(t, h, ev, c.src); got != c.want {
			t.Errorf("%q = %q, want %q", c.src, got, c.want)
		}
	}
}

func TestStackOpsDupSwapDrop(t *testing.T) {
	h, ev := newTestEvaluator()
	if got := run(t, h, ev, "3 dup +"); got != "6" {
		t.Fatalf("dup = %q, want %q", got, "6")
	}

	h, ev = newTestEvaluator()
	if got := run(t, h, ev, "1 2 swap -"); got != "1" {
		t.Fatalf("swap = %q, want %q", got, "1")
	}

	h, ev = newTestEvaluator()
	if got := run(t, h, ev, "1 2 3 drop"); got != "2" {
		t.Fatalf("drop = %q, want %q", got, "2")
	}
}

func TestDirectoryStoAndRcl(t *testing.T) {
	h, ev := newTestEvaluator()
	if err := runErr(t, h, ev, `5 "x" sto`); err != nil {
		t.Fatalf("sto: %v", err)
	}
	if got := run(t, h, ev, `"x" rcl`); got != "5" {
		t.Fatalf("rcl = %q, want %q", got, "5")
	}
}

func TestDirectoryRclUndefinedNameFails(t *testing.T) {
	h, ev := newTestEvaluator()
	if err := runErr(t, h, ev, `"nope" rcl`); err == nil {
		t.Fatalf("rcl of an undefined name should fail")
	}
}

func TestCommandOnEmptyStackIsMissingArgument(t *testing.T) {
	h, ev := newTestEvaluator()
	if err := runErr(t, h, ev, "+"); err == nil {
		t.Fatalf("+ on an empty stack should fail")
	}
}

func TestIfThenElseBranches(t *testing.T) {
	h, ev := newTestEvaluator()
	if got := run(t, h, ev, "If 1 1 == Then 10 Else 20 End"); got != "10" {
		t.Fatalf("If/Then/Else true branch = %q, want %q", got, "10")
	}

	h, ev = newTestEvaluator()
	if got := run(t, h, ev, "If 1 0 == Then 10 Else 20 End"); got != "20" {
		t.Fatalf("If/Then/Else false branch = %q, want %q", got, "20")
	}
}

func TestProgramEvaluatesChildrenInOrder(t *testing.T) {
	h, ev := newTestEvaluator()
	if got := run(t, h, ev, "« 1 2 + »"); got != "3" {
		t.Fatalf("program block = %q, want %q", got, "3")
	}
}

