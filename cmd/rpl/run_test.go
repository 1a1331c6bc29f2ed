package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"

	"rplcalc/internal/embed"
	"rplcalc/internal/eval"
	"rplcalc/internal/heap"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
)

func newTestSession() *session {
	h := heap.NewHeap(defaultHeapBytes)
	ctx := runtime.NewContext()
	set := settings.Default()
	host := embed.NewSystemHost(func() bool { return false })
	return &session{h: h, ctx: ctx, ev: eval.New(h, ctx, set, host), set: set}
}

func TestRunLineEvaluatesAndRendersStackTop(t *testing.T) {
	s := newTestSession()
	out, err := s.runLine("1 2 +")
	if err != nil {
		t.Fatalf("runLine: %v", err)
	}
	if out != "3" {
		t.Fatalf("runLine(\"1 2 +\") = %q, want %q", out, "3")
	}
}

func TestRunLineWithNoNetPushReturnsEmptyNoError(t *testing.T) {
	s := newTestSession()
	if _, err := s.runLine("5 3"); err != nil {
		t.Fatalf("runLine: %v", err)
	}
	out, err := s.runLine("drop drop")
	if err != nil {
		t.Fatalf("runLine: %v", err)
	}
	if out != "" {
		t.Fatalf("runLine(\"drop drop\") = %q, want empty", out)
	}
}

func TestRunLinePropagatesSyntaxError(t *testing.T) {
	s := newTestSession()
	if _, err := s.runLine("1 2 ["); err == nil {
		t.Fatalf("runLine with unbalanced syntax should fail")
	}
}

func TestRunLinePropagatesEvalError(t *testing.T) {
	s := newTestSession()
	if _, err := s.runLine("+"); err == nil {
		t.Fatalf("runLine with too few arguments should fail")
	}
}

func TestPrintEvalErrorWritesToStderr(t *testing.T) {
	cmd := &cobra.Command{}
	var buf bytes.Buffer
	cmd.SetErr(&buf)
	cmd.Flags().String("color", "off", "")

	s := newTestSession()
	_, err := s.runLine("+")
	if err == nil {
		t.Fatalf("expected an eval error to format")
	}
	printEvalError(cmd, err)
	if buf.Len() == 0 {
		t.Fatalf("printEvalError wrote nothing")
	}
}
