package tracelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestEnterWritesOneNDJSONLine(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.Enter(1, "+", 2)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	var got stepLine
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != "enter" || got.Depth != 1 || got.Tag != "+" || got.Depth2 != 2 {
		t.Fatalf("got %+v", got)
	}
}

func TestCommandRecordsErrorText(t *testing.T) {
	var buf bytes.Buffer
	tr := New(&buf)
	tr.Command(0, "inv", 1, errors.New("div/0"))

	var got stepLine
	if err := json.Unmarshal(bytes.TrimRight(buf.Bytes(), "\n"), &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got.Kind != "command" || got.Command != "inv" || got.Err != "div/0" {
		t.Fatalf("got %+v", got)
	}
}

func TestCommandOmitsErrFieldOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Command(0, "dup", 2, nil)

	if strings.Contains(buf.String(), "err") {
		t.Fatalf("success line should omit err field: %q", buf.String())
	}
}

func TestNilTracerIsANoOp(t *testing.T) {
	var tr *Tracer
	tr.Enter(0, "x", 0)
	tr.Command(0, "x", 0, nil)
}

func TestNilWriterIsANoOp(t *testing.T) {
	tr := New(nil)
	tr.Enter(0, "x", 0)
	tr.Command(0, "x", 0, nil)
}
