package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rplcalc/internal/embed"
	"rplcalc/internal/eval"
	"rplcalc/internal/heap"
	"rplcalc/internal/reader"
	"rplcalc/internal/render"
	"rplcalc/internal/rterr"
	"rplcalc/internal/runtime"
	"rplcalc/internal/settings"
	"rplcalc/internal/tracelog"
)

// defaultHeapBytes bounds a CLI session's Globals+Temporaries zones
// (spec.md §4.1's heap ceiling is per-session, not a compiled-in
// constant); 16 MiB comfortably fits the seed test programs spec.md §8
// names (NQueens, trig compositions) without the REPL needing a
// --heap-size flag for ordinary use.
const defaultHeapBytes = 16 << 20

// session bundles everything one evaluation context needs, shared by the
// REPL, eval, and run subcommands so none of them duplicates wiring.
type session struct {
	h   *heap.Heap
	ctx *runtime.Context
	ev  *eval.Evaluator
	set settings.Settings
}

func newSession(cmd *cobra.Command) (*session, error) {
	rcPath, _ := cmd.Flags().GetString("rc")
	set, usedPath, err := loadSettings(rcPath)
	if err != nil {
		return nil, err
	}
	if usedPath != "" && !quietFlag(cmd) {
		fmt.Fprintf(cmd.ErrOrStderr(), "rpl: loaded settings from %s\n", usedPath)
	}

	h := heap.NewHeap(defaultHeapBytes)
	ctx := runtime.NewContext()
	h.SetRootSource(ctx)
	host := embed.NewSystemHost(func() bool { return false })
	ev := eval.New(h, ctx, set, host)

	if tracePath, _ := cmd.Flags().GetString("trace"); tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return nil, err
		}
		ev.SetTracer(tracelog.New(f))
	}

	return &session{h: h, ctx: ctx, ev: ev, set: set}, nil
}

func quietFlag(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}

func colorEnabled(cmd *cobra.Command, w io.Writer) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && isTerminal(f)
	}
}

// runLine parses and evaluates one line of input against s, returning the
// rendered stack-top result text on success.
func (s *session) runLine(line string) (string, error) {
	objs, perr := reader.ParseAll(s.h, line, s.set)
	if perr != nil {
		return "", perr
	}
	for _, obj := range objs {
		ref, err := s.h.AllocTemp(obj.Tag, obj.Payload)
		if err != nil {
			return "", err
		}
		if err := s.ev.Eval(ref); err != nil {
			return "", err
		}
	}
	top, err := s.ctx.Stack.Peek(0)
	if err != nil {
		return "", nil // empty stack after a line with no net push (e.g. Drop) is not an error
	}
	return render.ToString(s.h, top, s.set)
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a single RPL line and print the resulting stack top",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		out, err := s.runLine(args[0])
		if err != nil {
			printEvalError(cmd, err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Evaluate every line of an RPL script file in sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		out, err := s.runLine(string(data))
		if err != nil {
			printEvalError(cmd, err)
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

// printEvalError formats a *reader.Error or *rterr.Error for the terminal,
// colorized in red when color is enabled (fatih/color, the dependency
// cmd/surge/version.go leaves unused on its own non-TUI paths - see
// SPEC_FULL.md's DOMAIN STACK table).
func printEvalError(cmd *cobra.Command, err error) {
	errOut := cmd.ErrOrStderr()
	red := color.New(color.FgRed)
	if !colorEnabled(cmd, errOut) {
		red.DisableColor()
	}
	switch e := err.(type) {
	case *reader.Error:
		red.Fprintf(errOut, "syntax error at byte %d: %s (%s)\n", e.Pos, e.Msg, e.Kind)
	case *rterr.Error:
		red.Fprintf(errOut, "error: %s\n", e.Error())
	default:
		red.Fprintf(errOut, "error: %s\n", err.Error())
	}
}
