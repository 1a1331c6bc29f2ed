package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"rplcalc/internal/render"
	"rplcalc/internal/replhist"
)

// replModel is cmd/rpl's interactive front end: a Bubble Tea program
// pairing a bubbles/textinput input line with a stack display that lists
// every level at once (there is no scrolling viewport),
// grounded on internal/ui/progress.go's model/Init/Update/View shape -
// that model drives a build pipeline's progress bar off a channel of
// events, this one drives the calculator's stack view off the evaluator's
// own synchronous Eval calls, so Update never needs its own listener
// goroutine.
type replModel struct {
	sess    *session
	input   textinput.Model
	history *replhist.History
	lines   []string // rendered stack + transcript, most recent result last
	errLine string
	width   int
	height  int
	quit    bool

	promptStyle lipgloss.Style
	errorStyle  lipgloss.Style
	stackStyle  lipgloss.Style

	initCmd tea.Cmd
}

func newReplModel(sess *session, color bool) replModel {
	ti := textinput.New()
	ti.Placeholder = "1 2 +"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	focusCmd := ti.Focus()

	prompt := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	stack := lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	if !color {
		prompt = lipgloss.NewStyle()
		errStyle = lipgloss.NewStyle()
		stack = lipgloss.NewStyle()
	}

	return replModel{
		sess:        sess,
		input:       ti,
		history:     replhist.New(500),
		width:       80,
		height:      24,
		promptStyle: prompt,
		errorStyle:  errStyle,
		stackStyle:  stack,
		initCmd:     focusCmd,
	}
}

func (m replModel) Init() tea.Cmd {
	return m.initCmd
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quit = true
			return m, tea.Quit
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if line == "" {
				return m, nil
			}
			if line == "quit" || line == "exit" {
				m.quit = true
				return m, tea.Quit
			}
			m.history.Add(line)
			m.errLine = ""
			if _, err := m.sess.runLine(line); err != nil {
				m.errLine = formatReplError(err)
			}
			return m, nil
		case tea.KeyUp:
			if prev, ok := m.history.Prev(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) View() string {
	var b strings.Builder
	lines, err := render.StackListing(m.sess.h, m.sess.ctx.Stack.All(), m.sess.set)
	if err != nil {
		lines = []string{fmt.Sprintf("<stack render error: %s>", err)}
	}
	if len(lines) == 0 {
		b.WriteString(m.stackStyle.Render("(stack empty)"))
	} else {
		for _, l := range lines {
			b.WriteString(m.stackStyle.Render(l))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	if m.errLine != "" {
		b.WriteString(m.errorStyle.Render(m.errLine))
		b.WriteString("\n")
	}
	b.WriteString(m.promptStyle.Render(m.input.View()))
	b.WriteString("\n")
	return b.String()
}

func formatReplError(err error) string {
	return "error: " + err.Error()
}

// runRepl is rootCmd's default action: launch the interactive Bubble Tea
// REPL, or if stdin isn't a terminal (piped input, a test harness), fall
// back to evaluating stdin line-by-line non-interactively the way
// cmd/surge's own CLI distinguishes terminal from pipe input via
// isTerminal.
func runRepl(cmd *cobra.Command, args []string) error {
	sess, err := newSession(cmd)
	if err != nil {
		return err
	}
	if !isTerminal(os.Stdin) {
		return runPipedStdin(cmd, sess)
	}
	color := colorEnabled(cmd, os.Stdout)
	model := newReplModel(sess, color)
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}

// runPipedStdin evaluates every line of non-terminal stdin in turn and
// prints the stack-top result after each, a scripting-friendly mode for
// `echo "1 2 +" | rpl` with no Bubble Tea program involved.
func runPipedStdin(cmd *cobra.Command, sess *session) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out, err := sess.runLine(line)
		if err != nil {
			printEvalError(cmd, err)
			continue
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
	}
	return nil
}
