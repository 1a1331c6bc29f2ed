// Package replhist implements cmd/rpl's line-edit history: the scrollback
// of previously entered input lines that Up/Down arrow keys walk through
// in the REPL (spec.md §1's "line editing" capability of the interactive
// front end).
//
// Grounded on the teacher's internal/diag.Bag: a bounded append-only slice
// that drops its oldest entries once a cap is reached rather than growing
// without limit, the same accumulate-up-to-a-cap shape a command-line
// history needs and that rterr's single-error-slot model (see DESIGN.md)
// explicitly does not.
package replhist

// History holds a bounded, oldest-first list of previously submitted
// REPL input lines, plus a cursor for Up/Down-arrow recall.
type History struct {
	lines  []string
	max    int
	cursor int // index into lines the next Prev/Next returns; len(lines) means "not browsing"
	draft  string
}

// New builds a History capped at max entries (0 means unbounded).
func New(max int) *History {
	return &History{max: max}
}

// Add appends line to the history, evicting the oldest entry once max is
// exceeded (Bag.Add's reject-past-cap behavior doesn't fit a scrollback -
// a history that refuses new lines once full is useless - so this drops
// from the front instead). A blank line, or one identical to the most
// recent entry, is not recorded.
func (h *History) Add(line string) {
	if line == "" {
		return
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		h.resetCursor()
		return
	}
	h.lines = append(h.lines, line)
	if h.max > 0 && len(h.lines) > h.max {
		h.lines = h.lines[len(h.lines)-h.max:]
	}
	h.resetCursor()
}

func (h *History) resetCursor() {
	h.cursor = len(h.lines)
	h.draft = ""
}

// Prev recalls the entry before the current cursor position (Up arrow),
// remembering current as the in-progress draft so Next can return to it.
// Reports ok=false once the oldest entry is reached.
func (h *History) Prev(current string) (string, bool) {
	if h.cursor == len(h.lines) {
		h.draft = current
	}
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.lines[h.cursor], true
}

// Next recalls the entry after the current cursor position (Down arrow),
// returning the saved draft once the cursor walks back past the newest
// entry. Reports ok=false if already at the draft (nothing to recall).
func (h *History) Next() (string, bool) {
	if h.cursor >= len(h.lines) {
		return "", false
	}
	h.cursor++
	if h.cursor == len(h.lines) {
		return h.draft, true
	}
	return h.lines[h.cursor], true
}

// Len reports how many lines are recorded.
func (h *History) Len() int { return len(h.lines) }

// Lines returns every recorded line, oldest first. The caller must not
// modify the returned slice.
func (h *History) Lines() []string { return h.lines }
