package render

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"rplcalc/internal/heap"
	"rplcalc/internal/settings"
)

// StackListing renders every operand stack entry as "N: text" lines,
// right-aligning the level numbers by their on-screen cell width rather
// than their byte or rune count (spec.md §4.4's rendering concern applied
// to the REPL's stack display, cmd/rpl's main consumer of this package).
// Grounded on the teacher's internal/ui/progress.go, which measures
// rendered column width with go-runewidth before padding rather than
// assuming one byte or rune per terminal cell.
func StackListing(h *heap.Heap, refs []heap.Ref, set settings.Settings) ([]string, error) {
	labelWidth := len(strconv.Itoa(len(refs)))
	lines := make([]string, len(refs))
	for i, ref := range refs {
		level := len(refs) - i
		label := strconv.Itoa(level) + ":"
		pad := labelWidth + 1 - runewidth.StringWidth(label)
		if pad < 0 {
			pad = 0
		}
		text, err := ToString(h, ref, set)
		if err != nil {
			return nil, err
		}
		lines[i] = strings.Repeat(" ", pad) + label + " " + text
	}
	return lines, nil
}
