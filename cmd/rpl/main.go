package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "rpl",
	Short: "An RPL-style reverse-Polish calculator runtime",
	Long:  `rpl is a stack-based, reverse-Polish-logic calculator: an interactive REPL and script runner over a tagged-object heap, the same runtime spec.md §2 describes.`,
	RunE:  runRepl,
}

func main() {
	rootCmd.Version = versionString()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(runCmd)

	rootCmd.PersistentFlags().String("rc", "", "path to an rplrc.toml settings file (default: search cwd and $HOME)")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress the banner and prompt decorations")
	rootCmd.PersistentFlags().String("trace", "", "write an NDJSON evaluator trace to this path (default: none)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal (grounded on
// cmd/surge/main.go's helper of the same name and same golang.org/x/term
// call), used to decide both REPL-vs-pipe mode and default color mode.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
