package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"rplcalc/internal/version"
)

const versionTagline = "a stack, a directory, and an opcode table"

// versionString is what cobra prints for --version; rootCmd.Version wants
// a plain string, so the colorized internal/version.Version (built with
// fatih/color, the same dependency cmd/surge/version.go leaves unused on
// its own non-TUI output paths) is used as-is rather than stripped.
func versionString() string {
	return version.Version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show rpl build information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if !colorEnabled(cmd, out) {
			color.NoColor = true
		}
		fmt.Fprintf(out, "rpl %s — %s\n", version.Version, versionTagline)
		if version.GitCommit != "" {
			fmt.Fprintf(out, "commit: %s\n", version.GitCommit)
		}
		if version.BuildDate != "" {
			fmt.Fprintf(out, "built:  %s\n", version.BuildDate)
		}
		return nil
	},
}
