// Package cli implements the posonly command line interface.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "posonly",
	Short: "Positional-only calling convention enforcement",
	Long: "Resolves which parameters of a declared function are positional only,\n" +
		"rejects calls that pass them by keyword, and advertises the boundary\n" +
		"in rendered signatures.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
