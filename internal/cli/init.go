package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initOut string

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOut, "out", "o", "posonly.yaml", "Where to write the starter spec")
}

const starterSpec = `# posonly interface spec.
# Each function declares its parameters in order; the positional-only
# boundary resolves from (in priority order):
#   1. an explicit "positional: N" on the function,
#   2. a parameter marked "limit: true",
#   3. the first parameter carrying a default.
functions:
  - name: diff
    params:
      - name: left
      - name: right
      - name: context
        default: 3
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter interface spec",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(initOut); err == nil {
		return fmt.Errorf("%s already exists, refusing to overwrite", initOut)
	}
	if err := os.WriteFile(initOut, []byte(starterSpec), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", initOut, err)
	}
	fmt.Printf("Wrote %s\n", initOut)
	return nil
}
