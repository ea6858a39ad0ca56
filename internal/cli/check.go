package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arpegio/posonly/internal/scenario"
)

var (
	checkScenario string
	checkSpec     string
	checkFormat   string
)

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&checkScenario, "scenario", "", "Glob pattern for scenario YAML files (required)")
	checkCmd.Flags().StringVar(&checkSpec, "spec", "", "Interface spec YAML overriding the one referenced by scenarios")
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
	checkCmd.MarkFlagRequired("scenario")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run call assertions from scenario files",
	Long: "Loads scenario YAML files matching a glob pattern, classifies each\n" +
		"call through the boundary guard, and reports pass/fail.\n\n" +
		"Exit code 0 if all cases pass, 1 if any fail.\n" +
		"Use in CI to gate releases on calling-convention correctness.",
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	matches, err := filepath.Glob(checkScenario)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no scenario files match pattern: %s", checkScenario)
	}

	var results []*scenario.RunResult
	failed := 0
	for _, path := range matches {
		r, err := scenario.LoadAndRun(path, checkSpec)
		if err != nil {
			return err
		}
		failed += r.Failed
		results = append(results, r)
	}

	if checkFormat == "json" {
		out, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(out)
	} else {
		fmt.Print(scenario.FormatText(results))
	}

	if failed > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d case(s) failed", failed)
	}
	return nil
}
