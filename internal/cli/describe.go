package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arpegio/posonly/internal/specfile"
)

var (
	describeSpec   string
	describeFormat string
)

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVar(&describeSpec, "spec", "", "Path to interface spec YAML (required)")
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "text", "Output format (text|json)")
	describeCmd.MarkFlagRequired("spec")
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Render declared signatures with their positional-only boundary",
	Long: "Loads an interface spec, resolves every function's boundary, and\n" +
		"prints the rewritten signatures with the `/` marker in place.",
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	f, err := specfile.Load(describeSpec)
	if err != nil {
		return err
	}
	guards, err := f.Guards()
	if err != nil {
		return err
	}

	if describeFormat == "json" {
		type entry struct {
			Name       string `json:"name"`
			Signature  string `json:"signature"`
			Positional int    `json:"positional"`
		}
		out := make([]entry, 0, len(guards))
		for _, g := range guards {
			out = append(out, entry{Name: g.Name(), Signature: g.Signature(), Positional: g.Boundary()})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, g := range guards {
		fmt.Println(g.Signature())
	}
	return nil
}
