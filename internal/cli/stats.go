package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arpegio/posonly/internal/history"
)

var (
	statsHistory string
	statsFormat  string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsHistory, "history", "", "Path to the SQLite call history database (required)")
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "text", "Output format (text|json)")
	statsCmd.MarkFlagRequired("history")
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded call outcomes per function",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := history.Open(statsHistory)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Summary(context.Background())
	if err != nil {
		return err
	}

	if statsFormat == "json" {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal summary: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	if len(summary) == 0 {
		fmt.Println("No calls recorded.")
		return nil
	}
	fmt.Printf("%-24s %8s %8s  %s\n", "FUNCTION", "CALLS", "REJECTED", "LAST CALL")
	for _, fs := range summary {
		fmt.Printf("%-24s %8d %8d  %s\n",
			fs.Function, fs.Calls, fs.Rejected, fs.LastCall.Format("2006-01-02 15:04:05"))
	}
	return nil
}
