package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arpegio/posonly/internal/server"
)

var (
	serveSpec    string
	serveAudit   string
	serveHistory string
	serveNoWatch bool
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveSpec, "spec", "", "Path to interface spec YAML (required)")
	serveCmd.Flags().StringVar(&serveAudit, "audit-log", "", "Path to the JSONL enforcement trail")
	serveCmd.Flags().StringVar(&serveHistory, "history", "", "Path to the SQLite call history database")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable spec hot-reload")
	serveCmd.MarkFlagRequired("spec")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP tool server for agent integration",
	Long: "Runs posonly as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes the enforcement surface as tools: describe, check, resolve.\n" +
		"The interface spec hot-reloads when its file changes.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	srv, err := server.New(server.Config{
		SpecPath:     serveSpec,
		AuditLogPath: serveAudit,
		HistoryPath:  serveHistory,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
		cancel()
	}()

	if !serveNoWatch {
		reloader, err := server.NewReloader(srv)
		if err != nil {
			return fmt.Errorf("failed to watch spec: %w", err)
		}
		go reloader.Run(ctx)
	}

	fmt.Fprintln(os.Stderr, "posonly MCP server running on stdio")
	fmt.Fprintf(os.Stderr, "Spec: %s\n", serveSpec)

	return srv.Run(ctx)
}
