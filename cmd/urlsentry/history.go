package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/urlsentry/urlsentry/internal/config"
	"github.com/urlsentry/urlsentry/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List persisted check outcomes",
		Long: `History lists outcomes previously persisted with the --save flag of
check or score, most recent first.

Examples:
  # Show the last 50 checks
  urlsentry history

  # Show the last 10 as JSON
  urlsentry history --limit 10 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultHistoryLimit, "Maximum number of records to show")
	cmd.Flags().Bool("json", false, "Print records as JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be positive: got %d", limit)
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	store, err := history.Open(dataDir, history.Options{})
	if err != nil {
		return fmt.Errorf("failed to open history store (run a check with --save first): %w", err)
	}
	defer func() { _ = store.Close() }()

	records, err := store.List(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(out, "no history records")
		return nil
	}
	for _, rec := range records {
		fmt.Fprintf(out, "%s  %-9s  %.2f  %-13s  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04:05"),
			rec.Strategy,
			rec.Score,
			rec.Verdict,
			rec.URL,
		)
		if len(rec.Reasons) > 0 {
			fmt.Fprintf(out, "    %s\n", strings.Join(rec.Reasons, "; "))
		}
	}
	return nil
}
