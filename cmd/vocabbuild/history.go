package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/naturkoll/vocabbuild/internal/config"
	"github.com/naturkoll/vocabbuild/internal/database"
)

// NewHistoryCmd creates the history command.
// This command lists run summaries stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past build runs",
		Long: `History displays summaries of past build runs from the local database.

Every successful 'vocabbuild build' journals one run with per-group counts
(retained, written, skipped). The database lives in the XDG data directory
and records outcomes only; no API responses are stored.

Examples:
  # Show the ten most recent runs
  vocabbuild history

  # Show the last three runs
  vocabbuild history --limit 3`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 10,
		"Maximum number of runs to display (0 for all)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet. Run 'vocabbuild build' first.")
		return nil
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No run history yet. Run 'vocabbuild build' first.")
		return nil
	}

	for _, run := range runs {
		labels := make([]string, 0, len(run.Groups))
		for _, g := range run.Groups {
			labels = append(labels, fmt.Sprintf("%s=%d", g.Label, g.Written))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run %d  %s  groups=%d entries=%d\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04:05"),
			len(run.Groups),
			run.EntryCount(),
		)
		if len(labels) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", strings.Join(labels, " "))
		}
	}

	return nil
}
