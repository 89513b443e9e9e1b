// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/daily-arxiv/internal/history"
	"github.com/pdiddy/daily-arxiv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded self-test runs",
	Long: `History lists runs stored by "selftest --record", newest first.
Use --format yaml or --format json to export the runs with per-check detail.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	root, err := resolveRoot(cfg)
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := listRuns(cmd, root, cfg.History, limit)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "":
		formatHistoryTable(cmd.OutOrStdout(), runs)
		return nil
	default:
		return history.Export(cmd.OutOrStdout(), runs, history.Format(format))
	}
}

// listRuns reads stored runs without creating a database when none exists.
func listRuns(cmd *cobra.Command, root string, cfg types.HistoryConfig, limit int) ([]history.Run, error) {
	store, err := history.Open(root, cfg)
	if errors.Is(err, history.ErrNoHistory) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer store.Close()

	return store.Runs(commandContext(cmd), limit)
}

func formatHistoryTable(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-6s  %-20s  %-7s  %s\n", "Run", "Started", "Result", "Failed checks")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	for _, r := range runs {
		var failed []string
		for _, c := range r.Checks {
			if !c.Passed {
				failed = append(failed, c.Name)
			}
		}
		fmt.Fprintf(w, "%-6d  %-20s  %d/%-5d  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), r.Passed, r.Total, strings.Join(failed, ", "))
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use history.max_results)")
	historyCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(historyCmd)
}
