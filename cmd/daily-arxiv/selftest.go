// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/daily-arxiv/internal/history"
	"github.com/pdiddy/daily-arxiv/internal/report"
	"github.com/pdiddy/daily-arxiv/internal/selftest"
	"github.com/pdiddy/daily-arxiv/pkg/types"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Check pipeline output artifacts for presence and shape",
	Long: `Selftest runs four checks against the repository root, in order:

  Data structure       newest data/*_AI_enhanced_*.jsonl has the required keys
  Markdown conversion  to_md/convert.py and its template exist
  README generation    README templates and update_readme.py exist
  Web assets           site pages, stylesheet and script exist

It prints a pass count and exits non-zero if any check fails. Use --record to
store the run in the history database and --html to write a report page.`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func runSelftest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root, err := resolveRoot(cfg)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	summary := selftest.Run(ctx, root, selftest.Checks(cfg), cmd.OutOrStdout())

	if record, _ := cmd.Flags().GetBool("record"); record {
		if err := recordRun(ctx, root, cfg.History, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: recording run failed: %v\n", err)
		}
	}

	if path, _ := cmd.Flags().GetString("html"); path != "" {
		if err := report.WriteHTML(path, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: writing report failed: %v\n", err)
		} else {
			fmt.Fprintln(os.Stderr, "Report written to", path)
		}
	}

	if err := summary.Err(); err != nil {
		cmd.SilenceUsage = true
		return err
	}
	return nil
}

// commandContext returns the command's context, or Background when the
// command was invoked outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveRoot returns the configured root, or discovers it from the working
// directory.
func resolveRoot(cfg types.SelftestConfig) (string, error) {
	if cfg.Root != "" {
		return filepath.Abs(cfg.Root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return selftest.FindRoot(wd)
}

func recordRun(ctx context.Context, root string, cfg types.HistoryConfig, summary selftest.Summary) error {
	store, err := history.NewStore(root, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.Record(ctx, summary)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Recorded run %d\n", id)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, selftestCmd} {
		c.Flags().Bool("record", false, "store the run in the history database")
		c.Flags().String("html", "", "write an HTML report of the run to this path")
	}

	rootCmd.AddCommand(selftestCmd)
}
