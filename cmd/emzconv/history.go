// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cspanachis/emzconv/internal/history"
	"github.com/cspanachis/emzconv/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past conversion runs",
	Long: `History lists recent conversion runs from the local history database,
newest first. Use --run with a run ID to show the per-file outcomes of a
single run.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("run", "", "show per-file outcomes for the given run ID")
	historyCmd.Flags().Int("limit", 0, "maximum number of runs to list (default 20)")
	historyCmd.Flags().String("history-dir", "", "run-history directory (default history)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(types.HistoryConfig{
		HistoryDir: flagOrConfig(cmd, "history-dir", "history.history_dir", ""),
		MaxResults: viper.GetInt("history.max_results"),
	})
	if err != nil {
		return err
	}
	defer store.Close()

	if runID, _ := cmd.Flags().GetString("run"); runID != "" {
		return showRunFiles(store, runID)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %-9s  %-6s  %s\n",
		"Run", "Started", "Format", "Converted", "Failed", "Input")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-6s  %-9d  %-6d  %s\n",
			r.ID, r.StartedAt.Local().Format(time.DateTime),
			r.OutputFormat, r.Converted, r.Failed, r.InputDir)
	}
	return nil
}

func showRunFiles(store *history.Store, runID string) error {
	outcomes, err := store.RunFiles(context.Background(), runID)
	if err != nil {
		return err
	}

	for _, o := range outcomes {
		if o.Failed() {
			fmt.Fprintf(os.Stdout, "failed:    %s (%s)\n", o.Name, o.Reason)
			continue
		}
		fmt.Fprintf(os.Stdout, "converted: %s -> %s\n", o.Name, o.OutputPath)
	}
	return nil
}
