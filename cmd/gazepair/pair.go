package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gardar/gazepair/pkg/pairing"
)

var pairCmd = &cobra.Command{
	Use:   "pair [session...]",
	Short: "Write the gaze-to-word distance table of sessions",
	Long: `Pair the gaze samples of each session with the words on screen and write
<data dir>/<session>/<output file>. Sessions given as arguments replace the
configured list. Without --all only the first session is processed.`,
	RunE: runPair,
}

var (
	pairAll   bool
	pairJobs  int
	metric    string
	matching  string
	columns   string
	tolerance float64
)

func init() {
	defaults := pairing.DefaultConfig()

	pairCmd.Flags().BoolVar(&pairAll, "all", false, "process every session instead of only the first")
	pairCmd.Flags().IntVarP(&pairJobs, "jobs", "j", 1, "sessions processed in parallel")
	pairCmd.Flags().StringVar(&metric, "metric", defaults.Metric, "distance metric: legacy, rect")
	pairCmd.Flags().StringVar(&matching, "matching", defaults.Matching, "line matching: first, positional")
	pairCmd.Flags().StringVar(&columns, "columns", defaults.Columns, "column policy: strict, first")
	pairCmd.Flags().Float64Var(&tolerance, "tolerance", defaults.Tolerance, "seconds a sample may precede a transition")

	rootCmd.AddCommand(pairCmd)
}

func runPair(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = cfg.Sessions
	}
	if len(names) == 0 {
		return errors.New("no sessions given and none configured")
	}
	if !pairAll {
		names = names[:1]
	}

	pc := cfg.pairing()
	flags := cmd.Flags()
	if flags.Changed("metric") {
		pc.Metric = metric
	}
	if flags.Changed("matching") {
		pc.Matching = matching
	}
	if flags.Changed("columns") {
		pc.Columns = columns
	}
	if flags.Changed("tolerance") {
		pc.Tolerance = tolerance
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := pairing.PairAll(ctx, cfg.DataDir, names, pc, pairJobs)
	if err != nil {
		return err
	}

	if !quiet {
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d samples, %d documents -> %s\n",
				r.Session, r.Samples, r.Documents, r.OutputPath)
		}
	}
	slog.Debug("done", "sessions", len(results))
	return nil
}
