package main

import (
	"context"
	"fmt"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/config"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/source"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/report"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/repeating"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/storage"
)

func newRootCmd() *cobra.Command {
	cfg := config.FromEnv()
	intervalSeconds := int(cfg.Interval / time.Second)

	rootCmd := &cobra.Command{
		Use:           "telemetry",
		Short:         "Samples host CPU and memory usage during a CI job",
		Version:       fmt.Sprintf("%s (built %s, commit %s)", buildVersion, buildDate, buildCommit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loggers.SetLevel(cfg.LogLevel); err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if intervalSeconds > 0 {
				cfg.Interval = time.Duration(intervalSeconds) * time.Second
			}
			if cfg.Iterations <= 0 {
				cfg.Iterations = config.DefaultIterations
			}
			return collect(cmd.Context(), cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"Log level. One of debug, info, warn, error.")
	rootCmd.PersistentFlags().StringVar(&cfg.StoreFile, "data-file", cfg.StoreFile,
		"Where the collected snapshot is written")
	rootCmd.PersistentFlags().StringVar(&cfg.HashKey, "key", cfg.HashKey,
		"Key used to sign and verify the snapshot")
	rootCmd.PersistentFlags().StringVar(&cfg.SummaryFile, "summary-file", cfg.SummaryFile,
		"Step summary file the report is appended to")
	rootCmd.Flags().IntVar(&intervalSeconds, "interval", intervalSeconds,
		"Seconds between samples")
	rootCmd.Flags().IntVar(&cfg.Iterations, "iterations", cfg.Iterations,
		"Maximum number of samples")
	rootCmd.Flags().StringVar(&cfg.Source, "source", cfg.Source,
		"Counter source. One of procfs, gopsutil.")

	rootCmd.AddCommand(newSummaryCmd(&cfg))
	return rootCmd
}

// collect samples until the iteration cap or a termination signal.
// A normal finish also writes the step summary; an interrupted run leaves that to the summary command.
func collect(ctx context.Context, cfg config.Config) error {
	src, err := source.New(cfg.Source)
	if err != nil {
		return err
	}
	a := agent.NewAgent(cfg, src, storage.NewFileStorage(cfg.StoreFile, cfg.HashKey))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	var (
		state       repeating.State
		interrupted bool
	)
	g.Go(func() error {
		defer cancel()
		var err error
		state, err = a.Run(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		interrupted, err = a.Termination.Listen(gctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if interrupted || state == repeating.Cancelled {
		loggers.InfoLogger.Printf("interrupted, snapshot left at %s", cfg.StoreFile)
		return nil
	}
	if err := report.WriteStepSummary(cfg.SummaryFile, report.NewSummary(a.Termination.Snapshot())); err != nil {
		return err
	}
	loggers.InfoLogger.Println("Report written to step summary")
	return nil
}
