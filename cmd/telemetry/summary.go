package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/AbramovArseniy/WorkflowTelemetry/internal/agent/config"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/loggers"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/report"
	"github.com/AbramovArseniy/WorkflowTelemetry/internal/storage"
)

func newSummaryCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "summary [data-file]",
		Short: "Writes the step summary for a snapshot left by an interrupted run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			storeFile := cfg.StoreFile
			if len(args) == 1 {
				storeFile = args[0]
			}
			return summarize(storage.NewFileStorage(storeFile, cfg.HashKey), cfg.SummaryFile)
		},
	}
}

func summarize(fs *storage.FileStorage, summaryFile string) error {
	snapshot, err := fs.Load()
	if errors.Is(err, os.ErrNotExist) {
		loggers.ErrorLogger.Printf("no telemetry data found at %s", fs.StoreFile)
		return nil
	}
	if err != nil {
		return err
	}
	return report.WriteStepSummary(summaryFile, report.NewSummary(snapshot))
}
