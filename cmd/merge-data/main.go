// Command merge-data matches DHS respondents against the state-year
// conflict panel, labels treatment groups, and writes the analysis dataset.
// It expects acled-process to have run first.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/jarretangbazo/economics-senior-thesis/internal/config"
	"github.com/jarretangbazo/economics-senior-thesis/internal/infrastructure"
	"github.com/jarretangbazo/economics-senior-thesis/internal/runner"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the configuration file")
	workers := flag.Int("workers", 0, "exposure matcher parallelism (0 = one per CPU)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}

	paths, err := config.NewPaths(cfg.Paths)
	if err != nil {
		logger.Error("failed to resolve paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("failed to create output directories", "error", err)
		os.Exit(1)
	}

	manager := runner.NewManager(logger,
		&runner.LoadStateYearStage{Paths: paths, Logger: logger},
		&runner.MergeStage{Paths: paths, Logger: logger, Workers: *workers},
	)

	if _, err := manager.Run(context.Background()); err != nil {
		logger.Error("survey merge failed", "error", err)
		os.Exit(1)
	}
}
