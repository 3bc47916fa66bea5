package app

import (
	"context"
	"os"
	"time"

	"kubesetctx/internal/adapters/environment"
	"kubesetctx/internal/adapters/filesystem"
	"kubesetctx/internal/adapters/http"
	"kubesetctx/internal/adapters/process"
	"kubesetctx/internal/adapters/terminal"
	"kubesetctx/internal/adapters/watch"
	"kubesetctx/internal/logging"
)

const (
	// probeTimeout bounds a single readiness request to the Arc proxy.
	probeTimeout = 10 * time.Second
	// probeRetries is the number of retries after the first probe attempt.
	probeRetries = 5
)

// NewAppWithConfig creates a new App with the given configuration, wiring all dependencies.
func NewAppWithConfig(ctx context.Context, cfg *Config) (*App, error) {
	// Create logger.
	logger := logging.NewLogger(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	})

	toolOutput := cfg.ToolOutput
	if toolOutput == nil {
		toolOutput = os.Stderr
	}

	// The Arc proxy serves a self-signed certificate on localhost.
	prober := http.NewAdapter(probeTimeout, probeRetries, true, logger)

	logger.DebugContext(ctx, "Initializing kubesetctx",
		"logLevel", string(cfg.LogLevel),
		"logFormat", cfg.LogFormat,
		"verbose", cfg.Verbose)

	return &App{
		FileSystem:  filesystem.New(),
		Environment: environment.New(logger),
		Locator:     process.NewLocator(),
		Runner:      process.NewRunner(toolOutput, os.Stderr, logger),
		Starter:     process.NewStarter(logger),
		Waiter:      watch.NewWaiter(logger),
		Secrets:     terminal.NewAdapter(os.Stdin, os.Stderr, ""),
		Prober:      prober,
		Logger:      logger,
		Config:      cfg,
	}, nil
}
