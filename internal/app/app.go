package app

import (
	"context"
	"io"
	"log/slog"

	"kubesetctx/internal/domain"
	"kubesetctx/internal/logging"
)

// App contains all application dependencies.
type App struct {
	// File and environment operations
	FileSystem  domain.FileSystemAdapter
	Environment domain.EnvironmentSetter

	// External tool dependencies
	Locator domain.ToolLocator
	Runner  domain.CommandRunner
	Starter domain.ProcessStarter
	Waiter  domain.FileWaiter

	// I/O dependencies
	Secrets domain.SecretReader
	Prober  domain.ReadinessProber

	// Logging
	Logger *slog.Logger

	// Configuration
	Config *Config
}

// Config holds application configuration.
type Config struct {
	LogLevel  logging.LogLevel
	LogFormat string
	Verbose   bool
	// ToolOutput receives the output of external tools.
	ToolOutput io.Writer
}

// Option is a functional option for configuring the App.
type Option func(*Config)

// WithLogLevel sets the logging level.
func WithLogLevel(level logging.LogLevel) Option {
	return func(cfg *Config) {
		if cfg.Verbose {
			return
		}
		cfg.LogLevel = level
	}
}

// WithLogFormat sets the log handler format.
func WithLogFormat(format string) Option {
	return func(cfg *Config) {
		cfg.LogFormat = format
	}
}

// WithVerbose enables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(cfg *Config) {
		cfg.Verbose = verbose
		if verbose {
			cfg.LogLevel = logging.LevelDebug
		}
	}
}

// WithToolOutput redirects external tool output.
func WithToolOutput(w io.Writer) Option {
	return func(cfg *Config) {
		cfg.ToolOutput = w
	}
}

// NewApp creates a new App with the given options.
func NewApp(ctx context.Context, opts ...Option) (*App, error) {
	cfg := &Config{
		LogLevel:  logging.LevelInfo,
		LogFormat: logging.FormatText,
		Verbose:   false,
	}

	// Apply options.
	for _, opt := range opts {
		opt(cfg)
	}

	return NewAppWithConfig(ctx, cfg)
}
