// Package process locates and runs external command line tools.
package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	apperrors "kubesetctx/internal/errors"
)

// sensitiveFlags have their following argument redacted in logs.
//
//nolint:gochecknoglobals // Package-level lookup table
var sensitiveFlags = map[string]bool{
	"--token":         true,
	"--client-secret": true,
	"-p":              true,
	"--password":      true,
}

// Locator finds executables on PATH.
type Locator struct {
	lookPath func(string) (string, error)
	geteuid  func() int
}

// NewLocator creates a new tool locator.
func NewLocator() *Locator {
	return &Locator{
		lookPath: exec.LookPath,
		geteuid:  os.Geteuid,
	}
}

// Locate returns the absolute path of name.
func (l *Locator) Locate(_ context.Context, name string, requireElevated bool) (string, error) {
	if requireElevated && l.geteuid() != 0 {
		return "", apperrors.NewValidationError("tool", name, "elevated", "locating this tool requires elevated privileges")
	}

	path, err := l.lookPath(name)
	if err != nil {
		return "", apperrors.NewToolNotFoundError(name, err)
	}
	return path, nil
}

// Runner executes commands and streams their output.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRunner creates a new command runner.
func NewRunner(stdout, stderr io.Writer, logger *slog.Logger) *Runner {
	return &Runner{
		stdout: stdout,
		stderr: stderr,
		logger: logger,
	}
}

// Run executes toolPath with args and waits for it to exit.
func (r *Runner) Run(ctx context.Context, toolPath string, args []string) (int, error) {
	r.logger.DebugContext(ctx, "Executing command", "tool", toolPath, "args", RedactArgs(args))

	cmd := exec.CommandContext(ctx, toolPath, args...)
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		r.logger.DebugContext(ctx, "Command exited with non-zero status", "tool", toolPath, "exit_code", code)
		return code, nil
	}

	return -1, fmt.Errorf("failed to run %s: %w", toolPath, err)
}

// Starter launches detached background processes.
type Starter struct {
	logger *slog.Logger
}

// NewStarter creates a new process starter.
func NewStarter(logger *slog.Logger) *Starter {
	return &Starter{logger: logger}
}

// Start launches toolPath and returns once the process exists. The process
// is not bound to ctx and keeps running after this program exits.
func (s *Starter) Start(ctx context.Context, toolPath string, args []string) error {
	s.logger.DebugContext(ctx, "Starting background command", "tool", toolPath, "args", RedactArgs(args))

	cmd := exec.Command(toolPath, args...) //nolint:noctx // Detached on purpose
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", toolPath, err)
	}

	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("failed to release %s process: %w", toolPath, err)
	}

	s.logger.DebugContext(ctx, "Background command started", "tool", toolPath, "pid", pid)
	return nil
}

// RedactArgs hides values following sensitive flags.
func RedactArgs(args []string) string {
	out := make([]string, len(args))
	for i, arg := range args {
		if i > 0 && sensitiveFlags[args[i-1]] {
			out[i] = "***"
			continue
		}
		out[i] = arg
	}
	return strings.Join(out, " ")
}
