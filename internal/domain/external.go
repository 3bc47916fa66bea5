package domain

import "context"

// ToolLocator resolves the path of an executable.
type ToolLocator interface {
	Locate(ctx context.Context, name string, requireElevated bool) (string, error)
}

// CommandRunner runs an external command to completion.
// The error is reserved for failures to start; a non-zero exit is reported
// through the exit code.
type CommandRunner interface {
	Run(ctx context.Context, toolPath string, args []string) (int, error)
}

// ProcessStarter starts a long-running external command without waiting for it.
type ProcessStarter interface {
	Start(ctx context.Context, toolPath string, args []string) error
}

// SecretReader reads a secret value, prompting interactively when possible.
type SecretReader interface {
	ReadSecret(ctx context.Context, prompt string) (string, error)
	IsInteractive() bool
}

// ReadinessProber checks that an HTTP endpoint answers.
type ReadinessProber interface {
	Probe(ctx context.Context, url string) error
}
