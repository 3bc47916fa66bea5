package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Adapter handles secure secret input from terminal.
type Adapter struct {
	stdin  io.Reader
	stderr io.Writer
	envVar string
}

// NewAdapter creates a new terminal adapter. When envVar is set and the
// variable is non-empty, its value is returned instead of prompting.
func NewAdapter(stdin io.Reader, stderr io.Writer, envVar string) *Adapter {
	return &Adapter{
		stdin:  stdin,
		stderr: stderr,
		envVar: envVar,
	}
}

// ReadSecret reads a secret from the terminal with echo disabled.
func (a *Adapter) ReadSecret(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if a.envVar != "" {
		if value := os.Getenv(a.envVar); value != "" {
			return value, nil
		}
	}

	if !a.IsInteractive() {
		return "", errors.New("cannot read secret: non-interactive terminal")
	}

	fmt.Fprint(a.stderr, prompt)

	file, ok := a.stdin.(*os.File)
	if !ok {
		return "", errors.New("cannot read secret from non-terminal input")
	}

	secret, err := term.ReadPassword(int(file.Fd()))
	fmt.Fprintln(a.stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(secret), nil
}

// IsInteractive returns true if the terminal is interactive.
func (a *Adapter) IsInteractive() bool {
	if file, ok := a.stdin.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
