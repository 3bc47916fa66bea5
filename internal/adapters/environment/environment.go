// Package environment publishes variables to the current process and, when
// running inside a GitHub Actions job, to the steps that follow.
package environment

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// githubEnvVar names the file GitHub Actions reads exported variables from.
const githubEnvVar = "GITHUB_ENV"

// Adapter sets environment variables.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new environment adapter.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// SetEnv sets key in the current process and appends it to the GITHUB_ENV
// file when one is configured.
func (a *Adapter) SetEnv(key, value string) error {
	if err := os.Setenv(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	envFile := os.Getenv(githubEnvVar)
	if envFile == "" {
		return nil
	}

	entry, err := fileCommand(key, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(envFile, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s file: %w", githubEnvVar, err)
	}
	defer f.Close()

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write %s file: %w", githubEnvVar, err)
	}

	a.logger.Debug("Exported variable to workflow environment", "key", key, "file", envFile)
	return nil
}

// fileCommand formats a multi-line safe KEY<<DELIM block.
func fileCommand(key, value string) (string, error) {
	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(key, delimiter) {
		return "", fmt.Errorf("unexpected input: name should not contain the delimiter %q", delimiter)
	}
	if strings.Contains(value, delimiter) {
		return "", fmt.Errorf("unexpected input: value should not contain the delimiter %q", delimiter)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delimiter, value, delimiter), nil
}
