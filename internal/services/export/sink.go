// Package export publishes a kubeconfig file to later steps.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"kubesetctx/internal/domain"
	apperrors "kubesetctx/internal/errors"
)

const (
	// KubeconfigEnvVar is read by kubectl and client libraries.
	KubeconfigEnvVar = "KUBECONFIG"

	kubeconfigMode os.FileMode = 0o600
)

// Sink restricts a kubeconfig file to its owner and exports its path.
type Sink struct {
	fs     domain.FileSystemAdapter
	env    domain.EnvironmentSetter
	logger *slog.Logger
}

// NewSink creates a new export sink.
func NewSink(fs domain.FileSystemAdapter, env domain.EnvironmentSetter, logger *slog.Logger) *Sink {
	return &Sink{
		fs:     fs,
		env:    env,
		logger: logger,
	}
}

// Publish may be called repeatedly with the same path.
func (s *Sink) Publish(ctx context.Context, path string) error {
	if err := s.fs.Chmod(path, kubeconfigMode); err != nil {
		return apperrors.NewFilesystemError("chmod", path, err)
	}

	if err := s.env.SetEnv(KubeconfigEnvVar, path); err != nil {
		return fmt.Errorf("failed to export %s: %w", KubeconfigEnvVar, err)
	}

	s.logger.DebugContext(ctx, "Exported kubeconfig", "env", KubeconfigEnvVar, "path", path)
	return nil
}
