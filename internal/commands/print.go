package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/errors"
)

// PrintCommand resolves a kubeconfig and returns it without exporting it.
type PrintCommand struct {
	resolver KubeconfigResolver
	editor   ContextEditor
	logger   *slog.Logger
}

// NewPrintCommand creates a new print command.
func NewPrintCommand(resolver KubeconfigResolver, editor ContextEditor, logger *slog.Logger) *PrintCommand {
	return &PrintCommand{
		resolver: resolver,
		editor:   editor,
		logger:   logger,
	}
}

// PrintRequest contains the parameters for the print command.
type PrintRequest struct {
	ClusterType string
	Context     string
}

// Execute returns the resolved kubeconfig with the requested context applied.
func (c *PrintCommand) Execute(ctx context.Context, req PrintRequest) (string, error) {
	if strings.TrimSpace(req.ClusterType) == "" {
		return "", errors.NewMissingInputError("cluster-type")
	}

	clusterType := cluster.ParseType(req.ClusterType)
	raw, err := c.resolver.Resolve(ctx, clusterType)
	if err != nil {
		return "", fmt.Errorf("failed to get kubeconfig: %w", err)
	}

	c.logger.DebugContext(ctx, "Resolved kubeconfig", "cluster_type", clusterType.String())
	return c.editor.SetContext(ctx, raw, req.Context)
}
