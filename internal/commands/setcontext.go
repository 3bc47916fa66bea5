package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/domain"
	"kubesetctx/internal/errors"
	"kubesetctx/internal/services/azure"
)

// KubeconfigResolver returns the raw kubeconfig for a cluster type.
type KubeconfigResolver interface {
	Resolve(ctx context.Context, t cluster.Type) (string, error)
}

// CredentialNegotiator fetches AKS credentials into a kubeconfig file.
type CredentialNegotiator interface {
	Negotiate(ctx context.Context, req azure.Request) (*azure.Result, error)
}

// ContextEditor sets the current context of a raw kubeconfig.
type ContextEditor interface {
	SetContext(ctx context.Context, raw, contextName string) (string, error)
}

// SetContextCommand resolves a kubeconfig, selects a context and exports it.
type SetContextCommand struct {
	resolver   KubeconfigResolver
	negotiator CredentialNegotiator
	editor     ContextEditor
	fs         domain.FileSystemAdapter
	publisher  domain.KubeconfigPublisher
	now        func() time.Time
	logger     *slog.Logger
}

// NewSetContextCommand creates a new set-context command.
func NewSetContextCommand(
	resolver KubeconfigResolver,
	negotiator CredentialNegotiator,
	editor ContextEditor,
	fs domain.FileSystemAdapter,
	publisher domain.KubeconfigPublisher,
	now func() time.Time,
	logger *slog.Logger,
) *SetContextCommand {
	if now == nil {
		now = time.Now
	}
	return &SetContextCommand{
		resolver:   resolver,
		negotiator: negotiator,
		editor:     editor,
		fs:         fs,
		publisher:  publisher,
		now:        now,
		logger:     logger,
	}
}

// SetContextRequest contains the parameters for the set-context command.
type SetContextRequest struct {
	ClusterType     string
	ResourceGroup   string
	ClusterName     string
	Subscription    string
	Admin           bool
	Context         string
	UseAzSetContext bool
	UseKubelogin    bool
	// TempDir is the scoped temp root. The OS temp dir is used when empty.
	TempDir string
}

// Execute runs the set-context command and returns the exported kubeconfig path.
func (c *SetContextCommand) Execute(ctx context.Context, req SetContextRequest) (string, error) {
	if strings.TrimSpace(req.ClusterType) == "" {
		return "", errors.NewMissingInputError("cluster-type")
	}

	clusterType := cluster.ParseType(req.ClusterType)
	path := c.destinationPath(req.TempDir)

	logger := c.logger.With("cluster_type", clusterType.String(), "kubeconfig", path)

	if clusterType == cluster.AKS {
		if err := c.runAKS(ctx, req, path); err != nil {
			return "", err
		}
		return path, nil
	}

	raw, err := c.resolver.Resolve(ctx, clusterType)
	if err != nil {
		return "", fmt.Errorf("failed to get kubeconfig: %w", err)
	}

	updated, err := c.editor.SetContext(ctx, raw, req.Context)
	if err != nil {
		return "", err
	}

	if err := c.fs.WriteFile(path, []byte(updated), 0o600); err != nil {
		return "", errors.NewFilesystemError("write", path, err)
	}

	if err := c.publisher.Publish(ctx, path); err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "Kubeconfig exported")
	return path, nil
}

func (c *SetContextCommand) runAKS(ctx context.Context, req SetContextRequest, path string) error {
	if req.ResourceGroup == "" {
		return errors.NewMissingInputError("resource-group")
	}
	if req.ClusterName == "" {
		return errors.NewMissingInputError("cluster-name")
	}

	result, err := c.negotiator.Negotiate(ctx, azure.Request{
		Target: azure.Target{
			ResourceGroup: req.ResourceGroup,
			ClusterName:   req.ClusterName,
			Subscription:  req.Subscription,
			Admin:         req.Admin,
		},
		DelegateContext: req.UseAzSetContext,
		TokenPlugin:     req.UseKubelogin,
		ContextName:     req.Context,
		DestinationPath: path,
	})
	if err != nil {
		return fmt.Errorf("failed to negotiate AKS credentials: %w", err)
	}

	c.logger.DebugContext(ctx, "AKS negotiation finished", "state", result.State, "path", result.Path)
	return nil
}

// destinationPath is unique per run through the millisecond timestamp.
func (c *SetContextCommand) destinationPath(tempDir string) string {
	if tempDir == "" {
		tempDir = c.fs.TempDir()
	}
	return filepath.Join(tempDir, fmt.Sprintf("kubeconfig_%d", c.now().UnixMilli()))
}
