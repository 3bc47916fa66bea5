// Package arc acquires kubeconfigs for Azure Arc enabled clusters through
// the connectedk8s cluster connect proxy.
package arc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/domain"
	apperrors "kubesetctx/internal/errors"
	"kubesetctx/internal/kubeconfig"
)

// DefaultTimeout bounds the wait for the proxy kubeconfig.
const DefaultTimeout = 120 * time.Second

const azureCLI = "az"

// Options holds the Arc backend inputs.
type Options struct {
	ResourceGroup string
	ClusterName   string
	Method        cluster.Method
	// Token is the service account token used with MethodServiceAccount.
	Token   string
	TempDir string
	Timeout time.Duration
	Now     func() time.Time
}

// Dependencies are the collaborators a Fetcher drives.
type Dependencies struct {
	Locator domain.ToolLocator
	Runner  domain.CommandRunner
	Starter domain.ProcessStarter
	Waiter  domain.FileWaiter
	FS      domain.FileSystemAdapter
	Prober  domain.ReadinessProber
	Secrets domain.SecretReader
}

// Fetcher starts a cluster connect proxy and returns the kubeconfig it writes.
type Fetcher struct {
	opts   Options
	deps   Dependencies
	logger *slog.Logger
}

// NewFetcher creates a new Arc fetcher.
func NewFetcher(opts Options, deps Dependencies, logger *slog.Logger) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{
		opts:   opts,
		deps:   deps,
		logger: logger,
	}
}

// Fetch implements domain.KubeconfigFetcher. The proxy keeps running after
// Fetch returns.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if f.opts.ResourceGroup == "" {
		return "", apperrors.NewMissingInputError("resource-group")
	}
	if f.opts.ClusterName == "" {
		return "", apperrors.NewMissingInputError("cluster-name")
	}

	proxyAuth, err := f.proxyAuthArgs(ctx)
	if err != nil {
		return "", err
	}

	azPath, err := f.deps.Locator.Locate(ctx, azureCLI, false)
	if err != nil {
		return "", err
	}

	extensionArgs := []string{"extension", "add", "-n", "connectedk8s"}
	code, err := f.deps.Runner.Run(ctx, azPath, extensionArgs)
	if err != nil {
		return "", fmt.Errorf("failed to install connectedk8s extension: %w", err)
	}
	if code != 0 {
		return "", apperrors.NewExternalCommandError(azureCLI, extensionArgs, code, "")
	}

	tempDir := f.opts.TempDir
	if tempDir == "" {
		tempDir = f.deps.FS.TempDir()
	}
	path := filepath.Join(tempDir, fmt.Sprintf("arc_kubeconfig_%d", f.opts.Now().UnixMilli()))

	proxyArgs := []string{"connectedk8s", "proxy", "-n", f.opts.ClusterName, "-g", f.opts.ResourceGroup}
	proxyArgs = append(proxyArgs, proxyAuth...)
	proxyArgs = append(proxyArgs, "-f", path)

	if err := f.deps.Starter.Start(ctx, azPath, proxyArgs); err != nil {
		return "", err
	}

	f.logger.InfoContext(ctx, "Waiting for Arc proxy kubeconfig", "path", path, "timeout", f.opts.Timeout)
	if err := f.deps.Waiter.WaitForFile(ctx, path, f.opts.Timeout); err != nil {
		return "", fmt.Errorf("arc proxy did not produce a kubeconfig: %w", err)
	}

	raw, err := f.deps.FS.ReadFile(path)
	if err != nil {
		return "", apperrors.NewFilesystemError("read", path, err)
	}

	if err := f.awaitProxy(ctx, string(raw)); err != nil {
		return "", err
	}

	return string(raw), nil
}

func (f *Fetcher) proxyAuthArgs(ctx context.Context) ([]string, error) {
	switch f.opts.Method {
	case cluster.MethodServiceAccount:
		token := f.opts.Token
		if token == "" && f.deps.Secrets != nil && f.deps.Secrets.IsInteractive() {
			var err error
			token, err = f.deps.Secrets.ReadSecret(ctx, "Service account token: ")
			if err != nil {
				return nil, err
			}
		}
		if token == "" {
			return nil, apperrors.NewMissingInputError("token")
		}
		return []string{"--token", token}, nil
	case cluster.MethodServicePrincipal:
		return nil, nil
	case cluster.MethodUnspecified:
		f.logger.WarnContext(ctx, "Defaulting to kubeconfig method")
		fallthrough
	default:
		return nil, apperrors.NewValidationError("method", f.opts.Method.String(), "supported_values",
			"kubeconfig method not supported for Arc cluster")
	}
}

// awaitProxy probes the API server of the proxy kubeconfig's current context.
func (f *Fetcher) awaitProxy(ctx context.Context, raw string) error {
	doc, err := kubeconfig.Parse(raw)
	if err != nil {
		return err
	}

	server, ok := doc.CurrentServer()
	if !ok {
		f.logger.DebugContext(ctx, "Proxy kubeconfig has no current server, skipping readiness probe")
		return nil
	}

	return f.deps.Prober.Probe(ctx, server)
}
