package azure

import (
	"context"
	"fmt"
	"log/slog"

	"kubesetctx/internal/domain"
	apperrors "kubesetctx/internal/errors"
)

// State is a step of a credential negotiation.
type State string

const (
	StateStart              State = "start"
	StateCredentialsFetched State = "credentials_fetched"
	StateContextDelegated   State = "context_delegated"
	StateContextLocal       State = "context_local"
	StateLoginDone          State = "login_done"
	StateDone               State = "done"
	StateFailed             State = "failed"
)

// Request holds the inputs of one negotiation. It is not modified.
type Request struct {
	Target
	// DelegateContext sets the context with az instead of editing the file.
	DelegateContext bool
	// TokenPlugin converts the kubeconfig for kubelogin after a delegated context set.
	TokenPlugin bool
	// ContextName is applied to the file when the context is not delegated.
	ContextName     string
	DestinationPath string
}

// Result reports how far a negotiation got.
type Result struct {
	State State
	// Path lists the states visited, in order, excluding StateFailed.
	Path            []State
	ContextExitCode int
}

func (r *Result) enter(s State) {
	r.State = s
	r.Path = append(r.Path, s)
}

// ContextEditor sets the current context of a raw kubeconfig document.
type ContextEditor interface {
	SetContext(ctx context.Context, raw, contextName string) (string, error)
}

// Negotiator fetches AKS credentials with the Azure CLI and publishes the
// resulting kubeconfig.
type Negotiator struct {
	locator       domain.ToolLocator
	runner        domain.CommandRunner
	contextSetter domain.ContextSetter
	login         domain.TokenPluginLogin
	editor        ContextEditor
	fs            domain.FileSystemAdapter
	publisher     domain.KubeconfigPublisher
	logger        *slog.Logger
}

// NewNegotiator creates a new negotiator.
func NewNegotiator(
	locator domain.ToolLocator,
	runner domain.CommandRunner,
	contextSetter domain.ContextSetter,
	login domain.TokenPluginLogin,
	editor ContextEditor,
	fs domain.FileSystemAdapter,
	publisher domain.KubeconfigPublisher,
	logger *slog.Logger,
) *Negotiator {
	return &Negotiator{
		locator:       locator,
		runner:        runner,
		contextSetter: contextSetter,
		login:         login,
		editor:        editor,
		fs:            fs,
		publisher:     publisher,
		logger:        logger,
	}
}

// Negotiate runs one negotiation to completion. On error the returned
// result is in StateFailed and the partially written kubeconfig is left in
// place.
func (n *Negotiator) Negotiate(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}
	result.enter(StateStart)

	if err := n.run(ctx, req, result); err != nil {
		result.State = StateFailed
		return result, err
	}
	return result, nil
}

func (n *Negotiator) run(ctx context.Context, req Request, result *Result) error {
	logger := n.logger.With("cluster_name", req.ClusterName, "resource_group", req.ResourceGroup)

	azPath, err := n.locator.Locate(ctx, AzureCLI, false)
	if err != nil {
		return err
	}

	args := CredentialsArgs(req.Target, req.DestinationPath)
	logger.DebugContext(ctx, "Fetching AKS credentials", "admin", req.Admin, "kubeconfig", req.DestinationPath)

	code, err := n.runner.Run(ctx, azPath, args)
	if err != nil {
		return fmt.Errorf("failed to fetch AKS credentials: %w", err)
	}
	if code != 0 {
		return apperrors.NewExternalCommandError(AzureCLI, args, code, "")
	}
	result.enter(StateCredentialsFetched)

	if req.DelegateContext {
		code, err := n.contextSetter.SetContext(ctx,
			req.Admin, req.DestinationPath, req.ResourceGroup, req.ClusterName, req.Subscription)
		if err != nil {
			return err
		}
		result.ContextExitCode = code
		result.enter(StateContextDelegated)

		if code != 0 && !req.TokenPlugin {
			logger.WarnContext(ctx, "Setting context with az failed", "exit_code", code)
		}
	} else {
		if err := n.applyLocalContext(ctx, req); err != nil {
			return err
		}
		result.enter(StateContextLocal)
	}

	if req.DelegateContext && req.TokenPlugin {
		if err := n.login.Login(ctx, req.DestinationPath, result.ContextExitCode); err != nil {
			return err
		}
		result.enter(StateLoginDone)
	}

	if err := n.publisher.Publish(ctx, req.DestinationPath); err != nil {
		return err
	}
	result.enter(StateDone)

	logger.InfoContext(ctx, "AKS kubeconfig ready", "kubeconfig", req.DestinationPath)
	return nil
}

func (n *Negotiator) applyLocalContext(ctx context.Context, req Request) error {
	if req.ContextName == "" {
		n.logger.DebugContext(ctx, "Can't set context because context is unspecified.")
		return nil
	}

	raw, err := n.fs.ReadFile(req.DestinationPath)
	if err != nil {
		return apperrors.NewFilesystemError("read", req.DestinationPath, err)
	}

	updated, err := n.editor.SetContext(ctx, string(raw), req.ContextName)
	if err != nil {
		return err
	}

	if err := n.fs.WriteFile(req.DestinationPath, []byte(updated), 0o600); err != nil {
		return apperrors.NewFilesystemError("write", req.DestinationPath, err)
	}
	return nil
}
