package domain

import "context"

// KubeconfigFetcher acquires a raw kubeconfig document for one backend.
type KubeconfigFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// ContextSetter sets the current context of an on-disk kubeconfig through
// an external tool and reports the tool's exit code.
type ContextSetter interface {
	SetContext(
		ctx context.Context,
		admin bool,
		kubeconfigPath, resourceGroup, clusterName, subscription string,
	) (int, error)
}

// TokenPluginLogin configures a credential exec plugin in a kubeconfig.
type TokenPluginLogin interface {
	Login(ctx context.Context, kubeconfigPath string, priorExitCode int) error
}

// KubeconfigPublisher makes an on-disk kubeconfig available to later steps.
type KubeconfigPublisher interface {
	Publish(ctx context.Context, path string) error
}
