package azure

import (
	"context"
	"fmt"
	"log/slog"

	"kubesetctx/internal/domain"
	apperrors "kubesetctx/internal/errors"
)

const (
	// AzureCLI is the Azure CLI executable name.
	AzureCLI = "az"
	// Kubelogin is the Azure token plugin executable name.
	Kubelogin = "kubelogin"
)

// ContextSetter selects the cluster context in a kubeconfig file by
// re-running az aks get-credentials against it.
type ContextSetter struct {
	locator domain.ToolLocator
	runner  domain.CommandRunner
	logger  *slog.Logger
}

// NewContextSetter creates a new az backed context setter.
func NewContextSetter(locator domain.ToolLocator, runner domain.CommandRunner, logger *slog.Logger) *ContextSetter {
	return &ContextSetter{
		locator: locator,
		runner:  runner,
		logger:  logger,
	}
}

// SetContext returns the exit code of the az invocation. The error is only
// set when az could not be located or started.
func (s *ContextSetter) SetContext(
	ctx context.Context,
	admin bool,
	kubeconfigPath, resourceGroup, clusterName, subscription string,
) (int, error) {
	azPath, err := s.locator.Locate(ctx, AzureCLI, false)
	if err != nil {
		return -1, err
	}

	target := Target{
		ResourceGroup: resourceGroup,
		ClusterName:   clusterName,
		Subscription:  subscription,
		Admin:         admin,
	}

	s.logger.DebugContext(ctx, "Setting context with az", "context", ContextName(target), "kubeconfig", kubeconfigPath)

	code, err := s.runner.Run(ctx, azPath, SetContextArgs(target, kubeconfigPath))
	if err != nil {
		return -1, fmt.Errorf("failed to set context: %w", err)
	}
	return code, nil
}

// KubeloginConverter rewrites a kubeconfig to obtain tokens through the
// kubelogin exec plugin using the Azure CLI login.
type KubeloginConverter struct {
	locator domain.ToolLocator
	runner  domain.CommandRunner
	logger  *slog.Logger
}

// NewKubeloginConverter creates a new kubelogin step.
func NewKubeloginConverter(locator domain.ToolLocator, runner domain.CommandRunner, logger *slog.Logger) *KubeloginConverter {
	return &KubeloginConverter{
		locator: locator,
		runner:  runner,
		logger:  logger,
	}
}

// Login converts kubeconfigPath. A non-zero priorExitCode means the context
// was never set and the conversion is refused.
func (k *KubeloginConverter) Login(ctx context.Context, kubeconfigPath string, priorExitCode int) error {
	if priorExitCode != 0 {
		return apperrors.NewExternalCommandError(AzureCLI, []string{"aks", "get-credentials"}, priorExitCode,
			"context set did not succeed, skipping kubelogin")
	}

	kubeloginPath, err := k.locator.Locate(ctx, Kubelogin, false)
	if err != nil {
		return err
	}

	args := []string{"convert-kubeconfig", "-l", "azurecli", "--kubeconfig", kubeconfigPath}
	code, err := k.runner.Run(ctx, kubeloginPath, args)
	if err != nil {
		return fmt.Errorf("failed to run kubelogin: %w", err)
	}
	if code != 0 {
		return apperrors.NewExternalCommandError(Kubelogin, args, code, "")
	}

	k.logger.DebugContext(ctx, "Converted kubeconfig for kubelogin", "kubeconfig", kubeconfigPath)
	return nil
}
