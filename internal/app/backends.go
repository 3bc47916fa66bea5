package app

import (
	"time"

	"kubesetctx/internal/cluster"
	"kubesetctx/internal/commands"
	"kubesetctx/internal/config"
	"kubesetctx/internal/kubeconfig"
	"kubesetctx/internal/services/aks"
	"kubesetctx/internal/services/arc"
	"kubesetctx/internal/services/azure"
	"kubesetctx/internal/services/export"
	"kubesetctx/internal/services/generic"
)

// NewResolver creates the backend resolver for in.
func (a *App) NewResolver(in *config.Inputs) *cluster.Resolver {
	method := cluster.ParseMethod(in.Method)

	arcFetcher := arc.NewFetcher(arc.Options{
		ResourceGroup: in.ResourceGroup,
		ClusterName:   in.ClusterName,
		Method:        method,
		Token:         in.Token,
		TempDir:       in.TempDir,
		Timeout:       in.ArcTimeout,
	}, arc.Dependencies{
		Locator: a.Locator,
		Runner:  a.Runner,
		Starter: a.Starter,
		Waiter:  a.Waiter,
		FS:      a.FileSystem,
		Prober:  a.Prober,
		Secrets: a.Secrets,
	}, a.Logger)

	aksFetcher := aks.NewFetcher(aks.Options{
		ResourceGroup: in.ResourceGroup,
		ClusterName:   in.ClusterName,
		Subscription:  in.Subscription,
		Admin:         in.Admin,
		Credential: aks.CredentialOptions{
			Mode:         in.AzureCredential,
			TenantID:     in.TenantID,
			ClientID:     in.ClientID,
			ClientSecret: in.ClientSecret,
		},
	}, a.Logger)

	genericFetcher := generic.NewFetcher(generic.Options{
		Method:     method,
		Kubeconfig: in.Kubeconfig,
		Encoding:   in.KubeconfigEncoding,
		ServerURL:  in.K8sURL,
		Secret:     in.K8sSecret,
	}, a.Logger)

	return cluster.NewResolver(cluster.Fetchers{
		Arc:     arcFetcher,
		AKS:     aksFetcher,
		Generic: genericFetcher,
	}, a.Logger)
}

// NewPublisher creates the kubeconfig export sink.
func (a *App) NewPublisher() *export.Sink {
	return export.NewSink(a.FileSystem, a.Environment, a.Logger)
}

// NewNegotiator creates the Azure CLI credential negotiator.
func (a *App) NewNegotiator() *azure.Negotiator {
	return azure.NewNegotiator(
		a.Locator,
		a.Runner,
		azure.NewContextSetter(a.Locator, a.Runner, a.Logger),
		azure.NewKubeloginConverter(a.Locator, a.Runner, a.Logger),
		kubeconfig.NewEditor(a.Logger),
		a.FileSystem,
		a.NewPublisher(),
		a.Logger,
	)
}

// NewSetContextCommand creates the run entry point for in.
func (a *App) NewSetContextCommand(in *config.Inputs) *commands.SetContextCommand {
	return commands.NewSetContextCommand(
		a.NewResolver(in),
		a.NewNegotiator(),
		kubeconfig.NewEditor(a.Logger),
		a.FileSystem,
		a.NewPublisher(),
		time.Now,
		a.Logger,
	)
}

// NewPrintCommand creates the print command for in.
func (a *App) NewPrintCommand(in *config.Inputs) *commands.PrintCommand {
	return commands.NewPrintCommand(a.NewResolver(in), kubeconfig.NewEditor(a.Logger), a.Logger)
}
