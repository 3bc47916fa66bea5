package cmd

import (
	"kubesetctx/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// inputFlag describes one run input exposed as a persistent flag.
type inputFlag struct {
	name    string
	usage   string
	boolean bool
}

//nolint:gochecknoglobals // Package-level flag table
var inputFlags = []inputFlag{
	{name: config.KeyClusterType, usage: "Cluster type: generic, aks or arc (required)"},
	{name: config.KeyResourceGroup, usage: "Azure resource group of the cluster"},
	{name: config.KeyClusterName, usage: "Name of the cluster"},
	{name: config.KeySubscription, usage: "Azure subscription ID"},
	{name: config.KeyAdmin, usage: "Fetch admin credentials (AKS)", boolean: true},
	{name: config.KeyContext, usage: "Context to make current in the kubeconfig"},
	{name: config.KeyUseAzSetContext, usage: "Let az set the current context (AKS)", boolean: true},
	{name: config.KeyUseKubelogin, usage: "Convert the kubeconfig for kubelogin (AKS, requires --use-az-set-context)", boolean: true},
	{name: config.KeyMethod, usage: "Authentication method: kubeconfig, service-account or service-principal"},
	{name: config.KeyKubeconfig, usage: "Kubeconfig contents (generic, kubeconfig method)"},
	{name: config.KeyKubeconfigEncoding, usage: "Encoding of --kubeconfig: plaintext or base64"},
	{name: config.KeyK8sURL, usage: "API server URL (generic, service-account method)"},
	{name: config.KeyK8sSecret, usage: "Service account secret YAML (generic, service-account method)"},
	{name: config.KeyToken, usage: "Service account token (arc, service-account method)"},
	{name: config.KeyAzureCredential, usage: "Azure SDK credential: default, cli, client-secret, workload-identity or managed-identity"},
	{name: config.KeyTenantID, usage: "Azure tenant ID"},
	{name: config.KeyClientID, usage: "Azure client ID"},
	{name: config.KeyClientSecret, usage: "Azure client secret"},
	{name: config.KeyArcTimeout, usage: "Maximum wait for the Arc proxy kubeconfig (default 120s)"},
	{name: config.KeyTempDir, usage: "Directory for the exported kubeconfig (default $RUNNER_TEMP or the OS temp dir)"},
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	addInputFlags(rootCmd)
}

func addInputFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	for _, f := range inputFlags {
		if f.boolean {
			flags.Bool(f.name, false, f.usage)
		} else {
			flags.String(f.name, "", f.usage)
		}
		cobra.CheckErr(viper.BindPFlag(f.name, flags.Lookup(f.name)))
	}
}

// loadInputs resolves the inputs from flags, environment and config file.
func loadInputs() (*config.Inputs, error) {
	return config.FromViper(viper.GetViper())
}
