// Package azure drives the Azure CLI to fetch AKS credentials and prepare
// the resulting kubeconfig.
package azure

// Target identifies an AKS cluster and the credential set to fetch.
type Target struct {
	ResourceGroup string
	ClusterName   string
	Subscription  string
	Admin         bool
}

// argSegment appends one conditional part of a command line.
type argSegment func(args []string) []string

func buildArgs(segments ...argSegment) []string {
	args := make([]string, 0, 16)
	for _, segment := range segments {
		args = segment(args)
	}
	return args
}

func getCredentialsSegment() argSegment {
	return func(args []string) []string {
		return append(args, "aks", "get-credentials")
	}
}

func clusterSegment(resourceGroup, clusterName string) argSegment {
	return func(args []string) []string {
		return append(args, "--resource-group", resourceGroup, "--name", clusterName)
	}
}

func fileSegment(path string) argSegment {
	return func(args []string) []string {
		return append(args, "-f", path)
	}
}

func overwriteSegment() argSegment {
	return func(args []string) []string {
		return append(args, "--overwrite-existing")
	}
}

func contextSegment(contextName string) argSegment {
	return func(args []string) []string {
		return append(args, "--context", contextName)
	}
}

// subscriptionSegment must precede adminSegment.
func subscriptionSegment(subscription string) argSegment {
	return func(args []string) []string {
		if subscription == "" {
			return args
		}
		return append(args, "--subscription", subscription)
	}
}

func adminSegment(admin bool) argSegment {
	return func(args []string) []string {
		if !admin {
			return args
		}
		return append(args, "--admin")
	}
}

// CredentialsArgs returns the az arguments that write the cluster's
// credentials to destinationPath.
func CredentialsArgs(target Target, destinationPath string) []string {
	return buildArgs(
		getCredentialsSegment(),
		clusterSegment(target.ResourceGroup, target.ClusterName),
		fileSegment(destinationPath),
		subscriptionSegment(target.Subscription),
		adminSegment(target.Admin),
	)
}

// SetContextArgs returns the az arguments that rewrite kubeconfigPath with
// the cluster's context selected.
func SetContextArgs(target Target, kubeconfigPath string) []string {
	return buildArgs(
		getCredentialsSegment(),
		clusterSegment(target.ResourceGroup, target.ClusterName),
		fileSegment(kubeconfigPath),
		overwriteSegment(),
		contextSegment(ContextName(target)),
		subscriptionSegment(target.Subscription),
		adminSegment(target.Admin),
	)
}

// ContextName is the context az writes for target.
func ContextName(target Target) string {
	if target.Admin {
		return target.ClusterName + "-admin"
	}
	return target.ClusterName
}
