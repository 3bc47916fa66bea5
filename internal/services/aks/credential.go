// Package aks acquires AKS kubeconfigs through the Azure Resource Manager API.
package aks

import (
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	apperrors "kubesetctx/internal/errors"
)

// Credential modes accepted by NewCredential.
const (
	CredentialDefault          = "default"
	CredentialCLI              = "cli"
	CredentialClientSecret     = "client-secret"
	CredentialWorkloadIdentity = "workload-identity"
	CredentialManagedIdentity  = "managed-identity"
)

// CredentialOptions selects and configures an Azure token credential.
type CredentialOptions struct {
	Mode         string
	TenantID     string
	ClientID     string
	ClientSecret string
}

// NewCredential builds the token credential for opts.Mode. An empty mode is
// CredentialDefault.
func NewCredential(opts CredentialOptions) (azcore.TokenCredential, error) {
	var (
		cred azcore.TokenCredential
		err  error
	)

	switch mode := strings.ToLower(strings.TrimSpace(opts.Mode)); mode {
	case "", CredentialDefault:
		cred, err = azidentity.NewDefaultAzureCredential(nil)
	case CredentialCLI:
		cred, err = azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{
			TenantID: opts.TenantID,
		})
	case CredentialClientSecret:
		if opts.TenantID == "" {
			return nil, apperrors.NewMissingInputError("tenant-id")
		}
		if opts.ClientID == "" {
			return nil, apperrors.NewMissingInputError("client-id")
		}
		if opts.ClientSecret == "" {
			return nil, apperrors.NewMissingInputError("client-secret")
		}
		cred, err = azidentity.NewClientSecretCredential(opts.TenantID, opts.ClientID, opts.ClientSecret, nil)
	case CredentialWorkloadIdentity:
		cred, err = azidentity.NewWorkloadIdentityCredential(&azidentity.WorkloadIdentityCredentialOptions{
			TenantID: opts.TenantID,
			ClientID: opts.ClientID,
		})
	case CredentialManagedIdentity:
		miOpts := &azidentity.ManagedIdentityCredentialOptions{}
		if opts.ClientID != "" {
			miOpts.ID = azidentity.ClientID(opts.ClientID)
		}
		cred, err = azidentity.NewManagedIdentityCredential(miOpts)
	default:
		return nil, apperrors.NewValidationError("azure-credential", opts.Mode, "supported_values",
			"azure credential must be one of: default, cli, client-secret, workload-identity, managed-identity")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s azure credential: %w", opts.Mode, err)
	}
	return cred, nil
}
