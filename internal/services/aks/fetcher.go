package aks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerservice/armcontainerservice/v6"

	apperrors "kubesetctx/internal/errors"
)

// CredentialsClient lists cluster credentials. It is satisfied by
// *armcontainerservice.ManagedClustersClient.
type CredentialsClient interface {
	ListClusterUserCredentials(
		ctx context.Context,
		resourceGroupName, resourceName string,
		options *armcontainerservice.ManagedClustersClientListClusterUserCredentialsOptions,
	) (armcontainerservice.ManagedClustersClientListClusterUserCredentialsResponse, error)
	ListClusterAdminCredentials(
		ctx context.Context,
		resourceGroupName, resourceName string,
		options *armcontainerservice.ManagedClustersClientListClusterAdminCredentialsOptions,
	) (armcontainerservice.ManagedClustersClientListClusterAdminCredentialsResponse, error)
}

// ClientFactory creates a CredentialsClient for a subscription.
type ClientFactory func(subscriptionID string, cred azcore.TokenCredential) (CredentialsClient, error)

// CredentialFactory creates the token credential used for a fetch.
type CredentialFactory func(opts CredentialOptions) (azcore.TokenCredential, error)

// Options holds the AKS backend inputs.
type Options struct {
	ResourceGroup string
	ClusterName   string
	Subscription  string
	Admin         bool
	Credential    CredentialOptions
}

// Fetcher downloads an AKS kubeconfig from the management plane.
type Fetcher struct {
	opts          Options
	newClient     ClientFactory
	newCredential CredentialFactory
	logger        *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClientFactory replaces the ARM client constructor.
func WithClientFactory(factory ClientFactory) Option {
	return func(f *Fetcher) {
		f.newClient = factory
	}
}

// WithCredentialFactory replaces the credential constructor.
func WithCredentialFactory(factory CredentialFactory) Option {
	return func(f *Fetcher) {
		f.newCredential = factory
	}
}

// NewFetcher creates a new AKS fetcher.
func NewFetcher(opts Options, logger *slog.Logger, options ...Option) *Fetcher {
	f := &Fetcher{
		opts:          opts,
		newClient:     newManagedClustersClient,
		newCredential: NewCredential,
		logger:        logger,
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func newManagedClustersClient(subscriptionID string, cred azcore.TokenCredential) (CredentialsClient, error) {
	factory, err := armcontainerservice.NewClientFactory(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create AKS client factory: %w", err)
	}
	return factory.NewManagedClustersClient(), nil
}

// Fetch implements domain.KubeconfigFetcher.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if f.opts.ResourceGroup == "" {
		return "", apperrors.NewMissingInputError("resource-group")
	}
	if f.opts.ClusterName == "" {
		return "", apperrors.NewMissingInputError("cluster-name")
	}
	if f.opts.Subscription == "" {
		return "", apperrors.NewMissingInputError("subscription")
	}

	cred, err := f.newCredential(f.opts.Credential)
	if err != nil {
		return "", err
	}

	client, err := f.newClient(f.opts.Subscription, cred)
	if err != nil {
		return "", err
	}

	f.logger.DebugContext(ctx, "Listing AKS cluster credentials",
		"resource_group", f.opts.ResourceGroup,
		"cluster_name", f.opts.ClusterName,
		"admin", f.opts.Admin)

	var results []*armcontainerservice.CredentialResult
	if f.opts.Admin {
		resp, err := client.ListClusterAdminCredentials(ctx, f.opts.ResourceGroup, f.opts.ClusterName, nil)
		if err != nil {
			return "", fmt.Errorf("failed to get admin credentials for %s: %w", f.opts.ClusterName, err)
		}
		results = resp.Kubeconfigs
	} else {
		resp, err := client.ListClusterUserCredentials(ctx, f.opts.ResourceGroup, f.opts.ClusterName, nil)
		if err != nil {
			return "", fmt.Errorf("failed to get cluster credentials for %s: %w", f.opts.ClusterName, err)
		}
		results = resp.Kubeconfigs
	}

	if len(results) == 0 || results[0] == nil || len(results[0].Value) == 0 {
		return "", fmt.Errorf("no kubeconfig returned for cluster %s", f.opts.ClusterName)
	}

	return string(results[0].Value), nil
}
