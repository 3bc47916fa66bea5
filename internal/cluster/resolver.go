package cluster

import (
	"context"
	"log/slog"

	"kubesetctx/internal/domain"
)

// Fetchers holds one kubeconfig fetcher per backend.
type Fetchers struct {
	Arc     domain.KubeconfigFetcher
	AKS     domain.KubeconfigFetcher
	Generic domain.KubeconfigFetcher
}

// Resolver dispatches kubeconfig acquisition by cluster type.
type Resolver struct {
	fetchers Fetchers
	logger   *slog.Logger
}

// NewResolver creates a new resolver.
func NewResolver(fetchers Fetchers, logger *slog.Logger) *Resolver {
	return &Resolver{
		fetchers: fetchers,
		logger:   logger,
	}
}

// Resolve returns the raw kubeconfig for t. Fetcher errors are returned
// unchanged.
func (r *Resolver) Resolve(ctx context.Context, t Type) (string, error) {
	switch t {
	case Arc:
		return r.fetchers.Arc.Fetch(ctx)
	case AKS:
		return r.fetchers.AKS.Fetch(ctx)
	case Unspecified:
		r.logger.WarnContext(ctx, "Cluster type not recognized. Defaulting to generic.")
		fallthrough
	default:
		return r.fetchers.Generic.Fetch(ctx)
	}
}
