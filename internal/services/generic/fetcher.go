// Package generic acquires kubeconfigs for clusters that are not managed by
// a cloud provider integration.
package generic

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"sigs.k8s.io/yaml"

	"kubesetctx/internal/cluster"
	apperrors "kubesetctx/internal/errors"
	"kubesetctx/internal/kubeconfig"
)

const (
	EncodingPlaintext = "plaintext"
	EncodingBase64    = "base64"

	secretTokenKey = "token"
	secretCAKey    = "ca.crt"
)

// Options holds the generic backend inputs.
type Options struct {
	Method     cluster.Method
	Kubeconfig string
	Encoding   string
	ServerURL  string
	Secret     string
}

// Fetcher returns a kubeconfig supplied directly by the user or built from a
// service account secret.
type Fetcher struct {
	opts   Options
	logger *slog.Logger
}

// NewFetcher creates a new generic fetcher.
func NewFetcher(opts Options, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		opts:   opts,
		logger: logger,
	}
}

// Fetch implements domain.KubeconfigFetcher.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	switch f.opts.Method {
	case cluster.MethodServiceAccount:
		return f.fromServiceAccount()
	case cluster.MethodServicePrincipal:
		f.logger.WarnContext(ctx, "Service principal method not supported for default cluster type")
		return f.fromKubeconfig()
	case cluster.MethodUnspecified:
		f.logger.WarnContext(ctx, "Defaulting to kubeconfig method")
		return f.fromKubeconfig()
	default:
		return f.fromKubeconfig()
	}
}

func (f *Fetcher) fromKubeconfig() (string, error) {
	if f.opts.Kubeconfig == "" {
		return "", apperrors.NewMissingInputError("kubeconfig")
	}

	switch strings.ToLower(strings.TrimSpace(f.opts.Encoding)) {
	case "", EncodingPlaintext:
		return f.opts.Kubeconfig, nil
	case EncodingBase64:
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(f.opts.Kubeconfig))
		if err != nil {
			return "", apperrors.NewParseError("base64 kubeconfig", err)
		}
		return string(decoded), nil
	default:
		return "", apperrors.NewValidationError("kubeconfig-encoding", f.opts.Encoding, "supported_values",
			"kubeconfig encoding must be one of: plaintext, base64")
	}
}

func (f *Fetcher) fromServiceAccount() (string, error) {
	if f.opts.ServerURL == "" {
		return "", apperrors.NewMissingInputError("k8s-url")
	}
	if f.opts.Secret == "" {
		return "", apperrors.NewMissingInputError("k8s-secret")
	}

	var secret corev1.Secret
	if err := yaml.Unmarshal([]byte(f.opts.Secret), &secret); err != nil {
		return "", apperrors.NewParseError("k8s-secret", err)
	}

	if secret.Data == nil {
		return "", apperrors.NewValidationError("k8s-secret", "", "required_field",
			"k8s-secret must contain data field")
	}

	token, ok := secret.Data[secretTokenKey]
	if !ok {
		return "", apperrors.NewValidationError("k8s-secret", "", "required_field",
			"k8s-secret must contain data.token field")
	}

	ca, ok := secret.Data[secretCAKey]
	if !ok {
		return "", apperrors.NewValidationError("k8s-secret", "", "required_field",
			"k8s-secret must contain data.ca.crt field")
	}

	return kubeconfig.NewServiceAccountConfig(f.opts.ServerURL, ca, string(token))
}
