// Package kubeconfig parses, edits and serializes kubeconfig documents.
package kubeconfig

import (
	"context"
	"log/slog"
	"strings"

	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"

	apperrors "kubesetctx/internal/errors"
)

const (
	ServiceAccountCluster = "default"
	ServiceAccountUser    = "default-user"
	ServiceAccountContext = "loaded-context"
)

// Document is a parsed kubeconfig. It is owned by a single caller.
type Document struct {
	config *clientcmdapi.Config
}

// Parse decodes a YAML or JSON kubeconfig.
func Parse(raw string) (*Document, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, apperrors.NewParseError("kubeconfig", nil)
	}

	config, err := clientcmd.Load([]byte(raw))
	if err != nil {
		return nil, apperrors.NewParseError("kubeconfig", err)
	}

	return &Document{config: config}, nil
}

// CurrentContext returns the active context name.
func (d *Document) CurrentContext() string {
	return d.config.CurrentContext
}

// SetCurrentContext sets the active context name. The name is not required
// to match a context defined in the document.
func (d *Document) SetCurrentContext(name string) {
	d.config.CurrentContext = name
}

// CurrentServer returns the API server URL of the active context.
func (d *Document) CurrentServer() (string, bool) {
	kubeContext, ok := d.config.Contexts[d.config.CurrentContext]
	if !ok || kubeContext == nil {
		return "", false
	}
	cluster, ok := d.config.Clusters[kubeContext.Cluster]
	if !ok || cluster == nil || cluster.Server == "" {
		return "", false
	}
	return cluster.Server, true
}

// Contexts returns the number of contexts defined.
func (d *Document) Contexts() int {
	return len(d.config.Contexts)
}

// Serialize encodes the document as YAML.
func (d *Document) Serialize() (string, error) {
	data, err := clientcmd.Write(*d.config)
	if err != nil {
		return "", apperrors.NewParseError("kubeconfig", err)
	}
	return string(data), nil
}

// Editor applies context changes to raw kubeconfig documents.
type Editor struct {
	logger *slog.Logger
}

// NewEditor creates a new kubeconfig editor.
func NewEditor(logger *slog.Logger) *Editor {
	return &Editor{logger: logger}
}

// SetContext returns raw with its current-context replaced by contextName.
// An empty contextName returns raw unchanged.
func (e *Editor) SetContext(ctx context.Context, raw, contextName string) (string, error) {
	if contextName == "" {
		e.logger.DebugContext(ctx, "Can't set context because context is unspecified.")
		return raw, nil
	}

	doc, err := Parse(raw)
	if err != nil {
		return "", err
	}

	doc.SetCurrentContext(contextName)
	e.logger.DebugContext(ctx, "Set current context", "context", contextName, "contexts_defined", doc.Contexts())

	return doc.Serialize()
}

// NewServiceAccountConfig builds a single-context kubeconfig authenticating
// with a bearer token.
func NewServiceAccountConfig(server string, certificateAuthority []byte, token string) (string, error) {
	config := clientcmdapi.NewConfig()

	cluster := clientcmdapi.NewCluster()
	cluster.Server = server
	cluster.CertificateAuthorityData = certificateAuthority
	config.Clusters[ServiceAccountCluster] = cluster

	user := clientcmdapi.NewAuthInfo()
	user.Token = token
	config.AuthInfos[ServiceAccountUser] = user

	kubeContext := clientcmdapi.NewContext()
	kubeContext.Cluster = ServiceAccountCluster
	kubeContext.AuthInfo = ServiceAccountUser
	config.Contexts[ServiceAccountContext] = kubeContext

	config.CurrentContext = ServiceAccountContext

	return (&Document{config: config}).Serialize()
}
