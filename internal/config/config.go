// Package config resolves the run inputs from flags, environment and an
// optional config file.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"kubesetctx/internal/errors"
)

// Input keys. Each key is also a flag name and, upper-cased with the INPUT_
// prefix, an environment variable.
const (
	KeyClusterType        = "cluster-type"
	KeyResourceGroup      = "resource-group"
	KeyClusterName        = "cluster-name"
	KeySubscription       = "subscription"
	KeyAdmin              = "admin"
	KeyContext            = "context"
	KeyUseAzSetContext    = "use-az-set-context"
	KeyUseKubelogin       = "use-kubelogin"
	KeyMethod             = "method"
	KeyKubeconfig         = "kubeconfig"
	KeyKubeconfigEncoding = "kubeconfig-encoding"
	KeyK8sURL             = "k8s-url"
	KeyK8sSecret          = "k8s-secret"
	KeyToken              = "token"
	KeyAzureCredential    = "azure-credential"
	KeyTenantID           = "tenant-id"
	KeyClientID           = "client-id"
	KeyClientSecret       = "client-secret"
	KeyArcTimeout         = "arc-timeout"
	KeyTempDir            = "temp-dir"
	KeyLogLevel           = "log-level"
	KeyLogFormat          = "log-format"

	EnvPrefix = "INPUT"

	// runnerTempEnv is the job scoped temp directory on GitHub runners.
	runnerTempEnv = "RUNNER_TEMP"

	redacted = "***"
)

// Inputs is the resolved configuration of one run.
type Inputs struct {
	ClusterType        string        `yaml:"cluster-type"`
	ResourceGroup      string        `yaml:"resource-group,omitempty"`
	ClusterName        string        `yaml:"cluster-name,omitempty"`
	Subscription       string        `yaml:"subscription,omitempty"`
	Admin              bool          `yaml:"admin"`
	Context            string        `yaml:"context,omitempty"`
	UseAzSetContext    bool          `yaml:"use-az-set-context"`
	UseKubelogin       bool          `yaml:"use-kubelogin"`
	Method             string        `yaml:"method,omitempty"`
	Kubeconfig         string        `yaml:"kubeconfig,omitempty"`
	KubeconfigEncoding string        `yaml:"kubeconfig-encoding"`
	K8sURL             string        `yaml:"k8s-url,omitempty"`
	K8sSecret          string        `yaml:"k8s-secret,omitempty"`
	Token              string        `yaml:"token,omitempty"`
	AzureCredential    string        `yaml:"azure-credential"`
	TenantID           string        `yaml:"tenant-id,omitempty"`
	ClientID           string        `yaml:"client-id,omitempty"`
	ClientSecret       string        `yaml:"client-secret,omitempty"`
	ArcTimeout         time.Duration `yaml:"arc-timeout"`
	TempDir            string        `yaml:"temp-dir,omitempty"`
	LogLevel           string        `yaml:"log-level"`
	LogFormat          string        `yaml:"log-format"`
}

// Configure applies the environment mapping and defaults to v.
func Configure(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	_ = v.BindEnv(KeyTempDir, EnvPrefix+"_"+strings.ToUpper(KeyTempDir), runnerTempEnv)

	v.SetDefault(KeyKubeconfigEncoding, "plaintext")
	v.SetDefault(KeyAzureCredential, "default")
	v.SetDefault(KeyArcTimeout, "120s")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")
}

// ReadFile merges a YAML config file into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.NewConfigurationError("config", path, "failed to read config file", err)
	}
	return nil
}

// FromViper builds Inputs from v. Only malformed values fail here;
// required inputs are checked by the command that needs them.
func FromViper(v *viper.Viper) (*Inputs, error) {
	in := &Inputs{
		ClusterType:        v.GetString(KeyClusterType),
		ResourceGroup:      v.GetString(KeyResourceGroup),
		ClusterName:        v.GetString(KeyClusterName),
		Subscription:       v.GetString(KeySubscription),
		Admin:              v.GetBool(KeyAdmin),
		Context:            v.GetString(KeyContext),
		UseAzSetContext:    v.GetBool(KeyUseAzSetContext),
		UseKubelogin:       v.GetBool(KeyUseKubelogin),
		Method:             v.GetString(KeyMethod),
		Kubeconfig:         v.GetString(KeyKubeconfig),
		KubeconfigEncoding: v.GetString(KeyKubeconfigEncoding),
		K8sURL:             v.GetString(KeyK8sURL),
		K8sSecret:          v.GetString(KeyK8sSecret),
		Token:              v.GetString(KeyToken),
		AzureCredential:    v.GetString(KeyAzureCredential),
		TenantID:           v.GetString(KeyTenantID),
		ClientID:           v.GetString(KeyClientID),
		ClientSecret:       v.GetString(KeyClientSecret),
		TempDir:            v.GetString(KeyTempDir),
		LogLevel:           v.GetString(KeyLogLevel),
		LogFormat:          v.GetString(KeyLogFormat),
	}

	timeout, err := parseTimeout(v.GetString(KeyArcTimeout))
	if err != nil {
		return nil, err
	}
	in.ArcTimeout = timeout

	return in, nil
}

// parseTimeout accepts a Go duration or a whole number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	if d, err := time.ParseDuration(raw + "s"); err == nil {
		return d, nil
	}
	return 0, errors.NewValidationError(KeyArcTimeout, raw, "duration",
		"arc timeout must be a duration such as 90s or a number of seconds")
}

// RequireClusterType returns a MissingInputError when no cluster type was set.
func (in *Inputs) RequireClusterType() error {
	if strings.TrimSpace(in.ClusterType) == "" {
		return errors.NewMissingInputError(KeyClusterType)
	}
	return nil
}

// Redacted returns a copy with credentials masked.
func (in *Inputs) Redacted() *Inputs {
	out := *in
	for _, field := range []*string{&out.Kubeconfig, &out.K8sSecret, &out.Token, &out.ClientSecret} {
		if *field != "" {
			*field = redacted
		}
	}
	return &out
}

// YAML renders the redacted inputs.
func (in *Inputs) YAML() ([]byte, error) {
	data, err := yaml.Marshal(in.Redacted())
	if err != nil {
		return nil, errors.NewConfigurationError("config_format", "yaml", "failed to marshal inputs", err)
	}
	return data, nil
}
