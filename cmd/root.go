package cmd

import (
	"context"
	"fmt"
	"os"

	"kubesetctx/internal/app"
	"kubesetctx/internal/config"
	"kubesetctx/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//nolint:gochecknoglobals // Cobra CLI pattern for persistent flag variables
var (
	cfgFile string
	verbose bool
	noColor bool

	application *app.App
)

// VersionInfo holds build information.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

//nolint:gochecknoglobals // Package-level version info for CLI commands
var versionInfo = VersionInfo{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// SetVersionInfo updates the build information.
func SetVersionInfo(v, c, d, b string) {
	versionInfo.Version = v
	versionInfo.Commit = c
	versionInfo.Date = d
	versionInfo.BuiltBy = b
}

// GetVersionInfo returns the current version information.
func GetVersionInfo() VersionInfo {
	return versionInfo
}

// GetApp returns the initialized application instance.
func GetApp() *app.App {
	return application
}

//nolint:gochecknoglobals // Cobra CLI pattern for root command
var rootCmd = &cobra.Command{
	Use:   "kubesetctx",
	Short: "Resolve, narrow and export a kubeconfig for a cluster",
	Long: `kubesetctx resolves a kubeconfig for a generic, AKS or Azure Arc cluster,
optionally switches it to a named context and exports it through KUBECONFIG.

Every flag can also be supplied as an INPUT_<FLAG> environment variable,
for example INPUT_CLUSTER-TYPE=aks.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra CLI pattern for flag initialization
func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "YAML file with input values")
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().
		BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().
		String(config.KeyLogLevel, "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().
		String(config.KeyLogFormat, logging.FormatText, "Log format (text, json)")

	bindFlags(rootCmd)
}

// bindFlags binds every persistent flag of cmd to the viper key of the same name.
func bindFlags(cmd *cobra.Command) {
	cobra.CheckErr(viper.BindPFlag(config.KeyLogLevel, cmd.PersistentFlags().Lookup(config.KeyLogLevel)))
	cobra.CheckErr(viper.BindPFlag(config.KeyLogFormat, cmd.PersistentFlags().Lookup(config.KeyLogFormat)))
}

func initConfig() {
	config.Configure(viper.GetViper())

	if cfgFile != "" {
		if err := config.ReadFile(viper.GetViper(), cfgFile); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
	}

	level, err := logging.ParseLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level: %v\n", err)
		os.Exit(1)
	}

	// Initialize the application with dependency injection
	opts := []app.Option{
		app.WithLogLevel(level),
		app.WithLogFormat(viper.GetString(config.KeyLogFormat)),
	}
	if verbose {
		opts = append(opts, app.WithVerbose(true))
	}

	application, err = app.NewApp(context.Background(), opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}
}
