package cmd

import (
	"context"
	"errors"
	"fmt"

	"kubesetctx/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the kubeconfig, set its context and export KUBECONFIG",
	Long: `Resolve a kubeconfig for the configured cluster type, make the requested
context current and write it to <temp-dir>/kubeconfig_<timestamp> with mode 600.

The path is exported as KUBECONFIG. Inside a GitHub Actions job it is also
appended to $GITHUB_ENV so later steps pick it up.`,
	RunE: runSetContext,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(runCmd)
}

func runSetContext(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	in, err := loadInputs()
	if err != nil {
		return err
	}

	setContextCommand := app.NewSetContextCommand(in)

	path, err := setContextCommand.Execute(context.Background(), commands.SetContextRequest{
		ClusterType:     in.ClusterType,
		ResourceGroup:   in.ResourceGroup,
		ClusterName:     in.ClusterName,
		Subscription:    in.Subscription,
		Admin:           in.Admin,
		Context:         in.Context,
		UseAzSetContext: in.UseAzSetContext,
		UseKubelogin:    in.UseKubelogin,
		TempDir:         in.TempDir,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	c := newColors(cmd.OutOrStdout(), noColor)
	fmt.Fprintf(cmd.OutOrStdout(), "%s KUBECONFIG=%s\n", c.Success("Kubeconfig exported:"), c.Value("%s", path))
	return nil
}
