package cmd

import (
	"context"
	"errors"
	"fmt"

	"kubesetctx/internal/commands"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Write the resolved kubeconfig to stdout",
	Long: `Resolve a kubeconfig for the configured cluster type and print it with the
requested context applied. Nothing is written to disk and KUBECONFIG is not
changed. AKS clusters are resolved through the Azure Resource Manager API
instead of the Azure CLI.`,
	RunE: runPrint,
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(cmd *cobra.Command, _ []string) error {
	app := GetApp()
	if app == nil {
		return errors.New("application not initialized")
	}

	in, err := loadInputs()
	if err != nil {
		return err
	}

	out, err := app.NewPrintCommand(in).Execute(context.Background(), commands.PrintRequest{
		ClusterType: in.ClusterType,
		Context:     in.Context,
	})
	if err != nil {
		return fmt.Errorf("print failed: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
