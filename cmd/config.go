package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved inputs",
	Long:  `Print the inputs resolved from flags, INPUT_* variables and the config file as YAML. Credentials are masked.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		in, err := loadInputs()
		if err != nil {
			return err
		}

		data, err := in.YAML()
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(configCmd)
}
