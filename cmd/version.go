package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern for subcommand
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  `Display the kubesetctx version and build details. Use --short for the version alone.`,
	Run: func(cmd *cobra.Command, _ []string) {
		info := GetVersionInfo()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), info.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "kubesetctx %s (%s/%s, %s)\n", info.Version, runtime.GOOS, runtime.GOARCH, runtime.Version())
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", info.Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built: %s by %s\n", info.Date, info.BuiltBy)
	},
}

//nolint:gochecknoinits // Cobra CLI pattern for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
