package cmd

import (
	"fmt"

	"github.com/fingervision/ridgemark/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "ridgemark version", version.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
