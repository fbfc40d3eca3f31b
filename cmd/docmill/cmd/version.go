package cmd

import (
	"fmt"

	"github.com/docmill/docmill/internal/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "docmill version "+version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
