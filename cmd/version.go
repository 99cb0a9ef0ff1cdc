package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and check for updates",
	Run: func(cmd *cobra.Command, args []string) {
		version.NewChecker().CheckForUpdates(cmd.Context())
	},
}
