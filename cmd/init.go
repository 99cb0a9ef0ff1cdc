package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/journal"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Prepare the brag document directory",
	Long: `Verifies that the configured directory exists and is a git repository,
and writes an introductory README on first use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := journal.NewStore(cfg.DocsLocation)
		if err := store.Initialize(); err != nil {
			return err
		}
		fmt.Printf("Brag document initialized at %s\n", cfg.DocsLocation)
		return nil
	},
}
