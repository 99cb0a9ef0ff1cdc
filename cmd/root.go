package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "brag",
	Short: "bragbuddy – keep a journal of your accomplishments",
	Long: `brag maintains a personal accomplishment journal ("brag document") as
hand-editable markdown files, one per year, inside a git repository.
Entries can be typed in manually or synced from merged GitHub pull
requests and resolved Jira issues.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(syncPRsCmd)
	rootCmd.AddCommand(syncIssuesCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment configuration, exiting with setup help when
// the docs location is missing.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Please ensure the following environment variables are set:")
		fmt.Fprintln(os.Stderr, "  BRAG_DOC            - Path to your brag documents directory (required)")
		fmt.Fprintln(os.Stderr, "  BRAG_DOC_REPO_SYNC  - Set to 'true' to enable git sync (optional)")
		os.Exit(1)
	}
	return cfg
}

const timeframeFlagHelp = `Time period: today, yesterday, last-week, last-month, last-year,
q1..q4, "q<1-4> <yyyy>" or dd.mm.yyyy-dd.mm.yyyy`

func errTimeframeNotRecognized(value string) error {
	return fmt.Errorf("timeframe %q not recognized (expected today, yesterday, last-week, "+
		"last-month, last-year, q1..q4, \"q1 2025\" or dd.mm.yyyy-dd.mm.yyyy)", value)
}
