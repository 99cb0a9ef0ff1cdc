package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/github"
	"github.com/xenexes/bragbuddy/internal/journal"
	"github.com/xenexes/bragbuddy/internal/model"
	"github.com/xenexes/bragbuddy/internal/sync"
)

var (
	syncPRsTimeframe string
	syncPRsPrintOnly bool
)

var syncPRsCmd = &cobra.Command{
	Use:   "sync-prs",
	Short: "Import merged GitHub pull requests into the journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		spec, ok := model.ParseTimeframeSpec(syncPRsTimeframe)
		if !ok {
			return errTimeframeNotRecognized(syncPRsTimeframe)
		}

		ctx := cmd.Context()
		syncer := sync.NewPullRequestSyncer(
			github.NewClient(ctx, cfg.GitHub.Token),
			journal.NewStore(cfg.DocsLocation),
			cfg.GitHub,
		)
		result, err := syncer.Sync(ctx, spec, syncPRsPrintOnly)
		if err != nil {
			return err
		}

		switch result.Status {
		case sync.StatusDisabled:
			fmt.Println("GitHub PR sync is disabled (BRAG_DOC_GITHUB_PR_SYNC_ENABLED=false).")
		case sync.StatusNotConfigured:
			fmt.Println("GitHub PR sync is not configured. Set BRAG_DOC_GITHUB_TOKEN,")
			fmt.Println("BRAG_DOC_GITHUB_USERNAME and BRAG_DOC_GITHUB_ORG.")
		case sync.StatusPrintOnly:
			if len(result.PullRequests) == 0 {
				fmt.Println("No merged pull requests found.")
				return nil
			}
			for _, pr := range result.PullRequests {
				fmt.Printf("%s  %s\n", pr.MergedAt.Format("2006-01-02"), sync.FormatPullRequest(pr))
			}
		case sync.StatusSynced:
			fmt.Printf("Synced %d pull request(s), %d already recorded.\n", result.Added, result.Skipped)
		}
		return nil
	},
}

func init() {
	syncPRsCmd.Flags().StringVarP(&syncPRsTimeframe, "timeframe", "t", "last-week", timeframeFlagHelp)
	syncPRsCmd.Flags().BoolVar(&syncPRsPrintOnly, "print-only", false, "Print fetched pull requests without writing to the journal")
}
