package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/github"
	"github.com/xenexes/bragbuddy/internal/jira"
	"github.com/xenexes/bragbuddy/internal/journal"
	"github.com/xenexes/bragbuddy/internal/model"
	"github.com/xenexes/bragbuddy/internal/sync"
)

var (
	syncIssuesTimeframe string
	syncIssuesPrintOnly bool
	syncIssuesAll       bool
)

var syncIssuesCmd = &cobra.Command{
	Use:   "sync-issues",
	Short: "Import resolved Jira issues into the journal",
	Long: `Fetches the Jira issues you drove to completion in the timeframe, plus
issues referenced by your merged pull requests, and lets you pick which
ones to record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		spec, ok := model.ParseTimeframeSpec(syncIssuesTimeframe)
		if !ok {
			return errTimeframeNotRecognized(syncIssuesTimeframe)
		}

		ctx := cmd.Context()
		var pulls sync.PullRequestSource
		if cfg.GitHub.Enabled && cfg.GitHub.Configured() {
			pulls = github.NewClient(ctx, cfg.GitHub.Token)
		}
		syncer := sync.NewIssueSyncer(
			jira.NewClient(cfg.Jira),
			pulls,
			journal.NewStore(cfg.DocsLocation),
			cfg.Jira,
			cfg.GitHub,
		)
		result, err := syncer.Sync(ctx, spec, syncIssuesPrintOnly)
		if err != nil {
			return err
		}

		switch result.Status {
		case sync.StatusDisabled:
			fmt.Println("Jira issue sync is disabled (BRAG_DOC_JIRA_SYNC_ENABLED=false).")
			return nil
		case sync.StatusNotConfigured:
			fmt.Println("Jira issue sync is not configured. Set BRAG_DOC_JIRA_URL,")
			fmt.Println("BRAG_DOC_JIRA_EMAIL and BRAG_DOC_JIRA_API_TOKEN.")
			return nil
		case sync.StatusPrintOnly:
			if len(result.Issues) == 0 {
				fmt.Println("No resolved issues found.")
				return nil
			}
			for _, issue := range result.Issues {
				fmt.Printf("%s  %s\n", issue.ResolvedAt.Format("2006-01-02"), sync.FormatIssue(issue))
			}
			return nil
		}

		if len(result.Issues) == 0 {
			fmt.Println("No resolved issues found.")
			return nil
		}

		selected := result.Issues
		if !syncIssuesAll {
			selected, err = selectIssues(result.Issues)
			if err != nil {
				return err
			}
		}
		if len(selected) == 0 {
			fmt.Println("Nothing selected, journal unchanged.")
			return nil
		}

		written, err := syncer.SyncSelected(selected)
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d issue(s), %d already recorded.\n", written.Added, written.Skipped)
		return nil
	},
}

func init() {
	syncIssuesCmd.Flags().StringVarP(&syncIssuesTimeframe, "timeframe", "t", "last-week", timeframeFlagHelp)
	syncIssuesCmd.Flags().BoolVar(&syncIssuesPrintOnly, "print-only", false, "Print fetched issues without writing to the journal")
	syncIssuesCmd.Flags().BoolVar(&syncIssuesAll, "all", false, "Record every fetched issue without prompting")
}

// selectIssues shows the fetched issues as a numbered list and asks which to
// record. An empty answer means all.
func selectIssues(issues []model.Issue) ([]model.Issue, error) {
	fmt.Println("Found the following issues:")
	for i, issue := range issues {
		fmt.Printf("  %d) %s  %s\n", i+1, issue.ResolvedAt.Format("2006-01-02"), sync.FormatIssue(issue))
	}
	fmt.Print("Which should be recorded? [all/none/1,2,3] (all): ")

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	switch answer {
	case "", "all":
		return issues, nil
	case "none":
		return nil, nil
	}

	var selected []model.Issue
	for _, part := range strings.Split(answer, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > len(issues) {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		selected = append(selected, issues[n-1])
	}
	return selected, nil
}
