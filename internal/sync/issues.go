package sync

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/xenexes/bragbuddy/internal/config"
	"github.com/xenexes/bragbuddy/internal/model"
	"github.com/xenexes/bragbuddy/internal/timecalc"
)

// IssueSyncer imports resolved tracker tickets as journal entries. Ticket keys
// mentioned in the user's merged pull requests are harvested too, so tickets
// the tracker query misses still make it into the journal.
type IssueSyncer struct {
	issues  IssueSource
	pulls   PullRequestSource // nil when pull request harvesting is unavailable
	journal Journal
	jiraCfg config.JiraConfig
	ghCfg   config.GitHubConfig
}

// NewIssueSyncer wires an issue source, an optional pull request source for
// key harvesting, and the journal.
func NewIssueSyncer(issues IssueSource, pulls PullRequestSource, journal Journal, jiraCfg config.JiraConfig, ghCfg config.GitHubConfig) *IssueSyncer {
	return &IssueSyncer{issues: issues, pulls: pulls, journal: journal, jiraCfg: jiraCfg, ghCfg: ghCfg}
}

type pullFetch struct {
	prs []model.PullRequest
	err error
}

// Sync fetches resolved issues and, concurrently, the user's merged pull
// requests. Once both fetches have completed, pull request ticket keys not
// already covered by the tracker query are loaded, the record sets are merged
// by issue key, and the result is returned sorted by resolution time. Merging
// and writing happen strictly after the join; the fetches are the only
// concurrent phase.
func (s *IssueSyncer) Sync(ctx context.Context, spec model.TimeframeSpec, printOnly bool) (IssueResult, error) {
	if !s.jiraCfg.Enabled {
		slog.Info("jira issue sync is disabled")
		return IssueResult{Status: StatusDisabled}, nil
	}
	if !s.jiraCfg.Configured() {
		slog.Warn("jira issue sync is enabled but not configured")
		return IssueResult{Status: StatusNotConfigured}, nil
	}

	r, err := timecalc.Resolve(spec, time.Now())
	if err != nil {
		return IssueResult{}, err
	}

	pullCh := make(chan pullFetch, 1)
	if s.pulls != nil && s.ghCfg.Enabled && s.ghCfg.Configured() {
		go func() {
			prs, err := s.pulls.FetchMergedPullRequests(ctx, s.ghCfg.Organization, s.ghCfg.Username, r)
			pullCh <- pullFetch{prs: prs, err: err}
		}()
	} else {
		pullCh <- pullFetch{}
	}

	issues, err := s.issues.FetchResolvedIssues(ctx, s.jiraCfg.Email, r)
	pulls := <-pullCh
	if err != nil {
		return IssueResult{}, err
	}
	if pulls.err != nil {
		slog.Warn("pull request fetch for key harvesting failed", "error", pulls.err)
	}

	extra, err := s.issuesFromPullRequests(ctx, pulls.prs, issues)
	if err != nil {
		return IssueResult{}, err
	}

	merged := mergeByKey(issues, extra)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].ResolvedAt.Before(merged[j].ResolvedAt)
	})
	slog.Info("total issues after merge", "count", len(merged))

	if printOnly {
		return IssueResult{Status: StatusPrintOnly, Issues: merged}, nil
	}
	return IssueResult{Status: StatusReadyToSync, Issues: merged}, nil
}

// SyncSelected writes the chosen issues to the journal and reports how many
// entries were added and how many were skipped as duplicates.
func (s *IssueSyncer) SyncSelected(issues []model.Issue) (IssueResult, error) {
	result := IssueResult{Status: StatusSynced}
	for _, issue := range issues {
		saved, err := s.journal.Save(model.Entry{
			Timestamp: issue.ResolvedAt,
			Content:   FormatIssue(issue),
		})
		if err != nil {
			return IssueResult{}, err
		}
		if saved {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	slog.Info("issue sync finished", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}

// issuesFromPullRequests extracts ticket keys from the pull requests and loads
// the ones the tracker query did not already return.
func (s *IssueSyncer) issuesFromPullRequests(ctx context.Context, prs []model.PullRequest, known []model.Issue) ([]model.Issue, error) {
	if len(prs) == 0 {
		return nil, nil
	}

	keys := make(map[string]struct{})
	for _, pr := range prs {
		for key := range model.TicketKeys(pr.Title, pr.Description, pr.BranchName) {
			keys[key] = struct{}{}
		}
	}
	for _, issue := range known {
		delete(keys, issue.Key)
	}
	if len(keys) == 0 {
		slog.Info("no additional ticket keys found in pull requests")
		return nil, nil
	}

	newKeys := make([]string, 0, len(keys))
	for key := range keys {
		newKeys = append(newKeys, key)
	}
	sort.Strings(newKeys)

	slog.Info("fetching issues referenced by pull requests", "count", len(newKeys))
	return s.issues.FetchIssuesByKeys(ctx, newKeys)
}

// mergeByKey merges the two record sets by natural key; records from the
// tracker query win over pull-request-extracted ones.
func mergeByKey(primary, secondary []model.Issue) []model.Issue {
	seen := make(map[string]struct{}, len(primary))
	merged := append([]model.Issue(nil), primary...)
	for _, issue := range primary {
		seen[issue.Key] = struct{}{}
	}
	for _, issue := range secondary {
		if _, ok := seen[issue.Key]; ok {
			continue
		}
		seen[issue.Key] = struct{}{}
		merged = append(merged, issue)
	}
	return merged
}
