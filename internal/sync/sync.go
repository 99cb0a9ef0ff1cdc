// Package sync merges external work records, merged pull requests and
// resolved tracker issues, into the brag journal.
package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/xenexes/bragbuddy/internal/model"
)

// Status classifies the outcome of a sync run.
type Status int

const (
	// StatusDisabled means the source is turned off by configuration.
	StatusDisabled Status = iota
	// StatusNotConfigured means the source is enabled but lacks credentials.
	StatusNotConfigured
	// StatusPrintOnly means records were fetched but not written.
	StatusPrintOnly
	// StatusReadyToSync means records were fetched and await user selection.
	StatusReadyToSync
	// StatusSynced means records were written to the journal.
	StatusSynced
)

// PullRequestSource fetches merged code reviews for an author.
type PullRequestSource interface {
	FetchMergedPullRequests(ctx context.Context, organization, author string, r model.DateRange) ([]model.PullRequest, error)
}

// IssueSource fetches resolved issue-tracker tickets.
type IssueSource interface {
	FetchResolvedIssues(ctx context.Context, email string, r model.DateRange) ([]model.Issue, error)
	FetchIssuesByKeys(ctx context.Context, keys []string) ([]model.Issue, error)
}

// Journal is the persistence surface syncs write through.
type Journal interface {
	Save(entry model.Entry) (bool, error)
}

// PullRequestResult is the outcome of a pull request sync run.
type PullRequestResult struct {
	Status       Status
	PullRequests []model.PullRequest
	Added        int
	Skipped      int
}

// IssueResult is the outcome of an issue sync run.
type IssueResult struct {
	Status  Status
	Issues  []model.Issue
	Added   int
	Skipped int
}

// FormatPullRequest renders the journal line for a merged pull request.
func FormatPullRequest(pr model.PullRequest) string {
	return fmt.Sprintf("[PR #%d] %s - %s", pr.Number, pr.Title, pr.URL)
}

// FormatIssue renders the journal line for a resolved ticket.
func FormatIssue(issue model.Issue) string {
	line := fmt.Sprintf("[%s] %s - %s", issue.Key, issue.Title, issue.URL)

	var meta []string
	if issue.IssueType != "" {
		meta = append(meta, issue.IssueType)
	}
	if issue.Status != "" {
		meta = append(meta, issue.Status)
	}
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return line
}
