package model

import "time"

// PullRequest is a merged code review fetched from GitHub. The PR number is
// its natural key.
type PullRequest struct {
	Number      int
	Title       string
	URL         string
	MergedAt    time.Time
	Description string
	BranchName  string
}

// Issue is a resolved issue-tracker ticket. The issue key is its natural key.
type Issue struct {
	Key        string
	Title      string
	URL        string
	ResolvedAt time.Time
	Status     string
	IssueType  string
}

// ChangeField names the ticket fields whose historical transitions the
// involvement analyzer replays.
type ChangeField string

const (
	FieldStatus   ChangeField = "status"
	FieldAssignee ChangeField = "assignee"
)

// ChangeRecord is one historical field transition of a ticket. Several records
// may share a timestamp when one tracker event changed multiple fields.
type ChangeRecord struct {
	Timestamp time.Time
	Field     ChangeField
	From      string
	To        string
}
