package jira

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

// Jira timestamps look like "2025-01-10T09:30:00.000+0100".
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

func parseJiraTime(value string) (time.Time, error) {
	t, err := time.Parse(jiraTimeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing jira timestamp %q: %w", value, err)
	}
	return t, nil
}

// toDomain maps a raw issue to the domain record. The effective resolution
// timestamp is the latest changelog transition into the issue's current
// status, falling back to the resolution date and then the last update.
func toDomain(issue issueDTO, baseURL string) (model.Issue, error) {
	dateStr := doneTransitionDate(issue)
	if dateStr == "" {
		dateStr = issue.Fields.ResolutionDate
	}
	if dateStr == "" {
		dateStr = issue.Fields.Updated
	}

	resolvedAt, err := parseJiraTime(dateStr)
	if err != nil {
		return model.Issue{}, fmt.Errorf("issue %s has no usable resolution date: %w", issue.Key, err)
	}

	return model.Issue{
		Key:        issue.Key,
		Title:      issue.Fields.Summary,
		URL:        baseURL + "/browse/" + issue.Key,
		ResolvedAt: resolvedAt.UTC(),
		Status:     issue.Fields.Status.Name,
		IssueType:  issue.Fields.IssueType.Name,
	}, nil
}

// doneTransitionDate returns the timestamp of the most recent transition into
// the issue's current status, or "" when the changelog has none.
func doneTransitionDate(issue issueDTO) string {
	if issue.Changelog == nil {
		return ""
	}
	current := issue.Fields.Status.Name
	histories := issue.Changelog.Histories
	for i := len(histories) - 1; i >= 0; i-- {
		for _, item := range histories[i].Items {
			if item.Field == "status" && item.ToString == current {
				return histories[i].Created
			}
		}
	}
	return ""
}

// changeRecords flattens the changelog into the involvement analyzer's
// transition list. Status transitions carry display names; assignee
// transitions carry account ids.
func changeRecords(issue issueDTO) []model.ChangeRecord {
	if issue.Changelog == nil {
		return nil
	}
	var out []model.ChangeRecord
	for _, history := range issue.Changelog.Histories {
		ts, err := parseJiraTime(history.Created)
		if err != nil {
			slog.Warn("skipping changelog history with unparsable timestamp",
				"issue", issue.Key, "created", history.Created)
			continue
		}
		for _, item := range history.Items {
			switch item.Field {
			case "status":
				out = append(out, model.ChangeRecord{
					Timestamp: ts,
					Field:     model.FieldStatus,
					From:      item.FromString,
					To:        item.ToString,
				})
			case "assignee":
				out = append(out, model.ChangeRecord{
					Timestamp: ts,
					Field:     model.FieldAssignee,
					From:      item.From,
					To:        item.To,
				})
			}
		}
	}
	return out
}
