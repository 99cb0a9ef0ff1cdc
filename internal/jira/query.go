package jira

import (
	"strings"

	"github.com/xenexes/bragbuddy/internal/model"
)

// BuildJQL fills the configured JQL template with the user's email and the
// date range, then collapses all whitespace so multi-line templates become a
// single query string.
func BuildJQL(template, email string, r model.DateRange) string {
	jql := strings.NewReplacer(
		"{email}", email,
		"{startDate}", r.Start.Format("2006-01-02"),
		"{endDate}", r.End.Format("2006-01-02"),
	).Replace(template)

	return strings.Join(strings.Fields(jql), " ")
}
