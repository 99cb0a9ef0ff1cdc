// Package involvement decides whether a user was driving a ticket during a
// time period, reconstructed from the ticket's raw change history.
//
// Trackers only expose current-state snapshots through simple queries, so
// "was this person the assignee while the ticket was in progress" has to be
// replayed from the flat changelog, tracking status and assignee together.
package involvement

import (
	"sort"
	"strings"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

const inProgressStatus = "In Progress"

// Ticket is the slice of a tracker issue the analyzer needs: the current
// assignee fields and the ordered change history.
type Ticket struct {
	AssigneeEmail string // current assignee, may be empty
	EngineerEmail string // secondary "engineer" user picker field, may be empty
	Changelog     []model.ChangeRecord
}

// Involved reports whether the user identified by email (and, when available,
// by a stable account id) was the ticket's assignee while it was in progress
// at any point overlapping the date range.
//
// The current assignee and engineer fields are checked first; they cover
// tickets assigned at creation that never produced a changelog record. Without
// an account id the changelog cannot be matched to the user, so involvement
// conservatively resolves to false rather than guessing by display name.
func Involved(ticket Ticket, email, accountID string, r model.DateRange) bool {
	if email != "" && (ticket.AssigneeEmail == email || ticket.EngineerEmail == email) {
		return true
	}
	if accountID == "" || len(ticket.Changelog) == 0 {
		return false
	}

	changes := make([]model.ChangeRecord, len(ticket.Changelog))
	copy(changes, ticket.Changelog)
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Timestamp.Before(changes[j].Timestamp)
	})

	var (
		currentStatus   string
		currentAssignee string
		inPeriod        bool
		periodStart     time.Time
	)

	for i := 0; i < len(changes); {
		ts := changes[i].Timestamp

		// Apply every record sharing this timestamp as one combined
		// transition: a status and assignee that change together are a
		// single step, not two sequential instants.
		for i < len(changes) && changes[i].Timestamp.Equal(ts) {
			switch changes[i].Field {
			case model.FieldStatus:
				currentStatus = changes[i].To
			case model.FieldAssignee:
				currentAssignee = changes[i].To
			}
			i++
		}

		qualifies := strings.EqualFold(currentStatus, inProgressStatus) &&
			currentAssignee == accountID

		switch {
		case !inPeriod && qualifies:
			inPeriod = true
			periodStart = ts
		case inPeriod && !qualifies:
			if overlaps(periodStart, ts, r) {
				return true
			}
			inPeriod = false
		}
	}

	// The replay ended inside a qualifying period: it is still open, so only
	// its start bounds the overlap check.
	if inPeriod && !model.Day(periodStart).After(r.End) {
		return true
	}
	return false
}

func overlaps(start, end time.Time, r model.DateRange) bool {
	return !model.Day(start).After(r.End) && !model.Day(end).Before(r.Start)
}
