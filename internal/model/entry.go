package model

import "time"

// Entry is a single accomplishment recorded in the brag journal. Entries are
// immutable once created; their identity is the content text itself.
type Entry struct {
	Timestamp time.Time
	Content   string
}

// Date returns the calendar day the entry belongs to.
func (e Entry) Date() time.Time {
	return Day(e.Timestamp)
}
