package model

import (
	"fmt"
	"time"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a DateRange from the days containing start and end.
// A range whose start is after its end is rejected.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := Day(start), Day(end)
	if s.After(e) {
		return DateRange{}, fmt.Errorf("start date %s is after end date %s",
			s.Format("2006-01-02"), e.Format("2006-01-02"))
	}
	return DateRange{Start: s, End: e}, nil
}

// Contains reports whether the day containing d falls inside the range.
func (r DateRange) Contains(d time.Time) bool {
	day := Day(d)
	return !day.Before(r.Start) && !day.After(r.End)
}

// Day normalizes a timestamp to midnight of its wall-clock day. The result is
// always in UTC so days from different sources compare by calendar date only.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
