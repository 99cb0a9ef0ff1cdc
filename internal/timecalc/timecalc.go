// Package timecalc converts timeframe specifications into concrete inclusive
// date ranges.
package timecalc

import (
	"fmt"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

// Resolve converts a timeframe specification into a date range relative to the
// given reference time. It fails only on an invalid quarter number; all other
// validation happens when the spec is constructed.
func Resolve(spec model.TimeframeSpec, now time.Time) (model.DateRange, error) {
	switch spec.Kind {
	case model.SpecQuarterYear:
		return QuarterRange(spec.Year, spec.Quarter)
	case model.SpecCustom:
		return model.NewDateRange(spec.Start, spec.End)
	default:
		return resolvePredefined(spec.Timeframe, now)
	}
}

func resolvePredefined(tf model.Timeframe, now time.Time) (model.DateRange, error) {
	today := model.Day(now)

	switch tf {
	case model.Today:
		return model.NewDateRange(today, today)
	case model.Yesterday:
		yesterday := today.AddDate(0, 0, -1)
		return model.NewDateRange(yesterday, yesterday)
	case model.LastWeek:
		return model.NewDateRange(today.AddDate(0, 0, -7), today)
	case model.LastMonth:
		return model.NewDateRange(monthsBack(today, 1), today)
	case model.LastYear:
		return model.NewDateRange(monthsBack(today, 12), today)
	case model.QuarterOne:
		return QuarterRange(now.Year(), 1)
	case model.QuarterTwo:
		return QuarterRange(now.Year(), 2)
	case model.QuarterThree:
		return QuarterRange(now.Year(), 3)
	case model.QuarterFour:
		return QuarterRange(now.Year(), 4)
	default:
		return model.DateRange{}, fmt.Errorf("unknown timeframe %d", tf)
	}
}

// monthsBack subtracts calendar months from a day, clamping to the last valid
// day of the target month. AddDate would normalize the overflow forward
// instead (Mar 31 minus one month must be Feb 28, not Mar 3).
func monthsBack(day time.Time, months int) time.Time {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -months, 0)
	last := first.AddDate(0, 1, -1)
	if day.Day() < last.Day() {
		return time.Date(first.Year(), first.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	}
	return last
}

// QuarterRange returns the date range covering a quarter of a year. The end is
// the first day of the following month minus one day, so month lengths and
// leap years need no lookup table. Consecutive quarters tile the year exactly.
func QuarterRange(year, quarter int) (model.DateRange, error) {
	if quarter < 1 || quarter > 4 {
		return model.DateRange{}, fmt.Errorf("quarter must be between 1 and 4, got %d", quarter)
	}

	startMonth := time.Month((quarter-1)*3 + 1)
	endMonth := time.Month(quarter * 3)

	start := time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, endMonth, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)

	return model.NewDateRange(start, end)
}
