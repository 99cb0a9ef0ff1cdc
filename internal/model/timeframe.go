package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Timeframe is one of the predefined symbolic time periods.
type Timeframe int

const (
	Today Timeframe = iota
	Yesterday
	LastWeek
	LastMonth
	LastYear
	QuarterOne
	QuarterTwo
	QuarterThree
	QuarterFour
)

// SpecKind discriminates the TimeframeSpec variants.
type SpecKind int

const (
	SpecPredefined SpecKind = iota
	SpecQuarterYear
	SpecCustom
)

// TimeframeSpec describes a time period in one of three closed forms: a
// predefined symbol, a quarter of a specific year, or an explicit date range.
// Only the fields belonging to Kind are meaningful.
type TimeframeSpec struct {
	Kind      SpecKind
	Timeframe Timeframe // SpecPredefined
	Quarter   int       // SpecQuarterYear
	Year      int       // SpecQuarterYear
	Start     time.Time // SpecCustom
	End       time.Time // SpecCustom
}

// Predefined builds a spec for a symbolic timeframe.
func Predefined(tf Timeframe) TimeframeSpec {
	return TimeframeSpec{Kind: SpecPredefined, Timeframe: tf}
}

// QuarterYear builds a spec for a quarter of a specific year.
func QuarterYear(quarter, year int) (TimeframeSpec, error) {
	if quarter < 1 || quarter > 4 {
		return TimeframeSpec{}, fmt.Errorf("quarter must be between 1 and 4, got %d", quarter)
	}
	return TimeframeSpec{Kind: SpecQuarterYear, Quarter: quarter, Year: year}, nil
}

// CustomRange builds a spec for an explicit inclusive date range.
func CustomRange(start, end time.Time) (TimeframeSpec, error) {
	r, err := NewDateRange(start, end)
	if err != nil {
		return TimeframeSpec{}, err
	}
	return TimeframeSpec{Kind: SpecCustom, Start: r.Start, End: r.End}, nil
}

const customDateLayout = "02.01.2006"

var (
	quarterYearPattern = regexp.MustCompile(`(?i)^q([1-4])\s+(\d{4})$`)
	customRangePattern = regexp.MustCompile(`^(\d{2}\.\d{2}\.\d{4})-(\d{2}\.\d{2}\.\d{4})$`)
)

var predefinedNames = map[string]Timeframe{
	"today":      Today,
	"yesterday":  Yesterday,
	"last-week":  LastWeek,
	"lastweek":   LastWeek,
	"last-month": LastMonth,
	"lastmonth":  LastMonth,
	"last-year":  LastYear,
	"lastyear":   LastYear,
	"q1":         QuarterOne,
	"q2":         QuarterTwo,
	"q3":         QuarterThree,
	"q4":         QuarterFour,
}

// ParseTimeframeSpec parses user input into a TimeframeSpec. Supported forms:
// the predefined keywords ("today", "last-week", "q1", ...), a quarter with an
// explicit year ("q1 2025", case-insensitive), and a custom range
// ("06.12.2025-03.02.2026"). Unrecognized input returns ok = false, never an
// error, so callers can show usage instead of failing.
func ParseTimeframeSpec(value string) (TimeframeSpec, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return TimeframeSpec{}, false
	}

	if tf, ok := predefinedNames[strings.ToLower(trimmed)]; ok {
		return Predefined(tf), true
	}

	if m := quarterYearPattern.FindStringSubmatch(trimmed); m != nil {
		quarter, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		spec, err := QuarterYear(quarter, year)
		if err != nil {
			return TimeframeSpec{}, false
		}
		return spec, true
	}

	if m := customRangePattern.FindStringSubmatch(trimmed); m != nil {
		start, err := time.Parse(customDateLayout, m[1])
		if err != nil {
			return TimeframeSpec{}, false
		}
		end, err := time.Parse(customDateLayout, m[2])
		if err != nil {
			return TimeframeSpec{}, false
		}
		spec, err := CustomRange(start, end)
		if err != nil {
			return TimeframeSpec{}, false
		}
		return spec, true
	}

	return TimeframeSpec{}, false
}
