package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

func TestParsePartition(t *testing.T) {
	input := `# Brags 2025

## 2025-01-10
* 09:15:00 First
* 14:30:00 Mid

## 2025-02-01
* 08:00:00 Second
`
	byDate := parsePartition(strings.NewReader(input))

	if len(byDate) != 2 {
		t.Fatalf("got %d dates, want 2", len(byDate))
	}
	jan := byDate["2025-01-10"]
	if len(jan) != 2 {
		t.Fatalf("got %d entries for 2025-01-10, want 2", len(jan))
	}
	if jan[0].Content != "First" || jan[1].Content != "Mid" {
		t.Errorf("entries = %q, %q, want First, Mid", jan[0].Content, jan[1].Content)
	}
	want := time.Date(2025, 1, 10, 9, 15, 0, 0, time.UTC)
	if !jan[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", jan[0].Timestamp, want)
	}
	if got := byDate["2025-02-01"][0].Content; got != "Second" {
		t.Errorf("second section entry = %q, want Second", got)
	}
}

func TestParsePartitionSkipsMalformedLines(t *testing.T) {
	input := `# Brags 2025

## 2025-01-10
* 09:15:00 Kept
* not-a-time line
* 25:99:00 bad clock

## not-a-date
* 10:00:00 orphaned entry

## 2025-01-11
* 08:00:00 Also kept
`
	byDate := parsePartition(strings.NewReader(input))

	var total int
	for _, entries := range byDate {
		total += len(entries)
	}
	if total != 2 {
		t.Fatalf("got %d entries, want the 2 well-formed ones", total)
	}
	if byDate["2025-01-10"][0].Content != "Kept" {
		t.Errorf("entry = %q, want Kept", byDate["2025-01-10"][0].Content)
	}
	if byDate["2025-01-11"][0].Content != "Also kept" {
		t.Errorf("entry = %q, want Also kept", byDate["2025-01-11"][0].Content)
	}
}

func TestFormatPartitionShape(t *testing.T) {
	byDate := map[string][]model.Entry{
		"2025-02-01": {
			{Timestamp: time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC), Content: "Second"},
		},
		"2025-01-10": {
			{Timestamp: time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC), Content: "Mid"},
			{Timestamp: time.Date(2025, 1, 10, 9, 15, 0, 0, time.UTC), Content: "First"},
		},
	}

	want := `# Brags 2025

## 2025-01-10
* 09:15:00 First
* 14:30:00 Mid

## 2025-02-01
* 08:00:00 Second

`
	if got := formatPartition(2025, byDate); got != want {
		t.Errorf("formatPartition:\n%q\nwant:\n%q", got, want)
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	byDate := map[string][]model.Entry{
		"2025-03-05": {
			{Timestamp: time.Date(2025, 3, 5, 11, 22, 33, 0, time.UTC), Content: "Shipped the importer"},
			{Timestamp: time.Date(2025, 3, 5, 16, 0, 1, 0, time.UTC), Content: "[PR #12] Fix pagination - https://example.com/12"},
		},
		"2025-12-31": {
			{Timestamp: time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), Content: "Wrapped up the year"},
		},
	}

	parsed := parsePartition(strings.NewReader(formatPartition(2025, byDate)))

	if len(parsed) != len(byDate) {
		t.Fatalf("got %d dates after round trip, want %d", len(parsed), len(byDate))
	}
	for date, entries := range byDate {
		got := parsed[date]
		if len(got) != len(entries) {
			t.Fatalf("date %s has %d entries after round trip, want %d", date, len(got), len(entries))
		}
		for i := range entries {
			if got[i].Content != entries[i].Content {
				t.Errorf("date %s entry %d = %q, want %q", date, i, got[i].Content, entries[i].Content)
			}
			if !got[i].Timestamp.Equal(entries[i].Timestamp) {
				t.Errorf("date %s entry %d timestamp = %v, want %v", date, i, got[i].Timestamp, entries[i].Timestamp)
			}
		}
	}
}
