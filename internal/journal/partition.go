package journal

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// parsePartition reads one year file into entries grouped by date key
// ("2006-01-02"). Malformed date headers and entry lines are logged and
// skipped so partial corruption never loses the rest of the file.
func parsePartition(r io.Reader) map[string][]model.Entry {
	byDate := make(map[string][]model.Entry)

	var (
		currentDate time.Time
		haveDate    bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			date, err := time.Parse(dateLayout, strings.TrimSpace(line[3:]))
			if err != nil {
				slog.Warn("skipping malformed date header", "line", line)
				haveDate = false
				continue
			}
			currentDate = date
			haveDate = true

		case strings.HasPrefix(line, "* ") && haveDate:
			entry, err := parseEntryLine(line, currentDate)
			if err != nil {
				slog.Warn("skipping malformed entry line",
					"date", currentDate.Format(dateLayout), "line", line)
				continue
			}
			key := currentDate.Format(dateLayout)
			byDate[key] = append(byDate[key], entry)
		}
	}
	return byDate
}

func parseEntryLine(line string, date time.Time) (model.Entry, error) {
	timeStr, content, ok := strings.Cut(line[2:], " ")
	if !ok {
		return model.Entry{}, fmt.Errorf("entry line %q has no content", line)
	}
	t, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing entry time %q: %w", timeStr, err)
	}
	timestamp := time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
	return model.Entry{Timestamp: timestamp, Content: content}, nil
}

// formatPartition renders a year file: the title line, then one section per
// date ascending, each holding its entries sorted by time of day. Formatting
// a parsed partition and re-parsing the result reproduces the same entry set.
func formatPartition(year int, byDate map[string][]model.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Brags %d\n\n", year)

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		fmt.Fprintf(&b, "## %s\n", date)

		entries := append([]model.Entry(nil), byDate[date]...)
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		})
		for _, entry := range entries {
			fmt.Fprintf(&b, "* %s %s\n", entry.Timestamp.Format(timeLayout), entry.Content)
		}
		b.WriteString("\n")
	}
	return b.String()
}
