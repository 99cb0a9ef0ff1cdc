// Package journal persists accomplishment entries as hand-editable markdown
// files, one per year, inside the brag document directory. The files are both
// the durable store and a user-facing artifact, so every write re-serializes
// the whole year in chronological order and the exact textual shape is part of
// the contract.
package journal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

var (
	// ErrNotInitialized signals that the brag directory has not been set up.
	ErrNotInitialized = errors.New("brag directory not initialized, run 'brag init' first")
	// ErrLocationMissing signals that the configured docs directory does not exist.
	ErrLocationMissing = errors.New("docs directory does not exist")
	// ErrNotARepository signals that the docs directory lacks a git repository.
	ErrNotARepository = errors.New("docs directory is not a git repository")
)

// Store reads and writes the year-partitioned journal files. It does no
// cross-process locking; one running invocation at a time is the supported
// model.
type Store struct {
	dir string
}

// NewStore returns a store over the given docs directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// PartitionFile returns the path of the year file holding entries with the
// given timestamp.
func (s *Store) PartitionFile(t time.Time) string {
	return s.partitionPath(t.Year())
}

func (s *Store) partitionPath(year int) string {
	return filepath.Join(s.dir, fmt.Sprintf("brags-%d.md", year))
}

// Save writes the entry into its year partition and reports whether it was
// newly added. An entry whose content already exists anywhere in the partition
// is rejected as a duplicate: syncs from overlapping runs can re-deliver the
// same event under a slightly different timestamp, so dedup scans the whole
// year, not just the entry's date.
func (s *Store) Save(entry model.Entry) (bool, error) {
	if !s.IsInitialized() {
		return false, ErrNotInitialized
	}

	entry.Timestamp = normalizeTimestamp(entry.Timestamp)
	year := entry.Timestamp.Year()
	byDate, err := s.loadPartition(year)
	if err != nil {
		return false, err
	}

	for _, entries := range byDate {
		for _, existing := range entries {
			if existing.Content == entry.Content {
				return false, nil
			}
		}
	}

	key := entry.Timestamp.Format(dateLayout)
	byDate[key] = append(byDate[key], entry)

	if err := s.writePartition(year, byDate); err != nil {
		return false, err
	}
	return true, nil
}

// FindByDateRange returns every stored entry whose date falls in the range,
// across all year partitions the range touches, sorted by timestamp. A missing
// partition contributes no entries and is not an error.
func (s *Store) FindByDateRange(r model.DateRange) ([]model.Entry, error) {
	if !s.IsInitialized() {
		return nil, ErrNotInitialized
	}

	var out []model.Entry
	for year := r.Start.Year(); year <= r.End.Year(); year++ {
		byDate, err := s.loadPartition(year)
		if err != nil {
			return nil, err
		}
		for _, entries := range byDate {
			for _, entry := range entries {
				if r.Contains(entry.Timestamp) {
					out = append(out, entry)
				}
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// IsInitialized reports whether the docs directory exists and carries the
// git repository marker.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return false
	}
	_, err = os.Stat(filepath.Join(s.dir, ".git"))
	return err == nil
}

// Initialize verifies the docs location and writes the starter README on first
// run. It fails with ErrLocationMissing when the directory does not exist and
// ErrNotARepository when it is not a git repository, so callers can tell the
// user exactly what to create.
func (s *Store) Initialize() error {
	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: create a git repository at %s first", ErrLocationMissing, s.dir)
	}
	if _, err := os.Stat(filepath.Join(s.dir, ".git")); err != nil {
		return fmt.Errorf("%w: run 'git init' in %s first", ErrNotARepository, s.dir)
	}

	readmePath := filepath.Join(s.dir, "README.md")
	if _, err := os.Stat(readmePath); err == nil {
		return nil
	}
	if err := os.WriteFile(readmePath, []byte(readmeTemplate), 0o644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}
	return nil
}

// normalizeTimestamp rebuilds a timestamp from its wall-clock fields in UTC,
// second precision. Entries parsed back from a partition carry exactly this
// form, so stored timestamps compare by what the file shows regardless of the
// zone the entry was created in.
func normalizeTimestamp(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func (s *Store) loadPartition(year int) (map[string][]model.Entry, error) {
	f, err := os.Open(s.partitionPath(year))
	if os.IsNotExist(err) {
		return make(map[string][]model.Entry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal partition %d: %w", year, err)
	}
	defer f.Close()
	return parsePartition(f), nil
}

// writePartition atomically replaces the year file: write to a temp file, then
// rename over the destination.
func (s *Store) writePartition(year int, byDate map[string][]model.Entry) error {
	path := s.partitionPath(year)
	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(formatPartition(year, byDate)), 0o644); err != nil {
		return fmt.Errorf("writing journal temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing journal partition %s: %w", path, err)
	}
	return nil
}

const readmeTemplate = `# Bragging Document

This is my bragging document where I keep track of my accomplishments.

The core problem it solves:

Both you and your manager forget what you've achieved over time, making performance reviews difficult and potentially costing you recognition, promotions, or raises. By regularly documenting your work, you create a reliable record that helps with performance reviews, manager transitions, and career reflection.

When writing entries, remember to:

* Capture everything, even small wins you think you'll remember (you won't)
* Include "fuzzy work" like mentoring, process improvements, and code quality efforts that often go unrecognized
* Focus on impact and results, not just activities (e.g., "reduced build time by 40%, saving team 2 hours daily" vs "improved build process").
* Document the "why" behind your work to show the bigger picture
* Record what you learned and skills you're developing

Don't oversell or undersell - just make your work sound exactly as good as it is.

Inspired by [Julia Evans' blog post on brag documents](https://jvns.ca/blog/brag-documents/)
`
