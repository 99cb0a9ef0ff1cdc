package journal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xenexes/bragbuddy/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("creating .git marker: %v", err)
	}
	return NewStore(dir)
}

func mustSave(t *testing.T, store *Store, entry model.Entry) {
	t.Helper()
	added, err := store.Save(entry)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !added {
		t.Fatalf("Save(%q) reported duplicate, want added", entry.Content)
	}
}

func mustRange(t *testing.T, start, end time.Time) model.DateRange {
	t.Helper()
	r, err := model.NewDateRange(start, end)
	if err != nil {
		t.Fatalf("NewDateRange failed: %v", err)
	}
	return r
}

func TestSaveCreatesPartitionFile(t *testing.T) {
	store := newTestStore(t)
	at := time.Date(2025, 1, 10, 9, 15, 0, 0, time.UTC)

	mustSave(t, store, model.Entry{Timestamp: at, Content: "First"})

	data, err := os.ReadFile(filepath.Join(store.dir, "brags-2025.md"))
	if err != nil {
		t.Fatalf("reading partition: %v", err)
	}
	want := "# Brags 2025\n\n## 2025-01-10\n* 09:15:00 First\n\n"
	if string(data) != want {
		t.Errorf("partition content:\n%q\nwant:\n%q", string(data), want)
	}
}

func TestSaveIsIdempotentOnContent(t *testing.T) {
	store := newTestStore(t)
	first := model.Entry{
		Timestamp: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Content:   "Did the thing",
	}
	mustSave(t, store, first)

	// Same content, different timestamp in the same year: still a duplicate.
	added, err := store.Save(model.Entry{
		Timestamp: time.Date(2025, 3, 2, 17, 30, 0, 0, time.UTC),
		Content:   "Did the thing",
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if added {
		t.Error("duplicate content reported as added, want skipped")
	}

	entries, err := store.FindByDateRange(mustRange(t,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
}

func TestSaveKeepsChronologicalOrder(t *testing.T) {
	store := newTestStore(t)
	// Saved out of order on purpose.
	mustSave(t, store, model.Entry{Timestamp: time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC), Content: "Second"})
	mustSave(t, store, model.Entry{Timestamp: time.Date(2025, 1, 10, 14, 30, 0, 0, time.UTC), Content: "Mid"})
	mustSave(t, store, model.Entry{Timestamp: time.Date(2025, 1, 10, 9, 15, 0, 0, time.UTC), Content: "First"})

	entries, err := store.FindByDateRange(mustRange(t,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}

	want := []string{"First", "Mid", "Second"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, content := range want {
		if entries[i].Content != content {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Content, content)
		}
	}
}

func TestFindByDateRangeAcrossYears(t *testing.T) {
	store := newTestStore(t)
	mustSave(t, store, model.Entry{Timestamp: time.Date(2024, 12, 20, 10, 0, 0, 0, time.UTC), Content: "Old year"})
	mustSave(t, store, model.Entry{Timestamp: time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC), Content: "New year"})
	mustSave(t, store, model.Entry{Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), Content: "Outside"})

	entries, err := store.FindByDateRange(mustRange(t,
		time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}

	want := []string{"Old year", "New year"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, content := range want {
		if entries[i].Content != content {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Content, content)
		}
	}
}

func TestSaveRequiresInitializedStore(t *testing.T) {
	entry := model.Entry{
		Timestamp: time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC),
		Content:   "Too early",
	}

	missing := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if _, err := missing.Save(entry); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Save on missing directory = %v, want ErrNotInitialized", err)
	}

	// Directory exists but was never set up as a repository.
	bare := NewStore(t.TempDir())
	if _, err := bare.Save(entry); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Save on bare directory = %v, want ErrNotInitialized", err)
	}
}

func TestFindByDateRangeRequiresInitializedStore(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := store.FindByDateRange(mustRange(t,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))
	if !errors.Is(err, ErrNotInitialized) {
		t.Errorf("FindByDateRange = %v, want ErrNotInitialized", err)
	}
}

func TestSaveNormalizesZonedTimestamps(t *testing.T) {
	store := newTestStore(t)
	seed := `# Brags 2025

## 2025-01-10
* 09:30:00 Morning entry
`
	if err := os.WriteFile(filepath.Join(store.dir, "brags-2025.md"), []byte(seed), 0o644); err != nil {
		t.Fatalf("seeding partition: %v", err)
	}

	// 10:00 wall clock in a +02:00 zone is 08:00 UTC as an instant; the
	// section must still be ordered by the times the file shows.
	zone := time.FixedZone("EET", 2*3600)
	mustSave(t, store, model.Entry{
		Timestamp: time.Date(2025, 1, 10, 10, 0, 0, 0, zone),
		Content:   "Later entry",
	})

	data, err := os.ReadFile(filepath.Join(store.dir, "brags-2025.md"))
	if err != nil {
		t.Fatalf("reading partition: %v", err)
	}
	want := "# Brags 2025\n\n## 2025-01-10\n* 09:30:00 Morning entry\n* 10:00:00 Later entry\n\n"
	if string(data) != want {
		t.Errorf("partition content:\n%q\nwant:\n%q", string(data), want)
	}
}

func TestFindByDateRangeMissingPartition(t *testing.T) {
	store := newTestStore(t)
	entries, err := store.FindByDateRange(mustRange(t,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries from missing partition, want 0", len(entries))
	}
}

func TestSavePreservesManualEdits(t *testing.T) {
	store := newTestStore(t)
	manual := `# Brags 2025

## 2025-01-10
* 09:15:00 Hand-written accomplishment
`
	if err := os.WriteFile(filepath.Join(store.dir, "brags-2025.md"), []byte(manual), 0o644); err != nil {
		t.Fatalf("seeding partition: %v", err)
	}

	mustSave(t, store, model.Entry{
		Timestamp: time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC),
		Content:   "Synced entry",
	})

	entries, err := store.FindByDateRange(mustRange(t,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("FindByDateRange failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want the manual and the synced one", len(entries))
	}
	if entries[0].Content != "Hand-written accomplishment" {
		t.Errorf("first entry = %q, want the manual one preserved", entries[0].Content)
	}
}

func TestPartitionFile(t *testing.T) {
	store := NewStore("/docs")
	got := store.PartitionFile(time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC))
	if got != filepath.Join("/docs", "brags-2025.md") {
		t.Errorf("PartitionFile = %q", got)
	}
}

func TestInitializeMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"))
	err := store.Initialize()
	if !errors.Is(err, ErrLocationMissing) {
		t.Errorf("Initialize error = %v, want ErrLocationMissing", err)
	}
}

func TestInitializeNotARepository(t *testing.T) {
	store := NewStore(t.TempDir())
	err := store.Initialize()
	if !errors.Is(err, ErrNotARepository) {
		t.Errorf("Initialize error = %v, want ErrNotARepository", err)
	}
}

func TestInitializeWritesReadmeOnce(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatalf("creating .git marker: %v", err)
	}
	store := NewStore(dir)

	if err := store.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	readmePath := filepath.Join(dir, "README.md")
	if _, err := os.Stat(readmePath); err != nil {
		t.Fatalf("README.md missing after Initialize: %v", err)
	}

	custom := []byte("# My own notes\n")
	if err := os.WriteFile(readmePath, custom, 0o644); err != nil {
		t.Fatalf("overwriting README: %v", err)
	}
	if err := store.Initialize(); err != nil {
		t.Fatalf("second Initialize failed: %v", err)
	}
	data, err := os.ReadFile(readmePath)
	if err != nil {
		t.Fatalf("reading README: %v", err)
	}
	if string(data) != string(custom) {
		t.Error("second Initialize overwrote an existing README")
	}

	if !store.IsInitialized() {
		t.Error("IsInitialized = false after Initialize")
	}
}
