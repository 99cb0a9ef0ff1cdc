package sync

import (
	"context"
	"testing"
	"time"

	"github.com/xenexes/bragbuddy/internal/config"
	"github.com/xenexes/bragbuddy/internal/model"
)

func TestPullRequestSyncAddsAndSkips(t *testing.T) {
	mergedAt := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	source := &fakePullSource{prs: []model.PullRequest{
		pr(1, "First change", mergedAt),
		pr(2, "Second change", mergedAt.Add(time.Hour)),
	}}
	journal := &fakeJournal{}
	syncer := NewPullRequestSyncer(source, journal, githubCfg())

	result, err := syncer.Sync(context.Background(), model.Predefined(model.LastWeek), false)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Status != StatusSynced {
		t.Fatalf("Status = %v, want StatusSynced", result.Status)
	}
	if result.Added != 2 || result.Skipped != 0 {
		t.Errorf("Added/Skipped = %d/%d, want 2/0", result.Added, result.Skipped)
	}

	// A second run re-delivers the same pull requests.
	result, err = syncer.Sync(context.Background(), model.Predefined(model.LastWeek), false)
	if err != nil {
		t.Fatalf("second Sync failed: %v", err)
	}
	if result.Added != 0 || result.Skipped != 2 {
		t.Errorf("second run Added/Skipped = %d/%d, want 0/2", result.Added, result.Skipped)
	}
	if len(journal.saved) != 2 {
		t.Errorf("journal holds %d entries, want 2", len(journal.saved))
	}
}

func TestPullRequestSyncPrintOnly(t *testing.T) {
	source := &fakePullSource{prs: []model.PullRequest{
		pr(1, "A change", time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)),
	}}
	journal := &fakeJournal{}
	syncer := NewPullRequestSyncer(source, journal, githubCfg())

	result, err := syncer.Sync(context.Background(), model.Predefined(model.LastWeek), true)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Status != StatusPrintOnly {
		t.Errorf("Status = %v, want StatusPrintOnly", result.Status)
	}
	if len(result.PullRequests) != 1 {
		t.Errorf("got %d pull requests, want 1", len(result.PullRequests))
	}
	if len(journal.saved) != 0 {
		t.Errorf("print-only run wrote %d entries", len(journal.saved))
	}
}

func TestPullRequestSyncDisabled(t *testing.T) {
	cfg := githubCfg()
	cfg.Enabled = false
	syncer := NewPullRequestSyncer(&fakePullSource{}, &fakeJournal{}, cfg)

	result, err := syncer.Sync(context.Background(), model.Predefined(model.LastWeek), false)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Status != StatusDisabled {
		t.Errorf("Status = %v, want StatusDisabled", result.Status)
	}
}

func TestPullRequestSyncNotConfigured(t *testing.T) {
	syncer := NewPullRequestSyncer(&fakePullSource{}, &fakeJournal{}, config.GitHubConfig{Enabled: true})

	result, err := syncer.Sync(context.Background(), model.Predefined(model.LastWeek), false)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if result.Status != StatusNotConfigured {
		t.Errorf("Status = %v, want StatusNotConfigured", result.Status)
	}
}
