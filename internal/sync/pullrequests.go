package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/xenexes/bragbuddy/internal/config"
	"github.com/xenexes/bragbuddy/internal/model"
	"github.com/xenexes/bragbuddy/internal/timecalc"
)

// PullRequestSyncer imports merged pull requests as journal entries.
type PullRequestSyncer struct {
	source  PullRequestSource
	journal Journal
	cfg     config.GitHubConfig
}

// NewPullRequestSyncer wires a pull request source to the journal.
func NewPullRequestSyncer(source PullRequestSource, journal Journal, cfg config.GitHubConfig) *PullRequestSyncer {
	return &PullRequestSyncer{source: source, journal: journal, cfg: cfg}
}

// Sync fetches the user's merged pull requests for the timeframe and writes
// them to the journal unless printOnly is set, reporting how many entries were
// added and how many were skipped as duplicates.
func (s *PullRequestSyncer) Sync(ctx context.Context, spec model.TimeframeSpec, printOnly bool) (PullRequestResult, error) {
	if !s.cfg.Enabled {
		slog.Info("github pr sync is disabled")
		return PullRequestResult{Status: StatusDisabled}, nil
	}
	if !s.cfg.Configured() {
		slog.Warn("github pr sync is enabled but not configured")
		return PullRequestResult{Status: StatusNotConfigured}, nil
	}

	r, err := timecalc.Resolve(spec, time.Now())
	if err != nil {
		return PullRequestResult{}, err
	}

	prs, err := s.source.FetchMergedPullRequests(ctx, s.cfg.Organization, s.cfg.Username, r)
	if err != nil {
		return PullRequestResult{}, err
	}
	slog.Info("found merged pull requests", "count", len(prs))

	if printOnly {
		return PullRequestResult{Status: StatusPrintOnly, PullRequests: prs}, nil
	}

	result := PullRequestResult{Status: StatusSynced}
	for _, pr := range prs {
		saved, err := s.journal.Save(model.Entry{
			Timestamp: pr.MergedAt,
			Content:   FormatPullRequest(pr),
		})
		if err != nil {
			return PullRequestResult{}, err
		}
		if saved {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	slog.Info("pull request sync finished", "added", result.Added, "skipped", result.Skipped)
	return result, nil
}
