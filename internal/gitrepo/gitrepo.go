// Package gitrepo commits journal changes to the brag document's local git
// repository and pushes them to its remote.
package gitrepo

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Service operates on the git repository at the docs directory.
type Service struct {
	dir    string
	author object.Signature
}

// New returns a service for the repository rooted at dir. Commits are authored
// as the bragbuddy tool; the user's own identity stays on manual commits.
func New(dir string) *Service {
	return &Service{
		dir: dir,
		author: object.Signature{
			Name:  "bragbuddy",
			Email: "bragbuddy@localhost",
		},
	}
}

// Commit stages the given file and commits it with the message.
func (s *Service) Commit(file, message string) error {
	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return fmt.Errorf("opening repository %s: %w", s.dir, err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	rel, err := filepath.Rel(s.dir, file)
	if err != nil {
		rel = filepath.Base(file)
	}
	if _, err := worktree.Add(rel); err != nil {
		return fmt.Errorf("staging %s: %w", rel, err)
	}

	author := s.author
	author.When = time.Now()
	if _, err := worktree.Commit(message, &git.CommitOptions{Author: &author}); err != nil {
		return fmt.Errorf("committing %s: %w", rel, err)
	}
	return nil
}

// Push publishes pending commits to the default remote.
func (s *Service) Push() error {
	repo, err := git.PlainOpen(s.dir)
	if err != nil {
		return fmt.Errorf("opening repository %s: %w", s.dir, err)
	}
	if err := repo.Push(&git.PushOptions{}); err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("pushing: %w", err)
	}
	return nil
}

// CommitAndPush commits the file and pushes to the remote in one step.
func (s *Service) CommitAndPush(file, message string) error {
	if err := s.Commit(file, message); err != nil {
		return err
	}
	return s.Push()
}
