package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenexes/bragbuddy/internal/gitrepo"
	"github.com/xenexes/bragbuddy/internal/journal"
	"github.com/xenexes/bragbuddy/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add an accomplishment to the journal",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		store := journal.NewStore(cfg.DocsLocation)

		entry := model.Entry{
			Timestamp: time.Now(),
			Content:   strings.Join(args, " "),
		}
		added, err := store.Save(entry)
		if err != nil {
			if errors.Is(err, journal.ErrNotInitialized) {
				return fmt.Errorf("brag document not initialized, run 'brag init' first")
			}
			return err
		}
		if !added {
			fmt.Println("Already recorded, nothing to do.")
			return nil
		}
		fmt.Println("Added.")

		if cfg.RepoSync {
			repo := gitrepo.New(cfg.DocsLocation)
			if err := repo.CommitAndPush(store.PartitionFile(entry.Timestamp), commitMessage(entry.Content)); err != nil {
				slog.Warn("git sync failed", "error", err)
			}
		}
		return nil
	},
}

// commitMessage shortens the entry text to a readable git subject line.
func commitMessage(content string) string {
	if len(content) > 50 {
		return content[:50] + "..."
	}
	return content
}
