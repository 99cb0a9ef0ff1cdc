// Package config loads bragbuddy settings from BRAG_DOC_* environment
// variables. The resulting Config is constructed once in the command layer and
// passed explicitly to every component that needs it.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// ErrDocsLocationNotSet signals that the required BRAG_DOC variable is unset.
var ErrDocsLocationNotSet = errors.New("BRAG_DOC environment variable not set")

// Config is the root application configuration.
type Config struct {
	// DocsLocation is the directory holding the brag document git repository.
	DocsLocation string
	// RepoSync enables committing and pushing journal changes after an add.
	RepoSync bool
	GitHub   GitHubConfig
	Jira     JiraConfig
}

// GitHubConfig holds the merged pull request sync settings.
type GitHubConfig struct {
	Enabled      bool
	Token        string
	Username     string
	Organization string
}

// Configured reports whether every field required to query the GitHub API is set.
func (c GitHubConfig) Configured() bool {
	return c.Token != "" && c.Username != "" && c.Organization != ""
}

// JiraConfig holds the resolved issue sync settings.
type JiraConfig struct {
	Enabled     bool
	URL         string
	Email       string
	APIToken    string
	JQLTemplate string
}

// Configured reports whether every field required to query the Jira API is set.
func (c JiraConfig) Configured() bool {
	return c.URL != "" && c.Email != "" && c.APIToken != ""
}

// DefaultJQLTemplate matches tickets the user drove to completion inside the
// requested window: currently or historically assigned, once in progress, and
// resolved within the range. {email}, {startDate} and {endDate} are filled in
// per query.
const DefaultJQLTemplate = `
	(
		assignee = "{email}"
		OR
		"Engineer[User Picker (single user)]" = "{email}"
		OR
		assignee WAS "{email}" DURING ("{startDate}", "{endDate}")
	)
	AND status was "In Progress"
	AND statusCategory IN (Done)
	AND "Last Transition Occurred[Date]" >= "{startDate}"
	AND "Last Transition Occurred[Date]" <= "{endDate}"
`

// Load reads the configuration from the environment. Sync sources default to
// enabled; they are skipped at run time when their credentials are missing.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("brag_doc")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("github.pr_sync_enabled", true)
	v.SetDefault("jira.sync_enabled", true)
	v.SetDefault("jira.jql_template", DefaultJQLTemplate)

	// The docs location and repo sync flag live outside the prefixed keys.
	_ = v.BindEnv("location", "BRAG_DOC")
	_ = v.BindEnv("repo_sync", "BRAG_DOC_REPO_SYNC")

	cfg := Config{
		DocsLocation: v.GetString("location"),
		RepoSync:     v.GetBool("repo_sync"),
		GitHub: GitHubConfig{
			Enabled:      v.GetBool("github.pr_sync_enabled"),
			Token:        v.GetString("github.token"),
			Username:     v.GetString("github.username"),
			Organization: v.GetString("github.org"),
		},
		Jira: JiraConfig{
			Enabled:     v.GetBool("jira.sync_enabled"),
			URL:         strings.TrimRight(v.GetString("jira.url"), "/"),
			Email:       v.GetString("jira.email"),
			APIToken:    v.GetString("jira.api_token"),
			JQLTemplate: v.GetString("jira.jql_template"),
		},
	}

	if cfg.DocsLocation == "" {
		return Config{}, ErrDocsLocationNotSet
	}
	return cfg, nil
}
