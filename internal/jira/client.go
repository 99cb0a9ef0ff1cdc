// Package jira fetches resolved issues from the Jira Cloud REST API and
// filters them through the involvement analyzer, so only tickets the user was
// actually driving end up in the journal.
package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xenexes/bragbuddy/internal/config"
	"github.com/xenexes/bragbuddy/internal/involvement"
	"github.com/xenexes/bragbuddy/internal/model"
)

const pageSize = 50

// Client is an authenticated Jira Cloud API client.
type Client struct {
	httpClient *http.Client
	cfg        config.JiraConfig
}

// NewClient creates a client for the configured Jira site.
func NewClient(cfg config.JiraConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

func (c *Client) authHeader() string {
	credentials := c.cfg.Email + ":" + c.cfg.APIToken
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}

// FetchResolvedIssues returns the issues the user drove to completion inside
// the date range. Each candidate from the JQL query is checked against the
// involvement analyzer using the user's account id; issues the user was never
// assigned to while in progress are dropped.
func (c *Client) FetchResolvedIssues(ctx context.Context, email string, r model.DateRange) ([]model.Issue, error) {
	accountID := c.lookupAccountID(ctx, email)
	slog.Info("resolved user account id", "email", email, "accountId", accountID)

	jql := BuildJQL(c.cfg.JQLTemplate, email, r)
	raw, err := c.searchAll(ctx, jql)
	if err != nil {
		return nil, err
	}
	slog.Info("fetched resolved issues from JQL", "count", len(raw))

	var out []model.Issue
	for _, issue := range raw {
		ticket := involvement.Ticket{
			AssigneeEmail: userEmail(issue.Fields.Assignee),
			EngineerEmail: userEmail(issue.Fields.Engineer),
			Changelog:     changeRecords(issue),
		}
		if !involvement.Involved(ticket, email, accountID, r) {
			slog.Debug("dropping issue without qualifying involvement", "issue", issue.Key)
			continue
		}
		domain, err := toDomain(issue, c.cfg.URL)
		if err != nil {
			slog.Warn("skipping issue with unusable dates", "issue", issue.Key, "error", err)
			continue
		}
		out = append(out, domain)
	}
	return out, nil
}

// FetchIssuesByKeys loads specific issues by key. These are explicit
// references harvested from the user's own pull requests, so no involvement
// filter is applied.
func (c *Client) FetchIssuesByKeys(ctx context.Context, keys []string) ([]model.Issue, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	jql := fmt.Sprintf("key IN (%s)", strings.Join(keys, ", "))
	raw, err := c.searchAll(ctx, jql)
	if err != nil {
		return nil, err
	}

	var out []model.Issue
	for _, issue := range raw {
		domain, err := toDomain(issue, c.cfg.URL)
		if err != nil {
			slog.Warn("skipping issue with unusable dates", "issue", issue.Key, "error", err)
			continue
		}
		out = append(out, domain)
	}
	return out, nil
}

// lookupAccountID resolves the user's stable account id from their email.
// Failures are logged and reported as an empty id; the involvement analyzer
// then falls back to current-assignee matching only.
func (c *Client) lookupAccountID(ctx context.Context, email string) string {
	endpoint := c.cfg.URL + "/rest/api/3/user/search?" + url.Values{"query": {email}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		slog.Warn("building account id request failed", "error", err)
		return ""
	}
	req.Header.Set("Authorization", c.authHeader())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("account id lookup failed", "email", email, "error", err)
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK {
		slog.Warn("account id lookup failed", "email", email, "status", resp.StatusCode)
		return ""
	}

	var users []userDTO
	if err := json.Unmarshal(body, &users); err != nil {
		slog.Warn("decoding account id response failed", "error", err)
		return ""
	}
	for _, user := range users {
		if user.EmailAddress == email {
			return user.AccountID
		}
	}
	return ""
}

// searchAll pages through the search endpoint using nextPageToken until the
// result set is exhausted. The changelog is expanded so the involvement
// analyzer can replay each issue's history without extra requests.
func (c *Client) searchAll(ctx context.Context, jql string) ([]issueDTO, error) {
	var (
		all       []issueDTO
		pageToken string
	)
	for {
		params := url.Values{}
		params.Set("jql", jql)
		params.Set("maxResults", strconv.Itoa(pageSize))
		params.Set("fields", "*navigable")
		params.Set("expand", "changelog")
		if pageToken != "" {
			params.Set("nextPageToken", pageToken)
		}

		endpoint := c.cfg.URL + "/rest/api/3/search/jql?" + params.Encode()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", c.authHeader())
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("jira API request failed: %w", err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response body: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("jira API error: %s", apiErrorMessage(resp.StatusCode, body))
		}

		var page searchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decoding search response: %w", err)
		}

		all = append(all, page.Issues...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

func apiErrorMessage(status int, body []byte) string {
	var apiErr errorResponse
	if json.Unmarshal(body, &apiErr) == nil {
		if len(apiErr.ErrorMessages) > 0 {
			return strings.Join(apiErr.ErrorMessages, ", ")
		}
		if len(apiErr.Errors) > 0 {
			parts := make([]string, 0, len(apiErr.Errors))
			for field, msg := range apiErr.Errors {
				parts = append(parts, field+": "+msg)
			}
			return strings.Join(parts, ", ")
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func userEmail(user *userDTO) string {
	if user == nil {
		return ""
	}
	return user.EmailAddress
}
