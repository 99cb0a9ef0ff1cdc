// Package github fetches merged pull requests through the GitHub search API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	"github.com/xenexes/bragbuddy/internal/model"
)

const (
	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
	pageSize       = 100
	// The search API caps results at 1000; stop paging before that.
	maxPages = 10
)

// Client is an authenticated GitHub REST API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client using the given personal access token.
func NewClient(ctx context.Context, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		httpClient: oauth2.NewClient(ctx, src),
		baseURL:    defaultBaseURL,
	}
}

type searchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []searchItem `json:"items"`
}

type searchItem struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	HTMLURL       string `json:"html_url"`
	Body          string `json:"body"`
	RepositoryURL string `json:"repository_url"`
	PullRequest   *struct {
		MergedAt string `json:"merged_at"`
	} `json:"pull_request"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// FetchMergedPullRequests returns the author's merged pull requests in the
// organization created within the date range, oldest first. Pagination follows
// the search API page size until the result set is exhausted.
func (c *Client) FetchMergedPullRequests(ctx context.Context, organization, author string, r model.DateRange) ([]model.PullRequest, error) {
	query := fmt.Sprintf("is:pr org:%s author:%s archived:false created:%s..%s",
		organization, author, r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	slog.Info("fetching merged pull requests",
		"author", author, "org", organization,
		"from", r.Start.Format("2006-01-02"), "to", r.End.Format("2006-01-02"))

	var items []searchItem
	for page := 1; ; page++ {
		if page > maxPages {
			slog.Warn("reached search API pagination limit", "maxResults", maxPages*pageSize)
			break
		}

		resp, err := c.searchPage(ctx, query, page)
		if err != nil {
			return nil, err
		}
		if len(resp.Items) == 0 {
			break
		}
		items = append(items, resp.Items...)
		if len(resp.Items) < pageSize || len(items) >= resp.TotalCount {
			break
		}
	}

	var prs []model.PullRequest
	for _, item := range items {
		if item.PullRequest == nil || item.PullRequest.MergedAt == "" {
			continue
		}
		mergedAt, err := time.Parse(time.RFC3339, item.PullRequest.MergedAt)
		if err != nil {
			slog.Warn("skipping pull request with unparsable merge time",
				"number", item.Number, "mergedAt", item.PullRequest.MergedAt)
			continue
		}
		// One extra request per merged pull request; the search endpoint
		// does not carry the head ref.
		branch, err := c.headRef(ctx, item.RepositoryURL, item.Number)
		if err != nil {
			slog.Warn("fetching pull request head ref failed", "number", item.Number, "error", err)
		}
		prs = append(prs, model.PullRequest{
			Number:      item.Number,
			Title:       item.Title,
			URL:         item.HTMLURL,
			MergedAt:    mergedAt.UTC(),
			Description: item.Body,
			BranchName:  branch,
		})
	}

	sort.SliceStable(prs, func(i, j int) bool {
		return prs[i].MergedAt.Before(prs[j].MergedAt)
	})
	return prs, nil
}

// headRef fetches the source branch name of a pull request. Failures are not
// fatal to a sync; they only lose the branch as a ticket key source.
func (c *Client) headRef(ctx context.Context, repositoryURL string, number int) (string, error) {
	if repositoryURL == "" {
		return "", nil
	}

	endpoint := fmt.Sprintf("%s/pulls/%d", repositoryURL, number)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("github API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("github API error: HTTP %d", resp.StatusCode)
	}

	var detail struct {
		Head struct {
			Ref string `json:"ref"`
		} `json:"head"`
	}
	if err := json.Unmarshal(body, &detail); err != nil {
		return "", fmt.Errorf("decoding pull request response: %w", err)
	}
	return detail.Head.Ref, nil
}

func (c *Client) searchPage(ctx context.Context, query string, page int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", "created")
	params.Set("order", "desc")
	params.Set("per_page", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))

	endpoint := c.baseURL + "/search/issues?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("github API error: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("github API error: HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &sr, nil
}
