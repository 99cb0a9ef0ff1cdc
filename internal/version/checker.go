// Package version reports the running build's version and checks GitHub for
// newer releases.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Version is the build version, overridden at link time:
//
//	-ldflags "-X github.com/xenexes/bragbuddy/internal/version.Version=1.2.3"
var Version = "dev"

const (
	defaultRepository = "xenexes/bragbuddy"
	boxWidth          = 60
)

// Checker queries GitHub releases for a newer version of the tool.
type Checker struct {
	httpClient *http.Client
	baseURL    string
	repository string
	out        io.Writer
}

// NewChecker returns a checker against the project's GitHub repository.
func NewChecker() *Checker {
	return &Checker{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    "https://api.github.com",
		repository: defaultRepository,
		out:        os.Stdout,
	}
}

// CheckForUpdates prints the current version and whether a newer release
// exists. Any failure degrades to a pointer at the releases page; the check
// never blocks normal use of the tool.
func (c *Checker) CheckForUpdates(ctx context.Context) {
	fmt.Fprintf(c.out, "bragbuddy version: %s\n\n", Version)

	latest := c.fetchLatestVersion(ctx)
	if latest == "" {
		fmt.Fprintln(c.out, "Unable to check for updates. Please visit:")
		fmt.Fprintf(c.out, "https://github.com/%s/releases\n", c.repository)
		return
	}

	if newerVersion(Version, latest) {
		c.printUpdateNotice(latest)
	} else {
		fmt.Fprintln(c.out, "You are using the latest version")
	}
}

func (c *Checker) fetchLatestVersion(ctx context.Context) string {
	endpoint := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, c.repository)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("version check request failed", "error", err)
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusOK {
		slog.Debug("version check returned no release", "status", resp.StatusCode)
		return ""
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.Unmarshal(body, &release); err != nil {
		slog.Debug("decoding release response failed", "error", err)
		return ""
	}
	return strings.TrimPrefix(release.TagName, "v")
}

// newerVersion compares dotted numeric versions and reports whether latest is
// strictly newer than current. Non-numeric segments count as zero.
func newerVersion(current, latest string) bool {
	currentParts := versionParts(current)
	latestParts := versionParts(latest)

	n := len(currentParts)
	if len(latestParts) > n {
		n = len(latestParts)
	}
	for i := 0; i < n; i++ {
		c, l := 0, 0
		if i < len(currentParts) {
			c = currentParts[i]
		}
		if i < len(latestParts) {
			l = latestParts[i]
		}
		if l > c {
			return true
		}
		if l < c {
			return false
		}
	}
	return false
}

func versionParts(v string) []int {
	fields := strings.Split(strings.TrimPrefix(v, "v"), ".")
	parts := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			n = 0
		}
		parts[i] = n
	}
	return parts
}

func (c *Checker) printUpdateNotice(latest string) {
	downloadURL := fmt.Sprintf("https://github.com/%s/releases", c.repository)
	border := strings.Repeat("=", boxWidth)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, border)
	fmt.Fprintln(c.out, "A new version of bragbuddy is available!")
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  Current version: %s\n", Version)
	fmt.Fprintf(c.out, "  Latest version:  %s\n", latest)
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "  Download: %s\n", downloadURL)
	fmt.Fprintln(c.out, border)
	fmt.Fprintln(c.out)
}
