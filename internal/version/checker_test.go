package version

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewerVersion(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.0.1", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"1.0", "1.0.1", true},
		{"1.0.1", "1.0", false},
		{"v1.0.0", "1.0.1", true},
		{"dev", "1.0.0", true},
		{"1.9.0", "1.10.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.current+" vs "+tt.latest, func(t *testing.T) {
			if got := newerVersion(tt.current, tt.latest); got != tt.want {
				t.Errorf("newerVersion(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func testChecker(server *httptest.Server, out *strings.Builder) *Checker {
	return &Checker{
		httpClient: server.Client(),
		baseURL:    server.URL,
		repository: "xenexes/bragbuddy",
		out:        out,
	}
}

func TestCheckForUpdatesNewerRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/xenexes/bragbuddy/releases/latest" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		fmt.Fprint(w, `{"tag_name": "v99.0.0"}`)
	}))
	defer server.Close()

	var out strings.Builder
	testChecker(server, &out).CheckForUpdates(context.Background())

	if !strings.Contains(out.String(), "A new version of bragbuddy is available!") {
		t.Errorf("output missing update notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "99.0.0") {
		t.Errorf("output missing latest version:\n%s", out.String())
	}
}

func TestCheckForUpdatesDegradesOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	var out strings.Builder
	testChecker(server, &out).CheckForUpdates(context.Background())

	if !strings.Contains(out.String(), "Unable to check for updates") {
		t.Errorf("output missing degraded notice:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "https://github.com/xenexes/bragbuddy/releases") {
		t.Errorf("output missing releases page pointer:\n%s", out.String())
	}
}
