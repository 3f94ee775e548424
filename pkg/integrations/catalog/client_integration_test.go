//go:build integration

package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/catalogprobe/pkg/errors"
)

// The GitHub repository API serves one JSON object per repository, which is
// the shape of a catalog entry.
const githubRepos = "https://api.github.com/repos/golang"

func TestClient_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := NewClient(ctx, githubRepos, "go", 10*time.Second)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}

	if !c.HasKey("description") {
		t.Error("HasKey(description) = false")
	}
	if c.HasKey("no_such_key") {
		t.Error("HasKey(no_such_key) = true")
	}

	ok, err := c.IsURLValid(ctx, "html_url")
	if err != nil || !ok {
		t.Errorf("IsURLValid(html_url) = %v, %v", ok, err)
	}

	age, err := c.AgeInMonths("created_at", "%Y-%m-%dT%H:%M:%SZ")
	if err != nil {
		t.Fatalf("AgeInMonths(created_at) error: %v", err)
	}
	if age < 100 {
		t.Errorf("AgeInMonths(created_at) = %d, want at least 100", age)
	}
}

func TestNewClientNotFound_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := NewClient(ctx, githubRepos, "this-repo-should-not-exist-12345", 10*time.Second)
	if !errors.Is(err, errors.ErrCodeFetchFailed) {
		t.Errorf("NewClient() error = %v, want FETCH_FAILED", err)
	}
}
