package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlink-network/devlink/internal/errors"
)

func TestListRepos(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "repo-one", "full_name": "octocat/repo-one", "html_url": "https://github.com/octocat/repo-one", "stargazers_count": 3},
			{"id": 2, "name": "repo-two", "full_name": "octocat/repo-two", "html_url": "https://github.com/octocat/repo-two", "forks_count": 1}
		]`))
	}))
	defer server.Close()

	c := New("test-token", nil)
	c.SetBaseURL(server.URL)

	repos, err := c.ListRepos(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("list repos: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 repos, got %d", len(repos))
	}
	if repos[0].Name != "repo-one" || repos[0].Stars != 3 {
		t.Fatalf("unexpected repo: %+v", repos[0])
	}

	if gotPath != "/users/octocat/repos" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotQuery != "per_page=5&sort=created:asc" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}

func TestListReposUnknownUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c := New("", nil)
	c.SetBaseURL(server.URL)

	_, err := c.ListRepos(context.Background(), "ghost")
	if !errors.IsCode(err, errors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListReposUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer server.Close()

	c := New("", nil)
	c.SetBaseURL(server.URL)

	_, err := c.ListRepos(context.Background(), "octocat")
	if !errors.IsCode(err, errors.CodeUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestListReposEmptyUsername(t *testing.T) {
	c := New("", nil)

	if _, err := c.ListRepos(context.Background(), "  "); !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
