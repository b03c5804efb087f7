// Package github proxies public repository listings for profile pages.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/devlink-network/devlink/internal/errors"
	"github.com/devlink-network/devlink/pkg/logger"
)

const defaultBaseURL = "https://api.github.com"

// Repo is the subset of repository fields exposed to profile pages.
type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// Client fetches public repositories for a username.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *logger.Logger
}

// New constructs a client. An empty token means unauthenticated requests,
// which GitHub rate-limits more aggressively but otherwise serves fine.
func New(token string, log *logger.Logger) *Client {
	if log == nil {
		log = logger.NewDefault("github")
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		log:        log,
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = strings.TrimRight(base, "/")
}

// ListRepos returns up to five of the user's most recently created public
// repositories. An unknown username maps to not-found; any other upstream
// failure is reported as such without leaking the raw response.
func (c *Client) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.Validation("username is required")
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc",
		c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Internal("build github request", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Upstream("github request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.NotFound("github profile %q not found", username)
	default:
		c.log.WithContext(ctx).WithField("status", resp.StatusCode).Warn("github returned non-200")
		return nil, errors.Upstream("github request failed", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var repos []Repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, errors.Upstream("decode github response", err)
	}
	return repos, nil
}
