// Package github fetches public repositories for the profile import
// endpoint. It is an external collaborator; the application depends only on
// the RepoSource interface defined in the application package.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/devlinkhq/devlink/internal/application"
)

type Client struct {
	BaseURL string
	Token   string // optional; raises the API rate limit when set
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Repos(ctx context.Context, username string) ([]application.GithubRepo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.BaseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == http.StatusNotFound {
		return nil, application.ErrGithubUserNotFound
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: unexpected status %s", res.Status)
	}

	var repos []application.GithubRepo
	if err := json.NewDecoder(res.Body).Decode(&repos); err != nil {
		return nil, err
	}
	return repos, nil
}

var _ application.RepoSource = (*Client)(nil)
