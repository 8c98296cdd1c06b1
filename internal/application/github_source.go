package application

import (
	"context"
	"errors"
)

// ErrGithubUserNotFound is returned by RepoSource implementations when the
// username does not exist upstream.
var ErrGithubUserNotFound = errors.New("github user not found")

// GithubRepo is the subset of repository metadata shown on a profile page.
type GithubRepo struct {
	Name        string `json:"name"`
	HTMLURL     string `json:"html_url"`
	Description string `json:"description"`
	Stargazers  int    `json:"stargazers_count"`
	Watchers    int    `json:"watchers_count"`
	Forks       int    `json:"forks_count"`
}

// RepoSource is the opaque external source of a user's public repositories.
type RepoSource interface {
	Repos(ctx context.Context, username string) ([]GithubRepo, error)
}
