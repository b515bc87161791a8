package github

import (
	"errors"
	"time"
)

var errNotFound = errors.New("not found")

type errorResponse struct {
	Message string `json:"message"`
}

type userSearchResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Login string `json:"login"`
	} `json:"items"`
}

// RawProfile is the user endpoint payload. Any field may be absent; the
// enrichment layer fills in whatever it gets.
type RawProfile struct {
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Location    string    `json:"location"`
	Followers   int       `json:"followers"`
	PublicRepos int       `json:"public_repos"`
	HTMLURL     string    `json:"html_url"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// RawRepo is the repository list payload, trimmed to the fields the
// pipeline reads.
type RawRepo struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Language        string `json:"language"`
	StargazersCount int    `json:"stargazers_count"`
	HTMLURL         string `json:"html_url"`
	Fork            bool   `json:"fork"`
}
