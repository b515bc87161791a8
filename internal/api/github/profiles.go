package github

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

// GetProfile fetches a single user profile. Both "not found" and transport
// failures come back as a nil profile with a nil error: the orchestrator
// has no retry budget for individual fetches, so a profile it cannot get
// is a profile that does not exist for this search.
func (c *Client) GetProfile(ctx context.Context, username string) (*RawProfile, error) {
	path := fmt.Sprintf("/users/%s", url.PathEscape(username))

	data, err := c.get(ctx, path, nil)
	if err != nil {
		c.logger.Debug("profile unavailable",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, nil
	}

	var profile RawProfile
	if err := c.parseResponse(data, &profile); err != nil {
		c.logger.Error("failed to parse profile", zap.String("username", username), zap.Error(err))
		return nil, nil
	}

	return &profile, nil
}

// GetRepos fetches the user's most recently pushed repositories.
func (c *Client) GetRepos(ctx context.Context, username string) ([]RawRepo, error) {
	path := fmt.Sprintf("/users/%s/repos", url.PathEscape(username))

	params := url.Values{}
	params.Set("sort", "pushed")
	params.Set("per_page", "30")

	data, err := c.get(ctx, path, params)
	if err != nil {
		c.logger.Debug("repos unavailable",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, nil
	}

	var repos []RawRepo
	if err := c.parseResponse(data, &repos); err != nil {
		c.logger.Error("failed to parse repos", zap.String("username", username), zap.Error(err))
		return nil, nil
	}

	return repos, nil
}

// GetStarred fetches a page of the user's starred repositories. A weaker
// skill signal than owned repos, so one page is enough.
func (c *Client) GetStarred(ctx context.Context, username string) ([]RawRepo, error) {
	path := fmt.Sprintf("/users/%s/starred", url.PathEscape(username))

	params := url.Values{}
	params.Set("per_page", "30")

	data, err := c.get(ctx, path, params)
	if err != nil {
		c.logger.Debug("starred repos unavailable",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, nil
	}

	var repos []RawRepo
	if err := c.parseResponse(data, &repos); err != nil {
		return nil, nil
	}

	return repos, nil
}
