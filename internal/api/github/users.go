package github

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
)

const searchPerPage = 100

// SearchUsers runs a user search and returns usernames in API order. An
// empty result is success, not an error.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(searchPerPage))

	data, err := c.get(ctx, "/search/users", params)
	if err != nil {
		c.logger.Error("failed to search users",
			zap.String("query", query),
			zap.Error(err),
		)
		return nil, fmt.Errorf("search users: %w", err)
	}

	var response userSearchResponse
	if err := c.parseResponse(data, &response); err != nil {
		c.logger.Error("failed to parse search response", zap.Error(err))
		return nil, err
	}

	usernames := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Login != "" {
			usernames = append(usernames, item.Login)
		}
	}

	c.logger.Debug("users found",
		zap.Int("total", response.TotalCount),
		zap.Int("returned", len(usernames)),
		zap.String("query", query),
	)

	return usernames, nil
}
