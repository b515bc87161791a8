package github

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"
)

type rawEvent struct {
	Type string `json:"type"`
}

// GetRecentContributions counts recent public push/PR/issue events for a
// user, as a proxy for contribution activity. Failures count as zero.
func (c *Client) GetRecentContributions(ctx context.Context, username string) (int, error) {
	path := fmt.Sprintf("/users/%s/events/public", url.PathEscape(username))

	params := url.Values{}
	params.Set("per_page", "100")

	data, err := c.get(ctx, path, params)
	if err != nil {
		c.logger.Debug("events unavailable",
			zap.String("username", username),
			zap.Error(err),
		)
		return 0, nil
	}

	var events []rawEvent
	if err := c.parseResponse(data, &events); err != nil {
		return 0, nil
	}

	count := 0
	for _, event := range events {
		switch event.Type {
		case "PushEvent", "PullRequestEvent", "IssuesEvent", "PullRequestReviewEvent":
			count++
		}
	}

	return count, nil
}
