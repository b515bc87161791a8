package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Client for requests to the GitHub REST API. It owns all rate-limit
// bookkeeping; callers read the remaining quota through RemainingRequests
// and never mutate it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	userAgent  string

	remaining atomic.Int64
}

func New(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	c := &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger,
		userAgent: "gh-talent-scout/1.0",
	}
	c.remaining.Store(-1)
	return c
}

// RemainingRequests reports the quota left on the API token, as seen on the
// most recent response. -1 until the first request completes.
func (c *Client) RemainingRequests() int {
	return int(c.remaining.Load())
}

// doRequest for HTTP reqs with retries
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if params != nil {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * time.Second
			c.logger.Debug("retrying request",
				zap.String("url", fullURL),
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		c.trackRateLimit(resp)

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			c.logger.Debug("successful request",
				zap.String("url", fullURL),
				zap.Int("status", resp.StatusCode),
			)
			return body, nil
		}

		c.logger.Warn("API error",
			zap.String("url", fullURL),
			zap.Int("status", resp.StatusCode),
		)

		switch resp.StatusCode {
		case http.StatusForbidden, http.StatusTooManyRequests:
			// secondary rate limit; back off once and retry
			lastErr = fmt.Errorf("rate limit exceeded")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
			}
			continue
		case http.StatusNotFound:
			return nil, errNotFound
		case http.StatusUnprocessableEntity:
			var apiErr errorResponse
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
				return nil, fmt.Errorf("bad request: %s", apiErr.Message)
			}
			return nil, fmt.Errorf("bad request: %s", string(body))
		default:
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
	}

	return nil, fmt.Errorf("request failed after retries: %w", lastErr)
}

func (c *Client) trackRateLimit(resp *http.Response) {
	header := resp.Header.Get("X-RateLimit-Remaining")
	if header == "" {
		return
	}

	remaining, err := strconv.ParseInt(header, 10, 64)
	if err != nil {
		return
	}

	c.remaining.Store(remaining)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, path, params)
}

func (c *Client) parseResponse(data []byte, dest interface{}) error {
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
