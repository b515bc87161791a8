package redis

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"
	"time"

	"gh-talent-scout/internal/models"
)

const (
	SearchResultsCacheTTL = 1 * time.Hour
	ProfileCacheTTL       = 24 * time.Hour
)

// SearchKey builds the deterministic fingerprint for a job requirement.
// List fields are lowercased and sorted before hashing, so logically equal
// criteria map to the same key regardless of input ordering.
func SearchKey(job *models.JobRequirement) string {
	required := normalizeList(job.RequiredSkills)
	preferred := normalizeList(job.PreferredSkills)
	locations := normalizeList(job.LocationPreferences)

	canonical := strings.Join([]string{
		strings.Join(required, ","),
		strings.Join(preferred, ","),
		strings.Join(locations, ","),
		strings.ToLower(strings.TrimSpace(job.Seniority)),
		fmt.Sprintf("%d", job.MinExperienceYears),
	}, "|")

	digest := sha256.Sum256([]byte(canonical))
	return fmt.Sprintf("search:%x", digest[:8])
}

func ProfileKey(username string) string {
	return fmt.Sprintf("profile:%s", strings.ToLower(username))
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// GetSearchResults returns the cached username list for a search key.
func (c *Cache) GetSearchResults(ctx context.Context, key string) ([]string, error) {
	var usernames []string
	if err := c.Get(ctx, key, &usernames); err != nil {
		return nil, err
	}
	return usernames, nil
}

func (c *Cache) SetSearchResults(ctx context.Context, key string, usernames []string, ttl time.Duration) error {
	return c.Set(ctx, key, usernames, ttl)
}

// GetProfile returns the cached candidate for a username.
func (c *Cache) GetProfile(ctx context.Context, username string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.Get(ctx, ProfileKey(username), &candidate); err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c *Cache) SetProfile(ctx context.Context, username string, candidate *models.Candidate, ttl time.Duration) error {
	return c.Set(ctx, ProfileKey(username), candidate, ttl)
}
