package search

import (
	"context"
	"sort"
	"sync"
	"time"

	"gh-talent-scout/internal/api/github"
	"gh-talent-scout/internal/models"
	"gh-talent-scout/internal/storage/redis"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxTopRepos = 5

// enrichProfiles turns usernames into candidates with bounded parallelism.
// Usernames whose profile cannot be fetched are dropped silently; each
// successful fetch is cached immediately so a retried search skips it.
// Completion order is undefined; the result is an unordered set until
// ranking sorts it.
func (s *Service) enrichProfiles(ctx context.Context, usernames []string) []models.Candidate {
	var mu sync.Mutex
	candidates := make([]models.Candidate, 0, len(usernames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichWorkers)

	for _, username := range usernames {
		g.Go(func() error {
			candidate := s.enrichOne(gctx, username)
			if candidate == nil {
				return nil
			}

			mu.Lock()
			candidates = append(candidates, *candidate)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return candidates
}

func (s *Service) enrichOne(ctx context.Context, username string) *models.Candidate {
	if cached, err := s.cache.GetProfile(ctx, username); err == nil {
		return cached
	}

	profile, err := s.client.GetProfile(ctx, username)
	if err != nil || profile == nil {
		s.logger.Debug("dropping candidate without profile", zap.String("username", username))
		return nil
	}

	repos, _ := s.client.GetRepos(ctx, username)
	contributions, _ := s.client.GetRecentContributions(ctx, username)

	candidate := toCandidate(profile, repos, contributions)

	if err := s.cache.SetProfile(ctx, candidate.Username, candidate, redis.ProfileCacheTTL); err != nil {
		s.logger.Warn("failed to cache profile", zap.String("username", username), zap.Error(err))
	}

	return candidate
}

// enhance runs the second parallel pass: skill detection per candidate.
// Any per-candidate panic drops that candidate from the enhanced set; the
// basic profile is already cached, so a retried search does not refetch it.
func (s *Service) enhance(ctx context.Context, candidates []models.Candidate) []models.Candidate {
	var mu sync.Mutex
	enhanced := make([]models.Candidate, 0, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichWorkers)

	for i := range candidates {
		candidate := candidates[i]
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("enhancement panic, dropping candidate",
						zap.String("username", candidate.Username),
						zap.Any("panic", r),
					)
				}
			}()

			starredRaw, _ := s.client.GetStarred(gctx, candidate.Username)
			starred := toRepos(starredRaw, len(starredRaw))

			candidate.DetectedSkills = s.detector.Detect(candidate.Bio, candidate.TopRepos, starred)

			mu.Lock()
			enhanced = append(enhanced, candidate)
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return enhanced
}

func toCandidate(profile *github.RawProfile, repos []github.RawRepo, contributions int) *models.Candidate {
	now := time.Now()

	ageDays := 0
	if !profile.CreatedAt.IsZero() {
		ageDays = int(now.Sub(profile.CreatedAt).Hours() / 24)
	}

	owned := make([]github.RawRepo, 0, len(repos))
	for _, repo := range repos {
		if !repo.Fork {
			owned = append(owned, repo)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].StargazersCount > owned[j].StargazersCount
	})

	languageSet := make(map[string]bool)
	for _, repo := range owned {
		if repo.Language != "" {
			languageSet[repo.Language] = true
		}
	}
	languages := make([]string, 0, len(languageSet))
	for lang := range languageSet {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	return &models.Candidate{
		Username:       profile.Login,
		Name:           profile.Name,
		Bio:            profile.Bio,
		Location:       profile.Location,
		Followers:      profile.Followers,
		PublicRepos:    profile.PublicRepos,
		Contributions:  contributions,
		AccountAgeDays: ageDays,
		Languages:      languages,
		TopRepos:       toRepos(owned, maxTopRepos),
		ProfileURL:     profile.HTMLURL,
		AvatarURL:      profile.AvatarURL,
		FetchedAt:      now,
	}
}

func toRepos(raw []github.RawRepo, limit int) []models.Repo {
	if limit > len(raw) {
		limit = len(raw)
	}

	out := make([]models.Repo, 0, limit)
	for _, repo := range raw[:limit] {
		var languages []string
		if repo.Language != "" {
			languages = []string{repo.Language}
		}
		out = append(out, models.Repo{
			Name:        repo.Name,
			Description: repo.Description,
			Stars:       repo.StargazersCount,
			Languages:   languages,
			URL:         repo.HTMLURL,
		})
	}
	return out
}
