package search

import (
	"context"
	"fmt"
	"time"

	"gh-talent-scout/internal/api/github"
	"gh-talent-scout/internal/location"
	"gh-talent-scout/internal/models"
	"gh-talent-scout/internal/ranking"
	"gh-talent-scout/internal/skills"
	"gh-talent-scout/internal/storage/postgres"
	"gh-talent-scout/internal/storage/redis"

	"go.uber.org/zap"
)

// MaxCandidates is the hard cap on candidates returned per search.
// Ranking always happens before this truncation.
const MaxCandidates = 25

// DataClient is the remote-data surface the orchestrator needs. The
// concrete client owns retries, timeouts and rate-limit bookkeeping.
type DataClient interface {
	SearchUsers(ctx context.Context, query string) ([]string, error)
	GetProfile(ctx context.Context, username string) (*github.RawProfile, error)
	GetRepos(ctx context.Context, username string) ([]github.RawRepo, error)
	GetStarred(ctx context.Context, username string) ([]github.RawRepo, error)
	GetRecentContributions(ctx context.Context, username string) (int, error)
	RemainingRequests() int
}

// Options are the orchestrator tunables.
type Options struct {
	MinResultsThreshold int
	MinScore            float64
	EnrichWorkers       int
}

// Service drives one search call through the pipeline: cache check,
// progressive broadening, parallel enrichment, scoring, ranking, cache
// write, response assembly. Every failure path degrades to fewer results;
// only a malformed job requirement aborts.
type Service struct {
	client   DataClient
	cache    *redis.Cache
	resolver *location.Resolver
	detector *skills.Detector
	scorer   *ranking.Scorer
	store    *postgres.Store // optional history store, may be nil
	logger   *zap.Logger

	minResultsThreshold int
	minScore            float64
	enrichWorkers       int
}

func New(client DataClient, cache *redis.Cache, resolver *location.Resolver, store *postgres.Store, logger *zap.Logger, opts Options) *Service {
	if opts.MinResultsThreshold <= 0 {
		opts.MinResultsThreshold = 10
	}
	if opts.EnrichWorkers <= 0 {
		opts.EnrichWorkers = 8
	}

	return &Service{
		client:              client,
		cache:               cache,
		resolver:            resolver,
		detector:            skills.NewDetector(),
		scorer:              ranking.NewScorer(resolver),
		store:               store,
		logger:              logger,
		minResultsThreshold: opts.MinResultsThreshold,
		minScore:            opts.MinScore,
		enrichWorkers:       opts.EnrichWorkers,
	}
}

// Search runs the full pipeline for one job requirement. Always returns a
// well-formed response unless the requirement itself is invalid.
func (s *Service) Search(ctx context.Context, job *models.JobRequirement) (*models.SearchResponse, error) {
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirement: %w", err)
	}

	start := time.Now()
	key := redis.SearchKey(job)

	if cached, err := s.cache.GetSearchResults(ctx, key); err == nil {
		return s.respondFromCache(ctx, key, cached, start), nil
	}

	var warnings []string

	criteria := BuildCriteria(job)
	hierarchy := s.resolver.Parse(job.PrimaryLocation())

	s.logger.Info("starting candidate search",
		zap.String("query", criteria.QueryString),
		zap.String("cache_key", key),
	)

	plan := s.buildPlan(criteria, hierarchy)
	usernames, broadened, searchWarnings := s.runPlan(ctx, plan)
	warnings = append(warnings, searchWarnings...)

	if broadened > 0 {
		warnings = append(warnings, fmt.Sprintf("location search broadened %d time(s) to find enough candidates", broadened))
	}

	candidates := s.enrichProfiles(ctx, usernames)
	enhanced := s.enhance(ctx, candidates)

	scores := s.scorer.Rank(enhanced, job.RequiredSkills, job.PrimaryLocation(), s.minScore)
	if len(scores) > MaxCandidates {
		scores = scores[:MaxCandidates]
	}

	ranked := reorder(enhanced, scores)

	s.writeCache(ctx, key, ranked)

	response := s.assemble(ranked, len(usernames), false, start, warnings)
	s.recordRun(key, nil, &response.Metadata)
	return response, nil
}

// respondFromCache serves the HIT path: cached usernames plus their cached
// profiles. Usernames whose profile entries expired go through both
// enrichment passes again, so a recovered candidate carries detected skills
// and its refreshed profile replaces the basic one written by the first
// pass. Usernames that cannot be recovered are dropped with a warning.
func (s *Service) respondFromCache(ctx context.Context, key string, usernames []string, start time.Time) *models.SearchResponse {
	s.logger.Info("cache hit",
		zap.String("cache_key", key),
		zap.Int("usernames", len(usernames)),
	)

	byName := make(map[string]*models.Candidate, len(usernames))
	var expired []string

	for _, username := range usernames {
		candidate, err := s.cache.GetProfile(ctx, username)
		if err != nil {
			expired = append(expired, username)
			continue
		}
		byName[username] = candidate
	}

	if len(expired) > 0 {
		refreshed := s.enhance(ctx, s.enrichProfiles(ctx, expired))
		for i := range refreshed {
			if err := s.cache.SetProfile(ctx, refreshed[i].Username, &refreshed[i], redis.ProfileCacheTTL); err != nil {
				s.logger.Warn("failed to cache profile", zap.String("username", refreshed[i].Username), zap.Error(err))
			}
			byName[refreshed[i].Username] = &refreshed[i]
		}
	}

	var warnings []string
	candidates := make([]models.Candidate, 0, len(usernames))
	for _, username := range usernames {
		candidate, ok := byName[username]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("cached candidate %s could not be recovered", username))
			continue
		}
		candidates = append(candidates, *candidate)
	}

	response := s.assemble(candidates, len(usernames), true, start, warnings)
	s.recordRun(key, nil, &response.Metadata)
	return response
}

// reorder arranges candidates to follow the ranked score order. Scores are
// consumed here; only the resulting order survives into the response.
func reorder(candidates []models.Candidate, scores []models.CandidateScore) []models.Candidate {
	byName := make(map[string]*models.Candidate, len(candidates))
	for i := range candidates {
		byName[candidates[i].Username] = &candidates[i]
	}

	ranked := make([]models.Candidate, 0, len(scores))
	for _, score := range scores {
		if candidate, ok := byName[score.Username]; ok {
			ranked = append(ranked, *candidate)
		}
	}
	return ranked
}

// writeCache stores the top-N username list and each top-N profile. Only
// the survivors are cached, to bound cache growth. Failures are logged and
// swallowed; a cache write never fails the search.
func (s *Service) writeCache(ctx context.Context, key string, ranked []models.Candidate) {
	usernames := make([]string, len(ranked))
	for i := range ranked {
		usernames[i] = ranked[i].Username
	}

	if err := s.cache.SetSearchResults(ctx, key, usernames, redis.SearchResultsCacheTTL); err != nil {
		s.logger.Warn("failed to cache search results", zap.String("cache_key", key), zap.Error(err))
	}

	for i := range ranked {
		if err := s.cache.SetProfile(ctx, ranked[i].Username, &ranked[i], redis.ProfileCacheTTL); err != nil {
			s.logger.Warn("failed to cache profile", zap.String("username", ranked[i].Username), zap.Error(err))
		}
	}
}

func (s *Service) assemble(candidates []models.Candidate, totalFound int, cacheHit bool, start time.Time, warnings []string) *models.SearchResponse {
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	if len(candidates) == 0 {
		warnings = append(warnings, "no candidates found for the given criteria")
	}

	return &models.SearchResponse{
		Candidates: candidates,
		Metadata: models.SearchResult{
			TotalFound:        totalFound,
			Returned:          len(candidates),
			CacheHit:          cacheHit,
			ExecutionMS:       time.Since(start).Milliseconds(),
			RemainingRequests: s.client.RemainingRequests(),
			Warnings:          warnings,
		},
	}
}

// recordRun appends the run to the history store, fire and forget.
func (s *Service) recordRun(key string, searchID *int64, result *models.SearchResult) {
	if s.store == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.store.RecordRun(ctx, searchID, key, result); err != nil {
			s.logger.Warn("failed to record search run", zap.Error(err))
		}
	}()
}
