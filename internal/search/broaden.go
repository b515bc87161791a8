package search

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"gh-talent-scout/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// broadenStep is one rung of the progressive broadening ladder. Steps run
// in order until one returns enough usernames; the first sufficient result
// wins, bounding query cost.
type broadenStep struct {
	level string
	run   func(ctx context.Context, prior []string) ([]string, error)
}

// buildPlan turns the initial criteria and its parsed location into the
// ordered broadening ladder:
//
//	city scope:  initial -> state -> country
//	state scope: initial -> multi-city union -> country
//	otherwise:   initial only
func (s *Service) buildPlan(criteria models.SearchCriteria, hierarchy models.LocationHierarchy) []broadenStep {
	plan := []broadenStep{{
		level: "initial",
		run: func(ctx context.Context, _ []string) ([]string, error) {
			return s.client.SearchUsers(ctx, criteria.QueryString)
		},
	}}

	if criteria.LocationFilter == "" {
		return plan
	}

	stateQuery := func() string {
		return criteria.WithLocation(LocationToken(hierarchy.State)).QueryString
	}
	countryQuery := func() string {
		return criteria.WithLocation(LocationToken(hierarchy.Country)).QueryString
	}

	switch {
	case hierarchy.City != "":
		if hierarchy.State != "" {
			plan = append(plan, broadenStep{
				level: "state",
				run: func(ctx context.Context, _ []string) ([]string, error) {
					return s.client.SearchUsers(ctx, stateQuery())
				},
			})
		}
		if hierarchy.Country != "" {
			plan = append(plan, broadenStep{
				level: "country",
				run: func(ctx context.Context, _ []string) ([]string, error) {
					return s.client.SearchUsers(ctx, countryQuery())
				},
			})
		}
	case hierarchy.State != "":
		cities := s.resolver.CitiesForState(hierarchy.State)
		if len(cities) > 0 {
			plan = append(plan, broadenStep{
				level: "multi-city",
				run: func(ctx context.Context, prior []string) ([]string, error) {
					return s.multiCitySearch(ctx, criteria, cities, prior)
				},
			})
		}
		if hierarchy.Country != "" {
			plan = append(plan, broadenStep{
				level: "country",
				run: func(ctx context.Context, _ []string) ([]string, error) {
					return s.client.SearchUsers(ctx, countryQuery())
				},
			})
		}
	}

	return plan
}

// runPlan executes the ladder. Returns the first sufficient result set, or
// the largest set seen when no step reaches the threshold; an exhausted
// ladder is a normal outcome.
func (s *Service) runPlan(ctx context.Context, plan []broadenStep) (usernames []string, broadened int, warnings []string) {
	var best []string

	for i, step := range plan {
		result, err := step.run(ctx, best)
		if err != nil {
			s.logger.Warn("search step failed",
				zap.String("level", step.level),
				zap.Error(err),
			)
			warnings = append(warnings, fmt.Sprintf("search at %s level failed", step.level))
			continue
		}

		if i > 0 {
			broadened++
			s.logger.Info("broadened search",
				zap.String("level", step.level),
				zap.Int("results", len(result)),
			)
		}

		if len(result) > len(best) {
			best = result
		}

		if len(result) >= s.minResultsThreshold {
			return result, broadened, warnings
		}
	}

	return best, broadened, warnings
}

// multiCitySearch fans out one query per representative city of the state
// and unions the usernames with the pre-broadening set, deduplicated.
// Per-city completion order is undefined; the union is sorted for
// reproducibility before it is ranked anyway.
func (s *Service) multiCitySearch(ctx context.Context, criteria models.SearchCriteria, cities []string, prior []string) ([]string, error) {
	var mu sync.Mutex
	seen := make(map[string]bool, len(prior))
	for _, username := range prior {
		seen[username] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.enrichWorkers)

	for _, city := range cities {
		query := criteria.WithLocation(LocationToken(city)).QueryString
		g.Go(func() error {
			usernames, err := s.client.SearchUsers(gctx, query)
			if err != nil {
				// one sparse city must not sink the fan-out
				s.logger.Debug("multi-city query failed", zap.String("query", query), zap.Error(err))
				return nil
			}

			mu.Lock()
			for _, username := range usernames {
				seen[username] = true
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	union := make([]string, 0, len(seen))
	for username := range seen {
		union = append(union, username)
	}
	sort.Strings(union)
	return union, nil
}
