package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gh-talent-scout/internal/models"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// SaveSearch stores a named job requirement for periodic re-runs. Saving
// under an existing name replaces the requirement.
func (s *Store) SaveSearch(ctx context.Context, name string, job *models.JobRequirement) (int64, error) {
	payload, err := json.Marshal(job)
	if err != nil {
		return 0, fmt.Errorf("marshal requirement: %w", err)
	}

	query := `
		INSERT INTO saved_searches (name, requirement, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET requirement = EXCLUDED.requirement
		RETURNING id
	`

	var id int64
	err = s.sess.
		SelectBySql(query, name, payload).
		LoadOneContext(ctx, &id)

	if err != nil {
		s.logger.Error("failed to save search",
			zap.String("name", name),
			zap.Error(err),
		)
		return 0, fmt.Errorf("save search: %w", err)
	}

	return id, nil
}

// GetSavedSearches returns every saved search, oldest first.
func (s *Store) GetSavedSearches(ctx context.Context) ([]models.SavedSearch, error) {
	var searches []models.SavedSearch

	_, err := s.sess.
		Select("*").
		From("saved_searches").
		OrderBy("created_at").
		LoadContext(ctx, &searches)

	if err != nil {
		s.logger.Error("failed to get saved searches", zap.Error(err))
		return nil, fmt.Errorf("get saved searches: %w", err)
	}

	return searches, nil
}

func (s *Store) GetSavedSearch(ctx context.Context, name string) (*models.SavedSearch, error) {
	var search models.SavedSearch

	err := s.sess.
		Select("*").
		From("saved_searches").
		Where("name = ?", name).
		LoadOneContext(ctx, &search)

	if err == dbr.ErrNotFound {
		return nil, nil
	}

	if err != nil {
		s.logger.Error("failed to get saved search",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get saved search: %w", err)
	}

	return &search, nil
}

// UpdateLastRun bumps the saved search's last_run_at timestamp.
func (s *Store) UpdateLastRun(ctx context.Context, searchID int64) error {
	_, err := s.sess.
		Update("saved_searches").
		Set("last_run_at", time.Now()).
		Where("id = ?", searchID).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to update last run",
			zap.Int64("search_id", searchID),
			zap.Error(err),
		)
		return fmt.Errorf("update last run: %w", err)
	}

	return nil
}

// RecordRun appends one search execution to the run history.
func (s *Store) RecordRun(ctx context.Context, searchID *int64, cacheKey string, result *models.SearchResult) error {
	query := `
		INSERT INTO search_runs (search_id, cache_key, total_found, returned, cache_hit, duration_ms, ran_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`

	_, err := s.sess.
		InsertBySql(query,
			searchID,
			cacheKey,
			result.TotalFound,
			result.Returned,
			result.CacheHit,
			result.ExecutionMS,
		).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to record run",
			zap.String("cache_key", cacheKey),
			zap.Error(err),
		)
		return fmt.Errorf("record run: %w", err)
	}

	return nil
}
