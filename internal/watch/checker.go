// Package watch periodically re-runs saved searches and notifies about
// candidates not surfaced before.
package watch

import (
	"context"
	"fmt"
	"time"

	"gh-talent-scout/internal/models"
	"gh-talent-scout/internal/search"
	"gh-talent-scout/internal/storage/postgres"

	"go.uber.org/zap"
)

// Notifier delivers newly surfaced candidates. Nil disables delivery;
// new candidates are then only logged.
type Notifier interface {
	NotifyNewCandidates(searchName string, candidates []models.Candidate) error
}

type Checker struct {
	service  *search.Service
	store    *postgres.Store
	notifier Notifier
	interval time.Duration
	logger   *zap.Logger
}

func New(service *search.Service, store *postgres.Store, notifier Notifier, interval time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		service:  service,
		store:    store,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the check loop until the context is cancelled. The first
// check runs immediately.
func (c *Checker) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.logger.Info("saved-search checker started",
		zap.Duration("interval", c.interval),
	)

	c.checkAll(ctx)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("saved-search checker stopped")
			return
		case <-ticker.C:
			c.checkAll(ctx)
		}
	}
}

func (c *Checker) checkAll(ctx context.Context) {
	searches, err := c.store.GetSavedSearches(ctx)
	if err != nil {
		c.logger.Error("failed to load saved searches", zap.Error(err))
		return
	}

	if len(searches) == 0 {
		c.logger.Debug("no saved searches to check")
		return
	}

	c.logger.Info("checking saved searches", zap.Int("count", len(searches)))

	for i := range searches {
		if ctx.Err() != nil {
			return
		}

		if err := c.checkOne(ctx, &searches[i]); err != nil {
			c.logger.Error("failed to check saved search",
				zap.String("name", searches[i].Name),
				zap.Error(err),
			)
			continue
		}

		if err := c.store.UpdateLastRun(ctx, searches[i].ID); err != nil {
			c.logger.Error("failed to update last run",
				zap.String("name", searches[i].Name),
				zap.Error(err),
			)
		}
	}
}

func (c *Checker) checkOne(ctx context.Context, saved *models.SavedSearch) error {
	job, err := saved.Job()
	if err != nil {
		return fmt.Errorf("decode requirement: %w", err)
	}

	response, err := c.service.Search(ctx, job)
	if err != nil {
		return fmt.Errorf("run search: %w", err)
	}

	usernames := make([]string, len(response.Candidates))
	byName := make(map[string]*models.Candidate, len(response.Candidates))
	for i := range response.Candidates {
		usernames[i] = response.Candidates[i].Username
		byName[response.Candidates[i].Username] = &response.Candidates[i]
	}

	unseen, err := c.store.GetUnseenCandidates(ctx, saved.ID, usernames)
	if err != nil {
		return fmt.Errorf("get unseen candidates: %w", err)
	}

	if len(unseen) == 0 {
		c.logger.Debug("no new candidates", zap.String("name", saved.Name))
		return nil
	}

	newCandidates := make([]models.Candidate, 0, len(unseen))
	for _, username := range unseen {
		if candidate, ok := byName[username]; ok {
			newCandidates = append(newCandidates, *candidate)
		}
	}

	if c.notifier != nil {
		if err := c.notifier.NotifyNewCandidates(saved.Name, newCandidates); err != nil {
			c.logger.Error("failed to notify",
				zap.String("name", saved.Name),
				zap.Error(err),
			)
		}
	}

	go c.markSeen(saved.ID, newCandidates)

	c.logger.Info("new candidates surfaced",
		zap.String("name", saved.Name),
		zap.Int("count", len(newCandidates)),
	)

	return nil
}

func (c *Checker) markSeen(searchID int64, candidates []models.Candidate) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := range candidates {
		if err := c.store.MarkCandidateAsSeen(ctx, searchID, candidates[i].Username); err != nil {
			c.logger.Error("failed to mark candidate as seen",
				zap.Int64("search_id", searchID),
				zap.String("username", candidates[i].Username),
				zap.Error(err),
			)
		}
	}
}
