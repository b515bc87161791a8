package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// GetUnseenCandidates filters usernames down to those not yet surfaced for
// the saved search.
func (s *Store) GetUnseenCandidates(ctx context.Context, searchID int64, usernames []string) ([]string, error) {
	if len(usernames) == 0 {
		return nil, nil
	}

	var seen []string
	_, err := s.sess.
		Select("username").
		From("seen_candidates").
		Where("search_id = ?", searchID).
		Where("username = ANY(?)", pq.Array(usernames)).
		LoadContext(ctx, &seen)

	if err != nil {
		s.logger.Error("failed to get seen candidates",
			zap.Int64("search_id", searchID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get seen candidates: %w", err)
	}

	seenMap := make(map[string]bool, len(seen))
	for _, username := range seen {
		seenMap[username] = true
	}

	var unseen []string
	for _, username := range usernames {
		if !seenMap[username] {
			unseen = append(unseen, username)
		}
	}

	return unseen, nil
}

// MarkCandidateAsSeen records that a username was surfaced for a saved
// search. Idempotent.
func (s *Store) MarkCandidateAsSeen(ctx context.Context, searchID int64, username string) error {
	query := `
		INSERT INTO seen_candidates (search_id, username, seen_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (search_id, username) DO NOTHING
	`

	_, err := s.sess.
		InsertBySql(query, searchID, username).
		ExecContext(ctx)

	if err != nil {
		s.logger.Error("failed to mark candidate as seen",
			zap.Int64("search_id", searchID),
			zap.String("username", username),
			zap.Error(err),
		)
		return fmt.Errorf("mark candidate as seen: %w", err)
	}

	return nil
}
