package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SavedSearch is a stored JobRequirement re-run periodically by watch mode.
type SavedSearch struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Requirement RawJSON    `db:"requirement"`
	CreatedAt   time.Time  `db:"created_at"`
	LastRunAt   *time.Time `db:"last_run_at"`
}

// Job decodes the stored requirement payload.
func (s *SavedSearch) Job() (*JobRequirement, error) {
	var job JobRequirement
	if err := json.Unmarshal(s.Requirement, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// SearchRun is one recorded execution of a search.
type SearchRun struct {
	ID         int64     `db:"id"`
	SearchID   *int64    `db:"search_id"`
	CacheKey   string    `db:"cache_key"`
	TotalFound int       `db:"total_found"`
	Returned   int       `db:"returned"`
	CacheHit   bool      `db:"cache_hit"`
	DurationMS int64     `db:"duration_ms"`
	RanAt      time.Time `db:"ran_at"`
}

// SeenCandidate marks a username already surfaced for a saved search, so
// watch mode only notifies about new ones.
type SeenCandidate struct {
	SearchID int64     `db:"search_id"`
	Username string    `db:"username"`
	SeenAt   time.Time `db:"seen_at"`
}

type RawJSON json.RawMessage

func (r RawJSON) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	return json.RawMessage(r).MarshalJSON()
}

func (r *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	*r = RawJSON(bytes)
	return nil
}
