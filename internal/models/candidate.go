package models

import "time"

// Candidate is an enriched GitHub profile. Username is the identity key;
// re-enrichment always overwrites the whole record, never merges.
type Candidate struct {
	Username       string    `json:"username"`
	Name           string    `json:"name,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Location       string    `json:"location,omitempty"`
	Followers      int       `json:"followers"`
	PublicRepos    int       `json:"public_repos"`
	Contributions  int       `json:"contributions"`
	AccountAgeDays int       `json:"account_age_days"`
	Languages      []string  `json:"languages,omitempty"`
	TopRepos       []Repo    `json:"top_repos,omitempty"`
	DetectedSkills []string  `json:"detected_skills,omitempty"`
	ProfileURL     string    `json:"profile_url,omitempty"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// Repo is a candidate's top repository.
type Repo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Stars       int      `json:"stars"`
	Languages   []string `json:"languages,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// CandidateScore is the ensemble scorer's output for one candidate,
// consumed once to reorder the candidate list.
type CandidateScore struct {
	Username      string  `json:"username"`
	Score         float64 `json:"score"`
	SkillScore    float64 `json:"skill_score"`
	LocationScore float64 `json:"location_score"`
	ActivityScore float64 `json:"activity_score"`
}

// SearchResult is the per-call metadata. Never mutated after assembly.
type SearchResult struct {
	TotalFound        int      `json:"total_candidates_found"`
	Returned          int      `json:"candidates_returned"`
	CacheHit          bool     `json:"cache_hit"`
	ExecutionMS       int64    `json:"execution_ms"`
	RemainingRequests int      `json:"remaining_api_requests"`
	Warnings          []string `json:"warnings,omitempty"`
}

// SearchResponse is the serializable pair returned to the caller.
type SearchResponse struct {
	Candidates []Candidate  `json:"candidates"`
	Metadata   SearchResult `json:"metadata"`
}

// LocationHierarchy is the parsed city/state/country decomposition of a
// free-text location. Recomputed per search and per candidate, never stored.
type LocationHierarchy struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsEmpty reports whether nothing could be parsed out of the source text.
func (l LocationHierarchy) IsEmpty() bool {
	return l.City == "" && l.State == "" && l.Country == ""
}

// Match levels for hierarchical location comparison, weakest to strongest.
const (
	MatchNone    = "none"
	MatchCountry = "country"
	MatchState   = "state"
	MatchCity    = "city"
)
