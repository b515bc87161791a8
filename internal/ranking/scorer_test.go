package ranking

import (
	"testing"
	"time"

	"gh-talent-scout/internal/location"
	"gh-talent-scout/internal/models"
)

func candidate(username string, skills []string, loc string, contributions, followers, ageDays int) models.Candidate {
	return models.Candidate{
		Username:       username,
		Location:       loc,
		Contributions:  contributions,
		Followers:      followers,
		AccountAgeDays: ageDays,
		DetectedSkills: skills,
		FetchedAt:      time.Now(),
	}
}

func TestRank_SkillFractionDominates(t *testing.T) {
	s := NewScorer(location.NewResolver())

	candidates := []models.Candidate{
		candidate("half", []string{"Python"}, "", 100, 10, 365),
		candidate("full", []string{"Python", "FastAPI"}, "", 100, 10, 365),
	}

	scores := s.Rank(candidates, []string{"Python", "FastAPI"}, "", 0)
	if len(scores) != 2 {
		t.Fatalf("got %d scores, want 2", len(scores))
	}
	if scores[0].Username != "full" {
		t.Errorf("top candidate = %s, want full", scores[0].Username)
	}
	if scores[0].SkillScore != 1.0 {
		t.Errorf("full skill score = %f, want 1.0", scores[0].SkillScore)
	}
	if scores[1].SkillScore != 0.5 {
		t.Errorf("half skill score = %f, want 0.5", scores[1].SkillScore)
	}
}

func TestRank_SubstringTolerantSkillMatch(t *testing.T) {
	s := NewScorer(location.NewResolver())

	candidates := []models.Candidate{
		candidate("c", []string{"PostgreSQL"}, "", 0, 0, 0),
	}

	scores := s.Rank(candidates, []string{"postgres"}, "", 0)
	if len(scores) != 1 || scores[0].SkillScore != 1.0 {
		t.Fatalf("postgres should match PostgreSQL, got %+v", scores)
	}
}

func TestRank_LocationScore(t *testing.T) {
	s := NewScorer(location.NewResolver())

	candidates := []models.Candidate{
		candidate("local", []string{"Python"}, "Chennai, India", 50, 5, 365),
		candidate("nolocation", []string{"Python"}, "", 50, 5, 365),
	}

	scores := s.Rank(candidates, []string{"Python"}, "Chennai", 0)
	if scores[0].Username != "local" {
		t.Errorf("top candidate = %s, want local", scores[0].Username)
	}
	if scores[0].LocationScore <= 0 {
		t.Errorf("local location score = %f, want > 0", scores[0].LocationScore)
	}
	if scores[1].LocationScore != 0 {
		t.Errorf("missing-location score = %f, want 0", scores[1].LocationScore)
	}
}

func TestRank_Monotonicity(t *testing.T) {
	s := NewScorer(location.NewResolver())

	// a dominates b on every component
	candidates := []models.Candidate{
		candidate("b", []string{"Python"}, "Mumbai", 10, 5, 200),
		candidate("a", []string{"Python", "FastAPI"}, "Chennai", 800, 300, 3000),
	}

	scores := s.Rank(candidates, []string{"Python", "FastAPI"}, "Chennai", 0)
	if len(scores) != 2 {
		t.Fatalf("got %d scores", len(scores))
	}
	if scores[0].Username != "a" {
		t.Errorf("dominating candidate ranked below dominated one: %+v", scores)
	}
}

func TestRank_MinScoreExcludes(t *testing.T) {
	s := NewScorer(location.NewResolver())

	candidates := []models.Candidate{
		candidate("weak", nil, "", 0, 0, 0),
		candidate("strong", []string{"Go"}, "", 500, 200, 2000),
	}

	scores := s.Rank(candidates, []string{"Go"}, "", 0.3)
	if len(scores) != 1 {
		t.Fatalf("got %d scores, want 1 (weak excluded, not sorted last)", len(scores))
	}
	if scores[0].Username != "strong" {
		t.Errorf("survivor = %s, want strong", scores[0].Username)
	}
}

func TestRank_TieBreaksByActivityThenUsername(t *testing.T) {
	s := NewScorer(location.NewResolver())

	// identical skills and no location: equal skill score, activity decides
	candidates := []models.Candidate{
		candidate("zeta", []string{"Go"}, "", 100, 50, 1000),
		candidate("alpha", []string{"Go"}, "", 100, 50, 1000),
		candidate("busy", []string{"Go"}, "", 900, 400, 3000),
	}

	scores := s.Rank(candidates, []string{"Go"}, "", 0)
	if scores[0].Username != "busy" {
		t.Errorf("most active should rank first, got %s", scores[0].Username)
	}
	if scores[1].Username != "alpha" || scores[2].Username != "zeta" {
		t.Errorf("equal candidates should order by username: %s, %s", scores[1].Username, scores[2].Username)
	}
}

func TestRank_NoRequiredSkills(t *testing.T) {
	s := NewScorer(location.NewResolver())

	candidates := []models.Candidate{candidate("c", nil, "", 0, 0, 0)}

	scores := s.Rank(candidates, nil, "", 0)
	if len(scores) != 1 || scores[0].SkillScore != 1.0 {
		t.Errorf("no required skills should yield a full skill score, got %+v", scores)
	}
}

func TestActivityScore_Saturates(t *testing.T) {
	low := activityScore(10, 5, 100)
	mid := activityScore(500, 100, 1825)
	high := activityScore(50000, 10000, 10000)

	if !(low < mid && mid < high) {
		t.Errorf("activity not monotonic: %f %f %f", low, mid, high)
	}
	if high >= 1 {
		t.Errorf("activity score must stay below 1, got %f", high)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	if WeightSkill+WeightLocation+WeightActivity != 1.0 {
		t.Errorf("ensemble weights must sum to 1")
	}
}
