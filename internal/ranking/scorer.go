package ranking

import (
	"sort"
	"strings"

	"gh-talent-scout/internal/location"
	"gh-talent-scout/internal/models"
)

// Ensemble weights. Skill fit dominates, location is secondary, sustained
// activity breaks the remaining distance.
const (
	WeightSkill    = 0.50
	WeightLocation = 0.30
	WeightActivity = 0.20
)

// Saturation constants for the activity curve: x/(x+k) per signal, so the
// score rewards sustained activity without letting outliers run away.
const (
	contributionsHalfPoint = 500.0
	followersHalfPoint     = 100.0
	accountAgeCapDays      = 1825.0 // five years
)

// Scorer combines skill, location and activity signals into one ranking
// number per candidate.
type Scorer struct {
	resolver *location.Resolver
}

func NewScorer(resolver *location.Resolver) *Scorer {
	return &Scorer{resolver: resolver}
}

// Rank scores every candidate and returns those at or above minScore in
// descending score order. Ties break by activity, then username, so the
// ordering is reproducible.
func (s *Scorer) Rank(candidates []models.Candidate, requiredSkills []string, searchLocation string, minScore float64) []models.CandidateScore {
	var searchHierarchy models.LocationHierarchy
	if searchLocation != "" {
		searchHierarchy = s.resolver.Parse(searchLocation)
	}

	scores := make([]models.CandidateScore, 0, len(candidates))
	for i := range candidates {
		score := s.score(&candidates[i], requiredSkills, searchHierarchy)
		if score.Score >= minScore {
			scores = append(scores, score)
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		if scores[i].ActivityScore != scores[j].ActivityScore {
			return scores[i].ActivityScore > scores[j].ActivityScore
		}
		return scores[i].Username < scores[j].Username
	})

	return scores
}

func (s *Scorer) score(c *models.Candidate, requiredSkills []string, searchHierarchy models.LocationHierarchy) models.CandidateScore {
	skill := skillScore(requiredSkills, c.DetectedSkills)

	loc := 0.0
	if !searchHierarchy.IsEmpty() && c.Location != "" {
		_, confidence := s.resolver.Match(searchHierarchy, s.resolver.Parse(c.Location))
		loc = confidence
	}

	activity := activityScore(c.Contributions, c.Followers, c.AccountAgeDays)

	return models.CandidateScore{
		Username:      c.Username,
		Score:         WeightSkill*skill + WeightLocation*loc + WeightActivity*activity,
		SkillScore:    skill,
		LocationScore: loc,
		ActivityScore: activity,
	}
}

// skillScore is the matched fraction of required skills. Matching is
// case-insensitive and substring-tolerant in both directions, so "Postgres"
// satisfies a "PostgreSQL" requirement and vice versa.
func skillScore(required, detected []string) float64 {
	if len(required) == 0 {
		return 1
	}
	if len(detected) == 0 {
		return 0
	}

	matched := 0
	for _, want := range required {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		for _, have := range detected {
			have = strings.ToLower(have)
			if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
				matched++
				break
			}
		}
	}

	score := float64(matched) / float64(len(required))
	if score > 1 {
		score = 1
	}
	return score
}

func activityScore(contributions, followers, accountAgeDays int) float64 {
	c := saturate(float64(contributions), contributionsHalfPoint)
	f := saturate(float64(followers), followersHalfPoint)

	age := float64(accountAgeDays) / accountAgeCapDays
	if age > 1 {
		age = 1
	}
	if age < 0 {
		age = 0
	}

	return (c + f + age) / 3
}

func saturate(x, halfPoint float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (x + halfPoint)
}
