package models

import (
	"fmt"
	"strings"
)

const (
	SeniorityAny    = "any"
	SeniorityJunior = "junior"
	SeniorityMid    = "mid"
	SenioritySenior = "senior"
	SeniorityLead   = "lead"
)

var validSeniorities = map[string]bool{
	SeniorityAny:    true,
	SeniorityJunior: true,
	SeniorityMid:    true,
	SenioritySenior: true,
	SeniorityLead:   true,
}

// JobRequirement is the structured search input, usually produced by the
// AI parser from a free-text job description. It is read-only for the
// duration of a search call.
type JobRequirement struct {
	Role                string   `json:"role"`
	RequiredSkills      []string `json:"required_skills"`
	PreferredSkills     []string `json:"preferred_skills,omitempty"`
	MinExperienceYears  int      `json:"min_experience_years"`
	MaxExperienceYears  int      `json:"max_experience_years,omitempty"`
	Seniority           string   `json:"seniority,omitempty"`
	LocationPreferences []string `json:"location_preferences,omitempty"`
	Domain              string   `json:"domain,omitempty"`
}

// Validate is the only check that can abort a search. It runs before any
// network activity.
func (j *JobRequirement) Validate() error {
	if j == nil {
		return fmt.Errorf("job requirement is nil")
	}

	if strings.TrimSpace(j.Role) == "" && len(j.RequiredSkills) == 0 {
		return fmt.Errorf("job requirement needs a role or at least one required skill")
	}

	if j.MinExperienceYears < 0 {
		return fmt.Errorf("min experience years must not be negative: %d", j.MinExperienceYears)
	}

	if j.MaxExperienceYears != 0 && j.MaxExperienceYears < j.MinExperienceYears {
		return fmt.Errorf("max experience years %d is below min %d", j.MaxExperienceYears, j.MinExperienceYears)
	}

	if j.Seniority != "" && !IsValidSeniority(j.Seniority) {
		return fmt.Errorf("invalid seniority: %s", j.Seniority)
	}

	return nil
}

// PrimaryLocation returns the first location preference, if any.
func (j *JobRequirement) PrimaryLocation() string {
	if len(j.LocationPreferences) == 0 {
		return ""
	}
	return strings.TrimSpace(j.LocationPreferences[0])
}

func IsValidSeniority(s string) bool {
	return validSeniorities[strings.ToLower(s)]
}

// SearchCriteria is the ephemeral query view derived from a JobRequirement.
// LocationFilter, when set, is always a literal substring of QueryString so
// broadening can swap the location token textually.
type SearchCriteria struct {
	QueryString    string
	LocationFilter string
}

// WithLocation returns a copy of the criteria with the location token
// replaced. An empty newFilter removes the location constraint entirely.
func (c SearchCriteria) WithLocation(newFilter string) SearchCriteria {
	if c.LocationFilter == "" {
		if newFilter == "" {
			return c
		}
		return SearchCriteria{
			QueryString:    strings.TrimSpace(c.QueryString + " " + newFilter),
			LocationFilter: newFilter,
		}
	}

	query := strings.Replace(c.QueryString, c.LocationFilter, newFilter, 1)
	return SearchCriteria{
		QueryString:    strings.Join(strings.Fields(query), " "),
		LocationFilter: newFilter,
	}
}
