package search

import (
	"fmt"
	"strings"

	"gh-talent-scout/internal/models"
)

// githubLanguages are skills GitHub's user search can filter on natively
// via the language qualifier. Everything else goes in as a plain keyword.
var githubLanguages = map[string]bool{
	"python": true, "go": true, "javascript": true, "typescript": true,
	"java": true, "rust": true, "ruby": true, "php": true, "kotlin": true,
	"swift": true, "scala": true, "c": true, "c++": true, "c#": true,
}

const maxQuerySkills = 3

// BuildCriteria derives the initial query from a job requirement. The
// location token, when present, is a literal substring of the query so
// broadening can swap it textually.
func BuildCriteria(job *models.JobRequirement) models.SearchCriteria {
	var parts []string

	for i, skill := range job.RequiredSkills {
		if i >= maxQuerySkills {
			break
		}
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		if githubLanguages[strings.ToLower(skill)] {
			parts = append(parts, fmt.Sprintf("language:%s", strings.ToLower(skill)))
		} else {
			parts = append(parts, strings.ToLower(skill))
		}
	}

	parts = append(parts, "type:user")

	locationFilter := ""
	if loc := job.PrimaryLocation(); loc != "" {
		locationFilter = LocationToken(loc)
		parts = append(parts, locationFilter)
	}

	return models.SearchCriteria{
		QueryString:    strings.Join(parts, " "),
		LocationFilter: locationFilter,
	}
}

// LocationToken formats a location as a search qualifier.
func LocationToken(loc string) string {
	return fmt.Sprintf("location:%q", strings.TrimSpace(loc))
}
