// Package ai defines the job-description parsing boundary. The pipeline
// consumes structured JobRequirements; producing them from free text is a
// collaborator concern behind this interface.
package ai

import (
	"context"

	"gh-talent-scout/internal/models"
)

// JobParser extracts a structured job requirement from a free-text job
// description.
type JobParser interface {
	Parse(ctx context.Context, description string) (*models.JobRequirement, error)
}
