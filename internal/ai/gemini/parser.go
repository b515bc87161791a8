package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"gh-talent-scout/internal/models"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

// Parser turns free-text job descriptions into structured JobRequirements
// via Gemini. It implements ai.JobParser.
type Parser struct {
	generator contentGenerator
	logger    *zap.Logger
}

func NewParser(generator contentGenerator, logger *zap.Logger) *Parser {
	return &Parser{
		generator: generator,
		logger:    logger,
	}
}

func (p *Parser) Parse(ctx context.Context, description string) (*models.JobRequirement, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("job description is empty")
	}

	prompt := fmt.Sprintf(promptTemplate, description)

	p.logger.Debug("gemini parse request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := p.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini parse response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
	)

	job, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("gemini produced an invalid requirement: %w", err)
	}

	return job, nil
}

// parseResponse extracts the JSON object from the model reply, tolerating
// markdown fences and surrounding prose.
func parseResponse(raw string) (*models.JobRequirement, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var job models.JobRequirement
	if err := json.Unmarshal([]byte(raw[start:end+1]), &job); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}

	return &job, nil
}
