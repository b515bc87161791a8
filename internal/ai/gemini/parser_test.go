package gemini

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateContent(context.Context, string) (string, error) {
	return f.response, f.err
}

func TestParse_ExtractsJSONFromFencedReply(t *testing.T) {
	generator := &fakeGenerator{response: "Here you go:\n```json\n" +
		`{"role":"Backend Engineer","required_skills":["Python","FastAPI"],"seniority":"senior","location_preferences":["Chennai"]}` +
		"\n```\n"}

	parser := NewParser(generator, zap.NewNop())

	job, err := parser.Parse(context.Background(), "We need a senior Python/FastAPI engineer in Chennai.")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if job.Role != "Backend Engineer" {
		t.Errorf("role = %q", job.Role)
	}
	if len(job.RequiredSkills) != 2 || job.RequiredSkills[0] != "Python" {
		t.Errorf("required skills = %v", job.RequiredSkills)
	}
	if len(job.LocationPreferences) != 1 || job.LocationPreferences[0] != "Chennai" {
		t.Errorf("locations = %v", job.LocationPreferences)
	}
}

func TestParse_RejectsNonJSONReply(t *testing.T) {
	parser := NewParser(&fakeGenerator{response: "I cannot help with that."}, zap.NewNop())

	if _, err := parser.Parse(context.Background(), "some description"); err == nil {
		t.Fatal("expected error for a reply without JSON")
	}
}

func TestParse_RejectsInvalidRequirement(t *testing.T) {
	// parses but fails validation: no role and no skills
	parser := NewParser(&fakeGenerator{response: `{"role":"","required_skills":[]}`}, zap.NewNop())

	if _, err := parser.Parse(context.Background(), "some description"); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParse_EmptyDescription(t *testing.T) {
	parser := NewParser(&fakeGenerator{}, zap.NewNop())

	if _, err := parser.Parse(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty description")
	}
}

func TestParse_GeneratorError(t *testing.T) {
	parser := NewParser(&fakeGenerator{err: errors.New("quota exceeded")}, zap.NewNop())

	if _, err := parser.Parse(context.Background(), "some description"); err == nil {
		t.Fatal("expected generator error to propagate")
	}
}
