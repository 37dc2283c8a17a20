package skills

import (
	"context"
	"fmt"
	"math"
	"testing"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/types"
)

// fakeEmbedder returns a fixed vector per text, or an error for texts
// listed in failures.
type fakeEmbedder struct {
	vectors  map[string][]float32
	failures map[string]bool
	calls    int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.failures[text] {
		return nil, fmt.Errorf("embedding service unavailable")
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 1}, nil
}

func (f *fakeEmbedder) Close() error { return nil }

func testLogger(t testing.TB) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

// angled returns a unit vector whose cosine against (1, 0) is exactly c
func angled(c float64) []float32 {
	return []float32{float32(c), float32(math.Sqrt(1 - c*c))}
}

func TestValidateExactMatch(t *testing.T) {
	validator := NewValidator(nil, 0.6, testLogger(t))

	projects := []types.Project{
		{Title: "Web Scraper", Description: "Built app using Python and Docker", Technologies: []string{"Flask"}},
	}

	validation := validator.Validate(context.Background(), []string{"Python", "Rust"}, projects, "")

	if len(validation.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(validation.Results))
	}

	python := validation.Results[0]
	if !python.Validated {
		t.Error("Python should validate against the project description")
	}
	if python.Similarity != 1.0 {
		t.Errorf("exact match Similarity = %g, want 1.0", python.Similarity)
	}
	if len(python.SupportingProjects) != 1 || python.SupportingProjects[0] != "Web Scraper" {
		t.Errorf("SupportingProjects = %v, want [Web Scraper]", python.SupportingProjects)
	}

	rust := validation.Results[1]
	if rust.Validated {
		t.Error("Rust has no evidence and must not validate")
	}

	if validation.ValidationPercentage != 0.5 {
		t.Errorf("ValidationPercentage = %g, want 0.5", validation.ValidationPercentage)
	}
	if validation.ValidationScore != 7.5 {
		t.Errorf("ValidationScore = %g, want 7.5", validation.ValidationScore)
	}
}

func TestValidateExactCaseInsensitive(t *testing.T) {
	validator := NewValidator(nil, 0.6, testLogger(t))

	validation := validator.Validate(context.Background(), []string{"PYTHON"}, nil,
		"Five years of python development experience.")

	if len(validation.ValidatedSkills) != 1 {
		t.Fatalf("case-insensitive match failed: %v", validation.UnvalidatedSkills)
	}
	if got := validation.SkillProjectMapping["PYTHON"]; len(got) != 1 || got[0] != "Experience Section" {
		t.Errorf("SkillProjectMapping = %v, want [Experience Section]", got)
	}
}

func TestValidateSemanticThreshold(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		validated  bool
	}{
		{"exactly at threshold", 0.60, true},
		{"just below threshold", 0.59, false},
		{"well above threshold", 0.85, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := &fakeEmbedder{
				vectors: map[string][]float32{
					"Kubernetes":                 {1, 0},
					"Managed container clusters": angled(tt.similarity),
				},
			}
			validator := NewValidator(embedder, 0.6, testLogger(t))

			projects := []types.Project{
				{Title: "Platform", Description: "Managed container clusters"},
			}
			validation := validator.Validate(context.Background(), []string{"Kubernetes"}, projects, "")

			result := validation.Results[0]
			if result.Validated != tt.validated {
				t.Errorf("Validated = %v, want %v (similarity %g)", result.Validated, tt.validated, result.Similarity)
			}
			if !tt.validated && result.Similarity == 0 {
				t.Error("below-threshold similarity should still be reported")
			}
		})
	}
}

func TestValidateEmbeddingFailureDegrades(t *testing.T) {
	embedder := &fakeEmbedder{
		failures: map[string]bool{"Kubernetes": true},
	}
	validator := NewValidator(embedder, 0.6, testLogger(t))

	projects := []types.Project{
		{Title: "Platform", Description: "Managed container clusters"},
	}
	validation := validator.Validate(context.Background(),
		[]string{"Kubernetes", "Terraform"}, projects, "")

	if validation.SemanticAvailable {
		t.Error("SemanticAvailable should flip to false after an embedding failure")
	}
	if len(validation.ValidatedSkills) != 0 {
		t.Errorf("no skill should validate without evidence, got %v", validation.ValidatedSkills)
	}
	// The second skill must not retry the broken capability
	if embedder.calls != 1 {
		t.Errorf("embedder calls = %d, want 1", embedder.calls)
	}
}

func TestValidateEmptySkills(t *testing.T) {
	validator := NewValidator(nil, 0.6, testLogger(t))
	validation := validator.Validate(context.Background(), nil, nil, "experience text")

	if validation.ValidationPercentage != 0 {
		t.Errorf("ValidationPercentage = %g, want 0", validation.ValidationPercentage)
	}
	if math.IsNaN(validation.ValidationPercentage) {
		t.Error("ValidationPercentage must never be NaN")
	}
	if validation.ValidationScore != 0 {
		t.Errorf("ValidationScore = %g, want 0", validation.ValidationScore)
	}
}

func TestValidatePartitionCoversAllSkills(t *testing.T) {
	validator := NewValidator(nil, 0.6, testLogger(t))
	claimed := []string{"Python", "Go", "Rust", "Scala"}

	validation := validator.Validate(context.Background(), claimed, nil,
		"Shipped services in Go and Python.")

	total := len(validation.ValidatedSkills) + len(validation.UnvalidatedSkills)
	if total != len(claimed) {
		t.Errorf("partition covers %d skills, want %d", total, len(claimed))
	}
	for _, skill := range claimed {
		if _, ok := validation.SkillProjectMapping[skill]; !ok {
			t.Errorf("SkillProjectMapping missing %q", skill)
		}
	}
}

func BenchmarkValidateExact(b *testing.B) {
	validator := NewValidator(nil, 0.6, testLogger(b))
	claimed := []string{"Python", "Go", "Docker", "Kubernetes", "PostgreSQL", "Redis"}
	projects := []types.Project{
		{Title: "API", Description: "Go services backed by PostgreSQL and Redis"},
		{Title: "Pipeline", Description: "Python ETL jobs in Docker"},
	}

	for b.Loop() {
		validator.Validate(context.Background(), claimed, projects, "Ran Kubernetes clusters in production.")
	}
}
