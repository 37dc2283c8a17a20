package jdcompare

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	apperrors "resumescore/internal/errors"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{1, 0}, nil
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

func testOptions() Options {
	return Options{
		JDKeywordLimit:   25,
		MissingLimit:     15,
		SkillsGapLimit:   20,
		TruncationLength: 5000,
	}
}

func TestCompareMatchPercentageBounds(t *testing.T) {
	comparer := NewComparer(nil, testOptions(), testLogger(t))

	tests := []struct {
		name           string
		resumeKeywords []string
		jdText         string
	}{
		{"full overlap", []string{"python", "docker", "engineering"}, "python docker engineering"},
		{"no overlap", []string{"accounting", "sales"}, "python docker kubernetes engineering"},
		{"empty job description", []string{"python"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := comparer.Compare(context.Background(), "resume text", tt.resumeKeywords, nil, tt.jdText)
			if analysis.MatchPercentage < 0 || analysis.MatchPercentage > 100 {
				t.Errorf("MatchPercentage = %g, want [0, 100]", analysis.MatchPercentage)
			}
		})
	}
}

func TestComparePartitionKeywords(t *testing.T) {
	comparer := NewComparer(nil, testOptions(), testLogger(t))

	jdText := "We need python and docker experience. Python is essential. Also leadership skills."
	resumeKeywords := []string{"Python", "leadership"}

	analysis := comparer.Compare(context.Background(), "resume", resumeKeywords, nil, jdText)

	matched := make(map[string]bool)
	for _, kw := range analysis.MatchedKeywords {
		matched[kw] = true
	}
	if !matched["python"] {
		t.Errorf("python should match case-insensitively, matched = %v", analysis.MatchedKeywords)
	}
	if !matched["leadership"] {
		t.Errorf("leadership should match, matched = %v", analysis.MatchedKeywords)
	}

	for _, kw := range analysis.MissingKeywords {
		if matched[kw] {
			t.Errorf("keyword %q is both matched and missing", kw)
		}
	}
}

func TestCompareMissingKeywordsCapAndOrder(t *testing.T) {
	opts := testOptions()
	opts.MissingLimit = 3
	comparer := NewComparer(nil, opts, testLogger(t))

	// "kubernetes" repeats most, so it leads JD prominence order
	jdText := "kubernetes kubernetes kubernetes terraform terraform ansible prometheus grafana"

	analysis := comparer.Compare(context.Background(), "resume", nil, nil, jdText)

	if len(analysis.MissingKeywords) != 3 {
		t.Fatalf("missing keywords = %d, want cap of 3", len(analysis.MissingKeywords))
	}
	if analysis.MissingKeywords[0] != "kubernetes" {
		t.Errorf("most prominent JD keyword should come first, got %q", analysis.MissingKeywords[0])
	}
}

func TestCompareSkillsGap(t *testing.T) {
	comparer := NewComparer(nil, testOptions(), testLogger(t))

	jdText := "Requires Python, Kubernetes and PostgreSQL experience."
	resumeSkills := []string{"Python 3", "Go"}

	analysis := comparer.Compare(context.Background(), "resume", nil, resumeSkills, jdText)

	gap := make(map[string]bool)
	for _, s := range analysis.SkillsGap {
		gap[s] = true
	}
	if gap["python"] {
		t.Error("python is covered by the resume skill \"Python 3\"")
	}
	if !gap["kubernetes"] {
		t.Errorf("kubernetes should be in the gap, got %v", analysis.SkillsGap)
	}
	if !gap["postgresql"] {
		t.Errorf("postgresql should be in the gap, got %v", analysis.SkillsGap)
	}
	if !sort.StringsAreSorted(analysis.SkillsGap) {
		t.Errorf("skills gap should be sorted, got %v", analysis.SkillsGap)
	}
}

func TestCompareSkillsGapEmpty(t *testing.T) {
	comparer := NewComparer(nil, testOptions(), testLogger(t))
	analysis := comparer.Compare(context.Background(), "resume", nil, nil, "leadership and communication")

	if analysis.SkillsGap == nil {
		t.Error("SkillsGap should be an empty slice, not nil")
	}
}

func TestCompareSemanticSimilarity(t *testing.T) {
	resumeText := "resume about backend work"
	jdText := "job about backend work"
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			resumeText: {1, 0},
			jdText:     {1, 0},
		},
	}
	comparer := NewComparer(embedder, testOptions(), testLogger(t))

	analysis := comparer.Compare(context.Background(), resumeText, nil, nil, jdText)

	if analysis.SemanticSimilarity != 1 {
		t.Errorf("SemanticSimilarity = %g, want 1", analysis.SemanticSimilarity)
	}
}

func TestCompareEmbeddingFailure(t *testing.T) {
	embedder := &fakeEmbedder{err: fmt.Errorf("quota exceeded")}
	comparer := NewComparer(embedder, testOptions(), testLogger(t))

	analysis := comparer.Compare(context.Background(), "resume", []string{"python"}, nil, "python")

	if analysis.SemanticSimilarity != 0 {
		t.Errorf("SemanticSimilarity = %g, want 0 on embedding failure", analysis.SemanticSimilarity)
	}
	// Keyword overlap alone: 0.6 weight at full overlap
	if analysis.MatchPercentage != 60 {
		t.Errorf("MatchPercentage = %g, want 60", analysis.MatchPercentage)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 6000)
	if got := truncate(long, 5000); len(got) != 5000 {
		t.Errorf("truncate length = %d, want 5000", len(got))
	}
	if got := truncate("short", 5000); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	if got := truncate(long, 0); len(got) != 6000 {
		t.Errorf("zero limit should not truncate, got %d", len(got))
	}
}

func BenchmarkCompare(b *testing.B) {
	comparer := NewComparer(nil, testOptions(), testLogger(b))
	resumeKeywords := []string{"python", "docker", "kubernetes", "postgresql"}
	jdText := strings.Repeat("We need python, docker and terraform experience for platform work. ", 30)

	for b.Loop() {
		comparer.Compare(context.Background(), "resume text", resumeKeywords, []string{"Python"}, jdText)
	}
}
