package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"
	"resumescore/internal/nlp"
	"resumescore/internal/observability"
)

const testResume = `Jane Smith
jane.smith@example.com | (555) 987-6543

Professional Summary
Platform engineer focused on reliability and developer tooling.

Experience
Staff Engineer, Example Inc
• Built deployment tooling in Go and Docker
• Reduced deploy times by 60% across 40 services
• Led migration to Kubernetes

Education
MS Computer Science, Tech University

Skills
Go, Docker, Kubernetes, PostgreSQL, Terraform

Projects
Release Orchestrator
Rollout automation built with Go and Redis.
`

func testConfig() *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{
			SimilarityThreshold: 0.6,
			ResumeKeywordLimit:  25,
			JDKeywordLimit:      25,
			MissingKeywordLimit: 15,
			SkillsGapLimit:      20,
			TruncationLength:    5000,
			ContactHeaderLength: 200,
			CacheSize:           4,
		},
		Grammar: config.GrammarConfig{Enabled: false},
	}
}

func testAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	cfg := testConfig()
	caps := nlp.NewCapabilities(cfg, nil, logger)
	a, err := New(cfg, caps, nil, logger)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := testAnalyzer(t)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := a.Analyze(context.Background(), input, "")
		if err == nil {
			t.Errorf("Analyze(%q) should fail validation", input)
		}
		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			t.Errorf("error should be an AppError, got %T", err)
		}
	}
}

func TestAnalyzeWithoutCapabilities(t *testing.T) {
	a := testAnalyzer(t)

	report, err := a.Analyze(context.Background(), testResume, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	// No embedding key and no grammar backend: analysis still
	// completes with degraded capabilities
	if report.SkillValidation.SemanticAvailable {
		t.Error("SemanticAvailable should be false without an API key")
	}
	if report.Grammar.CheckerAvailable {
		t.Error("CheckerAvailable should be false with grammar disabled")
	}
	if report.Score.Overall < 0 || report.Score.Overall > 100 {
		t.Errorf("Overall = %g, want [0, 100]", report.Score.Overall)
	}
	if report.KeywordAnalysis != nil {
		t.Error("KeywordAnalysis should be nil without a job description")
	}
	if len(report.Extraction.Skills) == 0 {
		t.Error("skills should be extracted")
	}
}

func TestAnalyzeWithJobDescription(t *testing.T) {
	a := testAnalyzer(t)

	jd := "Looking for a platform engineer with Go, Kubernetes and Terraform experience."
	report, err := a.Analyze(context.Background(), testResume, jd)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.KeywordAnalysis == nil {
		t.Fatal("KeywordAnalysis should be present with a job description")
	}
	if report.KeywordAnalysis.MatchPercentage < 0 || report.KeywordAnalysis.MatchPercentage > 100 {
		t.Errorf("MatchPercentage = %g, want [0, 100]", report.KeywordAnalysis.MatchPercentage)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	// Two analyzers so the cache cannot mask nondeterminism
	first, err := testAnalyzer(t).Analyze(context.Background(), testResume, "Go and Kubernetes role.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	second, err := testAnalyzer(t).Analyze(context.Background(), testResume, "Go and Kubernetes role.")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	firstJSON, _ := json.Marshal(first)
	secondJSON, _ := json.Marshal(second)
	if string(firstJSON) != string(secondJSON) {
		t.Error("identical input must produce bit-identical reports")
	}
}

func TestAnalyzeCaching(t *testing.T) {
	a := testAnalyzer(t)

	first, err := a.Analyze(context.Background(), testResume, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	second, err := a.Analyze(context.Background(), testResume, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if first != second {
		t.Error("repeated analysis should return the cached report")
	}

	differentJD, err := a.Analyze(context.Background(), testResume, "different jd")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if differentJD == first {
		t.Error("a different job description must not hit the cache")
	}
}

func TestAnalyzeExperienceQuality(t *testing.T) {
	a := testAnalyzer(t)

	report, err := a.Analyze(context.Background(), testResume, "")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if report.Experience.MaxScore != 20 {
		t.Errorf("Experience.MaxScore = %g, want 20", report.Experience.MaxScore)
	}
	if report.Experience.Metrics.TotalJobs == 0 {
		t.Error("at least one job entry should be parsed from the experience section")
	}
	if report.Experience.Score <= 0 {
		t.Errorf("Experience.Score = %g, want > 0", report.Experience.Score)
	}
	if report.Experience.Assessment == "" {
		t.Error("Assessment should be populated")
	}
}

func collectMetricNames(t *testing.T, reader *sdkmetric.ManualReader) map[string]bool {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	names := map[string]bool{}
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			names[m.Name] = true
		}
	}
	return names
}

func metricsAnalyzer(t *testing.T, cacheSize int) (*Analyzer, *sdkmetric.ManualReader) {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	metrics, err := observability.NewPipelineMetrics(provider.Meter("test"),
		&config.CustomMetricsConfig{TrackCacheActivity: true})
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	cfg := testConfig()
	cfg.Analysis.CacheSize = cacheSize
	caps := nlp.NewCapabilities(cfg, nil, logger)
	a, err := New(cfg, caps, metrics, logger)
	if err != nil {
		t.Fatalf("failed to create analyzer: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a, reader
}

func TestAnalyzeCacheMetricsDisabledCache(t *testing.T) {
	a, reader := metricsAnalyzer(t, 0)

	for range 2 {
		if _, err := a.Analyze(context.Background(), testResume, ""); err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
	}

	names := collectMetricNames(t, reader)
	if names["resumescore_cache_misses_total"] {
		t.Error("cache misses must not be recorded when caching is disabled")
	}
	if names["resumescore_cache_hits_total"] {
		t.Error("cache hits must not be recorded when caching is disabled")
	}
}

func TestAnalyzeCacheMetricsEnabledCache(t *testing.T) {
	a, reader := metricsAnalyzer(t, 4)

	for range 2 {
		if _, err := a.Analyze(context.Background(), testResume, ""); err != nil {
			t.Fatalf("Analyze returned error: %v", err)
		}
	}

	names := collectMetricNames(t, reader)
	if !names["resumescore_cache_misses_total"] {
		t.Error("the first analysis should record a cache miss")
	}
	if !names["resumescore_cache_hits_total"] {
		t.Error("the second analysis should record a cache hit")
	}
}

func BenchmarkAnalyze(b *testing.B) {
	logger, err := apperrors.New("error")
	if err != nil {
		b.Fatalf("failed to create logger: %v", err)
	}
	cfg := testConfig()
	cfg.Analysis.CacheSize = 0 // measure the full pipeline
	caps := nlp.NewCapabilities(cfg, nil, logger)
	a, err := New(cfg, caps, nil, logger)
	if err != nil {
		b.Fatalf("failed to create analyzer: %v", err)
	}
	defer func() { _ = a.Close() }()

	for b.Loop() {
		if _, err := a.Analyze(context.Background(), testResume, ""); err != nil {
			b.Fatal(err)
		}
	}
}
