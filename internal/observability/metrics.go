package observability

import (
	"context"
	"fmt"

	"resumescore/internal/config"
	"resumescore/internal/nlp"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PipelineMetrics holds the custom instruments for the analysis
// pipeline. All record methods are safe on a nil receiver so callers
// never need to branch on whether observability is enabled.
type PipelineMetrics struct {
	toggles *config.CustomMetricsConfig

	analysesTotal    metric.Int64Counter
	analysisDuration metric.Float64Histogram
	analysisScore    metric.Float64Histogram
	stageDuration    metric.Float64Histogram

	nlpRequests metric.Int64Counter
	nlpErrors   metric.Int64Counter
	nlpDuration metric.Float64Histogram

	cacheHits   metric.Int64Counter
	cacheMisses metric.Int64Counter

	rateLimitHits metric.Int64Counter
}

// NewPipelineMetrics registers the pipeline instruments on the given
// meter. Toggles switch individual metric families off without
// removing the call sites.
func NewPipelineMetrics(meter metric.Meter, toggles *config.CustomMetricsConfig) (*PipelineMetrics, error) {
	m := &PipelineMetrics{toggles: toggles}
	var err error

	m.analysesTotal, err = meter.Int64Counter(
		"resumescore_analyses_total",
		metric.WithDescription("Total number of resume analyses"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyses counter: %w", err)
	}

	m.analysisDuration, err = meter.Float64Histogram(
		"resumescore_analysis_duration_seconds",
		metric.WithDescription("End-to-end analysis duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	m.analysisScore, err = meter.Float64Histogram(
		"resumescore_overall_score",
		metric.WithDescription("Distribution of overall compatibility scores"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}

	m.stageDuration, err = meter.Float64Histogram(
		"resumescore_stage_duration_seconds",
		metric.WithDescription("Per-stage pipeline duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage duration metric: %w", err)
	}

	m.nlpRequests, err = meter.Int64Counter(
		"resumescore_nlp_requests_total",
		metric.WithDescription("Total number of outbound NLP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NLP request counter: %w", err)
	}

	m.nlpErrors, err = meter.Int64Counter(
		"resumescore_nlp_errors_total",
		metric.WithDescription("Total number of failed NLP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NLP error counter: %w", err)
	}

	m.nlpDuration, err = meter.Float64Histogram(
		"resumescore_nlp_request_duration_seconds",
		metric.WithDescription("Outbound NLP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create NLP duration metric: %w", err)
	}

	m.cacheHits, err = meter.Int64Counter(
		"resumescore_cache_hits_total",
		metric.WithDescription("Analysis result cache hits"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache hit counter: %w", err)
	}

	m.cacheMisses, err = meter.Int64Counter(
		"resumescore_cache_misses_total",
		metric.WithDescription("Analysis result cache misses"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache miss counter: %w", err)
	}

	m.rateLimitHits, err = meter.Int64Counter(
		"resumescore_rate_limit_hits_total",
		metric.WithDescription("Requests rejected by rate limiting"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit counter: %w", err)
	}

	return m, nil
}

// RecordAnalysis records one completed analysis
func (m *PipelineMetrics) RecordAnalysis(ctx context.Context, seconds float64, hasJD bool, overall float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.Bool("has_jd", hasJD))
	m.analysesTotal.Add(ctx, 1, attrs)
	m.analysisDuration.Record(ctx, seconds, attrs)
	m.analysisScore.Record(ctx, overall, attrs)
}

// RecordStage records the duration of one pipeline stage
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, seconds float64) {
	if m == nil || !m.toggles.TrackPipelineStages {
		return
	}
	m.stageDuration.Record(ctx, seconds, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordCacheHit records a result cache hit
func (m *PipelineMetrics) RecordCacheHit(ctx context.Context) {
	if m == nil || !m.toggles.TrackCacheActivity {
		return
	}
	m.cacheHits.Add(ctx, 1)
}

// RecordCacheMiss records a result cache miss
func (m *PipelineMetrics) RecordCacheMiss(ctx context.Context) {
	if m == nil || !m.toggles.TrackCacheActivity {
		return
	}
	m.cacheMisses.Add(ctx, 1)
}

// RecordRateLimitHit records a request rejected by rate limiting
func (m *PipelineMetrics) RecordRateLimitHit(ctx context.Context, clientKey string) {
	if m == nil || !m.toggles.TrackRateLimits {
		return
	}
	m.rateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("client", clientKey)))
}

// NLPObserver adapts the metrics to the nlp.Observer hook. A nil
// receiver returns a nil observer, which disables call tracking.
func (m *PipelineMetrics) NLPObserver() nlp.Observer {
	if m == nil {
		return nil
	}
	return func(ctx context.Context, operation string, err error, seconds float64) {
		if !m.toggles.TrackNLPOperations {
			return
		}
		attrs := metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.Bool("success", err == nil),
		)
		m.nlpRequests.Add(ctx, 1, attrs)
		m.nlpDuration.Record(ctx, seconds, attrs)
		if err != nil {
			m.nlpErrors.Add(ctx, 1, attrs)
		}
	}
}
