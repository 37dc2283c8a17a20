// Package analyzer runs the full resume analysis pipeline: extraction,
// skill validation, grammar checking, location detection, optional job
// description comparison, and scoring. Stages degrade individually when
// an NLP capability is unavailable; an analysis either completes or
// fails input validation.
package analyzer

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"
	"resumescore/internal/extract"
	"resumescore/internal/grammar"
	"resumescore/internal/jdcompare"
	"resumescore/internal/location"
	"resumescore/internal/nlp"
	"resumescore/internal/observability"
	"resumescore/internal/scoring"
	"resumescore/internal/skills"
	"resumescore/internal/types"
)

const tracerName = "resumescore/analyzer"

// Analyzer owns the shared NLP capabilities and the result cache.
// It is safe for concurrent use; each Analyze call is independent.
type Analyzer struct {
	cfg       *config.Config
	caps      *nlp.Capabilities
	allowlist *grammar.Allowlist
	detector  *location.Detector
	cache     *resultCache
	metrics   *observability.PipelineMetrics
	logger    *apperrors.Logger
}

// New builds an analyzer from the configuration. Metrics may be nil
// when observability is disabled.
func New(cfg *config.Config, caps *nlp.Capabilities, metrics *observability.PipelineMetrics, logger *apperrors.Logger) (*Analyzer, error) {
	allowlist, err := grammar.NewAllowlist(cfg.Analysis.AllowlistFile, logger)
	if err != nil {
		return nil, err
	}

	var cache *resultCache
	if cfg.Analysis.CacheSize > 0 {
		cache = newResultCache(cfg.Analysis.CacheSize)
	}

	return &Analyzer{
		cfg:       cfg,
		caps:      caps,
		allowlist: allowlist,
		detector:  location.NewDetector(cfg.Analysis.ContactHeaderLength),
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// Close releases the allowlist watcher and the NLP capabilities
func (a *Analyzer) Close() error {
	err := a.allowlist.Close()
	if capsErr := a.caps.Close(); err == nil {
		err = capsErr
	}
	return err
}

// Analyze runs every pipeline stage over the resume text. An empty
// jdText skips the job description comparison entirely rather than
// scoring it as zero.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jdText string) (*types.AnalysisReport, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, apperrors.NewValidationError(apperrors.ErrCodeEmptyInput,
			"resume text is empty", nil)
	}

	start := time.Now()
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "analyzer.analyze")
	defer span.End()

	key := cacheKey(resumeText, jdText)
	if a.cache != nil {
		if report, ok := a.cache.get(key); ok {
			a.metrics.RecordCacheHit(ctx)
			a.logger.Debug("Analysis served from cache", "key", key[:12])
			return report, nil
		}
		a.metrics.RecordCacheMiss(ctx)
	}

	extraction := a.runExtraction(ctx, tracer, resumeText)
	validation := a.runValidation(ctx, tracer, extraction)
	grammarResult := a.runGrammar(ctx, tracer, resumeText)
	locationResult := a.runLocation(ctx, tracer, resumeText)

	var keywordAnalysis *types.KeywordAnalysis
	if strings.TrimSpace(jdText) != "" {
		keywordAnalysis = a.runComparison(ctx, tracer, resumeText, extraction, jdText)
	}

	input := scoring.Input{
		Text:            resumeText,
		Sections:        extraction.Sections,
		Skills:          extraction.Skills,
		Keywords:        extraction.Keywords,
		ActionVerbs:     extraction.ActionVerbs,
		BulletCount:     extract.CountBullets(resumeText),
		Validation:      validation,
		Grammar:         grammarResult,
		Location:        locationResult,
		KeywordAnalysis: keywordAnalysis,
	}
	score := scoring.Score(input)
	experience := scoring.AnalyzeExperience(
		extraction.Sections[types.SectionExperience], extraction.ActionVerbs)

	report := &types.AnalysisReport{
		Extraction:      extraction,
		SkillValidation: validation,
		Experience:      experience,
		Grammar:         grammarResult,
		Location:        locationResult,
		KeywordAnalysis: keywordAnalysis,
		Score:           score,
		Feedback:        scoring.BuildFeedback(input, score),
	}

	a.cache.put(key, report)
	a.metrics.RecordAnalysis(ctx, time.Since(start).Seconds(), keywordAnalysis != nil, score.Overall)
	a.logger.Info("Analysis complete",
		"overall", score.Overall,
		"skills", len(extraction.Skills),
		"grammarErrors", grammarResult.TotalErrors,
		"durationMs", time.Since(start).Milliseconds())

	return report, nil
}

func (a *Analyzer) runExtraction(ctx context.Context, tracer trace.Tracer, text string) types.Extraction {
	ctx, span := tracer.Start(ctx, "analyzer.extract")
	defer span.End()
	defer a.timeStage(ctx, "extract", time.Now())
	return extract.Extract(text, a.cfg.Analysis.ResumeKeywordLimit)
}

func (a *Analyzer) runValidation(ctx context.Context, tracer trace.Tracer, extraction types.Extraction) types.SkillValidation {
	ctx, span := tracer.Start(ctx, "analyzer.validate_skills")
	defer span.End()
	defer a.timeStage(ctx, "validate_skills", time.Now())

	embedder, err := a.caps.Embedder()
	if err != nil {
		a.logger.Warn("Embedding capability unavailable, validating by exact match only", "error", err.Error())
		embedder = nil
	}

	validator := skills.NewValidator(embedder, a.cfg.Analysis.SimilarityThreshold, a.logger)
	return validator.Validate(ctx, extraction.Skills, extraction.Projects,
		extraction.Sections[types.SectionExperience])
}

func (a *Analyzer) runGrammar(ctx context.Context, tracer trace.Tracer, text string) types.GrammarResult {
	ctx, span := tracer.Start(ctx, "analyzer.check_grammar")
	defer span.End()
	defer a.timeStage(ctx, "check_grammar", time.Now())

	checker := grammar.NewChecker(a.caps.Grammar(), a.allowlist,
		a.cfg.Grammar.MaxSuggestions, a.logger)
	return checker.Check(ctx, text)
}

func (a *Analyzer) runLocation(ctx context.Context, tracer trace.Tracer, text string) types.LocationResult {
	ctx, span := tracer.Start(ctx, "analyzer.detect_location")
	defer span.End()
	defer a.timeStage(ctx, "detect_location", time.Now())
	return a.detector.Detect(text)
}

func (a *Analyzer) runComparison(ctx context.Context, tracer trace.Tracer, resumeText string, extraction types.Extraction, jdText string) *types.KeywordAnalysis {
	ctx, span := tracer.Start(ctx, "analyzer.compare_jd")
	defer span.End()
	defer a.timeStage(ctx, "compare_jd", time.Now())

	embedder, err := a.caps.Embedder()
	if err != nil {
		a.logger.Warn("Embedding capability unavailable, semantic similarity set to zero", "error", err.Error())
		embedder = nil
	}

	comparer := jdcompare.NewComparer(embedder, jdcompare.Options{
		JDKeywordLimit:   a.cfg.Analysis.JDKeywordLimit,
		MissingLimit:     a.cfg.Analysis.MissingKeywordLimit,
		SkillsGapLimit:   a.cfg.Analysis.SkillsGapLimit,
		TruncationLength: a.cfg.Analysis.TruncationLength,
	}, a.logger)
	analysis := comparer.Compare(ctx, resumeText, extraction.Keywords, extraction.Skills, jdText)
	return &analysis
}

func (a *Analyzer) timeStage(ctx context.Context, stage string, start time.Time) {
	a.metrics.RecordStage(ctx, stage, time.Since(start).Seconds())
}
