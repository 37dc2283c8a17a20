package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"resumescore/internal/config"
	apperrors "resumescore/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// LanguageToolBackend implements GrammarBackend against a
// LanguageTool-compatible HTTP API.
type LanguageToolBackend struct {
	endpoint   string
	language   string
	httpClient *http.Client
	breaker    *Breaker[[]RawFinding]
	observer   Observer
	logger     *apperrors.Logger
}

// Ensure LanguageToolBackend implements GrammarBackend
var _ GrammarBackend = (*LanguageToolBackend)(nil)

// ltResponse mirrors the subset of the LanguageTool check response we consume
type ltResponse struct {
	Matches []ltMatch `json:"matches"`
}

type ltMatch struct {
	Message      string `json:"message"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
	Rule struct {
		ID string `json:"id"`
	} `json:"rule"`
}

// NewLanguageToolBackend creates a grammar backend for the configured endpoint
func NewLanguageToolBackend(cfg *config.GrammarConfig, observer Observer, logger *apperrors.Logger) *LanguageToolBackend {
	return &LanguageToolBackend{
		endpoint: cfg.Endpoint,
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		breaker:  NewBreaker[[]RawFinding]("Grammar", cfg.CircuitBreaker, logger),
		observer: observer,
		logger:   logger,
	}
}

// Check sends text to the grammar API and returns raw findings
func (lt *LanguageToolBackend) Check(ctx context.Context, text string) ([]RawFinding, error) {
	tracer := otel.Tracer("resumescore.nlp.languagetool")
	ctx, span := tracer.Start(ctx, "languagetool.check")
	defer span.End()

	span.SetAttributes(
		attribute.String("nlp.endpoint", lt.endpoint),
		attribute.Int("nlp.text_length", len(text)),
	)

	start := time.Now()
	findings, err := lt.breaker.Execute(func() ([]RawFinding, error) {
		return lt.check(ctx, text)
	})
	lt.observer.observe(ctx, "grammar_check", err, time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("nlp.finding_count", len(findings)),
	)
	return findings, nil
}

func (lt *LanguageToolBackend) check(ctx context.Context, text string) ([]RawFinding, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", lt.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, lt.endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, apperrors.NewNLPError(apperrors.ErrCodeGrammarBackend,
			"Failed to build grammar check request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := lt.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError(apperrors.ErrCodeGrammarBackend,
			"Grammar backend request failed", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil && lt.logger != nil {
			lt.logger.Warn("Failed to close grammar response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewNLPError(apperrors.ErrCodeGrammarBackend,
			fmt.Sprintf("Grammar backend returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var parsed ltResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, apperrors.NewNLPError(apperrors.ErrCodeGrammarBackend,
			"Failed to decode grammar backend response", err)
	}

	findings := make([]RawFinding, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		suggestions := make([]string, 0, len(m.Replacements))
		for _, r := range m.Replacements {
			if r.Value != "" {
				suggestions = append(suggestions, r.Value)
			}
		}
		findings = append(findings, RawFinding{
			Message:     m.Message,
			RuleID:      m.Rule.ID,
			Offset:      m.Offset,
			Length:      m.Length,
			Suggestions: suggestions,
		})
	}

	return findings, nil
}

// IsHealthy reports whether the grammar circuit breaker is closed
func (lt *LanguageToolBackend) IsHealthy() bool {
	return lt.breaker.IsHealthy()
}
