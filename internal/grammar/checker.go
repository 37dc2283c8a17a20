// Package grammar runs text through a grammar backend, filters findings
// against a technical-term allowlist, and scores the remainder by
// severity.
package grammar

import (
	"context"
	"strings"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/nlp"
	"resumescore/internal/types"
)

const (
	maxPenalty       = 20.0
	criticalWeight   = 5.0
	moderateWeight   = 2.0
	minorWeight      = 0.5
	contextRadius    = 50
	baseGrammarScore = 100.0
)

// Checker produces a GrammarResult from raw backend findings.
// A nil backend yields an empty result with CheckerAvailable false.
type Checker struct {
	backend        nlp.GrammarBackend
	allowlist      *Allowlist
	maxSuggestions int
	logger         *apperrors.Logger
}

func NewChecker(backend nlp.GrammarBackend, allowlist *Allowlist, maxSuggestions int, logger *apperrors.Logger) *Checker {
	return &Checker{
		backend:        backend,
		allowlist:      allowlist,
		maxSuggestions: maxSuggestions,
		logger:         logger,
	}
}

// Check analyzes the text and returns categorized findings with the
// severity penalty applied. Backend failures degrade to an empty result
// rather than failing the analysis.
func (c *Checker) Check(ctx context.Context, text string) types.GrammarResult {
	result := types.GrammarResult{
		Findings:         []types.GrammarFinding{},
		GrammarScore:     baseGrammarScore,
		CheckerAvailable: c.backend != nil,
	}

	if c.backend == nil || strings.TrimSpace(text) == "" {
		return result
	}

	raw, err := c.backend.Check(ctx, text)
	if err != nil {
		c.logger.Warn("Grammar backend unavailable, skipping grammar analysis", "error", err.Error())
		result.CheckerAvailable = false
		return result
	}

	for _, finding := range raw {
		span := flaggedSpan(text, finding.Offset, finding.Length)
		if c.allowlist != nil && c.allowlist.Contains(span) {
			continue
		}

		category := Categorize(finding.RuleID)
		suggestions := finding.Suggestions
		if len(suggestions) > c.maxSuggestions {
			suggestions = suggestions[:c.maxSuggestions]
		}
		if suggestions == nil {
			suggestions = []string{}
		}

		result.Findings = append(result.Findings, types.GrammarFinding{
			Message:     finding.Message,
			Context:     findingContext(text, finding.Offset, finding.Length),
			Suggestions: suggestions,
			RuleID:      finding.RuleID,
			Offset:      finding.Offset,
			Length:      finding.Length,
			Category:    category,
		})

		switch category {
		case types.GrammarCritical:
			result.CriticalCount++
		case types.GrammarModerate:
			result.ModerateCount++
		default:
			result.MinorCount++
		}
	}

	result.TotalErrors = result.CriticalCount + result.ModerateCount + result.MinorCount
	result.Penalty = penalty(result.CriticalCount, result.ModerateCount, result.MinorCount)
	result.GrammarScore = baseGrammarScore - result.Penalty
	if result.GrammarScore < 0 {
		result.GrammarScore = 0
	}

	return result
}

// penalty weighs findings by severity and caps the total
func penalty(critical, moderate, minor int) float64 {
	p := criticalWeight*float64(critical) +
		moderateWeight*float64(moderate) +
		minorWeight*float64(minor)
	if p > maxPenalty {
		return maxPenalty
	}
	return p
}

// flaggedSpan extracts the text the backend flagged, bounds-checked
// against the original text
func flaggedSpan(text string, offset, length int) string {
	if offset < 0 || length <= 0 || offset >= len(text) {
		return ""
	}
	end := offset + length
	if end > len(text) {
		end = len(text)
	}
	return text[offset:end]
}

// findingContext returns up to contextRadius characters on each side of
// the flagged span, with ellipses marking truncation
func findingContext(text string, offset, length int) string {
	if offset < 0 {
		offset = 0
	}
	if length < 0 {
		length = 0
	}
	start := offset - contextRadius
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	end := offset + length + contextRadius
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}

	snippet := text[start:end]
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(text) {
		snippet = snippet + "..."
	}
	return snippet
}
