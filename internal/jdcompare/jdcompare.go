// Package jdcompare measures how well a resume matches a job
// description by combining keyword overlap with semantic similarity
// between the two texts.
package jdcompare

import (
	"context"
	"sort"
	"strings"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/extract"
	"resumescore/internal/nlp"
	"resumescore/internal/types"
)

const (
	keywordWeight  = 0.6
	semanticWeight = 0.4
)

// Comparer compares resume content against a job description.
// A nil embedder drops the semantic term to zero.
type Comparer struct {
	embedder         nlp.Embedder
	jdKeywordLimit   int
	missingLimit     int
	skillsGapLimit   int
	truncationLength int
	logger           *apperrors.Logger
}

// Options bound the comparer's output sizes and embedding input
type Options struct {
	JDKeywordLimit   int
	MissingLimit     int
	SkillsGapLimit   int
	TruncationLength int
}

func NewComparer(embedder nlp.Embedder, opts Options, logger *apperrors.Logger) *Comparer {
	return &Comparer{
		embedder:         embedder,
		jdKeywordLimit:   opts.JDKeywordLimit,
		missingLimit:     opts.MissingLimit,
		skillsGapLimit:   opts.SkillsGapLimit,
		truncationLength: opts.TruncationLength,
		logger:           logger,
	}
}

// Compare produces the keyword and semantic match analysis between the
// resume and the job description. Embedding failures zero the semantic
// term instead of failing the comparison.
func (c *Comparer) Compare(ctx context.Context, resumeText string, resumeKeywords, resumeSkills []string, jdText string) types.KeywordAnalysis {
	jdKeywords := extract.ExtractKeywords(jdText, c.jdKeywordLimit)

	matched, missing := c.partitionKeywords(resumeKeywords, jdKeywords)

	analysis := types.KeywordAnalysis{
		JDKeywords:      jdKeywords,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		SkillsGap:       c.skillsGap(resumeSkills, jdText),
	}

	analysis.SemanticSimilarity = c.semanticSimilarity(ctx, resumeText, jdText)

	overlap := 0.0
	if len(jdKeywords) > 0 {
		overlap = float64(len(matched)) / float64(len(jdKeywords))
	}
	pct := 100 * (keywordWeight*overlap + semanticWeight*analysis.SemanticSimilarity)
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	analysis.MatchPercentage = pct

	return analysis
}

// partitionKeywords splits JD keywords into matched and missing against
// the resume's keywords, case-insensitively. Missing keywords keep the
// JD prominence order and are capped.
func (c *Comparer) partitionKeywords(resumeKeywords, jdKeywords []string) (matched, missing []string) {
	resumeSet := make(map[string]struct{}, len(resumeKeywords))
	for _, kw := range resumeKeywords {
		resumeSet[strings.ToLower(kw)] = struct{}{}
	}

	matched = []string{}
	missing = []string{}
	for _, kw := range jdKeywords {
		if _, ok := resumeSet[strings.ToLower(kw)]; ok {
			matched = append(matched, kw)
		} else if len(missing) < c.missingLimit {
			missing = append(missing, kw)
		}
	}
	return matched, missing
}

// skillsGap finds technical terms the JD mentions that no resume skill
// covers. Containment in either direction counts as coverage, so
// "python" covers "python 3" and vice versa.
func (c *Comparer) skillsGap(resumeSkills []string, jdText string) []string {
	jdSkills := extract.FindTechnicalTerms(jdText)

	resumeLower := make([]string, 0, len(resumeSkills))
	for _, s := range resumeSkills {
		resumeLower = append(resumeLower, strings.ToLower(s))
	}

	var gap []string
	for _, jdSkill := range jdSkills {
		needle := strings.ToLower(jdSkill)
		covered := false
		for _, have := range resumeLower {
			if strings.Contains(have, needle) || strings.Contains(needle, have) {
				covered = true
				break
			}
		}
		if !covered {
			gap = append(gap, needle)
		}
	}

	sort.Strings(gap)
	if len(gap) > c.skillsGapLimit {
		gap = gap[:c.skillsGapLimit]
	}
	if gap == nil {
		gap = []string{}
	}
	return gap
}

// semanticSimilarity embeds both texts, truncated to bound token usage,
// and returns their cosine similarity
func (c *Comparer) semanticSimilarity(ctx context.Context, resumeText, jdText string) float64 {
	if c.embedder == nil {
		return 0
	}

	resumeVec, err := c.embedder.Embed(ctx, truncate(resumeText, c.truncationLength))
	if err != nil {
		c.logger.Warn("Embedding unavailable, semantic similarity set to zero", "error", err.Error())
		return 0
	}
	jdVec, err := c.embedder.Embed(ctx, truncate(jdText, c.truncationLength))
	if err != nil {
		c.logger.Warn("Embedding unavailable, semantic similarity set to zero", "error", err.Error())
		return 0
	}

	return nlp.CosineSimilarity(resumeVec, jdVec)
}

func truncate(text string, limit int) string {
	if limit > 0 && len(text) > limit {
		return text[:limit]
	}
	return text
}
