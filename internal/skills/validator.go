// Package skills confirms claimed skills against project and experience
// evidence, first by exact case-insensitive substring match and then by
// semantic similarity between embedding vectors.
package skills

import (
	"context"
	"strings"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/nlp"
	"resumescore/internal/types"
)

// maxComponentScore is the bounded weight of the skill validation
// component in the overall score.
const maxComponentScore = 15.0

// experienceSource is the pseudo-project title credited when the
// experience text itself supports a skill.
const experienceSource = "Experience Section"

// Validator validates claimed skills against supporting evidence.
// A nil embedder degrades validation to exact matching only.
type Validator struct {
	embedder  nlp.Embedder
	threshold float64
	logger    *apperrors.Logger
}

// NewValidator creates a validator with the given semantic threshold
func NewValidator(embedder nlp.Embedder, threshold float64, logger *apperrors.Logger) *Validator {
	return &Validator{
		embedder:  embedder,
		threshold: threshold,
		logger:    logger,
	}
}

// evidence is one text span a skill can be validated against
type evidence struct {
	source   string // project title or experienceSource
	text     string
	vector   []float32
	embedded bool
}

// Validate checks every claimed skill against the projects and
// experience text. Every skill lands in exactly one of the validated or
// unvalidated partitions, and the mapping covers all skills including
// unvalidated ones with empty support.
func (v *Validator) Validate(ctx context.Context, claimed []string, projects []types.Project, experience string) types.SkillValidation {
	validation := types.SkillValidation{
		ValidatedSkills:     []string{},
		UnvalidatedSkills:   []string{},
		SkillProjectMapping: make(map[string][]string),
		SemanticAvailable:   v.embedder != nil,
	}

	if len(claimed) == 0 {
		// Percentage stays 0 for an empty skill set, never NaN
		return validation
	}

	sources := v.collectEvidence(projects, experience)

	semanticOK := v.embedder != nil
	for _, skill := range claimed {
		result := v.validateExact(skill, sources)

		if !result.Validated && semanticOK {
			semResult, ok := v.validateSemantic(ctx, skill, sources)
			if !ok {
				// Capability failure degrades the rest of the run to
				// exact matching, it never aborts the analysis
				semanticOK = false
				validation.SemanticAvailable = false
			} else {
				result = semResult
			}
		}

		validation.Results = append(validation.Results, result)
		validation.SkillProjectMapping[skill] = result.SupportingProjects
		if result.Validated {
			validation.ValidatedSkills = append(validation.ValidatedSkills, skill)
		} else {
			validation.UnvalidatedSkills = append(validation.UnvalidatedSkills, skill)
		}
	}

	validation.ValidationPercentage = float64(len(validation.ValidatedSkills)) / float64(len(claimed))
	validation.ValidationScore = validation.ValidationPercentage * maxComponentScore

	return validation
}

// collectEvidence flattens projects and the experience text into
// matchable spans
func (v *Validator) collectEvidence(projects []types.Project, experience string) []*evidence {
	var sources []*evidence
	for _, p := range projects {
		text := p.Description
		if len(p.Technologies) > 0 {
			text += " " + strings.Join(p.Technologies, " ")
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		sources = append(sources, &evidence{source: p.Title, text: text})
	}
	if strings.TrimSpace(experience) != "" {
		sources = append(sources, &evidence{source: experienceSource, text: experience})
	}
	return sources
}

// validateExact searches for the skill as a case-insensitive substring
// of any evidence span
func (v *Validator) validateExact(skill string, sources []*evidence) types.ValidationResult {
	result := types.ValidationResult{
		Skill:              skill,
		SupportingProjects: []string{},
	}

	needle := strings.ToLower(strings.TrimSpace(skill))
	if needle == "" {
		return result
	}

	for _, src := range sources {
		if strings.Contains(strings.ToLower(src.text), needle) {
			result.Validated = true
			result.Similarity = 1.0
			result.SupportingProjects = append(result.SupportingProjects, src.source)
		}
	}

	return result
}

// validateSemantic embeds the skill and each evidence span, taking the
// maximum cosine similarity. The second return value reports whether the
// embedding capability was usable.
func (v *Validator) validateSemantic(ctx context.Context, skill string, sources []*evidence) (types.ValidationResult, bool) {
	result := types.ValidationResult{
		Skill:              skill,
		SupportingProjects: []string{},
	}

	if len(sources) == 0 {
		return result, true
	}

	skillVec, err := v.embedder.Embed(ctx, skill)
	if err != nil {
		v.logger.Warn("Embedding unavailable, falling back to exact matching",
			"skill", skill, "error", err.Error())
		return result, false
	}

	var supporting []string
	maxSim := 0.0
	for _, src := range sources {
		if !src.embedded {
			vec, err := v.embedder.Embed(ctx, src.text)
			if err != nil {
				v.logger.Warn("Embedding unavailable, falling back to exact matching",
					"source", src.source, "error", err.Error())
				return result, false
			}
			src.vector = vec
			src.embedded = true
		}

		sim := nlp.CosineSimilarity(skillVec, src.vector)
		if sim > maxSim {
			maxSim = sim
		}
		if sim >= v.threshold {
			supporting = append(supporting, src.source)
		}
	}

	// Below-threshold similarity is still reported for transparency
	result.Similarity = maxSim
	if maxSim >= v.threshold {
		result.Validated = true
		result.SupportingProjects = supporting
	}

	return result, true
}
