package scoring

import (
	"fmt"
	"strings"

	"resumescore/internal/location"
	"resumescore/internal/types"
)

// BuildFeedback derives the narrative strength, critical-issue, and
// improvement lists from an analysis. Lists are always non-nil so the
// serialized output stays stable.
func BuildFeedback(input Input, score types.ScoreResult) types.Feedback {
	return types.Feedback{
		Strengths:      strengths(input, score),
		CriticalIssues: criticalIssues(input),
		Improvements:   improvements(input, score),
	}
}

func strengths(input Input, score types.ScoreResult) []string {
	out := []string{}

	if score.Formatting.Score >= 15 {
		out = append(out, "Well-organized structure with clear sections.")
	}
	if len(input.ActionVerbs) >= 10 {
		out = append(out, fmt.Sprintf("Strong use of action verbs (%d found).", len(input.ActionVerbs)))
	}
	if input.Validation.ValidationPercentage >= 0.8 && len(input.Validation.ValidatedSkills) > 0 {
		out = append(out, fmt.Sprintf("%d of %d claimed skills are backed by project or experience evidence.",
			len(input.Validation.ValidatedSkills), len(input.Validation.Results)))
	}
	if input.Grammar.CheckerAvailable && input.Grammar.TotalErrors == 0 {
		out = append(out, "No grammar or spelling issues detected.")
	}
	if input.KeywordAnalysis != nil && input.KeywordAnalysis.MatchPercentage >= 70 {
		out = append(out, fmt.Sprintf("Strong match with the job description (%.0f%%).",
			input.KeywordAnalysis.MatchPercentage))
	}
	if !input.Location.LocationFound {
		out = append(out, "No privacy-sensitive location details found.")
	}

	return out
}

func criticalIssues(input Input) []string {
	out := []string{}

	if input.Grammar.CriticalCount > 0 {
		out = append(out, fmt.Sprintf("%d critical spelling or grammar error(s) found. Fix these before submitting.",
			input.Grammar.CriticalCount))
	}
	if input.Location.PrivacyRisk == types.RiskHigh {
		msg := "Street address or zip code detected. Remove it; recruiters only need city and state."
		if detail := location.Summary(input.Location.DetectedLocations); detail != "" {
			msg = fmt.Sprintf("Street address or zip code detected: %s. Remove it; recruiters only need city and state.", detail)
		}
		out = append(out, msg)
	}
	if len(input.Validation.Results) > 0 && input.Validation.ValidationPercentage < 0.3 {
		out = append(out, fmt.Sprintf("Only %d of %d claimed skills have supporting evidence. Add projects or experience bullets that demonstrate them.",
			len(input.Validation.ValidatedSkills), len(input.Validation.Results)))
	}
	if len(input.Sections[types.SectionExperience]) == 0 {
		out = append(out, "No experience section detected. ATS systems expect a clearly labeled experience section.")
	}

	return out
}

func improvements(input Input, score types.ScoreResult) []string {
	out := []string{}

	if score.Formatting.Score < 15 {
		missing := missingSections(input.Sections)
		if len(missing) > 0 {
			out = append(out, fmt.Sprintf("Add the missing section(s): %s.", strings.Join(missing, ", ")))
		}
		if input.BulletCount < 5 {
			out = append(out, "Use bullet points to describe your experience and projects.")
		}
	}
	if len(input.ActionVerbs) < 10 {
		out = append(out, "Start more bullet points with strong action verbs like \"led\", \"built\", or \"improved\".")
	}
	if score.Content.Score < 18 {
		out = append(out, "Quantify achievements with numbers, percentages, or dollar amounts.")
	}
	if len(input.Validation.UnvalidatedSkills) > 0 {
		preview := input.Validation.UnvalidatedSkills
		if len(preview) > 5 {
			preview = preview[:5]
		}
		out = append(out, fmt.Sprintf("Back up these skills with concrete evidence: %s.", strings.Join(preview, ", ")))
	}
	if input.Grammar.ModerateCount+input.Grammar.MinorCount > 0 {
		out = append(out, fmt.Sprintf("Clean up %d remaining punctuation or style issue(s).",
			input.Grammar.ModerateCount+input.Grammar.MinorCount))
	}
	if input.KeywordAnalysis != nil && len(input.KeywordAnalysis.MissingKeywords) > 0 {
		preview := input.KeywordAnalysis.MissingKeywords
		if len(preview) > 5 {
			preview = preview[:5]
		}
		out = append(out, fmt.Sprintf("Work these job-description keywords into your resume where they honestly apply: %s.", strings.Join(preview, ", ")))
	}
	out = append(out, input.Location.Recommendations...)

	return out
}

func missingSections(sections types.SectionMap) []string {
	var missing []string
	for _, name := range []types.SectionName{
		types.SectionSummary, types.SectionExperience, types.SectionEducation,
		types.SectionSkills, types.SectionProjects,
	} {
		if sections[name] == "" {
			missing = append(missing, string(name))
		}
	}
	return missing
}
