package formatters

import (
	"fmt"
	"strings"

	"resumescore/internal/types"
)

func asReport(data any) (*types.AnalysisReport, bool) {
	switch v := data.(type) {
	case types.AnalysisReport:
		return &v, true
	case *types.AnalysisReport:
		return v, true
	default:
		return nil, false
	}
}

// ReportTextFormatter handles text formatting for analysis reports
type ReportTextFormatter struct{}

func (rtf *ReportTextFormatter) Format(data any) (string, error) {
	report, ok := asReport(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("=== ATS COMPATIBILITY REPORT ===\n\n")
	output.WriteString(fmt.Sprintf("Overall Score: %.1f/100\n", report.Score.Overall))
	output.WriteString(report.Score.Interpretation)
	output.WriteString("\n\n")

	output.WriteString("=== SCORE BREAKDOWN ===\n")
	writeComponentText(&output, "Formatting", report.Score.Formatting)
	writeComponentText(&output, "Keywords & Skills", report.Score.Keywords)
	writeComponentText(&output, "Content Quality", report.Score.Content)
	writeComponentText(&output, "Skill Validation", report.Score.SkillValidation)
	writeComponentText(&output, "ATS Compatibility", report.Score.ATSCompatibility)
	output.WriteString("\n")

	if len(report.Score.Bonuses) > 0 {
		output.WriteString("Bonuses:\n")
		for _, bonus := range report.Score.Bonuses {
			output.WriteString(fmt.Sprintf("  +%.1f %s\n", bonus.Amount, bonus.Reason))
		}
		output.WriteString("\n")
	}

	output.WriteString("=== SKILL VALIDATION ===\n")
	output.WriteString(fmt.Sprintf("Validated: %d/%d (%.0f%%)\n",
		len(report.SkillValidation.ValidatedSkills),
		len(report.SkillValidation.Results),
		report.SkillValidation.ValidationPercentage*100))
	if !report.SkillValidation.SemanticAvailable {
		output.WriteString("Note: semantic matching was unavailable, exact matching only.\n")
	}
	if len(report.SkillValidation.UnvalidatedSkills) > 0 {
		output.WriteString("Unvalidated skills:\n")
		for _, skill := range report.SkillValidation.UnvalidatedSkills {
			output.WriteString(fmt.Sprintf("  - %s\n", skill))
		}
	}
	output.WriteString("\n")

	output.WriteString("=== EXPERIENCE QUALITY ===\n")
	output.WriteString(fmt.Sprintf("Score: %.1f/%.0f\n", report.Experience.Score, report.Experience.MaxScore))
	output.WriteString(report.Experience.Assessment)
	output.WriteString("\n")
	output.WriteString(fmt.Sprintf("Jobs: %d (with dates %d, with bullets %d), quantified achievements: %d\n",
		report.Experience.Metrics.TotalJobs, report.Experience.Metrics.JobsWithDates,
		report.Experience.Metrics.JobsWithBullets, report.Experience.Metrics.QuantifiedAchievements))
	for _, item := range report.Experience.Strengths {
		output.WriteString(fmt.Sprintf("  + %s\n", item))
	}
	for _, item := range report.Experience.Improvements {
		output.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	output.WriteString("\n")

	output.WriteString("=== GRAMMAR ===\n")
	if !report.Grammar.CheckerAvailable {
		output.WriteString("Grammar checking was unavailable for this analysis.\n\n")
	} else {
		output.WriteString(fmt.Sprintf("Errors: %d (critical %d, moderate %d, minor %d)\n\n",
			report.Grammar.TotalErrors, report.Grammar.CriticalCount,
			report.Grammar.ModerateCount, report.Grammar.MinorCount))
		for i, finding := range report.Grammar.Findings {
			if i >= 10 {
				output.WriteString(fmt.Sprintf("... and %d more\n", len(report.Grammar.Findings)-10))
				break
			}
			output.WriteString(fmt.Sprintf("[%s] %s\n", finding.Category, finding.Message))
			output.WriteString(fmt.Sprintf("  Context: %s\n", finding.Context))
			if len(finding.Suggestions) > 0 {
				output.WriteString(fmt.Sprintf("  Suggestions: %s\n", strings.Join(finding.Suggestions, ", ")))
			}
		}
		output.WriteString("\n")
	}

	output.WriteString("=== PRIVACY ===\n")
	output.WriteString(fmt.Sprintf("Risk: %s\n", report.Location.PrivacyRisk))
	for _, rec := range report.Location.Recommendations {
		output.WriteString(fmt.Sprintf("  - %s\n", rec))
	}
	output.WriteString("\n")

	if report.KeywordAnalysis != nil {
		output.WriteString("=== JOB DESCRIPTION MATCH ===\n")
		output.WriteString(fmt.Sprintf("Match: %.0f%% (semantic similarity %.2f)\n",
			report.KeywordAnalysis.MatchPercentage, report.KeywordAnalysis.SemanticSimilarity))
		if len(report.KeywordAnalysis.MissingKeywords) > 0 {
			output.WriteString(fmt.Sprintf("Missing keywords: %s\n",
				strings.Join(report.KeywordAnalysis.MissingKeywords, ", ")))
		}
		if len(report.KeywordAnalysis.SkillsGap) > 0 {
			output.WriteString(fmt.Sprintf("Skills gap: %s\n",
				strings.Join(report.KeywordAnalysis.SkillsGap, ", ")))
		}
		output.WriteString("\n")
	}

	writeFeedbackText(&output, "STRENGTHS", report.Feedback.Strengths)
	writeFeedbackText(&output, "CRITICAL ISSUES", report.Feedback.CriticalIssues)
	writeFeedbackText(&output, "IMPROVEMENTS", report.Feedback.Improvements)

	return output.String(), nil
}

func (rtf *ReportTextFormatter) SupportedType() string {
	return "AnalysisReport"
}

func writeComponentText(output *strings.Builder, name string, component types.ComponentScore) {
	output.WriteString(fmt.Sprintf("%-18s %5.1f/%-4.0f %s\n",
		name+":", component.Score, component.Max, component.Message))
}

func writeFeedbackText(output *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("=== %s ===\n", heading))
	for _, item := range items {
		output.WriteString(fmt.Sprintf("  - %s\n", item))
	}
	output.WriteString("\n")
}

// ReportMarkdownFormatter handles markdown formatting for analysis reports
type ReportMarkdownFormatter struct{}

func (rmf *ReportMarkdownFormatter) Format(data any) (string, error) {
	report, ok := asReport(data)
	if !ok {
		return "", fmt.Errorf("expected AnalysisReport, got %T", data)
	}

	var output strings.Builder

	output.WriteString("# ATS Compatibility Report\n\n")
	output.WriteString(fmt.Sprintf("**Overall Score:** %.1f/100\n\n", report.Score.Overall))
	output.WriteString(report.Score.Interpretation)
	output.WriteString("\n\n")

	output.WriteString("## Score Breakdown\n\n")
	output.WriteString("| Component | Score | Assessment |\n")
	output.WriteString("|-----------|-------|------------|\n")
	writeComponentMarkdown(&output, "Formatting", report.Score.Formatting)
	writeComponentMarkdown(&output, "Keywords & Skills", report.Score.Keywords)
	writeComponentMarkdown(&output, "Content Quality", report.Score.Content)
	writeComponentMarkdown(&output, "Skill Validation", report.Score.SkillValidation)
	writeComponentMarkdown(&output, "ATS Compatibility", report.Score.ATSCompatibility)
	output.WriteString("\n")

	if len(report.Score.Bonuses) > 0 {
		output.WriteString("### Bonuses\n\n")
		for _, bonus := range report.Score.Bonuses {
			output.WriteString(fmt.Sprintf("- +%.1f %s\n", bonus.Amount, bonus.Reason))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Skill Validation\n\n")
	output.WriteString(fmt.Sprintf("**Validated:** %d/%d (%.0f%%)\n\n",
		len(report.SkillValidation.ValidatedSkills),
		len(report.SkillValidation.Results),
		report.SkillValidation.ValidationPercentage*100))
	if !report.SkillValidation.SemanticAvailable {
		output.WriteString("_Semantic matching was unavailable, exact matching only._\n\n")
	}
	if len(report.SkillValidation.UnvalidatedSkills) > 0 {
		output.WriteString("**Unvalidated skills:**\n\n")
		for _, skill := range report.SkillValidation.UnvalidatedSkills {
			output.WriteString(fmt.Sprintf("- %s\n", skill))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Experience Quality\n\n")
	output.WriteString(fmt.Sprintf("**Score:** %.1f/%.0f\n\n", report.Experience.Score, report.Experience.MaxScore))
	output.WriteString(report.Experience.Assessment)
	output.WriteString("\n\n")
	if len(report.Experience.Strengths) > 0 {
		for _, item := range report.Experience.Strengths {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}
	if len(report.Experience.Improvements) > 0 {
		for _, item := range report.Experience.Improvements {
			output.WriteString(fmt.Sprintf("- %s\n", item))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Grammar\n\n")
	if !report.Grammar.CheckerAvailable {
		output.WriteString("_Grammar checking was unavailable for this analysis._\n\n")
	} else {
		output.WriteString(fmt.Sprintf("**Errors:** %d (critical %d, moderate %d, minor %d)\n\n",
			report.Grammar.TotalErrors, report.Grammar.CriticalCount,
			report.Grammar.ModerateCount, report.Grammar.MinorCount))
		for i, finding := range report.Grammar.Findings {
			if i >= 10 {
				output.WriteString(fmt.Sprintf("_... and %d more_\n", len(report.Grammar.Findings)-10))
				break
			}
			output.WriteString(fmt.Sprintf("- **[%s]** %s\n", finding.Category, finding.Message))
		}
		output.WriteString("\n")
	}

	output.WriteString("## Privacy\n\n")
	output.WriteString(fmt.Sprintf("**Risk:** %s\n\n", report.Location.PrivacyRisk))
	for _, rec := range report.Location.Recommendations {
		output.WriteString(fmt.Sprintf("- %s\n", rec))
	}
	output.WriteString("\n")

	if report.KeywordAnalysis != nil {
		output.WriteString("## Job Description Match\n\n")
		output.WriteString(fmt.Sprintf("**Match:** %.0f%% (semantic similarity %.2f)\n\n",
			report.KeywordAnalysis.MatchPercentage, report.KeywordAnalysis.SemanticSimilarity))
		if len(report.KeywordAnalysis.MissingKeywords) > 0 {
			output.WriteString(fmt.Sprintf("**Missing keywords:** %s\n\n",
				strings.Join(report.KeywordAnalysis.MissingKeywords, ", ")))
		}
		if len(report.KeywordAnalysis.SkillsGap) > 0 {
			output.WriteString(fmt.Sprintf("**Skills gap:** %s\n\n",
				strings.Join(report.KeywordAnalysis.SkillsGap, ", ")))
		}
	}

	writeFeedbackMarkdown(&output, "Strengths", report.Feedback.Strengths)
	writeFeedbackMarkdown(&output, "Critical Issues", report.Feedback.CriticalIssues)
	writeFeedbackMarkdown(&output, "Improvements", report.Feedback.Improvements)

	return output.String(), nil
}

func (rmf *ReportMarkdownFormatter) SupportedType() string {
	return "AnalysisReport"
}

func writeComponentMarkdown(output *strings.Builder, name string, component types.ComponentScore) {
	output.WriteString(fmt.Sprintf("| %s | %.1f/%.0f | %s |\n",
		name, component.Score, component.Max, component.Message))
}

func writeFeedbackMarkdown(output *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	output.WriteString(fmt.Sprintf("## %s\n\n", heading))
	for _, item := range items {
		output.WriteString(fmt.Sprintf("- %s\n", item))
	}
	output.WriteString("\n")
}
