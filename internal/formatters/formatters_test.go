package formatters

import (
	"encoding/json"
	"strings"
	"testing"

	"resumescore/internal/types"
)

func sampleReport() *types.AnalysisReport {
	return &types.AnalysisReport{
		SkillValidation: types.SkillValidation{
			Results: []types.ValidationResult{
				{Skill: "Python", Validated: true, Similarity: 1.0},
				{Skill: "Kubernetes", Validated: false, Similarity: 0.4},
			},
			ValidatedSkills:      []string{"Python"},
			UnvalidatedSkills:    []string{"Kubernetes"},
			ValidationPercentage: 0.5,
			ValidationScore:      7.5,
			SemanticAvailable:    true,
		},
		Grammar: types.GrammarResult{
			Findings: []types.GrammarFinding{
				{
					Message:     "Possible spelling mistake found.",
					Context:     "...a cleen interface...",
					Suggestions: []string{"clean"},
					RuleID:      "MORFOLOGIK_RULE_EN_US",
					Category:    types.GrammarCritical,
				},
			},
			CriticalCount:    1,
			TotalErrors:      1,
			Penalty:          5,
			GrammarScore:     95,
			CheckerAvailable: true,
		},
		Experience: types.ExperienceAnalysis{
			Score:    14,
			MaxScore: 20,
			Metrics: types.ExperienceMetrics{
				TotalJobs:              2,
				JobsWithDates:          2,
				JobsWithBullets:        2,
				QuantifiedAchievements: 3,
			},
			Assessment: "Good experience section with room for improvement.",
			Strengths:  []string{"All positions include dates."},
			Improvements: []string{
				"Add more quantified achievements (numbers, percentages, metrics).",
			},
		},
		Location: types.LocationResult{
			PrivacyRisk:     types.RiskLow,
			Recommendations: []string{"City and state are generally sufficient for recruiters."},
		},
		KeywordAnalysis: &types.KeywordAnalysis{
			MatchedKeywords:    []string{"python"},
			MissingKeywords:    []string{"terraform", "aws"},
			SemanticSimilarity: 0.72,
			SkillsGap:          []string{"terraform"},
			MatchPercentage:    68,
		},
		Score: types.ScoreResult{
			Formatting:       types.ComponentScore{Score: 15, Max: 20, Message: "Good structure"},
			Keywords:         types.ComponentScore{Score: 18, Max: 25, Message: "Solid keyword coverage"},
			Content:          types.ComponentScore{Score: 19, Max: 25, Message: "Strong content"},
			SkillValidation:  types.ComponentScore{Score: 7.5, Max: 15, Message: "Half of skills validated"},
			ATSCompatibility: types.ComponentScore{Score: 13, Max: 15, Message: "Parses cleanly"},
			Bonuses:          []types.Adjustment{{Reason: "Good skill validation", Amount: 1}},
			Overall:          73.5,
			Interpretation:   "Good ATS compatibility. Your resume should perform well in most systems.",
		},
		Feedback: types.Feedback{
			Strengths:      []string{"Clear section structure"},
			CriticalIssues: []string{"Full address detected"},
			Improvements:   []string{"Add missing keywords: terraform, aws."},
		},
	}
}

func TestRegistryFormatJSON(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleReport(), "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded types.AnalysisReport
	if err := json.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("JSON output does not round-trip: %v", err)
	}
	if decoded.Score.Overall != 73.5 {
		t.Errorf("overall = %v, want 73.5", decoded.Score.Overall)
	}
}

func TestRegistryFormatText(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleReport(), "text")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	expected := []string{
		"ATS COMPATIBILITY REPORT",
		"Overall Score: 73.5/100",
		"SCORE BREAKDOWN",
		"Skill Validation",
		"Validated: 1/2 (50%)",
		"Kubernetes",
		"EXPERIENCE QUALITY",
		"Score: 14.0/20",
		"Jobs: 2 (with dates 2, with bullets 2), quantified achievements: 3",
		"GRAMMAR",
		"Possible spelling mistake found.",
		"PRIVACY",
		"Risk: low",
		"JOB DESCRIPTION MATCH",
		"Match: 68%",
		"terraform, aws",
		"STRENGTHS",
		"CRITICAL ISSUES",
		"IMPROVEMENTS",
		"+1.0 Good skill validation",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("text output missing %q", want)
		}
	}
}

func TestRegistryFormatMarkdown(t *testing.T) {
	registry := NewFormatterRegistry()

	output, err := registry.Format(sampleReport(), "markdown")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	expected := []string{
		"# ATS Compatibility Report",
		"**Overall Score:** 73.5/100",
		"## Score Breakdown",
		"| Formatting | 15.0/20 | Good structure |",
		"## Skill Validation",
		"## Experience Quality",
		"**Score:** 14.0/20",
		"## Grammar",
		"## Privacy",
		"## Job Description Match",
		"## Strengths",
		"## Critical Issues",
		"## Improvements",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestFormatterRegistryFallback(t *testing.T) {
	registry := NewFormatterRegistry()

	// A non-report type falls back to the generic JSON formatter
	output, err := registry.Format(map[string]string{"key": "value"}, "json")
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, `"key": "value"`) {
		t.Errorf("unexpected JSON fallback output: %s", output)
	}

	// Text has no generic formatter
	if _, err := registry.Format(map[string]string{}, "text"); err == nil {
		t.Error("unsupported type for text format should fail")
	}
}

func TestFormatterRegistryUnknownFormat(t *testing.T) {
	registry := NewFormatterRegistry()
	if _, err := registry.Format(sampleReport(), "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestGetDataType(t *testing.T) {
	report := sampleReport()
	if got := getDataType(*report); got != "AnalysisReport" {
		t.Errorf("value type = %q", got)
	}
	if got := getDataType(report); got != "AnalysisReport" {
		t.Errorf("pointer type = %q", got)
	}
	if got := getDataType("plain string"); got != "any" {
		t.Errorf("fallback type = %q", got)
	}
}

func TestFormatMissingChecker(t *testing.T) {
	report := sampleReport()
	report.Grammar = types.GrammarResult{CheckerAvailable: false}
	report.SkillValidation.SemanticAvailable = false
	report.KeywordAnalysis = nil

	output, err := (&ReportTextFormatter{}).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(output, "Grammar checking was unavailable") {
		t.Error("missing grammar unavailability note")
	}
	if !strings.Contains(output, "semantic matching was unavailable") {
		t.Error("missing semantic unavailability note")
	}
	if strings.Contains(output, "JOB DESCRIPTION MATCH") {
		t.Error("JD section should be omitted without keyword analysis")
	}
}
