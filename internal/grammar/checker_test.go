package grammar

import (
	"context"
	"fmt"
	"strings"
	"testing"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/nlp"
	"resumescore/internal/types"
)

type fakeBackend struct {
	findings []nlp.RawFinding
	err      error
}

func (f *fakeBackend) Check(ctx context.Context, text string) ([]nlp.RawFinding, error) {
	return f.findings, f.err
}

func testLogger(t testing.TB) *apperrors.Logger {
	t.Helper()
	logger, err := apperrors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func testAllowlist(t testing.TB) *Allowlist {
	t.Helper()
	allowlist, err := NewAllowlist("", testLogger(t))
	if err != nil {
		t.Fatalf("failed to create allowlist: %v", err)
	}
	return allowlist
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		ruleID   string
		expected types.GrammarCategory
	}{
		{"MORFOLOGIK_RULE_EN_US", types.GrammarCritical},
		{"SUBJECT_VERB_AGREEMENT", types.GrammarCritical},
		{"VERB_FORM_OF", types.GrammarCritical},
		{"CONFUSION_OF_THEIR_THERE", types.GrammarCritical},
		{"WRONG_WORD_IN_CONTEXT", types.GrammarCritical},
		{"GRAMMAR_AGREEMENT", types.GrammarCritical},
		{"PUNCTUATION_PARAGRAPH_END", types.GrammarModerate},
		{"UPPERCASE_SENTENCE_START_CAPITALIZATION", types.GrammarModerate},
		{"EN_A_VS_AN_ARTICLE", types.GrammarModerate},
		{"REDUNDANCY_PHRASE", types.GrammarModerate},
		{"COMMA_COMPOUND_SENTENCE", types.GrammarModerate},
		{"APOSTROPHE_MISSING", types.GrammarModerate},
		{"WHITESPACE_RULE", types.GrammarMinor},
		{"EN_QUOTES", types.GrammarMinor},
		{"", types.GrammarMinor},
		{"morfologik_rule_en_us", types.GrammarCritical},
	}

	for _, tt := range tests {
		t.Run(tt.ruleID, func(t *testing.T) {
			if got := Categorize(tt.ruleID); got != tt.expected {
				t.Errorf("Categorize(%q) = %q, want %q", tt.ruleID, got, tt.expected)
			}
		})
	}
}

func TestCheckPenaltyWeights(t *testing.T) {
	tests := []struct {
		name            string
		critical        int
		moderate        int
		minor           int
		expectedPenalty float64
		expectedScore   float64
	}{
		{"no findings", 0, 0, 0, 0, 100},
		{"one critical", 1, 0, 0, 5, 95},
		{"one of each", 1, 1, 1, 7.5, 92.5},
		{"three critical two moderate four minor hits cap", 3, 2, 4, 20, 80},
		{"five critical capped", 5, 0, 0, 20, 80},
		{"many findings stay capped", 10, 10, 10, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var findings []nlp.RawFinding
			add := func(n int, ruleID string) {
				for i := 0; i < n; i++ {
					findings = append(findings, nlp.RawFinding{
						Message: "issue",
						RuleID:  ruleID,
						Offset:  0,
						Length:  4,
					})
				}
			}
			add(tt.critical, "MORFOLOGIK_RULE_EN_US")
			add(tt.moderate, "PUNCTUATION_ISSUE")
			add(tt.minor, "WHITESPACE_RULE")

			checker := NewChecker(&fakeBackend{findings: findings}, nil, 3, testLogger(t))
			result := checker.Check(context.Background(), "Some resume text with issues throughout.")

			if result.Penalty != tt.expectedPenalty {
				t.Errorf("Penalty = %g, want %g", result.Penalty, tt.expectedPenalty)
			}
			if result.GrammarScore != tt.expectedScore {
				t.Errorf("GrammarScore = %g, want %g", result.GrammarScore, tt.expectedScore)
			}
			if result.TotalErrors != tt.critical+tt.moderate+tt.minor {
				t.Errorf("TotalErrors = %d, want %d", result.TotalErrors, tt.critical+tt.moderate+tt.minor)
			}
			if !result.CheckerAvailable {
				t.Error("CheckerAvailable should be true when the backend responds")
			}
		})
	}
}

func TestCheckBackendUnavailable(t *testing.T) {
	checker := NewChecker(&fakeBackend{err: fmt.Errorf("connection refused")}, nil, 3, testLogger(t))
	result := checker.Check(context.Background(), "Some text.")

	if result.CheckerAvailable {
		t.Error("CheckerAvailable should be false after a backend error")
	}
	if len(result.Findings) != 0 {
		t.Errorf("expected no findings, got %d", len(result.Findings))
	}
	if result.GrammarScore != 100 {
		t.Errorf("GrammarScore = %g, want 100", result.GrammarScore)
	}
}

func TestCheckNilBackend(t *testing.T) {
	checker := NewChecker(nil, nil, 3, testLogger(t))
	result := checker.Check(context.Background(), "Some text.")

	if result.CheckerAvailable {
		t.Error("CheckerAvailable should be false without a backend")
	}
	if result.Penalty != 0 {
		t.Errorf("Penalty = %g, want 0", result.Penalty)
	}
}

func TestCheckAllowlistFiltering(t *testing.T) {
	text := "Experienced with Kubernetes and writing cleen code."
	kubernetesOffset := strings.Index(text, "Kubernetes")
	cleenOffset := strings.Index(text, "cleen")

	findings := []nlp.RawFinding{
		{Message: "Possible spelling mistake", RuleID: "MORFOLOGIK_RULE_EN_US", Offset: kubernetesOffset, Length: len("Kubernetes")},
		{Message: "Possible spelling mistake", RuleID: "MORFOLOGIK_RULE_EN_US", Offset: cleenOffset, Length: len("cleen")},
	}

	checker := NewChecker(&fakeBackend{findings: findings}, testAllowlist(t), 3, testLogger(t))
	result := checker.Check(context.Background(), text)

	if len(result.Findings) != 1 {
		t.Fatalf("expected 1 finding after allowlist filtering, got %d", len(result.Findings))
	}
	if result.Findings[0].Offset != cleenOffset {
		t.Errorf("surviving finding offset = %d, want %d", result.Findings[0].Offset, cleenOffset)
	}
	if result.CriticalCount != 1 {
		t.Errorf("CriticalCount = %d, want 1", result.CriticalCount)
	}
}

func TestCheckSuggestionsCapped(t *testing.T) {
	findings := []nlp.RawFinding{
		{
			Message:     "Possible spelling mistake",
			RuleID:      "MORFOLOGIK_RULE_EN_US",
			Offset:      0,
			Length:      4,
			Suggestions: []string{"one", "two", "three", "four", "five"},
		},
		{
			Message: "No suggestions given",
			RuleID:  "WHITESPACE_RULE",
			Offset:  5,
			Length:  2,
		},
	}

	checker := NewChecker(&fakeBackend{findings: findings}, nil, 3, testLogger(t))
	result := checker.Check(context.Background(), "Teh resume text.")

	if got := len(result.Findings[0].Suggestions); got != 3 {
		t.Errorf("suggestions length = %d, want 3", got)
	}
	if result.Findings[1].Suggestions == nil {
		t.Error("suggestions should be an empty slice, not nil")
	}
}

func TestFindingContext(t *testing.T) {
	long := strings.Repeat("a", 200) + "MISTAKE" + strings.Repeat("b", 200)

	tests := []struct {
		name           string
		text           string
		offset, length int
		wantPrefix     bool
		wantSuffix     bool
		wantContains   string
	}{
		{"middle of long text", long, 200, 7, true, true, "MISTAKE"},
		{"start of text", "MISTAKE at the beginning of a line.", 0, 7, false, false, "MISTAKE"},
		{"short text no ellipses", "short text", 0, 5, false, false, "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findingContext(tt.text, tt.offset, tt.length)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("context %q does not contain %q", got, tt.wantContains)
			}
			if hasPrefix := strings.HasPrefix(got, "..."); hasPrefix != tt.wantPrefix {
				t.Errorf("context prefix ellipsis = %v, want %v", hasPrefix, tt.wantPrefix)
			}
			if hasSuffix := strings.HasSuffix(got, "..."); hasSuffix != tt.wantSuffix {
				t.Errorf("context suffix ellipsis = %v, want %v", hasSuffix, tt.wantSuffix)
			}
		})
	}
}

func TestFindingContextBounds(t *testing.T) {
	// Malformed backend spans must not panic
	_ = findingContext("short", 100, 5)
	_ = findingContext("short", -1, 5)
	_ = findingContext(strings.Repeat("a", 100), 60, -200)
	_ = findingContext("short", 3, -1)
	_ = flaggedSpan("short", 100, 5)
	_ = flaggedSpan("short", 2, -1)
}

func TestCheckNegativeLengthFinding(t *testing.T) {
	text := strings.Repeat("Resume line with plenty of text around it. ", 4)
	backend := &fakeBackend{findings: []nlp.RawFinding{
		{Message: "broken span", RuleID: "GRAMMAR_RULE", Offset: 60, Length: -200},
	}}
	checker := NewChecker(backend, testAllowlist(t), 3, testLogger(t))

	result := checker.Check(context.Background(), text)

	if result.TotalErrors != 1 {
		t.Fatalf("TotalErrors = %d, want 1", result.TotalErrors)
	}
	if result.Findings[0].Context == "" {
		t.Error("context should still be derived from the clamped span")
	}
}

func BenchmarkCheck(b *testing.B) {
	findings := make([]nlp.RawFinding, 20)
	for i := range findings {
		findings[i] = nlp.RawFinding{
			Message: "issue",
			RuleID:  "MORFOLOGIK_RULE_EN_US",
			Offset:  i * 10,
			Length:  5,
		}
	}
	checker := NewChecker(&fakeBackend{findings: findings}, testAllowlist(b), 3, testLogger(b))
	text := strings.Repeat("Some resume text with issues. ", 50)

	for b.Loop() {
		checker.Check(context.Background(), text)
	}
}
