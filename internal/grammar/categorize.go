package grammar

import (
	"strings"

	"resumescore/internal/types"
)

// criticalPatterns mark findings that make a resume look careless:
// spelling, agreement, and wrong-word mistakes.
var criticalPatterns = []string{
	"MORFOLOGIK_RULE",
	"AGREEMENT",
	"VERB_FORM",
	"CONFUSION",
	"WRONG_WORD",
	"GRAMMAR",
}

// moderatePatterns cover mechanics that readers notice but forgive
var moderatePatterns = []string{
	"PUNCTUATION",
	"CAPITALIZATION",
	"ARTICLE",
	"REDUNDANCY",
	"COMMA",
	"APOSTROPHE",
}

// Categorize maps a rule identifier to exactly one severity category.
// Anything not matching a critical or moderate pattern is minor.
func Categorize(ruleID string) types.GrammarCategory {
	id := strings.ToUpper(ruleID)
	for _, pattern := range criticalPatterns {
		if strings.Contains(id, pattern) {
			return types.GrammarCritical
		}
	}
	for _, pattern := range moderatePatterns {
		if strings.Contains(id, pattern) {
			return types.GrammarModerate
		}
	}
	return types.GrammarMinor
}
