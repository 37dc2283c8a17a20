// Package scoring composes the five bounded component scores into the
// overall compatibility score, itemizing every bonus and penalty.
package scoring

import (
	"regexp"

	"resumescore/internal/types"
)

const (
	maxFormatting = 20.0
	maxKeywords   = 25.0
	maxContent    = 25.0
	maxValidation = 15.0
	maxATS        = 15.0
	maxOverall    = 100.0
)

// Input carries everything the scoring engine consumes. KeywordAnalysis
// is nil when no job description was supplied, which removes the
// JD-match bonus term from the keywords component.
type Input struct {
	Text            string
	Sections        types.SectionMap
	Skills          []string
	Keywords        []string
	ActionVerbs     []string
	BulletCount     int
	Validation      types.SkillValidation
	Grammar         types.GrammarResult
	Location        types.LocationResult
	KeywordAnalysis *types.KeywordAnalysis
}

var achievementPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d+%`),
	regexp.MustCompile(`\$\d+`),
	regexp.MustCompile(`\d+[kKmMbB]\b`),
	regexp.MustCompile(`(?i)\d+\s*(?:users|customers|clients|projects|hours|days|months|years)`),
	regexp.MustCompile(`(?i)(?:increased|decreased|improved|reduced|grew|saved)\s+(?:by\s+)?\d+`),
}

// boxDrawingPattern flags characters that survive conversion from
// heavily formatted documents and confuse resume parsers
var boxDrawingPattern = regexp.MustCompile(`[\x{2500}-\x{257F}]`)

// Score computes all components, applies bonuses, and clips the total
// to [0, 100].
func Score(input Input) types.ScoreResult {
	formatting := formattingScore(input.Sections, input.BulletCount)
	keywords := keywordsScore(input.Keywords, input.Skills, input.KeywordAnalysis)
	content := contentScore(input.Text, input.ActionVerbs, input.Grammar)
	validation := validationScore(input.Validation)
	ats := atsScore(input.Text, input.Sections, input.Location)

	result := types.ScoreResult{
		Formatting:       types.ComponentScore{Score: formatting, Max: maxFormatting, Message: formattingMessage(formatting)},
		Keywords:         types.ComponentScore{Score: keywords, Max: maxKeywords, Message: keywordsMessage(keywords)},
		Content:          types.ComponentScore{Score: content, Max: maxContent, Message: contentMessage(content)},
		SkillValidation:  types.ComponentScore{Score: validation, Max: maxValidation, Message: validationMessage(validation)},
		ATSCompatibility: types.ComponentScore{Score: ats, Max: maxATS, Message: atsMessage(ats)},
		Bonuses:          []types.Adjustment{},
		Penalties:        []types.Adjustment{},
	}

	total := formatting + keywords + content + validation + ats

	// Component-level penalties are already reflected in their
	// components; they are itemized here for auditability only
	if input.Grammar.Penalty > 0 {
		result.Penalties = append(result.Penalties, types.Adjustment{
			Reason: "grammar", Amount: input.Grammar.Penalty,
		})
	}
	if input.Location.Penalty > 0 {
		result.Penalties = append(result.Penalties, types.Adjustment{
			Reason: "location_privacy", Amount: input.Location.Penalty,
		})
	}

	switch {
	case input.Validation.ValidationPercentage >= 0.9:
		result.Bonuses = append(result.Bonuses, types.Adjustment{
			Reason: "excellent_skill_validation", Amount: 2.0,
		})
		total += 2.0
	case input.Validation.ValidationPercentage >= 0.8:
		result.Bonuses = append(result.Bonuses, types.Adjustment{
			Reason: "good_skill_validation", Amount: 1.0,
		})
		total += 1.0
	}

	if input.Grammar.CheckerAvailable && input.Grammar.TotalErrors == 0 {
		result.Bonuses = append(result.Bonuses, types.Adjustment{
			Reason: "perfect_grammar", Amount: 2.0,
		})
		total += 2.0
	}

	result.Overall = clip(total, 0, maxOverall)
	result.Interpretation = Interpret(result.Overall)

	return result
}

// formattingScore awards section presence (cap 10), bullet usage
// (cap 5), and structural organization (cap 5).
func formattingScore(sections types.SectionMap, bulletCount int) float64 {
	score := 0.0

	// Sections count only when they carry enough content to be real
	if len(sections[types.SectionExperience]) > 50 {
		score += 3.0
	}
	if len(sections[types.SectionEducation]) > 20 {
		score += 2.0
	}
	if len(sections[types.SectionSkills]) > 10 {
		score += 2.0
	}
	if len(sections[types.SectionSummary]) > 30 {
		score += 1.5
	}
	if len(sections[types.SectionProjects]) > 30 {
		score += 1.5
	}
	if score > 10 {
		score = 10
	}

	switch {
	case bulletCount >= 15:
		score += 5.0
	case bulletCount >= 10:
		score += 4.0
	case bulletCount >= 5:
		score += 3.0
	case bulletCount >= 3:
		score += 2.0
	case bulletCount >= 1:
		score += 1.0
	}

	recognized := 0
	for _, name := range []types.SectionName{
		types.SectionExperience, types.SectionEducation,
		types.SectionSkills, types.SectionSummary, types.SectionProjects,
	} {
		if sections[name] != "" {
			recognized++
		}
	}
	switch {
	case recognized >= 4:
		score += 5.0
	case recognized >= 3:
		score += 4.0
	case recognized >= 2:
		score += 3.0
	case recognized >= 1:
		score += 2.0
	}

	return clip(score, 0, maxFormatting)
}

// keywordsScore awards keyword volume (cap 10), skill volume (cap 10),
// and a JD-match bonus (cap 5) only when a JD was supplied.
func keywordsScore(keywords, skills []string, analysis *types.KeywordAnalysis) float64 {
	score := 0.0

	switch count := len(keywords); {
	case count >= 20:
		score += 10.0
	case count >= 15:
		score += 8.0
	case count >= 10:
		score += 6.0
	case count >= 5:
		score += 4.0
	case count >= 3:
		score += 2.0
	}

	switch count := len(skills); {
	case count >= 15:
		score += 10.0
	case count >= 10:
		score += 8.0
	case count >= 7:
		score += 6.0
	case count >= 5:
		score += 4.0
	case count >= 3:
		score += 2.0
	}

	// Without a JD the bonus term is absent, not zero-scored
	if analysis != nil && len(analysis.JDKeywords) > 0 {
		overlap := float64(len(analysis.MatchedKeywords)) / float64(len(analysis.JDKeywords))
		switch {
		case overlap >= 0.7:
			score += 5.0
		case overlap >= 0.5:
			score += 4.0
		case overlap >= 0.3:
			score += 3.0
		case overlap >= 0.2:
			score += 2.0
		case overlap >= 0.1:
			score += 1.0
		}
	}

	return clip(score, 0, maxKeywords)
}

// contentScore awards action verbs (cap 10), quantifiable achievements
// (cap 5), and grammar quality (10 minus the severity penalty, floor 0).
func contentScore(text string, actionVerbs []string, grammar types.GrammarResult) float64 {
	score := 0.0

	switch count := len(actionVerbs); {
	case count >= 15:
		score += 10.0
	case count >= 10:
		score += 8.0
	case count >= 7:
		score += 6.0
	case count >= 5:
		score += 4.0
	case count >= 3:
		score += 2.0
	}

	achievements := 0
	for _, pattern := range achievementPatterns {
		achievements += len(pattern.FindAllString(text, -1))
	}
	switch {
	case achievements >= 10:
		score += 5.0
	case achievements >= 7:
		score += 4.0
	case achievements >= 5:
		score += 3.0
	case achievements >= 3:
		score += 2.0
	case achievements >= 1:
		score += 1.0
	}

	grammarPoints := 10.0 - grammar.Penalty
	if grammarPoints < 0 {
		grammarPoints = 0
	}
	score += grammarPoints

	return clip(score, 0, maxContent)
}

func validationScore(validation types.SkillValidation) float64 {
	return clip(validation.ValidationScore, 0, maxValidation)
}

// atsScore starts at full marks and deducts the location penalty plus
// structural problems that trip resume parsers.
func atsScore(text string, sections types.SectionMap, location types.LocationResult) float64 {
	score := maxATS

	score -= location.Penalty

	switch count := len(boxDrawingPattern.FindAllString(text, -1)); {
	case count > 20:
		score -= 2.0
	case count > 10:
		score -= 1.0
	}

	// Present but tiny core sections usually mean the parser mangled them
	shortSections := 0
	for _, name := range []types.SectionName{
		types.SectionExperience, types.SectionEducation, types.SectionSkills,
	} {
		if content := sections[name]; content != "" && len(content) < 20 {
			shortSections++
		}
	}
	switch {
	case shortSections >= 2:
		score -= 2.0
	case shortSections >= 1:
		score -= 1.0
	}

	if len(sections[types.SectionExperience]) > 100 && len(sections[types.SectionSkills]) > 20 {
		score += 1.0
	}

	return clip(score, 0, maxATS)
}

func clip(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
