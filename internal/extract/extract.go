// Package extract turns raw resume text into structured sections,
// contact fields, skills, projects, keywords and action verbs. It never
// fails on well-formed text: empty or malformed input yields all-empty
// structures, which downstream stages treat as a data-quality signal.
package extract

import "resumescore/internal/types"

// Extract runs all extraction passes over the resume text
func Extract(text string, keywordLimit int) types.Extraction {
	sections := ExtractSections(text)

	return types.Extraction{
		Sections:    sections,
		Contact:     ExtractContact(text),
		Skills:      ExtractSkills(text, sections),
		Projects:    ExtractProjects(sections),
		Keywords:    ExtractKeywords(text, keywordLimit),
		ActionVerbs: ExtractActionVerbs(text),
	}
}
