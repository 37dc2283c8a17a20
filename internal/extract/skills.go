package extract

import (
	"strings"

	"resumescore/internal/types"
)

// skillDelimiters normalizes the separators commonly used in skills
// sections down to a single comma before splitting.
var skillDelimiters = []string{"•", "|", ";", "\n", "·", "▪"}

// FindTechnicalTerms returns lexicon terms present in the text,
// case-insensitively, ordered by first occurrence. Multi-word terms are
// consumed before their single-word substrings.
func FindTechnicalTerms(text string) []string {
	lower := strings.ToLower(text)
	type hit struct {
		term   string
		offset int
	}
	var hits []hit
	claimed := make([]bool, len(lower))

	for _, term := range technicalTerms {
		idx := indexWord(lower, term, 0)
		for idx >= 0 {
			if !claimed[idx] {
				for i := idx; i < idx+len(term); i++ {
					claimed[i] = true
				}
				hits = append(hits, hit{term: term, offset: idx})
				break
			}
			idx = indexWord(lower, term, idx+1)
		}
	}

	// Order by first occurrence
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].offset < hits[j-1].offset; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	terms := make([]string, len(hits))
	for i, h := range hits {
		terms[i] = h.term
	}
	return terms
}

// indexWord finds term in s at a word boundary, starting at from
func indexWord(s, term string, from int) int {
	for {
		idx := strings.Index(s[from:], term)
		if idx < 0 {
			return -1
		}
		idx += from
		if boundedAt(s, idx, len(term)) {
			return idx
		}
		from = idx + 1
	}
}

// boundedAt reports whether s[idx:idx+n] sits on word boundaries
func boundedAt(s string, idx, n int) bool {
	if idx > 0 && isWordChar(s[idx-1]) {
		return false
	}
	end := idx + n
	if end < len(s) && isWordChar(s[end]) {
		return false
	}
	return true
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// ExtractSkills unions delimiter-split entries from the skills section
// with technical terms recognized anywhere in the text. Duplicates are
// removed case-insensitively; order is first occurrence with the skills
// section taking precedence.
func ExtractSkills(text string, sections types.SectionMap) []string {
	var skills []string
	seen := make(map[string]bool)

	add := func(skill string) {
		skill = strings.TrimSpace(skill)
		if skill == "" || len(skill) > 60 {
			return
		}
		key := strings.ToLower(skill)
		if seen[key] {
			return
		}
		seen[key] = true
		skills = append(skills, skill)
	}

	if section, ok := sections[types.SectionSkills]; ok {
		normalized := section
		for _, delim := range skillDelimiters {
			normalized = strings.ReplaceAll(normalized, delim, ",")
		}
		for _, entry := range strings.Split(normalized, ",") {
			add(entry)
		}
	}

	for _, term := range FindTechnicalTerms(text) {
		add(term)
	}

	return skills
}

// ExtractProjects parses the projects section into blank-line separated
// blocks: the first line of a block is its title, the remainder its
// description, and technologies are the technical terms found in the block.
func ExtractProjects(sections types.SectionMap) []types.Project {
	section, ok := sections[types.SectionProjects]
	if !ok {
		return nil
	}

	var projects []types.Project
	for _, block := range strings.Split(section, "\n\n") {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
			continue
		}

		title := stripBullet(lines[0])
		description := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		if description == "" {
			description = title
		}

		projects = append(projects, types.Project{
			Title:        title,
			Description:  description,
			Technologies: FindTechnicalTerms(block),
		})
	}

	return projects
}
