package extract

import (
	"regexp"
	"strings"

	"resumescore/internal/types"
)

// maxHeadingLength bounds how long a line may be and still count as a
// section heading. Longer lines are body text even if they mention a
// section keyword.
const maxHeadingLength = 100

// sectionPatterns maps each recognized section to its heading synonyms.
// A heading is a short line consisting of one synonym, optionally with a
// trailing colon.
var sectionPatterns = map[types.SectionName]*regexp.Regexp{
	types.SectionSummary: regexp.MustCompile(
		`(?i)^\s*(professional\s+summary|career\s+objective|summary|objective|profile|about\s+me)\s*:?\s*$`),
	types.SectionExperience: regexp.MustCompile(
		`(?i)^\s*(work\s+experience|professional\s+experience|employment\s+history|work\s+history|professional\s+background|experience|employment)\s*:?\s*$`),
	types.SectionEducation: regexp.MustCompile(
		`(?i)^\s*(education|academic\s+background|academics|qualifications)\s*:?\s*$`),
	types.SectionSkills: regexp.MustCompile(
		`(?i)^\s*(technical\s+skills|core\s+competencies|skills|competencies|technologies|expertise)\s*:?\s*$`),
	types.SectionProjects: regexp.MustCompile(
		`(?i)^\s*((personal|key|academic|selected)\s+)?(projects|portfolio)\s*:?\s*$`),
}

// sectionScanOrder keeps heading matching deterministic when synonyms
// could overlap.
var sectionScanOrder = []types.SectionName{
	types.SectionSummary,
	types.SectionExperience,
	types.SectionEducation,
	types.SectionSkills,
	types.SectionProjects,
}

// matchHeading reports which section a line opens, if any
func matchHeading(line string) (types.SectionName, bool) {
	if len(line) > maxHeadingLength {
		return "", false
	}
	for _, name := range sectionScanOrder {
		if sectionPatterns[name].MatchString(line) {
			return name, true
		}
	}
	return "", false
}

// ExtractSections scans the text line by line with a single
// current-section cursor. Content before the first recognized heading
// belongs to no section; a section runs until the next recognized
// heading or end of text. Missing headings simply leave their section
// absent from the map.
func ExtractSections(text string) types.SectionMap {
	sections := make(types.SectionMap)
	if strings.TrimSpace(text) == "" {
		return sections
	}

	var current types.SectionName
	var body []string

	flush := func() {
		if current == "" {
			return
		}
		content := strings.TrimSpace(strings.Join(body, "\n"))
		if content != "" {
			if existing, ok := sections[current]; ok {
				// Repeated headings append to the earlier section
				sections[current] = existing + "\n" + content
			} else {
				sections[current] = content
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := matchHeading(line); ok {
			flush()
			current = name
			body = body[:0]
			continue
		}
		if current != "" {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// bulletPrefixes are the markers that open a bullet line.
var bulletPrefixes = []string{"•", "-", "*", "▪", "●", "‣", "–"}

// isBulletLine reports whether a trimmed line starts with a bullet marker
func isBulletLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

// stripBullet removes the leading bullet marker from a line
func stripBullet(line string) string {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range bulletPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
		}
	}
	return trimmed
}

// CountBullets counts bullet-initiated lines in the text
func CountBullets(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if isBulletLine(line) {
			count++
		}
	}
	return count
}
