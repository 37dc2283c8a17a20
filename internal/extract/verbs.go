package extract

import "strings"

// ExtractActionVerbs takes the first word of every bullet-initiated line
// and keeps those present in the action-verb lexicon. Repeated verbs are
// reported once, ordered by first occurrence.
func ExtractActionVerbs(text string) []string {
	var verbs []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(text, "\n") {
		if !isBulletLine(line) {
			continue
		}
		fields := strings.Fields(stripBullet(line))
		if len(fields) == 0 {
			continue
		}
		word := strings.ToLower(strings.Trim(fields[0], ".,;:"))
		if !actionVerbs[word] || seen[word] {
			continue
		}
		seen[word] = true
		verbs = append(verbs, word)
	}

	return verbs
}
