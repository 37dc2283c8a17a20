package extract

import (
	"regexp"
	"sort"
	"strings"
)

var tokenPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+#./\-]*`)

// ExtractKeywords ranks terms by frequency over recognized technical
// terms and remaining content words, returning the top limit terms.
// Ties break by first occurrence, keeping the ranking deterministic.
func ExtractKeywords(text string, limit int) []string {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	// Technical terms count as single keywords even when multi-word.
	// Their spans are blanked out so the token pass does not recount
	// their constituent words.
	lower := strings.ToLower(text)
	remainder := []byte(lower)
	for _, term := range technicalTerms {
		idx := indexWord(lower, term, 0)
		for idx >= 0 {
			if counts[term] == 0 {
				firstSeen[term] = idx
			}
			counts[term]++
			for i := idx; i < idx+len(term); i++ {
				remainder[i] = ' '
			}
			idx = indexWord(lower, term, idx+len(term))
		}
	}

	for _, span := range tokenPattern.FindAllStringIndex(string(remainder), -1) {
		token := strings.Trim(lower[span[0]:span[1]], "./-")
		if len(token) < 3 || stopwords[token] {
			continue
		}
		if counts[token] == 0 {
			firstSeen[token] = span[0]
		}
		counts[token]++
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
