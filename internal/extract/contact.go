package extract

import (
	"regexp"

	"resumescore/internal/types"
)

var (
	emailPattern = regexp.MustCompile(
		`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(
		`(\+?\d{1,3}[\s.\-]?)?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	linkedinPattern = regexp.MustCompile(
		`(?i)(https?://)?(www\.)?linkedin\.com/in/[A-Za-z0-9_\-]+`)
	githubPattern = regexp.MustCompile(
		`(?i)(https?://)?(www\.)?github\.com/[A-Za-z0-9_\-]+`)
	portfolioPattern = regexp.MustCompile(
		`(?i)(https?://)?(www\.)?[a-z0-9\-]+\.(dev|io|me|app|site|tech)(/[^\s]*)?`)
)

// ExtractContact finds contact fields via pattern recognition. Absent
// fields stay empty; nothing here is an error.
func ExtractContact(text string) types.ContactInfo {
	contact := types.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		LinkedIn: linkedinPattern.FindString(text),
		GitHub:   githubPattern.FindString(text),
	}

	// The portfolio pattern also matches linkedin/github hosts, so only
	// accept a hit that is neither.
	for _, candidate := range portfolioPattern.FindAllString(text, -1) {
		if linkedinPattern.MatchString(candidate) || githubPattern.MatchString(candidate) {
			continue
		}
		contact.Portfolio = candidate
		break
	}

	return contact
}
