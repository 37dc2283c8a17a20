package scoring

import (
	"fmt"
	"regexp"
	"strings"

	"resumescore/internal/types"
)

const maxExperience = 20.0

var (
	jobDatePattern  = regexp.MustCompile(`(?i)(20\d{2}|19\d{2}|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|Present|Current)`)
	jobTitlePattern = regexp.MustCompile(`(?i)(engineer|developer|manager|analyst|designer|consultant|intern|lead|director|specialist|senior|junior|associate|principal|staff|head)`)
	jobBulletLine   = regexp.MustCompile(`^([\x{2022}\-\*\x{25E6}]|\d+\.)`)

	yearPattern          = regexp.MustCompile(`20\d{2}|19\d{2}`)
	headingMetricPattern = regexp.MustCompile(`\d+%|\$\d+|\d+[kKmMbB]`)
	bulletMetricPattern  = regexp.MustCompile(`(?i)\d+%|\$\d+|\d+[kKmMbB]|\d+\s*(users|customers|projects)`)

	quantifiedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d+%`),
		regexp.MustCompile(`\$[\d,]+`),
		regexp.MustCompile(`\d+[kKmMbB]\b`),
		regexp.MustCompile(`(?i)\d+\s*(?:users|customers|clients|projects|teams|members)`),
		regexp.MustCompile(`(?i)(?:increased|decreased|improved|reduced|grew|saved|generated|managed|led)\s+(?:by\s+)?\d+`),
		regexp.MustCompile(`(?i)\d+x\s+(?:faster|better|improvement)`),
	}
)

// AnalyzeExperience assesses the quality of the experience section:
// job entries parsed out of it, date coverage, bullet usage, quantified
// achievements, and action verb usage. The resulting score is bounded
// to [0, 20] and stands on its own next to the overall score.
func AnalyzeExperience(experienceText string, actionVerbs []string) types.ExperienceAnalysis {
	analysis := types.ExperienceAnalysis{
		MaxScore:     maxExperience,
		JobEntries:   []types.JobEntry{},
		Strengths:    []string{},
		Improvements: []string{},
	}

	if len(strings.TrimSpace(experienceText)) < 50 {
		analysis.Assessment = "Experience section is missing or too short."
		analysis.Improvements = append(analysis.Improvements,
			"Add detailed work experience with job titles, companies, and dates.")
		return analysis
	}

	analysis.JobEntries = parseJobEntries(experienceText)
	analysis.Metrics.TotalJobs = len(analysis.JobEntries)
	for _, job := range analysis.JobEntries {
		if job.HasDates {
			analysis.Metrics.JobsWithDates++
		}
		if job.BulletCount > 0 {
			analysis.Metrics.JobsWithBullets++
		}
		if job.HasMetrics {
			analysis.Metrics.JobsWithMetrics++
		}
	}

	lower := strings.ToLower(experienceText)
	for _, verb := range actionVerbs {
		if strings.Contains(lower, strings.ToLower(verb)) {
			analysis.Metrics.ActionVerbsUsed++
		}
	}

	for _, pattern := range quantifiedPatterns {
		analysis.Metrics.QuantifiedAchievements += len(pattern.FindAllString(experienceText, -1))
	}

	analysis.Score = experienceScore(analysis.Metrics)
	experienceFeedback(&analysis)

	return analysis
}

// parseJobEntries splits the experience text into positions. A line
// carrying a date or a job title starts a new entry; bullet lines
// accrue to the current one.
func parseJobEntries(experienceText string) []types.JobEntry {
	var jobs []types.JobEntry
	var current *types.JobEntry

	for _, line := range strings.Split(experienceText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		hasDate := jobDatePattern.MatchString(line)
		hasTitle := jobTitlePattern.MatchString(line)
		isBullet := jobBulletLine.MatchString(line)

		switch {
		case (hasDate || hasTitle) && !isBullet:
			if current != nil {
				jobs = append(jobs, *current)
			}
			current = &types.JobEntry{
				Heading:    line,
				HasDates:   hasDate,
				HasTitle:   hasTitle,
				HasMetrics: headingMetricPattern.MatchString(line),
			}
		case isBullet && current != nil:
			current.BulletCount++
			if bulletMetricPattern.MatchString(line) {
				current.HasMetrics = true
			}
		}
	}
	if current != nil {
		jobs = append(jobs, *current)
	}

	// A long section that defeats line parsing still counts as one entry
	if len(jobs) == 0 && len(experienceText) > 100 {
		heading := experienceText
		if len(heading) > 100 {
			heading = heading[:100]
		}
		jobs = append(jobs, types.JobEntry{
			Heading:     heading,
			HasDates:    yearPattern.MatchString(experienceText),
			HasTitle:    true,
			HasMetrics:  headingMetricPattern.MatchString(experienceText),
			BulletCount: strings.Count(experienceText, "•") + strings.Count(experienceText, "-"),
		})
	}

	return jobs
}

// experienceScore awards job entries (cap 5), date coverage (cap 3),
// bullet coverage (cap 4), quantified achievements (cap 5), and action
// verbs (cap 3).
func experienceScore(metrics types.ExperienceMetrics) float64 {
	score := 0.0

	switch {
	case metrics.TotalJobs >= 3:
		score += 5.0
	case metrics.TotalJobs >= 2:
		score += 4.0
	case metrics.TotalJobs >= 1:
		score += 3.0
	}

	if metrics.TotalJobs > 0 {
		dateRatio := float64(metrics.JobsWithDates) / float64(metrics.TotalJobs)
		switch {
		case dateRatio >= 0.9:
			score += 3.0
		case dateRatio >= 0.7:
			score += 2.0
		case dateRatio >= 0.5:
			score += 1.0
		}

		bulletRatio := float64(metrics.JobsWithBullets) / float64(metrics.TotalJobs)
		switch {
		case bulletRatio >= 0.9:
			score += 4.0
		case bulletRatio >= 0.7:
			score += 3.0
		case bulletRatio >= 0.5:
			score += 2.0
		case bulletRatio > 0:
			score += 1.0
		}
	}

	switch {
	case metrics.QuantifiedAchievements >= 8:
		score += 5.0
	case metrics.QuantifiedAchievements >= 6:
		score += 4.0
	case metrics.QuantifiedAchievements >= 4:
		score += 3.0
	case metrics.QuantifiedAchievements >= 2:
		score += 2.0
	case metrics.QuantifiedAchievements >= 1:
		score += 1.0
	}

	switch {
	case metrics.ActionVerbsUsed >= 10:
		score += 3.0
	case metrics.ActionVerbsUsed >= 7:
		score += 2.0
	case metrics.ActionVerbsUsed >= 4:
		score += 1.0
	}

	return clip(score, 0, maxExperience)
}

func experienceFeedback(analysis *types.ExperienceAnalysis) {
	metrics := analysis.Metrics

	if metrics.TotalJobs >= 2 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("%d job entries documented.", metrics.TotalJobs))
	}
	if metrics.TotalJobs > 0 && metrics.JobsWithDates == metrics.TotalJobs {
		analysis.Strengths = append(analysis.Strengths, "All positions include dates.")
	}
	if metrics.QuantifiedAchievements >= 5 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("%d quantified achievements.", metrics.QuantifiedAchievements))
	}
	if metrics.ActionVerbsUsed >= 8 {
		analysis.Strengths = append(analysis.Strengths,
			fmt.Sprintf("Strong use of action verbs (%d found).", metrics.ActionVerbsUsed))
	}

	if metrics.TotalJobs < 2 {
		analysis.Improvements = append(analysis.Improvements,
			"Add more work experience entries if available.")
	}
	if missing := metrics.TotalJobs - metrics.JobsWithDates; missing > 0 {
		analysis.Improvements = append(analysis.Improvements,
			fmt.Sprintf("Add dates to %d position(s) missing date information.", missing))
	}
	if metrics.QuantifiedAchievements < 3 {
		analysis.Improvements = append(analysis.Improvements,
			"Add more quantified achievements (numbers, percentages, metrics).")
	}
	if metrics.ActionVerbsUsed < 5 {
		analysis.Improvements = append(analysis.Improvements,
			"Use more action verbs to describe accomplishments.")
	}
	if metrics.TotalJobs > 0 && metrics.JobsWithBullets < metrics.TotalJobs {
		analysis.Improvements = append(analysis.Improvements,
			"Use bullet points to list responsibilities and achievements.")
	}

	switch {
	case analysis.Score >= 16:
		analysis.Assessment = "Excellent experience section with strong details."
	case analysis.Score >= 12:
		analysis.Assessment = "Good experience section with room for improvement."
	case analysis.Score >= 8:
		analysis.Assessment = "Experience section needs more detail and quantification."
	default:
		analysis.Assessment = "Experience section requires significant improvement."
	}
}
