package scoring

// Interpret maps an overall score to its interpretation band
func Interpret(overall float64) string {
	switch {
	case overall >= 90:
		return "Excellent! Your resume is highly optimized for ATS systems."
	case overall >= 80:
		return "Great! Your resume should perform well with most ATS systems."
	case overall >= 70:
		return "Good! Your resume is ATS-friendly with room for minor improvements."
	case overall >= 60:
		return "Fair. Your resume needs some improvements to be fully ATS-compatible."
	case overall >= 50:
		return "Below average. Significant improvements needed for ATS compatibility."
	default:
		return "Poor. Your resume requires major revisions to pass ATS screening."
	}
}

func formattingMessage(score float64) string {
	switch {
	case score >= 18:
		return "Excellent structure and organization"
	case score >= 15:
		return "Good formatting with minor improvements possible"
	case score >= 12:
		return "Adequate formatting, consider adding more structure"
	default:
		return "Needs improvement: add sections and bullet points"
	}
}

func keywordsMessage(score float64) string {
	switch {
	case score >= 22:
		return "Excellent keyword optimization"
	case score >= 18:
		return "Good keyword presence"
	case score >= 14:
		return "Adequate keywords, could add more relevant terms"
	default:
		return "Needs more keywords and skills"
	}
}

func contentMessage(score float64) string {
	switch {
	case score >= 22:
		return "Excellent content quality with strong action verbs"
	case score >= 18:
		return "Good content with measurable achievements"
	case score >= 14:
		return "Adequate content, add more quantifiable results"
	default:
		return "Needs improvement: add action verbs and metrics"
	}
}

func validationMessage(score float64) string {
	switch {
	case score >= 13:
		return "Excellent skill validation"
	case score >= 10:
		return "Good skill validation"
	case score >= 7:
		return "Some skills lack supporting evidence"
	default:
		return "Many skills are not validated by projects"
	}
}

func atsMessage(score float64) string {
	switch {
	case score >= 13:
		return "Excellent ATS compatibility"
	case score >= 11:
		return "Good ATS compatibility"
	case score >= 9:
		return "Adequate ATS compatibility with minor issues"
	default:
		return "ATS compatibility needs improvement"
	}
}
