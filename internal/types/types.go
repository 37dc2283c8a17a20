package types

// SectionName identifies a recognized resume section.
type SectionName string

const (
	SectionSummary    SectionName = "summary"
	SectionExperience SectionName = "experience"
	SectionEducation  SectionName = "education"
	SectionSkills     SectionName = "skills"
	SectionProjects   SectionName = "projects"
)

// SectionMap maps recognized section names to their text content.
// A missing section is represented by an absent key, never an empty error.
type SectionMap map[SectionName]string

// ContactInfo holds contact fields recognized in the resume text.
// Absent fields are empty strings.
type ContactInfo struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Project is a project extracted from the projects section.
type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// Extraction bundles everything the extractor derives from raw resume text.
type Extraction struct {
	Sections    SectionMap  `json:"sections"`
	Contact     ContactInfo `json:"contact"`
	Skills      []string    `json:"skills"`
	Projects    []Project   `json:"projects"`
	Keywords    []string    `json:"keywords"`
	ActionVerbs []string    `json:"actionVerbs"`
}

// ValidationResult records the outcome of validating a single claimed skill.
type ValidationResult struct {
	Skill              string   `json:"skill"`
	Validated          bool     `json:"validated"`
	SupportingProjects []string `json:"supportingProjects"`
	Similarity         float64  `json:"similarity"`
}

// SkillValidation aggregates per-skill validation results.
// ValidatedSkills and UnvalidatedSkills partition the input skills.
type SkillValidation struct {
	Results              []ValidationResult  `json:"results"`
	ValidatedSkills      []string            `json:"validatedSkills"`
	UnvalidatedSkills    []string            `json:"unvalidatedSkills"`
	SkillProjectMapping  map[string][]string `json:"skillProjectMapping"`
	ValidationPercentage float64             `json:"validationPercentage"`
	ValidationScore      float64             `json:"validationScore"`
	SemanticAvailable    bool                `json:"semanticAvailable"`
}

// GrammarCategory is the severity class of a grammar finding.
type GrammarCategory string

const (
	GrammarCritical GrammarCategory = "critical"
	GrammarModerate GrammarCategory = "moderate"
	GrammarMinor    GrammarCategory = "minor"
)

// GrammarFinding is one categorized issue reported by the grammar backend.
type GrammarFinding struct {
	Message     string          `json:"message"`
	Context     string          `json:"context"`
	Suggestions []string        `json:"suggestions"`
	RuleID      string          `json:"ruleId"`
	Offset      int             `json:"offset"`
	Length      int             `json:"length"`
	Category    GrammarCategory `json:"category"`
}

// GrammarResult aggregates grammar findings and the bounded penalty.
type GrammarResult struct {
	Findings         []GrammarFinding `json:"findings"`
	CriticalCount    int              `json:"criticalCount"`
	ModerateCount    int              `json:"moderateCount"`
	MinorCount       int              `json:"minorCount"`
	TotalErrors      int              `json:"totalErrors"`
	Penalty          float64          `json:"penalty"`
	GrammarScore     float64          `json:"grammarScore"`
	CheckerAvailable bool             `json:"checkerAvailable"`
}

// LocationKind classifies a detected location mention.
type LocationKind string

const (
	LocationAddress   LocationKind = "address"
	LocationZip       LocationKind = "zip"
	LocationCityState LocationKind = "city_state"
	LocationOtherGeo  LocationKind = "other_geo"
)

// PrivacyRisk is the overall privacy risk level of a resume.
type PrivacyRisk string

const (
	RiskNone   PrivacyRisk = "none"
	RiskLow    PrivacyRisk = "low"
	RiskMedium PrivacyRisk = "medium"
	RiskHigh   PrivacyRisk = "high"
)

// LocationMention is one location-like span found in the text.
type LocationMention struct {
	Text    string       `json:"text"`
	Kind    LocationKind `json:"kind"`
	Section string       `json:"section"`
	Offset  int          `json:"offset"`
	Exempt  bool         `json:"exempt"`
}

// LocationResult aggregates privacy-relevant location findings.
// DetectedLocations holds non-exempt mentions ordered by offset;
// ExemptCount tracks contact-header city/state mentions that were
// excluded from risk assessment.
type LocationResult struct {
	LocationFound     bool              `json:"locationFound"`
	DetectedLocations []LocationMention `json:"detectedLocations"`
	PrivacyRisk       PrivacyRisk       `json:"privacyRisk"`
	Recommendations   []string          `json:"recommendations"`
	Penalty           float64           `json:"penalty"`
	ExemptCount       int               `json:"exemptCount"`
}

// KeywordAnalysis is produced only when a job description is supplied.
type KeywordAnalysis struct {
	JDKeywords         []string `json:"jdKeywords"`
	MatchedKeywords    []string `json:"matchedKeywords"`
	MissingKeywords    []string `json:"missingKeywords"`
	SemanticSimilarity float64  `json:"semanticSimilarity"`
	SkillsGap          []string `json:"skillsGap"`
	MatchPercentage    float64  `json:"matchPercentage"`
}

// JobEntry is a single position parsed from the experience section.
type JobEntry struct {
	Heading     string `json:"heading"`
	HasDates    bool   `json:"hasDates"`
	HasTitle    bool   `json:"hasTitle"`
	HasMetrics  bool   `json:"hasMetrics"`
	BulletCount int    `json:"bulletCount"`
}

// ExperienceMetrics counts the quality signals found across job entries.
type ExperienceMetrics struct {
	TotalJobs              int `json:"totalJobs"`
	JobsWithDates          int `json:"jobsWithDates"`
	JobsWithBullets        int `json:"jobsWithBullets"`
	JobsWithMetrics        int `json:"jobsWithMetrics"`
	ActionVerbsUsed        int `json:"actionVerbsUsed"`
	QuantifiedAchievements int `json:"quantifiedAchievements"`
}

// ExperienceAnalysis is the standalone quality assessment of the
// experience section. Its score is reported alongside the overall
// score, not folded into it.
type ExperienceAnalysis struct {
	Score        float64           `json:"score"`
	MaxScore     float64           `json:"maxScore"`
	JobEntries   []JobEntry        `json:"jobEntries"`
	Metrics      ExperienceMetrics `json:"metrics"`
	Assessment   string            `json:"assessment"`
	Strengths    []string          `json:"strengths"`
	Improvements []string          `json:"improvements"`
}

// Adjustment is one itemized bonus or penalty applied to the overall score.
type Adjustment struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

// ComponentScore is one bounded sub-score with its interpretation message.
type ComponentScore struct {
	Score   float64 `json:"score"`
	Max     float64 `json:"max"`
	Message string  `json:"message"`
}

// ScoreResult holds the five bounded component scores and the overall score.
type ScoreResult struct {
	Formatting       ComponentScore `json:"formatting"`
	Keywords         ComponentScore `json:"keywords"`
	Content          ComponentScore `json:"content"`
	SkillValidation  ComponentScore `json:"skillValidation"`
	ATSCompatibility ComponentScore `json:"atsCompatibility"`
	Bonuses          []Adjustment   `json:"bonuses"`
	Penalties        []Adjustment   `json:"penalties"`
	Overall          float64        `json:"overall"`
	Interpretation   string         `json:"interpretation"`
}

// Feedback holds the derived narrative lists of an analysis.
type Feedback struct {
	Strengths      []string `json:"strengths"`
	CriticalIssues []string `json:"criticalIssues"`
	Improvements   []string `json:"improvements"`
}

// AnalysisReport is the complete output of one analysis run.
type AnalysisReport struct {
	Extraction      Extraction         `json:"extraction"`
	SkillValidation SkillValidation    `json:"skillValidation"`
	Experience      ExperienceAnalysis `json:"experience"`
	Grammar         GrammarResult      `json:"grammar"`
	Location        LocationResult     `json:"location"`
	KeywordAnalysis *KeywordAnalysis   `json:"keywordAnalysis,omitempty"`
	Score           ScoreResult        `json:"score"`
	Feedback        Feedback           `json:"feedback"`
}
