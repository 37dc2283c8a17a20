package extract

// actionVerbs is the lexicon used to recognize resume action verbs at the
// start of bullet lines.
var actionVerbs = map[string]bool{
	"achieved":     true,
	"administered": true,
	"analyzed":     true,
	"architected":  true,
	"automated":    true,
	"built":        true,
	"collaborated": true,
	"coordinated":  true,
	"created":      true,
	"debugged":     true,
	"delivered":    true,
	"deployed":     true,
	"designed":     true,
	"developed":    true,
	"directed":     true,
	"engineered":   true,
	"enhanced":     true,
	"established":  true,
	"executed":     true,
	"expanded":     true,
	"implemented":  true,
	"improved":     true,
	"increased":    true,
	"initiated":    true,
	"integrated":   true,
	"launched":     true,
	"led":          true,
	"maintained":   true,
	"managed":      true,
	"mentored":     true,
	"migrated":     true,
	"modernized":   true,
	"monitored":    true,
	"negotiated":   true,
	"optimized":    true,
	"organized":    true,
	"oversaw":      true,
	"planned":      true,
	"presented":    true,
	"produced":     true,
	"published":    true,
	"reduced":      true,
	"refactored":   true,
	"researched":   true,
	"resolved":     true,
	"scaled":       true,
	"spearheaded":  true,
	"streamlined":  true,
	"supervised":   true,
	"tested":       true,
	"transformed":  true,
	"upgraded":     true,
}

// technicalTerms is the lexicon of technology names recognized as skill
// entities anywhere in the text. Multi-word terms are matched before
// single words so "machine learning" wins over "machine".
var technicalTerms = []string{
	"machine learning",
	"deep learning",
	"data analysis",
	"power bi",
	"scikit-learn",
	"node.js",
	"next.js",
	"ci/cd",
	"python",
	"java",
	"javascript",
	"typescript",
	"golang",
	"rust",
	"c++",
	"c#",
	"ruby",
	"php",
	"swift",
	"kotlin",
	"scala",
	"sql",
	"nosql",
	"html",
	"css",
	"react",
	"angular",
	"vue",
	"django",
	"flask",
	"fastapi",
	"spring",
	"rails",
	"laravel",
	"express",
	"docker",
	"kubernetes",
	"terraform",
	"ansible",
	"jenkins",
	"aws",
	"azure",
	"gcp",
	"git",
	"linux",
	"mongodb",
	"postgresql",
	"mysql",
	"sqlite",
	"redis",
	"elasticsearch",
	"kafka",
	"rabbitmq",
	"graphql",
	"grpc",
	"rest",
	"tensorflow",
	"pytorch",
	"keras",
	"pandas",
	"numpy",
	"spark",
	"hadoop",
	"airflow",
	"tableau",
	"excel",
	"jira",
	"agile",
	"scrum",
	"devops",
	"microservices",
	"nlp",
	"oauth",
	"prometheus",
	"grafana",
}

// stopwords excludes common function words from keyword ranking.
var stopwords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"all": true, "also": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"could": true, "did": true, "do": true, "does": true, "doing": true,
	"down": true, "during": true, "each": true, "few": true, "for": true,
	"from": true, "further": true, "had": true, "has": true, "have": true,
	"having": true, "he": true, "her": true, "here": true, "hers": true,
	"him": true, "his": true, "how": true, "i": true, "if": true,
	"in": true, "into": true, "is": true, "it": true, "its": true,
	"just": true, "me": true, "more": true, "most": true, "my": true,
	"no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "out": true, "over": true, "own": true,
	"same": true, "she": true, "should": true, "so": true, "some": true,
	"such": true, "than": true, "that": true, "the": true, "their": true,
	"them": true, "then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "to": true, "too": true,
	"under": true, "until": true, "up": true, "very": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "whom": true, "why": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
	"using": true, "used": true, "use": true, "work": true, "worked": true,
	"working": true, "various": true, "including": true, "etc": true,
}
