// Package location finds address-like mentions in resume text, assesses
// the privacy risk they carry, and computes a bounded penalty for the
// compatibility score. City/state in the contact header is expected on
// a resume and exempt.
package location

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"resumescore/internal/types"
)

const maxPenalty = 5.0

var (
	zipPattern = regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`)

	streetPattern = regexp.MustCompile(`\b\d+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+` +
		`(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Circle|Cir|Way|Place|Pl)\b`)

	cityStatePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*,\s*(?:` + stateAbbrevs + `|` + stateNames + `)\b`)

	stateNamePattern = regexp.MustCompile(`\b(?:` + stateNames + `)\b`)
)

// Bare abbreviations only count after a "City," prefix; standalone they
// collide with ordinary uppercase words ("ABOUT ME", "EXPERIENCE IN").
const stateAbbrevs = `AL|AK|AZ|AR|CA|CO|CT|DE|FL|GA|HI|ID|IL|IN|IA|KS|KY|LA|ME|MD|MA|MI|MN|MS|MO|MT|NE|NV|NH|NJ|NM|NY|NC|ND|OH|OK|OR|PA|RI|SC|SD|TN|TX|UT|VT|VA|WA|WV|WI|WY`

// Full state names stand in for named-entity geographic tags. Multiword
// names precede their suffixes so the longer alternative matches first.
const stateNames = `New Hampshire|New Jersey|New Mexico|New York|North Carolina|North Dakota|` +
	`South Carolina|South Dakota|West Virginia|Rhode Island|Alabama|Alaska|Arizona|Arkansas|` +
	`California|Colorado|Connecticut|Delaware|Florida|Georgia|Hawaii|Idaho|Illinois|Indiana|` +
	`Iowa|Kansas|Kentucky|Louisiana|Maine|Maryland|Massachusetts|Michigan|Minnesota|` +
	`Mississippi|Missouri|Montana|Nebraska|Nevada|Ohio|Oklahoma|Oregon|Pennsylvania|` +
	`Tennessee|Texas|Utah|Vermont|Virginia|Washington|Wisconsin|Wyoming`

// Detector scans text for location mentions. The contact header length
// bounds the exemption window for city/state mentions.
type Detector struct {
	contactHeaderLength int
}

func NewDetector(contactHeaderLength int) *Detector {
	return &Detector{contactHeaderLength: contactHeaderLength}
}

// span is a candidate mention before overlap resolution
type span struct {
	start, end int
	kind       types.LocationKind
}

// kindRank orders kinds by specificity for overlap resolution
func kindRank(kind types.LocationKind) int {
	switch kind {
	case types.LocationAddress:
		return 3
	case types.LocationZip:
		return 2
	case types.LocationCityState:
		return 1
	default:
		return 0
	}
}

// Detect finds all location mentions in the text, applies the contact
// header exemption, and derives the risk level and penalty.
func (d *Detector) Detect(text string) types.LocationResult {
	result := types.LocationResult{
		DetectedLocations: []types.LocationMention{},
		PrivacyRisk:       types.RiskNone,
		Recommendations:   []string{},
	}

	mentions := d.collect(text)
	var hasAddress, hasZip bool
	var otherCount, exemptCount int

	for _, m := range mentions {
		if m.Exempt {
			exemptCount++
			continue
		}
		result.DetectedLocations = append(result.DetectedLocations, m)
		switch m.Kind {
		case types.LocationAddress:
			hasAddress = true
		case types.LocationZip:
			hasZip = true
		default:
			otherCount++
		}
	}
	result.ExemptCount = exemptCount
	result.LocationFound = len(result.DetectedLocations) > 0

	switch {
	case hasAddress || hasZip:
		result.PrivacyRisk = types.RiskHigh
	case otherCount >= 2:
		result.PrivacyRisk = types.RiskMedium
	case otherCount == 1:
		result.PrivacyRisk = types.RiskLow
	}

	result.Penalty = penaltyFor(result.PrivacyRisk, hasAddress, hasZip)
	result.Recommendations = recommendations(result.DetectedLocations, hasAddress, hasZip)

	return result
}

// collect gathers candidate spans from all patterns, keeps the most
// specific span for each overlapping group, and orders by offset
func (d *Detector) collect(text string) []types.LocationMention {
	var spans []span
	add := func(pattern *regexp.Regexp, kind types.LocationKind) {
		for _, loc := range pattern.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], kind: kind})
		}
	}
	add(streetPattern, types.LocationAddress)
	add(zipPattern, types.LocationZip)
	add(cityStatePattern, types.LocationCityState)
	add(stateNamePattern, types.LocationOtherGeo)

	// Most specific kind first so overlap resolution keeps it
	sort.SliceStable(spans, func(i, j int) bool {
		return kindRank(spans[i].kind) > kindRank(spans[j].kind)
	})

	var kept []span
	for _, s := range spans {
		overlaps := false
		for _, k := range kept {
			if s.start < k.end && k.start < s.end {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, s)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].start < kept[j].start })

	mentions := make([]types.LocationMention, 0, len(kept))
	for _, s := range kept {
		mention := types.LocationMention{
			Text:    text[s.start:s.end],
			Kind:    s.kind,
			Section: d.sectionFor(text, s.start),
			Offset:  s.start,
		}
		if s.kind == types.LocationCityState &&
			s.start < d.contactHeaderLength &&
			!containsStreetToken(mention.Text) {
			mention.Exempt = true
		}
		mentions = append(mentions, mention)
	}
	return mentions
}

// sectionFor names the resume section a mention falls in: the contact
// header window, or whichever section heading the surrounding context
// mentions, else "other".
func (d *Detector) sectionFor(text string, offset int) string {
	if offset < d.contactHeaderLength {
		return "contact_header"
	}

	start := max(0, offset-200)
	end := min(len(text), offset+200)
	context := strings.ToLower(text[start:end])

	switch {
	case strings.Contains(context, "experience") ||
		strings.Contains(context, "work history") ||
		strings.Contains(context, "employment"):
		return "experience"
	case strings.Contains(context, "education") ||
		strings.Contains(context, "academic") ||
		strings.Contains(context, "university") ||
		strings.Contains(context, "college"):
		return "education"
	default:
		return "other"
	}
}

func containsStreetToken(text string) bool {
	return streetPattern.MatchString(text) || zipPattern.MatchString(text)
}

// penaltyFor maps risk and mention composition to [0, 5]
func penaltyFor(risk types.PrivacyRisk, hasAddress, hasZip bool) float64 {
	switch {
	case hasAddress && hasZip:
		return maxPenalty
	case hasAddress || hasZip:
		return 4.0
	case risk == types.RiskMedium:
		return 3.0
	case risk == types.RiskLow:
		return 2.0
	default:
		return 0.0
	}
}

func recommendations(detected []types.LocationMention, hasAddress, hasZip bool) []string {
	if len(detected) == 0 {
		return []string{}
	}

	var recs []string
	if hasAddress {
		recs = append(recs, "Remove full street addresses from your resume; applicant tracking systems do not need them and they expose your home location.")
	}
	if hasZip {
		recs = append(recs, "Remove zip codes from your resume; this level of detail can be used to identify where you live.")
	}
	if !hasAddress && !hasZip {
		recs = append(recs, fmt.Sprintf("Consider reducing location mentions: %d found outside the contact header. City and state in the header is sufficient.", len(detected)))
	}
	if hasAddress || hasZip {
		recs = append(recs, "Include only city and state in your contact header and remove all other location details.")
	}
	return recs
}

// Summary renders detected mentions for feedback output
func Summary(detected []types.LocationMention) string {
	if len(detected) == 0 {
		return ""
	}
	parts := make([]string, 0, len(detected))
	for _, m := range detected {
		parts = append(parts, fmt.Sprintf("%q (%s)", m.Text, m.Kind))
	}
	return strings.Join(parts, ", ")
}
