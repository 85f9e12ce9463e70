package extract

import (
	"regexp"
	"strings"
)

const maxCompanyWords = 8

var (
	aboutPhraseRe = regexp.MustCompile(`(?i)^About\s+(.+?)\s*$`)
	tellMeMoreRe  = regexp.MustCompile(`(?i)tell me more about\s+(.+?)\s*[?.!]*$`)
	aboutGeneric  = map[string]bool{
		"the job":     true,
		"the company": true,
		"the role":    true,
		"this role":   true,
		"us":          true,
		"you":         true,
	}
)

func (e *Extractor) companyStrategies() []strategy {
	return []strategy{
		{"logo-marker", companyFromLogo},
		{"metadata-segment", e.companyFromMetadata},
		{"about-company", companyAfterAboutHeading},
		{"about-phrase", companyFromAboutPhrase},
		{"save-phrase", savePhrase(2)},
		{"tell-me-more", companyFromTellMeMore},
		{"tab-title", tabTitle(2)},
	}
}

// companyFromLogo yields X for "X logo" lines and the following line for a
// bare "Company logo".
func companyFromLogo(d *document) []string {
	var out []string
	for i, line := range d.all {
		m := logoRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], "company") {
			if next := d.line(i + 1); next != "" {
				out = append(out, next)
			}
			continue
		}
		out = append(out, m[1])
	}
	return out
}

// companyFromMetadata yields the first segment of metadata lines whose
// lead segment is not a location, job type, date or applicant count.
func (e *Extractor) companyFromMetadata(d *document) []string {
	var out []string
	for _, m := range d.meta {
		seg := m.segments[0]
		if e.looksLikeLocation(seg) || e.lib.IsJobType(seg) || e.isMetadataNoise(seg) {
			continue
		}
		out = append(out, seg)
	}
	return out
}

func companyAfterAboutHeading(d *document) []string {
	var out []string
	for i, line := range d.all {
		if strings.EqualFold(strings.TrimRight(line, ": "), "About the company") {
			if next := d.line(i + 1); next != "" {
				out = append(out, next)
			}
		}
	}
	return out
}

func companyFromAboutPhrase(d *document) []string {
	var out []string
	for _, line := range d.all {
		m := aboutPhraseRe.FindStringSubmatch(line)
		if m == nil || aboutGeneric[strings.ToLower(m[1])] {
			continue
		}
		out = append(out, m[1])
	}
	return out
}

func companyFromTellMeMore(d *document) []string {
	var out []string
	for _, line := range d.all {
		if m := tellMeMoreRe.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
		}
	}
	return out
}

func (e *Extractor) acceptCompany(candidate string) (string, string, bool) {
	company := trimTrailingPunct(candidate)
	if company == "" {
		return "", "empty", false
	}
	// Keep the dot of "Inc." and "Co.".
	if e.lib.HasCorporateSuffix(company+".") && strings.HasPrefix(strings.TrimSpace(candidate), company+".") {
		company += "."
	}
	if e.lib.IsNavigationLabel(company) {
		return "", "navigation label", false
	}
	if strings.EqualFold(company, "unknown") {
		return "", "sentinel", false
	}
	if wordCount(company) > maxCompanyWords {
		return "", "too many words", false
	}
	if e.isMetadataNoise(company) {
		return "", "metadata text", false
	}
	if uiLabels[strings.ToLower(company)] {
		return "", "ui label", false
	}
	return company, "", true
}

// isMetadataNoise reports text that belongs to a metadata segment other
// than company or location.
func (e *Extractor) isMetadataNoise(s string) bool {
	if strings.Contains(s, "$") {
		return true
	}
	if e.lib.RelativeDate().MatchString(s) {
		return true
	}
	for _, re := range e.lib.ApplicantPatterns() {
		if re.MatchString(s) {
			return true
		}
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "posted") || strings.HasPrefix(lower, "reposted")
}
