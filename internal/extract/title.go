package extract

import (
	"regexp"
	"strings"
)

const maxTitleWords = 10

var (
	logoRe           = regexp.MustCompile(`(?i)^(.+?)\s+logo$`)
	savePhraseRe     = regexp.MustCompile(`(?i)^Save\s+(.+?)\s+at\s+(.+?)\s*$`)
	tabPipeRe        = regexp.MustCompile(`(?i)^(?:\(\d+\)\s*)?(.+?)\s*\|\s*(.+?)\s*\|\s*LinkedIn\s*$`)
	tabAtRe          = regexp.MustCompile(`(?i)^(?:\(\d+\)\s*)?(.+?)\s+at\s+(.+?)\s*\|\s*LinkedIn\s*$`)
	titleWorkplaceRe = regexp.MustCompile(`(?i)\s*\((?:remote|hybrid|on-site|onsite)\)\s*$`)
	titleCitySepRe   = regexp.MustCompile(`\s+[-–|,]\s+(?:[A-Z][\w.'-]*\s?){1,3},\s*([A-Z]{2})$`)
	titleCityRe      = regexp.MustCompile(`\s+[A-Za-z]+,\s*([A-Z]{2})$`)
)

var uiLabels = map[string]bool{
	"share":             true,
	"share options":     true,
	"show more options": true,
	"save":              true,
	"saved":             true,
	"apply":             true,
	"easy apply":        true,
	"promoted":          true,
	"follow":            true,
	"following":         true,
	"message":           true,
	"see more":          true,
}

func (e *Extractor) titleStrategies() []strategy {
	return []strategy{
		{"before-metadata", e.titleBeforeMetadata},
		{"after-logo", titleAfterLogo},
		{"after-options", titleAfterOptions},
		{"save-phrase", savePhrase(1)},
		{"tab-title", tabTitle(1)},
	}
}

// titleBeforeMetadata yields the line above each middot metadata line,
// stepping over the company name printed under a logo.
func (e *Extractor) titleBeforeMetadata(d *document) []string {
	logo := logoCompany(d.all)
	var out []string
	for _, m := range d.meta {
		i := m.index - 1
		if logo != "" && strings.EqualFold(d.headerLine(i), logo) {
			i--
		}
		if i < 0 || d.isMeta(i) {
			continue
		}
		out = append(out, d.headerLine(i))
	}
	return out
}

func titleAfterLogo(d *document) []string {
	var out []string
	for i, line := range d.header {
		m := logoRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for j := i + 1; j < len(d.header) && j <= i+4; j++ {
			next := d.header[j]
			if strings.EqualFold(next, m[1]) || uiLabels[strings.ToLower(next)] {
				continue
			}
			out = append(out, next)
			break
		}
	}
	return out
}

func titleAfterOptions(d *document) []string {
	var out []string
	for i, line := range d.header {
		lower := strings.ToLower(line)
		if lower == "share options" || lower == "show more options" {
			if next := d.headerLine(i + 1); next != "" {
				out = append(out, next)
			}
		}
	}
	return out
}

// savePhrase yields group n of every "Save <title> at <company>" line.
func savePhrase(n int) func(d *document) []string {
	return func(d *document) []string {
		var out []string
		for _, line := range d.all {
			if m := savePhraseRe.FindStringSubmatch(line); m != nil {
				out = append(out, m[n])
			}
		}
		return out
	}
}

// tabTitle yields group n of a browser tab title such as
// "(2) Senior Engineer | Acme | LinkedIn".
func tabTitle(n int) func(d *document) []string {
	return func(d *document) []string {
		var out []string
		for _, line := range d.all {
			if m := parseTabTitle(line); m != nil {
				out = append(out, m[n])
			}
		}
		return out
	}
}

func parseTabTitle(line string) []string {
	if m := tabPipeRe.FindStringSubmatch(line); m != nil {
		return m
	}
	return tabAtRe.FindStringSubmatch(line)
}

func (e *Extractor) acceptTitle(candidate string) (string, string, bool) {
	if e.isStrictLocation(candidate) {
		return "", "location text", false
	}
	title := e.cleanTitle(candidate)
	if title == "" {
		return "", "empty after cleaning", false
	}
	if tok := e.lib.BlacklistToken(title); tok != "" {
		return "", "blacklisted: " + tok, false
	}
	lower := strings.ToLower(title)
	if strings.HasSuffix(lower, "ago") || strings.HasSuffix(lower, "applicants") || strings.HasSuffix(lower, "applicant") {
		return "", "metadata text", false
	}
	if strings.Contains(title, "$") {
		return "", "salary text", false
	}
	if wordCount(title) > maxTitleWords {
		return "", "too many words", false
	}
	if uiLabels[lower] {
		return "", "ui label", false
	}
	if e.lib.IsJobType(title) {
		return "", "job type", false
	}
	if e.isStrictLocation(title) {
		return "", "location text", false
	}
	return title, "", true
}

// cleanTitle drops workplace annotations, a trailing "City, ST" and
// anything after a middot.
func (e *Extractor) cleanTitle(s string) string {
	if i := strings.Index(s, middot); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(s)
	for pass := 0; pass < 2; pass++ {
		s = titleWorkplaceRe.ReplaceAllString(s, "")
		if m := titleCitySepRe.FindStringSubmatchIndex(s); m != nil && e.lib.IsStateCode(s[m[2]:m[3]]) {
			s = s[:m[0]]
		} else if m := titleCityRe.FindStringSubmatchIndex(s); m != nil && e.lib.IsStateCode(s[m[2]:m[3]]) {
			s = s[:m[0]]
		}
		s = trimTrailingPunct(s)
	}
	return s
}

// logoCompany returns the company named by the first "<company> logo" line.
func logoCompany(lines []string) string {
	for i, line := range lines {
		m := logoRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.EqualFold(m[1], "company") {
			if i+1 < len(lines) {
				return lines[i+1]
			}
			continue
		}
		return m[1]
	}
	return ""
}
