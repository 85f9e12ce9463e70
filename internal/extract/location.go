package extract

import (
	"regexp"
	"strings"

	"github.com/jimezsa/jobclip/internal/normalize"
)

const maxLocationWords = 6

var (
	cityRegionRe    = regexp.MustCompile(`^[\p{L} .'-]+,\s*[\p{L} .'-]+(?:,\s*[\p{L} .'-]+)?$`)
	locationLabelRe = regexp.MustCompile(`(?i)^location\s*:\s*(.+)$`)
	annotationRe    = regexp.MustCompile(`(?i)\s*\((?:remote|hybrid|on-site|onsite)\)`)
)

func (e *Extractor) locationStrategies() []strategy {
	return []strategy{
		{"metadata-segment", e.locationFromMetadata},
		{"standalone-line", e.locationFromLine},
		{"location-label", locationFromLabel},
	}
}

// locationFromMetadata yields the lead segment of each metadata line, or
// the second one when a company name leads.
func (e *Extractor) locationFromMetadata(d *document) []string {
	var out []string
	for _, m := range d.meta {
		for i, seg := range m.segments {
			if i > 1 {
				break
			}
			if e.looksLikeLocation(seg) {
				out = append(out, seg)
				break
			}
		}
	}
	return out
}

// locationFromLine yields header lines such as "San Francisco, CA (Remote)"
// that stand on their own.
func (e *Extractor) locationFromLine(d *document) []string {
	var out []string
	for i, line := range d.header {
		if d.isMeta(i) {
			continue
		}
		if e.isStrictLocation(line) {
			out = append(out, line)
		}
	}
	return out
}

func locationFromLabel(d *document) []string {
	var out []string
	for _, line := range d.all {
		if m := locationLabelRe.FindStringSubmatch(line); m != nil {
			out = append(out, m[1])
		}
	}
	return out
}

func (e *Extractor) acceptLocation(candidate string) (string, string, bool) {
	if strings.EqualFold(stripAnnotation(candidate), "remote") {
		return "", "", true
	}
	loc := normalize.Location(candidate)
	if loc == "" {
		return "", "empty", false
	}
	if tok := e.lib.BlacklistToken(loc); tok != "" {
		return "", "blacklisted: " + tok, false
	}
	return loc, "", true
}

// looksLikeLocation is the loose check used for metadata segments.
func (e *Extractor) looksLikeLocation(seg string) bool {
	s := stripAnnotation(seg)
	if s == "" {
		return false
	}
	if strings.EqualFold(s, "remote") {
		return true
	}
	if e.lib.HasCorporateSuffix(s) {
		return false
	}
	if e.lib.IsUSLocation(s) {
		return true
	}
	if wordCount(s) > maxLocationWords {
		return false
	}
	if cityRegionRe.MatchString(s) {
		return true
	}
	lower := strings.ToLower(s)
	return strings.HasSuffix(lower, " area") || strings.HasPrefix(lower, "greater ")
}

// isStrictLocation accepts free-standing lines only when they carry a
// workplace annotation or name a US state or the US itself.
func (e *Extractor) isStrictLocation(line string) bool {
	s := stripAnnotation(line)
	if s == "" || wordCount(s) > maxLocationWords || strings.Contains(s, middot) {
		return false
	}
	if e.lib.HasCorporateSuffix(s) {
		return false
	}
	if !cityRegionRe.MatchString(s) {
		return e.lib.IsUSLocation(s) && isUSName(s)
	}
	if annotationRe.MatchString(line) {
		return true
	}
	parts := strings.Split(s, ",")
	region := strings.TrimSpace(parts[len(parts)-1])
	return e.lib.IsStateCode(region) || e.lib.IsUSLocation(region)
}

// isUSName reports a line that is nothing but a US reference or state name,
// such as "United States".
func isUSName(s string) bool {
	switch strings.ToLower(s) {
	case "united states", "usa", "u.s.", "u.s.a.", "us", "united states of america":
		return true
	}
	return false
}

func stripAnnotation(s string) string {
	return strings.TrimSpace(annotationRe.ReplaceAllString(s, ""))
}
