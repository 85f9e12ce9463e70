package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	workplaceRe   = regexp.MustCompile(`(?i)\s*\((?:remote|hybrid|on-site|onsite)\)`)
	alternativeRe = regexp.MustCompile(`(?i)\s+or\s+`)
	acronyms      = map[string]bool{"UK": true, "USA": true, "UAE": true}
)

// Location canonicalizes a location string: workplace annotations are
// dropped, only the first " or " alternative is kept, short comma fragments
// are upper-cased and the rest title-cased.
func Location(raw string) string {
	raw = strings.TrimSpace(Text(raw))
	raw = workplaceRe.ReplaceAllString(raw, "")
	if loc := alternativeRe.Split(raw, 2); len(loc) > 1 {
		raw = loc[0]
	}

	caser := cases.Title(language.English)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.Join(strings.Fields(part), " ")
		if part == "" {
			continue
		}
		if len([]rune(part)) <= 3 {
			out = append(out, strings.ToUpper(part))
			continue
		}
		words := strings.Fields(part)
		for i, w := range words {
			if acronyms[strings.ToUpper(w)] {
				words[i] = strings.ToUpper(w)
				continue
			}
			words[i] = caser.String(w)
		}
		out = append(out, strings.Join(words, " "))
	}
	return strings.Join(out, ", ")
}

// WorkplaceAnnotation returns "remote", "hybrid" or "on-site" when raw
// carries a parenthesized workplace type.
func WorkplaceAnnotation(raw string) string {
	m := workplaceRe.FindString(raw)
	if m == "" {
		return ""
	}
	v := strings.ToLower(strings.Trim(strings.TrimSpace(m), "()"))
	if v == "onsite" {
		return "on-site"
	}
	return v
}
