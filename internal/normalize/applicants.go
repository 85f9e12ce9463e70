package normalize

import (
	"regexp"
	"strings"

	"github.com/jimezsa/jobclip/internal/patterns"
)

var firstIntRe = regexp.MustCompile(`\d[\d,]*`)

// Applicants reduces an applicant phrase to "N" or "N+".
func Applicants(raw string) string {
	return ApplicantsWith(patterns.Default(), raw)
}

// ApplicantsWith is Applicants against an explicit library.
func ApplicantsWith(lib *patterns.Library, raw string) string {
	for _, re := range lib.ApplicantPatterns() {
		if m := re.FindStringSubmatch(raw); m != nil {
			n := strings.ReplaceAll(m[2], ",", "")
			if m[1] != "" || m[3] != "" {
				n += "+"
			}
			return n
		}
	}

	// Bare counts such as "Over 200" from a dedicated element.
	n := firstIntRe.FindString(raw)
	if n == "" {
		return ""
	}
	n = strings.ReplaceAll(n, ",", "")
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "over") || strings.HasSuffix(strings.TrimSpace(raw), "+") {
		n += "+"
	}
	return n
}
