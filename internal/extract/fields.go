package extract

import (
	"regexp"
	"strings"

	"github.com/jimezsa/jobclip/internal/normalize"
)

var payKeywordRe = regexp.MustCompile(`(?i)salary|\bpay\b|compensation|\bbase\b|\brange\b|annual|per year|a year|/\s*yr|per hour|/\s*hr|\bote\b`)

func (e *Extractor) salaryStrategies() []strategy {
	var out []strategy
	for _, p := range e.lib.SalaryPatterns() {
		re := p.Re
		out = append(out, strategy{
			name: string(p.Family),
			candidates: func(d *document) []string {
				var lines []string
				for _, line := range d.header {
					if re.MatchString(line) {
						lines = append(lines, line)
					}
				}
				for _, line := range d.description {
					if re.MatchString(line) && payKeywordRe.MatchString(line) {
						lines = append(lines, line)
					}
				}
				return lines
			},
		})
	}
	return out
}

func (e *Extractor) acceptSalary(candidate string) (string, string, bool) {
	salary := normalize.SalaryWith(e.lib, candidate)
	if salary == "" {
		return "", "malformed salary", false
	}
	return salary, "", true
}

func (e *Extractor) postedStrategies() []strategy {
	rel := e.lib.RelativeDate()
	return []strategy{
		{"posted-prefix", func(d *document) []string {
			var out []string
			for _, line := range d.header {
				for _, seg := range strings.Split(line, middot) {
					lower := strings.ToLower(seg)
					if strings.Contains(lower, "posted") && rel.MatchString(seg) {
						out = append(out, strings.TrimSpace(seg))
					}
				}
			}
			return out
		}},
		{"metadata-segment", func(d *document) []string {
			var out []string
			for _, m := range d.meta {
				for _, seg := range m.segments {
					if rel.MatchString(seg) {
						out = append(out, seg)
					}
				}
			}
			return out
		}},
		{"header-line", func(d *document) []string {
			var out []string
			for i, line := range d.header {
				if !d.isMeta(i) && rel.MatchString(line) {
					out = append(out, line)
				}
			}
			return out
		}},
	}
}

// acceptPosted converts the phrase to an absolute date. A phrase the
// normalizer cannot date is kept as written.
func (e *Extractor) acceptPosted(candidate string) (string, string, bool) {
	phrase := e.lib.RelativeDate().FindString(candidate)
	if phrase == "" {
		return "", "no relative date", false
	}
	if abs := normalize.RelativeDateWith(e.lib, phrase, e.now()); abs != "" {
		return abs, "", true
	}
	return phrase, "", true
}

func (e *Extractor) applicantStrategies() []strategy {
	matches := func(s string) bool {
		for _, re := range e.lib.ApplicantPatterns() {
			if re.MatchString(s) {
				return true
			}
		}
		return false
	}
	return []strategy{
		{"metadata-segment", func(d *document) []string {
			var out []string
			for _, m := range d.meta {
				for _, seg := range m.segments {
					if matches(seg) {
						out = append(out, seg)
					}
				}
			}
			return out
		}},
		{"any-line", func(d *document) []string {
			var out []string
			for _, line := range d.all {
				if matches(line) {
					out = append(out, line)
				}
			}
			return out
		}},
	}
}

func (e *Extractor) acceptApplicants(candidate string) (string, string, bool) {
	n := normalize.ApplicantsWith(e.lib, candidate)
	if n == "" {
		return "", "no count", false
	}
	return n, "", true
}

func (e *Extractor) urlStrategies() []strategy {
	return []strategy{
		{"job-url", func(d *document) []string {
			var out []string
			for _, line := range d.all {
				if strings.Contains(strings.ToLower(line), "linkedin.com/jobs") {
					out = append(out, line)
				}
			}
			return out
		}},
	}
}

func (e *Extractor) acceptURL(candidate string) (string, string, bool) {
	if u := e.CanonicalJobURL(candidate); u != "" {
		return u, "", true
	}
	return "", "no job id", false
}

// CanonicalJobURL returns https://www.linkedin.com/jobs/view/<id>/ for any
// text carrying a job view link or a currentJobId parameter.
func (e *Extractor) CanonicalJobURL(s string) string {
	for _, re := range e.lib.JobURLPatterns() {
		if m := re.FindStringSubmatch(s); m != nil {
			return "https://www.linkedin.com/jobs/view/" + m[1] + "/"
		}
	}
	return ""
}

// remoteClaim reports whether the header asserts a remote workplace and
// names the evidence that did.
func (e *Extractor) remoteClaim(d *document, locCandidate string) (bool, string) {
	if locCandidate != "" {
		if strings.EqualFold(stripAnnotation(locCandidate), "remote") ||
			normalize.WorkplaceAnnotation(locCandidate) == "remote" {
			return true, locCandidate
		}
	}

	for _, m := range d.meta {
		for _, seg := range m.segments {
			if strings.EqualFold(stripAnnotation(seg), "remote") || normalize.WorkplaceAnnotation(seg) == "remote" {
				return true, seg
			}
		}
	}

	for _, line := range d.header {
		if isWorkplaceLine(e, line) {
			return true, line
		}
	}

	if locCandidate == "" {
		return false, ""
	}
	for i, line := range d.header {
		if !strings.Contains(line, locCandidate) {
			continue
		}
		for j := i; j < len(d.header) && j < i+3; j++ {
			if e.lib.MentionsRemote(d.header[j]) {
				return true, d.header[j]
			}
		}
		break
	}
	return false, ""
}

// isWorkplaceLine matches pill rows like "Remote" or "Remote Full-time".
func isWorkplaceLine(e *Extractor, line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 || len(words) > 3 {
		return false
	}
	remote := false
	for _, w := range words {
		if !e.lib.IsJobType(w) {
			return false
		}
		if strings.EqualFold(w, "remote") {
			remote = true
		}
	}
	return remote
}
