// Package patterns holds the lexicons and compiled expressions shared by the
// extractors. A Library is built once and only read afterwards, so one value
// can serve any number of concurrent extractions.
package patterns

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// SalaryFamily names a salary shape in match priority order.
type SalaryFamily string

const (
	SalaryKRange     SalaryFamily = "k-range"
	SalaryFullRange  SalaryFamily = "full-range"
	SalaryMixedRange SalaryFamily = "mixed-range"
	SalarySingle     SalaryFamily = "single"
)

// SalaryPattern pairs a family with the expression that recognizes it.
type SalaryPattern struct {
	Family SalaryFamily
	Re     *regexp.Regexp
}

// Options extends the default lexicons with user configured phrases.
type Options struct {
	ExtraContradictions []string
	ExtraBlacklist      []string
}

// Library is the read-only set of match targets.
type Library struct {
	states       map[string]string
	territories  map[string]string
	references   []string
	remote       []string
	contradicts  []string
	blacklist    []string
	jobTypes     []string
	descMarkers  []string
	corpSuffixes map[string]bool
	foreign      map[string]string
	units        map[string]time.Duration
	remoteRe     *regexp.Regexp
	contraRes    []*regexp.Regexp
	blacklistRe  *regexp.Regexp
	navLabelRe   *regexp.Regexp
	stateNameRe  *regexp.Regexp
	referenceRe  *regexp.Regexp
	salary       []SalaryPattern
	relativeRe   *regexp.Regexp
	applicantRes []*regexp.Regexp
	jobURLRes    []*regexp.Regexp
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the shared library built from the built-in lexicons.
func Default() *Library {
	defaultOnce.Do(func() {
		defaultLib = New(Options{})
	})
	return defaultLib
}

// New builds a library from the built-in lexicons plus opts.
func New(opts Options) *Library {
	lib := &Library{
		states:      usStates,
		territories: usTerritories,
		references:  usReferences,
		remote:      []string{"remote", "work from home", "wfh", "fully remote", "work anywhere"},
		contradicts: appendUnique([]string{
			"hybrid", "on-site", "onsite", "in office", "in-office",
			"must be located", "must reside", "must live", "required to work from",
		}, opts.ExtraContradictions),
		blacklist: appendUnique([]string{
			"notification", "skip to", "search", "home", "my network", "jobs",
			"messaging", "about", "accessibility", "logo", "show more",
		}, opts.ExtraBlacklist),
		jobTypes: []string{
			"full-time", "part-time", "contract", "temporary", "internship",
			"volunteer", "other", "remote", "hybrid", "on-site",
		},
		descMarkers:  []string{"About the job", "Job description", "About this role"},
		corpSuffixes: corporateSuffixes,
		foreign:      foreignCities,
		units:        relativeUnits,
	}

	lib.remoteRe = phraseSetRe(lib.remote)
	for _, phrase := range lib.contradicts {
		lib.contraRes = append(lib.contraRes, phraseRe(phrase))
	}
	lib.blacklistRe = prefixSetRe(lib.blacklist)
	lib.navLabelRe = navLabelSetRe(lib.blacklist)

	names := make([]string, 0, len(lib.states)+len(lib.territories))
	for _, name := range lib.states {
		names = append(names, name)
	}
	for _, name := range lib.territories {
		names = append(names, name)
	}
	lib.stateNameRe = phraseSetRe(names)
	lib.referenceRe = tokenSetRe(lib.references)

	const (
		num  = `\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`
		knum = `\d+(?:\.\d+)?`
		sep  = `\s*(?:-|–|—|\bto\b)\s*`
		per  = `(?:\s*/\s*(?:yr|year|hr|hour))?`
	)
	lib.salary = []SalaryPattern{
		{SalaryKRange, regexp.MustCompile(`(?i)\$?(` + knum + `)\s*K\b` + per + sep + `\$?(` + knum + `)\s*K\b` + per)},
		{SalaryFullRange, regexp.MustCompile(`(?i)\$(` + num + `)` + per + sep + `\$?(` + num + `)` + per)},
		{SalaryMixedRange, regexp.MustCompile(`(?i)\$(` + knum + `)\s*K\b` + per + sep + `\$(` + num + `)` + per)},
		{SalarySingle, regexp.MustCompile(`(?i)\$(` + num + `)\s*(K\b)?` + per + `(\+)?`)},
	}

	unitAlts := make([]string, 0, len(lib.units))
	for unit := range lib.units {
		unitAlts = append(unitAlts, regexp.QuoteMeta(unit))
	}
	// Longest first so "mo" never loses to "m".
	sort.Slice(unitAlts, func(i, j int) bool {
		if len(unitAlts[i]) != len(unitAlts[j]) {
			return len(unitAlts[i]) > len(unitAlts[j])
		}
		return unitAlts[i] < unitAlts[j]
	})
	lib.relativeRe = regexp.MustCompile(`(?i)\b(\d+)\+?\s*(` + strings.Join(unitAlts, "|") + `)\s+ago\b`)

	lib.applicantRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(over\s+)?(\d[\d,]*)\s*(\+)?\s*applicants?\b`),
		regexp.MustCompile(`(?i)\b(over\s+)?(\d[\d,]*)\s*(\+)?\s*people\s+clicked\s+apply\b`),
	}
	lib.jobURLRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)linkedin\.com/jobs/view/(?:[^/\s?#]*-)?(\d{6,})`),
		regexp.MustCompile(`(?i)linkedin\.com/jobs/\S*?[?&]currentJobId=(\d{6,})`),
	}
	return lib
}

var relativeUnits = map[string]time.Duration{
	"second": time.Second, "seconds": time.Second, "sec": time.Second, "secs": time.Second, "s": time.Second,
	"minute": time.Minute, "minutes": time.Minute, "min": time.Minute, "mins": time.Minute, "m": time.Minute,
	"hour": time.Hour, "hours": time.Hour, "hr": time.Hour, "hrs": time.Hour, "h": time.Hour,
	"day": 24 * time.Hour, "days": 24 * time.Hour, "d": 24 * time.Hour,
	"week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour, "wk": 7 * 24 * time.Hour, "wks": 7 * 24 * time.Hour, "w": 7 * 24 * time.Hour,
	"month": 30 * 24 * time.Hour, "months": 30 * 24 * time.Hour, "mo": 30 * 24 * time.Hour, "mos": 30 * 24 * time.Hour,
	"year": 365 * 24 * time.Hour, "years": 365 * 24 * time.Hour, "yr": 365 * 24 * time.Hour, "yrs": 365 * 24 * time.Hour, "y": 365 * 24 * time.Hour,
}

// StateAbbreviations returns the 51 postal abbreviations in sorted order.
func (l *Library) StateAbbreviations() []string {
	out := make([]string, 0, len(l.states))
	for abbr := range l.states {
		out = append(out, abbr)
	}
	sort.Strings(out)
	return out
}

// StateName returns the full name for a postal abbreviation.
func (l *Library) StateName(abbr string) (string, bool) {
	name, ok := l.states[strings.ToUpper(abbr)]
	return name, ok
}

// IsStateCode reports whether token is a state or territory postal code.
func (l *Library) IsStateCode(token string) bool {
	token = strings.ToUpper(strings.TrimSpace(token))
	if _, ok := l.states[token]; ok {
		return true
	}
	_, ok := l.territories[token]
	return ok
}

// IsUSLocation reports whether loc names a US state, territory or the
// country itself. Abbreviations only count as whole tokens, so "Canada"
// does not match "CA".
func (l *Library) IsUSLocation(loc string) bool {
	loc = strings.TrimSpace(loc)
	if loc == "" {
		return false
	}
	if l.isForeignCity(loc) {
		return false
	}
	if l.stateNameRe.MatchString(loc) || l.referenceRe.MatchString(loc) {
		return true
	}
	for _, token := range splitTokens(loc) {
		if token == strings.ToUpper(token) && l.IsStateCode(token) {
			return true
		}
	}
	return false
}

// isForeignCity reports "City, XX" pairs where XX is the country code of a
// known non-US city, such as "Berlin, DE" or "Toronto, CA".
func (l *Library) isForeignCity(loc string) bool {
	parts := strings.Split(loc, ",")
	if len(parts) < 2 {
		return false
	}
	code := strings.ToUpper(strings.TrimSpace(parts[len(parts)-1]))
	city := strings.ToLower(strings.TrimSpace(parts[len(parts)-2]))
	want, ok := l.foreign[city]
	return ok && want == code
}

// HasCorporateSuffix reports whether the last comma fragment of s is a
// legal form such as "Inc." or "LLC", as in "Stripe, Inc.".
func (l *Library) HasCorporateSuffix(s string) bool {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return false
	}
	return l.corpSuffixes[strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))]
}

// MentionsRemote reports whether s contains a remote indicator phrase.
func (l *Library) MentionsRemote(s string) bool {
	return l.remoteRe.MatchString(s)
}

// RemoteIndicators returns a copy of the remote phrase set.
func (l *Library) RemoteIndicators() []string {
	return append([]string(nil), l.remote...)
}

// Contradictions returns every contradiction phrase found in text, in
// lexicon order.
func (l *Library) Contradictions(text string) []string {
	var found []string
	for i, re := range l.contraRes {
		if re.MatchString(text) {
			found = append(found, l.contradicts[i])
		}
	}
	return found
}

// IsBlacklisted reports whether s contains a navigation noise token. Tokens
// must start a word: "search" rejects "Search results" but not "Research".
func (l *Library) IsBlacklisted(s string) bool {
	return l.blacklistRe.MatchString(s)
}

// BlacklistToken returns the first noise token found in s.
func (l *Library) BlacklistToken(s string) string {
	return strings.ToLower(l.blacklistRe.FindString(s))
}

// IsNavigationLabel reports whether s as a whole is a navigation label:
// "Jobs" or "0 notifications total" match, "The Home Depot" does not. Multi
// word labels such as "skip to" also match when they lead s.
func (l *Library) IsNavigationLabel(s string) bool {
	return l.navLabelRe.MatchString(strings.TrimSpace(s))
}

// IsJobType reports whether s is a bare employment or workplace type.
func (l *Library) IsJobType(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, jt := range l.jobTypes {
		if s == jt {
			return true
		}
	}
	return false
}

// DescriptionMarkers returns the headings that start the description body.
func (l *Library) DescriptionMarkers() []string {
	return append([]string(nil), l.descMarkers...)
}

// SalaryPatterns returns the salary families in priority order.
func (l *Library) SalaryPatterns() []SalaryPattern {
	return append([]SalaryPattern(nil), l.salary...)
}

// RelativeDate returns the expression matching "<N> <unit> ago".
func (l *Library) RelativeDate() *regexp.Regexp {
	return l.relativeRe
}

// Unit returns the duration of a relative-date unit.
func (l *Library) Unit(name string) (time.Duration, bool) {
	d, ok := l.units[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// ApplicantPatterns returns the applicant count expressions. Group 1 is the
// optional "over", group 2 the number and group 3 an optional "+".
func (l *Library) ApplicantPatterns() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), l.applicantRes...)
}

// JobURLPatterns return expressions whose first group is a job id.
func (l *Library) JobURLPatterns() []*regexp.Regexp {
	return append([]*regexp.Regexp(nil), l.jobURLRes...)
}

func phraseRe(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + boundary(phrase))
}

func phraseSetRe(phrases []string) *regexp.Regexp {
	sorted := append([]string(nil), phrases...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	alts := make([]string, 0, len(sorted))
	for _, p := range sorted {
		alts = append(alts, boundary(p))
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

// prefixSetRe matches phrases that start on a word boundary but may run on,
// so "notification" also catches "notifications".
func prefixSetRe(phrases []string) *regexp.Regexp {
	alts := make([]string, 0, len(phrases))
	for _, p := range phrases {
		quoted := regexp.QuoteMeta(p)
		if p != "" && isWordByte(p[0]) {
			quoted = `\b` + quoted
		}
		alts = append(alts, quoted)
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

// boundary wraps a phrase in word boundaries on the sides that start or end
// with a word character.
func boundary(phrase string) string {
	quoted := regexp.QuoteMeta(phrase)
	if phrase == "" {
		return quoted
	}
	if isWordByte(phrase[0]) {
		quoted = `\b` + quoted
	}
	if isWordByte(phrase[len(phrase)-1]) {
		quoted += `\b`
	}
	return quoted
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// navLabelSetRe matches a whole label, with an optional leading count and
// trailing "total" for single words, allowing a plural "s".
func navLabelSetRe(labels []string) *regexp.Regexp {
	var words, phrases []string
	for _, label := range labels {
		if strings.Contains(label, " ") {
			phrases = append(phrases, regexp.QuoteMeta(label)+`\b.*`)
			continue
		}
		words = append(words, regexp.QuoteMeta(label))
	}
	alts := []string{`(?:\d+\s+)?(?:` + strings.Join(words, "|") + `)s?(?:\s+total)?`}
	alts = append(alts, phrases...)
	return regexp.MustCompile(`(?i)^(?:` + strings.Join(alts, "|") + `)$`)
}

// tokenSetRe matches any of tokens case-sensitively when it is not glued to
// surrounding letters, so "US" matches "Remote, US" but not "USB".
func tokenSetRe(tokens []string) *regexp.Regexp {
	sorted := append([]string(nil), tokens...)
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	alts := make([]string, 0, len(sorted))
	for _, t := range sorted {
		alts = append(alts, regexp.QuoteMeta(t))
	}
	return regexp.MustCompile(`(?:^|[^A-Za-z.])(?:` + strings.Join(alts, "|") + `)(?:$|[^A-Za-z])`)
}

func splitTokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z')
	})
}

func appendUnique(base []string, extra []string) []string {
	out := append([]string(nil), base...)
	seen := make(map[string]struct{}, len(out))
	for _, v := range out {
		seen[strings.ToLower(v)] = struct{}{}
	}
	for _, v := range extra {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[strings.ToLower(v)]; ok {
			continue
		}
		seen[strings.ToLower(v)] = struct{}{}
		out = append(out, v)
	}
	return out
}
