// Package extract pulls individual job fields out of pasted LinkedIn page
// text or a live page. Each field runs an ordered list of strategies and the
// first accepted candidate wins.
package extract

import (
	"strings"
	"time"

	"github.com/jimezsa/jobclip/internal/patterns"
	"github.com/rs/zerolog"
)

// Fields are the raw per-field results before record assembly.
type Fields struct {
	Title         string
	Company       string
	Location      string
	Salary        string
	Posted        string
	PostedRaw     string
	Applicants    string
	URL           string
	RemoteClaimed bool
	Description   string
}

// Extractor runs field strategies against one library.
type Extractor struct {
	lib    *patterns.Library
	now    func() time.Time
	logger zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithClock sets the clock used to resolve relative dates.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLogger sets the logger that receives one debug event per attempt.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New returns an extractor. A nil lib uses patterns.Default().
func New(lib *patterns.Library, opts ...Option) *Extractor {
	if lib == nil {
		lib = patterns.Default()
	}
	e := &Extractor{
		lib:    lib,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Library returns the pattern library the extractor reads.
func (e *Extractor) Library() *patterns.Library {
	return e.lib
}

// Now returns the extractor clock's current time.
func (e *Extractor) Now() time.Time {
	return e.now()
}

// FromText extracts every field from pasted page text.
func (e *Extractor) FromText(text string) (Fields, Trace) {
	var tr Trace
	d := newDocument(e.lib, text)

	var f Fields
	f.Title, _ = e.run(&tr, FieldTitle, d, e.titleStrategies(), e.acceptTitle)
	f.Company, _ = e.run(&tr, FieldCompany, d, e.companyStrategies(), e.acceptCompany)

	var locCandidate string
	f.Location, locCandidate = e.run(&tr, FieldLocation, d, e.locationStrategies(), e.acceptLocation)

	f.Salary, _ = e.run(&tr, FieldSalary, d, e.salaryStrategies(), e.acceptSalary)

	var postedCandidate string
	f.Posted, postedCandidate = e.run(&tr, FieldPosted, d, e.postedStrategies(), e.acceptPosted)
	f.PostedRaw = e.lib.RelativeDate().FindString(postedCandidate)

	f.Applicants, _ = e.run(&tr, FieldApplicants, d, e.applicantStrategies(), e.acceptApplicants)
	f.URL, _ = e.run(&tr, FieldURL, d, e.urlStrategies(), e.acceptURL)

	var evidence string
	f.RemoteClaimed, evidence = e.remoteClaim(d, locCandidate)
	e.note(&tr, Attempt{
		Field:     FieldRemote,
		Strategy:  "header-claim",
		Candidate: evidence,
		Value:     boolString(f.RemoteClaimed),
		Accepted:  f.RemoteClaimed,
	})

	f.Description = d.descriptionText()
	return f, tr
}

type strategy struct {
	name       string
	candidates func(d *document) []string
}

// acceptFunc validates one candidate. A false ok carries the reason.
type acceptFunc func(candidate string) (value string, reason string, ok bool)

func (e *Extractor) run(tr *Trace, field string, d *document, strategies []strategy, accept acceptFunc) (string, string) {
	for _, s := range strategies {
		for _, c := range s.candidates(d) {
			value, reason, ok := accept(c)
			e.note(tr, Attempt{
				Field:     field,
				Strategy:  s.name,
				Candidate: c,
				Value:     value,
				Accepted:  ok,
				Reason:    reason,
			})
			if ok {
				return value, c
			}
		}
	}
	e.note(tr, Attempt{Field: field, Strategy: "none", Reason: "unresolved"})
	return "", ""
}

func (e *Extractor) note(tr *Trace, a Attempt) {
	tr.add(a)
	e.logger.Debug().
		Str("field", a.Field).
		Str("strategy", a.Strategy).
		Str("candidate", a.Candidate).
		Str("value", a.Value).
		Bool("accepted", a.Accepted).
		Str("reason", a.Reason).
		Msg("extract attempt")
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

func trimTrailingPunct(s string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(s), "?.!:,;-–|"))
}
