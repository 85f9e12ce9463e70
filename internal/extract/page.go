package extract

import (
	"context"
	"errors"
	"strings"

	"github.com/jimezsa/jobclip/internal/page"
)

// PageResult is what FromPage read off a live page.
type PageResult struct {
	Fields Fields
	// Text is the page's visible text, kept as the record's raw text.
	Text string
}

// FromPage extracts fields from a live page by trying each field's selectors
// in order. A failed or timed out lookup leaves that selector unresolved and
// moves on to the next one.
func (e *Extractor) FromPage(ctx context.Context, p page.Page, sel page.Selectors) (PageResult, Trace) {
	var tr Trace
	var res PageResult
	f := &res.Fields

	tab, _ := p.Title(ctx)
	tabParts := parseTabTitle(tab)

	f.Title, _ = e.lookup(ctx, &tr, p, FieldTitle, sel.Title, false, e.acceptTitle)
	if f.Title == "" && tabParts != nil {
		f.Title = e.fallback(&tr, FieldTitle, "tab-title", tabParts[1], e.acceptTitle)
	}

	f.Company, _ = e.lookup(ctx, &tr, p, FieldCompany, sel.Company, false, e.acceptCompany)
	if f.Company == "" && tabParts != nil {
		f.Company = e.fallback(&tr, FieldCompany, "tab-title", tabParts[2], e.acceptCompany)
	}

	var locFragment string
	f.Location, locFragment = e.lookup(ctx, &tr, p, FieldLocation, sel.Location, false, e.acceptLocationFragment)

	f.Salary, _ = e.lookup(ctx, &tr, p, FieldSalary, sel.Salary, true, e.acceptSalary)

	var postedFragment string
	f.Posted, postedFragment = e.lookup(ctx, &tr, p, FieldPosted, append(append([]string(nil), sel.Posted...), sel.Metadata...), true, e.acceptPosted)
	f.PostedRaw = e.lib.RelativeDate().FindString(postedFragment)

	f.Applicants, _ = e.lookup(ctx, &tr, p, FieldApplicants, append(append([]string(nil), sel.Applicants...), sel.Metadata...), true, e.acceptApplicants)

	if u, err := p.URL(ctx); err == nil {
		f.URL = e.CanonicalJobURL(u)
		e.note(&tr, Attempt{Field: FieldURL, Strategy: "page-url", Candidate: u, Value: f.URL, Accepted: f.URL != ""})
	}

	var evidence string
	f.RemoteClaimed, evidence = e.pageRemoteClaim(ctx, p, sel, locFragment)
	e.note(&tr, Attempt{
		Field:     FieldRemote,
		Strategy:  "header-claim",
		Candidate: evidence,
		Value:     boolString(f.RemoteClaimed),
		Accepted:  f.RemoteClaimed,
	})

	f.Description, _ = e.lookup(ctx, &tr, p, "description", sel.Description, false, func(c string) (string, string, bool) {
		return c, "", true
	})

	for _, s := range sel.Body {
		if text, err := p.First(ctx, s); err == nil {
			res.Text = text
			break
		}
	}
	if res.Text == "" {
		res.Text = strings.Join(nonEmpty(tab, f.Title, f.Company, locFragment, f.Description), "\n")
	}
	return res, tr
}

func (e *Extractor) lookup(ctx context.Context, tr *Trace, p page.Page, field string, selectors []string, all bool, accept acceptFunc) (string, string) {
	for _, s := range selectors {
		var texts []string
		var err error
		if all {
			texts, err = p.All(ctx, s)
		} else {
			var text string
			text, err = p.First(ctx, s)
			texts = []string{text}
		}
		if err != nil {
			reason := "lookup failed: " + err.Error()
			if errors.Is(err, page.ErrNotFound) {
				reason = "no match"
			}
			e.note(tr, Attempt{Field: field, Strategy: s, Reason: reason})
			continue
		}
		for _, text := range texts {
			value, reason, ok := accept(text)
			e.note(tr, Attempt{Field: field, Strategy: s, Candidate: text, Value: value, Accepted: ok, Reason: reason})
			if ok {
				return value, text
			}
		}
	}
	e.note(tr, Attempt{Field: field, Strategy: "none", Reason: "unresolved"})
	return "", ""
}

func (e *Extractor) fallback(tr *Trace, field, strategyName, candidate string, accept acceptFunc) string {
	value, reason, ok := accept(candidate)
	e.note(tr, Attempt{Field: field, Strategy: strategyName, Candidate: candidate, Value: value, Accepted: ok, Reason: reason})
	if !ok {
		return ""
	}
	return value
}

// acceptLocationFragment reads a location out of a top card fragment such
// as "Austin, TX · 2 days ago · 40 applicants".
func (e *Extractor) acceptLocationFragment(fragment string) (string, string, bool) {
	segments := strings.Split(fragment, middot)
	for i, seg := range segments {
		if i > 1 {
			break
		}
		seg = strings.TrimSpace(seg)
		if e.looksLikeLocation(seg) {
			return e.acceptLocation(seg)
		}
	}
	return "", "not a location", false
}

func (e *Extractor) pageRemoteClaim(ctx context.Context, p page.Page, sel page.Selectors, locFragment string) (bool, string) {
	for _, seg := range strings.Split(locFragment, middot) {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if strings.EqualFold(stripAnnotation(seg), "remote") || strings.Contains(strings.ToLower(seg), "(remote)") {
			return true, seg
		}
	}

	remoteText := sel.RemotePatterns()
	for _, s := range sel.Workplace {
		texts, err := p.All(ctx, s)
		if err != nil {
			continue
		}
		for _, text := range texts {
			if isWorkplaceLine(e, text) || strings.EqualFold(text, "remote") {
				return true, text
			}
			for _, re := range remoteText {
				if re.MatchString(text) {
					return true, text
				}
			}
		}
	}
	return false, ""
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
