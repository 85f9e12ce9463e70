package extract

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobclip/internal/page"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestExtractor() *Extractor {
	return New(nil, WithClock(func() time.Time { return fixedNow }))
}

const fullPage = `0 notifications total
Skip to search
Home
My Network
Jobs
Acme Corp logo
Acme Corp
Share
Show more options
Senior Backend Engineer
San Francisco, CA · Reposted 2 weeks ago · Over 100 applicants
$170K/yr - $200K/yr
Remote
Full-time
Easy Apply
Save
About the job
We are a distributed team building payments infrastructure.
See https://www.linkedin.com/jobs/view/4012345678/ for details.
About the company
Acme Corp
12,345 followers`

func TestFromTextFullPage(t *testing.T) {
	f, tr := newTestExtractor().FromText(fullPage)

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"title", f.Title, "Senior Backend Engineer"},
		{"company", f.Company, "Acme Corp"},
		{"location", f.Location, "San Francisco, CA"},
		{"salary", f.Salary, "$170,000 - $200,000"},
		{"posted", f.Posted, "09/30/2026"},
		{"posted raw", f.PostedRaw, "2 weeks ago"},
		{"applicants", f.Applicants, "100+"},
		{"url", f.URL, "https://www.linkedin.com/jobs/view/4012345678/"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if !f.RemoteClaimed {
		t.Fatalf("expected the Remote pill to claim remote")
	}
	if !strings.Contains(f.Description, "distributed team") {
		t.Fatalf("unexpected description: %q", f.Description)
	}

	winner, ok := tr.Winner(FieldCompany)
	if !ok || winner.Strategy != "logo-marker" {
		t.Fatalf("expected logo-marker to win company, got %+v", winner)
	}
}

func TestFromTextCompactHeader(t *testing.T) {
	text := "Senior Software Engineer\nAcme Corp · Full-time\nSan Francisco, CA (Remote)\n$150,000 - $200,000 a year"
	f, _ := newTestExtractor().FromText(text)

	if f.Title != "Senior Software Engineer" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.Company != "Acme Corp" {
		t.Fatalf("company = %q", f.Company)
	}
	if f.Location != "San Francisco, CA" {
		t.Fatalf("location = %q", f.Location)
	}
	if f.Salary != "$150,000 - $200,000" {
		t.Fatalf("salary = %q", f.Salary)
	}
	if !f.RemoteClaimed {
		t.Fatalf("expected (Remote) annotation to claim remote")
	}
}

func TestFromTextMetadataCounts(t *testing.T) {
	text := "DevOps Manager\nUnited States · 3 hours ago · 25 applicants"
	f, _ := newTestExtractor().FromText(text)

	if f.Title != "DevOps Manager" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.Company != "" {
		t.Fatalf("expected unresolved company, got %q", f.Company)
	}
	if f.Location != "United States" {
		t.Fatalf("location = %q", f.Location)
	}
	if f.Posted != "10/14/2026" || f.PostedRaw != "3 hours ago" {
		t.Fatalf("posted = %q (%q)", f.Posted, f.PostedRaw)
	}
	if f.Applicants != "25" {
		t.Fatalf("applicants = %q", f.Applicants)
	}
	if f.RemoteClaimed {
		t.Fatalf("did not expect a remote claim")
	}
}

func TestFromTextShortPostedAndRemoteLocation(t *testing.T) {
	text := "Platform Engineer\nUnited States (Remote) · Posted 2d ago\nAbout the job\nCandidates must be located in Ohio."
	f, _ := newTestExtractor().FromText(text)

	if f.Location != "United States" {
		t.Fatalf("location = %q", f.Location)
	}
	if f.Posted != "10/12/2026" {
		t.Fatalf("posted = %q", f.Posted)
	}
	if !f.RemoteClaimed {
		t.Fatalf("expected remote claim from location annotation")
	}
	if f.Description != "Candidates must be located in Ohio." {
		t.Fatalf("description = %q", f.Description)
	}
}

func TestFromTextBareRemoteSegment(t *testing.T) {
	text := "Data Analyst\nRemote · 1 day ago"
	f, tr := newTestExtractor().FromText(text)

	if f.Location != "" {
		t.Fatalf("expected empty location for bare Remote, got %q", f.Location)
	}
	if !f.RemoteClaimed {
		t.Fatalf("expected remote claim")
	}
	if w, ok := tr.Winner(FieldLocation); !ok || w.Candidate != "Remote" {
		t.Fatalf("expected Remote to be the accepted location candidate, got %+v", w)
	}
}

func TestFromTextLocationAlternatives(t *testing.T) {
	text := "QA Lead\nAustin, TX or Denver, CO · 5 days ago"
	f, _ := newTestExtractor().FromText(text)
	if f.Location != "Austin, TX" {
		t.Fatalf("location = %q", f.Location)
	}
}

func TestFromTextCompanyWithLegalSuffix(t *testing.T) {
	cases := []struct {
		text     string
		company  string
		location string
	}{
		{"Backend Engineer\nStripe, Inc. · San Francisco, CA · 2 days ago", "Stripe, Inc.", "San Francisco, CA"},
		{"Backend Engineer\nStripe, Inc. · San Francisco, CA · 2 days ago · 40 applicants", "Stripe, Inc.", "San Francisco, CA"},
		{"Backend Engineer\nAcme, LLC · Full-time\nAustin, TX", "Acme, LLC", "Austin, TX"},
	}
	for _, tc := range cases {
		f, _ := newTestExtractor().FromText(tc.text)
		if f.Company != tc.company || f.Location != tc.location {
			t.Fatalf("FromText(%q) company/location = %q / %q, want %q / %q", tc.text, f.Company, f.Location, tc.company, tc.location)
		}
	}
}

func TestFromTextCompanyContainingNavigationWord(t *testing.T) {
	f, _ := newTestExtractor().FromText("Store Manager\nThe Home Depot · Atlanta, GA · 3 days ago")
	if f.Company != "The Home Depot" {
		t.Fatalf("company = %q, want %q", f.Company, "The Home Depot")
	}
	if f.Location != "Atlanta, GA" {
		t.Fatalf("location = %q", f.Location)
	}
}

func TestFromTextFallbackPhrases(t *testing.T) {
	text := "Save Product Designer at Globex\nTell me more about Globex"
	f, _ := newTestExtractor().FromText(text)
	if f.Title != "Product Designer" {
		t.Fatalf("title = %q", f.Title)
	}
	if f.Company != "Globex" {
		t.Fatalf("company = %q", f.Company)
	}
}

func TestFromTextTabTitle(t *testing.T) {
	text := "(2) Site Reliability Engineer | Initech | LinkedIn"
	f, _ := newTestExtractor().FromText(text)
	if f.Title != "Site Reliability Engineer" || f.Company != "Initech" {
		t.Fatalf("title/company = %q / %q", f.Title, f.Company)
	}
}

func TestFromTextEmpty(t *testing.T) {
	f, tr := newTestExtractor().FromText("")
	if f != (Fields{}) {
		t.Fatalf("expected empty fields, got %+v", f)
	}
	if len(tr.ForField(FieldTitle)) == 0 {
		t.Fatalf("expected an unresolved title attempt in the trace")
	}
}

func TestCleanTitle(t *testing.T) {
	e := newTestExtractor()
	cases := []struct {
		raw  string
		want string
	}{
		{"Staff Engineer (Remote)", "Staff Engineer"},
		{"Staff Engineer (Hybrid) · Acme", "Staff Engineer"},
		{"Backend Developer - Austin, TX", "Backend Developer"},
		{"Backend Developer Austin, TX", "Backend Developer"},
		{"Engineer, AI Platform", "Engineer, AI Platform"},
		{"Manager, IT", "Manager, IT"},
	}
	for _, tc := range cases {
		if got := e.cleanTitle(tc.raw); got != tc.want {
			t.Fatalf("cleanTitle(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestAcceptTitleRejectsNoise(t *testing.T) {
	e := newTestExtractor()
	rejects := []string{
		"0 notifications total",
		"Posted 3 days ago",
		"Over 100 applicants",
		"$150,000 - $200,000",
		"one two three four five six seven eight nine ten eleven",
		"Share",
		"San Francisco, CA",
	}
	for _, c := range rejects {
		if _, _, ok := e.acceptTitle(c); ok {
			t.Fatalf("acceptTitle(%q) unexpectedly accepted", c)
		}
	}
}

func TestTraceWrite(t *testing.T) {
	_, tr := newTestExtractor().FromText("DevOps Manager\nUnited States · 3 hours ago")
	var buf bytes.Buffer
	if err := tr.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "+ title") || !strings.Contains(out, "before-metadata") {
		t.Fatalf("unexpected trace output:\n%s", out)
	}
}

const guestHTML = `
<html>
<head>
  <title>Staff Engineer | Acme Corp | LinkedIn</title>
  <link rel="canonical" href="https://www.linkedin.com/jobs/view/staff-engineer-at-acme-corp-4012345678">
</head>
<body>
<main>
  <h1 class="top-card-layout__title">Staff Engineer</h1>
  <a class="topcard__org-name-link">Acme Corp</a>
  <span class="topcard__flavor--bullet">Austin, TX (Remote)</span>
  <span class="posted-time-ago__text">1 week ago</span>
  <span class="num-applicants__caption">Over 200 applicants</span>
  <div class="salary compensation__salary">$180,000.00/yr - $220,000.00/yr</div>
  <div class="description__text">This role is hybrid with two days in office. Easy Apply</div>
</main>
</body>
</html>`

func TestFromPageDocument(t *testing.T) {
	doc, err := page.ParseHTML(strings.NewReader(guestHTML), "")
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	res, _ := newTestExtractor().FromPage(context.Background(), doc, page.DefaultSelectors())
	f := res.Fields

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"title", f.Title, "Staff Engineer"},
		{"company", f.Company, "Acme Corp"},
		{"location", f.Location, "Austin, TX"},
		{"salary", f.Salary, "$180,000 - $220,000"},
		{"posted", f.Posted, "10/07/2026"},
		{"applicants", f.Applicants, "200+"},
		{"url", f.URL, "https://www.linkedin.com/jobs/view/4012345678/"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Fatalf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
	if !f.RemoteClaimed {
		t.Fatalf("expected remote claim from location annotation")
	}
	if !strings.Contains(f.Description, "hybrid") {
		t.Fatalf("description = %q", f.Description)
	}
	if !strings.Contains(res.Text, "Easy Apply") {
		t.Fatalf("expected page text to carry the body, got %q", res.Text)
	}
}

func TestFromPageTabFallback(t *testing.T) {
	html := `<html><head><title>(1) Data Scientist | Globex | LinkedIn</title></head><body><p>nothing</p></body></html>`
	doc, err := page.ParseHTML(strings.NewReader(html), "https://www.linkedin.com/jobs/collections/recommended/?currentJobId=4099999999")
	if err != nil {
		t.Fatalf("ParseHTML() error = %v", err)
	}
	res, tr := newTestExtractor().FromPage(context.Background(), doc, page.DefaultSelectors())
	if res.Fields.Title != "Data Scientist" || res.Fields.Company != "Globex" {
		t.Fatalf("title/company = %q / %q", res.Fields.Title, res.Fields.Company)
	}
	if res.Fields.URL != "https://www.linkedin.com/jobs/view/4099999999/" {
		t.Fatalf("url = %q", res.Fields.URL)
	}
	if w, ok := tr.Winner(FieldTitle); !ok || w.Strategy != "tab-title" {
		t.Fatalf("expected tab-title to win, got %+v", w)
	}
}
