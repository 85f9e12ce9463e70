package parser

import (
	"strings"
	"time"
	"unicode"

	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/normalize"
	"github.com/jimezsa/jobclip/internal/patterns"
)

const (
	errCompany     = "Missing or invalid company name"
	errTitle       = "Missing or invalid job title"
	errLocation    = "Location does not appear to be in United States"
	errSalary      = "Salary format appears invalid"
	errSalaryRange = "Salary range format appears invalid"
	errApplied     = "Invalid date_applied format (should be MM/DD/YYYY)"
	errPosted      = "Invalid posted date format"
)

var postedWords = []string{"hour", "day", "week", "month", "ago"}

// Validate lists everything wrong with rec. It only reads the record.
func Validate(lib *patterns.Library, rec models.JobRecord) []string {
	if lib == nil {
		lib = patterns.Default()
	}
	var errs []string

	if missing(rec.Company) {
		errs = append(errs, errCompany)
	}
	if missing(rec.Title) {
		errs = append(errs, errTitle)
	}
	if rec.Location != "" && !lib.IsUSLocation(rec.Location) {
		errs = append(errs, errLocation)
	}
	if rec.Salary != "" {
		if !strings.ContainsFunc(rec.Salary, unicode.IsDigit) {
			errs = append(errs, errSalary)
		} else if strings.ContainsAny(rec.Salary, "Kk") && strings.Count(rec.Salary, "-") != 1 {
			errs = append(errs, errSalaryRange)
		}
	}
	if _, err := time.Parse(normalize.DateLayout, rec.DateApplied); err != nil {
		errs = append(errs, errApplied)
	}
	if rec.Posted != "" && !validPosted(rec.Posted) {
		errs = append(errs, errPosted)
	}
	return errs
}

func missing(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == models.UnknownValue
}

func validPosted(s string) bool {
	if normalize.IsDate(s) {
		return true
	}
	lower := strings.ToLower(s)
	for _, w := range postedWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
