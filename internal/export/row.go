package export

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/jimezsa/jobclip/internal/models"
)

// Source is the fixed value of the tracker's source column.
const Source = "LinkedIn"

// RowWidth is the number of columns in a tracker row.
const RowWidth = 16

var (
	rowDateRe      = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`)
	lineBreakRe    = regexp.MustCompile(`\s*[\r\n]+\s*`)
	quoteEscaper   = strings.NewReplacer(`"`, `""`)
	trackerColumns = []string{
		"Company", "Title", "Location", "URL", "Date", "Source", "Date Applied",
		"Initial Response", "Reject", "Screen", "First Round", "Second Round",
		"Notes", "Salary", "Posted", "Applicants",
	}
)

// Columns names the tracker columns in row order.
func Columns() []string {
	return append([]string(nil), trackerColumns...)
}

// Fields lists rec's tracker columns in order. The five interview-stage
// columns are left for the user to fill in.
func Fields(rec models.JobRecord) []string {
	return []string{
		rec.Company,
		rec.Title,
		rec.DisplayLocation(),
		rec.URL,
		rec.DateFound,
		Source,
		rec.DateApplied,
		"", "", "", "", "",
		rec.Notes,
		rec.Salary,
		rec.Posted,
		rec.Applicants,
	}
}

// FormatRow renders rec as one tracker line: sixteen comma-joined fields,
// each double-quoted with embedded quotes doubled. Line breaks inside a
// field collapse to a space so the row stays on one line.
func FormatRow(rec models.JobRecord) string {
	fields := Fields(rec)
	quoted := make([]string, len(fields))
	for i, f := range fields {
		f = lineBreakRe.ReplaceAllString(f, " ")
		quoted[i] = `"` + quoteEscaper.Replace(f) + `"`
	}
	return strings.Join(quoted, ",")
}

// LooksLikeRow reports whether text is a tracker row this tool already
// produced, so it is not parsed again as a posting.
func LooksLikeRow(text string) bool {
	text = strings.TrimSpace(text)
	if strings.ContainsAny(text, "\r\n") {
		return false
	}
	if len(text) < 2 || !strings.HasPrefix(text, `"`) || !strings.HasSuffix(text, `"`) {
		return false
	}
	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil || len(fields) != RowWidth {
		return false
	}
	return rowDateRe.MatchString(fields[4]) &&
		rowDateRe.MatchString(fields[6]) &&
		strings.Contains(fields[5], Source)
}
