package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/jobclip/internal/models"
	"github.com/muesli/termenv"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
)

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

// WriteRecords renders recs in the requested format. CSV output is the
// header-less tracker row; the other formats are for reading.
func WriteRecords(w io.Writer, recs []models.JobRecord, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, recs)
	case FormatCSV:
		return writeRows(w, recs)
	case FormatTSV:
		return writeTSV(w, recs)
	case FormatMarkdown:
		return writeMarkdown(w, recs)
	default:
		return writeTable(w, recs, opts)
	}
}

func writeJSON(w io.Writer, recs []models.JobRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func writeRows(w io.Writer, recs []models.JobRecord) error {
	for _, rec := range recs {
		if _, err := fmt.Fprintln(w, FormatRow(rec)); err != nil {
			return err
		}
	}
	return nil
}

func writeTSV(w io.Writer, recs []models.JobRecord) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	if err := writer.Write(Columns()); err != nil {
		return err
	}
	for _, rec := range recs {
		if err := writer.Write(Fields(rec)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, recs []models.JobRecord, opts WriteOptions) error {
	const warnColor = "#FFA500"

	output := termenv.NewOutput(w)
	for i, rec := range recs {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, row := range tableRows(rec, output, opts) {
			fmt.Fprintln(tw, row[0]+"\t"+row[1])
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		for _, warning := range rec.ValidationErrors {
			line := "warning: " + warning
			if opts.ColorEnabled {
				line = output.String(line).Foreground(output.Color(warnColor)).String()
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, recs []models.JobRecord) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, rec := range recs {
		urlLine := "  URL: -"
		if url := safe(rec.URL); url != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", url)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(rec.Title), safe(rec.Company)),
			fmt.Sprintf("  Location: %s", dash(rec.DisplayLocation())),
			urlLine,
		}
		if rec.IsRemote {
			lines = append(lines, "  Remote: yes")
		}
		if rec.Salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", safe(rec.Salary)))
		}
		if rec.Posted != "" {
			lines = append(lines, fmt.Sprintf("  Posted: %s", safe(rec.Posted)))
		}
		if rec.PostedRaw != "" {
			lines = append(lines, fmt.Sprintf("  Posted (raw): %s", safe(rec.PostedRaw)))
		}
		if rec.Applicants != "" {
			lines = append(lines, fmt.Sprintf("  Applicants: %s", safe(rec.Applicants)))
		}
		if rec.Notes != "" {
			lines = append(lines, fmt.Sprintf("  Notes: %s", safe(rec.Notes)))
		}
		for _, warning := range rec.ValidationErrors {
			lines = append(lines, fmt.Sprintf("  Warning: %s", safe(warning)))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func tableRows(rec models.JobRecord, output *termenv.Output, opts WriteOptions) [][2]string {
	const linkColor = "#87CEEB"

	url := safe(rec.URL)
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(url)
		}
		if opts.ColorEnabled {
			displayURL = output.String(displayURL).Foreground(output.Color(linkColor)).String()
		}
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}
	return [][2]string{
		{"Company", dash(rec.Company)},
		{"Title", dash(rec.Title)},
		{"Location", dash(rec.DisplayLocation())},
		{"Remote", boolString(rec.IsRemote)},
		{"Salary", dash(rec.Salary)},
		{"Posted", dash(rec.Posted)},
		{"Applicants", dash(rec.Applicants)},
		{"URL", displayURL},
		{"Notes", dash(rec.Notes)},
	}
}

func boolString(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func dash(value string) string {
	if v := safe(value); v != "" {
		return v
	}
	return "-"
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
