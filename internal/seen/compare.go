// Package seen keeps the history of postings already added to the tracker.
package seen

import (
	"strings"

	"github.com/jimezsa/jobclip/internal/models"
)

const keySeparator = "::"

// MergeStats captures stats for seen history updates.
type MergeStats struct {
	TotalSeen    int
	TotalInput   int
	InvalidSeen  int
	InvalidInput int
	Added        int
	TotalOut     int
}

// InvalidSkipped returns the total invalid records skipped during merge.
func (s MergeStats) InvalidSkipped() int {
	return s.InvalidSeen + s.InvalidInput
}

// Normalize lower-cases value and collapses its whitespace.
func Normalize(value string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(value)))
	return strings.Join(fields, " ")
}

// Key builds the normalized title+company key for a record. Records with an
// unresolved title or company have no key.
func Key(rec models.JobRecord) (string, bool) {
	title := Normalize(rec.Title)
	company := Normalize(rec.Company)
	unknown := Normalize(models.UnknownValue)
	if title == "" || company == "" || title == unknown || company == unknown {
		return "", false
	}
	return title + keySeparator + company, true
}

// Find returns the first history entry with rec's key.
func Find(history []models.JobRecord, rec models.JobRecord) (models.JobRecord, bool) {
	key, ok := Key(rec)
	if !ok {
		return models.JobRecord{}, false
	}
	for _, h := range history {
		if k, ok := Key(h); ok && k == key {
			return h, true
		}
	}
	return models.JobRecord{}, false
}

// Merge appends unique new records into the seen history.
// Existing seen entries win collisions.
func Merge(existingSeen []models.JobRecord, input []models.JobRecord) ([]models.JobRecord, MergeStats) {
	stats := MergeStats{
		TotalSeen:  len(existingSeen),
		TotalInput: len(input),
	}

	keys := make(map[string]struct{}, len(existingSeen)+len(input))
	out := make([]models.JobRecord, 0, len(existingSeen)+len(input))

	for _, rec := range existingSeen {
		key, ok := Key(rec)
		if !ok {
			stats.InvalidSeen++
			out = append(out, rec)
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, rec)
	}

	for _, rec := range input {
		key, ok := Key(rec)
		if !ok {
			stats.InvalidInput++
			continue
		}
		if _, exists := keys[key]; exists {
			continue
		}
		keys[key] = struct{}{}
		out = append(out, rec)
		stats.Added++
	}

	stats.TotalOut = len(out)
	return out, stats
}
