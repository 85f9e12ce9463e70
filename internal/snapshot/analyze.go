package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// CoverageFields are the parsed_data keys Analyze reports on.
var CoverageFields = []string{
	"company", "title", "location", "salary",
	"url", "is_remote", "applicants", "posted", "date_applied",
}

// FileReport describes one snapshot file.
type FileReport struct {
	File          string   `json:"file"`
	Size          int64    `json:"file_size"`
	ValidJSON     bool     `json:"valid_json"`
	HasRawText    bool     `json:"has_raw_text"`
	HasParsedData bool     `json:"has_parsed_data"`
	Present       []string `json:"parsed_fields_present,omitempty"`
	Missing       []string `json:"parsed_fields_missing,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Report summarizes a snapshot directory.
type Report struct {
	Total         int                `json:"total_snapshots"`
	ValidJSON     int                `json:"valid_json"`
	HasRawText    int                `json:"has_raw_text"`
	HasParsedData int                `json:"has_parsed_data"`
	Corrupted     int                `json:"corrupted"`
	FieldCoverage map[string]float64 `json:"field_coverage"`
	Files         []FileReport       `json:"files,omitempty"`
}

// Analyze checks every snapshot in the store for integrity and reports how
// often each parsed field was filled in.
func (s *Store) Analyze() (Report, error) {
	paths, err := s.List()
	if err != nil {
		return Report{}, err
	}
	report := Report{FieldCoverage: map[string]float64{}}
	counts := map[string]int{}
	for _, path := range paths {
		fr := analyzeFile(path)
		report.Total++
		if fr.ValidJSON {
			report.ValidJSON++
		}
		if fr.HasRawText {
			report.HasRawText++
		}
		if fr.HasParsedData {
			report.HasParsedData++
		}
		if fr.Error != "" {
			report.Corrupted++
		}
		for _, f := range fr.Present {
			counts[f]++
		}
		report.Files = append(report.Files, fr)
	}
	if report.Total > 0 {
		for f, n := range counts {
			report.FieldCoverage[f] = float64(n) / float64(report.Total) * 100
		}
	}
	return report, nil
}

// Quarantine moves the corrupted files named in report into a corrupted/
// subdirectory and returns how many were moved.
func (s *Store) Quarantine(report Report) (int, error) {
	dest := filepath.Join(s.dir, "corrupted")
	moved := 0
	for _, fr := range report.Files {
		if fr.Error == "" {
			continue
		}
		if err := os.MkdirAll(dest, 0o755); err != nil {
			return moved, err
		}
		if err := os.Rename(filepath.Join(s.dir, fr.File), filepath.Join(dest, fr.File)); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return moved, err
		}
		s.logger.Debug().Str("file", fr.File).Msg("snapshot quarantined")
		moved++
	}
	return moved, nil
}

// SortedCoverage returns the coverage keys in CoverageFields order.
func (r Report) SortedCoverage() []string {
	keys := make([]string, 0, len(r.FieldCoverage))
	for _, f := range CoverageFields {
		if _, ok := r.FieldCoverage[f]; ok {
			keys = append(keys, f)
		}
	}
	var rest []string
	for f := range r.FieldCoverage {
		if !contains(CoverageFields, f) {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func analyzeFile(path string) FileReport {
	fr := FileReport{File: filepath.Base(path)}
	info, err := os.Stat(path)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	fr.Size = info.Size()

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Error = err.Error()
		return fr
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		fr.Error = fmt.Sprintf("invalid JSON: %v", err)
		return fr
	}
	fr.ValidJSON = true

	raw, _ := doc["raw_text"].(string)
	if raw == "" {
		raw, _ = doc["input"].(string)
	}
	fr.HasRawText = raw != ""

	parsed, ok := doc["parsed_data"].(map[string]any)
	if !ok {
		return fr
	}
	fr.HasParsedData = true
	for _, f := range CoverageFields {
		if truthy(parsed[f]) {
			fr.Present = append(fr.Present, f)
		} else {
			fr.Missing = append(fr.Missing, f)
		}
	}
	return fr
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
