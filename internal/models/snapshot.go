package models

import (
	"github.com/go-playground/validator/v10"
)

// SnapshotData is the structured half of a snapshot.
type SnapshotData struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	URL         string `json:"url"`
	IsRemote    bool   `json:"is_remote"`
	Applicants  string `json:"applicants"`
	Posted      string `json:"posted"`
	DateApplied string `json:"date_applied" validate:"omitempty,datetime=01/02/2006"`
}

// Snapshot pairs the raw input with what was parsed from it so later
// parser versions can be checked against earlier output.
type Snapshot struct {
	DateParsed       string       `json:"date_parsed,omitempty"`
	RawText          string       `json:"raw_text" validate:"required"`
	ParsedData       SnapshotData `json:"parsed_data"`
	ValidationErrors []string     `json:"validation_errors,omitempty"`
}

var snapshotValidate = validator.New()

// Validate checks the snapshot shape.
func (s Snapshot) Validate() error {
	return snapshotValidate.Struct(s)
}

// ToSnapshot captures a record's raw text and structured fields.
func ToSnapshot(r JobRecord) Snapshot {
	return Snapshot{
		RawText: r.RawText,
		ParsedData: SnapshotData{
			Company:     r.Company,
			Title:       r.Title,
			Location:    r.Location,
			Salary:      r.Salary,
			URL:         r.URL,
			IsRemote:    r.IsRemote,
			Applicants:  r.Applicants,
			Posted:      r.Posted,
			DateApplied: r.DateApplied,
		},
		ValidationErrors: append([]string(nil), r.ValidationErrors...),
	}
}

// FromSnapshot rebuilds the record fields a snapshot carries. Fields the
// snapshot does not hold, such as notes, stay empty.
func FromSnapshot(s Snapshot) JobRecord {
	return JobRecord{
		Company:          s.ParsedData.Company,
		Title:            s.ParsedData.Title,
		Location:         s.ParsedData.Location,
		IsRemote:         s.ParsedData.IsRemote,
		Salary:           s.ParsedData.Salary,
		Posted:           s.ParsedData.Posted,
		Applicants:       s.ParsedData.Applicants,
		URL:              s.ParsedData.URL,
		DateApplied:      s.ParsedData.DateApplied,
		RawText:          s.RawText,
		ValidationErrors: append([]string(nil), s.ValidationErrors...),
	}
}
