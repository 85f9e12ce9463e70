package extract

import (
	"fmt"
	"io"
)

// Field names used in traces.
const (
	FieldTitle      = "title"
	FieldCompany    = "company"
	FieldLocation   = "location"
	FieldSalary     = "salary"
	FieldPosted     = "posted"
	FieldApplicants = "applicants"
	FieldURL        = "url"
	FieldRemote     = "remote"
)

// Attempt is one candidate considered by one strategy.
type Attempt struct {
	Field     string `json:"field"`
	Strategy  string `json:"strategy"`
	Candidate string `json:"candidate,omitempty"`
	Value     string `json:"value,omitempty"`
	Accepted  bool   `json:"accepted"`
	Reason    string `json:"reason,omitempty"`
}

// Trace is the ordered list of attempts made while extracting a record. It
// is diagnostic only; nothing reads it to decide a field value.
type Trace struct {
	Attempts []Attempt `json:"attempts"`
}

func (t *Trace) add(a Attempt) {
	t.Attempts = append(t.Attempts, a)
}

// ForField returns the attempts made for field, in order.
func (t Trace) ForField(field string) []Attempt {
	var out []Attempt
	for _, a := range t.Attempts {
		if a.Field == field {
			out = append(out, a)
		}
	}
	return out
}

// Winner returns the accepted attempt for field.
func (t Trace) Winner(field string) (Attempt, bool) {
	for _, a := range t.Attempts {
		if a.Field == field && a.Accepted {
			return a, true
		}
	}
	return Attempt{}, false
}

// Write prints the trace one attempt per line.
func (t Trace) Write(w io.Writer) error {
	for _, a := range t.Attempts {
		mark := "-"
		if a.Accepted {
			mark = "+"
		}
		line := fmt.Sprintf("%s %-10s %-18s %q", mark, a.Field, a.Strategy, a.Candidate)
		if a.Accepted && a.Value != "" && a.Value != a.Candidate {
			line += fmt.Sprintf(" => %q", a.Value)
		}
		if a.Reason != "" {
			line += " (" + a.Reason + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
