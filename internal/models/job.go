package models

// UnknownValue stands in for an unresolved company or title.
const UnknownValue = "Unknown"

// JobRecord is one parsed posting. It is assembled once and then only read.
type JobRecord struct {
	Company          string   `json:"company"`
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	IsRemote         bool     `json:"is_remote"`
	RemoteClaimed    bool     `json:"remote_claimed,omitempty"`
	Salary           string   `json:"salary,omitempty"`
	Posted           string   `json:"posted,omitempty"`
	PostedRaw        string   `json:"posted_raw,omitempty"`
	Applicants       string   `json:"applicants,omitempty"`
	URL              string   `json:"url,omitempty"`
	DateFound        string   `json:"date_found"`
	DateApplied      string   `json:"date_applied"`
	Notes            string   `json:"notes,omitempty"`
	RawText          string   `json:"raw_text,omitempty"`
	ValidationErrors []string `json:"validation_errors,omitempty"`
}

// DisplayLocation is the location as written to the tracker, with the
// remote flag folded back in.
func (r JobRecord) DisplayLocation() string {
	if !r.IsRemote {
		return r.Location
	}
	if r.Location == "" {
		return "Remote"
	}
	return r.Location + " (Remote)"
}

// Valid reports whether validation found nothing to flag.
func (r JobRecord) Valid() bool {
	return len(r.ValidationErrors) == 0
}
