package seen

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jimezsa/jobclip/internal/models"
)

// ReadRecords reads a JSON array of records from path.
func ReadRecords(path string) ([]models.JobRecord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []models.JobRecord{}, nil
	}

	var recs []models.JobRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if recs == nil {
		return []models.JobRecord{}, nil
	}
	return recs, nil
}

// ReadRecordsAllowMissing reads records and treats a missing file as empty
// history.
func ReadRecordsAllowMissing(path string) ([]models.JobRecord, error) {
	recs, err := ReadRecords(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.JobRecord{}, nil
		}
		return nil, err
	}
	return recs, nil
}

// WriteRecords writes records as pretty JSON. Raw page text is dropped to
// keep the history small.
func WriteRecords(path string, recs []models.JobRecord) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}
	out := make([]models.JobRecord, len(recs))
	for i, rec := range recs {
		rec.RawText = ""
		out[i] = rec
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
