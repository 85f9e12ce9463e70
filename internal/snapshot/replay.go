package snapshot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/jimezsa/jobclip/internal/models"
	"golang.org/x/sync/errgroup"
)

// ReparseFunc parses a snapshot's raw text again. at is the time the
// snapshot was taken, or the zero time when it is unknown.
type ReparseFunc func(ctx context.Context, rawText string, at time.Time) (models.JobRecord, error)

// Drift is one field whose value changed between the stored and the
// replayed parse.
type Drift struct {
	Field  string `json:"field"`
	Stored string `json:"stored"`
	Now    string `json:"now"`
}

// ReplayResult is the outcome for one snapshot file.
type ReplayResult struct {
	File   string  `json:"file"`
	Format string  `json:"format,omitempty"`
	Drift  []Drift `json:"drift,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// ReplayReport summarizes a replay run.
type ReplayReport struct {
	Total     int            `json:"total"`
	Unchanged int            `json:"unchanged"`
	Drifted   int            `json:"drifted"`
	Failed    int            `json:"failed"`
	Results   []ReplayResult `json:"results"`
}

// Replay re-parses every snapshot with at most workers in flight and
// compares the result with the stored parsed_data. Unreadable files are
// reported per file; only cancellation aborts the run.
func (s *Store) Replay(ctx context.Context, workers int, reparse ReparseFunc) (ReplayReport, error) {
	paths, err := s.List()
	if err != nil {
		return ReplayReport{}, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]ReplayResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = replayOne(gctx, path, reparse)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ReplayReport{}, err
	}

	report := ReplayReport{Total: len(results), Results: results}
	for _, r := range results {
		switch {
		case r.Error != "":
			report.Failed++
		case len(r.Drift) > 0:
			report.Drifted++
		default:
			report.Unchanged++
		}
	}
	s.logger.Debug().
		Int("total", report.Total).
		Int("drifted", report.Drifted).
		Int("failed", report.Failed).
		Msg("snapshot replay finished")
	return report, nil
}

func replayOne(ctx context.Context, path string, reparse ReparseFunc) ReplayResult {
	res := ReplayResult{File: filepath.Base(path)}
	entry, err := Load(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Format = entry.Format

	at, known := ParsedAt(entry.Snapshot)
	rec, err := reparse(ctx, entry.Snapshot.RawText, at)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			res.Error = "canceled"
		} else {
			res.Error = fmt.Sprintf("reparse: %v", err)
		}
		return res
	}
	res.Drift = Compare(entry.Snapshot.ParsedData, models.ToSnapshot(rec).ParsedData, known && entry.Format == FormatV3)
	return res
}

// Compare lists the fields that differ between stored and current. Date
// fields are only compared when the stored parse time is known, since they
// depend on the clock.
func Compare(stored, current models.SnapshotData, withDates bool) []Drift {
	var out []Drift
	check := func(field, a, b string) {
		if a != b {
			out = append(out, Drift{Field: field, Stored: a, Now: b})
		}
	}
	check("company", stored.Company, current.Company)
	check("title", stored.Title, current.Title)
	check("location", stored.Location, current.Location)
	check("salary", stored.Salary, current.Salary)
	check("url", stored.URL, current.URL)
	check("is_remote", strconv.FormatBool(stored.IsRemote), strconv.FormatBool(current.IsRemote))
	check("applicants", stored.Applicants, current.Applicants)
	if withDates {
		check("posted", stored.Posted, current.Posted)
	}
	return out
}
