package snapshot

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobclip/internal/models"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(t.TempDir(), WithClock(func() time.Time { return fixedNow }))
}

func sampleRecord() models.JobRecord {
	return models.JobRecord{
		Company:     "Acme Corp",
		Title:       "Senior Engineer",
		Location:    "Austin, TX",
		Salary:      "$150,000 - $200,000",
		Posted:      "10/07/2026",
		URL:         "https://www.linkedin.com/jobs/view/4012345678/",
		DateApplied: "10/14/2026",
		RawText:     "Senior Engineer\nAcme Corp · Austin, TX",
	}
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestSaveAndLoad(t *testing.T) {
	store := newTestStore(t)
	path, err := store.Save(sampleRecord())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "linkedin_snapshot_20261014_093000_") || !strings.HasSuffix(name, ".json") {
		t.Fatalf("unexpected file name %q", name)
	}

	entry, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.Format != FormatV3 {
		t.Fatalf("Format = %q, want %q", entry.Format, FormatV3)
	}
	if entry.Snapshot.RawText != sampleRecord().RawText || entry.Snapshot.ParsedData.Company != "Acme Corp" {
		t.Fatalf("unexpected snapshot %+v", entry.Snapshot)
	}
	at, ok := ParsedAt(entry.Snapshot)
	if !ok || !at.Equal(fixedNow) {
		t.Fatalf("ParsedAt() = %v, %v", at, ok)
	}
}

func TestSaveUniqueNames(t *testing.T) {
	store := newTestStore(t)
	a, err := store.Save(sampleRecord())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	b, err := store.Save(sampleRecord())
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct paths, got %q twice", a)
	}
	paths, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("List() returned %d paths, want 2", len(paths))
	}
}

func TestSaveRejectsEmptyText(t *testing.T) {
	store := newTestStore(t)
	rec := sampleRecord()
	rec.RawText = ""
	if _, err := store.Save(rec); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("Save() error = %v, want ErrInvalidSnapshot", err)
	}
}

func TestLoadLegacyFormat(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "linkedin_snapshot_20240102_030405.json", `{
  "version": "2.0",
  "timestamp": "20240102_030405",
  "input": "Data Analyst\nRemote · 1 day ago",
  "parsed_data": {"company": "Globex", "title": "Data Analyst", "date": "01/02/2024"},
  "output": "\"Globex\""
}`)

	entry, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entry.Format != FormatV2 {
		t.Fatalf("Format = %q, want %q", entry.Format, FormatV2)
	}
	if !strings.HasPrefix(entry.Snapshot.RawText, "Data Analyst") {
		t.Fatalf("RawText = %q", entry.Snapshot.RawText)
	}
	if entry.Snapshot.DateParsed == "" {
		t.Fatalf("expected DateParsed from legacy timestamp")
	}
}

func TestLoadCorrupted(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "linkedin_snapshot_bad.json", `{"raw_text": `)
	if _, err := Load(bad); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("Load() error = %v, want ErrInvalidSnapshot", err)
	}
	empty := writeFile(t, dir, "linkedin_snapshot_empty.json", `{"parsed_data": {}}`)
	if _, err := Load(empty); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("Load() error = %v, want ErrInvalidSnapshot", err)
	}
}

func TestAnalyzeAndQuarantine(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save(sampleRecord()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	writeFile(t, store.Dir(), "linkedin_snapshot_broken.json", "{not json")
	writeFile(t, store.Dir(), "notes.txt", "ignored")

	report, err := store.Analyze()
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if report.Total != 2 || report.ValidJSON != 1 || report.Corrupted != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if report.HasRawText != 1 || report.HasParsedData != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if got := report.FieldCoverage["company"]; got != 50 {
		t.Fatalf("company coverage = %v, want 50", got)
	}
	if _, ok := report.FieldCoverage["applicants"]; ok {
		t.Fatalf("applicants was empty and should have no coverage")
	}
	keys := report.SortedCoverage()
	if len(keys) == 0 || keys[0] != "company" {
		t.Fatalf("SortedCoverage() = %v", keys)
	}

	moved, err := store.Quarantine(report)
	if err != nil {
		t.Fatalf("Quarantine() error = %v", err)
	}
	if moved != 1 {
		t.Fatalf("Quarantine() moved %d, want 1", moved)
	}
	if _, err := os.Stat(filepath.Join(store.Dir(), "corrupted", "linkedin_snapshot_broken.json")); err != nil {
		t.Fatalf("expected quarantined file: %v", err)
	}
}

func TestReplay(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save(sampleRecord()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	other := sampleRecord()
	other.Company = "Globex"
	other.RawText = "changed"
	if _, err := store.Save(other); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	writeFile(t, store.Dir(), "linkedin_snapshot_zzz.json", "{")

	var seenAt time.Time
	reparse := func(ctx context.Context, raw string, at time.Time) (models.JobRecord, error) {
		seenAt = at
		rec := sampleRecord()
		rec.RawText = raw
		return rec, nil
	}
	report, err := store.Replay(context.Background(), 1, reparse)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	if report.Total != 3 || report.Unchanged != 1 || report.Drifted != 1 || report.Failed != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if !seenAt.Equal(fixedNow) {
		t.Fatalf("reparse clock = %v, want %v", seenAt, fixedNow)
	}
	for _, r := range report.Results {
		if len(r.Drift) > 0 {
			if r.Drift[0].Field != "company" || r.Drift[0].Stored != "Globex" || r.Drift[0].Now != "Acme Corp" {
				t.Fatalf("unexpected drift %+v", r.Drift)
			}
		}
	}
}

func TestReplayCanceled(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.Save(sampleRecord()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := store.Replay(ctx, 2, func(ctx context.Context, raw string, at time.Time) (models.JobRecord, error) {
		return sampleRecord(), nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Replay() error = %v, want context.Canceled", err)
	}
}

func TestCompare(t *testing.T) {
	stored := models.SnapshotData{Company: "Acme", Posted: "10/01/2026", IsRemote: true}
	current := models.SnapshotData{Company: "Acme", Posted: "10/02/2026"}

	got := Compare(stored, current, false)
	if len(got) != 1 || got[0].Field != "is_remote" {
		t.Fatalf("Compare(no dates) = %+v", got)
	}
	got = Compare(stored, current, true)
	if len(got) != 2 || got[1].Field != "posted" {
		t.Fatalf("Compare(dates) = %+v", got)
	}
}
