package seen

import (
	"testing"

	"github.com/jimezsa/jobclip/internal/models"
)

func TestNormalize(t *testing.T) {
	got := Normalize("  Senior   Software\tEngineer  ")
	want := "senior software engineer"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestKey(t *testing.T) {
	rec := models.JobRecord{Title: "  Senior Engineer ", Company: " ACME   Corp "}
	got, ok := Key(rec)
	if !ok {
		t.Fatalf("expected valid key")
	}
	want := "senior engineer::acme corp"
	if got != want {
		t.Fatalf("Key() = %q, want %q", got, want)
	}

	if _, ok := Key(models.JobRecord{Title: "SRE", Company: models.UnknownValue}); ok {
		t.Fatalf("expected Unknown company to have no key")
	}
}

func TestFind(t *testing.T) {
	history := []models.JobRecord{
		{Title: "Platform Engineer", Company: "Beta", DateApplied: "09/01/2026"},
		{Title: "senior engineer", Company: "acme", DateApplied: "10/01/2026"},
	}

	got, ok := Find(history, models.JobRecord{Title: "Senior   Engineer", Company: " Acme "})
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.DateApplied != "10/01/2026" {
		t.Fatalf("Find() = %+v", got)
	}

	if _, ok := Find(history, models.JobRecord{Title: "Data Analyst", Company: "Acme"}); ok {
		t.Fatalf("did not expect a match")
	}
	if _, ok := Find(history, models.JobRecord{Title: models.UnknownValue, Company: models.UnknownValue}); ok {
		t.Fatalf("unresolved records must never match")
	}
}

func TestMergeAndIdempotency(t *testing.T) {
	existing := []models.JobRecord{
		{Title: "Senior Engineer", Company: "Acme", URL: "https://example.com/seen-1"},
		{Title: "", Company: "Unknown", URL: "https://example.com/seen-invalid"},
	}
	input := []models.JobRecord{
		{Title: "Senior Engineer", Company: "Acme", URL: "https://example.com/new-collision"},
		{Title: "Platform Engineer", Company: "Beta", URL: "https://example.com/new-2"},
		{Title: "", Company: "Broken", URL: "https://example.com/new-invalid"},
	}

	merged, stats := Merge(existing, input)
	if len(merged) != 3 {
		t.Fatalf("expected merged len=3, got %d", len(merged))
	}
	if stats.Added != 1 {
		t.Fatalf("Added = %d, want 1", stats.Added)
	}
	if stats.InvalidSeen != 1 {
		t.Fatalf("InvalidSeen = %d, want 1", stats.InvalidSeen)
	}
	if stats.InvalidInput != 1 {
		t.Fatalf("InvalidInput = %d, want 1", stats.InvalidInput)
	}
	if stats.InvalidSkipped() != 2 {
		t.Fatalf("InvalidSkipped = %d, want 2", stats.InvalidSkipped())
	}
	if stats.TotalOut != 3 {
		t.Fatalf("TotalOut = %d, want 3", stats.TotalOut)
	}

	mergedAgain, statsAgain := Merge(merged, input)
	if len(mergedAgain) != len(merged) {
		t.Fatalf("expected idempotent merge length %d, got %d", len(merged), len(mergedAgain))
	}
	if statsAgain.Added != 0 {
		t.Fatalf("expected second merge Added=0, got %d", statsAgain.Added)
	}
}
