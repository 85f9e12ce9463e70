package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jimezsa/jobclip/internal/clipboard"
	"github.com/jimezsa/jobclip/internal/config"
	"github.com/jimezsa/jobclip/internal/export"
	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/seen"
	"github.com/jimezsa/jobclip/internal/snapshot"
	"github.com/jimezsa/jobclip/internal/ui"
	"github.com/rs/zerolog"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

const postingText = "Senior Software Engineer\nAcme Corp · Full-time\nSan Francisco, CA (Remote)\n$150,000 - $200,000 a year\nEasy Apply"

type memoryClipboard struct {
	text string
}

func (m *memoryClipboard) ReadAll() (string, error) { return m.text, nil }

func (m *memoryClipboard) WriteAll(text string) error {
	m.text = text
	return nil
}

type testEnv struct {
	ctx    *Context
	out    *bytes.Buffer
	errOut *bytes.Buffer
	clip   *memoryClipboard
	dir    string
}

func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	clip := &memoryClipboard{}
	cfg := config.DefaultConfig()
	cfg.SaveSnapshots = true
	cfg.SnapshotDir = filepath.Join(dir, "snapshots")
	cfg.SeenFile = ""
	cfg.Source = config.SourceStdin
	return &testEnv{
		ctx: &Context{
			In:        strings.NewReader(stdin),
			Out:       out,
			Err:       errOut,
			UI:        ui.New(out, errOut, ui.ColorNever, true),
			Config:    cfg,
			ConfigDir: dir,
			Logger:    zerolog.Nop(),
			Clipboard: clipboard.New(clip),
			Now:       func() time.Time { return fixedNow },
		},
		out:    out,
		errOut: errOut,
		clip:   clip,
		dir:    dir,
	}
}

func TestResolveFormatRespectsGlobalFlags(t *testing.T) {
	ctx := &Context{Out: io.Discard, JSONOutput: true}
	got, err := resolveFormat(ctx, "", "jobs.json")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatJSON {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatJSON)
	}

	ctx = &Context{Out: io.Discard, PlainText: true}
	got, err = resolveFormat(ctx, "md", "")
	if err != nil {
		t.Fatalf("resolveFormat() error = %v", err)
	}
	if got != export.FormatTSV {
		t.Fatalf("resolveFormat() = %q, want %q", got, export.FormatTSV)
	}

	ctx = &Context{Out: io.Discard}
	if got, _ := resolveFormat(ctx, "", ""); got != export.FormatCSV {
		t.Fatalf("resolveFormat() on a pipe = %q, want %q", got, export.FormatCSV)
	}
	if _, err := parseFormat("xml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestParseFromStdin(t *testing.T) {
	env := newTestEnv(t, postingText)
	cmd := &ParseCmd{}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	row := strings.TrimSpace(env.out.String())
	if !export.LooksLikeRow(row) {
		t.Fatalf("expected a tracker row, got %q", row)
	}
	if !strings.HasPrefix(row, `"Acme Corp","Senior Software Engineer","San Francisco, CA (Remote)"`) {
		t.Fatalf("unexpected row %q", row)
	}
	if !strings.Contains(row, `"10/14/2026","LinkedIn","10/14/2026"`) {
		t.Fatalf("expected todays dates in %q", row)
	}

	paths, err := snapshot.NewStore(env.ctx.Config.SnapshotDir).List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("expected one snapshot, got %d", len(paths))
	}
}

func TestParseCopiesRowAndSkipsSnapshot(t *testing.T) {
	env := newTestEnv(t, "")
	env.clip.text = postingText
	cmd := &ParseCmd{From: config.SourceClipboard, OutputOptions: OutputOptions{Copy: true, NoSnapshot: true}}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !export.LooksLikeRow(env.clip.text) {
		t.Fatalf("expected clipboard to hold the row, got %q", env.clip.text)
	}
	if _, err := os.Stat(env.ctx.Config.SnapshotDir); !os.IsNotExist(err) {
		t.Fatalf("expected no snapshot dir, stat err = %v", err)
	}
}

func TestParseRejectsTrackerRow(t *testing.T) {
	rec := models.JobRecord{Company: "Acme", Title: "SRE", DateFound: "10/14/2026", DateApplied: "10/14/2026"}
	env := newTestEnv(t, export.FormatRow(rec))
	err := (&ParseCmd{}).Run(env.ctx)
	if !errors.Is(err, ErrAlreadyRow) {
		t.Fatalf("Run() error = %v, want ErrAlreadyRow", err)
	}
	if env.out.Len() != 0 {
		t.Fatalf("expected no output, got %q", env.out.String())
	}
}

func TestParseEmptyInputStillEmitsRow(t *testing.T) {
	env := newTestEnv(t, "")
	if err := (&ParseCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasPrefix(env.out.String(), `"Unknown","Unknown"`) {
		t.Fatalf("unexpected row %q", env.out.String())
	}
	if !strings.Contains(env.errOut.String(), "warning: Missing or invalid company name") {
		t.Fatalf("expected validation warnings on stderr, got %q", env.errOut.String())
	}
}

func TestParseSeenUpdateAndWarning(t *testing.T) {
	env := newTestEnv(t, postingText)
	seenPath := filepath.Join(env.dir, "seen.json")
	opts := OutputOptions{Seen: seenPath, SeenUpdate: true, NoSnapshot: true}
	if err := (&ParseCmd{OutputOptions: opts}).Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	history, err := seen.ReadRecords(seenPath)
	if err != nil {
		t.Fatalf("ReadRecords() error = %v", err)
	}
	if len(history) != 1 || history[0].Company != "Acme Corp" {
		t.Fatalf("unexpected history %+v", history)
	}

	env.ctx.In = strings.NewReader(postingText)
	if err := (&ParseCmd{OutputOptions: opts}).Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(env.errOut.String(), "already tracked: Senior Software Engineer at Acme Corp") {
		t.Fatalf("expected already tracked warning, got %q", env.errOut.String())
	}
	history, _ = seen.ReadRecords(seenPath)
	if len(history) != 1 {
		t.Fatalf("expected history to stay at 1, got %d", len(history))
	}
}

func TestParseFromFileJSON(t *testing.T) {
	env := newTestEnv(t, "")
	path := filepath.Join(env.dir, "posting.txt")
	if err := os.WriteFile(path, []byte(postingText), 0o644); err != nil {
		t.Fatalf("write posting: %v", err)
	}
	env.ctx.JSONOutput = true
	if err := (&ParseCmd{File: path, OutputOptions: OutputOptions{NoSnapshot: true}}).Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var recs []models.JobRecord
	if err := json.Unmarshal(env.out.Bytes(), &recs); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(recs) != 1 || recs[0].Notes != "Easy Apply" || !recs[0].IsRemote {
		t.Fatalf("unexpected records %+v", recs)
	}
}

func TestPageFromHTML(t *testing.T) {
	env := newTestEnv(t, "")
	html := `<html><head><title>Staff Engineer | Hooli | LinkedIn</title></head><body>
<h1 class="top-card-layout__title">Staff Engineer</h1>
<a class="topcard__org-name-link">Hooli</a>
<span class="topcard__flavor topcard__flavor--bullet">Seattle, WA</span>
<div class="description__text">Build things.</div>
</body></html>`
	path := filepath.Join(env.dir, "job.html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("write html: %v", err)
	}
	cmd := &PageCmd{
		From: pageFromHTML,
		File: path,
		OutputOptions: OutputOptions{
			URL:        "https://www.linkedin.com/jobs/view/4022222222/",
			NoSnapshot: true,
		},
	}
	if err := cmd.Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := `"Hooli","Staff Engineer","Seattle, WA","https://www.linkedin.com/jobs/view/4022222222/"`
	if !strings.HasPrefix(env.out.String(), want) {
		t.Fatalf("row = %q, want prefix %q", env.out.String(), want)
	}
}

func TestPageRequiresInputs(t *testing.T) {
	env := newTestEnv(t, "")
	if err := (&PageCmd{From: pageFromHTML}).Run(env.ctx); err == nil {
		t.Fatalf("expected --file error")
	}
	if err := (&PageCmd{From: pageFromURL}).Run(env.ctx); err == nil {
		t.Fatalf("expected --url error")
	}
}

func TestSnapshotsAnalyzeAndReplay(t *testing.T) {
	env := newTestEnv(t, postingText)
	if err := (&ParseCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	env.out.Reset()

	if err := (&AnalyzeSnapshotsCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !strings.Contains(env.out.String(), "snapshots=1 valid_json=1") {
		t.Fatalf("unexpected analyze output %q", env.out.String())
	}
	env.out.Reset()

	if err := (&ReplaySnapshotsCmd{Workers: 2}).Run(env.ctx); err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(env.out.String(), "total=1 unchanged=1 drifted=0 failed=0") {
		t.Fatalf("unexpected replay output %q", env.out.String())
	}
}

func TestConfigInitAndShow(t *testing.T) {
	env := newTestEnv(t, "")
	if err := (&InitConfigCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.dir, config.ConfigFileName)); err != nil {
		t.Fatalf("expected config file: %v", err)
	}
	env.out.Reset()
	if err := (&ShowConfigCmd{}).Run(env.ctx); err != nil {
		t.Fatalf("show: %v", err)
	}
	var cfg config.Config
	if err := json.Unmarshal(env.out.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.SeenFile != filepath.Join(env.dir, config.SeenFileName) {
		t.Fatalf("SeenFile = %q", cfg.SeenFile)
	}
}
