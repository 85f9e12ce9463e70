package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jimezsa/jobclip/internal/export"
	"github.com/jimezsa/jobclip/internal/extract"
	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/parser"
	"github.com/jimezsa/jobclip/internal/patterns"
	"github.com/jimezsa/jobclip/internal/seen"
	"github.com/jimezsa/jobclip/internal/snapshot"
	"github.com/muesli/termenv"
)

// OutputOptions are shared by the commands that produce a record.
type OutputOptions struct {
	URL        string `help:"Job URL to use when the input carries none."`
	Format     string `help:"Output format: csv, tsv, json, md, table." enum:",csv,tsv,json,md,table" default:""`
	Links      string `help:"Table link display: short or full." enum:"short,full" default:"full"`
	Output     string `name:"output" short:"o" help:"Write output to a file."`
	Copy       bool   `help:"Copy the tracker row to the clipboard." default:"true" negatable:""`
	NoSnapshot bool   `help:"Do not save a snapshot of this run."`
	Seen       string `help:"Path to tracked postings JSON file (default: seen.json in the config dir)."`
	SeenUpdate bool   `help:"Add this posting to the tracked postings file."`
}

func newParser(ctx *Context, opts OutputOptions, now func() time.Time) *parser.Parser {
	lib := patterns.New(patterns.Options{
		ExtraContradictions: ctx.Config.ExtraContradictions,
		ExtraBlacklist:      ctx.Config.ExtraBlacklist,
	})
	extractOpts := []extract.Option{extract.WithClock(now)}
	if ctx.Debug {
		extractOpts = append(extractOpts, extract.WithLogger(ctx.Logger))
	}
	return parser.New(
		extract.New(lib, extractOpts...),
		parser.WithLogger(ctx.Logger),
		parser.WithFallbackURL(opts.URL),
	)
}

// finish writes a parsed result out and runs the side effects every
// record-producing command shares.
func finish(ctx *Context, res parser.Result, opts OutputOptions) error {
	rec := res.Record

	if ctx.Debug {
		fmt.Fprintln(ctx.Err, "extraction trace:")
		if err := res.Trace.Write(ctx.Err); err != nil {
			return err
		}
	}

	checkSeen(ctx, rec, opts)
	saveSnapshot(ctx, rec, opts)

	format, err := resolveFormat(ctx, opts.Format, opts.Output)
	if err != nil {
		return err
	}
	if err := writeRecord(ctx, rec, format, opts); err != nil {
		return err
	}
	if format != export.FormatTable && format != export.FormatMarkdown && format != export.FormatJSON {
		ctx.UI.Warnings(rec.ValidationErrors)
	}

	if opts.Copy {
		if err := ctx.clip().Write(export.FormatRow(rec)); err != nil {
			ctx.UI.Warnf("copy to clipboard: %v", err)
		} else {
			ctx.UI.Notef("tracker row copied to clipboard")
		}
	}
	return nil
}

func writeRecord(ctx *Context, rec models.JobRecord, format export.Format, opts OutputOptions) error {
	var out io.Writer = ctx.Out
	if opts.Output != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
			return err
		}
		f, err := os.Create(opts.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	writeOpts := export.WriteOptions{
		ColorEnabled: ctx.UI.ColorEnabled && opts.Output == "",
		Hyperlinks:   opts.Output == "" && isTTY(ctx.Out),
		LinkStyle:    export.LinkStyle(opts.Links),
	}
	return export.WriteRecords(out, []models.JobRecord{rec}, format, writeOpts)
}

func checkSeen(ctx *Context, rec models.JobRecord, opts OutputOptions) {
	if strings.TrimSpace(opts.Seen) == "" && !opts.SeenUpdate {
		return
	}
	path := firstNonEmpty(opts.Seen, ctx.Config.ResolveSeenFile(ctx.ConfigDir))
	history, err := seen.ReadRecordsAllowMissing(path)
	if err != nil {
		ctx.UI.Warnf("read seen history: %v", err)
		return
	}
	if prev, ok := seen.Find(history, rec); ok {
		ctx.UI.Warnf("already tracked: %s at %s (applied %s)", prev.Title, prev.Company, firstNonEmpty(prev.DateApplied, "unknown"))
	}
	if !opts.SeenUpdate {
		return
	}
	merged, stats := seen.Merge(history, []models.JobRecord{rec})
	if stats.Added == 0 {
		return
	}
	if err := seen.WriteRecords(path, merged); err != nil {
		ctx.UI.Warnf("write seen history: %v", err)
		return
	}
	ctx.Logger.Debug().Str("path", path).Int("total", stats.TotalOut).Msg("seen history updated")
}

func saveSnapshot(ctx *Context, rec models.JobRecord, opts OutputOptions) {
	if opts.NoSnapshot || !ctx.Config.SaveSnapshots || strings.TrimSpace(rec.RawText) == "" {
		return
	}
	store := snapshot.NewStore(
		ctx.Config.ResolveSnapshotDir(ctx.ConfigDir),
		snapshot.WithLogger(ctx.Logger),
		snapshot.WithClock(ctx.now),
	)
	path, err := store.Save(rec)
	if err != nil {
		ctx.Logger.Warn().Err(err).Msg("snapshot not saved")
		return
	}
	ctx.Logger.Debug().Str("path", path).Msg("snapshot saved")
}

func resolveFormat(ctx *Context, value string, outputPath string) (export.Format, error) {
	if ctx.JSONOutput {
		return export.FormatJSON, nil
	}
	if ctx.PlainText {
		return export.FormatTSV, nil
	}
	if value != "" {
		return parseFormat(value)
	}
	if outputPath == "" && isTTY(ctx.Out) {
		return export.FormatTable, nil
	}
	return export.FormatCSV, nil
}

func parseFormat(value string) (export.Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return export.FormatCSV, nil
	case "json":
		return export.FormatJSON, nil
	case "md", "markdown":
		return export.FormatMarkdown, nil
	case "tsv":
		return export.FormatTSV, nil
	case "table", "":
		return export.FormatTable, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func isTTY(out io.Writer) bool {
	output := termenv.NewOutput(out)
	return output.ColorProfile() != termenv.Ascii
}
