package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/snapshot"
)

type SnapshotsCmd struct {
	Analyze AnalyzeSnapshotsCmd `cmd:"" help:"Report snapshot integrity and field coverage."`
	Replay  ReplaySnapshotsCmd  `cmd:"" help:"Re-parse every snapshot and report fields that changed."`
}

type AnalyzeSnapshotsCmd struct {
	Dir        string `help:"Snapshot directory (default from config)." type:"path"`
	Quarantine bool   `help:"Move corrupted snapshots into a corrupted/ subdirectory."`
}

type ReplaySnapshotsCmd struct {
	Dir     string `help:"Snapshot directory (default from config)." type:"path"`
	Workers int    `help:"Parallel re-parses (default: number of CPUs)."`
	All     bool   `help:"List unchanged snapshots as well."`
}

func snapshotStore(ctx *Context, dir string) *snapshot.Store {
	return snapshot.NewStore(
		firstNonEmpty(dir, ctx.Config.ResolveSnapshotDir(ctx.ConfigDir)),
		snapshot.WithLogger(ctx.Logger),
	)
}

func (c *AnalyzeSnapshotsCmd) Run(ctx *Context) error {
	store := snapshotStore(ctx, c.Dir)
	report, err := store.Analyze()
	if err != nil {
		return err
	}
	if c.Quarantine {
		moved, err := store.Quarantine(report)
		if err != nil {
			return err
		}
		if moved > 0 {
			ctx.UI.Notef("moved %d corrupted snapshot(s) to %s/corrupted", moved, store.Dir())
		}
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(ctx.Out, "snapshots=%d valid_json=%d has_raw_text=%d has_parsed_data=%d corrupted=%d\n",
		report.Total, report.ValidJSON, report.HasRawText, report.HasParsedData, report.Corrupted)
	if len(report.FieldCoverage) == 0 {
		return nil
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "field\tcoverage")
	for _, field := range report.SortedCoverage() {
		fmt.Fprintf(tw, "%s\t%.1f%%\n", field, report.FieldCoverage[field])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	for _, fr := range report.Files {
		if fr.Error != "" {
			ctx.UI.Warnf("corrupted: %s: %s", fr.File, fr.Error)
		}
	}
	return nil
}

func (c *ReplaySnapshotsCmd) Run(ctx *Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	reparse := func(_ context.Context, raw string, at time.Time) (models.JobRecord, error) {
		now := ctx.now
		if !at.IsZero() {
			now = func() time.Time { return at }
		}
		p := newParser(ctx, OutputOptions{}, now)
		return p.Parse(raw).Record, nil
	}

	report, err := snapshotStore(ctx, c.Dir).Replay(runCtx, c.Workers, reparse)
	if err != nil {
		return err
	}

	if ctx.JSONOutput {
		enc := json.NewEncoder(ctx.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "file\tfield\tstored\tnow")
	for _, r := range report.Results {
		switch {
		case r.Error != "":
			fmt.Fprintf(tw, "%s\t-\terror\t%s\n", r.File, r.Error)
		case len(r.Drift) == 0:
			if c.All {
				fmt.Fprintf(tw, "%s\t-\tunchanged\t\n", r.File)
			}
		default:
			for _, d := range r.Drift {
				fmt.Fprintf(tw, "%s\t%s\t%q\t%q\n", r.File, d.Field, d.Stored, d.Now)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "total=%d unchanged=%d drifted=%d failed=%d\n",
		report.Total, report.Unchanged, report.Drifted, report.Failed)
	return err
}
