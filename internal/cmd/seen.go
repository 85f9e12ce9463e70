package cmd

import (
	"fmt"

	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/seen"
)

type SeenCmd struct {
	Update SeenUpdateCmd `cmd:"" help:"Merge records JSON into the tracked postings history."`
	Check  SeenCheckCmd  `cmd:"" help:"Report whether a title and company are already tracked."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" help:"Path to tracked postings JSON file (default: seen.json in the config dir). Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to records JSON file to merge into the history (as written by --json)."`
	Out   string `name:"out" help:"Output path for the updated history (default: --seen)."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

type SeenCheckCmd struct {
	Seen    string `name:"seen" help:"Path to tracked postings JSON file (default: seen.json in the config dir)."`
	Title   string `required:"" help:"Job title."`
	Company string `required:"" help:"Company name."`
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	seenPath := firstNonEmpty(c.Seen, ctx.Config.ResolveSeenFile(ctx.ConfigDir))
	history, err := seen.ReadRecordsAllowMissing(seenPath)
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	input, err := seen.ReadRecords(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	merged, stats := seen.Merge(history, input)
	if err := seen.WriteRecords(firstNonEmpty(c.Out, seenPath), merged); err != nil {
		return fmt.Errorf("write --out: %w", err)
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
			stats.TotalSeen,
			stats.TotalInput,
			stats.InvalidSkipped(),
			stats.Added,
			stats.TotalOut,
		)
		return err
	}
	return nil
}

func (c *SeenCheckCmd) Run(ctx *Context) error {
	history, err := seen.ReadRecordsAllowMissing(firstNonEmpty(c.Seen, ctx.Config.ResolveSeenFile(ctx.ConfigDir)))
	if err != nil {
		return fmt.Errorf("read --seen: %w", err)
	}
	prev, ok := seen.Find(history, models.JobRecord{Title: c.Title, Company: c.Company})
	if !ok {
		_, err := fmt.Fprintln(ctx.Out, "not tracked")
		return err
	}
	_, err = fmt.Fprintf(ctx.Out, "tracked: %s at %s (applied %s)\n", prev.Title, prev.Company, firstNonEmpty(prev.DateApplied, "unknown"))
	return err
}
