package cmd

import (
	"github.com/alecthomas/kong"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`
	Debug   bool   `help:"Print per-field match diagnostics to stderr."`

	VersionFlag kong.VersionFlag `name:"version" help:"Print version."`

	Parse     ParseCmd     `cmd:"" default:"withargs" help:"Parse pasted job page text into a tracker row."`
	Page      PageCmd      `cmd:"" help:"Parse a live job page (browser tab, saved HTML, or public URL)."`
	Snapshots SnapshotsCmd `cmd:"" help:"Inspect and replay saved snapshots."`
	Seen      SeenCmd      `cmd:"" help:"Tracked postings history utilities."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Version   VersionCmd   `cmd:"" help:"Print version."`
}

func NewCLI() *CLI {
	return &CLI{}
}
