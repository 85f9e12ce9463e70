package cmd

import (
	"io"
	"time"

	"github.com/jimezsa/jobclip/internal/clipboard"
	"github.com/jimezsa/jobclip/internal/config"
	"github.com/jimezsa/jobclip/internal/ui"
	"github.com/rs/zerolog"
)

type Context struct {
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	UI         *ui.UI
	Config     config.Config
	ConfigDir  string
	Logger     zerolog.Logger
	Clipboard  *clipboard.Clipboard
	Now        func() time.Time
	Verbose    bool
	Debug      bool
	JSONOutput bool
	PlainText  bool
	Version    string
	ColorMode  ui.ColorMode
}

func (c *Context) clip() *clipboard.Clipboard {
	if c.Clipboard == nil {
		c.Clipboard = clipboard.New(nil)
	}
	return c.Clipboard
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
