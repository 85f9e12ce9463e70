package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jimezsa/jobclip/internal/config"
	"github.com/jimezsa/jobclip/internal/export"
)

// ErrAlreadyRow is returned when the input is a tracker row this tool
// already produced.
var ErrAlreadyRow = errors.New("input is already a tracker row; copy the job page text instead")

type ParseCmd struct {
	From string `help:"Input source: clipboard, stdin, file (default from config)." enum:",clipboard,stdin,file" default:""`
	File string `help:"Read page text from this file (implies --from file)." type:"path"`
	OutputOptions
}

func (c *ParseCmd) Run(ctx *Context) error {
	text, err := c.readInput(ctx)
	if err != nil {
		return err
	}
	if export.LooksLikeRow(text) {
		return ErrAlreadyRow
	}

	res := newParser(ctx, c.OutputOptions, ctx.now).Parse(text)
	return finish(ctx, res, c.OutputOptions)
}

func (c *ParseCmd) source(ctx *Context) string {
	if c.File != "" {
		return config.SourceFile
	}
	return firstNonEmpty(c.From, ctx.Config.Source, config.SourceClipboard)
}

func (c *ParseCmd) readInput(ctx *Context) (string, error) {
	switch src := c.source(ctx); src {
	case config.SourceClipboard:
		return ctx.clip().Read()
	case config.SourceStdin:
		if ctx.In == nil {
			return "", fmt.Errorf("stdin is not available")
		}
		data, err := io.ReadAll(ctx.In)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case config.SourceFile:
		if strings.TrimSpace(c.File) == "" {
			return "", fmt.Errorf("--from file requires --file")
		}
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("read --file: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown source: %s", src)
	}
}
