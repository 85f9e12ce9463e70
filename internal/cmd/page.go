package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/jimezsa/jobclip/internal/config"
	"github.com/jimezsa/jobclip/internal/network"
	"github.com/jimezsa/jobclip/internal/page"
)

const (
	pageFromBrowser = "browser"
	pageFromHTML    = "html"
	pageFromURL     = "url"
)

type PageCmd struct {
	From      string `help:"Page source: browser (attached Chrome tab), html (saved file), url (public page)." enum:"browser,html,url" default:"browser"`
	File      string `help:"Saved HTML file for --from html." type:"path"`
	Selectors string `help:"YAML selector table overlaying the built-in one." type:"path"`
	Proxies   string `help:"Comma-separated proxy URLs for --from url." env:"JOBCLIP_PROXIES"`
	OutputOptions
}

func (c *PageCmd) Run(ctx *Context) error {
	sel, err := page.LoadSelectors(firstNonEmpty(c.Selectors, ctx.Config.SelectorsFile))
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pg, release, err := c.open(runCtx, ctx)
	if err != nil {
		return err
	}
	defer release()

	res := newParser(ctx, c.OutputOptions, ctx.now).ParsePage(runCtx, pg, sel)
	return finish(ctx, res, c.OutputOptions)
}

func (c *PageCmd) open(runCtx context.Context, ctx *Context) (page.Page, func(), error) {
	noop := func() {}
	switch c.From {
	case pageFromHTML:
		if strings.TrimSpace(c.File) == "" {
			return nil, noop, fmt.Errorf("--from html requires --file")
		}
		f, err := os.Open(c.File)
		if err != nil {
			return nil, noop, fmt.Errorf("open --file: %w", err)
		}
		defer f.Close()
		doc, err := page.ParseHTML(f, c.URL)
		if err != nil {
			return nil, noop, err
		}
		return doc, noop, nil

	case pageFromURL:
		if strings.TrimSpace(c.URL) == "" {
			return nil, noop, fmt.Errorf("--from url requires --url")
		}
		client, err := c.client(ctx)
		if err != nil {
			return nil, noop, err
		}
		doc, err := client.FetchDocument(runCtx, c.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("fetch %s: %w", c.URL, err)
		}
		return page.NewDocument(doc, c.URL), noop, nil

	default:
		chrome, release, err := page.Attach(runCtx, page.AttachOptions{
			Host:    ctx.Config.DebuggerHost,
			Port:    ctx.Config.DebuggerPort,
			Timeout: time.Duration(ctx.Config.LookupTimeoutMS) * time.Millisecond,
			Logger:  ctx.Logger,
		})
		if err != nil {
			return nil, noop, err
		}
		return chrome, release, nil
	}
}

func (c *PageCmd) client(ctx *Context) (*network.Client, error) {
	proxies, err := config.LoadProxies(c.Proxies)
	if err != nil {
		return nil, err
	}
	var pool *network.ProxyPool
	if len(proxies) > 0 {
		pool, err = network.NewProxyPool(proxies, 5*time.Minute)
		if err != nil {
			return nil, err
		}
	}
	timeout := time.Duration(ctx.Config.FetchTimeoutSeconds) * time.Second
	return network.NewClient(pool, timeout, ctx.Logger)
}
