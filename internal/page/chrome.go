package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
	"github.com/jimezsa/jobclip/internal/normalize"
	"github.com/rs/zerolog"
)

// DefaultLookupTimeout bounds a single selector lookup in the browser.
const DefaultLookupTimeout = 1500 * time.Millisecond

// AttachOptions locate the browser's remote debugging endpoint.
type AttachOptions struct {
	Host    string
	Port    int
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Chrome is a Page backed by a tab of a browser started with
// --remote-debugging-port.
type Chrome struct {
	ctx     context.Context
	timeout time.Duration
	logger  zerolog.Logger
	target  *target.Info
}

// Attach connects to the browser and binds to its LinkedIn job tab. The
// returned func releases the connection without closing the browser.
func Attach(ctx context.Context, opts AttachOptions) (*Chrome, func(), error) {
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Port == 0 {
		opts.Port = 9222
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultLookupTimeout
	}
	endpoint := fmt.Sprintf("http://%s:%d", opts.Host, opts.Port)

	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, endpoint)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	release := func() {
		cancelBrowser()
		cancelAlloc()
	}

	if err := chromedp.Run(browserCtx); err != nil {
		release()
		return nil, nil, fmt.Errorf("attach to browser at %s: %w", endpoint, err)
	}

	targets, err := chromedp.Targets(browserCtx)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("list browser tabs: %w", err)
	}
	info, err := FindJobTarget(targets)
	if err != nil {
		release()
		return nil, nil, err
	}
	opts.Logger.Debug().Str("url", info.URL).Str("title", info.Title).Msg("attached to job tab")

	tabCtx, cancelTab := chromedp.NewContext(browserCtx, chromedp.WithTargetID(info.TargetID))
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		release()
		return nil, nil, fmt.Errorf("attach to tab %s: %w", info.URL, err)
	}

	c := &Chrome{ctx: tabCtx, timeout: opts.Timeout, logger: opts.Logger, target: info}
	return c, func() {
		cancelTab()
		release()
	}, nil
}

// FindJobTarget picks the tab to read: a /jobs/view/ page first, then any
// other page showing a single posting.
func FindJobTarget(targets []*target.Info) (*target.Info, error) {
	var fallback *target.Info
	for _, t := range targets {
		if t == nil || t.Type != "page" || !IsJobURL(t.URL) {
			continue
		}
		if strings.Contains(strings.ToLower(t.URL), "/jobs/view/") {
			return t, nil
		}
		if fallback == nil {
			fallback = t
		}
	}
	if fallback == nil {
		return nil, ErrNoJobTab
	}
	return fallback, nil
}

func (c *Chrome) URL(ctx context.Context) (string, error) {
	var u string
	err := c.run(ctx, chromedp.Location(&u))
	if err != nil {
		return "", err
	}
	return u, nil
}

func (c *Chrome) Title(ctx context.Context) (string, error) {
	var title string
	if err := c.run(ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	if title = normalize.Fragment(title); title == "" {
		return "", ErrNotFound
	}
	return title, nil
}

func (c *Chrome) First(ctx context.Context, selector string) (string, error) {
	texts, err := c.All(ctx, selector)
	if err != nil {
		return "", err
	}
	return texts[0], nil
}

func (c *Chrome) All(ctx context.Context, selector string) ([]string, error) {
	by := chromedp.ByQueryAll
	if IsXPath(selector) {
		by = chromedp.BySearch
	}

	var nodes []*cdp.Node
	if err := c.run(ctx, chromedp.Nodes(selector, &nodes, by, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}

	var out []string
	for _, n := range nodes {
		var text string
		if err := c.run(ctx, chromedp.TextContent([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID)); err != nil {
			c.logger.Debug().Err(err).Str("selector", selector).Msg("read node text")
			continue
		}
		if text = normalize.Fragment(text); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}

// run executes actions on the tab with the per-lookup timeout, giving up
// early when ctx ends.
func (c *Chrome) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lookupCtx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(lookupCtx, actions...)
}
