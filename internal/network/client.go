// Package network fetches public job pages with a browser-like TLS
// fingerprint.
package network

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"
)

var ErrRequestFailed = errors.New("request failed")

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

// Doer sends one request. The tls-client HttpClient satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
	SetProxy(proxyURL string) error
}

type Client struct {
	http    Doer
	proxies *ProxyPool
	logger  zerolog.Logger
	rand    *rand.Rand
}

// NewClient returns a client with a Chrome profile. A nil pool sends every
// request directly.
func NewClient(pool *ProxyPool, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout/time.Second)),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}
	return newClient(client, pool, logger), nil
}

func newClient(doer Doer, pool *ProxyPool, logger zerolog.Logger) *Client {
	return &Client{
		http:    doer,
		proxies: pool,
		logger:  logger,
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// FetchDocument downloads target and parses it as HTML. A 403 or 429 bans
// the proxy in use and retries through the next one.
func (c *Client) FetchDocument(ctx context.Context, target string) (*goquery.Document, error) {
	if _, err := url.ParseRequestURI(target); err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", target, err)
	}

	attempts := 1 + c.proxies.Len()
	var lastErr error
	for i := 0; i < attempts; i++ {
		doc, status, err := c.fetchOnce(ctx, target)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if ctx.Err() != nil || !retryable(status) {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, target string) (*goquery.Document, int, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	applyHeaders(req, nil)
	req.Header.Set("User-Agent", c.randomUA())

	proxy, err := c.useNextProxy()
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().Str("url", target).Int("status", resp.StatusCode).Msg("page fetched")
	if resp.StatusCode >= 400 {
		if proxy != nil && retryable(resp.StatusCode) {
			c.proxies.Ban(proxy)
		}
		return nil, resp.StatusCode, fmt.Errorf("%w: http %d", ErrRequestFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return doc, resp.StatusCode, nil
}

func (c *Client) useNextProxy() (*url.URL, error) {
	proxy, err := c.proxies.Next()
	if err != nil || proxy == nil {
		return nil, err
	}
	if err := c.http.SetProxy(proxy.String()); err != nil {
		return nil, fmt.Errorf("set proxy %s: %w", proxy.Host, err)
	}
	return proxy, nil
}

func applyHeaders(req *fhttp.Request, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["accept"]; !ok {
		headers["accept"] = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	}
	if _, ok := headers["accept-language"]; !ok {
		headers["accept-language"] = "en-US,en;q=0.9"
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
}

func retryable(status int) bool {
	return status == fhttp.StatusForbidden || status == fhttp.StatusTooManyRequests
}

func (c *Client) randomUA() string {
	return userAgents[c.rand.Intn(len(userAgents))]
}
