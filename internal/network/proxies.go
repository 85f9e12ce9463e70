package network

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

var ErrNoProxies = errors.New("no proxies available")

// ProxyPool hands out proxies round-robin and skips the ones that were
// recently refused by the site.
type ProxyPool struct {
	proxies     []*url.URL
	banDuration time.Duration
	bannedUntil map[string]time.Time
	index       int
	now         func() time.Time
	mu          sync.Mutex
}

// NewProxyPool parses raw proxy URLs. Blank entries are skipped.
func NewProxyPool(raw []string, banDuration time.Duration) (*ProxyPool, error) {
	pool := &ProxyPool{
		banDuration: banDuration,
		bannedUntil: map[string]time.Time{},
		now:         time.Now,
	}
	for _, proxy := range raw {
		proxy = strings.TrimSpace(proxy)
		if proxy == "" {
			continue
		}
		u, err := url.Parse(proxy)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy %q", proxy)
		}
		pool.proxies = append(pool.proxies, u)
	}
	return pool, nil
}

// Len returns the number of configured proxies.
func (p *ProxyPool) Len() int {
	if p == nil {
		return 0
	}
	return len(p.proxies)
}

// Next returns the next proxy that is not banned. A nil or empty pool
// returns nil and no error.
func (p *ProxyPool) Next() (*url.URL, error) {
	if p.Len() == 0 {
		return nil, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for range p.proxies {
		proxy := p.proxies[p.index]
		p.index = (p.index + 1) % len(p.proxies)
		if !p.isBanned(proxy) {
			return proxy, nil
		}
	}
	return nil, ErrNoProxies
}

// Ban sidelines proxy for the pool's ban duration.
func (p *ProxyPool) Ban(proxy *url.URL) {
	if p == nil || proxy == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bannedUntil[proxy.String()] = p.now().Add(p.banDuration)
}

func (p *ProxyPool) isBanned(proxy *url.URL) bool {
	until, ok := p.bannedUntil[proxy.String()]
	if !ok {
		return false
	}
	if p.now().After(until) {
		delete(p.bannedUntil, proxy.String())
		return false
	}
	return true
}
