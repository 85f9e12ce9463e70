// Package page exposes rendered job pages through a small lookup
// capability so the same field rules work on a saved HTML file, a fetched
// public posting or a tab in a running browser.
package page

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrNotFound reports a selector that matched no element with text.
	ErrNotFound = errors.New("element not found")
	// ErrNoJobTab reports a browser without an open LinkedIn job tab.
	ErrNoJobTab = errors.New("no LinkedIn job tab found")
)

// Page finds text fragments by selector. Selectors starting with "/" or
// "(" are XPath, everything else is CSS. Implementations that cannot
// evaluate a selector return ErrNotFound for it.
type Page interface {
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	First(ctx context.Context, selector string) (string, error)
	All(ctx context.Context, selector string) ([]string, error)
}

// IsXPath reports whether selector is an XPath expression.
func IsXPath(selector string) bool {
	s := strings.TrimSpace(selector)
	return strings.HasPrefix(s, "/") || strings.HasPrefix(s, "(")
}

// IsJobURL reports whether u shows a single LinkedIn posting. Collection
// and search pages only count when they are not the address.
func IsJobURL(u string) bool {
	lower := strings.ToLower(u)
	if !strings.Contains(lower, "linkedin.com/jobs") {
		return false
	}
	if strings.Contains(lower, "/jobs/view/") {
		return true
	}
	if strings.Contains(lower, "/collections/") || strings.Contains(lower, "/search/") {
		return false
	}
	return strings.Contains(lower, "currentjobid=")
}
