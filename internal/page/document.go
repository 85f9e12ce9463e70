package page

import (
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobclip/internal/normalize"
)

// Document is a Page over static HTML. XPath selectors are not evaluated.
type Document struct {
	doc *goquery.Document
	url string
}

// NewDocument wraps a parsed document. pageURL may be empty, in which case
// the canonical link of the page is used.
func NewDocument(doc *goquery.Document, pageURL string) *Document {
	return &Document{doc: doc, url: strings.TrimSpace(pageURL)}
}

// ParseHTML reads an HTML page from r.
func ParseHTML(r io.Reader, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewDocument(doc, pageURL), nil
}

func (d *Document) URL(ctx context.Context) (string, error) {
	if d.url != "" {
		return d.url, nil
	}
	for _, sel := range []string{"link[rel='canonical']", "meta[property='og:url']"} {
		node := d.doc.Find(sel).First()
		if href, ok := node.Attr("href"); ok && strings.TrimSpace(href) != "" {
			return strings.TrimSpace(href), nil
		}
		if content, ok := node.Attr("content"); ok && strings.TrimSpace(content) != "" {
			return strings.TrimSpace(content), nil
		}
	}
	return "", ErrNotFound
}

func (d *Document) Title(ctx context.Context) (string, error) {
	title := normalize.Fragment(d.doc.Find("title").First().Text())
	if title == "" {
		return "", ErrNotFound
	}
	return title, nil
}

func (d *Document) First(ctx context.Context, selector string) (string, error) {
	texts, err := d.All(ctx, selector)
	if err != nil {
		return "", err
	}
	return texts[0], nil
}

func (d *Document) All(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if IsXPath(selector) {
		return nil, ErrNotFound
	}
	var out []string
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if text := normalize.Fragment(s.Text()); text != "" {
			out = append(out, text)
		}
	})
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
