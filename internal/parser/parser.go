// Package parser assembles extracted fields into a validated JobRecord.
package parser

import (
	"context"
	"strings"

	"github.com/jimezsa/jobclip/internal/extract"
	"github.com/jimezsa/jobclip/internal/models"
	"github.com/jimezsa/jobclip/internal/normalize"
	"github.com/jimezsa/jobclip/internal/page"
	"github.com/jimezsa/jobclip/internal/resolve"
	"github.com/rs/zerolog"
)

const easyApply = "Easy Apply"

// Result is one parsed posting and the per-field diagnostics behind it.
type Result struct {
	Record models.JobRecord
	Trace  extract.Trace
}

// Parser turns page text or a live page into records.
type Parser struct {
	ext         *extract.Extractor
	logger      zerolog.Logger
	fallbackURL string
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger for record-level debug events.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithFallbackURL sets the URL used when the input carries none.
func WithFallbackURL(u string) Option {
	return func(p *Parser) {
		p.fallbackURL = strings.TrimSpace(u)
	}
}

// New returns a parser over ext. A nil ext uses the default library and
// the wall clock.
func New(ext *extract.Extractor, opts ...Option) *Parser {
	if ext == nil {
		ext = extract.New(nil)
	}
	p := &Parser{ext: ext, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts a record from pasted page text. Empty text yields a record
// of defaults with its validation errors filled in.
func (p *Parser) Parse(text string) Result {
	f, tr := p.ext.FromText(text)
	return Result{Record: p.assemble(f, text), Trace: tr}
}

// ParseValue accepts nil, string, *string or []byte and parses it as text.
// Any other type returns an *InputError.
func (p *Parser) ParseValue(v any) (Result, error) {
	switch val := v.(type) {
	case nil:
		return p.Parse(""), nil
	case string:
		return p.Parse(val), nil
	case *string:
		if val == nil {
			return p.Parse(""), nil
		}
		return p.Parse(*val), nil
	case []byte:
		return p.Parse(string(val)), nil
	default:
		return Result{}, &InputError{Value: v}
	}
}

// ParsePage extracts a record from a live page.
func (p *Parser) ParsePage(ctx context.Context, pg page.Page, sel page.Selectors) Result {
	res, tr := p.ext.FromPage(ctx, pg, sel)
	return Result{Record: p.assemble(res.Fields, res.Text), Trace: tr}
}

func (p *Parser) assemble(f extract.Fields, raw string) models.JobRecord {
	today := p.ext.Now().Format(normalize.DateLayout)

	rec := models.JobRecord{
		Company:       orUnknown(f.Company),
		Title:         orUnknown(f.Title),
		Location:      f.Location,
		RemoteClaimed: f.RemoteClaimed,
		Salary:        f.Salary,
		Posted:        f.Posted,
		PostedRaw:     f.PostedRaw,
		Applicants:    f.Applicants,
		URL:           f.URL,
		DateFound:     today,
		DateApplied:   today,
		RawText:       raw,
	}
	if rec.URL == "" && p.fallbackURL != "" {
		rec.URL = p.ext.CanonicalJobURL(p.fallbackURL)
		if rec.URL == "" {
			rec.URL = p.fallbackURL
		}
	}
	if strings.Contains(raw, easyApply) {
		rec.Notes = easyApply
	}

	resolution := resolve.Remote(p.ext.Library(), f.RemoteClaimed, f.Description)
	rec.IsRemote = resolution.IsRemote

	var errs []string
	if resolution.Warning != "" {
		errs = append(errs, resolution.Warning)
	}
	errs = append(errs, Validate(p.ext.Library(), rec)...)
	rec.ValidationErrors = errs

	p.logger.Debug().
		Str("company", rec.Company).
		Str("title", rec.Title).
		Bool("remote", rec.IsRemote).
		Strs("contradictions", resolution.Contradictions).
		Int("warnings", len(errs)).
		Msg("record assembled")
	return rec
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return models.UnknownValue
	}
	return s
}
