package page

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed selectors.yaml
var defaultSelectorsYAML []byte

// Selectors are the per-field lookup lists for live pages.
type Selectors struct {
	Title       []string `yaml:"title" validate:"required,dive,required"`
	Company     []string `yaml:"company" validate:"required,dive,required"`
	Location    []string `yaml:"location" validate:"required,dive,required"`
	Metadata    []string `yaml:"metadata" validate:"dive,required"`
	Salary      []string `yaml:"salary" validate:"dive,required"`
	Posted      []string `yaml:"posted" validate:"dive,required"`
	Applicants  []string `yaml:"applicants" validate:"dive,required"`
	Workplace   []string `yaml:"workplace" validate:"dive,required"`
	RemoteText  []string `yaml:"remote_text" validate:"dive,required"`
	Description []string `yaml:"description" validate:"required,dive,required"`
	Body        []string `yaml:"body" validate:"dive,required"`
}

// DefaultSelectors returns the built-in table.
func DefaultSelectors() Selectors {
	var s Selectors
	if err := yaml.Unmarshal(defaultSelectorsYAML, &s); err != nil {
		panic(fmt.Sprintf("embedded selectors: %v", err))
	}
	return s
}

// LoadSelectors reads a YAML table from path and lays it over the defaults;
// a field listed in the file replaces the default list for that field.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if strings.TrimSpace(path) == "" {
		return sel, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("read selectors: %w", err)
	}

	var overlay Selectors
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return sel, fmt.Errorf("parse selectors %s: %w", path, err)
	}
	sel.merge(overlay)
	if err := sel.Validate(); err != nil {
		return sel, fmt.Errorf("selectors %s: %w", path, err)
	}
	return sel, nil
}

// Validate checks that the required lists are present and no entry is blank.
func (s Selectors) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return err
	}
	for _, expr := range s.RemoteText {
		if _, err := regexp.Compile(expr); err != nil {
			return fmt.Errorf("remote_text %q: %w", expr, err)
		}
	}
	return nil
}

// RemotePatterns compiles the remote_text entries case-insensitively.
// Entries that do not compile are skipped.
func (s Selectors) RemotePatterns() []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, expr := range s.RemoteText {
		re, err := regexp.Compile("(?i)" + expr)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

func (s *Selectors) merge(o Selectors) {
	pick := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	pick(&s.Title, o.Title)
	pick(&s.Company, o.Company)
	pick(&s.Location, o.Location)
	pick(&s.Metadata, o.Metadata)
	pick(&s.Salary, o.Salary)
	pick(&s.Posted, o.Posted)
	pick(&s.Applicants, o.Applicants)
	pick(&s.Workplace, o.Workplace)
	pick(&s.RemoteText, o.RemoteText)
	pick(&s.Description, o.Description)
	pick(&s.Body, o.Body)
}
