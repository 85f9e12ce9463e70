// Package normalize converts raw field fragments into the canonical forms
// written to the tracker.
package normalize

import (
	"html"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var spaceReplacer = strings.NewReplacer(
	"\u00a0", " ",
	"\u2009", " ",
	"\u202f", " ",
	"\u200b", "",
	"\ufeff", "",
	"\r\n", "\n",
	"\r", "\n",
)

// Text applies NFC normalization and replaces odd whitespace. Line breaks
// are kept.
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	return spaceReplacer.Replace(norm.NFC.String(raw))
}

// Lines splits text into trimmed lines with internal whitespace collapsed.
// Empty lines are dropped.
func Lines(text string) []string {
	text = Text(text)
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Fragment cleans text taken from a DOM node: entities unescaped and all
// whitespace collapsed to single spaces.
func Fragment(raw string) string {
	return strings.Join(strings.Fields(Text(html.UnescapeString(raw))), " ")
}
