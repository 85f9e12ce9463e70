package extract

import (
	"strings"

	"github.com/jimezsa/jobclip/internal/normalize"
	"github.com/jimezsa/jobclip/internal/patterns"
)

const middot = "·"

// document is pasted page text split into the header block and the job
// description that follows the description marker.
type document struct {
	all         []string
	header      []string
	description []string
	meta        []metaLine
}

// metaLine is a header line carrying middot separated segments.
type metaLine struct {
	index    int
	segments []string
}

func newDocument(lib *patterns.Library, text string) *document {
	doc := &document{all: normalize.Lines(text)}

	split := len(doc.all)
	for i, line := range doc.all {
		if isDescriptionMarker(lib, line) {
			split = i
			break
		}
	}
	doc.header = doc.all[:split]
	if split < len(doc.all) {
		doc.description = doc.all[split+1:]
	}

	for i, line := range doc.header {
		if !strings.Contains(line, middot) {
			continue
		}
		var segments []string
		for _, seg := range strings.Split(line, middot) {
			if seg = strings.TrimSpace(seg); seg != "" {
				segments = append(segments, seg)
			}
		}
		if len(segments) > 0 {
			doc.meta = append(doc.meta, metaLine{index: i, segments: segments})
		}
	}
	return doc
}

func isDescriptionMarker(lib *patterns.Library, line string) bool {
	for _, marker := range lib.DescriptionMarkers() {
		if strings.EqualFold(strings.TrimRight(line, ": "), marker) {
			return true
		}
	}
	return false
}

// descriptionText is the description section as one string.
func (d *document) descriptionText() string {
	return strings.Join(d.description, "\n")
}

func (d *document) isMeta(index int) bool {
	for _, m := range d.meta {
		if m.index == index {
			return true
		}
	}
	return false
}

func (d *document) headerLine(index int) string {
	if index < 0 || index >= len(d.header) {
		return ""
	}
	return d.header[index]
}

func (d *document) line(index int) string {
	if index < 0 || index >= len(d.all) {
		return ""
	}
	return d.all[index]
}
