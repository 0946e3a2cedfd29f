package linkpreview

import (
	"html"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"mvdan.cc/xurls/v2"
)

// Segment is a run of description text; Href is set for linkified URLs
type Segment struct {
	Text string
	Href string
}

var urlPattern = xurls.Strict()

// DecodeEntities turns HTML entity escapes (&amp;, &#39;, ...) into literal
// characters. The result is plain text and must never be treated as markup.
func DecodeEntities(s string) string {
	return html.UnescapeString(s)
}

// sanitizeText decodes entities and drops terminal escape sequences, which
// would otherwise let a remote page restyle or retitle the terminal
func sanitizeText(s string) string {
	return ansi.Strip(DecodeEntities(s))
}

// Linkify splits plain text into text and URL segments. Nothing but bare
// URLs is given meaning.
func Linkify(text string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		u := text[loc[0]:loc[1]]
		segments = append(segments, Segment{Text: u, Href: u})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// PlainText joins segments back into the text they came from
func PlainText(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
