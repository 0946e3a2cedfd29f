package linkpreview

import (
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy is the only markup a preview may produce. Remote text goes
// through html.EscapeString first; the policy is a second line that also
// forces safe link attributes.
var htmlPolicy = newHTMLPolicy()

func newHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("div", "span")
	p.AllowAttrs("class").Globally()

	p.AllowAttrs("href", "title").OnElements("a")
	p.AllowURLSchemes("http", "https")
	p.RequireParseableURLs(true)
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	p.AllowImages()
	p.AllowAttrs("width", "height").Matching(bluemonday.Number).OnElements("img")
	return p
}

// RenderHTML draws a decision as a sanitised HTML fragment for web hosts
func RenderHTML(d Decision) string {
	if d.Kind == NoPreview {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<div class="mx_LinkPreviewWidget">`)
	switch d.Kind {
	case YouTubeEmbed:
		writeEmbedHTML(&b, d.Embed)
	case LinkCard:
		if d.Image != nil {
			writeThumbnailHTML(&b, d.Image)
		}
	}
	writeCaptionHTML(&b, d.Caption)
	b.WriteString(`</div>`)

	return htmlPolicy.Sanitize(b.String())
}

func writeThumbnailHTML(b *strings.Builder, t *Thumbnail) {
	b.WriteString(`<div class="mx_LinkPreviewWidget_image">`)
	fmt.Fprintf(b, `<img src="%s" width="%d"`, html.EscapeString(t.Src), t.MaxWidth)
	if t.HeightKnown {
		fmt.Fprintf(b, ` height="%d"`, t.Height)
	}
	b.WriteString(`></div>`)
}

func writeEmbedHTML(b *strings.Builder, e *Embed) {
	b.WriteString(`<div class="mx_LinkPreviewWidget_youtube">`)
	fmt.Fprintf(b, `<a href="%s">`, html.EscapeString(e.PlayerURL))
	if e.Poster != "" {
		fmt.Fprintf(b, `<img src="%s" width="%d" height="%d">`,
			html.EscapeString(e.Poster), e.Dimensions.W, e.Dimensions.H)
	} else {
		b.WriteString(html.EscapeString(e.Title))
	}
	b.WriteString(`</a></div>`)
}

func writeCaptionHTML(b *strings.Builder, c Caption) {
	b.WriteString(`<div class="mx_LinkPreviewWidget_caption">`)
	b.WriteString(`<div class="mx_LinkPreviewWidget_title">`)
	fmt.Fprintf(b, `<a href="%s"`, html.EscapeString(c.Anchor.Href))
	if c.Anchor.Tooltip != "" {
		fmt.Fprintf(b, ` title="%s"`, html.EscapeString(c.Anchor.Tooltip))
	}
	fmt.Fprintf(b, `>%s</a>`, html.EscapeString(c.Anchor.Text))
	if c.SiteName != "" {
		fmt.Fprintf(b, `<span class="mx_LinkPreviewWidget_siteName">%s</span>`, html.EscapeString(c.SiteNameSuffix()))
	}
	b.WriteString(`</div>`)

	if len(c.Description) > 0 {
		b.WriteString(`<div class="mx_LinkPreviewWidget_description">`)
		for _, s := range c.Description {
			if s.Href == "" {
				b.WriteString(html.EscapeString(s.Text))
				continue
			}
			fmt.Fprintf(b, `<a href="%s">%s</a>`, html.EscapeString(s.Href), html.EscapeString(s.Text))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</div>`)
}
