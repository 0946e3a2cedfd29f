package linkpreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderHTMLCard(t *testing.T) {
	r := newTestRenderer()
	opts := defaultOptions()
	opts.NeedsURLTooltips = true

	out := RenderHTML(r.Decide("https://example.com/a", &Metadata{
		Title:       strPtr("<script>alert(1)</script> &amp; co"),
		SiteName:    strPtr("Example"),
		Description: strPtr("more at https://example.org"),
		Image:       strPtr("mxc://example.org/abc"),
		ImageWidth:  intPtr(400),
		ImageHeight: intPtr(200),
	}, opts))

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Contains(t, out, `href="https://example.com/a"`)
	assert.Contains(t, out, `title="https://example.com/a"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
	assert.Contains(t, out, "noopener")
	assert.Contains(t, out, `href="https://example.org"`)
	assert.Contains(t, out, " - Example")
	assert.Contains(t, out, `height="50"`)
	assert.Contains(t, out, "/_matrix/media/v3/thumbnail/example.org/abc")
}

func TestRenderHTMLDropsUnsafeSchemes(t *testing.T) {
	out := RenderHTML(newTestRenderer().Decide("javascript:alert(1)", &Metadata{Title: strPtr("x")}, defaultOptions()))

	assert.NotContains(t, out, "javascript:")
}

func TestRenderHTMLEmbed(t *testing.T) {
	out := RenderHTML(newTestRenderer().Decide("https://youtu.be/WrBGZ-L_u7Y", &Metadata{Title: strPtr("Clip")}, defaultOptions()))

	assert.Contains(t, out, `href="https://www.youtube-nocookie.com/embed/WrBGZ-L_u7Y"`)
	assert.Contains(t, out, "mx_LinkPreviewWidget_youtube")
}

func TestRenderHTMLEmpty(t *testing.T) {
	assert.Equal(t, "", RenderHTML(Decision{Kind: NoPreview}))
}
