package linkpreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/imagesize"
)

const testHomeserver = "https://hs.example"

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestRenderer() *Renderer {
	return NewRenderer(media.NewResolver(testHomeserver), nil, "")
}

func defaultOptions() Options {
	return Options{EmbedPlayer: true, ShowImages: true, ImageSize: imagesize.Normal}
}

func TestDecideEmptyPreview(t *testing.T) {
	r := newTestRenderer()

	assert.Equal(t, Decision{Kind: NoPreview}, r.Decide("https://example.com", nil, defaultOptions()))
	assert.Equal(t, Decision{Kind: NoPreview}, r.Decide("https://example.com", &Metadata{}, defaultOptions()))
}

func TestDecideYouTubeEmbed(t *testing.T) {
	r := newTestRenderer()
	p := &Metadata{
		Title:       strPtr("A video"),
		Image:       strPtr("https://i.ytimg.com/vi/L4K0-y_JVAo/hq.jpg"),
		ImageWidth:  intPtr(1280),
		ImageHeight: intPtr(720),
	}

	d := r.Decide("https://www.youtube.com/watch?v=L4K0-y_JVAo&t=12", p, defaultOptions())

	require.Equal(t, YouTubeEmbed, d.Kind)
	require.NotNil(t, d.Embed)
	assert.Nil(t, d.Image, "embeds do not get a separate card image")
	assert.Equal(t, "L4K0-y_JVAo", d.Embed.VideoID)
	assert.True(t, d.Embed.NoCookie)
	assert.False(t, d.Embed.AdNetwork)
	assert.Equal(t, "https://i.ytimg.com/vi/L4K0-y_JVAo/hq.jpg", d.Embed.Poster)
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/L4K0-y_JVAo", d.Embed.PlayerURL)
	assert.Equal(t, imagesize.Dimensions{W: 324, H: 182}, d.Embed.Dimensions)
	assert.Equal(t, "A video", d.Caption.Anchor.Text)
}

func TestDecideYouTubeEmbedUsesSuggestFunc(t *testing.T) {
	var gotSize imagesize.Size
	r := NewRenderer(nil, func(size imagesize.Size, _ imagesize.Dimensions) imagesize.Dimensions {
		gotSize = size
		return imagesize.Dimensions{W: 1, H: 2}
	}, "")

	opts := defaultOptions()
	opts.ImageSize = imagesize.Large
	d := r.Decide("https://youtu.be/WrBGZ-L_u7Y?t=12", &Metadata{Title: strPtr("t")}, opts)

	require.Equal(t, YouTubeEmbed, d.Kind)
	assert.Equal(t, "WrBGZ-L_u7Y", d.Embed.VideoID)
	assert.Equal(t, imagesize.Large, gotSize)
	assert.Equal(t, imagesize.Dimensions{W: 1, H: 2}, d.Embed.Dimensions)
}

func TestDecideEmbedDisabledFallsBackToCard(t *testing.T) {
	r := newTestRenderer()
	opts := defaultOptions()
	opts.EmbedPlayer = false

	d := r.Decide("https://www.youtube.com/shorts/ooAwCOP67GQ", &Metadata{
		Title: strPtr("Short"),
		Image: strPtr("https://i.ytimg.com/x.jpg"),
	}, opts)

	assert.Equal(t, LinkCard, d.Kind)
	assert.Nil(t, d.Embed)
	require.NotNil(t, d.Image)
	assert.Equal(t, "https://i.ytimg.com/x.jpg", d.Image.Src)
}

func TestDecideNonYouTubeIsCard(t *testing.T) {
	r := newTestRenderer()

	d := r.Decide("https://example.com/post", &Metadata{Title: strPtr("Post")}, defaultOptions())

	assert.Equal(t, LinkCard, d.Kind)
	assert.Nil(t, d.Image)
	assert.Nil(t, d.Embed)
}

func TestDecideCaption(t *testing.T) {
	r := newTestRenderer()

	d := r.Decide("https://example.com", &Metadata{
		Title:       strPtr("  A &amp; B  "),
		SiteName:    strPtr("Example &quot;Site&quot;"),
		Description: strPtr("See https://example.org for more &lt;info&gt;"),
	}, defaultOptions())

	c := d.Caption
	assert.Equal(t, "A & B", c.Anchor.Text)
	assert.Equal(t, "https://example.com", c.Anchor.Href)
	assert.Equal(t, "_blank", c.Anchor.Target)
	assert.Equal(t, "noreferrer noopener", c.Anchor.Rel)
	assert.Equal(t, ` - Example "Site"`, c.SiteNameSuffix())
	assert.Equal(t, "See https://example.org for more <info>", PlainText(c.Description))
	require.Len(t, c.Description, 3)
	assert.Equal(t, "https://example.org", c.Description[1].Href)
}

func TestDecideNoSiteName(t *testing.T) {
	d := newTestRenderer().Decide("https://example.com", &Metadata{Title: strPtr("T")}, defaultOptions())
	assert.Equal(t, "", d.Caption.SiteNameSuffix())
}

func TestDecideTooltip(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		title    string
		needs    bool
		linkBase string
		want     string
	}{
		{name: "title differs", link: "https://example.com/a", title: "Article", needs: true, want: "https://example.com/a"},
		{name: "title equals link", link: "https://example.com/a", title: "https://example.com/a", needs: true, want: ""},
		{name: "platform does not need tooltips", link: "https://example.com/a", title: "Article", needs: false, want: ""},
		{name: "relative link resolved", link: "/docs/page", title: "Docs", needs: true, linkBase: "https://hs.example/base/", want: "https://hs.example/docs/page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(nil, nil, tt.linkBase)
			opts := defaultOptions()
			opts.NeedsURLTooltips = tt.needs

			d := r.Decide(tt.link, &Metadata{Title: strPtr(tt.title)}, opts)
			assert.Equal(t, tt.want, d.Caption.Anchor.Tooltip)
		})
	}
}

func TestDecideImagesDisabled(t *testing.T) {
	r := newTestRenderer()
	opts := defaultOptions()
	opts.ShowImages = false

	d := r.Decide("https://example.com", &Metadata{
		Title: strPtr("T"),
		Image: strPtr("https://example.com/i.png"),
	}, opts)
	assert.Equal(t, LinkCard, d.Kind)
	assert.Nil(t, d.Image)

	d = r.Decide("https://youtu.be/abc", &Metadata{
		Title: strPtr("T"),
		Image: strPtr("https://example.com/i.png"),
	}, opts)
	assert.Equal(t, YouTubeEmbed, d.Kind)
	assert.Equal(t, "", d.Embed.Poster)
}

func TestDecideContentRefThumbnail(t *testing.T) {
	r := newTestRenderer()

	d := r.Decide("https://example.com", &Metadata{
		Title:       strPtr("T"),
		Image:       strPtr("mxc://example.org/abc"),
		ImageWidth:  intPtr(400),
		ImageHeight: intPtr(200),
	}, defaultOptions())

	require.NotNil(t, d.Image)
	assert.Equal(t, testHomeserver+"/_matrix/media/v3/thumbnail/example.org/abc?height=100&method=scale&width=100", d.Image.Src)
	assert.Equal(t, ImageMaxWidth, d.Image.MaxWidth)
	assert.Equal(t, ImageMaxHeight, d.Image.MaxHeight)
	assert.True(t, d.Image.HeightKnown)
	assert.Equal(t, 50, d.Image.Height)
}

func TestDecideUnresolvableImageIsDropped(t *testing.T) {
	r := newTestRenderer()

	d := r.Decide("https://example.com", &Metadata{
		Title: strPtr("T"),
		Image: strPtr("mxc://broken"),
	}, defaultOptions())
	assert.Nil(t, d.Image)

	// without a resolver, content refs cannot be shown at all
	d = NewRenderer(nil, nil, "").Decide("https://example.com", &Metadata{
		Title: strPtr("T"),
		Image: strPtr("mxc://example.org/abc"),
	}, defaultOptions())
	assert.Nil(t, d.Image)
}

func TestDecideUnknownImageSize(t *testing.T) {
	d := newTestRenderer().Decide("https://example.com", &Metadata{
		Title: strPtr("T"),
		Image: strPtr("https://example.com/i.png"),
	}, defaultOptions())

	require.NotNil(t, d.Image)
	assert.False(t, d.Image.HeightKnown)
}

func TestFullImageSource(t *testing.T) {
	r := newTestRenderer()

	src, ok := r.FullImageSource(&Metadata{Image: strPtr("mxc://example.org/abc")})
	require.True(t, ok)
	assert.Equal(t, testHomeserver+"/_matrix/media/v3/download/example.org/abc", src)

	src, ok = r.FullImageSource(&Metadata{Image: strPtr("https://example.com/i.png")})
	require.True(t, ok)
	assert.Equal(t, "https://example.com/i.png", src)

	_, ok = r.FullImageSource(&Metadata{Title: strPtr("no image")})
	assert.False(t, ok)

	_, ok = r.FullImageSource(&Metadata{Image: strPtr("mxc://")})
	assert.False(t, ok)
}

func TestDecideDropsControlCharactersFromURLs(t *testing.T) {
	r := newTestRenderer()
	opts := defaultOptions()
	opts.NeedsURLTooltips = true

	link := "https://example.com/\x1b]0;pwned\x07\x1b[2J"
	p := &Metadata{
		Description: strPtr("hello"),
		Image:       strPtr("https://example.com/i.png\x1b[2J"),
	}

	d := r.Decide(link, p, opts)
	require.Equal(t, LinkCard, d.Kind)
	assert.Equal(t, "https://example.com/]0;pwned[2J", d.Caption.Anchor.Href)
	assert.NotContains(t, d.Caption.Anchor.Tooltip, "\x1b")
	assert.NotContains(t, d.Caption.Anchor.Tooltip, "\x07")

	params, ok := r.LightboxParams(link, p, nil)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/i.png[2J", params.Src)
	assert.Equal(t, "https://example.com/]0;pwned[2J", params.Link)
	assert.Equal(t, "hello", params.Name)
}

// Decide never panics and keeps its structural invariants for arbitrary input
func TestDecideInvariants(t *testing.T) {
	r := newTestRenderer()

	rapid.Check(t, func(t *rapid.T) {
		optional := func(label string, gen *rapid.Generator[string]) *string {
			if rapid.Bool().Draw(t, label+"?") {
				return strPtr(gen.Draw(t, label))
			}
			return nil
		}
		p := &Metadata{
			Title:       optional("title", rapid.String()),
			Description: optional("description", rapid.String()),
			Image: optional("image", rapid.SampledFrom([]string{
				"mxc://example.org/abc", "https://example.com/i.png", "mxc://bad",
			})),
		}
		if rapid.Bool().Draw(t, "dims?") {
			p.ImageWidth = intPtr(rapid.IntRange(1, 5000).Draw(t, "w"))
			p.ImageHeight = intPtr(rapid.IntRange(1, 5000).Draw(t, "h"))
		}
		link := rapid.SampledFrom([]string{
			"https://example.com", "https://youtu.be/abc", "https://www.youtube.com/watch?v=xyz",
		}).Draw(t, "link")
		opts := Options{
			EmbedPlayer:      rapid.Bool().Draw(t, "embed"),
			ShowImages:       rapid.Bool().Draw(t, "images"),
			NeedsURLTooltips: rapid.Bool().Draw(t, "tooltips"),
		}

		d := r.Decide(link, p, opts)

		switch d.Kind {
		case NoPreview:
			if !p.IsEmpty() {
				t.Fatalf("non-empty preview produced no decision")
			}
		case YouTubeEmbed:
			if d.Embed == nil || d.Image != nil || !opts.EmbedPlayer {
				t.Fatalf("bad embed decision %+v", d)
			}
		case LinkCard:
			if d.Embed != nil {
				t.Fatalf("card with embed %+v", d)
			}
			if d.Image != nil && !opts.ShowImages {
				t.Fatalf("image shown with images disabled")
			}
			if d.Image != nil && d.Image.HeightKnown && d.Image.Height > ImageMaxHeight {
				t.Fatalf("thumbnail height %d exceeds box", d.Image.Height)
			}
		}
		if d.Caption.Anchor.Tooltip != "" && !opts.NeedsURLTooltips {
			t.Fatalf("tooltip without platform need")
		}
	})
}
