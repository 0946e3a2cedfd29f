package linkpreview

import (
	"net/url"
	"strings"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/imagesize"
)

// Thumbnails are bounded to this box, in logical pixels
const (
	ImageMaxWidth  = 100
	ImageMaxHeight = 100
)

// Kind is the shape of a render decision
type Kind int

const (
	NoPreview Kind = iota
	YouTubeEmbed
	LinkCard
)

func (k Kind) String() string {
	switch k {
	case YouTubeEmbed:
		return "youtube"
	case LinkCard:
		return "link_card"
	default:
		return "none"
	}
}

// MediaResolver turns content references into HTTP URLs
type MediaResolver interface {
	Resolve(ref string) (media.Media, error)
}

// Options are the settings and host facts a decision depends on
type Options struct {
	EmbedPlayer      bool
	ShowImages       bool
	ImageSize        imagesize.Size
	NeedsURLTooltips bool
}

// Anchor is the title link. Tooltip holds the absolute destination when
// the link text hides it.
type Anchor struct {
	Text    string
	Href    string
	Target  string
	Rel     string
	Tooltip string
}

// Caption is the text block of every non-empty preview
type Caption struct {
	Anchor      Anchor
	SiteName    string
	Description []Segment
}

// SiteNameSuffix is the text appended after the title, "" without a site name
func (c Caption) SiteNameSuffix() string {
	if c.SiteName == "" {
		return ""
	}
	return " - " + c.SiteName
}

// Thumbnail is the card image. Height is only meaningful when HeightKnown;
// otherwise the layout falls back to the image's own size.
type Thumbnail struct {
	Src         string
	MaxWidth    int
	MaxHeight   int
	Height      int
	HeightKnown bool
}

// Embed is an inline YouTube player
type Embed struct {
	VideoID    string
	Title      string
	Dimensions imagesize.Dimensions
	AdNetwork  bool
	NoCookie   bool
	Poster     string
	PlayerURL  string
}

// Decision is what a preview renders as. Image is only set for link cards,
// Embed only for YouTube embeds.
type Decision struct {
	Kind    Kind
	Caption Caption
	Image   *Thumbnail
	Embed   *Embed
}

// Renderer makes render decisions for previews
type Renderer struct {
	media    MediaResolver
	suggest  imagesize.SuggestFunc
	linkBase *url.URL
}

// NewRenderer creates a renderer. suggest defaults to imagesize.SuggestedSize;
// linkBase (optional) resolves relative links for tooltips.
func NewRenderer(resolver MediaResolver, suggest imagesize.SuggestFunc, linkBase string) *Renderer {
	if suggest == nil {
		suggest = imagesize.SuggestedSize
	}
	r := &Renderer{media: resolver, suggest: suggest}
	if linkBase != "" {
		if u, err := url.Parse(linkBase); err == nil && u.IsAbs() {
			r.linkBase = u
		}
	}
	return r
}

// Decide computes what to display for link given its preview metadata.
// It is a pure function of its arguments and never fails: missing or
// malformed fields are left out of the result.
func (r *Renderer) Decide(link string, p *Metadata, opts Options) Decision {
	if p.IsEmpty() {
		return Decision{Kind: NoPreview}
	}

	image := ""
	if opts.ShowImages {
		image = r.thumbnailSource(deref(p.Image))
	}

	caption := r.caption(link, p, opts)

	if opts.EmbedPlayer {
		if yt := MatchYouTube(link); yt.Matched {
			return Decision{
				Kind:    YouTubeEmbed,
				Caption: caption,
				Embed: &Embed{
					VideoID: yt.ID,
					Title:   sanitizeText(deref(p.Title)),
					Dimensions: r.suggest(opts.ImageSize, imagesize.Dimensions{
						W: deref(p.ImageWidth),
						H: deref(p.ImageHeight),
					}),
					AdNetwork: false,
					NoCookie:  true,
					Poster:    image,
					PlayerURL: NoCookieEmbedURL(yt.ID),
				},
			}
		}
	}

	d := Decision{Kind: LinkCard, Caption: caption}
	if image != "" {
		thumb := &Thumbnail{
			Src:       image,
			MaxWidth:  ImageMaxWidth,
			MaxHeight: ImageMaxHeight,
		}
		if p.ImageWidth != nil && p.ImageHeight != nil {
			thumb.Height, thumb.HeightKnown = imagesize.ThumbHeight(*p.ImageWidth, *p.ImageHeight, ImageMaxWidth, ImageMaxHeight)
		}
		d.Image = thumb
	}
	return d
}

func (r *Renderer) caption(link string, p *Metadata, opts Options) Caption {
	title := strings.TrimSpace(sanitizeText(deref(p.Title)))
	link = media.SafeURL(link)

	anchor := Anchor{
		Text:   title,
		Href:   link,
		Target: "_blank",
		Rel:    "noreferrer noopener",
	}
	if opts.NeedsURLTooltips && title != link {
		anchor.Tooltip = r.absoluteURL(link)
	}

	return Caption{
		Anchor:      anchor,
		SiteName:    sanitizeText(deref(p.SiteName)),
		Description: Linkify(sanitizeText(deref(p.Description))),
	}
}

// thumbnailSource resolves a content reference to a bounded thumbnail URL.
// Plain URLs are used as they are.
func (r *Renderer) thumbnailSource(ref string) string {
	if ref == "" || !media.IsContentRef(ref) {
		return media.SafeURL(ref)
	}
	if r.media == nil {
		return ""
	}
	m, err := r.media.Resolve(ref)
	if err != nil {
		return ""
	}
	return m.ThumbnailHTTP(ImageMaxWidth, ImageMaxHeight, media.MethodScale)
}

// FullImageSource is the full-resolution image URL for the lightbox
func (r *Renderer) FullImageSource(p *Metadata) (string, bool) {
	if p == nil || p.Image == nil {
		return "", false
	}
	ref := *p.Image
	if !media.IsContentRef(ref) {
		return media.SafeURL(ref), true
	}
	if r.media == nil {
		return "", false
	}
	m, err := r.media.Resolve(ref)
	if err != nil {
		return "", false
	}
	return m.SrcHTTP(), true
}

func (r *Renderer) absoluteURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return link
	}
	if !u.IsAbs() && r.linkBase != nil {
		u = r.linkBase.ResolveReference(u)
	}
	return u.String()
}
