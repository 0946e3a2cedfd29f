package linkpreview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/modal"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

// isPlainPrimaryPress is true for an unmodified left-button press. Modified
// clicks are left to the terminal (open link, select text).
func isPlainPrimaryPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		msg.Button == tea.MouseButtonLeft &&
		!msg.Alt && !msg.Ctrl && !msg.Shift
}

// LightboxParams builds the image viewer parameters for a preview.
// ok is false when the preview has no resolvable image.
func (r *Renderer) LightboxParams(link string, p *Metadata, thumb *zones.Rect) (params modal.ImageViewParams, ok bool) {
	src, ok := r.FullImageSource(p)
	if !ok {
		return modal.ImageViewParams{}, false
	}
	link = media.SafeURL(link)

	params = modal.ImageViewParams{
		Src:      src,
		Width:    deref(p.ImageWidth),
		Height:   deref(p.ImageHeight),
		Name:     lightboxName(link, p),
		FileSize: deref(p.ImageSize),
		Link:     link,
	}
	if thumb != nil {
		params.ThumbnailInfo = &modal.ThumbnailInfo{
			Width:     thumb.W,
			Height:    thumb.H,
			PositionX: thumb.X,
			PositionY: thumb.Y,
		}
	}
	return params, true
}

// lightboxName is the title, else the description, else the link
func lightboxName(link string, p *Metadata) string {
	for _, s := range []*string{p.Title, p.Description} {
		if v := strings.TrimSpace(sanitizeText(deref(s))); v != "" {
			return v
		}
	}
	return link
}
