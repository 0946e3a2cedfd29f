package linkpreview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

// A terminal cell is roughly 8x16 logical pixels
const (
	cellWidthPx  = 8
	cellHeightPx = 16
)

var (
	siteNameStyle = lipgloss.NewStyle().Foreground(theme.MutedColor)

	thumbStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.MutedColor).
			Foreground(theme.MutedColor).
			Align(lipgloss.Center, lipgloss.Center)

	playerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ErrorColor).
			Align(lipgloss.Center, lipgloss.Center)
)

// RenderTerminal draws a decision into at most width columns. The
// thumbnail, when present, is wrapped in a mouse zone named thumbZone.
func RenderTerminal(d Decision, width int, z zones.Zones, thumbZone string) string {
	if d.Kind == NoPreview {
		return ""
	}
	if width < 20 {
		width = 20
	}

	var body string
	switch d.Kind {
	case YouTubeEmbed:
		player := renderPlayer(d.Embed, width-theme.CardStyle.GetHorizontalFrameSize())
		body = lipgloss.JoinVertical(lipgloss.Left, player, renderCaption(d.Caption, width))
	default:
		if d.Image != nil {
			thumb := renderThumbnail(d.Image)
			if z != nil {
				thumb = z.Mark(thumbZone, thumb)
			}
			textWidth := width - lipgloss.Width(thumb) - 1 - theme.CardStyle.GetHorizontalFrameSize()
			body = lipgloss.JoinHorizontal(lipgloss.Top, thumb, " ", renderCaption(d.Caption, textWidth))
		} else {
			body = renderCaption(d.Caption, width-theme.CardStyle.GetHorizontalFrameSize())
		}
	}
	return theme.CardStyle.Render(body)
}

func renderCaption(c Caption, width int) string {
	if width < 10 {
		width = 10
	}

	// an untitled card shows its destination once, as the title
	title := c.Anchor.Text
	if title == "" {
		title = c.Anchor.Tooltip
	}
	if title == "" {
		title = media.SafeURL(c.Anchor.Href)
	}
	head := link(c.Anchor.Href, theme.TitleStyle.Inherit(theme.LinkStyle).Render(title))
	if s := c.SiteNameSuffix(); s != "" {
		head += siteNameStyle.Render(s)
	}

	lines := []string{head}
	if c.Anchor.Tooltip != "" && c.Anchor.Tooltip != title {
		lines = append(lines, theme.MutedTextStyle.Render("⟨"+c.Anchor.Tooltip+"⟩"))
	}
	if desc := renderSegments(c.Description); desc != "" {
		lines = append(lines, desc)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func renderSegments(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Href == "" {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(link(s.Href, theme.LinkStyle.Render(s.Text)))
	}
	return b.String()
}

func renderThumbnail(t *Thumbnail) string {
	heightPx := t.MaxHeight
	if t.HeightKnown {
		heightPx = t.Height
	}
	w := max(1, t.MaxWidth/cellWidthPx)
	h := max(1, heightPx/cellHeightPx)
	return thumbStyle.Width(w).Height(h).Render("🖼")
}

func renderPlayer(e *Embed, maxWidth int) string {
	w := max(16, e.Dimensions.W/cellWidthPx)
	h := max(3, e.Dimensions.H/cellHeightPx)
	if w > maxWidth-2 {
		w = max(16, maxWidth-2)
	}

	label := "▶ YouTube"
	if e.Title != "" {
		label += "\n" + theme.TitleStyle.Render(e.Title)
	}
	label += "\n" + link(e.PlayerURL, theme.LinkStyle.Render("play "+e.VideoID))
	return playerStyle.Width(w).Height(h).Render(label)
}

// link wraps text in an OSC 8 hyperlink
func link(href, text string) string {
	if href == "" {
		return text
	}
	return ansi.SetHyperlink(media.SafeURL(href)) + text + ansi.ResetHyperlink()
}
