package modal

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
)

const (
	zoomFrames   = 6
	zoomInterval = 30 * time.Millisecond

	minModalWidth = 12
)

// ThumbnailInfo is the on-screen box of the thumbnail that opened the
// lightbox, in terminal cells. The lightbox zooms out of it.
type ThumbnailInfo struct {
	Width     int
	Height    int
	PositionX int
	PositionY int
}

// ImageViewParams describes the image shown in the lightbox.
// Zero Width/Height/FileSize mean unknown.
type ImageViewParams struct {
	Src           string
	Width         int
	Height        int
	Name          string
	FileSize      int64
	Link          string
	ThumbnailInfo *ThumbnailInfo
}

type zoomTickMsg struct {
	modal *ImageViewModal
}

// ImageViewModal is the full-size image lightbox
type ImageViewModal struct {
	params ImageViewParams
	frame  int
}

// NewImageViewModal creates a lightbox for params
func NewImageViewModal(params ImageViewParams) *ImageViewModal {
	m := &ImageViewModal{params: params}
	if params.ThumbnailInfo == nil {
		m.frame = zoomFrames
	}
	return m
}

// Params returns the parameters the lightbox was opened with
func (m *ImageViewModal) Params() ImageViewParams {
	return m.params
}

// Type returns the modal type
func (m *ImageViewModal) Type() ModalType {
	return ModalImageView
}

// Init starts the zoom transition when a thumbnail origin is known
func (m *ImageViewModal) Init() tea.Cmd {
	if m.frame >= zoomFrames {
		return nil
	}
	return m.tick()
}

func (m *ImageViewModal) tick() tea.Cmd {
	return tea.Tick(zoomInterval, func(time.Time) tea.Msg {
		return zoomTickMsg{modal: m}
	})
}

// Update advances the zoom animation
func (m *ImageViewModal) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(zoomTickMsg)
	if !ok || tick.modal != m {
		return nil
	}
	m.frame++
	if m.frame >= zoomFrames {
		return nil
	}
	return m.tick()
}

// HandleKey closes the lightbox on enter, esc, or q
func (m *ImageViewModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "q":
		return true, nil, nil
	}
	return true, m, nil
}

// IsBlockingInput returns whether this modal blocks input to the main view
func (m *ImageViewModal) IsBlockingInput() bool {
	return true
}

// Render returns the lightbox content
func (m *ImageViewModal) Render(width, height int) string {
	p := m.params

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.PrimaryColor)

	var lines []string
	lines = append(lines, titleStyle.Render(ansi.Strip(p.Name)), "")

	var facts []string
	if p.Width > 0 && p.Height > 0 {
		facts = append(facts, fmt.Sprintf("%d×%d", p.Width, p.Height))
	}
	if p.FileSize > 0 {
		facts = append(facts, humanize.Bytes(uint64(p.FileSize)))
	}
	if len(facts) > 0 {
		lines = append(lines, theme.MutedTextStyle.Render(strings.Join(facts, " · ")))
	}

	lines = append(lines, "Image: "+hyperlink(p.Src, p.Src))
	if p.Link != "" {
		lines = append(lines, "From:  "+hyperlink(p.Link, p.Link))
	}
	lines = append(lines, "", lipgloss.NewStyle().
		Foreground(theme.MutedColor).
		Italic(true).
		Render("Press Enter, Esc or q to close"))

	modalWidth := max(minModalWidth, min(64, width-4))
	box := theme.ModalStyle.Width(modalWidth - 4).Render(strings.Join(lines, "\n"))

	hPos, vPos := m.position(width, height)
	return lipgloss.Place(width, height, hPos, vPos, box)
}

// position interpolates from the thumbnail's location to the screen centre
func (m *ImageViewModal) position(width, height int) (lipgloss.Position, lipgloss.Position) {
	info := m.params.ThumbnailInfo
	if info == nil || m.frame >= zoomFrames || width <= 0 || height <= 0 {
		return lipgloss.Center, lipgloss.Center
	}

	startX := clamp01(float64(info.PositionX+info.Width/2) / float64(width))
	startY := clamp01(float64(info.PositionY+info.Height/2) / float64(height))
	t := float64(m.frame) / float64(zoomFrames)

	x := startX + (0.5-startX)*t
	y := startY + (0.5-startY)*t
	return lipgloss.Position(x), lipgloss.Position(y)
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

func hyperlink(url, text string) string {
	text = media.SafeURL(ansi.Strip(text))
	if url == "" {
		return theme.LinkStyle.Render(text)
	}
	return ansi.SetHyperlink(media.SafeURL(url)) + theme.LinkStyle.Render(text) + ansi.ResetHyperlink()
}
