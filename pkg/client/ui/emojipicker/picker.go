package emojipicker

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

// Custom emoji thumbnails are requested at this size
const (
	customEmojiWidth  = 24
	customEmojiHeight = 24
)

const defaultColumns = 8

var (
	tileStyle = lipgloss.NewStyle().Padding(0, 1)

	selectedTileStyle = theme.SelectedStyle.Padding(0, 1)

	hoveredTileStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(lipgloss.Color("236"))
)

// MediaResolver turns content references into HTTP URLs
type MediaResolver interface {
	Resolve(ref string) (media.Media, error)
}

// Callbacks receive tile interactions. Any of them may be nil.
type Callbacks struct {
	OnClick      func(Emoji)
	OnMouseEnter func(Emoji)
	OnMouseLeave func(Emoji)
}

// Config wires a Picker
type Config struct {
	ID        string
	Columns   int
	Resolver  MediaResolver
	Zones     zones.Zones // defaults to zones.Bubble()
	Callbacks Callbacks
}

// Picker is a grid of emoji tiles
type Picker struct {
	cfg      Config
	emojis   []Emoji
	selected map[string]struct{}
	hovered  int
}

// NewPicker creates an empty picker
func NewPicker(cfg Config) *Picker {
	if cfg.Columns <= 0 {
		cfg.Columns = defaultColumns
	}
	if cfg.Zones == nil {
		cfg.Zones = zones.Bubble()
	}
	return &Picker{
		cfg:      cfg,
		selected: make(map[string]struct{}),
		hovered:  -1,
	}
}

// SetEmojis replaces the tiles. Hover state is reset without callbacks.
func (p *Picker) SetEmojis(emojis []Emoji) {
	p.emojis = emojis
	p.hovered = -1
}

// Emojis returns the current tiles' emoji
func (p *Picker) Emojis() []Emoji {
	return p.emojis
}

// SetSelected marks the given unicode emoji as selected (e.g. reactions
// the user already sent)
func (p *Picker) SetSelected(unicode ...string) {
	p.selected = make(map[string]struct{}, len(unicode))
	for _, u := range unicode {
		p.selected[u] = struct{}{}
	}
}

// IsSelected reports whether e is shown as selected. Custom emoji never are.
func (p *Picker) IsSelected(e Emoji) bool {
	u, ok := e.(UnicodeEmoji)
	if !ok {
		return false
	}
	_, ok = p.selected[u.Unicode]
	return ok
}

// Hovered returns the emoji under the pointer
func (p *Picker) Hovered() (Emoji, bool) {
	if p.hovered < 0 || p.hovered >= len(p.emojis) {
		return nil, false
	}
	return p.emojis[p.hovered], true
}

func (p *Picker) tileZoneID(i int) string {
	return p.cfg.ID + ":emoji:" + strconv.Itoa(i)
}

// ThumbnailURL is the 24x24 thumbnail for a custom emoji, "" if its
// reference cannot be resolved
func (p *Picker) ThumbnailURL(e CustomEmoji) string {
	if p.cfg.Resolver == nil {
		return ""
	}
	m, err := p.cfg.Resolver.Resolve(e.URL)
	if err != nil {
		return ""
	}
	return m.ThumbnailHTTP(customEmojiWidth, customEmojiHeight, media.MethodScale)
}

func (p *Picker) renderTile(i int) string {
	e := p.emojis[i]

	style := tileStyle
	switch {
	case p.IsSelected(e):
		style = selectedTileStyle
	case i == p.hovered:
		style = hoveredTileStyle
	}

	var content string
	switch e := e.(type) {
	case UnicodeEmoji:
		content = e.Unicode
	case CustomEmoji:
		content = ":" + ansi.Strip(e.Label()) + ":"
		if u := p.ThumbnailURL(e); u != "" {
			content = ansi.SetHyperlink(u) + content + ansi.ResetHyperlink()
		}
	}
	return p.cfg.Zones.Mark(p.tileZoneID(i), style.Render(content))
}

// View renders the tile grid
func (p *Picker) View() string {
	if len(p.emojis) == 0 {
		return theme.MutedTextStyle.Render("No emoji")
	}

	var rows []string
	for start := 0; start < len(p.emojis); start += p.cfg.Columns {
		end := min(start+p.cfg.Columns, len(p.emojis))
		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, p.renderTile(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// tileAt returns the index of the tile under (x, y), or -1
func (p *Picker) tileAt(x, y int) int {
	for i := range p.emojis {
		if r, ok := p.cfg.Zones.Bounds(p.tileZoneID(i)); ok && r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Update routes mouse input to tiles. It returns true when the event was
// over a tile.
func (p *Picker) Update(msg tea.Msg) bool {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return false
	}

	idx := p.tileAt(mouse.X, mouse.Y)
	p.setHovered(idx)
	if idx < 0 {
		return false
	}

	if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft {
		if cb := p.cfg.Callbacks.OnClick; cb != nil {
			cb(p.emojis[idx])
		}
	}
	return true
}

func (p *Picker) setHovered(idx int) {
	if idx == p.hovered {
		return
	}
	if prev, ok := p.Hovered(); ok && p.cfg.Callbacks.OnMouseLeave != nil {
		p.cfg.Callbacks.OnMouseLeave(prev)
	}
	p.hovered = idx
	if next, ok := p.Hovered(); ok && p.cfg.Callbacks.OnMouseEnter != nil {
		p.cfg.Callbacks.OnMouseEnter(next)
	}
}
