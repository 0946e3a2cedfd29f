package modal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/imagesize"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
)

// SettingsStore is what the settings modal reads and writes
type SettingsStore interface {
	Get(key settings.Key) string
	Set(key settings.Key, value string) error
}

type settingRow struct {
	key   settings.Key
	label string
	next  func(current string) string
}

func toggle(current string) string {
	return settings.FormatBool(!settings.ParseBool(current))
}

// SettingsModal lets the user flip the widget settings
type SettingsModal struct {
	store     SettingsStore
	rows      []settingRow
	cursor    int
	lastError string
}

// NewSettingsModal creates a settings editor. soundPacks is the cycle order
// for the sound pack row.
func NewSettingsModal(store SettingsStore, soundPacks []string) *SettingsModal {
	rows := []settingRow{
		{key: settings.ShowImages, label: "Show images in previews", next: toggle},
		{key: settings.ImageSize, label: "Inline media size", next: func(c string) string {
			return string(imagesize.Parse(c).Next())
		}},
		{key: settings.YouTubeEmbedPlayer, label: "Embed YouTube players", next: toggle},
		{key: settings.URLTooltips, label: "Show link destinations", next: toggle},
		{key: settings.NewSpinner, label: "Logo spinner", next: toggle},
	}
	if len(soundPacks) > 0 {
		rows = append(rows, settingRow{key: settings.SoundPack, label: "Sound pack", next: func(c string) string {
			for i, p := range soundPacks {
				if p == c {
					return soundPacks[(i+1)%len(soundPacks)]
				}
			}
			return soundPacks[0]
		}})
	}
	return &SettingsModal{store: store, rows: rows}
}

// Type returns the modal type
func (m *SettingsModal) Type() ModalType {
	return ModalSettings
}

// HandleKey moves the cursor and cycles the selected setting
func (m *SettingsModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", " ":
		row := m.rows[m.cursor]
		if err := m.store.Set(row.key, row.next(m.store.Get(row.key))); err != nil {
			m.lastError = err.Error()
		} else {
			m.lastError = ""
		}
	case "esc", "q":
		return true, nil, nil
	}
	return true, m, nil
}

// IsBlockingInput returns whether this modal blocks input to the main view
func (m *SettingsModal) IsBlockingInput() bool {
	return true
}

// Render returns the modal content
func (m *SettingsModal) Render(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render("Settings"))
	b.WriteString("\n\n")

	for i, row := range m.rows {
		line := fmt.Sprintf("%-26s %s", row.label, m.store.Get(row.key))
		if i == m.cursor {
			line = theme.SelectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	if m.lastError != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.ErrorColor).Render(m.lastError) + "\n")
	}
	b.WriteString("\n" + theme.MutedTextStyle.Render("↑↓ select · Enter change · Esc close"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.ModalStyle.Render(b.String()))
}
