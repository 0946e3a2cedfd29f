package ui

import (
	"fmt"
	"strings"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/modal"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.PrimaryColor).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(theme.MutedColor).
			Padding(0, 1)

	SenderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.AccentColor)

	TimelinePaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.MutedColor)

	SidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.MutedColor).
			Padding(0, 1)
)

const minSidebarWidth = 24

func (m Model) sidebarWidth() int {
	return max(minSidebarWidth, m.width/4)
}

// timelineWidth is the viewport width inside the timeline pane border
func (m Model) timelineWidth() int {
	return max(20, m.width-m.sidebarWidth()-2)
}

// refreshTimeline rebuilds the viewport content, e.g. after a preview's
// decision changed
func (m *Model) refreshTimeline() {
	m.viewport.SetContent(m.buildTimelineContent())
}

func (m Model) buildTimelineContent() string {
	width := m.timelineWidth() - 2

	var blocks []string
	for _, e := range m.entries {
		lines := []string{SenderStyle.Render(e.Sender) + " " + e.Body}
		if e.Preview != nil {
			if m.loading {
				lines = append(lines, m.spinner.View())
			} else if v := e.Preview.View(width); v != "" {
				lines = append(lines, v)
			}
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return theme.MutedTextStyle.Render("No messages")
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the current view
func (m Model) View() string {
	// Don't render until we have dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	result := m.renderMain()

	// Apply modal overlays from the modal stack
	if activeModal := m.modalStack.Top(); activeModal != nil {
		result = m.renderModalOverlay(result, activeModal)
	}

	if m.deps.Scan != nil {
		result = m.deps.Scan(result)
	}
	return result
}

// renderModalOverlay overlays a modal on top of the base view
func (m Model) renderModalOverlay(baseView string, activeModal modal.Modal) string {
	return activeModal.Render(m.width, m.height)
}

func (m Model) renderMain() string {
	layout := flexbox.NewHorizontal(m.width, m.height-2)

	var main string
	if m.currentView == ViewEmojiPicker {
		main = m.picker.View()
	} else {
		main = m.viewport.View()
	}

	mainCol := layout.NewColumn().AddCells(
		flexbox.NewCell(3, 1).
			SetStyle(TimelinePaneStyle).
			SetContent(main),
	)
	sideCol := layout.NewColumn().AddCells(
		flexbox.NewCell(1, 1).
			SetStyle(SidebarStyle.Width(m.sidebarWidth() - 4)).
			SetContent(m.buildSidebarContent()),
	)
	layout.AddColumns([]*flexbox.Column{mainCol, sideCol})

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		layout.Render(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := "Link previews"
	if m.currentView == ViewEmojiPicker {
		title = "Emoji"
	}
	return HeaderStyle.Render(title)
}

func (m Model) renderFooter() string {
	shortcuts := "[s] settings  [e] emoji  [p] message sound  [r] ring  [q] quit"
	if m.statusMessage != "" {
		shortcuts += "  " + m.statusMessage
	}
	return FooterStyle.Render(shortcuts)
}

func (m Model) buildSidebarContent() string {
	lines := []string{theme.TitleStyle.Render("Settings")}
	if s := m.deps.Store; s != nil {
		for _, key := range settings.AllKeys {
			lines = append(lines, fmt.Sprintf("%s: %s", key, s.Get(key)))
		}
	}

	lines = append(lines, "", theme.TitleStyle.Render("Reactions"))
	if len(m.picked.reactions) == 0 {
		lines = append(lines, theme.MutedTextStyle.Render("none yet"))
	} else {
		lines = append(lines, strings.Join(m.picked.reactions, " "))
	}
	if m.picked.hovered != "" {
		lines = append(lines, "", theme.MutedTextStyle.Render("hovering "+m.picked.hovered))
	}
	return strings.Join(lines, "\n")
}
