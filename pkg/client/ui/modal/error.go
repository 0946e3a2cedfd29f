package modal

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
)

// ErrorModal displays an error message that must be acknowledged
type ErrorModal struct {
	title   string
	message string
	onClose func() tea.Cmd
}

// NewErrorModal creates a new error modal
func NewErrorModal(title, message string, onClose func() tea.Cmd) *ErrorModal {
	return &ErrorModal{
		title:   title,
		message: message,
		onClose: onClose,
	}
}

// Type returns the modal type
func (m *ErrorModal) Type() ModalType {
	return ModalError
}

// HandleKey processes keyboard input
func (m *ErrorModal) HandleKey(msg tea.KeyMsg) (bool, Modal, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		var cmd tea.Cmd
		if m.onClose != nil {
			cmd = m.onClose()
		}
		return true, nil, cmd
	}
	return true, m, nil
}

// Render returns the modal content
func (m *ErrorModal) Render(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ErrorColor).
		MarginBottom(1).
		Align(lipgloss.Center)

	messageStyle := lipgloss.NewStyle().
		Foreground(theme.TextColor).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(theme.MutedColor).
		Italic(true)

	content := titleStyle.Render(m.title) + "\n\n" +
		messageStyle.Render(m.message) + "\n\n" +
		hintStyle.Render("Press Enter or Esc to dismiss")

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ErrorColor).
		Padding(1, 2)

	modalWidth := 50
	if width < modalWidth+4 {
		modalWidth = width - 4
	}

	box := borderStyle.Width(modalWidth - 4).Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// IsBlockingInput returns whether this modal blocks input to the main view
func (m *ErrorModal) IsBlockingInput() bool {
	return true
}
