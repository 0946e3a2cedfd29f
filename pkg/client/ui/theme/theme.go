// Package theme holds the shared lipgloss palette and styles
package theme

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor = lipgloss.Color("#7D56F4")
	AccentColor  = lipgloss.Color("#04B575")
	WarningColor = lipgloss.Color("#FFAA00")
	ErrorColor   = lipgloss.Color("#FF5555")
	MutedColor   = lipgloss.Color("240")
	TextColor    = lipgloss.Color("252")
	LinkColor    = lipgloss.Color("39")
)

var (
	MutedTextStyle = lipgloss.NewStyle().Foreground(MutedColor)

	LinkStyle = lipgloss.NewStyle().
			Foreground(LinkColor).
			Underline(true)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor)

	// CardStyle frames a link preview
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(MutedColor).
			PaddingLeft(1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Foreground(PrimaryColor)
)
