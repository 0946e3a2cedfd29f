// Package inlinespinner is a small loading indicator that sits inline
// with text
package inlinespinner

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/theme"
)

// Default size in logical pixels
const (
	DefaultWidth  = 16
	DefaultHeight = 16
)

// AccessibleLabel is announced in place of the animation
const AccessibleLabel = "Loading..."

// SettingsGetter is the part of the settings store the spinner reads
type SettingsGetter interface {
	Get(key settings.Key) string
}

// Model is an inline spinner
type Model struct {
	W, H     int
	Children string
	newStyle bool
	spinner  spinner.Model
}

// Option customises a spinner
type Option func(*Model)

// WithSize sets the size; non-positive values keep the default
func WithSize(w, h int) Option {
	return func(m *Model) {
		if w > 0 {
			m.W = w
		}
		if h > 0 {
			m.H = h
		}
	}
}

// WithChildren sets content shown next to the classic spinner
func WithChildren(s string) Option {
	return func(m *Model) {
		m.Children = s
	}
}

// New creates a spinner. The feature_new_spinner setting picks the logo
// style over the classic dot.
func New(s SettingsGetter, opts ...Option) Model {
	m := Model{W: DefaultWidth, H: DefaultHeight}
	for _, opt := range opts {
		opt(&m)
	}
	if s != nil {
		m.newStyle = settings.ParseBool(s.Get(settings.NewSpinner))
	}

	sp := spinner.Dot
	if m.newStyle {
		sp = spinner.Points
	}
	m.spinner = spinner.New(
		spinner.WithSpinner(sp),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.PrimaryColor)),
	)
	return m
}

// NewStyle reports whether the logo spinner is in use
func (m Model) NewStyle() bool {
	return m.newStyle
}

// Init starts the animation
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update advances the animation
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the current frame. Cells are sized from W and H at roughly
// 8x16 pixels per cell.
func (m Model) View() string {
	icon := lipgloss.NewStyle().
		Width(max(1, m.W/8)).
		Height(max(1, m.H/16)).
		Render(m.spinner.View())

	if m.newStyle || m.Children == "" {
		return icon
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, icon, " ", m.Children)
}

// Label returns the accessible label
func (m Model) Label() string {
	return AccessibleLabel
}
