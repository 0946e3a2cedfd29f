package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/sound"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/inlinespinner"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/linkpreview"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/modal"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Animated modals (lightbox zoom) see every message
	var modalCmd tea.Cmd
	if top, ok := m.modalStack.Top().(modal.UpdatableModal); ok {
		modalCmd = top.Update(msg)
	}

	model, cmd := m.update(msg)
	return model, tea.Batch(modalCmd, cmd)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// header(1) + footer(1) + spacing(1)
		if m.viewport.Width == 0 || m.viewport.Height == 0 {
			m.viewport = viewport.New(m.timelineWidth(), msg.Height-3)
		} else {
			m.viewport.Width = m.timelineWidth()
			m.viewport.Height = msg.Height - 3
		}
		m.refreshTimeline()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshTimeline()
		return m, cmd

	case previewsLoadedMsg:
		m.loading = false
		m.mountPreviews()
		m.refreshTimeline()
		return m, nil

	case linkpreview.RefreshMsg:
		if m.logger != nil {
			m.logger.Printf("DEBUG: Refreshing preview %s", msg.ID)
		}
		m.refreshTimeline()
		return m, nil

	case settingsChangedMsg:
		if msg.key == settings.YouTubeEmbedPlayer {
			embed := m.deps.Store.Bool(settings.YouTubeEmbedPlayer)
			for _, e := range m.entries {
				if e.Preview != nil {
					e.Preview.SetEmbedPlayer(embed)
				}
			}
		}
		m.refreshTimeline()
		return m, nil

	case modal.PushModalMsg:
		m.modalStack.Push(msg.Modal)
		return m, msg.Cmd
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	// Special case: ctrl+c always quits immediately
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// Check if active modal handles this key
	if activeModal := m.modalStack.Top(); activeModal != nil {
		handled, newModal, cmd := activeModal.HandleKey(msg)

		if newModal == nil {
			m.modalStack.Pop()
			if activeModal.Type() == modal.ModalSettings {
				m.onSettingsClosed()
			}
		} else if newModal.Type() != activeModal.Type() {
			m.modalStack.Replace(newModal)
		}

		if handled {
			return m, cmd
		}
		if activeModal.IsBlockingInput() {
			return m, nil
		}
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "s":
		m.modalStack.Push(modal.NewSettingsModal(m.deps.Store, m.deps.SoundPacks))
		return m, nil

	case "e":
		if m.currentView == ViewEmojiPicker {
			m.currentView = ViewTimeline
		} else {
			m.currentView = ViewEmojiPicker
		}
		return m, nil

	case "esc":
		m.currentView = ViewTimeline
		return m, nil

	case "p":
		m.playSound(sound.Message)
		return m, nil

	case "r":
		m.playSound(sound.Ring)
		return m, nil
	}

	if m.currentView == ViewTimeline {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// onSettingsClosed rebuilds what depends on settings read only at
// construction
func (m *Model) onSettingsClosed() {
	if m.loading {
		m.spinner = inlinespinner.New(m.deps.Store, inlinespinner.WithChildren("Fetching previews"))
	}
	m.refreshTimeline()
}

func (m *Model) playSound(name sound.Name) {
	if m.deps.Sound == nil {
		return
	}
	if err := m.deps.Sound.Play(name); err != nil {
		if m.logger != nil {
			m.logger.Printf("Failed to play sound: %v", err)
		}
		m.modalStack.Push(modal.NewErrorModal("Sound unavailable", err.Error(), nil))
		return
	}
	m.statusMessage = "Played " + string(name) + " (" + m.deps.Sound.Pack() + ")"
}

// handleMouse offers the event to the widgets first. Anything they leave
// unhandled goes to the timeline (wheel scrolling).
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if top := m.modalStack.Top(); top != nil && top.IsBlockingInput() {
		return m, nil
	}

	if m.currentView == ViewEmojiPicker {
		m.picker.Update(msg)
		return m, nil
	}

	if !m.loading {
		for _, e := range m.entries {
			if e.Preview != nil && e.Preview.Update(msg) {
				return m, m.host.Flush()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
