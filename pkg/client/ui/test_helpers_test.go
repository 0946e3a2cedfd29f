package ui

import (
	"io"
	"log"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/superchat-widgets/pkg/client/media"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/sound"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/linkpreview"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

const testFixtures = `{
	"room_id": "!demo:example.org",
	"join_rule": "public",
	"messages": [
		{
			"sender": "alice",
			"body": "look at this cat",
			"link": "https://example.com/cat",
			"preview": {
				"og:title": "A cat &amp; a box",
				"og:site_name": "Example",
				"og:image": "mxc://example.org/cat",
				"og:image:width": 800,
				"og:image:height": 600
			}
		},
		{
			"sender": "bob",
			"body": "song of the day",
			"link": "https://youtu.be/WrBGZ-L_u7Y?t=12",
			"preview": {"og:title": "Song"}
		},
		{"sender": "carol", "body": "no link here"}
	],
	"image_sets": [
		{"event_id": "$set", "type": "im.ponies.room_emotes", "content": {"images": {"blob": {"url": "mxc://example.org/blob"}}}}
	]
}`

type nullPlayer struct {
	playErr error
}

func (nullPlayer) Load(sound.Audio) error   { return nil }
func (p nullPlayer) Play(sound.Audio) error { return p.playErr }

// testEnv collects what a test model was built with
type testEnv struct {
	store *settings.Store
	zones *zones.Mock

	mu       sync.Mutex
	notified []tea.Msg
}

func (e *testEnv) notifications() []tea.Msg {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]tea.Msg(nil), e.notified...)
}

// NewTestModel creates a Model over mock dependencies
func NewTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()
	return newTestModelWithPlayer(t, nullPlayer{})
}

func newTestModelWithPlayer(t *testing.T, player sound.Player) (Model, *testEnv) {
	t.Helper()
	logger := log.New(io.Discard, "", 0) // Discard logs in tests

	env := &testEnv{
		store: settings.NewStore(settings.NewMockState(), settings.DefaultTOMLConfig().Defaults(), logger, nil),
		zones: zones.NewMock(nil),
	}
	resolver := media.NewResolver("https://hs.example")

	fixtures, err := LoadFixtures([]byte(testFixtures))
	if err != nil {
		t.Fatalf("LoadFixtures() error = %v", err)
	}

	m := NewModel(Deps{
		Store:      env.store,
		Renderer:   linkpreview.NewRenderer(resolver, nil, ""),
		Resolver:   resolver,
		Sound:      sound.NewContainer(env.store, player, "media", logger, nil),
		SoundPacks: []string{"default", "classic"},
		Zones:      env.zones,
		Logger:     logger,
		Notify: func(msg tea.Msg) {
			env.mu.Lock()
			defer env.mu.Unlock()
			env.notified = append(env.notified, msg)
		},
	}, fixtures)
	return m, env
}

// SetupTestModelWithDimensions creates a loaded test model with window dimensions set
func SetupTestModelWithDimensions(t *testing.T, width, height int) (Model, *testEnv) {
	t.Helper()
	m, env := NewTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: width, Height: height})
	m = send(m, previewsLoadedMsg{})
	return m, env
}

func send(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func leftClick(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}
