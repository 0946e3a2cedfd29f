package ui

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
	"github.com/aeolun/superchat-widgets/pkg/client/platform"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/sound"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/emojipicker"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/inlinespinner"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/linkpreview"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/modal"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

// ViewState represents the current view
type ViewState int

const (
	ViewTimeline ViewState = iota
	ViewEmojiPicker
)

// previewFetchDelay simulates the time a homeserver takes to return previews
const previewFetchDelay = 600 * time.Millisecond

// Fixture is one sample message. Preview is the raw preview response the
// homeserver would have returned for Link.
type Fixture struct {
	Sender  string          `json:"sender"`
	Body    string          `json:"body"`
	Link    string          `json:"link"`
	Preview json.RawMessage `json:"preview"`
}

// FixtureFile is the demo's sample data
type FixtureFile struct {
	Messages  []Fixture                `json:"messages"`
	ImageSets []emojipicker.StateEvent `json:"image_sets"`
	RoomID    string                   `json:"room_id"`
	JoinRule  emojipicker.JoinRule     `json:"join_rule"`
}

// LoadFixtures decodes a fixture file
func LoadFixtures(data []byte) (FixtureFile, error) {
	var f FixtureFile
	if err := json.Unmarshal(data, &f); err != nil {
		return FixtureFile{}, fmt.Errorf("failed to decode fixtures: %w", err)
	}
	return f, nil
}

// TimelineEntry is a message and its preview widget, if it has a link
type TimelineEntry struct {
	Sender  string
	Body    string
	Preview *linkpreview.Widget
}

// Deps are the collaborators the demo model is built from
type Deps struct {
	Store      *settings.Store
	Renderer   *linkpreview.Renderer
	Resolver   emojipicker.MediaResolver
	Sound      *sound.Container
	SoundPacks []string
	Zones      zones.Zones
	Metrics    *metrics.Metrics
	Logger     *log.Logger

	// Notify forwards messages from other goroutines into the program.
	// It must not block.
	Notify func(tea.Msg)

	// Scan post-processes the final view (zone.Scan); nil leaves it as is
	Scan func(string) string
}

// demoRoom is the room the fixture image sets belong to
type demoRoom struct {
	id   string
	rule emojipicker.JoinRule
}

func (r demoRoom) ID() string                     { return r.id }
func (r demoRoom) JoinRule() emojipicker.JoinRule { return r.rule }

// pickerState is shared with the picker callbacks, which run inside Update
type pickerState struct {
	reactions []string
	hovered   string
}

// Model is the preview demo's main model
type Model struct {
	// Dependencies
	deps   Deps
	logger *log.Logger

	// View state
	currentView ViewState
	width       int
	height      int
	viewport    viewport.Model

	// Timeline
	entries       []TimelineEntry
	loading       bool
	spinner       inlinespinner.Model
	settingsWatch []settings.WatchID

	// Emoji picker
	picker *emojipicker.Picker
	picked *pickerState

	// Modals
	modalStack modal.ModalStack
	host       *modal.QueueHost

	statusMessage string
}

// NewModel builds the demo model from fixtures. Previews stay hidden
// behind a spinner until the simulated fetch completes.
func NewModel(deps Deps, fixtures FixtureFile) Model {
	if deps.Zones == nil {
		deps.Zones = zones.Bubble()
	}
	if deps.Notify == nil {
		deps.Notify = func(tea.Msg) {}
	}

	m := Model{
		deps:        deps,
		logger:      deps.Logger,
		currentView: ViewTimeline,
		loading:     true,
		spinner:     inlinespinner.New(deps.Store, inlinespinner.WithChildren("Fetching previews")),
		host:        modal.NewQueueHost(),
		picked:      &pickerState{},
	}

	for i, f := range fixtures.Messages {
		entry := TimelineEntry{Sender: f.Sender, Body: f.Body}
		if f.Link != "" {
			entry.Preview = m.newPreviewWidget(i, f)
		}
		m.entries = append(m.entries, entry)
	}

	m.picker = emojipicker.NewPicker(emojipicker.Config{
		ID:       "emoji",
		Resolver: deps.Resolver,
		Zones:    deps.Zones,
		Callbacks: emojipicker.Callbacks{
			OnClick: func(e emojipicker.Emoji) {
				m.picked.reactions = append(m.picked.reactions, e.Label())
			},
			OnMouseEnter: func(e emojipicker.Emoji) {
				m.picked.hovered = e.Label()
			},
			OnMouseLeave: func(emojipicker.Emoji) {
				m.picked.hovered = ""
			},
		},
	})
	m.picker.SetEmojis(m.loadEmojis(fixtures))

	return m
}

func (m *Model) newPreviewWidget(i int, f Fixture) *linkpreview.Widget {
	var preview *linkpreview.Metadata
	if len(f.Preview) > 0 {
		p, err := linkpreview.DecodeMetadata(f.Preview)
		if err != nil {
			if m.logger != nil {
				m.logger.Printf("Failed to decode preview for %s: %v", f.Link, err)
			}
		} else {
			preview = p
		}
	}

	embed := true
	if m.deps.Store != nil {
		embed = m.deps.Store.Bool(settings.YouTubeEmbedPlayer)
	}

	return linkpreview.New(linkpreview.Config{
		ID:          "preview-" + strconv.Itoa(i),
		Link:        f.Link,
		Preview:     preview,
		Renderer:    m.deps.Renderer,
		Settings:    m.deps.Store,
		Platform:    platform.NewTerminal(m.deps.Store),
		Host:        m.host,
		Zones:       m.deps.Zones,
		EmbedPlayer: embed,
		Notify:      m.deps.Notify,
		Logger:      m.logger,
		Metrics:     m.deps.Metrics,
	})
}

var defaultEmojis = []emojipicker.Emoji{
	emojipicker.UnicodeEmoji{Unicode: "👍", Annotation: "thumbs up", Shortcodes: []string{"+1"}},
	emojipicker.UnicodeEmoji{Unicode: "❤️", Annotation: "red heart", Shortcodes: []string{"heart"}},
	emojipicker.UnicodeEmoji{Unicode: "😂", Annotation: "face with tears of joy", Shortcodes: []string{"joy"}},
	emojipicker.UnicodeEmoji{Unicode: "🎉", Annotation: "party popper", Shortcodes: []string{"tada"}},
	emojipicker.UnicodeEmoji{Unicode: "👀", Annotation: "eyes", Shortcodes: []string{"eyes"}},
}

func (m *Model) loadEmojis(fixtures FixtureFile) []emojipicker.Emoji {
	emojis := append([]emojipicker.Emoji(nil), defaultEmojis...)

	room := demoRoom{id: fixtures.RoomID, rule: fixtures.JoinRule}
	cache := emojipicker.NewImageSetCache(0, m.logger, m.deps.Metrics)
	for _, ev := range fixtures.ImageSets {
		custom, err := cache.Load(ev, room)
		if err != nil {
			continue
		}
		for _, e := range custom {
			emojis = append(emojis, e)
		}
	}
	return emojis
}

// previewsLoadedMsg ends the simulated preview fetch
type previewsLoadedMsg struct{}

// settingsChangedMsg re-renders the timeline after a display setting changed
type settingsChangedMsg struct {
	key settings.Key
}

// Init starts the spinner and the simulated preview fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Init(),
		tea.Tick(previewFetchDelay, func(time.Time) tea.Msg {
			return previewsLoadedMsg{}
		}),
	)
}

// mountPreviews attaches every preview widget and watches the display
// settings the widgets do not watch themselves
func (m *Model) mountPreviews() {
	for _, e := range m.entries {
		if e.Preview != nil {
			e.Preview.Mount()
		}
	}

	if m.deps.Store == nil || len(m.settingsWatch) > 0 {
		return
	}
	notify := m.deps.Notify
	for _, key := range []settings.Key{settings.ShowImages, settings.YouTubeEmbedPlayer, settings.URLTooltips} {
		m.settingsWatch = append(m.settingsWatch, m.deps.Store.Watch(key, func(key settings.Key, _, _ string) {
			notify(settingsChangedMsg{key: key})
		}))
	}
}

// Close unmounts every widget and releases subscriptions
func (m *Model) Close() {
	for _, e := range m.entries {
		if e.Preview != nil {
			e.Preview.Unmount()
		}
	}
	if m.deps.Store != nil {
		for _, id := range m.settingsWatch {
			m.deps.Store.Unwatch(id)
		}
	}
	m.settingsWatch = nil
	if m.deps.Sound != nil {
		m.deps.Sound.Close()
	}
}

// Reactions returns the emoji picked so far
func (m Model) Reactions() []string {
	return append([]string(nil), m.picked.reactions...)
}
