package inlinespinner

import (
	"io"
	"log"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeolun/superchat-widgets/pkg/client/settings"
)

func newTestStore() *settings.Store {
	return settings.NewStore(settings.NewMockState(), settings.DefaultTOMLConfig().Defaults(), log.New(io.Discard, "", 0), nil)
}

func TestDefaults(t *testing.T) {
	m := New(nil)

	assert.Equal(t, DefaultWidth, m.W)
	assert.Equal(t, DefaultHeight, m.H)
	assert.False(t, m.NewStyle())
	assert.Equal(t, "Loading...", m.Label())
}

func TestWithSize(t *testing.T) {
	m := New(nil, WithSize(32, 0))
	assert.Equal(t, 32, m.W)
	assert.Equal(t, DefaultHeight, m.H)

	assert.Equal(t, 4, lipgloss.Width(m.View()))
}

func TestStyleFollowsSetting(t *testing.T) {
	store := newTestStore()

	classic := New(store)
	assert.False(t, classic.NewStyle())
	assert.Equal(t, ansi.Strip(spinner.Dot.Frames[0]), ansi.Strip(classic.spinner.View()))

	require.NoError(t, store.Set(settings.NewSpinner, "true"))
	logo := New(store)
	assert.True(t, logo.NewStyle())
	assert.Equal(t, ansi.Strip(spinner.Points.Frames[0]), ansi.Strip(logo.spinner.View()))
}

func TestChildren(t *testing.T) {
	m := New(nil, WithChildren("fetching preview"))
	assert.Contains(t, ansi.Strip(m.View()), "fetching preview")

	store := newTestStore()
	require.NoError(t, store.Set(settings.NewSpinner, "true"))
	logo := New(store, WithChildren("fetching preview"))
	assert.NotContains(t, ansi.Strip(logo.View()), "fetching preview", "logo spinner has no children")
}

func TestAnimationTicks(t *testing.T) {
	m := New(nil)

	cmd := m.Init()
	require.NotNil(t, cmd)

	next, cmd := m.Update(cmd())
	assert.NotNil(t, cmd)
	assert.NotEqual(t, ansi.Strip(m.View()), ansi.Strip(next.View()))
}
