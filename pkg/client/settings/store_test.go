package settings

import (
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *MockState) {
	t.Helper()
	state := NewMockState()
	logger := log.New(io.Discard, "", 0)
	return NewStore(state, DefaultTOMLConfig().Defaults(), logger, nil), state
}

func TestStoreDefaults(t *testing.T) {
	s, _ := newTestStore(t)

	assert.True(t, s.Bool(ShowImages))
	assert.Equal(t, "normal", s.Get(ImageSize))
	assert.Equal(t, "default", s.Get(SoundPack))
	assert.False(t, s.Bool(URLTooltips))
	assert.Equal(t, "", s.Get(Key("unknown")))
}

func TestStoreSetOverridesDefault(t *testing.T) {
	s, state := newTestStore(t)

	require.NoError(t, s.Set(ImageSize, "large"))
	assert.Equal(t, "large", s.Get(ImageSize))
	assert.Equal(t, "large", state.GetAllConfig()[string(ImageSize)])

	// clearing the override falls back to the default
	require.NoError(t, s.Set(ImageSize, ""))
	assert.Equal(t, "normal", s.Get(ImageSize))
}

func TestStoreWatchNotifiesOnChange(t *testing.T) {
	s, _ := newTestStore(t)

	var got []string
	id := s.Watch(ImageSize, func(key Key, oldValue, newValue string) {
		got = append(got, string(key)+":"+oldValue+"->"+newValue)
	})
	s.Watch(SoundPack, func(Key, string, string) {
		t.Error("watcher for another key must not fire")
	})

	require.NoError(t, s.Set(ImageSize, "large"))
	require.NoError(t, s.Set(ImageSize, "large")) // unchanged, no notification
	s.Unwatch(id)
	require.NoError(t, s.Set(ImageSize, "normal"))

	assert.Equal(t, []string{"Images.size:normal->large"}, got)
}

func TestStoreUnwatchIsIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	id := s.Watch(ShowImages, func(Key, string, string) {})
	assert.Equal(t, 1, s.WatcherCount())

	s.Unwatch(id)
	s.Unwatch(id)
	s.Unwatch(WatchID(999))
	assert.Equal(t, 0, s.WatcherCount())
}

func TestStoreSetBackendError(t *testing.T) {
	s, state := newTestStore(t)
	state.SetSetConfigError(errors.New("disk full"))

	fired := false
	s.Watch(ShowImages, func(Key, string, string) { fired = true })

	err := s.Set(ShowImages, "false")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.False(t, fired)
	assert.True(t, s.Bool(ShowImages))
}

func TestStoreGetBackendErrorFallsBackToDefault(t *testing.T) {
	s, state := newTestStore(t)
	require.NoError(t, s.Set(ShowImages, "false"))

	state.SetGetConfigError(errors.New("locked"))
	assert.True(t, s.Bool(ShowImages))
}

func TestStoreReloadNotifiesChangedKeys(t *testing.T) {
	s, _ := newTestStore(t)

	changed := map[Key]string{}
	for _, k := range AllKeys {
		s.Watch(k, func(key Key, _, newValue string) { changed[key] = newValue })
	}

	// an override shadows the new default, so that key does not move
	require.NoError(t, s.Set(SoundPack, "retro"))
	delete(changed, SoundPack)

	cfg := DefaultTOMLConfig()
	cfg.Preview.ImageSize = "large"
	cfg.Preview.ShowImages = false
	cfg.Sound.SoundPack = "classic"
	s.Reload(cfg.Defaults())

	assert.Equal(t, map[Key]string{
		ImageSize:  "large",
		ShowImages: "false",
	}, changed)
	assert.Equal(t, "retro", s.Get(SoundPack))
}

func TestParseBool(t *testing.T) {
	assert.True(t, ParseBool("true"))
	assert.True(t, ParseBool(" 1 "))
	assert.False(t, ParseBool("false"))
	assert.False(t, ParseBool(""))
	assert.False(t, ParseBool("yes please"))
}
