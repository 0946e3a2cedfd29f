package sound

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
)

type recordingPlayer struct {
	mu     sync.Mutex
	loads  []Audio
	played []Audio
}

func (p *recordingPlayer) Load(a Audio) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loads = append(p.loads, a)
	return nil
}

func (p *recordingPlayer) Play(a Audio) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, a)
	return nil
}

func newTestStore() *settings.Store {
	return settings.NewStore(settings.NewMockState(), settings.DefaultTOMLConfig().Defaults(), log.New(io.Discard, "", 0), nil)
}

func TestSources(t *testing.T) {
	assert.Equal(t, []Source{
		{Path: filepath.Join("media", "classic", "ring.ogg"), MIMEType: "audio/ogg"},
		{Path: filepath.Join("media", "classic", "ring.mp3"), MIMEType: "audio/mpeg"},
	}, Sources("media", "classic", Ring))
}

func TestContainerInitialPack(t *testing.T) {
	player := &recordingPlayer{}
	c := NewContainer(newTestStore(), player, "media", log.New(io.Discard, "", 0), nil)
	defer c.Close()

	assert.Equal(t, "default", c.Pack())
	assert.Len(t, player.loads, len(Names))

	for _, n := range Names {
		a, ok := c.Audio(n)
		require.True(t, ok, n)
		assert.Equal(t, filepath.Join("media", "default", string(n)+".ogg"), a.Sources[0].Path)
		assert.Equal(t, n == Ring || n == Ringback, a.Loop, n)
	}
}

func TestContainerFollowsSoundPackSetting(t *testing.T) {
	store := newTestStore()
	player := &recordingPlayer{}
	c := NewContainer(store, player, "media", log.New(io.Discard, "", 0), nil)

	require.NoError(t, store.Set(settings.SoundPack, "classic"))

	assert.Equal(t, "classic", c.Pack())
	a, _ := c.Audio(Busy)
	assert.Equal(t, filepath.Join("media", "classic", "busy.mp3"), a.Sources[1].Path)

	// every sound is reloaded after the swap
	require.Len(t, player.loads, 2*len(Names))
	for i, n := range Names {
		assert.Equal(t, n, player.loads[len(Names)+i].Name)
	}

	c.Close()
	c.Close()
	assert.Equal(t, 0, store.WatcherCount())

	require.NoError(t, store.Set(settings.SoundPack, "retro"))
	assert.Equal(t, "classic", c.Pack(), "closed container ignores changes")
}

func TestContainerPlay(t *testing.T) {
	m := metrics.New()
	player := &recordingPlayer{}
	c := NewContainer(newTestStore(), player, "media", nil, m)
	defer c.Close()

	require.NoError(t, c.Play(Message))
	require.Len(t, player.played, 1)
	assert.Equal(t, Message, player.played[0].Name)

	assert.Error(t, c.Play(Name("trumpet")))
}

func TestBeepPlayer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "default"), 0o755))
	mp3 := filepath.Join(dir, "default", "message.mp3")
	require.NoError(t, os.WriteFile(mp3, []byte("fake"), 0o644))

	p := NewBeepPlayer(log.New(io.Discard, "", 0))
	beeps := 0
	p.beep = func(float64, int) error {
		beeps++
		return nil
	}

	audios := buildAudios(dir, "default")

	// ogg is missing so the mp3 is chosen
	require.NoError(t, p.Load(audios[Message]))
	path, ok := p.Resolved(Message)
	require.True(t, ok)
	assert.Equal(t, mp3, path)

	err := p.Load(audios[Ring])
	assert.ErrorIs(t, err, ErrNoSource)

	require.NoError(t, p.Play(audios[Message]))
	require.NoError(t, p.Play(audios[Ring]))
	assert.Equal(t, 2, beeps)

	p.beep = func(float64, int) error { return errors.New("no speaker") }
	assert.Error(t, p.Play(audios[Message]))
}
