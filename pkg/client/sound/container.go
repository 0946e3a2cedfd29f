package sound

import (
	"fmt"
	"log"
	"sync"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
)

// Settings is the part of the settings store the container uses
type Settings interface {
	Get(key settings.Key) string
	Watch(key settings.Key, fn settings.ChangeFunc) settings.WatchID
	Unwatch(id settings.WatchID)
}

// Container holds the five client sounds for the current sound pack and
// repoints them when the soundPack setting changes
type Container struct {
	mu       sync.RWMutex
	pack     string
	audios   map[Name]Audio
	mediaDir string

	settings  Settings
	player    Player
	watchID   settings.WatchID
	closeOnce sync.Once

	logger  *log.Logger
	metrics *metrics.Metrics
}

// NewContainer reads the current pack, loads its sounds and starts
// watching the setting. Call Close to stop watching.
func NewContainer(s Settings, player Player, mediaDir string, logger *log.Logger, m *metrics.Metrics) *Container {
	c := &Container{
		mediaDir: mediaDir,
		settings: s,
		player:   player,
		logger:   logger,
		metrics:  m,
	}
	c.setPack(s.Get(settings.SoundPack))
	c.watchID = s.Watch(settings.SoundPack, func(_ settings.Key, _, newValue string) {
		c.setPack(newValue)
	})
	return c
}

func (c *Container) setPack(pack string) {
	audios := buildAudios(c.mediaDir, pack)

	c.mu.Lock()
	c.pack = pack
	c.audios = audios
	c.mu.Unlock()

	// the player keeps what it loaded before, so every sound is reloaded
	// after its sources change
	c.reload(audios)
}

func (c *Container) reload(audios map[Name]Audio) {
	if c.player == nil {
		return
	}
	for _, n := range Names {
		if err := c.player.Load(audios[n]); err != nil && c.logger != nil {
			c.logger.Printf("DEBUG: %v", err)
		}
	}
}

// Pack returns the active sound pack
func (c *Container) Pack() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pack
}

// Audio returns the current sources for a sound
func (c *Container) Audio(name Name) (Audio, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.audios[name]
	return a, ok
}

// Play plays a sound from the active pack
func (c *Container) Play(name Name) error {
	a, ok := c.Audio(name)
	if !ok {
		return fmt.Errorf("failed to play sound: unknown sound %q", name)
	}
	if c.player == nil {
		return nil
	}

	c.metrics.ObserveSoundPlay(c.Pack(), string(name))
	return c.player.Play(a)
}

// Close stops watching the soundPack setting. Safe to call more than once.
func (c *Container) Close() {
	c.closeOnce.Do(func() {
		c.settings.Unwatch(c.watchID)
	})
}
