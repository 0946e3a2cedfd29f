package emojipicker

import (
	"log"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
)

const (
	defaultSetExpiry = 10 * time.Minute
	cleanupInterval  = time.Minute
)

// ImageSetCache memoizes loaded image sets by room and event id. A new
// state event gets a new id, so entries never go stale, only cold.
type ImageSetCache struct {
	sets    *cache.Cache
	logger  *log.Logger
	metrics *metrics.Metrics
}

// NewImageSetCache creates a cache; expiry <= 0 uses the default
func NewImageSetCache(expiry time.Duration, logger *log.Logger, m *metrics.Metrics) *ImageSetCache {
	if expiry <= 0 {
		expiry = defaultSetExpiry
	}
	return &ImageSetCache{
		sets:    cache.New(expiry, cleanupInterval),
		logger:  logger,
		metrics: m,
	}
}

func cacheKey(ev StateEvent, room Room) string {
	roomID := ""
	if room != nil {
		roomID = room.ID()
	}
	return roomID + "|" + ev.ID
}

// Load returns the image set for ev, loading it on a miss. Failed loads
// are not cached.
func (c *ImageSetCache) Load(ev StateEvent, room Room) ([]CustomEmoji, error) {
	key := cacheKey(ev, room)
	if v, ok := c.sets.Get(key); ok {
		c.metrics.ObserveEmojiSetLoad("hit")
		return v.([]CustomEmoji), nil
	}

	emojis, err := LoadImageSet(ev, room)
	if err != nil {
		c.metrics.ObserveEmojiSetLoad("error")
		if c.logger != nil {
			c.logger.Printf("Failed to load image set %s: %v", ev.ID, err)
		}
		return nil, err
	}

	c.metrics.ObserveEmojiSetLoad("miss")
	c.sets.SetDefault(key, emojis)
	return emojis, nil
}

// Invalidate drops every cached set for a room
func (c *ImageSetCache) Invalidate(roomID string) {
	prefix := roomID + "|"
	for key := range c.sets.Items() {
		if strings.HasPrefix(key, prefix) {
			c.sets.Delete(key)
		}
	}
}

// Len returns the number of cached sets
func (c *ImageSetCache) Len() int {
	return c.sets.ItemCount()
}
