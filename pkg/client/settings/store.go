// Package settings is the client's settings store: defaults come from the
// TOML config file, per-user overrides live in the client state database,
// and widgets watch individual keys for changes.
package settings

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
)

// WatchID identifies a registered watcher
type WatchID uint64

// ChangeFunc is called after the effective value of a watched key changed
type ChangeFunc func(key Key, oldValue, newValue string)

type watcher struct {
	key Key
	fn  ChangeFunc
}

// Store resolves settings and notifies watchers when they change.
// Safe for concurrent use; watchers are called without the lock held.
type Store struct {
	mu       sync.RWMutex
	backend  Backend
	defaults map[Key]string
	watchers map[WatchID]watcher
	nextID   WatchID
	logger   *log.Logger
	metrics  *metrics.Metrics
}

// NewStore creates a store over backend with the given defaults
func NewStore(backend Backend, defaults map[Key]string, logger *log.Logger, m *metrics.Metrics) *Store {
	d := make(map[Key]string, len(defaults))
	for k, v := range defaults {
		d[k] = v
	}
	return &Store{
		backend:  backend,
		defaults: d,
		watchers: make(map[WatchID]watcher),
		logger:   logger,
		metrics:  m,
	}
}

// Get returns the effective value for key: the stored override if any,
// otherwise the configured default
func (s *Store) Get(key Key) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(key)
}

func (s *Store) getLocked(key Key) string {
	if s.backend != nil {
		v, err := s.backend.GetConfig(string(key))
		if err != nil {
			if s.logger != nil {
				s.logger.Printf("Failed to read setting %s: %v", key, err)
			}
		} else if v != "" {
			return v
		}
	}
	return s.defaults[key]
}

// Bool returns the effective value of a boolean setting
func (s *Store) Bool(key Key) bool {
	return ParseBool(s.Get(key))
}

// Set stores an override for key and notifies watchers if the effective
// value changed. An empty value clears the override.
func (s *Store) Set(key Key, value string) error {
	s.mu.Lock()
	old := s.getLocked(key)
	if s.backend != nil {
		if err := s.backend.SetConfig(string(key), value); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("failed to store setting %s: %w", key, err)
		}
	}
	updated := s.getLocked(key)
	s.mu.Unlock()

	if old != updated {
		s.notify(key, old, updated)
	}
	return nil
}

// Reload replaces the defaults (after the config file changed) and notifies
// watchers of every key whose effective value moved
func (s *Store) Reload(defaults map[Key]string) {
	type change struct {
		key      Key
		old, new string
	}

	s.mu.Lock()
	keys := make(map[Key]struct{}, len(defaults)+len(s.defaults))
	for k := range defaults {
		keys[k] = struct{}{}
	}
	for k := range s.defaults {
		keys[k] = struct{}{}
	}

	before := make(map[Key]string, len(keys))
	for k := range keys {
		before[k] = s.getLocked(k)
	}

	s.defaults = make(map[Key]string, len(defaults))
	for k, v := range defaults {
		s.defaults[k] = v
	}

	var changes []change
	for k := range keys {
		if after := s.getLocked(k); after != before[k] {
			changes = append(changes, change{key: k, old: before[k], new: after})
		}
	}
	s.mu.Unlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].key < changes[j].key })
	for _, c := range changes {
		s.notify(c.key, c.old, c.new)
	}
}

// Watch registers fn to be called whenever key's effective value changes
func (s *Store) Watch(key Key, fn ChangeFunc) WatchID {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.watchers[id] = watcher{key: key, fn: fn}
	return id
}

// Unwatch removes a watcher. Unknown or already removed IDs are ignored.
func (s *Store) Unwatch(id WatchID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.watchers, id)
}

// WatcherCount returns the number of registered watchers
func (s *Store) WatcherCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.watchers)
}

func (s *Store) notify(key Key, oldValue, newValue string) {
	s.mu.RLock()
	ids := make([]WatchID, 0, len(s.watchers))
	for id, w := range s.watchers {
		if w.key == key {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]ChangeFunc, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.watchers[id].fn)
	}
	s.mu.RUnlock()

	s.metrics.ObserveSettingChange(string(key))
	if s.logger != nil {
		s.logger.Printf("DEBUG: setting %s changed %q -> %q (%d watchers)", key, oldValue, newValue, len(fns))
	}

	for _, fn := range fns {
		fn(key, oldValue, newValue)
	}
}
