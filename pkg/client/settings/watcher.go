package settings

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads the config file into a Store when it changes on disk
type ConfigWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	store     *Store
	debounce  time.Duration
	logger    *log.Logger
	onReload  func(TOMLConfig)
	done      chan struct{}
}

// NewConfigWatcher creates a watcher for the config file at path.
// onReload, if set, receives every successfully parsed config.
func NewConfigWatcher(path string, store *Store, debounce time.Duration, logger *log.Logger, onReload func(TOMLConfig)) (*ConfigWatcher, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &ConfigWatcher{
		fsWatcher: fsw,
		path:      path,
		store:     store,
		debounce:  debounce,
		logger:    logger,
		onReload:  onReload,
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directory containing the config file.
// Editors often replace the file instead of writing it, so the directory is
// watched rather than the file itself.
func (w *ConfigWatcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources
func (w *ConfigWatcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *ConfigWatcher) loop() {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.reload()

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Printf("Config watcher error: %v", err)
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *ConfigWatcher) reload() {
	cfg, err := LoadConfig(w.path)
	if err != nil {
		// keep the previous settings until the file parses again
		if w.logger != nil {
			w.logger.Printf("Failed to reload config %s: %v", w.path, err)
		}
		return
	}

	w.store.Reload(cfg.Defaults())
	if w.onReload != nil {
		w.onReload(cfg)
	}
}

func (w *ConfigWatcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == filepath.Clean(w.path)
}
