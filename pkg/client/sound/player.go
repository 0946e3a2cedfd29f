package sound

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gen2brain/beeep"
)

// ErrNoSource is returned when none of a sound's sources exist
var ErrNoSource = errors.New("no playable source")

// Player loads and plays sounds
type Player interface {
	// Load (re)reads an audio's sources; called whenever they change
	Load(a Audio) error
	Play(a Audio) error
}

// BeepPlayer resolves each sound to its first existing source and, having
// no audio backend of its own, plays it as a desktop beep
type BeepPlayer struct {
	mu       sync.Mutex
	resolved map[Name]string
	logger   *log.Logger

	// beep is swapped out in tests
	beep func(freq float64, duration int) error
}

// NewBeepPlayer creates a player
func NewBeepPlayer(logger *log.Logger) *BeepPlayer {
	return &BeepPlayer{
		resolved: make(map[Name]string),
		logger:   logger,
		beep:     beeep.Beep,
	}
}

// Load picks the first source that exists on disk
func (p *BeepPlayer) Load(a Audio) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.resolved, a.Name)
	for _, src := range a.Sources {
		if _, err := os.Stat(src.Path); err == nil {
			p.resolved[a.Name] = src.Path
			return nil
		}
	}
	return fmt.Errorf("failed to load %s: %w", a.Name, ErrNoSource)
}

// Resolved returns the file chosen for name by the last Load
func (p *BeepPlayer) Resolved(name Name) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	path, ok := p.resolved[name]
	return path, ok
}

// Play beeps. A missing source is logged, not fatal.
func (p *BeepPlayer) Play(a Audio) error {
	if _, ok := p.Resolved(a.Name); !ok && p.logger != nil {
		p.logger.Printf("DEBUG: no source for sound %s, beeping", a.Name)
	}
	if err := p.beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		return fmt.Errorf("failed to play %s: %w", a.Name, err)
	}
	return nil
}
