// Package zones tracks where clickable widget regions land on screen
package zones

import (
	"sync"

	zone "github.com/lrstanley/bubblezone"
)

// Rect is an on-screen box in terminal cells
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Zones marks clickable regions while rendering and reports where they
// ended up on screen
type Zones interface {
	Mark(id, v string) string
	Bounds(id string) (Rect, bool)
}

// Bubble tracks regions with the global bubblezone manager. The host must
// call zone.NewGlobal() once and zone.Scan() on its final view.
func Bubble() Zones {
	return bubble{}
}

type bubble struct{}

func (bubble) Mark(id, v string) string {
	return zone.Mark(id, v)
}

func (bubble) Bounds(id string) (Rect, bool) {
	z := zone.Get(id)
	if z == nil || z.IsZero() {
		return Rect{}, false
	}
	return Rect{
		X: z.StartX,
		Y: z.StartY,
		W: z.EndX - z.StartX + 1,
		H: z.EndY - z.StartY + 1,
	}, true
}

// Mock is a Zones with fixed bounds that records what was marked
type Mock struct {
	mu     sync.Mutex
	rects  map[string]Rect
	marked []string
}

// NewMock creates a mock with the given bounds
func NewMock(rects map[string]Rect) *Mock {
	if rects == nil {
		rects = make(map[string]Rect)
	}
	return &Mock{rects: rects}
}

func (m *Mock) Mark(id, v string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marked = append(m.marked, id)
	return v
}

func (m *Mock) Bounds(id string) (Rect, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rects[id]
	return r, ok
}

// Set places zone id at r
func (m *Mock) Set(id string, r Rect) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rects[id] = r
}

// Marked returns the zone ids marked so far, in order
func (m *Mock) Marked() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.marked...)
}
