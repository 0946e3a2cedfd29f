package linkpreview

import (
	"log"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aeolun/superchat-widgets/pkg/client/metrics"
	"github.com/aeolun/superchat-widgets/pkg/client/platform"
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/imagesize"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/modal"
	"github.com/aeolun/superchat-widgets/pkg/client/ui/zones"
)

// Settings is the part of the settings store a preview widget uses
type Settings interface {
	Get(key settings.Key) string
	Watch(key settings.Key, fn settings.ChangeFunc) settings.WatchID
	Unwatch(id settings.WatchID)
}

// RefreshMsg asks the host to re-render the widget with the given ID
type RefreshMsg struct {
	ID string
}

// Config wires a Widget to its collaborators
type Config struct {
	ID       string // unique per rendered preview, used for mouse zones
	Link     string
	Preview  *Metadata
	Renderer *Renderer
	Settings Settings
	Platform platform.Probe
	Host     modal.Host
	Zones    zones.Zones // defaults to zones.Bubble()

	// EmbedPlayer enables YouTube embeds for this preview
	EmbedPlayer bool

	// Notify delivers RefreshMsg to the program. It is called from settings
	// callbacks and must not block (wrap program.Send in a goroutine).
	Notify func(tea.Msg)

	Logger  *log.Logger
	Metrics *metrics.Metrics
}

// Widget is one mounted link preview
type Widget struct {
	cfg Config

	mu      sync.Mutex
	watchID settings.WatchID
	mounted bool
	release sync.Once
	closed  atomic.Bool

	// last decision, recomputed whenever its inputs change
	cached     *Decision
	cachedOpts Options
}

// New creates an unmounted widget
func New(cfg Config) *Widget {
	if cfg.Zones == nil {
		cfg.Zones = zones.Bubble()
	}
	if cfg.Platform == nil {
		cfg.Platform = platform.Static(false)
	}
	if cfg.Renderer == nil {
		cfg.Renderer = NewRenderer(nil, nil, "")
	}
	return &Widget{cfg: cfg}
}

// ID returns the widget's zone ID
func (w *Widget) ID() string {
	return w.cfg.ID
}

// Link returns the previewed link
func (w *Widget) Link() string {
	return w.cfg.Link
}

func (w *Widget) thumbnailZoneID() string {
	return w.cfg.ID + ":thumb"
}

// Mount subscribes to image-size changes. Mounting twice, or after
// Unmount, does nothing.
func (w *Widget) Mount() {
	if w.closed.Load() || w.cfg.Settings == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	// Unmount may have completed between the check above and taking the lock
	if w.mounted || w.closed.Load() {
		return
	}
	w.mounted = true
	w.watchID = w.cfg.Settings.Watch(settings.ImageSize, w.onImageSizeChange)
}

// Unmount releases the settings subscription. It is safe to call more than
// once and from any goroutine; only the first call unwatches.
func (w *Widget) Unmount() {
	w.release.Do(func() {
		w.closed.Store(true)

		w.mu.Lock()
		mounted := w.mounted
		id := w.watchID
		w.mounted = false
		w.mu.Unlock()

		if mounted {
			w.cfg.Settings.Unwatch(id)
		}
	})
}

// Mounted reports whether the widget currently holds a subscription
func (w *Widget) Mounted() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mounted
}

func (w *Widget) onImageSizeChange(_ settings.Key, oldValue, newValue string) {
	// a change racing with Unmount is dropped
	if w.closed.Load() {
		return
	}

	w.mu.Lock()
	w.cached = nil
	w.mu.Unlock()

	if w.cfg.Logger != nil {
		w.cfg.Logger.Printf("DEBUG: preview %s image size %s -> %s", w.cfg.ID, oldValue, newValue)
	}
	if w.cfg.Notify != nil {
		w.cfg.Notify(RefreshMsg{ID: w.cfg.ID})
	}
}

// SetEmbedPlayer updates whether YouTube embeds are enabled
func (w *Widget) SetEmbedPlayer(enabled bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cfg.EmbedPlayer = enabled
}

func (w *Widget) options() Options {
	w.mu.Lock()
	embed := w.cfg.EmbedPlayer
	w.mu.Unlock()

	opts := Options{
		EmbedPlayer:      embed,
		ImageSize:        imagesize.Normal,
		NeedsURLTooltips: w.cfg.Platform.NeedsURLTooltips(),
	}
	if w.cfg.Settings != nil {
		opts.ShowImages = settings.ParseBool(w.cfg.Settings.Get(settings.ShowImages))
		opts.ImageSize = imagesize.Parse(w.cfg.Settings.Get(settings.ImageSize))
	}
	return opts
}

// Decision returns the current render decision
func (w *Widget) Decision() Decision {
	opts := w.options()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cached != nil && w.cachedOpts == opts {
		return *w.cached
	}

	d := w.cfg.Renderer.Decide(w.cfg.Link, w.cfg.Preview, opts)
	w.cached = &d
	w.cachedOpts = opts
	w.cfg.Metrics.ObservePreview(d.Kind.String())
	return d
}

// View renders the preview for the terminal
func (w *Widget) View(width int) string {
	return RenderTerminal(w.Decision(), width, w.cfg.Zones, w.thumbnailZoneID())
}

// Update handles mouse input. handled is true when the widget consumed the
// event; unhandled events should be processed by the host as usual.
func (w *Widget) Update(msg tea.Msg) (handled bool) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return w.HandleImageClick(msg)
	}
	return false
}

// HandleImageClick opens the lightbox for a plain primary click on the
// thumbnail. Modified or non-primary clicks are reported unhandled so the
// terminal's own behaviour applies.
func (w *Widget) HandleImageClick(msg tea.MouseMsg) bool {
	if msg.Action != tea.MouseActionPress {
		return false
	}

	d := w.Decision()
	if d.Image == nil {
		return false
	}

	bounds, ok := w.cfg.Zones.Bounds(w.thumbnailZoneID())
	if !ok || !bounds.Contains(msg.X, msg.Y) {
		return false
	}

	if !isPlainPrimaryPress(msg) {
		return false
	}

	// From here on the click belongs to the thumbnail even if there is
	// nothing to show.
	params, ok := w.cfg.Renderer.LightboxParams(w.cfg.Link, w.cfg.Preview, &bounds)
	if !ok {
		return true
	}

	if w.cfg.Host != nil {
		w.cfg.Host.Open(modal.NewImageViewModal(params))
		w.cfg.Metrics.ObserveLightboxOpen()
	}
	return true
}
