// Package metrics exposes Prometheus counters for the client widgets.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "superchat_widgets"

// Metrics holds the widget counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	previewDecisions *prometheus.CounterVec
	lightboxOpens    prometheus.Counter
	soundPlays       *prometheus.CounterVec
	settingChanges   *prometheus.CounterVec
	emojiSetLoads    *prometheus.CounterVec
}

// New creates and registers all widget metrics
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		previewDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_preview",
			Name:      "decisions_total",
			Help:      "Link preview render decisions by kind.",
		}, []string{"kind"}),
		lightboxOpens: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "link_preview",
			Name:      "lightbox_opens_total",
			Help:      "Preview images opened in the lightbox.",
		}),
		soundPlays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sound",
			Name:      "plays_total",
			Help:      "Sounds played by pack and sound name.",
		}, []string{"pack", "sound"}),
		settingChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "settings",
			Name:      "changes_total",
			Help:      "Effective setting value changes by key.",
		}, []string{"key"}),
		emojiSetLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "emoji",
			Name:      "image_set_loads_total",
			Help:      "Custom emoji image set loads by cache result.",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.previewDecisions,
		m.lightboxOpens,
		m.soundPlays,
		m.settingChanges,
		m.emojiSetLoads,
	)
	return m
}

// Registry returns the registry the widget metrics live on
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the widget metrics in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObservePreview counts a link preview render decision
func (m *Metrics) ObservePreview(kind string) {
	if m == nil {
		return
	}
	m.previewDecisions.WithLabelValues(kind).Inc()
}

// ObserveLightboxOpen counts a lightbox invocation
func (m *Metrics) ObserveLightboxOpen() {
	if m == nil {
		return
	}
	m.lightboxOpens.Inc()
}

// ObserveSoundPlay counts a played sound
func (m *Metrics) ObserveSoundPlay(pack, sound string) {
	if m == nil {
		return
	}
	m.soundPlays.WithLabelValues(pack, sound).Inc()
}

// ObserveSettingChange counts an effective setting change
func (m *Metrics) ObserveSettingChange(key string) {
	if m == nil {
		return
	}
	m.settingChanges.WithLabelValues(key).Inc()
}

// ObserveEmojiSetLoad counts an image set load, result is "hit" or "miss"
func (m *Metrics) ObserveEmojiSetLoad(result string) {
	if m == nil {
		return
	}
	m.emojiSetLoads.WithLabelValues(result).Inc()
}
