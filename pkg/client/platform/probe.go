// Package platform answers questions about what the hosting terminal needs
package platform

import (
	"github.com/aeolun/superchat-widgets/pkg/client/settings"
)

// Probe reports host capabilities the widgets adapt to
type Probe interface {
	// NeedsURLTooltips is true when link text can hide its destination and
	// the destination should be shown alongside it
	NeedsURLTooltips() bool
}

// Static is a Probe with a fixed answer
type Static bool

// NeedsURLTooltips returns the fixed answer
func (s Static) NeedsURLTooltips() bool {
	return bool(s)
}

// SettingsGetter is the subset of the settings store the probe reads
type SettingsGetter interface {
	Get(key settings.Key) string
}

// Terminal answers from the user's urlTooltips setting, so toggling it takes
// effect on the next render
type Terminal struct {
	settings SettingsGetter
}

// NewTerminal creates a settings-backed probe
func NewTerminal(s SettingsGetter) *Terminal {
	return &Terminal{settings: s}
}

// NeedsURLTooltips reads the urlTooltips setting
func (t *Terminal) NeedsURLTooltips() bool {
	if t == nil || t.settings == nil {
		return false
	}
	return settings.ParseBool(t.settings.Get(settings.URLTooltips))
}
