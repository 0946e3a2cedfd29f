// Package imagesize holds the display-size category users pick for inline
// media and the arithmetic that turns a source size into a display size.
package imagesize

import (
	"math"
	"strings"
)

// Size is the user's preferred size category for inline media
type Size string

const (
	Normal Size = "normal"
	Large  Size = "large"
)

// Parse converts a stored setting value into a Size, falling back to Normal
func Parse(v string) Size {
	switch Size(strings.ToLower(strings.TrimSpace(v))) {
	case Large:
		return Large
	default:
		return Normal
	}
}

// Next cycles through the available categories
func (s Size) Next() Size {
	if s == Large {
		return Normal
	}
	return Large
}

// Dimensions is a width/height pair in logical pixels.
// A zero value on either axis means "unknown".
type Dimensions struct {
	W int
	H int
}

// Known reports whether both axes are set
func (d Dimensions) Known() bool {
	return d.W > 0 && d.H > 0
}

var (
	sizeLarge           = Dimensions{W: 800, H: 600}
	sizeNormalLandscape = Dimensions{W: 324, H: 220}
	sizeNormalPortrait  = Dimensions{W: 324 * 9 / 16, H: 220}
)

// SuggestFunc maps a size category and an optional aspect hint to display dimensions
type SuggestFunc func(size Size, content Dimensions) Dimensions

// SuggestedSize returns the dimensions media of the given content size should
// be displayed at. Unknown content sizes get the category's bounding box.
func SuggestedSize(size Size, content Dimensions) Dimensions {
	portrait := content.Known() && content.W < content.H

	maxSize := sizeNormalLandscape
	switch {
	case size == Large:
		maxSize = sizeLarge
	case portrait:
		maxSize = sizeNormalPortrait
	}

	if !content.Known() {
		return maxSize
	}

	aspect := float64(content.W) / float64(content.H)
	w := float64(min(maxSize.W, content.W))
	h := float64(min(maxSize.H, content.H))
	if h*aspect > w {
		h = w / aspect
	} else {
		w = h * aspect
	}

	return Dimensions{W: int(math.Floor(w)), H: int(math.Floor(h))}
}

// ThumbHeight computes the height a thumbnail of a fullWidth x fullHeight
// source has once scaled into a thumbWidth x thumbHeight box.
// ok is false when either source dimension is unknown.
func ThumbHeight(fullWidth, fullHeight, thumbWidth, thumbHeight int) (height int, ok bool) {
	if fullWidth <= 0 || fullHeight <= 0 {
		return 0, false
	}
	if fullWidth < thumbWidth && fullHeight < thumbHeight {
		// no scaling needed
		return fullHeight, true
	}

	// thumbWidth/fullWidth < thumbHeight/fullHeight, kept in integers so the
	// result is an exact floor
	if int64(thumbWidth)*int64(fullHeight) < int64(thumbHeight)*int64(fullWidth) {
		// width is the dominant dimension so scaling will be fixed on that
		return int(int64(thumbWidth) * int64(fullHeight) / int64(fullWidth)), true
	}
	// height is the dominant dimension so scaling will be fixed on that
	return thumbHeight, true
}
