package settings

import (
	"strconv"
	"strings"
)

// Key names a user-facing setting
type Key string

const (
	ShowImages         Key = "showImages"
	ImageSize          Key = "Images.size"
	SoundPack          Key = "soundPack"
	NewSpinner         Key = "feature_new_spinner"
	YouTubeEmbedPlayer Key = "urlPreviews.youtubeEmbed"
	URLTooltips        Key = "urlTooltips"
)

// AllKeys lists every known setting in display order
var AllKeys = []Key{ShowImages, ImageSize, YouTubeEmbedPlayer, URLTooltips, NewSpinner, SoundPack}

// ParseBool interprets a stored setting value; anything unparseable is false
func ParseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}

// FormatBool is the inverse of ParseBool
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
