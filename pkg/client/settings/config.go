package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aeolun/superchat-widgets/pkg/client/ui/imagesize"
)

// TOMLConfig represents the structure of the client widgets config file
type TOMLConfig struct {
	Media    MediaSection    `toml:"media"`
	Preview  PreviewSection  `toml:"preview"`
	Sound    SoundSection    `toml:"sound"`
	Features FeaturesSection `toml:"features"`
	Metrics  MetricsSection  `toml:"metrics"`
}

type MediaSection struct {
	HomeserverURL string `toml:"homeserver_url"`
}

type PreviewSection struct {
	ShowImages   bool   `toml:"show_images"`
	ImageSize    string `toml:"image_size"`
	YouTubeEmbed bool   `toml:"youtube_embed"`
	URLTooltips  bool   `toml:"url_tooltips"`
	LinkBase     string `toml:"link_base"`
}

type SoundSection struct {
	SoundPack string `toml:"sound_pack"`
	MediaDir  string `toml:"media_dir"`
}

type FeaturesSection struct {
	NewSpinner bool `toml:"new_spinner"`
}

type MetricsSection struct {
	ListenAddr string `toml:"listen_addr"`
}

// DefaultTOMLConfig returns the default TOML configuration
func DefaultTOMLConfig() TOMLConfig {
	return TOMLConfig{
		Media: MediaSection{
			HomeserverURL: "https://matrix.org",
		},
		Preview: PreviewSection{
			ShowImages:   true,
			ImageSize:    string(imagesize.Normal),
			YouTubeEmbed: true,
			URLTooltips:  false,
		},
		Sound: SoundSection{
			SoundPack: "default",
			MediaDir:  "media",
		},
		Metrics: MetricsSection{
			ListenAddr: "", // disabled
		},
	}
}

// Defaults converts the config into setting defaults for a Store
func (c TOMLConfig) Defaults() map[Key]string {
	return map[Key]string{
		ShowImages:         FormatBool(c.Preview.ShowImages),
		ImageSize:          string(imagesize.Parse(c.Preview.ImageSize)),
		YouTubeEmbedPlayer: FormatBool(c.Preview.YouTubeEmbed),
		URLTooltips:        FormatBool(c.Preview.URLTooltips),
		NewSpinner:         FormatBool(c.Features.NewSpinner),
		SoundPack:          c.Sound.SoundPack,
	}
}

// ExpandPath expands a leading ~/ to the user's home directory
func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}
	return path, nil
}

// LoadConfig loads configuration from a TOML file, creates a default one if
// not found, and applies environment variable overrides
func LoadConfig(path string) (TOMLConfig, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return TOMLConfig{}, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		config := DefaultTOMLConfig()
		if err := writeDefaultConfig(path); err != nil {
			// Can't write (permissions?), still run on defaults
			return applyEnvOverrides(config), nil
		}
		return applyEnvOverrides(config), nil
	}

	// Start from defaults so keys missing from the file keep their default
	config := DefaultTOMLConfig()
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return TOMLConfig{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	return applyEnvOverrides(config), nil
}

// applyEnvOverrides applies environment variable overrides to the config
// Environment variables follow the pattern: SUPERCHAT_SECTION_KEY
// Example: SUPERCHAT_PREVIEW_SHOW_IMAGES=false
func applyEnvOverrides(config TOMLConfig) TOMLConfig {
	if val := os.Getenv("SUPERCHAT_MEDIA_HOMESERVER_URL"); val != "" {
		config.Media.HomeserverURL = val
	}

	if val := os.Getenv("SUPERCHAT_PREVIEW_SHOW_IMAGES"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			config.Preview.ShowImages = b
		}
	}
	if val := os.Getenv("SUPERCHAT_PREVIEW_IMAGE_SIZE"); val != "" {
		config.Preview.ImageSize = val
	}
	if val := os.Getenv("SUPERCHAT_PREVIEW_YOUTUBE_EMBED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			config.Preview.YouTubeEmbed = b
		}
	}
	if val := os.Getenv("SUPERCHAT_PREVIEW_URL_TOOLTIPS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			config.Preview.URLTooltips = b
		}
	}
	if val := os.Getenv("SUPERCHAT_PREVIEW_LINK_BASE"); val != "" {
		config.Preview.LinkBase = val
	}

	if val := os.Getenv("SUPERCHAT_SOUND_SOUND_PACK"); val != "" {
		config.Sound.SoundPack = val
	}
	if val := os.Getenv("SUPERCHAT_SOUND_MEDIA_DIR"); val != "" {
		config.Sound.MediaDir = val
	}

	if val := os.Getenv("SUPERCHAT_FEATURES_NEW_SPINNER"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			config.Features.NewSpinner = b
		}
	}

	if val := os.Getenv("SUPERCHAT_METRICS_LISTEN_ADDR"); val != "" {
		config.Metrics.ListenAddr = val
	}

	return config
}

// writeDefaultConfig writes the default config to a file with all options documented
func writeDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	content := `# SuperChat Widgets Configuration
# This file was auto-generated with default values
# Changes are picked up while the client is running
#
# Environment variables can override these settings:
# SUPERCHAT_SECTION_KEY (e.g., SUPERCHAT_PREVIEW_SHOW_IMAGES=false)

[media]
# Homeserver used to resolve mxc:// media references
homeserver_url = "https://matrix.org"

[preview]
# Show images in link previews
show_images = true

# Inline media size: "normal" or "large"
image_size = "normal"

# Show YouTube links as an embedded player
youtube_embed = true

# Show the destination URL next to links whose text differs from it
url_tooltips = false

# Base URL for resolving relative links
# link_base = "https://chat.example.com/"

[sound]
# Sound pack directory name under media_dir
sound_pack = "default"
media_dir = "media"

[features]
# Use the logo spinner
# new_spinner = false

[metrics]
# Internal Prometheus endpoint, empty to disable
# listen_addr = "127.0.0.1:9091"
`

	if _, err := f.WriteString(content); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
