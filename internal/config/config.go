// Package config holds the attitude HUD settings record and its on-disk form.
package config

import (
	"image/color"
	"path/filepath"
)

// Limits applied by Normalize
const (
	MinScale    = 0.1
	MinFontSize = 10
)

// Defaults
const (
	DefaultScale    = 1.0
	DefaultFontSize = 18
)

// Config is the single settings record shared by the renderer and the
// command interpreter. It is owned by the application and passed by pointer.
type Config struct {
	Scale   float64
	OffsetX float64
	OffsetY float64

	Background color.NRGBA
	Base       color.NRGBA
	Level      color.NRGBA
	Font       color.NRGBA

	FontSize int
	ShowText bool
}

// Default returns the hardcoded settings used at startup and by reset
func Default() Config {
	return Config{
		Scale:      DefaultScale,
		Background: color.NRGBA{0, 0, 0, 128},
		Base:       color.NRGBA{255, 255, 255, 255},
		Level:      color.NRGBA{0, 255, 255, 255}, // Cyan
		Font:       color.NRGBA{0, 255, 255, 255},
		FontSize:   DefaultFontSize,
		ShowText:   true,
	}
}

// Normalize clamps numeric fields into their valid ranges.
func (c *Config) Normalize() {
	if !(c.Scale >= MinScale) { // also catches NaN
		c.Scale = MinScale
	}
	if c.FontSize < MinFontSize {
		c.FontSize = MinFontSize
	}
}

// DefaultPath returns the config file location under dataDir. Load and
// Save both use it.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "Mods", "AttitudeIndicator", "config.xml")
}
