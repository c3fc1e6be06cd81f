package config

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const rootElement = "AttitudeIndicator"

type xmlValue struct {
	Value string `xml:"value,attr"`
}

// xmlConfig is the on-disk layout. Every element is optional so a partial
// file only overrides what it names.
type xmlConfig struct {
	XMLName    xml.Name
	Scale      *xmlValue `xml:"Scale"`
	OffsetX    *xmlValue `xml:"OffsetX"`
	OffsetY    *xmlValue `xml:"OffsetY"`
	BgColor    *xmlValue `xml:"BgColor"`
	BaseColor  *xmlValue `xml:"BaseColor"`
	LevelColor *xmlValue `xml:"LevelColor"`
	FontColor  *xmlValue `xml:"FontColor"`
	FontSize   *xmlValue `xml:"FontSize"`
	ShowText   *xmlValue `xml:"ShowText"`
}

// Load reads the config file at path on top of base. It never fails: a
// missing, unreadable or malformed file is logged and base comes back
// unchanged, and a malformed element only skips that field.
func Load(path string, base Config) Config {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config at %s, keeping current values", path)
		return base
	}
	if err != nil {
		log.Printf("Config read error: %v", err)
		return base
	}

	cfg := base
	if err := Decode(data, &cfg); err != nil {
		log.Printf("Config parse error in %s: %v", path, err)
		return base
	}

	log.Printf("Loaded config from %s", path)
	return cfg
}

// Decode applies the elements found in data to cfg. Field-level problems
// are logged and skipped; only an unreadable document returns an error.
func Decode(data []byte, cfg *Config) error {
	var doc xmlConfig
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	applyFloat(doc.Scale, "Scale", &cfg.Scale)
	applyFloat(doc.OffsetX, "OffsetX", &cfg.OffsetX)
	applyFloat(doc.OffsetY, "OffsetY", &cfg.OffsetY)
	applyColor(doc.BgColor, "BgColor", &cfg.Background)
	applyColor(doc.BaseColor, "BaseColor", &cfg.Base)
	applyColor(doc.LevelColor, "LevelColor", &cfg.Level)
	applyColor(doc.FontColor, "FontColor", &cfg.Font)

	if doc.FontSize != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(doc.FontSize.Value)); err == nil {
			cfg.FontSize = n
		} else {
			log.Printf("Config: skipping FontSize %q", doc.FontSize.Value)
		}
	}

	if doc.ShowText != nil {
		if b, err := strconv.ParseBool(strings.TrimSpace(doc.ShowText.Value)); err == nil {
			cfg.ShowText = b
		} else {
			log.Printf("Config: skipping ShowText %q", doc.ShowText.Value)
		}
	}

	cfg.Normalize()
	return nil
}

func applyFloat(v *xmlValue, name string, dst *float64) {
	if v == nil {
		return
	}
	f, err := parseFloat(v.Value)
	if err != nil {
		log.Printf("Config: skipping %s %q", name, v.Value)
		return
	}
	*dst = f
}

func applyColor(v *xmlValue, name string, dst *color.NRGBA) {
	if v == nil {
		return
	}
	c, ok := ParseHexColor(v.Value)
	if !ok {
		log.Printf("Config: skipping %s %q", name, v.Value)
		return
	}
	*dst = c
}

// parseFloat accepts plain decimal text only; NaN and infinities are
// rejected so they never reach the renderer.
func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return f, nil
}

// Encode renders cfg in the on-disk XML layout.
func Encode(cfg Config) ([]byte, error) {
	doc := xmlConfig{
		XMLName:    xml.Name{Local: rootElement},
		Scale:      &xmlValue{formatFloat(cfg.Scale)},
		OffsetX:    &xmlValue{formatFloat(cfg.OffsetX)},
		OffsetY:    &xmlValue{formatFloat(cfg.OffsetY)},
		BgColor:    &xmlValue{FormatHexColor(cfg.Background)},
		BaseColor:  &xmlValue{FormatHexColor(cfg.Base)},
		LevelColor: &xmlValue{FormatHexColor(cfg.Level)},
		FontColor:  &xmlValue{FormatHexColor(cfg.Font)},
		FontSize:   &xmlValue{strconv.Itoa(cfg.FontSize)},
		ShowText:   &xmlValue{strconv.FormatBool(cfg.ShowText)},
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

// Save writes cfg to path, creating the directory if needed and replacing
// any existing file.
func Save(path string, cfg Config) error {
	data, err := Encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
