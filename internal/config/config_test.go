package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#FF00FF", color.NRGBA{255, 0, 255, 255}, true},
		{"ff00ff80", color.NRGBA{255, 0, 255, 128}, true},
		{"#00000080", color.NRGBA{0, 0, 0, 128}, true},
		{"12345", color.NRGBA{}, false},
		{"", color.NRGBA{}, false},
		{"#", color.NRGBA{}, false},
		{"GG00FF", color.NRGBA{}, false},
		{"+FF0FF", color.NRGBA{}, false},
		{"FF00FF0", color.NRGBA{}, false},
		{"##FF00FF", color.NRGBA{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseHexColor(tt.in)
			if ok != tt.ok {
				t.Fatalf("ParseHexColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexColorRoundTrip(t *testing.T) {
	for _, v := range []uint8{0, 1, 17, 127, 128, 200, 254, 255} {
		c := color.NRGBA{v, 255 - v, v / 2, 255 - v/3}
		got, ok := ParseHexColor(FormatHexColor(c))
		if !ok || got != c {
			t.Errorf("round trip %v: got %v ok=%v", c, got, ok)
		}
	}
}

func TestColorFromFloats(t *testing.T) {
	got := ColorFromFloats(1, 0, 0.5, 2)
	want := color.NRGBA{255, 0, 128, 255}
	if got != want {
		t.Errorf("ColorFromFloats = %v, want %v", got, want)
	}
	if got := ColorFromFloats(-1, 0, 0, 0); got != (color.NRGBA{}) {
		t.Errorf("negative channels not clamped: %v", got)
	}
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.Scale = 0.01
	cfg.FontSize = 4
	cfg.Normalize()
	if cfg.Scale != MinScale {
		t.Errorf("Scale = %v, want %v", cfg.Scale, MinScale)
	}
	if cfg.FontSize != MinFontSize {
		t.Errorf("FontSize = %v, want %v", cfg.FontSize, MinFontSize)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := DefaultPath(t.TempDir())

	cfg := Default()
	cfg.Scale = 1.75
	cfg.OffsetX = -20.5
	cfg.OffsetY = 12
	cfg.Background = color.NRGBA{10, 20, 30, 40}
	cfg.Base = color.NRGBA{1, 2, 3, 255}
	cfg.Level = color.NRGBA{255, 0, 0, 255}
	cfg.Font = color.NRGBA{0, 0, 255, 100}
	cfg.FontSize = 24
	cfg.ShowText = false

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := Load(path, Default())
	if got != cfg {
		t.Errorf("Load after Save:\n got  %+v\n want %+v", got, cfg)
	}
}

func TestSaveWritesExpectedLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.xml")
	if err := Save(path, Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"<AttitudeIndicator>",
		`<Scale value="1">`,
		`<BgColor value="00000080">`,
		`<FontSize value="18">`,
		`<ShowText value="true">`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("saved file missing %s:\n%s", want, text)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	got := Load(filepath.Join(t.TempDir(), "nope.xml"), Default())
	if got != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.xml")
	if err := os.WriteFile(path, []byte("<AttitudeIndicator><Scale value="), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path, Default()); got != Default() {
		t.Errorf("Load(malformed) = %+v, want defaults", got)
	}
}

func TestLoadKeepsBaseValues(t *testing.T) {
	base := Default()
	base.Scale = 3
	base.OffsetX = -20
	base.ShowText = false

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}
	malformed := filepath.Join(dir, "bad.xml")
	if err := os.WriteFile(malformed, []byte("<A><Scale"), 0644); err != nil {
		t.Fatal(err)
	}
	partial := filepath.Join(dir, "partial.xml")
	if err := os.WriteFile(partial, []byte(`<A><FontSize value="30"/></A>`), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want func() Config
	}{
		{"missing", filepath.Join(dir, "nope.xml"), func() Config { return base }},
		{"unreadable", filepath.Join(blocker, "config.xml"), func() Config { return base }},
		{"malformed", malformed, func() Config { return base }},
		{"partial", partial, func() Config {
			c := base
			c.FontSize = 30
			return c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Load(tt.path, base); got != tt.want() {
				t.Errorf("Load = %+v, want %+v", got, tt.want())
			}
		})
	}
}

func TestDecodePartialAndBadFields(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Settings>
  <Scale value="2.5"/>
  <OffsetX value="abc"/>
  <LevelColor value="#00FF00"/>
  <FontColor value="nothex"/>
  <FontSize value="3"/>
  <ShowText value="maybe"/>
  <Unknown value="ignored"/>
</Settings>`

	cfg := Default()
	if err := Decode([]byte(doc), &cfg); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want := Default()
	want.Scale = 2.5
	want.Level = color.NRGBA{0, 255, 0, 255}
	want.FontSize = MinFontSize

	if cfg != want {
		t.Errorf("Decode:\n got  %+v\n want %+v", cfg, want)
	}
}

func TestDecodeRejectsNonFinite(t *testing.T) {
	cfg := Default()
	if err := Decode([]byte(`<A><OffsetY value="NaN"/><Scale value="+Inf"/></A>`), &cfg); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg != Default() {
		t.Errorf("non-finite values applied: %+v", cfg)
	}
}
