package command

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"attitude-hud/internal/config"
)

type harness struct {
	cfg   *config.Config
	path  string
	out   *bytes.Buffer
	saves int
	in    *Interpreter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.Default()
	h := &harness{
		cfg:  &cfg,
		path: config.DefaultPath(t.TempDir()),
		out:  &bytes.Buffer{},
	}
	h.in = New(h.cfg, h.path, h.out)
	h.in.OnSave(func() { h.saves++ })
	return h
}

func (h *harness) run(line string) string {
	h.out.Reset()
	h.in.Run(strings.Fields(line))
	return h.out.String()
}

func TestScaleFloor(t *testing.T) {
	h := newHarness(t)

	out := h.run("scale 0.05")

	if h.cfg.Scale != 0.1 {
		t.Errorf("Scale = %v, want 0.1", h.cfg.Scale)
	}
	if h.saves != 1 {
		t.Errorf("saves = %d, want 1", h.saves)
	}
	if _, err := os.Stat(h.path); err != nil {
		t.Errorf("config file not written: %v", err)
	}
	if !strings.Contains(out, "scale -> 0.1") {
		t.Errorf("output = %q", out)
	}
}

func TestColorByteScale(t *testing.T) {
	h := newHarness(t)

	h.run("color font 300 0 0")

	want := color.NRGBA{255, 0, 0, 255}
	if h.cfg.Font != want {
		t.Errorf("Font = %v, want %v", h.cfg.Font, want)
	}
}

func TestColorForms(t *testing.T) {
	tests := []struct {
		line string
		get  func(*config.Config) color.NRGBA
		want color.NRGBA
	}{
		{"color base 0 1 0", func(c *config.Config) color.NRGBA { return c.Base }, color.NRGBA{0, 255, 0, 255}},
		{"color level 1 0.5 0 0.5", func(c *config.Config) color.NRGBA { return c.Level }, color.NRGBA{255, 128, 0, 128}},
		{"color bg 255 255 255 128", func(c *config.Config) color.NRGBA { return c.Background }, color.NRGBA{255, 255, 255, 128}},
		{"color background #112233", func(c *config.Config) color.NRGBA { return c.Background }, color.NRGBA{0x11, 0x22, 0x33, 255}},
		{"COLOR FONT ff000080", func(c *config.Config) color.NRGBA { return c.Font }, color.NRGBA{255, 0, 0, 128}},
		{"color base -1 2 0", func(c *config.Config) color.NRGBA { return c.Base }, color.NRGBA{0, 2, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			out := h.run(tt.line)
			if got := tt.get(h.cfg); got != tt.want {
				t.Errorf("got %v, want %v (output %q)", got, tt.want, out)
			}
			if h.saves != 1 {
				t.Errorf("saves = %d, want 1", h.saves)
			}
		})
	}
}

func TestMalformedArgsLeaveStateUnchanged(t *testing.T) {
	lines := []string{
		"scale",
		"scale big",
		"scale NaN",
		"movex",
		"movey 1 2",
		"color",
		"color font",
		"color sky 1 0 0",
		"color font 1 0",
		"color font #12345",
		"color font 1 x 0",
		"font 20",
		"font size twenty",
		"text maybe",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			h := newHarness(t)
			out := h.run(line)

			if *h.cfg != config.Default() {
				t.Errorf("config changed: %+v", *h.cfg)
			}
			if h.saves != 0 {
				t.Errorf("saved on malformed input")
			}
			if !strings.Contains(out, "usage:") {
				t.Errorf("no usage hint, output %q", out)
			}
		})
	}
}

func TestOffsets(t *testing.T) {
	h := newHarness(t)

	out := h.run("movex -20")
	if h.cfg.OffsetX != -20 {
		t.Errorf("OffsetX = %v, want -20 (output %q)", h.cfg.OffsetX, out)
	}
	if !strings.Contains(out, "offsetX -> -20") {
		t.Errorf("output = %q", out)
	}

	h.run("offsety 12.5")
	if h.cfg.OffsetY != 12.5 {
		t.Errorf("OffsetY = %v, want 12.5", h.cfg.OffsetY)
	}
}

func TestFontSizeFloor(t *testing.T) {
	h := newHarness(t)

	h.run("font size 4")
	if h.cfg.FontSize != config.MinFontSize {
		t.Errorf("FontSize = %d, want %d", h.cfg.FontSize, config.MinFontSize)
	}

	h.run("font SIZE 24")
	if h.cfg.FontSize != 24 {
		t.Errorf("FontSize = %d, want 24", h.cfg.FontSize)
	}
}

func TestTextToggleShow(t *testing.T) {
	h := newHarness(t)

	if out := h.run("text off"); !strings.Contains(out, "text -> off") {
		t.Errorf("text off output = %q", out)
	}
	if h.cfg.ShowText {
		t.Error("ShowText still on")
	}

	if out := h.run("show"); !strings.Contains(out, "text=off") {
		t.Errorf("show output = %q", out)
	}

	h.run("text 1")
	if !h.cfg.ShowText {
		t.Error("ShowText still off")
	}
}

func TestNoArgsShows(t *testing.T) {
	h := newHarness(t)
	out := h.run("")
	if strings.TrimSpace(out) != Status(h.cfg) {
		t.Errorf("output = %q, want status line", out)
	}
	if h.saves != 0 {
		t.Error("show saved the config")
	}
}

func TestUnknownActionPrintsHelp(t *testing.T) {
	h := newHarness(t)
	out := h.run("fly away")
	if !strings.Contains(out, "attui scale <float>") {
		t.Errorf("output = %q, want help", out)
	}
	if *h.cfg != config.Default() {
		t.Error("config changed")
	}
}

func TestCaseInsensitiveAction(t *testing.T) {
	h := newHarness(t)
	h.run("SCALE 2")
	if h.cfg.Scale != 2 {
		t.Errorf("Scale = %v, want 2", h.cfg.Scale)
	}
}

func TestResetAndReload(t *testing.T) {
	h := newHarness(t)

	h.run("scale 3")
	h.run("text off")
	h.run("reset")
	if *h.cfg != config.Default() {
		t.Errorf("reset left %+v", *h.cfg)
	}

	h.run("scale 2.5")
	h.cfg.Scale = 9 // unsaved edit
	out := h.run("reload")
	if h.cfg.Scale != 2.5 {
		t.Errorf("reload Scale = %v, want 2.5 (output %q)", h.cfg.Scale, out)
	}
}

func TestPersistedValuesReload(t *testing.T) {
	h := newHarness(t)
	h.run("scale 1.5")
	h.run("color level #FF8800")
	h.run("text off")

	got := config.Load(h.path, config.Default())
	if got != *h.cfg {
		t.Errorf("loaded %+v, want %+v", got, *h.cfg)
	}
}

func TestSaveFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	out := &bytes.Buffer{}
	in := New(&cfg, filepath.Join(blocker, "config.xml"), out)
	saves := 0
	in.OnSave(func() { saves++ })

	in.Run([]string{"scale", "2"})

	if cfg.Scale != 2 {
		t.Errorf("Scale = %v, want 2", cfg.Scale)
	}
	if saves != 0 {
		t.Error("OnSave called for a failed save")
	}
	if !strings.Contains(out.String(), "scale -> 2") {
		t.Errorf("output = %q", out.String())
	}
}

func TestReloadKeepsValuesWhenFileUnreadable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	out := &bytes.Buffer{}
	in := New(&cfg, filepath.Join(blocker, "config.xml"), out)

	in.Run([]string{"scale", "3"})
	in.Run([]string{"color", "level", "#FF0000"})
	want := cfg

	out.Reset()
	in.Run([]string{"reload"})

	if cfg != want {
		t.Errorf("reload changed config:\n got  %+v\n want %+v", cfg, want)
	}
	if !strings.Contains(out.String(), "scale=3") {
		t.Errorf("status after reload = %q", out.String())
	}
}

func TestIsVerb(t *testing.T) {
	for _, w := range []string{"attui", "ATTUI", "AttitudeUI"} {
		if !IsVerb(w) {
			t.Errorf("IsVerb(%q) = false", w)
		}
	}
	if IsVerb("att") {
		t.Error("IsVerb(att) = true")
	}
}
