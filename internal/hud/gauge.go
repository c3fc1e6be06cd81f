package hud

import (
	"fmt"
	"image/color"
	"math"

	"attitude-hud/internal/config"
)

// Gauge geometry, in pixels at scale 1
const (
	GaugeWidth  = 26
	GaugeHeight = 160

	// MaxDeflection is the pitch that pins the indicator at the gauge limit
	MaxDeflection = 45.0

	MinRenderScale = 0.05

	PaddingRight  = 40
	PaddingBottom = 80

	BorderWidth     = 2
	LevelLineHeight = 2
	IndicatorHeight = 4
	IndicatorInset  = 4
	LabelGap        = 6
)

// Primitive is one filled rectangle in draw order.
type Primitive struct {
	Rect  Rect
	Color color.NRGBA
}

// Label is the optional pitch readout above the gauge.
type Label struct {
	Text  string
	CX, Y float64
	Style TextStyle
}

// GaugeLayout is everything drawn for one frame.
type GaugeLayout struct {
	Bounds     Rect
	Indicator  Rect
	Primitives []Primitive
	Label      *Label
}

// NormalizePitch maps degrees onto [-1, 1] using MaxDeflection.
func NormalizePitch(deg float64) float64 {
	if math.IsNaN(deg) {
		return 0
	}
	return math.Max(-1, math.Min(1, deg/MaxDeflection))
}

// FormatPitch formats deg as a signed one-decimal value with a degree sign.
// Values that round to zero are printed without sign or decimals.
func FormatPitch(deg float64) string {
	if math.Round(deg*10) == 0 {
		return "0°"
	}
	return fmt.Sprintf("%+.1f°", deg)
}

// LabelStyle is the text style implied by cfg.
func LabelStyle(cfg *config.Config) TextStyle {
	return TextStyle{Size: cfg.FontSize, Color: cfg.Font}
}

// LayoutGauge computes the gauge primitives for pitch on a screen of the
// given size. Nose up moves the indicator toward the top of the screen.
func LayoutGauge(pitch float64, cfg *config.Config, screenW, screenH int) GaugeLayout {
	scale := math.Max(cfg.Scale, MinRenderScale)
	w := GaugeWidth * scale
	h := GaugeHeight * scale

	x := float64(screenW) - w - PaddingRight + cfg.OffsetX
	y := float64(screenH) - h - PaddingBottom + cfg.OffsetY
	bounds := Rect{X: x, Y: y, W: w, H: h}

	halfH := h / 2
	centerY := y + halfH

	travel := math.Max(halfH-IndicatorInset, 0)
	indicatorY := centerY - NormalizePitch(pitch)*travel
	indicator := Rect{X: x, Y: indicatorY - IndicatorHeight/2, W: w, H: IndicatorHeight}

	prims := []Primitive{
		// Background
		{bounds, cfg.Background},
		// Border
		{Rect{x, y, w, BorderWidth}, cfg.Base},
		{Rect{x, y + h - BorderWidth, w, BorderWidth}, cfg.Base},
		{Rect{x, y, BorderWidth, h}, cfg.Base},
		{Rect{x + w - BorderWidth, y, BorderWidth, h}, cfg.Base},
		// Level reference
		{Rect{x, centerY - LevelLineHeight/2, w, LevelLineHeight}, cfg.Base},
		// Indicator
		{indicator, cfg.Level},
	}

	layout := GaugeLayout{
		Bounds:     bounds,
		Indicator:  indicator,
		Primitives: prims,
	}

	if cfg.ShowText {
		style := LabelStyle(cfg)
		layout.Label = &Label{
			Text:  FormatPitch(pitch),
			CX:    x + w/2,
			Y:     y - LabelGap - float64(style.Size),
			Style: style,
		}
	}

	return layout
}

// Gauge draws the pitch gauge using the shared config.
type Gauge struct {
	cfg *config.Config
}

// NewGauge creates a gauge reading cfg on every draw
func NewGauge(cfg *config.Config) *Gauge {
	return &Gauge{cfg: cfg}
}

// Draw renders the gauge for pitch onto s.
func (g *Gauge) Draw(s Surface, pitch float64) {
	w, h := s.Size()
	layout := LayoutGauge(pitch, g.cfg, w, h)

	for _, p := range layout.Primitives {
		s.FillRect(p.Rect, p.Color)
	}

	if layout.Label != nil {
		s.DrawText(layout.Label.Text, layout.Label.CX, layout.Label.Y, layout.Label.Style)
	}
}
