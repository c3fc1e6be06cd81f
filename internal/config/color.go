package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseHexColor parses RRGGBB or RRGGBBAA with an optional leading '#'.
// Six digits imply full opacity.
func ParseHexColor(s string) (color.NRGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, false
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}
	if len(s) == 6 {
		v = v<<8 | 0xFF
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

// FormatHexColor renders c as eight uppercase hex digits (RRGGBBAA).
func FormatHexColor(c color.NRGBA) string {
	return fmt.Sprintf("%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ColorFromFloats builds a color from channels in [0,1]. Values outside
// that range are clamped; each channel is rounded to 8 bits.
func ColorFromFloats(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{
		R: unitToByte(r),
		G: unitToByte(g),
		B: unitToByte(b),
		A: unitToByte(a),
	}
}

func unitToByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
