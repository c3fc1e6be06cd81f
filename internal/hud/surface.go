package hud

import "image/color"

// Rect is a screen-space rectangle in pixels, Y growing downward.
type Rect struct {
	X, Y, W, H float64
}

// TextStyle describes how a label is drawn. It is derived from the config
// every frame; surfaces cache whatever they build from it.
type TextStyle struct {
	Size  int
	Color color.NRGBA
}

// Surface is the per-frame 2D draw target provided by the host.
type Surface interface {
	Size() (width, height int)
	FillRect(r Rect, c color.Color)
	// DrawText draws str horizontally centered on cx with its top at y.
	DrawText(str string, cx, y float64, style TextStyle)
}
