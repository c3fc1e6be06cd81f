// Package render draws HUD primitives with Ebiten.
package render

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"attitude-hud/internal/hud"
)

// Fonts builds label faces from one TTF source and keeps the face for the
// last requested size.
type Fonts struct {
	source *text.GoTextFaceSource
	face   *text.GoTextFace
}

// NewFonts loads the bundled Go Regular font.
func NewFonts() (*Fonts, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Fonts{source: src}, nil
}

// Face returns a face of the given pixel size, rebuilding it only when the
// size changed since the last call.
func (f *Fonts) Face(size int) *text.GoTextFace {
	if f.face == nil || int(f.face.Size) != size {
		f.face = &text.GoTextFace{Source: f.source, Size: float64(size)}
	}
	return f.face
}

// Surface adapts an ebiten.Image to hud.Surface for one frame.
type Surface struct {
	img   *ebiten.Image
	fonts *Fonts
}

// NewSurface wraps screen. fonts is shared across frames.
func NewSurface(screen *ebiten.Image, fonts *Fonts) *Surface {
	return &Surface{img: screen, fonts: fonts}
}

// Size returns the screen size in pixels
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// FillRect fills r with c.
func (s *Surface) FillRect(r hud.Rect, c color.Color) {
	vector.DrawFilledRect(s.img, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

// DrawText draws str centered on cx with its top edge at y.
func (s *Surface) DrawText(str string, cx, y float64, style hud.TextStyle) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(style.Color)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(s.img, str, s.fonts.Face(style.Size), op)
}
