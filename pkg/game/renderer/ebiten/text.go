package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"wintercard/pkg/game/renderer"
)

// drawMarkup draws one markup line at x, y and returns its width
func (e *EbitenRenderer) drawMarkup(screen *ebiten.Image, p *palette, line string, x, y float64) float64 {
	currentX := x
	for _, seg := range renderer.ParseMarkup(line) {
		if seg.Text == "" {
			continue
		}
		face := e.faceFor(seg.Style)
		e.drawText(screen, seg.Text, currentX, y, p.styleColor(seg.Style), face)
		w, _ := text.Measure(seg.Text, face, 0)
		currentX += w
	}
	return currentX - x
}

// drawText draws a plain string in one color
func (e *EbitenRenderer) drawText(screen *ebiten.Image, str string, x, y float64, col color.Color, face *text.GoTextFace) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, str, face, op)
}

// applyAlpha applies an alpha value to a color
func applyAlpha(c color.RGBA, alpha float64) color.RGBA {
	alpha = max(0, min(1, alpha))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
