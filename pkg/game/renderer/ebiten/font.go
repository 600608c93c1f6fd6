package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"wintercard/pkg/game/renderer"
)

// loadFonts parses the embedded Go fonts. Monospace keeps option grids aligned.
func (e *EbitenRenderer) loadFonts() error {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("load mono font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return fmt.Errorf("load bold font: %w", err)
	}
	e.monoFace = &text.GoTextFace{Source: mono, Size: fontSize}
	e.boldFace = &text.GoTextFace{Source: bold, Size: fontSize}
	e.charWidth, _ = text.Measure("M", e.monoFace, 0)
	return nil
}

// faceFor returns the face a style is drawn with
func (e *EbitenRenderer) faceFor(style renderer.TextStyle) *text.GoTextFace {
	switch style {
	case renderer.StyleTitle, renderer.StyleCode, renderer.StyleGood, renderer.StyleCurrent, renderer.StyleActionShort:
		return e.boldFace
	}
	return e.monoFace
}
