package ebiten

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"wintercard/pkg/game/effects"
	"wintercard/pkg/game/renderer"
)

// Draw renders the card to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	f, ok, help := e.snapshot()
	p := &normalPalette
	if ok && f.View.Settings.HighContrast {
		p = &contrastPalette
	}

	screen.Fill(p.background)
	e.drawParticles(screen, p)

	if !ok || e.monoFace == nil {
		// Can't draw without a frame or fonts
		return
	}

	screenWidth, screenHeight := screen.Bounds().Dx(), screen.Bounds().Dy()
	lineHeight := fontSize * lineSpacing
	cols := int(float64(screenWidth-margin*2) / e.charWidth)

	lines := renderer.Lines(f.View, cols)
	if help {
		lines = renderer.HelpLines()
	}
	y := float64(margin)
	for _, line := range lines {
		e.drawMarkup(screen, p, line, margin, y)
		y += lineHeight
	}

	e.drawMessages(screen, p, f.Messages, screenWidth, screenHeight)
}

// drawParticles draws the snow, debris and confetti
func (e *EbitenRenderer) drawParticles(screen *ebiten.Image, p *palette) {
	e.fieldMutex.Lock()
	defer e.fieldMutex.Unlock()
	if e.field == nil {
		return
	}
	for _, pt := range e.field.Particles {
		switch pt.Kind {
		case effects.Snow:
			vector.DrawFilledCircle(screen, float32(pt.X), float32(pt.Y), float32(pt.Size), p.snow, true)
		case effects.Debris:
			vector.DrawFilledRect(screen, float32(pt.X), float32(pt.Y), float32(pt.Size)*2, float32(pt.Size)*2, p.debris, false)
		case effects.Confetti:
			c := applyAlpha(p.confetti[pt.Hue%len(p.confetti)], pt.Life)
			vector.DrawFilledRect(screen, float32(pt.X), float32(pt.Y), float32(pt.Size)*2, float32(pt.Size), c, false)
		}
	}
}

// drawMessages draws the message panel and the input line at the bottom
func (e *EbitenRenderer) drawMessages(screen *ebiten.Image, p *palette, messages []string, screenWidth, screenHeight int) {
	lineHeight := fontSize * lineSpacing
	rows := len(messages) + 1
	panelHeight := float64(rows)*lineHeight + margin
	top := float64(screenHeight) - panelHeight

	vector.DrawFilledRect(screen, 0, float32(top), float32(screenWidth), float32(panelHeight), p.panel, false)

	y := top + margin/2
	for _, msg := range messages {
		e.drawMarkup(screen, p, msg, margin, y)
		y += lineHeight
	}

	prompt := renderer.PlainText("GT{PROMPT}") + string(e.line)
	w := e.drawMarkup(screen, p, renderer.Mark("ACTION", prompt), margin, y)

	// Blinking cursor
	if blink := math.Mod(float64(time.Now().UnixMilli())/500, 2); blink < 1 {
		vector.DrawFilledRect(screen, float32(margin+w+1), float32(y+2), 2, float32(fontSize), p.action, false)
	}
}
