package ebiten

import (
	"image/color"

	"wintercard/pkg/game/renderer"
)

// palette is the set of colors for one contrast setting
type palette struct {
	background color.RGBA
	panel      color.RGBA
	text       color.RGBA
	title      color.RGBA
	prompt     color.RGBA
	action     color.RGBA
	hint       color.RGBA
	good       color.RGBA
	denied     color.RGBA
	locked     color.RGBA
	code       color.RGBA
	subtle     color.RGBA
	current    color.RGBA
	snow       color.RGBA
	debris     color.RGBA
	confetti   [5]color.RGBA
}

var normalPalette = palette{
	background: color.RGBA{18, 24, 46, 255},    // Night blue
	panel:      color.RGBA{30, 30, 50, 220},    // Semi-transparent dark
	text:       color.RGBA{200, 210, 245, 255}, // Soft off-white with blue tint
	title:      color.RGBA{180, 150, 250, 255}, // Blue-purple
	prompt:     color.RGBA{140, 190, 255, 255},
	action:     color.RGBA{220, 170, 255, 255},
	hint:       color.RGBA{255, 220, 100, 255},
	good:       color.RGBA{100, 255, 150, 255},
	denied:     color.RGBA{255, 120, 120, 255},
	locked:     color.RGBA{110, 110, 130, 255},
	code:       color.RGBA{255, 240, 200, 255},
	subtle:     color.RGBA{120, 130, 180, 255},
	current:    color.RGBA{0, 255, 0, 255},
	snow:       color.RGBA{235, 240, 255, 200},
	debris:     color.RGBA{150, 130, 110, 200},
	confetti: [5]color.RGBA{
		{255, 90, 90, 255},
		{255, 210, 80, 255},
		{90, 220, 120, 255},
		{90, 160, 255, 255},
		{220, 120, 255, 255},
	},
}

var contrastPalette = palette{
	background: color.RGBA{0, 0, 0, 255},
	panel:      color.RGBA{20, 20, 20, 240},
	text:       color.RGBA{255, 255, 255, 255},
	title:      color.RGBA{255, 255, 255, 255},
	prompt:     color.RGBA{255, 255, 255, 255},
	action:     color.RGBA{255, 255, 0, 255},
	hint:       color.RGBA{255, 255, 0, 255},
	good:       color.RGBA{0, 255, 0, 255},
	denied:     color.RGBA{255, 80, 80, 255},
	locked:     color.RGBA{200, 200, 200, 255},
	code:       color.RGBA{255, 255, 255, 255},
	subtle:     color.RGBA{220, 220, 220, 255},
	current:    color.RGBA{0, 255, 255, 255},
	snow:       color.RGBA{255, 255, 255, 140},
	debris:     color.RGBA{160, 160, 160, 140},
	confetti: [5]color.RGBA{
		{255, 255, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{0, 255, 0, 255},
		{255, 0, 255, 255},
	},
}

// styleColor maps a text style to its color
func (p *palette) styleColor(style renderer.TextStyle) color.RGBA {
	switch style {
	case renderer.StyleTitle:
		return p.title
	case renderer.StylePrompt:
		return p.prompt
	case renderer.StyleAction, renderer.StyleActionShort:
		return p.action
	case renderer.StyleHint:
		return p.hint
	case renderer.StyleGood:
		return p.good
	case renderer.StyleDenied:
		return p.denied
	case renderer.StyleLocked:
		return p.locked
	case renderer.StyleCode:
		return p.code
	case renderer.StyleSubtle:
		return p.subtle
	case renderer.StyleCurrent:
		return p.current
	default:
		return p.text
	}
}

// Layout constants
const (
	defaultWindowWidth  = 960
	defaultWindowHeight = 720
	margin              = 28
	fontSize            = 16.0
	lineSpacing         = 1.45
	inputBuffer         = 8
)

const (
	keyRepeatInitialDelay = 30 // ticks before backspace repeats
	keyRepeatInterval     = 3  // ticks between repeats
)
