// Package ebiten provides an Ebiten-based graphical renderer for the card.
// Ebiten owns the main goroutine; the card's input loop runs elsewhere and
// talks to the window through RenderFrame and GetInput.
package ebiten

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	engineinput "wintercard/pkg/engine/input"
	"wintercard/pkg/game/effects"
	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/renderer"
)

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	windowWidth  int
	windowHeight int

	monoFace  *text.GoTextFace
	boldFace  *text.GoTextFace
	charWidth float64

	// Latest frame from the card loop (set by RenderFrame)
	frame      renderer.Frame
	hasFrame   bool
	helpShown  bool
	frameMutex sync.RWMutex

	// Particles behind the text
	field      *effects.Field
	fieldMutex sync.Mutex

	// Line being typed; only touched from Update and Draw
	line      []rune
	debouncer engineinput.Debouncer

	// Input channel for communication between Ebiten and the card loop
	inputChan chan engineinput.Intent
	done      chan struct{}
	closeOnce sync.Once

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:  defaultWindowWidth,
		windowHeight: defaultWindowHeight,
		inputChan:    make(chan engineinput.Intent, inputBuffer),
		done:         make(chan struct{}),
	}
}

// Init loads fonts and sets up the window
func (e *EbitenRenderer) Init() {
	if err := e.loadFonts(); err != nil {
		log.Printf("ebiten: %v", err)
	}
	e.debouncer = engineinput.Debouncer{Window: 150 * time.Millisecond}
	e.field = effects.NewField(float64(e.windowWidth), float64(e.windowHeight), time.Now().UnixNano())

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle(renderer.PlainText("GT{WINDOW_TITLE}"))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
}

// Run starts the Ebiten game loop. It must be called from the main goroutine
// and returns when the window closes or Close is called.
func (e *EbitenRenderer) Run() error {
	if err := ebiten.RunGame(e); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

// Close asks the window to shut down.
func (e *EbitenRenderer) Close() {
	e.closeOnce.Do(func() { close(e.done) })
}

// Clear drops the current frame; Ebiten redraws every tick anyway
func (e *EbitenRenderer) Clear() {
	e.frameMutex.Lock()
	e.hasFrame = false
	e.frameMutex.Unlock()
}

// RenderFrame hands a new frame to the window
func (e *EbitenRenderer) RenderFrame(f renderer.Frame) {
	e.frameMutex.Lock()
	e.frame = f
	e.hasFrame = true
	e.frameMutex.Unlock()

	v := f.View
	progress := 0.0
	if v.RoomCount > 0 {
		progress = float64(v.Solved) / float64(v.RoomCount)
	}
	e.fieldMutex.Lock()
	e.field.SetMood(effects.MoodFor(v.Stage, progress))
	e.fieldMutex.Unlock()
}

// GetInput blocks until the window produces an intent. A closed window quits.
func (e *EbitenRenderer) GetInput() engineinput.Intent {
	select {
	case in := <-e.inputChan:
		e.frameMutex.Lock()
		e.helpShown = in.Action == engineinput.ActionHelp
		e.frameMutex.Unlock()
		return in
	case <-e.done:
		return engineinput.Intent{Action: engineinput.ActionQuit}
	}
}

// React feeds a card event to the particle field
func (e *EbitenRenderer) React(ev gameplay.Event) {
	e.fieldMutex.Lock()
	defer e.fieldMutex.Unlock()
	e.field.React(ev)
}

// StyleText returns text unchanged; styles are applied per segment when drawing
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText formats a message; markup is kept for the draw pass
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// ShowMessage writes to the log; the window shows messages from the frame
func (e *EbitenRenderer) ShowMessage(msg string) {
	log.Printf("%s", renderer.PlainText(msg))
}

// Layout returns the logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		e.fieldMutex.Lock()
		e.field.Resize(float64(outsideWidth), float64(outsideHeight))
		e.fieldMutex.Unlock()
	}
	return outsideWidth, outsideHeight
}

func (e *EbitenRenderer) snapshot() (renderer.Frame, bool, bool) {
	e.frameMutex.RLock()
	defer e.frameMutex.RUnlock()
	return e.frame, e.hasFrame, e.helpShown
}
