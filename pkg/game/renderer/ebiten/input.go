package ebiten

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "wintercard/pkg/engine/input"
	"wintercard/pkg/game/state"
)

// Update handles input and advances the particles (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	select {
	case <-e.done:
		return ebiten.Termination
	default:
	}

	f, ok, _ := e.snapshot()
	frozen := ok && f.View.Settings.ReduceMotion
	e.fieldMutex.Lock()
	e.field.Step(1/float64(ebiten.TPS()), frozen)
	e.fieldMutex.Unlock()

	if intent := e.checkInput(f.View.Stage); intent.Action != engineinput.ActionNone {
		// Non-blocking send to input channel
		select {
		case e.inputChan <- intent:
		default:
			// Channel full, drop input
		}
	}
	return nil
}

// checkInput edits the typed line and turns keys into intents
func (e *EbitenRenderer) checkInput(stage state.Stage) engineinput.Intent {
	e.line = ebiten.AppendInputChars(e.line)

	if e.shouldRepeatKey(ebiten.KeyBackspace) && len(e.line) > 0 {
		e.line = e.line[:len(e.line)-1]
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		code := string(e.line)
		e.line = e.line[:0]
		return e.keyIntent(code)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if len(e.line) > 0 {
			e.line = e.line[:0]
			return engineinput.Intent{Action: engineinput.ActionNone}
		}
		return e.keyIntent("escape")
	}

	if len(e.line) == 0 && inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		return e.keyIntent("arrow_right")
	}

	// A click on the present counts as a tug
	if stage == state.StageUnwrap && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return engineinput.Intent{Action: engineinput.ActionUnwrap}
	}

	return engineinput.Intent{Action: engineinput.ActionNone}
}

func (e *EbitenRenderer) keyIntent(code string) engineinput.Intent {
	raw := engineinput.RawInput{
		Device:    engineinput.DeviceKeyboard,
		Code:      code,
		Timestamp: time.Now(),
	}
	ev, ok := e.debouncer.Accept(raw)
	if !ok {
		return engineinput.Intent{Action: engineinput.ActionNone}
	}
	return engineinput.MapToIntent(ev)
}

// shouldRepeatKey reports a press on the first tick and then at the repeat rate
func (e *EbitenRenderer) shouldRepeatKey(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	if d == 1 {
		return true
	}
	return d >= keyRepeatInitialDelay && (d-keyRepeatInitialDelay)%keyRepeatInterval == 0
}
