package input

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high-level intent on the card.
type Action int

const (
	ActionNone Action = iota

	// Answers
	ActionSubmit   // free text, an option number, an item or a fragment
	ActionContinue // Enter on an empty line

	// Letter and present
	ActionNextPage
	ActionBegin
	ActionUnwrap

	// Room helpers
	ActionHint
	ActionNextHint
	ActionClear
	ActionGoto
	ActionRestartRoom

	// Meta / UI
	ActionSkip
	ActionReset
	ActionToggleSound
	ActionToggleMotion
	ActionToggleContrast
	ActionHelp
	ActionQuit
)

// Intent is the 4th-layer, high-level description of what the player wants to do.
type Intent struct {
	Action Action
	Text   string // the typed line for ActionSubmit, the target for ActionGoto, the reply for ActionReset
	Index  int    // zero-based slot for ActionClear, -1 for all
}

// RawInput is the 1st-layer event emitted directly from an input device.
// Code is a typed line or a key name such as "arrow_right" or "ctrl_c".
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd-layer representation after debouncing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event without filtering.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   strings.TrimSpace(raw.Code),
	}
}

// Debouncer drops a repeat of the same code that arrives within Window,
// e.g. a held Enter key submitting one answer twice.
type Debouncer struct {
	Window time.Duration
	last   RawInput
}

// Accept reports whether raw should be processed.
func (d *Debouncer) Accept(raw RawInput) (DebouncedInput, bool) {
	dup := raw.Code == d.last.Code && !d.last.Timestamp.IsZero() && raw.Timestamp.Sub(d.last.Timestamp) < d.Window
	d.last = raw
	if dup {
		return DebouncedInput{}, false
	}
	return NewDebouncedInput(raw), true
}

// bindings maps command words to actions (3rd-layer bindings). Single letters
// are left out on purpose so one-letter answers are never taken as commands.
var bindings = map[string]Action{
	"":            ActionContinue,
	"enter":       ActionContinue,
	"continue":    ActionContinue,
	"next":        ActionNextPage,
	"arrow_right": ActionNextPage,
	"begin":       ActionBegin,
	"start":       ActionBegin,
	"open":        ActionUnwrap,
	"unwrap":      ActionUnwrap,
	"tug":         ActionUnwrap,
	"hint":        ActionHint,
	"?":           ActionHint,
	"more":        ActionNextHint,
	"clear":       ActionClear,
	"goto":        ActionGoto,
	"restart":     ActionRestartRoom,
	"skip":        ActionSkip,
	"reset":       ActionReset,
	"sound":       ActionToggleSound,
	"motion":      ActionToggleMotion,
	"contrast":    ActionToggleContrast,
	"help":        ActionHelp,
	"quit":        ActionQuit,
	"exit":        ActionQuit,
	"escape":      ActionQuit,
	"ctrl_c":      ActionQuit,
}

// MapToIntent is the 3rd+4th layer: a line that starts with a bound word is a
// command, a leading "/" forces command parsing, and anything else is an answer.
func MapToIntent(ev DebouncedInput) Intent {
	code := strings.TrimSpace(ev.Code)
	forced := strings.HasPrefix(code, "/")
	code = strings.TrimPrefix(code, "/")

	word, arg, _ := strings.Cut(code, " ")
	act, ok := bindings[strings.ToLower(word)]
	if !ok || (arg != "" && !takesArgument(act)) {
		if forced {
			return Intent{Action: ActionNone, Text: code}
		}
		return Intent{Action: ActionSubmit, Text: ev.Code}
	}

	in := Intent{Action: act, Index: -1}
	arg = strings.TrimSpace(arg)
	switch act {
	case ActionGoto, ActionReset:
		in.Text = arg
	case ActionClear:
		if n, err := strconv.Atoi(arg); err == nil {
			in.Index = n - 1
		}
	}
	return in
}

func takesArgument(a Action) bool {
	return a == ActionGoto || a == ActionClear || a == ActionReset
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionSubmit:
		return "Answer"
	case ActionContinue:
		return "Continue"
	case ActionNextPage:
		return "Next Page"
	case ActionBegin:
		return "Begin"
	case ActionUnwrap:
		return "Unwrap"
	case ActionHint:
		return "Hint"
	case ActionNextHint:
		return "Next Hint"
	case ActionClear:
		return "Clear"
	case ActionGoto:
		return "Go To Room"
	case ActionRestartRoom:
		return "Restart Room"
	case ActionSkip:
		return "Skip"
	case ActionReset:
		return "Reset"
	case ActionToggleSound:
		return "Sound"
	case ActionToggleMotion:
		return "Reduce Motion"
	case ActionToggleContrast:
		return "High Contrast"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the bound words grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		if code == "" {
			continue
		}
		result[act] = append(result[act], code)
	}
	// Stable ordering so the help screen doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
