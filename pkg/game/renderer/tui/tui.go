package tui

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"

	"wintercard/pkg/engine/input"
	"wintercard/pkg/engine/terminal"
	"wintercard/pkg/game/renderer"
)

// debounceWindow drops a line repeated faster than anyone could type it.
const debounceWindow = 150 * time.Millisecond

// palette is one set of styles; the renderer swaps between the normal and the
// high contrast palette when the setting changes.
type palette struct {
	title       color.Style
	prompt      color.Style
	action      color.Style
	actionShort color.Style
	hint        color.Style
	good        color.Style
	denied      color.Style
	locked      color.Style
	code        color.Style
	subtle      color.Style
	current     color.Style
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	mu        sync.Mutex
	normal    palette
	contrast  palette
	active    *palette
	debouncer input.Debouncer
	helpShown bool
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.normal = palette{
		title:       color.Style{color.FgCyan, color.OpBold},
		prompt:      color.Style{color.FgBlue, color.OpBold},
		action:      color.Style{color.FgMagenta},
		actionShort: color.Style{color.FgMagenta, color.OpBold},
		hint:        color.Style{color.FgYellow},
		good:        color.Style{color.FgGreen, color.OpBold},
		denied:      color.Style{color.FgRed, color.OpBold},
		locked:      color.Style{color.FgGray},
		code:        color.Style{color.FgLightWhite, color.BgBlue, color.OpBold},
		subtle:      color.Style{color.FgGray, color.OpBold},
		current:     color.Style{color.FgGreen, color.BgBlack, color.OpBold},
	}
	t.contrast = palette{
		title:       color.Style{color.FgLightWhite, color.OpBold, color.OpUnderscore},
		prompt:      color.Style{color.FgLightWhite, color.OpBold},
		action:      color.Style{color.FgLightYellow, color.OpBold},
		actionShort: color.Style{color.FgLightYellow, color.OpBold, color.OpUnderscore},
		hint:        color.Style{color.FgLightYellow},
		good:        color.Style{color.FgLightGreen, color.OpBold},
		denied:      color.Style{color.FgLightRed, color.OpBold},
		locked:      color.Style{color.FgWhite},
		code:        color.Style{color.FgBlack, color.BgLightWhite, color.OpBold},
		subtle:      color.Style{color.FgWhite},
		current:     color.Style{color.FgBlack, color.BgLightGreen, color.OpBold},
	}
	t.active = &t.normal
	t.debouncer = input.Debouncer{Window: debounceWindow}
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// GetInput reads a line from the terminal and returns a high-level Intent.
func (t *TUIRenderer) GetInput() input.Intent {
	for {
		line, err := input.ReadLine()
		if err != nil {
			return input.Intent{Action: input.ActionQuit}
		}
		raw := input.RawInput{
			Device:    input.DeviceTerminal,
			Code:      line,
			Timestamp: time.Now(),
		}
		ev, ok := t.debouncer.Accept(raw)
		if !ok {
			continue
		}
		in := input.MapToIntent(ev)
		t.mu.Lock()
		t.helpShown = in.Action == input.ActionHelp
		t.mu.Unlock()
		return in
	}
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	p := t.palette()
	switch style {
	case renderer.StyleTitle:
		return p.title.Sprint(text)
	case renderer.StylePrompt:
		return p.prompt.Sprint(text)
	case renderer.StyleAction:
		if text == "" {
			return text
		}
		return p.actionShort.Sprint(text[0:1]) + p.action.Sprint(text[1:])
	case renderer.StyleActionShort:
		return p.actionShort.Sprint(text)
	case renderer.StyleHint:
		return p.hint.Sprint(text)
	case renderer.StyleGood:
		return p.good.Sprint(text)
	case renderer.StyleDenied:
		return p.denied.Sprint(text)
	case renderer.StyleLocked:
		return p.locked.Sprint(text)
	case renderer.StyleCode:
		return p.code.Sprint(text)
	case renderer.StyleSubtle:
		return p.subtle.Sprint(text)
	case renderer.StyleCurrent:
		return p.current.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	var b strings.Builder
	for _, seg := range renderer.ParseMarkup(msg) {
		b.WriteString(t.StyleText(seg.Text, seg.Style))
	}
	return b.String()
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Println(t.FormatText(msg))
}

// RenderFrame redraws the whole card
func (t *TUIRenderer) RenderFrame(f renderer.Frame) {
	t.mu.Lock()
	if f.View.Settings.HighContrast {
		t.active = &t.contrast
	} else {
		t.active = &t.normal
	}
	help := t.helpShown
	t.mu.Unlock()

	width := terminal.GetWidth()
	t.Clear()

	lines := renderer.Lines(f.View, width-4)
	if help {
		lines = renderer.HelpLines()
	}
	for _, line := range lines {
		fmt.Println("  " + t.FormatText(line))
	}

	t.printMessagesPane(f.Messages, width)
	t.printPrompt()
}

func (t *TUIRenderer) palette() *palette {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == nil {
		return &t.normal
	}
	return t.active
}

func (t *TUIRenderer) printPrompt() {
	fmt.Print("\n" + t.StyleText(renderer.PlainText("GT{PROMPT}"), renderer.StyleActionShort))
}

// printMessagesPane renders the messages log pane
func (t *TUIRenderer) printMessagesPane(messages []string, width int) {
	label := " Messages "
	sideLen := max((width-len(label))/2, 1)
	rightLen := max(width-sideLen-len(label), 1)

	p := t.palette()
	fmt.Println()
	fmt.Println(p.subtle.Sprint(strings.Repeat("─", sideLen) + label + strings.Repeat("─", rightLen)))

	if len(messages) == 0 {
		fmt.Println(p.subtle.Sprint("  (no messages)"))
	} else {
		for _, msg := range messages {
			fmt.Printf("  %s\n", t.FormatText(msg))
		}
	}

	fmt.Println(p.subtle.Sprint(strings.Repeat("─", width)))
}
