package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"wintercard/pkg/engine/input"
	"wintercard/pkg/engine/terminal"
	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Lines lays a view out as markup lines no wider than width runes of plain
// text. Both renderers draw from it.
func Lines(v gameplay.View, width int) []string {
	b := &lineBuilder{width: max(width, 20)}

	switch v.Stage {
	case state.StageIntro:
		b.add(Mark("TITLE", v.Title))
		b.blank()
		b.paragraph(v.Letter)
		b.blank()
		b.add(Mark("SUBTLE", tr("PAGE_OF", v.Page+1, v.Pages)))
		if v.Page+1 < v.Pages {
			b.add(action("next") + " " + tr("NEXT_PAGE_HINT"))
		} else {
			b.add(action("begin") + " " + tr("BEGIN_HINT"))
		}

	case state.StageUnwrap:
		b.add(Mark("TITLE", v.Title))
		b.blank()
		b.paragraph(tr("PRESENT_PROMPT"))
		b.blank()
		b.add(progressBar(v.UnwrapTaps, v.UnwrapNeed))
		b.add(action("open") + " " + tr("UNWRAP_HINT"))

	case state.StagePuzzles:
		b.add(Mark("TITLE", v.Title) + "  " + Mark("SUBTLE", tr("ROOM_OF", v.RoomIndex+1, v.RoomCount)))
		b.add(roomMap(v.Map))
		b.blank()
		b.room(v)

	case state.StageCelebration:
		b.add(Mark("TITLE", tr("ALL_SOLVED")))
		b.blank()
		b.add(Mark("CODE", v.Code))
		b.blank()
		b.add(action("skip") + " " + tr("SKIP_HINT"))

	case state.StageFinal:
		b.add(Mark("TITLE", v.Title))
		b.blank()
		b.paragraph(v.Closing)
		b.blank()
		b.add(Mark("SUBTLE", tr("CODE_LABEL")) + " " + Mark("CODE", v.Code))
		b.blank()
		b.add(action("reset") + " " + tr("RESET_HINT"))
	}

	b.blank()
	b.add(Mark("SUBTLE", tr("SETTINGS_LINE",
		onOff(v.Settings.Sound), onOff(v.Settings.ReduceMotion), onOff(v.Settings.HighContrast))) +
		"  " + action("help"))
	return b.lines
}

func (b *lineBuilder) room(v gameplay.View) {
	r := v.Room
	b.add(Mark("ROOM", r.Title))
	b.paragraph(r.Prompt)
	b.blank()

	switch r.Kind {
	case rooms.KindAction:
		label := r.Action
		if label == "" {
			label = tr("CONFIRM_HINT")
		}
		b.add(action("enter") + " " + label)

	case rooms.KindText:
		if r.Placeholder != "" {
			b.add(Mark("SUBTLE", r.Placeholder))
		}

	case rooms.KindChoice:
		b.choices(r)

	case rooms.KindSequence:
		for i, it := range r.Items {
			b.add(fmt.Sprintf("  %d) %s", i+1, it.Label))
		}
		if len(v.Clicks) > 0 {
			labels := make([]string, len(v.Clicks))
			for i, id := range v.Clicks {
				labels[i] = r.ItemLabel(id)
			}
			b.add(Mark("SUBTLE", tr("SEQUENCE_SO_FAR")) + " " + Mark("GOOD", strings.Join(labels, " → ")))
		}
		b.add(action("clear") + " " + tr("CLEAR_SEQUENCE_HINT"))

	case rooms.KindAssembly:
		slots := make([]string, len(v.Slots))
		for i, s := range v.Slots {
			if s == "" {
				slots[i] = Mark("SUBTLE", "[ _____ ]")
			} else {
				slots[i] = Mark("CODE", "[ "+s+" ]")
			}
		}
		b.add(strings.Join(slots, " "))
		for _, f := range v.Fragments {
			if f.Unlocked {
				b.add("  " + f.Label + ": " + Mark("CODE", f.Text))
			} else {
				b.add("  " + Mark("LOCKED", f.Label+": "+f.Text))
			}
		}
		b.add(action("clear") + " " + tr("CLEAR_SLOTS_HINT"))
	}

	if v.Attempts > 0 || v.Hint.Level > 0 {
		b.blank()
		b.add(Mark("HINT", tr("HINT_LABEL", v.Hint.Level+1, v.Hint.Total)))
		b.paragraph(v.Hint.Text)
	}
	if v.Attempts > 0 {
		b.add(Mark("SUBTLE", tr("ATTEMPTS", v.Attempts)))
	}

	switch {
	case v.Paused:
		b.blank()
		b.add(Mark("GOOD", tr("ROOM_SOLVED")) + " " + action("continue") + " " + tr("PAUSED_HINT"))
	case v.Holding:
		b.blank()
		b.add(Mark("GOOD", tr("ROOM_SOLVED")) + " " + Mark("SUBTLE", tr("HOLD_HINT")))
	}

	b.blank()
	b.add(Mark("SUBTLE", tr("CODE_LABEL")) + " " + Mark("CODE", v.Partial))
}

func (b *lineBuilder) choices(r *rooms.Room) {
	if r.Columns <= 0 {
		for i, opt := range r.Options {
			b.add(fmt.Sprintf("  %d) %s", i+1, opt))
		}
		return
	}
	cell := 0
	for i, opt := range r.Options {
		cell = max(cell, len(strconv.Itoa(i+1))+2+len(opt))
	}
	for start := 0; start < len(r.Options); start += r.Columns {
		var row []string
		for i := start; i < min(start+r.Columns, len(r.Options)); i++ {
			row = append(row, fmt.Sprintf("%-*s", cell, fmt.Sprintf("%d) %s", i+1, r.Options[i])))
		}
		b.add("  " + strings.TrimRight(strings.Join(row, "  "), " "))
	}
}

// HelpLines lists every command word grouped by action.
func HelpLines() []string {
	lines := []string{Mark("TITLE", tr("HELP_TITLE")), ""}
	byAction := input.GetBindingsByAction()
	for _, act := range helpOrder {
		words := byAction[act]
		if len(words) == 0 {
			continue
		}
		marked := make([]string, len(words))
		for i, w := range words {
			marked[i] = action(w)
		}
		lines = append(lines, fmt.Sprintf("  %-16s %s", input.ActionName(act), strings.Join(marked, " ")))
	}
	lines = append(lines, "", Mark("SUBTLE", tr("HELP_ANSWER")))
	return lines
}

var helpOrder = []input.Action{
	input.ActionContinue,
	input.ActionNextPage,
	input.ActionBegin,
	input.ActionUnwrap,
	input.ActionHint,
	input.ActionNextHint,
	input.ActionClear,
	input.ActionGoto,
	input.ActionRestartRoom,
	input.ActionSkip,
	input.ActionReset,
	input.ActionToggleSound,
	input.ActionToggleMotion,
	input.ActionToggleContrast,
	input.ActionHelp,
	input.ActionQuit,
}

type lineBuilder struct {
	width int
	lines []string
}

func (b *lineBuilder) add(s string) {
	b.lines = append(b.lines, s)
}

func (b *lineBuilder) blank() {
	if n := len(b.lines); n > 0 && b.lines[n-1] != "" {
		b.lines = append(b.lines, "")
	}
}

func (b *lineBuilder) paragraph(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	b.lines = append(b.lines, terminal.Wrap(text, b.width)...)
}

func action(word string) string {
	return Mark("ACTION", word)
}

func roomMap(entries []gameplay.RoomView) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		n := strconv.Itoa(i + 1)
		switch {
		case e.Current:
			parts[i] = Mark("CURRENT", "["+n+"]")
		case e.Solved:
			parts[i] = Mark("GOOD", "✓"+n)
		case e.Unlocked:
			parts[i] = Mark("ROOM", n)
		default:
			parts[i] = Mark("LOCKED", "·")
		}
	}
	return strings.Join(parts, " ")
}

func progressBar(taps, need int) string {
	need = max(need, 1)
	taps = max(0, min(taps, need))
	return Mark("GOOD", strings.Repeat("■", taps)) + Mark("SUBTLE", strings.Repeat("□", need-taps))
}

func onOff(b bool) string {
	if b {
		return tr("ON")
	}
	return tr("OFF")
}
