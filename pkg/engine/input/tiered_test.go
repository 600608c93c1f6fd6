package input

import (
	"testing"
	"time"
)

func intent(code string) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{Device: DeviceTerminal, Code: code}))
}

func TestMapToIntent_Commands(t *testing.T) {
	cases := map[string]Action{
		"":            ActionContinue,
		"   ":         ActionContinue,
		"next":        ActionNextPage,
		"NEXT":        ActionNextPage,
		"arrow_right": ActionNextPage,
		"begin":       ActionBegin,
		"open":        ActionUnwrap,
		"hint":        ActionHint,
		"?":           ActionHint,
		"more":        ActionNextHint,
		"skip":        ActionSkip,
		"reset":       ActionReset,
		"sound":       ActionToggleSound,
		"ctrl_c":      ActionQuit,
		"/restart":    ActionRestartRoom,
	}
	for code, want := range cases {
		if got := intent(code).Action; got != want {
			t.Errorf("MapToIntent(%q) = %s, want %s", code, ActionName(got), ActionName(want))
		}
	}
}

func TestMapToIntent_Answers(t *testing.T) {
	for _, code := range []string{"N", "steam", "it's a long way to the top", "3", "Y9J8X", "open sesame"} {
		got := intent(code)
		if got.Action != ActionSubmit || got.Text != code {
			t.Errorf("MapToIntent(%q) = %+v, want submit of the same text", code, got)
		}
	}
}

func TestMapToIntent_Arguments(t *testing.T) {
	if got := intent("clear 2"); got.Action != ActionClear || got.Index != 1 {
		t.Errorf("clear 2 = %+v, want clear index 1", got)
	}
	if got := intent("clear"); got.Action != ActionClear || got.Index != -1 {
		t.Errorf("clear = %+v, want clear index -1", got)
	}
	if got := intent("goto R03"); got.Action != ActionGoto || got.Text != "R03" {
		t.Errorf("goto R03 = %+v", got)
	}
	if got := intent("reset yes"); got.Action != ActionReset || got.Text != "yes" {
		t.Errorf("reset yes = %+v", got)
	}
	if got := intent("reset"); got.Action != ActionReset || got.Text != "" {
		t.Errorf("reset = %+v", got)
	}
}

func TestMapToIntent_ForcedUnknown(t *testing.T) {
	if got := intent("/dance"); got.Action != ActionNone {
		t.Errorf("/dance = %+v, want none", got)
	}
}

func TestDebouncer(t *testing.T) {
	d := &Debouncer{Window: 200 * time.Millisecond}
	t0 := time.Unix(100, 0)
	if _, ok := d.Accept(RawInput{Code: "snow", Timestamp: t0}); !ok {
		t.Fatal("first input dropped")
	}
	if _, ok := d.Accept(RawInput{Code: "snow", Timestamp: t0.Add(50 * time.Millisecond)}); ok {
		t.Error("repeat inside the window accepted")
	}
	if _, ok := d.Accept(RawInput{Code: "rain", Timestamp: t0.Add(60 * time.Millisecond)}); !ok {
		t.Error("different input dropped")
	}
	if _, ok := d.Accept(RawInput{Code: "rain", Timestamp: t0.Add(time.Second)}); !ok {
		t.Error("repeat after the window dropped")
	}
}

func TestGetBindingsByAction(t *testing.T) {
	got := GetBindingsByAction()
	quit := got[ActionQuit]
	if len(quit) < 2 || quit[0] > quit[1] {
		t.Errorf("quit bindings = %v, want sorted list", quit)
	}
}
