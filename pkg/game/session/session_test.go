package session

import (
	"strings"
	"testing"
	"time"

	"wintercard/pkg/engine/input"
	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/renderer"
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
	"wintercard/pkg/game/store"
)

// stillClock never fires; holds end only through Continue.
type stillClock struct{}

type stillTimer struct{}

func (stillTimer) Stop() bool { return true }

func (stillClock) AfterFunc(time.Duration, func()) gameplay.Timer { return stillTimer{} }

func newSession(t *testing.T) (*Session, *gameplay.Game) {
	t.Helper()
	if err := renderer.LoadLocale(renderer.DefaultLanguage); err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	cat, err := rooms.Load("estate")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := gameplay.New(cat, store.New(store.NewMemoryBackend(), cat), stillClock{})
	s := New(g)
	t.Cleanup(s.Close)
	return s, g
}

// typed runs a line through the same mapping the renderers use.
func typed(s *Session, line string) bool {
	return s.Handle(input.MapToIntent(input.NewDebouncedInput(input.RawInput{Code: line})))
}

func toPuzzles(t *testing.T, s *Session, g *gameplay.Game) {
	t.Helper()
	for range 5 {
		typed(s, "")
	}
	if got := g.Stage(); got != state.StagePuzzles {
		t.Fatalf("stage = %v, want %v", got, state.StagePuzzles)
	}
}

func lastMessage(s *Session) string {
	lines := s.Messages()
	if len(lines) == 0 {
		return ""
	}
	return renderer.PlainText(lines[len(lines)-1])
}

func currentRoom(g *gameplay.Game) rooms.ID {
	return g.View().Room.ID
}

func TestHandle_EnterWalksIntroAndUnwrap(t *testing.T) {
	s, g := newSession(t)

	typed(s, "")
	if v := g.View(); v.Stage != state.StageIntro || v.Page != 1 {
		t.Fatalf("after one Enter: stage %v page %d, want intro page 1", v.Stage, v.Page)
	}
	typed(s, "")
	if got := g.Stage(); got != state.StageUnwrap {
		t.Fatalf("stage = %v, want %v", got, state.StageUnwrap)
	}
	typed(s, "tug")
	typed(s, "open")
	if got := g.Stage(); got != state.StageUnwrap {
		t.Fatalf("two tugs should not open, stage = %v", got)
	}
	typed(s, "")
	if got := g.Stage(); got != state.StagePuzzles {
		t.Fatalf("stage = %v, want %v", got, state.StagePuzzles)
	}
}

func TestHandle_EstateWalkthrough(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)

	steps := []struct {
		room  rooms.ID
		lines []string
	}{
		{"foyer", []string{""}},
		{"blueprint", []string{"C4"}},
		{"library", []string{"Valve", "store", "LIBRARY", "install", "Account"}},
		{"workshop", []string{"Y9J8X", "5G546", "q4frk"}},
	}
	for _, step := range steps {
		if got := currentRoom(g); got != step.room {
			t.Fatalf("current room = %s, want %s", got, step.room)
		}
		for _, line := range step.lines {
			typed(s, line)
		}
		if !g.Document().Solved[step.room] {
			t.Fatalf("%s not solved; messages %v", step.room, s.Messages())
		}
		typed(s, "") // end the hold
	}

	if got := currentRoom(g); got != "hearth" {
		t.Fatalf("current room = %s, want hearth", got)
	}
	typed(s, "")
	if got := g.Stage(); got != state.StageCelebration {
		t.Fatalf("stage = %v, want %v", got, state.StageCelebration)
	}
	typed(s, "")
	v := g.View()
	if v.Stage != state.StageFinal {
		t.Fatalf("stage = %v, want %v", v.Stage, state.StageFinal)
	}
	if v.Code != "Y9J8X-5G546-Q4FRK" {
		t.Errorf("code = %q", v.Code)
	}
}

func TestHandle_EarlyFragmentMessage(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)
	for _, line := range []string{"", "", "14", "", "valve", "store", "library", "install", "account", ""} {
		typed(s, line)
	}
	if got := currentRoom(g); got != "workshop" {
		t.Fatalf("current room = %s, want workshop", got)
	}

	typed(s, "Q4FRK")
	if got := lastMessage(s); got != "Fragment III is still locked." {
		t.Errorf("placing a locked fragment: %q", got)
	}

	typed(s, "Y9J8X")
	typed(s, "5G546")
	found := false
	for _, m := range s.Messages() {
		if renderer.PlainText(m) == "Fragment III slipped out early: Q4FRK" {
			found = true
		}
	}
	if !found {
		t.Errorf("early reveal message missing: %v", s.Messages())
	}

	typed(s, "clear 2")
	if got := g.View().Slots; got[1] != "" || got[0] != "Y9J8X" {
		t.Errorf("slots after clear 2 = %v", got)
	}
	typed(s, "clear")
	if got := g.View().Slots; strings.Join(got, "") != "" {
		t.Errorf("slots after clear = %v", got)
	}
}

func TestHandle_Messages(t *testing.T) {
	tests := []struct {
		name  string
		setup bool
		line  string
		want  string
	}{
		{"unknown command", false, "/dance", "Unknown command. Type help for the list."},
		{"answer on the letter", false, "snow", "Nothing to do with that right now."},
		{"hint on the letter", false, "hint", "Nothing to do with that right now."},
		{"missing room", true, "goto attic", "No room called attic."},
		{"locked room", true, "goto 5", "Hearth is still locked."},
		{"locked room by title", true, "goto Blueprint Room", "Blueprint Room is still locked."},
		{"hint in a room", true, "hint", "Hint 1/3: There's only one button in the Foyer. It's polite to press it."},
		{"skip outside celebration", true, "skip", "Nothing to do with that right now."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, g := newSession(t)
			if tt.setup {
				toPuzzles(t, s, g)
			}
			typed(s, tt.line)
			if got := lastMessage(s); got != tt.want {
				t.Errorf("last message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandle_SequenceUnknownItemIsNotAnAttempt(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)
	for _, line := range []string{"", "", "14", ""} {
		typed(s, line)
	}

	typed(s, "lamp")
	if got := lastMessage(s); got != "Nothing called lamp here." {
		t.Errorf("message = %q", got)
	}
	if got := g.Document().AttemptsByRoom["library"]; got != 0 {
		t.Errorf("attempts = %d, want 0", got)
	}

	typed(s, "valve")
	typed(s, "coal")
	if got := g.Document().AttemptsByRoom["library"]; got != 1 {
		t.Errorf("attempts after wrong item = %d, want 1", got)
	}
	if got := g.View().Clicks; len(got) != 0 {
		t.Errorf("clicks after wrong item = %v, want none", got)
	}
}

func TestHandle_GotoSolvedRoomAndBack(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)
	typed(s, "")
	typed(s, "")

	typed(s, "goto foyer")
	if got := currentRoom(g); got != "foyer" {
		t.Fatalf("current room = %s, want foyer", got)
	}
	typed(s, "")
	if got := currentRoom(g); got != "blueprint" {
		t.Errorf("Enter in a solved room should move on, got %s", got)
	}
}

func TestHandle_SettingsAndReset(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)

	typed(s, "sound")
	typed(s, "motion")
	typed(s, "contrast")
	want := state.Settings{Sound: true, ReduceMotion: true, HighContrast: true}
	if got := g.Settings(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}

	typed(s, "reset")
	typed(s, "yes")
	if got := g.Stage(); got != state.StageIntro {
		t.Errorf("stage after reset = %v", got)
	}
	msgs := s.Messages()
	if len(msgs) != 1 || renderer.PlainText(msgs[0]) != "The card has been wrapped up again." {
		t.Errorf("messages after reset = %v", msgs)
	}
}

func TestHandle_ResetNeedsConfirmation(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		wiped bool
		last  string
	}{
		{"bare reset asks", []string{"reset"}, false, "Wipe all progress on this card? Type reset yes (or y) to confirm."},
		{"reset then y", []string{"reset", "y"}, true, "The card has been wrapped up again."},
		{"reset yes at once", []string{"reset yes"}, true, "The card has been wrapped up again."},
		{"reset then no", []string{"reset", "no"}, false, "Reset cancelled. Your progress is kept."},
		{"reset then Enter", []string{"reset", ""}, false, "Reset cancelled. Your progress is kept."},
		{"reset then a command", []string{"reset", "hint"}, false, `Hint 1/3: The right books describe a very modern kind of "library."`},
		{"reset nope", []string{"reset nope"}, false, "Reset cancelled. Your progress is kept."},
		{"cancelled reset does not linger", []string{"reset", "no", "y"}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, g := newSession(t)
			toPuzzles(t, s, g)
			for _, line := range []string{"", "", "14", ""} {
				typed(s, line)
			}
			if !g.Document().Solved["foyer"] || !g.Document().Solved["blueprint"] {
				t.Fatalf("setup: foyer and blueprint should be solved; messages %v", s.Messages())
			}

			for _, line := range tt.lines {
				typed(s, line)
			}
			doc := g.Document()
			if wiped := !doc.Solved["foyer"]; wiped != tt.wiped {
				t.Errorf("wiped = %v, want %v (stage %v)", wiped, tt.wiped, doc.Stage)
			}
			if !tt.wiped && (doc.Stage != state.StagePuzzles || !doc.Solved["blueprint"]) {
				t.Errorf("progress changed: stage %v solved %v", doc.Stage, doc.Solved)
			}
			if tt.last != "" {
				if got := lastMessage(s); got != tt.last {
					t.Errorf("last message = %q, want %q", got, tt.last)
				}
			}
		})
	}
}

func TestHandle_HelpInTextRoomShowsHint(t *testing.T) {
	if err := renderer.LoadLocale(renderer.DefaultLanguage); err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
	cat, err := rooms.Load("terminal")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	g := gameplay.New(cat, store.New(store.NewMemoryBackend(), cat), stillClock{})
	s := New(g)
	t.Cleanup(s.Close)
	for i := 0; i < 20 && g.Stage() != state.StagePuzzles; i++ {
		typed(s, "")
	}
	if got := currentRoom(g); got != "R01" {
		t.Fatalf("current room = %s, want R01", got)
	}

	typed(s, "help")
	if got := lastMessage(s); got != "Hint 1/3: Think: hot water + air." {
		t.Errorf("help in a text room: last message = %q", got)
	}
	if got := g.Document().AttemptsByRoom["R01"]; got != 0 {
		t.Errorf("attempts = %d, want 0", got)
	}
}

func TestHandle_NextHintInSolvedRoom(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)
	typed(s, "")
	typed(s, "goto foyer")

	typed(s, "more")
	if got := lastMessage(s); got != "Nothing to do with that right now." {
		t.Errorf("more in a solved room: last message = %q", got)
	}
	if got := g.Document().HintLevelByRoom["foyer"]; got != 0 {
		t.Errorf("hint level = %d, want 0", got)
	}
}

func TestHandle_Quit(t *testing.T) {
	s, _ := newSession(t)
	for _, line := range []string{"quit", "exit", "ctrl_c"} {
		if !typed(s, line) {
			t.Errorf("%q should quit", line)
		}
	}
	if typed(s, "") {
		t.Error("Enter should not quit")
	}
}

func TestFrame(t *testing.T) {
	s, g := newSession(t)
	toPuzzles(t, s, g)

	f := s.Frame()
	if f.View.Stage != state.StagePuzzles || f.View.Room.ID != "foyer" {
		t.Errorf("frame view = %v / %v", f.View.Stage, f.View.Room.ID)
	}
	if len(f.Messages) == 0 {
		t.Error("frame should carry the room-entered message")
	}
}
