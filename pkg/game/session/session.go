// Package session turns player intents into card operations and keeps the
// message pane fed from the game's events.
package session

import (
	"strconv"

	"wintercard/pkg/engine/input"
	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/renderer"
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Session is one player at one card.
type Session struct {
	game        *gameplay.Game
	messages    renderer.MessageLog
	unsubscribe func()
	resetArmed  bool // waiting for the player to confirm a reset
}

// New attaches a session to g. Every event with a description lands in the
// message pane.
func New(g *gameplay.Game) *Session {
	s := &Session{game: g}
	cat := g.Catalog()
	s.unsubscribe = g.Subscribe(func(e gameplay.Event) {
		s.messages.Add(renderer.Describe(cat, e))
	})
	return s
}

// Close detaches the session from the game.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

// Frame captures what the renderer should draw now.
func (s *Session) Frame() renderer.Frame {
	return renderer.Frame{View: s.game.View(), Messages: s.messages.Lines()}
}

// Messages returns the current message pane lines.
func (s *Session) Messages() []string {
	return s.messages.Lines()
}

// Handle applies one intent. It reports whether the player asked to quit.
func (s *Session) Handle(in input.Intent) (quit bool) {
	g := s.game
	if s.resetArmed && in.Action != input.ActionReset {
		s.resetArmed = false
		switch in.Action {
		case input.ActionSubmit, input.ActionContinue:
			if isYes(in.Text) {
				s.reset()
			} else {
				s.note("MSG_RESET_KEPT")
			}
			return false
		}
		s.note("MSG_RESET_KEPT")
	}

	switch in.Action {
	case input.ActionQuit:
		return true
	case input.ActionNone:
		s.note("MSG_UNKNOWN_COMMAND")
	case input.ActionHelp:
		// The renderer swaps to the help screen; in a text room the hint
		// lands in the message pane as well.
		if v := g.View(); v.Stage == state.StagePuzzles && v.Room.Kind == rooms.KindText && !isSolved(v) {
			s.showHint()
		}
	case input.ActionContinue:
		s.proceed()
	case input.ActionNextPage:
		s.check(g.NextPage())
	case input.ActionBegin:
		s.check(g.Begin())
	case input.ActionUnwrap:
		s.check(g.Unwrap())
	case input.ActionHint:
		s.showHint()
	case input.ActionNextHint:
		if v := g.View(); v.Stage != state.StagePuzzles || isSolved(v) {
			s.note("MSG_NOT_NOW")
			return false
		}
		g.AdvanceHint()
	case input.ActionClear:
		s.clear(in.Index)
	case input.ActionGoto:
		s.gotoRoom(in.Text)
	case input.ActionRestartRoom:
		s.check(g.ResetRoom())
	case input.ActionSkip:
		s.check(g.Skip())
	case input.ActionReset:
		s.askReset(in.Text)
	case input.ActionToggleSound:
		g.ToggleSound()
	case input.ActionToggleMotion:
		g.ToggleReduceMotion()
	case input.ActionToggleContrast:
		g.ToggleHighContrast()
	case input.ActionSubmit:
		s.answer(in.Text)
	}
	return false
}

// proceed is what Enter on an empty line means on each screen.
func (s *Session) proceed() {
	g := s.game
	v := g.View()
	switch v.Stage {
	case state.StageIntro:
		if !g.NextPage() {
			g.Begin()
		}
	case state.StageUnwrap:
		g.Unwrap()
	case state.StagePuzzles:
		if g.Continue() {
			return
		}
		if v.Room.Kind == rooms.KindAction && !isSolved(v) {
			g.Confirm()
			return
		}
		if isSolved(v) {
			s.nextUnsolved(v)
		}
	case state.StageCelebration:
		g.Skip()
	}
}

func (s *Session) answer(text string) {
	g := s.game
	v := g.View()
	if v.Stage != state.StagePuzzles {
		s.note("MSG_NOT_NOW")
		return
	}

	r := v.Room
	var out gameplay.Outcome
	switch r.Kind {
	case rooms.KindText:
		out = g.Submit(text)
	case rooms.KindChoice:
		out = g.Pick(r.ParseChoice(text))
	case rooms.KindSequence:
		id, ok := r.FindItem(text)
		if !ok {
			s.messages.Add(renderer.Mark("DENIED", renderer.Translate("MSG_NO_SUCH_ITEM", text)))
			return
		}
		out = g.Press(id)
	case rooms.KindAssembly:
		out = g.PlaceFragment(text)
	case rooms.KindAction:
		out = g.Confirm()
	}
	if out == gameplay.OutcomeIgnored {
		s.note("MSG_NOT_NOW")
	}
}

func (s *Session) showHint() {
	v := s.game.View()
	if v.Stage != state.StagePuzzles {
		s.note("MSG_NOT_NOW")
		return
	}
	h := s.game.CurrentHint(v.Room.ID)
	s.messages.Add(renderer.Describe(s.game.Catalog(), gameplay.Event{Kind: gameplay.EventHintShown, Room: v.Room.ID, Hint: h}))
}

func (s *Session) clear(index int) {
	g := s.game
	v := g.View()
	if v.Stage != state.StagePuzzles {
		s.note("MSG_NOT_NOW")
		return
	}
	var done bool
	switch v.Room.Kind {
	case rooms.KindSequence:
		done = g.ClearSequence()
	case rooms.KindAssembly:
		if index >= 0 {
			done = g.ClearSlot(index)
		} else {
			done = g.ClearSlots()
		}
	}
	s.check(done)
}

// gotoRoom accepts a room number, id or title.
func (s *Session) gotoRoom(target string) {
	cat := s.game.Catalog()
	id, ok := findRoom(cat, target)
	if !ok {
		s.messages.Add(renderer.Mark("DENIED", renderer.Translate("MSG_NO_SUCH_ROOM", target)))
		return
	}
	if s.game.Stage() != state.StagePuzzles {
		s.note("MSG_NOT_NOW")
		return
	}
	s.game.TrySetCurrentRoom(id)
}

func findRoom(cat *rooms.Catalog, target string) (rooms.ID, bool) {
	if n, err := strconv.Atoi(target); err == nil {
		if n >= 1 && n <= cat.Len() {
			return cat.Rooms[n-1].ID, true
		}
		return "", false
	}
	want := rooms.Normalize(target)
	for _, r := range cat.Rooms {
		if rooms.Normalize(string(r.ID)) == want || rooms.Normalize(r.Title) == want {
			return r.ID, true
		}
	}
	return "", false
}

// nextUnsolved moves on from a revisited, already solved room.
func (s *Session) nextUnsolved(v gameplay.View) {
	for _, e := range v.Map {
		if e.Unlocked && !e.Solved {
			s.game.TrySetCurrentRoom(e.ID)
			return
		}
	}
}

func isSolved(v gameplay.View) bool {
	for _, e := range v.Map {
		if e.Current {
			return e.Solved
		}
	}
	return false
}

// askReset wipes progress only on an explicit yes. A bare reset asks first.
func (s *Session) askReset(reply string) {
	switch {
	case isYes(reply):
		s.resetArmed = false
		s.reset()
	case reply != "":
		s.resetArmed = false
		s.note("MSG_RESET_KEPT")
	default:
		s.resetArmed = true
		s.messages.Add(renderer.Mark("DENIED", renderer.Translate("MSG_RESET_CONFIRM")))
	}
}

func (s *Session) reset() {
	s.messages.Clear()
	s.game.Reset()
}

func isYes(reply string) bool {
	switch rooms.Normalize(reply) {
	case "yes", "y":
		return true
	}
	return false
}

func (s *Session) check(ok bool) {
	if !ok {
		s.note("MSG_NOT_NOW")
	}
}

func (s *Session) note(key string) {
	s.messages.Add(renderer.Mark("SUBTLE", renderer.Translate(key)))
}
