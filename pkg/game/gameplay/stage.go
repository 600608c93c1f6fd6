package gameplay

import (
	"log"
	"time"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Stage returns the screen the card is on.
func (g *Game) Stage() state.Stage {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.doc.Stage
}

func (g *Game) setStage(s state.Stage) {
	if g.doc.Stage == s {
		return
	}
	g.doc.Stage = s
	g.persist()
	g.emit(Event{Kind: EventStageChanged, Stage: s})
}

// NextPage turns the letter to its next page.
func (g *Game) NextPage() bool {
	var turned bool
	g.update(func() {
		if g.doc.Stage != state.StageIntro || g.doc.IntroPage >= len(g.cat.Letter)-1 {
			return
		}
		g.doc.IntroPage++
		g.persist()
		turned = true
	})
	return turned
}

// Begin leaves the letter. It only works once the last page has been reached.
func (g *Game) Begin() bool {
	var begun bool
	g.update(func() {
		if g.doc.Stage != state.StageIntro || g.doc.IntroPage < len(g.cat.Letter)-1 {
			return
		}
		g.setStage(state.StageUnwrap)
		begun = true
	})
	return begun
}

func (g *Game) unwrapRequired() int {
	if g.doc.Settings.ReduceMotion {
		return 1
	}
	return g.cat.UnwrapTaps
}

// Unwrap tugs at the present. Enough tugs open it and the first room appears.
func (g *Game) Unwrap() bool {
	var opened bool
	g.update(func() {
		if g.doc.Stage != state.StageUnwrap {
			return
		}
		g.doc.UnwrapTaps++
		if g.doc.UnwrapTaps < g.unwrapRequired() {
			g.persist()
			return
		}
		g.doc.UnwrapTaps = max(g.doc.UnwrapTaps, g.cat.UnwrapTaps)
		g.setStage(state.StagePuzzles)
		g.emit(Event{Kind: EventRoomEntered, Room: g.doc.CurrentRoomID})
		g.armIdle()
		opened = true
	})
	return opened
}

// UnwrapProgress returns the taps made and the taps needed.
func (g *Game) UnwrapProgress() (taps, required int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return min(g.doc.UnwrapTaps, g.unwrapRequired()), g.unwrapRequired()
}

func (g *Game) roomHold() time.Duration {
	if g.doc.Settings.ReduceMotion {
		return g.cat.Timing.ReducedRoomHold
	}
	return g.cat.Timing.RoomHold
}

func (g *Game) winHold() time.Duration {
	if g.doc.Settings.ReduceMotion {
		return g.cat.Timing.ReducedWinHold
	}
	return g.cat.Timing.WinHold
}

// schedule arms the single hold timer. The callback runs only if no other
// transition happened in between.
func (g *Game) schedule(kind holdKind, d time.Duration, fire func()) {
	g.cancelHold()
	g.holding = kind
	gen := g.gen
	g.hold = g.clock.AfterFunc(d, func() {
		g.update(func() {
			if g.gen != gen || g.holding != kind {
				return
			}
			fire()
		})
	})
}

// cancelHold invalidates any pending hold timer.
func (g *Game) cancelHold() {
	g.gen++
	if g.hold != nil {
		g.hold.Stop()
		g.hold = nil
	}
	g.holding = holdNone
}

// solveCurrent records a correct answer and starts the hold that follows it.
func (g *Game) solveCurrent(r *rooms.Room) {
	g.markSolved(r.ID)
	if r.Reveals != "" {
		g.unlockFragment(r.Reveals, false)
	}
	g.stopIdle()

	if g.doc.AllSolved(g.cat) {
		g.enterCelebration()
		return
	}
	if r.PauseAfter {
		g.cancelHold()
		g.holding = holdPause
		return
	}
	g.schedule(holdRoom, g.roomHold(), g.advance)
}

// advance moves from the solved current room to the next one, exactly once.
func (g *Game) advance() {
	g.cancelHold()
	cur := g.doc.CurrentRoomID
	if !g.doc.Solved[cur] {
		return
	}
	next, ok := g.cat.Next(cur)
	if !ok {
		return
	}
	g.enterRoom(next)
}

// Continue ends the room-solved hold now, or skips the celebration.
func (g *Game) Continue() bool {
	var moved bool
	g.update(func() {
		switch {
		case g.doc.Stage == state.StageCelebration:
			g.finish()
			moved = true
		case g.holding == holdRoom || g.holding == holdPause:
			g.advance()
			moved = true
		}
	})
	return moved
}

// Skip jumps past the celebration to the final reveal.
func (g *Game) Skip() bool {
	var skipped bool
	g.update(func() {
		if g.doc.Stage != state.StageCelebration {
			return
		}
		g.finish()
		skipped = true
	})
	return skipped
}

func (g *Game) enterCelebration() {
	code, ok := Assemble(g.cat, g.doc)
	if !ok {
		return
	}
	g.code = code
	g.emit(Event{Kind: EventAllSolved, Code: code})
	g.setStage(state.StageCelebration)
	g.schedule(holdWin, g.winHold(), g.finish)
}

func (g *Game) finish() {
	g.cancelHold()
	g.setStage(state.StageFinal)
}

// Reset wipes all progress and returns to the letter.
func (g *Game) Reset() {
	g.update(func() {
		g.cancelHold()
		g.stopIdle()
		if err := g.store.Clear(); err != nil {
			log.Printf("store: clear failed: %v", err)
		}
		g.doc = Sanitize(g.cat, state.Defaults(g.cat))
		g.code = ""
		g.persist()
		g.emit(Event{Kind: EventReset, Stage: g.doc.Stage})
	})
}

// resume picks up a loaded document where the player left it.
func (g *Game) resume() {
	switch g.doc.Stage {
	case state.StagePuzzles:
		if g.doc.AllSolved(g.cat) {
			g.enterCelebration()
			return
		}
		if g.doc.Solved[g.doc.CurrentRoomID] {
			g.advance()
			return
		}
		g.armIdle()
	case state.StageCelebration:
		g.code, _ = Assemble(g.cat, g.doc)
		g.schedule(holdWin, g.winHold(), g.finish)
	case state.StageFinal:
		g.code, _ = Assemble(g.cat, g.doc)
	}
}

// armIdle starts the nudge timer for rooms that want one.
func (g *Game) armIdle() {
	g.stopIdle()
	r := g.currentRoom()
	if g.doc.Stage != state.StagePuzzles || !r.Nudge || g.doc.Solved[r.ID] || g.cat.Timing.IdleNudge <= 0 {
		return
	}
	id := r.ID
	var t Timer
	t = g.clock.AfterFunc(g.cat.Timing.IdleNudge, func() {
		g.update(func() {
			if g.idle != t || g.doc.CurrentRoomID != id || g.doc.Solved[id] {
				return
			}
			g.idle = nil
			g.emit(Event{Kind: EventIdleNudge, Room: id, Hint: currentHint(r, g.doc)})
		})
	})
	g.idle = t
}

func (g *Game) stopIdle() {
	if g.idle != nil {
		g.idle.Stop()
		g.idle = nil
	}
}

// touch records player activity: the idle nudge starts over.
func (g *Game) touch() {
	g.armIdle()
}
