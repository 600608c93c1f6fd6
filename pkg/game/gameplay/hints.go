package gameplay

import (
	"strings"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// FallbackHint is shown for rooms that ship without hints.
const FallbackHint = "Try the obvious, then simplify."

var hintWords = map[string]bool{"help": true, "hint": true, "?": true, "h": true}

// Hint is the rung of a room's hint ladder currently on show.
type Hint struct {
	Room  rooms.ID
	Text  string
	Level int
	Total int
}

func hintLadder(r *rooms.Room) []string {
	if len(r.Hints) == 0 {
		return []string{FallbackHint}
	}
	return r.Hints
}

func clampLevel(level, total int) int {
	return max(0, min(level, total-1))
}

func currentHint(r *rooms.Room, doc *state.Document) Hint {
	ladder := hintLadder(r)
	level := doc.HintLevelByRoom[r.ID]
	if r.HintPolicy == rooms.HintsOnAttempts {
		level = doc.AttemptsByRoom[r.ID]
	}
	level = clampLevel(level, len(ladder))
	return Hint{Room: r.ID, Text: ladder[level], Level: level, Total: len(ladder)}
}

// CurrentHint returns the hint on show for a room.
func (g *Game) CurrentHint(id rooms.ID) Hint {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.cat.Room(id)
	if !ok {
		return Hint{Room: id, Text: FallbackHint, Total: 1}
	}
	return currentHint(r, g.doc)
}

// AdvanceHint moves the current room's ladder up one rung. It saturates at the
// last hint and does nothing in rooms whose hints follow wrong attempts, in
// solved rooms, or outside the puzzles stage.
func (g *Game) AdvanceHint() Hint {
	var h Hint
	g.update(func() {
		r := g.currentRoom()
		if g.doc.Stage != state.StagePuzzles || g.doc.Solved[r.ID] {
			h = currentHint(r, g.doc)
			return
		}
		if r.HintPolicy == rooms.HintsOnRequest {
			total := len(hintLadder(r))
			g.doc.HintLevelByRoom[r.ID] = clampLevel(g.doc.HintLevelByRoom[r.ID]+1, total)
			g.persist()
		}
		h = currentHint(r, g.doc)
		g.emit(Event{Kind: EventHintShown, Room: r.ID, Hint: h})
		g.touch()
	})
	return h
}

// ResetRoom returns an unsolved room to a clean start: its hint ladder, wrong
// attempts and local puzzle state all go back to their defaults.
func (g *Game) ResetRoom() bool {
	var done bool
	g.update(func() {
		r := g.currentRoom()
		if g.doc.Stage != state.StagePuzzles || g.doc.Solved[r.ID] {
			return
		}
		g.resetRoomHints(r)
		g.doc.PuzzleState[r.ID] = state.EmptyRoomState(r)
		g.persist()
		g.emit(Event{Kind: EventHintShown, Room: r.ID, Hint: currentHint(r, g.doc)})
		done = true
	})
	return done
}

func (g *Game) resetRoomHints(r *rooms.Room) {
	g.doc.HintLevelByRoom[r.ID] = 0
	g.doc.AttemptsByRoom[r.ID] = 0
}

// wrong records a failed submission. Attempts always count; in attempt-driven
// rooms the hint level follows them.
func (g *Game) wrong(r *rooms.Room) {
	g.doc.AttemptsByRoom[r.ID]++
	if r.HintPolicy == rooms.HintsOnAttempts {
		level := clampLevel(g.doc.AttemptsByRoom[r.ID], len(hintLadder(r)))
		g.doc.HintLevelByRoom[r.ID] = max(g.doc.HintLevelByRoom[r.ID], level)
	}
	g.persist()
	g.emit(Event{Kind: EventWrongAnswer, Room: r.ID, Hint: currentHint(r, g.doc)})
}

func isHintWord(input string) bool {
	return hintWords[strings.ToLower(strings.TrimSpace(input))]
}
