// Package gameplay is the card's controller. A Game owns the progress document,
// funnels every mutation through one lock, persists after each change and
// publishes events once the change is complete.
package gameplay

import (
	"log"
	"sync"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Persister loads and saves the progress document.
type Persister interface {
	Load() *state.Document
	Save(*state.Document) error
	Clear() error
}

// Outcome is what a player action amounted to.
type Outcome int

const (
	OutcomeIgnored  Outcome = iota // not applicable right now
	OutcomeCorrect                 // the room is solved
	OutcomeWrong                   // counted as a failed attempt
	OutcomeProgress                // accepted, room not solved yet
	OutcomeHint                    // the input asked for a hint
	OutcomeLocked                  // refers to something still locked
)

type holdKind int

const (
	holdNone  holdKind = iota
	holdRoom           // timed room-solved hold, then auto-advance
	holdPause          // waits for Continue
	holdWin            // celebration, then final
)

// Game is the card's single state container.
type Game struct {
	mu    sync.Mutex
	cat   *rooms.Catalog
	doc   *state.Document
	store Persister
	clock Clock
	bus   *Bus

	// gen is bumped by every transition; timers only act if it is unchanged.
	gen     uint64
	holding holdKind
	hold    Timer
	idle    Timer
	code    string

	pending []Event
}

// New loads, sanitizes and resumes the progress for cat.
func New(cat *rooms.Catalog, store Persister, clock Clock) *Game {
	if clock == nil {
		clock = SystemClock{}
	}
	g := &Game{
		cat:   cat,
		store: store,
		clock: clock,
		bus:   NewBus(),
	}
	g.update(func() {
		g.doc = Sanitize(cat, store.Load())
		g.persist()
		g.resume()
	})
	return g
}

// Catalog returns the content the game plays.
func (g *Game) Catalog() *rooms.Catalog {
	return g.cat
}

// Subscribe registers an event listener.
func (g *Game) Subscribe(l Listener) (unsubscribe func()) {
	return g.bus.Subscribe(l)
}

// Document returns a copy of the current progress document.
func (g *Game) Document() *state.Document {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.doc.Clone()
}

// update runs fn under the lock and publishes the events it raised afterwards,
// so listeners may call back into the game.
func (g *Game) update(fn func()) {
	g.mu.Lock()
	fn()
	events := g.pending
	g.pending = nil
	g.mu.Unlock()

	for _, e := range events {
		g.bus.Publish(e)
	}
}

func (g *Game) emit(e Event) {
	g.pending = append(g.pending, e)
}

func (g *Game) persist() {
	if err := g.store.Save(g.doc); err != nil {
		log.Printf("store: save failed: %v", err)
	}
}

// activeRoom returns the current room when it accepts input of the given kind.
func (g *Game) activeRoom(kind rooms.Kind) (*rooms.Room, bool) {
	if g.doc.Stage != state.StagePuzzles || g.holding != holdNone {
		return nil, false
	}
	r := g.currentRoom()
	if r.Kind != kind || g.doc.Solved[r.ID] {
		return nil, false
	}
	return r, true
}

// roomState returns a private copy of a room's puzzle state in a valid shape.
func (g *Game) roomState(r *rooms.Room) state.RoomState {
	ps, ok := g.doc.PuzzleState[r.ID]
	if !ok || !ps.Valid(r) {
		return state.EmptyRoomState(r)
	}
	return ps.Clone()
}

// Submit answers a free-text room. Typing a hint word shows the hint instead.
func (g *Game) Submit(input string) Outcome {
	out := OutcomeIgnored
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindText)
		if !ok {
			return
		}
		g.touch()
		if isHintWord(input) {
			g.emit(Event{Kind: EventHintShown, Room: r.ID, Hint: currentHint(r, g.doc)})
			out = OutcomeHint
			return
		}
		if r.CheckText(input) {
			g.solveCurrent(r)
			out = OutcomeCorrect
			return
		}
		g.wrong(r)
		out = OutcomeWrong
	})
	return out
}

// Pick answers a choice room with a zero-based option index.
func (g *Game) Pick(index int) Outcome {
	out := OutcomeIgnored
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindChoice)
		if !ok {
			return
		}
		g.touch()
		if r.CheckChoice(index) {
			g.solveCurrent(r)
			out = OutcomeCorrect
			return
		}
		g.wrong(r)
		out = OutcomeWrong
	})
	return out
}

// Press clicks an item in a sequence room. A wrong item wipes the sequence.
func (g *Game) Press(item string) Outcome {
	out := OutcomeIgnored
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindSequence)
		if !ok {
			return
		}
		g.touch()
		ps := g.roomState(r)
		next, complete := r.StepSequence(ps.Clicks, item)
		ps.Clicks = next
		g.doc.PuzzleState[r.ID] = ps
		switch {
		case complete:
			g.solveCurrent(r)
			out = OutcomeCorrect
		case len(next) == 0:
			g.emit(Event{Kind: EventSequenceReset, Room: r.ID})
			g.wrong(r)
			out = OutcomeWrong
		default:
			g.persist()
			g.emit(Event{Kind: EventSequenceStep, Room: r.ID})
			out = OutcomeProgress
		}
	})
	return out
}

// ClearSequence throws away the clicks made so far without counting an attempt.
func (g *Game) ClearSequence() bool {
	var done bool
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindSequence)
		if !ok {
			return
		}
		g.doc.PuzzleState[r.ID] = state.EmptyRoomState(r)
		g.persist()
		g.emit(Event{Kind: EventSequenceReset, Room: r.ID})
		g.touch()
		done = true
	})
	return done
}

// Confirm presses the single button of an action room.
func (g *Game) Confirm() Outcome {
	out := OutcomeIgnored
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindAction)
		if !ok {
			return
		}
		g.solveCurrent(r)
		out = OutcomeCorrect
	})
	return out
}

// ToggleSound flips the sound setting.
func (g *Game) ToggleSound() bool {
	return g.toggle(func(s *state.Settings) *bool { return &s.Sound })
}

// ToggleReduceMotion flips the reduce motion setting.
func (g *Game) ToggleReduceMotion() bool {
	return g.toggle(func(s *state.Settings) *bool { return &s.ReduceMotion })
}

// ToggleHighContrast flips the high contrast setting.
func (g *Game) ToggleHighContrast() bool {
	return g.toggle(func(s *state.Settings) *bool { return &s.HighContrast })
}

func (g *Game) toggle(field func(*state.Settings) *bool) bool {
	var v bool
	g.update(func() {
		p := field(&g.doc.Settings)
		*p = !*p
		v = *p
		g.persist()
		g.emit(Event{Kind: EventSettingsChanged})
	})
	return v
}

// Settings returns the current presentation settings.
func (g *Game) Settings() state.Settings {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.doc.Settings
}
