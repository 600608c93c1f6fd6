package gameplay

import (
	"errors"
	"sync"
	"testing"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
	"wintercard/pkg/game/store"
)

const testCatalog = `
name: test
title: Test Card
storageKey: test_v1
separator: "-"
letter: [one, two]
unwrapTaps: 2
timing: {roomHold: 3s, reducedRoomHold: 500ms, winHold: 7s, reducedWinHold: 1s, idleNudge: 55s}
fragments:
  - {id: f1, value: AAAAA}
  - {id: f2, value: BBBBB}
rooms:
  - {id: room1, kind: action}
  - {id: room2, kind: text, answers: [snow], reveals: f1, hints: [one, two, three]}
  - {id: room3, kind: choice, options: [x, y], answer: 1, reveals: f2, hintPolicy: attempts, hints: [a, b], pauseAfter: true}
  - {id: room4, kind: text, answers: [end], nudge: true}
`

func testCat(t *testing.T) *rooms.Catalog {
	t.Helper()
	cat, err := rooms.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("rooms.Parse: %v", err)
	}
	return cat
}

func loadCat(t *testing.T, name string) *rooms.Catalog {
	t.Helper()
	cat, err := rooms.Load(name)
	if err != nil {
		t.Fatalf("rooms.Load(%q): %v", name, err)
	}
	return cat
}

type harness struct {
	g       *Game
	cat     *rooms.Catalog
	backend *store.MemoryBackend
	store   *store.Store
	clock   *fakeClock

	mu     sync.Mutex
	events []Event
}

func newHarness(t *testing.T, cat *rooms.Catalog) *harness {
	t.Helper()
	b := store.NewMemoryBackend()
	return newHarnessOn(t, cat, b)
}

func newHarnessOn(t *testing.T, cat *rooms.Catalog, b *store.MemoryBackend) *harness {
	t.Helper()
	h := &harness{cat: cat, backend: b, store: store.New(b, cat), clock: &fakeClock{}}
	h.g = New(cat, h.store, h.clock)
	h.g.Subscribe(func(e Event) {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.events = append(h.events, e)
	})
	return h
}

func (h *harness) count(kind EventKind) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func (h *harness) last(kind EventKind) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.events) - 1; i >= 0; i-- {
		if h.events[i].Kind == kind {
			return h.events[i], true
		}
	}
	return Event{}, false
}

// toPuzzles pages through the letter and unwraps the present.
func (h *harness) toPuzzles(t *testing.T) {
	t.Helper()
	for h.g.NextPage() {
	}
	if !h.g.Begin() {
		t.Fatal("Begin() = false on the last page")
	}
	for !h.g.Unwrap() {
	}
	if got := h.g.Stage(); got != state.StagePuzzles {
		t.Fatalf("Stage() = %q, want puzzles", got)
	}
}

func (h *harness) current() rooms.ID {
	return h.g.Document().CurrentRoomID
}

type failingStore struct {
	doc *state.Document
}

func (f *failingStore) Load() *state.Document      { return f.doc }
func (f *failingStore) Save(*state.Document) error { return errors.New("disk full") }
func (f *failingStore) Clear() error               { return errors.New("disk full") }
