package gameplay

import (
	"log"
	"slices"
	"sync"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// EventKind names something that happened in the game.
type EventKind int

const (
	EventRoomSolved EventKind = iota
	EventWrongAnswer
	EventFragmentUnlocked
	EventAllSolved
	EventLocked
	EventHintShown
	EventStageChanged
	EventSequenceStep
	EventSequenceReset
	EventSlotsChanged
	EventRoomEntered
	EventIdleNudge
	EventSettingsChanged
	EventReset
)

var eventNames = map[EventKind]string{
	EventRoomSolved:       "roomSolved",
	EventWrongAnswer:      "wrongAnswer",
	EventFragmentUnlocked: "fragmentUnlocked",
	EventAllSolved:        "allSolved",
	EventLocked:           "locked",
	EventHintShown:        "hintShown",
	EventStageChanged:     "stageChanged",
	EventSequenceStep:     "sequenceStep",
	EventSequenceReset:    "sequenceReset",
	EventSlotsChanged:     "slotsChanged",
	EventRoomEntered:      "roomEntered",
	EventIdleNudge:        "idleNudge",
	EventSettingsChanged:  "settingsChanged",
	EventReset:            "reset",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is a fire-and-forget notification for renderers, audio and effects.
// Only the fields relevant to Kind are set.
type Event struct {
	Kind     EventKind
	Room     rooms.ID
	Fragment rooms.FragmentID
	Stage    state.Stage
	Early    bool   // fragment revealed before its room was solved
	Code     string // assembled code on allSolved
	Hint     Hint
}

// Listener receives events after the state change that caused them is complete.
type Listener func(Event)

// Bus fans events out to listeners. A panicking listener is logged and skipped;
// the game never depends on what listeners do.
type Bus struct {
	mu        sync.Mutex
	next      int
	listeners map[int]Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns a function that removes it.
func (b *Bus) Subscribe(l Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	b.listeners[id] = l
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Publish delivers e to every listener in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	ids := make([]int, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	ls := make([]Listener, 0, len(ids))
	for _, id := range ids {
		ls = append(ls, b.listeners[id])
	}
	b.mu.Unlock()

	for _, l := range ls {
		deliver(l, e)
	}
}

func deliver(l Listener, e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("events: listener panicked on %s: %v", e.Kind, r)
		}
	}()
	l(e)
}
