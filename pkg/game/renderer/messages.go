package renderer

import (
	"sync"

	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/rooms"
)

// MaxMessages is how many lines the message pane keeps.
const MaxMessages = 5

// MessageLog keeps the most recent messages. Events arrive from timer
// goroutines as well as the input loop, so it is safe for concurrent use.
type MessageLog struct {
	mu    sync.Mutex
	lines []string
}

// Add appends a message, dropping the oldest once full. Empty messages are ignored.
func (m *MessageLog) Add(msg string) {
	if msg == "" {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, msg)
	if len(m.lines) > MaxMessages {
		m.lines = m.lines[len(m.lines)-MaxMessages:]
	}
}

// Lines returns a copy of the current messages, oldest first.
func (m *MessageLog) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// Clear drops every message.
func (m *MessageLog) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = nil
}

// Describe turns an event into a message-pane line, or "" when the event is
// only of interest to audio and effects.
func Describe(cat *rooms.Catalog, e gameplay.Event) string {
	switch e.Kind {
	case gameplay.EventRoomSolved:
		return Mark("GOOD", tr("MSG_ROOM_SOLVED", roomTitle(cat, e.Room)))
	case gameplay.EventWrongAnswer:
		return Mark("DENIED", tr("MSG_WRONG"))
	case gameplay.EventFragmentUnlocked:
		f, _ := cat.Fragment(e.Fragment)
		if e.Early {
			return Mark("GOOD", tr("MSG_FRAGMENT_EARLY", f.Label)) + " " + Mark("CODE", f.Value)
		}
		return Mark("GOOD", tr("MSG_FRAGMENT", f.Label)) + " " + Mark("CODE", f.Value)
	case gameplay.EventAllSolved:
		return Mark("TITLE", tr("MSG_ALL_SOLVED"))
	case gameplay.EventLocked:
		if e.Fragment != "" {
			f, _ := cat.Fragment(e.Fragment)
			return Mark("LOCKED", tr("MSG_FRAGMENT_LOCKED", f.Label))
		}
		return Mark("LOCKED", tr("MSG_ROOM_LOCKED", roomTitle(cat, e.Room)))
	case gameplay.EventHintShown:
		return Mark("HINT", tr("HINT_LABEL", e.Hint.Level+1, e.Hint.Total)) + " " + e.Hint.Text
	case gameplay.EventSequenceReset:
		return Mark("DENIED", tr("MSG_SEQUENCE_RESET"))
	case gameplay.EventRoomEntered:
		return Mark("SUBTLE", tr("MSG_ROOM_ENTERED")) + " " + Mark("ROOM", roomTitle(cat, e.Room))
	case gameplay.EventIdleNudge:
		return Mark("HINT", tr("MSG_IDLE_NUDGE"))
	case gameplay.EventSettingsChanged:
		return Mark("SUBTLE", tr("MSG_SETTINGS"))
	case gameplay.EventReset:
		return Mark("SUBTLE", tr("MSG_RESET"))
	}
	return ""
}

func roomTitle(cat *rooms.Catalog, id rooms.ID) string {
	if r, ok := cat.Room(id); ok && r.Title != "" {
		return r.Title
	}
	return string(id)
}
