package gameplay

import (
	"github.com/zyedidia/generic/mapset"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// UnlockedRooms walks the room order and returns every room up to and
// including the first unsolved one. The first room is always unlocked.
func UnlockedRooms(cat *rooms.Catalog, doc *state.Document) mapset.Set[rooms.ID] {
	unlocked := mapset.New[rooms.ID]()
	for _, id := range unlockedOrder(cat, doc) {
		unlocked.Put(id)
	}
	return unlocked
}

func unlockedOrder(cat *rooms.Catalog, doc *state.Document) []rooms.ID {
	var ids []rooms.ID
	for _, r := range cat.Rooms {
		ids = append(ids, r.ID)
		if !doc.Solved[r.ID] {
			break
		}
	}
	return ids
}

// UnlockedRooms returns the rooms the player may currently visit.
func (g *Game) UnlockedRooms() mapset.Set[rooms.ID] {
	g.mu.Lock()
	defer g.mu.Unlock()
	return UnlockedRooms(g.cat, g.doc)
}

// MarkSolved flags a room as solved. Solving an already solved room does nothing.
func (g *Game) MarkSolved(id rooms.ID) {
	g.update(func() {
		g.markSolved(id)
	})
}

func (g *Game) markSolved(id rooms.ID) bool {
	if _, ok := g.cat.Room(id); !ok || g.doc.Solved[id] {
		return false
	}
	g.doc.Solved[id] = true
	g.persist()
	g.emit(Event{Kind: EventRoomSolved, Room: id})
	return true
}

// TrySetCurrentRoom moves the player to an unlocked room. A locked or unknown
// room leaves everything as it was and emits a locked event.
func (g *Game) TrySetCurrentRoom(id rooms.ID) bool {
	var moved bool
	g.update(func() {
		if g.doc.Stage != state.StagePuzzles {
			return
		}
		if !UnlockedRooms(g.cat, g.doc).Has(id) {
			g.emit(Event{Kind: EventLocked, Room: id})
			return
		}
		moved = true
		if id == g.doc.CurrentRoomID {
			return
		}
		g.cancelHold()
		g.enterRoom(id)
	})
	return moved
}

func (g *Game) enterRoom(id rooms.ID) {
	g.doc.CurrentRoomID = id
	g.clampCurrentRoom()
	g.persist()
	g.emit(Event{Kind: EventRoomEntered, Room: g.doc.CurrentRoomID})
	g.armIdle()
}

// clampCurrentRoom keeps the current room reachable after in-session changes.
func (g *Game) clampCurrentRoom() {
	if !UnlockedRooms(g.cat, g.doc).Has(g.doc.CurrentRoomID) {
		g.doc.CurrentRoomID = g.cat.First()
	}
}

func (g *Game) currentRoom() *rooms.Room {
	r, ok := g.cat.Room(g.doc.CurrentRoomID)
	if !ok {
		return &g.cat.Rooms[0]
	}
	return r
}
