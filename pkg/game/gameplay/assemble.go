package gameplay

import (
	"slices"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Assemble returns the full code once every fragment's gating room is solved.
func Assemble(cat *rooms.Catalog, doc *state.Document) (string, bool) {
	for _, f := range cat.Fragments {
		if !doc.Solved[cat.Gate(f.ID)] {
			return "", false
		}
	}
	return cat.Code(), true
}

// PartialCode shows unlocked fragments and masks the rest.
func PartialCode(cat *rooms.Catalog, doc *state.Document) string {
	parts := make([]string, len(cat.Fragments))
	for i, f := range cat.Fragments {
		if doc.FragmentsUnlocked[f.ID] {
			parts[i] = f.Value
		} else {
			parts[i] = f.Masked()
		}
	}
	return cat.Join(parts)
}

// PlaceFragment drops a fragment into the next empty slot of the assembly room.
func (g *Game) PlaceFragment(value string) Outcome {
	out := OutcomeIgnored
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindAssembly)
		if !ok {
			return
		}
		g.touch()
		f, ok := g.cat.FragmentByValue(value)
		if !ok {
			g.wrong(r)
			out = OutcomeWrong
			return
		}
		if !g.doc.FragmentsUnlocked[f.ID] {
			g.emit(Event{Kind: EventLocked, Room: r.ID, Fragment: f.ID})
			out = OutcomeLocked
			return
		}
		ps := g.roomState(r)
		idx := slices.Index(ps.Slots, "")
		if idx < 0 {
			return
		}
		ps.Slots[idx] = f.Value
		g.doc.PuzzleState[r.ID] = ps
		g.persist()
		g.emit(Event{Kind: EventSlotsChanged, Room: r.ID})
		out = g.evaluateSlots(r, ps.Slots)
	})
	return out
}

// evaluateSlots fires the early reveal of the last fragment when every slot
// before the last holds its fragment in order, then judges a full ticket.
func (g *Game) evaluateSlots(r *rooms.Room, slots []string) Outcome {
	values := g.cat.FragmentValues()
	last := g.cat.Fragments[len(values)-1]
	if !g.doc.FragmentsUnlocked[last.ID] && slices.Equal(slots[:len(values)-1], values[:len(values)-1]) {
		g.unlockFragment(last.ID, true)
		return OutcomeProgress
	}
	if slices.Contains(slots, "") {
		return OutcomeProgress
	}
	if g.cat.Join(slots) == g.cat.Code() {
		g.solveCurrent(r)
		return OutcomeCorrect
	}
	g.wrong(r)
	return OutcomeWrong
}

// ClearSlot empties one slot, counted from zero.
func (g *Game) ClearSlot(i int) bool {
	var done bool
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindAssembly)
		if !ok {
			return
		}
		ps := g.roomState(r)
		if i < 0 || i >= len(ps.Slots) || ps.Slots[i] == "" {
			return
		}
		ps.Slots[i] = ""
		g.doc.PuzzleState[r.ID] = ps
		g.persist()
		g.emit(Event{Kind: EventSlotsChanged, Room: r.ID})
		g.touch()
		done = true
	})
	return done
}

// ClearSlots empties every slot.
func (g *Game) ClearSlots() bool {
	var done bool
	g.update(func() {
		r, ok := g.activeRoom(rooms.KindAssembly)
		if !ok {
			return
		}
		g.doc.PuzzleState[r.ID] = state.EmptyRoomState(r)
		g.persist()
		g.emit(Event{Kind: EventSlotsChanged, Room: r.ID})
		g.touch()
		done = true
	})
	return done
}

func (g *Game) unlockFragment(id rooms.FragmentID, early bool) {
	if g.doc.FragmentsUnlocked[id] {
		return
	}
	g.doc.FragmentsUnlocked[id] = true
	g.persist()
	g.emit(Event{Kind: EventFragmentUnlocked, Fragment: id, Room: g.cat.Gate(id), Early: early})
}
