package gameplay

import (
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// Sanitize repairs a document so it only describes progress that could have
// been reached by playing. Every dependent flag is re-derived from the solved
// map; nothing is ever forced to true. The input is not modified and applying
// Sanitize twice gives the same result as applying it once.
func Sanitize(cat *rooms.Catalog, doc *state.Document) *state.Document {
	d := doc.Clone()
	completeMaps(cat, d)

	if !UnlockedRooms(cat, d).Has(d.CurrentRoomID) {
		d.CurrentRoomID = cat.First()
	}

	for _, f := range cat.Fragments {
		if !d.Solved[cat.Gate(f.ID)] {
			d.FragmentsUnlocked[f.ID] = false
		}
	}

	for i := range cat.Rooms {
		r := &cat.Rooms[i]
		ps, ok := d.PuzzleState[r.ID]
		if !d.Solved[r.ID] || !ok || !ps.Valid(r) {
			d.PuzzleState[r.ID] = state.EmptyRoomState(r)
		}
	}

	for i := range cat.Rooms {
		r := &cat.Rooms[i]
		d.AttemptsByRoom[r.ID] = max(0, d.AttemptsByRoom[r.ID])
		d.HintLevelByRoom[r.ID] = clampLevel(d.HintLevelByRoom[r.ID], len(hintLadder(r)))
	}

	sanitizeStage(cat, d)
	return d
}

// completeMaps drops keys the catalog does not know and adds the ones it does.
func completeMaps(cat *rooms.Catalog, d *state.Document) {
	if d.Solved == nil {
		d.Solved = make(map[rooms.ID]bool)
	}
	if d.FragmentsUnlocked == nil {
		d.FragmentsUnlocked = make(map[rooms.FragmentID]bool)
	}
	if d.HintLevelByRoom == nil {
		d.HintLevelByRoom = make(map[rooms.ID]int)
	}
	if d.AttemptsByRoom == nil {
		d.AttemptsByRoom = make(map[rooms.ID]int)
	}
	if d.PuzzleState == nil {
		d.PuzzleState = make(map[rooms.ID]state.RoomState)
	}

	for id := range d.Solved {
		if _, ok := cat.Index(id); !ok {
			delete(d.Solved, id)
		}
	}
	for id := range d.HintLevelByRoom {
		if _, ok := cat.Index(id); !ok {
			delete(d.HintLevelByRoom, id)
		}
	}
	for id := range d.AttemptsByRoom {
		if _, ok := cat.Index(id); !ok {
			delete(d.AttemptsByRoom, id)
		}
	}
	for id := range d.PuzzleState {
		if _, ok := cat.Index(id); !ok {
			delete(d.PuzzleState, id)
		}
	}
	for id := range d.FragmentsUnlocked {
		if _, ok := cat.Fragment(id); !ok {
			delete(d.FragmentsUnlocked, id)
		}
	}

	for _, r := range cat.Rooms {
		d.Solved[r.ID] = d.Solved[r.ID]
		d.HintLevelByRoom[r.ID] = d.HintLevelByRoom[r.ID]
		d.AttemptsByRoom[r.ID] = d.AttemptsByRoom[r.ID]
	}
	for _, f := range cat.Fragments {
		d.FragmentsUnlocked[f.ID] = d.FragmentsUnlocked[f.ID]
	}
	d.Version = state.Version
}

// sanitizeStage keeps the stage consistent with the puzzle progress.
func sanitizeStage(cat *rooms.Catalog, d *state.Document) {
	if !d.Stage.Known() {
		d.Stage = state.StageIntro
	}
	d.IntroPage = max(0, min(d.IntroPage, len(cat.Letter)-1))
	d.UnwrapTaps = max(0, d.UnwrapTaps)

	if (d.Stage == state.StageCelebration || d.Stage == state.StageFinal) && !d.AllSolved(cat) {
		d.Stage = state.StagePuzzles
	}
	if d.Stage == state.StagePuzzles && d.UnwrapTaps < cat.UnwrapTaps {
		d.Stage = state.StageUnwrap
	}
}
