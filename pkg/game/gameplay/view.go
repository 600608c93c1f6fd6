package gameplay

import (
	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

// FragmentView is one fragment as the player may see it.
type FragmentView struct {
	ID       rooms.FragmentID
	Label    string
	Text     string // the value, or a mask while locked
	Unlocked bool
}

// RoomView is one entry of the room map.
type RoomView struct {
	ID       rooms.ID
	Title    string
	Solved   bool
	Unlocked bool
	Current  bool
}

// View is a read-only snapshot of everything a renderer needs for one frame.
type View struct {
	Title      string
	Stage      state.Stage
	Letter     string
	Page       int
	Pages      int
	UnwrapTaps int
	UnwrapNeed int

	Room      *rooms.Room
	RoomIndex int
	RoomCount int
	Solved    int
	Map       []RoomView
	Hint      Hint
	Attempts  int
	Holding   bool
	Paused    bool

	Clicks    []string
	Slots     []string
	Fragments []FragmentView

	Partial  string
	Code     string
	Closing  string
	Settings state.Settings
}

// View captures the current state for rendering.
func (g *Game) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	d := g.doc
	r := g.currentRoom()
	idx, _ := g.cat.Index(r.ID)
	taps, need := min(d.UnwrapTaps, g.unwrapRequired()), g.unwrapRequired()
	v := View{
		Title:      g.cat.Title,
		Stage:      d.Stage,
		Letter:     g.cat.Letter[d.IntroPage],
		Page:       d.IntroPage,
		Pages:      len(g.cat.Letter),
		UnwrapTaps: taps,
		UnwrapNeed: need,
		Room:       r,
		RoomIndex:  idx,
		RoomCount:  g.cat.Len(),
		Solved:     d.SolvedCount(g.cat),
		Hint:       currentHint(r, d),
		Attempts:   d.AttemptsByRoom[r.ID],
		Holding:    g.holding == holdRoom || g.holding == holdPause,
		Paused:     g.holding == holdPause,
		Partial:    PartialCode(g.cat, d),
		Code:       g.code,
		Closing:    g.cat.Closing,
		Settings:   d.Settings,
	}

	unlocked := UnlockedRooms(g.cat, d)
	for _, room := range g.cat.Rooms {
		v.Map = append(v.Map, RoomView{
			ID:       room.ID,
			Title:    room.Title,
			Solved:   d.Solved[room.ID],
			Unlocked: unlocked.Has(room.ID),
			Current:  room.ID == r.ID,
		})
	}
	for _, f := range g.cat.Fragments {
		fv := FragmentView{ID: f.ID, Label: f.Label, Unlocked: d.FragmentsUnlocked[f.ID], Text: f.Masked()}
		if fv.Unlocked {
			fv.Text = f.Value
		}
		v.Fragments = append(v.Fragments, fv)
	}

	ps := d.PuzzleState[r.ID].Clone()
	v.Clicks = ps.Clicks
	v.Slots = ps.Slots
	return v
}
