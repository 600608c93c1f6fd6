// Package state holds the persisted progress document and its default shape.
package state

import (
	"maps"
	"slices"

	"wintercard/pkg/game/rooms"
)

// Version is written into every saved document.
const Version = 1

// Stage is the top-level screen the card is on.
type Stage string

// Stages, in the order they are played.
const (
	StageIntro       Stage = "intro"
	StageUnwrap      Stage = "unwrap"
	StagePuzzles     Stage = "puzzles"
	StageCelebration Stage = "celebration"
	StageFinal       Stage = "final"
)

// Known reports whether s is one of the defined stages.
func (s Stage) Known() bool {
	switch s {
	case StageIntro, StageUnwrap, StagePuzzles, StageCelebration, StageFinal:
		return true
	}
	return false
}

// Settings are presentation preferences, persisted with the progress.
type Settings struct {
	Sound        bool `json:"sound"`
	ReduceMotion bool `json:"reduceMotion"`
	HighContrast bool `json:"highContrast"`
}

// RoomState is the transient solve state of one room. Kind tags which of the
// fields carry meaning: sequence rooms use Clicks, assembly rooms use Slots.
type RoomState struct {
	Kind   rooms.Kind `json:"kind"`
	Clicks []string   `json:"clicks,omitempty"`
	Slots  []string   `json:"slots,omitempty"`
}

// EmptyRoomState returns the initial shape for a room.
func EmptyRoomState(r *rooms.Room) RoomState {
	s := RoomState{Kind: r.Kind}
	if r.Kind == rooms.KindAssembly {
		s.Slots = make([]string, r.Slots)
	}
	return s
}

// Valid reports whether the state has the shape the room expects.
func (s RoomState) Valid(r *rooms.Room) bool {
	if s.Kind != r.Kind {
		return false
	}
	switch r.Kind {
	case rooms.KindSequence:
		return len(s.Slots) == 0 && r.ValidPrefix(s.Clicks)
	case rooms.KindAssembly:
		return len(s.Slots) == r.Slots && len(s.Clicks) == 0
	default:
		return len(s.Clicks) == 0 && len(s.Slots) == 0
	}
}

// Clone returns a deep copy.
func (s RoomState) Clone() RoomState {
	c := RoomState{Kind: s.Kind}
	if s.Clicks != nil {
		c.Clicks = slices.Clone(s.Clicks)
	}
	if s.Slots != nil {
		c.Slots = slices.Clone(s.Slots)
	}
	return c
}

// Document is the whole persisted progress of one card.
type Document struct {
	Version           int                       `json:"version"`
	Stage             Stage                     `json:"stage"`
	IntroPage         int                       `json:"introPage"`
	UnwrapTaps        int                       `json:"unwrapTaps"`
	CurrentRoomID     rooms.ID                  `json:"currentRoomId"`
	Solved            map[rooms.ID]bool         `json:"solved"`
	FragmentsUnlocked map[rooms.FragmentID]bool `json:"fragmentsUnlocked"`
	HintLevelByRoom   map[rooms.ID]int          `json:"hintLevelByRoom"`
	AttemptsByRoom    map[rooms.ID]int          `json:"attemptsByRoom"`
	PuzzleState       map[rooms.ID]RoomState    `json:"puzzleState"`
	Settings          Settings                  `json:"settings"`
}

// Defaults builds the fresh document for a catalog.
func Defaults(cat *rooms.Catalog) *Document {
	d := &Document{
		Version:           Version,
		Stage:             StageIntro,
		CurrentRoomID:     cat.First(),
		Solved:            make(map[rooms.ID]bool, cat.Len()),
		FragmentsUnlocked: make(map[rooms.FragmentID]bool, len(cat.Fragments)),
		HintLevelByRoom:   make(map[rooms.ID]int, cat.Len()),
		AttemptsByRoom:    make(map[rooms.ID]int, cat.Len()),
		PuzzleState:       make(map[rooms.ID]RoomState, cat.Len()),
		Settings: Settings{
			Sound:        cat.Settings.Sound,
			ReduceMotion: cat.Settings.ReduceMotion,
			HighContrast: cat.Settings.HighContrast,
		},
	}
	for i := range cat.Rooms {
		r := &cat.Rooms[i]
		d.Solved[r.ID] = false
		d.HintLevelByRoom[r.ID] = 0
		d.AttemptsByRoom[r.ID] = 0
		d.PuzzleState[r.ID] = EmptyRoomState(r)
	}
	for _, f := range cat.Fragments {
		d.FragmentsUnlocked[f.ID] = false
	}
	return d
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := *d
	c.Solved = maps.Clone(d.Solved)
	c.FragmentsUnlocked = maps.Clone(d.FragmentsUnlocked)
	c.HintLevelByRoom = maps.Clone(d.HintLevelByRoom)
	c.AttemptsByRoom = maps.Clone(d.AttemptsByRoom)
	if d.PuzzleState != nil {
		c.PuzzleState = make(map[rooms.ID]RoomState, len(d.PuzzleState))
		for k, v := range d.PuzzleState {
			c.PuzzleState[k] = v.Clone()
		}
	}
	return &c
}

// IsSolved reports whether a room is solved.
func (d *Document) IsSolved(id rooms.ID) bool {
	return d.Solved[id]
}

// AllSolved reports whether every room of the catalog is solved.
func (d *Document) AllSolved(cat *rooms.Catalog) bool {
	for _, r := range cat.Rooms {
		if !d.Solved[r.ID] {
			return false
		}
	}
	return true
}

// SolvedCount returns how many catalog rooms are solved.
func (d *Document) SolvedCount(cat *rooms.Catalog) int {
	n := 0
	for _, r := range cat.Rooms {
		if d.Solved[r.ID] {
			n++
		}
	}
	return n
}
