// Package rooms defines the static content of the card: the ordered rooms, the
// fragments of the final code, and the answer checks that decide when a room is
// solved. Nothing in here is persisted.
package rooms

import "strings"

// ID identifies a room.
type ID string

// FragmentID identifies one piece of the final code.
type FragmentID string

// Kind selects how a room is answered and what local state it carries.
type Kind string

const (
	KindAction   Kind = "action"   // a single confirm, e.g. "begin the tour"
	KindText     Kind = "text"     // free text compared against accepted answers
	KindChoice   Kind = "choice"   // pick one option by index
	KindSequence Kind = "sequence" // click items in an exact order
	KindAssembly Kind = "assembly" // place fragments into ordered slots
)

// HintPolicy decides what escalates a room's hint ladder.
type HintPolicy string

const (
	HintsOnRequest  HintPolicy = "request"  // the player asks for the next hint
	HintsOnAttempts HintPolicy = "attempts" // each wrong answer moves one rung up
)

// Punctuation is the comparison tolerance for free-text rooms.
type Punctuation string

const (
	PunctuationStrict Punctuation = "strict"
	PunctuationLoose  Punctuation = "loose"
)

// MaskedFragment is shown in place of a fragment that is still locked.
const MaskedFragment = "?????"

// Item is one clickable thing in a sequence room.
type Item struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Room is one puzzle step in the fixed sequence.
type Room struct {
	ID     ID     `yaml:"id"`
	Title  string `yaml:"title"`
	Kind   Kind   `yaml:"kind"`
	Prompt string `yaml:"prompt"`
	Action string `yaml:"action"` // label of the confirm for action rooms

	Answers      []string    `yaml:"answers"`
	Punctuation  Punctuation `yaml:"punctuation"`
	IgnoreSpaces bool        `yaml:"ignoreSpaces"`
	Placeholder  string      `yaml:"placeholder"`

	Options []string `yaml:"options"`
	Answer  int      `yaml:"answer"`
	Columns int      `yaml:"columns"` // lay options out as a grid when > 0

	Items    []Item   `yaml:"items"`
	Sequence []string `yaml:"sequence"`

	Slots int `yaml:"slots"`

	Hints      []string   `yaml:"hints"`
	HintPolicy HintPolicy `yaml:"hintPolicy"`

	Reveals    FragmentID `yaml:"reveals"`
	Nudge      bool       `yaml:"nudge"`
	PauseAfter bool       `yaml:"pauseAfter"`
}

// ItemLabel returns the display label of a sequence item, or the id itself.
func (r *Room) ItemLabel(id string) string {
	for _, it := range r.Items {
		if it.ID == id {
			return it.Label
		}
	}
	return id
}

// FindItem resolves player input to a sequence item id by id or label.
func (r *Room) FindItem(input string) (string, bool) {
	want := Normalize(input)
	for _, it := range r.Items {
		if Normalize(it.ID) == want || Normalize(it.Label) == want {
			return it.ID, true
		}
	}
	return "", false
}

// Fragment is one piece of the final code.
type Fragment struct {
	ID    FragmentID `yaml:"id"`
	Label string     `yaml:"label"`
	Value string     `yaml:"value"`
}

// Masked returns the placeholder shown while the fragment is locked.
func (f Fragment) Masked() string {
	if f.Value == "" {
		return MaskedFragment
	}
	return strings.Repeat("?", len(f.Value))
}
