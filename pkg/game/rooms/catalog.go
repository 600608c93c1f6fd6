package rooms

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed content/*.yaml
var contentFS embed.FS

// ErrInvalidCatalog is wrapped by every catalog validation failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Timing holds the holds and nudges used by the stage controller.
type Timing struct {
	RoomHold        time.Duration `yaml:"roomHold"`
	ReducedRoomHold time.Duration `yaml:"reducedRoomHold"`
	WinHold         time.Duration `yaml:"winHold"`
	ReducedWinHold  time.Duration `yaml:"reducedWinHold"`
	IdleNudge       time.Duration `yaml:"idleNudge"`
}

// SettingsDefaults are the presentation preferences a fresh document starts with.
type SettingsDefaults struct {
	Sound        bool `yaml:"sound"`
	ReduceMotion bool `yaml:"reduceMotion"`
	HighContrast bool `yaml:"highContrast"`
}

// Catalog is a complete card: its letter, its rooms in order and the code they guard.
type Catalog struct {
	Name       string           `yaml:"name"`
	Title      string           `yaml:"title"`
	StorageKey string           `yaml:"storageKey"`
	Letter     []string         `yaml:"letter"`
	UnwrapTaps int              `yaml:"unwrapTaps"`
	Separator  string           `yaml:"separator"`
	Fragments  []Fragment       `yaml:"fragments"`
	Rooms      []Room           `yaml:"rooms"`
	Timing     Timing           `yaml:"timing"`
	Settings   SettingsDefaults `yaml:"settings"`
	Closing    string           `yaml:"closing"`

	index map[ID]int
	gates map[FragmentID]ID
}

// Variants lists the catalogs shipped with the binary.
func Variants() []string {
	entries, err := contentFS.ReadDir("content")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names
}

// Load parses one of the embedded catalogs by name.
func Load(name string) (*Catalog, error) {
	data, err := contentFS.ReadFile("content/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown variant %q: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, a...))
}

func (c *Catalog) validate() error {
	if c.StorageKey == "" {
		return invalid("storage key is required")
	}
	if len(c.Rooms) == 0 {
		return invalid("at least one room is required")
	}
	if len(c.Letter) == 0 {
		c.Letter = []string{""}
	}
	if c.UnwrapTaps < 1 {
		c.UnwrapTaps = 1
	}

	c.index = make(map[ID]int, len(c.Rooms))
	c.gates = make(map[FragmentID]ID, len(c.Fragments))
	fragments := make(map[FragmentID]bool, len(c.Fragments))
	for _, f := range c.Fragments {
		if f.ID == "" || f.Value == "" {
			return invalid("fragment needs an id and a value")
		}
		if fragments[f.ID] {
			return invalid("duplicate fragment %q", f.ID)
		}
		fragments[f.ID] = true
	}

	for i := range c.Rooms {
		r := &c.Rooms[i]
		if r.ID == "" {
			return invalid("room %d has no id", i)
		}
		if _, dup := c.index[r.ID]; dup {
			return invalid("duplicate room %q", r.ID)
		}
		c.index[r.ID] = i
		if r.HintPolicy == "" {
			r.HintPolicy = HintsOnRequest
		}
		if r.Punctuation == "" {
			r.Punctuation = PunctuationStrict
		}
		if err := c.validateRoom(r); err != nil {
			return err
		}
		if r.Reveals != "" {
			if !fragments[r.Reveals] {
				return invalid("room %q reveals unknown fragment %q", r.ID, r.Reveals)
			}
			if prev, taken := c.gates[r.Reveals]; taken {
				return invalid("fragment %q revealed by both %q and %q", r.Reveals, prev, r.ID)
			}
			c.gates[r.Reveals] = r.ID
		}
	}
	for _, f := range c.Fragments {
		if _, ok := c.gates[f.ID]; !ok {
			return invalid("fragment %q is not revealed by any room", f.ID)
		}
	}
	return nil
}

func (c *Catalog) validateRoom(r *Room) error {
	switch r.Kind {
	case KindAction:
	case KindText:
		if len(r.Answers) == 0 {
			return invalid("text room %q has no answers", r.ID)
		}
		for _, a := range r.Answers {
			if strings.TrimSpace(a) == "" {
				return invalid("text room %q has an empty answer", r.ID)
			}
		}
	case KindChoice:
		if r.Answer < 0 || r.Answer >= len(r.Options) {
			return invalid("choice room %q answer %d out of range", r.ID, r.Answer)
		}
	case KindSequence:
		if len(r.Sequence) == 0 {
			return invalid("sequence room %q has no sequence", r.ID)
		}
		for _, step := range r.Sequence {
			if _, ok := r.FindItem(step); !ok {
				return invalid("sequence room %q step %q is not an item", r.ID, step)
			}
		}
	case KindAssembly:
		if len(c.Fragments) < 2 || r.Slots != len(c.Fragments) {
			return invalid("assembly room %q needs one slot per fragment", r.ID)
		}
	default:
		return invalid("room %q has unknown kind %q", r.ID, r.Kind)
	}
	return nil
}

// Len returns the number of rooms.
func (c *Catalog) Len() int {
	return len(c.Rooms)
}

// First returns the id of the first room, which is always unlocked.
func (c *Catalog) First() ID {
	return c.Rooms[0].ID
}

// Index returns the position of a room in the sequence.
func (c *Catalog) Index(id ID) (int, bool) {
	i, ok := c.index[id]
	return i, ok
}

// Room looks up a room by id.
func (c *Catalog) Room(id ID) (*Room, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return &c.Rooms[i], true
}

// Next returns the room after id, or false when id is the last room.
func (c *Catalog) Next(id ID) (ID, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.Rooms) {
		return "", false
	}
	return c.Rooms[i+1].ID, true
}

// Gate returns the room whose solution reveals a fragment.
func (c *Catalog) Gate(f FragmentID) ID {
	return c.gates[f]
}

// Fragment looks up a fragment by id.
func (c *Catalog) Fragment(id FragmentID) (Fragment, bool) {
	for _, f := range c.Fragments {
		if f.ID == id {
			return f, true
		}
	}
	return Fragment{}, false
}

// FragmentByValue resolves a fragment from its code value.
func (c *Catalog) FragmentByValue(value string) (Fragment, bool) {
	want := strings.ToUpper(strings.TrimSpace(value))
	for _, f := range c.Fragments {
		if f.Value == want {
			return f, true
		}
	}
	return Fragment{}, false
}

// Code joins every fragment value with the separator.
func (c *Catalog) Code() string {
	return c.Join(c.FragmentValues())
}

// Join joins slot values with the catalog separator.
func (c *Catalog) Join(parts []string) string {
	return strings.Join(parts, c.Separator)
}

// FragmentValues returns the fragment values in assembly order.
func (c *Catalog) FragmentValues() []string {
	values := make([]string, len(c.Fragments))
	for i, f := range c.Fragments {
		values[i] = f.Value
	}
	return values
}
