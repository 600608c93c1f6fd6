// Package effects simulates the ambient particles drawn behind the card: snow
// that thickens as the rooms fall, debris while the puzzles run and confetti
// for the celebration. The simulation is pure; renderers only read it.
package effects

import (
	"math"
	"math/rand"

	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/state"
)

// Kind is the kind of a particle.
type Kind int

const (
	Snow Kind = iota
	Debris
	Confetti
)

// Particle is one moving speck.
type Particle struct {
	Kind   Kind
	X, Y   float64
	VX, VY float64
	Size   float64
	Life   float64 // seconds left; snow lives until it leaves the field
	Hue    int     // palette index for confetti
}

// Mood is how busy the sky should be.
type Mood struct {
	Snow   float64 // multiplier on the base snow density
	Debris bool
	Drama  float64 // 0..1, grows with puzzle progress
}

// MoodFor returns the mood for a stage. progress is the solved fraction of rooms.
func MoodFor(stage state.Stage, progress float64) Mood {
	progress = max(0, min(1, progress))
	switch stage {
	case state.StageUnwrap:
		return Mood{Snow: 1.3}
	case state.StagePuzzles:
		return Mood{Snow: 1.3 + 1.1*progress, Debris: true, Drama: progress}
	case state.StageCelebration:
		return Mood{Snow: 2.4, Drama: 1}
	case state.StageFinal:
		return Mood{Snow: 1.15}
	}
	return Mood{Snow: 1}
}

// BaseSnow is the number of flakes at a snow multiplier of one.
const BaseSnow = 60

// Field is a rectangle of particles.
type Field struct {
	W, H      float64
	Particles []Particle
	mood      Mood
	rng       *rand.Rand
}

// NewField creates an empty field.
func NewField(w, h float64, seed int64) *Field {
	return &Field{W: w, H: h, mood: Mood{Snow: 1}, rng: rand.New(rand.NewSource(seed))}
}

// SetMood changes the target densities.
func (f *Field) SetMood(m Mood) {
	f.mood = m
}

// Mood returns the current mood.
func (f *Field) Mood() Mood {
	return f.mood
}

// Resize changes the field bounds.
func (f *Field) Resize(w, h float64) {
	f.W, f.H = w, h
}

// Count returns how many particles of a kind are alive.
func (f *Field) Count(k Kind) int {
	n := 0
	for _, p := range f.Particles {
		if p.Kind == k {
			n++
		}
	}
	return n
}

// Step advances the simulation by dt seconds. A frozen field does not move.
func (f *Field) Step(dt float64, frozen bool) {
	if frozen || dt <= 0 {
		return
	}
	f.spawn()

	alive := f.Particles[:0]
	for _, p := range f.Particles {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		switch p.Kind {
		case Snow:
			p.VX = 12 * math.Sin(p.Y/37+p.Size)
		case Debris, Confetti:
			p.VY += 60 * dt
			p.Life -= dt
		}
		if p.Y > f.H+8 || p.X < -16 || p.X > f.W+16 || (p.Kind != Snow && p.Life <= 0) {
			continue
		}
		alive = append(alive, p)
	}
	f.Particles = alive
}

func (f *Field) spawn() {
	want := int(BaseSnow * f.mood.Snow)
	for f.Count(Snow) < want {
		f.Particles = append(f.Particles, Particle{
			Kind: Snow,
			X:    f.rng.Float64() * f.W,
			Y:    -f.rng.Float64() * f.H,
			VY:   20 + 30*f.rng.Float64() + 20*f.mood.Drama,
			Size: 1 + 2*f.rng.Float64(),
		})
	}
	if f.mood.Debris && f.rng.Float64() < 0.05+0.1*f.mood.Drama {
		f.Particles = append(f.Particles, Particle{
			Kind: Debris,
			X:    f.rng.Float64() * f.W,
			Y:    0,
			VX:   -10 + 20*f.rng.Float64(),
			VY:   10,
			Size: 1,
			Life: 3,
		})
	}
}

// Burst throws n confetti pieces from a point.
func (f *Field) Burst(n int, x, y float64) {
	for range n {
		angle := f.rng.Float64() * 2 * math.Pi
		speed := 60 + 120*f.rng.Float64()
		f.Particles = append(f.Particles, Particle{
			Kind: Confetti,
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle)*speed - 80,
			Size: 2 + 2*f.rng.Float64(),
			Life: 2 + f.rng.Float64(),
			Hue:  f.rng.Intn(5),
		})
	}
}

// React adjusts the field for a game event.
func (f *Field) React(e gameplay.Event) {
	switch e.Kind {
	case gameplay.EventAllSolved:
		f.Burst(160, f.W/2, f.H/3)
	case gameplay.EventFragmentUnlocked:
		f.Burst(24, f.W/2, f.H/2)
	case gameplay.EventReset:
		f.Particles = nil
	}
}
