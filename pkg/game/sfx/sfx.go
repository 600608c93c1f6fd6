// Package sfx turns game events into short synthesized sound cues.
package sfx

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"wintercard/pkg/game/gameplay"
)

// SampleRate is the rate cues are synthesized at.
const SampleRate = 44100

// Cue is one sound effect.
type Cue int

const (
	CueTick Cue = iota
	CueOK
	CueUnlock
	CueBad
	CueFanfare
)

type voice struct {
	freqs []float64
	wave  func(phase float64) float64
	dur   float64
	gain  float64
}

var voices = map[Cue]voice{
	CueTick:    {freqs: []float64{880}, wave: sine, dur: 0.05, gain: 0.25},
	CueOK:      {freqs: []float64{440, 660}, wave: triangle, dur: 0.25, gain: 0.4},
	CueUnlock:  {freqs: []float64{523.25, 659.25, 783.99}, wave: triangle, dur: 0.45, gain: 0.4},
	CueBad:     {freqs: []float64{120}, wave: sine, dur: 0.25, gain: 0.5},
	CueFanfare: {freqs: []float64{523.25, 659.25, 783.99, 1046.5}, wave: bell, dur: 1.2, gain: 0.45},
}

func sine(p float64) float64 { return math.Sin(2 * math.Pi * p) }

func triangle(p float64) float64 {
	p -= math.Floor(p)
	return 4*math.Abs(p-0.5) - 1
}

func bell(p float64) float64 {
	return 0.6*sine(p) + 0.3*sine(2.01*p) + 0.1*triangle(3*p)
}

// CueFor maps an event to its cue.
func CueFor(e gameplay.Event) (Cue, bool) {
	switch e.Kind {
	case gameplay.EventRoomSolved:
		return CueOK, true
	case gameplay.EventFragmentUnlocked:
		return CueUnlock, true
	case gameplay.EventWrongAnswer, gameplay.EventLocked:
		return CueBad, true
	case gameplay.EventAllSolved:
		return CueFanfare, true
	case gameplay.EventSequenceStep, gameplay.EventSlotsChanged:
		return CueTick, true
	}
	return 0, false
}

// Synthesize renders a cue as 16-bit little-endian stereo PCM. Notes of a
// chord are staggered so they read as an arpeggio.
func Synthesize(c Cue, sampleRate int) []byte {
	v, ok := voices[c]
	if !ok {
		return nil
	}
	stagger := 0.06
	total := v.dur + stagger*float64(len(v.freqs)-1)
	n := int(total * float64(sampleRate))
	buf := make([]byte, n*4)
	for i := range n {
		t := float64(i) / float64(sampleRate)
		var s float64
		for k, f := range v.freqs {
			start := stagger * float64(k)
			if t < start {
				continue
			}
			s += v.wave(f*(t-start)) * envelope(t-start, v.dur)
		}
		s = s * v.gain / float64(len(v.freqs))
		sample := int16(max(-1, min(1, s)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}

// envelope is a short linear attack followed by an exponential decay.
func envelope(t, dur float64) float64 {
	const attack = 0.01
	switch {
	case t < 0 || t > dur:
		return 0
	case t < attack:
		return t / attack
	default:
		return math.Exp(-5 * (t - attack) / dur)
	}
}

// Player plays cues. Playback failures are the player's own business.
type Player interface {
	Play(Cue)
}

// EbitenPlayer plays pre-rendered cues through an Ebiten audio context.
type EbitenPlayer struct {
	ctx   *audio.Context
	clips map[Cue][]byte
}

// NewEbitenPlayer creates the audio context and renders every cue once.
// Ebiten allows a single audio context per process.
func NewEbitenPlayer() *EbitenPlayer {
	p := &EbitenPlayer{
		ctx:   audio.NewContext(SampleRate),
		clips: make(map[Cue][]byte, len(voices)),
	}
	for c := range voices {
		p.clips[c] = Synthesize(c, SampleRate)
	}
	return p
}

func (p *EbitenPlayer) Play(c Cue) {
	clip, ok := p.clips[c]
	if !ok {
		return
	}
	p.ctx.NewPlayerFromBytes(clip).Play()
}

// Subscriber is anything that publishes game events.
type Subscriber interface {
	Subscribe(gameplay.Listener) (unsubscribe func())
}

// Attach plays a cue for every event that has one while enabled reports true.
func Attach(src Subscriber, player Player, enabled func() bool) (detach func()) {
	return src.Subscribe(func(e gameplay.Event) {
		c, ok := CueFor(e)
		if !ok || !enabled() {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				log.Printf("sfx: playback failed: %v", r)
			}
		}()
		player.Play(c)
	})
}
