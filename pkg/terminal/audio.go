package terminal

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/golangdaddy/laneshift/pkg/barrier"
)

const sampleRate = beep.SampleRate(44100)

// Cue tones in Hz
const (
	startTone = 880
	stopTone  = 440
)

// Chimes plays a short tone when the barrier starts or stops moving
type Chimes struct {
	enabled bool
}

// NewChimes opens the speaker. The returned Chimes is usable even when err
// is non-nil; it stays silent.
func NewChimes() (*Chimes, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &Chimes{}, err
	}
	return &Chimes{enabled: true}, nil
}

// Attach registers the chimes as a transition observer on c
func (ch *Chimes) Attach(c *barrier.Controller) {
	c.OnTransition(func(from, to barrier.Phase) {
		if tone, ok := cueFor(from, to); ok {
			ch.play(tone)
		}
	})
}

// cueFor picks the tone for a phase change. Leaving a resting phase starts
// movement, entering one ends it.
func cueFor(from, to barrier.Phase) (float64, bool) {
	switch {
	case resting(to):
		return stopTone, true
	case resting(from):
		return startTone, true
	}
	return 0, false
}

func resting(p barrier.Phase) bool {
	return p == barrier.PhaseOpen || p == barrier.PhaseClosed
}

func (ch *Chimes) play(freq float64) {
	if !ch.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(80*time.Millisecond), sine))
}

// Close releases the speaker
func (ch *Chimes) Close() {
	if ch.enabled {
		speaker.Close()
		ch.enabled = false
	}
}
