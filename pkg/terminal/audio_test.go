package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golangdaddy/laneshift/pkg/barrier"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		from, to barrier.Phase
		tone     float64
		ok       bool
	}{
		{barrier.PhaseClosed, barrier.PhaseRotatingOpen, startTone, true},
		{barrier.PhaseOpen, barrier.PhaseMovingSegmentsBack, startTone, true},
		{barrier.PhaseAligningLead, barrier.PhaseOpen, stopTone, true},
		{barrier.PhaseRotatingClose, barrier.PhaseClosed, stopTone, true},
		{barrier.PhaseRotatingOpen, barrier.PhaseMovingSegments, 0, false},
	}
	for _, tt := range tests {
		tone, ok := cueFor(tt.from, tt.to)
		assert.Equal(t, tt.ok, ok, "%s -> %s", tt.from, tt.to)
		assert.Equal(t, tt.tone, tone, "%s -> %s", tt.from, tt.to)
	}
}

func TestChimes_SilentWhenDisabled(t *testing.T) {
	ch := &Chimes{}
	ch.play(startTone)
	ch.Close()
	assert.False(t, ch.enabled)
}
