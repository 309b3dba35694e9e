package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
)

type stubState struct {
	status    barrier.Status
	moving    bool
	direction barrier.Direction
}

func (s stubState) Status() barrier.Status       { return s.status }
func (s stubState) Moving() bool                 { return s.moving }
func (s stubState) Direction() barrier.Direction { return s.direction }

func TestDensityLabel(t *testing.T) {
	assert.Equal(t, "Az Yoğun", DensityLabel(traffic.DensityLow, Turkish))
	assert.Equal(t, "Orta Yoğun", DensityLabel(traffic.DensityMedium, Turkish))
	assert.Equal(t, "Çok Yoğun", DensityLabel(traffic.DensityHigh, Turkish))
	assert.Equal(t, "Heavy", DensityLabel(traffic.DensityHigh, English))
	assert.Equal(t, "Density(9)", DensityLabel(traffic.Density(9), English))
}

func TestLangToggle(t *testing.T) {
	assert.Equal(t, English, Turkish.Toggle())
	assert.Equal(t, Turkish, English.Toggle())
}

func TestStatusLine(t *testing.T) {
	s := stubState{status: barrier.StatusExpandedForward, direction: barrier.DirectionForward}
	assert.Equal(t, "2-4  Right  idle", StatusLine(s, English))

	s.moving = true
	s.direction = barrier.DirectionClosed
	s.status = barrier.StatusBalanced
	assert.Equal(t, "3-3  Kapalı  hareketli", StatusLine(s, Turkish))
}
