package traffic

import (
	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/transform"
)

// Anchor is a spawn point at the head of a lane
type Anchor struct {
	Name     string
	Position transform.Vec3
	Rotation transform.Rotation
}

// Lane set sizes. Sets are always a prefix of the manager's anchors.
const (
	narrowLanes = 2
	normalLanes = 3
	wideLanes   = 4
)

// LaneCount decides how many lanes a manager driving in own direction may
// spawn into, given what it observed of the barrier.
//
// While the barrier moves, only a manager on the side the barrier is opening
// toward leaves the three-lane default, and only in the reverse case.
// Once idle, the label decides: the side that gained a lane uses four,
// the side that lost one uses two.
func LaneCount(own, barrierDir barrier.Direction, status barrier.Status, moving bool) int {
	if moving {
		switch {
		case barrierDir == barrier.DirectionForward && own == barrier.DirectionForward:
			return normalLanes
		case barrierDir == barrier.DirectionReverse && own == barrier.DirectionReverse:
			return narrowLanes
		}
		return normalLanes
	}

	if own == barrier.DirectionReverse {
		switch status {
		case barrier.StatusBalanced:
			return normalLanes
		case barrier.StatusExpandedReverse:
			return wideLanes
		}
		return narrowLanes
	}

	switch status {
	case barrier.StatusBalanced:
		return normalLanes
	case barrier.StatusExpandedReverse:
		return narrowLanes
	}
	return wideLanes
}

// selectLanes returns the first n anchors, or all of them when fewer exist
func selectLanes(anchors []Anchor, n int) []Anchor {
	if n > len(anchors) {
		n = len(anchors)
	}
	lanes := make([]Anchor, n)
	copy(lanes, anchors[:n])
	return lanes
}
