package world

import (
	"fmt"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
	"github.com/golangdaddy/laneshift/pkg/transform"
)

// Layout is the road cross-section. The barrier sits on X = 0 with the
// forward side at positive X and the reverse side at negative X.
type Layout struct {
	Lanes         int     // Total lanes, split evenly by the closed barrier
	LaneWidth     float64
	SpawnDistance float64 // Distance along Z from the barrier root to the lane heads
}

// DefaultLayout returns the six-lane road
func DefaultLayout() Layout {
	return Layout{
		Lanes:         6,
		LaneWidth:     4.75,
		SpawnDistance: 60,
	}
}

// Width returns the full road width
func (l Layout) Width() float64 {
	return float64(l.Lanes) * l.LaneWidth
}

// LaneCenterX returns the X of lane i, counted from the reverse-side edge
func (l Layout) LaneCenterX(i int) float64 {
	return -l.Width()/2 + (float64(i)+0.5)*l.LaneWidth
}

// Anchors returns the lane heads of one side, outermost lane first. The list
// runs one lane past the barrier so the side can widen into it.
func (l Layout) Anchors(side barrier.Direction) []traffic.Anchor {
	n := l.Lanes/2 + 1
	if n > l.Lanes {
		n = l.Lanes
	}

	anchors := make([]traffic.Anchor, 0, n)
	for k := 0; k < n; k++ {
		a := traffic.Anchor{Name: fmt.Sprintf("%s-%d", side, k+1)}
		if side == barrier.DirectionReverse {
			a.Position = transform.Vec3{X: l.LaneCenterX(k), Z: l.SpawnDistance}
			a.Rotation = transform.Euler(180)
		} else {
			a.Position = transform.Vec3{X: l.LaneCenterX(l.Lanes - 1 - k), Z: -l.SpawnDistance}
			a.Rotation = transform.Euler(0)
		}
		anchors = append(anchors, a)
	}
	return anchors
}

// Geometry describes the barrier pieces in the barrier root frame
type Geometry struct {
	Segments       int
	SegmentSpacing float64        // Z distance between segment centers
	SegmentExtents transform.Vec3 // Half extents of one segment collider
	LeadExtents    transform.Vec3 // Half extents of the lead collider
	RootYaw        float64        // Yaw of the barrier root in the world
}

// DefaultGeometry returns eight segments trailing a long lead. The root is
// turned around so local +X points at the reverse side.
func DefaultGeometry() Geometry {
	return Geometry{
		Segments:       8,
		SegmentSpacing: 4,
		SegmentExtents: transform.Vec3{X: 0.25, Y: 1, Z: 1.8},
		LeadExtents:    transform.Vec3{X: 0.25, Y: 1, Z: 6},
		RootYaw:        180,
	}
}
