package barrier

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/golangdaddy/laneshift/pkg/transform"
)

const dt = 0.02

type rig struct {
	c        *Controller
	segments []*transform.Node
	lead     *transform.Node
}

func newRig(n int) *rig {
	r := &rig{lead: transform.NewNode("lead", transform.Vec3{})}
	handles := make([]transform.Transform, n)
	for i := 0; i < n; i++ {
		node := transform.NewNode("segment", transform.Vec3{Z: float64(i+1) * 2})
		r.segments = append(r.segments, node)
		handles[i] = node
	}
	r.c = NewController(DefaultConfig(), handles, r.lead, logr.Discard())
	return r
}

// runUntilIdle ticks until the moving flag drops and returns the tick count
func runUntilIdle(t *testing.T, c *Controller) int {
	t.Helper()
	for i := 1; i <= 10000; i++ {
		c.Update(dt)
		if !c.Moving() {
			return i
		}
	}
	t.Fatal("barrier never settled")
	return 0
}

func TestController_SettlesClosedOnStart(t *testing.T) {
	r := newRig(3)
	assert.Equal(t, PhaseMovingSegmentsBack, r.c.Phase())

	// One tick per segment, one for the lead return, one for the rotation
	ticks := runUntilIdle(t, r.c)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, PhaseClosed, r.c.Phase())
	assert.Equal(t, StatusBalanced, r.c.Status())
}

func TestController_OpenForward(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionForward)
	for i := 0; i < 10000; i++ {
		r.c.Update(dt)

		// Segments move strictly in ascending order
		for j := 1; j < len(r.segments); j++ {
			if r.segments[j].Position.X != 0 {
				require.Equal(t, 4.75, r.segments[j-1].Position.X, "segment %d moved before %d finished", j, j-1)
			}
		}
		// Lead only translates once every segment is in place
		if r.lead.Position.X != 0 {
			require.Equal(t, 4.75, r.segments[len(r.segments)-1].Position.X)
		}

		if !r.c.Moving() {
			break
		}
		require.Equal(t, StatusBalanced, r.c.Status())
	}

	require.False(t, r.c.Moving())
	assert.Equal(t, PhaseOpen, r.c.Phase())
	assert.Equal(t, StatusExpandedForward, r.c.Status())
	assert.Equal(t, "2-4", r.c.Status().String())
	for i, seg := range r.segments {
		assert.Equal(t, 4.75, seg.Position.X, "segment %d", i)
		assert.Equal(t, float64(i+1)*2, seg.Position.Z, "segment %d keeps its row", i)
	}
	assert.Equal(t, 4.75, r.lead.Position.X)
	assert.Equal(t, 25.0, r.lead.Rotation.Yaw, "lead holds its opened rotation")

	// Terminal phase keeps reporting idle
	for i := 0; i < 5; i++ {
		r.c.Update(dt)
		assert.False(t, r.c.Moving())
		assert.Equal(t, StatusExpandedForward, r.c.Status())
	}
}

func TestController_OpenReverse(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionReverse)
	runUntilIdle(t, r.c)

	assert.Equal(t, StatusExpandedReverse, r.c.Status())
	assert.Equal(t, "4-2", r.c.Status().String())
	for _, seg := range r.segments {
		assert.Equal(t, -4.75, seg.Position.X)
	}
	assert.Equal(t, -4.75, r.lead.Position.X)
	assert.Equal(t, -25.0, r.lead.Rotation.Yaw)
}

func TestController_CloseRestoresStartPositions(t *testing.T) {
	r := newRig(4)
	// Start positions are whatever the segments held at construction
	r.segments[2].Position = transform.Vec3{X: 1.5, Y: 0.25, Z: 9}
	r.c = NewController(DefaultConfig(), []transform.Transform{r.segments[0], r.segments[1], r.segments[2], r.segments[3]}, r.lead, logr.Discard())
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionForward)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionClosed)
	r.c.Update(dt)
	assert.Equal(t, StatusBalanced, r.c.Status(), "status resets as soon as closing starts")
	assert.True(t, r.c.Moving())
	runUntilIdle(t, r.c)

	assert.Equal(t, PhaseClosed, r.c.Phase())
	for i, seg := range r.segments {
		assert.InDelta(t, 0, transform.Distance(seg.Position, r.c.StartPosition(i)), PositionEpsilon, "segment %d", i)
	}
	assert.Equal(t, transform.Vec3{}, r.lead.Position)
	assert.Equal(t, 0.0, r.lead.Rotation.Yaw)
}

func TestController_CloseOrderIsLastToFirst(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)
	r.c.SetDirection(DirectionForward)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionClosed)
	for i := 0; i < 10000; i++ {
		r.c.Update(dt)
		for j := 0; j < len(r.segments)-1; j++ {
			if r.segments[j].Position.X != 4.75 {
				require.Equal(t, 0.0, r.segments[j+1].Position.X, "segment %d moved before %d finished", j, j+1)
			}
		}
		// Lead stays rotated until it is back in its slot
		if r.lead.Rotation.Yaw != 25 {
			require.Equal(t, 0.0, r.lead.Position.X)
		}
		if !r.c.Moving() {
			break
		}
	}
	assert.Equal(t, PhaseClosed, r.c.Phase())
}

func TestController_InterruptOpenRearmsClose(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionForward)
	for i := 0; i < 10000 && !(r.c.Phase() == PhaseMovingSegments && r.c.Cursor() == 1); i++ {
		r.c.Update(dt)
	}
	require.Equal(t, 1, r.c.Cursor())
	for i := 0; i < 3; i++ {
		r.c.Update(dt)
	}
	require.Greater(t, r.segments[1].Position.X, 0.0)

	r.c.SetDirection(DirectionClosed)
	r.c.Update(dt)

	// Segment 2 never left, so the re-armed cursor already stepped past it
	assert.Equal(t, PhaseMovingSegmentsBack, r.c.Phase())
	assert.Equal(t, 1, r.c.Cursor())
	assert.True(t, r.c.Moving())
	assert.Equal(t, StatusBalanced, r.c.Status())

	runUntilIdle(t, r.c)
	for i, seg := range r.segments {
		assert.Equal(t, r.c.StartPosition(i), seg.Position)
	}
	assert.Equal(t, 0.0, r.lead.Rotation.Yaw)
}

func TestController_InterruptCloseRearmsOpen(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)
	r.c.SetDirection(DirectionForward)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionClosed)
	for i := 0; i < 5; i++ {
		r.c.Update(dt)
	}
	require.Equal(t, PhaseMovingSegmentsBack, r.c.Phase())

	r.c.SetDirection(DirectionForward)
	r.c.Update(dt)
	// Lead is still at its opened yaw, so the rotation completes on this tick
	assert.Equal(t, PhaseMovingSegments, r.c.Phase())
	assert.Equal(t, 0, r.c.Cursor())

	runUntilIdle(t, r.c)
	assert.Equal(t, StatusExpandedForward, r.c.Status())
	for _, seg := range r.segments {
		assert.Equal(t, 4.75, seg.Position.X)
	}
}

func TestController_SignFlipWhileOpenRealignsLead(t *testing.T) {
	r := newRig(2)
	runUntilIdle(t, r.c)
	r.c.SetDirection(DirectionForward)
	runUntilIdle(t, r.c)

	r.c.SetDirection(DirectionReverse)
	r.c.Update(dt)
	assert.True(t, r.c.Moving())
	assert.Equal(t, PhaseOpen, r.c.Phase())

	runUntilIdle(t, r.c)
	assert.Equal(t, StatusExpandedReverse, r.c.Status())
	assert.Equal(t, -4.75, r.lead.Position.X)
	// Segments are not re-run by a sign flip
	for _, seg := range r.segments {
		assert.Equal(t, 4.75, seg.Position.X)
	}
}

func TestController_MissingReferences(t *testing.T) {
	a := transform.NewNode("a", transform.Vec3{Z: 1})
	b := transform.NewNode("b", transform.Vec3{Z: 3})
	c := NewController(DefaultConfig(), []transform.Transform{a, nil, b}, nil, logr.Discard())
	runUntilIdle(t, c)

	c.SetDirection(DirectionForward)
	c.Update(dt)
	assert.Equal(t, PhaseMovingSegments, c.Phase(), "nil lead rotates instantly")

	runUntilIdle(t, c)
	assert.Equal(t, StatusExpandedForward, c.Status())
	assert.Equal(t, 4.75, a.Position.X)
	assert.Equal(t, 4.75, b.Position.X)

	c.SetDirection(DirectionClosed)
	runUntilIdle(t, c)
	assert.Equal(t, PhaseClosed, c.Phase())
	assert.Equal(t, transform.Vec3{Z: 1}, a.Position)
	assert.Equal(t, transform.Vec3{Z: 3}, b.Position)
}

func TestController_NoSegments(t *testing.T) {
	lead := transform.NewNode("lead", transform.Vec3{})
	c := NewController(DefaultConfig(), nil, lead, logr.Discard())
	assert.Equal(t, PhaseReturningLead, c.Phase())
	runUntilIdle(t, c)

	c.SetDirection(DirectionReverse)
	runUntilIdle(t, c)
	assert.Equal(t, StatusExpandedReverse, c.Status())
	assert.Equal(t, -4.75, lead.Position.X)
}

func TestController_Transitions(t *testing.T) {
	r := newRig(2)
	runUntilIdle(t, r.c)

	var seen []Phase
	r.c.OnTransition(func(from, to Phase) {
		seen = append(seen, to)
	})

	r.c.SetDirection(DirectionForward)
	runUntilIdle(t, r.c)
	assert.Equal(t, []Phase{PhaseRotatingOpen, PhaseMovingSegments, PhaseAligningLead, PhaseOpen}, seen)

	seen = nil
	r.c.SetDirection(DirectionClosed)
	runUntilIdle(t, r.c)
	assert.Equal(t, []Phase{PhaseMovingSegmentsBack, PhaseReturningLead, PhaseRotatingClose, PhaseClosed}, seen)
}

func TestController_IncreaseDecreaseClamp(t *testing.T) {
	r := newRig(1)
	r.c.Increase()
	r.c.Increase()
	assert.Equal(t, DirectionForward, r.c.Direction())
	r.c.Decrease()
	assert.Equal(t, DirectionClosed, r.c.Direction())
	r.c.Decrease()
	r.c.Decrease()
	assert.Equal(t, DirectionReverse, r.c.Direction())
}

func TestStatusAndPhaseStrings(t *testing.T) {
	assert.Equal(t, "3-3", StatusBalanced.String())
	assert.Equal(t, "Status(9)", Status(9).String())
	assert.Equal(t, "aligning-lead", PhaseAligningLead.String())
	assert.True(t, PhaseOpen.Opening())
	assert.False(t, PhaseReturningLead.Opening())
	assert.Equal(t, "reverse", DirectionReverse.String())
}

func TestController_TakeoverIsSingleTransition(t *testing.T) {
	r := newRig(3)
	runUntilIdle(t, r.c)
	r.c.SetDirection(DirectionForward)
	for i := 0; i < 10000 && r.c.Phase() != PhaseMovingSegments; i++ {
		r.c.Update(dt)
	}
	require.Equal(t, PhaseMovingSegments, r.c.Phase())

	type hop struct{ from, to Phase }
	var hops []hop
	r.c.OnTransition(func(from, to Phase) {
		hops = append(hops, hop{from, to})
	})

	r.c.SetDirection(DirectionClosed)
	r.c.Update(dt)
	require.NotEmpty(t, hops)
	assert.Equal(t, hop{PhaseMovingSegments, PhaseMovingSegmentsBack}, hops[0], "close lands straight on the back sequence")

	hops = nil
	r.c.SetDirection(DirectionReverse)
	r.c.Update(dt)
	require.NotEmpty(t, hops)
	assert.Equal(t, hop{PhaseMovingSegmentsBack, PhaseRotatingOpen}, hops[0])
}

func TestController_TakeoverWithoutSegmentsSkipsToLead(t *testing.T) {
	lead := transform.NewNode("lead", transform.Vec3{})
	c := NewController(DefaultConfig(), nil, lead, logr.Discard())
	runUntilIdle(t, c)

	var seen []Phase
	c.OnTransition(func(_, to Phase) {
		seen = append(seen, to)
	})

	c.SetDirection(DirectionForward)
	runUntilIdle(t, c)
	assert.Equal(t, []Phase{PhaseRotatingOpen, PhaseAligningLead, PhaseOpen}, seen)

	seen = nil
	c.SetDirection(DirectionClosed)
	c.Update(dt)
	require.NotEmpty(t, seen)
	assert.Equal(t, PhaseReturningLead, seen[0])
}

func TestController_IdleInputSendsNoTransitions(t *testing.T) {
	r := newRig(2)
	runUntilIdle(t, r.c)

	calls := 0
	r.c.OnTransition(func(_, _ Phase) { calls++ })
	for i := 0; i < 20; i++ {
		r.c.Update(dt)
	}
	assert.Zero(t, calls)
	assert.Equal(t, PhaseClosed, r.c.Phase())
}

func TestPhaseByName(t *testing.T) {
	for p := PhaseClosed; p <= PhaseRotatingClose; p++ {
		assert.Equal(t, p, phaseByName(p.String()))
	}
	assert.Equal(t, PhaseClosed, phaseByName("unknown"))
}
