package barrier

import (
	"github.com/anggasct/fluo"
	"github.com/go-logr/logr"

	"github.com/golangdaddy/laneshift/pkg/transform"
)

const (
	// PositionEpsilon is the distance under which a translation counts as done
	PositionEpsilon = 0.001
	// AngleEpsilon is the angle in degrees under which a rotation counts as done
	AngleEpsilon = 0.1
)

// Config holds the animation tuning of a barrier
type Config struct {
	MoveSpeed     float64 // Units per second for segment and lead translation
	RotationSpeed float64 // Degrees per second for the lead pivot
	RotateAngle   float64 // Lead yaw when open, sign taken from the direction
	OpenOffset    float64 // Local X the segment row moves to when open
}

// DefaultConfig returns the tuning of the stock barrier
func DefaultConfig() Config {
	return Config{
		MoveSpeed:     5,
		RotationSpeed: 50,
		RotateAngle:   25,
		OpenOffset:    4.75,
	}
}

// TransitionFunc is called whenever the controller changes phase
type TransitionFunc func(from, to Phase)

const (
	eventOpen     = "open"      // Input left the centre
	eventClose    = "close"     // Input returned to the centre
	eventStepDone = "step-done" // The current sub-step settled
)

// Controller drives the barrier open and closed one sub-step per tick
type Controller struct {
	cfg      Config
	segments []transform.Transform
	lead     transform.Transform

	// Captured once at construction
	startPositions []transform.Vec3
	leadStartPos   transform.Vec3
	leadStartRot   transform.Rotation

	direction Direction
	phase     Phase // Mirrors the machine state, kept by phaseTracker
	cursor    int   // Segment index used by the two segment phases
	status    Status
	moving    bool

	machine fluo.Machine
	log     logr.Logger
}

// NewController creates a controller over the given segments and lead.
// Nil entries are allowed and are skipped while animating.
func NewController(cfg Config, segments []transform.Transform, lead transform.Transform, log logr.Logger) *Controller {
	c := &Controller{
		cfg:            cfg,
		segments:       segments,
		lead:           lead,
		startPositions: make([]transform.Vec3, len(segments)),
		status:         StatusBalanced,
		log:            log.WithName("barrier"),
	}

	if lead != nil {
		c.leadStartPos = lead.LocalPosition()
		c.leadStartRot = lead.LocalRotation()
	}
	for i, seg := range segments {
		if seg != nil {
			c.startPositions[i] = seg.LocalPosition()
		}
	}

	c.machine = c.definition().CreateInstance()
	c.machine.AddObserver(&phaseTracker{c: c})
	if err := c.machine.Start(); err != nil {
		// Only reachable if the definition above is broken
		panic(err)
	}
	return c
}

// definition builds the phase graph. The close sequence is the initial one
// so a fresh barrier settles home on its first ticks.
func (c *Controller) definition() fluo.MachineDefinition {
	b := fluo.NewMachine()

	hasSegments := func(fluo.Context) bool { return len(c.segments) > 0 }
	segmentsOpen := func(fluo.Context) bool { return c.cursor >= len(c.segments) }
	segmentsHome := func(fluo.Context) bool { return c.cursor < 0 }
	resetCursor := func(fluo.Context) error {
		c.cursor = 0
		return nil
	}

	if len(c.segments) > 0 {
		b.State(PhaseMovingSegmentsBack.String()).Initial()
	} else {
		b.State(PhaseReturningLead.String()).Initial()
	}

	b.State(PhaseRotatingOpen.String()).OnEntry(resetCursor)
	b.State(PhaseMovingSegments.String()).OnEntry(resetCursor)
	b.State(PhaseMovingSegmentsBack.String()).OnEntry(func(fluo.Context) error {
		c.cursor = len(c.segments) - 1
		return nil
	})

	// Takeover: a change of input abandons the sub-step in flight
	for _, p := range []Phase{PhaseRotatingOpen, PhaseMovingSegments, PhaseAligningLead, PhaseOpen} {
		b.State(p.String()).To(PhaseMovingSegmentsBack.String()).On(eventClose).When(hasSegments)
		b.State(p.String()).To(PhaseReturningLead.String()).On(eventClose).Unless(hasSegments)
	}
	for _, p := range []Phase{PhaseMovingSegmentsBack, PhaseReturningLead, PhaseRotatingClose, PhaseClosed} {
		b.State(p.String()).To(PhaseRotatingOpen.String()).On(eventOpen)
	}

	// Sub-step completion
	b.State(PhaseRotatingOpen.String()).To(PhaseMovingSegments.String()).On(eventStepDone).When(hasSegments)
	b.State(PhaseRotatingOpen.String()).To(PhaseAligningLead.String()).On(eventStepDone).Unless(hasSegments)
	b.State(PhaseMovingSegments.String()).To(PhaseAligningLead.String()).On(eventStepDone).When(segmentsOpen)
	b.State(PhaseAligningLead.String()).To(PhaseOpen.String()).On(eventStepDone)
	b.State(PhaseMovingSegmentsBack.String()).To(PhaseReturningLead.String()).On(eventStepDone).When(segmentsHome)
	b.State(PhaseReturningLead.String()).To(PhaseRotatingClose.String()).On(eventStepDone)
	b.State(PhaseRotatingClose.String()).To(PhaseClosed.String()).On(eventStepDone)

	return b.Build()
}

// phaseTracker keeps the controller's cached phase in step with the machine.
// Observers run under the machine lock so nothing here may call back into it.
type phaseTracker struct {
	c *Controller
}

func (t *phaseTracker) OnTransition(from, to string, _ fluo.Event, _ fluo.Context) {
	t.c.phase = phaseByName(to)
	t.c.log.V(1).Info("Phase changed", "from", from, "to", to, "direction", t.c.direction.String())
}

func (t *phaseTracker) OnStateEnter(state string, _ fluo.Context) {
	t.c.phase = phaseByName(state)
}

// transitionObserver adapts a TransitionFunc to the machine's observer hook
type transitionObserver struct {
	fn TransitionFunc
}

func (o *transitionObserver) OnTransition(from, to string, _ fluo.Event, _ fluo.Context) {
	o.fn(phaseByName(from), phaseByName(to))
}

func (o *transitionObserver) OnStateEnter(string, fluo.Context) {}

// OnTransition registers fn to be called on every phase change
func (c *Controller) OnTransition(fn TransitionFunc) {
	c.machine.AddObserver(&transitionObserver{fn: fn})
}

// SetDirection sets the input read on the next tick
func (c *Controller) SetDirection(d Direction) {
	c.direction = d
}

// Increase steps the direction input toward forward, stopping at +1
func (c *Controller) Increase() {
	if c.direction < DirectionForward {
		c.direction++
	}
}

// Decrease steps the direction input toward reverse, stopping at -1
func (c *Controller) Decrease() {
	if c.direction > DirectionReverse {
		c.direction--
	}
}

// Direction returns the input the controller is following
func (c *Controller) Direction() Direction { return c.direction }

// Status returns the lane split, updated only once a sequence settles
func (c *Controller) Status() Status { return c.status }

// Moving reports whether the barrier is mid-animation
func (c *Controller) Moving() bool { return c.moving }

// Phase returns the current sub-step
func (c *Controller) Phase() Phase { return c.phase }

// Cursor returns the segment index the segment phases are working on
func (c *Controller) Cursor() int { return c.cursor }

// SegmentCount returns the number of segment slots, nil ones included
func (c *Controller) SegmentCount() int { return len(c.segments) }

// StartPosition returns the recorded start position of segment i
func (c *Controller) StartPosition(i int) transform.Vec3 {
	return c.startPositions[i]
}

// Update advances the barrier by one tick of dt seconds
func (c *Controller) Update(dt float64) {
	c.moving = true

	// Rejected when the machine is already in the matching sequence
	if c.direction == DirectionClosed {
		c.machine.HandleEvent(eventClose, nil)
		c.status = StatusBalanced
	} else {
		c.machine.HandleEvent(eventOpen, nil)
	}

	switch c.phase {
	case PhaseRotatingOpen:
		c.rotateOpen(dt)
	case PhaseMovingSegments:
		c.moveSegmentOpen(dt)
	case PhaseAligningLead, PhaseOpen:
		c.alignLead(dt)
	case PhaseMovingSegmentsBack:
		c.moveSegmentBack(dt)
	case PhaseReturningLead:
		c.returnLead(dt)
	case PhaseRotatingClose, PhaseClosed:
		c.rotateClose(dt)
	}
}

// stepDone tells the machine a sub-step settled. The segment phases only
// leave once their guard sees the cursor run off the row, and the steady
// phases have no completion transition so the event is dropped there.
func (c *Controller) stepDone() {
	c.machine.HandleEvent(eventStepDone, nil)
}

func (c *Controller) openX() float64 {
	if c.direction == DirectionForward {
		return c.cfg.OpenOffset
	}
	return -c.cfg.OpenOffset
}

func (c *Controller) openRotation() transform.Rotation {
	if c.direction == DirectionForward {
		return transform.Euler(c.cfg.RotateAngle)
	}
	return transform.Euler(-c.cfg.RotateAngle)
}

// rotateLead turns the lead toward target and reports completion
func (c *Controller) rotateLead(target transform.Rotation, dt float64) bool {
	if c.lead == nil {
		return true
	}
	next := transform.RotateTowards(c.lead.LocalRotation(), target, c.cfg.RotationSpeed*dt)
	c.lead.SetLocalRotation(next)
	if transform.Angle(next, target) < AngleEpsilon {
		c.lead.SetLocalRotation(target)
		return true
	}
	return false
}

// moveTo translates t toward target and reports completion
func (c *Controller) moveTo(t transform.Transform, target transform.Vec3, dt float64) bool {
	next := transform.MoveTowards(t.LocalPosition(), target, c.cfg.MoveSpeed*dt)
	t.SetLocalPosition(next)
	if transform.Distance(next, target) < PositionEpsilon {
		t.SetLocalPosition(target)
		return true
	}
	return false
}

func (c *Controller) rotateOpen(dt float64) {
	if c.rotateLead(c.openRotation(), dt) {
		c.stepDone()
	}
}

func (c *Controller) moveSegmentOpen(dt float64) {
	seg := c.segments[c.cursor]
	if seg == nil {
		c.cursor++
		c.stepDone()
		return
	}
	cur := seg.LocalPosition()
	target := transform.Vec3{X: c.openX(), Y: cur.Y, Z: cur.Z}
	if c.moveTo(seg, target, dt) {
		c.cursor++
		c.stepDone()
	}
}

func (c *Controller) alignLead(dt float64) {
	done := true
	if c.lead != nil {
		target := transform.Vec3{X: c.openX(), Y: c.leadStartPos.Y, Z: c.leadStartPos.Z}
		done = c.moveTo(c.lead, target, dt)
	}
	if !done {
		return
	}
	if c.direction == DirectionForward {
		c.status = StatusExpandedForward
	} else {
		c.status = StatusExpandedReverse
	}
	c.moving = false
	c.stepDone()
}

func (c *Controller) moveSegmentBack(dt float64) {
	seg := c.segments[c.cursor]
	if seg == nil || c.moveTo(seg, c.startPositions[c.cursor], dt) {
		c.cursor--
		c.stepDone()
	}
}

func (c *Controller) returnLead(dt float64) {
	if c.lead == nil || c.moveTo(c.lead, c.leadStartPos, dt) {
		c.stepDone()
	}
}

func (c *Controller) rotateClose(dt float64) {
	if c.rotateLead(c.leadStartRot, dt) {
		c.moving = false
		c.stepDone()
	}
}

var _ State = (*Controller)(nil)
