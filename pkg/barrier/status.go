package barrier

import "fmt"

// Status is the lane split the barrier currently leaves open on each side
type Status int

const (
	StatusBalanced        Status = iota // "3-3": barrier closed, three lanes per side
	StatusExpandedReverse               // "4-2": reverse side gained a lane
	StatusExpandedForward               // "2-4": forward side gained a lane
)

func (s Status) String() string {
	switch s {
	case StatusBalanced:
		return "3-3"
	case StatusExpandedReverse:
		return "4-2"
	case StatusExpandedForward:
		return "2-4"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Direction is the externally supplied barrier input.
// Zero closes the barrier; a non-zero value opens it toward that side.
type Direction int

const (
	DirectionReverse Direction = -1
	DirectionClosed  Direction = 0
	DirectionForward Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionReverse:
		return "reverse"
	case DirectionClosed:
		return "closed"
	case DirectionForward:
		return "forward"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Phase is the sub-step the controller will run on its next tick
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseRotatingOpen
	PhaseMovingSegments
	PhaseAligningLead
	PhaseOpen
	PhaseMovingSegmentsBack
	PhaseReturningLead
	PhaseRotatingClose
)

var phaseNames = map[Phase]string{
	PhaseClosed:             "closed",
	PhaseRotatingOpen:       "rotating-open",
	PhaseMovingSegments:     "moving-segments",
	PhaseAligningLead:       "aligning-lead",
	PhaseOpen:               "open",
	PhaseMovingSegmentsBack: "moving-segments-back",
	PhaseReturningLead:      "returning-lead",
	PhaseRotatingClose:      "rotating-close",
}

// phaseByName maps a machine state id back to its phase
func phaseByName(name string) Phase {
	for p, n := range phaseNames {
		if n == name {
			return p
		}
	}
	return PhaseClosed
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Opening reports whether the phase belongs to the open sequence
func (p Phase) Opening() bool {
	switch p {
	case PhaseRotatingOpen, PhaseMovingSegments, PhaseAligningLead, PhaseOpen:
		return true
	}
	return false
}

// State is the read-only view of the barrier that traffic managers poll
type State interface {
	Status() Status
	Moving() bool
	Direction() Direction
}
