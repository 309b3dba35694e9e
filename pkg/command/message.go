package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golangdaddy/laneshift/pkg/barrier"
)

// ErrInvalidMessage is wrapped by every payload that cannot be turned into
// a barrier direction
var ErrInvalidMessage = errors.New("invalid barrier message")

// Wire values of Message.Status
const (
	StatusStop = 0
	StatusMove = 1
)

// Wire values of Message.Direction
const (
	DirectionLeft  = 0
	DirectionRight = 1
)

// Message is the barrier_condition payload
type Message struct {
	Status    int   `json:"status"`
	Direction int   `json:"direction"`
	Timestamp int64 `json:"timestamp"` // Unix seconds
}

// BarrierDirection maps the message to a barrier input. A stop closes the
// barrier whatever the direction field says.
func (m Message) BarrierDirection() (barrier.Direction, error) {
	switch m.Status {
	case StatusStop:
		return barrier.DirectionClosed, nil
	case StatusMove:
	default:
		return 0, fmt.Errorf("%w: status %d", ErrInvalidMessage, m.Status)
	}

	switch m.Direction {
	case DirectionLeft:
		return barrier.DirectionReverse, nil
	case DirectionRight:
		return barrier.DirectionForward, nil
	}
	return 0, fmt.Errorf("%w: direction %d", ErrInvalidMessage, m.Direction)
}

// NewMessage builds the payload that asks for d
func NewMessage(d barrier.Direction, at time.Time) Message {
	m := Message{Status: StatusMove, Timestamp: at.Unix()}
	switch d {
	case barrier.DirectionClosed:
		m.Status = StatusStop
	case barrier.DirectionForward:
		m.Direction = DirectionRight
	}
	return m
}

// Decode parses a JSON payload into a barrier direction
func Decode(payload []byte) (barrier.Direction, Message, error) {
	var m Message
	if err := json.Unmarshal(payload, &m); err != nil {
		return 0, Message{}, fmt.Errorf("%w: %w", ErrInvalidMessage, err)
	}
	d, err := m.BarrierDirection()
	return d, m, err
}

// Encode renders m as JSON
func Encode(m Message) ([]byte, error) {
	return json.Marshal(m)
}
