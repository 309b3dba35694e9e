package command

import (
	"sync/atomic"

	"github.com/golangdaddy/laneshift/pkg/barrier"
)

// Latch hands the most recent direction from any goroutine to the tick
// loop. Later writes overwrite earlier ones that were not taken yet.
type Latch struct {
	v atomic.Int32 // 0 when empty, direction+2 otherwise
}

// Set stores d for the next Take
func (l *Latch) Set(d barrier.Direction) {
	l.v.Store(int32(d) + 2)
}

// Take returns and clears the pending direction
func (l *Latch) Take() (barrier.Direction, bool) {
	v := l.v.Swap(0)
	if v == 0 {
		return 0, false
	}
	return barrier.Direction(v - 2), true
}
