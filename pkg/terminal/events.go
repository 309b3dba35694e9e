package terminal

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// PumpEvents forwards screen events to out until the screen is finalised or
// ctx is done. It never blocks on out once ctx is cancelled.
func PumpEvents(ctx context.Context, screen tcell.Screen, out chan<- tcell.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ev := screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
