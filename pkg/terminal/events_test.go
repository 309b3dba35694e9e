package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPumpEvents_Forwards(t *testing.T) {
	screen := newScreen(t)
	out := make(chan tcell.Event, 1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go PumpEvents(ctx, screen, out)

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case ev := <-out:
		key, ok := ev.(*tcell.EventKey)
		require.True(t, ok)
		assert.Equal(t, 'q', key.Rune())
	case <-time.After(2 * time.Second):
		t.Fatal("event not forwarded")
	}
}

func TestPumpEvents_ReturnsWhenNobodyReads(t *testing.T) {
	screen := newScreen(t)
	out := make(chan tcell.Event) // Never read

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		PumpEvents(ctx, screen, out)
		close(done)
	}()

	screen.InjectKey(tcell.KeyRune, 'a', tcell.ModNone)
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pump stayed blocked on send after cancel")
	}
}

func TestPumpEvents_StopsOnFini(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())

	done := make(chan struct{})
	go func() {
		PumpEvents(context.Background(), screen, make(chan tcell.Event, 1))
		close(done)
	}()
	screen.Fini()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pump did not stop after Fini")
	}
}
