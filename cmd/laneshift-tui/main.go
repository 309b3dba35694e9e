package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/golangdaddy/laneshift/pkg/command"
	"github.com/golangdaddy/laneshift/pkg/config"
	"github.com/golangdaddy/laneshift/pkg/logging"
	"github.com/golangdaddy/laneshift/pkg/services"
	"github.com/golangdaddy/laneshift/pkg/terminal"
	"github.com/golangdaddy/laneshift/pkg/world"
)

func main() {
	opts := config.NewOptions()
	// The terminal owns stderr while running
	opts.LogFile = "laneshift-tui.log"
	opts.AddFlags(pflag.CommandLine)
	mute := pflag.Bool("mute", false, "Disable the barrier sound cues.")
	pflag.Parse()
	if err := opts.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, sync, err := logging.New(opts.Logging())
	if err != nil {
		log.Fatal(err)
	}
	defer sync()

	s, err := opts.Scenario()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(s, !*mute, logger); err != nil {
		fmt.Fprintf(os.Stderr, "laneshift-tui: %v\n", err)
		os.Exit(1)
	}
}

func run(s config.Scenario, sound bool, logger logr.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	latch := &command.Latch{}
	w := world.New(s.WorldOptions(), logger)
	w.SetInput(latch)

	if sound {
		chimes, err := terminal.NewChimes()
		if err != nil {
			// Non-fatal, the simulation runs without sound
			logger.Error(err, "Audio initialization failed")
		}
		chimes.Attach(w.Barrier())
		defer chimes.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)
	if err := services.Start(ctx, eg, s, latch, logger); err != nil {
		return err
	}

	loop(ctx, screen, w, s.TickRate)
	stop()
	return eg.Wait()
}

func loop(ctx context.Context, screen tcell.Screen, w *world.World, tickRate int) {
	renderer := terminal.NewRenderer(screen)
	dt := 1 / float64(tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go terminal.PumpEvents(ctx, screen, events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				a := terminal.KeyAction(ev)
				if a == terminal.ActionQuit {
					return
				}
				terminal.Apply(a, w)
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			w.Step(dt)
			renderer.Draw(w)
		}
	}
}
