package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/golangdaddy/laneshift/pkg/command"
	"github.com/golangdaddy/laneshift/pkg/config"
	"github.com/golangdaddy/laneshift/pkg/game"
	"github.com/golangdaddy/laneshift/pkg/logging"
	"github.com/golangdaddy/laneshift/pkg/services"
	"github.com/golangdaddy/laneshift/pkg/world"
)

func main() {
	opts := config.NewOptions()
	opts.AddFlags(pflag.CommandLine)
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

	latch := &command.Latch{}
	w := world.New(s.WorldOptions(), logger)
	w.SetInput(latch)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)
	if err := services.Start(ctx, eg, s, latch, logger); err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(game.ScreenWidth, game.ScreenHeight)
	ebiten.SetWindowTitle("Laneshift")
	ebiten.SetTPS(s.TickRate)

	logger.Info("Starting window", "tickRate", s.TickRate, "seed", s.Seed)
	runErr := ebiten.RunGame(game.NewGame(w, s.Seed, logger))
	stop()
	if err := eg.Wait(); err != nil {
		logger.Error(err, "Background service failed")
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
