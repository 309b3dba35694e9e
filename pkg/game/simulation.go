package game

import (
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/golangdaddy/laneshift/pkg/background"
	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/road"
	"github.com/golangdaddy/laneshift/pkg/traffic"
	"github.com/golangdaddy/laneshift/pkg/ui"
	"github.com/golangdaddy/laneshift/pkg/world"
)

// SimulationScreen steps the world once per ebiten tick and draws it top-down
type SimulationScreen struct {
	world  *world.World
	view   road.View
	hud    ui.HUD
	verge  *ebiten.Image
	sides  []*traffic.Manager // Left-to-right on screen
	seed   int64
	onExit func()
}

// NewSimulationScreen creates the screen; onExit runs when Escape is pressed
func NewSimulationScreen(w *world.World, seed int64, onExit func()) *SimulationScreen {
	s := &SimulationScreen{
		world:  w,
		view:   road.NewView(w.Layout(), ScreenWidth, ScreenHeight),
		hud:    ui.HUD{Lang: ui.Turkish},
		seed:   seed,
		onExit: onExit,
	}

	// Reverse-side managers drive on the left of the screen
	s.sides = w.Managers()
	sort.SliceStable(s.sides, func(i, j int) bool {
		return s.sides[i].Direction() < s.sides[j].Direction()
	})
	return s
}

// Update applies keyboard input, then advances the world by one tick
func (s *SimulationScreen) Update() error {
	b := s.world.Barrier()
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		b.Decrease()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		b.Increase()
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		b.SetDirection(barrier.DirectionClosed)
	}

	if len(s.sides) > 0 {
		if inpututil.IsKeyJustPressed(ebiten.KeyA) {
			s.sides[0].NextDensity()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyD) {
			s.sides[len(s.sides)-1].NextDensity()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.hud.Lang = s.hud.Lang.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && s.onExit != nil {
		s.onExit()
		return nil
	}

	s.world.Step(1 / float64(ebiten.TPS()))
	return nil
}

// Draw renders verges, road, barrier, cars and the HUD
func (s *SimulationScreen) Draw(screen *ebiten.Image) {
	if s.verge == nil {
		left, right := s.view.Edges()
		s.verge = background.NewGenerator(ScreenWidth, ScreenHeight).Generate(s.seed, int(left), int(right))
	}
	screen.Fill(color.RGBA{30, 100, 30, 255})
	screen.DrawImage(s.verge, nil)

	s.view.DrawRoad(screen)
	cars := s.world.Cars()
	for _, car := range cars {
		s.view.DrawCar(screen, car)
	}
	s.view.DrawBarrier(screen, s.world.Boxes())

	b := s.world.Barrier()
	s.hud.Draw(screen, b, b.Phase(), s.sides, len(cars))
}
