package game

import (
	"github.com/go-logr/logr"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/laneshift/pkg/ui"
	"github.com/golangdaddy/laneshift/pkg/world"
)

// Logical screen size
const (
	ScreenWidth  = 1024
	ScreenHeight = 600
)

// Screen represents a UI screen interface
type Screen interface {
	Update() error
	Draw(screen *ebiten.Image)
}

// Game implements the ebiten.Game interface and switches between the title
// and the simulation
type Game struct {
	world         *world.World
	seed          int64
	log           logr.Logger
	currentScreen Screen
	simulation    *SimulationScreen
}

// NewGame creates a game over w, starting on the title screen
func NewGame(w *world.World, seed int64, log logr.Logger) *Game {
	g := &Game{
		world: w,
		seed:  seed,
		log:   log.WithName("game"),
	}
	g.showTitle()
	return g
}

func (g *Game) showTitle() {
	g.currentScreen = ui.NewTitleScreen(g.startSimulation)
}

// startSimulation resumes the one simulation screen; the world keeps its
// state across visits to the title
func (g *Game) startSimulation() {
	if g.simulation == nil {
		g.simulation = NewSimulationScreen(g.world, g.seed, g.showTitle)
	}
	g.log.V(1).Info("Simulation screen shown")
	g.currentScreen = g.simulation
}

// Update handles game logic updates
func (g *Game) Update() error {
	if g.currentScreen != nil {
		return g.currentScreen.Update()
	}
	return nil
}

// Draw renders the current screen
func (g *Game) Draw(screen *ebiten.Image) {
	if g.currentScreen != nil {
		g.currentScreen.Draw(screen)
	}
}

// Layout returns the game's screen dimensions
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return ScreenWidth, ScreenHeight
}
