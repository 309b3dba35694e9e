package ui

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TitleScreen is shown before the simulation starts
type TitleScreen struct {
	startTime      time.Time
	onStartPressed func() // Callback when user presses to start
}

// NewTitleScreen creates a new title screen
func NewTitleScreen(onStartPressed func()) *TitleScreen {
	return &TitleScreen{
		startTime:      time.Now(),
		onStartPressed: onStartPressed,
	}
}

// Update starts the simulation on Enter, Space or a click
func (ts *TitleScreen) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if ts.onStartPressed != nil {
			ts.onStartPressed()
		}
	}
	return nil
}

// Draw renders the title screen
func (ts *TitleScreen) Draw(screen *ebiten.Image) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	screen.Fill(color.RGBA{15, 20, 35, 255})

	elapsed := time.Since(ts.startTime).Seconds()
	centerX := float64(width) / 2
	centerY := float64(height) / 3

	// Title pulses between 1.0x and 1.1x
	scale := 8.0 * (1.0 + 0.1*math.Sin(elapsed*2.0))
	brightness := math.Min(1.0+0.2*math.Sin(elapsed*1.5), 1.0)
	DrawCentered(screen, "LANESHIFT", centerX, centerY-8, scale, color.RGBA{
		uint8(255 * brightness),
		uint8(200 * brightness),
		uint8(50 * brightness),
		255,
	})

	DrawCentered(screen, "Movable Barrier Simulation", centerX, centerY+80, 2.0, color.RGBA{180, 180, 200, 255})

	// Blink every half second
	if int(elapsed*2)%2 == 0 {
		DrawCentered(screen, "Press ENTER or SPACE to Start", centerX, float64(height)-100, 1.5, color.RGBA{150, 200, 255, 255})
	}

	lineColor := color.RGBA{50, 60, 80, 100}
	FillRect(screen, 0, float64(height)/6, float64(width), 2, lineColor)
	FillRect(screen, 0, float64(height)*5/6, float64(width), 2, lineColor)
}
