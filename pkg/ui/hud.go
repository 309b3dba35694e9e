package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/traffic"
)

var (
	panelColor  = color.RGBA{20, 20, 30, 200}
	borderColor = color.RGBA{100, 100, 120, 255}
	textColor   = color.RGBA{220, 220, 220, 255}
	movingColor = color.RGBA{255, 200, 60, 255}
	idleColor   = color.RGBA{100, 255, 100, 255}
)

// HUD draws the barrier state and one density button per traffic manager
type HUD struct {
	Lang Lang
}

// panel draws a bordered translucent box
func panel(dst *ebiten.Image, x, y, w, h float64) {
	const b = 2
	FillRect(dst, x, y, w, h, borderColor)
	FillRect(dst, x+b, y+b, w-2*b, h-2*b, panelColor)
}

// Draw renders the HUD over the simulation. Managers are laid out left to
// right in the order given.
func (h HUD) Draw(screen *ebiten.Image, state barrier.State, phase barrier.Phase, managers []*traffic.Manager, cars int) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()

	panel(screen, 20, 20, 260, 92)
	c := idleColor
	if state.Moving() {
		c = movingColor
	}
	DrawText(screen, StatusLine(state, h.Lang), 32, 30, 1.5, c)
	DrawText(screen, phase.String(), 32, 60, 1, textColor)
	DrawText(screen, fmt.Sprintf("cars %d", cars), 32, 80, 1, textColor)

	const buttonW, buttonH = 180, 48
	for i, m := range managers {
		x := float64(20 + i*(buttonW+20))
		if i == len(managers)-1 && len(managers) > 1 {
			x = float64(width - 20 - buttonW)
		}
		y := float64(height - 40 - buttonH)
		panel(screen, x, y, buttonW, buttonH)
		DrawText(screen, m.Name(), x+10, y+6, 1, textColor)
		DrawText(screen, DensityLabel(m.Density(), h.Lang), x+10, y+22, 1.5, textColor)
	}

	help := "<-/-> barrier  A/D density  L language  Esc title"
	DrawCentered(screen, help, float64(width)/2, float64(height)-18, 1, textColor)
}
