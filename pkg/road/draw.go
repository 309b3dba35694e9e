package road

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/golangdaddy/laneshift/pkg/vehicle"
	"github.com/golangdaddy/laneshift/pkg/world"
)

var (
	asphaltColor = color.RGBA{60, 60, 60, 255}
	dividerColor = color.RGBA{255, 255, 0, 255}
	edgeColor    = color.RGBA{255, 255, 255, 255}
	outlineColor = color.RGBA{20, 20, 20, 255}
	glassColor   = color.RGBA{150, 200, 255, 200}
	wheelColor   = color.RGBA{30, 30, 30, 255}

	// BarrierColor paints the segments, LeadColor the pivoting lead
	BarrierColor = color.RGBA{230, 120, 30, 255}
	LeadColor    = color.RGBA{240, 60, 40, 255}
)

const (
	dividerWidth      = 2.0
	dividerDashLength = 20.0
	dividerGapLength  = 10.0
	edgeWidth         = 3.0

	carWidth  = 1.9 // World units
	carLength = 4.2
)

// pixel is scaled and tinted to draw every rectangle
var pixel *ebiten.Image

// rect draws a w by h rectangle centered on (cx, cy), turned clockwise by
// yaw degrees
func rect(dst *ebiten.Image, cx, cy, w, h, yaw float64, c color.Color) {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(yaw * math.Pi / 180)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(pixel, op)
}

// DrawRoad paints the asphalt, the dashed lane dividers and the edges
func (v View) DrawRoad(screen *ebiten.Image) {
	height := float64(screen.Bounds().Dy())
	left, right := v.Edges()

	rect(screen, (left+right)/2, height/2, right-left, height, 0, asphaltColor)

	for _, x := range v.DividerXs() {
		for y := 0.0; y < height; y += dividerDashLength + dividerGapLength {
			dash := math.Min(dividerDashLength, height-y)
			rect(screen, x, y+dash/2, dividerWidth, dash, 0, dividerColor)
		}
	}

	rect(screen, left, height/2, edgeWidth, height, 0, edgeColor)
	rect(screen, right, height/2, edgeWidth, height, 0, edgeColor)
}

// DrawBarrier paints each collider box, the lead in its own color
func (v View) DrawBarrier(screen *ebiten.Image, boxes []world.Box) {
	for i, b := range boxes {
		c := BarrierColor
		if i == 0 {
			c = LeadColor
		}
		x, y := v.ToScreen(b.Center)
		rect(screen, x, y, 2*b.HalfExtents.X*v.Scale, 2*b.HalfExtents.Z*v.Scale, b.Rotation.Yaw, c)
	}
}

// DrawCar paints a top-down car with its bonnet along its facing
func (v View) DrawCar(screen *ebiten.Image, car *vehicle.Car) {
	x, y := v.ToScreen(car.Position())
	yaw := car.Rotation().Yaw
	w, h := carWidth*v.Scale, carLength*v.Scale

	rect(screen, x, y, w+2, h+2, yaw, outlineColor)
	rect(screen, x, y, w, h, yaw, car.Color())

	// Windshield sits a quarter length forward of center
	fwd := car.Rotation().ForwardVector()
	gx, gy := x+fwd.X*h/4, y-fwd.Z*h/4
	rect(screen, gx, gy, w*0.7, h*0.18, yaw, glassColor)

	// Wheels at the four corners
	right := car.Rotation().RightVector()
	for _, corner := range [][2]float64{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}} {
		ox := corner[0] * w / 2
		oz := corner[1] * h * 0.32
		wx := x + right.X*ox + fwd.X*oz
		wy := y - right.Z*ox - fwd.Z*oz
		rect(screen, wx, wy, w*0.18, h*0.18, yaw, wheelColor)
	}
}
