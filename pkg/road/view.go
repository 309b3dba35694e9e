package road

import (
	"github.com/golangdaddy/laneshift/pkg/transform"
	"github.com/golangdaddy/laneshift/pkg/world"
)

// View projects the world onto a top-down screen. World +Z is screen up and
// world +X is screen right; the barrier root sits at the screen center.
type View struct {
	Layout  world.Layout
	Scale   float64 // Pixels per world unit
	OriginX float64 // Screen position of the world origin
	OriginY float64
}

// NewView fits the visible stretch of road, from one lane head to the
// other, into a screen of the given size
func NewView(layout world.Layout, width, height int) View {
	span := 2*layout.SpawnDistance + 10
	scale := float64(height) / span
	if w := float64(width) / (layout.Width() + 10); w < scale {
		scale = w
	}
	return View{
		Layout:  layout,
		Scale:   scale,
		OriginX: float64(width) / 2,
		OriginY: float64(height) / 2,
	}
}

// ToScreen returns the screen position of p
func (v View) ToScreen(p transform.Vec3) (x, y float64) {
	return v.OriginX + p.X*v.Scale, v.OriginY - p.Z*v.Scale
}

// Edges returns the screen X of the road's reverse-side and forward-side edges
func (v View) Edges() (left, right float64) {
	half := v.Layout.Width() / 2 * v.Scale
	return v.OriginX - half, v.OriginX + half
}

// DividerXs returns the screen X of every line between two lanes
func (v View) DividerXs() []float64 {
	left, _ := v.Edges()
	xs := make([]float64, 0, v.Layout.Lanes-1)
	for i := 1; i < v.Layout.Lanes; i++ {
		xs = append(xs, left+float64(i)*v.Layout.LaneWidth*v.Scale)
	}
	return xs
}
