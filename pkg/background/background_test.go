package background

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaint_Deterministic(t *testing.T) {
	g := NewGenerator(200, 120)
	a := g.Paint(7, 80, 120)
	b := g.Paint(7, 80, 120)
	require.Equal(t, a.Bounds(), b.Bounds())
	assert.Equal(t, a.Pix, b.Pix)

	c := g.Paint(8, 80, 120)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestPaint_RoadStripIsGrass(t *testing.T) {
	g := NewGenerator(200, 120)
	img := g.Paint(3, 80, 120)
	for y := 0; y < 120; y++ {
		for x := 100; x < 101; x++ {
			c := img.RGBAAt(x, y)
			assert.Equal(t, uint8(30), c.R, "no planting at (%d,%d)", x, y)
			assert.Equal(t, uint8(30), c.B)
		}
	}
}
