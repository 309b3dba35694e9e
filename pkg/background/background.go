package background

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
)

// Generator paints the verges either side of the road
type Generator struct {
	Width  int
	Height int
}

// NewGenerator creates a generator for a screen of the given size
func NewGenerator(width, height int) *Generator {
	return &Generator{
		Width:  width,
		Height: height,
	}
}

// Paint renders grass, bushes and trees into an RGBA image, leaving the
// columns between roadLeft and roadRight as plain grass for the road to
// cover. The same seed always paints the same picture.
func (g *Generator) Paint(seed int64, roadLeft, roadRight int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))
	rng := rand.New(rand.NewSource(seed))

	base := color.RGBA{30, 100, 30, 255}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			img.SetRGBA(x, y, base)
		}
	}

	// Speckle the grass
	for i := 0; i < g.Width*g.Height/10; i++ {
		shade := uint8(80 + rng.Intn(60))
		img.SetRGBA(rng.Intn(g.Width), rng.Intn(g.Height), color.RGBA{30, shade, 30, 255})
	}

	// Keep planting clear of the hard shoulder
	const shoulder = 12
	for y := 0; y < g.Height; y += 10 {
		density := 0.5 + 0.3*math.Sin(float64(y)*0.01)
		for x := 0; x < g.Width; x += 5 + rng.Intn(15) {
			if rng.Float64() > density {
				continue
			}
			px := x + rng.Intn(10) - 5
			py := y + rng.Intn(10) - 5
			if px > roadLeft-shoulder && px < roadRight+shoulder {
				continue
			}
			if rng.Float64() < 0.3 {
				g.tree(img, px, py, rng)
			} else {
				g.bush(img, px, py, rng)
			}
		}
	}
	return img
}

// Generate paints the verges into an ebiten image
func (g *Generator) Generate(seed int64, roadLeft, roadRight int) *ebiten.Image {
	return ebiten.NewImageFromImage(g.Paint(seed, roadLeft, roadRight))
}

func (g *Generator) set(img *image.RGBA, x, y int, c color.RGBA) {
	if x >= 0 && x < g.Width && y >= 0 && y < g.Height {
		img.SetRGBA(x, y, c)
	}
}

// tree draws a small pine seen from above and slightly south
func (g *Generator) tree(img *image.RGBA, x, y int, rng *rand.Rand) {
	height := 24 + rng.Intn(18)
	width := 12 + rng.Intn(9)

	trunk := color.RGBA{60, 40, 20, 255}
	trunkW := 2 + rng.Intn(3)
	for ty := 0; ty < height/3; ty++ {
		for tx := -trunkW / 2; tx < trunkW/2+1; tx++ {
			g.set(img, x+tx, y-ty, trunk)
		}
	}

	leaves := color.RGBA{
		uint8(20 + rng.Intn(30)),
		uint8(80 + rng.Intn(60)),
		uint8(20 + rng.Intn(30)),
		255,
	}
	for l := 0; l < 3; l++ {
		layerY := y - height/3 - l*height/4
		layerW := max(width-l*4, 4)
		for ly := 0; ly < height/3; ly++ {
			rowW := layerW * (height/3 - ly) / (height / 3)
			for lx := -rowW / 2; lx < rowW/2; lx++ {
				g.set(img, x+lx, layerY-ly, leaves)
			}
		}
	}
}

// bush draws a filled disc
func (g *Generator) bush(img *image.RGBA, x, y int, rng *rand.Rand) {
	radius := 3 + rng.Intn(7)
	c := color.RGBA{
		uint8(40 + rng.Intn(40)),
		uint8(100 + rng.Intn(50)),
		uint8(40 + rng.Intn(40)),
		255,
	}
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				g.set(img, x+dx, y+dy, c)
			}
		}
	}
}
