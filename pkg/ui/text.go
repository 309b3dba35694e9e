package ui

import (
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v4"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Face is the bitmap face used for every label
var Face = text.NewGoXFace(bitmapfont.Face)

// DrawText draws s with its top-left corner at (x, y), scaled up by scale
func DrawText(dst *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, Face, op)
}

// DrawCentered draws s horizontally centered on cx
func DrawCentered(dst *ebiten.Image, s string, cx, y, scale float64, c color.Color) {
	DrawText(dst, s, cx-Width(s, scale)/2, y, scale, c)
}

var pixel *ebiten.Image

// FillRect fills the w by h rectangle at (x, y) with c
func FillRect(dst *ebiten.Image, x, y, w, h float64, c color.Color) {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(pixel, op)
}

// Width returns the advance of s at scale
func Width(s string, scale float64) float64 {
	return text.Advance(s, Face) * scale
}
