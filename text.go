package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/nrunner/nrunner/assets"
)

var (
	colorWhite   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorBlack   = color.RGBA{A: 0xff}
	colorTitle   = color.RGBA{R: 0xff, G: 0xff, B: 0x64, A: 0xff}
	colorOutline = color.RGBA{R: 0x14, G: 0x32, B: 0x14, A: 0xff}
)

// drawTextOutlined draws s at (x, y) with a 4/8-direction outline behind it.
func drawTextOutlined(screen *ebiten.Image, s string, size, x, y, offset float64, fill, outline color.Color) {
	face := assets.Font(size)

	offsets := [][2]float64{
		{0, offset}, {offset, 0}, {0, -offset}, {-offset, 0},
		{offset, offset}, {-offset, -offset}, {offset, -offset}, {-offset, offset},
	}
	for _, d := range offsets {
		op := &text.DrawOptions{}
		op.GeoM.Translate(x+d[0], y+d[1])
		op.ColorScale.ScaleWithColor(outline)
		text.Draw(screen, s, face, op)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(fill)
	text.Draw(screen, s, face, op)
}

// drawTextCentered draws s horizontally centered at y with an outline.
func drawTextCentered(screen *ebiten.Image, s string, size, y, offset float64, fill, outline color.Color) {
	w, _ := text.Measure(s, assets.Font(size), 0)
	x := (float64(screen.Bounds().Dx()) - w) / 2
	drawTextOutlined(screen, s, size, x, y, offset, fill, outline)
}
