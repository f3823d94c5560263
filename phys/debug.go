package phys

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
)

// DebugDraw renders every shape in the space onto screen, converted back to
// pixels. Sensors draw yellow, statics blue, dynamics magenta.
func (w *World) DebugDraw(screen *ebiten.Image) {
	if w == nil || w.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(w.space, &debugDrawer{screen: screen})
}

type debugDrawer struct {
	screen *ebiten.Image
}

func (d *debugDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(outline)
	px := toPixels(pos.X)
	py := toPixels(pos.Y)
	pr := toPixels(radius)
	steps := 20
	prevX, prevY := px+pr, py
	for i := 1; i <= steps; i++ {
		th := float64(i) * (2 * math.Pi / float64(steps))
		curX := px + math.Cos(th)*pr
		curY := py + math.Sin(th)*pr
		ebitenutil.DrawLine(d.screen, prevX, prevY, curX, curY, c)
		prevX, prevY = curX, curY
	}
	ebitenutil.DrawLine(d.screen, px, py, px+math.Cos(angle)*pr, py+math.Sin(angle)*pr, c)
}

func (d *debugDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	ebitenutil.DrawLine(d.screen, toPixels(a.X), toPixels(a.Y), toPixels(b.X), toPixels(b.Y), fcolorToRGBA(fill))
}

func (d *debugDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	ebitenutil.DrawLine(d.screen, toPixels(a.X), toPixels(a.Y), toPixels(b.X), toPixels(b.Y), fcolorToRGBA(outline))
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *debugDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if d.screen == nil || count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		ebitenutil.DrawLine(d.screen, toPixels(a.X), toPixels(a.Y), toPixels(b.X), toPixels(b.Y), c)
	}
}

func (d *debugDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if d.screen == nil {
		return
	}
	c := fcolorToRGBA(fill)
	px := toPixels(pos.X)
	py := toPixels(pos.Y)
	l := size / 2
	ebitenutil.DrawLine(d.screen, px-l, py, px+l, py, c)
	ebitenutil.DrawLine(d.screen, px, py-l, px, py+l, c)
}

func (d *debugDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *debugDrawer) OutlineColor() cp.FColor {
	return cp.FColor{R: 0.2, G: 1.0, B: 0.2, A: 1.0}
}

func (d *debugDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if shape == nil {
		return cp.FColor{R: 1, G: 1, B: 1, A: 1}
	}
	if shape.Sensor() {
		return cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}
	}
	if shape.Body() != nil && shape.Body().GetType() == cp.BODY_STATIC {
		return cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}
	}
	return cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}
}

func (d *debugDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 0.7, G: 0.7, B: 0.7, A: 1.0}
}

func (d *debugDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1.0, G: 0.1, B: 0.1, A: 1.0}
}

func (d *debugDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}
