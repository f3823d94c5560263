package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/phys"
)

// Goal is the finish trigger. Characters that touch it win the level.
type Goal struct {
	body   *phys.Body
	pos    common.Vec
	size   common.Vec
	sprite *ebiten.Image
}

// NewGoal places a sensor at pos (center, pixels) with the given size.
func NewGoal(world *phys.World, pos, size common.Vec) *Goal {
	body := world.CreateStaticSensor(pos, size)
	body.SetTag(phys.TagGoal)

	return &Goal{
		body:   body,
		pos:    pos,
		size:   size,
		sprite: assets.Image("door.png"),
	}
}

func (g *Goal) Body() *phys.Body {
	if g == nil {
		return nil
	}
	return g.body
}

func (g *Goal) Draw(screen *ebiten.Image) {
	if g == nil || screen == nil {
		return
	}

	if g.sprite != nil {
		w := float64(g.sprite.Bounds().Dx())
		h := float64(g.sprite.Bounds().Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(2, 2)
		op.GeoM.Translate(g.pos.X-w, g.pos.Y-h)
		screen.DrawImage(g.sprite, op)
		return
	}

	vector.DrawFilledRect(screen,
		float32(g.pos.X-g.size.X/2), float32(g.pos.Y-g.size.Y/2),
		float32(g.size.X), float32(g.size.Y),
		color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}, false)
}
