package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/phys"
)

// Bomb is a hazard trigger. Characters that touch it respawn at their start.
type Bomb struct {
	body   *phys.Body
	pos    common.Vec
	size   common.Vec
	sprite *ebiten.Image
}

// NewBomb places a sensor at pos (center, pixels) with the given size.
func NewBomb(world *phys.World, pos, size common.Vec) *Bomb {
	body := world.CreateStaticSensor(pos, size)
	body.SetTag(phys.TagBomb)

	return &Bomb{
		body:   body,
		pos:    pos,
		size:   size,
		sprite: assets.Image("bomb.png"),
	}
}

func (b *Bomb) Body() *phys.Body {
	if b == nil {
		return nil
	}
	return b.body
}

func (b *Bomb) Draw(screen *ebiten.Image) {
	if b == nil || screen == nil {
		return
	}

	if b.sprite != nil {
		w := float64(b.sprite.Bounds().Dx())
		h := float64(b.sprite.Bounds().Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(b.pos.X-w/2, b.pos.Y-h/2)
		screen.DrawImage(b.sprite, op)
		return
	}

	r := float32(b.size.X / 2)
	vector.DrawFilledCircle(screen, float32(b.pos.X), float32(b.pos.Y), r,
		color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}, false)
	vector.DrawFilledCircle(screen, float32(b.pos.X), float32(b.pos.Y)-r, 2,
		color.RGBA{R: 0xff, G: 0x45, B: 0x00, A: 0xff}, false)
}
