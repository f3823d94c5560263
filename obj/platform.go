package obj

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/phys"
)

// Platform is a one-way ledge. Solid from above, pass-through from every
// other direction; the contact filter keys off its body tag.
type Platform struct {
	body *phys.Body
	pos  common.Vec
	size common.Vec
}

// NewPlatform places a solid static box at pos (center, pixels) tagged as a
// one-way platform.
func NewPlatform(world *phys.World, pos, size common.Vec) *Platform {
	body := world.CreateStaticBody(pos, size)
	body.SetTag(phys.TagPlatform)

	return &Platform{body: body, pos: pos, size: size}
}

func (p *Platform) Body() *phys.Body {
	if p == nil {
		return nil
	}
	return p.body
}

func (p *Platform) Draw(screen *ebiten.Image) {
	if p == nil || screen == nil {
		return
	}
	vector.DrawFilledRect(screen,
		float32(p.pos.X-p.size.X/2), float32(p.pos.Y-p.size.Y/2),
		float32(p.size.X), float32(p.size.Y),
		color.RGBA{R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff}, false)
}
