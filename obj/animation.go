package obj

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
)

// Animation is a looping sequence of frame images played at a fixed rate.
type Animation struct {
	frames []*ebiten.Image
	fps    float64
	timer  float64
	index  int
}

// NewAnimation loads numbered frame files from an assets-relative directory,
// e.g. dir "characters/red", name "run" loads run-1.png, run-2.png, ... until
// a frame is missing. Returns an empty animation when no frames load.
func NewAnimation(dir, name string, fps float64) *Animation {
	var frames []*ebiten.Image
	for i := 1; ; i++ {
		img := assets.Image(fmt.Sprintf("%s/%s-%d.png", dir, name, i))
		if img == nil {
			break
		}
		frames = append(frames, img)
	}
	return &Animation{frames: frames, fps: fps}
}

func (a *Animation) Update(dt float64) {
	if a == nil || len(a.frames) < 2 || a.fps <= 0 {
		return
	}
	a.timer += dt
	step := 1.0 / a.fps
	for a.timer >= step {
		a.timer -= step
		a.index = (a.index + 1) % len(a.frames)
	}
}

func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.timer = 0
	a.index = 0
}

// Frame returns the current frame image, nil when no frames loaded.
func (a *Animation) Frame() *ebiten.Image {
	if a == nil || len(a.frames) == 0 {
		return nil
	}
	return a.frames[a.index]
}

// AnimationController switches between named animations and draws the active
// frame centered on a position.
type AnimationController struct {
	anims   map[string]*Animation
	current string

	// FlipX mirrors the frame horizontally, used for facing left.
	FlipX bool
	// Origin offsets the draw position, for sprites larger than the body.
	Origin common.Vec
}

func NewAnimationController() *AnimationController {
	return &AnimationController{anims: make(map[string]*Animation)}
}

// Add registers a named animation. Adding under an existing name replaces it.
func (c *AnimationController) Add(name string, anim *Animation) {
	if c == nil || anim == nil {
		return
	}
	c.anims[name] = anim
}

// Play switches to the named animation. Replaying the current one is a no-op
// so the loop keeps running. Switching to an unregistered or frameless
// animation keeps the current pose, so a skin without a fall clip holds its
// jump frames in the air.
func (c *AnimationController) Play(name string) {
	if c == nil || c.current == name {
		return
	}
	a, ok := c.anims[name]
	if !ok || a.Frame() == nil {
		return
	}
	a.Reset()
	c.current = name
}

// Current returns the name of the active animation.
func (c *AnimationController) Current() string {
	if c == nil {
		return ""
	}
	return c.current
}

func (c *AnimationController) Update(dt float64) {
	if c == nil {
		return
	}
	if a, ok := c.anims[c.current]; ok {
		a.Update(dt)
	}
}

// Frame returns the active frame image, nil when nothing is loaded.
func (c *AnimationController) Frame() *ebiten.Image {
	if c == nil {
		return nil
	}
	return c.anims[c.current].Frame()
}

// Draw renders the active frame centered at pos (pixels). No-op when the
// active animation has no frames.
func (c *AnimationController) Draw(screen *ebiten.Image, pos common.Vec) {
	frame := c.Frame()
	if frame == nil || screen == nil {
		return
	}

	w := float64(frame.Bounds().Dx())
	h := float64(frame.Bounds().Dy())

	op := &ebiten.DrawImageOptions{}
	if c.FlipX {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(w, 0)
	}
	op.GeoM.Translate(pos.X-w/2+c.Origin.X, pos.Y-h/2+c.Origin.Y)
	screen.DrawImage(frame, op)
}
