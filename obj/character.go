package obj

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/assets"
	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/phys"
)

// Space is the slice of the physics world a character interacts with beyond
// its own movement. *phys.World satisfies it.
type Space interface {
	CircleOverlap(center common.Vec, radius float64, exclude *phys.Body) []*phys.Body
	Contacts(b *phys.Body) []*phys.Body
	Remove(b *phys.Body)
}

// State is the character's current mode, derived each frame.
type State int

const (
	StateIdle State = iota
	StateRun
	StateJump
	StateFall
	StateAttacking
	StateWon
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRun:
		return "run"
	case StateJump:
		return "jump"
	case StateFall:
		return "fall"
	case StateAttacking:
		return "attacking"
	case StateWon:
		return "won"
	}
	return "unknown"
}

var playerColors = [...]color.RGBA{
	{R: 0xe6, G: 0x29, B: 0x37, A: 0xff},
	{R: 0x00, G: 0x79, B: 0xf1, A: 0xff},
	{R: 0xfd, G: 0xf9, B: 0x00, A: 0xff},
	{R: 0x00, G: 0xe4, B: 0x30, A: 0xff},
}

// PlayerColor returns the display color for a player slot.
func PlayerColor(player int) color.RGBA {
	if player < 0 {
		player = 0
	}
	return playerColors[player%len(playerColors)]
}

// CharacterParams configures one character. All distances are pixels.
type CharacterParams struct {
	Player int
	Spawn  common.Vec
	Size   common.Vec

	Density  float64
	Friction float64

	Movement           phys.MovementParams
	FallThroughSeconds float64

	AttackWindow float64 // seconds the attack stays visible
	AttackRadius float64
	AttackReach  float64 // gap between body edge and attack center
	KnockbackX   float64
	KnockbackY   float64

	LevelSize     common.Vec
	RespawnMargin float64 // how far below the level counts as out of bounds
	Wrap          bool    // teleport across the level's vertical edges

	SkinDir string
}

// Character is one player's avatar: a physics body, platformer movement, a
// melee attack, and the win/respawn rules.
type Character struct {
	params CharacterParams

	world       *phys.World
	space       Space
	body        *phys.Body
	movement    *phys.Movement
	fallThrough *phys.FallThrough
	input       *Input
	anim        *AnimationController

	state       State
	attackTimer float64
	hasWon      bool

	jumpSound *audio.Player
	hitSound  *audio.Player
	dieSound  *audio.Player
	boomSound *audio.Player
	winSound  *audio.Player

	// OnWin fires once when the character reaches the goal.
	OnWin func(player int)
	// OnBombHit fires when a bomb sends the character back to its spawn.
	OnBombHit func(pos common.Vec)
}

func NewCharacter(world *phys.World, filter *phys.OneWayFilter, input *Input, params CharacterParams) *Character {
	body := world.CreateDynamicBody(params.Spawn, params.Size, params.Density, params.Friction, 0)
	body.SetTag(phys.TagCharacter)

	c := &Character{
		params:      params,
		world:       world,
		space:       world,
		body:        body,
		movement:    phys.NewMovement(world, body, &params.Movement),
		fallThrough: filter.Register(body, params.FallThroughSeconds),
		input:       input,
		anim:        NewAnimationController(),
		jumpSound:   assets.SoundPlayer("sounds/jump.wav"),
		hitSound:    assets.SoundPlayer("sounds/hit.wav"),
		dieSound:    assets.SoundPlayer("sounds/die.wav"),
		boomSound:   assets.SoundPlayer("sounds/boom.wav"),
		winSound:    assets.SoundPlayer("sounds/win.wav"),
	}

	if params.SkinDir != "" {
		c.anim.Add("idle", NewAnimation(params.SkinDir, "idle", 8))
		c.anim.Add("run", NewAnimation(params.SkinDir, "run", 10))
		c.anim.Add("jump", NewAnimation(params.SkinDir, "jump", 8))
		c.anim.Add("fall", NewAnimation(params.SkinDir, "fall", 8))
	}
	c.anim.Play("idle")

	return c
}

func (c *Character) Player() int          { return c.params.Player }
func (c *Character) Body() *phys.Body     { return c.body }
func (c *Character) State() State         { return c.state }
func (c *Character) HasWon() bool         { return c.hasWon }
func (c *Character) Position() common.Vec { return c.body.Position() }

// Update advances timers, applies input, and runs the contact rules. Call
// once per frame before the physics step.
func (c *Character) Update(dt float64) {
	if c == nil {
		return
	}

	c.fallThrough.Update(dt)
	if c.attackTimer > 0 {
		c.attackTimer = math.Max(0, c.attackTimer-dt)
	}

	if !c.hasWon {
		in := c.input
		if in == nil {
			in = &Input{}
		}

		c.movement.SetInput(in.MoveX, in.JumpPressed, in.JumpHeld)
		c.movement.Update(dt)

		if in.JumpPressed && c.movement.Grounded {
			play(c.jumpSound)
		}
		if in.MoveX > 0.1 {
			c.anim.FlipX = false
		} else if in.MoveX < -0.1 {
			c.anim.FlipX = true
		}

		if in.DownPressed {
			c.fallThrough.Trigger()
		}
		if in.AttackPressed {
			c.attack()
		}

		c.checkGoal()
		c.checkBombs()
		if c.params.Wrap {
			c.wrap()
		}
	}

	// Out-of-bounds respawn applies even mid-win-sequence.
	if c.body.Position().Y > c.params.LevelSize.Y+c.params.RespawnMargin {
		c.respawn()
		play(c.dieSound)
	}

	c.state = c.computeState()
	c.anim.Play(c.animationFor(c.state))
	c.anim.Update(dt)
}

// attack performs one overlap query in front of the character and knocks
// back everything it finds.
func (c *Character) attack() {
	c.attackTimer = c.params.AttackWindow
	play(c.hitSound)

	dir := 1.0
	if c.anim.FlipX {
		dir = -1.0
	}
	hits := c.space.CircleOverlap(c.attackPoint(dir), c.params.AttackRadius, c.body)
	for _, other := range hits {
		other.ApplyImpulse(common.V(c.params.KnockbackX*dir, -c.params.KnockbackY))
	}
}

func (c *Character) attackPoint(dir float64) common.Vec {
	pos := c.body.Position()
	pos.X += (c.params.Size.X/2 + c.params.AttackReach) * dir
	return pos
}

func (c *Character) checkGoal() {
	for _, other := range c.space.Contacts(c.body) {
		if other.Tag() != phys.TagGoal {
			continue
		}
		c.hasWon = true
		play(c.winSound)
		if c.OnWin != nil {
			c.OnWin(c.params.Player)
		}
		// Park the body far off-world and drop it from the simulation.
		c.body.SetPosition(common.V(-1000, -1000))
		c.body.SetVelocity(common.Vec{})
		c.space.Remove(c.body)
		return
	}
}

func (c *Character) checkBombs() {
	for _, other := range c.space.Contacts(c.body) {
		if other.Tag() != phys.TagBomb {
			continue
		}
		play(c.boomSound)
		if c.OnBombHit != nil {
			c.OnBombHit(c.body.Position())
		}
		c.respawn()
		return
	}
}

func (c *Character) wrap() {
	pos := c.body.Position()
	if pos.X <= 0 {
		c.body.SetPosition(common.V(c.params.LevelSize.X, pos.Y))
	} else if pos.X >= c.params.LevelSize.X {
		c.body.SetPosition(common.V(0, pos.Y))
	}
}

func (c *Character) respawn() {
	c.body.SetPosition(c.params.Spawn)
	c.body.SetVelocity(common.Vec{})
}

func (c *Character) computeState() State {
	switch {
	case c.hasWon:
		return StateWon
	case c.attackTimer > 0:
		return StateAttacking
	case !c.movement.Grounded:
		if c.body.Velocity().Y < 0 {
			return StateJump
		}
		return StateFall
	case math.Abs(c.movement.MoveX) > 0.1:
		return StateRun
	default:
		return StateIdle
	}
}

// animationFor maps a state to a locomotion animation. Attacking keeps the
// current locomotion pose; the attack itself draws as an overlay.
func (c *Character) animationFor(s State) string {
	switch s {
	case StateRun:
		return "run"
	case StateJump:
		return "jump"
	case StateFall:
		return "fall"
	case StateAttacking:
		return c.anim.Current()
	default:
		return "idle"
	}
}

func (c *Character) Draw(screen *ebiten.Image) {
	if c == nil || screen == nil || c.hasWon {
		return
	}

	pos := c.body.Position()
	if c.anim.Frame() != nil {
		c.anim.Draw(screen, pos)
	} else {
		vector.DrawFilledRect(screen,
			float32(pos.X-c.params.Size.X/2), float32(pos.Y-c.params.Size.Y/2),
			float32(c.params.Size.X), float32(c.params.Size.Y),
			PlayerColor(c.params.Player), false)
	}

	if c.attackTimer > 0 {
		dir := 1.0
		if c.anim.FlipX {
			dir = -1.0
		}
		p := c.attackPoint(dir)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y),
			float32(c.params.AttackRadius),
			color.RGBA{R: 0xe6, G: 0x29, B: 0x37, A: 0x80}, false)
	}
}

func play(p *audio.Player) {
	if p == nil {
		return
	}
	_ = p.Rewind()
	p.Play()
}
