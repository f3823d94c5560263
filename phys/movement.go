package phys

import (
	"github.com/nrunner/nrunner/common"
)

// MovementParams tunes the platformer controller. All values are in pixels
// and seconds.
type MovementParams struct {
	MaxSpeed     float64 // target horizontal speed at full input
	Accel        float64 // horizontal acceleration; <= 0 means instant
	JumpSpeed    float64 // upward launch speed
	JumpCutSpeed float64 // max rise speed after releasing jump
	ProbeDepth   float64 // ground probe reach below the feet
}

// Movement drives a character body from per-frame input. Horizontal velocity
// moves toward MoveX*MaxSpeed; jumping sets the vertical velocity once per
// ground contact.
type Movement struct {
	world  *World
	body   *Body
	params *MovementParams

	// MoveX is the horizontal input axis in [-1, 1], as last set.
	MoveX float64
	// Grounded is recomputed from the ground probe on every Update.
	Grounded bool

	jumpPressed bool
	jumpHeld    bool
	prevHeld    bool

	// jumpLatched blocks a second jump impulse until the body has been
	// airborne and grounded again.
	jumpLatched bool
	wasAirborne bool
}

func NewMovement(world *World, body *Body, params *MovementParams) *Movement {
	return &Movement{world: world, body: body, params: params}
}

// SetInput records this frame's input. Must be called before Update.
func (m *Movement) SetInput(moveX float64, jumpPressed, jumpHeld bool) {
	if m == nil {
		return
	}
	if moveX < -1 {
		moveX = -1
	} else if moveX > 1 {
		moveX = 1
	}
	m.MoveX = moveX
	m.jumpPressed = jumpPressed
	m.jumpHeld = jumpHeld
}

// Update translates the recorded input into body velocity. Deterministic for
// a given input sequence and dt.
func (m *Movement) Update(dt float64) {
	if m == nil || m.body == nil {
		return
	}

	m.Grounded = m.world.GroundProbe(m.body, m.params.ProbeDepth)
	if !m.Grounded {
		m.wasAirborne = true
	} else if m.wasAirborne {
		m.jumpLatched = false
		m.wasAirborne = false
	}

	v := m.body.Velocity()

	target := m.MoveX * m.params.MaxSpeed
	if m.params.Accel <= 0 {
		v.X = target
	} else {
		v.X = common.Approach(v.X, target, m.params.Accel*dt)
	}

	if m.jumpPressed && m.Grounded && !m.jumpLatched {
		v.Y = -m.params.JumpSpeed
		m.jumpLatched = true
	}

	// Variable jump height: releasing jump while still rising clamps the
	// rise speed.
	if m.prevHeld && !m.jumpHeld && v.Y < -m.params.JumpCutSpeed {
		v.Y = -m.params.JumpCutSpeed
	}
	m.prevHeld = m.jumpHeld

	m.body.SetVelocity(common.V(v.X, v.Y))
}
