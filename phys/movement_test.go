package phys

import (
	"math"
	"testing"

	"github.com/nrunner/nrunner/common"
)

func testMovementParams() *MovementParams {
	return &MovementParams{
		MaxSpeed:     160,
		Accel:        0, // instant unless a test overrides
		JumpSpeed:    420,
		JumpCutSpeed: 120,
		ProbeDepth:   3,
	}
}

// groundedRig builds a world with a character resting on a floor.
func groundedRig(t *testing.T, params *MovementParams) (*World, *Body, *Movement) {
	t.Helper()
	w := NewWorld(1000)
	w.CreateStaticBody(common.V(100, 200), common.V(400, 16))

	body := w.CreateDynamicBody(common.V(100, 180), common.V(16, 24), 1.0, 0, 0)
	m := NewMovement(w, body, params)
	return w, body, m
}

func TestMovementHorizontal(t *testing.T) {
	cases := []struct {
		name  string
		axis  float64
		accel float64
		steps int
		want  float64
	}{
		{"instant_right", 1, 0, 1, 160},
		{"instant_left", -1, 0, 1, -160},
		{"instant_half", 0.5, 0, 1, 80},
		{"clamped_axis", 2, 0, 1, 160},
		{"accelerated_partial", 1, 1600, 1, 1600 * testDT},
		{"accelerated_saturates", 1, 1600, 60, 160},
		{"stop", 0, 0, 1, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			params := testMovementParams()
			params.Accel = c.accel
			_, body, m := groundedRig(t, params)

			for i := 0; i < c.steps; i++ {
				m.SetInput(c.axis, false, false)
				m.Update(testDT)
			}

			if got := body.Velocity().X; math.Abs(got-c.want) > 0.5 {
				t.Fatalf("vx = %v, want %v", got, c.want)
			}
		})
	}
}

func TestMovementGroundedOutput(t *testing.T) {
	_, body, m := groundedRig(t, testMovementParams())

	m.SetInput(0, false, false)
	m.Update(testDT)
	if !m.Grounded {
		t.Fatalf("resting character should be grounded")
	}

	body.SetPosition(common.V(100, 100))
	m.Update(testDT)
	if m.Grounded {
		t.Fatalf("airborne character should not be grounded")
	}
}

func TestJumpSetsUpwardVelocity(t *testing.T) {
	_, body, m := groundedRig(t, testMovementParams())

	m.SetInput(0, true, true)
	m.Update(testDT)

	if got := body.Velocity().Y; math.Abs(got-(-420)) > 1e-6 {
		t.Fatalf("jump should set vy to -420, got %v", got)
	}
}

func TestJumpOnlyOncePerGroundContact(t *testing.T) {
	_, body, m := groundedRig(t, testMovementParams())

	m.SetInput(0, true, true)
	m.Update(testDT)
	if body.Velocity().Y >= 0 {
		t.Fatalf("first jump should launch the character")
	}

	// Still on the ground (no step has moved the body); a second press must
	// not re-apply the impulse.
	body.SetVelocity(common.V(0, 0))
	m.SetInput(0, true, true)
	m.Update(testDT)
	if got := body.Velocity().Y; got != 0 {
		t.Fatalf("second jump without an airborne frame should be ignored, got vy=%v", got)
	}

	// After a full airborne/grounded cycle the latch clears.
	body.SetPosition(common.V(100, 100))
	m.SetInput(0, false, false)
	m.Update(testDT)

	body.SetPosition(common.V(100, 180))
	body.SetVelocity(common.V(0, 0))
	m.SetInput(0, true, true)
	m.Update(testDT)
	if body.Velocity().Y >= 0 {
		t.Fatalf("jump should be allowed again after landing")
	}
}

func TestJumpCutClampsRise(t *testing.T) {
	_, body, m := groundedRig(t, testMovementParams())

	m.SetInput(0, true, true)
	m.Update(testDT)

	// Release while rising fast: rise speed clamps to the cut speed.
	m.SetInput(0, false, false)
	m.Update(testDT)

	if got := body.Velocity().Y; math.Abs(got-(-120)) > 1e-6 {
		t.Fatalf("releasing jump should clamp rise to -120, got vy=%v", got)
	}
}

func TestMovementDeterministic(t *testing.T) {
	run := func() []common.Vec {
		_, body, m := groundedRig(t, testMovementParams())
		w := body.world

		var trace []common.Vec
		for i := 0; i < 120; i++ {
			jump := i == 10
			m.SetInput(1, jump, i >= 10 && i < 20)
			m.Update(testDT)
			w.Step(testDT)
			trace = append(trace, body.Position())
		}
		return trace
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("identical input sequences diverged at frame %d: %v vs %v", i, a[i], b[i])
		}
	}
}
