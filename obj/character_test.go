package obj

import (
	"testing"

	"github.com/nrunner/nrunner/common"
	"github.com/nrunner/nrunner/phys"
)

const testDT = 1.0 / 60.0

func testCharacterParams() CharacterParams {
	return CharacterParams{
		Player:  0,
		Spawn:   common.V(100, 180),
		Size:    common.V(16, 24),
		Density: 1.0,
		Movement: phys.MovementParams{
			MaxSpeed:     160,
			JumpSpeed:    420,
			JumpCutSpeed: 120,
			ProbeDepth:   3,
		},
		FallThroughSeconds: 0.2,
		AttackWindow:       0.1,
		AttackRadius:       8,
		AttackReach:        8,
		KnockbackX:         320,
		KnockbackY:         320,
		LevelSize:          common.V(1280, 720),
		RespawnMargin:      200,
	}
}

// testRig builds a world with a floor under the spawn point and one character.
func testRig(t *testing.T, params CharacterParams) (*phys.World, *phys.OneWayFilter, *Character) {
	t.Helper()
	w := phys.NewWorld(1000)
	f := phys.NewOneWayFilter()
	w.InstallFilter(f)

	floor := w.CreateStaticBody(common.V(params.Spawn.X, params.Spawn.Y+20), common.V(400, 16))
	floor.SetTag(phys.TagWall)

	c := NewCharacter(w, f, &Input{}, params)
	return w, f, c
}

// countingSpace wraps the world and counts overlap queries.
type countingSpace struct {
	inner        Space
	overlapCalls int
}

func (s *countingSpace) CircleOverlap(center common.Vec, radius float64, exclude *phys.Body) []*phys.Body {
	s.overlapCalls++
	return s.inner.CircleOverlap(center, radius, exclude)
}

func (s *countingSpace) Contacts(b *phys.Body) []*phys.Body { return s.inner.Contacts(b) }
func (s *countingSpace) Remove(b *phys.Body)                { s.inner.Remove(b) }

func TestAttackQueriesOncePerPress(t *testing.T) {
	w, _, c := testRig(t, testCharacterParams())
	cs := &countingSpace{inner: w}
	c.space = cs

	c.input.AttackPressed = true
	c.Update(testDT)
	if cs.overlapCalls != 1 {
		t.Fatalf("attack press should run exactly one overlap query, got %d", cs.overlapCalls)
	}
	if c.State() != StateAttacking {
		t.Fatalf("state = %v, want attacking", c.State())
	}

	// Holding through the window without a new press queries nothing more.
	c.input.AttackPressed = false
	for i := 0; i < 30; i++ {
		c.Update(testDT)
		w.Step(testDT)
	}
	if cs.overlapCalls != 1 {
		t.Fatalf("attack window should not re-query, got %d", cs.overlapCalls)
	}
	if c.State() == StateAttacking {
		t.Fatalf("attack display should have expired")
	}
}

func TestAttackKnocksBackFacingTarget(t *testing.T) {
	params := testCharacterParams()
	w, f, c := testRig(t, params)

	victimParams := params
	victimParams.Player = 1
	victimParams.Spawn = common.V(params.Spawn.X+18, params.Spawn.Y)
	victim := NewCharacter(w, f, &Input{}, victimParams)

	// Facing right by default; the victim sits inside the attack circle.
	c.input.AttackPressed = true
	c.Update(testDT)

	v := victim.Body().Velocity()
	if v.X <= 0 {
		t.Fatalf("victim should be knocked to the right, got vx=%v", v.X)
	}
	if v.Y >= 0 {
		t.Fatalf("victim should be knocked upward, got vy=%v", v.Y)
	}
}

func TestAttackFacingLeftMissesRightTarget(t *testing.T) {
	params := testCharacterParams()
	w, f, c := testRig(t, params)

	victimParams := params
	victimParams.Player = 1
	victimParams.Spawn = common.V(params.Spawn.X+18, params.Spawn.Y)
	victim := NewCharacter(w, f, &Input{}, victimParams)

	c.input.MoveX = -1
	c.Update(testDT)
	c.input.MoveX = 0
	c.input.AttackPressed = true
	c.Update(testDT)

	if v := victim.Body().Velocity(); v.X != 0 {
		t.Fatalf("attack facing left should miss a target on the right, got vx=%v", v.X)
	}
}

func TestGoalWinIsIdempotent(t *testing.T) {
	params := testCharacterParams()
	w, f, c := testRig(t, params)
	_ = f

	goal := NewGoal(w, params.Spawn, common.V(32, 48))
	_ = goal

	wins := 0
	c.OnWin = func(player int) { wins++ }

	// A step creates the sensor arbiter, then the update sees the contact.
	for i := 0; i < 10 && !c.HasWon(); i++ {
		w.Step(testDT)
		c.Update(testDT)
	}
	if !c.HasWon() {
		t.Fatalf("character overlapping the goal should win")
	}
	if wins != 1 {
		t.Fatalf("OnWin should fire once, got %d", wins)
	}
	if c.State() != StateWon {
		t.Fatalf("state = %v, want won", c.State())
	}
	if c.Body().InSpace() {
		t.Fatalf("winning should remove the body from the simulation")
	}
	if got := c.Position(); got != common.V(-1000, -1000) {
		t.Fatalf("winner should be parked off-world, got %v", got)
	}

	for i := 0; i < 30; i++ {
		w.Step(testDT)
		c.Update(testDT)
	}
	if wins != 1 {
		t.Fatalf("OnWin fired again after the win, got %d", wins)
	}
	if got := c.Position(); got != common.V(-1000, -1000) {
		t.Fatalf("winner should stay parked, got %v", got)
	}
}

func TestOutOfBoundsRespawns(t *testing.T) {
	params := testCharacterParams()
	_, _, c := testRig(t, params)

	c.Body().SetPosition(common.V(300, params.LevelSize.Y+params.RespawnMargin+1))
	c.Body().SetVelocity(common.V(50, 400))
	c.Update(testDT)

	if got := c.Position(); got != params.Spawn {
		t.Fatalf("out-of-bounds character should respawn at %v, got %v", params.Spawn, got)
	}
	if got := c.Body().Velocity(); got != (common.Vec{}) {
		t.Fatalf("respawn should zero the velocity, got %v", got)
	}
}

func TestAboveRespawnLineStays(t *testing.T) {
	params := testCharacterParams()
	_, _, c := testRig(t, params)

	// Exactly at the line is still in bounds.
	at := common.V(300, params.LevelSize.Y+params.RespawnMargin)
	c.Body().SetPosition(at)
	c.Update(testDT)

	if got := c.Position(); got.Y != at.Y {
		t.Fatalf("character at the respawn line should not respawn, got %v", got)
	}
}

func TestWrapAtEdges(t *testing.T) {
	params := testCharacterParams()
	params.Wrap = true
	_, _, c := testRig(t, params)

	c.Body().SetPosition(common.V(0, 100))
	c.Update(testDT)
	if got := c.Position().X; got != params.LevelSize.X {
		t.Fatalf("x=0 should wrap to the right edge, got x=%v", got)
	}

	c.Body().SetPosition(common.V(params.LevelSize.X, 100))
	c.Update(testDT)
	if got := c.Position().X; got != 0 {
		t.Fatalf("x=width should wrap to the left edge, got x=%v", got)
	}
}

func TestNoWrapWhenDisabled(t *testing.T) {
	params := testCharacterParams()
	_, _, c := testRig(t, params)

	c.Body().SetPosition(common.V(0, 100))
	c.Update(testDT)
	if got := c.Position().X; got != 0 {
		t.Fatalf("wrap disabled, x should stay 0, got %v", got)
	}
}

func TestBombRespawnRepeats(t *testing.T) {
	params := testCharacterParams()
	w, f, c := testRig(t, params)
	_ = f

	// Bomb away from the spawn so the respawn clears the contact.
	bombPos := common.V(params.Spawn.X+200, params.Spawn.Y)
	NewBomb(w, bombPos, common.V(32, 32))

	hits := 0
	c.OnBombHit = func(pos common.Vec) { hits++ }

	for round := 1; round <= 2; round++ {
		c.Body().SetPosition(bombPos)
		for i := 0; i < 10 && hits < round; i++ {
			w.Step(testDT)
			c.Update(testDT)
		}
		if hits != round {
			t.Fatalf("bomb hit %d: OnBombHit fired %d times", round, hits)
		}
		if got := c.Position(); got != params.Spawn {
			t.Fatalf("bomb hit %d: should respawn at %v, got %v", round, params.Spawn, got)
		}
	}
}

func TestStateMachineLocomotion(t *testing.T) {
	params := testCharacterParams()
	w, _, c := testRig(t, params)

	// Settle onto the floor.
	for i := 0; i < 60; i++ {
		c.Update(testDT)
		w.Step(testDT)
	}
	if c.State() != StateIdle {
		t.Fatalf("resting state = %v, want idle", c.State())
	}

	c.input.MoveX = 1
	c.Update(testDT)
	if c.State() != StateRun {
		t.Fatalf("moving state = %v, want run", c.State())
	}

	c.input.MoveX = 0
	c.input.JumpPressed = true
	c.input.JumpHeld = true
	c.Update(testDT)
	c.input.JumpPressed = false

	// The launch frame still reads as grounded; the airborne state shows up
	// once the body has left the floor.
	w.Step(testDT)
	c.Update(testDT)
	if c.State() != StateJump {
		t.Fatalf("rising state = %v, want jump", c.State())
	}

	// Ride the jump until the apex passes.
	for i := 0; i < 120 && c.State() != StateFall; i++ {
		w.Step(testDT)
		c.Update(testDT)
	}
	if c.State() != StateFall {
		t.Fatalf("descending state = %v, want fall", c.State())
	}
}

func TestFallThroughOnDownInput(t *testing.T) {
	params := testCharacterParams()
	w, f, c := testRig(t, params)
	_ = w
	_ = f

	c.input.DownPressed = true
	c.Update(testDT)

	if !c.fallThrough.Active() {
		t.Fatalf("down input should trigger the drop-through window")
	}
}
