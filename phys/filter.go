package phys

import (
	"github.com/jakecoffman/cp"
)

// FallThrough is the transient per-character state that suppresses the
// solidity of one-way platforms. Triggered by a down input, it stays active
// for a fixed duration and then expires.
type FallThrough struct {
	duration  float64
	remaining float64
}

func (f *FallThrough) Trigger() {
	if f == nil {
		return
	}
	f.remaining = f.duration
}

// Update ages the state by dt seconds, flooring at zero.
func (f *FallThrough) Update(dt float64) {
	if f == nil || f.remaining <= 0 {
		return
	}
	f.remaining -= dt
	if f.remaining < 0 {
		f.remaining = 0
	}
}

func (f *FallThrough) Active() bool {
	return f != nil && f.remaining > 0
}

// OneWayFilter disables contacts between registered character bodies and the
// rest of the world unless the character approaches from above. It runs as a
// pre-solve handler, so a persisting contact is re-evaluated every step.
type OneWayFilter struct {
	world  *World
	states map[*cp.Shape]*FallThrough
}

func NewOneWayFilter() *OneWayFilter {
	return &OneWayFilter{
		states: make(map[*cp.Shape]*FallThrough),
	}
}

// Register enrolls a character body into the filter and returns its
// fall-through state handle with the given duration in seconds. The body's
// contacts are filtered from now on.
func (f *OneWayFilter) Register(b *Body, fallThroughSeconds float64) *FallThrough {
	if f == nil || b == nil || b.shape == nil {
		return &FallThrough{duration: fallThroughSeconds}
	}
	st := &FallThrough{duration: fallThroughSeconds}
	f.states[b.shape] = st
	b.shape.SetCollisionType(collisionTypeCharacter)
	return st
}

// Unregister removes a character from filtering (win deactivation).
func (f *OneWayFilter) Unregister(b *Body) {
	if f == nil || b == nil {
		return
	}
	delete(f.states, b.shape)
}

// InstallFilter wires the filter into the space so it runs during every
// solve step for contacts involving a character body.
func (w *World) InstallFilter(f *OneWayFilter) {
	if w == nil || w.space == nil || f == nil {
		return
	}
	f.world = w
	w.filter = f

	handler := w.space.NewWildcardCollisionHandler(collisionTypeCharacter)
	handler.UserData = f
	handler.PreSolveFunc = func(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
		filter, ok := userData.(*OneWayFilter)
		if !ok || filter == nil {
			return true
		}
		return filter.preSolve(arb)
	}
}

func (f *OneWayFilter) preSolve(arb *cp.Arbiter) bool {
	shapeA, shapeB := arb.Shapes()

	// The first registered character in the pair decides; a pair with no
	// known character stays solid.
	sign := 1.0
	charShape, otherShape := shapeA, shapeB
	if _, ok := f.states[shapeA]; !ok {
		if _, ok := f.states[shapeB]; !ok {
			return true
		}
		sign = -1.0
		charShape, otherShape = shapeB, shapeA
	}

	st := f.states[charShape]
	fallThrough := st.Active()

	otherTag := ""
	if f.world != nil {
		if o := f.world.bodies[otherShape]; o != nil {
			otherTag = o.tag
		}
	}

	return contactEnabled(sign, arb.Normal().Y, fallThrough, otherTag == TagPlatform)
}

// contactEnabled is the one-way platform rule. The contact normal points from
// body A to body B and the world is y-down, so a character landing on top of
// a surface sees sign*normalY = +1. The rule is deliberately direction-based
// only; there is no check that the contact point lies within the platform's
// top edge.
func contactEnabled(sign, normalY float64, fallThrough, otherIsPlatform bool) bool {
	if sign*normalY < 0.5 {
		return false
	}
	if fallThrough && otherIsPlatform {
		return false
	}
	return true
}
