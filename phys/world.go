// Package phys wraps a Chipmunk2D space behind a pixel-based API. Gameplay
// code works exclusively in pixels and pixels/second; the physics space works
// in meters. This package is the only place the conversion happens.
package phys

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/nrunner/nrunner/common"
)

// PixelsPerMeter is the fixed conversion scale between screen pixels and
// physics-space meters.
const PixelsPerMeter = 32.0

const (
	collisionTypeStatic cp.CollisionType = iota + 1
	collisionTypeSensor
	collisionTypeDynamic
	collisionTypeCharacter
)

// Body tags used by the contact filter and by gameplay contact checks.
const (
	TagCharacter = "character"
	TagPlatform  = "platform"
	TagWall      = "wall"
	TagGoal      = "goal"
	TagBomb      = "bomb"
)

// Body is a handle to a single physics body and its shape.
type Body struct {
	world *World
	body  *cp.Body
	shape *cp.Shape
	tag   string

	// half extents in meters
	hw, hh float64

	inSpace bool
}

// World owns the Chipmunk space and the shape-to-handle index. Sensor bodies
// are tracked separately because the space keeps sensor pairs off the body
// arbiter lists.
type World struct {
	space   *cp.Space
	bodies  map[*cp.Shape]*Body
	sensors []*Body
	filter  *OneWayFilter
}

// NewWorld creates a physics world with downward gravity given in
// pixels/second^2.
func NewWorld(gravityPixels float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: toMeters(gravityPixels)})

	return &World{
		space:  space,
		bodies: make(map[*cp.Shape]*Body),
	}
}

func toMeters(px float64) float64 { return px / PixelsPerMeter }
func toPixels(m float64) float64  { return m * PixelsPerMeter }
func vecToMeters(v common.Vec) cp.Vector {
	return cp.Vector{X: toMeters(v.X), Y: toMeters(v.Y)}
}
func vecToPixels(v cp.Vector) common.Vec {
	return common.V(toPixels(v.X), toPixels(v.Y))
}

// CreateDynamicBody creates a rotation-locked dynamic box body. Position is
// the body center in pixels, size is the full extents in pixels.
func (w *World) CreateDynamicBody(pos, size common.Vec, density, friction, restitution float64) *Body {
	if w == nil || w.space == nil {
		return nil
	}

	// Rotation stays locked for characters, same as a fixed-rotation body.
	mass := density * toMeters(size.X) * toMeters(size.Y)
	if mass <= 0 {
		mass = 1.0
	}
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(vecToMeters(pos))

	shape := cp.NewBox(body, toMeters(size.X), toMeters(size.Y), 0)
	shape.SetFriction(friction)
	shape.SetElasticity(restitution)
	shape.SetCollisionType(collisionTypeDynamic)

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{
		world: w, body: body, shape: shape,
		hw: toMeters(size.X) / 2, hh: toMeters(size.Y) / 2,
		inSpace: true,
	}
	w.bodies[shape] = b
	return b
}

// CreateStaticBody creates a solid static box body centered at pos (pixels).
func (w *World) CreateStaticBody(pos, size common.Vec) *Body {
	return w.createStatic(pos, size, false)
}

// CreateStaticSensor creates a static box that detects overlap but exerts no
// collision response.
func (w *World) CreateStaticSensor(pos, size common.Vec) *Body {
	return w.createStatic(pos, size, true)
}

func (w *World) createStatic(pos, size common.Vec, sensor bool) *Body {
	if w == nil || w.space == nil {
		return nil
	}

	body := cp.NewStaticBody()
	body.SetPosition(vecToMeters(pos))

	shape := cp.NewBox(body, toMeters(size.X), toMeters(size.Y), 0)
	shape.SetFriction(0.8)
	if sensor {
		shape.SetSensor(true)
		shape.SetCollisionType(collisionTypeSensor)
	} else {
		shape.SetCollisionType(collisionTypeStatic)
	}

	w.space.AddBody(body)
	w.space.AddShape(shape)

	b := &Body{
		world: w, body: body, shape: shape,
		hw: toMeters(size.X) / 2, hh: toMeters(size.Y) / 2,
		inSpace: true,
	}
	w.bodies[shape] = b
	if sensor {
		w.sensors = append(w.sensors, b)
	}
	return b
}

// Step advances the simulation by dt seconds. Exactly one call per frame; the
// installed contact filter runs inside.
func (w *World) Step(dt float64) {
	if w == nil || w.space == nil {
		return
	}
	w.space.Step(dt)
}

// CircleOverlap returns every body whose shape overlaps the circle at center
// (pixels), excluding the given body.
func (w *World) CircleOverlap(center common.Vec, radius float64, exclude *Body) []*Body {
	if w == nil || w.space == nil {
		return nil
	}

	probe := cp.NewStaticBody()
	probe.SetPosition(vecToMeters(center))
	circle := cp.NewCircle(probe, toMeters(radius), cp.Vector{})

	var out []*Body
	seen := make(map[*Body]struct{})
	w.space.ShapeQuery(circle, func(shape *cp.Shape, _ *cp.ContactPointSet) {
		b := w.bodies[shape]
		if b == nil || b == exclude {
			return
		}
		if _, ok := seen[b]; ok {
			return
		}
		seen[b] = struct{}{}
		out = append(out, b)
	})
	return out
}

// GroundProbe reports whether any solid shape lies directly below the body's
// feet, within depth pixels. Sensors and the body itself are ignored.
func (w *World) GroundProbe(b *Body, depth float64) bool {
	if w == nil || w.space == nil || b == nil || b.body == nil {
		return false
	}

	pos := b.body.Position()
	probe := cp.BB{
		L: pos.X - b.hw*0.9,
		B: pos.Y + b.hh,
		R: pos.X + b.hw*0.9,
		T: pos.Y + b.hh + toMeters(depth),
	}

	hit := false
	w.space.BBQuery(probe, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if shape == b.shape || shape.Sensor() {
			return
		}
		hit = true
	}, nil)
	return hit
}

// Contacts returns the bodies currently touching b, sensors included. Solid
// contacts come off the body's arbiter list; sensors never get arbiters, so
// they are checked by box overlap against the tracked sensor bodies.
func (w *World) Contacts(b *Body) []*Body {
	if w == nil || b == nil || b.body == nil {
		return nil
	}

	var out []*Body
	seen := make(map[*Body]struct{})
	b.body.EachArbiter(func(arb *cp.Arbiter) {
		sa, sb := arb.Shapes()
		other := sa
		if sa == b.shape {
			other = sb
		}
		if o := w.bodies[other]; o != nil {
			if _, ok := seen[o]; !ok {
				seen[o] = struct{}{}
				out = append(out, o)
			}
		}
	})

	for _, s := range w.sensors {
		if s == b || !s.inSpace {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		if boxesOverlap(b, s) {
			out = append(out, s)
		}
	}
	return out
}

func boxesOverlap(a, b *Body) bool {
	pa := a.body.Position()
	pb := b.body.Position()
	return math.Abs(pa.X-pb.X) < a.hw+b.hw && math.Abs(pa.Y-pb.Y) < a.hh+b.hh
}

// Remove takes the body out of the simulation. The handle stays valid for
// position reads/writes but no longer collides or falls.
func (w *World) Remove(b *Body) {
	if w == nil || w.space == nil || b == nil || !b.inSpace {
		return
	}
	if w.filter != nil {
		w.filter.Unregister(b)
	}
	for i, s := range w.sensors {
		if s == b {
			w.sensors = append(w.sensors[:i], w.sensors[i+1:]...)
			break
		}
	}
	delete(w.bodies, b.shape)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.inSpace = false
}

// Position returns the body center in pixels.
func (b *Body) Position() common.Vec {
	if b == nil || b.body == nil {
		return common.Vec{}
	}
	return vecToPixels(b.body.Position())
}

func (b *Body) SetPosition(pos common.Vec) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetPosition(vecToMeters(pos))
}

// Velocity returns the body velocity in pixels/second.
func (b *Body) Velocity() common.Vec {
	if b == nil || b.body == nil {
		return common.Vec{}
	}
	return vecToPixels(b.body.Velocity())
}

func (b *Body) SetVelocity(v common.Vec) {
	if b == nil || b.body == nil {
		return
	}
	b.body.SetVelocityVector(vecToMeters(v))
}

// ApplyImpulse applies an impulse, given in pixel units, at the body center.
func (b *Body) ApplyImpulse(v common.Vec) {
	if b == nil || b.body == nil {
		return
	}
	b.body.ApplyImpulseAtLocalPoint(vecToMeters(v), cp.Vector{})
}

// Tag returns the gameplay tag assigned to the body.
func (b *Body) Tag() string {
	if b == nil {
		return ""
	}
	return b.tag
}

func (b *Body) SetTag(tag string) {
	if b == nil {
		return
	}
	b.tag = tag
}

// InSpace reports whether the body is still part of the simulation.
func (b *Body) InSpace() bool {
	return b != nil && b.inSpace
}
