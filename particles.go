package main

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/nrunner/nrunner/common"
)

const (
	particleGravity = 300.0
	burstCount      = 15
)

type particle struct {
	pos         common.Vec
	vel         common.Vec
	lifetime    float64
	maxLifetime float64
	size        float64
}

// ParticleSystem runs short-lived blood bursts, spawned when a bomb sends a
// character home.
type ParticleSystem struct {
	particles []particle
}

func NewParticleSystem() *ParticleSystem {
	return &ParticleSystem{}
}

// SpawnBurst emits one burst of particles scattered in all directions.
func (ps *ParticleSystem) SpawnBurst(pos common.Vec) {
	if ps == nil {
		return
	}
	for i := 0; i < burstCount; i++ {
		angle := rand.Float64() * 2 * math.Pi
		speed := 50 + rand.Float64()*100
		life := 0.3 + rand.Float64()*0.3
		ps.particles = append(ps.particles, particle{
			pos:         pos,
			vel:         common.V(math.Cos(angle)*speed, math.Sin(angle)*speed),
			lifetime:    life,
			maxLifetime: life,
			size:        3 + rand.Float64()*5,
		})
	}
}

func (ps *ParticleSystem) Update(dt float64) {
	if ps == nil {
		return
	}
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.pos = p.pos.Add(p.vel.Scale(dt))
		p.vel.Y += particleGravity * dt
		p.lifetime -= dt
		if p.lifetime > 0 {
			alive = append(alive, p)
		}
	}
	ps.particles = alive
}

func (ps *ParticleSystem) Draw(screen *ebiten.Image) {
	if ps == nil || screen == nil {
		return
	}
	for _, p := range ps.particles {
		alpha := uint8(255 * p.lifetime / p.maxLifetime)
		vector.DrawFilledCircle(screen, float32(p.pos.X), float32(p.pos.Y), float32(p.size),
			color.RGBA{R: 180, A: alpha}, false)
	}
}

// Len reports the number of live particles.
func (ps *ParticleSystem) Len() int {
	if ps == nil {
		return 0
	}
	return len(ps.particles)
}
