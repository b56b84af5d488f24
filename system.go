package gowells

import (
	"fmt"

	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// System is a set of moving objects which can be integrated forward and
// tested for collisions. A System is owned by a single goroutine.
type System interface {
	// Step advances the system by a single substep of length dt.
	Step(m physics.Method, dt float64)
	// Collision returns the index of the first body hit, if any.
	Collision() (int, bool)
	// Positions appends the positions of the moving objects to buf[:0].
	Positions(buf []geom.Vec2) []geom.Vec2
}

// ParticleSystem is a single test particle moving through a fixed set of
// wells. A collision happens when the particle comes within Threshold of a
// well's center.
type ParticleSystem struct {
	G         float64
	Particle  physics.Particle
	Wells     []physics.Well
	Threshold float64
}

// Step advances the particle by dt.
func (s *ParticleSystem) Step(m physics.Method, dt float64) {
	switch m {
	case physics.Euler:
		physics.EulerParticle(s.G, &s.Particle, s.Wells, dt)
	case physics.RK4:
		physics.RK4Particle(s.G, &s.Particle, s.Wells, dt)
	default:
		panic(fmt.Sprintf("Unknown method %d.", int(m)))
	}
}

// Collision returns the index of the first well the particle is touching.
func (s *ParticleSystem) Collision() (int, bool) {
	return physics.WellCollision(&s.Particle, s.Wells, s.Threshold)
}

// Positions returns a one-element slice holding the particle's position.
func (s *ParticleSystem) Positions(buf []geom.Vec2) []geom.Vec2 {
	return append(buf[:0], s.Particle.Pos)
}

// BodySystem is a set of mutually attracting bodies. A collision happens
// when two bodies overlap.
type BodySystem struct {
	G      float64
	Bodies []physics.Body
	ws     *physics.Workspace
}

// NewBodySystem returns a BodySystem which integrates a private copy of
// bodies.
func NewBodySystem(g float64, bodies []physics.Body) *BodySystem {
	s := &BodySystem{G: g, Bodies: make([]physics.Body, len(bodies))}
	copy(s.Bodies, bodies)
	s.ws = physics.NewWorkspace(len(bodies))
	return s
}

// Step advances every body by dt.
func (s *BodySystem) Step(m physics.Method, dt float64) {
	switch m {
	case physics.Euler:
		physics.EulerBodies(s.G, s.Bodies, dt, s.ws)
	case physics.RK4:
		physics.RK4Bodies(s.G, s.Bodies, dt, s.ws)
	default:
		panic(fmt.Sprintf("Unknown method %d.", int(m)))
	}
}

// Collision returns the pair index of the first overlapping pair of bodies.
func (s *BodySystem) Collision() (int, bool) {
	return physics.BodyCollision(s.Bodies)
}

// Positions returns the positions of every body.
func (s *BodySystem) Positions(buf []geom.Vec2) []geom.Vec2 {
	return physics.Positions(s.Bodies, buf)
}

// frame advances sys by one outer timestep and stops at the first substep
// which ends in a collision.
func frame(sys System, clock Clock, m physics.Method) (int, bool) {
	dt := clock.Dt()
	for i := 0; i < clock.Substeps; i++ {
		sys.Step(m, dt)
		if idx, ok := sys.Collision(); ok {
			return idx, true
		}
	}
	return -1, false
}

// Run integrates sys until its first collision or until the clock runs out.
func Run(sys System, clock Clock, m physics.Method) Outcome {
	for t := 0; t < clock.Timesteps; t++ {
		if idx, ok := frame(sys, clock, m); ok {
			return Outcome{Collided: true, Body: idx, Timestep: t}
		}
	}
	return NoCollision
}
