package gowells

import (
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// Scenario is everything needed to build the System for one cell of a sweep.
type Scenario interface {
	// Clock returns the time discretization of every run.
	Clock() Clock
	// Initial returns a fresh copy of the template moving bodies. Sweep
	// parameters are written into this copy before calling System.
	Initial() []physics.Body
	// System builds a System from a set of initial bodies. The System never
	// modifies init.
	System(init []physics.Body) System
}

// WellScenario is a test particle launched through a fixed set of wells.
// Initial returns a single body describing the particle.
type WellScenario struct {
	G                            float64
	Wells                        []physics.Well
	ParticleMass, ParticleRadius float64
	// Threshold is the center-to-center distance which counts as a hit.
	Threshold       float64
	Start, StartVel geom.Vec2
	Timing          Clock
}

// DefaultWellScenario returns the three-well reference configuration.
func DefaultWellScenario() *WellScenario {
	wells := []physics.Well{
		{Pos: geom.Vec2{X: 150, Y: 150}, Mass: 50000, Color: [3]uint8{255, 100, 100}},
		{Pos: geom.Vec2{X: 450, Y: 150}, Mass: 30000, Color: [3]uint8{100, 255, 100}},
		{Pos: geom.Vec2{X: 300, Y: 400}, Mass: 40000, Color: [3]uint8{100, 100, 255}},
	}
	for i := range wells {
		wells[i].Radius = physics.WellRadius(wells[i].Mass)
	}

	return &WellScenario{
		G:              100,
		Wells:          wells,
		ParticleMass:   1,
		ParticleRadius: 1,
		Threshold:      15,
		Timing:         Clock{Timesteps: 2000, Substeps: 10, FrameTime: 0.016},
	}
}

func (sc *WellScenario) Clock() Clock { return sc.Timing }

func (sc *WellScenario) Initial() []physics.Body {
	return []physics.Body{{
		Pos: sc.Start, Vel: sc.StartVel,
		Mass: sc.ParticleMass, Radius: sc.ParticleRadius,
	}}
}

func (sc *WellScenario) System(init []physics.Body) System {
	return &ParticleSystem{
		G:         sc.G,
		Particle:  physics.Particle(init[0]),
		Wells:     sc.Wells,
		Threshold: sc.Threshold,
	}
}

// BodyScenario is a set of mutually attracting bodies.
type BodyScenario struct {
	G      float64
	Bodies []physics.Body
	Timing Clock
}

// DefaultBodyScenario returns the three-body reference configuration: three
// equal masses on a line, initially at rest.
func DefaultBodyScenario() *BodyScenario {
	return &BodyScenario{
		G: 1,
		Bodies: []physics.Body{
			{Pos: geom.Vec2{X: 50}, Mass: 160000, Radius: 1},
			{Pos: geom.Vec2{X: -50}, Mass: 160000, Radius: 1},
			{Pos: geom.Vec2{}, Mass: 160000, Radius: 1},
		},
		Timing: Clock{Timesteps: 1000, Substeps: 50, FrameTime: 0.016},
	}
}

func (sc *BodyScenario) Clock() Clock { return sc.Timing }

func (sc *BodyScenario) Initial() []physics.Body {
	init := make([]physics.Body, len(sc.Bodies))
	copy(init, sc.Bodies)
	return init
}

func (sc *BodyScenario) System(init []physics.Body) System {
	return NewBodySystem(sc.G, init)
}
