package gowells

import (
	"testing"

	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	c := Clock{Timesteps: 2000, Substeps: 10, FrameTime: 0.016}
	assert.InDelta(t, 0.0016, c.Dt(), 1e-15)
	assert.True(t, c.Valid())
	assert.False(t, Clock{Timesteps: 10, FrameTime: 1}.Valid())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "No collision", NoCollision.String())
	assert.Equal(t, NoCollision, Outcome{})
	out := Outcome{Collided: true, Body: 2, Timestep: 17}
	assert.Equal(t, "Collided with body 2 at timestep 17", out.String())
}

// countingSystem moves nothing and collides on a fixed substep.
type countingSystem struct {
	steps, hitOn int
}

func (s *countingSystem) Step(m physics.Method, dt float64) { s.steps++ }

func (s *countingSystem) Collision() (int, bool) {
	if s.hitOn > 0 && s.steps == s.hitOn {
		return 7, true
	}
	return -1, false
}

func (s *countingSystem) Positions(buf []geom.Vec2) []geom.Vec2 {
	return append(buf[:0], geom.Vec2{X: float64(s.steps)})
}

func TestRunEarlyExit(t *testing.T) {
	clock := Clock{Timesteps: 10, Substeps: 4, FrameTime: 1}

	table := []struct {
		hitOn, steps int
		out          Outcome
	}{
		{0, 40, NoCollision},
		{1, 1, Outcome{Collided: true, Body: 7, Timestep: 0}},
		{4, 4, Outcome{Collided: true, Body: 7, Timestep: 0}},
		{5, 5, Outcome{Collided: true, Body: 7, Timestep: 1}},
		{23, 23, Outcome{Collided: true, Body: 7, Timestep: 5}},
		{40, 40, Outcome{Collided: true, Body: 7, Timestep: 9}},
	}

	for i, test := range table {
		sys := &countingSystem{hitOn: test.hitOn}
		out := Run(sys, clock, physics.RK4)
		if out != test.out {
			t.Errorf("%d) Expected outcome %v, got %v", i, test.out, out)
		}
		if sys.steps != test.steps {
			t.Errorf("%d) Expected %d substeps, got %d", i, test.steps, sys.steps)
		}
	}
}

func TestFarParticleExhausts(t *testing.T) {
	sc := DefaultWellScenario()
	sc.Start = geom.Vec2{X: 1e6, Y: 1e6}

	for _, m := range []physics.Method{physics.RK4, physics.Euler} {
		out := Run(sc.System(sc.Initial()), sc.Clock(), m)
		assert.Equal(t, NoCollision, out, m.String())
	}
}

func TestParticleFallsIntoWell(t *testing.T) {
	sc := DefaultWellScenario()
	sc.Start = geom.Vec2{X: 150, Y: 200}

	for _, m := range []physics.Method{physics.RK4, physics.Euler} {
		out := Run(sc.System(sc.Initial()), sc.Clock(), m)
		assert.True(t, out.Collided, m.String())
		assert.Equal(t, 0, out.Body, m.String())
		assert.Less(t, out.Timestep, sc.Clock().Timesteps, m.String())
	}
}

func TestThreeBodyCollapse(t *testing.T) {
	sc := DefaultBodyScenario()

	for _, m := range []physics.Method{physics.RK4, physics.Euler} {
		out := Run(sc.System(sc.Initial()), sc.Clock(), m)
		require.True(t, out.Collided, m.String())
		assert.Less(t, out.Timestep, sc.Clock().Timesteps, m.String())
		// Both outer bodies reach the center at once; (0, 2) and (1, 2)
		// are pairs 1 and 2.
		assert.Contains(t, []int{1, 2}, out.Body, m.String())
	}
}

func TestRunDeterministic(t *testing.T) {
	sc := DefaultBodyScenario()
	sc.Timing.Timesteps = 200
	init := ThreeBodyGrid(20).Bodies(sc.Initial(), 13, 4)

	a := Run(sc.System(init), sc.Clock(), physics.RK4)
	b := Run(sc.System(init), sc.Clock(), physics.RK4)
	assert.Equal(t, a, b)
	assert.Equal(t, sc.Bodies[0].Vel, geom.Vec2{}, "template bodies untouched")
}

func TestBodySystemCopies(t *testing.T) {
	init := DefaultBodyScenario().Initial()
	sys := NewBodySystem(1, init)
	for i := 0; i < 10; i++ {
		sys.Step(physics.Euler, 1e-3)
	}
	assert.Equal(t, geom.Vec2{X: 50}, init[0].Pos)
	assert.NotEqual(t, geom.Vec2{X: 50}, sys.Bodies[0].Pos)

	pos := sys.Positions(nil)
	assert.Len(t, pos, 3)
	assert.Equal(t, sys.Bodies[1].Pos, pos[1])
}

func TestUnknownMethodPanics(t *testing.T) {
	systems := []System{
		DefaultWellScenario().System(DefaultWellScenario().Initial()),
		NewBodySystem(1, DefaultBodyScenario().Initial()),
	}
	for i, sys := range systems {
		for _, m := range []physics.Method{physics.EndMethod, -1} {
			assert.Panics(t, func() { sys.Step(m, 1e-3) }, "%d) method %d", i, int(m))
		}
		assert.NotPanics(t, func() { sys.Step(physics.RK4, 1e-3) })
		assert.NotPanics(t, func() { sys.Step(physics.Euler, 1e-3) })
	}
}
