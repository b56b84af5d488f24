package physics

import (
	"math"
	"testing"

	"github.com/phil-mansfield/gowells/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForce(t *testing.T) {
	x := geom.Vec2{X: 3, Y: -2}
	assert.Equal(t, geom.Vec2{}, Force(100, x, 5, x, 7), "coincident points")
	assert.Equal(t, geom.Vec2{}, Force(100, geom.Vec2{}, 5, geom.Vec2{}, 7))

	// Force on a unit mass at the origin from a mass of 8 at (2, 0).
	f := Force(1, geom.Vec2{}, 1, geom.Vec2{X: 2}, 8)
	assert.InDelta(t, 2.0, f.X, 1e-12)
	assert.Equal(t, 0.0, f.Y)

	// Newton's third law.
	a, b := geom.Vec2{X: 1, Y: 4}, geom.Vec2{X: -3, Y: 0.5}
	fab := Force(2.5, a, 3, b, 11)
	fba := Force(2.5, b, 11, a, 3)
	assert.InDelta(t, 0, fab.X+fba.X, 1e-12)
	assert.InDelta(t, 0, fab.Y+fba.Y, 1e-12)
}

func TestParticleAcceleration(t *testing.T) {
	wells := []Well{
		{Pos: geom.Vec2{X: 10}, Mass: 400},
		{Pos: geom.Vec2{X: -10}, Mass: 400},
	}
	p := &Particle{Mass: 3}
	acc := ParticleAcceleration(1, p, wells)
	assert.InDelta(t, 0, acc.Len(), 1e-12, "balanced wells")

	p.Pos = geom.Vec2{X: 5}
	acc = ParticleAcceleration(1, p, wells)
	assert.InDelta(t, 400.0/25-400.0/225, acc.X, 1e-12)

	// The particle's own mass cancels out.
	p.Mass = 1000
	assert.InDelta(t, acc.X, ParticleAcceleration(1, p, wells).X, 1e-12)
}

func TestStraightLine(t *testing.T) {
	pos, vel, dt := geom.Vec2{X: 1, Y: 2}, geom.Vec2{X: -3, Y: 0.5}, 0.016
	want := pos.Add(vel.Scale(dt))

	table := []struct {
		name  string
		wells []Well
	}{
		{"no wells", nil},
		{"massless wells", []Well{{Pos: geom.Vec2{X: 4}}, {Pos: geom.Vec2{Y: -7}}}},
	}

	for _, test := range table {
		p := &Particle{Pos: pos, Vel: vel, Mass: 1}
		EulerParticle(100, p, test.wells, dt)
		assert.Equal(t, want, p.Pos, "Euler, %s", test.name)
		assert.Equal(t, vel, p.Vel, "Euler, %s", test.name)

		p = &Particle{Pos: pos, Vel: vel, Mass: 1}
		RK4Particle(100, p, test.wells, dt)
		assert.InDelta(t, want.X, p.Pos.X, 1e-12, "RK4, %s", test.name)
		assert.InDelta(t, want.Y, p.Pos.Y, 1e-12, "RK4, %s", test.name)
		assert.InDelta(t, vel.X, p.Vel.X, 1e-12, "RK4, %s", test.name)
	}

	ws := NewWorkspace(1)
	bodies := []Body{{Pos: pos, Vel: vel, Mass: 5}}
	EulerBodies(1, bodies, dt, ws)
	assert.Equal(t, want, bodies[0].Pos, "lone body, Euler")

	bodies = []Body{{Pos: pos, Vel: vel, Mass: 5}}
	RK4Bodies(1, bodies, dt, ws)
	assert.InDelta(t, want.X, bodies[0].Pos.X, 1e-12, "lone body, RK4")
	assert.InDelta(t, want.Y, bodies[0].Pos.Y, 1e-12, "lone body, RK4")
}

// orbitDeviation integrates a particle on a circular orbit of radius 1 around
// a unit mass and returns the largest radial deviation and the largest radius
// seen.
func orbitDeviation(step func(p *Particle, wells []Well, dt float64)) (maxDev, maxR float64) {
	wells := []Well{{Mass: 1}}
	p := &Particle{Pos: geom.Vec2{X: 1}, Vel: geom.Vec2{Y: 1}, Mass: 1}

	for i := 0; i < 300; i++ {
		step(p, wells, 0.05)
		maxDev = math.Max(maxDev, math.Abs(p.Pos.Len()-1))
		maxR = math.Max(maxR, p.Pos.Len())
	}
	return maxDev, maxR
}

func TestCircularOrbit(t *testing.T) {
	rk4Dev, _ := orbitDeviation(func(p *Particle, wells []Well, dt float64) {
		RK4Particle(1, p, wells, dt)
	})
	eulerDev, eulerMaxR := orbitDeviation(func(p *Particle, wells []Well, dt float64) {
		EulerParticle(1, p, wells, dt)
	})

	assert.Less(t, rk4Dev, 1e-4, "RK4 orbit radius")
	assert.Greater(t, eulerDev, 1e-3, "Euler orbit radius")
	assert.Greater(t, eulerDev, 10*rk4Dev)
	// The velocity is updated before the position, so the orbit opens into
	// an ellipse which swings past the starting radius.
	assert.Greater(t, eulerMaxR, 1.01, "Euler drifts outward")
}

func momentum(bodies []Body) geom.Vec2 {
	p := geom.Vec2{}
	for _, b := range bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

func TestBodiesConserveMomentum(t *testing.T) {
	steps := map[string]func([]Body, *Workspace){
		"RK4":   func(bs []Body, ws *Workspace) { RK4Bodies(1, bs, 1e-3, ws) },
		"Euler": func(bs []Body, ws *Workspace) { EulerBodies(1, bs, 1e-3, ws) },
	}

	for name, step := range steps {
		bodies := []Body{
			{Pos: geom.Vec2{X: 10}, Vel: geom.Vec2{Y: 3}, Mass: 1000},
			{Pos: geom.Vec2{X: -10}, Vel: geom.Vec2{Y: -1}, Mass: 3000},
			{Pos: geom.Vec2{Y: 15}, Vel: geom.Vec2{X: 2}, Mass: 500},
		}
		p0 := momentum(bodies)
		ws := NewWorkspace(len(bodies))
		for i := 0; i < 500; i++ {
			step(bodies, ws)
		}
		p1 := momentum(bodies)
		assert.InDelta(t, p0.X, p1.X, 1e-6, name)
		assert.InDelta(t, p0.Y, p1.Y, 1e-6, name)
	}
}

func TestBodiesMirrorSymmetry(t *testing.T) {
	bodies := []Body{
		{Pos: geom.Vec2{X: 50}, Mass: 160000, Radius: 1},
		{Pos: geom.Vec2{X: -50}, Mass: 160000, Radius: 1},
		{Mass: 160000, Radius: 1},
	}
	ws := NewWorkspace(3)
	for i := 0; i < 100; i++ {
		RK4Bodies(1, bodies, 0.016/50, ws)
	}

	assert.Equal(t, bodies[0].Pos.X, -bodies[1].Pos.X)
	assert.Equal(t, 0.0, bodies[2].Pos.X)
	assert.Less(t, bodies[0].Pos.X, 50.0, "bodies fall inward")
}

func TestWorkspaceReuse(t *testing.T) {
	ws := NewWorkspace(5)
	a := []Body{{Pos: geom.Vec2{X: 1}, Mass: 10}, {Pos: geom.Vec2{X: -1}, Mass: 10}}
	b := []Body{{Pos: geom.Vec2{X: 1}, Mass: 10}, {Pos: geom.Vec2{X: -1}, Mass: 10}}

	RK4Bodies(1, a, 0.01, ws)
	RK4Bodies(1, b, 0.01, NewWorkspace(2))
	assert.Equal(t, a, b)
}

func TestWellCollision(t *testing.T) {
	wells := []Well{
		{Pos: geom.Vec2{X: 100, Y: 100}, Mass: 50000, Radius: 10},
		{Pos: geom.Vec2{X: 110, Y: 100}, Mass: 30000, Radius: 10},
		{Pos: geom.Vec2{X: 300, Y: 400}, Mass: 40000, Radius: 10},
	}

	table := []struct {
		pos geom.Vec2
		idx int
		ok  bool
	}{
		{geom.Vec2{X: 300, Y: 400}, 2, true},
		{geom.Vec2{X: 110, Y: 100}, 0, true}, // both in range: first wins
		{geom.Vec2{X: 120, Y: 100}, 1, true},
		{geom.Vec2{X: 125, Y: 100}, -1, false}, // exactly on threshold
		{geom.Vec2{}, -1, false},
	}

	for i, test := range table {
		p := &Particle{Pos: test.pos, Mass: 1}
		idx, ok := WellCollision(p, wells, 15)
		if idx != test.idx || ok != test.ok {
			t.Errorf("%d) Expected WellCollision(%v) = (%d, %v), got (%d, %v)",
				i, test.pos, test.idx, test.ok, idx, ok)
		}
	}
}

func TestBodyCollision(t *testing.T) {
	bodies := []Body{
		{Pos: geom.Vec2{X: 0}, Radius: 1},
		{Pos: geom.Vec2{X: 10}, Radius: 1},
		{Pos: geom.Vec2{X: 11.5}, Radius: 1},
	}
	k, ok := BodyCollision(bodies)
	require.True(t, ok)
	assert.Equal(t, 2, k)
	i, j := Pair(3, k)
	assert.Equal(t, [2]int{1, 2}, [2]int{i, j})

	bodies[2].Pos.X = 12
	_, ok = BodyCollision(bodies)
	assert.False(t, ok, "touching bodies")

	bodies[2].Radius = 5
	k, ok = BodyCollision(bodies)
	require.True(t, ok)
	assert.Equal(t, 2, k, "radii are summed per pair")
}

func TestPair(t *testing.T) {
	table := []struct {
		n, k, i, j int
	}{
		{3, 0, 0, 1}, {3, 1, 0, 2}, {3, 2, 1, 2},
		{4, 2, 0, 3}, {4, 3, 1, 2}, {4, 5, 2, 3},
	}
	for idx, test := range table {
		i, j := Pair(test.n, test.k)
		if i != test.i || j != test.j {
			t.Errorf("%d) Expected Pair(%d, %d) = (%d, %d), got (%d, %d)",
				idx, test.n, test.k, test.i, test.j, i, j)
		}
	}
	assert.Equal(t, 3, Pairs(3))
	assert.Equal(t, 6, Pairs(4))
}

func TestMethodFromString(t *testing.T) {
	table := []struct {
		str string
		m   Method
		ok  bool
	}{
		{"RK4", RK4, true},
		{"rk4", RK4, true},
		{"RungeKutta4", RK4, true},
		{" euler ", Euler, true},
		{"Verlet", RK4, false},
	}
	for i, test := range table {
		m, ok := MethodFromString(test.str)
		if m != test.m || ok != test.ok {
			t.Errorf("%d) Expected MethodFromString(%q) = (%v, %v), got (%v, %v)",
				i, test.str, test.m, test.ok, m, ok)
		}
	}
	assert.Equal(t, "Euler", Euler.String())
	assert.Equal(t, "Unknown", EndMethod.String())
}

func TestCenterOfMass(t *testing.T) {
	bodies := []Body{
		{Pos: geom.Vec2{X: 2}, Mass: 1},
		{Pos: geom.Vec2{X: -1, Y: 3}, Mass: 2},
	}
	assert.Equal(t, geom.Vec2{X: 0, Y: 2}, CenterOfMass(bodies))
	assert.Equal(t, geom.Vec2{}, CenterOfMass(nil))
	assert.Equal(t, 10.0, WellRadius(40000))
	assert.Equal(t, 20.0, WellRadius(400000))
}

func BenchmarkRK4Bodies(b *testing.B) {
	bodies := []Body{
		{Pos: geom.Vec2{X: 50}, Mass: 160000, Radius: 1},
		{Pos: geom.Vec2{X: -50}, Mass: 160000, Radius: 1},
		{Mass: 160000, Radius: 1},
	}
	ws := NewWorkspace(len(bodies))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RK4Bodies(1, bodies, 1e-6, ws)
	}
}

func BenchmarkRK4Particle(b *testing.B) {
	wells := []Well{
		{Pos: geom.Vec2{X: 150, Y: 150}, Mass: 50000},
		{Pos: geom.Vec2{X: 450, Y: 150}, Mass: 30000},
		{Pos: geom.Vec2{X: 300, Y: 400}, Mass: 40000},
	}
	p := &Particle{Pos: geom.Vec2{X: 10, Y: 10}, Mass: 1}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		RK4Particle(100, p, wells, 1e-6)
	}
}
