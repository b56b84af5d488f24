package physics

import (
	"github.com/phil-mansfield/gowells/geom"
)

// EulerParticle advances p by dt through the field of wells.
func EulerParticle(g float64, p *Particle, wells []Well, dt float64) {
	acc := ParticleAcceleration(g, p, wells)
	p.Vel = p.Vel.Add(acc.Scale(dt))
	p.Pos = p.Pos.Add(p.Vel.Scale(dt))
}

// RK4Particle advances p by dt through the field of wells.
func RK4Particle(g float64, p *Particle, wells []Well, dt float64) {
	orig := *p

	dv1 := ParticleAcceleration(g, &orig, wells).Scale(dt)
	dx1 := orig.Vel.Scale(dt)

	tmp := orig
	tmp.Pos = orig.Pos.Add(dx1.Scale(0.5))
	tmp.Vel = orig.Vel.Add(dv1.Scale(0.5))
	dv2 := ParticleAcceleration(g, &tmp, wells).Scale(dt)
	dx2 := tmp.Vel.Scale(dt)

	tmp = orig
	tmp.Pos = orig.Pos.Add(dx2.Scale(0.5))
	tmp.Vel = orig.Vel.Add(dv2.Scale(0.5))
	dv3 := ParticleAcceleration(g, &tmp, wells).Scale(dt)
	dx3 := tmp.Vel.Scale(dt)

	tmp = orig
	tmp.Pos = orig.Pos.Add(dx3)
	tmp.Vel = orig.Vel.Add(dv3)
	dv4 := ParticleAcceleration(g, &tmp, wells).Scale(dt)
	dx4 := tmp.Vel.Scale(dt)

	p.Vel = orig.Vel.Add(rk4Sum(dv1, dv2, dv3, dv4))
	p.Pos = orig.Pos.Add(rk4Sum(dx1, dx2, dx3, dx4))
}

// rk4Sum returns the weighted RK4 increment (k1 + 2 k2 + 2 k3 + k4) / 6.
func rk4Sum(k1, k2, k3, k4 geom.Vec2) geom.Vec2 {
	return k1.Add(k2.Scale(2)).Add(k3.Scale(2)).Add(k4).Div(6)
}

// EulerBodies advances every body in bodies by dt. All accelerations are
// computed from the pre-step state before any body moves.
func EulerBodies(g float64, bodies []Body, dt float64, ws *Workspace) {
	ws.Init(len(bodies))
	BodyAccelerations(g, bodies, ws.acc)

	for i := range bodies {
		bodies[i].Vel = bodies[i].Vel.Add(ws.acc[i].Scale(dt))
		bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
	}
}

// rk4Fracs are the fractions of stage k's increment used to build the
// snapshot for stage k+1.
var rk4Fracs = [3]float64{0.5, 0.5, 1}

// RK4Bodies advances every body in bodies by dt. Each of the four stages is
// evaluated against a snapshot of the whole system, so no body ever sees a
// sibling's partially updated state.
func RK4Bodies(g float64, bodies []Body, dt float64, ws *Workspace) {
	ws.Init(len(bodies))
	copy(ws.orig, bodies)
	copy(ws.temp, bodies)

	for k := 0; k < 4; k++ {
		BodyAccelerations(g, ws.temp, ws.acc)

		dx, dv := ws.dx[k], ws.dv[k]
		for i := range ws.temp {
			dv[i] = ws.acc[i].Scale(dt)
			dx[i] = ws.temp[i].Vel.Scale(dt)
		}

		if k == 3 {
			break
		}

		frac := rk4Fracs[k]
		for i := range ws.temp {
			ws.temp[i].Pos = ws.orig[i].Pos.Add(dx[i].Scale(frac))
			ws.temp[i].Vel = ws.orig[i].Vel.Add(dv[i].Scale(frac))
		}
	}

	for i := range bodies {
		bodies[i].Pos = ws.orig[i].Pos.Add(rk4Sum(
			ws.dx[0][i], ws.dx[1][i], ws.dx[2][i], ws.dx[3][i],
		))
		bodies[i].Vel = ws.orig[i].Vel.Add(rk4Sum(
			ws.dv[0][i], ws.dv[1][i], ws.dv[2][i], ws.dv[3][i],
		))
	}
}
