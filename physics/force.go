package physics

import (
	"github.com/phil-mansfield/gowells/geom"
)

// Force returns the gravitational force felt by a mass m at x due to a mass
// srcM at srcX. The force points from x toward srcX. Coincident points feel
// no force.
func Force(g float64, x geom.Vec2, m float64, srcX geom.Vec2, srcM float64) geom.Vec2 {
	dir := srcX.Sub(x)
	dist := dir.Len()
	if dist == 0 {
		return geom.Vec2{}
	}
	mag := g * m * srcM / (dist * dist)
	return dir.Normalize().Scale(mag)
}

// ParticleAcceleration returns the acceleration of p due to wells. Forces are
// summed in slice order.
func ParticleAcceleration(g float64, p *Particle, wells []Well) geom.Vec2 {
	total := geom.Vec2{}
	for i := range wells {
		total = total.Add(Force(g, p.Pos, p.Mass, wells[i].Pos, wells[i].Mass))
	}
	return total.Div(p.Mass)
}

// BodyAccelerations writes the acceleration of each body due to all the
// others into out, which must be at least as long as bodies. bodies is only
// read.
func BodyAccelerations(g float64, bodies []Body, out []geom.Vec2) {
	for i := range bodies {
		total := geom.Vec2{}
		for j := range bodies {
			if i == j {
				continue
			}
			total = total.Add(Force(
				g, bodies[i].Pos, bodies[i].Mass, bodies[j].Pos, bodies[j].Mass,
			))
		}
		out[i] = total.Div(bodies[i].Mass)
	}
}
