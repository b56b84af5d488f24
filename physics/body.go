// Package physics implements the Newtonian force law, the Euler and RK4
// integrators and the collision predicates used by gowells.
//
// Two kinds of moving object exist. A Body attracts and is attracted by every
// other Body in its slice. A Particle moves through a fixed set of Wells,
// which attract it but never move in response.
package physics

import (
	"math"

	"github.com/phil-mansfield/gowells/geom"
)

const (
	// MinWellRadius is the smallest radius WellRadius will return.
	MinWellRadius = 10.0
)

// Body is a member of a mutually interacting system. Mass must be positive.
type Body struct {
	Pos, Vel     geom.Vec2
	Mass, Radius float64
}

// Particle is a test particle which moves through a set of Wells.
type Particle struct {
	Pos, Vel     geom.Vec2
	Mass, Radius float64
}

// Well is an immobile gravitating body. Color is display payload and is
// never read by the integrators.
type Well struct {
	Pos          geom.Vec2
	Mass, Radius float64
	Color        [3]uint8
}

// WellRadius returns the radius conventionally assigned to a well of the
// given mass.
func WellRadius(mass float64) float64 {
	return math.Max(math.Sqrt(mass/1000), MinWellRadius)
}

// Positions writes the positions of bodies into buf, growing it if needed.
func Positions(bodies []Body, buf []geom.Vec2) []geom.Vec2 {
	buf = buf[:0]
	for i := range bodies {
		buf = append(buf, bodies[i].Pos)
	}
	return buf
}

// CenterOfMass returns the mass-weighted mean position of bodies.
func CenterOfMass(bodies []Body) geom.Vec2 {
	sum, mass := geom.Vec2{}, 0.0
	for i := range bodies {
		sum = sum.Add(bodies[i].Pos.Scale(bodies[i].Mass))
		mass += bodies[i].Mass
	}
	if mass == 0 {
		return geom.Vec2{}
	}
	return sum.Div(mass)
}
