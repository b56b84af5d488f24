// Package geom contains the two-dimensional geometric primitives used by the
// integrators and by the sweep grid.
package geom

import (
	"math"
)

// Vec2 is a 2D vector. It is a value type: every method returns a new vector
// and none modifies its receiver.
type Vec2 struct {
	X, Y float64
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{v.X + u.X, v.Y + u.Y}
}

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2{v.X - u.X, v.Y - u.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Div returns v / s. Dividing by zero follows IEEE rules.
func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns the unit vector pointing along v. The zero vector
// normalizes to itself.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Dot returns the dot product of v and u.
func (v Vec2) Dot(u Vec2) float64 {
	return v.X*u.X + v.Y*u.Y
}

// Dist returns the distance between the points v and u.
func (v Vec2) Dist(u Vec2) float64 {
	return v.Sub(u).Len()
}

// Lerp linearly interpolates between v (t = 0) and u (t = 1).
func (v Vec2) Lerp(u Vec2, t float64) Vec2 {
	return Vec2{v.X + (u.X-v.X)*t, v.Y + (u.Y-v.Y)*t}
}
