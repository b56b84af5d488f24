package gowells

import (
	"fmt"
	"strings"

	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// Field is a single component of a body's initial state.
type Field int

const (
	PosX Field = iota
	PosY
	VelX
	VelY
	EndField
)

var fieldNames = [EndField]string{"PosX", "PosY", "VelX", "VelY"}

func (f Field) String() string {
	if f < 0 || f >= EndField {
		return "Unknown"
	}
	return fieldNames[f]
}

// FieldFromString returns the Field with the given name, ignoring case.
func FieldFromString(str string) (Field, bool) {
	str = strings.TrimSpace(str)
	for f := Field(0); f < EndField; f++ {
		if strings.EqualFold(fieldNames[f], str) {
			return f, true
		}
	}
	return EndField, false
}

// Set writes v into field f of b.
func (f Field) Set(b *physics.Body, v float64) {
	switch f {
	case PosX:
		b.Pos.X = v
	case PosY:
		b.Pos.Y = v
	case VelX:
		b.Vel.X = v
	case VelY:
		b.Vel.Y = v
	default:
		panic(fmt.Sprintf("Unknown field %d.", int(f)))
	}
}

// Axis is one dimension of a sweep: Cells evenly spaced values of one field
// of one body. Both endpoints are included.
type Axis struct {
	Body     int
	Field    Field
	Min, Max float64
	Cells    int
}

// Value returns the parameter value of the ith cell. A single-cell axis
// evaluates at Min.
func (ax Axis) Value(i int) float64 {
	if ax.Cells <= 1 {
		return ax.Min
	}
	return ax.Min + (ax.Max-ax.Min)*float64(i)/float64(ax.Cells-1)
}

// Cell returns the index of the cell whose value is closest to v, clamped to
// the axis.
func (ax Axis) Cell(v float64) int {
	if ax.Cells <= 1 || ax.Max == ax.Min {
		return 0
	}
	i := int((v-ax.Min)/(ax.Max-ax.Min)*float64(ax.Cells-1) + 0.5)
	if i < 0 {
		return 0
	} else if i >= ax.Cells {
		return ax.Cells - 1
	}
	return i
}

// Grid is a two-dimensional sweep over initial conditions.
type Grid struct {
	X, Y Axis
}

// Width returns the number of cells along X.
func (g Grid) Width() int { return g.X.Cells }

// Height returns the number of cells along Y.
func (g Grid) Height() int { return g.Y.Cells }

// CheckInit returns an error if g cannot be applied to a system of n bodies.
func (g Grid) CheckInit(n int) error {
	for _, ax := range []struct {
		name string
		Axis
	}{{"X", g.X}, {"Y", g.Y}} {
		switch {
		case ax.Cells <= 0:
			return fmt.Errorf("%s axis has %d cells.", ax.name, ax.Cells)
		case ax.Body < 0 || ax.Body >= n:
			return fmt.Errorf(
				"%s axis refers to body %d, but there are %d bodies.",
				ax.name, ax.Body, n,
			)
		case ax.Field < 0 || ax.Field >= EndField:
			return fmt.Errorf("%s axis has unknown field %d.", ax.name, int(ax.Field))
		}
	}
	return nil
}

// Apply writes the parameters of cell (ix, iy) into bodies.
func (g Grid) Apply(bodies []physics.Body, ix, iy int) {
	g.X.Field.Set(&bodies[g.X.Body], g.X.Value(ix))
	g.Y.Field.Set(&bodies[g.Y.Body], g.Y.Value(iy))
}

// Bodies returns a copy of init with the parameters of cell (ix, iy) applied.
func (g Grid) Bodies(init []physics.Body, ix, iy int) []physics.Body {
	bodies := make([]physics.Body, len(init))
	copy(bodies, init)
	g.Apply(bodies, ix, iy)
	return bodies
}

// WellGrid returns a grid over the starting position of a test particle,
// seen through a camera: pixel (px, py) starts the particle at
// (px, py)/zoom - offset.
func WellGrid(width, height int, offset geom.Vec2, zoom float64) Grid {
	return Grid{
		X: Axis{
			Field: PosX, Cells: width,
			Min: -offset.X, Max: float64(width-1)/zoom - offset.X,
		},
		Y: Axis{
			Field: PosY, Cells: height,
			Min: -offset.Y, Max: float64(height-1)/zoom - offset.Y,
		},
	}
}

// ThreeBodyGrid returns a cells x cells grid over the y-velocities of the
// first two bodies: body 0 moves with vy in [0, 80] along X and body 1 with
// vy in [-80, 0] along Y.
func ThreeBodyGrid(cells int) Grid {
	return Grid{
		X: Axis{Body: 0, Field: VelY, Min: 0, Max: 80, Cells: cells},
		Y: Axis{Body: 1, Field: VelY, Min: -80, Max: 0, Cells: cells},
	}
}
