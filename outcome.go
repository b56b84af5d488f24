package gowells

import (
	"fmt"

	"github.com/phil-mansfield/gowells/geom"
)

// Outcome is the classification of a single run. The zero value is
// NoCollision.
//
// For particle systems Body indexes the well list. For body systems it
// indexes the pair list described by physics.Pair.
type Outcome struct {
	Collided       bool
	Body, Timestep int
}

// NoCollision is the Outcome of a run which exhausted its clock.
var NoCollision = Outcome{}

func (out Outcome) String() string {
	if !out.Collided {
		return "No collision"
	}
	return fmt.Sprintf("Collided with body %d at timestep %d", out.Body, out.Timestep)
}

// Outcomes is a grid of Outcomes laid out in row-major order, so the cell
// (ix, iy) is stored at Vals[ix + iy*Width].
type Outcomes struct {
	Width, Height int
	Vals          []Outcome
	g             *geom.Grid
}

// NewOutcomes returns a grid of NoCollision outcomes.
func NewOutcomes(width, height int) *Outcomes {
	return &Outcomes{
		Width: width, Height: height,
		Vals: make([]Outcome, width*height),
		g:    geom.NewGrid([2]int{0, 0}, [2]int{width, height}),
	}
}

// At returns the outcome of cell (ix, iy).
func (o *Outcomes) At(ix, iy int) Outcome {
	return o.Vals[o.g.Idx(ix, iy)]
}

// Set sets the outcome of cell (ix, iy).
func (o *Outcomes) Set(ix, iy int, out Outcome) {
	o.Vals[o.g.Idx(ix, iy)] = out
}

// Coords returns the cell corresponding to an index into Vals.
func (o *Outcomes) Coords(idx int) (ix, iy int) {
	return o.g.Coords(idx)
}

// Contains returns true if (ix, iy) is a cell of the grid.
func (o *Outcomes) Contains(ix, iy int) bool {
	return o.g.BoundsCheck(ix, iy)
}

// Counts returns the number of collisions with each of n bodies and the
// number of runs which never collided. Outcomes with a body index outside
// [0, n) are counted as misses.
func (o *Outcomes) Counts(n int) (hits []int, misses int) {
	hits = make([]int, n)
	for _, out := range o.Vals {
		if out.Collided && out.Body >= 0 && out.Body < n {
			hits[out.Body]++
		} else {
			misses++
		}
	}
	return hits, misses
}

// CollisionTimes returns the timestep of every collision in the grid, in
// storage order.
func (o *Outcomes) CollisionTimes() []int {
	ts := []int{}
	for _, out := range o.Vals {
		if out.Collided {
			ts = append(ts, out.Timestep)
		}
	}
	return ts
}
