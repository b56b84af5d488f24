// Package gowells simulates point masses under Newtonian gravity and
// classifies the outcome of each initial condition in a sweep: which body the
// moving object hit first and at which timestep, or that it never hit
// anything.
//
// A run is organized as Timesteps outer timesteps, each of which is divided
// into Substeps integration substeps. Collisions are checked after every
// substep, but outcomes are reported in units of outer timesteps.
package gowells

// Clock describes the time discretization of a run.
type Clock struct {
	Timesteps, Substeps int
	// FrameTime is the length of one outer timestep.
	FrameTime float64
}

// Dt returns the length of a single substep.
func (c Clock) Dt() float64 {
	return c.FrameTime / float64(c.Substeps)
}

// Valid returns true if c describes a run of positive length.
func (c Clock) Valid() bool {
	return c.Timesteps > 0 && c.Substeps > 0 && c.FrameTime > 0
}
