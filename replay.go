package gowells

import (
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// DefaultSampleRate is the number of outer timesteps between recorded
// trajectory points.
const DefaultSampleRate = 5

// Replay steps through a single run one outer timestep at a time while
// recording the trajectory of every moving object. A Replay must only be used
// from one goroutine.
type Replay struct {
	// SampleRate is the number of outer timesteps between trajectory
	// samples.
	SampleRate int

	sys      System
	clock    Clock
	method   physics.Method
	timestep int
	outcome  Outcome

	trajs [][]geom.Vec2
	buf   []geom.Vec2
}

// NewReplay starts a replay of sc from the initial bodies init. The initial
// positions are the first trajectory sample.
func NewReplay(sc Scenario, init []physics.Body, m physics.Method) *Replay {
	r := &Replay{
		SampleRate: DefaultSampleRate,
		sys:        sc.System(init),
		clock:      sc.Clock(),
		method:     m,
	}
	r.buf = r.sys.Positions(r.buf)
	r.trajs = make([][]geom.Vec2, len(r.buf))
	r.sample()
	return r
}

func (r *Replay) sample() {
	r.buf = r.sys.Positions(r.buf)
	for i := range r.trajs {
		r.trajs[i] = append(r.trajs[i], r.buf[i])
	}
}

// Advance runs one outer timestep. It does nothing once the replay has
// finished.
func (r *Replay) Advance() {
	if r.Finished() {
		return
	}

	if idx, ok := frame(r.sys, r.clock, r.method); ok {
		r.outcome = Outcome{Collided: true, Body: idx, Timestep: r.timestep}
	}

	if r.SampleRate > 0 && r.timestep%r.SampleRate == 0 {
		r.sample()
	}
	r.timestep++
}

// Finished returns true once the run has collided or exhausted its clock.
func (r *Replay) Finished() bool {
	return r.outcome.Collided || r.timestep >= r.clock.Timesteps
}

// Outcome returns the outcome so far. It is NoCollision until a collision
// happens.
func (r *Replay) Outcome() Outcome { return r.outcome }

// Timestep returns the number of outer timesteps run so far.
func (r *Replay) Timestep() int { return r.timestep }

// Method returns the integration method of the replay.
func (r *Replay) Method() physics.Method { return r.method }

// Trajectories returns the recorded positions of every moving object. The
// slices are owned by the Replay.
func (r *Replay) Trajectories() [][]geom.Vec2 { return r.trajs }

// Positions returns the current position of every moving object. The slice
// is reused by the next call.
func (r *Replay) Positions() []geom.Vec2 {
	r.buf = r.sys.Positions(r.buf)
	return r.buf
}
