package io

import (
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/physics"
)

var end = binary.LittleEndian

// SystemFlag identifies the kind of system a sweep was run over.
type SystemFlag int64

const (
	WellsFlag SystemFlag = iota
	ThreeBodyFlag
)

// OutcomeHeader is written at the start of every .gwo file.
type OutcomeHeader struct {
	Endianness, HeaderSize int64

	System, Method      int64
	Bodies              int64
	Width, Height       int64
	Timesteps, Substeps int64
	FrameTime           float64
	// Digest is Digest(sc, grid, method) of the sweep.
	Digest uint64
}

// NewOutcomeHeader returns a header describing a sweep of sc over grid with
// the given method. Bodies is the number of distinct values an Outcome.Body
// can take.
func NewOutcomeHeader(
	sc gowells.Scenario, grid gowells.Grid, m physics.Method,
	out *gowells.Outcomes,
) (*OutcomeHeader, error) {
	digest, err := Digest(sc, grid, m)
	if err != nil {
		return nil, err
	}
	hd := &OutcomeHeader{Method: int64(m), Digest: digest}
	hd.Width, hd.Height = int64(out.Width), int64(out.Height)

	switch s := sc.(type) {
	case *gowells.WellScenario:
		hd.System = int64(WellsFlag)
		hd.Bodies = int64(len(s.Wells))
	case *gowells.BodyScenario:
		hd.System = int64(ThreeBodyFlag)
		hd.Bodies = int64(physics.Pairs(len(s.Bodies)))
	}

	clock := sc.Clock()
	hd.Timesteps, hd.Substeps = int64(clock.Timesteps), int64(clock.Substeps)
	hd.FrameTime = clock.FrameTime

	return hd, nil
}

// Digest hashes every input which changes the outcome grid of a sweep: the
// physics of sc, its clock, the axes of grid and the method. Well colors do
// not contribute.
func Digest(
	sc gowells.Scenario, grid gowells.Grid, m physics.Method,
) (uint64, error) {
	h := xxhash.New()

	switch s := sc.(type) {
	case *gowells.WellScenario:
		hashValues(h, int64(WellsFlag), s.G, s.Threshold,
			s.ParticleMass, s.ParticleRadius,
			s.Start.X, s.Start.Y, s.StartVel.X, s.StartVel.Y,
			int64(len(s.Wells)))
		for _, w := range s.Wells {
			hashValues(h, w.Pos.X, w.Pos.Y, w.Mass, w.Radius)
		}
	case *gowells.BodyScenario:
		hashValues(h, int64(ThreeBodyFlag), s.G, int64(len(s.Bodies)))
		for _, b := range s.Bodies {
			hashValues(h, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, b.Mass, b.Radius)
		}
	default:
		return 0, fmt.Errorf("Unrecognized scenario type %T.", sc)
	}

	clock := sc.Clock()
	hashValues(h, int64(clock.Timesteps), int64(clock.Substeps),
		clock.FrameTime, int64(m))
	for _, ax := range []gowells.Axis{grid.X, grid.Y} {
		hashValues(h, int64(ax.Body), int64(ax.Field),
			ax.Min, ax.Max, int64(ax.Cells))
	}

	return h.Sum64(), nil
}

func hashValues(h *xxhash.Digest, vals ...any) {
	for _, v := range vals {
		// Writes to a Digest never fail.
		_ = binary.Write(h, end, v)
	}
}

// Matches returns true if hd describes a sweep of sc over grid with method m.
func (hd *OutcomeHeader) Matches(
	sc gowells.Scenario, grid gowells.Grid, m physics.Method,
) bool {
	digest, err := Digest(sc, grid, m)
	return err == nil && hd.Digest == digest && hd.Method == int64(m) &&
		hd.Width == int64(grid.Width()) && hd.Height == int64(grid.Height()) &&
		hd.Clock() == sc.Clock()
}

// Clock returns the clock the outcomes were computed with.
func (hd *OutcomeHeader) Clock() gowells.Clock {
	return gowells.Clock{
		Timesteps: int(hd.Timesteps), Substeps: int(hd.Substeps),
		FrameTime: hd.FrameTime,
	}
}

// WriteOutcomes writes hd followed by one (body, timestep) pair of int64s
// per cell. Cells which never collided are written with a body of -1.
func WriteOutcomes(wr io.Writer, hd *OutcomeHeader, out *gowells.Outcomes) error {
	if hd.Width != int64(out.Width) || hd.Height != int64(out.Height) {
		return fmt.Errorf(
			"Header describes a %dx%d grid, but outcomes are %dx%d.",
			hd.Width, hd.Height, out.Width, out.Height,
		)
	}

	if end == binary.LittleEndian {
		hd.Endianness = -1
	} else {
		hd.Endianness = 0
	}
	hd.HeaderSize = int64(binary.Size(hd))

	if err := binary.Write(wr, end, hd); err != nil {
		return err
	}

	buf := make([]int64, 2*len(out.Vals))
	for i, o := range out.Vals {
		if o.Collided {
			buf[2*i], buf[2*i+1] = int64(o.Body), int64(o.Timestep)
		} else {
			buf[2*i], buf[2*i+1] = -1, 0
		}
	}
	return binary.Write(wr, end, buf)
}

// OutputName returns the path of the output file with the given extension
// for the config con.
func OutputName(con *SweepConfig, ext string) string {
	method := strings.ToLower(con.MethodValue().String())

	var name string
	if con.IsThreeBody() {
		name = fmt.Sprintf("stability_%s", method)
	} else {
		name = fmt.Sprintf(
			"gravity_wells_%s_%.1f_%.1f_%.1f_%.1f_%.2f", method,
			con.VelX, con.VelY, con.OffsetX, con.OffsetY, con.Zoom,
		)
	}

	return filepath.Join(con.Output, con.PrependName+name+con.AppendName+ext)
}
