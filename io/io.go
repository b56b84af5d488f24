package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/gowells"
)

// endianness is a utility function converting an endianness flag to a
// byte order.
func endianness(flag int64) (binary.ByteOrder, error) {
	switch flag {
	case -1:
		return binary.LittleEndian, nil
	case 0:
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("Unrecognized endianness flag %d.", flag)
}

// MaxOutcomeCells is the largest grid ReadOutcomes will allocate.
var MaxOutcomeCells int64 = 1 << 26

// ReadOutcomes reads a header and outcome grid written by WriteOutcomes.
func ReadOutcomes(rd io.Reader) (*OutcomeHeader, *gowells.Outcomes, error) {
	return readOutcomes(rd, MaxOutcomeCells)
}

// readOutcomes reads a header and outcome grid, failing before allocation
// if the header describes more than maxCells cells.
func readOutcomes(
	rd io.Reader, maxCells int64,
) (*OutcomeHeader, *gowells.Outcomes, error) {
	// order doesn't matter for this read, since flags are symmetric.
	var flag int64
	if err := binary.Read(rd, binary.LittleEndian, &flag); err != nil {
		return nil, nil, err
	}
	order, err := endianness(flag)
	if err != nil {
		return nil, nil, err
	}

	hd := &OutcomeHeader{Endianness: flag}
	rest := struct {
		HeaderSize, System, Method, Bodies int64
		Width, Height, Timesteps, Substeps int64
		FrameTime                          float64
		Digest                             uint64
	}{}
	if err := binary.Read(rd, order, &rest); err != nil {
		return nil, nil, err
	}
	hd.HeaderSize, hd.System, hd.Method, hd.Bodies =
		rest.HeaderSize, rest.System, rest.Method, rest.Bodies
	hd.Width, hd.Height = rest.Width, rest.Height
	hd.Timesteps, hd.Substeps = rest.Timesteps, rest.Substeps
	hd.FrameTime, hd.Digest = rest.FrameTime, rest.Digest

	if size := int64(binary.Size(hd)); hd.HeaderSize != size {
		return nil, nil, fmt.Errorf(
			"Expected OutcomeHeader size of %d, found %d.", size, hd.HeaderSize,
		)
	} else if hd.Width < 0 || hd.Height < 0 {
		return nil, nil, fmt.Errorf(
			"Invalid grid dimensions %dx%d.", hd.Width, hd.Height,
		)
	} else if hd.Width > 0 && hd.Height > maxCells/hd.Width {
		return nil, nil, fmt.Errorf(
			"Grid dimensions %dx%d exceed the %d cells available.",
			hd.Width, hd.Height, maxCells,
		)
	}

	out := gowells.NewOutcomes(int(hd.Width), int(hd.Height))
	buf := make([]int64, 2*len(out.Vals))
	if err := binary.Read(rd, order, buf); err != nil {
		return nil, nil, err
	}

	for i := range out.Vals {
		if body := buf[2*i]; body >= 0 {
			out.Vals[i] = gowells.Outcome{
				Collided: true, Body: int(body), Timestep: int(buf[2*i+1]),
			}
		}
	}

	return hd, out, nil
}

// WriteOutcomesAt writes hd and out to the given file.
func WriteOutcomesAt(file string, hd *OutcomeHeader, out *gowells.Outcomes) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	wr := bufio.NewWriter(f)

	if err := WriteOutcomes(wr, hd, out); err != nil {
		f.Close()
		return err
	}
	if err := wr.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadOutcomesAt reads the header and outcome grid in the given file.
func ReadOutcomesAt(file string) (*OutcomeHeader, *gowells.Outcomes, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	cells := (info.Size() - int64(binary.Size(OutcomeHeader{}))) / 16
	if cells < 0 {
		cells = 0
	}
	if cells > MaxOutcomeCells {
		cells = MaxOutcomeCells
	}

	hd, out, err := readOutcomes(bufio.NewReader(f), cells)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read %s: %w", file, err)
	}
	return hd, out, nil
}
