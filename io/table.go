package io

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// ReadWellTable reads wells from a whitespace-separated text file with the
// columns x y mass radius r g b. Non-positive radii are replaced with
// physics.WellRadius(mass). Colors are clamped to [0, 255].
func ReadWellTable(file string) ([]physics.Well, error) {
	xCol, yCol, mCol, rCol := 0, 1, 2, 3
	colIdxs := []int{xCol, yCol, mCol, rCol, 4, 5, 6}

	cols, err := table.ReadTable(file, colIdxs, nil)
	if err != nil {
		return nil, fmt.Errorf("could not read well table %s: %w", file, err)
	}

	xs, ys, ms, rs := cols[0], cols[1], cols[2], cols[3]
	wells := make([]physics.Well, len(xs))
	for i := range wells {
		if ms[i] <= 0 {
			return nil, fmt.Errorf(
				"Well %d in %s has non-positive mass %g.", i, file, ms[i],
			)
		}

		wells[i].Pos = geom.Vec2{X: xs[i], Y: ys[i]}
		wells[i].Mass = ms[i]
		wells[i].Radius = rs[i]
		if wells[i].Radius <= 0 {
			wells[i].Radius = physics.WellRadius(ms[i])
		}
		for k := 0; k < 3; k++ {
			wells[i].Color[k] = colorByte(cols[4+k][i])
		}
	}

	return wells, nil
}

func colorByte(x float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(x))))
}
