package render

import (
	"fmt"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

var (
	trajColors = []string{
		"DarkSlateBlue", "DeepPink", "DarkTurquoise",
		"DarkViolet", "DarkOrange", "DimGray",
	}
)

// Hex returns the #rrggbb form of an 8-bit RGB triple.
func Hex(c [3]uint8) string {
	return ToColorful(c).Hex()
}

// PlotTrajectories queues a plot of a replay's trajectories, along with any
// wells, to be written to fname. plt.Execute must be called to produce the
// file.
func PlotTrajectories(fname string, r *gowells.Replay, wells []physics.Well) {
	plt.Figure()

	for _, w := range wells {
		plt.Plot(
			[]float64{w.Pos.X}, []float64{w.Pos.Y}, "o",
			plt.C(Hex(w.Color)),
		)
	}

	for i, traj := range r.Trajectories() {
		xs, ys := split(traj)
		plt.Plot(xs, ys, plt.LW(2), plt.C(trajColors[i%len(trajColors)]))
	}

	plt.Title(fmt.Sprintf("%s: %s", r.Method(), r.Outcome()))
	plt.XLabel(`$x$`)
	plt.YLabel(`$y$`)
	plt.SaveFig(fname)
}

func split(vs []geom.Vec2) (xs, ys []float64) {
	xs, ys = make([]float64, len(vs)), make([]float64, len(vs))
	for i := range vs {
		xs[i], ys[i] = vs[i].X, vs[i].Y
	}
	return xs, ys
}
