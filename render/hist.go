package render

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/phil-mansfield/gowells"
)

// HistInfo describes the binning of a histogram over [Min, Max).
type HistInfo struct {
	Min, Max float64
	Bins     int
}

// Hist is a binned histogram.
type Hist struct {
	HistInfo
	Centers []float64
	Counts  []int
}

// NewHist returns an empty histogram.
func NewHist(info HistInfo) *Hist {
	h := &Hist{
		HistInfo: info,
		Centers:  make([]float64, info.Bins),
		Counts:   make([]int, info.Bins),
	}
	dx := (info.Max - info.Min) / float64(info.Bins)
	for i := range h.Centers {
		h.Centers[i] = info.Min + dx*(float64(i)+0.5)
	}
	return h
}

// Add adds x to the histogram. Values outside [Min, Max) are dropped.
func (h *Hist) Add(x float64) {
	if x < h.Min || x >= h.Max {
		return
	}
	idx := int((x - h.Min) / (h.Max - h.Min) * float64(h.Bins))
	if idx >= h.Bins {
		idx = h.Bins - 1
	}
	h.Counts[idx]++
}

// Series returns the counts as float64s.
func (h *Hist) Series() []float64 {
	ys := make([]float64, len(h.Counts))
	for i := range ys {
		ys[i] = float64(h.Counts[i])
	}
	return ys
}

// TimestepHist bins the timesteps of every collision in out.
func TimestepHist(out *gowells.Outcomes, timesteps, bins int) *Hist {
	h := NewHist(HistInfo{Min: 0, Max: float64(timesteps), Bins: bins})
	for _, t := range out.CollisionTimes() {
		h.Add(float64(t))
	}
	return h
}

// Summary returns a text summary of a sweep: the number of runs which hit
// each body and a plot of when collisions happened.
func Summary(out *gowells.Outcomes, bodies, timesteps int) string {
	sb := &strings.Builder{}
	hits, misses := out.Counts(bodies)
	total := len(out.Vals)

	for i, n := range hits {
		fmt.Fprintf(sb, "Body %2d: %8d (%5.1f%%)\n", i, n, percent(n, total))
	}
	fmt.Fprintf(sb, "Missed:  %8d (%5.1f%%)\n", misses, percent(misses, total))

	if misses == total || timesteps <= 0 {
		return sb.String()
	}

	h := TimestepHist(out, timesteps, 60)
	sb.WriteString("\n")
	sb.WriteString(asciigraph.Plot(
		h.Series(), asciigraph.Height(8), asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("Collisions per timestep bin, 0 - %d", timesteps)),
	))
	sb.WriteString("\n")

	return sb.String()
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
