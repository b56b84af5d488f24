package render

import (
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/physics"
)

func TestWellColor(t *testing.T) {
	wells := gowells.DefaultWellScenario().Wells

	table := []struct {
		out gowells.Outcome
		c   color.RGBA
	}{
		{gowells.NoCollision, color.RGBA{20, 20, 20, 255}},
		{gowells.Outcome{Collided: true, Body: 0, Timestep: 0}, color.RGBA{216, 85, 85, 255}},
		{gowells.Outcome{Collided: true, Body: 1, Timestep: 2000}, color.RGBA{15, 38, 15, 255}},
		{gowells.Outcome{Collided: true, Body: 2, Timestep: 1000}, color.RGBA{50, 50, 127, 255}},
		{gowells.Outcome{Collided: true, Body: 2, Timestep: 3000}, color.RGBA{15, 15, 38, 255}},
		{gowells.Outcome{Collided: true, Body: 7, Timestep: 0}, color.RGBA{20, 20, 20, 255}},
	}

	for i, test := range table {
		c := WellColor(test.out, wells, 2000)
		if c != test.c {
			t.Errorf("%d) Expected WellColor(%v) = %v, got %v.", i, test.out, test.c, c)
		}
	}
}

func TestStabilityColor(t *testing.T) {
	table := []struct {
		out gowells.Outcome
		v   uint8
	}{
		{gowells.NoCollision, 255},
		{gowells.Outcome{Collided: true}, 0},
		{gowells.Outcome{Collided: true, Timestep: 500}, 127},
		{gowells.Outcome{Collided: true, Timestep: 333}, 84},
		{gowells.Outcome{Collided: true, Timestep: 1000}, 255},
		{gowells.Outcome{Collided: true, Timestep: 5000}, 255},
	}

	for i, test := range table {
		c := StabilityColor(test.out, 1000)
		if c != (color.RGBA{test.v, test.v, test.v, 255}) {
			t.Errorf("%d) Expected gray level %d for %v, got %v.", i, test.v, test.out, c)
		}
	}
}

func TestImages(t *testing.T) {
	wells := []physics.Well{{Color: [3]uint8{0, 255, 0}}}
	out := gowells.NewOutcomes(3, 2)
	out.Set(2, 1, gowells.Outcome{Collided: true, Body: 0, Timestep: 0})

	img := WellImage(out, wells, 10)
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, 2, img.Bounds().Dy())
	assert.Equal(t, NoCollisionColor, img.RGBAAt(0, 0))
	assert.Equal(t, uint8(216), img.RGBAAt(2, 1).G)

	gray := StabilityImage(out, 10)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, gray.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, gray.RGBAAt(2, 1))

	fname := filepath.Join(t.TempDir(), "wells.png")
	require.NoError(t, WritePNG(fname, img))
	read, err := ReadPNG(fname)
	require.NoError(t, err)
	r, g, b, a := read.At(2, 1).RGBA()
	assert.Equal(t, [4]uint32{0, 216 * 0x101, 0, 0xffff}, [4]uint32{r, g, b, a})
}

func TestHist(t *testing.T) {
	h := NewHist(HistInfo{Min: 0, Max: 10, Bins: 5})
	assert.Equal(t, []float64{1, 3, 5, 7, 9}, h.Centers)

	for _, x := range []float64{0, 1.9, 2, 9.99, 10, -1} {
		h.Add(x)
	}
	assert.Equal(t, []int{2, 1, 0, 0, 1}, h.Counts)
	assert.Equal(t, []float64{2, 1, 0, 0, 1}, h.Series())
}

func TestSummary(t *testing.T) {
	out := gowells.NewOutcomes(2, 2)
	str := Summary(out, 3, 100)
	assert.Contains(t, str, "Body  0:        0")
	assert.Contains(t, str, "Missed:         4 (100.0%)")
	assert.NotContains(t, str, "Collisions per")

	out.Set(0, 0, gowells.Outcome{Collided: true, Body: 2, Timestep: 10})
	out.Set(1, 0, gowells.Outcome{Collided: true, Body: 2, Timestep: 80})
	str = Summary(out, 3, 100)
	assert.Contains(t, str, "Body  2:        2 ( 50.0%)")
	assert.Contains(t, str, "Collisions per timestep bin, 0 - 100")
	assert.Greater(t, len(strings.Split(str, "\n")), 8)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff6464", Hex([3]uint8{255, 100, 100}))
}
