// Package render turns sweep outcomes into images, terminal summaries and
// trajectory plots.
package render

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/physics"
)

const (
	// MinIntensity and MaxIntensity bound the brightness of a collision
	// pixel. Immediate collisions are drawn at MaxIntensity and collisions
	// on the final timestep at MinIntensity.
	MinIntensity = 0.15
	MaxIntensity = 0.85
)

// NoCollisionColor is the color of well pixels which never collided.
var NoCollisionColor = color.RGBA{20, 20, 20, 255}

// ToColorful converts an 8-bit RGB triple to a colorful.Color.
func ToColorful(c [3]uint8) colorful.Color {
	return colorful.Color{
		R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255,
	}
}

// scale8 scales an 8-bit channel by f and truncates. Channels are computed
// in single precision.
func scale8(c uint8, f float32) uint8 {
	return uint8(float32(c) * f)
}

// WellColor returns the color of a single outcome of a well sweep: the
// color of the well that was hit, darkened the longer the collision took.
func WellColor(out gowells.Outcome, wells []physics.Well, timesteps int) color.RGBA {
	if !out.Collided || out.Body < 0 || out.Body >= len(wells) {
		return NoCollisionColor
	}

	frac := float32(1)
	if timesteps > 0 {
		frac = 1 - float32(out.Timestep)/float32(timesteps)
	}
	if frac < 0 {
		frac = 0
	}
	lo, hi := float32(MinIntensity), float32(MaxIntensity)
	intensity := float32(frac*(hi-lo)) + lo

	c := wells[out.Body].Color
	return color.RGBA{
		scale8(c[0], intensity), scale8(c[1], intensity),
		scale8(c[2], intensity), 255,
	}
}

// StabilityColor returns the gray level of a single outcome of a body
// sweep. Early collisions are dark and runs which never collided are white.
func StabilityColor(out gowells.Outcome, timesteps int) color.RGBA {
	frac := float32(1)
	if out.Collided && timesteps > 0 {
		frac = float32(out.Timestep) / float32(timesteps)
	}
	if frac > 1 {
		frac = 1
	}
	v := scale8(255, frac)
	return color.RGBA{v, v, v, 255}
}

// WellImage draws the outcomes of a well sweep. Cell (ix, iy) becomes pixel
// (ix, iy).
func WellImage(out *gowells.Outcomes, wells []physics.Well, timesteps int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, out.Width, out.Height))
	for i, o := range out.Vals {
		ix, iy := out.Coords(i)
		img.SetRGBA(ix, iy, WellColor(o, wells, timesteps))
	}
	return img
}

// StabilityImage draws the outcomes of a body sweep in grayscale.
func StabilityImage(out *gowells.Outcomes, timesteps int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, out.Width, out.Height))
	for i, o := range out.Vals {
		ix, iy := out.Coords(i)
		img.SetRGBA(ix, iy, StabilityColor(o, timesteps))
	}
	return img
}
