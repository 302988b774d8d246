package organya

import (
	"math"
)

const lanczosRadius = 2

// lanczos is a two-lobe windowed sinc kernel.
//
// The pi approximation is a part of the reference output;
// it should not be replaced with math.Pi.
func lanczos(d float64) float64 {
	if d == 0 {
		return 1
	}
	if math.Abs(d) > lanczosRadius {
		return 0
	}
	d *= 3.14159265
	dr := d / lanczosRadius
	return math.Sin(d) * math.Sin(dr) / (d * dr)
}

// resample takes a sample from src at a fractional position pos.
//
// When the source is played faster than 1 sample per step,
// the kernel is widened to filter out the aliasing.
// Positions past the source end wrap around,
// negative positions are clamped to the first sample.
func resample(src *sampleSource, pos, step float64) float64 {
	size := src.Len()
	if size == 0 {
		return 0
	}

	scale := 1 / step
	if scale > 1 {
		scale = 1
	}

	density := 0.0
	sample := 0.0
	lo := int(-lanczosRadius/scale + pos - 0.5)
	hi := int(lanczosRadius/scale + pos + 0.5)
	for m := lo; m < hi; m++ {
		factor := lanczos((float64(m) - pos + 0.5) * scale)
		density += factor
		i := 0
		if m > 0 {
			i = m % size
		}
		sample += src.At(i) * factor
	}
	if density > 0 {
		sample /= density
	}
	return sample
}
