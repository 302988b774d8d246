package pxt

import (
	"math"
)

// WaveformSize is the number of samples in every basis waveform.
const WaveformSize = 256

// NumWaveforms is the number of built-in basis waveforms.
const NumWaveforms = 6

// Waveform is a single cycle of a signed 8-bit basis signal.
type Waveform [WaveformSize]int8

const (
	WaveSine = iota
	WaveTriangle
	WaveSawUp
	WaveSawDown
	WaveSquare
	WaveNoise
)

var basisWaveforms = generateWaveforms()

// Waveforms returns the six basis waveforms used by the patch synthesizer.
//
// The tables are generated once and are bit-exact with PixTone v1.0.3,
// the noise wave included.
// The returned array is a copy; mutating it has no effect on synthesis.
func Waveforms() [NumWaveforms]Waveform {
	return basisWaveforms
}

func generateWaveforms() [NumWaveforms]Waveform {
	var w [NumWaveforms]Waveform

	// The generator advances on every index, even though
	// only the noise wave reads its state.
	seed := uint32(0)
	for i := 0; i < WaveformSize; i++ {
		seed = seed*214013 + 2531011

		w[WaveSine][i] = int8(0x40 * math.Sin(float64(i)*3.1416/0x80))

		triangle := i
		if (0x40+i)&0x80 != 0 {
			triangle = 0x80 - i
		}
		w[WaveTriangle][i] = int8(triangle)

		w[WaveSawUp][i] = int8(-0x40 + i/2)
		w[WaveSawDown][i] = int8(0x40 - i/2)
		w[WaveSquare][i] = int8(0x40 - (i & 0x80))
		w[WaveNoise][i] = int8(seed>>16) / 2
	}

	return w
}
