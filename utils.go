package organya

import (
	"math"

	"github.com/quasilyte/organya/internal/orgdb"
)

const (
	numOutputChannels = 2
	bytesPerSample    = 4 // float32
)

func calcSamplesPerBeat(sampleRate float64, beatDuration int) (samplesPerBeat int, bytesPerBeat int) {
	// Truncated, not rounded.
	samplesPerBeat = int(float64(beatDuration) * (sampleRate * 1e-3))
	bytesPerBeat = samplesPerBeat * numOutputChannels * bytesPerSample
	return samplesPerBeat, bytesPerBeat
}

// noteFrequency returns a wave sampling frequency (equal temperament)
// for a 256-sample wave cycle.
func noteFrequency(note uint8, tuning float64) float64 {
	return math.Pow(2, (float64(note)+tuning+orgdb.NoteBase)/12)
}

// drumStep returns a drum sample step; drums use a linear pitch scale.
func drumStep(note uint8, sampleRate float64) float64 {
	return float64(note) * orgdb.DrumRate / sampleRate
}

// sampleCount converts a fractional duration into a whole number of samples.
// Non-finite and non-positive durations are 0.
func sampleCount(x float64) int {
	if !(x > 0) || math.IsInf(x, 1) {
		return 0
	}
	if x >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int(x)
}

// panGains implements a soft pan law: the center (6) plays both
// sides at full level, the extremes (0 and 12) mute one of the sides.
func panGains(pan int, volume float64) (left, right float64) {
	l := orgdb.PanCenter
	if pan > orgdb.PanCenter {
		l = 12 - pan
	}
	r := orgdb.PanCenter
	if pan < orgdb.PanCenter {
		r = pan
	}
	return float64(l) * volume, float64(r) * volume
}
