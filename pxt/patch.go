package pxt

import (
	"fmt"
)

// MaxLength is the longest channel Synth can render.
// It's ~190 seconds at 22050 Hz, way above any sound effect.
const MaxLength = 1 << 22

// NumChannels is the number of modulated channels in every patch.
const NumChannels = 4

// Patch is a parsed sound effect description.
//
// Every channel is an independent FM/AM generator with its own envelope;
// the patch output is a sum of all enabled channels.
type Patch struct {
	Channels [NumChannels]Channel
}

// Channel is a single generator of the patch.
type Channel struct {
	Enabled bool

	// Length is the number of samples Synth produces.
	// It must be in [0, MaxLength] range, see Patch.Validate.
	Length int

	// Carrier is the main signal.
	Carrier Wave

	// Frequency modulates the carrier pitch.
	Frequency Wave

	// Amplitude modulates the carrier level.
	Amplitude Wave

	Envelope Envelope
}

// Wave describes one signal generator.
type Wave struct {
	// Waveform is a basis waveform index, see Waveforms().
	// The index wraps around.
	Waveform int

	// Pitch is the number of waveform cycles over the channel length.
	Pitch float64

	Level  int
	Offset int
}

// Envelope controls the overall amplitude of the channel.
//
// The envelope domain is [0, 256) regardless of the channel length.
type Envelope struct {
	// Initial is a value at time 0, usually in [0, 63].
	Initial int

	Points [3]EnvelopePoint
}

type EnvelopePoint struct {
	Time  int
	Value int
}

// Evaluate returns the envelope value at the step i.
//
// The value is interpolated linearly between the surrounding points.
// All arithmetic is integral, the division truncates.
func (e Envelope) Evaluate(i int) int {
	prevValue, prevTime := e.Initial, 0
	nextValue, nextTime := 0, 256
	for j := len(e.Points) - 1; j >= 0; j-- {
		if i < e.Points[j].Time {
			nextTime = e.Points[j].Time
			nextValue = e.Points[j].Value
		}
	}
	for j := range e.Points {
		if i >= e.Points[j].Time {
			prevTime = e.Points[j].Time
			prevValue = e.Points[j].Value
		}
	}
	if nextTime <= prevTime {
		return prevValue
	}
	return (i-prevTime)*(nextValue-prevValue)/(nextTime-prevTime) + prevValue
}

// Validate reports whether the patch can be rendered.
// Parsed patches are always valid.
func (p *Patch) Validate() error {
	for i := range p.Channels {
		c := &p.Channels[i]
		if c.Length < 0 || c.Length > MaxLength {
			return fmt.Errorf("channel[%d]: length %d is out of [0, %d] range", i, c.Length, MaxLength)
		}
	}
	return nil
}
