package orgfile

import (
	"fmt"
	"io"
)

// NumInstruments is the fixed number of song instruments (channels).
// Instruments 0-7 are melodic, 8-15 are percussion.
const NumInstruments = 16

// NoChange is a sentinel value for event fields.
// An event field with this value leaves the current channel state untouched.
const NoChange = 255

// Song is a parsed Organya file contents.
// This is a raw format that is not optimized for playback.
type Song struct {
	// Signature is a file magic, like "Org-02".
	Signature [6]byte

	// BeatDuration is a beat length in milliseconds.
	BeatDuration int

	// These two are only used by editors; they don't affect the audio.
	StepsPerBar  uint8
	BeatsPerStep uint8

	// The song loops over [LoopStart, LoopEnd) beats.
	LoopStart uint32
	LoopEnd   uint32

	Instruments [NumInstruments]Instrument
}

type Instrument struct {
	// Tuning is a pitch offset in thousandths of a semitone.
	Tuning uint16

	// Wave is a wavetable index for melodic instruments
	// and a drum index for percussion instruments.
	Wave uint8

	// PercussiveFlag is stored as is to keep the encoding lossless.
	// Use Percussive() to test it.
	PercussiveFlag uint8

	Events []Event
}

// Percussive reports whether every instrument note has a fixed duration.
func (inst *Instrument) Percussive() bool {
	return inst.PercussiveFlag != 0
}

// Event is a channel instruction at the specified beat.
//
// Note, Volume and Panning can be NoChange.
type Event struct {
	Beat uint32

	// Note is a note number in [0, 95].
	Note uint8

	// Length is a note duration in beats.
	Length uint8

	// Volume is usually in [0, 248].
	Volume uint8

	// Panning is in [0, 12] with 6 being a center.
	Panning uint8
}

// Parse reads Organya file data and decodes it into a song.
//
// A non-nil error is usually a *ParseError object.
func Parse(r io.Reader) (*Song, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}
	return NewParser(ParserConfig{}).ParseFromBytes(data)
}
