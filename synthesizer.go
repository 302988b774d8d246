package organya

import (
	"fmt"

	"github.com/quasilyte/organya/internal/orgdb"
	"github.com/quasilyte/organya/orgfile"
)

// Synthesizer can be used to play individual Organya notes.
//
// It's a thin wrapper around a stream that plays a single-note song.
// The stream ends as soon as the note is over.
//
// Experimental: synthesizer API may change in the near future.
type Synthesizer struct {
	stream *Stream
	bank   *SoundBank
	config SynthesizerConfig
	song   orgfile.Song
}

type SynthesizerConfig struct {
	// The output sample rate.
	//
	// A zero value will assume a sample rate of 48000.
	SampleRate uint

	// BeatDuration is a beat length in milliseconds.
	// It affects the non-percussive note lengths.
	//
	// A zero value will assume a duration of 100.
	BeatDuration int
}

// SynthNote describes a single note to play.
type SynthNote struct {
	Note uint8

	// Length is a note duration in beats.
	// It's ignored by percussive instruments and drums.
	Length uint8

	// Volume is a raw event volume, 0 is silent.
	Volume uint8

	// Panning is in [0, 12] range, 6 is the center.
	Panning uint8

	// Wave is a wavetable index for the melodic channels
	// and a drum index for the percussion channels.
	Wave uint8

	// Tuning is a pitch offset in thousandths of a semitone.
	Tuning uint16

	Percussive bool
}

// maxSynthBeats limits the synthesizer stream length.
// A note stops the stream much earlier.
const maxSynthBeats = 1 << 20

func NewSynthesizer(bank *SoundBank, config SynthesizerConfig) *Synthesizer {
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}
	if config.BeatDuration == 0 {
		config.BeatDuration = 100
	}
	stream := NewStream()
	stream.SetLooping(false)
	stream.stopWhenIdle = true
	return &Synthesizer{
		stream: stream,
		bank:   bank,
		config: config,
	}
}

// PlayNote replaces the currently playing note with the new one.
//
// Channels [0, 7] play melodic waves, channels [8, 15] play drums.
func (s *Synthesizer) PlayNote(channel int, n SynthNote) error {
	if channel < 0 || channel >= orgdb.NumChannels {
		return fmt.Errorf("invalid channel %d", channel)
	}

	s.song = orgfile.Song{
		Signature:    [6]byte{'O', 'r', 'g', '-', '0', '2'},
		BeatDuration: s.config.BeatDuration,
		LoopEnd:      maxSynthBeats,
	}
	inst := &s.song.Instruments[channel]
	inst.Tuning = n.Tuning
	inst.Wave = n.Wave
	if n.Percussive {
		inst.PercussiveFlag = 1
	}
	inst.Events = []orgfile.Event{
		{
			Note:    n.Note,
			Length:  n.Length,
			Volume:  n.Volume,
			Panning: n.Panning,
		},
	}

	return s.stream.LoadSong(&s.song, s.bank, LoadSongConfig{
		SampleRate: s.config.SampleRate,
	})
}

// GetInfo returns the underlying stream info.
func (s *Synthesizer) GetInfo() StreamInfo {
	return s.stream.GetInfo()
}

func (s *Synthesizer) Read(b []byte) (int, error) {
	return s.stream.Read(b)
}

func (s *Synthesizer) ReadBeat(dst []float32) (int, error) {
	return s.stream.ReadBeat(dst)
}

func (s *Synthesizer) Rewind() {
	s.stream.Rewind()
}

func (s *Synthesizer) Seek(offset int64, whence int) (int64, error) {
	return s.stream.Seek(offset, whence)
}
