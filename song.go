package organya

import (
	"github.com/quasilyte/organya/internal/orgdb"
)

// song is a compiled orgfile.Song that is ready for playback.
type song struct {
	channels [orgdb.NumChannels]channelDef

	loopStart int
	loopEnd   int

	sampleRate     float64
	samplesPerBeat int
	bytesPerBeat   int
	secondsPerBeat float64
}

type songConfig struct {
	sampleRate uint
}

// channelDef is a static part of the channel.
type channelDef struct {
	// tuning is a pitch offset in semitones.
	tuning float64

	wave       int
	percussive bool

	// drum is set for the percussion channels (8-15).
	drum bool

	// events are sorted by beat; there is at most one event per beat.
	events []beatEvent
}

type beatEvent struct {
	beat int

	note    uint8
	length  uint8
	volume  uint8
	panning uint8

	flags eventFlags
}

type eventFlags uint8

const (
	eventSetsVolume eventFlags = 1 << iota
	eventSetsPanning
	eventSetsNote
)

func (f eventFlags) Contains(v eventFlags) bool {
	return f&v != 0
}
