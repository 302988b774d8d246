package organya

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/quasilyte/organya/internal/orgdb"
	"github.com/quasilyte/organya/orgfile"
)

// Stream wraps the compiled Organya song, making it possible to Read() its PCM bytes.
//
// The Read() method produces 32-bit float little endian stereo PCM bytes;
// this is what ebiten/audio NewPlayerF32 and oto FormatFloat32LE expect.
//
// ReadBeat() is a lower level alternative that renders
// exactly one beat into a float slice.
//
// A stream is not safe for concurrent use.
type Stream struct {
	song song
	bank *SoundBank

	// beat is the next beat to render.
	beat int
	// lastBeat is the most recently rendered beat (-1 if none).
	lastBeat int

	beatsRendered int
	bytePos       int // Used to report the current pos via Seek()
	t             float64

	settings streamSettings

	// stopWhenIdle ends the stream once all channels are silent.
	stopWhenIdle bool

	channels [orgfile.NumInstruments]streamChannel

	block       []float32
	encoded     []byte
	pending     []byte
	initialized bool
}

type streamSettings struct {
	loop         bool
	eventHandler func(e StreamEvent)
}

// StreamInfo contains a compiled song stream information like bytes per beat, etc.
type StreamInfo struct {
	// SamplesPerBeat is the number of stereo frames in one beat block.
	// ReadBeat needs a slice of at least 2*SamplesPerBeat floats.
	SamplesPerBeat uint

	// BytesPerBeat is the number of Read() bytes that hold a single beat.
	BytesPerBeat uint

	// SampleRate is the output sample rate.
	SampleRate uint

	// LoopStart and LoopEnd are the song loop bounds, in beats.
	LoopStart uint
	LoopEnd   uint

	// MemoryUsage approximates the compiled song size in bytes.
	// The shared sound bank is not included.
	MemoryUsage uint
}

// LoadSongConfig configures the song loading.
//
// These settings can't be changed after a song is loaded.
//
// Some extra configurations are available via Stream methods:
//   - Stream.SetLooping()
//   - Stream.SetEventHandler()
type LoadSongConfig struct {
	// The output sample rate.
	//
	// A zero value will assume a sample rate of 48000.
	SampleRate uint
}

var errNoSong = errors.New("no song loaded")

// NewStream allocates a stream that can play Organya songs.
// Use LoadSong method to finish its initialization.
//
// A new stream is looping by default.
func NewStream() *Stream {
	return &Stream{
		settings: streamSettings{
			loop: true,
		},
		lastBeat: -1,
	}
}

// SetEventHandler installs an event listener to the stream.
//
// f is called on every stream event.
//
// Events are produced when the song is being rendered.
// Therefore, calling Read() may produce multiple events.
//
// Experimental: the events handling API may change significantly in the future.
func (s *Stream) SetEventHandler(f func(e StreamEvent)) {
	s.settings.eventHandler = f
}

// SetLooping controls what happens when the song reaches its loop end.
//
// A looping stream jumps back to the loop start and never returns EOF.
// A non-looping stream returns io.EOF instead;
// this is what an offline rendering usually needs.
func (s *Stream) SetLooping(loop bool) {
	s.settings.loop = loop
}

// LoadSong assigns a new song to this stream.
//
// The stream keeps a reference to the bank; the song is compiled
// and is not referenced after this call.
// Load errors are reported before any playback state is changed.
func (s *Stream) LoadSong(m *orgfile.Song, bank *SoundBank, config LoadSongConfig) error {
	s.applyConfigDefaults(&config)

	compiled, err := compileSong(m, songConfig{
		sampleRate: config.SampleRate,
	})
	if err != nil {
		return err
	}
	s.assignCompiledSong(compiled, bank)

	return nil
}

func (s *Stream) applyConfigDefaults(config *LoadSongConfig) {
	if config.SampleRate == 0 {
		config.SampleRate = 48000
	}
}

func (s *Stream) assignCompiledSong(compiled song, bank *SoundBank) {
	if bank == nil {
		bank = NewSoundBank(nil, [NumDrums][]int16{})
	}
	s.song = compiled
	s.bank = bank

	blockSize := s.song.samplesPerBeat * numOutputChannels
	if cap(s.block) < blockSize {
		s.block = make([]float32, blockSize)
		s.encoded = make([]byte, s.song.bytesPerBeat)
	}
	s.block = s.block[:blockSize]
	s.encoded = s.encoded[:s.song.bytesPerBeat]
	s.initialized = true

	// Call a rewind() that won't trigger a Sync event.
	s.rewind()
}

// Seek partially implements io.Seeker.
//
// You can use it for two things:
//  1. (0, SeekStart) for rewind
//  2. (0, SeekCurrent) to get the byte pos inside the stream
func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		if offset == 0 {
			s.Rewind()
			return 0, nil
		}

	case io.SeekCurrent:
		if offset == 0 {
			return int64(s.bytePos), nil
		}
	}

	return 0, errors.New("unsupported Seek call")
}

// Read puts next PCM bytes into provided slice.
//
// The stream renders one beat at a time and serves the reads
// from that beat, so b can have any size.
// For the best performance, use slices that fit a whole beat
// (see StreamInfo.BytesPerBeat).
//
// When stream has no bytes to produce, io.EOF error is returned.
func (s *Stream) Read(b []byte) (int, error) {
	if !s.initialized {
		return 0, errNoSong
	}

	written := 0
	for len(b) > 0 {
		if len(s.pending) == 0 {
			if !s.nextBeat(s.block) {
				break
			}
			encodeFloats(s.encoded, s.block)
			s.pending = s.encoded
		}
		n := copy(b, s.pending)
		s.pending = s.pending[n:]
		b = b[n:]
		written += n
	}
	s.bytePos += written

	if written == 0 && len(b) != 0 {
		return 0, io.EOF
	}
	return written, nil
}

// ReadBeat renders the next beat into dst as interleaved stereo samples.
//
// dst should have a room for at least 2*StreamInfo.SamplesPerBeat floats;
// a smaller slice results in io.ErrShortBuffer.
// The number of written floats is returned.
//
// When the song is over (a non-looping stream reached the loop end),
// io.EOF is returned.
//
// ReadBeat should not be mixed with Read: the bytes
// pending for Read are discarded.
func (s *Stream) ReadBeat(dst []float32) (int, error) {
	if !s.initialized {
		return 0, errNoSong
	}
	n := s.song.samplesPerBeat * numOutputChannels
	if len(dst) < n {
		return 0, io.ErrShortBuffer
	}
	s.pending = nil
	if !s.nextBeat(dst[:n]) {
		return 0, io.EOF
	}
	s.bytePos += s.song.bytesPerBeat
	return n, nil
}

// Rewind prepares the stream to play the song right from the start.
// Doing rewind is relatively cheap.
func (s *Stream) Rewind() {
	if s.settings.eventHandler != nil {
		s.settings.eventHandler(StreamEvent{
			Kind:  EventSync,
			Time:  s.t,
			value: math.Float64bits(0),
		})
	}
	s.rewind()
}

func (s *Stream) rewind() {
	for i := range s.channels {
		ch := &s.channels[i]
		ch.Reset()
		ch.id = i
	}

	s.beat = 0
	s.lastBeat = -1
	s.beatsRendered = 0
	s.bytePos = 0
	s.t = 0
	s.pending = nil
}

// GetInfo returns stream-related info.
// See StreamInfo for more details.
func (s *Stream) GetInfo() StreamInfo {
	return StreamInfo{
		SamplesPerBeat: uint(s.song.samplesPerBeat),
		BytesPerBeat:   uint(s.song.bytesPerBeat),
		SampleRate:     uint(s.song.sampleRate),
		LoopStart:      uint(s.song.loopStart),
		LoopEnd:        uint(s.song.loopEnd),
		MemoryUsage:    songSize(&s.song),
	}
}

// Beat returns the most recently rendered beat number.
// It's -1 if nothing was rendered since the last rewind.
func (s *Stream) Beat() int {
	return s.lastBeat
}

// BeatsRendered returns the number of beats rendered since the last rewind.
// Unlike Beat(), it grows monotonically during the loop playback.
func (s *Stream) BeatsRendered() int {
	return s.beatsRendered
}

func (s *Stream) nextBeat(block []float32) bool {
	if s.beat == s.song.loopEnd {
		if !s.settings.loop {
			return false
		}
		s.wrap()
	}
	if s.stopWhenIdle && s.beatsRendered != 0 && !s.hasActiveChannels() {
		return false
	}

	clear(block)

	for j := range s.channels {
		ch := &s.channels[j]
		def := &s.song.channels[j]
		if e := ch.nextEvent(def, s.beat); e != nil {
			s.applyEvent(ch, def, e)
		}
		ch.render(block, s.song.samplesPerBeat)
	}

	s.lastBeat = s.beat
	s.beat++
	s.beatsRendered++
	s.t += s.song.secondsPerBeat
	return true
}

func (s *Stream) hasActiveChannels() bool {
	for i := range s.channels {
		if s.channels[i].IsActive() {
			return true
		}
	}
	return false
}

// wrap jumps back to the loop start.
// The sounding notes are not cut; they play until they end.
func (s *Stream) wrap() {
	s.beat = s.song.loopStart
	for i := range s.channels {
		s.channels[i].cursor = 0
	}

	if s.settings.eventHandler != nil {
		syncTime := float64(s.song.loopStart) * s.song.secondsPerBeat
		s.settings.eventHandler(StreamEvent{
			Kind:  EventSync,
			Time:  s.t,
			value: math.Float64bits(syncTime),
		})
	}
}

func (s *Stream) applyEvent(ch *streamChannel, def *channelDef, e *beatEvent) {
	if e.flags.Contains(eventSetsVolume) {
		ch.volume = float64(e.volume) * orgdb.MasterVolume
	}
	if e.flags.Contains(eventSetsPanning) {
		ch.pan = int(e.panning)
	}
	if !e.flags.Contains(eventSetsNote) {
		return
	}

	s.triggerNote(ch, def, e)

	if s.settings.eventHandler != nil {
		value := uint64(e.note) | uint64(def.wave&0xff)<<8 | (uint64(math.Float32bits(float32(ch.volume))) << 16)
		s.settings.eventHandler(StreamEvent{
			Kind:    EventNote,
			Channel: ch.id,
			Time:    s.t,
			value:   value,
		})
	}
}

func (s *Stream) triggerNote(ch *streamChannel, def *channelDef, e *beatEvent) {
	ch.phase = 0

	if def.drum {
		slot := def.wave % NumDrums
		ch.phaseInc = drumStep(e.note, s.song.sampleRate)
		ch.source = drumSource(slot, s.bank.Drum(slot))
		// A drum plays once, up to its end.
		ch.remain = sampleCount(float64(ch.source.Len()) / ch.phaseInc)
	} else {
		ch.phaseInc = noteFrequency(e.note, def.tuning) / s.song.sampleRate
		ch.source = waveSource(def.wave%orgdb.NumWaves, s.bank.waves.Wave(def.wave))
		if def.percussive {
			ch.remain = sampleCount(orgdb.PercussiveLength / ch.phaseInc)
		} else {
			ch.remain = int(e.length) * s.song.samplesPerBeat
		}
	}

	// A missing drum plays as silence.
	if ch.source.Len() == 0 {
		ch.remain = 0
	}
}

func encodeFloats(dst []byte, src []float32) {
	for i, v := range src {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
