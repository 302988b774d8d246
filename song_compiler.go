package organya

import (
	"fmt"
	"slices"

	"github.com/quasilyte/organya/internal/orgdb"
	"github.com/quasilyte/organya/orgfile"
)

// maxSamplesPerBeat limits the beat block size.
// It's ~5.8 minutes at 48000 Hz, way above any real tempo.
const maxSamplesPerBeat = 1 << 24

type songCompiler struct {
	result song
}

func compileSong(s *orgfile.Song, config songConfig) (song, error) {
	c := &songCompiler{}
	c.result = song{
		sampleRate: float64(config.sampleRate),
	}
	err := c.compile(s)
	return c.result, err
}

func (c *songCompiler) compile(s *orgfile.Song) error {
	if s.LoopStart > s.LoopEnd {
		return fmt.Errorf("loop start (%d) is after the loop end (%d)", s.LoopStart, s.LoopEnd)
	}
	c.result.loopStart = int(s.LoopStart)
	c.result.loopEnd = int(s.LoopEnd)

	samplesPerBeat, bytesPerBeat := calcSamplesPerBeat(c.result.sampleRate, s.BeatDuration)
	if samplesPerBeat <= 0 || samplesPerBeat > maxSamplesPerBeat {
		return &AllocationError{SamplesPerBeat: samplesPerBeat}
	}
	c.result.samplesPerBeat = samplesPerBeat
	c.result.bytesPerBeat = bytesPerBeat
	c.result.secondsPerBeat = float64(samplesPerBeat) / c.result.sampleRate

	for i := range s.Instruments {
		c.compileChannel(i, &s.Instruments[i])
	}

	return nil
}

func (c *songCompiler) compileChannel(i int, inst *orgfile.Instrument) {
	def := &c.result.channels[i]
	def.tuning = float64(inst.Tuning) / 1000
	def.wave = int(inst.Wave)
	def.percussive = inst.Percussive()
	def.drum = i >= orgdb.NumMelodicChannel

	if len(inst.Events) == 0 {
		return
	}

	events := make([]beatEvent, 0, len(inst.Events))
	for _, e := range inst.Events {
		events = append(events, compileEvent(e))
	}

	// Files are expected to store the events in order,
	// but the player must not depend on it.
	// A stable sort keeps the first of the same-beat events first.
	slices.SortStableFunc(events, func(a, b beatEvent) int {
		return a.beat - b.beat
	})
	events = slices.CompactFunc(events, func(a, b beatEvent) bool {
		return a.beat == b.beat
	})
	def.events = slices.Clip(events)
}

func compileEvent(e orgfile.Event) beatEvent {
	var flags eventFlags
	if e.Volume != orgfile.NoChange {
		flags |= eventSetsVolume
	}
	if e.Panning != orgfile.NoChange {
		flags |= eventSetsPanning
	}
	if e.Note != orgfile.NoChange {
		flags |= eventSetsNote
	}
	return beatEvent{
		beat:    int(e.Beat),
		note:    e.Note,
		length:  e.Length,
		volume:  e.Volume,
		panning: e.Panning,
		flags:   flags,
	}
}
