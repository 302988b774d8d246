package organya

type streamChannel struct {
	id int

	// Oscillator state.
	phase    float64
	phaseInc float64
	source   sampleSource

	volume float64
	pan    int

	// remain is a number of output samples left to play.
	remain int

	// cursor is the index of the first event that was not consumed yet.
	// It only moves forward within a loop pass.
	cursor int
}

func (ch *streamChannel) Reset() {
	*ch = streamChannel{id: ch.id}
}

func (ch *streamChannel) IsActive() bool {
	return ch.remain > 0
}

// nextEvent returns the channel event for the beat, if any.
func (ch *streamChannel) nextEvent(def *channelDef, beat int) *beatEvent {
	events := def.events
	for ch.cursor < len(events) && events[ch.cursor].beat < beat {
		ch.cursor++
	}
	if ch.cursor < len(events) && events[ch.cursor].beat == beat {
		e := &events[ch.cursor]
		ch.cursor++
		return e
	}
	return nil
}

type sourceKind uint8

const (
	sourceNone sourceKind = iota
	sourceWave
	sourceDrum
)

// sampleSource is a buffer the channel oscillator reads from:
// either a melodic waveform or a pre-rendered drum.
type sampleSource struct {
	kind  sourceKind
	index int

	wave *Waveform
	drum []int16
}

func waveSource(index int, wave *Waveform) sampleSource {
	return sampleSource{kind: sourceWave, index: index, wave: wave}
}

func drumSource(index int, drum []int16) sampleSource {
	return sampleSource{kind: sourceDrum, index: index, drum: drum}
}

func (src *sampleSource) Len() int {
	switch src.kind {
	case sourceWave:
		return len(src.wave)
	case sourceDrum:
		return len(src.drum)
	default:
		return 0
	}
}

// At returns the i-th source sample; i must be in [0, Len()).
func (src *sampleSource) At(i int) float64 {
	if src.kind == sourceWave {
		return float64(src.wave[i])
	}
	return float64(src.drum[i])
}
