package pxt

import (
	"slices"
	"testing"
)

func TestSynthDisabled(t *testing.T) {
	c := Channel{
		Enabled: false,
		Length:  1000,
		Carrier: Wave{Waveform: WaveSine, Pitch: 1, Level: 32},
	}
	if buf := c.Synth(); len(buf) != 0 {
		t.Fatalf("disabled channel produced %d samples", len(buf))
	}
}

func TestSynthSquare(t *testing.T) {
	c := Channel{
		Enabled: true,
		Length:  256,
		Carrier: Wave{Waveform: WaveSquare, Pitch: 1, Level: 32},
		Envelope: Envelope{
			Initial: 64,
			Points:  [3]EnvelopePoint{{256, 64}, {256, 64}, {256, 64}},
		},
	}
	buf := c.Synth()
	if len(buf) != 256 {
		t.Fatalf("len: have %d, want 256", len(buf))
	}
	for i, v := range buf {
		want := int32(32)
		if i >= 128 {
			want = -32
		}
		if v != want {
			t.Fatalf("sample[%d]: have %d, want %d", i, v, want)
		}
	}
}

func TestSynthModulated(t *testing.T) {
	c := Channel{
		Enabled:   true,
		Length:    1000,
		Carrier:   Wave{Waveform: WaveSine, Pitch: 10, Level: 32, Offset: 0},
		Frequency: Wave{Waveform: WaveNoise, Pitch: 3.5, Level: 16, Offset: 7},
		Amplitude: Wave{Waveform: WaveTriangle, Pitch: 2, Level: 20, Offset: 100},
		Envelope: Envelope{
			Initial: 63,
			Points:  [3]EnvelopePoint{{40, 50}, {120, 20}, {250, 0}},
		},
	}

	buf := c.Synth()
	if len(buf) != c.Length {
		t.Fatalf("len: have %d, want %d", len(buf), c.Length)
	}

	// These values were produced by the reference implementation.
	tests := []struct {
		i    int
		want int32
	}{
		{0, 0},
		{1, 1},
		{17, 30},
		{100, 12},
		{333, -11},
		{500, 4},
		{777, 1},
		{999, 0},
	}
	for _, test := range tests {
		if buf[test.i] != test.want {
			t.Errorf("sample[%d]:\nhave: %d\nwant: %d", test.i, buf[test.i], test.want)
		}
	}
	sum := int32(0)
	for _, v := range buf {
		sum += v
	}
	if sum != 492 {
		t.Errorf("samples sum: have %d, want 492", sum)
	}

	if !slices.Equal(buf, c.Synth()) {
		t.Fatal("synthesis is not deterministic")
	}
}

func TestRenderMix(t *testing.T) {
	loud := Channel{
		Enabled: true,
		Length:  256,
		Carrier: Wave{Waveform: WaveSquare, Pitch: 1, Level: 8000},
		Envelope: Envelope{
			Initial: 256,
			Points:  [3]EnvelopePoint{{256, 256}, {256, 256}, {256, 256}},
		},
	}
	short := loud
	short.Length = 100

	var p Patch
	p.Channels[0] = loud
	p.Channels[1] = short
	p.Channels[2] = Channel{Enabled: false, Length: 5000}

	mix := p.Render()
	if len(mix) != 256 {
		t.Fatalf("mix len: have %d, want 256", len(mix))
	}
	// 32000+32000 wraps around in a 16-bit cell.
	if mix[0] != -1536 {
		t.Errorf("mix[0]: have %d, want -1536", mix[0])
	}
	if mix[100] != 32000 {
		t.Errorf("mix[100]: have %d, want 32000", mix[100])
	}
	if mix[200] != -32000 {
		t.Errorf("mix[200]: have %d, want -32000", mix[200])
	}
}

func TestRenderSilentPatch(t *testing.T) {
	var p Patch
	if mix := p.Render(); mix != nil {
		t.Fatalf("expected a nil mix, got %d samples", len(mix))
	}
}

func TestSynthWaveformWrap(t *testing.T) {
	base := Channel{
		Enabled:   true,
		Length:    300,
		Carrier:   Wave{Waveform: WaveSawUp, Pitch: 3, Level: 20},
		Frequency: Wave{Waveform: WaveTriangle, Pitch: 2, Level: 10},
		Amplitude: Wave{Waveform: WaveSine, Pitch: 1, Level: 5},
		Envelope: Envelope{
			Initial: 64,
			Points:  [3]EnvelopePoint{{100, 64}, {200, 32}, {256, 0}},
		},
	}
	want := base.Synth()

	wrapped := base
	wrapped.Carrier.Waveform += NumWaveforms
	wrapped.Frequency.Waveform += 2 * NumWaveforms
	wrapped.Amplitude.Waveform -= NumWaveforms
	have := wrapped.Synth()

	if len(have) != len(want) {
		t.Fatalf("len: have %d, want %d", len(have), len(want))
	}
	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("sample[%d]: have %d, want %d", i, have[i], want[i])
		}
	}
}

func TestPatchValidate(t *testing.T) {
	var p Patch
	if err := p.Validate(); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	p.Channels[1].Length = MaxLength
	if err := p.Validate(); err != nil {
		t.Fatalf("max length: %v", err)
	}
	p.Channels[3].Length = MaxLength + 1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected an error for a too long channel")
	}
	p.Channels[3].Length = -1
	if err := p.Validate(); err == nil {
		t.Fatalf("expected an error for a negative length")
	}
}
