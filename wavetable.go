package organya

import (
	"io"

	"github.com/quasilyte/organya/internal/orgdb"
)

// Waveform is a single cycle of a melodic instrument wave.
type Waveform [orgdb.WaveSize]int8

// WaveTable holds all melodic instrument waves.
// It's read-only after it's loaded.
type WaveTable [orgdb.NumWaves]Waveform

// WaveTableSize is the number of bytes LoadWaveTable consumes.
const WaveTableSize = orgdb.NumWaves * orgdb.WaveSize

// LoadWaveTable reads 100 signed 8-bit waveforms, 256 samples each.
//
// Any bytes after the first WaveTableSize are not consumed.
// A short input results in a *ResourceError.
func LoadWaveTable(r io.Reader) (*WaveTable, error) {
	var data [WaveTableSize]byte
	if _, err := io.ReadFull(r, data[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, &ResourceError{Resource: "wavetable", Err: err}
	}

	wt := &WaveTable{}
	for i := range wt {
		wave := &wt[i]
		offset := i * orgdb.WaveSize
		for j := range wave {
			wave[j] = int8(data[offset+j])
		}
	}
	return wt, nil
}

// Wave returns a waveform by its instrument wave number.
// The number wraps around, so any value is valid.
func (wt *WaveTable) Wave(i int) *Waveform {
	return &wt[i%orgdb.NumWaves]
}
