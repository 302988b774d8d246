package orgfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// HeaderSize is a size of the fixed song header, instrument headers included.
const HeaderSize = 6 + 2 + 1 + 1 + 4 + 4 + NumInstruments*6

// Encode writes the song in the Organya binary format.
//
// For a song returned by Parse, the output is identical to the parsed bytes.
func Encode(w io.Writer, s *Song) error {
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Song) MarshalBinary() ([]byte, error) {
	if s.BeatDuration < 0 || s.BeatDuration > math.MaxUint16 {
		return nil, fmt.Errorf("beat duration %d doesn't fit 16 bits", s.BeatDuration)
	}

	size := HeaderSize
	for i := range s.Instruments {
		n := len(s.Instruments[i].Events)
		if n > math.MaxUint16 {
			return nil, fmt.Errorf("instrument[%d]: too many events (%d)", i, n)
		}
		size += n * (4 + 4)
	}

	le := binary.LittleEndian
	b := make([]byte, 0, size)
	b = append(b, s.Signature[:]...)
	b = le.AppendUint16(b, uint16(s.BeatDuration))
	b = append(b, s.StepsPerBar, s.BeatsPerStep)
	b = le.AppendUint32(b, s.LoopStart)
	b = le.AppendUint32(b, s.LoopEnd)

	for i := range s.Instruments {
		inst := &s.Instruments[i]
		b = le.AppendUint16(b, inst.Tuning)
		b = append(b, inst.Wave, inst.PercussiveFlag)
		b = le.AppendUint16(b, uint16(len(inst.Events)))
	}

	for i := range s.Instruments {
		events := s.Instruments[i].Events
		for _, e := range events {
			b = le.AppendUint32(b, e.Beat)
		}
		for _, e := range events {
			b = append(b, e.Note)
		}
		for _, e := range events {
			b = append(b, e.Length)
		}
		for _, e := range events {
			b = append(b, e.Volume)
		}
		for _, e := range events {
			b = append(b, e.Panning)
		}
	}

	return b, nil
}
