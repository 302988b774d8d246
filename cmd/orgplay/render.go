package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/quasilyte/organya"
)

// renderWAV writes up to numBeats beats of the stream as a 16-bit stereo WAV.
// A non-looping stream may end earlier.
func renderWAV(filename string, stream *organya.Stream, numBeats int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	info := stream.GetInfo()
	enc := wav.NewEncoder(f, int(info.SampleRate), 16, 2, 1)

	block := make([]float32, info.SamplesPerBeat*2)
	intBuf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  int(info.SampleRate),
		},
		Data:           make([]int, len(block)),
		SourceBitDepth: 16,
	}

	progress := newProgress(os.Stderr)
	for beat := 0; beat < numBeats; beat++ {
		n, err := stream.ReadBeat(block)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		intBuf.Data = intBuf.Data[:n]
		for i, v := range block[:n] {
			intBuf.Data[i] = toInt16(v)
		}
		if err := enc.Write(intBuf); err != nil {
			return fmt.Errorf("write %s: %w", filename, err)
		}
		progress.Update(fmt.Sprintf("beat %d/%d", beat+1, numBeats))
	}
	progress.Done()

	if err := enc.Close(); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return f.Close()
}

func toInt16(v float32) int {
	x := math.Round(float64(v) * 32767)
	return int(max(-32768, min(32767, x)))
}
