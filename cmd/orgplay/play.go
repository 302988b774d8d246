package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/quasilyte/organya"
)

// streamReader lets the UI observe the playback position
// while the audio backend reads the stream from its own goroutine.
type streamReader struct {
	stream *organya.Stream
	beat   atomic.Int64
	done   atomic.Bool
}

func newStreamReader(stream *organya.Stream) *streamReader {
	r := &streamReader{stream: stream}
	r.beat.Store(-1)
	return r
}

func (r *streamReader) Read(b []byte) (int, error) {
	n, err := r.stream.Read(b)
	r.beat.Store(int64(r.stream.Beat()))
	if err != nil {
		r.done.Store(true)
	}
	return n, err
}

func (r *streamReader) Seek(offset int64, whence int) (int64, error) {
	pos, err := r.stream.Seek(offset, whence)
	if err == nil {
		r.beat.Store(int64(r.stream.Beat()))
		r.done.Store(false)
	}
	return pos, err
}

func (r *streamReader) Beat() int {
	return int(r.beat.Load())
}

// playTerminal plays the stream through the default audio device
// until it ends or the process is interrupted.
func playTerminal(stream *organya.Stream) error {
	info := stream.GetInfo()
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(info.SampleRate),
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("create audio context: %w", err)
	}
	<-ready

	r := newStreamReader(stream)
	player := ctx.NewPlayer(r)
	defer player.Close()
	player.Play()

	interrupt, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	progress := newProgress(os.Stderr)
	defer progress.Done()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-interrupt.Done():
			return nil
		case <-ticker.C:
		}
		progress.Update(fmt.Sprintf("beat %d (loop %d-%d)", r.Beat(), info.LoopStart, info.LoopEnd))
		if r.done.Load() && !player.IsPlaying() {
			return player.Err()
		}
	}
}
