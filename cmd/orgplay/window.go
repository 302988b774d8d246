package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/quasilyte/organya"
)

// playWindow plays the stream using Ebitengine audio player.
// SPACE toggles the pause, R restarts the song.
func playWindow(filename string, stream *organya.Stream) error {
	info := stream.GetInfo()

	// You can have multiple players, but only one audio context.
	audioContext := audio.NewContext(int(info.SampleRate))
	r := newStreamReader(stream)
	player, err := audioContext.NewPlayerF32(r)
	if err != nil {
		return err
	}

	g := &game{
		player:   player,
		reader:   r,
		info:     info,
		filename: filename,
		paused:   true,
	}

	ebiten.SetWindowTitle("orgplay")
	ebiten.SetWindowSize(480, 120)
	return ebiten.RunGame(g)
}

type game struct {
	player *audio.Player
	reader *streamReader
	info   organya.StreamInfo

	filename string
	paused   bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		if g.player.IsPlaying() {
			g.player.Pause()
		} else {
			g.player.Play()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		// The player seeks the stream to its start.
		if err := g.player.Rewind(); err != nil {
			return err
		}
	}

	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.paused {
		ebitenutil.DebugPrint(screen, "Paused... press SPACE")
		return
	}
	status := fmt.Sprintf("Playing %s...\nbeat %d (loop %d-%d)",
		g.filename, g.reader.Beat(), g.info.LoopStart, g.info.LoopEnd)
	if g.reader.done.Load() {
		status = fmt.Sprintf("Finished %s", g.filename)
	}
	ebitenutil.DebugPrint(screen, status)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return 240, 60
}
