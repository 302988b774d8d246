package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/pflag"
	"github.com/sqweek/dialog"

	"github.com/quasilyte/organya"
	"github.com/quasilyte/organya/orgfile"
	"github.com/quasilyte/organya/pxt"
)

// This CLI tool plays the specified Organya song
// or renders it into a WAV file.
//
//	orgplay --data ./data song.org
//	orgplay --out song.wav --beats 512 song.org
//	orgplay --window song.org

type options struct {
	wavetable  string
	data       string
	sampleRate uint
	out        string
	beats      int
	window     bool
	dump       bool
	noLoop     bool
	strict     bool
}

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "orgplay: ", log.Ltime)

	var opts options
	pflag.StringVar(&opts.data, "data", "data", "a directory with the drum patches (fxNN.pxt)")
	pflag.StringVar(&opts.wavetable, "wavetable", "", "a wavetable file path (default <data>/wavetable.dat)")
	pflag.UintVarP(&opts.sampleRate, "rate", "r", 48000, "output sample rate")
	pflag.StringVarP(&opts.out, "out", "o", "", "render the song into a WAV file instead of playing it")
	pflag.IntVarP(&opts.beats, "beats", "b", 0, "the number of beats to render with --out (default is the loop end)")
	pflag.BoolVarP(&opts.window, "window", "w", false, "play the song in a window")
	pflag.BoolVar(&opts.dump, "dump", false, "print the decoded song")
	pflag.BoolVar(&opts.noLoop, "no-loop", false, "stop at the loop end")
	pflag.BoolVar(&opts.strict, "strict", false, "treat truncated drum patches as errors")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: orgplay [flags] path/to/song.org\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if opts.wavetable == "" {
		opts.wavetable = filepath.Join(opts.data, "wavetable.dat")
	}

	filename, err := choosePath(pflag.Args())
	if err != nil {
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Printf("no song selected")
			os.Exit(1)
		}
		logger.Fatalf("choose song: %v", err)
	}

	song, err := loadSong(filename)
	if err != nil {
		logger.Fatal(err)
	}
	if opts.dump {
		spew.Dump(song)
	}

	bank, err := loadBank(opts)
	if err != nil {
		logger.Fatal(err)
	}

	stream := organya.NewStream()
	stream.SetLooping(!opts.noLoop)
	err = stream.LoadSong(song, bank, organya.LoadSongConfig{
		SampleRate: opts.sampleRate,
	})
	if err != nil {
		logger.Fatalf("load song: %v", err)
	}

	switch {
	case opts.out != "":
		beats := opts.beats
		if beats == 0 {
			beats = int(song.LoopEnd)
		}
		err = renderWAV(opts.out, stream, beats)
	case opts.window:
		err = playWindow(filename, stream)
	default:
		err = playTerminal(stream)
	}
	if err != nil {
		logger.Fatal(err)
	}
}

func loadSong(filename string) (*orgfile.Song, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read song: %w", err)
	}
	song, err := orgfile.NewParser(orgfile.ParserConfig{}).ParseFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return song, nil
}

func loadBank(opts options) (*organya.SoundBank, error) {
	f, err := os.Open(opts.wavetable)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return organya.LoadSoundBank(f, os.DirFS(opts.data), organya.SoundBankConfig{
		Logger:      logger,
		PatchParser: pxt.ParserConfig{Strict: opts.strict},
	})
}

// choosePath returns the song path either from the command-line args
// or from an interactive file dialog.
func choosePath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	path, err := dialog.
		File().
		Title("Open Organya song").
		Filter("Organya songs (*.org)", "org").
		SetStartDir(cwd).
		Load()
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", dialog.ErrCancelled
	}
	if strings.ToLower(filepath.Ext(path)) != ".org" {
		return "", fmt.Errorf("%s: not an .org file", path)
	}
	return path, nil
}
