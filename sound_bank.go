package organya

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/quasilyte/organya/internal/orgdb"
	"github.com/quasilyte/organya/pxt"
)

// NumDrums is the number of percussion slots.
const NumDrums = orgdb.NumDrums

// SoundBank holds the sound sources shared by all streams:
// the melodic waveforms and the pre-rendered drum samples.
//
// A bank is immutable; it's safe to use a single bank from
// several streams running in different goroutines.
type SoundBank struct {
	waves *WaveTable
	drums [NumDrums][]int16
}

// SoundBankConfig configures the sound bank loading.
type SoundBankConfig struct {
	// Logger receives the loading diagnostics, like missing drums.
	//
	// A nil value discards the messages.
	Logger *log.Logger

	// PatchParser configures the drum patches decoding.
	PatchParser pxt.ParserConfig
}

// NewSoundBank creates a bank from the already prepared resources.
//
// A nil or empty drum slot plays as silence.
// The bank takes the ownership of the drum slices.
func NewSoundBank(waves *WaveTable, drums [NumDrums][]int16) *SoundBank {
	if waves == nil {
		waves = &WaveTable{}
	}
	return &SoundBank{
		waves: waves,
		drums: drums,
	}
}

// LoadSoundBank reads a wavetable and synthesizes all drums.
//
// Drum patches are looked up by their PixTone names (like "fx96.pxt")
// inside the patches file system.
// A patch that does not exist leaves its drum silent;
// this is logged, but it's not an error.
// Any other patch loading error is reported as a *ResourceError.
func LoadSoundBank(waveTable io.Reader, patches fs.FS, config SoundBankConfig) (*SoundBank, error) {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}

	waves, err := LoadWaveTable(waveTable)
	if err != nil {
		return nil, err
	}

	drums, err := loadDrums(patches, config)
	if err != nil {
		return nil, err
	}

	return NewSoundBank(waves, drums), nil
}

// RenderDrums synthesizes the drum samples from their patches.
// A nil patch produces an empty drum.
//
// Patches that can't be rendered (see pxt.Patch.Validate)
// are reported as a *ResourceError.
func RenderDrums(patches [NumDrums]*pxt.Patch) ([NumDrums][]int16, error) {
	var drums [NumDrums][]int16
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range patches {
		if p == nil {
			continue
		}
		g.Go(func() error {
			if err := p.Validate(); err != nil {
				return &ResourceError{Resource: fmt.Sprintf("drum %d", i), Err: err}
			}
			drums[i] = p.Render()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return drums, err
	}
	return drums, nil
}

func loadDrums(patches fs.FS, config SoundBankConfig) ([NumDrums][]int16, error) {
	var drums [NumDrums][]int16

	// Every drum is independent, so they're rendered concurrently.
	// Each goroutine writes to its own slot only.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for slot := range drums {
		filename, ok := orgdb.DrumPatch(slot)
		if !ok {
			continue
		}
		g.Go(func() error {
			p, err := loadPatch(patches, filename, config.PatchParser)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					config.Logger.Printf("drum %d: %s is missing, it will play as silence", slot, filename)
					return nil
				}
				return &ResourceError{Resource: filename, Err: err}
			}
			drums[slot] = p.Render()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return drums, err
	}

	return drums, nil
}

func loadPatch(patches fs.FS, filename string, config pxt.ParserConfig) (*pxt.Patch, error) {
	f, err := patches.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := pxt.NewParser(config).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse patch: %w", err)
	}
	return p, nil
}

// WaveTable returns the bank melodic waves.
func (b *SoundBank) WaveTable() *WaveTable {
	return b.waves
}

// Drum returns a pre-rendered drum by its slot index.
// The index wraps around; an empty slot results in an empty slice.
func (b *SoundBank) Drum(i int) []int16 {
	return b.drums[i%NumDrums]
}
