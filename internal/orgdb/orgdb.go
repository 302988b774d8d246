package orgdb

import (
	"fmt"
)

const (
	NumChannels       = 16
	NumMelodicChannel = 8

	NumWaves = 100
	WaveSize = 256

	NumDrums = 12
)

const (
	// MasterVolume scales the event volume byte into a gain.
	MasterVolume = 4e-6

	// NoteBase makes note 45 with the default tuning (1000)
	// sound at 440 Hz with a 256-sample wave cycle:
	// 12*log2(256*440) - (4*12-3-1).
	NoteBase = 155.376

	// DrumRate is a linear pitch scale of the percussion notes.
	DrumRate = 22050 / 32.5

	// PercussiveLength is a fixed note length (in wave samples)
	// for instruments with a percussive flag.
	PercussiveLength = 1024

	// PanCenter is a center of the [0, 12] pan range.
	PanCenter = 6
)

// drumPatches maps a drum slot to its PXT sound effect ID.
// A zero ID marks a slot that has no drum.
var drumPatches = [NumDrums]int{
	0x96, 0, 0x97, 0,
	0x9a, 0x98, 0x99, 0,
	0x9b, 0, 0, 0,
}

// DrumPatch returns the patch file name for the drum slot.
// ok is false if that slot is empty.
func DrumPatch(slot int) (filename string, ok bool) {
	if slot < 0 || slot >= NumDrums {
		return "", false
	}
	id := drumPatches[slot]
	if id == 0 {
		return "", false
	}
	return fmt.Sprintf("fx%02x.pxt", id), true
}
