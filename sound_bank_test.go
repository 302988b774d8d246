package organya

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/quasilyte/organya/pxt"
)

func formatTestPatch(values ...[]any) string {
	var b strings.Builder
	for _, channel := range values {
		for i, v := range channel {
			fmt.Fprintf(&b, "param%02d :%v\r\n", i, v)
		}
		b.WriteString("\r\n")
	}
	return b.String()
}

func testPatchChannel(enabled, length, waveform int, pitch float64) []any {
	return []any{
		enabled, length,
		waveform, pitch, 40, 0,
		5, 0.5, 3, 0,
		0, 1.0, 20, 0,
		63, 32, 63, 96, 32, 255, 0,
	}
}

func newTestPatches() fstest.MapFS {
	off := testPatchChannel(0, 0, 0, 0)
	return fstest.MapFS{
		"fx96.pxt": {Data: []byte(formatTestPatch(
			testPatchChannel(1, 3000, 0, 40), off, off, off))},
		"fx97.pxt": {Data: []byte(formatTestPatch(
			testPatchChannel(1, 2000, 5, 10), testPatchChannel(1, 500, 4, 100), off, off))},
		"fx9a.pxt": {Data: []byte(formatTestPatch(
			testPatchChannel(1, 100, 1, 1), off, off, off))},
	}
}

func TestLoadSoundBank(t *testing.T) {
	patches := newTestPatches()
	var logs bytes.Buffer
	bank, err := LoadSoundBank(bytes.NewReader(make([]byte, WaveTableSize)), patches, SoundBankConfig{
		Logger: log.New(&logs, "", 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Drums are rendered from their patches.
	for slot, filename := range map[int]string{0: "fx96.pxt", 2: "fx97.pxt", 4: "fx9a.pxt"} {
		f, err := patches.Open(filename)
		if err != nil {
			t.Fatal(err)
		}
		p, err := pxt.Parse(f)
		f.Close()
		if err != nil {
			t.Fatal(err)
		}
		want := p.Render()
		have := bank.Drum(slot)
		if len(have) != len(want) || len(have) == 0 {
			t.Fatalf("drum %d: have %d samples, want %d", slot, len(have), len(want))
		}
		for i := range want {
			if have[i] != want[i] {
				t.Fatalf("drum %d sample %d: have %d, want %d", slot, i, have[i], want[i])
			}
		}
	}

	// The slots without a patch file are silent, but that's logged.
	for _, slot := range []int{5, 6, 8} {
		if len(bank.Drum(slot)) != 0 {
			t.Fatalf("drum %d is expected to be empty", slot)
		}
	}
	for _, filename := range []string{"fx98.pxt", "fx99.pxt", "fx9b.pxt"} {
		if !strings.Contains(logs.String(), filename) {
			t.Fatalf("missing %s is not logged:\n%s", filename, logs.String())
		}
	}

	// Slots that have no drum at all are silent without a warning.
	for _, slot := range []int{1, 3, 7, 9, 10, 11} {
		if len(bank.Drum(slot)) != 0 {
			t.Fatalf("drum %d is expected to be empty", slot)
		}
	}
	if n := strings.Count(logs.String(), "\n"); n != 3 {
		t.Fatalf("log lines: have %d, want 3", n)
	}
}

func TestLoadSoundBankErrors(t *testing.T) {
	wavetable := func() *bytes.Reader {
		return bytes.NewReader(make([]byte, WaveTableSize))
	}

	// Not enough wavetable data.
	_, err := LoadSoundBank(bytes.NewReader(nil), newTestPatches(), SoundBankConfig{})
	var resErr *ResourceError
	if !errors.As(err, &resErr) || resErr.Resource != "wavetable" {
		t.Fatalf("expected a wavetable resource error, got %v", err)
	}

	// A broken patch is fatal.
	patches := newTestPatches()
	patches["fx97.pxt"] = &fstest.MapFile{Data: []byte(formatTestPatch(testPatchChannel(1, -5, 0, 1)))}
	_, err = LoadSoundBank(wavetable(), patches, SoundBankConfig{})
	if !errors.As(err, &resErr) || resErr.Resource != "fx97.pxt" {
		t.Fatalf("expected a fx97.pxt resource error, got %v", err)
	}
	var parseErr *pxt.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}

	// A channel too long to be rendered is rejected, not synthesized.
	huge := testPatchChannel(1, 0, 0, 1)
	huge[1] = "1e15"
	patches = newTestPatches()
	patches["fx96.pxt"] = &fstest.MapFile{Data: []byte(formatTestPatch(huge))}
	_, err = LoadSoundBank(wavetable(), patches, SoundBankConfig{})
	if !errors.As(err, &resErr) || resErr.Resource != "fx96.pxt" {
		t.Fatalf("expected a fx96.pxt resource error, got %v", err)
	}
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}

	// A truncated patch is only an error in strict mode.
	patches = newTestPatches()
	patches["fx96.pxt"] = &fstest.MapFile{Data: []byte("size :100\r\n")}
	if _, err := LoadSoundBank(wavetable(), patches, SoundBankConfig{}); err != nil {
		t.Fatalf("lenient mode: unexpected error: %v", err)
	}
	_, err = LoadSoundBank(wavetable(), patches, SoundBankConfig{
		PatchParser: pxt.ParserConfig{Strict: true},
	})
	if !errors.As(err, &resErr) || resErr.Resource != "fx96.pxt" {
		t.Fatalf("strict mode: expected a fx96.pxt resource error, got %v", err)
	}

	// Only the non-existing patches are tolerated.
	_, err = LoadSoundBank(wavetable(), brokenFS{}, SoundBankConfig{})
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("expected a permission error, got %v", err)
	}
}

type brokenFS struct{}

func (brokenFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func TestRenderDrums(t *testing.T) {
	var patches [NumDrums]*pxt.Patch
	patches[3] = &pxt.Patch{}
	patches[3].Channels[0] = pxt.Channel{
		Enabled: true,
		Length:  400,
		Carrier: pxt.Wave{Waveform: pxt.WaveSquare, Pitch: 4, Level: 30},
		Envelope: pxt.Envelope{
			Initial: 64,
			Points:  [3]pxt.EnvelopePoint{{Time: 64, Value: 64}, {Time: 128, Value: 64}, {Time: 256, Value: 64}},
		},
	}
	patches[7] = &pxt.Patch{}

	drums, err := RenderDrums(patches)
	if err != nil {
		t.Fatal(err)
	}
	want := patches[3].Render()
	if len(drums[3]) != len(want) || len(want) == 0 {
		t.Fatalf("drum 3: have %d samples, want %d", len(drums[3]), len(want))
	}
	for i := range want {
		if drums[3][i] != want[i] {
			t.Fatalf("drum 3 sample %d: have %d, want %d", i, drums[3][i], want[i])
		}
	}
	for i, d := range drums {
		if i != 3 && len(d) != 0 {
			t.Fatalf("drum %d is expected to be empty", i)
		}
	}

	bank := NewSoundBank(nil, drums)
	if len(bank.Drum(15)) != len(want) {
		t.Fatalf("drum index is not wrapped")
	}
	if bank.WaveTable() == nil {
		t.Fatalf("a nil wavetable is expected to be replaced")
	}
}

func TestRenderDrumsInvalid(t *testing.T) {
	var patches [NumDrums]*pxt.Patch
	patches[0] = &pxt.Patch{}
	patches[5] = &pxt.Patch{}
	patches[5].Channels[2] = pxt.Channel{
		Enabled: true,
		Length:  pxt.MaxLength + 1,
		Carrier: pxt.Wave{Waveform: pxt.WaveSine, Pitch: 1, Level: 30},
	}

	_, err := RenderDrums(patches)
	var resErr *ResourceError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected a resource error, got %v", err)
	}
	if resErr.Resource != "drum 5" {
		t.Fatalf("unexpected resource %q", resErr.Resource)
	}

	patches[5].Channels[2].Length = -1
	if _, err := RenderDrums(patches); !errors.As(err, &resErr) {
		t.Fatalf("negative length: expected a resource error, got %v", err)
	}
}
