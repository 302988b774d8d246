package organya

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestLoadWaveTable(t *testing.T) {
	data := make([]byte, WaveTableSize+10)
	for i := range data {
		data[i] = byte(i * 7)
	}
	r := bytes.NewReader(data)
	wt, err := LoadWaveTable(r)
	if err != nil {
		t.Fatal(err)
	}
	if r.Len() != 10 {
		t.Fatalf("unread bytes: have %d, want 10", r.Len())
	}

	for _, i := range []int{0, 1, 255, 256, 1000, WaveTableSize - 1} {
		wave := i / 256
		sample := i % 256
		if have := wt[wave][sample]; have != int8(data[i]) {
			t.Fatalf("wave %d sample %d: have %d, want %d", wave, sample, have, int8(data[i]))
		}
	}

	if wt.Wave(142) != &wt[42] {
		t.Fatalf("wave index is not wrapped")
	}
}

func TestLoadWaveTableShort(t *testing.T) {
	for _, size := range []int{0, 1, WaveTableSize - 1} {
		_, err := LoadWaveTable(bytes.NewReader(make([]byte, size)))
		var resErr *ResourceError
		if !errors.As(err, &resErr) {
			t.Fatalf("size %d: expected a resource error, got %v", size, err)
		}
		if resErr.Resource != "wavetable" {
			t.Fatalf("size %d: unexpected resource %q", size, resErr.Resource)
		}
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("size %d: expected unexpected EOF, got %v", size, err)
		}
	}
}
