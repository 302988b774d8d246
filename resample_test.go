package organya

import (
	"math"
	"testing"
)

func TestLanczos(t *testing.T) {
	if v := lanczos(0); v != 1 {
		t.Fatalf("lanczos(0): have %v, want 1", v)
	}

	for _, d := range []float64{2.001, 2.5, 3, 100, -2.001, -3} {
		if v := lanczos(d); v != 0 {
			t.Fatalf("lanczos(%v): have %v, want 0", d, v)
		}
	}

	for _, d := range []float64{0.1, 0.5, 0.75, 1.3, 1.9} {
		if lanczos(d) != lanczos(-d) {
			t.Fatalf("lanczos(%v) is not symmetric", d)
		}
	}

	// The kernel crosses zero at integer distances.
	for _, d := range []float64{1, 2, -1, -2} {
		if v := lanczos(d); math.Abs(v) > 1e-7 {
			t.Fatalf("lanczos(%v): have %v, want ~0", d, v)
		}
	}
}

func TestResampleEmpty(t *testing.T) {
	var src sampleSource
	if v := resample(&src, 10.5, 1); v != 0 {
		t.Fatalf("have %v, want 0", v)
	}
	src = drumSource(0, nil)
	if v := resample(&src, 0, 3); v != 0 {
		t.Fatalf("have %v, want 0", v)
	}
}

func TestResampleConstant(t *testing.T) {
	var w Waveform
	for i := range w {
		w[i] = 10
	}
	src := waveSource(0, &w)

	// The kernel is normalized, so a constant signal
	// keeps its level for any position and step.
	positions := []float64{0, 0.25, 1.5, 100.7, 255.9, 300}
	steps := []float64{0.01, 0.5, 1, 2.75, 17}
	for _, pos := range positions {
		for _, step := range steps {
			v := resample(&src, pos, step)
			if math.Abs(v-10) > 1e-9 {
				t.Fatalf("resample(pos=%v, step=%v): have %v, want 10", pos, step, v)
			}
		}
	}
}

func TestResampleSampleCenters(t *testing.T) {
	var w Waveform
	for i := range w {
		w[i] = int8(i/2 - 64)
	}
	src := waveSource(0, &w)

	tests := []struct {
		pos  float64
		want float64
	}{
		{2.5, float64(w[2])},
		{60.5, float64(w[60])},
		{200.5, float64(w[200])},
		// Past the end, the source wraps around.
		{256 + 30.5, float64(w[30])},
		{512 + 100.5, float64(w[100])},
	}

	for _, test := range tests {
		v := resample(&src, test.pos, 1)
		if math.Abs(v-test.want) > 1e-5 {
			t.Fatalf("resample(pos=%v): have %v, want %v", test.pos, v, test.want)
		}
	}
}

func TestResampleNegativeClamp(t *testing.T) {
	drum := []int16{500, 0, 0, 0, 0, 0, 0, 0}
	src := drumSource(0, drum)

	// Every negative position reads the first sample.
	v := resample(&src, 0, 1)
	want := 0.0
	density := 0.0
	for m := -2; m < 2; m++ {
		factor := lanczos(float64(m) + 0.5)
		density += factor
		if m <= 0 {
			want += 500 * factor
		}
	}
	want /= density
	if math.Abs(v-want) > 1e-9 {
		t.Fatalf("have %v, want %v", v, want)
	}
}
