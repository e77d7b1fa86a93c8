package quantize

import (
	"math"
	"math/rand"
	"testing"
)

func TestSRGBRoundTrip(t *testing.T) {
	for v := float32(0); v <= 1; v += 0.01 {
		got := SRGBToLinear(LinearToSRGB(v))
		if math.Abs(float64(got-v)) > 1e-5 {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}

func TestSRGBClamps(t *testing.T) {
	if LinearToSRGB(-1) != 0 {
		t.Error("negative input should clamp to 0")
	}
	if LinearToSRGB(2) != 1 {
		t.Error("input > 1 should clamp to 1")
	}
}

func TestSH0RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	colors := make([]float32, 300)
	for i := range colors {
		colors[i] = rng.Float32()
	}

	back := ColorsFromSH0(SH0FromColors(colors))
	for i, v := range colors {
		if math.Abs(float64(back[i]-v)) > 1e-4 {
			t.Fatalf("color[%d] = %v round-tripped to %v", i, v, back[i])
		}
	}
}

func TestSH0Centering(t *testing.T) {
	// Middle gray in display space maps to a zero DC coefficient.
	gray := SRGBToLinear(0.5)
	sh0 := SH0FromColors([]float32{gray})
	if math.Abs(float64(sh0[0])) > 1e-5 {
		t.Errorf("gray DC coefficient = %v, want 0", sh0[0])
	}
}

func TestOpacityQuantization(t *testing.T) {
	in := []float32{0, 0.25, 0.5, 1, -0.5, 1.5}
	codes := EncodeOpacities(in)

	want := []uint8{0, 64, 128, 255, 0, 255}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("opacity %v -> %d, want %d", in[i], codes[i], want[i])
		}
	}

	back := DecodeOpacities(codes)
	for i := 0; i < 4; i++ {
		if math.Abs(float64(back[i]-in[i])) > 1.0/255+1e-6 {
			t.Errorf("opacity %v decoded as %v", in[i], back[i])
		}
	}
}

func TestLogScalesFloor(t *testing.T) {
	out := LogScales([]float32{0, 1e-20, 1, math.E})
	if math.IsInf(float64(out[0]), -1) || math.IsNaN(float64(out[0])) {
		t.Fatalf("zero scale produced %v", out[0])
	}
	if out[0] != out[1] {
		t.Errorf("sub-floor scales should clamp equally: %v vs %v", out[0], out[1])
	}
	if math.Abs(float64(out[2])) > 1e-6 {
		t.Errorf("log(1) = %v, want 0", out[2])
	}
	if math.Abs(float64(out[3])-1) > 1e-6 {
		t.Errorf("log(e) = %v, want 1", out[3])
	}
}

func TestExpScalesInvertsLog(t *testing.T) {
	scales := []float32{0.001, 0.5, 2, 100}
	back := ExpScales(LogScales(scales))
	for i, v := range scales {
		if math.Abs(float64(back[i]-v)) > 1e-3*float64(v) {
			t.Errorf("scale %v round-tripped to %v", v, back[i])
		}
	}
}
