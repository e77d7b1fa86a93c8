package plane

import (
	"bytes"
	"image"
	"math"
	"testing"

	"golang.org/x/image/webp"
)

func TestDimensions(t *testing.T) {
	cases := []struct {
		n, width, height int
	}{
		{1, 4, 1},
		{10, 4, 3},
		{16, 4, 4},
		{17, 8, 3},
		{100, 12, 9},
		{10000, 100, 100},
	}
	for _, tc := range cases {
		w, h, err := Dimensions(tc.n)
		if err != nil {
			t.Fatalf("Dimensions(%d): %v", tc.n, err)
		}
		if w != tc.width || h != tc.height {
			t.Errorf("Dimensions(%d) = %dx%d, want %dx%d", tc.n, w, h, tc.width, tc.height)
		}
	}
}

func TestDimensionsProperties(t *testing.T) {
	for n := 1; n < 5000; n += 37 {
		w, h, err := Dimensions(n)
		if err != nil {
			t.Fatalf("Dimensions(%d): %v", n, err)
		}
		if w*h < n {
			t.Fatalf("Dimensions(%d) = %dx%d holds %d pixels", n, w, h, w*h)
		}
		if w%4 != 0 {
			t.Fatalf("Dimensions(%d) width %d not 4-aligned", n, w)
		}
		if float64(w) < math.Sqrt(float64(n)) {
			t.Fatalf("Dimensions(%d) width %d below sqrt(n)", n, w)
		}
	}
}

func TestDimensionsRejectsEmpty(t *testing.T) {
	if _, _, err := Dimensions(0); err == nil {
		t.Error("expected error for n = 0")
	}
	if _, _, err := Dimensions(-5); err == nil {
		t.Error("expected error for negative n")
	}
}

func TestPackChannels(t *testing.T) {
	n := 10
	w, h, _ := Dimensions(n)

	for _, channels := range []int{1, 3, 4} {
		data := make([]uint8, channels*n)
		for i := range data {
			data[i] = uint8(i + 1)
		}
		img, err := Pack(data, channels, n, w, h)
		if err != nil {
			t.Fatalf("Pack channels=%d: %v", channels, err)
		}

		// First pixel carries the first entry's bytes.
		px := img.Pix[:4]
		switch channels {
		case 1:
			if px[0] != 1 || px[1] != 1 || px[2] != 1 || px[3] != 0xff {
				t.Errorf("1-channel pixel = %v", px)
			}
		case 3:
			if px[0] != 1 || px[1] != 2 || px[2] != 3 || px[3] != 0xff {
				t.Errorf("3-channel pixel = %v", px)
			}
		case 4:
			if px[0] != 1 || px[1] != 2 || px[2] != 3 || px[3] != 4 {
				t.Errorf("4-channel pixel = %v", px)
			}
		}
	}
}

func TestPackPaddingIsZero(t *testing.T) {
	n := 10
	w, h, _ := Dimensions(n)
	data := bytes.Repeat([]byte{0xff}, 4*n)

	img, err := Pack(data, 4, n, w, h)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}

	for i := n; i < w*h; i++ {
		px := img.Pix[4*i : 4*i+4]
		for c, v := range px {
			if v != 0 {
				t.Fatalf("padding pixel %d channel %d = %d, want 0", i, c, v)
			}
		}
	}
}

func TestPackValidation(t *testing.T) {
	if _, err := Pack(make([]uint8, 5), 2, 10, 4, 3); err == nil {
		t.Error("expected error for 2 channels")
	}
	if _, err := Pack(make([]uint8, 5), 3, 10, 4, 3); err == nil {
		t.Error("expected error for short data")
	}
	if _, err := Pack(make([]uint8, 30), 3, 10, 2, 2); err == nil {
		t.Error("expected error for undersized grid")
	}
}

func TestEncodeWebPLossless(t *testing.T) {
	n := 64
	w, h, _ := Dimensions(n)
	data := make([]uint8, 4*n)
	for i := range data {
		data[i] = uint8((i * 31) % 256)
	}

	img, err := Pack(data, 4, n, w, h)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	encoded, err := EncodeWebP(img)
	if err != nil {
		t.Fatalf("EncodeWebP: %v", err)
	}

	decoded, err := webp.Decode(bytes.NewReader(encoded))
	if err != nil {
		t.Fatalf("webp.Decode: %v", err)
	}

	bounds := decoded.Bounds()
	if bounds.Dx() != w || bounds.Dy() != h {
		t.Fatalf("decoded %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), w, h)
	}

	// Compare raw non-premultiplied channels; At().RGBA() would
	// premultiply by alpha.
	nrgba, ok := decoded.(*image.NRGBA)
	if !ok {
		t.Fatalf("decoded image is %T, want *image.NRGBA", decoded)
	}
	for i := 0; i < n; i++ {
		x, y := i%w, i/w
		off := nrgba.PixOffset(x, y)
		got := [4]uint8{nrgba.Pix[off], nrgba.Pix[off+1], nrgba.Pix[off+2], nrgba.Pix[off+3]}
		want := [4]uint8{data[4*i], data[4*i+1], data[4*i+2], data[4*i+3]}
		if got != want {
			t.Fatalf("pixel %d = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeProducesWebP(t *testing.T) {
	n := 25
	w, h, _ := Dimensions(n)
	data := make([]uint8, 3*n)
	for i := range data {
		data[i] = uint8(i * 7)
	}

	out, err := Encode(data, 3, n, w, h)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(out) < 12 || string(out[:4]) != "RIFF" || string(out[8:12]) != "WEBP" {
		t.Fatalf("output is not a WebP container (%d bytes)", len(out))
	}
}
