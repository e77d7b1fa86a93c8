// Package plane reshapes quantized per-Gaussian byte arrays into
// rectangular images and serializes them as lossless WebP, the alpha-capable
// format the archive's consumers decode in the browser.
package plane

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/HugoSmits86/nativewebp"
)

// Dimensions picks the pixel grid for n Gaussians: the smallest multiple of
// 4 at least sqrt(n) as width, and the matching height. Near-square,
// 4-aligned dimensions keep the planes friendly to texture hardware; a
// literal n x 1 strip would not be.
func Dimensions(n int) (width, height int, err error) {
	if n <= 0 {
		return 0, 0, fmt.Errorf("plane: cannot size a plane for %d gaussians", n)
	}
	width = int(math.Ceil(math.Sqrt(float64(n))/4)) * 4
	height = (n + width - 1) / width
	return width, height, nil
}

// Pack lays a per-Gaussian byte array with 1, 3, or 4 channels onto a
// width x height NRGBA grid. Cells beyond n are synthetic padding and stay
// fully zero; decoders drop them using the true count from the metadata.
func Pack(data []uint8, channels, n, width, height int) (*image.NRGBA, error) {
	switch channels {
	case 1, 3, 4:
	default:
		return nil, fmt.Errorf("plane: unsupported channel count %d", channels)
	}
	if len(data) != channels*n {
		return nil, fmt.Errorf("plane: data length %d, want %d", len(data), channels*n)
	}
	if width*height < n {
		return nil, fmt.Errorf("plane: %dx%d grid holds fewer than %d entries", width, height, n)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < n; i++ {
		px := img.Pix[4*i : 4*i+4]
		switch channels {
		case 1:
			v := data[i]
			px[0], px[1], px[2], px[3] = v, v, v, 0xff
		case 3:
			px[0], px[1], px[2], px[3] = data[3*i], data[3*i+1], data[3*i+2], 0xff
		case 4:
			copy(px, data[4*i:4*i+4])
		}
	}
	return img, nil
}

// EncodeWebP serializes an image as lossless WebP.
func EncodeWebP(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, img, nil); err != nil {
		return nil, fmt.Errorf("plane: webp encode: %w", err)
	}
	return buf.Bytes(), nil
}

// Encode packs a quantized attribute array and returns the encoded WebP
// bytes for a width x height plane.
func Encode(data []uint8, channels, n, width, height int) ([]byte, error) {
	img, err := Pack(data, channels, n, width, height)
	if err != nil {
		return nil, err
	}
	return EncodeWebP(img)
}
