package quantize

import "math"

// Range is the affine map from a transformed float domain to an integer
// code domain for one axis.
type Range struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// width returns the span of the range. A degenerate range (all inputs
// identical on the axis) is forced to 1 so the affine map stays defined;
// every value then lands on the minimum code.
func (r Range) width() float32 {
	if r.Max == r.Min {
		return 1
	}
	return r.Max - r.Min
}

// SignedLog is the position transform sign(x)*ln(1+|x|). It keeps
// resolution near the origin while still covering distant geometry.
func SignedLog(x float32) float32 {
	return float32(math.Copysign(math.Log1p(math.Abs(float64(x))), float64(x)))
}

// InvSignedLog inverts SignedLog.
func InvSignedLog(y float32) float32 {
	return float32(math.Copysign(math.Expm1(math.Abs(float64(y))), float64(y)))
}

// QuantizedMeans holds the 16-bit position planes, split into parallel
// upper- and lower-byte triples, plus the per-axis ranges needed to decode.
type QuantizedMeans struct {
	Lower  []uint8 // 3 bytes per Gaussian, low byte of each axis code
	Upper  []uint8 // 3 bytes per Gaussian, high byte of each axis code
	Ranges [3]Range
}

// EncodeMeans signed-log transforms positions, computes per-axis ranges
// over the transformed values, and quantizes each coordinate to 16 bits.
func EncodeMeans(means []float32) *QuantizedMeans {
	n := len(means) / 3

	transformed := make([]float32, len(means))
	for i, v := range means {
		transformed[i] = SignedLog(v)
	}

	var ranges [3]Range
	for a := 0; a < 3; a++ {
		ranges[a] = Range{Min: transformed[a], Max: transformed[a]}
		for i := 1; i < n; i++ {
			v := transformed[3*i+a]
			if v < ranges[a].Min {
				ranges[a].Min = v
			}
			if v > ranges[a].Max {
				ranges[a].Max = v
			}
		}
	}

	q := &QuantizedMeans{
		Lower:  make([]uint8, len(means)),
		Upper:  make([]uint8, len(means)),
		Ranges: ranges,
	}
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			r := ranges[a]
			norm := (transformed[3*i+a] - r.Min) / r.width()
			code := int(math.Round(float64(norm) * 65535))
			if code < 0 {
				code = 0
			}
			if code > 65535 {
				code = 65535
			}
			q.Lower[3*i+a] = uint8(code & 0xff)
			q.Upper[3*i+a] = uint8(code >> 8)
		}
	}
	return q
}

// DecodeMeans reconstructs positions from the split byte planes and the
// recorded ranges. The worst-case absolute error per transformed axis is
// width/65535, matching the documented format guarantee.
func DecodeMeans(lower, upper []uint8, ranges [3]Range) []float32 {
	out := make([]float32, len(lower))
	for i := range lower {
		r := ranges[i%3]
		code := uint16(lower[i]) | uint16(upper[i])<<8
		t := r.Min + float32(code)/65535*r.width()
		out[i] = InvSignedLog(t)
	}
	return out
}
