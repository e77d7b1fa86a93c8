package quantize

import "math"

// sh0Norm is the zeroth spherical-harmonic basis constant 1/(2*sqrt(pi)).
const sh0Norm = 0.28209479177387814

// LinearToSRGB gamma-encodes a linear-light channel value, clamped to [0,1].
func LinearToSRGB(v float32) float32 {
	f := float64(v)
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	if f <= 0.0031308 {
		return float32(12.92 * f)
	}
	return float32(1.055*math.Pow(f, 1/2.4) - 0.055)
}

// SRGBToLinear inverts LinearToSRGB.
func SRGBToLinear(v float32) float32 {
	f := float64(v)
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 1
	}
	if f <= 0.04045 {
		return float32(f / 12.92)
	}
	return float32(math.Pow((f+0.055)/1.055, 2.4))
}

// SH0FromColors converts linear-light RGB into the DC spherical-harmonic
// coefficient stored by the format: gamma-encode to display space, then
// center on gray and divide by the SH0 basis constant. Only the DC band is
// kept; higher-order coefficients are not part of this archive.
func SH0FromColors(colors []float32) []float32 {
	out := make([]float32, len(colors))
	for i, c := range colors {
		out[i] = (LinearToSRGB(c) - 0.5) / sh0Norm
	}
	return out
}

// ColorsFromSH0 maps DC coefficients back to linear-light RGB.
func ColorsFromSH0(sh0 []float32) []float32 {
	out := make([]float32, len(sh0))
	for i, v := range sh0 {
		out[i] = SRGBToLinear(v*sh0Norm + 0.5)
	}
	return out
}

// EncodeOpacities quantizes opacity uniformly to 8 bits over [0,1]. No
// codebook: the domain is already bounded and dense.
func EncodeOpacities(opacities []float32) []uint8 {
	out := make([]uint8, len(opacities))
	for i, v := range opacities {
		f := float64(v)
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		out[i] = uint8(math.Round(f * 255))
	}
	return out
}

// DecodeOpacities reverses EncodeOpacities.
func DecodeOpacities(codes []uint8) []float32 {
	out := make([]float32, len(codes))
	for i, c := range codes {
		out[i] = float32(c) / 255
	}
	return out
}

// LogScales clamps scales to a small positive floor and takes their natural
// log. The floor keeps exactly-zero extents (allowed by the scale >= 0
// invariant) from producing -Inf and poisoning the codebook.
func LogScales(scales []float32) []float32 {
	const floor = 1e-10
	out := make([]float32, len(scales))
	for i, s := range scales {
		f := float64(s)
		if f < floor {
			f = floor
		}
		out[i] = float32(math.Log(f))
	}
	return out
}

// ExpScales inverts LogScales (up to the clamp floor).
func ExpScales(logScales []float32) []float32 {
	out := make([]float32, len(logScales))
	for i, s := range logScales {
		out[i] = float32(math.Exp(float64(s)))
	}
	return out
}
