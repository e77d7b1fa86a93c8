package model

import (
	"fmt"
	"math"
)

// Gaussians3D holds a batch of N anisotropic 3D Gaussian primitives.
// Each attribute is a single contiguous flat slice indexed by Gaussian.
//
// Invariants:
//   - Means has length 3*N (world units).
//   - Quaternions has length 4*N in [w,x,y,z] order; consumers normalize
//     defensively, unit length is not trusted.
//   - Scales has length 3*N with Scales[i] >= 0 (principal axis extents).
//   - Colors has length 3*N in linear-light RGB (pre tone mapping).
//   - Opacities has length N in [0,1].
type Gaussians3D struct {
	Means       []float32
	Quaternions []float32
	Scales      []float32
	Colors      []float32
	Opacities   []float32
}

// Len returns the number of Gaussians in the batch.
func (g *Gaussians3D) Len() int {
	return len(g.Opacities)
}

// CheckShape verifies that all attribute slices agree on the batch size.
func (g *Gaussians3D) CheckShape() error {
	n := g.Len()
	if len(g.Means) != 3*n {
		return fmt.Errorf("means length %d, want %d", len(g.Means), 3*n)
	}
	if len(g.Quaternions) != 4*n {
		return fmt.Errorf("quaternions length %d, want %d", len(g.Quaternions), 4*n)
	}
	if len(g.Scales) != 3*n {
		return fmt.Errorf("scales length %d, want %d", len(g.Scales), 3*n)
	}
	if len(g.Colors) != 3*n {
		return fmt.Errorf("colors length %d, want %d", len(g.Colors), 3*n)
	}
	return nil
}

// CheckFinite scans every attribute for NaN/Inf and reports the first
// offending attribute and row. The upstream predictor is not trusted to
// produce finite floats.
func (g *Gaussians3D) CheckFinite() error {
	checks := []struct {
		name   string
		values []float32
		stride int
	}{
		{"mean", g.Means, 3},
		{"quaternion", g.Quaternions, 4},
		{"scale", g.Scales, 3},
		{"color", g.Colors, 3},
		{"opacity", g.Opacities, 1},
	}
	for _, c := range checks {
		for i, v := range c.values {
			f := float64(v)
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return fmt.Errorf("non-finite %s at gaussian %d", c.name, i/c.stride)
			}
		}
	}
	return nil
}

// Permute reorders the batch in place according to perm, where perm[i] is
// the source index of the Gaussian that ends up at position i.
func (g *Gaussians3D) Permute(perm []int) {
	n := g.Len()
	if len(perm) != n {
		return
	}

	means := make([]float32, 3*n)
	quats := make([]float32, 4*n)
	scales := make([]float32, 3*n)
	colors := make([]float32, 3*n)
	opacities := make([]float32, n)

	for dst, src := range perm {
		copy(means[3*dst:3*dst+3], g.Means[3*src:3*src+3])
		copy(quats[4*dst:4*dst+4], g.Quaternions[4*src:4*src+4])
		copy(scales[3*dst:3*dst+3], g.Scales[3*src:3*src+3])
		copy(colors[3*dst:3*dst+3], g.Colors[3*src:3*src+3])
		opacities[dst] = g.Opacities[src]
	}

	g.Means = means
	g.Quaternions = quats
	g.Scales = scales
	g.Colors = colors
	g.Opacities = opacities
}

// Clone returns a deep copy of the batch. Encode never mutates its input;
// reordering happens on a clone.
func (g *Gaussians3D) Clone() *Gaussians3D {
	c := &Gaussians3D{
		Means:       make([]float32, len(g.Means)),
		Quaternions: make([]float32, len(g.Quaternions)),
		Scales:      make([]float32, len(g.Scales)),
		Colors:      make([]float32, len(g.Colors)),
		Opacities:   make([]float32, len(g.Opacities)),
	}
	copy(c.Means, g.Means)
	copy(c.Quaternions, g.Quaternions)
	copy(c.Scales, g.Scales)
	copy(c.Colors, g.Colors)
	copy(c.Opacities, g.Opacities)
	return c
}

// Camera carries the intrinsics recorded as archive metadata.
type Camera struct {
	// FocalLength is the focal length in pixels.
	FocalLength float32
	// ImageWidth and ImageHeight are the dimensions of the source photo.
	ImageWidth  int
	ImageHeight int
}

// Intrinsics returns the row-major 4x4 pinhole projection matrix
// [[f,0,w/2,0],[0,f,h/2,0],[0,0,1,0],[0,0,0,1]] that the geometry layer
// pairs with an extrinsic pose when unprojecting.
func (c Camera) Intrinsics() [16]float64 {
	f := float64(c.FocalLength)
	return [16]float64{
		f, 0, float64(c.ImageWidth) / 2, 0,
		0, f, float64(c.ImageHeight) / 2, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FocalLengthFromF35 converts a 35mm-equivalent focal length to pixels for
// an image of the given dimensions. Pass 30.0 when the source photo carries
// no EXIF focal length; that matches the capture default assumed upstream.
func FocalLengthFromF35(width, height int, f35 float64) float32 {
	diag := math.Sqrt(float64(width*width + height*height))
	// 35mm full frame has a 43.27mm diagonal.
	return float32(f35 * diag / 43.26661530556787)
}

// Affine is a 3D affine transform [L | t] with a row-major linear part.
// L may include anisotropic scaling or shear, not only rotation.
type Affine struct {
	Linear      [9]float64
	Translation [3]float64
}

// AffineFromMatrix4 extracts the affine part of a row-major 4x4 matrix.
// The bottom row is ignored; transforms here are never projective.
func AffineFromMatrix4(m [16]float64) Affine {
	return Affine{
		Linear: [9]float64{
			m[0], m[1], m[2],
			m[4], m[5], m[6],
			m[8], m[9], m[10],
		},
		Translation: [3]float64{m[3], m[7], m[11]},
	}
}
