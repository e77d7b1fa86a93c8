// Package testutil provides randomized but reproducible Gaussian batches
// for tests across the pipeline packages.
package testutil

import (
	"math"

	"github.com/hupe1980/splatpack/model"
	"github.com/hupe1980/splatpack/util"
)

// RandomUnitQuaternion samples a uniformly distributed unit quaternion.
func RandomUnitQuaternion(rng *util.RNG) [4]float32 {
	var q [4]float64
	var norm float64
	for i := range q {
		q[i] = rng.NormFloat64()
		norm += q[i] * q[i]
	}
	norm = math.Sqrt(norm)
	var out [4]float32
	for i := range q {
		out[i] = float32(q[i] / norm)
	}
	return out
}

// RandomGaussians builds a batch of n valid Gaussians with positions in
// [-extent, extent]^3, unit quaternions, positive scales, colors in [0,1],
// and opacities in [0,1].
func RandomGaussians(rng *util.RNG, n int, extent float32) *model.Gaussians3D {
	g := &model.Gaussians3D{
		Means:       make([]float32, 3*n),
		Quaternions: make([]float32, 4*n),
		Scales:      make([]float32, 3*n),
		Colors:      make([]float32, 3*n),
		Opacities:   make([]float32, n),
	}
	for i := 0; i < n; i++ {
		for a := 0; a < 3; a++ {
			g.Means[3*i+a] = (rng.Float32()*2 - 1) * extent
			g.Scales[3*i+a] = 0.01 + rng.Float32()*0.5
			g.Colors[3*i+a] = rng.Float32()
		}
		q := RandomUnitQuaternion(rng)
		copy(g.Quaternions[4*i:4*i+4], q[:])
		g.Opacities[i] = rng.Float32()
	}
	return g
}

// GridGaussians builds n Gaussians at deterministic positions spanning the
// cube [-extent, extent]^3, for tests that need known coordinates.
func GridGaussians(n int, extent float32) *model.Gaussians3D {
	g := &model.Gaussians3D{
		Means:       make([]float32, 3*n),
		Quaternions: make([]float32, 4*n),
		Scales:      make([]float32, 3*n),
		Colors:      make([]float32, 3*n),
		Opacities:   make([]float32, n),
	}
	for i := 0; i < n; i++ {
		t := float32(0)
		if n > 1 {
			t = float32(i) / float32(n-1)
		}
		v := (t*2 - 1) * extent
		g.Means[3*i] = v
		g.Means[3*i+1] = -v
		g.Means[3*i+2] = v / 2
		g.Quaternions[4*i] = 1
		for a := 0; a < 3; a++ {
			g.Scales[3*i+a] = 0.1
			g.Colors[3*i+a] = t
		}
		g.Opacities[i] = 1
	}
	return g
}
